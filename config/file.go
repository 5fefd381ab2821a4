// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File mirrors [Config] as it appears in a config file.
// Pointer fields distinguish unset values from zero values,
// and durations are strings such as "100ms".
type File struct {
	Title           *string   `toml:"title" yaml:"title"`
	Width           *int      `toml:"width" yaml:"width"`
	Height          *int      `toml:"height" yaml:"height"`
	Shader          *string   `toml:"shader" yaml:"shader"`
	WatchShader     *bool     `toml:"watch_shader" yaml:"watch_shader"`
	TickInterval    string    `toml:"tick_interval" yaml:"tick_interval"`
	ClearColor      []float64 `toml:"clear_color" yaml:"clear_color"`
	CancelKey       *string   `toml:"cancel_key" yaml:"cancel_key"`
	FallbackAdapter *bool     `toml:"fallback_adapter" yaml:"fallback_adapter"`
	LogLevel        *string   `toml:"log_level" yaml:"log_level"`
	StatsInterval   string    `toml:"stats_interval" yaml:"stats_interval"`
}

// Open reads and parses the given config file. The format is
// determined by the extension: .toml, or .yaml / .yml.
func Open(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc := &File{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(b, fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, fc)
	default:
		return nil, fmt.Errorf("config: unsupported config file type %q (want .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return fc, nil
}

// Apply applies the values set in the file to the given config.
// Fields named in changed (by their flag name) were set explicitly
// on the command line and are left alone.
func (fc *File) Apply(c *Config, changed map[string]bool) error {
	setString("title", fc.Title, &c.Title, changed)
	setInt("width", fc.Width, &c.Width, changed)
	setInt("height", fc.Height, &c.Height, changed)
	setString("shader", fc.Shader, &c.Shader, changed)
	setString("cancel-key", fc.CancelKey, &c.CancelKey, changed)
	setString("log-level", fc.LogLevel, &c.LogLevel, changed)
	setBool("watch-shader", fc.WatchShader, &c.WatchShader, changed)
	setBool("fallback-adapter", fc.FallbackAdapter, &c.FallbackAdapter, changed)
	if fc.ClearColor != nil && !changed["clear-color"] {
		c.ClearColor = fc.ClearColor
	}
	if err := setDuration("tick", fc.TickInterval, &c.TickInterval, changed); err != nil {
		return err
	}
	return setDuration("stats-interval", fc.StatsInterval, &c.StatsInterval, changed)
}

func setString(flag string, v *string, dst *string, changed map[string]bool) {
	if v != nil && !changed[flag] {
		*dst = *v
	}
}

func setInt(flag string, v *int, dst *int, changed map[string]bool) {
	if v != nil && !changed[flag] {
		*dst = *v
	}
}

func setBool(flag string, v *bool, dst *bool, changed map[string]bool) {
	if v != nil && !changed[flag] {
		*dst = *v
	}
}

func setDuration(flag, v string, dst *time.Duration, changed map[string]bool) error {
	if v == "" || changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", flag, err)
	}
	*dst = d
	return nil
}
