// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// struct for the trihost rendering host.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/trihost/events/key"
	"cogentcore.org/trihost/logx"
)

// Config is the main config struct that contains all of the
// configuration options for the rendering host. Values come from
// [Config.Defaults], then an optional config file, then any
// command line flags that were explicitly set.
type Config struct {

	// Title is the window title.
	Title string

	// Width is the initial window width in screen coordinates.
	Width int

	// Height is the initial window height in screen coordinates.
	Height int

	// Shader is the path of the WGSL shader file used for the pipeline.
	// If empty, the embedded triangle shader is used.
	Shader string

	// WatchShader reloads the pipeline each time the [Config.Shader]
	// file changes on disk.
	WatchShader bool

	// TickInterval is the period of the redraw wake-up signal.
	TickInterval time.Duration

	// ClearColor is the RGBA color the frame is cleared to, each in [0, 1].
	ClearColor []float64

	// CancelKey is the name of the key that exits the host when pressed
	// without key-repeat, for example "Escape" or "Q".
	CancelKey string

	// FallbackAdapter allows software fallback adapters to be selected.
	FallbackAdapter bool

	// LogLevel is the minimum level of log messages shown.
	LogLevel string

	// StatsInterval is how often frame statistics are logged.
	// Zero disables frame statistics.
	StatsInterval time.Duration
}

// Defaults sets the default values for all fields.
func (c *Config) Defaults() {
	c.Title = "trihost"
	c.Width = 800
	c.Height = 600
	c.Shader = ""
	c.WatchShader = false
	c.TickInterval = 100 * time.Millisecond
	c.ClearColor = []float64{0.1, 0.2, 0.3, 1}
	c.CancelKey = key.CodeEscape.String()
	c.FallbackAdapter = false
	c.LogLevel = "info"
	c.StatsInterval = 10 * time.Second
}

// New returns a new [Config] with default values.
func New() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Validate returns an error describing the first invalid setting, if any.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.WatchShader && c.Shader == "" {
		return fmt.Errorf("config: watching the shader needs a shader file")
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("config: tick interval must be positive, got %v", c.TickInterval)
	}
	if c.StatsInterval < 0 {
		return fmt.Errorf("config: stats interval must not be negative, got %v", c.StatsInterval)
	}
	if len(c.ClearColor) != 4 {
		return fmt.Errorf("config: clear color needs 4 components (RGBA), got %d", len(c.ClearColor))
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("config: clear color component %d out of range [0, 1]: %g", i, v)
		}
	}
	if _, err := c.CancelCode(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// CancelCode returns the key code of [Config.CancelKey].
func (c *Config) CancelCode() (key.Codes, error) {
	code, err := key.CodeFromString(c.CancelKey)
	if err != nil {
		return key.CodeUnknown, fmt.Errorf("config: cancel key: %w", err)
	}
	return code, nil
}

// Level returns the parsed [Config.LogLevel].
func (c *Config) Level() (slog.Level, error) {
	l, err := logx.ParseLevel(c.LogLevel)
	if err != nil {
		return l, fmt.Errorf("config: log level: %w", err)
	}
	return l, nil
}
