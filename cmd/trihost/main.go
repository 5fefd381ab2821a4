// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command trihost opens a window and renders a triangle into it
// with WebGPU, redrawing ten times a second until the window is
// closed or the cancel key is pressed.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"cogentcore.org/trihost/base/errors"
	"cogentcore.org/trihost/config"
	"cogentcore.org/trihost/logx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	logx.SetDefaultLogger()
	if err := newRootCmd(newOptions(os.Stdout)).Execute(); err != nil {
		errors.Log(err)
		os.Exit(1)
	}
}

// options are the values shared by all commands.
type options struct {
	cfg     *config.Config
	cfgPath string
	vv      bool
	v       bool
	q       bool
	out     io.Writer
}

func newOptions(out io.Writer) *options {
	return &options{cfg: config.New(), out: out}
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "trihost",
		Short: "Render a triangle into a window with WebGPU",
		Long: `trihost opens a window, connects it to the GPU, and redraws a triangle
ten times a second. Press the cancel key (Escape by default) or close
the window to quit.`,
		Example:       "  trihost --width 1024 --height 768\n  trihost --config trihost.toml -v\n  trihost info",
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.resolve(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd.Context())
		},
	}
	root.SetOut(o.out)

	pf := root.PersistentFlags()
	c := o.cfg
	pf.StringVar(&o.cfgPath, "config", "", "path to a .toml or .yaml config file")
	pf.BoolVar(&o.vv, "vv", false, "very verbose: show debug messages")
	pf.BoolVarP(&o.v, "verbose", "v", false, "verbose: show info messages")
	pf.BoolVarP(&o.q, "quiet", "q", false, "quiet: only show errors")
	pf.StringVar(&c.LogLevel, "log-level", c.LogLevel, "minimum log level (debug, info, warn, error)")
	pf.StringVar(&c.Title, "title", c.Title, "window title")
	pf.IntVar(&c.Width, "width", c.Width, "initial window width")
	pf.IntVar(&c.Height, "height", c.Height, "initial window height")
	pf.StringVar(&c.Shader, "shader", c.Shader, "WGSL shader file with vs_main and fs_main (default: embedded triangle)")
	pf.BoolVar(&c.WatchShader, "watch-shader", c.WatchShader, "reload the shader file when it changes")
	pf.DurationVar(&c.TickInterval, "tick", c.TickInterval, "interval between redraws")
	pf.Float64SliceVar(&c.ClearColor, "clear-color", c.ClearColor, "RGBA clear color, each in [0, 1]")
	pf.StringVar(&c.CancelKey, "cancel-key", c.CancelKey, "key that quits when pressed")
	pf.BoolVar(&c.FallbackAdapter, "fallback-adapter", c.FallbackAdapter, "allow a software fallback GPU adapter")
	pf.DurationVar(&c.StatsInterval, "stats-interval", c.StatsInterval, "interval between frame rate logs (0 disables)")

	root.AddCommand(newRunCmd(o), newInfoCmd(o))
	return root
}

// resolve applies the config file to the config, except for the
// settings given explicitly on the command line, then sets the log
// level and validates the result.
func (o *options) resolve(flags *pflag.FlagSet) error {
	changed := map[string]bool{}
	flags.Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if o.cfgPath != "" {
		fc, err := config.Open(o.cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := fc.Apply(o.cfg, changed); err != nil {
			return err
		}
	}
	if err := o.cfg.Validate(); err != nil {
		return err
	}
	if o.vv || o.v || o.q {
		logx.UserLevel = logx.LevelFromFlags(o.vv, o.v, o.q)
	} else {
		logx.UserLevel = errors.Must1(o.cfg.Level())
	}
	return nil
}
