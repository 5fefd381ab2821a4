// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allocates the window, GPU session, frame renderer and
// redraw scheduler of the rendering host together, and releases them
// together in the order the surface lifetime requires.
package host

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"

	"cogentcore.org/trihost/base/errors"
	"cogentcore.org/trihost/config"
	"cogentcore.org/trihost/events"
	"cogentcore.org/trihost/gpu"
	"cogentcore.org/trihost/scheduler"
	"cogentcore.org/trihost/system/driver/desktop"
	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/sync/errgroup"
)

var (
	_ gpu.SurfaceTarget     = (*desktop.Window)(nil)
	_ scheduler.Window      = (*desktop.Window)(nil)
	_ scheduler.EventSource = (*desktop.Window)(nil)
	_ scheduler.Waker       = (*desktop.Window)(nil)
	_ scheduler.Session     = (*gpu.Session)(nil)
	_ scheduler.Renderer    = (*gpu.FrameRenderer)(nil)
	_ ShaderReplacer        = (*gpu.Session)(nil)
)

// Options are the options for [New] beyond the [config.Config].
type Options struct {
	// Out is where user-facing messages are printed.
	Out io.Writer

	// Hidden opens the window without showing it.
	Hidden bool
}

// Host is everything needed to render into one window.
// The session is bound to the window surface, so the window must
// outlive it: [Host.Close] releases the session first.
type Host struct {
	Config    *config.Config
	Window    *desktop.Window
	Session   *gpu.Session
	Renderer  *gpu.FrameRenderer
	Scheduler *scheduler.Scheduler
	Ticker    *scheduler.Ticker

	// Watcher watches the shader file. It is nil unless
	// [config.Config.WatchShader] is set.
	Watcher *ShaderWatcher
}

// New opens the window and creates the GPU session, renderer and
// scheduler for it. On error everything created is released.
// IMPORTANT: must be called on the main initial thread!
func New(cfg *config.Config, opts Options) (*Host, error) {
	if err := config.CurrentPlatform().Supported(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cancel, err := cfg.CancelCode()
	if err != nil {
		return nil, err
	}
	sh, err := gpu.LoadShader(cfg.Shader)
	if err != nil {
		return nil, err
	}

	h := &Host{Config: cfg}
	h.Window, err = desktop.NewWindow(desktop.Options{
		Title:  cfg.Title,
		Size:   image.Point{cfg.Width, cfg.Height},
		Hidden: opts.Hidden,
	})
	if err != nil {
		return nil, err
	}
	h.Session, err = gpu.NewSession(gpu.WebGPU{}, h.Window, h.Window.Size(), gpu.NewPipelineBuilder(), sh,
		gpu.WithFallbackAdapter(cfg.FallbackAdapter), gpu.WithDeviceLabel(cfg.Title))
	if err != nil {
		h.Close()
		return nil, err
	}
	slog.Info("surface configured", "config", h.Session.Config, "configured", h.Session.Configured())

	h.Renderer = gpu.NewFrameRenderer(h.Session)
	h.Renderer.ClearColor = ClearColor(cfg.ClearColor)
	h.Renderer.StatsInterval = cfg.StatsInterval

	h.Scheduler = scheduler.New(h.Window, h.Session, h.Renderer, opts.Out)
	h.Scheduler.CancelKey = cancel
	h.Ticker = scheduler.NewTicker(cfg.TickInterval, h.Window)

	if cfg.WatchShader {
		h.Watcher, err = WatchShader(cfg.Shader, h.Window.Send)
		if err != nil {
			h.Close()
			return nil, err
		}
		h.Scheduler.Listeners.Add(events.ShaderChanged, ShaderReloader(h.Session, h.Window))
	}
	return h, nil
}

// ClearColor converts RGBA components to a [wgpu.Color].
// Missing components are taken from [gpu.DefaultClearColor].
func ClearColor(c []float64) wgpu.Color {
	dc := gpu.DefaultClearColor
	comps := []*float64{&dc.R, &dc.G, &dc.B, &dc.A}
	for i, v := range c {
		if i >= len(comps) {
			break
		}
		*comps[i] = v
	}
	return dc
}

// Run starts the ticker and runs the event loop until the user quits
// or rendering fails. Cancelling ctx closes the window as if the user
// had. It returns the error of the frame that ended the loop, if any.
// IMPORTANT: must be called on the main initial thread!
func (h *Host) Run(ctx context.Context) error {
	h.Ticker.Start(ctx)
	defer h.Ticker.Stop()

	done := make(chan struct{})
	var g errgroup.Group
	g.Go(func() error {
		select {
		case <-ctx.Done():
			h.Window.RequestClose()
		case <-done:
		}
		return nil
	})
	err := h.Scheduler.Run(h.Window)
	close(done)
	g.Wait() // the watcher must not post after the window is destroyed
	return err
}

// Close stops the background goroutines, releases the session,
// then destroys the window. It is safe to call more than once.
func (h *Host) Close() {
	if h.Ticker != nil {
		h.Ticker.Stop()
	}
	if h.Watcher != nil {
		errors.Log(h.Watcher.Close())
	}
	if h.Session != nil {
		h.Session.Release()
	}
	if h.Window != nil {
		h.Window.Destroy()
	}
}

// WriteInfo writes the surface capabilities and the selected
// surface configuration of the session.
func WriteInfo(w io.Writer, s *gpu.Session) {
	caps := s.Capabilities
	fmt.Fprintf(w, "Platform: %v\n", config.CurrentPlatform())
	fmt.Fprintf(w, "Surface formats:\n")
	for _, f := range caps.Formats {
		fmt.Fprintf(w, "\t%v (%s)\n", f, gpu.FormatName(f))
	}
	fmt.Fprintf(w, "Present modes:\n")
	for _, pm := range caps.PresentModes {
		fmt.Fprintf(w, "\t%v\n", pm)
	}
	fmt.Fprintf(w, "Alpha modes:\n")
	for _, am := range caps.AlphaModes {
		fmt.Fprintf(w, "\t%v\n", am)
	}
	fmt.Fprintf(w, "Selected configuration:\n\t%v\n", s.Config)
	fmt.Fprintf(w, "Configured: %v\n", s.Configured())
}
