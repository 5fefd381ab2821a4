// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// Session owns the connection between one window and the GPU:
// the device and queue, the window surface and its configuration,
// and the single render pipeline. It is created once after the
// window exists, updated in place by [Session.Resize], and released
// by [Session.Release] before the window is destroyed.
type Session struct {
	// Device is the logical GPU connection.
	Device Device

	// Queue is the submission queue of Device.
	Queue Queue

	// Surface is the presentable target bound to the window.
	Surface Surface

	// Config is the current surface configuration. It is only
	// changed by Resize.
	Config SurfaceConfig

	// Size is the physical pixel size of the window, as last reported.
	Size image.Point

	// Pipeline is the render pipeline, built for Config.Format.
	Pipeline Pipeline

	// Shader is the shader Pipeline was built from.
	Shader Shader

	// Capabilities are the surface capabilities queried at construction.
	Capabilities Capabilities

	// Adapter is the GPU adapter the device was created on.
	Adapter Adapter

	// Instance is the API instance everything was created from.
	Instance Instance

	target     SurfaceTarget
	factory    PipelineFactory
	configured bool
}

// SessionOption configures optional [NewSession] behavior.
type SessionOption func(so *sessionOptions)

type sessionOptions struct {
	fallbackAdapter bool
	label           string
}

// WithFallbackAdapter allows negotiating a software (CPU) adapter,
// which is otherwise rejected.
func WithFallbackAdapter(allow bool) SessionOption {
	return func(so *sessionOptions) {
		so.fallbackAdapter = allow
	}
}

// WithDeviceLabel sets the label of the logical device.
func WithDeviceLabel(label string) SessionOption {
	return func(so *sessionOptions) {
		so.label = label
	}
}

// NewSession creates the GPU session for the given window target:
// instance, surface, adapter, device and queue, surface configuration,
// and the pipeline built by factory for the selected format, in that order.
// If size has zero area the surface is left unconfigured until the first
// non-zero [Session.Resize]. On any failure everything created so far is
// released and no session is returned.
func NewSession(be Backend, target SurfaceTarget, size image.Point, factory PipelineFactory, sh Shader, opts ...SessionOption) (*Session, error) {
	so := sessionOptions{label: "trihost device"}
	for _, o := range opts {
		o(&so)
	}
	s := &Session{target: target, factory: factory, Size: size}
	fail := func(step string, err error) (*Session, error) {
		s.Release()
		return nil, fmt.Errorf("gpu: %s: %w", step, err)
	}

	inst, err := be.CreateInstance()
	if err != nil {
		return fail("creating instance", err)
	}
	s.Instance = inst
	slog.Debug("gpu: created instance")

	sf, err := inst.CreateSurface(target)
	if err != nil {
		return fail("creating surface", err)
	}
	s.Surface = sf
	slog.Debug("gpu: created surface")

	ad, err := inst.RequestAdapter(&AdapterOptions{
		CompatibleSurface:    sf,
		PowerPreference:      wgpu.PowerPreferenceHighPerformance,
		ForceFallbackAdapter: so.fallbackAdapter,
	})
	if err != nil {
		return fail("requesting adapter", err)
	}
	s.Adapter = ad
	slog.Debug("gpu: negotiated adapter", "fallback", so.fallbackAdapter)

	dev, err := ad.RequestDevice(&DeviceDescriptor{Label: so.label})
	if err != nil {
		return fail("requesting device", err)
	}
	s.Device = dev
	s.Queue = dev.Queue()
	slog.Debug("gpu: created device", "label", so.label)

	s.Capabilities = sf.Capabilities(ad)
	cfg, err := SelectSurfaceConfig(s.Capabilities, size)
	if err != nil {
		return fail("selecting surface configuration", err)
	}
	s.Config = cfg
	if size.X > 0 && size.Y > 0 {
		s.configure()
	} else {
		slog.Debug("gpu: window has no area yet, deferring surface configuration", "size", size)
	}

	pl, err := factory.Build(dev, sh, cfg.Format)
	if err != nil {
		return fail("building pipeline", err)
	}
	s.Pipeline = pl
	s.Shader = sh
	slog.Debug("gpu: built pipeline", "shader", sh.Name, "format", FormatName(cfg.Format))
	return s, nil
}

// Configured returns true once a non-zero configuration has been
// applied to the surface.
func (s *Session) Configured() bool {
	return s.configured
}

// CurrentSize returns the window size last applied by [Session.Resize]
// or given at construction.
func (s *Session) CurrentSize() image.Point {
	return s.Size
}

// Target returns the window the surface is bound to.
func (s *Session) Target() SurfaceTarget {
	return s.target
}

// Resize updates the surface for a new window size. A size with zero
// width or height (a minimized window) is ignored, leaving Config and
// Size unchanged. Resizing to the current size reapplies the same
// configuration.
func (s *Session) Resize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 || s.Surface == nil {
		return
	}
	s.Size = size
	s.Config.Width = uint32(size.X)
	s.Config.Height = uint32(size.Y)
	s.configure()
}

// Reconfigure reapplies the configuration at the current size.
// This is how a lost surface is recovered.
func (s *Session) Reconfigure() {
	s.Resize(s.Size)
}

// ReplaceShader builds a new pipeline from sh for the current format
// and swaps it in for the old one, which is released. If the build
// fails the old pipeline is kept.
func (s *Session) ReplaceShader(sh Shader) error {
	if s.Device == nil {
		return fmt.Errorf("gpu: replacing shader %s: session is released", sh.Name)
	}
	pl, err := s.factory.Build(s.Device, sh, s.Config.Format)
	if err != nil {
		return fmt.Errorf("gpu: replacing shader %s: %w", sh.Name, err)
	}
	if s.Pipeline != nil {
		s.Pipeline.Release()
	}
	s.Pipeline = pl
	s.Shader = sh
	slog.Debug("gpu: replaced pipeline", "shader", sh.Name, "format", FormatName(s.Config.Format))
	return nil
}

func (s *Session) configure() {
	cfg := s.Config
	s.Surface.Configure(s.Adapter, s.Device, &cfg)
	s.configured = true
	slog.Debug("gpu: configured surface", "config", cfg)
}

// Release releases all GPU handles in reverse creation order.
// It is safe to call more than once.
func (s *Session) Release() {
	if s.Pipeline != nil {
		s.Pipeline.Release()
		s.Pipeline = nil
	}
	if s.Surface != nil {
		s.Surface.Release()
		s.Surface = nil
	}
	if s.Queue != nil {
		s.Queue.Release()
		s.Queue = nil
	}
	if s.Device != nil {
		s.Device.Release()
		s.Device = nil
	}
	if s.Adapter != nil {
		s.Adapter.Release()
		s.Adapter = nil
	}
	if s.Instance != nil {
		s.Instance.Release()
		s.Instance = nil
	}
	s.configured = false
}
