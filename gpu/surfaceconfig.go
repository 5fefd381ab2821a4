// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// Capabilities are what a surface supports with a given adapter.
// Each list is in the order the platform reports, which is
// its order of preference.
type Capabilities struct {
	Formats      []wgpu.TextureFormat
	PresentModes []wgpu.PresentMode
	AlphaModes   []wgpu.CompositeAlphaMode
}

// SurfaceConfig is the configuration applied to a surface.
// It is comparable with ==.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      wgpu.TextureFormat
	PresentMode wgpu.PresentMode
	AlphaMode   wgpu.CompositeAlphaMode
	Usage       wgpu.TextureUsage
}

// Size returns the configured size as an image.Point.
func (sc SurfaceConfig) Size() image.Point {
	return image.Point{int(sc.Width), int(sc.Height)}
}

func (sc SurfaceConfig) String() string {
	return fmt.Sprintf("%dx%d format: %s present: %v alpha: %v", sc.Width, sc.Height, FormatName(sc.Format), sc.PresentMode, sc.AlphaMode)
}

// SelectSurfaceConfig chooses the surface configuration for the given
// capabilities and size:
//   - the first sRGB format, else the first format;
//   - Fifo if offered, else the first present mode;
//   - the first of Auto or Premultiplied, else the first alpha mode;
//   - render attachment usage.
//
// Negative sizes are clamped to zero.
func SelectSurfaceConfig(caps Capabilities, size image.Point) (SurfaceConfig, error) {
	sc := SurfaceConfig{Usage: wgpu.TextureUsageRenderAttachment}
	if len(caps.Formats) == 0 {
		return sc, ErrNoSurfaceFormats
	}
	if len(caps.PresentModes) == 0 {
		return sc, ErrNoPresentModes
	}
	if len(caps.AlphaModes) == 0 {
		return sc, ErrNoAlphaModes
	}

	sc.Format = caps.Formats[0]
	for _, f := range caps.Formats {
		if IsSRGB(f) {
			sc.Format = f
			break
		}
	}

	sc.PresentMode = caps.PresentModes[0]
	for _, pm := range caps.PresentModes {
		if pm == wgpu.PresentModeFifo {
			sc.PresentMode = pm
			break
		}
	}

	sc.AlphaMode = caps.AlphaModes[0]
	for _, am := range caps.AlphaModes {
		if am == wgpu.CompositeAlphaModeAuto || am == wgpu.CompositeAlphaModePremultiplied {
			sc.AlphaMode = am
			break
		}
	}

	sc.Width = uint32(max(size.X, 0))
	sc.Height = uint32(max(size.Y, 0))
	return sc, nil
}
