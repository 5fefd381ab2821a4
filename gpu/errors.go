// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/trihost/base/errors"
)

var (
	// ErrSurfaceLost means the surface must be reconfigured before
	// it can produce textures again.
	ErrSurfaceLost = errors.New("gpu: surface lost")

	// ErrSurfaceOutdated means the surface configuration no longer
	// matches the window, typically during a resize.
	ErrSurfaceOutdated = errors.New("gpu: surface outdated")

	// ErrSurfaceTimeout means no texture became available in time.
	ErrSurfaceTimeout = errors.New("gpu: surface texture acquisition timed out")

	// ErrDeviceLost means the logical device is gone. Reconfiguring
	// the surface cannot bring it back.
	ErrDeviceLost = errors.New("gpu: device lost")

	// ErrOutOfMemory means the GPU ran out of memory.
	ErrOutOfMemory = errors.New("gpu: out of memory")

	// ErrNotConfigured means the surface has never had a non-zero
	// size applied, so there is nothing to acquire.
	ErrNotConfigured = errors.New("gpu: surface not configured")

	// ErrWindowClosed means the window behind the surface is gone.
	ErrWindowClosed = errors.New("gpu: window closed")

	// ErrNoSurface means the platform could not produce a surface
	// for the window.
	ErrNoSurface = errors.New("gpu: no surface for window")

	// ErrNoSurfaceFormats means the surface reported no pixel formats.
	ErrNoSurfaceFormats = errors.New("gpu: surface reports no formats")

	// ErrNoPresentModes means the surface reported no present modes.
	ErrNoPresentModes = errors.New("gpu: surface reports no present modes")

	// ErrNoAlphaModes means the surface reported no alpha modes.
	ErrNoAlphaModes = errors.New("gpu: surface reports no alpha modes")
)

// ClassifyAcquireError maps a texture acquisition error to the
// recovery class the caller should apply: [Recoverable] for a lost
// surface, [Fatal] for out of memory, and [Transient] for everything
// else (timeouts, outdated surfaces, a lost device, unknown causes).
func ClassifyAcquireError(err error) FrameStatus {
	switch {
	case err == nil:
		return Presented
	case errors.Is(err, ErrSurfaceLost):
		return Recoverable
	case errors.Is(err, ErrOutOfMemory):
		return Fatal
	default:
		return Transient
	}
}
