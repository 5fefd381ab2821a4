// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd

// Package desktop provides the glfw window that a GPU surface is
// bound to, and turns its callbacks into [events.Event]s.
package desktop

import (
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"sync/atomic"

	"cogentcore.org/trihost/events"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// some operating systems require us to be on the main thread
	runtime.LockOSThread()
}

// Options are the options for [NewWindow].
type Options struct {
	// Title is the window title.
	Title string

	// Size is the requested client area size in screen coordinates.
	Size image.Point

	// Hidden creates the window without showing it.
	Hidden bool
}

var lastID atomic.Uint64

// Window is a glfw window without a client API, for rendering with
// WebGPU. All methods except [Window.Wake] must be called on the
// main thread.
type Window struct {
	// Glw is the glfw window. It is nil once the window is destroyed.
	Glw *glfw.Window

	id     events.WindowID
	queue  events.Queue
	tick   atomic.Bool
	redraw bool
	closed bool

	// post wakes up [glfw.WaitEvents] from any goroutine.
	post func()
}

// NewWindow initializes glfw and opens a new window.
// IMPORTANT: must be called on the main initial thread!
func NewWindow(opts Options) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("desktop: initializing glfw: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if opts.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	glw, err := glfw.CreateWindow(opts.Size.X, opts.Size.Y, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("desktop: creating window: %w", err)
	}
	w := newWindow()
	w.Glw = glw
	glw.SetFramebufferSizeCallback(w.fbResized)
	glw.SetCloseCallback(w.closeRequested)
	glw.SetKeyCallback(w.keyEvent)
	slog.Debug("desktop: opened window", "id", w.id, "title", opts.Title, "size", w.Size())
	return w, nil
}

func newWindow() *Window {
	return &Window{id: events.WindowID(lastID.Add(1)), post: glfw.PostEmptyEvent}
}

// ID returns the identity that events from this window carry.
func (w *Window) ID() events.WindowID {
	return w.id
}

// Size returns the framebuffer size in physical pixels.
func (w *Window) Size() image.Point {
	if w.Glw == nil {
		return image.Point{}
	}
	width, height := w.Glw.GetFramebufferSize()
	return image.Point{width, height}
}

// SurfaceDescriptor returns the descriptor for creating a WebGPU
// surface on the window.
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.Glw == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.Glw)
}

// IsClosed returns true once the window has been destroyed.
func (w *Window) IsClosed() bool {
	return w.closed
}

// RequestRedraw schedules a [events.RedrawRequested] event.
// Requests made while one is pending are merged.
func (w *Window) RequestRedraw() {
	w.redraw = true
}

// Wake schedules a [events.Tick] event and wakes up [Window.WaitEvent].
// A wake made while a tick is pending is dropped.
// It is safe to call from any goroutine.
func (w *Window) Wake() {
	if w.tick.CompareAndSwap(false, true) {
		w.post()
	}
}

// RequestClose queues a [events.CloseRequested] event as if the user
// had closed the window. It is safe to call from any goroutine.
func (w *Window) RequestClose() {
	w.Send(events.NewCloseRequested(w.id))
}

// Send queues an event and wakes up [Window.WaitEvent].
// It is safe to call from any goroutine until the window is destroyed.
func (w *Window) Send(ev events.Event) {
	w.queue.Send(ev)
	w.post()
}

// WaitEvent returns the next event, blocking in glfw until one arrives.
// Window events come first, then a pending tick, then a pending redraw.
// Once the window is destroyed it returns [events.CloseRequested]
// instead of blocking.
func (w *Window) WaitEvent() events.Event {
	for {
		if ev := w.queue.NextEvent(); ev != nil {
			return ev
		}
		if w.tick.CompareAndSwap(true, false) {
			return events.NewTick()
		}
		if w.redraw {
			w.redraw = false
			return events.NewRedraw(w.id)
		}
		if w.closed {
			return events.NewCloseRequested(w.id)
		}
		glfw.WaitEvents()
	}
}

// Destroy destroys the window and shuts down glfw.
// The GPU surface of the window must have been released first.
func (w *Window) Destroy() {
	if w.closed {
		return
	}
	w.closed = true
	if w.Glw != nil {
		w.Glw.Destroy()
		w.Glw = nil
	}
	glfw.Terminate()
	slog.Debug("desktop: destroyed window", "id", w.id)
}
