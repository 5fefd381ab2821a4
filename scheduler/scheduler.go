// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scheduler drives rendering from window events: it forwards
// resizes to the GPU session, turns periodic ticks into redraw
// requests, renders on redraw, and decides when the loop exits.
package scheduler

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"cogentcore.org/trihost/events"
	"cogentcore.org/trihost/events/key"
	"cogentcore.org/trihost/gpu"
)

// States are the states of a [Scheduler].
type States int32

const (
	// Running is the initial state, in which events are handled.
	Running States = iota

	// Exiting is the terminal state. No further events are handled.
	Exiting
)

func (st States) String() string {
	switch st {
	case Running:
		return "Running"
	case Exiting:
		return "Exiting"
	}
	return fmt.Sprintf("States(%d)", int32(st))
}

// Window is the window a [Scheduler] renders into.
type Window interface {
	// ID is the identity carried by events from the window.
	ID() events.WindowID

	// RequestRedraw schedules a [events.RedrawRequested] event.
	RequestRedraw()
}

// Session is the GPU session of the window.
type Session interface {
	// Resize updates the surface for a new window size.
	Resize(size image.Point)

	// CurrentSize returns the window size the session last applied.
	CurrentSize() image.Point
}

// Renderer renders one frame.
type Renderer interface {
	RenderFrame() gpu.FrameResult
}

// EventSource produces window events, blocking until one is available.
type EventSource interface {
	WaitEvent() events.Event
}

// Farewell is printed when the loop exits normally.
const Farewell = "Goodbye!"

// Scheduler is the redraw state machine for one window.
// All of its methods must be called on the main thread.
type Scheduler struct {
	// Window is the window being rendered.
	Window Window

	// Session is the GPU session of Window.
	Session Session

	// Renderer renders frames into Session.
	Renderer Renderer

	// CancelKey is the key that exits the loop when pressed.
	CancelKey key.Codes

	// Out is where the farewell is printed. Nil prints nothing.
	Out io.Writer

	// Listeners are called for events of the window, after the
	// scheduler has handled them. They can be used to observe the loop.
	Listeners events.Listeners

	state    States
	fatalErr error
}

// New returns a new Scheduler in the [Running] state, exiting on Escape.
func New(win Window, sess Session, rend Renderer, out io.Writer) *Scheduler {
	return &Scheduler{Window: win, Session: sess, Renderer: rend, CancelKey: key.CodeEscape, Out: out}
}

// State returns the current state.
func (sc *Scheduler) State() States {
	return sc.state
}

// Err returns the error of the frame that ended the loop, if any.
func (sc *Scheduler) Err() error {
	return sc.fatalErr
}

// HandleEvent applies one event. Events for other windows, and
// all events once [Exiting], are ignored.
func (sc *Scheduler) HandleEvent(ev events.Event) {
	if sc.state == Exiting {
		return
	}
	if win := ev.Window(); win != events.NoWindow && win != sc.Window.ID() {
		return
	}
	switch ev.Type() {
	case events.Tick:
		sc.Window.RequestRedraw()
	case events.Resize:
		sc.Session.Resize(ev.(*events.WindowResize).Size)
	case events.CloseRequested:
		sc.exit()
	case events.KeyDown:
		k := ev.(*events.Key)
		if k.Code == sc.CancelKey && !k.Repeat {
			sc.exit()
		}
	case events.RedrawRequested:
		sc.render()
	case events.ShaderChanged:
		// listeners reload
	default:
		return
	}
	sc.Listeners.Call(ev)
}

func (sc *Scheduler) render() {
	res := sc.Renderer.RenderFrame()
	switch res.Status {
	case gpu.Presented:
	case gpu.Recoverable:
		slog.Debug("scheduler: surface lost, reconfiguring", "err", res.Err)
		sc.Session.Resize(sc.Session.CurrentSize())
	case gpu.Fatal:
		slog.Error("scheduler: rendering failed, exiting", "err", res.Err)
		sc.fatalErr = res.Err
		sc.state = Exiting
	case gpu.Transient:
		slog.Warn("scheduler: skipped frame", "err", res.Err)
	}
}

// exit moves to Exiting and prints the farewell.
func (sc *Scheduler) exit() {
	sc.state = Exiting
	if sc.Out != nil {
		fmt.Fprintln(sc.Out, Farewell)
	}
}

// Run handles events from src until the scheduler is [Exiting].
// It returns the error of the frame that ended the loop, or nil if
// the loop ended because the user asked to quit.
func (sc *Scheduler) Run(src EventSource) error {
	for sc.state != Exiting {
		sc.HandleEvent(src.WaitEvent())
	}
	return sc.fatalErr
}
