// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the window events that drive the
// rendering host, and a lock-free [Queue] to deliver them
// from window system callbacks to the event loop.
package events

import (
	"fmt"
	"image"
	"time"

	"cogentcore.org/trihost/events/key"
)

// WindowID is a stable identity of a window, used to filter
// events addressed to a particular window.
type WindowID uint64

// NoWindow is the [WindowID] of events that are not addressed
// to any window, such as [Tick].
const NoWindow WindowID = 0

// Event is the interface for all window events.
// Events are passed by pointer so that listeners can mark them handled.
type Event interface {
	fmt.Stringer

	// Type returns the type of event.
	Type() Types

	// Window returns the window the event is addressed to,
	// or [NoWindow].
	Window() WindowID

	// Time returns the time at which the event was generated.
	Time() time.Time

	// IsHandled returns whether this event has already been processed.
	IsHandled() bool

	// SetHandled marks the event as processed, stopping
	// further listeners from being called.
	SetHandled()
}

// Base is the base type for events.
// It is designed to be embedded in all other event types.
type Base struct {

	// Typ is the type of event.
	Typ Types

	// Win is the window this event is addressed to.
	Win WindowID

	// GenTime is the time the event was generated.
	GenTime time.Time

	handled bool
}

// NewBase returns a new [Base] for the given type and window,
// stamped with the current time.
func NewBase(typ Types, win WindowID) Base {
	return Base{Typ: typ, Win: win, GenTime: time.Now()}
}

func (ev *Base) Type() Types      { return ev.Typ }
func (ev *Base) Window() WindowID { return ev.Win }
func (ev *Base) Time() time.Time  { return ev.GenTime }
func (ev *Base) IsHandled() bool  { return ev.handled }
func (ev *Base) SetHandled()      { ev.handled = true }
func (ev *Base) String() string   { return fmt.Sprintf("%v{Win: %d}", ev.Typ, ev.Win) }

// WindowResize reports a new framebuffer size in physical pixels.
type WindowResize struct {
	Base

	// Size is the new size, which can be zero in either dimension.
	Size image.Point
}

// NewResize returns a new [Resize] event.
func NewResize(win WindowID, size image.Point) *WindowResize {
	return &WindowResize{Base: NewBase(Resize, win), Size: size}
}

func (ev *WindowResize) String() string {
	return fmt.Sprintf("%v{Win: %d, Size: %v}", ev.Typ, ev.Win, ev.Size)
}

// WindowClose reports that the user asked to close the window.
type WindowClose struct {
	Base
}

// NewCloseRequested returns a new [CloseRequested] event.
func NewCloseRequested(win WindowID) *WindowClose {
	return &WindowClose{Base: NewBase(CloseRequested, win)}
}

// Key reports a key press.
type Key struct {
	Base

	// Code is the physical key that was pressed.
	Code key.Codes

	// Repeat is true if the press was generated by holding the key down.
	Repeat bool
}

// NewKey returns a new [KeyDown] event.
func NewKey(win WindowID, code key.Codes, repeat bool) *Key {
	return &Key{Base: NewBase(KeyDown, win), Code: code, Repeat: repeat}
}

func (ev *Key) String() string {
	return fmt.Sprintf("%v{Win: %d, Code: %v, Repeat: %v}", ev.Typ, ev.Win, ev.Code, ev.Repeat)
}

// Redraw reports that the window is ready for a new frame.
type Redraw struct {
	Base
}

// NewRedraw returns a new [RedrawRequested] event.
func NewRedraw(win WindowID) *Redraw {
	return &Redraw{Base: NewBase(RedrawRequested, win)}
}

// TimerTick is the periodic wake-up signal.
type TimerTick struct {
	Base
}

// NewTick returns a new [Tick] event, addressed to no window.
func NewTick() *TimerTick {
	return &TimerTick{Base: NewBase(Tick, NoWindow)}
}

// ShaderChange reports that a watched shader file was written.
type ShaderChange struct {
	Base

	// Path is the path of the shader file.
	Path string
}

// NewShaderChanged returns a new [ShaderChanged] event for the
// given file, addressed to no window.
func NewShaderChanged(path string) *ShaderChange {
	return &ShaderChange{Base: NewBase(ShaderChanged, NoWindow), Path: path}
}

func (ev *ShaderChange) String() string {
	return fmt.Sprintf("%v{Path: %s}", ev.Typ, ev.Path)
}
