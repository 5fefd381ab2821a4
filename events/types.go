// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Types determines the type of window event, and also the
// level at which one can select which events to listen to.
// The host only reacts to the types listed here; everything
// else a window system produces is dropped before it is queued.
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// Resize happens when the framebuffer of the window changes size.
	// The new size is in physical pixels and may be zero when minimized.
	Resize

	// CloseRequested happens when the user asks the window system
	// to close the window, e.g., with the title bar close button.
	CloseRequested

	// KeyDown happens when a key is pressed, and again for each
	// key-repeat while it is held down (with Repeat set).
	KeyDown

	// RedrawRequested happens after [Window.RequestRedraw] once the
	// window system is ready for a new frame. Multiple requests before
	// the event is delivered are coalesced into one.
	RedrawRequested

	// Tick is the periodic wake-up signal sent by the redraw timer.
	// It is not addressed to any window.
	Tick

	// ShaderChanged happens when the shader file being watched is
	// written. It is not addressed to any window.
	ShaderChanged

	typesN
)

var typesNames = [...]string{
	UnknownType:     "UnknownType",
	Resize:          "Resize",
	CloseRequested:  "CloseRequested",
	KeyDown:         "KeyDown",
	RedrawRequested: "RedrawRequested",
	Tick:            "Tick",
	ShaderChanged:   "ShaderChanged",
}

// String returns the name of the event type.
func (tp Types) String() string {
	if tp < 0 || tp >= typesN {
		return "Types(unknown)"
	}
	return typesNames[tp]
}

// TypesValues returns all valid event types.
func TypesValues() []Types {
	vals := make([]Types, typesN)
	for i := range vals {
		vals[i] = Types(i)
	}
	return vals
}
