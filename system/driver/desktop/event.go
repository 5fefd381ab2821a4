// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd

package desktop

import (
	"image"

	"cogentcore.org/trihost/events"
	"cogentcore.org/trihost/events/key"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// physical key
func (w *Window) keyEvent(gw *glfw.Window, ky glfw.Key, scancode int, action glfw.Action, mod glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}
	w.queue.Send(events.NewKey(w.id, GlfwKeyCode(ky), action == glfw.Repeat))
}

// fbResized is called when the framebuffer size changes, in physical pixels.
// The new size is drawn as soon as possible.
func (w *Window) fbResized(gw *glfw.Window, width, height int) {
	w.queue.Send(events.NewResize(w.id, image.Point{width, height}))
	w.RequestRedraw()
}

func (w *Window) closeRequested(gw *glfw.Window) {
	w.queue.Send(events.NewCloseRequested(w.id))
}

// glfwKeys maps the glfw keys outside the contiguous letter,
// digit and function key ranges.
var glfwKeys = map[glfw.Key]key.Codes{
	glfw.KeyEscape:    key.CodeEscape,
	glfw.KeyEnter:     key.CodeReturnEnter,
	glfw.KeyTab:       key.CodeTab,
	glfw.KeySpace:     key.CodeSpacebar,
	glfw.KeyBackspace: key.CodeBackspace,
	glfw.KeyDelete:    key.CodeDelete,
	glfw.KeyRight:     key.CodeRightArrow,
	glfw.KeyLeft:      key.CodeLeftArrow,
	glfw.KeyDown:      key.CodeDownArrow,
	glfw.KeyUp:        key.CodeUpArrow,
}

// GlfwKeyCode returns the key code for a glfw key,
// or [key.CodeUnknown] for keys without one.
func GlfwKeyCode(k glfw.Key) key.Codes {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return key.CodeA + key.Codes(k-glfw.KeyA)
	case k >= glfw.Key0 && k <= glfw.Key9:
		return key.Code0 + key.Codes(k-glfw.Key0)
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return key.CodeF1 + key.Codes(k-glfw.KeyF1)
	}
	if c, ok := glfwKeys[k]; ok {
		return c
	}
	return key.CodeUnknown
}
