// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheduler

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"cogentcore.org/trihost/base/errors"
	"cogentcore.org/trihost/events"
	"cogentcore.org/trihost/events/key"
	"cogentcore.org/trihost/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWin events.WindowID = 7

type testWindow struct {
	redraws int
}

func (w *testWindow) ID() events.WindowID { return testWin }
func (w *testWindow) RequestRedraw()      { w.redraws++ }

type testSession struct {
	size    image.Point
	resizes []image.Point
}

func (s *testSession) Resize(size image.Point) {
	s.resizes = append(s.resizes, size)
	if size.X > 0 && size.Y > 0 {
		s.size = size
	}
}

func (s *testSession) CurrentSize() image.Point { return s.size }

// testRenderer returns results in order, then Presented.
type testRenderer struct {
	results []gpu.FrameResult
	frames  int
}

func (r *testRenderer) RenderFrame() gpu.FrameResult {
	r.frames++
	if len(r.results) == 0 {
		return gpu.FrameResult{Status: gpu.Presented}
	}
	res := r.results[0]
	r.results = r.results[1:]
	return res
}

// testSource returns its events in order and fails the test if the
// loop asks for more.
type testSource struct {
	t      *testing.T
	events []events.Event
}

func (s *testSource) WaitEvent() events.Event {
	require.NotEmpty(s.t, s.events, "event loop did not exit")
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

type fixture struct {
	win  *testWindow
	sess *testSession
	rend *testRenderer
	out  *bytes.Buffer
	sc   *Scheduler
}

func newFixture() *fixture {
	f := &fixture{
		win:  &testWindow{},
		sess: &testSession{size: image.Point{800, 600}},
		rend: &testRenderer{},
		out:  &bytes.Buffer{},
	}
	f.sc = New(f.win, f.sess, f.rend, f.out)
	return f
}

func TestTickRequestsRedraw(t *testing.T) {
	f := newFixture()
	f.sc.HandleEvent(events.NewTick())
	f.sc.HandleEvent(events.NewTick())
	assert.Equal(t, 2, f.win.redraws)
	assert.Zero(t, f.rend.frames)
	assert.Empty(t, f.sess.resizes)
	assert.Equal(t, Running, f.sc.State())
}

func TestResize(t *testing.T) {
	f := newFixture()
	f.sc.HandleEvent(events.NewResize(testWin, image.Point{1024, 768}))
	f.sc.HandleEvent(events.NewResize(testWin, image.Point{0, 0}))
	assert.Equal(t, []image.Point{{1024, 768}, {0, 0}}, f.sess.resizes)
	assert.Equal(t, image.Point{1024, 768}, f.sess.size)
	assert.Zero(t, f.rend.frames)
}

func TestCloseRequested(t *testing.T) {
	f := newFixture()
	f.sc.HandleEvent(events.NewCloseRequested(testWin))
	assert.Equal(t, Exiting, f.sc.State())
	f.sc.HandleEvent(events.NewCloseRequested(testWin))
	f.sc.HandleEvent(events.NewRedraw(testWin))
	f.sc.HandleEvent(events.NewKey(testWin, key.CodeEscape, false))
	assert.Equal(t, Farewell+"\n", f.out.String())
	assert.Zero(t, f.rend.frames)
	assert.NoError(t, f.sc.Err())
}

func TestCancelKey(t *testing.T) {
	f := newFixture()
	f.sc.HandleEvent(events.NewKey(testWin, key.CodeEscape, true))
	f.sc.HandleEvent(events.NewKey(testWin, key.CodeQ, false))
	assert.Equal(t, Running, f.sc.State())
	assert.Empty(t, f.out.String())

	f.sc.HandleEvent(events.NewKey(testWin, key.CodeEscape, false))
	assert.Equal(t, Exiting, f.sc.State())
	assert.Equal(t, 1, strings.Count(f.out.String(), Farewell))
}

func TestCustomCancelKey(t *testing.T) {
	f := newFixture()
	f.sc.CancelKey = key.CodeQ
	f.sc.HandleEvent(events.NewKey(testWin, key.CodeEscape, false))
	assert.Equal(t, Running, f.sc.State())
	f.sc.HandleEvent(events.NewKey(testWin, key.CodeQ, false))
	assert.Equal(t, Exiting, f.sc.State())
}

func TestRedrawPresented(t *testing.T) {
	f := newFixture()
	f.sc.HandleEvent(events.NewRedraw(testWin))
	assert.Equal(t, 1, f.rend.frames)
	assert.Empty(t, f.sess.resizes)
	assert.Equal(t, Running, f.sc.State())
}

func TestRedrawRecoverable(t *testing.T) {
	f := newFixture()
	f.rend.results = []gpu.FrameResult{{Status: gpu.Recoverable, Err: gpu.ErrSurfaceLost}}
	f.sc.HandleEvent(events.NewRedraw(testWin))
	assert.Equal(t, []image.Point{{800, 600}}, f.sess.resizes)
	assert.Equal(t, Running, f.sc.State())

	f.sc.HandleEvent(events.NewRedraw(testWin))
	assert.Len(t, f.sess.resizes, 1)
	assert.Equal(t, 2, f.rend.frames)
}

func TestRedrawTransient(t *testing.T) {
	f := newFixture()
	f.rend.results = []gpu.FrameResult{
		{Status: gpu.Transient, Err: gpu.ErrSurfaceTimeout},
		{Status: gpu.Transient, Err: gpu.ErrNotConfigured},
	}
	f.sc.HandleEvent(events.NewRedraw(testWin))
	f.sc.HandleEvent(events.NewRedraw(testWin))
	assert.Equal(t, Running, f.sc.State())
	assert.Empty(t, f.sess.resizes)
}

func TestRedrawFatal(t *testing.T) {
	f := newFixture()
	f.rend.results = []gpu.FrameResult{{Status: gpu.Fatal, Err: gpu.ErrOutOfMemory}}
	f.sc.HandleEvent(events.NewRedraw(testWin))
	assert.Equal(t, Exiting, f.sc.State())
	assert.ErrorIs(t, f.sc.Err(), gpu.ErrOutOfMemory)
	assert.Empty(t, f.out.String())

	f.sc.HandleEvent(events.NewRedraw(testWin))
	assert.Equal(t, 1, f.rend.frames)
}

func TestOtherWindowIgnored(t *testing.T) {
	f := newFixture()
	f.sc.HandleEvent(events.NewCloseRequested(testWin + 1))
	f.sc.HandleEvent(events.NewRedraw(testWin + 1))
	f.sc.HandleEvent(events.NewResize(testWin+1, image.Point{10, 10}))
	assert.Equal(t, Running, f.sc.State())
	assert.Zero(t, f.rend.frames)
	assert.Empty(t, f.sess.resizes)
}

func TestListeners(t *testing.T) {
	f := newFixture()
	var seen []events.Types
	f.sc.Listeners.Add(events.RedrawRequested, func(ev events.Event) { seen = append(seen, ev.Type()) })
	f.sc.Listeners.Add(events.Tick, func(ev events.Event) { seen = append(seen, ev.Type()) })
	f.sc.HandleEvent(events.NewTick())
	f.sc.HandleEvent(events.NewRedraw(testWin))
	f.sc.HandleEvent(events.NewRedraw(testWin + 1))
	assert.Equal(t, []events.Types{events.Tick, events.RedrawRequested}, seen)
}

func TestShaderChangedListener(t *testing.T) {
	f := newFixture()
	var paths []string
	f.sc.Listeners.Add(events.ShaderChanged, func(ev events.Event) {
		paths = append(paths, ev.(*events.ShaderChange).Path)
	})
	f.sc.HandleEvent(events.NewShaderChanged("tri.wgsl"))
	assert.Equal(t, []string{"tri.wgsl"}, paths)
	assert.Equal(t, 0, f.rend.frames)
	assert.Equal(t, Running, f.sc.State())
}

func TestRun(t *testing.T) {
	f := newFixture()
	src := &testSource{t: t, events: []events.Event{
		events.NewTick(),
		events.NewRedraw(testWin),
		events.NewResize(testWin, image.Point{640, 480}),
		events.NewRedraw(testWin),
		events.NewKey(testWin, key.CodeEscape, false),
		events.NewRedraw(testWin),
	}}
	err := f.sc.Run(src)
	assert.NoError(t, err)
	assert.Equal(t, 2, f.rend.frames)
	assert.Len(t, src.events, 1)
	assert.Equal(t, Farewell+"\n", f.out.String())
}

func TestRunFatal(t *testing.T) {
	f := newFixture()
	boom := errors.New("boom")
	f.rend.results = []gpu.FrameResult{{Status: gpu.Fatal, Err: boom}}
	src := &testSource{t: t, events: []events.Event{
		events.NewRedraw(testWin),
		events.NewRedraw(testWin),
	}}
	err := f.sc.Run(src)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, f.rend.frames)
	assert.Len(t, src.events, 1)
	assert.Empty(t, f.out.String())
}

func TestStatesString(t *testing.T) {
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "Exiting", Exiting.String())
	assert.Equal(t, "States(5)", States(5).String())
}
