// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
)

// FrameStatus is the outcome of rendering one frame.
type FrameStatus int32

const (
	// Presented means the frame was drawn and presented.
	Presented FrameStatus = iota

	// Recoverable means the surface was lost; reconfiguring it at the
	// current size lets rendering continue.
	Recoverable

	// Fatal means rendering cannot continue.
	Fatal

	// Transient means this frame was skipped; the next one may succeed.
	Transient
)

var frameStatusNames = [...]string{"Presented", "Recoverable", "Fatal", "Transient"}

func (fs FrameStatus) String() string {
	if fs < 0 || int(fs) >= len(frameStatusNames) {
		return fmt.Sprintf("FrameStatus(%d)", int32(fs))
	}
	return frameStatusNames[fs]
}

// FrameResult is the result of [FrameRenderer.RenderFrame].
type FrameResult struct {
	Status FrameStatus

	// Err is the cause of any status other than Presented.
	Err error
}

func (fr FrameResult) String() string {
	if fr.Err == nil {
		return fr.Status.String()
	}
	return fr.Status.String() + ": " + fr.Err.Error()
}

// DefaultClearColor is the color frames are cleared to.
var DefaultClearColor = wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}

// FrameRenderer renders frames into a [Session]: each frame clears
// the surface texture and draws the session pipeline as one triangle.
type FrameRenderer struct {
	// Session is rendered into.
	Session *Session

	// ClearColor is the color the surface texture is cleared to
	// at the start of each frame.
	ClearColor wgpu.Color

	// StatsInterval is how often frames per second are logged.
	// Zero disables logging.
	StatsInterval time.Duration

	frameCount int
	statsStart time.Time
	now        func() time.Time
}

// NewFrameRenderer returns a new FrameRenderer for the session
// with the default clear color and a 10 second stats interval.
func NewFrameRenderer(s *Session) *FrameRenderer {
	return &FrameRenderer{
		Session:       s,
		ClearColor:    DefaultClearColor,
		StatsInterval: 10 * time.Second,
	}
}

// RenderFrame acquires the next surface texture, records one render
// pass that clears it and draws three vertices with the session
// pipeline, submits it and presents it. Acquisition failures are
// classified with [ClassifyAcquireError] and never retried here.
// Failures after acquisition are [Fatal].
func (fr *FrameRenderer) RenderFrame() FrameResult {
	s := fr.Session
	if !s.Configured() {
		return FrameResult{Status: Transient, Err: ErrNotConfigured}
	}
	if t := s.Target(); t != nil && t.IsClosed() {
		return FrameResult{Status: Fatal, Err: ErrWindowClosed}
	}

	tex, err := s.Surface.CurrentTexture()
	if err != nil {
		return FrameResult{Status: ClassifyAcquireError(err), Err: err}
	}
	defer tex.Release()

	view, err := tex.CreateView()
	if err != nil {
		return fatalFrame("creating texture view", err)
	}
	defer view.Release()

	cmd, err := s.Device.CreateCommandEncoder("frame")
	if err != nil {
		return fatalFrame("creating command encoder", err)
	}
	defer cmd.Release()

	rp := cmd.BeginRenderPass(&RenderPassDescriptor{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearColor: fr.ClearColor,
	})
	rp.SetPipeline(s.Pipeline)
	rp.Draw(3, 1, 0, 0)
	err = rp.End()
	rp.Release() // must happen before Finish
	if err != nil {
		return fatalFrame("ending render pass", err)
	}

	buf, err := cmd.Finish()
	if err != nil {
		return fatalFrame("finishing command encoder", err)
	}
	s.Queue.Submit(buf)
	buf.Release()
	s.Surface.Present()
	fr.countFrame()
	return FrameResult{Status: Presented}
}

func fatalFrame(step string, err error) FrameResult {
	return FrameResult{Status: Fatal, Err: fmt.Errorf("gpu: %s: %w", step, err)}
}

// countFrame counts a presented frame and logs the frame rate
// once every StatsInterval.
func (fr *FrameRenderer) countFrame() {
	if fr.StatsInterval <= 0 {
		return
	}
	if fr.now == nil {
		fr.now = time.Now
	}
	now := fr.now()
	if fr.statsStart.IsZero() {
		fr.statsStart = now
	}
	fr.frameCount++
	dur := now.Sub(fr.statsStart)
	if dur >= fr.StatsInterval {
		fps := float64(fr.frameCount) / dur.Seconds()
		slog.Info("frame rate", "fps", fmt.Sprintf("%.1f", fps), "frames", fr.frameCount)
		fr.frameCount = 0
		fr.statsStart = now
	}
}
