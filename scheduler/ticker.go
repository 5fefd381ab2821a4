// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scheduler

import (
	"context"
	"sync"
	"time"
)

// Waker wakes up the event loop. It must be safe to call from
// any goroutine.
type Waker interface {
	Wake()
}

// DefaultTickInterval is the default interval between ticks (10 Hz).
const DefaultTickInterval = 100 * time.Millisecond

// Ticker wakes a [Waker] at a fixed interval from its own goroutine.
// It never touches GPU or window state.
type Ticker struct {
	// Interval is the time between wakes.
	Interval time.Duration

	// Waker is woken on every tick.
	Waker Waker

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewTicker returns a new Ticker for the waker.
// A non-positive interval selects [DefaultTickInterval].
func NewTicker(interval time.Duration, w Waker) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Ticker{Interval: interval, Waker: w}
}

// Start starts the ticker goroutine, which runs until [Ticker.Stop]
// is called or ctx is done. Starting a running ticker does nothing.
func (tk *Ticker) Start(ctx context.Context) {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	if tk.cancel != nil {
		return
	}
	ctx, tk.cancel = context.WithCancel(ctx)
	tk.done = make(chan struct{})
	go tk.run(ctx, tk.done)
}

func (tk *Ticker) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(tk.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			tk.Waker.Wake()
		}
	}
}

// Stop stops the ticker goroutine and waits for it to finish.
// No wakes happen after Stop returns.
func (tk *Ticker) Stop() {
	tk.mu.Lock()
	cancel, done := tk.cancel, tk.done
	tk.cancel, tk.done = nil, nil
	tk.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
