// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"cogentcore.org/trihost/base/errors"
	"cogentcore.org/trihost/events"
	"cogentcore.org/trihost/gpu"
	"cogentcore.org/trihost/scheduler"
	"github.com/fsnotify/fsnotify"
)

// ShaderDebounce is how long a shader file must be left alone after
// a write before a reload is requested. Editors often write a file
// in several steps.
var ShaderDebounce = 100 * time.Millisecond

// ShaderWatcher sends an [events.ShaderChanged] event each time the
// shader file is written.
type ShaderWatcher struct {
	// Path is the absolute path of the watched file.
	Path string

	send    func(events.Event)
	watcher *fsnotify.Watcher
	done    chan struct{}

	mu       sync.Mutex
	debounce *time.Timer
	closed   bool
}

// WatchShader starts watching the shader file at path. The directory
// is watched rather than the file, so that editors which replace the
// file on save are seen. send must be safe to call from any goroutine.
func WatchShader(path string, send func(events.Event)) (*ShaderWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("host: watching shader: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("host: watching shader: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("host: watching shader %s: %w", abs, err)
	}
	sw := &ShaderWatcher{Path: abs, send: send, watcher: fw, done: make(chan struct{})}
	go sw.run()
	slog.Debug("host: watching shader", "path", abs)
	return sw, nil
}

func (sw *ShaderWatcher) run() {
	defer close(sw.done)
	for {
		select {
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != sw.Path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			sw.schedule()
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("host: shader watcher", "err", err)
		}
	}
}

// schedule (re)starts the debounce timer.
func (sw *ShaderWatcher) schedule() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.closed {
		return
	}
	if sw.debounce != nil {
		sw.debounce.Stop()
	}
	sw.debounce = time.AfterFunc(ShaderDebounce, sw.fire)
}

func (sw *ShaderWatcher) fire() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.closed {
		return
	}
	sw.send(events.NewShaderChanged(sw.Path))
}

// Close stops watching. No event is sent once Close returns.
// It is safe to call more than once.
func (sw *ShaderWatcher) Close() error {
	sw.mu.Lock()
	if sw.closed {
		sw.mu.Unlock()
		return nil
	}
	sw.closed = true
	if sw.debounce != nil {
		sw.debounce.Stop()
	}
	sw.mu.Unlock()

	err := sw.watcher.Close()
	<-sw.done
	return err
}

// ShaderReplacer is a session whose pipeline can be rebuilt from a
// new shader.
type ShaderReplacer interface {
	ReplaceShader(sh gpu.Shader) error
}

// ShaderReloader returns an [events.ShaderChanged] listener that reads
// the changed file, rebuilds the pipeline of s and asks win for a
// redraw. A shader that fails to load or build is logged and the
// current pipeline stays in use.
func ShaderReloader(s ShaderReplacer, win scheduler.Window) func(events.Event) {
	return func(ev events.Event) {
		sc, ok := ev.(*events.ShaderChange)
		if !ok {
			return
		}
		sh, err := gpu.LoadShader(sc.Path)
		if errors.Log(err) != nil {
			return
		}
		if errors.Log(s.ReplaceShader(sh)) != nil {
			return
		}
		slog.Info("reloaded shader", "shader", sh.Name)
		win.RequestRedraw()
		ev.SetHandled()
	}
}
