// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/trihost/base/errors"
	"cogentcore.org/trihost/events"
	"cogentcore.org/trihost/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDebounce(t *testing.T, d time.Duration) {
	old := ShaderDebounce
	ShaderDebounce = d
	t.Cleanup(func() { ShaderDebounce = old })
}

func TestWatchShader(t *testing.T) {
	setDebounce(t, 10*time.Millisecond)
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(gpu.DefaultShader().Source), 0644))

	evs := make(chan events.Event, 16)
	sw, err := WatchShader(path, func(ev events.Event) { evs <- ev })
	require.NoError(t, err)
	defer sw.Close()

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, abs, sw.Path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.wgsl"), []byte("x"), 0644))
	assert.Never(t, func() bool { return len(evs) > 0 }, 200*time.Millisecond, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(gpu.DefaultShader().Source), 0644))
	require.Eventually(t, func() bool { return len(evs) > 0 }, 2*time.Second, 10*time.Millisecond)
	ev := <-evs
	assert.Equal(t, events.ShaderChanged, ev.Type())
	assert.Equal(t, abs, ev.(*events.ShaderChange).Path)
}

func TestWatchShaderClose(t *testing.T) {
	setDebounce(t, 10*time.Millisecond)
	path := filepath.Join(t.TempDir(), "tri.wgsl")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	evs := make(chan events.Event, 16)
	sw, err := WatchShader(path, func(ev events.Event) { evs <- ev })
	require.NoError(t, err)
	require.NoError(t, sw.Close())
	assert.NoError(t, sw.Close())

	require.NoError(t, os.WriteFile(path, []byte("y"), 0644))
	assert.Never(t, func() bool { return len(evs) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestWatchShaderMissingDir(t *testing.T) {
	_, err := WatchShader(filepath.Join(t.TempDir(), "missing", "tri.wgsl"), func(events.Event) {})
	assert.ErrorContains(t, err, "watching shader")
}

type testReplacer struct {
	shaders []gpu.Shader
	err     error
}

func (r *testReplacer) ReplaceShader(sh gpu.Shader) error {
	r.shaders = append(r.shaders, sh)
	return r.err
}

type testWindow struct {
	redraws int
}

func (w *testWindow) ID() events.WindowID { return 1 }
func (w *testWindow) RequestRedraw()      { w.redraws++ }

func TestShaderReloader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.wgsl")
	require.NoError(t, os.WriteFile(path, []byte(gpu.DefaultShader().Source), 0644))

	r := &testReplacer{}
	w := &testWindow{}
	reload := ShaderReloader(r, w)

	ev := events.NewShaderChanged(path)
	reload(ev)
	require.Len(t, r.shaders, 1)
	assert.Equal(t, "red.wgsl", r.shaders[0].Name)
	assert.Equal(t, gpu.DefaultVertexEntry, r.shaders[0].VertexEntry)
	assert.Equal(t, 1, w.redraws)
	assert.True(t, ev.IsHandled())

	r.err = errors.New("bad shader")
	ev = events.NewShaderChanged(path)
	reload(ev)
	assert.Len(t, r.shaders, 2)
	assert.Equal(t, 1, w.redraws)
	assert.False(t, ev.IsHandled())

	reload(events.NewShaderChanged(filepath.Join(t.TempDir(), "missing.wgsl")))
	assert.Len(t, r.shaders, 2)
	assert.Equal(t, 1, w.redraws)
}
