// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadShader(t *testing.T) {
	sh, err := LoadShader("")
	require.NoError(t, err)
	assert.Equal(t, DefaultShader(), sh)
	assert.Equal(t, "vs_main", sh.VertexEntry)
	assert.Equal(t, "fs_main", sh.FragmentEntry)
	assert.Contains(t, sh.Source, "fn vs_main")

	fn := filepath.Join(t.TempDir(), "custom.wgsl")
	require.NoError(t, os.WriteFile(fn, []byte("// custom"), 0o644))
	sh, err = LoadShader(fn)
	require.NoError(t, err)
	assert.Equal(t, "custom.wgsl", sh.Name)
	assert.Equal(t, "// custom", sh.Source)

	_, err = LoadShader(filepath.Join(t.TempDir(), "missing.wgsl"))
	assert.ErrorContains(t, err, "loading shader")
}

func TestNewPipelineBuilder(t *testing.T) {
	pb := NewPipelineBuilder()
	assert.Equal(t, uint32(1), pb.Multisample.Count)
	assert.Equal(t, uint32(0xFFFFFFFF), pb.Multisample.Mask)
}
