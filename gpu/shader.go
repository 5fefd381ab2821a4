// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed shaders/triangle.wgsl
var triangleWGSL string

// Default entry point names.
const (
	DefaultVertexEntry   = "vs_main"
	DefaultFragmentEntry = "fs_main"
)

// Shader is WGSL source code with its vertex and fragment entry points.
type Shader struct {
	// Name identifies the shader in logs and errors.
	Name string

	// Source is the WGSL code.
	Source string

	// VertexEntry is the name of the vertex stage entry point.
	VertexEntry string

	// FragmentEntry is the name of the fragment stage entry point.
	FragmentEntry string
}

// DefaultShader returns the embedded shader that draws a
// placeholder triangle without vertex buffers.
func DefaultShader() Shader {
	return NewShader("triangle.wgsl", triangleWGSL)
}

// NewShader returns a shader for the given code with the
// default entry point names.
func NewShader(name, source string) Shader {
	return Shader{Name: name, Source: source, VertexEntry: DefaultVertexEntry, FragmentEntry: DefaultFragmentEntry}
}

// LoadShader reads the WGSL file at path. An empty path returns
// [DefaultShader].
func LoadShader(path string) (Shader, error) {
	if path == "" {
		return DefaultShader(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Shader{}, fmt.Errorf("gpu: loading shader: %w", err)
	}
	return NewShader(filepath.Base(path), string(b)), nil
}
