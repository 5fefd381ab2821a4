// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shadercheck validates WGSL shader code before it is handed
// to the GPU driver, so that shader mistakes are reported with the
// shader name and a readable message instead of a driver abort.
package shadercheck

import (
	"fmt"
	"slices"
	"strings"

	"cogentcore.org/trihost/base/errors"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
)

var (
	// ErrInvalid means the shader code does not compile.
	ErrInvalid = errors.New("shadercheck: invalid shader")

	// ErrMissingEntry means a required entry point is not declared
	// for its stage.
	ErrMissingEntry = errors.New("shadercheck: missing entry point")

	// ErrUnsupported means the shader uses a language feature the
	// validator does not implement yet. The shader may still be
	// valid for the driver.
	ErrUnsupported = errors.New("shadercheck: shader feature not supported by validator")
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// Result describes a validated shader.
type Result struct {
	// Name of the shader.
	Name string

	// VertexEntries are the declared vertex entry points.
	VertexEntries []string

	// FragmentEntries are the declared fragment entry points.
	FragmentEntries []string

	// Words is the size of the compiled SPIR-V module in 32 bit words.
	// It is zero if the validator could not compile the shader.
	Words int
}

// compileError wraps a naga error in [ErrUnsupported] or [ErrInvalid].
func compileError(name, stage string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
		return fmt.Errorf("%w: %s: %s: %v", ErrUnsupported, name, stage, err)
	}
	return fmt.Errorf("%w: %s: %s: %v", ErrInvalid, name, stage, err)
}

// lower parses the WGSL source and lowers it to naga IR.
func lower(name, source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, compileError(name, "parse", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, compileError(name, "lower", err)
	}
	return module, nil
}

// stageEntries returns the vertex and fragment entry point names of
// the module, in declaration order.
func stageEntries(module *ir.Module) (vertex, fragment []string) {
	for _, ep := range module.EntryPoints {
		switch ep.Stage {
		case ir.StageVertex:
			vertex = append(vertex, ep.Name)
		case ir.StageFragment:
			fragment = append(fragment, ep.Name)
		}
	}
	return
}

// EntryPoints returns the names of the vertex and fragment entry
// points declared in the WGSL source, in declaration order.
// Declarations inside comments are not entry points.
func EntryPoints(source string) (vertex, fragment []string, err error) {
	module, err := lower("", source)
	if err != nil {
		return nil, nil, err
	}
	vertex, fragment = stageEntries(module)
	return vertex, fragment, nil
}

// Validate compiles the WGSL source with naga and checks that it
// declares the given vertex and fragment entry points. Errors wrap
// [ErrMissingEntry], [ErrInvalid] or [ErrUnsupported]. On
// ErrUnsupported the returned Result is still non-nil, with the entry
// points filled in when the source got as far as naga IR.
func Validate(name, source, vertexEntry, fragmentEntry string) (*Result, error) {
	res := &Result{Name: name}
	module, err := lower(name, source)
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			return res, err
		}
		return nil, err
	}
	res.VertexEntries, res.FragmentEntries = stageEntries(module)
	if !slices.Contains(res.VertexEntries, vertexEntry) {
		return nil, fmt.Errorf("%w: %s: no @vertex fn %s", ErrMissingEntry, name, vertexEntry)
	}
	if !slices.Contains(res.FragmentEntries, fragmentEntry) {
		return nil, fmt.Errorf("%w: %s: no @fragment fn %s", ErrMissingEntry, name, fragmentEntry)
	}

	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, compileError(name, "validate", err)
	}
	if len(verrs) > 0 {
		return nil, compileError(name, "validate", verrs[0])
	}

	code, err := naga.GenerateSPIRV(module, spirv.Options{Version: spirv.Version1_3})
	if err != nil {
		err = compileError(name, "spirv", err)
		if errors.Is(err, ErrUnsupported) {
			return res, err
		}
		return nil, err
	}
	if len(code) < 4 {
		return nil, fmt.Errorf("%w: %s: empty SPIR-V output", ErrInvalid, name)
	}
	magic := uint32(code[0]) | uint32(code[1])<<8 | uint32(code[2])<<16 | uint32(code[3])<<24
	if magic != spirvMagic {
		return nil, fmt.Errorf("%w: %s: bad SPIR-V magic 0x%08X", ErrInvalid, name, magic)
	}
	res.Words = len(code) / 4
	return res, nil
}
