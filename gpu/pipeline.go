// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"

	"cogentcore.org/trihost/base/errors"
	"cogentcore.org/trihost/gpu/shadercheck"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderPipeline is the [Pipeline] built by [PipelineBuilder]:
// one shader module with a vertex and a fragment entry point,
// no vertex buffers and no bindings, drawing triangle lists into
// a single color target.
type RenderPipeline struct {
	// Name is the name of the shader the pipeline was built from.
	Name string

	format   wgpu.TextureFormat
	module   *wgpu.ShaderModule
	pipeline *wgpu.RenderPipeline
}

func (pl *RenderPipeline) Format() wgpu.TextureFormat { return pl.format }

// Release releases the pipeline and its shader module.
func (pl *RenderPipeline) Release() {
	if pl.pipeline != nil {
		pl.pipeline.Release()
		pl.pipeline = nil
	}
	if pl.module != nil {
		pl.module.Release()
		pl.module = nil
	}
}

// PipelineBuilder is the [PipelineFactory] for the [WebGPU] backend.
// The shader is validated with [shadercheck] first, so that shader
// errors are reported by name instead of aborting in the driver.
type PipelineBuilder struct {
	// Primitive has the primitive assembly settings.
	Primitive wgpu.PrimitiveState

	// Multisample has the multisampling settings.
	Multisample wgpu.MultisampleState
}

// NewPipelineBuilder returns a PipelineBuilder with the defaults
// for drawing a counter-clockwise triangle list without culling.
func NewPipelineBuilder() *PipelineBuilder {
	pb := &PipelineBuilder{}
	pb.Primitive.Topology = wgpu.PrimitiveTopologyTriangleList
	pb.Primitive.FrontFace = wgpu.FrontFaceCCW
	pb.Primitive.CullMode = wgpu.CullModeNone
	pb.Multisample.Count = 1
	pb.Multisample.Mask = 0xFFFFFFFF
	return pb
}

func (pb *PipelineBuilder) Build(dev Device, sh Shader, format wgpu.TextureFormat) (Pipeline, error) {
	res, err := shadercheck.Validate(sh.Name, sh.Source, sh.VertexEntry, sh.FragmentEntry)
	switch {
	case errors.Is(err, shadercheck.ErrUnsupported):
		slog.Warn("gpu: shader could not be fully validated", "shader", sh.Name, "err", err)
	case err != nil:
		return nil, err
	default:
		slog.Debug("gpu: validated shader", "shader", res.Name, "words", res.Words)
	}

	wd := asWGPU[*wgpuDevice](dev).dev
	module, err := wd.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: sh.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: sh.Source,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: creating shader module %s: %w", sh.Name, err)
	}
	rp, err := wd.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: sh.Name,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: sh.VertexEntry,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: sh.FragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive:   pb.Primitive,
		Multisample: pb.Multisample,
	})
	if err != nil {
		module.Release()
		return nil, fmt.Errorf("gpu: creating render pipeline %s: %w", sh.Name, err)
	}
	return &RenderPipeline{Name: sh.Name, format: format, module: module, pipeline: rp}, nil
}
