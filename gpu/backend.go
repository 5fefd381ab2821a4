// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// The interfaces in this file are the GPU handles that a [Session]
// and [FrameRenderer] operate on. [WebGPU] implements them on top of
// the wgpu-native bindings; tests provide their own implementations.
// Handles created by one backend must only be passed back to the
// same backend.

// Backend creates the API instance, which is the entry point
// to everything else.
type Backend interface {
	// CreateInstance creates an API instance willing to use every
	// backend (Vulkan, Metal, DX12, GL) the host supports.
	CreateInstance() (Instance, error)
}

// Instance creates surfaces and negotiates adapters.
type Instance interface {
	// CreateSurface binds a presentable surface to the given window.
	CreateSurface(target SurfaceTarget) (Surface, error)

	// RequestAdapter negotiates a GPU adapter. This blocks until
	// the driver has answered.
	RequestAdapter(opts *AdapterOptions) (Adapter, error)

	Release()
}

// SurfaceTarget is the window side of a surface. The surface must not
// outlive the window: the window must stay open until the [Session]
// that owns the surface has been released.
type SurfaceTarget interface {
	// SurfaceDescriptor returns the platform descriptor used to create
	// a surface for the window, or nil if the platform has none.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsClosed returns true once the window has been destroyed.
	IsClosed() bool
}

// AdapterOptions are the adapter negotiation preferences.
type AdapterOptions struct {
	// CompatibleSurface is the surface the adapter must be able to present to.
	CompatibleSurface Surface

	// PowerPreference selects between high-performance and low-power GPUs.
	PowerPreference wgpu.PowerPreference

	// ForceFallbackAdapter selects a software (CPU) adapter.
	ForceFallbackAdapter bool
}

// Adapter is one physical or virtual GPU and its capability set.
type Adapter interface {
	// RequestDevice creates the logical device and its queue,
	// with default limits and no optional features.
	RequestDevice(desc *DeviceDescriptor) (Device, error)

	Release()
}

// DeviceDescriptor describes the logical device to create.
type DeviceDescriptor struct {
	// Label is used in driver debug output.
	Label string
}

// Device is the logical GPU connection.
type Device interface {
	// Queue returns the submission queue of the device.
	Queue() Queue

	// CreateCommandEncoder returns a new command recording scope.
	CreateCommandEncoder(label string) (CommandEncoder, error)

	Release()
}

// Queue is the channel through which recorded commands are submitted.
type Queue interface {
	Submit(buf CommandBuffer)
	Release()
}

// Surface is the window-bound target that produces presentable textures.
type Surface interface {
	// Capabilities returns the formats, present modes and alpha modes
	// the surface supports with the given adapter, in preference order.
	Capabilities(adapter Adapter) Capabilities

	// Configure applies the given configuration.
	Configure(adapter Adapter, device Device, config *SurfaceConfig)

	// CurrentTexture acquires the next presentable texture.
	// Errors wrap one of [ErrSurfaceLost], [ErrSurfaceOutdated],
	// [ErrSurfaceTimeout] or [ErrOutOfMemory] where the cause is known.
	CurrentTexture() (Texture, error)

	// Present shows the most recently acquired texture.
	Present()

	Release()
}

// Texture is an acquired surface texture.
type Texture interface {
	CreateView() (TextureView, error)
	Release()
}

// TextureView is a view of a [Texture] usable as a render attachment.
type TextureView interface {
	Release()
}

// CommandEncoder records commands for one submission.
type CommandEncoder interface {
	// BeginRenderPass begins a render pass with a single color attachment.
	BeginRenderPass(desc *RenderPassDescriptor) RenderPass

	// Finish closes the recording scope.
	Finish() (CommandBuffer, error)

	Release()
}

// RenderPassDescriptor describes a render pass with one color attachment.
type RenderPassDescriptor struct {
	// View is the color attachment.
	View TextureView

	// LoadOp is what happens to the attachment at the start of the pass.
	LoadOp wgpu.LoadOp

	// StoreOp is what happens to the attachment at the end of the pass.
	StoreOp wgpu.StoreOp

	// ClearColor is used when LoadOp is [wgpu.LoadOpClear].
	ClearColor wgpu.Color
}

// RenderPass records draw commands into a [CommandEncoder].
type RenderPass interface {
	SetPipeline(pl Pipeline)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End() error
	Release()
}

// CommandBuffer is a finished recording, ready to submit.
type CommandBuffer interface {
	Release()
}

// Pipeline is an immutable compiled render pipeline.
type Pipeline interface {
	// Format is the color target format the pipeline was built for.
	Format() wgpu.TextureFormat

	Release()
}

// PipelineFactory builds the render pipeline for a shader
// and a color target format.
type PipelineFactory interface {
	Build(dev Device, sh Shader, format wgpu.TextureFormat) (Pipeline, error)
}
