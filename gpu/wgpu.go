// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// WebGPU is the [Backend] implemented on the wgpu-native bindings.
// All of its handles must be used from the main thread.
type WebGPU struct{}

func (WebGPU) CreateInstance() (Instance, error) {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, fmt.Errorf("wgpu: could not create instance")
	}
	return &wgpuInstance{inst}, nil
}

type wgpuInstance struct {
	inst *wgpu.Instance
}

func (wi *wgpuInstance) CreateSurface(target SurfaceTarget) (Surface, error) {
	desc := target.SurfaceDescriptor()
	if desc == nil {
		return nil, ErrNoSurface
	}
	sf := wi.inst.CreateSurface(desc)
	if sf == nil {
		return nil, ErrNoSurface
	}
	return &wgpuSurface{sf}, nil
}

func (wi *wgpuInstance) RequestAdapter(opts *AdapterOptions) (Adapter, error) {
	wo := &wgpu.RequestAdapterOptions{
		PowerPreference:      opts.PowerPreference,
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	}
	if opts.CompatibleSurface != nil {
		wo.CompatibleSurface = asWGPU[*wgpuSurface](opts.CompatibleSurface).sf
	}
	ad, err := wi.inst.RequestAdapter(wo)
	if err != nil {
		return nil, err
	}
	return &wgpuAdapter{ad}, nil
}

func (wi *wgpuInstance) Release() { wi.inst.Release() }

type wgpuAdapter struct {
	ad *wgpu.Adapter
}

func (wa *wgpuAdapter) RequestDevice(desc *DeviceDescriptor) (Device, error) {
	dev, err := wa.ad.RequestDevice(&wgpu.DeviceDescriptor{Label: desc.Label})
	if err != nil {
		return nil, err
	}
	return &wgpuDevice{dev: dev}, nil
}

func (wa *wgpuAdapter) Release() { wa.ad.Release() }

type wgpuDevice struct {
	dev   *wgpu.Device
	queue *wgpuQueue
}

func (wd *wgpuDevice) Queue() Queue {
	if wd.queue == nil {
		wd.queue = &wgpuQueue{wd.dev.GetQueue()}
	}
	return wd.queue
}

func (wd *wgpuDevice) CreateCommandEncoder(label string) (CommandEncoder, error) {
	cmd, err := wd.dev.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &wgpuEncoder{cmd}, nil
}

func (wd *wgpuDevice) Release() { wd.dev.Release() }

type wgpuQueue struct {
	q *wgpu.Queue
}

func (wq *wgpuQueue) Submit(buf CommandBuffer) {
	wq.q.Submit(asWGPU[*wgpuCommandBuffer](buf).buf)
}

func (wq *wgpuQueue) Release() { wq.q.Release() }

type wgpuSurface struct {
	sf *wgpu.Surface
}

func (ws *wgpuSurface) Capabilities(adapter Adapter) Capabilities {
	caps := ws.sf.GetCapabilities(asWGPU[*wgpuAdapter](adapter).ad)
	return Capabilities{
		Formats:      caps.Formats,
		PresentModes: caps.PresentModes,
		AlphaModes:   caps.AlphaModes,
	}
}

func (ws *wgpuSurface) Configure(adapter Adapter, device Device, config *SurfaceConfig) {
	ws.sf.Configure(asWGPU[*wgpuAdapter](adapter).ad, asWGPU[*wgpuDevice](device).dev, &wgpu.SurfaceConfiguration{
		Usage:       config.Usage,
		Format:      config.Format,
		Width:       config.Width,
		Height:      config.Height,
		PresentMode: config.PresentMode,
		AlphaMode:   config.AlphaMode,
	})
}

func (ws *wgpuSurface) CurrentTexture() (Texture, error) {
	tex, err := ws.sf.GetCurrentTexture()
	if err != nil {
		return nil, acquireError(err)
	}
	return &wgpuTexture{tex}, nil
}

func (ws *wgpuSurface) Present() { ws.sf.Present() }

func (ws *wgpuSurface) Release() { ws.sf.Release() }

// acquireError maps the texture acquisition status reported by
// wgpu-native, which only comes through as error text, onto the
// sentinel errors that [ClassifyAcquireError] understands.
// Device loss is matched before surface loss, since both say "lost".
func acquireError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, wgpu.SurfaceGetCurrentTextureStatusDeviceLost.String(), "device is lost", "device lost"):
		return fmt.Errorf("%w: %v", ErrDeviceLost, err)
	case containsAny(msg, wgpu.SurfaceGetCurrentTextureStatusOutOfMemory.String(), "outofmemory", "out of memory"):
		return fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %v", ErrSurfaceLost, err)
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %v", ErrSurfaceOutdated, err)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return fmt.Errorf("%w: %v", ErrSurfaceTimeout, err)
	}
	return fmt.Errorf("gpu: acquiring surface texture: %w", err)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type wgpuTexture struct {
	tex *wgpu.Texture
}

func (wt *wgpuTexture) CreateView() (TextureView, error) {
	view, err := wt.tex.CreateView(nil)
	if err != nil {
		return nil, err
	}
	return &wgpuTextureView{view}, nil
}

func (wt *wgpuTexture) Release() { wt.tex.Release() }

type wgpuTextureView struct {
	view *wgpu.TextureView
}

func (wv *wgpuTextureView) Release() { wv.view.Release() }

type wgpuEncoder struct {
	cmd *wgpu.CommandEncoder
}

func (we *wgpuEncoder) BeginRenderPass(desc *RenderPassDescriptor) RenderPass {
	rp := we.cmd.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       asWGPU[*wgpuTextureView](desc.View).view,
			LoadOp:     desc.LoadOp,
			StoreOp:    desc.StoreOp,
			ClearValue: desc.ClearColor,
		}},
	})
	return &wgpuRenderPass{rp}
}

func (we *wgpuEncoder) Finish() (CommandBuffer, error) {
	buf, err := we.cmd.Finish(nil)
	if err != nil {
		return nil, err
	}
	return &wgpuCommandBuffer{buf}, nil
}

func (we *wgpuEncoder) Release() { we.cmd.Release() }

type wgpuRenderPass struct {
	rp *wgpu.RenderPassEncoder
}

func (wr *wgpuRenderPass) SetPipeline(pl Pipeline) {
	wr.rp.SetPipeline(asWGPU[*RenderPipeline](pl).pipeline)
}

func (wr *wgpuRenderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	wr.rp.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (wr *wgpuRenderPass) End() error {
	return wr.rp.End()
}

func (wr *wgpuRenderPass) Release() { wr.rp.Release() }

type wgpuCommandBuffer struct {
	buf *wgpu.CommandBuffer
}

func (wb *wgpuCommandBuffer) Release() { wb.buf.Release() }

// asWGPU returns the wgpu implementation of a handle. Handles from
// other backends are a programming error.
func asWGPU[T any](h any) T {
	t, ok := h.(T)
	if !ok {
		panic(fmt.Sprintf("gpu: %T is not a WebGPU handle", h))
	}
	return t
}
