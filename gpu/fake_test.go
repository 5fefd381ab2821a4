// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"slices"

	"cogentcore.org/trihost/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeGPU is a scripted stand-in for a GPU backend. Every handle it
// hands out is a *fake of some kind, and every call is recorded in calls.
type fakeGPU struct {
	caps Capabilities

	// fail makes the named call return an error.
	fail map[string]error

	// acquire errors are returned by successive CurrentTexture calls,
	// after which acquisition succeeds.
	acquire []error

	calls    []string
	configs  []SurfaceConfig
	passes   []RenderPassDescriptor
	draws    [][4]uint32
	adapter  *AdapterOptions
	device   *DeviceDescriptor
	format   wgpu.TextureFormat
	shader   Shader
	released []string
	live     map[string]int
}

func newFakeGPU() *fakeGPU {
	return &fakeGPU{
		caps: Capabilities{
			Formats:      []wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb},
			PresentModes: []wgpu.PresentMode{wgpu.PresentModeImmediate, wgpu.PresentModeFifo},
			AlphaModes:   []wgpu.CompositeAlphaMode{wgpu.CompositeAlphaModeOpaque, wgpu.CompositeAlphaModeAuto},
		},
		fail: map[string]error{},
		live: map[string]int{},
	}
}

var errFake = errors.New("fake failure")

func (g *fakeGPU) call(name string) error {
	g.calls = append(g.calls, name)
	return g.fail[name]
}

func (g *fakeGPU) handle(kind string) *fake {
	g.live[kind]++
	return &fake{g: g, kind: kind}
}

func (g *fakeGPU) count(name string) int {
	n := 0
	for _, c := range g.calls {
		if c == name {
			n++
		}
	}
	return n
}

// leaked returns the kinds of handles that were created but not released.
func (g *fakeGPU) leaked() []string {
	var l []string
	for k, n := range g.live {
		if n != 0 {
			l = append(l, fmt.Sprintf("%s:%d", k, n))
		}
	}
	slices.Sort(l)
	return l
}

// fake implements every handle interface.
type fake struct {
	g    *fakeGPU
	kind string
}

func (g *fakeGPU) CreateInstance() (Instance, error) {
	if err := g.call("CreateInstance"); err != nil {
		return nil, err
	}
	return g.handle("instance"), nil
}

func (f *fake) Release() {
	f.g.live[f.kind]--
	f.g.released = append(f.g.released, f.kind)
}

func (f *fake) CreateSurface(target SurfaceTarget) (Surface, error) {
	if err := f.g.call("CreateSurface"); err != nil {
		return nil, err
	}
	return f.g.handle("surface"), nil
}

func (f *fake) RequestAdapter(opts *AdapterOptions) (Adapter, error) {
	f.g.adapter = opts
	if err := f.g.call("RequestAdapter"); err != nil {
		return nil, err
	}
	return f.g.handle("adapter"), nil
}

func (f *fake) RequestDevice(desc *DeviceDescriptor) (Device, error) {
	f.g.device = desc
	if err := f.g.call("RequestDevice"); err != nil {
		return nil, err
	}
	return f.g.handle("device"), nil
}

func (f *fake) Queue() Queue {
	f.g.call("Queue")
	return f.g.handle("queue")
}

func (f *fake) CreateCommandEncoder(label string) (CommandEncoder, error) {
	if err := f.g.call("CreateCommandEncoder"); err != nil {
		return nil, err
	}
	return f.g.handle("encoder"), nil
}

func (f *fake) Submit(buf CommandBuffer) {
	f.g.call("Submit")
}

func (f *fake) Capabilities(adapter Adapter) Capabilities {
	f.g.call("Capabilities")
	return f.g.caps
}

func (f *fake) Configure(adapter Adapter, device Device, config *SurfaceConfig) {
	f.g.call("Configure")
	f.g.configs = append(f.g.configs, *config)
}

func (f *fake) CurrentTexture() (Texture, error) {
	f.g.call("CurrentTexture")
	if len(f.g.acquire) > 0 {
		err := f.g.acquire[0]
		f.g.acquire = f.g.acquire[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.g.handle("texture"), nil
}

func (f *fake) Present() {
	f.g.call("Present")
}

func (f *fake) CreateView() (TextureView, error) {
	if err := f.g.call("CreateView"); err != nil {
		return nil, err
	}
	return f.g.handle("view"), nil
}

func (f *fake) BeginRenderPass(desc *RenderPassDescriptor) RenderPass {
	f.g.call("BeginRenderPass")
	f.g.passes = append(f.g.passes, *desc)
	return f.g.handle("pass")
}

func (f *fake) Finish() (CommandBuffer, error) {
	if err := f.g.call("Finish"); err != nil {
		return nil, err
	}
	return f.g.handle("buffer"), nil
}

func (f *fake) SetPipeline(pl Pipeline) {
	f.g.call("SetPipeline")
}

func (f *fake) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	f.g.call("Draw")
	f.g.draws = append(f.g.draws, [4]uint32{vertexCount, instanceCount, firstVertex, firstInstance})
}

func (f *fake) End() error {
	return f.g.call("End")
}

func (f *fake) Format() wgpu.TextureFormat {
	return f.g.format
}

func (g *fakeGPU) Build(dev Device, sh Shader, format wgpu.TextureFormat) (Pipeline, error) {
	g.format = format
	g.shader = sh
	if err := g.call("Build"); err != nil {
		return nil, err
	}
	return g.handle("pipeline"), nil
}

// fakeWindow is a [SurfaceTarget].
type fakeWindow struct {
	closed bool
}

func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return &wgpu.SurfaceDescriptor{} }
func (w *fakeWindow) IsClosed() bool                             { return w.closed }

func newFakeSession(g *fakeGPU, size image.Point, opts ...SessionOption) (*Session, *fakeWindow, error) {
	w := &fakeWindow{}
	s, err := NewSession(g, w, size, g, DefaultShader(), opts...)
	return s, w, err
}
