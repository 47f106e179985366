// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gles

import (
	"context"

	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/resources"
)

// TextureUnit is the binding state of one texture unit.
type TextureUnit struct {
	// Bound maps bind targets to the texture bound there.
	Bound   map[gl.Enum]*resources.Texture
	Sampler *resources.Sampler
}

// StencilState is the stencil state of one face.
type StencilState struct {
	Func      gl.Enum
	Ref       int32
	ValueMask uint32
	WriteMask uint32
	Fail      gl.Enum
	ZFail     gl.Enum
	ZPass     gl.Enum
}

// State is the decoder's mirror of the native context state. Outside of
// internal operations that restore it on exit, the device always holds
// exactly these values.
type State struct {
	ActiveUnit uint32
	Units      []TextureUnit

	// Buffers holds the generic buffer bindings. The element array binding
	// lives in the vertex array.
	Buffers        map[gl.Enum]*resources.Buffer
	UniformBuffers []*resources.Buffer
	FeedbackBufs   []*resources.Buffer

	VertexArray        *resources.VertexArray
	DefaultVertexArray *resources.VertexArray
	Generic            []resources.GenericValue

	Program *resources.Program

	// DrawFramebuffer and ReadFramebuffer are nil while the default
	// framebuffer is bound.
	DrawFramebuffer *resources.Framebuffer
	ReadFramebuffer *resources.Framebuffer
	Renderbuffer    *resources.Renderbuffer

	TransformFeedback        *resources.TransformFeedback
	DefaultTransformFeedback *resources.TransformFeedback

	ActiveQueries map[gl.Enum]*resources.Query

	Enabled map[gl.Enum]bool

	BlendColor    [4]float32
	BlendEquation [2]gl.Enum
	// BlendFunc holds srcRGB, dstRGB, srcAlpha, dstAlpha.
	BlendFunc [4]gl.Enum

	ClearColor   [4]float32
	ClearDepth   float32
	ClearStencil int32
	ColorMask    [4]bool
	DepthMask    bool
	// Stencil holds the front and back face state.
	Stencil [2]StencilState

	CullFace       gl.Enum
	FrontFace      gl.Enum
	DepthFunc      gl.Enum
	DepthRange     [2]float32
	LineWidth      float32
	PolygonOffset  [2]float32
	SampleCoverage float32
	SampleInvert   bool
	Hints          map[gl.Enum]gl.Enum
	PixelStore     map[gl.Enum]int32
	Viewport       [4]int32
	Scissor        [4]int32
}

func newState(l *Limits, width, height int32) *State {
	s := &State{
		Units:          make([]TextureUnit, l.MaxTextureUnits),
		Buffers:        map[gl.Enum]*resources.Buffer{},
		UniformBuffers: make([]*resources.Buffer, l.MaxUniformBufferBindings),
		FeedbackBufs:   make([]*resources.Buffer, l.MaxTransformFeedbackBufs),
		Generic:        make([]resources.GenericValue, l.MaxVertexAttribs),
		ActiveQueries:  map[gl.Enum]*resources.Query{},
		Enabled:        map[gl.Enum]bool{gl.DITHER: true},
		BlendEquation:  [2]gl.Enum{gl.FUNC_ADD, gl.FUNC_ADD},
		BlendFunc:      [4]gl.Enum{gl.ONE, gl.ZERO, gl.ONE, gl.ZERO},
		ClearDepth:     1,
		ColorMask:      [4]bool{true, true, true, true},
		DepthMask:      true,
		CullFace:       gl.BACK,
		FrontFace:      gl.CCW,
		DepthFunc:      gl.LESS,
		DepthRange:     [2]float32{0, 1},
		LineWidth:      1,
		SampleCoverage: 1,
		Hints:          map[gl.Enum]gl.Enum{gl.GENERATE_MIPMAP_HINT: gl.DONT_CARE},
		PixelStore: map[gl.Enum]int32{
			gl.PACK_ALIGNMENT:   4,
			gl.UNPACK_ALIGNMENT: 4,
		},
		Viewport: [4]int32{0, 0, width, height},
		Scissor:  [4]int32{0, 0, width, height},
	}
	for i := range s.Units {
		s.Units[i].Bound = map[gl.Enum]*resources.Texture{}
	}
	for i := range s.Stencil {
		s.Stencil[i] = StencilState{
			Func:      gl.ALWAYS,
			ValueMask: 0xffffffff,
			WriteMask: 0xffffffff,
			Fail:      gl.KEEP,
			ZFail:     gl.KEEP,
			ZPass:     gl.KEEP,
		}
	}
	for i := range s.Generic {
		s.Generic[i] = resources.GenericValue{Type: gl.FLOAT, Values: [4]uint32{0, 0, 0, 0x3f800000}}
	}
	return s
}

// BoundTexture returns the texture bound to target on the active unit.
func (s *State) BoundTexture(target gl.Enum) *resources.Texture {
	return s.Units[s.ActiveUnit].Bound[target]
}

// samplerTarget returns the bind target read by a sampler uniform type.
func samplerTarget(ty gl.Enum) gl.Enum {
	switch ty {
	case gl.SAMPLER_CUBE:
		return gl.TEXTURE_CUBE_MAP
	case gl.SAMPLER_3D:
		return gl.TEXTURE_3D
	case gl.SAMPLER_2D_ARRAY:
		return gl.TEXTURE_2D_ARRAY
	case gl.SAMPLER_EXTERNAL_OES:
		return gl.TEXTURE_EXTERNAL_OES
	default:
		return gl.TEXTURE_2D
	}
}

func serviceOf(o resources.Object) uint32 {
	if o == nil {
		return 0
	}
	return o.ServiceID()
}

func bufferService(b *resources.Buffer) uint32 {
	if b == nil {
		return 0
	}
	return b.Service
}

func textureService(t *resources.Texture) uint32 {
	if t == nil {
		return 0
	}
	return t.Service
}

func boolf(v bool) float32 {
	if v {
		return 1
	}
	return 0
}

// framebufferService returns the native framebuffer for a binding slot.
// A nil framebuffer is the default framebuffer.
func (d *Decoder) framebufferService(fb *resources.Framebuffer) uint32 {
	if fb != nil {
		return fb.Service
	}
	if d.offscreen != nil {
		return d.offscreen.fbo
	}
	return 0
}

// drawTarget and readTarget return the native framebuffer targets used
// for the draw and read bindings.
func (d *Decoder) drawTarget() gl.Enum {
	if d.features.ES3 {
		return gl.DRAW_FRAMEBUFFER
	}
	return gl.FRAMEBUFFER
}

func (d *Decoder) readTarget() gl.Enum {
	if d.features.ES3 {
		return gl.READ_FRAMEBUFFER
	}
	return gl.FRAMEBUFFER
}

// restoreClearState pushes the clear related state of the mirror to the
// device.
func (d *Decoder) restoreClearState(ctx context.Context) {
	s := d.state
	d.gl.ClearColor(s.ClearColor[0], s.ClearColor[1], s.ClearColor[2], s.ClearColor[3])
	d.gl.ColorMask(s.ColorMask[0], s.ColorMask[1], s.ColorMask[2], s.ColorMask[3])
	d.gl.ClearStencil(s.ClearStencil)
	d.gl.StencilMaskSeparate(gl.FRONT, s.Stencil[0].WriteMask)
	d.gl.StencilMaskSeparate(gl.BACK, s.Stencil[1].WriteMask)
	d.gl.ClearDepthf(s.ClearDepth)
	d.gl.DepthMask(s.DepthMask)
	d.restoreCapability(gl.SCISSOR_TEST)
}

func (d *Decoder) restoreCapability(c gl.Enum) {
	if d.state.Enabled[c] {
		d.gl.Enable(c)
	} else {
		d.gl.Disable(c)
	}
}

// restoreTextureUnit rebinds every mirrored texture of unit, leaving unit
// active.
func (d *Decoder) restoreTextureUnit(unit uint32) {
	d.gl.ActiveTexture(gl.TextureUnit(int(unit)))
	for _, target := range d.validators.textureBindTarget.sorted() {
		d.gl.BindTexture(target, textureService(d.state.Units[unit].Bound[target]))
	}
}

func (d *Decoder) restoreActiveTexture() {
	d.gl.ActiveTexture(gl.TextureUnit(int(d.state.ActiveUnit)))
}

func (d *Decoder) restoreFramebufferBindings() {
	if d.features.ES3 {
		d.gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, d.framebufferService(d.state.DrawFramebuffer))
		d.gl.BindFramebuffer(gl.READ_FRAMEBUFFER, d.framebufferService(d.state.ReadFramebuffer))
		return
	}
	d.gl.BindFramebuffer(gl.FRAMEBUFFER, d.framebufferService(d.state.DrawFramebuffer))
}

func (d *Decoder) restoreRenderbufferBinding() {
	var id uint32
	if d.state.Renderbuffer != nil {
		id = d.state.Renderbuffer.Service
	}
	d.gl.BindRenderbuffer(gl.RENDERBUFFER, id)
}

func (d *Decoder) restoreBufferBinding(target gl.Enum) {
	if target == gl.ELEMENT_ARRAY_BUFFER {
		d.gl.BindBuffer(target, bufferService(d.state.VertexArray.ElementBuffer))
		return
	}
	d.gl.BindBuffer(target, bufferService(d.state.Buffers[target]))
}

// restoreVertexAttrib pushes the mirrored array state of attribute index.
func (d *Decoder) restoreVertexAttrib(index uint32) {
	a := &d.state.VertexArray.Attribs[index]
	if a.Buffer != nil {
		d.gl.BindBuffer(gl.ARRAY_BUFFER, a.Buffer.Service)
		if a.Integer {
			d.gl.VertexAttribIPointer(index, a.Size, a.Type, a.Stride, a.Offset)
		} else if a.Type != gl.FIXED || d.features.NativeFixed {
			d.gl.VertexAttribPointer(index, a.Size, a.Type, a.Normalized, a.Stride, a.Offset)
		}
	}
	if a.Enabled {
		d.gl.EnableVertexAttribArray(index)
	} else {
		d.gl.DisableVertexAttribArray(index)
	}
	d.restoreBufferBinding(gl.ARRAY_BUFFER)
}

// RestoreState pushes the whole mirror to the device, for example after
// another decoder used the same native context.
func (d *Decoder) RestoreState(ctx context.Context) {
	s := d.state
	for _, c := range d.validators.capability.sorted() {
		d.restoreCapability(c)
	}
	d.gl.BlendColor(s.BlendColor[0], s.BlendColor[1], s.BlendColor[2], s.BlendColor[3])
	d.gl.BlendEquationSeparate(s.BlendEquation[0], s.BlendEquation[1])
	d.gl.BlendFuncSeparate(s.BlendFunc[0], s.BlendFunc[1], s.BlendFunc[2], s.BlendFunc[3])
	d.restoreClearState(ctx)
	for i, face := range []gl.Enum{gl.FRONT, gl.BACK} {
		st := s.Stencil[i]
		d.gl.StencilFuncSeparate(face, st.Func, st.Ref, st.ValueMask)
		d.gl.StencilOpSeparate(face, st.Fail, st.ZFail, st.ZPass)
	}
	d.gl.CullFace(s.CullFace)
	d.gl.FrontFace(s.FrontFace)
	d.gl.DepthFunc(s.DepthFunc)
	d.gl.DepthRangef(s.DepthRange[0], s.DepthRange[1])
	d.gl.LineWidth(s.LineWidth)
	d.gl.PolygonOffset(s.PolygonOffset[0], s.PolygonOffset[1])
	d.gl.SampleCoverage(s.SampleCoverage, s.SampleInvert)
	for target, mode := range s.Hints {
		d.gl.Hint(target, mode)
	}
	for pname, v := range s.PixelStore {
		d.gl.PixelStorei(pname, v)
	}
	d.gl.Viewport(s.Viewport[0], s.Viewport[1], s.Viewport[2], s.Viewport[3])
	d.gl.Scissor(s.Scissor[0], s.Scissor[1], s.Scissor[2], s.Scissor[3])

	for unit := range s.Units {
		d.restoreTextureUnit(uint32(unit))
		if d.features.ES3 {
			d.gl.BindSampler(uint32(unit), serviceOf(samplerObject(s.Units[unit].Sampler)))
		}
	}
	d.restoreActiveTexture()
	if d.features.ES3 {
		d.gl.BindVertexArray(d.vertexArrayService(s.VertexArray))
	}
	for index := range s.VertexArray.Attribs {
		d.restoreVertexAttrib(uint32(index))
	}
	for _, target := range d.validators.bufferTarget.sorted() {
		d.restoreBufferBinding(target)
	}
	d.restoreFramebufferBindings()
	d.restoreRenderbufferBinding()
	d.gl.UseProgram(programService(s.Program))
}

func samplerObject(s *resources.Sampler) resources.Object {
	if s == nil {
		return nil
	}
	return s
}

func programService(p *resources.Program) uint32 {
	if p == nil {
		return 0
	}
	return p.Service
}

func (d *Decoder) vertexArrayService(v *resources.VertexArray) uint32 {
	if v == nil || v == d.state.DefaultVertexArray {
		return 0
	}
	return v.Service
}
