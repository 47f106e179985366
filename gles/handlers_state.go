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
	"math"

	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/memory"
	"github.com/google/gpucmd/resources"
)

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func (d *Decoder) handleEnable(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	return d.setCapability(ctx, "glEnable", gl.Enum(args[0]), true)
}

func (d *Decoder) handleDisable(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	return d.setCapability(ctx, "glDisable", gl.Enum(args[0]), false)
}

func (d *Decoder) setCapability(ctx context.Context, fn string, c gl.Enum, enabled bool) cmdbuf.Error {
	if !d.validators.capability.has(c) {
		d.invalidEnum(ctx, fn, c, "cap")
		return cmdbuf.NoError
	}
	if d.state.Enabled[c] == enabled {
		return cmdbuf.NoError
	}
	d.state.Enabled[c] = enabled
	d.restoreCapability(c)
	return cmdbuf.NoError
}

func (d *Decoder) handleBlendColor(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	c := [4]float32{cmdbuf.ToFloat(args[0]), cmdbuf.ToFloat(args[1]), cmdbuf.ToFloat(args[2]), cmdbuf.ToFloat(args[3])}
	d.gl.BlendColor(c[0], c[1], c[2], c[3])
	d.state.BlendColor = c
	return cmdbuf.NoError
}

func (d *Decoder) handleBlendEquationSeparate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	rgb, alpha := gl.Enum(args[0]), gl.Enum(args[1])
	if !d.validators.blendEquation.has(rgb) {
		d.invalidEnum(ctx, "glBlendEquationSeparate", rgb, "modeRGB")
		return cmdbuf.NoError
	}
	if !d.validators.blendEquation.has(alpha) {
		d.invalidEnum(ctx, "glBlendEquationSeparate", alpha, "modeAlpha")
		return cmdbuf.NoError
	}
	d.gl.BlendEquationSeparate(rgb, alpha)
	d.state.BlendEquation = [2]gl.Enum{rgb, alpha}
	return cmdbuf.NoError
}

func (d *Decoder) handleBlendFuncSeparate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	f := [4]gl.Enum{gl.Enum(args[0]), gl.Enum(args[1]), gl.Enum(args[2]), gl.Enum(args[3])}
	names := [4]string{"srcRGB", "dstRGB", "srcAlpha", "dstAlpha"}
	for i, v := range f {
		valid := d.validators.srcBlendFactor
		if i%2 == 1 {
			valid = d.validators.dstBlendFactor
		}
		if !valid.has(v) {
			d.invalidEnum(ctx, "glBlendFuncSeparate", v, names[i])
			return cmdbuf.NoError
		}
	}
	d.gl.BlendFuncSeparate(f[0], f[1], f[2], f[3])
	d.state.BlendFunc = f
	return cmdbuf.NoError
}

func (d *Decoder) handleClearColor(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	c := [4]float32{cmdbuf.ToFloat(args[0]), cmdbuf.ToFloat(args[1]), cmdbuf.ToFloat(args[2]), cmdbuf.ToFloat(args[3])}
	d.gl.ClearColor(c[0], c[1], c[2], c[3])
	d.state.ClearColor = c
	return cmdbuf.NoError
}

func (d *Decoder) handleClearDepthf(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	v := clamp01(cmdbuf.ToFloat(args[0]))
	d.gl.ClearDepthf(v)
	d.state.ClearDepth = v
	return cmdbuf.NoError
}

func (d *Decoder) handleClearStencil(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	v := int32(args[0])
	d.gl.ClearStencil(v)
	d.state.ClearStencil = v
	return cmdbuf.NoError
}

func (d *Decoder) handleColorMask(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	m := [4]bool{args[0] != 0, args[1] != 0, args[2] != 0, args[3] != 0}
	d.gl.ColorMask(m[0], m[1], m[2], m[3])
	d.state.ColorMask = m
	return cmdbuf.NoError
}

func (d *Decoder) handleDepthMask(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	v := args[0] != 0
	d.gl.DepthMask(v)
	d.state.DepthMask = v
	return cmdbuf.NoError
}

func (d *Decoder) handleCullFace(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	mode := gl.Enum(args[0])
	if !d.validators.face.has(mode) {
		d.invalidEnum(ctx, "glCullFace", mode, "mode")
		return cmdbuf.NoError
	}
	d.gl.CullFace(mode)
	d.state.CullFace = mode
	return cmdbuf.NoError
}

func (d *Decoder) handleFrontFace(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	mode := gl.Enum(args[0])
	if !d.validators.frontFace.has(mode) {
		d.invalidEnum(ctx, "glFrontFace", mode, "mode")
		return cmdbuf.NoError
	}
	d.gl.FrontFace(mode)
	d.state.FrontFace = mode
	return cmdbuf.NoError
}

func (d *Decoder) handleDepthFunc(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	fn := gl.Enum(args[0])
	if !d.validators.compareFunc.has(fn) {
		d.invalidEnum(ctx, "glDepthFunc", fn, "func")
		return cmdbuf.NoError
	}
	d.gl.DepthFunc(fn)
	d.state.DepthFunc = fn
	return cmdbuf.NoError
}

func (d *Decoder) handleDepthRangef(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	near, far := clamp01(cmdbuf.ToFloat(args[0])), clamp01(cmdbuf.ToFloat(args[1]))
	d.gl.DepthRangef(near, far)
	d.state.DepthRange = [2]float32{near, far}
	return cmdbuf.NoError
}

func (d *Decoder) handleHint(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, mode := gl.Enum(args[0]), gl.Enum(args[1])
	if !d.validators.hintTarget.has(target) {
		d.invalidEnum(ctx, "glHint", target, "target")
		return cmdbuf.NoError
	}
	if !d.validators.hintMode.has(mode) {
		d.invalidEnum(ctx, "glHint", mode, "mode")
		return cmdbuf.NoError
	}
	d.gl.Hint(target, mode)
	d.state.Hints[target] = mode
	return cmdbuf.NoError
}

func (d *Decoder) handleLineWidth(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	w := cmdbuf.ToFloat(args[0])
	if w <= 0 || math.IsNaN(float64(w)) {
		d.setError(ctx, gl.INVALID_VALUE, "glLineWidth", "width out of range")
		return cmdbuf.NoError
	}
	d.gl.LineWidth(w)
	d.state.LineWidth = w
	return cmdbuf.NoError
}

func (d *Decoder) handlePixelStorei(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	pname, param := gl.Enum(args[0]), int32(args[1])
	if !d.validators.pixelStore.has(pname) {
		d.invalidEnum(ctx, "glPixelStorei", pname, "pname")
		return cmdbuf.NoError
	}
	switch pname {
	case gl.PACK_ALIGNMENT, gl.UNPACK_ALIGNMENT:
		if param != 1 && param != 2 && param != 4 && param != 8 {
			d.setError(ctx, gl.INVALID_VALUE, "glPixelStorei", "alignment %d", param)
			return cmdbuf.NoError
		}
	default:
		if param < 0 {
			d.setError(ctx, gl.INVALID_VALUE, "glPixelStorei", "%v < 0", pname)
			return cmdbuf.NoError
		}
	}
	d.gl.PixelStorei(pname, param)
	d.state.PixelStore[pname] = param
	return cmdbuf.NoError
}

func (d *Decoder) handlePolygonOffset(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	factor, units := cmdbuf.ToFloat(args[0]), cmdbuf.ToFloat(args[1])
	d.gl.PolygonOffset(factor, units)
	d.state.PolygonOffset = [2]float32{factor, units}
	return cmdbuf.NoError
}

func (d *Decoder) handleSampleCoverage(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	v, invert := clamp01(cmdbuf.ToFloat(args[0])), args[1] != 0
	d.gl.SampleCoverage(v, invert)
	d.state.SampleCoverage, d.state.SampleInvert = v, invert
	return cmdbuf.NoError
}

func (d *Decoder) handleScissor(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	x, y, w, h := int32(args[0]), int32(args[1]), int32(args[2]), int32(args[3])
	if w < 0 || h < 0 {
		d.setError(ctx, gl.INVALID_VALUE, "glScissor", "negative size %dx%d", w, h)
		return cmdbuf.NoError
	}
	d.gl.Scissor(x, y, w, h)
	d.state.Scissor = [4]int32{x, y, w, h}
	return cmdbuf.NoError
}

func (d *Decoder) handleViewport(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	x, y, w, h := int32(args[0]), int32(args[1]), int32(args[2]), int32(args[3])
	if w < 0 || h < 0 {
		d.setError(ctx, gl.INVALID_VALUE, "glViewport", "negative size %dx%d", w, h)
		return cmdbuf.NoError
	}
	if max := d.limits.MaxViewport; max[0] > 0 && max[1] > 0 {
		if w > max[0] {
			w = max[0]
		}
		if h > max[1] {
			h = max[1]
		}
	}
	d.gl.Viewport(x, y, w, h)
	d.state.Viewport = [4]int32{x, y, w, h}
	return cmdbuf.NoError
}

// faces returns the stencil state indices covered by face.
func faces(face gl.Enum) []int {
	switch face {
	case gl.FRONT:
		return []int{0}
	case gl.BACK:
		return []int{1}
	}
	return []int{0, 1}
}

func (d *Decoder) handleStencilFuncSeparate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	face, fn, ref, mask := gl.Enum(args[0]), gl.Enum(args[1]), int32(args[2]), args[3]
	if !d.validators.face.has(face) {
		d.invalidEnum(ctx, "glStencilFuncSeparate", face, "face")
		return cmdbuf.NoError
	}
	if !d.validators.compareFunc.has(fn) {
		d.invalidEnum(ctx, "glStencilFuncSeparate", fn, "func")
		return cmdbuf.NoError
	}
	d.gl.StencilFuncSeparate(face, fn, ref, mask)
	for _, i := range faces(face) {
		s := &d.state.Stencil[i]
		s.Func, s.Ref, s.ValueMask = fn, ref, mask
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleStencilMaskSeparate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	face, mask := gl.Enum(args[0]), args[1]
	if !d.validators.face.has(face) {
		d.invalidEnum(ctx, "glStencilMaskSeparate", face, "face")
		return cmdbuf.NoError
	}
	d.gl.StencilMaskSeparate(face, mask)
	for _, i := range faces(face) {
		d.state.Stencil[i].WriteMask = mask
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleStencilOpSeparate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	face := gl.Enum(args[0])
	ops := [3]gl.Enum{gl.Enum(args[1]), gl.Enum(args[2]), gl.Enum(args[3])}
	if !d.validators.face.has(face) {
		d.invalidEnum(ctx, "glStencilOpSeparate", face, "face")
		return cmdbuf.NoError
	}
	for i, op := range ops {
		if !d.validators.stencilOp.has(op) {
			d.invalidEnum(ctx, "glStencilOpSeparate", op, [3]string{"fail", "zfail", "zpass"}[i])
			return cmdbuf.NoError
		}
	}
	d.gl.StencilOpSeparate(face, ops[0], ops[1], ops[2])
	for _, i := range faces(face) {
		s := &d.state.Stencil[i]
		s.Fail, s.ZFail, s.ZPass = ops[0], ops[1], ops[2]
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleGetError(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	b, err := d.resolveResult(int32(args[0]), args[1], cmdbuf.WordSize)
	if err != cmdbuf.NoError {
		return err
	}
	memory.PutUint32(b, 0, uint32(d.GetError(ctx)))
	return cmdbuf.NoError
}

// clientID returns the client id of o in ns, or 0.
func clientID[T resources.Object](ns *resources.Namespace[T], o T, present bool) uint32 {
	if !present {
		return 0
	}
	if id, ok := ns.ClientID(o.ServiceID()); ok {
		return id
	}
	var found uint32
	ns.Each(func(client uint32, obj T) {
		if resources.Object(obj) == resources.Object(o) {
			found = client
		}
	})
	return found
}

// getValues answers the state queries from the mirror and the limits.
func (d *Decoder) getValues(pname gl.Enum) ([]uint32, bool) {
	s := d.state
	i := func(v ...int32) []uint32 {
		out := make([]uint32, len(v))
		for j, x := range v {
			out[j] = uint32(x)
		}
		return out
	}
	b := func(v ...bool) []uint32 {
		out := make([]uint32, len(v))
		for j, x := range v {
			out[j] = cmdbuf.Bool(x)
		}
		return out
	}
	if d.validators.capability.has(pname) {
		return b(s.Enabled[pname]), true
	}
	switch pname {
	case gl.ACTIVE_TEXTURE:
		return []uint32{uint32(gl.TextureUnit(int(s.ActiveUnit)))}, true
	case gl.ARRAY_BUFFER_BINDING:
		buf := s.Buffers[gl.ARRAY_BUFFER]
		return []uint32{clientID(d.group.Buffers, buf, buf != nil)}, true
	case gl.ELEMENT_ARRAY_BUFFER_BINDING:
		buf := s.VertexArray.ElementBuffer
		return []uint32{clientID(d.group.Buffers, buf, buf != nil)}, true
	case gl.FRAMEBUFFER_BINDING:
		f := s.DrawFramebuffer
		return []uint32{clientID(d.framebuffers, f, f != nil)}, true
	case gl.READ_FRAMEBUFFER_BINDING:
		f := s.ReadFramebuffer
		return []uint32{clientID(d.framebuffers, f, f != nil)}, true
	case gl.RENDERBUFFER_BINDING:
		r := s.Renderbuffer
		return []uint32{clientID(d.group.Renderbuffers, r, r != nil)}, true
	case gl.TEXTURE_BINDING_2D:
		t := s.BoundTexture(gl.TEXTURE_2D)
		return []uint32{clientID(d.group.Textures, t, t != nil)}, true
	case gl.TEXTURE_BINDING_CUBE_MAP:
		t := s.BoundTexture(gl.TEXTURE_CUBE_MAP)
		return []uint32{clientID(d.group.Textures, t, t != nil)}, true
	case gl.CURRENT_PROGRAM:
		p := s.Program
		return []uint32{clientID(d.group.Programs, p, p != nil && !p.DeletePending)}, true
	case gl.VERTEX_ARRAY_BINDING:
		v := s.VertexArray
		return []uint32{clientID(d.vertexArrays, v, v != s.DefaultVertexArray)}, true
	case gl.VIEWPORT:
		return i(s.Viewport[:]...), true
	case gl.SCISSOR_BOX:
		return i(s.Scissor[:]...), true
	case gl.COLOR_WRITEMASK:
		return b(s.ColorMask[:]...), true
	case gl.DEPTH_WRITEMASK:
		return b(s.DepthMask), true
	case gl.CULL_FACE_MODE:
		return []uint32{uint32(s.CullFace)}, true
	case gl.FRONT_FACE:
		return []uint32{uint32(s.FrontFace)}, true
	case gl.DEPTH_FUNC:
		return []uint32{uint32(s.DepthFunc)}, true
	case gl.STENCIL_CLEAR_VALUE:
		return i(s.ClearStencil), true
	case gl.STENCIL_WRITEMASK:
		return []uint32{s.Stencil[0].WriteMask}, true
	case gl.STENCIL_BACK_WRITEMASK:
		return []uint32{s.Stencil[1].WriteMask}, true
	case gl.GENERATE_MIPMAP_HINT:
		return []uint32{uint32(s.Hints[pname])}, true
	case gl.MAX_TEXTURE_SIZE:
		return i(d.limits.MaxTextureSize), true
	case gl.MAX_CUBE_MAP_TEXTURE_SIZE:
		return i(d.limits.MaxCubeMapSize), true
	case gl.MAX_RENDERBUFFER_SIZE:
		return i(d.limits.MaxRenderbufferSize), true
	case gl.MAX_VERTEX_ATTRIBS:
		return []uint32{d.limits.MaxVertexAttribs}, true
	case gl.MAX_TEXTURE_IMAGE_UNITS, gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS:
		return []uint32{d.limits.MaxTextureUnits}, true
	case gl.MAX_VIEWPORT_DIMS:
		return i(d.limits.MaxViewport[:]...), true
	case gl.MAX_DRAW_BUFFERS:
		return i(d.limits.MaxDrawBuffers), true
	case gl.MAX_COLOR_ATTACHMENTS:
		return i(d.limits.MaxColorAttachments), true
	}
	if v, ok := s.PixelStore[pname]; ok || d.validators.pixelStore.has(pname) {
		return i(v), true
	}
	if d.features.ES3 {
		switch pname {
		case gl.MAX_SAMPLES:
			return i(d.limits.MaxSamples), true
		case gl.MAX_UNIFORM_BUFFER_BINDINGS:
			return []uint32{d.limits.MaxUniformBufferBindings}, true
		}
	}
	return nil, false
}

func (d *Decoder) handleGetIntegerv(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	return d.getv(ctx, "glGetIntegerv", args, false)
}

func (d *Decoder) handleGetBooleanv(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	return d.getv(ctx, "glGetBooleanv", args, true)
}

func (d *Decoder) getv(ctx context.Context, fn string, args []uint32, booleans bool) cmdbuf.Error {
	pname, shmID, shmOffset := gl.Enum(args[0]), int32(args[1]), args[2]
	values, ok := d.getValues(pname)
	count := uint32(len(values))
	if !ok {
		count = 0
	}
	result, err := d.sizedResult(shmID, shmOffset, count)
	if err != cmdbuf.NoError {
		return err
	}
	if !ok {
		d.invalidEnum(ctx, fn, pname, "pname")
		return cmdbuf.NoError
	}
	if booleans {
		for j, v := range values {
			values[j] = cmdbuf.Bool(v != 0)
		}
	}
	result.set(values)
	return cmdbuf.NoError
}
