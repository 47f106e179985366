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
	"sort"

	"github.com/google/gpucmd/gles/gl"
)

// enumSet is a set of enum values valid for one argument.
type enumSet map[gl.Enum]struct{}

func newEnumSet(values ...gl.Enum) enumSet {
	s := enumSet{}
	s.add(values...)
	return s
}

func (s enumSet) add(values ...gl.Enum) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

func (s enumSet) has(v gl.Enum) bool {
	_, ok := s[v]
	return ok
}

// sorted returns the members in ascending order.
func (s enumSet) sorted() []gl.Enum {
	out := make([]gl.Enum, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// formatInfo describes an internal format accepted by the texture upload
// commands.
type formatInfo struct {
	format gl.Enum
	types  []gl.Enum
	// sized formats may only be used by ES3 contexts or with TexStorage.
	sized bool
	// renderable formats may back renderbuffers.
	renderable bool
}

func (f formatInfo) acceptsType(ty gl.Enum) bool {
	for _, t := range f.types {
		if t == ty {
			return true
		}
	}
	return false
}

var textureFormats = map[gl.Enum]formatInfo{
	gl.RGBA:            {format: gl.RGBA, types: []gl.Enum{gl.UNSIGNED_BYTE, gl.UNSIGNED_SHORT_4_4_4_4, gl.UNSIGNED_SHORT_5_5_5_1}},
	gl.RGB:             {format: gl.RGB, types: []gl.Enum{gl.UNSIGNED_BYTE, gl.UNSIGNED_SHORT_5_6_5}},
	gl.LUMINANCE_ALPHA: {format: gl.LUMINANCE_ALPHA, types: []gl.Enum{gl.UNSIGNED_BYTE}},
	gl.LUMINANCE:       {format: gl.LUMINANCE, types: []gl.Enum{gl.UNSIGNED_BYTE}},
	gl.ALPHA:           {format: gl.ALPHA, types: []gl.Enum{gl.UNSIGNED_BYTE}},
	gl.DEPTH_COMPONENT: {format: gl.DEPTH_COMPONENT, types: []gl.Enum{gl.UNSIGNED_SHORT, gl.UNSIGNED_INT}},
	gl.DEPTH_STENCIL:   {format: gl.DEPTH_STENCIL, types: []gl.Enum{gl.UNSIGNED_INT_24_8}},

	gl.RGBA8:              {format: gl.RGBA, types: []gl.Enum{gl.UNSIGNED_BYTE}, sized: true, renderable: true},
	gl.RGB8:               {format: gl.RGB, types: []gl.Enum{gl.UNSIGNED_BYTE}, sized: true, renderable: true},
	gl.R8:                 {format: gl.RED, types: []gl.Enum{gl.UNSIGNED_BYTE}, sized: true, renderable: true},
	gl.RG8:                {format: gl.RG, types: []gl.Enum{gl.UNSIGNED_BYTE}, sized: true, renderable: true},
	gl.RGBA4:              {format: gl.RGBA, types: []gl.Enum{gl.UNSIGNED_BYTE, gl.UNSIGNED_SHORT_4_4_4_4}, sized: true, renderable: true},
	gl.RGB5_A1:            {format: gl.RGBA, types: []gl.Enum{gl.UNSIGNED_BYTE, gl.UNSIGNED_SHORT_5_5_5_1}, sized: true, renderable: true},
	gl.RGB565:             {format: gl.RGB, types: []gl.Enum{gl.UNSIGNED_BYTE, gl.UNSIGNED_SHORT_5_6_5}, sized: true, renderable: true},
	gl.SRGB8_ALPHA8:       {format: gl.RGBA, types: []gl.Enum{gl.UNSIGNED_BYTE}, sized: true, renderable: true},
	gl.RGBA16F:            {format: gl.RGBA, types: []gl.Enum{gl.HALF_FLOAT, gl.FLOAT}, sized: true},
	gl.RGBA32F:            {format: gl.RGBA, types: []gl.Enum{gl.FLOAT}, sized: true},
	gl.DEPTH_COMPONENT16:  {format: gl.DEPTH_COMPONENT, types: []gl.Enum{gl.UNSIGNED_SHORT, gl.UNSIGNED_INT}, sized: true, renderable: true},
	gl.DEPTH_COMPONENT24:  {format: gl.DEPTH_COMPONENT, types: []gl.Enum{gl.UNSIGNED_INT}, sized: true, renderable: true},
	gl.DEPTH_COMPONENT32F: {format: gl.DEPTH_COMPONENT, types: []gl.Enum{gl.FLOAT}, sized: true},
	gl.DEPTH24_STENCIL8:   {format: gl.DEPTH_STENCIL, types: []gl.Enum{gl.UNSIGNED_INT_24_8}, sized: true, renderable: true},
}

// validators holds the enum tables of one context. They depend on the
// context type and the native features.
type validators struct {
	bufferTarget        enumSet
	indexedBufferTarget enumSet
	bufferUsage         enumSet
	capability          enumSet
	textureBindTarget   enumSet
	textureImageTarget  enumSet
	textureFormat       enumSet
	pixelType           enumSet
	textureParameter    enumSet
	samplerParameter    enumSet
	framebufferTarget   enumSet
	attachment          enumSet
	renderbufferFormat  enumSet
	drawMode            enumSet
	indexType           enumSet
	vertexAttribType    enumSet
	blendEquation       enumSet
	srcBlendFactor      enumSet
	dstBlendFactor      enumSet
	compareFunc         enumSet
	face                enumSet
	frontFace           enumSet
	stencilOp           enumSet
	hintTarget          enumSet
	hintMode            enumSet
	pixelStore          enumSet
	queryTarget         enumSet
	readPixelsFormat    enumSet
	readPixelsType      enumSet
	shaderType          enumSet
	programParameter    enumSet
	shaderParameter     enumSet
	resetStatus         enumSet
	blitFilter          enumSet
}

func newValidators(f *Features, l *Limits) *validators {
	v := &validators{
		bufferTarget:        newEnumSet(gl.ARRAY_BUFFER, gl.ELEMENT_ARRAY_BUFFER),
		indexedBufferTarget: newEnumSet(),
		bufferUsage:         newEnumSet(gl.STREAM_DRAW, gl.STATIC_DRAW, gl.DYNAMIC_DRAW),
		capability: newEnumSet(gl.BLEND, gl.CULL_FACE, gl.DEPTH_TEST, gl.DITHER,
			gl.POLYGON_OFFSET_FILL, gl.SAMPLE_ALPHA_TO_COVERAGE, gl.SAMPLE_COVERAGE,
			gl.SCISSOR_TEST, gl.STENCIL_TEST),
		textureBindTarget: newEnumSet(gl.TEXTURE_2D, gl.TEXTURE_CUBE_MAP),
		textureImageTarget: newEnumSet(gl.TEXTURE_2D,
			gl.TEXTURE_CUBE_MAP_POSITIVE_X, gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
			gl.TEXTURE_CUBE_MAP_POSITIVE_Y, gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
			gl.TEXTURE_CUBE_MAP_POSITIVE_Z, gl.TEXTURE_CUBE_MAP_NEGATIVE_Z),
		textureFormat: newEnumSet(gl.ALPHA, gl.LUMINANCE, gl.LUMINANCE_ALPHA, gl.RGB, gl.RGBA),
		pixelType: newEnumSet(gl.UNSIGNED_BYTE, gl.UNSIGNED_SHORT_5_6_5,
			gl.UNSIGNED_SHORT_4_4_4_4, gl.UNSIGNED_SHORT_5_5_5_1),
		textureParameter: newEnumSet(gl.TEXTURE_MIN_FILTER, gl.TEXTURE_MAG_FILTER,
			gl.TEXTURE_WRAP_S, gl.TEXTURE_WRAP_T),
		samplerParameter: newEnumSet(gl.TEXTURE_MIN_FILTER, gl.TEXTURE_MAG_FILTER,
			gl.TEXTURE_WRAP_S, gl.TEXTURE_WRAP_T, gl.TEXTURE_WRAP_R,
			gl.TEXTURE_COMPARE_MODE, gl.TEXTURE_COMPARE_FUNC),
		framebufferTarget:  newEnumSet(gl.FRAMEBUFFER),
		attachment:         newEnumSet(gl.DEPTH_ATTACHMENT, gl.STENCIL_ATTACHMENT),
		renderbufferFormat: newEnumSet(gl.RGBA4, gl.RGB565, gl.RGB5_A1, gl.DEPTH_COMPONENT16, gl.STENCIL_INDEX8),
		drawMode: newEnumSet(gl.POINTS, gl.LINES, gl.LINE_LOOP, gl.LINE_STRIP,
			gl.TRIANGLES, gl.TRIANGLE_STRIP, gl.TRIANGLE_FAN),
		indexType: newEnumSet(gl.UNSIGNED_BYTE, gl.UNSIGNED_SHORT),
		vertexAttribType: newEnumSet(gl.BYTE, gl.UNSIGNED_BYTE, gl.SHORT, gl.UNSIGNED_SHORT,
			gl.FLOAT, gl.FIXED),
		blendEquation: newEnumSet(gl.FUNC_ADD, gl.FUNC_SUBTRACT, gl.FUNC_REVERSE_SUBTRACT),
		srcBlendFactor: newEnumSet(gl.ZERO, gl.ONE, gl.SRC_COLOR, gl.ONE_MINUS_SRC_COLOR,
			gl.DST_COLOR, gl.ONE_MINUS_DST_COLOR, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA,
			gl.DST_ALPHA, gl.ONE_MINUS_DST_ALPHA, gl.CONSTANT_COLOR,
			gl.ONE_MINUS_CONSTANT_COLOR, gl.CONSTANT_ALPHA, gl.ONE_MINUS_CONSTANT_ALPHA,
			gl.SRC_ALPHA_SATURATE),
		dstBlendFactor: newEnumSet(gl.ZERO, gl.ONE, gl.SRC_COLOR, gl.ONE_MINUS_SRC_COLOR,
			gl.DST_COLOR, gl.ONE_MINUS_DST_COLOR, gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA,
			gl.DST_ALPHA, gl.ONE_MINUS_DST_ALPHA, gl.CONSTANT_COLOR,
			gl.ONE_MINUS_CONSTANT_COLOR, gl.CONSTANT_ALPHA, gl.ONE_MINUS_CONSTANT_ALPHA),
		compareFunc: newEnumSet(gl.NEVER, gl.LESS, gl.EQUAL, gl.LEQUAL, gl.GREATER,
			gl.NOTEQUAL, gl.GEQUAL, gl.ALWAYS),
		face:      newEnumSet(gl.FRONT, gl.BACK, gl.FRONT_AND_BACK),
		frontFace: newEnumSet(gl.CW, gl.CCW),
		stencilOp: newEnumSet(gl.KEEP, gl.ZERO, gl.REPLACE, gl.INCR, gl.DECR, gl.INVERT,
			gl.INCR_WRAP, gl.DECR_WRAP),
		hintTarget:       newEnumSet(gl.GENERATE_MIPMAP_HINT),
		hintMode:         newEnumSet(gl.FASTEST, gl.NICEST, gl.DONT_CARE),
		pixelStore:       newEnumSet(gl.PACK_ALIGNMENT, gl.UNPACK_ALIGNMENT),
		queryTarget:      newEnumSet(),
		readPixelsFormat: newEnumSet(gl.ALPHA, gl.RGB, gl.RGBA),
		readPixelsType:   newEnumSet(gl.UNSIGNED_BYTE),
		shaderType:       newEnumSet(gl.VERTEX_SHADER, gl.FRAGMENT_SHADER),
		programParameter: newEnumSet(gl.DELETE_STATUS, gl.LINK_STATUS, gl.VALIDATE_STATUS,
			gl.INFO_LOG_LENGTH, gl.ATTACHED_SHADERS, gl.ACTIVE_ATTRIBUTES,
			gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, gl.ACTIVE_UNIFORMS, gl.ACTIVE_UNIFORM_MAX_LENGTH),
		shaderParameter: newEnumSet(gl.SHADER_TYPE, gl.DELETE_STATUS, gl.COMPILE_STATUS,
			gl.INFO_LOG_LENGTH, gl.SHADER_SOURCE_LENGTH),
		resetStatus: newEnumSet(gl.GUILTY_CONTEXT_RESET, gl.INNOCENT_CONTEXT_RESET, gl.UNKNOWN_CONTEXT_RESET),
		blitFilter:  newEnumSet(gl.NEAREST, gl.LINEAR),
	}
	for i := int32(0); i < l.MaxColorAttachments; i++ {
		v.attachment.add(gl.ColorAttachment(int(i)))
	}
	if f.PackedDepthStencil {
		v.textureFormat.add(gl.DEPTH_STENCIL)
		v.pixelType.add(gl.UNSIGNED_INT_24_8)
		v.renderbufferFormat.add(gl.DEPTH24_STENCIL8)
	}
	if f.ElementIndexUint {
		v.indexType.add(gl.UNSIGNED_INT)
	}
	if f.TimerQuery {
		v.queryTarget.add(gl.TIME_ELAPSED)
	}
	if f.ES3 {
		v.bufferTarget.add(gl.COPY_READ_BUFFER, gl.COPY_WRITE_BUFFER, gl.PIXEL_PACK_BUFFER,
			gl.PIXEL_UNPACK_BUFFER, gl.UNIFORM_BUFFER, gl.TRANSFORM_FEEDBACK_BUFFER)
		v.indexedBufferTarget.add(gl.UNIFORM_BUFFER, gl.TRANSFORM_FEEDBACK_BUFFER)
		v.bufferUsage.add(gl.STREAM_READ, gl.STREAM_COPY, gl.STATIC_READ, gl.STATIC_COPY,
			gl.DYNAMIC_READ, gl.DYNAMIC_COPY)
		v.capability.add(gl.RASTERIZER_DISCARD, gl.PRIMITIVE_RESTART_FIXED_INDEX)
		v.textureBindTarget.add(gl.TEXTURE_3D, gl.TEXTURE_2D_ARRAY)
		v.textureFormat.add(gl.RED, gl.RG, gl.DEPTH_COMPONENT)
		v.pixelType.add(gl.UNSIGNED_SHORT, gl.UNSIGNED_INT, gl.HALF_FLOAT, gl.FLOAT)
		v.textureParameter.add(gl.TEXTURE_WRAP_R, gl.TEXTURE_BASE_LEVEL, gl.TEXTURE_MAX_LEVEL,
			gl.TEXTURE_MIN_LOD, gl.TEXTURE_MAX_LOD, gl.TEXTURE_COMPARE_MODE, gl.TEXTURE_COMPARE_FUNC)
		v.framebufferTarget.add(gl.DRAW_FRAMEBUFFER, gl.READ_FRAMEBUFFER)
		v.attachment.add(gl.DEPTH_STENCIL_ATTACHMENT)
		v.renderbufferFormat.add(gl.RGBA8, gl.RGB8, gl.R8, gl.RG8, gl.SRGB8_ALPHA8,
			gl.DEPTH_COMPONENT24, gl.DEPTH24_STENCIL8)
		v.indexType.add(gl.UNSIGNED_INT)
		v.vertexAttribType.add(gl.INT, gl.UNSIGNED_INT, gl.HALF_FLOAT,
			gl.INT_2_10_10_10_REV, gl.UNSIGNED_INT_2_10_10_10_REV)
		v.blendEquation.add(gl.MIN, gl.MAX)
		v.hintTarget.add(gl.FRAGMENT_SHADER_DERIVATIVE_HINT)
		v.pixelStore.add(gl.PACK_ROW_LENGTH, gl.PACK_SKIP_ROWS, gl.PACK_SKIP_PIXELS,
			gl.UNPACK_ROW_LENGTH, gl.UNPACK_SKIP_ROWS, gl.UNPACK_SKIP_PIXELS,
			gl.UNPACK_IMAGE_HEIGHT, gl.UNPACK_SKIP_IMAGES)
		v.queryTarget.add(gl.ANY_SAMPLES_PASSED, gl.ANY_SAMPLES_PASSED_CONSERVATIVE,
			gl.TRANSFORM_FEEDBACK_PRIMITIVES_WRITTEN)
		v.readPixelsFormat.add(gl.RGBA_INTEGER)
		v.readPixelsType.add(gl.FLOAT, gl.UNSIGNED_INT)
	} else if f.PackedDepthStencil {
		v.attachment.add(gl.DEPTH_STENCIL_ATTACHMENT)
	}
	return v
}

// internalFormatValid returns true if the internal format may be used by
// TexImage2D in this context.
func (d *Decoder) internalFormatValid(internalFormat gl.Enum) (formatInfo, bool) {
	info, ok := textureFormats[internalFormat]
	if !ok || (info.sized && !d.features.ES3) {
		return info, false
	}
	if !d.validators.textureFormat.has(info.format) {
		return info, false
	}
	return info, true
}
