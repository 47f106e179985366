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

	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/resources"
)

func (d *Decoder) attribIndexValid(ctx context.Context, fn string, index uint32) bool {
	if index >= d.limits.MaxVertexAttribs {
		d.setError(ctx, gl.INVALID_VALUE, fn, "index %d out of range", index)
		return false
	}
	return true
}

func (d *Decoder) handleEnableVertexAttribArray(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	index := args[0]
	if !d.attribIndexValid(ctx, "glEnableVertexAttribArray", index) {
		return cmdbuf.NoError
	}
	d.state.VertexArray.Attribs[index].Enabled = true
	d.gl.EnableVertexAttribArray(index)
	return cmdbuf.NoError
}

func (d *Decoder) handleDisableVertexAttribArray(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	index := args[0]
	if !d.attribIndexValid(ctx, "glDisableVertexAttribArray", index) {
		return cmdbuf.NoError
	}
	d.state.VertexArray.Attribs[index].Enabled = false
	if index != 0 || d.features.NativeAttrib0 {
		d.gl.DisableVertexAttribArray(index)
	}
	return cmdbuf.NoError
}

// checkAttribPointer validates the arguments shared by the pointer calls.
func (d *Decoder) checkAttribPointer(ctx context.Context, fn string, index uint32, size int32, ty gl.Enum, stride int32, offset uint32) bool {
	if !d.attribIndexValid(ctx, fn, index) {
		return false
	}
	if size < 1 || size > 4 {
		d.setError(ctx, gl.INVALID_VALUE, fn, "size %d", size)
		return false
	}
	if (ty == gl.INT_2_10_10_10_REV || ty == gl.UNSIGNED_INT_2_10_10_10_REV) && size != 4 {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "size must be 4 for %v", ty)
		return false
	}
	if stride < 0 || stride > 255 {
		d.setError(ctx, gl.INVALID_VALUE, fn, "stride %d", stride)
		return false
	}
	if d.state.Buffers[gl.ARRAY_BUFFER] == nil && offset != 0 {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "offset != 0 with no buffer bound")
		return false
	}
	if typeSize := resources.TypeSize(ty); typeSize > 1 {
		if offset%typeSize != 0 || uint32(stride)%typeSize != 0 {
			d.setError(ctx, gl.INVALID_OPERATION, fn, "offset or stride not a multiple of the type size")
			return false
		}
	}
	return true
}

func (d *Decoder) handleVertexAttribPointer(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	index, size, ty := args[0], int32(args[1]), gl.Enum(args[2])
	normalized, stride, offset := args[3] != 0, int32(args[4]), args[5]
	if !d.validators.vertexAttribType.has(ty) {
		d.invalidEnum(ctx, "glVertexAttribPointer", ty, "type")
		return cmdbuf.NoError
	}
	if !d.checkAttribPointer(ctx, "glVertexAttribPointer", index, size, ty, stride, offset) {
		return cmdbuf.NoError
	}
	a := &d.state.VertexArray.Attribs[index]
	a.Buffer = d.state.Buffers[gl.ARRAY_BUFFER]
	a.Size, a.Type, a.Normalized, a.Integer = size, ty, normalized, false
	a.Stride, a.Offset = stride, offset
	if ty != gl.FIXED || d.features.NativeFixed {
		d.gl.VertexAttribPointer(index, size, ty, normalized, stride, offset)
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleVertexAttribIPointer(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	index, size, ty := args[0], int32(args[1]), gl.Enum(args[2])
	stride, offset := int32(args[3]), args[4]
	switch ty {
	case gl.BYTE, gl.UNSIGNED_BYTE, gl.SHORT, gl.UNSIGNED_SHORT, gl.INT, gl.UNSIGNED_INT:
	default:
		d.invalidEnum(ctx, "glVertexAttribIPointer", ty, "type")
		return cmdbuf.NoError
	}
	if !d.checkAttribPointer(ctx, "glVertexAttribIPointer", index, size, ty, stride, offset) {
		return cmdbuf.NoError
	}
	a := &d.state.VertexArray.Attribs[index]
	a.Buffer = d.state.Buffers[gl.ARRAY_BUFFER]
	a.Size, a.Type, a.Normalized, a.Integer = size, ty, false, true
	a.Stride, a.Offset = stride, offset
	d.gl.VertexAttribIPointer(index, size, ty, stride, offset)
	return cmdbuf.NoError
}

func (d *Decoder) handleVertexAttribDivisorANGLE(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.Instanced {
		return cmdbuf.UnknownCommand
	}
	index, divisor := args[0], args[1]
	if !d.attribIndexValid(ctx, "glVertexAttribDivisorANGLE", index) {
		return cmdbuf.NoError
	}
	d.state.VertexArray.Attribs[index].Divisor = divisor
	d.gl.VertexAttribDivisor(index, divisor)
	return cmdbuf.NoError
}

func (d *Decoder) handleVertexAttrib4f(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	index := args[0]
	if !d.attribIndexValid(ctx, "glVertexAttrib4f", index) {
		return cmdbuf.NoError
	}
	v := [4]float32{cmdbuf.ToFloat(args[1]), cmdbuf.ToFloat(args[2]), cmdbuf.ToFloat(args[3]), cmdbuf.ToFloat(args[4])}
	d.state.Generic[index] = resources.GenericValue{Type: gl.FLOAT, Values: [4]uint32{args[1], args[2], args[3], args[4]}}
	if index != 0 || d.features.NativeAttrib0 {
		d.gl.VertexAttrib4fv(index, v)
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleVertexAttribI4i(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	index := args[0]
	if !d.attribIndexValid(ctx, "glVertexAttribI4i", index) {
		return cmdbuf.NoError
	}
	d.state.Generic[index] = resources.GenericValue{Type: gl.INT, Values: [4]uint32{args[1], args[2], args[3], args[4]}}
	d.gl.VertexAttribI4iv(index, [4]int32{int32(args[1]), int32(args[2]), int32(args[3]), int32(args[4])})
	return cmdbuf.NoError
}

func (d *Decoder) handleVertexAttribI4ui(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	index := args[0]
	if !d.attribIndexValid(ctx, "glVertexAttribI4ui", index) {
		return cmdbuf.NoError
	}
	v := [4]uint32{args[1], args[2], args[3], args[4]}
	d.state.Generic[index] = resources.GenericValue{Type: gl.UNSIGNED_INT, Values: v}
	d.gl.VertexAttribI4uiv(index, v)
	return cmdbuf.NoError
}
