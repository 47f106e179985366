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
	"github.com/google/gpucmd/core/math/u32"
	"github.com/google/gpucmd/driver"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/memory"
	"github.com/google/gpucmd/resources"
)

// maxSimulatedBytes bounds the scratch data uploaded for one draw.
const maxSimulatedBytes = 64 << 20

// scratchBuffer is a native buffer used to feed simulated vertex arrays.
// It grows but never shrinks.
type scratchBuffer struct {
	service uint32
	size    uint32
}

// upload leaves the buffer bound to ARRAY_BUFFER holding data.
func (s *scratchBuffer) upload(g driver.GL, data []byte) {
	if s.service == 0 {
		s.service = g.GenBuffers(1)[0]
	}
	g.BindBuffer(gl.ARRAY_BUFFER, s.service)
	if uint32(len(data)) > s.size {
		g.BufferData(gl.ARRAY_BUFFER, len(data), data, gl.DYNAMIC_DRAW)
		s.size = uint32(len(data))
		return
	}
	g.BufferSubData(gl.ARRAY_BUFFER, 0, data)
}

func (s *scratchBuffer) release(g driver.GL) {
	if s.service != 0 {
		g.DeleteBuffers([]uint32{s.service})
	}
	*s = scratchBuffer{}
}

// attribBaseType returns the generic type (FLOAT, INT or UNSIGNED_INT) a
// shader input of type ty reads.
func attribBaseType(ty gl.Enum) gl.Enum {
	switch ty {
	case gl.INT, gl.INT_VEC2, gl.INT_VEC3, gl.INT_VEC4:
		return gl.INT
	case gl.UNSIGNED_INT, gl.UNSIGNED_INT_VEC2, gl.UNSIGNED_INT_VEC3, gl.UNSIGNED_INT_VEC4:
		return gl.UNSIGNED_INT
	}
	return gl.FLOAT
}

// arrayBaseType returns the generic type an enabled array supplies.
func arrayBaseType(a *resources.VertexAttrib) gl.Enum {
	if !a.Integer {
		return gl.FLOAT
	}
	switch a.Type {
	case gl.UNSIGNED_BYTE, gl.UNSIGNED_SHORT, gl.UNSIGNED_INT:
		return gl.UNSIGNED_INT
	}
	return gl.INT
}

// lastElement returns the last element of a read for a draw touching
// vertices up to max with primcount instances.
func lastElement(a *resources.VertexAttrib, max uint32, primcount int32) uint32 {
	if a.Divisor == 0 {
		return max
	}
	return uint32(primcount-1) / a.Divisor
}

// feedbackLoop returns true if a texture sampled by p is a color
// attachment of the draw framebuffer.
func (d *Decoder) feedbackLoop(p *resources.Program) bool {
	fb := d.state.DrawFramebuffer
	if fb == nil || p == nil {
		return false
	}
	for unit, ty := range p.SamplerUnits() {
		if int(unit) >= len(d.state.Units) {
			continue
		}
		if t := d.state.Units[unit].Bound[samplerTarget(ty)]; t != nil && fb.HasColorTexture(t) {
			return true
		}
	}
	return false
}

// prepareDraw runs the checks shared by every draw that do not depend on
// the vertex range. It returns false if the draw must not happen.
func (d *Decoder) prepareDraw(ctx context.Context, fn string, count, primcount int32) bool {
	if !d.checkFramebufferValid(ctx, d.state.DrawFramebuffer, d.drawTarget(), gl.INVALID_FRAMEBUFFER_OPERATION, fn) {
		return false
	}
	p := d.state.Program
	if d.feedbackLoop(p) {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "source and destination textures of the draw are the same")
		return false
	}
	if count == 0 || primcount == 0 {
		d.renderWarning(ctx, fn, "render count or primcount is 0")
		return false
	}
	if p == nil {
		d.renderWarning(ctx, fn, "no program in use")
		return false
	}
	if !p.Linked {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "program not linked")
		return false
	}
	return true
}

// checkVertexAttribs checks every input of the current program against
// the array or generic value feeding it.
func (d *Decoder) checkVertexAttribs(ctx context.Context, fn string, max uint32, primcount int32) bool {
	va := d.state.VertexArray
	for _, in := range d.state.Program.Attribs {
		if in.Location < 0 || int(in.Location) >= len(va.Attribs) {
			continue
		}
		want := attribBaseType(in.Type)
		a := &va.Attribs[in.Location]
		if !a.Enabled {
			if d.state.Generic[in.Location].Type != want {
				d.setError(ctx, gl.INVALID_OPERATION, fn, "current value of attribute %s has the wrong type", in.Name)
				return false
			}
			continue
		}
		if a.Buffer == nil {
			d.setError(ctx, gl.INVALID_OPERATION, fn, "attribute %s enabled without a buffer", in.Name)
			return false
		}
		if arrayBaseType(a) != want {
			d.setError(ctx, gl.INVALID_OPERATION, fn, "array of attribute %s has the wrong type", in.Name)
			return false
		}
		if !a.CanAccess(lastElement(a, max, primcount)) {
			d.setError(ctx, gl.INVALID_OPERATION, fn, "attempt to access out of range vertices in attribute %d", in.Location)
			return false
		}
	}
	return true
}

// simulateAttrib0 feeds attribute 0 from its current value when the native
// context cannot draw with it disabled. It returns false after recording
// an error.
func (d *Decoder) simulateAttrib0(ctx context.Context, fn string, max uint32) (simulated, ok bool) {
	if d.features.NativeAttrib0 || d.state.VertexArray.Attribs[0].Enabled {
		return false, true
	}
	vertices, ok := u32.Add(max, 1)
	if !ok {
		d.setError(ctx, gl.OUT_OF_MEMORY, fn, "too many vertices")
		return false, false
	}
	size, ok := u32.Mul(vertices, 16)
	if !ok || size > maxSimulatedBytes {
		d.setError(ctx, gl.OUT_OF_MEMORY, fn, "simulating attribute 0 needs too much memory")
		return false, false
	}
	g := d.state.Generic[0]
	data := make([]byte, size)
	for v := 0; v < int(vertices); v++ {
		for i, w := range g.Values {
			memory.PutUint32(data, v*16+i*4, w)
		}
	}
	d.attrib0.upload(d.gl, data)
	if g.Type == gl.FLOAT {
		d.gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 0, 0)
	} else {
		d.gl.VertexAttribIPointer(0, 4, g.Type, 0, 0)
	}
	d.gl.EnableVertexAttribArray(0)
	return true, true
}

// simulateFixed converts every FIXED array read by the draw to FLOAT when
// the native context has no FIXED support. It returns the converted
// attributes.
func (d *Decoder) simulateFixed(ctx context.Context, fn string, max uint32, primcount int32) ([]uint32, bool) {
	if d.features.NativeFixed {
		return nil, true
	}
	va := d.state.VertexArray
	type converted struct {
		index  uint32
		offset uint32
	}
	var list []converted
	var data []byte
	for _, in := range d.state.Program.Attribs {
		if in.Location < 0 || int(in.Location) >= len(va.Attribs) {
			continue
		}
		a := &va.Attribs[in.Location]
		if !a.Enabled || a.Type != gl.FIXED {
			continue
		}
		elements := lastElement(a, max, primcount) + 1
		size, ok := u32.Mul(elements, a.ElementSize())
		if !ok || uint64(len(data))+uint64(size) > maxSimulatedBytes {
			d.setError(ctx, gl.OUT_OF_MEMORY, fn, "simulating FIXED attributes needs too much memory")
			return nil, false
		}
		list = append(list, converted{uint32(in.Location), uint32(len(data))})
		src := a.Buffer.Data()
		for e := uint32(0); e < elements; e++ {
			base := a.Offset + e*a.RealStride()
			for c := uint32(0); c < uint32(a.Size); c++ {
				fixed := int32(memory.Uint32(src, int(base+c*4)))
				f := float32(fixed) / 65536
				data = append(data, 0, 0, 0, 0)
				memory.PutUint32(data, len(data)-4, math.Float32bits(f))
			}
		}
	}
	if len(list) == 0 {
		return nil, true
	}
	d.fixed.upload(d.gl, data)
	indices := make([]uint32, len(list))
	for i, c := range list {
		a := &va.Attribs[c.index]
		d.gl.VertexAttribPointer(c.index, a.Size, gl.FLOAT, false, 0, c.offset)
		indices[i] = c.index
	}
	return indices, true
}

// draw validates the vertex range and issues the native draw with any
// simulated arrays in place.
func (d *Decoder) draw(ctx context.Context, fn string, max uint32, primcount int32, native func()) {
	if !d.checkVertexAttribs(ctx, fn, max, primcount) {
		return
	}
	attrib0, ok := d.simulateAttrib0(ctx, fn, max)
	if !ok {
		return
	}
	fixed, ok := d.simulateFixed(ctx, fn, max, primcount)
	if ok {
		native()
	}
	if attrib0 {
		d.restoreVertexAttrib(0)
	}
	for _, i := range fixed {
		d.restoreVertexAttrib(i)
	}
}

func (d *Decoder) drawArrays(ctx context.Context, fn string, args []uint32, primcount int32, instanced bool) cmdbuf.Error {
	mode, first, count := gl.Enum(args[0]), int32(args[1]), int32(args[2])
	if d.ShouldDeferDraws() {
		return cmdbuf.DeferCommandUntilLater
	}
	if !d.validators.drawMode.has(mode) {
		d.invalidEnum(ctx, fn, mode, "mode")
		return cmdbuf.NoError
	}
	if first < 0 || count < 0 || primcount < 0 {
		d.setError(ctx, gl.INVALID_VALUE, fn, "negative first, count or primcount")
		return cmdbuf.NoError
	}
	if !d.prepareDraw(ctx, fn, count, primcount) {
		return cmdbuf.NoError
	}
	max, ok := u32.Add(uint32(first), uint32(count-1))
	if !ok || max > math.MaxInt32 {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "first + count overflows")
		return cmdbuf.NoError
	}
	d.draw(ctx, fn, max, primcount, func() {
		if instanced {
			d.gl.DrawArraysInstanced(mode, first, count, primcount)
		} else {
			d.gl.DrawArrays(mode, first, count)
		}
	})
	return cmdbuf.NoError
}

func (d *Decoder) handleDrawArrays(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	return d.drawArrays(ctx, "glDrawArrays", args, 1, false)
}

func (d *Decoder) handleDrawArraysInstancedANGLE(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glDrawArraysInstancedANGLE"
	if !d.features.Instanced {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "function not available")
		return cmdbuf.NoError
	}
	return d.drawArrays(ctx, fn, args, int32(args[3]), true)
}

func (d *Decoder) drawElements(ctx context.Context, fn string, args []uint32, primcount int32, instanced bool) cmdbuf.Error {
	mode, count, ty, offset := gl.Enum(args[0]), int32(args[1]), gl.Enum(args[2]), args[3]
	if d.ShouldDeferDraws() {
		return cmdbuf.DeferCommandUntilLater
	}
	if !d.validators.drawMode.has(mode) {
		d.invalidEnum(ctx, fn, mode, "mode")
		return cmdbuf.NoError
	}
	if !d.validators.indexType.has(ty) {
		d.invalidEnum(ctx, fn, ty, "type")
		return cmdbuf.NoError
	}
	if count < 0 || primcount < 0 || int32(offset) < 0 {
		d.setError(ctx, gl.INVALID_VALUE, fn, "negative count, offset or primcount")
		return cmdbuf.NoError
	}
	eb := d.state.VertexArray.ElementBuffer
	if eb == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "no element array buffer bound")
		return cmdbuf.NoError
	}
	if !d.prepareDraw(ctx, fn, count, primcount) {
		return cmdbuf.NoError
	}
	max, ok := eb.MaxIndex(offset, uint32(count), ty)
	if !ok {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "range out of bounds for buffer")
		return cmdbuf.NoError
	}
	d.draw(ctx, fn, max, primcount, func() {
		if instanced {
			d.gl.DrawElementsInstanced(mode, count, ty, offset, primcount)
		} else {
			d.gl.DrawElements(mode, count, ty, offset)
		}
	})
	return cmdbuf.NoError
}

func (d *Decoder) handleDrawElements(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	return d.drawElements(ctx, "glDrawElements", args, 1, false)
}

func (d *Decoder) handleDrawElementsInstancedANGLE(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glDrawElementsInstancedANGLE"
	if !d.features.Instanced {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "function not available")
		return cmdbuf.NoError
	}
	return d.drawElements(ctx, fn, args, int32(args[4]), true)
}
