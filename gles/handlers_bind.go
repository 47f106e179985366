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

// lookupForBind resolves the client id of a bind call. Unknown ids are
// created when the group generates resources on bind, otherwise they are
// an INVALID_OPERATION. Client id 0 returns the zero T.
func lookupForBind[T resources.Object](ctx context.Context, d *Decoder, fn string, ns *resources.Namespace[T], client uint32, generates bool, create func() T) (T, bool) {
	var zero T
	if client == 0 {
		return zero, true
	}
	if o, ok := ns.Get(client); ok {
		return o, true
	}
	if !generates {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "id %d not generated by Gen call", client)
		return zero, false
	}
	o := create()
	ns.Add(client, o)
	return o, true
}

// bufferTargetsCompatible returns true if a buffer first bound at first may
// be bound at target. Index data may not be shared with other targets.
func bufferTargetsCompatible(first, target gl.Enum) bool {
	return first == 0 || (first == gl.ELEMENT_ARRAY_BUFFER) == (target == gl.ELEMENT_ARRAY_BUFFER)
}

func (d *Decoder) resolveBufferForBind(ctx context.Context, fn string, target gl.Enum, client uint32) (*resources.Buffer, bool) {
	b, ok := lookupForBind(ctx, d, fn, d.group.Buffers, client, d.group.BindGeneratesResource, func() *resources.Buffer {
		return &resources.Buffer{Service: d.gl.GenBuffers(1)[0]}
	})
	if !ok || b == nil {
		return b, ok
	}
	if !bufferTargetsCompatible(b.Target, target) {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "buffer bound to %v may not be bound to %v", b.Target, target)
		return nil, false
	}
	if b.Target == 0 {
		b.Target = target
	}
	return b, true
}

func (d *Decoder) handleBindBuffer(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, client := gl.Enum(args[0]), args[1]
	if !d.validators.bufferTarget.has(target) {
		d.invalidEnum(ctx, "glBindBuffer", target, "target")
		return cmdbuf.NoError
	}
	b, ok := d.resolveBufferForBind(ctx, "glBindBuffer", target, client)
	if !ok {
		return cmdbuf.NoError
	}
	d.gl.BindBuffer(target, bufferService(b))
	d.setBufferBinding(target, b)
	return cmdbuf.NoError
}

func (d *Decoder) setBufferBinding(target gl.Enum, b *resources.Buffer) {
	switch {
	case target == gl.ELEMENT_ARRAY_BUFFER:
		d.state.VertexArray.ElementBuffer = b
	case b == nil:
		delete(d.state.Buffers, target)
	default:
		d.state.Buffers[target] = b
	}
}

// boundBuffer returns the buffer bound at target.
func (d *Decoder) boundBuffer(target gl.Enum) *resources.Buffer {
	if target == gl.ELEMENT_ARRAY_BUFFER {
		return d.state.VertexArray.ElementBuffer
	}
	return d.state.Buffers[target]
}

func (d *Decoder) handleBindBufferBase(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	target, index, client := gl.Enum(args[0]), args[1], args[2]
	if !d.validators.indexedBufferTarget.has(target) {
		d.invalidEnum(ctx, "glBindBufferBase", target, "target")
		return cmdbuf.NoError
	}
	slots := d.state.UniformBuffers
	if target == gl.TRANSFORM_FEEDBACK_BUFFER {
		slots = d.state.FeedbackBufs
	}
	if index >= uint32(len(slots)) {
		d.setError(ctx, gl.INVALID_VALUE, "glBindBufferBase", "index %d out of range", index)
		return cmdbuf.NoError
	}
	if target == gl.TRANSFORM_FEEDBACK_BUFFER && d.state.TransformFeedback.Active {
		d.setError(ctx, gl.INVALID_OPERATION, "glBindBufferBase", "transform feedback is active")
		return cmdbuf.NoError
	}
	b, ok := d.resolveBufferForBind(ctx, "glBindBufferBase", target, client)
	if !ok {
		return cmdbuf.NoError
	}
	d.gl.BindBufferBase(target, index, bufferService(b))
	slots[index] = b
	d.setBufferBinding(target, b)
	return cmdbuf.NoError
}

func (d *Decoder) handleBindTexture(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, client := gl.Enum(args[0]), args[1]
	if !d.validators.textureBindTarget.has(target) {
		d.invalidEnum(ctx, "glBindTexture", target, "target")
		return cmdbuf.NoError
	}
	t, ok := lookupForBind(ctx, d, "glBindTexture", d.group.Textures, client, d.group.BindGeneratesResource, func() *resources.Texture {
		return resources.NewTexture(d.gl.GenTextures(1)[0])
	})
	if !ok {
		return cmdbuf.NoError
	}
	if t != nil {
		if t.Target != 0 && t.Target != target {
			d.setError(ctx, gl.INVALID_OPERATION, "glBindTexture", "texture bound to %v may not be bound to %v", t.Target, target)
			return cmdbuf.NoError
		}
		t.Target = target
	}
	d.gl.BindTexture(target, textureService(t))
	unit := &d.state.Units[d.state.ActiveUnit]
	if t == nil {
		delete(unit.Bound, target)
	} else {
		unit.Bound[target] = t
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleActiveTexture(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	texture := gl.Enum(args[0])
	if texture < gl.TEXTURE0 || uint32(texture-gl.TEXTURE0) >= d.limits.MaxTextureUnits {
		d.invalidEnum(ctx, "glActiveTexture", texture, "texture")
		return cmdbuf.NoError
	}
	d.gl.ActiveTexture(texture)
	d.state.ActiveUnit = uint32(texture - gl.TEXTURE0)
	return cmdbuf.NoError
}

func (d *Decoder) handleBindFramebuffer(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, client := gl.Enum(args[0]), args[1]
	if !d.validators.framebufferTarget.has(target) {
		d.invalidEnum(ctx, "glBindFramebuffer", target, "target")
		return cmdbuf.NoError
	}
	f, ok := lookupForBind(ctx, d, "glBindFramebuffer", d.framebuffers, client, d.group.BindGeneratesResource, func() *resources.Framebuffer {
		return resources.NewFramebuffer(d.gl.GenFramebuffers(1)[0])
	})
	if !ok {
		return cmdbuf.NoError
	}
	if f != nil {
		f.EverBound = true
	}
	d.gl.BindFramebuffer(target, d.framebufferService(f))
	if target != gl.READ_FRAMEBUFFER {
		if d.state.DrawFramebuffer != f {
			d.clearStateDirty = true
		}
		d.state.DrawFramebuffer = f
	}
	if target != gl.DRAW_FRAMEBUFFER {
		d.state.ReadFramebuffer = f
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleBindRenderbuffer(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, client := gl.Enum(args[0]), args[1]
	if target != gl.RENDERBUFFER {
		d.invalidEnum(ctx, "glBindRenderbuffer", target, "target")
		return cmdbuf.NoError
	}
	r, ok := lookupForBind(ctx, d, "glBindRenderbuffer", d.group.Renderbuffers, client, d.group.BindGeneratesResource, func() *resources.Renderbuffer {
		return &resources.Renderbuffer{Service: d.gl.GenRenderbuffers(1)[0]}
	})
	if !ok {
		return cmdbuf.NoError
	}
	var service uint32
	if r != nil {
		r.EverBound = true
		service = r.Service
	}
	d.gl.BindRenderbuffer(target, service)
	d.state.Renderbuffer = r
	return cmdbuf.NoError
}

func (d *Decoder) handleBindSampler(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	unit, client := args[0], args[1]
	if unit >= d.limits.MaxTextureUnits {
		d.setError(ctx, gl.INVALID_VALUE, "glBindSampler", "unit %d out of range", unit)
		return cmdbuf.NoError
	}
	s, ok := lookupForBind(ctx, d, "glBindSampler", d.group.Samplers, client, false, nil)
	if !ok {
		return cmdbuf.NoError
	}
	var service uint32
	if s != nil {
		service = s.Service
	}
	d.gl.BindSampler(unit, service)
	d.state.Units[unit].Sampler = s
	return cmdbuf.NoError
}

func (d *Decoder) handleBindTransformFeedback(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	target, client := gl.Enum(args[0]), args[1]
	if target != gl.TRANSFORM_FEEDBACK {
		d.invalidEnum(ctx, "glBindTransformFeedback", target, "target")
		return cmdbuf.NoError
	}
	if d.state.TransformFeedback.Active {
		d.setError(ctx, gl.INVALID_OPERATION, "glBindTransformFeedback", "current transform feedback is active")
		return cmdbuf.NoError
	}
	t, ok := lookupForBind(ctx, d, "glBindTransformFeedback", d.transformFeedbacks, client, false, nil)
	if !ok {
		return cmdbuf.NoError
	}
	if t == nil {
		t = d.state.DefaultTransformFeedback
	}
	t.EverBound = true
	d.gl.BindTransformFeedback(target, t.Service)
	d.state.TransformFeedback = t
	return cmdbuf.NoError
}

func (d *Decoder) handleBindVertexArrayOES(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	client := args[0]
	v, ok := lookupForBind(ctx, d, "glBindVertexArrayOES", d.vertexArrays, client, false, nil)
	if !ok {
		return cmdbuf.NoError
	}
	if v == nil {
		v = d.state.DefaultVertexArray
	}
	d.bindVertexArray(v)
	return cmdbuf.NoError
}

// bindVertexArray makes v current. Without native vertex arrays the
// attribute state of v is pushed to the device.
func (d *Decoder) bindVertexArray(v *resources.VertexArray) {
	v.EverBound = true
	d.state.VertexArray = v
	if d.features.ES3 {
		d.gl.BindVertexArray(d.vertexArrayService(v))
		return
	}
	for i := range v.Attribs {
		d.restoreVertexAttrib(uint32(i))
	}
	d.restoreBufferBinding(gl.ELEMENT_ARRAY_BUFFER)
}
