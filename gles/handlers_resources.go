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
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/resources"
)

// genIDs reads the client ids of a Gen command. ok is false if the command
// is finished, with err holding its result.
func (d *Decoder) genIDs(ctx context.Context, fn string, immSize uint32, args []uint32, canCreate func([]uint32) bool) (ids []uint32, err cmdbuf.Error, ok bool) {
	n := int32(args[0])
	if n < 0 {
		d.setError(ctx, gl.INVALID_VALUE, fn, "n < 0")
		return nil, cmdbuf.NoError, false
	}
	ids, err = immediateIDs(immSize, n, args[1:])
	if err != cmdbuf.NoError {
		return nil, err, false
	}
	if !canCreate(ids) {
		return nil, cmdbuf.InvalidArguments, false
	}
	return ids, cmdbuf.NoError, true
}

// deleteIDs reads the client ids of a Delete command.
func (d *Decoder) deleteIDs(ctx context.Context, fn string, immSize uint32, args []uint32) (ids []uint32, err cmdbuf.Error, ok bool) {
	n := int32(args[0])
	if n < 0 {
		d.setError(ctx, gl.INVALID_VALUE, fn, "n < 0")
		return nil, cmdbuf.NoError, false
	}
	ids, err = immediateIDs(immSize, n, args[1:])
	return ids, err, err == cmdbuf.NoError
}

func (d *Decoder) handleGenBuffersImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.genIDs(ctx, "glGenBuffers", immSize, args, d.group.Buffers.CanCreate)
	if !ok {
		return err
	}
	for i, s := range d.gl.GenBuffers(len(ids)) {
		d.group.Buffers.Add(ids[i], &resources.Buffer{Service: s})
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleGenTexturesImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.genIDs(ctx, "glGenTextures", immSize, args, d.group.Textures.CanCreate)
	if !ok {
		return err
	}
	for i, s := range d.gl.GenTextures(len(ids)) {
		d.group.Textures.Add(ids[i], resources.NewTexture(s))
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleGenFramebuffersImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.genIDs(ctx, "glGenFramebuffers", immSize, args, d.framebuffers.CanCreate)
	if !ok {
		return err
	}
	for i, s := range d.gl.GenFramebuffers(len(ids)) {
		d.framebuffers.Add(ids[i], resources.NewFramebuffer(s))
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleGenRenderbuffersImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.genIDs(ctx, "glGenRenderbuffers", immSize, args, d.group.Renderbuffers.CanCreate)
	if !ok {
		return err
	}
	for i, s := range d.gl.GenRenderbuffers(len(ids)) {
		d.group.Renderbuffers.Add(ids[i], &resources.Renderbuffer{Service: s})
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleGenSamplersImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	ids, err, ok := d.genIDs(ctx, "glGenSamplers", immSize, args, d.group.Samplers.CanCreate)
	if !ok {
		return err
	}
	for i, s := range d.gl.GenSamplers(len(ids)) {
		d.group.Samplers.Add(ids[i], &resources.Sampler{Service: s, Params: map[gl.Enum]int32{}})
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleGenQueriesEXTImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.genIDs(ctx, "glGenQueriesEXT", immSize, args, d.queries.CanCreate)
	if !ok {
		return err
	}
	for i, s := range d.gl.GenQueries(len(ids)) {
		d.queries.Add(ids[i], &resources.Query{Service: s})
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleGenTransformFeedbacksImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	ids, err, ok := d.genIDs(ctx, "glGenTransformFeedbacks", immSize, args, d.transformFeedbacks.CanCreate)
	if !ok {
		return err
	}
	for i, s := range d.gl.GenTransformFeedbacks(len(ids)) {
		d.transformFeedbacks.Add(ids[i], &resources.TransformFeedback{Service: s})
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleGenVertexArraysOESImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.genIDs(ctx, "glGenVertexArraysOES", immSize, args, d.vertexArrays.CanCreate)
	if !ok {
		return err
	}
	// Without native vertex arrays the bindings are emulated by restoring
	// the attribute state on bind.
	services := make([]uint32, len(ids))
	if d.features.ES3 {
		services = d.gl.GenVertexArrays(len(ids))
	}
	for i, s := range services {
		d.vertexArrays.Add(ids[i], resources.NewVertexArray(s, int(d.limits.MaxVertexAttribs)))
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleDeleteBuffersImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.deleteIDs(ctx, "glDeleteBuffers", immSize, args)
	if !ok {
		return err
	}
	var services []uint32
	for _, id := range ids {
		b, ok := d.group.Buffers.Get(id)
		if !ok {
			continue
		}
		d.unbindBuffer(b)
		d.group.Buffers.Remove(id)
		d.group.Free(uint64(b.Size()))
		services = append(services, b.Service)
	}
	if len(services) > 0 {
		d.gl.DeleteBuffers(services)
	}
	return cmdbuf.NoError
}

// unbindBuffer clears every binding of b in this context. The native
// bindings are released by the native delete.
func (d *Decoder) unbindBuffer(b *resources.Buffer) {
	s := d.state
	for target, bound := range s.Buffers {
		if bound == b {
			delete(s.Buffers, target)
		}
	}
	for i := range s.UniformBuffers {
		if s.UniformBuffers[i] == b {
			s.UniformBuffers[i] = nil
		}
	}
	for i := range s.FeedbackBufs {
		if s.FeedbackBufs[i] == b {
			s.FeedbackBufs[i] = nil
		}
	}
	s.DefaultVertexArray.Unbind(b)
	d.vertexArrays.Each(func(_ uint32, v *resources.VertexArray) { v.Unbind(b) })
}

func (d *Decoder) handleDeleteTexturesImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.deleteIDs(ctx, "glDeleteTextures", immSize, args)
	if !ok {
		return err
	}
	var services []uint32
	for _, id := range ids {
		t, ok := d.group.Textures.Get(id)
		if !ok {
			continue
		}
		d.unbindTexture(t)
		d.group.Textures.Remove(id)
		if t.Release() {
			if n := d.mailboxes.TextureDeleted(t); n > 0 {
				log.D(ctx, "Revoked %d mailboxes of texture %d", n, id)
			}
			services = append(services, t.Service)
		}
	}
	if len(services) > 0 {
		d.gl.DeleteTextures(services)
	}
	return cmdbuf.NoError
}

// unbindTexture clears every binding and attachment of t in this context.
func (d *Decoder) unbindTexture(t *resources.Texture) {
	for _, unit := range d.state.Units {
		for target, bound := range unit.Bound {
			if bound == t {
				delete(unit.Bound, target)
			}
		}
	}
	d.framebuffers.Each(func(_ uint32, f *resources.Framebuffer) { f.DetachTexture(t) })
}

func (d *Decoder) handleDeleteFramebuffersImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.deleteIDs(ctx, "glDeleteFramebuffers", immSize, args)
	if !ok {
		return err
	}
	var services []uint32
	rebind := false
	for _, id := range ids {
		f, ok := d.framebuffers.Get(id)
		if !ok {
			continue
		}
		if d.state.DrawFramebuffer == f {
			d.state.DrawFramebuffer = nil
			rebind = true
		}
		if d.state.ReadFramebuffer == f {
			d.state.ReadFramebuffer = nil
			rebind = true
		}
		d.framebuffers.Remove(id)
		services = append(services, f.Service)
	}
	if len(services) > 0 {
		d.gl.DeleteFramebuffers(services)
	}
	if rebind {
		d.restoreFramebufferBindings()
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleDeleteRenderbuffersImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.deleteIDs(ctx, "glDeleteRenderbuffers", immSize, args)
	if !ok {
		return err
	}
	var services []uint32
	for _, id := range ids {
		r, ok := d.group.Renderbuffers.Get(id)
		if !ok {
			continue
		}
		if d.state.Renderbuffer == r {
			d.state.Renderbuffer = nil
		}
		d.framebuffers.Each(func(_ uint32, f *resources.Framebuffer) { f.DetachRenderbuffer(r) })
		d.group.Renderbuffers.Remove(id)
		services = append(services, r.Service)
	}
	if len(services) > 0 {
		d.gl.DeleteRenderbuffers(services)
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleDeleteSamplersImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	ids, err, ok := d.deleteIDs(ctx, "glDeleteSamplers", immSize, args)
	if !ok {
		return err
	}
	var services []uint32
	for _, id := range ids {
		s, ok := d.group.Samplers.Get(id)
		if !ok {
			continue
		}
		for i := range d.state.Units {
			if d.state.Units[i].Sampler == s {
				d.state.Units[i].Sampler = nil
			}
		}
		d.group.Samplers.Remove(id)
		services = append(services, s.Service)
	}
	if len(services) > 0 {
		d.gl.DeleteSamplers(services)
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleDeleteQueriesEXTImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.deleteIDs(ctx, "glDeleteQueriesEXT", immSize, args)
	if !ok {
		return err
	}
	for _, id := range ids {
		if q, ok := d.queries.Get(id); ok && q.State == resources.QueryActive {
			d.setError(ctx, gl.INVALID_OPERATION, "glDeleteQueriesEXT", "query %d is active", id)
			return cmdbuf.NoError
		}
	}
	var services []uint32
	for _, id := range ids {
		q, ok := d.queries.Remove(id)
		if !ok {
			continue
		}
		d.removePendingQuery(q)
		services = append(services, q.Service)
	}
	if len(services) > 0 {
		d.gl.DeleteQueries(services)
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleDeleteTransformFeedbacksImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	ids, err, ok := d.deleteIDs(ctx, "glDeleteTransformFeedbacks", immSize, args)
	if !ok {
		return err
	}
	for _, id := range ids {
		if t, ok := d.transformFeedbacks.Get(id); ok && t.Active {
			d.setError(ctx, gl.INVALID_OPERATION, "glDeleteTransformFeedbacks", "transform feedback %d is active", id)
			return cmdbuf.NoError
		}
	}
	var services []uint32
	for _, id := range ids {
		t, ok := d.transformFeedbacks.Remove(id)
		if !ok {
			continue
		}
		if d.state.TransformFeedback == t {
			d.state.TransformFeedback = d.state.DefaultTransformFeedback
		}
		services = append(services, t.Service)
	}
	if len(services) > 0 {
		d.gl.DeleteTransformFeedbacks(services)
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleDeleteVertexArraysOESImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ids, err, ok := d.deleteIDs(ctx, "glDeleteVertexArraysOES", immSize, args)
	if !ok {
		return err
	}
	var services []uint32
	for _, id := range ids {
		v, ok := d.vertexArrays.Remove(id)
		if !ok {
			continue
		}
		if d.state.VertexArray == v {
			d.bindVertexArray(d.state.DefaultVertexArray)
		}
		if v.Service != 0 {
			services = append(services, v.Service)
		}
	}
	if len(services) > 0 {
		d.gl.DeleteVertexArrays(services)
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleCreateProgram(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	client := args[0]
	if !d.group.Programs.CanCreate([]uint32{client}) {
		return cmdbuf.InvalidArguments
	}
	d.group.Programs.Add(client, resources.NewProgram(d.gl.CreateProgram()))
	return cmdbuf.NoError
}

func (d *Decoder) handleCreateShader(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	ty, client := gl.Enum(args[0]), args[1]
	if !d.validators.shaderType.has(ty) {
		d.invalidEnum(ctx, "glCreateShader", ty, "type")
		return cmdbuf.NoError
	}
	if !d.group.Shaders.CanCreate([]uint32{client}) {
		return cmdbuf.InvalidArguments
	}
	d.group.Shaders.Add(client, &resources.Shader{Service: d.gl.CreateShader(ty), Type: ty})
	return cmdbuf.NoError
}

func (d *Decoder) handleDeleteProgram(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	client := args[0]
	if client == 0 {
		return cmdbuf.NoError
	}
	p, ok := d.group.Programs.Remove(client)
	if !ok {
		d.setError(ctx, gl.INVALID_VALUE, "glDeleteProgram", "unknown program %d", client)
		return cmdbuf.NoError
	}
	if p.InUse() {
		p.DeletePending = true
		return cmdbuf.NoError
	}
	d.destroyProgram(p)
	return cmdbuf.NoError
}

// destroyProgram detaches every shader of p and deletes it natively.
func (d *Decoder) destroyProgram(p *resources.Program) {
	for _, s := range p.Shaders {
		p.Detach(s)
		if s.DeletePending && s.Attached() == 0 {
			d.gl.DeleteShader(s.Service)
		}
	}
	d.gl.DeleteProgram(p.Service)
}

// releaseProgramUse drops the current use of p, deleting it if the client
// already deleted it.
func (d *Decoder) releaseProgramUse(ctx context.Context, p *resources.Program) {
	if p.RemoveUse() && p.DeletePending {
		log.D(ctx, "Deleting program %d", p.Service)
		d.destroyProgram(p)
	}
}

func (d *Decoder) handleDeleteShader(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	client := args[0]
	if client == 0 {
		return cmdbuf.NoError
	}
	s, ok := d.group.Shaders.Remove(client)
	if !ok {
		d.setError(ctx, gl.INVALID_VALUE, "glDeleteShader", "unknown shader %d", client)
		return cmdbuf.NoError
	}
	if s.Attached() > 0 {
		s.DeletePending = true
		return cmdbuf.NoError
	}
	d.gl.DeleteShader(s.Service)
	return cmdbuf.NoError
}

// isResult writes the result of an Is command.
func (d *Decoder) isResult(args []uint32, v bool) cmdbuf.Error {
	b, err := d.resolveResult(int32(args[1]), args[2], cmdbuf.WordSize)
	if err != cmdbuf.NoError {
		return err
	}
	putBool(b, v)
	return cmdbuf.NoError
}

func (d *Decoder) handleIsBuffer(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	b, ok := d.group.Buffers.Get(args[0])
	return d.isResult(args, ok && b.Target != 0)
}

func (d *Decoder) handleIsTexture(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	t, ok := d.group.Textures.Get(args[0])
	return d.isResult(args, ok && t.Target != 0)
}

func (d *Decoder) handleIsFramebuffer(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	f, ok := d.framebuffers.Get(args[0])
	return d.isResult(args, ok && f.EverBound)
}

func (d *Decoder) handleIsRenderbuffer(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	r, ok := d.group.Renderbuffers.Get(args[0])
	return d.isResult(args, ok && r.EverBound)
}

func (d *Decoder) handleIsProgram(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	return d.isResult(args, d.group.Programs.Has(args[0]))
}

func (d *Decoder) handleIsShader(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	return d.isResult(args, d.group.Shaders.Has(args[0]))
}

func (d *Decoder) handleIsEnabled(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	c := gl.Enum(args[0])
	if !d.validators.capability.has(c) {
		d.invalidEnum(ctx, "glIsEnabled", c, "cap")
		return d.isResult(args, false)
	}
	return d.isResult(args, d.state.Enabled[c])
}
