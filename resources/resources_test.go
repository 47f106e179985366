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

package resources_test

import (
	"testing"

	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/resources"
)

func TestNamespace(t *testing.T) {
	ctx := log.Testing(t)
	ns := resources.NewNamespace[*resources.Buffer]()
	ns.Add(5, &resources.Buffer{Service: 100})
	ns.Add(2, &resources.Buffer{Service: 101})
	b, ok := ns.Get(5)
	assert.For(ctx, "get").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "service").That(b.Service).Equals(uint32(100))
	c, ok := ns.ClientID(101)
	assert.For(ctx, "reverse").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "reverse id").That(c).Equals(uint32(2))

	order := []uint32{}
	ns.Each(func(id uint32, _ *resources.Buffer) { order = append(order, id) })
	assert.For(ctx, "each order").ThatSlice(order).Equals([]uint32{2, 5})

	for _, test := range []struct {
		name string
		ids  []uint32
		can  bool
	}{
		{"fresh", []uint32{3, 4}, true},
		{"empty", []uint32{}, true},
		{"zero", []uint32{3, 0}, false},
		{"duplicate", []uint32{3, 3}, false},
		{"live", []uint32{3, 5}, false},
	} {
		assert.For(ctx, test.name).ThatBoolean(ns.CanCreate(test.ids)).Equals(test.can)
	}

	ns.Remove(2)
	_, ok = ns.ClientID(101)
	assert.For(ctx, "reverse removed").ThatBoolean(ok).IsFalse()
	assert.For(ctx, "len").ThatInteger(ns.Len()).Equals(1)
}

func TestBufferMaxIndex(t *testing.T) {
	ctx := log.Testing(t)
	b := &resources.Buffer{Service: 1}
	b.SetData(8, []byte{1, 0, 9, 0, 3, 0, 0xff, 0}, gl.STATIC_DRAW)
	for _, test := range []struct {
		name   string
		offset uint32
		count  uint32
		ty     gl.Enum
		max    uint32
		ok     bool
	}{
		{"shorts", 0, 3, gl.UNSIGNED_SHORT, 9, true},
		{"bytes", 4, 4, gl.UNSIGNED_BYTE, 0xff, true},
		{"ints", 0, 2, gl.UNSIGNED_INT, 0x00ff0003, true},
		{"misaligned", 1, 1, gl.UNSIGNED_SHORT, 0, false},
		{"past end", 4, 3, gl.UNSIGNED_SHORT, 0, false},
		{"bad type", 0, 1, gl.FLOAT, 0, false},
	} {
		max, ok := b.MaxIndex(test.offset, test.count, test.ty)
		assert.For(ctx, "%s ok", test.name).ThatBoolean(ok).Equals(test.ok)
		if test.ok {
			assert.For(ctx, "%s max", test.name).That(max).Equals(test.max)
		}
	}
	assert.For(ctx, "sub data").ThatBoolean(b.SetSubData(6, []byte{1, 2, 3})).IsFalse()
	assert.For(ctx, "sub data fits").ThatBoolean(b.SetSubData(6, []byte{1, 2})).IsTrue()
}

func TestTextureRefs(t *testing.T) {
	ctx := log.Testing(t)
	tex := resources.NewTexture(7)
	tex.AddRef()
	assert.For(ctx, "first release").ThatBoolean(tex.Release()).IsFalse()
	assert.For(ctx, "last release").ThatBoolean(tex.Release()).IsTrue()
	tex.SetLevel(gl.TEXTURE_2D, 0, resources.Level{Width: 4, Height: 4})
	assert.For(ctx, "uncleared").ThatBoolean(tex.IsCleared(gl.TEXTURE_2D, 0)).IsFalse()
	tex.Level(gl.TEXTURE_2D, 0).Cleared = true
	assert.For(ctx, "cleared").ThatBoolean(tex.IsCleared(gl.TEXTURE_2D, 0)).IsTrue()
	assert.For(ctx, "cube faces").ThatSlice(resources.Faces(gl.TEXTURE_CUBE_MAP)).IsLength(6)
	assert.For(ctx, "bind target").That(resources.BindTarget(gl.TEXTURE_CUBE_MAP_NEGATIVE_Z)).Equals(gl.TEXTURE_CUBE_MAP)
}

func TestFramebufferPrecheck(t *testing.T) {
	ctx := log.Testing(t)
	fb := resources.NewFramebuffer(1)
	assert.For(ctx, "empty").That(fb.PrecheckStatus()).Equals(gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT)

	tex := resources.NewTexture(2)
	fb.Attach(gl.COLOR_ATTACHMENT0, &resources.Attachment{Texture: tex, TexTarget: gl.TEXTURE_2D})
	assert.For(ctx, "no storage").That(fb.PrecheckStatus()).Equals(gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT)

	tex.SetLevel(gl.TEXTURE_2D, 0, resources.Level{Width: 8, Height: 8})
	assert.For(ctx, "complete").That(fb.PrecheckStatus()).Equals(gl.FRAMEBUFFER_COMPLETE)

	rb := &resources.Renderbuffer{Service: 3, Width: 4, Height: 8, InternalFormat: gl.DEPTH_COMPONENT16}
	fb.Attach(gl.DEPTH_ATTACHMENT, &resources.Attachment{Renderbuffer: rb})
	assert.For(ctx, "dimensions").That(fb.PrecheckStatus()).Equals(gl.FRAMEBUFFER_INCOMPLETE_DIMENSIONS)

	rb.Width = 8
	assert.For(ctx, "uncleared").That(fb.UnclearedBits()).Equals(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	fb.MarkCleared(gl.DEPTH_BUFFER_BIT)
	assert.For(ctx, "depth cleared").That(fb.UnclearedBits()).Equals(gl.COLOR_BUFFER_BIT)
	assert.For(ctx, "renderbuffer flag").ThatBoolean(rb.Cleared).IsTrue()

	fb.MarkCompleteAt(3)
	assert.For(ctx, "cached").ThatBoolean(fb.IsCompleteAt(3)).IsTrue()
	assert.For(ctx, "stale").ThatBoolean(fb.IsCompleteAt(4)).IsFalse()
	assert.For(ctx, "has color").ThatBoolean(fb.HasColorTexture(tex)).IsTrue()
	assert.For(ctx, "detach").ThatBoolean(fb.DetachTexture(tex)).IsTrue()
	assert.For(ctx, "cache dropped").ThatBoolean(fb.IsCompleteAt(3)).IsFalse()
	assert.For(ctx, "has color after").ThatBoolean(fb.HasColorTexture(tex)).IsFalse()
}

func TestProgramLocations(t *testing.T) {
	ctx := log.Testing(t)
	p := resources.NewProgram(1)
	p.Uniforms = []resources.UniformInfo{
		{Name: "color", Type: gl.FLOAT_VEC4, Size: 1, Locations: []int32{0}},
		{Name: "lights[0]", Type: gl.FLOAT_VEC3, Size: 3, Locations: []int32{1, 2, 3}},
		{Name: "tex", Type: gl.SAMPLER_2D, Size: 1, Locations: []int32{4}, Units: []int32{2}},
	}
	for _, test := range []struct {
		name     string
		location int32
	}{
		{"color", resources.FakeLocation(0, 0)},
		{"lights", resources.FakeLocation(1, 0)},
		{"lights[2]", resources.FakeLocation(1, 2)},
		{"lights[3]", -1},
		{"lights[x]", -1},
		{"missing", -1},
	} {
		assert.For(ctx, test.name).That(p.UniformLocation(test.name)).Equals(test.location)
	}
	u, element, ok := p.UniformAt(resources.FakeLocation(1, 2))
	assert.For(ctx, "resolve").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "resolved name").That(u.Name).Equals("lights[0]")
	assert.For(ctx, "resolved element").That(element).Equals(int32(2))
	_, _, ok = p.UniformAt(resources.FakeLocation(3, 0))
	assert.For(ctx, "bad index").ThatBoolean(ok).IsFalse()
	assert.For(ctx, "sampler units").That(p.SamplerUnits()).DeepEquals(map[int32]gl.Enum{2: gl.SAMPLER_2D})

	s := &resources.Shader{Service: 9, Type: gl.VERTEX_SHADER}
	assert.For(ctx, "attach").ThatBoolean(p.Attach(s)).IsTrue()
	assert.For(ctx, "attach twice").ThatBoolean(p.Attach(s)).IsFalse()
	assert.For(ctx, "attached").ThatInteger(s.Attached()).Equals(1)
	assert.For(ctx, "detach").ThatBoolean(p.Detach(s)).IsTrue()
	assert.For(ctx, "detached").ThatInteger(s.Attached()).Equals(0)
}

func TestVertexAttribAccess(t *testing.T) {
	ctx := log.Testing(t)
	b := &resources.Buffer{Service: 1}
	b.SetData(48, nil, gl.STATIC_DRAW)
	a := resources.VertexAttrib{Buffer: b, Size: 3, Type: gl.FLOAT}
	assert.For(ctx, "stride").That(a.RealStride()).Equals(uint32(12))
	assert.For(ctx, "last vertex").ThatBoolean(a.CanAccess(3)).IsTrue()
	assert.For(ctx, "past end").ThatBoolean(a.CanAccess(4)).IsFalse()
	assert.For(ctx, "overflow").ThatBoolean(a.CanAccess(0xffffffff)).IsFalse()
	a.Buffer = nil
	assert.For(ctx, "no buffer").ThatBoolean(a.CanAccess(0)).IsFalse()
	assert.For(ctx, "query state").That(resources.QueryPending.String()).Equals("Pending")
}

type member struct{ reason cmdbuf.LostReason }

func (m *member) MarkContextLost(r cmdbuf.LostReason) { m.reason = r }

func TestGroup(t *testing.T) {
	ctx := log.Testing(t)
	g := resources.NewGroup(false, 100)
	assert.For(ctx, "reserve").ThatBoolean(g.Reserve(60)).IsTrue()
	assert.For(ctx, "over limit").ThatBoolean(g.Reserve(41)).IsFalse()
	g.Free(60)
	assert.For(ctx, "freed").That(g.MemoryUsed()).Equals(uint64(0))

	gen := g.Generation()
	g.StorageChanged()
	assert.For(ctx, "generation").ThatBoolean(g.Generation() != gen).IsTrue()

	a, b := &member{reason: -1}, &member{reason: -1}
	g.Join(a)
	g.Join(b)
	g.Leave(b)
	g.LoseContexts(cmdbuf.LostInnocent)
	assert.For(ctx, "member lost").That(a.reason).Equals(cmdbuf.LostInnocent)
	assert.For(ctx, "left member").That(b.reason).Equals(cmdbuf.LostReason(-1))
}
