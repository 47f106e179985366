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
	"testing"

	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/mailbox"
)

func withMailboxes(r *mailbox.Registry) func(*Options) {
	return func(o *Options) { o.Mailboxes = r }
}

func mailboxArgs(name mailbox.Name, fixed ...uint32) []uint32 {
	return append(fixed, name.Words()...)
}

func TestProduceAndConsume(t *testing.T) {
	ctx := log.Testing(t)
	r := mailbox.NewRegistry()
	producer := newHarness(ctx, withMailboxes(r))
	consumer := newHarness(ctx, withMailboxes(r))
	for i := 0; i < 64; i++ {
		producer.mem[i] = byte(3 * i)
	}
	producer.texture(4, 4)
	produced, _ := producer.d.GetTexture(1)

	name := r.Generate()
	producer.ok("produce", CmdProduceTextureDirectCHROMIUMImmediate, mailboxArgs(name, 1)...)
	producer.expectError("produce", gl.NO_ERROR)

	consumer.ok("create and consume", CmdCreateAndConsumeTextureINTERNALImmediate, mailboxArgs(name, uint32(gl.TEXTURE_2D), 5)...)
	consumer.expectError("create and consume", gl.NO_ERROR)
	consumed, ok := consumer.d.GetTexture(5)
	assert.For(ctx, "texture 5").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "same texture").That(consumed).Equals(produced)
	assert.For(ctx, "target").That(consumed.Target).Equals(gl.TEXTURE_2D)
	level := consumed.Level(gl.TEXTURE_2D, 0)
	assert.For(ctx, "level").That(level).IsNotNil()
	assert.For(ctx, "width").That(level.Width).Equals(int32(4))
	assert.For(ctx, "format").That(level.Format).Equals(gl.RGBA)
	assert.For(ctx, "contents").ThatSlice(producer.gl.Textures[consumed.Service].Levels[0].Data).Equals(producer.mem[:64])

	consumer.ok("gen", CmdGenTexturesImmediate, ids(6)...)
	consumer.ok("bind", CmdBindTexture, uint32(gl.TEXTURE_2D), 6)
	consumer.ok("consume", CmdConsumeTextureCHROMIUMImmediate, mailboxArgs(name, uint32(gl.TEXTURE_2D))...)
	consumer.expectError("consume", gl.NO_ERROR)
	bound, _ := consumer.d.GetTexture(6)
	assert.For(ctx, "consumed into 6").That(bound).Equals(produced)
	assert.For(ctx, "bound").That(consumer.d.State().BoundTexture(gl.TEXTURE_2D)).Equals(produced)
}

func TestConsumeFailures(t *testing.T) {
	ctx := log.Testing(t)
	r := mailbox.NewRegistry()
	h := newHarness(ctx, withMailboxes(r))
	h.texture(4, 4)
	name := r.Generate()
	h.ok("produce", CmdProduceTextureDirectCHROMIUMImmediate, mailboxArgs(name, 1)...)

	h.ok("unknown texture", CmdProduceTextureDirectCHROMIUMImmediate, mailboxArgs(r.Generate(), 9)...)
	h.expectError("unknown texture", gl.INVALID_OPERATION)

	h.ok("wrong target", CmdCreateAndConsumeTextureINTERNALImmediate, mailboxArgs(name, uint32(gl.TEXTURE_CUBE_MAP), 7)...)
	h.expectError("wrong target", gl.INVALID_OPERATION)
	empty, ok := h.d.GetTexture(7)
	assert.For(h.ctx, "texture 7").ThatBoolean(ok).IsTrue()
	produced, _ := h.d.GetTexture(1)
	assert.For(h.ctx, "empty texture").ThatBoolean(empty != produced).IsTrue()

	h.ok("id in use", CmdCreateAndConsumeTextureINTERNALImmediate, mailboxArgs(name, uint32(gl.TEXTURE_2D), 1)...)
	h.expectError("id in use", gl.INVALID_OPERATION)
	assert.For(h.ctx, "client 0").That(h.cmd(CmdCreateAndConsumeTextureINTERNALImmediate, mailboxArgs(name, uint32(gl.TEXTURE_2D), 0)...)).
		Equals(cmdbuf.InvalidArguments)
	assert.For(h.ctx, "short name").That(h.cmd(CmdConsumeTextureCHROMIUMImmediate, uint32(gl.TEXTURE_2D), 1)).
		Equals(cmdbuf.OutOfBounds)

	h.ok("unbind", CmdBindTexture, uint32(gl.TEXTURE_2D), 0)
	h.ok("consume unbound", CmdConsumeTextureCHROMIUMImmediate, mailboxArgs(name, uint32(gl.TEXTURE_2D))...)
	h.expectError("consume unbound", gl.INVALID_OPERATION)
}

func TestDeletedTextureRevokesMailbox(t *testing.T) {
	ctx := log.Testing(t)
	r := mailbox.NewRegistry()
	h := newHarness(ctx, withMailboxes(r))
	h.texture(4, 4)
	h.ok("produce", CmdProduceTextureDirectCHROMIUMImmediate, mailboxArgs(r.Generate(), 1)...)
	assert.For(ctx, "published").ThatInteger(r.Len()).Equals(1)
	h.ok("delete", CmdDeleteTexturesImmediate, ids(1)...)
	assert.For(ctx, "published").ThatInteger(r.Len()).Equals(0)
}

func TestDeletedTextureKeepsMailboxWhileConsumed(t *testing.T) {
	ctx := log.Testing(t)
	r := mailbox.NewRegistry()
	producer := newHarness(ctx, withMailboxes(r))
	consumer := newHarness(ctx, withMailboxes(r))
	producer.texture(4, 4)
	produced, _ := producer.d.GetTexture(1)
	name := r.Generate()
	producer.ok("produce", CmdProduceTextureDirectCHROMIUMImmediate, mailboxArgs(name, 1)...)
	consumer.ok("create and consume", CmdCreateAndConsumeTextureINTERNALImmediate, mailboxArgs(name, uint32(gl.TEXTURE_2D), 5)...)
	consumer.expectError("create and consume", gl.NO_ERROR)

	producer.ok("delete", CmdDeleteTexturesImmediate, ids(1)...)
	assert.For(ctx, "published").ThatInteger(r.Len()).Equals(1)
	assert.For(ctx, "native deletes").ThatInteger(producer.gl.Count("DeleteTextures")).Equals(0)
	got, err := r.Consume(name, gl.TEXTURE_2D)
	assert.For(ctx, "consume").ThatError(err).Succeeded()
	assert.For(ctx, "same texture").That(got).Equals(produced)

	consumer.ok("delete consumed", CmdDeleteTexturesImmediate, ids(5)...)
	assert.For(ctx, "published").ThatInteger(r.Len()).Equals(0)
}
