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
	"github.com/google/gpucmd/gles/gl"
)

// texture makes texture 1 a w by h RGBA texture bound at TEXTURE_2D, filled
// from the start of shared memory.
func (h *harness) texture(w, ht uint32) {
	h.ok("gen", CmdGenTexturesImmediate, ids(1)...)
	h.ok("bind", CmdBindTexture, uint32(gl.TEXTURE_2D), 1)
	h.ok("image", CmdTexImage2D, uint32(gl.TEXTURE_2D), 0, uint32(gl.RGBA), w, ht, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, 0)
	h.expectError("texture", gl.NO_ERROR)
}

func TestTexSubImagePastSharedMemory(t *testing.T) {
	h := newTestDecoder(t)
	h.texture(4, 4)
	h.gl.ResetCalls()
	offset := uint32(len(h.mem) - 32)
	err := h.cmd(CmdTexSubImage2D, uint32(gl.TEXTURE_2D), 0, 0, 0, 4, 4, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, offset)
	assert.For(h.ctx, "err").That(err).Equals(cmdbuf.OutOfBounds)
	assert.For(h.ctx, "native calls").ThatSlice(h.gl.Calls).IsEmpty()

	err = h.cmd(CmdTexSubImage2D, uint32(gl.TEXTURE_2D), 0, 0, 0, 4, 4, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), 7, 0)
	assert.For(h.ctx, "unknown region").That(err).Equals(cmdbuf.OutOfBounds)
	assert.For(h.ctx, "native calls").ThatSlice(h.gl.Calls).IsEmpty()
}

func TestTexSubImage(t *testing.T) {
	h := newTestDecoder(t)
	for i := 0; i < 64; i++ {
		h.mem[128+i] = byte(i)
	}
	h.texture(4, 4)
	h.ok("sub image", CmdTexSubImage2D, uint32(gl.TEXTURE_2D), 0, 0, 0, 4, 4, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, 128)
	h.expectError("sub image", gl.NO_ERROR)
	tex, _ := h.d.GetTexture(1)
	assert.For(h.ctx, "data").ThatSlice(h.gl.Textures[tex.Service].Levels[0].Data).Equals(h.mem[128:192])

	h.ok("outside level", CmdTexSubImage2D, uint32(gl.TEXTURE_2D), 0, 2, 2, 4, 4, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, 128)
	h.expectError("outside level", gl.INVALID_VALUE)
	h.ok("undefined level", CmdTexSubImage2D, uint32(gl.TEXTURE_2D), 1, 0, 0, 1, 1, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, 128)
	h.expectError("undefined level", gl.INVALID_OPERATION)
	h.ok("wrong type", CmdTexSubImage2D, uint32(gl.TEXTURE_2D), 0, 0, 0, 1, 1, uint32(gl.RGBA), uint32(gl.UNSIGNED_SHORT_4_4_4_4), shm, 128)
	h.expectError("wrong type", gl.INVALID_OPERATION)
	assert.For(h.ctx, "uploads").ThatInteger(h.gl.Count("TexSubImage2D")).Equals(1)
}

func TestTexSubImageOffsetOverflow(t *testing.T) {
	h := newTestDecoder(t)
	h.texture(4, 4)
	h.gl.ResetCalls()
	const maxInt32 = 0x7fffffff
	h.ok("x at max", CmdTexSubImage2D, uint32(gl.TEXTURE_2D), 0, maxInt32, 0, 1, 1, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, 128)
	h.expectError("x at max", gl.INVALID_VALUE)
	h.ok("y at max", CmdTexSubImage2D, uint32(gl.TEXTURE_2D), 0, 0, maxInt32, 1, 1, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, 128)
	h.expectError("y at max", gl.INVALID_VALUE)
	h.ok("both at max", CmdTexSubImage2D, uint32(gl.TEXTURE_2D), 0, maxInt32, maxInt32, 1, 1, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, 128)
	h.expectError("both at max", gl.INVALID_VALUE)
	assert.For(h.ctx, "uploads").ThatInteger(h.gl.Count("TexSubImage2D")).Equals(0)
}

func TestUnpackAlignment(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("gen", CmdGenTexturesImmediate, ids(1)...)
	h.ok("bind", CmdBindTexture, uint32(gl.TEXTURE_2D), 1)
	h.ok("alignment", CmdPixelStorei, uint32(gl.UNPACK_ALIGNMENT), 8)
	// Two rows of three RGB pixels: one padded row of 16 bytes and a final
	// row of 9.
	end := uint32(len(h.mem))
	h.ok("fits", CmdTexImage2D, uint32(gl.TEXTURE_2D), 0, uint32(gl.RGB), 3, 2, uint32(gl.RGB), uint32(gl.UNSIGNED_BYTE), shm, end-25)
	h.expectError("fits", gl.NO_ERROR)
	err := h.cmd(CmdTexImage2D, uint32(gl.TEXTURE_2D), 0, uint32(gl.RGB), 3, 2, uint32(gl.RGB), uint32(gl.UNSIGNED_BYTE), shm, end-24)
	assert.For(h.ctx, "one byte short").That(err).Equals(cmdbuf.OutOfBounds)
	h.ok("bad alignment", CmdPixelStorei, uint32(gl.UNPACK_ALIGNMENT), 3)
	h.expectError("bad alignment", gl.INVALID_VALUE)
}

func TestTexImageChecks(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("unbound", CmdTexImage2D, uint32(gl.TEXTURE_2D), 0, uint32(gl.RGBA), 4, 4, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), 0, 0)
	h.expectError("unbound", gl.INVALID_OPERATION)
	h.ok("gen", CmdGenTexturesImmediate, ids(1)...)
	h.ok("bind", CmdBindTexture, uint32(gl.TEXTURE_2D), 1)
	h.ok("format mismatch", CmdTexImage2D, uint32(gl.TEXTURE_2D), 0, uint32(gl.RGBA), 4, 4, uint32(gl.RGB), uint32(gl.UNSIGNED_BYTE), 0, 0)
	h.expectError("format mismatch", gl.INVALID_OPERATION)
	h.ok("bad target", CmdTexImage2D, 0x1234, 0, uint32(gl.RGBA), 4, 4, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), 0, 0)
	h.expectError("bad target", gl.INVALID_ENUM)
	assert.For(h.ctx, "uploads").ThatInteger(h.gl.Count("TexImage2D")).Equals(0)
}

func TestTexStorageIsImmutable(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("gen", CmdGenTexturesImmediate, ids(1)...)
	h.ok("bind", CmdBindTexture, uint32(gl.TEXTURE_2D), 1)
	h.ok("storage", CmdTexStorage2DEXT, uint32(gl.TEXTURE_2D), 3, uint32(gl.RGBA8), 4, 4)
	h.expectError("storage", gl.NO_ERROR)
	tex, _ := h.d.GetTexture(1)
	assert.For(h.ctx, "level 2").That(tex.Level(gl.TEXTURE_2D, 2)).IsNotNil()
	h.ok("image", CmdTexImage2D, uint32(gl.TEXTURE_2D), 0, uint32(gl.RGBA), 4, 4, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), 0, 0)
	h.expectError("image", gl.INVALID_OPERATION)
	h.ok("too many levels", CmdTexStorage2DEXT, uint32(gl.TEXTURE_2D), 4, uint32(gl.RGBA8), 4, 4)
	h.expectError("too many levels", gl.INVALID_OPERATION)
}

func TestReadPixels(t *testing.T) {
	h := newTestDecoder(t)
	const pixels, result = 512, 0
	h.setResult(result, 0)
	h.ok("read", CmdReadPixels, 0, 0, 2, 2, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, pixels, shm, result, 0)
	h.expectError("read", gl.NO_ERROR)
	assert.For(h.ctx, "result").That(h.result(result)).Equals(uint32(1))
	assert.For(h.ctx, "pixel data").That(h.mem[pixels+5]).Equals(byte(5))

	err := h.cmd(CmdReadPixels, 0, 0, 2, 2, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, pixels, shm, result, 0)
	assert.For(h.ctx, "reused result").That(err).Equals(cmdbuf.InvalidArguments)
	err = h.cmd(CmdReadPixels, 0, 0, 2, 2, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, uint32(len(h.mem)-8), 0, 0, 0)
	assert.For(h.ctx, "past end").That(err).Equals(cmdbuf.OutOfBounds)
	h.ok("negative", CmdReadPixels, 0, 0, 0xffffffff, 2, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, pixels, 0, 0, 0)
	h.expectError("negative", gl.INVALID_VALUE)
}

func TestReadPixelsAsync(t *testing.T) {
	h := newTestDecoder(t)
	const pixels, result = 512, 0
	h.ok("read", CmdReadPixels, 0, 0, 2, 2, uint32(gl.RGBA), uint32(gl.UNSIGNED_BYTE), shm, pixels, shm, result, 1)
	assert.For(h.ctx, "result before fence").That(h.result(result)).Equals(uint32(0))
	assert.For(h.ctx, "pixels before fence").That(h.mem[pixels+5]).Equals(byte(0))
	assert.For(h.ctx, "pending").ThatBoolean(h.d.HasMoreIdleWork()).IsTrue()
	assert.For(h.ctx, "idle work unsignaled").ThatBoolean(h.d.PerformIdleWork(h.ctx)).IsFalse()

	h.gl.SignalFences()
	assert.For(h.ctx, "idle work").ThatBoolean(h.d.PerformIdleWork(h.ctx)).IsTrue()
	assert.For(h.ctx, "result").That(h.result(result)).Equals(uint32(1))
	assert.For(h.ctx, "pixel data").That(h.mem[pixels+5]).Equals(byte(5))
	assert.For(h.ctx, "pending").ThatBoolean(h.d.HasMoreIdleWork()).IsFalse()
}
