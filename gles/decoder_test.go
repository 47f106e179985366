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
	"github.com/google/gpucmd/config"
	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/driver"
	"github.com/google/gpucmd/driver/fake"
	"github.com/google/gpucmd/gles/gl"
)

func TestNewRequiresDriver(t *testing.T) {
	ctx := log.Testing(t)
	_, err := New(ctx, Options{})
	assert.For(ctx, "err").ThatError(err).HasCause(ErrNoDriver)
}

func TestNewOnscreenRequiresSurface(t *testing.T) {
	ctx := log.Testing(t)
	o := Options{GL: fake.New(), Config: config.Default()}
	o.Config.Context.Offscreen = false
	_, err := New(ctx, o)
	assert.For(ctx, "err").ThatError(err).HasCause(ErrNoSurface)
}

func TestZeroSizeRecord(t *testing.T) {
	h := newTestDecoder(t)
	words := (&cmdbuf.Builder{}).Raw(uint32(cmdbuf.MakeHeader(CmdFlush, 0))).Words()
	err, n := h.d.DoCommands(h.ctx, 0, words)
	assert.For(h.ctx, "err").That(err).Equals(cmdbuf.InvalidSize)
	assert.For(h.ctx, "consumed").ThatInteger(n).Equals(0)
	assert.For(h.ctx, "native calls").ThatSlice(h.gl.Calls).IsEmpty()
}

func TestRecordPastEnd(t *testing.T) {
	h := newTestDecoder(t)
	words := (&cmdbuf.Builder{}).
		Cmd(CmdFlush).
		Raw(uint32(cmdbuf.MakeHeader(CmdClear, 3)), uint32(gl.COLOR_BUFFER_BIT)).
		Words()
	err, n := h.d.DoCommands(h.ctx, 0, words)
	assert.For(h.ctx, "err").That(err).Equals(cmdbuf.OutOfBounds)
	assert.For(h.ctx, "consumed").ThatInteger(n).Equals(1)
	assert.For(h.ctx, "flushes").ThatInteger(h.gl.Count("Flush")).Equals(1)
	assert.For(h.ctx, "native calls").ThatInteger(len(h.gl.Calls)).Equals(1)
}

func TestUnknownCommand(t *testing.T) {
	h := newTestDecoder(t)
	assert.For(h.ctx, "err").That(h.cmd(firstCommand + numCommands)).Equals(cmdbuf.UnknownCommand)
}

func TestArityIsCheckedBeforeDispatch(t *testing.T) {
	h := newTestDecoder(t)
	for i, info := range commandInfos {
		id := firstCommand + uint32(i)
		name := commandNames[i]
		if info.argFlags == cmdbuf.Fixed {
			args := make([]uint32, info.argCount+1)
			assert.For(h.ctx, "%s with too many args", name).That(h.cmd(id, args...)).Equals(cmdbuf.InvalidArguments)
		}
		if info.argCount > 0 {
			args := make([]uint32, info.argCount-1)
			assert.For(h.ctx, "%s with too few args", name).That(h.cmd(id, args...)).Equals(cmdbuf.InvalidArguments)
		}
	}
	assert.For(h.ctx, "native calls").ThatSlice(h.gl.Calls).IsEmpty()
	assert.For(h.ctx, "errors").ThatInteger(h.d.ErrorCount()).Equals(0)
}

func TestImmediateSize(t *testing.T) {
	h := newTestDecoder(t)
	assert.For(h.ctx, "two ids").That(h.cmd(CmdGenBuffersImmediate, ids(1, 2)...)).Equals(cmdbuf.NoError)
	_, ok := h.d.GetBuffer(2)
	assert.For(h.ctx, "buffer 2").ThatBoolean(ok).IsTrue()
	// n claims three ids but only two follow.
	assert.For(h.ctx, "short").That(h.cmd(CmdGenBuffersImmediate, 3, 3, 4)).Equals(cmdbuf.OutOfBounds)
	_, ok = h.d.GetBuffer(3)
	assert.For(h.ctx, "buffer 3").ThatBoolean(ok).IsFalse()
}

func TestBudget(t *testing.T) {
	h := newTestDecoder(t)
	b := (&cmdbuf.Builder{}).Cmd(CmdFlush).Cmd(CmdFlush).Cmd(CmdFlush)
	err, n := h.d.DoCommands(h.ctx, 2, b.Words())
	assert.For(h.ctx, "err").That(err).Equals(cmdbuf.NoError)
	assert.For(h.ctx, "consumed").ThatInteger(n).Equals(2)
	assert.For(h.ctx, "processed").ThatInteger(h.d.CommandsProcessed()).Equals(2)
}

func TestSwapYields(t *testing.T) {
	h := newTestDecoder(t)
	b := (&cmdbuf.Builder{}).Cmd(CmdSwapBuffers).Cmd(CmdFlush)
	err, n := h.d.DoCommands(h.ctx, 0, b.Words())
	assert.For(h.ctx, "err").That(err).Equals(cmdbuf.NoError)
	assert.For(h.ctx, "consumed").ThatInteger(n).Equals(1)
	assert.For(h.ctx, "flushes").ThatInteger(h.gl.Count("Flush")).Equals(0)
}

func TestGenBuffers(t *testing.T) {
	h := newTestDecoder(t)
	assert.For(h.ctx, "gen").That(h.cmd(CmdGenBuffersImmediate, ids(1, 2, 3)...)).Equals(cmdbuf.NoError)
	seen := map[uint32]bool{}
	for _, id := range []uint32{1, 2, 3} {
		b, ok := h.d.GetBuffer(id)
		assert.For(h.ctx, "buffer %d", id).ThatBoolean(ok).IsTrue()
		if !ok {
			continue
		}
		assert.For(h.ctx, "buffer %d service", id).ThatBoolean(b.Service != 0).IsTrue()
		assert.For(h.ctx, "buffer %d distinct", id).ThatBoolean(seen[b.Service]).IsFalse()
		seen[b.Service] = true
	}
	assert.For(h.ctx, "native buffers").ThatInteger(h.gl.Live("buffer")).Equals(3)
}

func TestGenIsAllOrNothing(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("gen 5", CmdGenBuffersImmediate, ids(5)...)
	assert.For(h.ctx, "gen").That(h.cmd(CmdGenBuffersImmediate, ids(6, 5, 7)...)).Equals(cmdbuf.InvalidArguments)
	for _, id := range []uint32{6, 7} {
		_, ok := h.d.GetBuffer(id)
		assert.For(h.ctx, "buffer %d", id).ThatBoolean(ok).IsFalse()
	}
	assert.For(h.ctx, "native buffers").ThatInteger(h.gl.Live("buffer")).Equals(1)
	assert.For(h.ctx, "duplicate").That(h.cmd(CmdGenTexturesImmediate, ids(8, 8)...)).Equals(cmdbuf.InvalidArguments)
	assert.For(h.ctx, "zero").That(h.cmd(CmdGenTexturesImmediate, ids(0)...)).Equals(cmdbuf.InvalidArguments)
}

func TestBindZero(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("buffer", CmdBindBuffer, uint32(gl.ARRAY_BUFFER), 0)
	h.ok("element buffer", CmdBindBuffer, uint32(gl.ELEMENT_ARRAY_BUFFER), 0)
	h.ok("texture", CmdBindTexture, uint32(gl.TEXTURE_2D), 0)
	h.ok("framebuffer", CmdBindFramebuffer, uint32(gl.FRAMEBUFFER), 0)
	h.ok("renderbuffer", CmdBindRenderbuffer, uint32(gl.RENDERBUFFER), 0)
	h.ok("sampler", CmdBindSampler, 0, 0)
	h.ok("vertex array", CmdBindVertexArrayOES, 0)
	h.expectError("bind zero", gl.NO_ERROR)
	assert.For(h.ctx, "texture").That(h.d.State().BoundTexture(gl.TEXTURE_2D)).IsNil()
}

func TestBindGeneratesResource(t *testing.T) {
	h := newTestDecoder(t)
	before := h.gl.Live("texture")
	h.ok("bind", CmdBindTexture, uint32(gl.TEXTURE_2D), 7)
	h.expectError("bind", gl.NO_ERROR)
	tex, ok := h.d.GetTexture(7)
	assert.For(h.ctx, "texture 7").ThatBoolean(ok).IsTrue()
	assert.For(h.ctx, "bound").That(h.d.State().BoundTexture(gl.TEXTURE_2D)).Equals(tex)
	assert.For(h.ctx, "target").That(tex.Target).Equals(gl.TEXTURE_2D)

	h.ok("bind again", CmdBindTexture, uint32(gl.TEXTURE_2D), 7)
	again, _ := h.d.GetTexture(7)
	assert.For(h.ctx, "same texture").That(again).Equals(tex)
	assert.For(h.ctx, "bound").That(h.d.State().BoundTexture(gl.TEXTURE_2D)).Equals(tex)
	assert.For(h.ctx, "native textures").ThatInteger(h.gl.Live("texture")).Equals(before + 1)
}

func TestBindRequiresGen(t *testing.T) {
	ctx := log.Testing(t)
	h := newHarness(ctx, func(o *Options) { o.Config.Context.BindGeneratesResource = false })
	h.ok("bind", CmdBindTexture, uint32(gl.TEXTURE_2D), 7)
	h.expectError("bind", gl.INVALID_OPERATION)
	_, ok := h.d.GetTexture(7)
	assert.For(ctx, "texture 7").ThatBoolean(ok).IsFalse()
	assert.For(ctx, "bound").That(h.d.State().BoundTexture(gl.TEXTURE_2D)).IsNil()
	assert.For(ctx, "native binds").ThatInteger(h.gl.Count("BindTexture")).Equals(0)

	h.ok("gen", CmdGenTexturesImmediate, ids(7)...)
	h.ok("bind generated", CmdBindTexture, uint32(gl.TEXTURE_2D), 7)
	h.expectError("bind generated", gl.NO_ERROR)
}

func TestBufferTargetsStaySeparate(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("gen", CmdGenBuffersImmediate, ids(1)...)
	h.ok("bind array", CmdBindBuffer, uint32(gl.ARRAY_BUFFER), 1)
	h.ok("bind element", CmdBindBuffer, uint32(gl.ELEMENT_ARRAY_BUFFER), 1)
	h.expectError("bind element", gl.INVALID_OPERATION)
}

func TestErrorPriority(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("bad clear", CmdClear, 0x1)
	h.ok("bad enable", CmdEnable, 0x1234)
	h.ok("get error", CmdGetError, shm, 0)
	assert.For(h.ctx, "first").That(gl.Enum(h.result(0))).Equals(gl.INVALID_ENUM)
	h.ok("get error", CmdGetError, shm, 0)
	assert.For(h.ctx, "second").That(gl.Enum(h.result(0))).Equals(gl.INVALID_VALUE)
	h.ok("get error", CmdGetError, shm, 0)
	assert.For(h.ctx, "third").That(gl.Enum(h.result(0))).Equals(gl.NO_ERROR)
	assert.For(h.ctx, "count").ThatInteger(h.d.ErrorCount()).Equals(2)
}

func TestDeferredCommandIsRetried(t *testing.T) {
	ctx := log.Testing(t)
	points := &fake.SyncPoints{}
	h := newHarness(ctx, func(o *Options) { o.Waiter = points })
	token := driver.SyncToken{Namespace: driver.NamespaceGPUIO, CommandBufferID: 3, Release: 9}
	words := (&cmdbuf.Builder{}).
		Cmd(CmdFlush).
		Cmd(CmdWaitSyncTokenCHROMIUM, uint32(token.Namespace), 3, 0, 9, 0).
		Cmd(CmdFinish).
		Words()

	err, n := h.d.DoCommands(ctx, 0, words)
	assert.For(ctx, "first err").That(err).Equals(cmdbuf.DeferCommandUntilLater)
	assert.For(ctx, "first consumed").ThatInteger(n).Equals(1)
	words = words[n:]

	err, n = h.d.DoCommands(ctx, 0, words)
	assert.For(ctx, "retry err").That(err).Equals(cmdbuf.DeferCommandUntilLater)
	assert.For(ctx, "retry consumed").ThatInteger(n).Equals(0)
	assert.For(ctx, "finishes").ThatInteger(h.gl.Count("Finish")).Equals(0)

	points.Reach(token)
	err, n = h.d.DoCommands(ctx, 0, words)
	assert.For(ctx, "ready err").That(err).Equals(cmdbuf.NoError)
	assert.For(ctx, "ready consumed").ThatInteger(n).Equals(len(words))
	assert.For(ctx, "finishes").ThatInteger(h.gl.Count("Finish")).Equals(1)
}

func TestInsertFenceSyncMustIncrease(t *testing.T) {
	ctx := log.Testing(t)
	points := &fake.SyncPoints{}
	h := newHarness(ctx, func(o *Options) { o.Waiter = points })
	h.ok("release 4", CmdInsertFenceSyncCHROMIUM, 4, 0)
	assert.For(ctx, "released").That(points.Released).Equals(uint64(4))
	assert.For(ctx, "again").That(h.cmd(CmdInsertFenceSyncCHROMIUM, 4, 0)).Equals(cmdbuf.InvalidArguments)
	assert.For(ctx, "bad namespace").That(h.cmd(CmdWaitSyncTokenCHROMIUM, 99, 0, 0, 0, 0)).Equals(cmdbuf.InvalidArguments)
}

// expectLost checks that every command fails without reaching the device.
func (h *harness) expectLost() {
	h.gl.ResetCalls()
	b := (&cmdbuf.Builder{}).Cmd(CmdFlush)
	for i := 0; i < 3; i++ {
		assert.For(h.ctx, "flush after loss").That(h.run(b)).Equals(cmdbuf.LostContext)
	}
	assert.For(h.ctx, "gen after loss").That(h.cmd(CmdGenBuffersImmediate, ids(40)...)).Equals(cmdbuf.LostContext)
	assert.For(h.ctx, "clear after loss").That(h.cmd(CmdClear, uint32(gl.COLOR_BUFFER_BIT))).Equals(cmdbuf.LostContext)
	assert.For(h.ctx, "still lost").ThatBoolean(h.d.IsLost()).IsTrue()
	assert.For(h.ctx, "native calls").ThatSlice(h.gl.Calls).IsEmpty()
	_, ok := h.d.GetBuffer(40)
	assert.For(h.ctx, "buffer 40").ThatBoolean(ok).IsFalse()
}

func TestLoseContext(t *testing.T) {
	ctx := log.Testing(t)
	a := newHarness(ctx, nil)
	b := newHarness(ctx, func(o *Options) { o.Group = a.d.Group() })
	err := a.cmd(CmdLoseContextCHROMIUM, uint32(gl.GUILTY_CONTEXT_RESET), uint32(gl.INNOCENT_CONTEXT_RESET))
	assert.For(ctx, "err").That(err).Equals(cmdbuf.LostContext)
	assert.For(ctx, "a lost").ThatBoolean(a.d.IsLost()).IsTrue()
	assert.For(ctx, "a reason").That(a.d.LostReason()).Equals(cmdbuf.LostGuilty)
	assert.For(ctx, "b lost").ThatBoolean(b.d.IsLost()).IsTrue()
	assert.For(ctx, "b reason").That(b.d.LostReason()).Equals(cmdbuf.LostInnocent)
	a.expectLost()
	b.expectLost()
}

func TestLoseContextBadEnum(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("lose", CmdLoseContextCHROMIUM, 0x1234, uint32(gl.GUILTY_CONTEXT_RESET))
	h.expectError("lose", gl.INVALID_ENUM)
	assert.For(h.ctx, "lost").ThatBoolean(h.d.IsLost()).IsFalse()
}

func TestNativeContextLost(t *testing.T) {
	h := newTestDecoder(t)
	h.gl.Lose(gl.INNOCENT_CONTEXT_RESET)
	assert.For(h.ctx, "get error").That(h.cmd(CmdGetError, shm, 0)).Equals(cmdbuf.LostContext)
	assert.For(h.ctx, "lost").ThatBoolean(h.d.IsLost()).IsTrue()
	assert.For(h.ctx, "reason").That(h.d.LostReason()).Equals(cmdbuf.LostInnocent)
	assert.For(h.ctx, "via robustness").ThatBoolean(h.d.LostViaRobustness()).IsTrue()
	h.expectLost()
}

func onscreen(surface *fake.Surface) func(*Options) {
	return func(o *Options) {
		o.Surface = surface
		o.Config.Context.Offscreen = false
	}
}

func TestSwapFailureLosesContext(t *testing.T) {
	for _, test := range []struct {
		name   string
		status gl.Enum
		reason cmdbuf.LostReason
	}{
		{"no status", gl.NO_ERROR, cmdbuf.LostUnknown},
		{"guilty", gl.GUILTY_CONTEXT_RESET, cmdbuf.LostGuilty},
		{"innocent", gl.INNOCENT_CONTEXT_RESET, cmdbuf.LostInnocent},
	} {
		t.Run(test.name, func(t *testing.T) {
			ctx := log.Testing(t)
			surface := &fake.Surface{Width: 64, Height: 64, FailSwap: true}
			h := newHarness(ctx, onscreen(surface))
			h.gl.ResetStatus = test.status
			assert.For(ctx, "swap").That(h.cmd(CmdSwapBuffers)).Equals(cmdbuf.LostContext)
			assert.For(ctx, "swaps").ThatInteger(surface.Swaps).Equals(1)
			assert.For(ctx, "lost").ThatBoolean(h.d.IsLost()).IsTrue()
			assert.For(ctx, "reason").That(h.d.LostReason()).Equals(test.reason)
			h.expectLost()
			assert.For(ctx, "swaps after loss").That(h.cmd(CmdSwapBuffers)).Equals(cmdbuf.LostContext)
			assert.For(ctx, "swaps").ThatInteger(surface.Swaps).Equals(1)
		})
	}
}

func TestDestroyWithoutContext(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("gen", CmdGenQueriesEXTImmediate, ids(1)...)
	h.d.Destroy(h.ctx, false)
	assert.For(h.ctx, "native calls").ThatSlice(h.gl.Calls).IsEmpty()
}

func TestNewDiscardsStartupErrors(t *testing.T) {
	h := newHarness(log.Testing(t), func(o *Options) {
		o.GL.(*fake.GL).PushError(gl.INVALID_ENUM)
		o.GL.(*fake.GL).PushError(gl.INVALID_VALUE)
	})
	assert.For(h.ctx, "error").That(h.glError()).Equals(gl.NO_ERROR)
	assert.For(h.ctx, "error count").ThatInteger(h.d.ErrorCount()).Equals(0)
}

func TestBufferDataMemoryLimit(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("gen", CmdGenBuffersImmediate, ids(1, 2)...)
	h.ok("bind", CmdBindBuffer, uint32(gl.ARRAY_BUFFER), 1)
	h.gl.ResetCalls()
	h.ok("huge", CmdBufferData, uint32(gl.ARRAY_BUFFER), 0x7fffffff, 0, 0, uint32(gl.STATIC_DRAW))
	h.expectError("huge", gl.OUT_OF_MEMORY)
	assert.For(h.ctx, "native uploads").ThatInteger(h.gl.Count("BufferData")).Equals(0)

	h = newHarness(log.Testing(t), func(o *Options) { o.Config.Decoder.MemoryLimit = 64 })
	h.ok("gen", CmdGenBuffersImmediate, ids(1, 2)...)
	h.ok("bind", CmdBindBuffer, uint32(gl.ARRAY_BUFFER), 1)
	h.ok("fits", CmdBufferData, uint32(gl.ARRAY_BUFFER), 64, 0, 0, uint32(gl.STATIC_DRAW))
	h.expectError("fits", gl.NO_ERROR)
	h.ok("bind second", CmdBindBuffer, uint32(gl.ARRAY_BUFFER), 2)
	h.ok("over", CmdBufferData, uint32(gl.ARRAY_BUFFER), 1, 0, 0, uint32(gl.STATIC_DRAW))
	h.expectError("over", gl.OUT_OF_MEMORY)
	h.ok("delete first", CmdDeleteBuffersImmediate, ids(1)...)
	h.ok("after delete", CmdBufferData, uint32(gl.ARRAY_BUFFER), 1, 0, 0, uint32(gl.STATIC_DRAW))
	h.expectError("after delete", gl.NO_ERROR)
}

func TestDestroyLostWithPendingProgram(t *testing.T) {
	h := newTestDecoder(t)
	h.linkProgram()
	h.ok("delete program", CmdDeleteProgram, 1)
	h.expectError("delete program", gl.NO_ERROR)
	assert.For(h.ctx, "deleted while current").ThatInteger(h.gl.Count("DeleteProgram")).Equals(0)
	h.d.MarkContextLost(cmdbuf.LostUnknown)
	h.gl.ResetCalls()
	h.d.Destroy(h.ctx, false)
	assert.For(h.ctx, "native calls").ThatSlice(h.gl.Calls).IsEmpty()
}

func TestDestroyReleasesObjects(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("gen", CmdGenFramebuffersImmediate, ids(1, 2)...)
	h.d.Destroy(h.ctx, true)
	assert.For(h.ctx, "framebuffers").ThatInteger(h.gl.Live("framebuffer")).Equals(0)
}
