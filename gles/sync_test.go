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
)

func TestDescheduleUntilFinished(t *testing.T) {
	ctx := log.Testing(t)
	descheduled, rescheduled := 0, 0
	h := newHarness(ctx, func(o *Options) {
		o.Deschedule = func() { descheduled++ }
		o.Reschedule = func() { rescheduled++ }
	})

	h.ok("first", CmdDescheduleUntilFinishedCHROMIUM)
	assert.For(ctx, "descheduled").ThatBoolean(h.d.IsDescheduled()).IsFalse()

	b := (&cmdbuf.Builder{}).Cmd(CmdDescheduleUntilFinishedCHROMIUM).Cmd(CmdFlush)
	err, n := h.d.DoCommands(ctx, 0, b.Words())
	assert.For(ctx, "second").That(err).Equals(cmdbuf.NoError)
	assert.For(ctx, "consumed").ThatInteger(n).Equals(1)
	assert.For(ctx, "descheduled").ThatBoolean(h.d.IsDescheduled()).IsTrue()
	assert.For(ctx, "deschedule calls").ThatInteger(descheduled).Equals(1)

	assert.For(ctx, "third").That(h.cmd(CmdDescheduleUntilFinishedCHROMIUM)).Equals(cmdbuf.DeferCommandUntilLater)
	assert.For(ctx, "poll unsignaled").ThatBoolean(h.d.PollDeschedule(ctx)).IsFalse()

	h.gl.SignalFences()
	assert.For(ctx, "poll signaled").ThatBoolean(h.d.PollDeschedule(ctx)).IsTrue()
	assert.For(ctx, "reschedule calls").ThatInteger(rescheduled).Equals(1)
	assert.For(ctx, "descheduled").ThatBoolean(h.d.IsDescheduled()).IsFalse()
}

func TestDescheduleAfterFinishedFence(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("first", CmdDescheduleUntilFinishedCHROMIUM)
	h.gl.SignalFences()
	h.ok("second", CmdDescheduleUntilFinishedCHROMIUM)
	assert.For(h.ctx, "descheduled").ThatBoolean(h.d.IsDescheduled()).IsFalse()
}

func TestLostContextLeavesNativeAlone(t *testing.T) {
	ctx := log.Testing(t)
	rescheduled := 0
	h := newHarness(ctx, func(o *Options) { o.Reschedule = func() { rescheduled++ } })
	b := (&cmdbuf.Builder{}).Cmd(CmdDescheduleUntilFinishedCHROMIUM).Cmd(CmdDescheduleUntilFinishedCHROMIUM)
	h.d.DoCommands(ctx, 0, b.Words())
	assert.For(ctx, "descheduled").ThatBoolean(h.d.IsDescheduled()).IsTrue()
	h.d.MarkContextLost(cmdbuf.LostUnknown)
	h.gl.SignalFences()
	h.gl.PushError(gl.INVALID_VALUE)
	h.gl.ResetCalls()

	assert.For(ctx, "poll").ThatBoolean(h.d.PollDeschedule(ctx)).IsTrue()
	assert.For(ctx, "reschedule calls").ThatInteger(rescheduled).Equals(1)
	assert.For(ctx, "descheduled").ThatBoolean(h.d.IsDescheduled()).IsFalse()
	assert.For(ctx, "poll again").ThatBoolean(h.d.PollDeschedule(ctx)).IsFalse()
	assert.For(ctx, "error").That(h.glError()).Equals(gl.NO_ERROR)
	assert.For(ctx, "native calls").ThatSlice(h.gl.Calls).IsEmpty()
}

func TestOcclusionQuery(t *testing.T) {
	h := newTestDecoder(t)
	const sync = 64
	h.gl.QueryResult = 42
	h.ok("gen", CmdGenQueriesEXTImmediate, ids(1)...)
	h.ok("begin", CmdBeginQueryEXT, uint32(gl.ANY_SAMPLES_PASSED), 1, shm, sync, 6)
	h.ok("begin again", CmdBeginQueryEXT, uint32(gl.ANY_SAMPLES_PASSED), 1, shm, sync, 6)
	h.expectError("begin active", gl.INVALID_OPERATION)
	h.ok("end", CmdEndQueryEXT, uint32(gl.ANY_SAMPLES_PASSED), 7)
	h.expectError("end", gl.NO_ERROR)
	assert.For(h.ctx, "idle work").ThatBoolean(h.d.HasMoreIdleWork()).IsTrue()

	assert.For(h.ctx, "not available").ThatBoolean(h.d.PerformIdleWork(h.ctx)).IsFalse()
	assert.For(h.ctx, "submit count").That(h.result(sync)).Equals(uint32(0))

	h.gl.CompleteQueries()
	assert.For(h.ctx, "available").ThatBoolean(h.d.PerformIdleWork(h.ctx)).IsTrue()
	assert.For(h.ctx, "submit count").That(h.result(sync)).Equals(uint32(7))
	assert.For(h.ctx, "result").That(h.result(sync + 8)).Equals(uint32(1))
	assert.For(h.ctx, "idle work").ThatBoolean(h.d.HasMoreIdleWork()).IsFalse()

	h.ok("moved sync", CmdBeginQueryEXT, uint32(gl.ANY_SAMPLES_PASSED), 1, shm, sync+16, 8)
	h.expectError("moved sync", gl.INVALID_OPERATION)
	h.ok("no active query", CmdEndQueryEXT, uint32(gl.ANY_SAMPLES_PASSED), 8)
	h.expectError("no active query", gl.INVALID_OPERATION)
	h.ok("unknown", CmdBeginQueryEXT, uint32(gl.ANY_SAMPLES_PASSED), 2, shm, sync, 8)
	h.expectError("unknown", gl.INVALID_OPERATION)
	h.ok("bad target", CmdBeginQueryEXT, uint32(gl.TEXTURE_2D), 1, shm, sync, 8)
	h.expectError("bad target", gl.INVALID_ENUM)
	assert.For(h.ctx, "sync past end").That(h.cmd(CmdBeginQueryEXT, uint32(gl.ANY_SAMPLES_PASSED), 1, shm, uint32(len(h.mem)-8), 8)).
		Equals(cmdbuf.OutOfBounds)
}

func TestFinishResolvesQueries(t *testing.T) {
	h := newTestDecoder(t)
	const sync = 128
	h.ok("gen", CmdGenQueriesEXTImmediate, ids(3)...)
	h.ok("begin", CmdBeginQueryEXT, uint32(gl.ANY_SAMPLES_PASSED), 3, shm, sync, 1)
	h.ok("end", CmdEndQueryEXT, uint32(gl.ANY_SAMPLES_PASSED), 2)
	h.ok("finish", CmdFinish)
	assert.For(h.ctx, "submit count").That(h.result(sync)).Equals(uint32(2))
	assert.For(h.ctx, "result").That(h.result(sync + 8)).Equals(uint32(0))
}

func TestFenceSync(t *testing.T) {
	h := newTestDecoder(t)
	const result = 256
	h.ok("fence", CmdFenceSync, 5)
	assert.For(h.ctx, "id in use").That(h.cmd(CmdFenceSync, 5)).Equals(cmdbuf.InvalidArguments)

	h.ok("wait", CmdClientWaitSync, 5, 0, 0, 0, shm, result)
	h.expectError("wait", gl.NO_ERROR)
	assert.For(h.ctx, "status").That(gl.Enum(h.result(result))).Equals(gl.TIMEOUT_EXPIRED)

	assert.For(h.ctx, "dirty result").That(h.cmd(CmdClientWaitSync, 5, 0, 0, 0, shm, result)).Equals(cmdbuf.InvalidArguments)
	h.setResult(result, 0)
	h.gl.SignalFences()
	h.ok("wait signaled", CmdClientWaitSync, 5, uint32(gl.SYNC_FLUSH_COMMANDS_BIT), 0, 0, shm, result)
	assert.For(h.ctx, "status").That(gl.Enum(h.result(result))).Equals(gl.ALREADY_SIGNALED)

	h.setResult(result, 0)
	h.ok("bad flags", CmdClientWaitSync, 5, 4, 0, 0, shm, result)
	h.expectError("bad flags", gl.INVALID_VALUE)
	h.ok("unknown sync", CmdClientWaitSync, 9, 0, 0, 0, shm, result)
	h.expectError("unknown sync", gl.INVALID_VALUE)

	h.ok("server wait", CmdWaitSync, 5, 0, ^uint32(0), ^uint32(0))
	h.expectError("server wait", gl.NO_ERROR)
	assert.For(h.ctx, "native waits").ThatInteger(h.gl.Count("WaitSync")).Equals(1)
	h.ok("server wait timeout", CmdWaitSync, 5, 0, 10, 0)
	h.expectError("server wait timeout", gl.INVALID_VALUE)

	h.ok("delete", CmdDeleteSync, 5)
	h.expectError("delete", gl.NO_ERROR)
	h.ok("delete again", CmdDeleteSync, 5)
	h.expectError("delete again", gl.INVALID_VALUE)
	h.ok("delete zero", CmdDeleteSync, 0)
	h.expectError("delete zero", gl.NO_ERROR)
}

func TestDeleteActiveQuery(t *testing.T) {
	h := newTestDecoder(t)
	h.ok("gen", CmdGenQueriesEXTImmediate, ids(1)...)
	h.ok("begin", CmdBeginQueryEXT, uint32(gl.ANY_SAMPLES_PASSED), 1, shm, 0, 1)
	h.ok("delete active", CmdDeleteQueriesEXTImmediate, ids(1)...)
	h.expectError("delete active", gl.INVALID_OPERATION)
	_, ok := h.d.GetQuery(1)
	assert.For(h.ctx, "still present").ThatBoolean(ok).IsTrue()

	h.ok("end", CmdEndQueryEXT, uint32(gl.ANY_SAMPLES_PASSED), 1)
	h.ok("delete pending", CmdDeleteQueriesEXTImmediate, ids(1)...)
	h.expectError("delete pending", gl.NO_ERROR)
	assert.For(h.ctx, "idle work").ThatBoolean(h.d.HasMoreIdleWork()).IsFalse()
}
