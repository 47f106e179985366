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

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/gpucmd/capture"
	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/config"
	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/gles"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/mailbox"
)

func replayCapture(ctx context.Context, t *testing.T, submits ...*cmdbuf.Builder) Stats {
	c := &capture.Capture{Name: t.Name(), Regions: []capture.Region{{ID: 1, Data: make([]byte, 1024)}}}
	for _, b := range submits {
		c.Submits = append(c.Submits, b.Words())
	}
	buf := &bytes.Buffer{}
	assert.For(ctx, "write").ThatError(capture.Write(buf, c)).Succeeded()
	loaded, err := capture.Read(buf)
	assert.For(ctx, "read").ThatError(err).Succeeded()
	stats, err := Replay(ctx, loaded, Options{Config: config.Default(), Mailboxes: mailbox.NewRegistry()})
	assert.For(ctx, "replay").ThatError(err).Succeeded()
	assert.For(ctx, "name").That(stats.Name).Equals(t.Name())
	return stats
}

func TestReplay(t *testing.T) {
	ctx := log.Testing(t)
	stats := replayCapture(ctx, t,
		(&cmdbuf.Builder{}).
			Cmd(gles.CmdGenBuffersImmediate, 1, 1).
			Cmd(gles.CmdBindBuffer, uint32(gl.ARRAY_BUFFER), 1).
			Cmd(gles.CmdEnable, uint32(gl.TEXTURE_2D)).
			Cmd(gles.CmdFinish),
		(&cmdbuf.Builder{}).
			Cmd(gles.CmdDescheduleUntilFinishedCHROMIUM).
			Cmd(gles.CmdDescheduleUntilFinishedCHROMIUM).
			Cmd(gles.CmdDescheduleUntilFinishedCHROMIUM).
			Cmd(gles.CmdFlush),
	)
	assert.For(ctx, "error").That(stats.Error).Equals(cmdbuf.NoError)
	assert.For(ctx, "gl errors").ThatInteger(stats.GLErrors).Equals(1)
	assert.For(ctx, "lost").ThatBoolean(stats.Lost).IsFalse()
}

func TestReplayStopsOnStructuralError(t *testing.T) {
	ctx := log.Testing(t)
	stats := replayCapture(ctx, t,
		(&cmdbuf.Builder{}).Cmd(gles.CmdFlush).Raw(0),
		(&cmdbuf.Builder{}).Cmd(gles.CmdEnable, uint32(gl.TEXTURE_2D)),
	)
	assert.For(ctx, "error").That(stats.Error).Equals(cmdbuf.InvalidSize)
	assert.For(ctx, "gl errors").ThatInteger(stats.GLErrors).Equals(0)
}

func TestReplayLostContext(t *testing.T) {
	ctx := log.Testing(t)
	stats := replayCapture(ctx, t,
		(&cmdbuf.Builder{}).Cmd(gles.CmdLoseContextCHROMIUM, uint32(gl.GUILTY_CONTEXT_RESET), uint32(gl.UNKNOWN_CONTEXT_RESET)),
	)
	assert.For(ctx, "error").That(stats.Error).Equals(cmdbuf.LostContext)
	assert.For(ctx, "lost").ThatBoolean(stats.Lost).IsTrue()
	assert.For(ctx, "reason").That(stats.LostReason).Equals(cmdbuf.LostGuilty)
}
