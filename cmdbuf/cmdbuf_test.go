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

package cmdbuf_test

import (
	"context"
	"testing"

	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/memory"
)

func TestHeader(t *testing.T) {
	ctx := log.Testing(t)
	h := cmdbuf.MakeHeader(300, 7)
	assert.For(ctx, "size").That(h.Size()).Equals(uint32(7))
	assert.For(ctx, "command").That(h.Command()).Equals(uint32(300))
	h = cmdbuf.MakeHeader(cmdbuf.MaxCommandID, cmdbuf.MaxSize)
	assert.For(ctx, "max size").That(h.Size()).Equals(uint32(cmdbuf.MaxSize))
	assert.For(ctx, "max command").That(h.Command()).Equals(uint32(cmdbuf.MaxCommandID))
}

func TestArgFlags(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "fixed exact").ThatBoolean(cmdbuf.Fixed.Check(3, 3)).IsTrue()
	assert.For(ctx, "fixed more").ThatBoolean(cmdbuf.Fixed.Check(4, 3)).IsFalse()
	assert.For(ctx, "fixed less").ThatBoolean(cmdbuf.Fixed.Check(2, 3)).IsFalse()
	assert.For(ctx, "at least exact").ThatBoolean(cmdbuf.AtLeastN.Check(3, 3)).IsTrue()
	assert.For(ctx, "at least more").ThatBoolean(cmdbuf.AtLeastN.Check(9, 3)).IsTrue()
	assert.For(ctx, "at least less").ThatBoolean(cmdbuf.AtLeastN.Check(2, 3)).IsFalse()
}

func TestErrorClasses(t *testing.T) {
	ctx := log.Testing(t)
	assert.For(ctx, "no error").ThatBoolean(cmdbuf.NoError.IsError()).IsFalse()
	assert.For(ctx, "defer").ThatBoolean(cmdbuf.DeferCommandUntilLater.IsError()).IsFalse()
	for _, e := range []cmdbuf.Error{cmdbuf.InvalidSize, cmdbuf.OutOfBounds, cmdbuf.UnknownCommand,
		cmdbuf.InvalidArguments, cmdbuf.LostContext, cmdbuf.InternalFailure} {
		assert.For(ctx, "%v", e).ThatBoolean(e.IsError()).IsTrue()
	}
}

func TestBuilderImmediatePadding(t *testing.T) {
	ctx := log.Testing(t)
	b := &cmdbuf.Builder{}
	b.Immediate(5, []uint32{1}, []byte{0x11, 0x22, 0x33, 0x44, 0x55})
	w := b.Words()
	assert.For(ctx, "len").ThatInteger(len(w)).Equals(4)
	assert.For(ctx, "size").That(cmdbuf.Header(w[0]).Size()).Equals(uint32(4))
	assert.For(ctx, "word 0").That(w[2]).Equals(uint32(0x44332211))
	assert.For(ctx, "word 1").That(w[3]).Equals(uint32(0x55))
}

func run(ctx context.Context, c *cmdbuf.Common, words []uint32) cmdbuf.Error {
	h := cmdbuf.Header(words[0])
	return c.DoCommand(ctx, h.Command(), words[1:h.Size()])
}

func TestBuckets(t *testing.T) {
	ctx := log.Testing(t)
	mem := memory.NewManager()
	shm := make([]byte, 64)
	copy(shm[8:], "main\x00")
	mem.Register(2, shm)
	c := cmdbuf.NewCommon(mem)

	b := &cmdbuf.Builder{}
	for _, test := range []struct {
		name   string
		words  []uint32
		expect cmdbuf.Error
	}{
		{"token", b.Cmd(cmdbuf.CmdSetToken, 42).Words(), cmdbuf.NoError},
		{"token arity", (&cmdbuf.Builder{}).Cmd(cmdbuf.CmdSetToken).Words(), cmdbuf.InvalidArguments},
		{"size", (&cmdbuf.Builder{}).Cmd(cmdbuf.CmdSetBucketSize, 1, 5).Words(), cmdbuf.NoError},
		{"data", (&cmdbuf.Builder{}).Cmd(cmdbuf.CmdSetBucketData, 1, 0, 5, 2, 8).Words(), cmdbuf.NoError},
		{"data past bucket", (&cmdbuf.Builder{}).Cmd(cmdbuf.CmdSetBucketData, 1, 1, 5, 2, 8).Words(), cmdbuf.InvalidArguments},
		{"data bad shm", (&cmdbuf.Builder{}).Cmd(cmdbuf.CmdSetBucketData, 1, 0, 5, 2, 62).Words(), cmdbuf.OutOfBounds},
		{"data unknown bucket", (&cmdbuf.Builder{}).Cmd(cmdbuf.CmdSetBucketData, 9, 0, 5, 2, 8).Words(), cmdbuf.InvalidArguments},
		{"too big", (&cmdbuf.Builder{}).Cmd(cmdbuf.CmdSetBucketSize, 1, cmdbuf.MaxBucketSize+1).Words(), cmdbuf.InvalidArguments},
		{"get data", (&cmdbuf.Builder{}).Cmd(cmdbuf.CmdGetBucketData, 1, 0, 4, 2, 32).Words(), cmdbuf.NoError},
		{"unknown", (&cmdbuf.Builder{}).Cmd(100).Words(), cmdbuf.UnknownCommand},
	} {
		assert.For(ctx, test.name).That(run(ctx, c, test.words)).Equals(test.expect)
	}
	assert.For(ctx, "token").That(c.Token()).Equals(uint32(42))
	s, ok := c.Bucket(1).AsString()
	assert.For(ctx, "string ok").ThatBoolean(ok).IsTrue()
	assert.For(ctx, "string").That(s).Equals("main")
	assert.For(ctx, "copied").That(string(shm[32:36])).Equals("main")
}

func TestBucketImmediateAndStart(t *testing.T) {
	ctx := log.Testing(t)
	mem := memory.NewManager()
	shm := make([]byte, 32)
	mem.Register(0, shm)
	c := cmdbuf.NewCommon(mem)

	b := &cmdbuf.Builder{}
	b.Cmd(cmdbuf.CmdSetBucketSize, 3, 3)
	assert.For(ctx, "size").That(run(ctx, c, b.Words())).Equals(cmdbuf.NoError)
	b.Reset()
	b.Immediate(cmdbuf.CmdSetBucketDataImmediate, []uint32{3, 0, 3}, []byte("ab\x00"))
	assert.For(ctx, "immediate").That(run(ctx, c, b.Words())).Equals(cmdbuf.NoError)
	b.Reset()
	b.Immediate(cmdbuf.CmdSetBucketDataImmediate, []uint32{3, 0, 8}, []byte("ab\x00"))
	assert.For(ctx, "immediate overrun").That(run(ctx, c, b.Words())).Equals(cmdbuf.OutOfBounds)

	b.Reset()
	b.Cmd(cmdbuf.CmdGetBucketStart, 3, 0, 0, 8, 0, 8)
	assert.For(ctx, "start").That(run(ctx, c, b.Words())).Equals(cmdbuf.NoError)
	assert.For(ctx, "start size").That(memory.Uint32(shm, 0)).Equals(uint32(3))
	assert.For(ctx, "start data").That(string(shm[8:10])).Equals("ab")
	assert.For(ctx, "start sentinel").That(run(ctx, c, b.Words())).Equals(cmdbuf.InvalidArguments)
}
