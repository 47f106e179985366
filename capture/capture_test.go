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

package capture_test

import (
	"bytes"
	"testing"

	"github.com/google/gpucmd/capture"
	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/memory"
)

func TestWriteRead(t *testing.T) {
	ctx := log.Testing(t)
	b := &cmdbuf.Builder{}
	b.Cmd(cmdbuf.CmdSetToken, 7).Cmd(cmdbuf.CmdNoop)
	c := &capture.Capture{
		Name:    "frame",
		Regions: []capture.Region{{ID: 1, Data: []byte{1, 2, 3, 4}}, {ID: -1, Data: nil}},
		Submits: [][]uint32{b.Words(), {}},
	}
	buf := &bytes.Buffer{}
	assert.For(ctx, "write").ThatError(capture.Write(buf, c)).Succeeded()
	got, err := capture.Read(buf)
	assert.For(ctx, "read").ThatError(err).Succeeded()
	assert.For(ctx, "name").That(got.Name).Equals("frame")
	assert.For(ctx, "regions").ThatSlice(got.Regions).IsLength(2)
	assert.For(ctx, "region id").That(got.Regions[1].ID).Equals(int32(-1))
	assert.For(ctx, "region data").ThatSlice(got.Regions[0].Data).Equals([]byte{1, 2, 3, 4})
	assert.For(ctx, "submits").ThatSlice(got.Submits).IsLength(2)
	assert.For(ctx, "words").ThatSlice(got.Submits[0]).Equals(b.Words())
	assert.For(ctx, "empty submit").ThatSlice(got.Submits[1]).IsEmpty()
}

func TestDecodeErrors(t *testing.T) {
	ctx := log.Testing(t)
	_, err := capture.Decode([]byte("nope"))
	assert.For(ctx, "magic").ThatError(err).HasCause(capture.ErrBadMagic)

	good := (&capture.Capture{Name: "x", Submits: [][]uint32{{1, 2}}}).Encode()
	_, err = capture.Decode(good[:len(good)-1])
	assert.For(ctx, "truncated").ThatError(err).HasCause(capture.ErrMalformed)
}

func TestRegister(t *testing.T) {
	ctx := log.Testing(t)
	c := &capture.Capture{Regions: []capture.Region{{ID: 3, Data: make([]byte, 8)}}}
	m := memory.NewManager()
	assert.For(ctx, "register").ThatError(c.Register(m)).Succeeded()
	assert.For(ctx, "size").ThatInteger(m.Size(3)).Equals(8)
	assert.For(ctx, "again").ThatError(c.Register(m)).HasCause(memory.ErrDuplicateID)
}
