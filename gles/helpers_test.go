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
	"testing"

	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/config"
	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/driver/fake"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/memory"
)

// shm is the id of the shared memory region every test decoder can read.
const shm = 1

type harness struct {
	ctx context.Context
	gl  *fake.GL
	mem []byte
	d   *Decoder
}

// newHarness returns an offscreen ES3 decoder over a fake context. edit, if
// not nil, may change the options before the decoder is made.
func newHarness(ctx context.Context, edit func(*Options)) *harness {
	h := &harness{ctx: ctx, gl: fake.New(), mem: make([]byte, 4096)}
	mem := memory.NewManager()
	assert.For(ctx, "register shm").ThatError(mem.Register(shm, h.mem)).Succeeded()
	o := Options{GL: h.gl, Memory: mem, Config: config.Default()}
	if edit != nil {
		edit(&o)
	}
	d, err := New(ctx, o)
	assert.For(ctx, "New").ThatError(err).Succeeded()
	h.d = d
	h.gl.ResetCalls()
	return h
}

func newTestDecoder(t *testing.T) *harness {
	return newHarness(log.Testing(t), nil)
}

// run decodes every record of b and returns the last result.
func (h *harness) run(b *cmdbuf.Builder) cmdbuf.Error {
	err, _ := h.d.DoCommands(h.ctx, 0, b.Words())
	return err
}

// cmd decodes a single record.
func (h *harness) cmd(id uint32, args ...uint32) cmdbuf.Error {
	return h.run((&cmdbuf.Builder{}).Cmd(id, args...))
}

func (h *harness) imm(id uint32, args []uint32, data []byte) cmdbuf.Error {
	return h.run((&cmdbuf.Builder{}).Immediate(id, args, data))
}

// ok runs a single record and expects NoError.
func (h *harness) ok(name string, id uint32, args ...uint32) {
	assert.For(h.ctx, name).That(h.cmd(id, args...)).Equals(cmdbuf.NoError)
}

// glError pops the next pending client error.
func (h *harness) glError() gl.Enum { return h.d.GetError(h.ctx) }

func (h *harness) expectError(name string, want gl.Enum) {
	assert.For(h.ctx, "%s error", name).That(h.glError()).Equals(want)
}

// ids returns the immediate data of a Gen or Delete record.
func ids(v ...uint32) []uint32 { return append([]uint32{uint32(len(v))}, v...) }

// setBucket stores s in bucket id.
func (h *harness) setBucket(id uint32, s string) {
	h.d.Common().CreateBucket(id).SetString(s)
}

// result returns the word at offset in shared memory.
func (h *harness) result(offset int) uint32 { return memory.Uint32(h.mem, offset) }

func (h *harness) setResult(offset int, v uint32) { memory.PutUint32(h.mem, offset, v) }

const (
	vertexSource = `attribute vec4 position;
uniform mat4 transform;
uniform float weights[3];
void main() { gl_Position = transform * position; }
`
	fragmentSource = `precision mediump float;
uniform vec4 color;
uniform sampler2D image;
void main() { gl_FragColor = color; }
`
)

// Uniform locations of the test program, in declaration order.
var (
	transformLocation = int32(0)
	weightsLocation   = int32(1)
	colorLocation     = int32(2)
	imageLocation     = int32(3)
)

// linkProgram builds, links and uses program 1 from shaders 1 and 2.
func (h *harness) linkProgram() {
	h.setBucket(1, vertexSource)
	h.setBucket(2, fragmentSource)
	h.ok("create vs", CmdCreateShader, uint32(gl.VERTEX_SHADER), 1)
	h.ok("create fs", CmdCreateShader, uint32(gl.FRAGMENT_SHADER), 2)
	h.ok("vs source", CmdShaderSourceBucket, 1, 1)
	h.ok("fs source", CmdShaderSourceBucket, 2, 2)
	h.ok("compile vs", CmdCompileShader, 1)
	h.ok("compile fs", CmdCompileShader, 2)
	h.ok("create program", CmdCreateProgram, 1)
	h.ok("attach vs", CmdAttachShader, 1, 1)
	h.ok("attach fs", CmdAttachShader, 1, 2)
	h.ok("link", CmdLinkProgram, 1)
	h.ok("use", CmdUseProgram, 1)
	h.expectError("link program", gl.NO_ERROR)
}
