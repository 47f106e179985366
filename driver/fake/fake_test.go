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

package fake_test

import (
	"testing"

	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/driver/fake"
	"github.com/google/gpucmd/gles/gl"
)

const (
	vertexSource = `
attribute vec4 a_position;
in ivec2 a_index;
uniform mat4 u_mvp;
void main() {}`
	fragmentSource = `
precision mediump float;
uniform vec4 u_colors[3];
uniform sampler2D u_tex;
void main() {}`
)

func TestLinkProgram(t *testing.T) {
	ctx := log.Testing(t)
	f := fake.New()
	vs, fs := f.CreateShader(gl.VERTEX_SHADER), f.CreateShader(gl.FRAGMENT_SHADER)
	f.ShaderSource(vs, vertexSource)
	f.ShaderSource(fs, fragmentSource)
	f.CompileShader(vs)
	f.CompileShader(fs)
	assert.For(ctx, "vs compiled").That(f.GetShaderiv(vs, gl.COMPILE_STATUS)).Equals(int32(1))
	p := f.CreateProgram()
	f.AttachShader(p, vs)
	f.AttachShader(p, fs)
	f.BindAttribLocation(p, 3, "a_index")
	f.LinkProgram(p)
	assert.For(ctx, "linked").That(f.GetProgramiv(p, gl.LINK_STATUS)).Equals(int32(1))
	assert.For(ctx, "attribs").That(f.GetProgramiv(p, gl.ACTIVE_ATTRIBUTES)).Equals(int32(2))
	assert.For(ctx, "a_position").That(f.GetAttribLocation(p, "a_position")).Equals(int32(0))
	assert.For(ctx, "a_index").That(f.GetAttribLocation(p, "a_index")).Equals(int32(3))
	_, _, ty := f.GetActiveAttrib(p, 1)
	assert.For(ctx, "a_index type").That(ty).Equals(gl.INT_VEC2)
	assert.For(ctx, "u_mvp").That(f.GetUniformLocation(p, "u_mvp")).Equals(int32(0))
	assert.For(ctx, "u_colors[2]").That(f.GetUniformLocation(p, "u_colors[2]")).Equals(int32(3))
	assert.For(ctx, "u_colors[3]").That(f.GetUniformLocation(p, "u_colors[3]")).Equals(int32(-1))
	assert.For(ctx, "u_tex").That(f.GetUniformLocation(p, "u_tex")).Equals(int32(4))
	name, size, _ := f.GetActiveUniform(p, 1)
	assert.For(ctx, "array name").That(name).Equals("u_colors[0]")
	assert.For(ctx, "array size").That(size).Equals(int32(3))
}

func TestCompileFailure(t *testing.T) {
	ctx := log.Testing(t)
	f := fake.New()
	s := f.CreateShader(gl.FRAGMENT_SHADER)
	f.ShaderSource(s, "uniform vec4 x;")
	f.CompileShader(s)
	assert.For(ctx, "compiled").That(f.GetShaderiv(s, gl.COMPILE_STATUS)).Equals(int32(0))
	assert.For(ctx, "log").That(f.GetShaderInfoLog(s)).Equals("ERROR: missing main function")
}

func TestErrorsAndFences(t *testing.T) {
	ctx := log.Testing(t)
	f := fake.New()
	f.PushError(gl.INVALID_VALUE)
	assert.For(ctx, "first").That(f.GetError()).Equals(gl.INVALID_VALUE)
	assert.For(ctx, "drained").That(f.GetError()).Equals(gl.NO_ERROR)

	s := f.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
	assert.For(ctx, "unsignaled").That(f.SyncStatus(s)).Equals(gl.UNSIGNALED)
	f.Finish()
	assert.For(ctx, "signaled").That(f.SyncStatus(s)).Equals(gl.SIGNALED)

	f.Lose(gl.GUILTY_CONTEXT_RESET)
	assert.For(ctx, "lost error").That(f.GetError()).Equals(gl.CONTEXT_LOST)
	assert.For(ctx, "reset").That(f.GetGraphicsResetStatus()).Equals(gl.GUILTY_CONTEXT_RESET)
	assert.For(ctx, "count").ThatInteger(f.Count("GetError")).Equals(3)
}
