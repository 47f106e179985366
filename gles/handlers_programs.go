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
	"fmt"
	"strings"

	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/core/math/u32"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/memory"
	"github.com/google/gpucmd/resources"
)

// activeResultSize is the size of a GetActiveAttrib or GetActiveUniform
// result: success, size and type words.
const activeResultSize = 3 * cmdbuf.WordSize

func (d *Decoder) getShader(ctx context.Context, fn string, client uint32) (*resources.Shader, bool) {
	s, ok := d.group.Shaders.Get(client)
	if !ok {
		d.setError(ctx, gl.INVALID_VALUE, fn, "unknown shader %d", client)
	}
	return s, ok
}

func (d *Decoder) getProgram(ctx context.Context, fn string, client uint32) (*resources.Program, bool) {
	p, ok := d.group.Programs.Get(client)
	if !ok {
		d.setError(ctx, gl.INVALID_VALUE, fn, "unknown program %d", client)
	}
	return p, ok
}

// logLength returns the length of s as reported by the INFO_LOG_LENGTH
// style queries, which count the terminator.
func logLength(s string) uint32 {
	if s == "" {
		return 0
	}
	return uint32(len(s) + 1)
}

func (d *Decoder) handleShaderSourceBucket(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	s, ok := d.getShader(ctx, "glShaderSource", args[0])
	if !ok {
		return cmdbuf.NoError
	}
	source, ok := d.bucketString(args[1])
	if !ok {
		return cmdbuf.InvalidArguments
	}
	s.Source = source
	return cmdbuf.NoError
}

func (d *Decoder) handleCompileShader(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	s, ok := d.getShader(ctx, "glCompileShader", args[0])
	if !ok {
		return cmdbuf.NoError
	}
	s.Compiled, s.Translated = false, ""
	res, err := d.translator.Translate(ctx, s.Type, s.Source)
	if err != nil {
		log.Bind(ctx, log.V{"shader": args[0]}).W("Translation failed: %v", err)
		s.InfoLog = err.Error()
		return cmdbuf.NoError
	}
	s.InfoLog = res.InfoLog
	if !res.Valid {
		return cmdbuf.NoError
	}
	s.Translated = res.Source
	d.gl.ShaderSource(s.Service, res.Source)
	d.gl.CompileShader(s.Service)
	s.Compiled = d.gl.GetShaderiv(s.Service, gl.COMPILE_STATUS) != 0
	if !s.Compiled {
		s.InfoLog += d.gl.GetShaderInfoLog(s.Service)
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleAttachShader(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glAttachShader"
	p, ok := d.getProgram(ctx, fn, args[0])
	if !ok {
		return cmdbuf.NoError
	}
	s, ok := d.getShader(ctx, fn, args[1])
	if !ok {
		return cmdbuf.NoError
	}
	if !p.Attach(s) {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "a %v shader is already attached", s.Type)
		return cmdbuf.NoError
	}
	d.gl.AttachShader(p.Service, s.Service)
	return cmdbuf.NoError
}

func (d *Decoder) handleDetachShader(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glDetachShader"
	p, ok := d.getProgram(ctx, fn, args[0])
	if !ok {
		return cmdbuf.NoError
	}
	s, ok := d.getShader(ctx, fn, args[1])
	if !ok {
		return cmdbuf.NoError
	}
	if !p.Detach(s) {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "shader %d is not attached", args[1])
		return cmdbuf.NoError
	}
	d.gl.DetachShader(p.Service, s.Service)
	if s.DeletePending && s.Attached() == 0 {
		d.gl.DeleteShader(s.Service)
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleBindAttribLocationBucket(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glBindAttribLocation"
	index := args[1]
	name, ok := d.bucketString(args[2])
	if !ok {
		return cmdbuf.InvalidArguments
	}
	p, ok := d.getProgram(ctx, fn, args[0])
	if !ok {
		return cmdbuf.NoError
	}
	if index >= d.limits.MaxVertexAttribs {
		d.setError(ctx, gl.INVALID_VALUE, fn, "index %d out of range", index)
		return cmdbuf.NoError
	}
	if strings.HasPrefix(name, "gl_") {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "reserved name %q", name)
		return cmdbuf.NoError
	}
	p.AttribBindings[name] = index
	d.gl.BindAttribLocation(p.Service, index, name)
	return cmdbuf.NoError
}

func (d *Decoder) handleLinkProgram(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	p, ok := d.getProgram(ctx, "glLinkProgram", args[0])
	if !ok {
		return cmdbuf.NoError
	}
	d.exitEarly()
	p.Linked, p.Attribs, p.Uniforms = false, nil, nil
	d.gl.LinkProgram(p.Service)
	p.InfoLog = d.gl.GetProgramInfoLog(p.Service)
	if d.gl.GetProgramiv(p.Service, gl.LINK_STATUS) == 0 {
		log.D(ctx, "Program %d failed to link: %s", args[0], p.InfoLog)
		return cmdbuf.NoError
	}
	p.Linked = true
	d.readProgramInterface(p)
	return cmdbuf.NoError
}

// readProgramInterface fills the active attributes and uniforms of a
// freshly linked program.
func (d *Decoder) readProgramInterface(p *resources.Program) {
	n := d.gl.GetProgramiv(p.Service, gl.ACTIVE_ATTRIBUTES)
	for i := int32(0); i < n; i++ {
		name, size, ty := d.gl.GetActiveAttrib(p.Service, uint32(i))
		p.Attribs = append(p.Attribs, resources.AttribInfo{
			Name:     name,
			Type:     ty,
			Size:     size,
			Location: d.gl.GetAttribLocation(p.Service, name),
		})
	}
	n = d.gl.GetProgramiv(p.Service, gl.ACTIVE_UNIFORMS)
	for i := int32(0); i < n; i++ {
		name, size, ty := d.gl.GetActiveUniform(p.Service, uint32(i))
		u := resources.UniformInfo{Name: name, Type: ty, Size: size, Locations: make([]int32, size)}
		base := strings.TrimSuffix(name, "[0]")
		for e := int32(0); e < size; e++ {
			element := name
			if size > 1 {
				element = fmt.Sprintf("%s[%d]", base, e)
			}
			u.Locations[e] = d.gl.GetUniformLocation(p.Service, element)
		}
		if u.IsSampler() {
			u.Units = make([]int32, size)
		}
		p.Uniforms = append(p.Uniforms, u)
	}
}

func (d *Decoder) handleUseProgram(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glUseProgram"
	var p *resources.Program
	if args[0] != 0 {
		var ok bool
		if p, ok = d.getProgram(ctx, fn, args[0]); !ok {
			return cmdbuf.NoError
		}
		if !p.Linked {
			d.setError(ctx, gl.INVALID_OPERATION, fn, "program %d not linked", args[0])
			return cmdbuf.NoError
		}
	}
	if p == d.state.Program {
		return cmdbuf.NoError
	}
	if p != nil {
		p.AddUse()
	}
	if old := d.state.Program; old != nil {
		d.releaseProgramUse(ctx, old)
	}
	d.state.Program = p
	d.gl.UseProgram(programService(p))
	return cmdbuf.NoError
}

func (d *Decoder) handleValidateProgram(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	p, ok := d.getProgram(ctx, "glValidateProgram", args[0])
	if !ok {
		return cmdbuf.NoError
	}
	d.gl.ValidateProgram(p.Service)
	return cmdbuf.NoError
}

func (d *Decoder) handleGetProgramiv(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glGetProgramiv"
	pname := gl.Enum(args[1])
	r, err := d.sizedResult(int32(args[2]), args[3], 1)
	if err != cmdbuf.NoError {
		return err
	}
	if !d.validators.programParameter.has(pname) {
		d.invalidEnum(ctx, fn, pname, "pname")
		return cmdbuf.NoError
	}
	p, ok := d.getProgram(ctx, fn, args[0])
	if !ok {
		return cmdbuf.NoError
	}
	var v uint32
	switch pname {
	case gl.DELETE_STATUS:
		v = cmdbuf.Bool(p.DeletePending)
	case gl.LINK_STATUS:
		v = cmdbuf.Bool(p.Linked)
	case gl.INFO_LOG_LENGTH:
		v = logLength(p.InfoLog)
	case gl.ATTACHED_SHADERS:
		v = uint32(len(p.Shaders))
	case gl.ACTIVE_ATTRIBUTES:
		v = uint32(len(p.Attribs))
	case gl.ACTIVE_UNIFORMS:
		v = uint32(len(p.Uniforms))
	case gl.ACTIVE_ATTRIBUTE_MAX_LENGTH:
		for _, a := range p.Attribs {
			v = u32.Max(v, logLength(a.Name))
		}
	case gl.ACTIVE_UNIFORM_MAX_LENGTH:
		for _, u := range p.Uniforms {
			v = u32.Max(v, logLength(u.Name))
		}
	default:
		v = uint32(d.gl.GetProgramiv(p.Service, pname))
	}
	r.set([]uint32{v})
	return cmdbuf.NoError
}

func (d *Decoder) handleGetShaderiv(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glGetShaderiv"
	pname := gl.Enum(args[1])
	r, err := d.sizedResult(int32(args[2]), args[3], 1)
	if err != cmdbuf.NoError {
		return err
	}
	if !d.validators.shaderParameter.has(pname) {
		d.invalidEnum(ctx, fn, pname, "pname")
		return cmdbuf.NoError
	}
	s, ok := d.getShader(ctx, fn, args[0])
	if !ok {
		return cmdbuf.NoError
	}
	var v uint32
	switch pname {
	case gl.SHADER_TYPE:
		v = uint32(s.Type)
	case gl.DELETE_STATUS:
		v = cmdbuf.Bool(s.DeletePending)
	case gl.COMPILE_STATUS:
		v = cmdbuf.Bool(s.Compiled)
	case gl.INFO_LOG_LENGTH:
		v = logLength(s.InfoLog)
	case gl.SHADER_SOURCE_LENGTH:
		v = logLength(s.Source)
	}
	r.set([]uint32{v})
	return cmdbuf.NoError
}

func (d *Decoder) handleGetProgramInfoLog(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	p, ok := d.getProgram(ctx, "glGetProgramInfoLog", args[0])
	if !ok {
		return cmdbuf.NoError
	}
	d.common.CreateBucket(args[1]).SetString(p.InfoLog)
	return cmdbuf.NoError
}

func (d *Decoder) handleGetShaderInfoLog(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	s, ok := d.getShader(ctx, "glGetShaderInfoLog", args[0])
	if !ok {
		return cmdbuf.NoError
	}
	d.common.CreateBucket(args[1]).SetString(s.InfoLog)
	return cmdbuf.NoError
}

// activeResult resolves a GetActive* result, whose success word must be 0.
func (d *Decoder) activeResult(id int32, offset uint32) ([]byte, cmdbuf.Error) {
	b, err := d.resolveResult(id, offset, activeResultSize)
	if err != cmdbuf.NoError {
		return nil, err
	}
	if memory.Uint32(b, 0) != 0 {
		return nil, cmdbuf.InvalidArguments
	}
	return b, cmdbuf.NoError
}

func putActive(b []byte, size int32, ty gl.Enum) {
	memory.PutUint32(b, 0, 1)
	memory.PutUint32(b, 4, uint32(size))
	memory.PutUint32(b, 8, uint32(ty))
}

func (d *Decoder) handleGetActiveAttrib(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glGetActiveAttrib"
	index := args[1]
	b, err := d.activeResult(int32(args[3]), args[4])
	if err != cmdbuf.NoError {
		return err
	}
	p, ok := d.getProgram(ctx, fn, args[0])
	if !ok {
		return cmdbuf.NoError
	}
	if index >= uint32(len(p.Attribs)) {
		d.setError(ctx, gl.INVALID_VALUE, fn, "index %d out of range", index)
		return cmdbuf.NoError
	}
	a := p.Attribs[index]
	d.common.CreateBucket(args[2]).SetString(a.Name)
	putActive(b, a.Size, a.Type)
	return cmdbuf.NoError
}

func (d *Decoder) handleGetActiveUniform(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glGetActiveUniform"
	index := args[1]
	b, err := d.activeResult(int32(args[3]), args[4])
	if err != cmdbuf.NoError {
		return err
	}
	p, ok := d.getProgram(ctx, fn, args[0])
	if !ok {
		return cmdbuf.NoError
	}
	if index >= uint32(len(p.Uniforms)) {
		d.setError(ctx, gl.INVALID_VALUE, fn, "index %d out of range", index)
		return cmdbuf.NoError
	}
	u := p.Uniforms[index]
	d.common.CreateBucket(args[2]).SetString(u.Name)
	putActive(b, u.Size, u.Type)
	return cmdbuf.NoError
}

// linkedProgram returns the linked program for a location query.
func (d *Decoder) linkedProgram(ctx context.Context, fn string, client uint32) (*resources.Program, bool) {
	p, ok := d.getProgram(ctx, fn, client)
	if !ok {
		return nil, false
	}
	if !p.Linked {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "program %d not linked", client)
		return nil, false
	}
	return p, true
}

func (d *Decoder) handleGetAttribLocation(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glGetAttribLocation"
	b, err := d.locationResult(int32(args[2]), args[3])
	if err != cmdbuf.NoError {
		return err
	}
	name, ok := d.bucketString(args[1])
	if !ok {
		return cmdbuf.InvalidArguments
	}
	p, ok := d.linkedProgram(ctx, fn, args[0])
	if !ok {
		return cmdbuf.NoError
	}
	memory.PutUint32(b, 0, uint32(p.AttribLocation(name)))
	return cmdbuf.NoError
}

func (d *Decoder) handleGetUniformLocation(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glGetUniformLocation"
	b, err := d.locationResult(int32(args[2]), args[3])
	if err != cmdbuf.NoError {
		return err
	}
	name, ok := d.bucketString(args[1])
	if !ok {
		return cmdbuf.InvalidArguments
	}
	p, ok := d.linkedProgram(ctx, fn, args[0])
	if !ok {
		return cmdbuf.NoError
	}
	memory.PutUint32(b, 0, uint32(p.UniformLocation(name)))
	return cmdbuf.NoError
}
