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

package fake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/gpucmd/gles/gl"
)

// Variable is an attribute or uniform declared by a fake shader.
type Variable struct {
	Name     string
	Type     gl.Enum
	Size     int32
	Location int32
}

// Shader is a fake shader object.
type Shader struct {
	Type     gl.Enum
	Source   string
	Compiled bool
	InfoLog  string
	inputs   []Variable
	uniforms []Variable
}

// Program is a fake program object.
type Program struct {
	Shaders  map[uint32]bool
	Linked   bool
	InfoLog  string
	Bindings map[string]uint32
	Attribs  []Variable
	Uniforms []Variable
}

var (
	declRE = regexp.MustCompile(`(?m)^\s*(attribute|in|uniform)\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[(\d+)\])?\s*;`)

	glslTypes = map[string]gl.Enum{
		"float": gl.FLOAT, "vec2": gl.FLOAT_VEC2, "vec3": gl.FLOAT_VEC3, "vec4": gl.FLOAT_VEC4,
		"int": gl.INT, "ivec2": gl.INT_VEC2, "ivec3": gl.INT_VEC3, "ivec4": gl.INT_VEC4,
		"uint": gl.UNSIGNED_INT, "uvec2": gl.UNSIGNED_INT_VEC2, "uvec3": gl.UNSIGNED_INT_VEC3, "uvec4": gl.UNSIGNED_INT_VEC4,
		"bool": gl.BOOL, "bvec2": gl.BOOL_VEC2, "bvec3": gl.BOOL_VEC3, "bvec4": gl.BOOL_VEC4,
		"mat2": gl.FLOAT_MAT2, "mat3": gl.FLOAT_MAT3, "mat4": gl.FLOAT_MAT4,
		"sampler2D": gl.SAMPLER_2D, "samplerCube": gl.SAMPLER_CUBE, "sampler3D": gl.SAMPLER_3D,
		"sampler2DArray": gl.SAMPLER_2D_ARRAY, "samplerExternalOES": gl.SAMPLER_EXTERNAL_OES,
	}
)

func (f *GL) CreateShader(ty gl.Enum) uint32 {
	f.record("CreateShader")
	id := f.gen(1, "shader")[0]
	f.Shaders[id] = &Shader{Type: ty}
	return id
}

func (f *GL) DeleteShader(id uint32) {
	f.record("DeleteShader")
	f.del([]uint32{id}, "shader")
	delete(f.Shaders, id)
}

func (f *GL) ShaderSource(id uint32, source string) {
	f.record("ShaderSource")
	if s := f.Shaders[id]; s != nil {
		s.Source = source
	}
}

// CompileShader succeeds for any source holding a main function and only
// declarations of known types.
func (f *GL) CompileShader(id uint32) {
	f.record("CompileShader")
	s := f.Shaders[id]
	if s == nil {
		f.PushError(gl.INVALID_VALUE)
		return
	}
	s.Compiled, s.InfoLog, s.inputs, s.uniforms = false, "", nil, nil
	if !strings.Contains(s.Source, "void main") {
		s.InfoLog = "ERROR: missing main function"
		return
	}
	for _, m := range declRE.FindAllStringSubmatch(s.Source, -1) {
		ty, ok := glslTypes[m[2]]
		if !ok {
			s.InfoLog = fmt.Sprintf("ERROR: unknown type %q", m[2])
			return
		}
		size := int32(1)
		if m[4] != "" {
			n, _ := strconv.Atoi(m[4])
			size = int32(n)
		}
		v := Variable{Name: m[3], Type: ty, Size: size, Location: -1}
		switch {
		case m[1] == "uniform":
			s.uniforms = append(s.uniforms, v)
		case s.Type == gl.VERTEX_SHADER:
			s.inputs = append(s.inputs, v)
		}
	}
	s.Compiled = true
}

func (f *GL) GetShaderiv(id uint32, pname gl.Enum) int32 {
	f.record("GetShaderiv")
	s := f.Shaders[id]
	if s == nil {
		f.PushError(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		return boolInt(s.Compiled)
	case gl.SHADER_TYPE:
		return int32(s.Type)
	case gl.INFO_LOG_LENGTH:
		return infoLogLength(s.InfoLog)
	case gl.SHADER_SOURCE_LENGTH:
		return infoLogLength(s.Source)
	}
	f.PushError(gl.INVALID_ENUM)
	return 0
}

func (f *GL) GetShaderInfoLog(id uint32) string {
	f.record("GetShaderInfoLog")
	if s := f.Shaders[id]; s != nil {
		return s.InfoLog
	}
	return ""
}

func (f *GL) CreateProgram() uint32 {
	f.record("CreateProgram")
	id := f.gen(1, "program")[0]
	f.Programs[id] = &Program{Shaders: map[uint32]bool{}, Bindings: map[string]uint32{}}
	return id
}

func (f *GL) DeleteProgram(id uint32) {
	f.record("DeleteProgram")
	f.del([]uint32{id}, "program")
	delete(f.Programs, id)
}

func (f *GL) AttachShader(program, shader uint32) {
	f.record("AttachShader")
	if p := f.Programs[program]; p != nil {
		p.Shaders[shader] = true
	}
}

func (f *GL) DetachShader(program, shader uint32) {
	f.record("DetachShader")
	if p := f.Programs[program]; p != nil {
		delete(p.Shaders, shader)
	}
}

func (f *GL) BindAttribLocation(program, index uint32, name string) {
	f.record("BindAttribLocation")
	if p := f.Programs[program]; p != nil {
		p.Bindings[name] = index
	}
}

// LinkProgram requires one compiled vertex and one compiled fragment shader.
// Attributes take their bound locations, or the lowest free ones. Uniforms
// are laid out in declaration order, one location per array element.
func (f *GL) LinkProgram(id uint32) {
	f.record("LinkProgram")
	p := f.Programs[id]
	if p == nil {
		f.PushError(gl.INVALID_VALUE)
		return
	}
	p.Linked, p.InfoLog, p.Attribs, p.Uniforms = false, "", nil, nil
	var vs, fs *Shader
	for sid := range p.Shaders {
		s := f.Shaders[sid]
		switch {
		case s == nil || !s.Compiled:
			p.InfoLog = "ERROR: attached shader not compiled"
			return
		case s.Type == gl.VERTEX_SHADER:
			vs = s
		case s.Type == gl.FRAGMENT_SHADER:
			fs = s
		}
	}
	if vs == nil || fs == nil {
		p.InfoLog = "ERROR: missing vertex or fragment shader"
		return
	}

	used := map[int32]bool{}
	for _, a := range vs.inputs {
		if loc, ok := p.Bindings[a.Name]; ok {
			a.Location = int32(loc)
			used[a.Location] = true
		}
		p.Attribs = append(p.Attribs, a)
	}
	next := int32(0)
	for i := range p.Attribs {
		if p.Attribs[i].Location >= 0 {
			continue
		}
		for used[next] {
			next++
		}
		p.Attribs[i].Location = next
		used[next] = true
	}

	seen := map[string]bool{}
	loc := int32(0)
	for _, s := range []*Shader{vs, fs} {
		for _, u := range s.uniforms {
			if seen[u.Name] {
				continue
			}
			seen[u.Name] = true
			u.Location = loc
			loc += u.Size
			p.Uniforms = append(p.Uniforms, u)
		}
	}
	p.Linked = true
}

func (f *GL) UseProgram(id uint32) {
	f.record("UseProgram")
	f.CurrentProgram = id
}

func (f *GL) ValidateProgram(id uint32) { f.record("ValidateProgram") }

func (f *GL) GetProgramiv(id uint32, pname gl.Enum) int32 {
	f.record("GetProgramiv")
	p := f.Programs[id]
	if p == nil {
		f.PushError(gl.INVALID_VALUE)
		return 0
	}
	switch pname {
	case gl.LINK_STATUS, gl.VALIDATE_STATUS:
		return boolInt(p.Linked)
	case gl.ACTIVE_ATTRIBUTES:
		return int32(len(p.Attribs))
	case gl.ACTIVE_UNIFORMS:
		return int32(len(p.Uniforms))
	case gl.ATTACHED_SHADERS:
		return int32(len(p.Shaders))
	case gl.INFO_LOG_LENGTH:
		return infoLogLength(p.InfoLog)
	}
	f.PushError(gl.INVALID_ENUM)
	return 0
}

func (f *GL) GetProgramInfoLog(id uint32) string {
	f.record("GetProgramInfoLog")
	if p := f.Programs[id]; p != nil {
		return p.InfoLog
	}
	return ""
}

func (f *GL) GetActiveAttrib(program, index uint32) (string, int32, gl.Enum) {
	f.record("GetActiveAttrib")
	p := f.Programs[program]
	if p == nil || int(index) >= len(p.Attribs) {
		f.PushError(gl.INVALID_VALUE)
		return "", 0, 0
	}
	a := p.Attribs[index]
	return a.Name, a.Size, a.Type
}

func (f *GL) GetActiveUniform(program, index uint32) (string, int32, gl.Enum) {
	f.record("GetActiveUniform")
	p := f.Programs[program]
	if p == nil || int(index) >= len(p.Uniforms) {
		f.PushError(gl.INVALID_VALUE)
		return "", 0, 0
	}
	u := p.Uniforms[index]
	name := u.Name
	if u.Size > 1 {
		name += "[0]"
	}
	return name, u.Size, u.Type
}

func (f *GL) GetAttribLocation(program uint32, name string) int32 {
	f.record("GetAttribLocation")
	if p := f.Programs[program]; p != nil {
		for _, a := range p.Attribs {
			if a.Name == name {
				return a.Location
			}
		}
	}
	return -1
}

func (f *GL) GetUniformLocation(program uint32, name string) int32 {
	f.record("GetUniformLocation")
	p := f.Programs[program]
	if p == nil {
		return -1
	}
	base, element := name, int32(0)
	if i := strings.IndexByte(name, '['); i >= 0 && strings.HasSuffix(name, "]") {
		n, err := strconv.Atoi(name[i+1 : len(name)-1])
		if err != nil {
			return -1
		}
		base, element = name[:i], int32(n)
	}
	for _, u := range p.Uniforms {
		if u.Name == base && element < u.Size {
			return u.Location + element
		}
	}
	return -1
}

func (f *GL) Uniformiv(location int32, components int, v []int32) {
	f.record("Uniformiv")
	for i := 0; i*components < len(v); i++ {
		f.IntUniforms[location+int32(i)] = append([]int32(nil), v[i*components:(i+1)*components]...)
	}
}

func (f *GL) Uniformfv(location int32, components int, v []float32) {
	f.record("Uniformfv")
	for i := 0; i*components < len(v); i++ {
		f.FloatUniforms[location+int32(i)] = append([]float32(nil), v[i*components:(i+1)*components]...)
	}
}

func (f *GL) UniformMatrixfv(location int32, dim int, transpose bool, v []float32) {
	f.record("UniformMatrixfv")
	f.Uniformfv(location, dim*dim, v)
	f.Calls = f.Calls[:len(f.Calls)-1]
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func infoLogLength(s string) int32 {
	if s == "" {
		return 0
	}
	return int32(len(s) + 1)
}
