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

package resources

import (
	"strconv"
	"strings"

	"github.com/google/gpucmd/gles/gl"
)

// Shader is a shader object.
type Shader struct {
	Service    uint32
	Type       gl.Enum
	Source     string
	Translated string
	Compiled   bool
	InfoLog    string
	// DeletePending is set when the client deletes a shader that is still
	// attached to a program.
	DeletePending bool
	attached      int
}

func (s *Shader) ServiceID() uint32 { return s.Service }

// Attached returns the number of programs the shader is attached to.
func (s *Shader) Attached() int { return s.attached }

// AttribInfo describes an active vertex attribute of a linked program.
type AttribInfo struct {
	Name     string
	Type     gl.Enum
	Size     int32
	Location int32
}

// UniformInfo describes an active uniform of a linked program.
type UniformInfo struct {
	Name string
	Type gl.Enum
	Size int32
	// Locations holds the native location of each element.
	Locations []int32
	// Units holds the texture unit assigned to each element of a sampler.
	Units []int32
}

// IsSampler returns true if the uniform is a sampler.
func (u *UniformInfo) IsSampler() bool { return IsSamplerType(u.Type) }

// IsSamplerType returns true if ty is a sampler uniform type.
func IsSamplerType(ty gl.Enum) bool {
	switch ty {
	case gl.SAMPLER_2D, gl.SAMPLER_CUBE, gl.SAMPLER_3D, gl.SAMPLER_2D_ARRAY, gl.SAMPLER_EXTERNAL_OES:
		return true
	}
	return false
}

// Program is a program object.
type Program struct {
	Service  uint32
	Shaders  map[gl.Enum]*Shader
	Linked   bool
	InfoLog  string
	Attribs  []AttribInfo
	Uniforms []UniformInfo
	// AttribBindings holds the locations requested with BindAttribLocation,
	// applied at the next link.
	AttribBindings map[string]uint32
	DeletePending  bool
	uses           int
}

// NewProgram returns an unlinked program.
func NewProgram(service uint32) *Program {
	return &Program{
		Service:        service,
		Shaders:        map[gl.Enum]*Shader{},
		AttribBindings: map[string]uint32{},
	}
}

func (p *Program) ServiceID() uint32 { return p.Service }

// Attach attaches s, returning false if a shader of its type is attached.
func (p *Program) Attach(s *Shader) bool {
	if _, ok := p.Shaders[s.Type]; ok {
		return false
	}
	p.Shaders[s.Type] = s
	s.attached++
	return true
}

// Detach detaches s, returning false if it was not attached.
func (p *Program) Detach(s *Shader) bool {
	if p.Shaders[s.Type] != s {
		return false
	}
	delete(p.Shaders, s.Type)
	s.attached--
	return true
}

// AddUse marks the program as current in a context.
func (p *Program) AddUse() { p.uses++ }

// RemoveUse drops one use, returning true if the program is no longer in
// use anywhere.
func (p *Program) RemoveUse() bool {
	p.uses--
	return p.uses <= 0
}

// InUse returns true if the program is current in some context.
func (p *Program) InUse() bool { return p.uses > 0 }

// FakeLocation encodes a uniform index and array element as the location
// shown to clients.
func FakeLocation(index, element int32) int32 { return element<<16 | index }

func splitFakeLocation(fake int32) (index, element int32) { return fake & 0xffff, fake >> 16 }

// parseName splits "name[3]" into "name" and 3. Plain names have element 0.
func parseName(name string) (base string, element int32, ok bool) {
	i := strings.IndexByte(name, '[')
	if i < 0 {
		return name, 0, true
	}
	if !strings.HasSuffix(name, "]") {
		return "", 0, false
	}
	n, err := strconv.Atoi(name[i+1 : len(name)-1])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return name[:i], int32(n), true
}

// UniformLocation returns the client location of the named uniform element,
// or -1.
func (p *Program) UniformLocation(name string) int32 {
	base, element, ok := parseName(name)
	if !ok {
		return -1
	}
	for i := range p.Uniforms {
		u := &p.Uniforms[i]
		if strings.TrimSuffix(u.Name, "[0]") == base && element < u.Size {
			return FakeLocation(int32(i), element)
		}
	}
	return -1
}

// UniformAt resolves a client location to its uniform and element.
func (p *Program) UniformAt(fake int32) (u *UniformInfo, element int32, ok bool) {
	if fake < 0 {
		return nil, 0, false
	}
	index, element := splitFakeLocation(fake)
	if int(index) >= len(p.Uniforms) {
		return nil, 0, false
	}
	u = &p.Uniforms[index]
	if element >= u.Size {
		return nil, 0, false
	}
	return u, element, true
}

// AttribLocation returns the location of the named attribute, or -1.
func (p *Program) AttribLocation(name string) int32 {
	for _, a := range p.Attribs {
		if a.Name == name {
			return a.Location
		}
	}
	return -1
}

// AttribAt returns the active attribute at location, or nil.
func (p *Program) AttribAt(location uint32) *AttribInfo {
	for i := range p.Attribs {
		if p.Attribs[i].Location == int32(location) {
			return &p.Attribs[i]
		}
	}
	return nil
}

// SamplerUnits returns every texture unit read by the program's samplers,
// keyed by unit with the sampler type as value.
func (p *Program) SamplerUnits() map[int32]gl.Enum {
	units := map[int32]gl.Enum{}
	for _, u := range p.Uniforms {
		if u.IsSampler() {
			for _, unit := range u.Units {
				units[unit] = u.Type
			}
		}
	}
	return units
}
