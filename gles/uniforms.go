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

	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/core/math/u32"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/resources"
)

// uniformSetter describes the uniform types one Uniform entry point may
// write.
type uniformSetter struct {
	fn         string
	components int
	types      []gl.Enum
}

func (s *uniformSetter) accepts(ty gl.Enum) bool {
	for _, t := range s.types {
		if t == ty {
			return true
		}
	}
	return false
}

var (
	uniform1f = uniformSetter{"glUniform1f", 1, []gl.Enum{gl.FLOAT, gl.BOOL}}
	uniform1i = uniformSetter{"glUniform1i", 1, []gl.Enum{gl.INT, gl.BOOL,
		gl.SAMPLER_2D, gl.SAMPLER_CUBE, gl.SAMPLER_3D, gl.SAMPLER_2D_ARRAY, gl.SAMPLER_EXTERNAL_OES}}
	uniform4f        = uniformSetter{"glUniform4f", 4, []gl.Enum{gl.FLOAT_VEC4, gl.BOOL_VEC4}}
	uniform4i        = uniformSetter{"glUniform4i", 4, []gl.Enum{gl.INT_VEC4, gl.BOOL_VEC4}}
	uniformMatrix4fv = uniformSetter{"glUniformMatrix4fv", 16, []gl.Enum{gl.FLOAT_MAT4}}
)

// uniformTarget is the native destination of a uniform write.
type uniformTarget struct {
	info     *resources.UniformInfo
	element  int32
	location int32
	count    int32
}

// uniformTarget resolves a client location of the current program. It
// returns false without recording an error for location -1.
func (d *Decoder) uniformTarget(ctx context.Context, s *uniformSetter, location, count int32) (uniformTarget, bool) {
	if count < 0 {
		d.setError(ctx, gl.INVALID_VALUE, s.fn, "count < 0")
		return uniformTarget{}, false
	}
	p := d.state.Program
	if p == nil {
		d.setError(ctx, gl.INVALID_OPERATION, s.fn, "no program in use")
		return uniformTarget{}, false
	}
	if location == -1 {
		return uniformTarget{}, false
	}
	u, element, ok := p.UniformAt(location)
	if !ok {
		d.setError(ctx, gl.INVALID_OPERATION, s.fn, "unknown location %d", location)
		return uniformTarget{}, false
	}
	if !s.accepts(u.Type) {
		d.setError(ctx, gl.INVALID_OPERATION, s.fn, "wrong type for %s (%v)", u.Name, u.Type)
		return uniformTarget{}, false
	}
	if count > 1 && u.Size == 1 {
		d.setError(ctx, gl.INVALID_OPERATION, s.fn, "count %d for non-array %s", count, u.Name)
		return uniformTarget{}, false
	}
	if remaining := u.Size - element; count > remaining {
		count = remaining
	}
	return uniformTarget{info: u, element: element, location: u.Locations[element], count: count}, true
}

// isBoolType returns true for the boolean uniform types, which have no
// native entry point of their own.
func isBoolType(ty gl.Enum) bool {
	switch ty {
	case gl.BOOL, gl.BOOL_VEC2, gl.BOOL_VEC3, gl.BOOL_VEC4:
		return true
	}
	return false
}

// setSamplerUnits checks and records the units assigned to a sampler.
func (d *Decoder) setSamplerUnits(ctx context.Context, fn string, t uniformTarget, units []int32) bool {
	for _, unit := range units {
		if unit < 0 || uint32(unit) >= d.limits.MaxTextureUnits {
			d.setError(ctx, gl.INVALID_VALUE, fn, "texture unit %d out of range", unit)
			return false
		}
	}
	copy(t.info.Units[t.element:], units)
	return true
}

// setInts writes count integer values, components per element.
func (d *Decoder) setInts(ctx context.Context, s *uniformSetter, location, count int32, words []uint32) {
	t, ok := d.uniformTarget(ctx, s, location, count)
	if !ok || t.count == 0 {
		return
	}
	v := make([]int32, int(t.count)*s.components)
	for i := range v {
		v[i] = int32(words[i])
	}
	if t.info.IsSampler() && !d.setSamplerUnits(ctx, s.fn, t, v) {
		return
	}
	d.gl.Uniformiv(t.location, s.components, v)
}

// setFloats writes count float values, components per element. Booleans
// are written as integers.
func (d *Decoder) setFloats(ctx context.Context, s *uniformSetter, location, count int32, words []uint32) {
	t, ok := d.uniformTarget(ctx, s, location, count)
	if !ok || t.count == 0 {
		return
	}
	n := int(t.count) * s.components
	if isBoolType(t.info.Type) {
		v := make([]int32, n)
		for i := range v {
			if cmdbuf.ToFloat(words[i]) != 0 {
				v[i] = 1
			}
		}
		d.gl.Uniformiv(t.location, s.components, v)
		return
	}
	v := make([]float32, n)
	for i := range v {
		v[i] = cmdbuf.ToFloat(words[i])
	}
	if s.components == 16 {
		d.gl.UniformMatrixfv(t.location, 4, false, v)
		return
	}
	d.gl.Uniformfv(t.location, s.components, v)
}

// immediateValues returns the count*components words of an immediate
// uniform array. A negative count yields no values and is reported by the
// setter.
func immediateValues(immSize uint32, count int32, components int, data []uint32) ([]uint32, cmdbuf.Error) {
	if count < 0 {
		return nil, cmdbuf.NoError
	}
	n, ok := u32.Mul(uint32(count), uint32(components))
	if !ok {
		return nil, cmdbuf.OutOfBounds
	}
	size, ok := u32.Mul(n, cmdbuf.WordSize)
	if !ok || size > immSize || int(n) > len(data) {
		return nil, cmdbuf.OutOfBounds
	}
	return data[:n], cmdbuf.NoError
}

func (d *Decoder) handleUniform1f(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	d.setFloats(ctx, &uniform1f, int32(args[0]), 1, args[1:2])
	return cmdbuf.NoError
}

func (d *Decoder) handleUniform1i(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	d.setInts(ctx, &uniform1i, int32(args[0]), 1, args[1:2])
	return cmdbuf.NoError
}

func (d *Decoder) handleUniform1ivImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	count := int32(args[1])
	v, err := immediateValues(immSize, count, 1, args[2:])
	if err != cmdbuf.NoError {
		return err
	}
	d.setInts(ctx, &uniform1i, int32(args[0]), count, v)
	return cmdbuf.NoError
}

func (d *Decoder) handleUniform4f(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	d.setFloats(ctx, &uniform4f, int32(args[0]), 1, args[1:5])
	return cmdbuf.NoError
}

func (d *Decoder) handleUniform4fvImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	count := int32(args[1])
	v, err := immediateValues(immSize, count, 4, args[2:])
	if err != cmdbuf.NoError {
		return err
	}
	d.setFloats(ctx, &uniform4f, int32(args[0]), count, v)
	return cmdbuf.NoError
}

func (d *Decoder) handleUniform4i(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	d.setInts(ctx, &uniform4i, int32(args[0]), 1, args[1:5])
	return cmdbuf.NoError
}

func (d *Decoder) handleUniformMatrix4fvImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	count := int32(args[1])
	v, err := immediateValues(immSize, count, 16, args[2:])
	if err != cmdbuf.NoError {
		return err
	}
	d.setFloats(ctx, &uniformMatrix4fv, int32(args[0]), count, v)
	return cmdbuf.NoError
}
