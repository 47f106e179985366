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
	"fmt"

	"github.com/google/gpucmd/core/math/u32"
	"github.com/google/gpucmd/gles/gl"
)

// VertexAttrib is the array state of one vertex attribute.
type VertexAttrib struct {
	Enabled    bool
	Buffer     *Buffer
	Size       int32
	Type       gl.Enum
	Normalized bool
	// Integer is set for arrays specified with VertexAttribIPointer.
	Integer bool
	Stride  int32
	Offset  uint32
	Divisor uint32
}

// TypeSize returns the size in bytes of one component of type ty, or 0.
func TypeSize(ty gl.Enum) uint32 {
	switch ty {
	case gl.BYTE, gl.UNSIGNED_BYTE:
		return 1
	case gl.SHORT, gl.UNSIGNED_SHORT, gl.HALF_FLOAT, gl.HALF_FLOAT_OES:
		return 2
	case gl.INT, gl.UNSIGNED_INT, gl.FLOAT, gl.FIXED:
		return 4
	case gl.INT_2_10_10_10_REV, gl.UNSIGNED_INT_2_10_10_10_REV:
		return 1
	}
	return 0
}

// ElementSize returns the size in bytes of one vertex of the array.
func (a *VertexAttrib) ElementSize() uint32 {
	if a.Type == gl.INT_2_10_10_10_REV || a.Type == gl.UNSIGNED_INT_2_10_10_10_REV {
		return 4
	}
	return TypeSize(a.Type) * uint32(a.Size)
}

// RealStride returns the distance in bytes between consecutive vertices.
func (a *VertexAttrib) RealStride() uint32 {
	if a.Stride != 0 {
		return uint32(a.Stride)
	}
	return a.ElementSize()
}

// CanAccess returns true if vertex index max lies inside the array's buffer.
// Overflowing arithmetic is treated as out of range.
func (a *VertexAttrib) CanAccess(max uint32) bool {
	if a.Buffer == nil {
		return false
	}
	span, ok := u32.Mul(max, a.RealStride())
	if !ok {
		return false
	}
	if span, ok = u32.Add(span, a.Offset); !ok {
		return false
	}
	end, ok := u32.Add(span, a.ElementSize())
	return ok && end <= a.Buffer.Size()
}

// GenericValue is the current value of a vertex attribute without an array.
type GenericValue struct {
	// Type is FLOAT, INT or UNSIGNED_INT.
	Type   gl.Enum
	Values [4]uint32
}

// VertexArray is a vertex array object.
type VertexArray struct {
	Service       uint32
	Attribs       []VertexAttrib
	ElementBuffer *Buffer
	EverBound     bool
}

// NewVertexArray returns a vertex array with n disabled attributes.
func NewVertexArray(service uint32, n int) *VertexArray {
	v := &VertexArray{Service: service, Attribs: make([]VertexAttrib, n)}
	for i := range v.Attribs {
		v.Attribs[i] = VertexAttrib{Size: 4, Type: gl.FLOAT}
	}
	return v
}

func (v *VertexArray) ServiceID() uint32 { return v.Service }

// Unbind detaches b from every attribute and the element binding.
func (v *VertexArray) Unbind(b *Buffer) {
	for i := range v.Attribs {
		if v.Attribs[i].Buffer == b {
			v.Attribs[i].Buffer = nil
		}
	}
	if v.ElementBuffer == b {
		v.ElementBuffer = nil
	}
}

// QueryState is the lifetime state of a query object.
type QueryState int

const (
	QueryUnused QueryState = iota
	QueryActive
	QueryPending
	QueryResolved
)

func (s QueryState) String() string {
	switch s {
	case QueryUnused:
		return "Unused"
	case QueryActive:
		return "Active"
	case QueryPending:
		return "Pending"
	case QueryResolved:
		return "Resolved"
	default:
		return fmt.Sprintf("QueryState(%d)", int(s))
	}
}

// Query is a query object. The client reads results from a sync location
// in shared memory.
type Query struct {
	Service     uint32
	Target      gl.Enum
	State       QueryState
	ShmID       int32
	ShmOffset   uint32
	SubmitCount uint32
}

func (q *Query) ServiceID() uint32 { return q.Service }

// TransformFeedback is a transform feedback object.
type TransformFeedback struct {
	Service   uint32
	Active    bool
	EverBound bool
}

func (t *TransformFeedback) ServiceID() uint32 { return t.Service }
