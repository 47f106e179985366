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
	"encoding/binary"

	"github.com/google/gpucmd/core/math/u32"
	"github.com/google/gpucmd/gles/gl"
)

// Buffer is a buffer object. A shadow copy of its contents is kept so that
// index ranges can be validated and attributes converted without reading
// back from the device.
type Buffer struct {
	Service uint32
	// Target is the target the buffer was first bound to, or 0.
	Target gl.Enum
	Usage  gl.Enum
	shadow []byte
}

func (b *Buffer) ServiceID() uint32 { return b.Service }

// Size returns the size of the buffer's data store in bytes.
func (b *Buffer) Size() uint32 { return uint32(len(b.shadow)) }

// Data returns the shadow copy of the buffer's contents.
func (b *Buffer) Data() []byte { return b.shadow }

// SetData replaces the data store. data may be nil to leave it zeroed.
func (b *Buffer) SetData(size uint32, data []byte, usage gl.Enum) {
	b.shadow = make([]byte, size)
	copy(b.shadow, data)
	b.Usage = usage
}

// SetSubData copies data into the store at offset, returning false if it
// does not fit.
func (b *Buffer) SetSubData(offset uint32, data []byte) bool {
	end, ok := u32.Add(offset, uint32(len(data)))
	if !ok || end > b.Size() {
		return false
	}
	copy(b.shadow[offset:end], data)
	return true
}

// IndexSize returns the size in bytes of an index of type ty, or 0.
func IndexSize(ty gl.Enum) uint32 {
	switch ty {
	case gl.UNSIGNED_BYTE:
		return 1
	case gl.UNSIGNED_SHORT:
		return 2
	case gl.UNSIGNED_INT:
		return 4
	}
	return 0
}

// MaxIndex returns the largest of count indices of type ty stored at offset.
// ok is false if the indices do not lie inside the buffer or offset is not
// aligned to the index size.
func (b *Buffer) MaxIndex(offset uint32, count uint32, ty gl.Enum) (max uint32, ok bool) {
	size := IndexSize(ty)
	if size == 0 || offset%size != 0 {
		return 0, false
	}
	bytes, ok := u32.Mul(count, size)
	if !ok {
		return 0, false
	}
	end, ok := u32.Add(offset, bytes)
	if !ok || end > b.Size() {
		return 0, false
	}
	data := b.shadow[offset:end]
	for i := uint32(0); i < count; i++ {
		var v uint32
		switch size {
		case 1:
			v = uint32(data[i])
		case 2:
			v = uint32(binary.LittleEndian.Uint16(data[i*2:]))
		case 4:
			v = binary.LittleEndian.Uint32(data[i*4:])
		}
		if v > max {
			max = v
		}
	}
	return max, true
}
