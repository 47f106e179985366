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
	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/core/math/u32"
	"github.com/google/gpucmd/memory"
)

// Results are written into client shared memory. The client initializes
// the result slot before submitting the command; a slot that does not
// hold its initial value means the slot was reused and the command is
// rejected.

// resolveResult returns the size bytes of shared memory at (id, offset).
func (d *Decoder) resolveResult(id int32, offset, size uint32) ([]byte, cmdbuf.Error) {
	b := d.mem.Resolve(id, offset, size)
	if b == nil {
		return nil, cmdbuf.OutOfBounds
	}
	return b, cmdbuf.NoError
}

// zeroResult resolves a one word result that must hold 0.
func (d *Decoder) zeroResult(id int32, offset uint32) ([]byte, cmdbuf.Error) {
	b, err := d.resolveResult(id, offset, cmdbuf.WordSize)
	if err != cmdbuf.NoError {
		return nil, err
	}
	if memory.Uint32(b, 0) != 0 {
		return nil, cmdbuf.InvalidArguments
	}
	return b, cmdbuf.NoError
}

// locationResult resolves a location result that must hold -1.
func (d *Decoder) locationResult(id int32, offset uint32) ([]byte, cmdbuf.Error) {
	b, err := d.resolveResult(id, offset, cmdbuf.WordSize)
	if err != cmdbuf.NoError {
		return nil, err
	}
	if int32(memory.Uint32(b, 0)) != -1 {
		return nil, cmdbuf.InvalidArguments
	}
	return b, cmdbuf.NoError
}

// sizedResult resolves a result holding a count word followed by count
// values. The count word must hold 0.
type sizedResult []byte

func (d *Decoder) sizedResult(id int32, offset, count uint32) (sizedResult, cmdbuf.Error) {
	bytes, ok := u32.Mul(count, cmdbuf.WordSize)
	if !ok {
		return nil, cmdbuf.OutOfBounds
	}
	if bytes, ok = u32.Add(bytes, cmdbuf.WordSize); !ok {
		return nil, cmdbuf.OutOfBounds
	}
	b, err := d.resolveResult(id, offset, bytes)
	if err != cmdbuf.NoError {
		return nil, err
	}
	if memory.Uint32(b, 0) != 0 {
		return nil, cmdbuf.InvalidArguments
	}
	return sizedResult(b), cmdbuf.NoError
}

// set writes the values and their count.
func (r sizedResult) set(values []uint32) {
	memory.PutUint32(r, 0, uint32(len(values)))
	for i, v := range values {
		memory.PutUint32(r, (i+1)*cmdbuf.WordSize, v)
	}
}

// bucketString returns the string held by bucket id.
func (d *Decoder) bucketString(id uint32) (string, bool) {
	b := d.common.Bucket(id)
	if b == nil {
		return "", false
	}
	return b.AsString()
}

// immediateIDs returns the n ids carried by the immediate data of a
// Gen or Delete command.
func immediateIDs(immSize uint32, n int32, data []uint32) ([]uint32, cmdbuf.Error) {
	size, ok := u32.Mul(uint32(n), cmdbuf.WordSize)
	if !ok || size > immSize || int(n) > len(data) {
		return nil, cmdbuf.OutOfBounds
	}
	ids := make([]uint32, n)
	copy(ids, data[:n])
	return ids, cmdbuf.NoError
}

func putBool(b []byte, v bool) {
	memory.PutUint32(b, 0, cmdbuf.Bool(v))
}
