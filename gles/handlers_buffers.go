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
	"github.com/google/gpucmd/gles/gl"
)

func (d *Decoder) handleBufferData(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, size := gl.Enum(args[0]), int32(args[1])
	shmID, shmOffset, usage := int32(args[2]), args[3], gl.Enum(args[4])
	if !d.validators.bufferTarget.has(target) {
		d.invalidEnum(ctx, "glBufferData", target, "target")
		return cmdbuf.NoError
	}
	if !d.validators.bufferUsage.has(usage) {
		d.invalidEnum(ctx, "glBufferData", usage, "usage")
		return cmdbuf.NoError
	}
	if size < 0 {
		d.setError(ctx, gl.INVALID_VALUE, "glBufferData", "size < 0")
		return cmdbuf.NoError
	}
	var data []byte
	if shmID != 0 || shmOffset != 0 {
		if data = d.mem.Resolve(shmID, shmOffset, uint32(size)); data == nil {
			return cmdbuf.OutOfBounds
		}
	}
	b := d.boundBuffer(target)
	if b == nil {
		d.setError(ctx, gl.INVALID_OPERATION, "glBufferData", "no buffer bound to %v", target)
		return cmdbuf.NoError
	}
	old := uint64(b.Size())
	d.group.Free(old)
	if !d.group.Reserve(uint64(size)) {
		d.group.Reserve(old)
		d.setError(ctx, gl.OUT_OF_MEMORY, "glBufferData", "buffer memory limit reached")
		return cmdbuf.NoError
	}
	d.mergeNativeErrors(ctx)
	d.gl.BufferData(target, int(size), data, usage)
	if err := d.gl.GetError(); err != gl.NO_ERROR {
		d.group.Free(uint64(size))
		d.group.Reserve(old)
		if err == gl.CONTEXT_LOST {
			d.lostFromNative(ctx)
		} else {
			d.setError(ctx, err, "glBufferData", "native error")
		}
		return cmdbuf.NoError
	}
	b.SetData(uint32(size), data, usage)
	return cmdbuf.NoError
}

func (d *Decoder) handleBufferSubData(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, offset, size := gl.Enum(args[0]), int32(args[1]), int32(args[2])
	shmID, shmOffset := int32(args[3]), args[4]
	if !d.validators.bufferTarget.has(target) {
		d.invalidEnum(ctx, "glBufferSubData", target, "target")
		return cmdbuf.NoError
	}
	if offset < 0 || size < 0 {
		d.setError(ctx, gl.INVALID_VALUE, "glBufferSubData", "offset or size < 0")
		return cmdbuf.NoError
	}
	data := d.mem.Resolve(shmID, shmOffset, uint32(size))
	if data == nil {
		return cmdbuf.OutOfBounds
	}
	b := d.boundBuffer(target)
	if b == nil {
		d.setError(ctx, gl.INVALID_OPERATION, "glBufferSubData", "no buffer bound to %v", target)
		return cmdbuf.NoError
	}
	if !b.SetSubData(uint32(offset), data) {
		d.setError(ctx, gl.INVALID_VALUE, "glBufferSubData", "range out of bounds")
		return cmdbuf.NoError
	}
	d.gl.BufferSubData(target, int(offset), data)
	return cmdbuf.NoError
}
