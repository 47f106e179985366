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

package cmdbuf

import (
	"context"

	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/memory"
)

// Ids of the common commands, shared by every decoder type.
const (
	CmdNoop uint32 = iota
	CmdSetToken
	CmdSetBucketSize
	CmdSetBucketData
	CmdSetBucketDataImmediate
	CmdGetBucketStart
	CmdGetBucketData
	lastCommonCommand
)

// NumCommonCommands is the number of ids reserved for common commands.
// Decoder specific command ids start here.
const NumCommonCommands = 256

type commonInfo struct {
	name     string
	argFlags ArgFlags
	argCount uint32
	handler  func(c *Common, ctx context.Context, immSize uint32, args []uint32) Error
}

var commonInfos = [lastCommonCommand]commonInfo{
	CmdNoop:                   {"Noop", AtLeastN, 0, (*Common).handleNoop},
	CmdSetToken:               {"SetToken", Fixed, 1, (*Common).handleSetToken},
	CmdSetBucketSize:          {"SetBucketSize", Fixed, 2, (*Common).handleSetBucketSize},
	CmdSetBucketData:          {"SetBucketData", Fixed, 5, (*Common).handleSetBucketData},
	CmdSetBucketDataImmediate: {"SetBucketDataImmediate", AtLeastN, 3, (*Common).handleSetBucketDataImmediate},
	CmdGetBucketStart:         {"GetBucketStart", Fixed, 6, (*Common).handleGetBucketStart},
	CmdGetBucketData:          {"GetBucketData", Fixed, 5, (*Common).handleGetBucketData},
}

// CommonName returns the name of the common command id, or "" if id is not
// a known common command.
func CommonName(id uint32) string {
	if id < lastCommonCommand {
		return commonInfos[id].name
	}
	return ""
}

// Common implements the infrastructure commands: tokens and buckets.
type Common struct {
	mem     *memory.Manager
	token   uint32
	buckets map[uint32]*Bucket
}

// NewCommon returns a Common resolving shared memory through mem.
func NewCommon(mem *memory.Manager) *Common {
	return &Common{mem: mem, buckets: map[uint32]*Bucket{}}
}

// Token returns the last token set by the client.
func (c *Common) Token() uint32 { return c.token }

// Bucket returns the bucket with the given id, or nil.
func (c *Common) Bucket(id uint32) *Bucket { return c.buckets[id] }

// CreateBucket returns the bucket with the given id, creating it if needed.
func (c *Common) CreateBucket(id uint32) *Bucket {
	b, ok := c.buckets[id]
	if !ok {
		b = &Bucket{}
		c.buckets[id] = b
	}
	return b
}

// Memory returns the shared memory manager.
func (c *Common) Memory() *memory.Manager { return c.mem }

// DoCommand executes the common command id with the given argument words.
// args holds every word after the header.
func (c *Common) DoCommand(ctx context.Context, id uint32, args []uint32) Error {
	if id >= lastCommonCommand {
		return UnknownCommand
	}
	info := &commonInfos[id]
	argCount := uint32(len(args))
	if !info.argFlags.Check(argCount, info.argCount) {
		return InvalidArguments
	}
	return info.handler(c, ctx, (argCount-info.argCount)*WordSize, args)
}

func (c *Common) handleNoop(ctx context.Context, immSize uint32, args []uint32) Error {
	return NoError
}

func (c *Common) handleSetToken(ctx context.Context, immSize uint32, args []uint32) Error {
	c.token = args[0]
	return NoError
}

func (c *Common) handleSetBucketSize(ctx context.Context, immSize uint32, args []uint32) Error {
	id, size := args[0], args[1]
	if size > MaxBucketSize {
		log.W(ctx, "Bucket %d size %d exceeds limit", id, size)
		return InvalidArguments
	}
	c.CreateBucket(id).SetSize(size)
	return NoError
}

func (c *Common) handleSetBucketData(ctx context.Context, immSize uint32, args []uint32) Error {
	id, offset, size, shmID, shmOffset := args[0], args[1], args[2], int32(args[3]), args[4]
	data := c.mem.Resolve(shmID, shmOffset, size)
	if data == nil {
		return OutOfBounds
	}
	b := c.Bucket(id)
	if b == nil || !b.SetData(offset, data) {
		return InvalidArguments
	}
	return NoError
}

func (c *Common) handleSetBucketDataImmediate(ctx context.Context, immSize uint32, args []uint32) Error {
	id, offset, size := args[0], args[1], args[2]
	if size > immSize {
		return OutOfBounds
	}
	data := WordsToBytes(args[3:])[:size]
	b := c.Bucket(id)
	if b == nil || !b.SetData(offset, data) {
		return InvalidArguments
	}
	return NoError
}

// GetBucketStart writes the bucket size to a result word, which must be zero,
// and copies as much of the bucket as fits into the optional data region.
func (c *Common) handleGetBucketStart(ctx context.Context, immSize uint32, args []uint32) Error {
	id := args[0]
	resultID, resultOffset := int32(args[1]), args[2]
	dataSize, dataID, dataOffset := args[3], int32(args[4]), args[5]
	result := c.mem.Resolve(resultID, resultOffset, WordSize)
	if result == nil {
		return OutOfBounds
	}
	var data []byte
	if dataSize != 0 {
		if data = c.mem.Resolve(dataID, dataOffset, dataSize); data == nil {
			return OutOfBounds
		}
	}
	if memory.Uint32(result, 0) != 0 {
		return InvalidArguments
	}
	b := c.Bucket(id)
	if b == nil {
		return InvalidArguments
	}
	memory.PutUint32(result, 0, b.Size())
	copy(data, b.data)
	return NoError
}

func (c *Common) handleGetBucketData(ctx context.Context, immSize uint32, args []uint32) Error {
	id, offset, size, shmID, shmOffset := args[0], args[1], args[2], int32(args[3]), args[4]
	dst := c.mem.Resolve(shmID, shmOffset, size)
	if dst == nil {
		return OutOfBounds
	}
	b := c.Bucket(id)
	if b == nil {
		return InvalidArguments
	}
	src := b.Data(offset, size)
	if src == nil {
		return InvalidArguments
	}
	copy(dst, src)
	return NoError
}
