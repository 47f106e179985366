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

import "github.com/google/gpucmd/core/math/u32"

// MaxBucketSize is the largest size a bucket can be set to.
const MaxBucketSize = 16 << 20

// Bucket is a variable sized byte array assembled by the client through the
// common bucket commands, and read by commands that take strings.
type Bucket struct {
	data []byte
}

// Size returns the size of the bucket in bytes.
func (b *Bucket) Size() uint32 { return uint32(len(b.data)) }

// SetSize resizes the bucket, discarding its contents.
func (b *Bucket) SetSize(size uint32) { b.data = make([]byte, size) }

// SetData copies data into the bucket at offset, returning false if it does
// not fit.
func (b *Bucket) SetData(offset uint32, data []byte) bool {
	end, ok := u32.Add(offset, uint32(len(data)))
	if !ok || end > b.Size() {
		return false
	}
	copy(b.data[offset:end], data)
	return true
}

// Data returns size bytes at offset, or nil if the range is out of bounds.
func (b *Bucket) Data(offset, size uint32) []byte {
	end, ok := u32.Add(offset, size)
	if !ok || end > b.Size() {
		return nil
	}
	return b.data[offset:end]
}

// AsString returns the bucket as a string. The bucket must hold a single NUL
// terminator as its last byte.
func (b *Bucket) AsString() (string, bool) {
	if len(b.data) == 0 || b.data[len(b.data)-1] != 0 {
		return "", false
	}
	return string(b.data[:len(b.data)-1]), true
}

// SetString replaces the bucket contents with s and a NUL terminator.
func (b *Bucket) SetString(s string) {
	b.data = append(append(make([]byte, 0, len(s)+1), s...), 0)
}
