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

import "math"

// Builder assembles a command buffer, one record at a time.
type Builder struct {
	words []uint32
}

// Cmd appends a record with the given command id and argument words.
func (b *Builder) Cmd(id uint32, args ...uint32) *Builder {
	b.words = append(b.words, uint32(MakeHeader(id, uint32(1+len(args)))))
	b.words = append(b.words, args...)
	return b
}

// Immediate appends a record whose fixed arguments are followed by data,
// zero padded to a whole number of words.
func (b *Builder) Immediate(id uint32, args []uint32, data []byte) *Builder {
	n := (len(data) + WordSize - 1) / WordSize
	b.words = append(b.words, uint32(MakeHeader(id, uint32(1+len(args)+n))))
	b.words = append(b.words, args...)
	for i := 0; i < n; i++ {
		w := uint32(0)
		for j := 0; j < WordSize; j++ {
			if k := i*WordSize + j; k < len(data) {
				w |= uint32(data[k]) << (8 * uint(j))
			}
		}
		b.words = append(b.words, w)
	}
	return b
}

// Raw appends words verbatim, allowing malformed records to be built.
func (b *Builder) Raw(words ...uint32) *Builder {
	b.words = append(b.words, words...)
	return b
}

// Words returns the assembled buffer.
func (b *Builder) Words() []uint32 { return b.words }

// Len returns the number of words in the buffer.
func (b *Builder) Len() int { return len(b.words) }

// Reset empties the builder.
func (b *Builder) Reset() { b.words = b.words[:0] }

// Float returns the argument word holding f.
func Float(f float32) uint32 { return math.Float32bits(f) }

// ToFloat returns the float held by an argument word.
func ToFloat(w uint32) float32 { return math.Float32frombits(w) }

// Bool returns the argument word holding v.
func Bool(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

// WordsToBytes returns the little-endian bytes of words.
func WordsToBytes(words []uint32) []byte {
	out := make([]byte, len(words)*WordSize)
	for i, w := range words {
		out[i*4+0] = byte(w)
		out[i*4+1] = byte(w >> 8)
		out[i*4+2] = byte(w >> 16)
		out[i*4+3] = byte(w >> 24)
	}
	return out
}
