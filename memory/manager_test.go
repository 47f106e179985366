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

package memory_test

import (
	"math"
	"testing"

	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/memory"
)

func TestRegister(t *testing.T) {
	ctx := log.Testing(t)
	m := memory.NewManager()
	assert.For(ctx, "first").ThatError(m.Register(1, make([]byte, 16))).Succeeded()
	assert.For(ctx, "duplicate").ThatError(m.Register(1, make([]byte, 16))).HasCause(memory.ErrDuplicateID)
	assert.For(ctx, "negative").ThatError(m.Register(-1, nil)).HasCause(memory.ErrInvalidID)
	assert.For(ctx, "size").ThatInteger(m.Size(1)).Equals(16)
	assert.For(ctx, "unregister").ThatBoolean(m.Unregister(1)).IsTrue()
	assert.For(ctx, "unregister again").ThatBoolean(m.Unregister(1)).IsFalse()
	assert.For(ctx, "size after").ThatInteger(m.Size(1)).Equals(-1)
}

func TestResolve(t *testing.T) {
	ctx := log.Testing(t)
	m := memory.NewManager()
	m.Register(3, make([]byte, 32))
	for _, test := range []struct {
		name         string
		id           int32
		offset, size uint32
		valid        bool
	}{
		{"whole", 3, 0, 32, true},
		{"tail", 3, 28, 4, true},
		{"empty at end", 3, 32, 0, true},
		{"past end", 3, 29, 4, false},
		{"offset past end", 3, 33, 0, false},
		{"wrapping", 3, math.MaxUint32, 2, false},
		{"huge size", 3, 4, math.MaxUint32, false},
		{"unknown region", 4, 0, 1, false},
	} {
		got := m.Resolve(test.id, test.offset, test.size)
		assert.For(ctx, "%s valid", test.name).ThatBoolean(got != nil).Equals(test.valid)
		if test.valid {
			assert.For(ctx, "%s len", test.name).ThatInteger(len(got)).Equals(int(test.size))
		}
	}
}

func TestResolvedSlicesShareStorage(t *testing.T) {
	ctx := log.Testing(t)
	data := make([]byte, 8)
	m := memory.NewManager()
	m.Register(0, data)
	memory.PutUint32(m.Resolve(0, 4, 4), 0, 0xdeadbeef)
	assert.For(ctx, "word").That(memory.Uint32(data, 4)).Equals(uint32(0xdeadbeef))
	b := m.Resolve(0, 0, 4)
	assert.For(ctx, "cap").ThatInteger(cap(b)).Equals(4)
}

func TestRange(t *testing.T) {
	ctx := log.Testing(t)
	r := memory.Range{Base: 4, Size: 8}
	assert.For(ctx, "end").That(r.End()).Equals(uint64(12))
	assert.For(ctx, "includes").ThatBoolean(r.Includes(memory.Range{Base: 6, Size: 2})).IsTrue()
	assert.For(ctx, "not includes").ThatBoolean(r.Includes(memory.Range{Base: 10, Size: 4})).IsFalse()
	assert.For(ctx, "overlaps").ThatBoolean(r.Overlaps(memory.Range{Base: 10, Size: 4})).IsTrue()
	assert.For(ctx, "disjoint").ThatBoolean(r.Overlaps(memory.Range{Base: 12, Size: 4})).IsFalse()
	assert.For(ctx, "string").That(r.String()).Equals("[0x00000004-0x0000000c)")
}
