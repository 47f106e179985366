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

package u32_test

import (
	"math"
	"testing"

	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/core/math/u32"
)

func TestAlignUp(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		value, alignment, expect uint32
		ok                       bool
	}{
		{0, 4, 0, true},
		{1, 4, 4, true},
		{4, 4, 4, true},
		{5, 8, 8, true},
		{7, 0, 7, true},
		{math.MaxUint32 - 1, 4, 0, false},
	} {
		got, ok := u32.AlignUp(test.value, test.alignment)
		assert.For(ctx, "AlignUp(%d, %d) ok", test.value, test.alignment).ThatBoolean(ok).Equals(test.ok)
		if test.ok {
			assert.For(ctx, "AlignUp(%d, %d)", test.value, test.alignment).That(got).Equals(test.expect)
		}
	}
}

func TestCheckedArithmetic(t *testing.T) {
	ctx := log.Testing(t)
	_, ok := u32.Add(math.MaxUint32, 1)
	assert.For(ctx, "Add overflow").ThatBoolean(ok).IsFalse()
	v, ok := u32.Mul(1<<16, 1<<15)
	assert.For(ctx, "Mul").That(v).Equals(uint32(1 << 31))
	assert.For(ctx, "Mul ok").ThatBoolean(ok).IsTrue()
	_, ok = u32.Mul(1<<16, 1<<16)
	assert.For(ctx, "Mul overflow").ThatBoolean(ok).IsFalse()
	assert.For(ctx, "Min").That(u32.Min(3, 9)).Equals(uint32(3))
	assert.For(ctx, "Max").That(u32.Max(3, 9)).Equals(uint32(9))
}
