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

// Package u32 provides helpers for uint32 arithmetic on wire values.
package u32

import "math"

// Min returns the minimum value of a and b.
func Min(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum value of a and b.
func Max(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// AlignUp rounds up value to the next multiple of alignment.
// ok is false if the result does not fit in 32 bits.
func AlignUp(value, alignment uint32) (aligned uint32, ok bool) {
	if alignment == 0 {
		return value, true
	}
	rem := value % alignment
	if rem == 0 {
		return value, true
	}
	return Add(value, alignment-rem)
}

// Add returns a+b and whether the sum did not overflow.
func Add(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// Mul returns a*b and whether the product did not overflow.
func Mul(a, b uint32) (uint32, bool) {
	p := uint64(a) * uint64(b)
	if p > math.MaxUint32 {
		return 0, false
	}
	return uint32(p), true
}
