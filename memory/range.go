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

package memory

import "fmt"

// Range represents a region of a shared memory region.
type Range struct {
	Base uint32 // The offset of the first byte in the range.
	Size uint32 // The size in bytes of the range.
}

// End returns the offset one byte beyond the end of the range.
// The result is widened so that it cannot wrap.
func (i Range) End() uint64 {
	return uint64(i.Base) + uint64(i.Size)
}

// Within returns true if the range lies entirely inside a region of the
// given length.
func (i Range) Within(length int) bool {
	return i.End() <= uint64(length)
}

// Includes returns true if r is entirely contained by i.
func (i Range) Includes(r Range) bool {
	return i.Base <= r.Base && r.End() <= i.End()
}

// Overlaps returns true if other overlaps this memory range.
func (i Range) Overlaps(other Range) bool {
	s := i.Base
	if other.Base > s {
		s = other.Base
	}
	e := i.End()
	if other.End() < e {
		e = other.End()
	}
	return uint64(s) < e
}

func (i Range) String() string {
	return fmt.Sprintf("[0x%.8x-0x%.8x)", i.Base, i.End())
}
