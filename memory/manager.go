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

// Package memory holds the shared memory regions that command buffers
// reference by id, and resolves (id, offset, size) triples against them.
package memory

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/google/gpucmd/core/fault"
	"github.com/pkg/errors"
)

const (
	// ErrInvalidID is returned when registering a region with a negative id.
	ErrInvalidID = fault.Const("Invalid shared memory id")
	// ErrDuplicateID is returned when registering an id that is already live.
	ErrDuplicateID = fault.Const("Shared memory id already registered")
)

// Manager owns the live shared memory regions of one client connection.
// It is safe for concurrent use; the transport may register regions while
// a decoder resolves against others.
type Manager struct {
	mu      sync.RWMutex
	regions map[int32][]byte
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{regions: map[int32][]byte{}}
}

// Register makes data resolvable under id.
func (m *Manager) Register(id int32, data []byte) error {
	if id < 0 {
		return errors.Wrapf(ErrInvalidID, "Registering region %d", id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.regions[id]; ok {
		return errors.Wrapf(ErrDuplicateID, "Registering region %d", id)
	}
	m.regions[id] = data
	return nil
}

// Unregister removes the region with the given id, returning false if no
// such region was registered.
func (m *Manager) Unregister(id int32) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.regions[id]; !ok {
		return false
	}
	delete(m.regions, id)
	return true
}

// Resolve returns the size bytes at offset in the region id.
// It returns nil if the region does not exist or the range does not lie
// entirely inside it. A zero size range inside a live region resolves to a
// non-nil empty slice.
func (m *Manager) Resolve(id int32, offset, size uint32) []byte {
	m.mu.RLock()
	data, ok := m.regions[id]
	m.mu.RUnlock()
	if !ok {
		return nil
	}
	r := Range{Base: offset, Size: size}
	if !r.Within(len(data)) {
		return nil
	}
	return data[offset:r.End():r.End()]
}

// ResolveAtLeast is like Resolve but returns everything from offset to the
// end of the region, provided at least min bytes are available.
func (m *Manager) ResolveAtLeast(id int32, offset, min uint32) []byte {
	m.mu.RLock()
	data, ok := m.regions[id]
	m.mu.RUnlock()
	if !ok || !(Range{Base: offset, Size: min}).Within(len(data)) {
		return nil
	}
	return data[offset:]
}

// Size returns the length of the region id, or -1 if it is not registered.
func (m *Manager) Size(id int32) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.regions[id]
	if !ok {
		return -1
	}
	return len(data)
}

// Uint32 reads the little-endian word at byte offset i of b.
func Uint32(b []byte, i int) uint32 { return binary.LittleEndian.Uint32(b[i:]) }

// PutUint32 writes v as a little-endian word at byte offset i of b.
func PutUint32(b []byte, i int, v uint32) { binary.LittleEndian.PutUint32(b[i:], v) }

// PutUint64 writes v as a little-endian double word at byte offset i of b.
func PutUint64(b []byte, i int, v uint64) { binary.LittleEndian.PutUint64(b[i:], v) }

// Float32 reads the little-endian float at byte offset i of b.
func Float32(b []byte, i int) float32 { return math.Float32frombits(Uint32(b, i)) }
