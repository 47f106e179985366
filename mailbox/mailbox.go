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

// Package mailbox implements the registry through which decoders share
// textures: one decoder produces a texture under an opaque name and another
// consumes it into its own namespace.
package mailbox

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/google/gpucmd/core/fault"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/resources"
	"github.com/pkg/errors"
)

// Size is the size in bytes of a mailbox name.
const Size = 16

// Words is the number of command words a mailbox name occupies.
const Words = Size / 4

const (
	// ErrZeroName is returned when producing into the zero name.
	ErrZeroName = fault.Const("Mailbox name is zero")
	// ErrNotFound is returned when consuming a name with no texture.
	ErrNotFound = fault.Const("Mailbox not found")
	// ErrTargetMismatch is returned when consuming with the wrong target.
	ErrTargetMismatch = fault.Const("Mailbox texture target mismatch")
)

// Name is an opaque mailbox name.
type Name [Size]byte

// NameFromWords rebuilds a name from its command words.
func NameFromWords(words []uint32) Name {
	var n Name
	for i := 0; i < Words && i < len(words); i++ {
		binary.LittleEndian.PutUint32(n[i*4:], words[i])
	}
	return n
}

// Words returns the name as command words.
func (n Name) Words() []uint32 {
	words := make([]uint32, Words)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(n[i*4:])
	}
	return words
}

// IsZero returns true for the zero name.
func (n Name) IsZero() bool { return n == Name{} }

func (n Name) String() string { return fmt.Sprintf("%x", n[:]) }

type entry struct {
	texture *resources.Texture
	target  gl.Enum
}

// Registry maps names to textures. It holds no references: destroying a
// texture removes every name that refers to it. Registry is safe for
// concurrent use by decoders on different threads.
type Registry struct {
	mu      sync.Mutex
	entries map[Name]entry
	next    uint64
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: map[Name]entry{}}
}

// Generate returns a fresh name not currently in use.
func (r *Registry) Generate() Name {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		r.next++
		var n Name
		binary.LittleEndian.PutUint64(n[:], r.next)
		copy(n[8:], "gpucmdmb")
		if _, used := r.entries[n]; !used {
			return n
		}
	}
}

// Produce publishes t, bound at target, under name. Producing a nil
// texture revokes the name.
func (r *Registry) Produce(name Name, target gl.Enum, t *resources.Texture) error {
	if name.IsZero() {
		return ErrZeroName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if t == nil {
		delete(r.entries, name)
		return nil
	}
	r.entries[name] = entry{texture: t, target: target}
	return nil
}

// Consume returns the texture published under name. target must match the
// target it was produced with.
func (r *Registry) Consume(name Name, target gl.Enum) (*resources.Texture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "Consuming %v", name)
	}
	if e.target != target {
		return nil, errors.Wrapf(ErrTargetMismatch, "Consuming %v as %v, produced as %v", name, target, e.target)
	}
	return e.texture, nil
}

// Revoke removes name.
func (r *Registry) Revoke(name Name) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// TextureDeleted removes every name referring to t, returning how many
// were removed.
func (r *Registry) TextureDeleted(t *resources.Texture) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for name, e := range r.entries {
		if e.texture == t {
			delete(r.entries, name)
			n++
		}
	}
	return n
}

// Len returns the number of published names.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
