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

package resources

import (
	"sync"

	"github.com/google/gpucmd/cmdbuf"
)

// Member is a context that belongs to a Group.
type Member interface {
	// MarkContextLost marks the context as lost for the given reason.
	MarkContextLost(reason cmdbuf.LostReason)
}

// Group is a set of contexts sharing buffers, textures, renderbuffers,
// programs, shaders, samplers and syncs. Framebuffers, queries, vertex
// arrays and transform feedbacks are per context.
type Group struct {
	Buffers       *Namespace[*Buffer]
	Textures      *Namespace[*Texture]
	Renderbuffers *Namespace[*Renderbuffer]
	Programs      *Namespace[*Program]
	Shaders       *Namespace[*Shader]
	Samplers      *Namespace[*Sampler]
	Syncs         *Namespace[*Sync]

	// BindGeneratesResource allows binding unknown client ids, creating the
	// objects on first bind.
	BindGeneratesResource bool

	generation uint64
	memLimit   uint64
	memUsed    uint64

	mu      sync.Mutex
	members []Member
}

// NewGroup returns an empty group. memoryLimit bounds the total size of
// buffer data stores; 0 means unlimited.
func NewGroup(bindGeneratesResource bool, memoryLimit uint64) *Group {
	return &Group{
		Buffers:               NewNamespace[*Buffer](),
		Textures:              NewNamespace[*Texture](),
		Renderbuffers:         NewNamespace[*Renderbuffer](),
		Programs:              NewNamespace[*Program](),
		Shaders:               NewNamespace[*Shader](),
		Samplers:              NewNamespace[*Sampler](),
		Syncs:                 NewNamespace[*Sync](),
		BindGeneratesResource: bindGeneratesResource,
		generation:            1,
		memLimit:              memoryLimit,
	}
}

// Generation returns the storage generation. It changes whenever any
// texture level or renderbuffer storage in the group is respecified.
func (g *Group) Generation() uint64 { return g.generation }

// StorageChanged advances the storage generation.
func (g *Group) StorageChanged() { g.generation++ }

// Reserve accounts for size more bytes of buffer storage, returning false
// if that would exceed the limit.
func (g *Group) Reserve(size uint64) bool {
	if g.memLimit != 0 && (size > g.memLimit || g.memUsed > g.memLimit-size) {
		return false
	}
	g.memUsed += size
	return true
}

// Free returns size bytes of buffer storage.
func (g *Group) Free(size uint64) {
	if size > g.memUsed {
		size = g.memUsed
	}
	g.memUsed -= size
}

// MemoryUsed returns the accounted buffer storage in bytes.
func (g *Group) MemoryUsed() uint64 { return g.memUsed }

// Join adds m to the group.
func (g *Group) Join(m Member) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.members = append(g.members, m)
}

// Leave removes m from the group.
func (g *Group) Leave(m Member) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, o := range g.members {
		if o == m {
			g.members = append(g.members[:i], g.members[i+1:]...)
			return
		}
	}
}

// LoseContexts marks every member as lost.
func (g *Group) LoseContexts(reason cmdbuf.LostReason) {
	g.mu.Lock()
	members := append([]Member(nil), g.members...)
	g.mu.Unlock()
	for _, m := range members {
		m.MarkContextLost(reason)
	}
}
