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

import "github.com/google/gpucmd/gles/gl"

// Level describes one mip level of one face of a texture.
type Level struct {
	Width, Height  int32
	InternalFormat gl.Enum
	Format, Type   gl.Enum
	// Cleared is false while the level's contents are undefined.
	Cleared bool
}

type levelKey struct {
	face  gl.Enum
	level int32
}

// Texture is a texture object. Textures are reference counted: every
// namespace entry and every internal owner holds one reference, and the
// native texture is deleted when the last one is released.
type Texture struct {
	Service uint32
	// Target is the target the texture was first bound to, or 0.
	Target    gl.Enum
	Immutable bool
	MinFilter gl.Enum
	MagFilter gl.Enum
	levels    map[levelKey]*Level
	refs      int
}

// NewTexture returns a texture with one reference.
func NewTexture(service uint32) *Texture {
	return &Texture{
		Service:   service,
		MinFilter: gl.NEAREST_MIPMAP_LINEAR,
		MagFilter: gl.LINEAR,
		levels:    map[levelKey]*Level{},
		refs:      1,
	}
}

func (t *Texture) ServiceID() uint32 { return t.Service }

// AddRef adds a reference to the texture.
func (t *Texture) AddRef() { t.refs++ }

// Release drops a reference, returning true if it was the last.
func (t *Texture) Release() bool {
	t.refs--
	return t.refs == 0
}

// Refs returns the number of live references.
func (t *Texture) Refs() int { return t.refs }

// Level returns the level info for face and level, or nil.
func (t *Texture) Level(face gl.Enum, level int32) *Level {
	return t.levels[levelKey{face, level}]
}

// SetLevel replaces the level info for face and level.
func (t *Texture) SetLevel(face gl.Enum, level int32, info Level) {
	t.levels[levelKey{face, level}] = &info
}

// Levels returns the number of defined levels.
func (t *Texture) Levels() int { return len(t.levels) }

// IsCleared returns true if the level exists and has defined contents.
func (t *Texture) IsCleared(face gl.Enum, level int32) bool {
	l := t.Level(face, level)
	return l != nil && l.Cleared
}

// Faces returns the image targets of a texture bound to target.
func Faces(target gl.Enum) []gl.Enum {
	if target == gl.TEXTURE_CUBE_MAP {
		return []gl.Enum{
			gl.TEXTURE_CUBE_MAP_POSITIVE_X, gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
			gl.TEXTURE_CUBE_MAP_POSITIVE_Y, gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
			gl.TEXTURE_CUBE_MAP_POSITIVE_Z, gl.TEXTURE_CUBE_MAP_NEGATIVE_Z,
		}
	}
	return []gl.Enum{target}
}

// BindTarget returns the bind target owning the image target face.
func BindTarget(face gl.Enum) gl.Enum {
	if face >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && face <= gl.TEXTURE_CUBE_MAP_NEGATIVE_Z {
		return gl.TEXTURE_CUBE_MAP
	}
	return face
}

// Renderbuffer is a renderbuffer object.
type Renderbuffer struct {
	Service        uint32
	Width, Height  int32
	InternalFormat gl.Enum
	Samples        int32
	Cleared        bool
	// EverBound is set by the first bind; a renderbuffer cannot be attached
	// before it was bound once.
	EverBound bool
}

func (r *Renderbuffer) ServiceID() uint32 { return r.Service }

// HasStorage returns true once storage has been allocated.
func (r *Renderbuffer) HasStorage() bool { return r.Width > 0 && r.Height > 0 }

// Sampler is a sampler object.
type Sampler struct {
	Service uint32
	Params  map[gl.Enum]int32
}

func (s *Sampler) ServiceID() uint32 { return s.Service }

// Sync is a fence sync object. Its native handle does not fit a service id.
type Sync struct {
	Handle uint64
}

func (s *Sync) ServiceID() uint32 { return 0 }
