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
	"sort"

	"github.com/google/gpucmd/gles/gl"
)

// Attachment is the image attached to one attachment point of a framebuffer.
// Exactly one of Texture and Renderbuffer is set.
type Attachment struct {
	Texture   *Texture
	TexTarget gl.Enum
	Level     int32

	Renderbuffer *Renderbuffer
}

// Size returns the dimensions of the attached image. ok is false if the
// image has no storage.
func (a *Attachment) Size() (width, height int32, ok bool) {
	if a.Renderbuffer != nil {
		rb := a.Renderbuffer
		return rb.Width, rb.Height, rb.HasStorage()
	}
	l := a.Texture.Level(a.TexTarget, a.Level)
	if l == nil || l.Width <= 0 || l.Height <= 0 {
		return 0, 0, false
	}
	return l.Width, l.Height, true
}

// Samples returns the sample count of the attached image.
func (a *Attachment) Samples() int32 {
	if a.Renderbuffer != nil {
		return a.Renderbuffer.Samples
	}
	return 0
}

// Cleared returns true if the attached image has defined contents.
func (a *Attachment) Cleared() bool {
	if a.Renderbuffer != nil {
		return a.Renderbuffer.Cleared
	}
	return a.Texture.IsCleared(a.TexTarget, a.Level)
}

// SetCleared marks the attached image as having defined contents.
func (a *Attachment) SetCleared() {
	if a.Renderbuffer != nil {
		a.Renderbuffer.Cleared = true
		return
	}
	if l := a.Texture.Level(a.TexTarget, a.Level); l != nil {
		l.Cleared = true
	}
}

// Framebuffer is a framebuffer object.
type Framebuffer struct {
	Service     uint32
	Attachments map[gl.Enum]*Attachment
	DrawBuffers []gl.Enum
	EverBound   bool
	// completeAt is the storage generation at which the framebuffer was
	// last found complete, or 0.
	completeAt uint64
}

// NewFramebuffer returns a framebuffer with no attachments.
func NewFramebuffer(service uint32) *Framebuffer {
	return &Framebuffer{
		Service:     service,
		Attachments: map[gl.Enum]*Attachment{},
		DrawBuffers: []gl.Enum{gl.COLOR_ATTACHMENT0},
	}
}

func (f *Framebuffer) ServiceID() uint32 { return f.Service }

// Attach sets the image at point, or detaches it if a is nil.
func (f *Framebuffer) Attach(point gl.Enum, a *Attachment) {
	if a == nil {
		delete(f.Attachments, point)
	} else {
		f.Attachments[point] = a
	}
	f.completeAt = 0
}

// Invalidate discards the cached completeness.
func (f *Framebuffer) Invalidate() { f.completeAt = 0 }

// IsCompleteAt returns true if the framebuffer was found complete at the
// storage generation gen.
func (f *Framebuffer) IsCompleteAt(gen uint64) bool {
	return f.completeAt != 0 && f.completeAt == gen
}

// MarkCompleteAt caches completeness for the storage generation gen.
func (f *Framebuffer) MarkCompleteAt(gen uint64) { f.completeAt = gen }

// Points returns the attachment points in ascending order.
func (f *Framebuffer) Points() []gl.Enum {
	points := make([]gl.Enum, 0, len(f.Attachments))
	for p := range f.Attachments {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
	return points
}

// PrecheckStatus checks attachment consistency without asking the device.
// It returns FRAMEBUFFER_COMPLETE if the device should be asked.
func (f *Framebuffer) PrecheckStatus() gl.Enum {
	if len(f.Attachments) == 0 {
		return gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	}
	var width, height, samples int32
	first := true
	for _, p := range f.Points() {
		a := f.Attachments[p]
		w, h, ok := a.Size()
		if !ok {
			return gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT
		}
		if first {
			width, height, samples, first = w, h, a.Samples(), false
			continue
		}
		if w != width || h != height {
			return gl.FRAMEBUFFER_INCOMPLETE_DIMENSIONS
		}
		if a.Samples() != samples {
			return gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE
		}
	}
	return gl.FRAMEBUFFER_COMPLETE
}

// BufferBit returns the clear bit covering the attachment point.
func BufferBit(point gl.Enum) gl.Enum {
	switch point {
	case gl.DEPTH_ATTACHMENT:
		return gl.DEPTH_BUFFER_BIT
	case gl.STENCIL_ATTACHMENT:
		return gl.STENCIL_BUFFER_BIT
	default:
		return gl.COLOR_BUFFER_BIT
	}
}

// UnclearedBits returns the clear bits of every attachment with undefined
// contents.
func (f *Framebuffer) UnclearedBits() gl.Enum {
	bits := gl.Enum(0)
	for p, a := range f.Attachments {
		if !a.Cleared() {
			bits |= BufferBit(p)
		}
	}
	return bits
}

// MarkCleared marks every attachment covered by bits as cleared.
func (f *Framebuffer) MarkCleared(bits gl.Enum) {
	for p, a := range f.Attachments {
		if bits&BufferBit(p) != 0 {
			a.SetCleared()
		}
	}
}

// DetachTexture detaches t from every point, returning true if any was.
func (f *Framebuffer) DetachTexture(t *Texture) bool {
	found := false
	for p, a := range f.Attachments {
		if a.Texture == t {
			f.Attach(p, nil)
			found = true
		}
	}
	return found
}

// DetachRenderbuffer detaches r from every point, returning true if any was.
func (f *Framebuffer) DetachRenderbuffer(r *Renderbuffer) bool {
	found := false
	for p, a := range f.Attachments {
		if a.Renderbuffer == r {
			f.Attach(p, nil)
			found = true
		}
	}
	return found
}

// HasColorTexture returns true if t is attached at a color point.
func (f *Framebuffer) HasColorTexture(t *Texture) bool {
	for p, a := range f.Attachments {
		if BufferBit(p) == gl.COLOR_BUFFER_BIT && a.Texture == t {
			return true
		}
	}
	return false
}
