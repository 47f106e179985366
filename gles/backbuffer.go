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

package gles

import (
	"context"

	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/mailbox"
	"github.com/google/gpucmd/resources"
	"github.com/pkg/errors"
)

// maxFreeBuffers is the number of returned front buffers kept for reuse.
const maxFreeBuffers = 2

// colorBuffer is a color texture of the offscreen backbuffer.
type colorBuffer struct {
	texture       *resources.Texture
	width, height int32
}

// reusable returns true if c can serve as a color buffer of the given size.
func reusable(c *colorBuffer, width, height int32) bool {
	return c != nil && c.texture != nil && c.width == width && c.height == height
}

// backbuffer is the default framebuffer of an offscreen context. Draws go
// to fbo. A multisampled backbuffer renders into a renderbuffer and is
// resolved into the front buffer on publish; otherwise the back texture is
// attached directly.
type backbuffer struct {
	fbo        uint32
	resolveFBO uint32
	back       *colorBuffer
	front      *colorBuffer
	msaaColor  uint32
	// depth and stencil are the same renderbuffer when packed.
	depth, stencil uint32
	packed         bool
	samples        int32
	format         gl.Enum
	width, height  int32
	preserve       bool

	free  []*colorBuffer
	taken map[mailbox.Name]*colorBuffer
}

func (d *Decoder) newBackbuffer(ctx context.Context, width, height int32) (*backbuffer, error) {
	a := d.attribs
	b := &backbuffer{
		format:   gl.RGB,
		preserve: a.PreserveBackbuffer,
		taken:    map[mailbox.Name]*colorBuffer{},
	}
	if a.AlphaSize > 0 {
		b.format = gl.RGBA
	}
	if d.features.ES3 && a.Samples > 0 {
		b.samples = a.Samples
		if b.samples > d.limits.MaxSamples {
			b.samples = d.limits.MaxSamples
		}
	}
	b.fbo = d.gl.GenFramebuffers(1)[0]
	if b.samples > 0 {
		b.msaaColor = d.gl.GenRenderbuffers(1)[0]
	} else {
		b.back = b.newColorBuffer(d)
	}
	b.packed = d.features.PackedDepthStencil && a.DepthSize > 0 && a.StencilSize > 0
	switch {
	case b.packed:
		rb := d.gl.GenRenderbuffers(1)[0]
		b.depth, b.stencil = rb, rb
	default:
		if a.DepthSize > 0 {
			b.depth = d.gl.GenRenderbuffers(1)[0]
		}
		if a.StencilSize > 0 {
			b.stencil = d.gl.GenRenderbuffers(1)[0]
		}
	}
	if !b.allocate(ctx, d, width, height) {
		b.teardown(ctx, d, true)
		return nil, errors.Wrapf(ErrIncompleteBackbuffer, "Creating %dx%d backbuffer", width, height)
	}
	return b, nil
}

func (b *backbuffer) newColorBuffer(d *Decoder) *colorBuffer {
	t := resources.NewTexture(d.gl.GenTextures(1)[0])
	t.Target = gl.TEXTURE_2D
	return &colorBuffer{texture: t}
}

// allocateColor gives c storage of the given size.
func (b *backbuffer) allocateColor(ctx context.Context, d *Decoder, c *colorBuffer, width, height int32) {
	t := d.newTweaker()
	defer t.revert(ctx)
	t.bindTexture(ctx, gl.TEXTURE_2D, c.texture.Service)
	d.gl.TexImage2D(gl.TEXTURE_2D, 0, int32(b.format), width, height, b.format, gl.UNSIGNED_BYTE, nil)
	d.gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int32(gl.LINEAR))
	d.gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, int32(gl.CLAMP_TO_EDGE))
	d.gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, int32(gl.CLAMP_TO_EDGE))
	c.texture.SetLevel(gl.TEXTURE_2D, 0, resources.Level{
		Width: width, Height: height,
		InternalFormat: b.format, Format: b.format, Type: gl.UNSIGNED_BYTE,
	})
	c.width, c.height = width, height
}

// allocate sizes every buffer and returns true if fbo is complete.
func (b *backbuffer) allocate(ctx context.Context, d *Decoder, width, height int32) bool {
	t := d.newTweaker()
	defer t.revert(ctx)
	t.bindFramebuffer(ctx, b.fbo)
	storage := func(rb uint32, format gl.Enum) {
		t.bindRenderbuffer(ctx, rb)
		if b.samples > 0 {
			d.gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, b.samples, format, width, height)
		} else {
			d.gl.RenderbufferStorage(gl.RENDERBUFFER, format, width, height)
		}
	}
	if b.samples > 0 {
		format := gl.RGB8
		if b.format == gl.RGBA {
			format = gl.RGBA8
		}
		storage(b.msaaColor, format)
		d.gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, b.msaaColor)
	} else {
		b.allocateColor(ctx, d, b.back, width, height)
		d.gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.back.texture.Service, 0)
	}
	if b.packed {
		storage(b.depth, gl.DEPTH24_STENCIL8)
		d.gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, b.depth)
		d.gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.STENCIL_ATTACHMENT, gl.RENDERBUFFER, b.stencil)
	} else {
		if b.depth != 0 {
			storage(b.depth, gl.DEPTH_COMPONENT16)
			d.gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, b.depth)
		}
		if b.stencil != 0 {
			storage(b.stencil, gl.STENCIL_INDEX8)
			d.gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.STENCIL_ATTACHMENT, gl.RENDERBUFFER, b.stencil)
		}
	}
	b.width, b.height = width, height
	return d.gl.CheckFramebufferStatus(gl.FRAMEBUFFER) == gl.FRAMEBUFFER_COMPLETE
}

// resize reallocates the buffers for a new size. It is a no-op if the size
// is unchanged.
func (b *backbuffer) resize(ctx context.Context, d *Decoder, width, height int32) bool {
	if width == b.width && height == b.height {
		return true
	}
	if b.front != nil {
		b.destroyColor(d, b.front)
		b.front = nil
	}
	for _, c := range b.free {
		b.destroyColor(d, c)
	}
	b.free = nil
	return b.allocate(ctx, d, width, height)
}

// takeFree returns a free color buffer of the current size, or nil.
// Buffers of another size are destroyed.
func (b *backbuffer) takeFree(d *Decoder) *colorBuffer {
	for len(b.free) > 0 {
		c := b.free[0]
		b.free = b.free[1:]
		if reusable(c, b.width, b.height) {
			return c
		}
		b.destroyColor(d, c)
	}
	return nil
}

// ensureFront makes sure a front buffer of the current size exists.
func (b *backbuffer) ensureFront(ctx context.Context, d *Decoder) {
	if reusable(b.front, b.width, b.height) {
		return
	}
	if b.front != nil {
		b.destroyColor(d, b.front)
	}
	if b.front = b.takeFree(d); b.front == nil {
		b.front = b.newColorBuffer(d)
		b.allocateColor(ctx, d, b.front, b.width, b.height)
	}
}

// publish makes the current frame the front buffer. It returns true if
// the back buffer contents became undefined.
func (b *backbuffer) publish(ctx context.Context, d *Decoder) bool {
	b.ensureFront(ctx, d)
	defer func() {
		if l := b.front.texture.Level(gl.TEXTURE_2D, 0); l != nil {
			l.Cleared = true
		}
	}()
	if b.samples == 0 && !b.preserve {
		b.front, b.back = b.back, b.front
		t := d.newTweaker()
		defer t.revert(ctx)
		t.bindFramebuffer(ctx, b.fbo)
		d.gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.back.texture.Service, 0)
		return true
	}
	b.copyToFront(ctx, d)
	return false
}

// copyToFront copies, resolving if multisampled, the back buffer into the
// front buffer.
func (b *backbuffer) copyToFront(ctx context.Context, d *Decoder) {
	t := d.newTweaker()
	defer t.revert(ctx)
	t.disable(ctx, gl.SCISSOR_TEST)
	if d.features.ES3 {
		if b.resolveFBO == 0 {
			b.resolveFBO = d.gl.GenFramebuffers(1)[0]
		}
		t.bindFramebuffer(ctx, b.resolveFBO)
		d.gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.front.texture.Service, 0)
		d.gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
		d.gl.BlitFramebuffer(0, 0, b.width, b.height, 0, 0, b.width, b.height, gl.COLOR_BUFFER_BIT, gl.NEAREST)
		return
	}
	t.bindFramebuffer(ctx, b.fbo)
	t.bindTexture(ctx, gl.TEXTURE_2D, b.front.texture.Service)
	d.gl.CopyTexImage2D(gl.TEXTURE_2D, 0, b.format, 0, 0, b.width, b.height)
}

// takeFrontBuffer hands the front buffer to name. The next publish uses a
// new front buffer.
func (b *backbuffer) takeFrontBuffer(ctx context.Context, d *Decoder, name mailbox.Name) error {
	b.ensureFront(ctx, d)
	if err := d.mailboxes.Produce(name, gl.TEXTURE_2D, b.front.texture); err != nil {
		return err
	}
	b.taken[name] = b.front
	b.front = nil
	return nil
}

// returnFrontBuffer takes back a buffer handed out by takeFrontBuffer. It
// is kept for reuse unless lost is set or its size no longer matches.
func (b *backbuffer) returnFrontBuffer(ctx context.Context, d *Decoder, name mailbox.Name, lost bool) {
	c, ok := b.taken[name]
	if !ok {
		log.W(ctx, "Returned front buffer %v was never taken", name)
		return
	}
	delete(b.taken, name)
	d.mailboxes.Revoke(name)
	if lost || !reusable(c, b.width, b.height) || len(b.free) >= maxFreeBuffers {
		b.destroyColor(d, c)
		return
	}
	b.free = append(b.free, c)
}

func (b *backbuffer) destroyColor(d *Decoder, c *colorBuffer) {
	d.mailboxes.TextureDeleted(c.texture)
	if c.texture.Release() {
		d.gl.DeleteTextures([]uint32{c.texture.Service})
	}
}

// teardown releases every buffer. Without a context no native calls are
// made.
func (b *backbuffer) teardown(ctx context.Context, d *Decoder, haveContext bool) {
	colors := append([]*colorBuffer{b.back, b.front}, b.free...)
	for name, c := range b.taken {
		d.mailboxes.Revoke(name)
		colors = append(colors, c)
	}
	var textures []uint32
	for _, c := range colors {
		if c != nil && c.texture.Release() {
			textures = append(textures, c.texture.Service)
		}
	}
	if haveContext {
		d.gl.DeleteTextures(textures)
		fbos := []uint32{b.fbo}
		if b.resolveFBO != 0 {
			fbos = append(fbos, b.resolveFBO)
		}
		d.gl.DeleteFramebuffers(fbos)
		var rbs []uint32
		for _, rb := range []uint32{b.msaaColor, b.depth, b.stencil} {
			if rb != 0 && (len(rbs) == 0 || rbs[len(rbs)-1] != rb) {
				rbs = append(rbs, rb)
			}
		}
		if len(rbs) > 0 {
			d.gl.DeleteRenderbuffers(rbs)
		}
	}
	log.D(ctx, "Backbuffer torn down (%d textures)", len(textures))
	*b = backbuffer{}
}
