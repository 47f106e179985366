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

	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/memory"
	"github.com/google/gpucmd/resources"
)

// boundFramebuffer returns the framebuffer bound at target, nil for the
// default framebuffer.
func (d *Decoder) boundFramebuffer(target gl.Enum) *resources.Framebuffer {
	if target == gl.READ_FRAMEBUFFER {
		return d.state.ReadFramebuffer
	}
	return d.state.DrawFramebuffer
}

// attachmentPoints expands DEPTH_STENCIL_ATTACHMENT into its two points.
func attachmentPoints(attachment gl.Enum) []gl.Enum {
	if attachment == gl.DEPTH_STENCIL_ATTACHMENT {
		return []gl.Enum{gl.DEPTH_ATTACHMENT, gl.STENCIL_ATTACHMENT}
	}
	return []gl.Enum{attachment}
}

// attach updates the attachments of the framebuffer bound at target.
func (d *Decoder) attach(target, attachment gl.Enum, a *resources.Attachment, native func(point gl.Enum)) {
	fb := d.boundFramebuffer(target)
	for _, point := range attachmentPoints(attachment) {
		native(point)
		if a == nil {
			fb.Attach(point, nil)
		} else {
			copied := *a
			fb.Attach(point, &copied)
		}
	}
	if fb == d.state.DrawFramebuffer {
		d.clearStateDirty = true
	}
}

func (d *Decoder) checkAttachTarget(ctx context.Context, fn string, target, attachment gl.Enum) bool {
	if !d.validators.framebufferTarget.has(target) {
		d.invalidEnum(ctx, fn, target, "target")
		return false
	}
	if !d.validators.attachment.has(attachment) {
		d.invalidEnum(ctx, fn, attachment, "attachment")
		return false
	}
	if d.boundFramebuffer(target) == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "no framebuffer bound")
		return false
	}
	return true
}

func (d *Decoder) handleFramebufferTexture2D(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, attachment, texTarget := gl.Enum(args[0]), gl.Enum(args[1]), gl.Enum(args[2])
	client, level := args[3], int32(args[4])
	const fn = "glFramebufferTexture2D"
	if !d.checkAttachTarget(ctx, fn, target, attachment) {
		return cmdbuf.NoError
	}
	if !d.validators.textureImageTarget.has(texTarget) {
		d.invalidEnum(ctx, fn, texTarget, "textarget")
		return cmdbuf.NoError
	}
	var t *resources.Texture
	if client != 0 {
		var ok bool
		if t, ok = d.group.Textures.Get(client); !ok {
			d.setError(ctx, gl.INVALID_OPERATION, fn, "unknown texture %d", client)
			return cmdbuf.NoError
		}
		if t.Target != 0 && t.Target != resources.BindTarget(texTarget) {
			d.setError(ctx, gl.INVALID_OPERATION, fn, "texture target mismatch")
			return cmdbuf.NoError
		}
		maxSize := d.limits.MaxTextureSize
		if texTarget != gl.TEXTURE_2D {
			maxSize = d.limits.MaxCubeMapSize
		}
		if level < 0 || level > maxLevel(maxSize) || (level != 0 && !d.features.ES3) {
			d.setError(ctx, gl.INVALID_VALUE, fn, "level %d out of range", level)
			return cmdbuf.NoError
		}
	}
	var a *resources.Attachment
	if t != nil {
		a = &resources.Attachment{Texture: t, TexTarget: texTarget, Level: level}
	}
	d.attach(target, attachment, a, func(point gl.Enum) {
		d.gl.FramebufferTexture2D(target, point, texTarget, textureService(t), level)
	})
	return cmdbuf.NoError
}

func (d *Decoder) handleFramebufferRenderbuffer(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, attachment, rbTarget, client := gl.Enum(args[0]), gl.Enum(args[1]), gl.Enum(args[2]), args[3]
	const fn = "glFramebufferRenderbuffer"
	if !d.checkAttachTarget(ctx, fn, target, attachment) {
		return cmdbuf.NoError
	}
	if rbTarget != gl.RENDERBUFFER {
		d.invalidEnum(ctx, fn, rbTarget, "renderbuffertarget")
		return cmdbuf.NoError
	}
	var a *resources.Attachment
	var service uint32
	if client != 0 {
		r, ok := d.group.Renderbuffers.Get(client)
		if !ok || !r.EverBound {
			d.setError(ctx, gl.INVALID_OPERATION, fn, "renderbuffer %d was never bound", client)
			return cmdbuf.NoError
		}
		a, service = &resources.Attachment{Renderbuffer: r}, r.Service
	}
	d.attach(target, attachment, a, func(point gl.Enum) {
		d.gl.FramebufferRenderbuffer(target, point, rbTarget, service)
	})
	return cmdbuf.NoError
}

func (d *Decoder) renderbufferStorage(ctx context.Context, fn string, target gl.Enum, samples int32, format gl.Enum, width, height int32) {
	if target != gl.RENDERBUFFER {
		d.invalidEnum(ctx, fn, target, "target")
		return
	}
	if !d.validators.renderbufferFormat.has(format) {
		d.invalidEnum(ctx, fn, format, "internalformat")
		return
	}
	if width < 0 || height < 0 || width > d.limits.MaxRenderbufferSize || height > d.limits.MaxRenderbufferSize {
		d.setError(ctx, gl.INVALID_VALUE, fn, "dimensions %dx%d out of range", width, height)
		return
	}
	if samples < 0 || samples > d.limits.MaxSamples {
		d.setError(ctx, gl.INVALID_VALUE, fn, "samples %d out of range", samples)
		return
	}
	r := d.state.Renderbuffer
	if r == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "no renderbuffer bound")
		return
	}
	d.mergeNativeErrors(ctx)
	if samples > 0 {
		d.gl.RenderbufferStorageMultisample(target, samples, format, width, height)
	} else {
		d.gl.RenderbufferStorage(target, format, width, height)
	}
	if err := d.gl.GetError(); err != gl.NO_ERROR {
		if err == gl.CONTEXT_LOST {
			d.lostFromNative(ctx)
		} else {
			d.setError(ctx, err, fn, "native error")
		}
		return
	}
	r.Width, r.Height, r.InternalFormat, r.Samples = width, height, format, samples
	r.Cleared = false
	d.group.StorageChanged()
}

func (d *Decoder) handleRenderbufferStorage(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	d.renderbufferStorage(ctx, "glRenderbufferStorage", gl.Enum(args[0]), 0, gl.Enum(args[1]), int32(args[2]), int32(args[3]))
	return cmdbuf.NoError
}

func (d *Decoder) handleRenderbufferStorageMultisample(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	d.renderbufferStorage(ctx, "glRenderbufferStorageMultisample", gl.Enum(args[0]), int32(args[1]), gl.Enum(args[2]), int32(args[3]), int32(args[4]))
	return cmdbuf.NoError
}

func (d *Decoder) handleCheckFramebufferStatus(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target := gl.Enum(args[0])
	result, err := d.zeroResult(int32(args[1]), args[2])
	if err != cmdbuf.NoError {
		return err
	}
	if !d.validators.framebufferTarget.has(target) {
		d.invalidEnum(ctx, "glCheckFramebufferStatus", target, "target")
		return cmdbuf.NoError
	}
	status := gl.FRAMEBUFFER_COMPLETE
	if fb := d.boundFramebuffer(target); fb != nil {
		status = d.framebufferStatus(fb, target)
	}
	memory.PutUint32(result, 0, uint32(status))
	return cmdbuf.NoError
}

const clearMask = gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT

func (d *Decoder) handleClear(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	mask := gl.Enum(args[0])
	if mask&^clearMask != 0 {
		d.setError(ctx, gl.INVALID_VALUE, "glClear", "invalid mask %#x", uint32(mask))
		return cmdbuf.NoError
	}
	if d.ShouldDeferDraws() {
		return cmdbuf.DeferCommandUntilLater
	}
	if !d.checkFramebufferValid(ctx, d.state.DrawFramebuffer, d.drawTarget(), gl.INVALID_FRAMEBUFFER_OPERATION, "glClear") {
		return cmdbuf.NoError
	}
	d.gl.Clear(mask)
	return cmdbuf.NoError
}

func (d *Decoder) handleReadPixels(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	x, y, width, height := int32(args[0]), int32(args[1]), int32(args[2]), int32(args[3])
	format, ty := gl.Enum(args[4]), gl.Enum(args[5])
	pixelsID, pixelsOffset := int32(args[6]), args[7]
	resultID, resultOffset := int32(args[8]), args[9]
	async := args[10] != 0
	const fn = "glReadPixels"
	if d.ShouldDeferReads() {
		return cmdbuf.DeferCommandUntilLater
	}
	if width < 0 || height < 0 {
		d.setError(ctx, gl.INVALID_VALUE, fn, "dimensions < 0")
		return cmdbuf.NoError
	}
	size, ok := imageSize(width, height, format, ty, d.packLayout())
	if !ok {
		return cmdbuf.OutOfBounds
	}
	dst := d.mem.Resolve(pixelsID, pixelsOffset, size)
	if dst == nil {
		return cmdbuf.OutOfBounds
	}
	var result []byte
	if resultID != 0 {
		var err cmdbuf.Error
		if result, err = d.zeroResult(resultID, resultOffset); err != cmdbuf.NoError {
			return err
		}
	}
	if !d.validators.readPixelsFormat.has(format) {
		d.invalidEnum(ctx, fn, format, "format")
		return cmdbuf.NoError
	}
	if !d.validators.readPixelsType.has(ty) {
		d.invalidEnum(ctx, fn, ty, "type")
		return cmdbuf.NoError
	}
	if !d.checkFramebufferValid(ctx, d.state.ReadFramebuffer, d.readTarget(), gl.INVALID_FRAMEBUFFER_OPERATION, fn) {
		return cmdbuf.NoError
	}
	if !async {
		d.gl.ReadPixels(x, y, width, height, format, ty, dst)
		if result != nil {
			putBool(result, true)
		}
		return cmdbuf.NoError
	}
	pixels := make([]byte, size)
	d.gl.ReadPixels(x, y, width, height, format, ty, pixels)
	d.addFence(func(ctx context.Context) {
		dst := d.mem.Resolve(pixelsID, pixelsOffset, size)
		if dst == nil {
			log.W(ctx, "Async read target released before completion")
			return
		}
		copy(dst, pixels)
		if resultID != 0 {
			if result := d.mem.Resolve(resultID, resultOffset, cmdbuf.WordSize); result != nil {
				putBool(result, true)
			}
		}
	})
	return cmdbuf.NoError
}

func (d *Decoder) handleBlitFramebufferCHROMIUM(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	var c [8]int32
	for i := range c {
		c[i] = int32(args[i])
	}
	mask, filter := gl.Enum(args[8]), gl.Enum(args[9])
	const fn = "glBlitFramebufferCHROMIUM"
	if !d.validators.blitFilter.has(filter) {
		d.invalidEnum(ctx, fn, filter, "filter")
		return cmdbuf.NoError
	}
	if mask&^clearMask != 0 {
		d.setError(ctx, gl.INVALID_VALUE, fn, "invalid mask %#x", uint32(mask))
		return cmdbuf.NoError
	}
	if filter == gl.LINEAR && mask&(gl.DEPTH_BUFFER_BIT|gl.STENCIL_BUFFER_BIT) != 0 {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "LINEAR filter with depth or stencil")
		return cmdbuf.NoError
	}
	if d.ShouldDeferDraws() || d.ShouldDeferReads() {
		return cmdbuf.DeferCommandUntilLater
	}
	read, draw := d.state.ReadFramebuffer, d.state.DrawFramebuffer
	if !d.checkFramebufferValid(ctx, draw, gl.DRAW_FRAMEBUFFER, gl.INVALID_FRAMEBUFFER_OPERATION, fn) ||
		!d.checkFramebufferValid(ctx, read, gl.READ_FRAMEBUFFER, gl.INVALID_FRAMEBUFFER_OPERATION, fn) {
		return cmdbuf.NoError
	}
	if read == draw {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "source and destination are the same framebuffer")
		return cmdbuf.NoError
	}
	d.gl.BlitFramebuffer(c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7], mask, filter)
	return cmdbuf.NoError
}

func (d *Decoder) handleDrawBuffersEXTImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	n := int32(args[0])
	const fn = "glDrawBuffersEXT"
	if n < 0 || n > d.limits.MaxDrawBuffers {
		d.setError(ctx, gl.INVALID_VALUE, fn, "n %d out of range", n)
		return cmdbuf.NoError
	}
	words, err := immediateIDs(immSize, n, args[1:])
	if err != cmdbuf.NoError {
		return err
	}
	bufs := make([]gl.Enum, n)
	fb := d.state.DrawFramebuffer
	for i, w := range words {
		b := gl.Enum(w)
		switch {
		case b == gl.NONE:
		case fb == nil && b == gl.BACK && n == 1:
		case fb != nil && b == gl.ColorAttachment(i):
		default:
			d.setError(ctx, gl.INVALID_OPERATION, fn, "buffer %d is %v", i, b)
			return cmdbuf.NoError
		}
		bufs[i] = b
	}
	if fb == nil {
		if n != 1 {
			d.setError(ctx, gl.INVALID_OPERATION, fn, "default framebuffer takes one buffer")
			return cmdbuf.NoError
		}
		if d.offscreen != nil && bufs[0] == gl.BACK {
			d.gl.DrawBuffers([]gl.Enum{gl.COLOR_ATTACHMENT0})
		} else {
			d.gl.DrawBuffers(bufs)
		}
		return cmdbuf.NoError
	}
	d.gl.DrawBuffers(bufs)
	fb.DrawBuffers = bufs
	return cmdbuf.NoError
}
