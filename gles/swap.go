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
	"github.com/google/gpucmd/driver"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/mailbox"
)

// defaultBufferBits returns the buffers the default framebuffer has.
func (d *Decoder) defaultBufferBits() gl.Enum {
	bits := gl.COLOR_BUFFER_BIT
	if d.attribs.DepthSize > 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if d.attribs.StencilSize > 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	return bits
}

func (d *Decoder) handleSwapBuffers(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	d.exitEarly()
	if d.offscreen != nil {
		if d.offscreen.publish(ctx, d) {
			d.clearBits |= gl.COLOR_BUFFER_BIT
		}
		return cmdbuf.NoError
	}
	if d.surface.SwapBuffers() == driver.SwapFailed {
		log.E(ctx, "Surface swap failed")
		d.checkResetStatus(ctx, true)
		return cmdbuf.LostContext
	}
	if d.surface.BuffersFlipped() {
		d.clearBits |= gl.COLOR_BUFFER_BIT
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleResizeCHROMIUM(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	width, height := int32(args[0]), int32(args[1])
	hasAlpha := args[3] != 0
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	ctx = log.Enter(ctx, "Resize")
	if d.offscreen != nil {
		if d.offscreen.width == width && d.offscreen.height == height {
			return cmdbuf.NoError
		}
		if !d.offscreen.resize(ctx, d, width, height) {
			log.E(ctx, "Backbuffer incomplete at %dx%d", width, height)
			d.loseContext(ctx, cmdbuf.LostUnknown)
			return cmdbuf.LostContext
		}
	} else if !d.surface.Resize(width, height, hasAlpha) {
		log.E(ctx, "Surface resize to %dx%d failed", width, height)
		d.loseContext(ctx, cmdbuf.LostUnknown)
		return cmdbuf.LostContext
	}
	d.clearBits |= d.defaultBufferBits()
	return cmdbuf.NoError
}

// immediateMailbox reads a mailbox name from the immediate data.
func immediateMailbox(immSize uint32, data []uint32) (mailbox.Name, cmdbuf.Error) {
	if immSize < mailbox.Words*cmdbuf.WordSize || len(data) < mailbox.Words {
		return mailbox.Name{}, cmdbuf.OutOfBounds
	}
	return mailbox.NameFromWords(data[:mailbox.Words]), cmdbuf.NoError
}

func (d *Decoder) handleTakeFrontBufferCHROMIUMImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glTakeFrontBufferCHROMIUM"
	name, err := immediateMailbox(immSize, args)
	if err != cmdbuf.NoError {
		return err
	}
	if d.offscreen == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "not an offscreen context")
		return cmdbuf.NoError
	}
	if err := d.offscreen.takeFrontBuffer(ctx, d, name); err != nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "%v", err)
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleReturnFrontBufferCHROMIUMImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glReturnFrontBufferCHROMIUM"
	name, err := immediateMailbox(immSize, args[1:])
	if err != cmdbuf.NoError {
		return err
	}
	if d.offscreen == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "not an offscreen context")
		return cmdbuf.NoError
	}
	d.offscreen.returnFrontBuffer(ctx, d, name, args[0] != 0)
	return cmdbuf.NoError
}
