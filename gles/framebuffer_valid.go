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

	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/resources"
)

// checkFramebufferValid checks that fb, bound at target, can be rendered
// to or read from. A nil fb is the default framebuffer. Buffers with
// undefined contents are cleared first. An incomplete framebuffer records
// errCode against fn and returns false.
func (d *Decoder) checkFramebufferValid(ctx context.Context, fb *resources.Framebuffer, target, errCode gl.Enum, fn string) bool {
	if d.clearStateDirty {
		d.restoreClearState(ctx)
		d.clearStateDirty = false
	}
	if fb == nil {
		if d.clearBits != 0 {
			d.clearBackbuffer(ctx)
		}
		return true
	}
	if status := d.framebufferStatus(fb, target); status != gl.FRAMEBUFFER_COMPLETE {
		d.setError(ctx, errCode, fn, "framebuffer incomplete (%v)", status)
		return false
	}
	if bits := fb.UnclearedBits(); bits != 0 {
		d.clearUnclearedAttachments(ctx, fb, bits)
	}
	return true
}

// framebufferStatus returns the completeness of fb, asking the device only
// when the cached answer is stale.
func (d *Decoder) framebufferStatus(fb *resources.Framebuffer, target gl.Enum) gl.Enum {
	gen := d.group.Generation()
	if fb.IsCompleteAt(gen) {
		return gl.FRAMEBUFFER_COMPLETE
	}
	status := fb.PrecheckStatus()
	if status == gl.FRAMEBUFFER_COMPLETE {
		status = d.gl.CheckFramebufferStatus(target)
	}
	if status == gl.FRAMEBUFFER_COMPLETE {
		fb.MarkCompleteAt(gen)
	}
	return status
}

// clearBackbuffer clears the buffers of the default framebuffer that have
// undefined contents.
func (d *Decoder) clearBackbuffer(ctx context.Context) {
	t := d.newTweaker()
	if d.state.DrawFramebuffer != nil || d.state.ReadFramebuffer != nil {
		t.bindFramebuffer(ctx, d.framebufferService(nil))
	}
	alpha := float32(0)
	if d.attribs.AlphaSize == 0 {
		alpha = 1
	}
	d.gl.ClearColor(0, 0, 0, alpha)
	d.gl.ColorMask(true, true, true, true)
	d.gl.ClearStencil(0)
	d.gl.StencilMaskSeparate(gl.FRONT, 0xffffffff)
	d.gl.StencilMaskSeparate(gl.BACK, 0xffffffff)
	d.gl.ClearDepthf(1)
	d.gl.DepthMask(true)
	d.gl.Disable(gl.SCISSOR_TEST)
	d.gl.Clear(d.clearBits)
	d.clearBits = 0
	d.restoreClearState(ctx)
	t.revert(ctx)
}

// clearUnclearedAttachments clears the attachments of fb covered by bits.
func (d *Decoder) clearUnclearedAttachments(ctx context.Context, fb *resources.Framebuffer, bits gl.Enum) {
	t := d.newTweaker()
	defer t.revert(ctx)
	if fb != d.state.DrawFramebuffer {
		t.bindFramebuffer(ctx, fb.Service)
	}
	t.clearColor(ctx, 0, 0, 0, 0)
	t.clearDepth(ctx, 1)
	t.clearStencil(ctx, 0)
	t.fullMasks(ctx)
	t.disable(ctx, gl.SCISSOR_TEST)
	d.gl.Clear(bits)
	fb.MarkCleared(bits)
}
