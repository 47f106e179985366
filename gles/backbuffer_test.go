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
	"testing"

	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/config"
	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/driver/fake"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/mailbox"
	"github.com/google/gpucmd/resources"
)

const allBuffers = gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT

func TestReusable(t *testing.T) {
	ctx := log.Testing(t)
	tex := resources.NewTexture(1)
	for _, test := range []struct {
		name   string
		c      *colorBuffer
		w, h   int32
		expect bool
	}{
		{"nil", nil, 4, 4, false},
		{"no texture", &colorBuffer{width: 4, height: 4}, 4, 4, false},
		{"match", &colorBuffer{tex, 4, 4}, 4, 4, true},
		{"width", &colorBuffer{tex, 4, 4}, 8, 4, false},
		{"height", &colorBuffer{tex, 4, 4}, 4, 8, false},
	} {
		assert.For(ctx, test.name).ThatBoolean(reusable(test.c, test.w, test.h)).Equals(test.expect)
	}
}

// drainClearBits clears the default framebuffer so no clear is pending.
func (h *harness) drainClearBits() {
	h.ok("clear", CmdClear, uint32(gl.COLOR_BUFFER_BIT))
	assert.For(h.ctx, "drained").That(h.d.BackbufferClearBits()).Equals(gl.Enum(0))
	h.gl.ResetCalls()
}

func sized(w, ht int32) func(*Options) {
	return func(o *Options) { o.Config.Context.Width, o.Config.Context.Height = w, ht }
}

func TestResizeToSameSize(t *testing.T) {
	ctx := log.Testing(t)
	h := newHarness(ctx, sized(100, 100))
	h.drainClearBits()
	h.ok("resize", CmdResizeCHROMIUM, 100, 100, cmdbuf.Float(1), 1)
	assert.For(ctx, "native calls").ThatSlice(h.gl.Calls).IsEmpty()
	assert.For(ctx, "clear bits").That(h.d.BackbufferClearBits()).Equals(gl.Enum(0))
}

func TestResize(t *testing.T) {
	ctx := log.Testing(t)
	h := newHarness(ctx, sized(100, 100))
	h.drainClearBits()
	h.ok("resize", CmdResizeCHROMIUM, 64, 32, cmdbuf.Float(1), 1)
	h.expectError("resize", gl.NO_ERROR)
	assert.For(ctx, "clear bits").That(h.d.BackbufferClearBits()).Equals(allBuffers)
	assert.For(ctx, "width").That(h.d.offscreen.width).Equals(int32(64))
	assert.For(ctx, "height").That(h.d.offscreen.height).Equals(int32(32))

	h.ok("clear", CmdClear, uint32(gl.DEPTH_BUFFER_BIT))
	assert.For(ctx, "backbuffer clears").ThatInteger(h.gl.Count("Clear(0x4500)")).Equals(1)
	assert.For(ctx, "client clears").ThatInteger(h.gl.Count("Clear(0x100)")).Equals(1)
	assert.For(ctx, "clear bits").That(h.d.BackbufferClearBits()).Equals(gl.Enum(0))

	h.ok("degenerate", CmdResizeCHROMIUM, 0, 0, cmdbuf.Float(1), 1)
	assert.For(ctx, "clamped").That(h.d.offscreen.width).Equals(int32(1))
}

func TestResizeFailureLosesContext(t *testing.T) {
	h := newTestDecoder(t)
	h.gl.FramebufferStatus = gl.FRAMEBUFFER_UNSUPPORTED
	assert.For(h.ctx, "resize").That(h.cmd(CmdResizeCHROMIUM, 64, 64, cmdbuf.Float(1), 1)).Equals(cmdbuf.LostContext)
	assert.For(h.ctx, "lost").ThatBoolean(h.d.IsLost()).IsTrue()
	assert.For(h.ctx, "reason").That(h.d.LostReason()).Equals(cmdbuf.LostUnknown)
}

func TestIncompleteBackbuffer(t *testing.T) {
	ctx := log.Testing(t)
	f := fake.New()
	f.FramebufferStatus = gl.FRAMEBUFFER_UNSUPPORTED
	o := Options{GL: f, Config: config.Default()}
	_, err := New(ctx, o)
	assert.For(ctx, "err").ThatError(err).HasCause(ErrIncompleteBackbuffer)
}

func TestSwapFlipsBackbuffer(t *testing.T) {
	h := newTestDecoder(t)
	h.drainClearBits()
	back := h.d.offscreen.back.texture
	h.ok("swap", CmdSwapBuffers)
	assert.For(h.ctx, "clear bits").That(h.d.BackbufferClearBits()).Equals(gl.COLOR_BUFFER_BIT)
	assert.For(h.ctx, "front").That(h.d.offscreen.front.texture).Equals(back)
	assert.For(h.ctx, "new back").ThatBoolean(h.d.offscreen.back.texture != back).IsTrue()

	h.ok("clear", CmdClear, uint32(gl.DEPTH_BUFFER_BIT))
	h.ok("clear", CmdClear, uint32(gl.DEPTH_BUFFER_BIT))
	assert.For(h.ctx, "color clears").ThatInteger(h.gl.Count("Clear(0x4000)")).Equals(1)
	assert.For(h.ctx, "depth clears").ThatInteger(h.gl.Count("Clear(0x100)")).Equals(2)
	assert.For(h.ctx, "clear bits").That(h.d.BackbufferClearBits()).Equals(gl.Enum(0))

	h.ok("swap again", CmdSwapBuffers)
	assert.For(h.ctx, "buffers reused").That(h.d.offscreen.back.texture).Equals(back)
}

func TestSwapPreservedBackbuffer(t *testing.T) {
	ctx := log.Testing(t)
	h := newHarness(ctx, func(o *Options) { o.Config.Context.PreserveBackbuffer = true })
	h.drainClearBits()
	h.ok("swap", CmdSwapBuffers)
	assert.For(ctx, "clear bits").That(h.d.BackbufferClearBits()).Equals(gl.Enum(0))
	assert.For(ctx, "blits").ThatInteger(h.gl.Count("BlitFramebuffer")).Equals(1)
}

func TestSwapMultisampledBackbuffer(t *testing.T) {
	ctx := log.Testing(t)
	h := newHarness(ctx, func(o *Options) { o.Config.Context.Samples = 16 })
	h.drainClearBits()
	h.ok("swap", CmdSwapBuffers)
	assert.For(ctx, "clear bits").That(h.d.BackbufferClearBits()).Equals(gl.Enum(0))
	assert.For(ctx, "resolves").ThatInteger(h.gl.Count("BlitFramebuffer")).Equals(1)
}

func TestSwapOnscreen(t *testing.T) {
	ctx := log.Testing(t)
	surface := &fake.Surface{Width: 64, Height: 64}
	h := newHarness(ctx, onscreen(surface))
	h.drainClearBits()
	h.ok("swap", CmdSwapBuffers)
	assert.For(ctx, "swaps").ThatInteger(surface.Swaps).Equals(1)
	assert.For(ctx, "clear bits").That(h.d.BackbufferClearBits()).Equals(gl.Enum(0))

	surface.Flipped = true
	h.ok("swap flipped", CmdSwapBuffers)
	assert.For(ctx, "clear bits").That(h.d.BackbufferClearBits()).Equals(gl.COLOR_BUFFER_BIT)

	h.ok("resize", CmdResizeCHROMIUM, 32, 32, cmdbuf.Float(1), 0)
	assert.For(ctx, "resizes").ThatInteger(surface.Resizes).Equals(1)
	assert.For(ctx, "clear bits").That(h.d.BackbufferClearBits()).Equals(allBuffers)
}

func TestDeferredOnscreenDraws(t *testing.T) {
	ctx := log.Testing(t)
	surface := &fake.Surface{Width: 64, Height: 64, Defer: true}
	h := newHarness(ctx, onscreen(surface))
	assert.For(ctx, "clear").That(h.cmd(CmdClear, uint32(gl.COLOR_BUFFER_BIT))).Equals(cmdbuf.DeferCommandUntilLater)
	assert.For(ctx, "native calls").ThatSlice(h.gl.Calls).IsEmpty()
	surface.Defer = false
	h.ok("clear", CmdClear, uint32(gl.COLOR_BUFFER_BIT))
}

func frontBufferHarness(ctx context.Context) (*harness, *mailbox.Registry) {
	r := mailbox.NewRegistry()
	h := newHarness(ctx, func(o *Options) { o.Mailboxes = r })
	h.ok("swap", CmdSwapBuffers)
	return h, r
}

func TestTakeAndReturnFrontBuffer(t *testing.T) {
	ctx := log.Testing(t)
	h, r := frontBufferHarness(ctx)
	front := h.d.offscreen.front.texture
	name := r.Generate()
	h.ok("take", CmdTakeFrontBufferCHROMIUMImmediate, name.Words()...)
	h.expectError("take", gl.NO_ERROR)
	got, err := r.Consume(name, gl.TEXTURE_2D)
	assert.For(ctx, "consume").ThatError(err).Succeeded()
	assert.For(ctx, "texture").That(got).Equals(front)
	assert.For(ctx, "front").That(h.d.offscreen.front).IsNil()

	h.ok("return", CmdReturnFrontBufferCHROMIUMImmediate, append([]uint32{0}, name.Words()...)...)
	_, err = r.Consume(name, gl.TEXTURE_2D)
	assert.For(ctx, "revoked").ThatError(err).HasCause(mailbox.ErrNotFound)
	assert.For(ctx, "free").ThatInteger(len(h.d.offscreen.free)).Equals(1)

	second := r.Generate()
	h.ok("take again", CmdTakeFrontBufferCHROMIUMImmediate, second.Words()...)
	got, _ = r.Consume(second, gl.TEXTURE_2D)
	assert.For(ctx, "recycled").That(got).Equals(front)
	assert.For(ctx, "free").ThatInteger(len(h.d.offscreen.free)).Equals(0)

	h.gl.ResetCalls()
	h.ok("return lost", CmdReturnFrontBufferCHROMIUMImmediate, append([]uint32{1}, second.Words()...)...)
	assert.For(ctx, "free").ThatInteger(len(h.d.offscreen.free)).Equals(0)
	assert.For(ctx, "deleted").ThatInteger(h.gl.Count("DeleteTextures")).Equals(1)
}

func TestFrontBufferNeedsOffscreen(t *testing.T) {
	ctx := log.Testing(t)
	h := newHarness(ctx, onscreen(&fake.Surface{Width: 8, Height: 8}))
	name := mailbox.NewRegistry().Generate()
	h.ok("take", CmdTakeFrontBufferCHROMIUMImmediate, name.Words()...)
	h.expectError("take", gl.INVALID_OPERATION)
	assert.For(ctx, "short name").That(h.cmd(CmdTakeFrontBufferCHROMIUMImmediate, 1, 2)).Equals(cmdbuf.OutOfBounds)
}
