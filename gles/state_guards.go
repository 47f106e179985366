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
)

// tweaker temporarily changes native state for an internal operation.
// Every change is recorded with its inverse; revert runs the inverses in
// reverse order. Use it as:
//
//	t := d.newTweaker()
//	defer t.revert(ctx)
type tweaker struct {
	d    *Decoder
	undo []func(context.Context)
}

func (d *Decoder) newTweaker() *tweaker { return &tweaker{d: d} }

// revert undoes all the changes made by the tweaker. Calling it again is a
// no-op.
func (t *tweaker) revert(ctx context.Context) {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i](ctx)
	}
	t.undo = nil
}

func (t *tweaker) doAndUndo(ctx context.Context, do, undo func(context.Context)) {
	do(ctx)
	t.undo = append(t.undo, undo)
}

func (t *tweaker) enable(ctx context.Context, c gl.Enum) {
	if !t.d.state.Enabled[c] {
		t.doAndUndo(ctx,
			func(context.Context) { t.d.gl.Enable(c) },
			func(context.Context) { t.d.gl.Disable(c) })
	}
}

func (t *tweaker) disable(ctx context.Context, c gl.Enum) {
	if t.d.state.Enabled[c] {
		t.doAndUndo(ctx,
			func(context.Context) { t.d.gl.Disable(c) },
			func(context.Context) { t.d.gl.Enable(c) })
	}
}

func (t *tweaker) clearColor(ctx context.Context, r, g, b, a float32) {
	n := [4]float32{r, g, b, a}
	if o := t.d.state.ClearColor; o != n {
		t.doAndUndo(ctx,
			func(context.Context) { t.d.gl.ClearColor(r, g, b, a) },
			func(context.Context) { t.d.gl.ClearColor(o[0], o[1], o[2], o[3]) })
	}
}

func (t *tweaker) clearDepth(ctx context.Context, v float32) {
	if o := t.d.state.ClearDepth; o != v {
		t.doAndUndo(ctx,
			func(context.Context) { t.d.gl.ClearDepthf(v) },
			func(context.Context) { t.d.gl.ClearDepthf(o) })
	}
}

func (t *tweaker) clearStencil(ctx context.Context, v int32) {
	if o := t.d.state.ClearStencil; o != v {
		t.doAndUndo(ctx,
			func(context.Context) { t.d.gl.ClearStencil(v) },
			func(context.Context) { t.d.gl.ClearStencil(o) })
	}
}

// fullMasks enables writes to every channel of every buffer.
func (t *tweaker) fullMasks(ctx context.Context) {
	s := t.d.state
	if o := s.ColorMask; o != [4]bool{true, true, true, true} {
		t.doAndUndo(ctx,
			func(context.Context) { t.d.gl.ColorMask(true, true, true, true) },
			func(context.Context) { t.d.gl.ColorMask(o[0], o[1], o[2], o[3]) })
	}
	if !s.DepthMask {
		t.doAndUndo(ctx,
			func(context.Context) { t.d.gl.DepthMask(true) },
			func(context.Context) { t.d.gl.DepthMask(false) })
	}
	for i, face := range []gl.Enum{gl.FRONT, gl.BACK} {
		face := face
		if o := s.Stencil[i].WriteMask; o != 0xffffffff {
			t.doAndUndo(ctx,
				func(context.Context) { t.d.gl.StencilMaskSeparate(face, 0xffffffff) },
				func(context.Context) { t.d.gl.StencilMaskSeparate(face, o) })
		}
	}
}

// bindFramebuffer binds the native framebuffer id to both the draw and
// read targets.
func (t *tweaker) bindFramebuffer(ctx context.Context, id uint32) {
	t.doAndUndo(ctx,
		func(context.Context) { t.d.gl.BindFramebuffer(gl.FRAMEBUFFER, id) },
		func(context.Context) { t.d.restoreFramebufferBindings() })
}

// bindTexture binds the native texture id on the active unit.
func (t *tweaker) bindTexture(ctx context.Context, target gl.Enum, id uint32) {
	t.doAndUndo(ctx,
		func(context.Context) { t.d.gl.BindTexture(target, id) },
		func(context.Context) {
			t.d.gl.BindTexture(target, textureService(t.d.state.BoundTexture(target)))
		})
}

func (t *tweaker) bindRenderbuffer(ctx context.Context, id uint32) {
	t.doAndUndo(ctx,
		func(context.Context) { t.d.gl.BindRenderbuffer(gl.RENDERBUFFER, id) },
		func(context.Context) { t.d.restoreRenderbufferBinding() })
}

func (t *tweaker) bindBuffer(ctx context.Context, target gl.Enum, id uint32) {
	t.doAndUndo(ctx,
		func(context.Context) { t.d.gl.BindBuffer(target, id) },
		func(context.Context) { t.d.restoreBufferBinding(target) })
}

func (t *tweaker) unpackAlignment(ctx context.Context, v int32) {
	if o := t.d.state.PixelStore[gl.UNPACK_ALIGNMENT]; o != v {
		t.doAndUndo(ctx,
			func(context.Context) { t.d.gl.PixelStorei(gl.UNPACK_ALIGNMENT, v) },
			func(context.Context) { t.d.gl.PixelStorei(gl.UNPACK_ALIGNMENT, o) })
	}
}

// suppressErrors moves every native error queued before the call into the
// client's error state and returns a function that discards every native
// error raised in between.
//
//	defer d.suppressErrors(ctx)()
func (d *Decoder) suppressErrors(ctx context.Context) func() {
	d.mergeNativeErrors(ctx)
	return func() {
		for {
			err := d.gl.GetError()
			if err == gl.NO_ERROR {
				return
			}
			if err == gl.CONTEXT_LOST {
				d.lostFromNative(ctx)
				return
			}
			log.D(ctx, "Discarded internal error %v", err)
		}
	}
}
