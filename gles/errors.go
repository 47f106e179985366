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
	"fmt"

	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/gles/gl"
)

// errorOrder is the order in which pending errors are reported.
var errorOrder = []gl.Enum{
	gl.INVALID_ENUM,
	gl.INVALID_VALUE,
	gl.INVALID_OPERATION,
	gl.OUT_OF_MEMORY,
	gl.INVALID_FRAMEBUFFER_OPERATION,
	gl.CONTEXT_LOST,
}

func errorBit(err gl.Enum) uint32 {
	for i, e := range errorOrder {
		if e == err {
			return 1 << uint(i)
		}
	}
	return 0
}

// errorSink holds the errors reported to the client through GetError.
// Like the native API it keeps at most one pending flag per error kind.
type errorSink struct {
	pending uint32
	// count is the number of errors ever recorded.
	count int
}

func (s *errorSink) set(err gl.Enum) {
	s.pending |= errorBit(err)
	s.count++
}

// pop returns and clears the highest priority pending error.
func (s *errorSink) pop() gl.Enum {
	for i, e := range errorOrder {
		if bit := uint32(1) << uint(i); s.pending&bit != 0 {
			s.pending &^= bit
			return e
		}
	}
	return gl.NO_ERROR
}

// setError records err against the function fn.
func (d *Decoder) setError(ctx context.Context, err gl.Enum, fn, msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	log.Bind(ctx, log.V{"error": err, "function": fn}).W("%s", msg)
	d.errors.set(err)
	if err == gl.OUT_OF_MEMORY && d.attribs.LoseContextWhenOutOfMemory {
		d.loseContext(ctx, cmdbuf.LostOutOfMemory)
		d.group.LoseContexts(cmdbuf.LostUnknown)
		d.stickyError = cmdbuf.LostContext
	}
}

func (d *Decoder) invalidEnum(ctx context.Context, fn string, value gl.Enum, arg string) {
	d.setError(ctx, gl.INVALID_ENUM, fn, "%v was %v", arg, value)
}

// renderWarning reports a draw that was skipped or may render incorrectly.
// Warnings never reach the client's error state.
func (d *Decoder) renderWarning(ctx context.Context, fn, msg string, args ...interface{}) {
	d.renderWarnings++
	log.Bind(ctx, log.V{"function": fn}).W("Render warning: "+msg, args...)
}

// performanceWarning reports an emulated path.
func (d *Decoder) performanceWarning(ctx context.Context, fn, msg string, args ...interface{}) {
	log.Bind(ctx, log.V{"function": fn}).D("Performance warning: "+msg, args...)
}

// mergeNativeErrors moves every queued native error into the client's
// error state. A lost device loses the context. Nothing is read once the
// context is lost.
func (d *Decoder) mergeNativeErrors(ctx context.Context) {
	if d.lost.lost {
		return
	}
	for {
		err := d.gl.GetError()
		if err == gl.NO_ERROR {
			return
		}
		if err == gl.CONTEXT_LOST {
			d.lostFromNative(ctx)
			return
		}
		d.errors.set(err)
	}
}

// discardNativeErrors drops the errors queued by the native context,
// reading at most one per error kind.
func (d *Decoder) discardNativeErrors() {
	for range errorOrder {
		if d.gl.GetError() == gl.NO_ERROR {
			return
		}
	}
}

// GetError returns and clears the highest priority pending error, like the
// native GetError.
func (d *Decoder) GetError(ctx context.Context) gl.Enum {
	d.mergeNativeErrors(ctx)
	return d.errors.pop()
}

// ErrorCount returns the number of errors recorded since creation.
func (d *Decoder) ErrorCount() int { return d.errors.count }

// RenderWarnings returns the number of render warnings reported.
func (d *Decoder) RenderWarnings() int { return d.renderWarnings }

// checkDrainedErrors attributes every native error left after command id.
func (d *Decoder) checkDrainedErrors(ctx context.Context, id uint32) {
	for {
		err := d.gl.GetError()
		if err == gl.NO_ERROR {
			return
		}
		if err == gl.CONTEXT_LOST {
			d.lostFromNative(ctx)
			return
		}
		log.E(ctx, "Native error %v after %v", err, commandNames[id-firstCommand])
		d.errors.set(err)
	}
}
