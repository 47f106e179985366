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
)

// lostStatus is the context loss state. Once lost is set it is never
// cleared.
type lostStatus struct {
	lost   bool
	reason cmdbuf.LostReason
	// viaRobustness is set when the reason came from the native reset
	// status.
	viaRobustness bool
}

// MarkContextLost marks the context as lost. Only the first call has an
// effect. It implements resources.Member.
func (d *Decoder) MarkContextLost(reason cmdbuf.LostReason) {
	if d.lost.lost {
		return
	}
	d.lost = lostStatus{lost: true, reason: reason}
}

func (d *Decoder) loseContext(ctx context.Context, reason cmdbuf.LostReason) {
	if d.lost.lost {
		return
	}
	log.E(ctx, "Context lost: %v", reason)
	d.MarkContextLost(reason)
}

// IsLost returns true once the context has been lost.
func (d *Decoder) IsLost() bool { return d.lost.lost }

// LostReason returns the reason the context was lost.
func (d *Decoder) LostReason() cmdbuf.LostReason { return d.lost.reason }

// LostViaRobustness returns true if the loss reason was reported by the
// native reset status.
func (d *Decoder) LostViaRobustness() bool { return d.lost.viaRobustness }

// reasonFromResetStatus classifies a native reset status.
func reasonFromResetStatus(status gl.Enum) cmdbuf.LostReason {
	switch status {
	case gl.GUILTY_CONTEXT_RESET:
		return cmdbuf.LostGuilty
	case gl.INNOCENT_CONTEXT_RESET:
		return cmdbuf.LostInnocent
	default:
		return cmdbuf.LostUnknown
	}
}

// checkResetStatus asks the device whether it was reset. If it was, or
// force is set, the context and every other context of the group are
// lost and true is returned.
func (d *Decoder) checkResetStatus(ctx context.Context, force bool) bool {
	status := gl.NO_ERROR
	if d.features.Robustness {
		status = d.gl.GetGraphicsResetStatus()
	}
	if status == gl.NO_ERROR && !force {
		return false
	}
	if !d.lost.lost {
		d.loseContext(ctx, reasonFromResetStatus(status))
		d.lost.viaRobustness = status != gl.NO_ERROR
	}
	d.group.LoseContexts(cmdbuf.LostUnknown)
	return true
}

// lostFromNative handles a CONTEXT_LOST error raised by the device in the
// middle of a command.
func (d *Decoder) lostFromNative(ctx context.Context) {
	d.checkResetStatus(ctx, true)
	d.stickyError = cmdbuf.LostContext
}

func (d *Decoder) handleLoseContextCHROMIUM(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	current, other := gl.Enum(args[0]), gl.Enum(args[1])
	if !d.validators.resetStatus.has(current) {
		d.invalidEnum(ctx, "glLoseContextCHROMIUM", current, "current")
		return cmdbuf.NoError
	}
	if !d.validators.resetStatus.has(other) {
		d.invalidEnum(ctx, "glLoseContextCHROMIUM", other, "other")
		return cmdbuf.NoError
	}
	d.loseContext(ctx, reasonFromResetStatus(current))
	d.group.LoseContexts(reasonFromResetStatus(other))
	return cmdbuf.LostContext
}
