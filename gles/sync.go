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
	"github.com/google/gpucmd/resources"
)

// timeoutIgnored is the only timeout accepted by WaitSync.
const timeoutIgnored = ^uint64(0)

// fence is a native fence with the work to run once it signals.
type fence struct {
	sync      uint64
	callbacks []func(context.Context)
}

// addFence inserts a native fence and queues callback to run once every
// command issued so far has completed.
func (d *Decoder) addFence(callback func(context.Context)) {
	d.fences = append(d.fences, fence{
		sync:      d.gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0),
		callbacks: []func(context.Context){callback},
	})
}

// processFences runs the callbacks of every signaled fence, in order.
func (d *Decoder) processFences(ctx context.Context) bool {
	did := false
	for len(d.fences) > 0 && d.gl.SyncStatus(d.fences[0].sync) == gl.SIGNALED {
		f := d.fences[0]
		d.fences = d.fences[1:]
		d.gl.DeleteSync(f.sync)
		for _, cb := range f.callbacks {
			cb(ctx)
		}
		did = true
	}
	return did
}

// PerformIdleWork runs completed asynchronous work: fence callbacks and
// query results. It returns true if anything was done.
func (d *Decoder) PerformIdleWork(ctx context.Context) bool {
	if d.lost.lost {
		return false
	}
	did := d.processFences(ctx)
	if d.processPendingQueries(ctx, false) {
		did = true
	}
	return did
}

// HasMoreIdleWork returns true while asynchronous work is outstanding.
func (d *Decoder) HasMoreIdleWork() bool {
	return len(d.fences) > 0 || len(d.pendingQueries) > 0
}

// The deschedule state machine is driven by the number of outstanding
// deschedule fences: none (idle), one, or two. At two the decoder asks to
// be descheduled until the older fence completes.

func (d *Decoder) handleDescheduleUntilFinishedCHROMIUM(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if len(d.deschedule) >= 2 {
		return cmdbuf.DeferCommandUntilLater
	}
	d.deschedule = append(d.deschedule, d.gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0))
	if len(d.deschedule) == 1 {
		return cmdbuf.NoError
	}
	if d.gl.SyncStatus(d.deschedule[0]) == gl.SIGNALED {
		d.gl.DeleteSync(d.deschedule[0])
		d.deschedule = d.deschedule[1:]
		return cmdbuf.NoError
	}
	log.D(ctx, "Descheduling until finished")
	d.exitEarly()
	if d.descheduleFn != nil {
		d.descheduleFn()
	}
	return cmdbuf.NoError
}

// PollDeschedule checks whether a descheduled decoder may run again. It
// returns true when the decoder was rescheduled. A lost decoder abandons
// its fences and is rescheduled without touching the native context.
func (d *Decoder) PollDeschedule(ctx context.Context) bool {
	if d.lost.lost {
		if !d.IsDescheduled() {
			return false
		}
		d.deschedule = nil
		log.D(ctx, "Rescheduling lost context")
		if d.rescheduleFn != nil {
			d.rescheduleFn()
		}
		return true
	}
	if len(d.deschedule) < 2 || d.gl.SyncStatus(d.deschedule[0]) != gl.SIGNALED {
		return false
	}
	d.gl.DeleteSync(d.deschedule[0])
	d.deschedule = d.deschedule[1:]
	log.D(ctx, "Rescheduling after finish")
	if d.rescheduleFn != nil {
		d.rescheduleFn()
	}
	return true
}

// IsDescheduled returns true while the decoder waits for a deschedule
// fence.
func (d *Decoder) IsDescheduled() bool { return len(d.deschedule) >= 2 }

func (d *Decoder) handleFenceSync(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	client := args[0]
	if !d.group.Syncs.CanCreate([]uint32{client}) {
		return cmdbuf.InvalidArguments
	}
	d.group.Syncs.Add(client, &resources.Sync{Handle: d.gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)})
	return cmdbuf.NoError
}

func (d *Decoder) handleDeleteSync(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	client := args[0]
	if client == 0 {
		return cmdbuf.NoError
	}
	s, ok := d.group.Syncs.Remove(client)
	if !ok {
		d.setError(ctx, gl.INVALID_VALUE, "glDeleteSync", "unknown sync %d", client)
		return cmdbuf.NoError
	}
	d.gl.DeleteSync(s.Handle)
	return cmdbuf.NoError
}

func (d *Decoder) handleClientWaitSync(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	client, flags := args[0], args[1]
	timeout := uint64(args[2]) | uint64(args[3])<<32
	result, err := d.zeroResult(int32(args[4]), args[5])
	if err != cmdbuf.NoError {
		return err
	}
	const fn = "glClientWaitSync"
	s, ok := d.group.Syncs.Get(client)
	if !ok {
		d.setError(ctx, gl.INVALID_VALUE, fn, "unknown sync %d", client)
		return cmdbuf.NoError
	}
	if flags&^uint32(gl.SYNC_FLUSH_COMMANDS_BIT) != 0 {
		d.setError(ctx, gl.INVALID_VALUE, fn, "invalid flags %#x", flags)
		return cmdbuf.NoError
	}
	status := d.gl.ClientWaitSync(s.Handle, flags, timeout)
	putEnum(result, status)
	return cmdbuf.NoError
}

func (d *Decoder) handleWaitSync(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	client, flags := args[0], args[1]
	timeout := uint64(args[2]) | uint64(args[3])<<32
	const fn = "glWaitSync"
	s, ok := d.group.Syncs.Get(client)
	if !ok {
		d.setError(ctx, gl.INVALID_VALUE, fn, "unknown sync %d", client)
		return cmdbuf.NoError
	}
	if flags != 0 || timeout != timeoutIgnored {
		d.setError(ctx, gl.INVALID_VALUE, fn, "flags must be 0 and timeout TIMEOUT_IGNORED")
		return cmdbuf.NoError
	}
	d.gl.WaitSync(s.Handle, flags, timeout)
	return cmdbuf.NoError
}

func (d *Decoder) handleInsertFenceSyncCHROMIUM(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	release := uint64(args[0]) | uint64(args[1])<<32
	if release <= d.releaseCount {
		return cmdbuf.InvalidArguments
	}
	d.releaseCount = release
	if d.waiter != nil {
		d.waiter.Release(release)
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleWaitSyncTokenCHROMIUM(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	token := driver.SyncToken{
		Namespace:       driver.SyncNamespace(int32(args[0])),
		CommandBufferID: uint64(args[1]) | uint64(args[2])<<32,
		Release:         uint64(args[3]) | uint64(args[4])<<32,
	}
	if !token.Namespace.Valid() {
		return cmdbuf.InvalidArguments
	}
	if d.waiter == nil || d.waiter.IsReleased(token) {
		return cmdbuf.NoError
	}
	return cmdbuf.DeferCommandUntilLater
}

func (d *Decoder) handleFinish(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if d.ShouldDeferReads() {
		return cmdbuf.DeferCommandUntilLater
	}
	d.gl.Finish()
	d.processFences(ctx)
	d.processPendingQueries(ctx, true)
	return cmdbuf.NoError
}

func (d *Decoder) handleFlush(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	d.gl.Flush()
	return cmdbuf.NoError
}
