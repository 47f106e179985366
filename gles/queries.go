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

// querySyncSize is the size of the shared memory block a query result is
// written to: the submit count at offset 0 and the 64 bit result at 8.
const querySyncSize = 16

func putEnum(b []byte, v gl.Enum) { memory.PutUint32(b, 0, uint32(v)) }

// queryForUse resolves the query and sync block of a Begin or Counter
// command. ok is false if the command is finished, with err holding its
// result.
func (d *Decoder) queryForUse(ctx context.Context, fn string, target gl.Enum, client uint32, shmID int32, shmOffset uint32) (q *resources.Query, err cmdbuf.Error, ok bool) {
	if d.mem.Resolve(shmID, shmOffset, querySyncSize) == nil {
		return nil, cmdbuf.OutOfBounds, false
	}
	if client == 0 {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "query id 0")
		return nil, cmdbuf.NoError, false
	}
	q, found := d.queries.Get(client)
	if !found {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "unknown query %d", client)
		return nil, cmdbuf.NoError, false
	}
	if q.State == resources.QueryActive {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "query %d is active", client)
		return nil, cmdbuf.NoError, false
	}
	if q.Target != 0 && q.Target != target {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "query %d was used with %v", client, q.Target)
		return nil, cmdbuf.NoError, false
	}
	if q.State != resources.QueryUnused && (q.ShmID != shmID || q.ShmOffset != shmOffset) {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "query %d sync location changed", client)
		return nil, cmdbuf.NoError, false
	}
	if q.State == resources.QueryPending {
		d.removePendingQuery(q)
	}
	q.Target, q.ShmID, q.ShmOffset = target, shmID, shmOffset
	return q, cmdbuf.NoError, true
}

func (d *Decoder) handleBeginQueryEXT(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, client := gl.Enum(args[0]), args[1]
	shmID, shmOffset, submitCount := int32(args[2]), args[3], args[4]
	const fn = "glBeginQueryEXT"
	if !d.validators.queryTarget.has(target) {
		d.invalidEnum(ctx, fn, target, "target")
		return cmdbuf.NoError
	}
	if d.state.ActiveQueries[target] != nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "a query is already active for %v", target)
		return cmdbuf.NoError
	}
	q, err, ok := d.queryForUse(ctx, fn, target, client, shmID, shmOffset)
	if !ok {
		return err
	}
	d.gl.BeginQuery(target, q.Service)
	q.State, q.SubmitCount = resources.QueryActive, submitCount
	d.state.ActiveQueries[target] = q
	return cmdbuf.NoError
}

func (d *Decoder) handleEndQueryEXT(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, submitCount := gl.Enum(args[0]), args[1]
	const fn = "glEndQueryEXT"
	if !d.validators.queryTarget.has(target) {
		d.invalidEnum(ctx, fn, target, "target")
		return cmdbuf.NoError
	}
	q := d.state.ActiveQueries[target]
	if q == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "no query active for %v", target)
		return cmdbuf.NoError
	}
	d.gl.EndQuery(target)
	delete(d.state.ActiveQueries, target)
	q.State, q.SubmitCount = resources.QueryPending, submitCount
	d.pendingQueries = append(d.pendingQueries, q)
	return cmdbuf.NoError
}

func (d *Decoder) handleQueryCounterEXT(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.TimerQuery {
		return cmdbuf.UnknownCommand
	}
	client, target := args[0], gl.Enum(args[1])
	shmID, shmOffset, submitCount := int32(args[2]), args[3], args[4]
	const fn = "glQueryCounterEXT"
	if target != gl.TIMESTAMP {
		d.invalidEnum(ctx, fn, target, "target")
		return cmdbuf.NoError
	}
	q, err, ok := d.queryForUse(ctx, fn, target, client, shmID, shmOffset)
	if !ok {
		return err
	}
	d.gl.QueryCounter(q.Service, target)
	q.State, q.SubmitCount = resources.QueryPending, submitCount
	d.pendingQueries = append(d.pendingQueries, q)
	return cmdbuf.NoError
}

// processPendingQueries writes the results of completed queries to their
// sync blocks, in submission order. Unless wait is set it stops at the
// first query whose result is not available yet. It returns true if any
// query was resolved.
func (d *Decoder) processPendingQueries(ctx context.Context, wait bool) bool {
	did := false
	for len(d.pendingQueries) > 0 {
		q := d.pendingQueries[0]
		if !wait && d.gl.GetQueryObjectui64(q.Service, gl.QUERY_RESULT_AVAILABLE) == 0 {
			break
		}
		result := d.gl.GetQueryObjectui64(q.Service, gl.QUERY_RESULT)
		switch q.Target {
		case gl.ANY_SAMPLES_PASSED, gl.ANY_SAMPLES_PASSED_CONSERVATIVE:
			if result != 0 {
				result = 1
			}
		}
		if sync := d.mem.Resolve(q.ShmID, q.ShmOffset, querySyncSize); sync != nil {
			memory.PutUint64(sync, 8, result)
			memory.PutUint32(sync, 0, q.SubmitCount)
		} else {
			log.W(ctx, "Query sync block released before the result was ready")
		}
		q.State = resources.QueryResolved
		d.pendingQueries = d.pendingQueries[1:]
		did = true
	}
	return did
}

// removePendingQuery drops q from the pending list without writing its
// result.
func (d *Decoder) removePendingQuery(q *resources.Query) {
	for i, p := range d.pendingQueries {
		if p == q {
			d.pendingQueries = append(d.pendingQueries[:i], d.pendingQueries[i+1:]...)
			return
		}
	}
}
