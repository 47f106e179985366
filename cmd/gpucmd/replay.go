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

package main

import (
	"context"
	"fmt"

	"github.com/google/gpucmd/capture"
	"github.com/google/gpucmd/cmdbuf"
	"github.com/google/gpucmd/config"
	"github.com/google/gpucmd/core/fault"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/driver/fake"
	"github.com/google/gpucmd/gles"
	"github.com/google/gpucmd/mailbox"
	"github.com/google/gpucmd/memory"
	"github.com/pkg/errors"
)

// ErrStalled is returned when a deferred command cannot make progress even
// after all outstanding GPU work has completed.
const ErrStalled = fault.Const("Replay stalled on a deferred command")

// maxRetries bounds how often one deferred command is retried.
const maxRetries = 8

// Options controls a replay.
type Options struct {
	Config    config.Config
	Mailboxes *mailbox.Registry
	// Budget is the number of commands per DoCommands call.
	Budget int
}

// Stats summarizes the replay of one capture.
type Stats struct {
	Name string
	// Commands is the number of commands the decoder processed.
	Commands int
	// Error is the structural error that stopped decoding, or NoError.
	Error          cmdbuf.Error
	GLErrors       int
	RenderWarnings int
	Lost           bool
	LostReason     cmdbuf.LostReason
}

func (s Stats) String() string {
	str := fmt.Sprintf("%s: %d commands, error %v, %d GL errors, %d render warnings",
		s.Name, s.Commands, s.Error, s.GLErrors, s.RenderWarnings)
	if s.Lost {
		str += fmt.Sprintf(", context lost (%v)", s.LostReason)
	}
	return str
}

// Replay feeds every command buffer of c through a new decoder on the
// recording driver.
func Replay(ctx context.Context, c *capture.Capture, o Options) (Stats, error) {
	stats := Stats{Name: c.Name}
	mem := memory.NewManager()
	if err := c.Register(mem); err != nil {
		return stats, err
	}
	native := fake.New()
	d, err := gles.New(ctx, gles.Options{
		GL:        native,
		Memory:    mem,
		Mailboxes: o.Mailboxes,
		Config:    o.Config,
	})
	if err != nil {
		return stats, errors.Wrapf(err, "Creating decoder for %v", c.Name)
	}
	defer d.Destroy(ctx, true)

	r := replayer{d: d, native: native, budget: o.Budget}
	for i, words := range c.Submits {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Error = r.submit(ctx, words)
		if stats.Error != cmdbuf.NoError || d.IsLost() {
			log.W(ctx, "Submit %d of %v stopped: %v", i, c.Name, stats.Error)
			break
		}
	}
	if stats.Error == cmdbuf.DeferCommandUntilLater {
		return stats, errors.Wrapf(ErrStalled, "Replaying %v", c.Name)
	}
	r.drain(ctx)

	stats.Commands = d.CommandsProcessed()
	stats.GLErrors = d.ErrorCount()
	stats.RenderWarnings = d.RenderWarnings()
	stats.Lost, stats.LostReason = d.IsLost(), d.LostReason()
	return stats, nil
}

type replayer struct {
	d      *gles.Decoder
	native *fake.GL
	budget int
}

// submit decodes one command buffer to its end, retrying deferred commands
// once asynchronous work has been performed.
func (r *replayer) submit(ctx context.Context, words []uint32) cmdbuf.Error {
	retries := 0
	for len(words) > 0 {
		if r.d.IsDescheduled() {
			r.advance(ctx)
			if !r.d.PollDeschedule(ctx) {
				return cmdbuf.DeferCommandUntilLater
			}
		}
		err, n := r.d.DoCommands(ctx, r.budget, words)
		words = words[n:]
		switch err {
		case cmdbuf.NoError:
			retries = 0
		case cmdbuf.DeferCommandUntilLater:
			if retries++; retries > maxRetries {
				return err
			}
			r.advance(ctx)
		default:
			return err
		}
	}
	return cmdbuf.NoError
}

// advance lets the recording driver finish all outstanding GPU work and
// runs the decoder's idle work.
func (r *replayer) advance(ctx context.Context) {
	r.native.SignalFences()
	r.native.CompleteQueries()
	r.d.PerformIdleWork(ctx)
}

// drain completes all remaining asynchronous work.
func (r *replayer) drain(ctx context.Context) {
	for i := 0; i < maxRetries && r.d.HasMoreIdleWork() && !r.d.IsLost(); i++ {
		r.advance(ctx)
	}
	if r.d.HasMoreIdleWork() {
		log.W(ctx, "Asynchronous work still outstanding after replay")
	}
}
