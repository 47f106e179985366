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
	"github.com/google/gpucmd/config"
	"github.com/google/gpucmd/core/fault"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/driver"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/mailbox"
	"github.com/google/gpucmd/memory"
	"github.com/google/gpucmd/resources"
	"github.com/google/gpucmd/shader"
	"github.com/pkg/errors"
)

const (
	// ErrNoDriver is returned by New without a native context.
	ErrNoDriver = fault.Const("No native context")
	// ErrNoSurface is returned by New for an onscreen context without a
	// surface.
	ErrNoSurface = fault.Const("Onscreen context without a surface")
	// ErrES3Unsupported is returned by New when an ES3 context is requested
	// from a native context that cannot back it.
	ErrES3Unsupported = fault.Const("ES3 context not supported by the native context")
	// ErrGroupMismatch is returned by New when the context's
	// bind-generates-resource setting differs from its group's.
	ErrGroupMismatch = fault.Const("Context group bind-generates-resource mismatch")
	// ErrIncompleteBackbuffer is returned by New when the offscreen
	// backbuffer cannot be made complete.
	ErrIncompleteBackbuffer = fault.Const("Offscreen backbuffer incomplete")
)

// Options holds the collaborators of a Decoder. Only GL is required.
type Options struct {
	GL driver.GL
	// Surface is the presentation surface of an onscreen context.
	Surface driver.Surface
	// Group is the share group. A new group is made if nil.
	Group *resources.Group
	// Mailboxes is the registry shared with other decoders. A new registry
	// is made if nil.
	Mailboxes  *mailbox.Registry
	Translator shader.Translator
	Waiter     driver.SyncPointWaiter
	Memory     *memory.Manager
	Config     config.Config
	// Deschedule and Reschedule are called when the decoder asks to stop
	// being scheduled and to be scheduled again.
	Deschedule func()
	Reschedule func()
}

// Decoder decodes GLES command buffers against one native context.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	gl         driver.GL
	surface    driver.Surface
	group      *resources.Group
	mailboxes  *mailbox.Registry
	translator shader.Translator
	waiter     driver.SyncPointWaiter
	common     *cmdbuf.Common
	mem        *memory.Manager
	attribs    config.Attributes
	settings   config.Decoder

	features   Features
	limits     Limits
	validators *validators

	framebuffers       *resources.Namespace[*resources.Framebuffer]
	queries            *resources.Namespace[*resources.Query]
	vertexArrays       *resources.Namespace[*resources.VertexArray]
	transformFeedbacks *resources.Namespace[*resources.TransformFeedback]

	state     *State
	errors    errorSink
	lost      lostStatus
	offscreen *backbuffer

	// clearBits holds the buffers of the default framebuffer with undefined
	// contents.
	clearBits gl.Enum
	// clearStateDirty is set when the draw framebuffer changed since the
	// clear state was last pushed.
	clearStateDirty bool

	fences         []fence
	deschedule     []uint64
	descheduleFn   func()
	rescheduleFn   func()
	pendingQueries []*resources.Query
	releaseCount   uint64

	stickyError       cmdbuf.Error
	commandsRemaining int
	commandsProcessed int
	renderWarnings    int

	attrib0 scratchBuffer
	fixed   scratchBuffer
}

// New returns a Decoder for the native context of o.
func New(ctx context.Context, o Options) (*Decoder, error) {
	if o.GL == nil {
		return nil, ErrNoDriver
	}
	if err := o.Config.Validate(); err != nil {
		return nil, errors.Wrap(err, "Creating decoder")
	}
	attribs := o.Config.Context
	if attribs.IsWebGL() {
		attribs.BindGeneratesResource = false
	}
	if !attribs.Offscreen && o.Surface == nil {
		return nil, ErrNoSurface
	}
	d := &Decoder{
		gl:           o.GL,
		surface:      o.Surface,
		group:        o.Group,
		mailboxes:    o.Mailboxes,
		translator:   o.Translator,
		waiter:       o.Waiter,
		mem:          o.Memory,
		attribs:      attribs,
		settings:     o.Config.Decoder,
		descheduleFn: o.Deschedule,
		rescheduleFn: o.Reschedule,

		framebuffers:       resources.NewNamespace[*resources.Framebuffer](),
		queries:            resources.NewNamespace[*resources.Query](),
		vertexArrays:       resources.NewNamespace[*resources.VertexArray](),
		transformFeedbacks: resources.NewNamespace[*resources.TransformFeedback](),
	}
	if d.group == nil {
		d.group = resources.NewGroup(attribs.BindGeneratesResource, d.settings.MemoryLimit)
	} else if d.group.BindGeneratesResource != attribs.BindGeneratesResource {
		return nil, ErrGroupMismatch
	}
	if d.mailboxes == nil {
		d.mailboxes = mailbox.NewRegistry()
	}
	if d.mem == nil {
		d.mem = memory.NewManager()
	}
	d.common = cmdbuf.NewCommon(d.mem)

	d.features = queryFeatures(ctx, d.gl, attribs.IsES3())
	if attribs.IsES3() && !d.features.ES3 {
		return nil, errors.Wrapf(ErrES3Unsupported, "Native version %v", d.features.Version)
	}
	if d.translator == nil {
		version := "#version 100"
		if d.features.ES3 {
			version = "#version 300 es"
		}
		cache, err := shader.NewCache(shader.Passthrough{Version: version}, d.settings.ShaderCacheSize)
		if err != nil {
			return nil, err
		}
		d.translator = cache
	}
	d.limits = queryLimits(d.gl, &d.features)
	d.validators = newValidators(&d.features, &d.limits)
	// Limit queries may leave errors for unsupported names.
	d.discardNativeErrors()

	width, height := attribs.Width, attribs.Height
	if !attribs.Offscreen {
		width, height = d.surface.Size()
	}
	d.state = newState(&d.limits, width, height)
	d.state.DefaultVertexArray = resources.NewVertexArray(0, int(d.limits.MaxVertexAttribs))
	d.state.VertexArray = d.state.DefaultVertexArray
	d.state.DefaultTransformFeedback = &resources.TransformFeedback{}
	d.state.TransformFeedback = d.state.DefaultTransformFeedback

	if attribs.Offscreen {
		b, err := d.newBackbuffer(ctx, width, height)
		if err != nil {
			return nil, err
		}
		d.offscreen = b
		d.restoreFramebufferBindings()
	}

	d.clearBits = gl.COLOR_BUFFER_BIT
	if attribs.DepthSize > 0 {
		d.clearBits |= gl.DEPTH_BUFFER_BIT
	}
	if attribs.StencilSize > 0 {
		d.clearBits |= gl.STENCIL_BUFFER_BIT
	}

	d.group.Join(d)
	log.D(ctx, "Decoder created (%s, %dx%d, offscreen: %v)", attribs.ContextType, width, height, attribs.Offscreen)
	return d, nil
}

// Destroy releases the decoder's objects. haveContext is false when the
// native context can no longer be used, in which case no native calls are
// made.
func (d *Decoder) Destroy(ctx context.Context, haveContext bool) {
	haveContext = haveContext && !d.lost.lost
	if p := d.state.Program; p != nil {
		if haveContext {
			d.releaseProgramUse(ctx, p)
		} else if p.RemoveUse() && p.DeletePending {
			for _, s := range p.Shaders {
				p.Detach(s)
			}
		}
		d.state.Program = nil
	}
	if haveContext {
		var fbos, queries, vaos, tfs []uint32
		d.framebuffers.Each(func(_ uint32, f *resources.Framebuffer) { fbos = append(fbos, f.Service) })
		d.queries.Each(func(_ uint32, q *resources.Query) { queries = append(queries, q.Service) })
		d.vertexArrays.Each(func(_ uint32, v *resources.VertexArray) { vaos = append(vaos, v.Service) })
		d.transformFeedbacks.Each(func(_ uint32, t *resources.TransformFeedback) { tfs = append(tfs, t.Service) })
		d.gl.DeleteFramebuffers(fbos)
		d.gl.DeleteQueries(queries)
		d.gl.DeleteVertexArrays(vaos)
		d.gl.DeleteTransformFeedbacks(tfs)
		for _, f := range d.fences {
			d.gl.DeleteSync(f.sync)
		}
		for _, s := range d.deschedule {
			d.gl.DeleteSync(s)
		}
		d.attrib0.release(d.gl)
		d.fixed.release(d.gl)
	}
	d.fences, d.deschedule = nil, nil
	if d.offscreen != nil {
		d.offscreen.teardown(ctx, d, haveContext)
		d.offscreen = nil
	}
	d.group.Leave(d)
}

// DoCommands decodes the records in buffer. It stops after budget commands,
// or the configured slice size if budget is not positive, when a handler
// asks to yield, or at the first error. It returns the result of the last
// command and the number of words consumed. A deferred command is not
// consumed.
func (d *Decoder) DoCommands(ctx context.Context, budget int, buffer []uint32) (cmdbuf.Error, int) {
	if budget <= 0 {
		budget = d.settings.CommandsPerSlice
	}
	d.commandsRemaining = budget
	result := cmdbuf.NoError
	pos := 0
	for pos < len(buffer) && d.commandsRemaining > 0 {
		header := cmdbuf.Header(buffer[pos])
		size := int(header.Size())
		if size == 0 {
			result = cmdbuf.InvalidSize
			break
		}
		if size > len(buffer)-pos {
			result = cmdbuf.OutOfBounds
			break
		}
		result = d.doCommand(ctx, header.Command(), buffer[pos+1:pos+size])
		if result == cmdbuf.DeferCommandUntilLater {
			break
		}
		pos += size
		d.commandsRemaining--
		d.commandsProcessed++
		if result != cmdbuf.NoError {
			break
		}
	}
	return result, pos
}

func (d *Decoder) doCommand(ctx context.Context, id uint32, args []uint32) cmdbuf.Error {
	if d.lost.lost {
		return cmdbuf.LostContext
	}
	if id < cmdbuf.NumCommonCommands {
		return d.common.DoCommand(ctx, id, args)
	}
	index := id - firstCommand
	if index >= numCommands {
		return cmdbuf.UnknownCommand
	}
	info := &commandInfos[index]
	argCount := uint32(len(args))
	if !info.argFlags.Check(argCount, info.argCount) {
		return cmdbuf.InvalidArguments
	}
	immSize := (argCount - info.argCount) * cmdbuf.WordSize
	name := commandNames[index]
	if d.settings.LogCommands {
		log.D(ctx, "[%d] %s", d.commandsProcessed, name)
	}
	traced := d.settings.Debug && info.traceLevel <= d.settings.TraceLevel
	if traced {
		ctx = log.Enter(ctx, name)
		log.D(ctx, "Begin")
	}
	result := info.handler(d, ctx, immSize, args)
	if d.settings.Debug {
		d.checkDrainedErrors(ctx, id)
	}
	if traced {
		log.D(ctx, "End: %v", result)
	}
	if d.stickyError != cmdbuf.NoError {
		result, d.stickyError = d.stickyError, cmdbuf.NoError
	}
	return result
}

// exitEarly makes the current DoCommands call return after this command.
func (d *Decoder) exitEarly() { d.commandsRemaining = 0 }

// Common returns the common command dispatcher, which owns the buckets.
func (d *Decoder) Common() *cmdbuf.Common { return d.common }

// Memory returns the shared memory resolver.
func (d *Decoder) Memory() *memory.Manager { return d.mem }

// Group returns the share group.
func (d *Decoder) Group() *resources.Group { return d.group }

// State returns the state mirror.
func (d *Decoder) State() *State { return d.state }

// Features returns the native features found at creation.
func (d *Decoder) Features() Features { return d.features }

// Limits returns the native limits found at creation.
func (d *Decoder) Limits() Limits { return d.limits }

// CommandsProcessed returns the number of commands consumed since creation.
func (d *Decoder) CommandsProcessed() int { return d.commandsProcessed }

// BackbufferClearBits returns the buffers of the default framebuffer that
// will be cleared before their next use.
func (d *Decoder) BackbufferClearBits() gl.Enum { return d.clearBits }

// GetBuffer returns the buffer named by the client id.
func (d *Decoder) GetBuffer(client uint32) (*resources.Buffer, bool) {
	return d.group.Buffers.Get(client)
}

// GetTexture returns the texture named by the client id.
func (d *Decoder) GetTexture(client uint32) (*resources.Texture, bool) {
	return d.group.Textures.Get(client)
}

// GetFramebuffer returns the framebuffer named by the client id.
func (d *Decoder) GetFramebuffer(client uint32) (*resources.Framebuffer, bool) {
	return d.framebuffers.Get(client)
}

// GetQuery returns the query named by the client id.
func (d *Decoder) GetQuery(client uint32) (*resources.Query, bool) {
	return d.queries.Get(client)
}

// ShouldDeferDraws returns true while draws to the default framebuffer
// must wait for the surface.
func (d *Decoder) ShouldDeferDraws() bool {
	return d.offscreen == nil && d.state.DrawFramebuffer == nil && d.surface != nil && d.surface.DeferDraws()
}

// ShouldDeferReads returns true while reads from the default framebuffer
// must wait for the surface.
func (d *Decoder) ShouldDeferReads() bool {
	return d.offscreen == nil && d.state.ReadFramebuffer == nil && d.surface != nil && d.surface.DeferDraws()
}
