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
	"github.com/google/gpucmd/resources"
)

func (d *Decoder) handleProduceTextureDirectCHROMIUMImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glProduceTextureDirectCHROMIUM"
	name, err := immediateMailbox(immSize, args[1:])
	if err != cmdbuf.NoError {
		return err
	}
	t, ok := d.group.Textures.Get(args[0])
	if !ok {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "unknown texture %d", args[0])
		return cmdbuf.NoError
	}
	if t.Target == 0 {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "texture %d was never bound", args[0])
		return cmdbuf.NoError
	}
	if err := d.mailboxes.Produce(name, t.Target, t); err != nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "%v", err)
	}
	return cmdbuf.NoError
}

// replaceTexture makes client refer to t, dropping the reference to the
// texture it named before.
func (d *Decoder) replaceTexture(ctx context.Context, client uint32, t *resources.Texture) {
	if old, ok := d.group.Textures.Remove(client); ok {
		d.unbindTexture(old)
		if old.Release() {
			d.mailboxes.TextureDeleted(old)
			d.gl.DeleteTextures([]uint32{old.Service})
		}
	}
	t.AddRef()
	d.group.Textures.Add(client, t)
	log.D(ctx, "Texture %d now refers to service texture %d", client, t.Service)
}

func (d *Decoder) handleConsumeTextureCHROMIUMImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glConsumeTextureCHROMIUM"
	target := gl.Enum(args[0])
	name, err := immediateMailbox(immSize, args[1:])
	if err != cmdbuf.NoError {
		return err
	}
	if !d.validators.textureBindTarget.has(target) {
		d.invalidEnum(ctx, fn, target, "target")
		return cmdbuf.NoError
	}
	bound := d.state.BoundTexture(target)
	if bound == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "no texture bound")
		return cmdbuf.NoError
	}
	client, ok := d.group.Textures.ClientID(bound.Service)
	if !ok {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "bound texture has no client id")
		return cmdbuf.NoError
	}
	t, mbErr := d.mailboxes.Consume(name, target)
	if mbErr != nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "%v", mbErr)
		return cmdbuf.NoError
	}
	if t == bound {
		return cmdbuf.NoError
	}
	d.replaceTexture(ctx, client, t)
	d.state.Units[d.state.ActiveUnit].Bound[target] = t
	d.gl.BindTexture(target, t.Service)
	return cmdbuf.NoError
}

func (d *Decoder) handleCreateAndConsumeTextureINTERNALImmediate(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	const fn = "glCreateAndConsumeTextureCHROMIUM"
	target, client := gl.Enum(args[0]), args[1]
	name, err := immediateMailbox(immSize, args[2:])
	if err != cmdbuf.NoError {
		return err
	}
	if !d.validators.textureBindTarget.has(target) {
		d.invalidEnum(ctx, fn, target, "target")
		return cmdbuf.NoError
	}
	if client == 0 {
		return cmdbuf.InvalidArguments
	}
	if d.group.Textures.Has(client) {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "client id %d already in use", client)
		return cmdbuf.NoError
	}
	t, mbErr := d.mailboxes.Consume(name, target)
	if mbErr != nil {
		// The id stays usable as an empty texture.
		d.setError(ctx, gl.INVALID_OPERATION, fn, "%v", mbErr)
		empty := resources.NewTexture(d.gl.GenTextures(1)[0])
		empty.Target = target
		d.group.Textures.Add(client, empty)
		return cmdbuf.NoError
	}
	t.AddRef()
	d.group.Textures.Add(client, t)
	return cmdbuf.NoError
}
