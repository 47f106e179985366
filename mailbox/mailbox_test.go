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

package mailbox_test

import (
	"testing"

	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/mailbox"
	"github.com/google/gpucmd/resources"
)

func TestProduceConsume(t *testing.T) {
	ctx := log.Testing(t)
	r := mailbox.NewRegistry()
	tex := resources.NewTexture(10)
	name := r.Generate()
	assert.For(ctx, "produce").ThatError(r.Produce(name, gl.TEXTURE_2D, tex)).Succeeded()
	assert.For(ctx, "zero").ThatError(r.Produce(mailbox.Name{}, gl.TEXTURE_2D, tex)).HasCause(mailbox.ErrZeroName)

	got, err := r.Consume(name, gl.TEXTURE_2D)
	assert.For(ctx, "consume").ThatError(err).Succeeded()
	assert.For(ctx, "texture").That(got).Equals(tex)

	_, err = r.Consume(name, gl.TEXTURE_CUBE_MAP)
	assert.For(ctx, "target").ThatError(err).HasCause(mailbox.ErrTargetMismatch)

	assert.For(ctx, "deleted").ThatInteger(r.TextureDeleted(tex)).Equals(1)
	_, err = r.Consume(name, gl.TEXTURE_2D)
	assert.For(ctx, "gone").ThatError(err).HasCause(mailbox.ErrNotFound)
}

func TestNameWords(t *testing.T) {
	ctx := log.Testing(t)
	r := mailbox.NewRegistry()
	a, b := r.Generate(), r.Generate()
	assert.For(ctx, "unique").ThatBoolean(a != b).IsTrue()
	assert.For(ctx, "words").ThatSlice(a.Words()).IsLength(mailbox.Words)
	assert.For(ctx, "round trip").That(mailbox.NameFromWords(a.Words())).Equals(a)
	assert.For(ctx, "zero").ThatBoolean(mailbox.Name{}.IsZero()).IsTrue()

	tex := resources.NewTexture(1)
	r.Produce(a, gl.TEXTURE_2D, tex)
	r.Produce(b, gl.TEXTURE_2D, tex)
	r.Revoke(a)
	assert.For(ctx, "revoked").ThatInteger(r.Len()).Equals(1)
	r.Produce(b, gl.TEXTURE_2D, nil)
	assert.For(ctx, "nil produce revokes").ThatInteger(r.Len()).Equals(0)
}
