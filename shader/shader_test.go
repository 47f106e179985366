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

package shader_test

import (
	"context"
	"testing"

	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/shader"
)

type counting struct {
	shader.Passthrough
	calls int
}

func (c *counting) Translate(ctx context.Context, stage gl.Enum, source string) (shader.Result, error) {
	c.calls++
	return c.Passthrough.Translate(ctx, stage, source)
}

func TestPassthrough(t *testing.T) {
	ctx := log.Testing(t)
	p := shader.Passthrough{Version: "#version 300 es"}
	r, err := p.Translate(ctx, gl.VERTEX_SHADER, "void main() {}")
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "valid").ThatBoolean(r.Valid).IsTrue()
	assert.For(ctx, "source").That(r.Source).Equals("#version 300 es\nvoid main() {}")

	r, _ = p.Translate(ctx, gl.FRAGMENT_SHADER, "#version 100\nvoid main() {}")
	assert.For(ctx, "versioned").That(r.Source).Equals("#version 100\nvoid main() {}")

	r, _ = p.Translate(ctx, gl.FRAGMENT_SHADER, "void main() {}\x00")
	assert.For(ctx, "null char").ThatBoolean(r.Valid).IsFalse()

	_, err = p.Translate(ctx, gl.TEXTURE_2D, "")
	assert.For(ctx, "stage").ThatError(err).HasCause(shader.ErrBadStage)
}

func TestCache(t *testing.T) {
	ctx := log.Testing(t)
	inner := &counting{}
	c, err := shader.NewCache(inner, 2)
	assert.For(ctx, "new").ThatError(err).Succeeded()
	for _, src := range []string{"a", "a", "b", "a", "c", "b"} {
		c.Translate(ctx, gl.VERTEX_SHADER, src)
	}
	hits, misses := c.Stats()
	assert.For(ctx, "hits").That(hits).Equals(uint64(2))
	assert.For(ctx, "misses").That(misses).Equals(uint64(4))
	assert.For(ctx, "inner calls").ThatInteger(inner.calls).Equals(4)
	assert.For(ctx, "len").ThatInteger(c.Len()).Equals(2)

	c.Translate(ctx, gl.FRAGMENT_SHADER, "b")
	assert.For(ctx, "stage keyed").ThatInteger(inner.calls).Equals(5)

	_, err = shader.NewCache(inner, 0)
	assert.For(ctx, "zero size").ThatError(err).Failed()
}
