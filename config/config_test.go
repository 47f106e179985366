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

package config_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/gpucmd/config"
	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
)

func TestDecodeKeepsDefaults(t *testing.T) {
	ctx := log.Testing(t)
	c, err := config.Decode(strings.NewReader(`
[Context]
Width = 640
ContextType = "webgl1"

[Decoder]
Debug = true
`))
	assert.For(ctx, "err").ThatError(err).Succeeded()
	assert.For(ctx, "width").That(c.Context.Width).Equals(int32(640))
	assert.For(ctx, "height").That(c.Context.Height).Equals(config.Default().Context.Height)
	assert.For(ctx, "webgl").ThatBoolean(c.Context.IsWebGL()).IsTrue()
	assert.For(ctx, "es3").ThatBoolean(c.Context.IsES3()).IsFalse()
	assert.For(ctx, "debug").ThatBoolean(c.Decoder.Debug).IsTrue()
	assert.For(ctx, "slice").ThatInteger(c.Decoder.CommandsPerSlice).Equals(1000)
	assert.For(ctx, "memory limit").That(c.Decoder.MemoryLimit).Equals(uint64(config.DefaultMemoryLimit))
}

func TestDecodeRejects(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		name string
		toml string
	}{
		{"context type", "[Context]\nContextType = \"vulkan\"\n"},
		{"slice", "[Decoder]\nCommandsPerSlice = 0\n"},
		{"cache", "[Decoder]\nShaderCacheSize = -1\n"},
		{"syntax", "[Decoder\n"},
	} {
		_, err := config.Decode(strings.NewReader(test.toml))
		assert.For(ctx, test.name).ThatError(err).Failed()
	}
	_, err := config.Decode(strings.NewReader("[Context]\nContextType = \"gl\"\n"))
	assert.For(ctx, "cause").ThatError(err).HasCause(config.ErrBadContextType)
}

func TestWrite(t *testing.T) {
	ctx := log.Testing(t)
	c := config.Default()
	c.Decoder.MemoryLimit = 1 << 20
	buf := &bytes.Buffer{}
	assert.For(ctx, "write").ThatError(config.Write(buf, c)).Succeeded()
	got, err := config.Decode(buf)
	assert.For(ctx, "read back").ThatError(err).Succeeded()
	assert.For(ctx, "equal").That(got).DeepEquals(c)
}
