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
	"testing"

	"github.com/google/gpucmd/core/assert"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/driver/fake"
)

func TestParseVersion(t *testing.T) {
	ctx := log.Testing(t)
	for _, test := range []struct {
		in    string
		major uint64
		minor uint64
		es    bool
	}{
		{"OpenGL ES 3.0 fake", 3, 0, true},
		{"OpenGL ES 2.0 (ANGLE 2.1.0)", 2, 0, true},
		{"4.5.0 NVIDIA 390.77", 4, 5, false},
		{"3.3 Mesa 20.0", 3, 3, false},
		{"garbage", 0, 0, false},
	} {
		v, es := parseVersion(test.in)
		assert.For(ctx, "%s major", test.in).That(v.Major).Equals(test.major)
		assert.For(ctx, "%s minor", test.in).That(v.Minor).Equals(test.minor)
		assert.For(ctx, "%s es", test.in).ThatBoolean(es).Equals(test.es)
	}
}

func TestQueryFeatures(t *testing.T) {
	ctx := log.Testing(t)
	api := fake.New()
	f := queryFeatures(ctx, api, true)
	assert.For(ctx, "es3").ThatBoolean(f.ES3).IsTrue()
	assert.For(ctx, "robustness").ThatBoolean(f.Robustness).IsTrue()
	assert.For(ctx, "attrib0").ThatBoolean(f.NativeAttrib0).IsTrue()

	api.Version = "2.1 Mesa"
	api.Extensions = ""
	f = queryFeatures(ctx, api, true)
	assert.For(ctx, "desktop es3").ThatBoolean(f.ES3).IsFalse()
	assert.For(ctx, "desktop attrib0").ThatBoolean(f.NativeAttrib0).IsFalse()
	assert.For(ctx, "desktop fixed").ThatBoolean(f.NativeFixed).IsFalse()
	assert.For(ctx, "desktop robustness").ThatBoolean(f.Robustness).IsFalse()

	assert.For(ctx, "max level").That(maxLevel(4096)).Equals(int32(12))
	assert.For(ctx, "max level 1").That(maxLevel(1)).Equals(int32(0))
}
