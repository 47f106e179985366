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
	"strings"

	"github.com/blang/semver/v4"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/driver"
	"github.com/google/gpucmd/gles/gl"
)

var (
	es3Version     = semver.MustParse("3.0.0")
	desktop33      = semver.MustParse("3.3.0")
	fixedSupported = semver.MustParse("4.1.0")
)

// Features describes the native implementation, queried once at
// initialization.
type Features struct {
	// Version is the native API version.
	Version semver.Version
	// ES is true for a GLES native implementation, false for desktop GL.
	ES         bool
	Extensions map[string]bool

	ES3                bool
	Robustness         bool
	PackedDepthStencil bool
	Instanced          bool
	TimerQuery         bool
	TextureStorage     bool
	ElementIndexUint   bool
	// NativeAttrib0 is false when vertex attribute 0 must be an enabled
	// array and has to be simulated.
	NativeAttrib0 bool
	// NativeFixed is false when GL_FIXED attributes have to be converted.
	NativeFixed bool
}

// Has returns true if the native implementation exposes ext.
func (f *Features) Has(ext string) bool { return f.Extensions[ext] }

// parseVersion extracts the version from a VERSION string such as
// "OpenGL ES 3.0 ANGLE" or "4.5.0 NVIDIA 390.1".
func parseVersion(s string) (semver.Version, bool) {
	es := strings.HasPrefix(s, "OpenGL ES")
	s = strings.TrimPrefix(s, "OpenGL ES-CM ")
	s = strings.TrimPrefix(s, "OpenGL ES ")
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return semver.Version{}, es
	}
	v, err := semver.ParseTolerant(fields[0])
	if err != nil {
		return semver.Version{}, es
	}
	return v, es
}

func queryFeatures(ctx context.Context, api driver.GL, wantES3 bool) Features {
	f := Features{Extensions: map[string]bool{}}
	f.Version, f.ES = parseVersion(api.GetString(gl.VERSION))
	for _, ext := range strings.Fields(api.GetString(gl.EXTENSIONS)) {
		f.Extensions[ext] = true
	}
	nativeES3 := (f.ES && f.Version.GTE(es3Version)) || (!f.ES && f.Version.GTE(desktop33))
	f.ES3 = wantES3 && nativeES3
	f.Robustness = f.Has("GL_EXT_robustness") || f.Has("GL_KHR_robustness") || f.Has("GL_ARB_robustness")
	f.PackedDepthStencil = nativeES3 || f.Has("GL_OES_packed_depth_stencil") || f.Has("GL_EXT_packed_depth_stencil")
	f.Instanced = nativeES3 || f.Has("GL_ANGLE_instanced_arrays")
	f.TimerQuery = f.Has("GL_EXT_disjoint_timer_query") || f.Has("GL_ARB_timer_query")
	f.TextureStorage = nativeES3 || f.Has("GL_EXT_texture_storage")
	f.ElementIndexUint = nativeES3 || f.Has("GL_OES_element_index_uint")
	f.NativeAttrib0 = f.ES
	f.NativeFixed = f.ES || f.Version.GTE(fixedSupported)
	log.D(ctx, "Native %v (es: %v, es3 context: %v)", f.Version, f.ES, f.ES3)
	return f
}

// Limits holds the implementation limits, queried once at initialization.
type Limits struct {
	MaxTextureSize           int32
	MaxCubeMapSize           int32
	MaxRenderbufferSize      int32
	MaxVertexAttribs         uint32
	MaxTextureUnits          uint32
	MaxDrawBuffers           int32
	MaxColorAttachments      int32
	MaxSamples               int32
	MaxUniformBufferBindings uint32
	MaxTransformFeedbackBufs uint32
	MaxViewport              [2]int32
}

func queryLimits(api driver.GL, f *Features) Limits {
	get := func(pname gl.Enum) int32 { return api.GetIntegerv(pname)[0] }
	l := Limits{
		MaxTextureSize:      get(gl.MAX_TEXTURE_SIZE),
		MaxCubeMapSize:      get(gl.MAX_CUBE_MAP_TEXTURE_SIZE),
		MaxRenderbufferSize: get(gl.MAX_RENDERBUFFER_SIZE),
		MaxVertexAttribs:    uint32(get(gl.MAX_VERTEX_ATTRIBS)),
		MaxTextureUnits:     uint32(get(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS)),
		MaxDrawBuffers:      1,
		MaxColorAttachments: 1,
	}
	if v := api.GetIntegerv(gl.MAX_VIEWPORT_DIMS); len(v) >= 2 {
		l.MaxViewport = [2]int32{v[0], v[1]}
	}
	if f.ES3 {
		l.MaxDrawBuffers = get(gl.MAX_DRAW_BUFFERS)
		l.MaxColorAttachments = get(gl.MAX_COLOR_ATTACHMENTS)
		l.MaxSamples = get(gl.MAX_SAMPLES)
		l.MaxUniformBufferBindings = uint32(get(gl.MAX_UNIFORM_BUFFER_BINDINGS))
		l.MaxTransformFeedbackBufs = uint32(get(gl.MAX_TRANSFORM_FEEDBACK_SEPARATE_ATTRIBS))
	}
	return l
}

// maxLevel returns the number of mip levels of a size x size image, minus one.
func maxLevel(size int32) int32 {
	l := int32(0)
	for size > 1 {
		size >>= 1
		l++
	}
	return l
}
