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

// Package fake provides an in-memory implementation of the driver
// interfaces. It records every native call so tests can assert exactly what
// reached the device, and keeps enough object state to answer queries.
package fake

import (
	"fmt"
	"strings"

	"github.com/google/gpucmd/driver"
	"github.com/google/gpucmd/gles/gl"
)

var _ driver.GL = (*GL)(nil)

// Image is one level of a fake texture.
type Image struct {
	Width, Height  int32
	InternalFormat int32
	Format, Type   gl.Enum
	Data           []byte
}

// Texture is a fake texture object.
type Texture struct {
	Target gl.Enum
	Levels map[int32]*Image
	Params map[gl.Enum]float32
}

// Buffer is a fake buffer object.
type Buffer struct {
	Data  []byte
	Usage gl.Enum
}

// Renderbuffer is a fake renderbuffer object.
type Renderbuffer struct {
	Width, Height  int32
	InternalFormat gl.Enum
	Samples        int32
}

// Attachment is a framebuffer attachment point of a fake framebuffer.
type Attachment struct {
	Texture, Renderbuffer uint32
	TexTarget             gl.Enum
	Level                 int32
}

// Framebuffer is a fake framebuffer object.
type Framebuffer struct {
	Attachments map[gl.Enum]Attachment
}

// Query is a fake query object.
type Query struct {
	Target    gl.Enum
	Available bool
	Result    uint64
}

// GL is the fake device context.
type GL struct {
	// Calls is the log of every native call, in order, by method name.
	Calls []string

	// Version and Extensions are returned by GetString.
	Version, Extensions string
	// Limits holds the values returned by GetIntegerv.
	Limits map[gl.Enum][]int32
	// FramebufferStatus, if not zero, overrides CheckFramebufferStatus for
	// framebuffer objects.
	FramebufferStatus gl.Enum
	// ResetStatus is returned by GetGraphicsResetStatus.
	ResetStatus gl.Enum
	// QueryResult is the result reported by completed queries.
	QueryResult uint64

	errors []gl.Enum
	nextID uint32

	Buffers       map[uint32]*Buffer
	Textures      map[uint32]*Texture
	Renderbuffers map[uint32]*Renderbuffer
	Framebuffers  map[uint32]*Framebuffer
	Samplers      map[uint32]map[gl.Enum]int32
	Queries       map[uint32]*Query
	Syncs         map[uint64]bool
	Shaders       map[uint32]*Shader
	Programs      map[uint32]*Program
	objects       map[uint32]string

	// Current device state, readable by tests to check the decoder's mirror.
	Enabled           map[gl.Enum]bool
	BoundBuffers      map[gl.Enum]uint32
	BoundTextures     map[[2]uint32]uint32
	ActiveUnit        uint32
	DrawFramebuffer   uint32
	ReadFramebuffer   uint32
	BoundRenderbuffer uint32
	VertexArray       uint32
	CurrentProgram    uint32
	ClearColorValue   [4]float32
	ClearDepthValue   float32
	ClearStencilValue int32
	ColorMaskValue    [4]bool
	DepthMaskValue    bool
	StencilMasks      [2]uint32
	ViewportBox       [4]int32
	ScissorBox        [4]int32
	PixelStore        map[gl.Enum]int32
	IntUniforms       map[int32][]int32
	FloatUniforms     map[int32][]float32
}

// New returns a fake GLES 3.0 context with a typical extension set.
func New() *GL {
	return &GL{
		Version:     "OpenGL ES 3.0 fake",
		Extensions:  "GL_EXT_robustness GL_OES_packed_depth_stencil GL_ANGLE_instanced_arrays GL_EXT_disjoint_timer_query GL_EXT_texture_storage",
		QueryResult: 1,
		Limits: map[gl.Enum][]int32{
			gl.MAX_TEXTURE_SIZE:                        {4096},
			gl.MAX_CUBE_MAP_TEXTURE_SIZE:               {4096},
			gl.MAX_RENDERBUFFER_SIZE:                   {4096},
			gl.MAX_VERTEX_ATTRIBS:                      {16},
			gl.MAX_TEXTURE_IMAGE_UNITS:                 {16},
			gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS:        {32},
			gl.MAX_DRAW_BUFFERS:                        {4},
			gl.MAX_COLOR_ATTACHMENTS:                   {4},
			gl.MAX_SAMPLES:                             {4},
			gl.MAX_UNIFORM_BUFFER_BINDINGS:             {24},
			gl.MAX_TRANSFORM_FEEDBACK_SEPARATE_ATTRIBS: {4},
			gl.MAX_VIEWPORT_DIMS:                       {4096, 4096},
		},
		Buffers:         map[uint32]*Buffer{},
		Textures:        map[uint32]*Texture{},
		Renderbuffers:   map[uint32]*Renderbuffer{},
		Framebuffers:    map[uint32]*Framebuffer{},
		Samplers:        map[uint32]map[gl.Enum]int32{},
		Queries:         map[uint32]*Query{},
		Syncs:           map[uint64]bool{},
		Shaders:         map[uint32]*Shader{},
		Programs:        map[uint32]*Program{},
		objects:         map[uint32]string{},
		Enabled:         map[gl.Enum]bool{gl.DITHER: true},
		BoundBuffers:    map[gl.Enum]uint32{},
		BoundTextures:   map[[2]uint32]uint32{},
		ColorMaskValue:  [4]bool{true, true, true, true},
		DepthMaskValue:  true,
		StencilMasks:    [2]uint32{0xffffffff, 0xffffffff},
		ClearDepthValue: 1,
		PixelStore: map[gl.Enum]int32{
			gl.PACK_ALIGNMENT:   4,
			gl.UNPACK_ALIGNMENT: 4,
		},
		IntUniforms:   map[int32][]int32{},
		FloatUniforms: map[int32][]float32{},
	}
}

func (f *GL) record(name string) { f.Calls = append(f.Calls, name) }

// Count returns the number of recorded calls to the named method.
func (f *GL) Count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (f *GL) ResetCalls() { f.Calls = nil }

// PushError queues a native error, to be returned by GetError.
func (f *GL) PushError(err gl.Enum) { f.errors = append(f.errors, err) }

// Lose simulates a device reset with the given reset status.
func (f *GL) Lose(status gl.Enum) {
	f.ResetStatus = status
	f.PushError(gl.CONTEXT_LOST)
}

// SignalFences signals every outstanding fence.
func (f *GL) SignalFences() {
	for s := range f.Syncs {
		f.Syncs[s] = true
	}
}

// CompleteQueries makes every outstanding query result available.
func (f *GL) CompleteQueries() {
	for _, q := range f.Queries {
		if !q.Available {
			q.Available = true
			q.Result = f.QueryResult
		}
	}
}

func (f *GL) gen(n int, kind string) []uint32 {
	ids := make([]uint32, n)
	for i := range ids {
		f.nextID++
		ids[i] = f.nextID
		f.objects[f.nextID] = kind
	}
	return ids
}

// Live returns the number of live objects of the given kind, for example
// "texture" or "buffer".
func (f *GL) Live(kind string) int {
	n := 0
	for _, k := range f.objects {
		if k == kind {
			n++
		}
	}
	return n
}

func (f *GL) del(ids []uint32, kind string) {
	for _, id := range ids {
		if f.objects[id] == kind {
			delete(f.objects, id)
		}
	}
}

func (f *GL) GetError() gl.Enum {
	f.record("GetError")
	if len(f.errors) == 0 {
		return gl.NO_ERROR
	}
	err := f.errors[0]
	f.errors = f.errors[1:]
	return err
}

func (f *GL) GetGraphicsResetStatus() gl.Enum {
	f.record("GetGraphicsResetStatus")
	return f.ResetStatus
}

func (f *GL) GetIntegerv(pname gl.Enum) []int32 {
	f.record("GetIntegerv")
	if v, ok := f.Limits[pname]; ok {
		return append([]int32(nil), v...)
	}
	f.PushError(gl.INVALID_ENUM)
	return []int32{0}
}

func (f *GL) GetString(name gl.Enum) string {
	f.record("GetString")
	switch name {
	case gl.VERSION:
		return f.Version
	case gl.EXTENSIONS:
		return f.Extensions
	case gl.VENDOR:
		return "gpucmd"
	case gl.RENDERER:
		return "fake"
	case gl.SHADING_LANGUAGE_VERSION:
		return "OpenGL ES GLSL ES 3.00"
	}
	f.PushError(gl.INVALID_ENUM)
	return ""
}

func (f *GL) Finish() {
	f.record("Finish")
	f.SignalFences()
	f.CompleteQueries()
}

func (f *GL) Flush() { f.record("Flush") }

func (f *GL) GenBuffers(n int) []uint32 {
	f.record("GenBuffers")
	ids := f.gen(n, "buffer")
	for _, id := range ids {
		f.Buffers[id] = &Buffer{}
	}
	return ids
}

func (f *GL) DeleteBuffers(ids []uint32) {
	f.record("DeleteBuffers")
	f.del(ids, "buffer")
	for _, id := range ids {
		delete(f.Buffers, id)
		for t, b := range f.BoundBuffers {
			if b == id {
				f.BoundBuffers[t] = 0
			}
		}
	}
}

func (f *GL) BindBuffer(target gl.Enum, id uint32) {
	f.record("BindBuffer")
	f.BoundBuffers[target] = id
}

func (f *GL) BindBufferBase(target gl.Enum, index, id uint32) {
	f.record("BindBufferBase")
	f.BoundBuffers[target] = id
}

func (f *GL) BindBufferRange(target gl.Enum, index, id uint32, offset, size int) {
	f.record("BindBufferRange")
	f.BoundBuffers[target] = id
}

func (f *GL) boundBuffer(target gl.Enum) *Buffer {
	return f.Buffers[f.BoundBuffers[target]]
}

func (f *GL) BufferData(target gl.Enum, size int, data []byte, usage gl.Enum) {
	f.record("BufferData")
	b := f.boundBuffer(target)
	if b == nil {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	b.Data = make([]byte, size)
	copy(b.Data, data)
	b.Usage = usage
}

func (f *GL) BufferSubData(target gl.Enum, offset int, data []byte) {
	f.record("BufferSubData")
	b := f.boundBuffer(target)
	if b == nil || offset+len(data) > len(b.Data) {
		f.PushError(gl.INVALID_VALUE)
		return
	}
	copy(b.Data[offset:], data)
}

func (f *GL) GenTextures(n int) []uint32 {
	f.record("GenTextures")
	ids := f.gen(n, "texture")
	for _, id := range ids {
		f.Textures[id] = &Texture{Levels: map[int32]*Image{}, Params: map[gl.Enum]float32{}}
	}
	return ids
}

func (f *GL) DeleteTextures(ids []uint32) {
	f.record("DeleteTextures")
	f.del(ids, "texture")
	for _, id := range ids {
		delete(f.Textures, id)
	}
}

func (f *GL) ActiveTexture(unit gl.Enum) {
	f.record("ActiveTexture")
	f.ActiveUnit = uint32(unit - gl.TEXTURE0)
}

func bindTarget(target gl.Enum) gl.Enum {
	if target >= gl.TEXTURE_CUBE_MAP_POSITIVE_X && target <= gl.TEXTURE_CUBE_MAP_NEGATIVE_Z {
		return gl.TEXTURE_CUBE_MAP
	}
	return target
}

func (f *GL) BindTexture(target gl.Enum, id uint32) {
	f.record("BindTexture")
	f.BoundTextures[[2]uint32{f.ActiveUnit, uint32(target)}] = id
	if t := f.Textures[id]; t != nil && t.Target == 0 {
		t.Target = target
	}
}

// BoundTexture returns the texture bound to target on the active unit.
func (f *GL) BoundTexture(target gl.Enum) *Texture {
	return f.Textures[f.BoundTextures[[2]uint32{f.ActiveUnit, uint32(bindTarget(target))}]]
}

func (f *GL) TexImage2D(target gl.Enum, level, internalFormat, width, height int32, format, ty gl.Enum, pixels []byte) {
	f.record("TexImage2D")
	t := f.BoundTexture(target)
	if t == nil {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	img := &Image{Width: width, Height: height, InternalFormat: internalFormat, Format: format, Type: ty}
	if pixels != nil {
		img.Data = append([]byte(nil), pixels...)
	}
	t.Levels[level] = img
}

func (f *GL) TexSubImage2D(target gl.Enum, level, x, y, width, height int32, format, ty gl.Enum, pixels []byte) {
	f.record("TexSubImage2D")
	t := f.BoundTexture(target)
	if t == nil || t.Levels[level] == nil {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	img := t.Levels[level]
	if x == 0 && y == 0 && width == img.Width && height == img.Height {
		img.Data = append([]byte(nil), pixels...)
	}
}

func (f *GL) TexStorage2D(target gl.Enum, levels int32, internalFormat gl.Enum, width, height int32) {
	f.record("TexStorage2D")
	t := f.BoundTexture(target)
	if t == nil {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	for l := int32(0); l < levels; l++ {
		t.Levels[l] = &Image{Width: width, Height: height, InternalFormat: int32(internalFormat)}
		width, height = max1(width/2), max1(height/2)
	}
}

func max1(v int32) int32 {
	if v < 1 {
		return 1
	}
	return v
}

func (f *GL) TexParameteri(target, pname gl.Enum, param int32) {
	f.record("TexParameteri")
	if t := f.BoundTexture(target); t != nil {
		t.Params[pname] = float32(param)
	}
}

func (f *GL) TexParameterf(target, pname gl.Enum, param float32) {
	f.record("TexParameterf")
	if t := f.BoundTexture(target); t != nil {
		t.Params[pname] = param
	}
}

func (f *GL) GenerateMipmap(target gl.Enum) { f.record("GenerateMipmap") }

func (f *GL) CopyTexImage2D(target gl.Enum, level int32, internalFormat gl.Enum, x, y, width, height int32) {
	f.record("CopyTexImage2D")
	if t := f.BoundTexture(target); t != nil {
		t.Levels[level] = &Image{Width: width, Height: height, InternalFormat: int32(internalFormat)}
	}
}

func (f *GL) GenSamplers(n int) []uint32 {
	f.record("GenSamplers")
	ids := f.gen(n, "sampler")
	for _, id := range ids {
		f.Samplers[id] = map[gl.Enum]int32{}
	}
	return ids
}

func (f *GL) DeleteSamplers(ids []uint32) {
	f.record("DeleteSamplers")
	f.del(ids, "sampler")
	for _, id := range ids {
		delete(f.Samplers, id)
	}
}

func (f *GL) BindSampler(unit, id uint32) { f.record("BindSampler") }

func (f *GL) SamplerParameteri(id uint32, pname gl.Enum, param int32) {
	f.record("SamplerParameteri")
	if s, ok := f.Samplers[id]; ok {
		s[pname] = param
	}
}

func (f *GL) GenFramebuffers(n int) []uint32 {
	f.record("GenFramebuffers")
	ids := f.gen(n, "framebuffer")
	for _, id := range ids {
		f.Framebuffers[id] = &Framebuffer{Attachments: map[gl.Enum]Attachment{}}
	}
	return ids
}

func (f *GL) DeleteFramebuffers(ids []uint32) {
	f.record("DeleteFramebuffers")
	f.del(ids, "framebuffer")
	for _, id := range ids {
		delete(f.Framebuffers, id)
		if f.DrawFramebuffer == id {
			f.DrawFramebuffer = 0
		}
		if f.ReadFramebuffer == id {
			f.ReadFramebuffer = 0
		}
	}
}

func (f *GL) BindFramebuffer(target gl.Enum, id uint32) {
	f.record("BindFramebuffer")
	switch target {
	case gl.FRAMEBUFFER:
		f.DrawFramebuffer, f.ReadFramebuffer = id, id
	case gl.DRAW_FRAMEBUFFER:
		f.DrawFramebuffer = id
	case gl.READ_FRAMEBUFFER:
		f.ReadFramebuffer = id
	}
}

func (f *GL) framebuffer(target gl.Enum) *Framebuffer {
	if target == gl.READ_FRAMEBUFFER {
		return f.Framebuffers[f.ReadFramebuffer]
	}
	return f.Framebuffers[f.DrawFramebuffer]
}

func (f *GL) FramebufferTexture2D(target, attachment, texTarget gl.Enum, texture uint32, level int32) {
	f.record("FramebufferTexture2D")
	fb := f.framebuffer(target)
	if fb == nil {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	if texture == 0 {
		delete(fb.Attachments, attachment)
		return
	}
	fb.Attachments[attachment] = Attachment{Texture: texture, TexTarget: texTarget, Level: level}
}

func (f *GL) FramebufferRenderbuffer(target, attachment, rbTarget gl.Enum, renderbuffer uint32) {
	f.record("FramebufferRenderbuffer")
	fb := f.framebuffer(target)
	if fb == nil {
		f.PushError(gl.INVALID_OPERATION)
		return
	}
	if renderbuffer == 0 {
		delete(fb.Attachments, attachment)
		return
	}
	fb.Attachments[attachment] = Attachment{Renderbuffer: renderbuffer}
}

func (f *GL) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.record("CheckFramebufferStatus")
	fb := f.framebuffer(target)
	switch {
	case fb == nil:
		return gl.FRAMEBUFFER_COMPLETE
	case f.FramebufferStatus != 0:
		return f.FramebufferStatus
	case len(fb.Attachments) == 0:
		return gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	default:
		return gl.FRAMEBUFFER_COMPLETE
	}
}

func (f *GL) DrawBuffers(bufs []gl.Enum) { f.record("DrawBuffers") }

func (f *GL) ReadPixels(x, y, width, height int32, format, ty gl.Enum, dst []byte) {
	f.record("ReadPixels")
	for i := range dst {
		dst[i] = byte(i)
	}
}

func (f *GL) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter gl.Enum) {
	f.record("BlitFramebuffer")
}

func (f *GL) Clear(mask gl.Enum) { f.record(fmt.Sprintf("Clear(%#x)", uint32(mask))) }

func (f *GL) GenRenderbuffers(n int) []uint32 {
	f.record("GenRenderbuffers")
	ids := f.gen(n, "renderbuffer")
	for _, id := range ids {
		f.Renderbuffers[id] = &Renderbuffer{}
	}
	return ids
}

func (f *GL) DeleteRenderbuffers(ids []uint32) {
	f.record("DeleteRenderbuffers")
	f.del(ids, "renderbuffer")
	for _, id := range ids {
		delete(f.Renderbuffers, id)
		if f.BoundRenderbuffer == id {
			f.BoundRenderbuffer = 0
		}
	}
}

func (f *GL) BindRenderbuffer(target gl.Enum, id uint32) {
	f.record("BindRenderbuffer")
	f.BoundRenderbuffer = id
}

func (f *GL) RenderbufferStorage(target, internalFormat gl.Enum, width, height int32) {
	f.record("RenderbufferStorage")
	if rb := f.Renderbuffers[f.BoundRenderbuffer]; rb != nil {
		*rb = Renderbuffer{Width: width, Height: height, InternalFormat: internalFormat}
	}
}

func (f *GL) RenderbufferStorageMultisample(target gl.Enum, samples int32, internalFormat gl.Enum, width, height int32) {
	f.record("RenderbufferStorageMultisample")
	if rb := f.Renderbuffers[f.BoundRenderbuffer]; rb != nil {
		*rb = Renderbuffer{Width: width, Height: height, InternalFormat: internalFormat, Samples: samples}
	}
}

func (f *GL) GenQueries(n int) []uint32 {
	f.record("GenQueries")
	ids := f.gen(n, "query")
	for _, id := range ids {
		f.Queries[id] = &Query{}
	}
	return ids
}

func (f *GL) DeleteQueries(ids []uint32) {
	f.record("DeleteQueries")
	f.del(ids, "query")
	for _, id := range ids {
		delete(f.Queries, id)
	}
}

func (f *GL) BeginQuery(target gl.Enum, id uint32) {
	f.record("BeginQuery")
	if q := f.Queries[id]; q != nil {
		*q = Query{Target: target}
	}
}

func (f *GL) EndQuery(target gl.Enum) { f.record("EndQuery") }

func (f *GL) QueryCounter(id uint32, target gl.Enum) {
	f.record("QueryCounter")
	if q := f.Queries[id]; q != nil {
		*q = Query{Target: target}
	}
}

func (f *GL) GetQueryObjectui64(id uint32, pname gl.Enum) uint64 {
	f.record("GetQueryObjectui64")
	q := f.Queries[id]
	if q == nil {
		f.PushError(gl.INVALID_OPERATION)
		return 0
	}
	switch pname {
	case gl.QUERY_RESULT_AVAILABLE:
		if q.Available {
			return 1
		}
		return 0
	case gl.QUERY_RESULT:
		return q.Result
	}
	f.PushError(gl.INVALID_ENUM)
	return 0
}

func (f *GL) GenTransformFeedbacks(n int) []uint32 {
	f.record("GenTransformFeedbacks")
	return f.gen(n, "transformfeedback")
}

func (f *GL) DeleteTransformFeedbacks(ids []uint32) {
	f.record("DeleteTransformFeedbacks")
	f.del(ids, "transformfeedback")
}

func (f *GL) BindTransformFeedback(target gl.Enum, id uint32) { f.record("BindTransformFeedback") }

func (f *GL) GenVertexArrays(n int) []uint32 {
	f.record("GenVertexArrays")
	return f.gen(n, "vertexarray")
}

func (f *GL) DeleteVertexArrays(ids []uint32) {
	f.record("DeleteVertexArrays")
	f.del(ids, "vertexarray")
}

func (f *GL) BindVertexArray(id uint32) {
	f.record("BindVertexArray")
	f.VertexArray = id
}

func (f *GL) Enable(capability gl.Enum) {
	f.record("Enable")
	f.Enabled[capability] = true
}

func (f *GL) Disable(capability gl.Enum) {
	f.record("Disable")
	f.Enabled[capability] = false
}

func (f *GL) BlendColor(r, g, b, a float32)                        { f.record("BlendColor") }
func (f *GL) BlendEquationSeparate(rgb, alpha gl.Enum)             { f.record("BlendEquationSeparate") }
func (f *GL) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) { f.record("BlendFuncSeparate") }
func (f *GL) CullFace(mode gl.Enum)                                { f.record("CullFace") }
func (f *GL) FrontFace(mode gl.Enum)                               { f.record("FrontFace") }
func (f *GL) DepthFunc(fn gl.Enum)                                 { f.record("DepthFunc") }
func (f *GL) DepthRangef(near, far float32)                        { f.record("DepthRangef") }
func (f *GL) Hint(target, mode gl.Enum)                            { f.record("Hint") }
func (f *GL) LineWidth(width float32)                              { f.record("LineWidth") }
func (f *GL) PolygonOffset(factor, units float32)                  { f.record("PolygonOffset") }
func (f *GL) SampleCoverage(value float32, invert bool)            { f.record("SampleCoverage") }
func (f *GL) StencilFuncSeparate(face, fn gl.Enum, r int32, m uint32) {
	f.record("StencilFuncSeparate")
}
func (f *GL) StencilOpSeparate(face, fail, zfail, zpass gl.Enum) { f.record("StencilOpSeparate") }

func (f *GL) ClearColor(r, g, b, a float32) {
	f.record("ClearColor")
	f.ClearColorValue = [4]float32{r, g, b, a}
}

func (f *GL) ClearDepthf(depth float32) {
	f.record("ClearDepthf")
	f.ClearDepthValue = depth
}

func (f *GL) ClearStencil(s int32) {
	f.record("ClearStencil")
	f.ClearStencilValue = s
}

func (f *GL) ColorMask(r, g, b, a bool) {
	f.record("ColorMask")
	f.ColorMaskValue = [4]bool{r, g, b, a}
}

func (f *GL) DepthMask(flag bool) {
	f.record("DepthMask")
	f.DepthMaskValue = flag
}

func (f *GL) StencilMaskSeparate(face gl.Enum, mask uint32) {
	f.record("StencilMaskSeparate")
	if face != gl.BACK {
		f.StencilMasks[0] = mask
	}
	if face != gl.FRONT {
		f.StencilMasks[1] = mask
	}
}

func (f *GL) PixelStorei(pname gl.Enum, param int32) {
	f.record("PixelStorei")
	f.PixelStore[pname] = param
}

func (f *GL) Scissor(x, y, width, height int32) {
	f.record("Scissor")
	f.ScissorBox = [4]int32{x, y, width, height}
}

func (f *GL) Viewport(x, y, width, height int32) {
	f.record("Viewport")
	f.ViewportBox = [4]int32{x, y, width, height}
}

func (f *GL) EnableVertexAttribArray(index uint32)  { f.record("EnableVertexAttribArray") }
func (f *GL) DisableVertexAttribArray(index uint32) { f.record("DisableVertexAttribArray") }
func (f *GL) VertexAttribPointer(index uint32, size int32, ty gl.Enum, normalized bool, stride int32, offset uint32) {
	f.record("VertexAttribPointer")
}
func (f *GL) VertexAttribIPointer(index uint32, size int32, ty gl.Enum, stride int32, offset uint32) {
	f.record("VertexAttribIPointer")
}
func (f *GL) VertexAttribDivisor(index, divisor uint32)   { f.record("VertexAttribDivisor") }
func (f *GL) VertexAttrib4fv(index uint32, v [4]float32)  { f.record("VertexAttrib4fv") }
func (f *GL) VertexAttribI4iv(index uint32, v [4]int32)   { f.record("VertexAttribI4iv") }
func (f *GL) VertexAttribI4uiv(index uint32, v [4]uint32) { f.record("VertexAttribI4uiv") }
func (f *GL) DrawArrays(mode gl.Enum, first, count int32) { f.record("DrawArrays") }
func (f *GL) DrawElements(mode gl.Enum, count int32, ty gl.Enum, offset uint32) {
	f.record("DrawElements")
}
func (f *GL) DrawArraysInstanced(mode gl.Enum, first, count, primcount int32) {
	f.record("DrawArraysInstanced")
}
func (f *GL) DrawElementsInstanced(mode gl.Enum, count int32, ty gl.Enum, offset uint32, primcount int32) {
	f.record("DrawElementsInstanced")
}

func (f *GL) FenceSync(condition gl.Enum, flags uint32) uint64 {
	f.record("FenceSync")
	f.nextID++
	f.Syncs[uint64(f.nextID)] = false
	return uint64(f.nextID)
}

func (f *GL) DeleteSync(sync uint64) {
	f.record("DeleteSync")
	delete(f.Syncs, sync)
}

func (f *GL) ClientWaitSync(sync uint64, flags uint32, timeout uint64) gl.Enum {
	f.record("ClientWaitSync")
	signaled, ok := f.Syncs[sync]
	switch {
	case !ok:
		f.PushError(gl.INVALID_VALUE)
		return gl.WAIT_FAILED
	case signaled:
		return gl.ALREADY_SIGNALED
	default:
		return gl.TIMEOUT_EXPIRED
	}
}

func (f *GL) WaitSync(sync uint64, flags uint32, timeout uint64) { f.record("WaitSync") }

func (f *GL) SyncStatus(sync uint64) gl.Enum {
	f.record("SyncStatus")
	if f.Syncs[sync] {
		return gl.SIGNALED
	}
	return gl.UNSIGNALED
}

// String returns the call log, one call per line.
func (f *GL) String() string { return strings.Join(f.Calls, "\n") }
