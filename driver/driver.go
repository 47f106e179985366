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

// Package driver declares the native capabilities a decoder drives: the
// GL-style device context, the presentation surface and the cross-context
// sync point service.
package driver

import "github.com/google/gpucmd/gles/gl"

// GL is the native graphics API of one device context.
//
// Object names returned by the Gen* and Create* methods are service ids;
// they are never shown to clients. Methods follow the native API's error
// model: failures are not returned, they are queued and read back with
// GetError.
type GL interface {
	GetError() gl.Enum
	// GetGraphicsResetStatus returns NO_ERROR, or the reset status of a
	// context that has been reset.
	GetGraphicsResetStatus() gl.Enum
	GetIntegerv(pname gl.Enum) []int32
	GetString(name gl.Enum) string
	Finish()
	Flush()

	GenBuffers(n int) []uint32
	DeleteBuffers(ids []uint32)
	BindBuffer(target gl.Enum, id uint32)
	BindBufferBase(target gl.Enum, index, id uint32)
	BindBufferRange(target gl.Enum, index, id uint32, offset, size int)
	BufferData(target gl.Enum, size int, data []byte, usage gl.Enum)
	BufferSubData(target gl.Enum, offset int, data []byte)

	GenTextures(n int) []uint32
	DeleteTextures(ids []uint32)
	ActiveTexture(unit gl.Enum)
	BindTexture(target gl.Enum, id uint32)
	TexImage2D(target gl.Enum, level, internalFormat, width, height int32, format, ty gl.Enum, pixels []byte)
	TexSubImage2D(target gl.Enum, level, x, y, width, height int32, format, ty gl.Enum, pixels []byte)
	TexStorage2D(target gl.Enum, levels int32, internalFormat gl.Enum, width, height int32)
	TexParameteri(target, pname gl.Enum, param int32)
	TexParameterf(target, pname gl.Enum, param float32)
	GenerateMipmap(target gl.Enum)
	CopyTexImage2D(target gl.Enum, level int32, internalFormat gl.Enum, x, y, width, height int32)

	GenSamplers(n int) []uint32
	DeleteSamplers(ids []uint32)
	BindSampler(unit, id uint32)
	SamplerParameteri(id uint32, pname gl.Enum, param int32)

	GenFramebuffers(n int) []uint32
	DeleteFramebuffers(ids []uint32)
	BindFramebuffer(target gl.Enum, id uint32)
	FramebufferTexture2D(target, attachment, texTarget gl.Enum, texture uint32, level int32)
	FramebufferRenderbuffer(target, attachment, rbTarget gl.Enum, renderbuffer uint32)
	CheckFramebufferStatus(target gl.Enum) gl.Enum
	DrawBuffers(bufs []gl.Enum)
	ReadPixels(x, y, width, height int32, format, ty gl.Enum, dst []byte)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter gl.Enum)
	Clear(mask gl.Enum)

	GenRenderbuffers(n int) []uint32
	DeleteRenderbuffers(ids []uint32)
	BindRenderbuffer(target gl.Enum, id uint32)
	RenderbufferStorage(target, internalFormat gl.Enum, width, height int32)
	RenderbufferStorageMultisample(target gl.Enum, samples int32, internalFormat gl.Enum, width, height int32)

	GenQueries(n int) []uint32
	DeleteQueries(ids []uint32)
	BeginQuery(target gl.Enum, id uint32)
	EndQuery(target gl.Enum)
	QueryCounter(id uint32, target gl.Enum)
	GetQueryObjectui64(id uint32, pname gl.Enum) uint64

	GenTransformFeedbacks(n int) []uint32
	DeleteTransformFeedbacks(ids []uint32)
	BindTransformFeedback(target gl.Enum, id uint32)

	GenVertexArrays(n int) []uint32
	DeleteVertexArrays(ids []uint32)
	BindVertexArray(id uint32)

	CreateShader(ty gl.Enum) uint32
	DeleteShader(id uint32)
	ShaderSource(id uint32, source string)
	CompileShader(id uint32)
	GetShaderiv(id uint32, pname gl.Enum) int32
	GetShaderInfoLog(id uint32) string

	CreateProgram() uint32
	DeleteProgram(id uint32)
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	BindAttribLocation(program, index uint32, name string)
	LinkProgram(id uint32)
	UseProgram(id uint32)
	ValidateProgram(id uint32)
	GetProgramiv(id uint32, pname gl.Enum) int32
	GetProgramInfoLog(id uint32) string
	GetActiveAttrib(program, index uint32) (name string, size int32, ty gl.Enum)
	GetActiveUniform(program, index uint32) (name string, size int32, ty gl.Enum)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32

	// Uniformiv sets len(v)/components consecutive int or bool vectors of
	// the given width.
	Uniformiv(location int32, components int, v []int32)
	// Uniformfv sets len(v)/components consecutive float vectors of the
	// given width.
	Uniformfv(location int32, components int, v []float32)
	// UniformMatrixfv sets consecutive dim x dim matrices.
	UniformMatrixfv(location int32, dim int, transpose bool, v []float32)

	Enable(capability gl.Enum)
	Disable(capability gl.Enum)
	BlendColor(r, g, b, a float32)
	BlendEquationSeparate(rgb, alpha gl.Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gl.Enum)
	ClearColor(r, g, b, a float32)
	ClearDepthf(depth float32)
	ClearStencil(s int32)
	ColorMask(r, g, b, a bool)
	DepthMask(flag bool)
	StencilMaskSeparate(face gl.Enum, mask uint32)
	CullFace(mode gl.Enum)
	FrontFace(mode gl.Enum)
	DepthFunc(fn gl.Enum)
	DepthRangef(near, far float32)
	Hint(target, mode gl.Enum)
	LineWidth(width float32)
	PixelStorei(pname gl.Enum, param int32)
	PolygonOffset(factor, units float32)
	SampleCoverage(value float32, invert bool)
	Scissor(x, y, width, height int32)
	Viewport(x, y, width, height int32)
	StencilFuncSeparate(face, fn gl.Enum, ref int32, mask uint32)
	StencilOpSeparate(face, fail, zfail, zpass gl.Enum)

	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, ty gl.Enum, normalized bool, stride int32, offset uint32)
	VertexAttribIPointer(index uint32, size int32, ty gl.Enum, stride int32, offset uint32)
	VertexAttribDivisor(index, divisor uint32)
	VertexAttrib4fv(index uint32, v [4]float32)
	VertexAttribI4iv(index uint32, v [4]int32)
	VertexAttribI4uiv(index uint32, v [4]uint32)

	DrawArrays(mode gl.Enum, first, count int32)
	DrawElements(mode gl.Enum, count int32, ty gl.Enum, offset uint32)
	DrawArraysInstanced(mode gl.Enum, first, count, primcount int32)
	DrawElementsInstanced(mode gl.Enum, count int32, ty gl.Enum, offset uint32, primcount int32)

	FenceSync(condition gl.Enum, flags uint32) uint64
	DeleteSync(sync uint64)
	ClientWaitSync(sync uint64, flags uint32, timeout uint64) gl.Enum
	WaitSync(sync uint64, flags uint32, timeout uint64)
	// SyncStatus returns SIGNALED or UNSIGNALED.
	SyncStatus(sync uint64) gl.Enum
}

// SwapResult is the outcome of presenting a surface.
type SwapResult int

const (
	// SwapAck means the frame was presented.
	SwapAck SwapResult = iota
	// SwapFailed means presentation failed and the device may have been reset.
	SwapFailed
)

// Surface is the presentation target of an onscreen context.
type Surface interface {
	Size() (width, height int32)
	IsOffscreen() bool
	Resize(width, height int32, hasAlpha bool) bool
	SwapBuffers() SwapResult
	// BuffersFlipped returns true if presenting exchanges the front and back
	// buffers, leaving the new back buffer with undefined contents.
	BuffersFlipped() bool
	// DeferDraws returns true while the display pipeline cannot accept draws
	// to the default framebuffer.
	DeferDraws() bool
}

// SyncNamespace identifies the kind of command buffer a sync token refers to.
type SyncNamespace int32

const (
	NamespaceGPUIO SyncNamespace = iota
	NamespaceInProcess
	NamespaceVideoDecoder
	numNamespaces
)

// Valid returns true if n is a known namespace.
func (n SyncNamespace) Valid() bool { return n >= 0 && n < numNamespaces }

// SyncToken names a release point of some command buffer.
type SyncToken struct {
	Namespace       SyncNamespace
	CommandBufferID uint64
	Release         uint64
}

// SyncPointWaiter connects a decoder to the cross-context sync point service.
type SyncPointWaiter interface {
	// Release marks every release point of this command buffer up to and
	// including release as reached.
	Release(release uint64)
	// IsReleased returns true once the release point named by token has
	// been reached.
	IsReleased(token SyncToken) bool
}
