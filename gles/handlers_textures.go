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
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/resources"
)

// largeUpload is the payload size above which an upload ends the current
// slice of command processing.
const largeUpload = 1 << 20

func (d *Decoder) maxTextureSize(target gl.Enum) int32 {
	if resources.BindTarget(target) == gl.TEXTURE_CUBE_MAP {
		return d.limits.MaxCubeMapSize
	}
	return d.limits.MaxTextureSize
}

// checkLevelDims validates the level and dimensions of a new image.
func (d *Decoder) checkLevelDims(ctx context.Context, fn string, target gl.Enum, level, width, height int32) bool {
	limit := d.maxTextureSize(target)
	if level < 0 || level > maxLevel(limit) {
		d.setError(ctx, gl.INVALID_VALUE, fn, "level %d out of range", level)
		return false
	}
	if width < 0 || height < 0 || width > limit>>uint(level) || height > limit>>uint(level) {
		d.setError(ctx, gl.INVALID_VALUE, fn, "dimensions %dx%d out of range", width, height)
		return false
	}
	if target != gl.TEXTURE_2D && width != height {
		d.setError(ctx, gl.INVALID_VALUE, fn, "cube map faces must be square")
		return false
	}
	return true
}

// mutableTexture returns the texture bound for the image target, or nil
// after recording an error.
func (d *Decoder) mutableTexture(ctx context.Context, fn string, target gl.Enum) *resources.Texture {
	t := d.state.BoundTexture(resources.BindTarget(target))
	if t == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "no texture bound")
		return nil
	}
	if t.Immutable {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "texture storage is immutable")
		return nil
	}
	return t
}

// checkedNativeCall runs call and reports whether the device accepted it.
// Errors raised by call are recorded against fn.
func (d *Decoder) checkedNativeCall(ctx context.Context, fn string, call func()) bool {
	d.mergeNativeErrors(ctx)
	call()
	err := d.gl.GetError()
	switch err {
	case gl.NO_ERROR:
		return true
	case gl.CONTEXT_LOST:
		d.lostFromNative(ctx)
	default:
		d.setError(ctx, err, fn, "native error")
	}
	return false
}

func (d *Decoder) handleTexImage2D(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, level, internalFormat := gl.Enum(args[0]), int32(args[1]), gl.Enum(args[2])
	width, height := int32(args[3]), int32(args[4])
	format, ty := gl.Enum(args[5]), gl.Enum(args[6])
	shmID, shmOffset := int32(args[7]), args[8]
	const fn = "glTexImage2D"

	size, ok := imageSize(width, height, format, ty, d.unpackLayout())
	if !ok {
		return cmdbuf.OutOfBounds
	}
	var pixels []byte
	if shmID != 0 || shmOffset != 0 {
		if pixels = d.mem.Resolve(shmID, shmOffset, size); pixels == nil {
			return cmdbuf.OutOfBounds
		}
	}
	if !d.validators.textureImageTarget.has(target) {
		d.invalidEnum(ctx, fn, target, "target")
		return cmdbuf.NoError
	}
	if !d.validators.textureFormat.has(format) {
		d.invalidEnum(ctx, fn, format, "format")
		return cmdbuf.NoError
	}
	if !d.validators.pixelType.has(ty) {
		d.invalidEnum(ctx, fn, ty, "type")
		return cmdbuf.NoError
	}
	info, ok := d.internalFormatValid(internalFormat)
	if !ok {
		d.setError(ctx, gl.INVALID_VALUE, fn, "invalid internalformat %v", internalFormat)
		return cmdbuf.NoError
	}
	if info.format != format || !info.acceptsType(ty) {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "%v cannot be specified with %v/%v", internalFormat, format, ty)
		return cmdbuf.NoError
	}
	if !d.checkLevelDims(ctx, fn, target, level, width, height) {
		return cmdbuf.NoError
	}
	t := d.mutableTexture(ctx, fn, target)
	if t == nil {
		return cmdbuf.NoError
	}
	if !d.checkedNativeCall(ctx, fn, func() {
		d.gl.TexImage2D(target, level, int32(internalFormat), width, height, format, ty, pixels)
	}) {
		return cmdbuf.NoError
	}
	t.SetLevel(target, level, resources.Level{
		Width: width, Height: height,
		InternalFormat: internalFormat, Format: format, Type: ty,
		Cleared: pixels != nil || size == 0,
	})
	d.group.StorageChanged()
	if size >= largeUpload {
		d.exitEarly()
	}
	return cmdbuf.NoError
}

func (d *Decoder) handleTexSubImage2D(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, level := gl.Enum(args[0]), int32(args[1])
	x, y, width, height := int32(args[2]), int32(args[3]), int32(args[4]), int32(args[5])
	format, ty := gl.Enum(args[6]), gl.Enum(args[7])
	shmID, shmOffset := int32(args[8]), args[9]
	const fn = "glTexSubImage2D"

	size, ok := imageSize(width, height, format, ty, d.unpackLayout())
	if !ok {
		return cmdbuf.OutOfBounds
	}
	pixels := d.mem.Resolve(shmID, shmOffset, size)
	if pixels == nil {
		return cmdbuf.OutOfBounds
	}
	if !d.validators.textureImageTarget.has(target) {
		d.invalidEnum(ctx, fn, target, "target")
		return cmdbuf.NoError
	}
	if !d.validators.textureFormat.has(format) {
		d.invalidEnum(ctx, fn, format, "format")
		return cmdbuf.NoError
	}
	if !d.validators.pixelType.has(ty) {
		d.invalidEnum(ctx, fn, ty, "type")
		return cmdbuf.NoError
	}
	t := d.state.BoundTexture(resources.BindTarget(target))
	if t == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "no texture bound")
		return cmdbuf.NoError
	}
	l := t.Level(target, level)
	if l == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "level %d not defined", level)
		return cmdbuf.NoError
	}
	if x < 0 || y < 0 || width < 0 || height < 0 || width > l.Width-x || height > l.Height-y {
		d.setError(ctx, gl.INVALID_VALUE, fn, "region out of range")
		return cmdbuf.NoError
	}
	if format != l.Format || ty != l.Type {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "format or type does not match the level")
		return cmdbuf.NoError
	}
	whole := x == 0 && y == 0 && width == l.Width && height == l.Height
	if !l.Cleared && !whole && !d.clearLevel(ctx, t, target, level) {
		return cmdbuf.OutOfBounds
	}
	d.gl.TexSubImage2D(target, level, x, y, width, height, format, ty, pixels)
	l.Cleared = true
	if size >= largeUpload {
		d.exitEarly()
	}
	return cmdbuf.NoError
}

// clearLevel fills a level with undefined contents with zeros. It returns
// false if the level is too large to clear.
func (d *Decoder) clearLevel(ctx context.Context, t *resources.Texture, face gl.Enum, level int32) bool {
	l := t.Level(face, level)
	if l == nil || l.Cleared {
		return true
	}
	size, ok := imageSize(l.Width, l.Height, l.Format, l.Type, pixelLayout{alignment: 1})
	if !ok {
		return false
	}
	tw := d.newTweaker()
	defer tw.revert(ctx)
	tw.unpackAlignment(ctx, 1)
	if d.state.Buffers[gl.PIXEL_UNPACK_BUFFER] != nil {
		tw.bindBuffer(ctx, gl.PIXEL_UNPACK_BUFFER, 0)
	}
	tw.bindTexture(ctx, resources.BindTarget(face), t.Service)
	d.gl.TexSubImage2D(face, level, 0, 0, l.Width, l.Height, l.Format, l.Type, make([]byte, size))
	l.Cleared = true
	return true
}

func (d *Decoder) handleTexStorage2DEXT(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.TextureStorage && !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	target, levels, internalFormat := gl.Enum(args[0]), int32(args[1]), gl.Enum(args[2])
	width, height := int32(args[3]), int32(args[4])
	const fn = "glTexStorage2DEXT"
	if target != gl.TEXTURE_2D && target != gl.TEXTURE_CUBE_MAP {
		d.invalidEnum(ctx, fn, target, "target")
		return cmdbuf.NoError
	}
	info, ok := textureFormats[internalFormat]
	if !ok || !info.sized {
		d.invalidEnum(ctx, fn, internalFormat, "internalformat")
		return cmdbuf.NoError
	}
	if levels < 1 || width < 1 || height < 1 {
		d.setError(ctx, gl.INVALID_VALUE, fn, "levels or dimensions < 1")
		return cmdbuf.NoError
	}
	limit := d.maxTextureSize(target)
	if width > limit || height > limit || (target == gl.TEXTURE_CUBE_MAP && width != height) {
		d.setError(ctx, gl.INVALID_VALUE, fn, "dimensions %dx%d out of range", width, height)
		return cmdbuf.NoError
	}
	largest := width
	if height > largest {
		largest = height
	}
	if levels > maxLevel(largest)+1 {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "too many levels for %dx%d", width, height)
		return cmdbuf.NoError
	}
	t := d.mutableTexture(ctx, fn, target)
	if t == nil {
		return cmdbuf.NoError
	}
	if !d.checkedNativeCall(ctx, fn, func() {
		d.gl.TexStorage2D(target, levels, internalFormat, width, height)
	}) {
		return cmdbuf.NoError
	}
	for _, face := range resources.Faces(target) {
		w, h := width, height
		for level := int32(0); level < levels; level++ {
			t.SetLevel(face, level, resources.Level{
				Width: w, Height: h,
				InternalFormat: internalFormat, Format: info.format, Type: info.types[0],
			})
			w, h = halve(w), halve(h)
		}
	}
	t.Immutable = true
	d.group.StorageChanged()
	return cmdbuf.NoError
}

func halve(v int32) int32 {
	if v > 1 {
		return v / 2
	}
	return 1
}

// textureParamError returns the error for setting pname to param.
func (d *Decoder) textureParamError(pname gl.Enum, param int32) gl.Enum {
	v := gl.Enum(param)
	switch pname {
	case gl.TEXTURE_MIN_FILTER:
		switch v {
		case gl.NEAREST, gl.LINEAR, gl.NEAREST_MIPMAP_NEAREST, gl.LINEAR_MIPMAP_NEAREST,
			gl.NEAREST_MIPMAP_LINEAR, gl.LINEAR_MIPMAP_LINEAR:
			return gl.NO_ERROR
		}
		return gl.INVALID_ENUM
	case gl.TEXTURE_MAG_FILTER:
		if v == gl.NEAREST || v == gl.LINEAR {
			return gl.NO_ERROR
		}
		return gl.INVALID_ENUM
	case gl.TEXTURE_WRAP_S, gl.TEXTURE_WRAP_T, gl.TEXTURE_WRAP_R:
		if v == gl.REPEAT || v == gl.CLAMP_TO_EDGE || v == gl.MIRRORED_REPEAT {
			return gl.NO_ERROR
		}
		return gl.INVALID_ENUM
	case gl.TEXTURE_COMPARE_MODE:
		if v == gl.NONE || v == gl.COMPARE_REF_TO_TEXTURE {
			return gl.NO_ERROR
		}
		return gl.INVALID_ENUM
	case gl.TEXTURE_COMPARE_FUNC:
		if d.validators.compareFunc.has(v) {
			return gl.NO_ERROR
		}
		return gl.INVALID_ENUM
	case gl.TEXTURE_BASE_LEVEL, gl.TEXTURE_MAX_LEVEL:
		if param < 0 {
			return gl.INVALID_VALUE
		}
	}
	return gl.NO_ERROR
}

func (d *Decoder) texParameter(ctx context.Context, fn string, target, pname gl.Enum, param int32, native func()) {
	if !d.validators.textureBindTarget.has(target) {
		d.invalidEnum(ctx, fn, target, "target")
		return
	}
	if !d.validators.textureParameter.has(pname) {
		d.invalidEnum(ctx, fn, pname, "pname")
		return
	}
	t := d.state.BoundTexture(target)
	if t == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "no texture bound")
		return
	}
	if err := d.textureParamError(pname, param); err != gl.NO_ERROR {
		d.setError(ctx, err, fn, "%v cannot be %d", pname, param)
		return
	}
	switch pname {
	case gl.TEXTURE_MIN_FILTER:
		t.MinFilter = gl.Enum(param)
	case gl.TEXTURE_MAG_FILTER:
		t.MagFilter = gl.Enum(param)
	}
	native()
}

func (d *Decoder) handleTexParameteri(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, pname, param := gl.Enum(args[0]), gl.Enum(args[1]), int32(args[2])
	d.texParameter(ctx, "glTexParameteri", target, pname, param, func() {
		d.gl.TexParameteri(target, pname, param)
	})
	return cmdbuf.NoError
}

func (d *Decoder) handleTexParameterf(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, pname, param := gl.Enum(args[0]), gl.Enum(args[1]), cmdbuf.ToFloat(args[2])
	d.texParameter(ctx, "glTexParameterf", target, pname, int32(param), func() {
		d.gl.TexParameterf(target, pname, param)
	})
	return cmdbuf.NoError
}

func (d *Decoder) handleGenerateMipmap(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target := gl.Enum(args[0])
	const fn = "glGenerateMipmap"
	if target != gl.TEXTURE_2D && target != gl.TEXTURE_CUBE_MAP {
		d.invalidEnum(ctx, fn, target, "target")
		return cmdbuf.NoError
	}
	t := d.state.BoundTexture(target)
	if t == nil {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "no texture bound")
		return cmdbuf.NoError
	}
	faces := resources.Faces(target)
	base := t.Level(faces[0], 0)
	for _, face := range faces {
		l := t.Level(face, 0)
		if l == nil || l.Width != base.Width || l.Height != base.Height || l.InternalFormat != base.InternalFormat {
			d.setError(ctx, gl.INVALID_OPERATION, fn, "base level incomplete")
			return cmdbuf.NoError
		}
	}
	for _, face := range faces {
		if !d.clearLevel(ctx, t, face, 0) {
			return cmdbuf.OutOfBounds
		}
	}
	if !d.checkedNativeCall(ctx, fn, func() { d.gl.GenerateMipmap(target) }) {
		return cmdbuf.NoError
	}
	for _, face := range faces {
		w, h := base.Width, base.Height
		for level := int32(1); w > 1 || h > 1; level++ {
			w, h = halve(w), halve(h)
			t.SetLevel(face, level, resources.Level{
				Width: w, Height: h,
				InternalFormat: base.InternalFormat, Format: base.Format, Type: base.Type,
				Cleared: true,
			})
		}
	}
	d.group.StorageChanged()
	return cmdbuf.NoError
}

func (d *Decoder) handleCopyTexImage2D(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	target, level, internalFormat := gl.Enum(args[0]), int32(args[1]), gl.Enum(args[2])
	x, y, width, height := int32(args[3]), int32(args[4]), int32(args[5]), int32(args[6])
	const fn = "glCopyTexImage2D"
	if d.ShouldDeferReads() {
		return cmdbuf.DeferCommandUntilLater
	}
	if !d.validators.textureImageTarget.has(target) {
		d.invalidEnum(ctx, fn, target, "target")
		return cmdbuf.NoError
	}
	switch internalFormat {
	case gl.ALPHA, gl.LUMINANCE, gl.LUMINANCE_ALPHA, gl.RGB, gl.RGBA:
	default:
		d.invalidEnum(ctx, fn, internalFormat, "internalformat")
		return cmdbuf.NoError
	}
	if !d.checkLevelDims(ctx, fn, target, level, width, height) {
		return cmdbuf.NoError
	}
	t := d.mutableTexture(ctx, fn, target)
	if t == nil {
		return cmdbuf.NoError
	}
	read := d.state.ReadFramebuffer
	if !d.checkFramebufferValid(ctx, read, d.readTarget(), gl.INVALID_FRAMEBUFFER_OPERATION, fn) {
		return cmdbuf.NoError
	}
	if read != nil && read.HasColorTexture(t) {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "source and destination are the same texture")
		return cmdbuf.NoError
	}
	if !d.checkedNativeCall(ctx, fn, func() {
		d.gl.CopyTexImage2D(target, level, internalFormat, x, y, width, height)
	}) {
		return cmdbuf.NoError
	}
	t.SetLevel(target, level, resources.Level{
		Width: width, Height: height,
		InternalFormat: internalFormat, Format: internalFormat, Type: gl.UNSIGNED_BYTE,
		Cleared: true,
	})
	d.group.StorageChanged()
	return cmdbuf.NoError
}

func (d *Decoder) handleSamplerParameteri(ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error {
	if !d.features.ES3 {
		return cmdbuf.UnknownCommand
	}
	client, pname, param := args[0], gl.Enum(args[1]), int32(args[2])
	const fn = "glSamplerParameteri"
	s, ok := d.group.Samplers.Get(client)
	if !ok {
		d.setError(ctx, gl.INVALID_OPERATION, fn, "unknown sampler %d", client)
		return cmdbuf.NoError
	}
	if !d.validators.samplerParameter.has(pname) {
		d.invalidEnum(ctx, fn, pname, "pname")
		return cmdbuf.NoError
	}
	if err := d.textureParamError(pname, param); err != gl.NO_ERROR {
		d.setError(ctx, err, fn, "%v cannot be %d", pname, param)
		return cmdbuf.NoError
	}
	s.Params[pname] = param
	d.gl.SamplerParameteri(s.Service, pname, param)
	return cmdbuf.NoError
}
