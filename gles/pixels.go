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
	"github.com/google/gpucmd/core/math/u32"
	"github.com/google/gpucmd/gles/gl"
	"github.com/google/gpucmd/resources"
)

// bytesPerPixel returns the size of one pixel of the given client format
// and type, or 0 for an unknown combination.
func bytesPerPixel(format, ty gl.Enum) uint32 {
	switch ty {
	case gl.UNSIGNED_SHORT_5_6_5, gl.UNSIGNED_SHORT_4_4_4_4, gl.UNSIGNED_SHORT_5_5_5_1:
		return 2
	case gl.UNSIGNED_INT_24_8, gl.UNSIGNED_INT_2_10_10_10_REV:
		return 4
	}
	var components uint32
	switch format {
	case gl.ALPHA, gl.LUMINANCE, gl.RED, gl.DEPTH_COMPONENT:
		components = 1
	case gl.LUMINANCE_ALPHA, gl.RG:
		components = 2
	case gl.RGB:
		components = 3
	case gl.RGBA, gl.RGBA_INTEGER, gl.BGRA_EXT:
		components = 4
	}
	return components * resources.TypeSize(ty)
}

// pixelLayout holds the pixel store parameters of one transfer direction.
type pixelLayout struct {
	alignment  int32
	rowLength  int32
	skipRows   int32
	skipPixels int32
}

func (d *Decoder) packLayout() pixelLayout {
	s := d.state.PixelStore
	return pixelLayout{s[gl.PACK_ALIGNMENT], s[gl.PACK_ROW_LENGTH], s[gl.PACK_SKIP_ROWS], s[gl.PACK_SKIP_PIXELS]}
}

func (d *Decoder) unpackLayout() pixelLayout {
	s := d.state.PixelStore
	return pixelLayout{s[gl.UNPACK_ALIGNMENT], s[gl.UNPACK_ROW_LENGTH], s[gl.UNPACK_SKIP_ROWS], s[gl.UNPACK_SKIP_PIXELS]}
}

// imageSize returns the number of bytes a width x height image occupies in
// client memory. Every row but the last is padded to the alignment. ok is
// false if the size does not fit in 32 bits.
func imageSize(width, height int32, format, ty gl.Enum, l pixelLayout) (uint32, bool) {
	if width <= 0 || height <= 0 {
		return 0, true
	}
	bpp := bytesPerPixel(format, ty)
	rowPixels := uint32(width)
	if l.rowLength > 0 {
		rowPixels = uint32(l.rowLength)
	}
	unpadded, ok := u32.Mul(uint32(width), bpp)
	if !ok {
		return 0, false
	}
	row, ok := u32.Mul(rowPixels, bpp)
	if !ok {
		return 0, false
	}
	alignment := uint32(1)
	if l.alignment > 0 {
		alignment = uint32(l.alignment)
	}
	padded, ok := u32.AlignUp(row, alignment)
	if !ok {
		return 0, false
	}
	rows, ok := u32.Add(uint32(height)-1, uint32(l.skipRows))
	if !ok {
		return 0, false
	}
	size, ok := u32.Mul(padded, rows)
	if !ok {
		return 0, false
	}
	skip, ok := u32.Mul(uint32(l.skipPixels), bpp)
	if !ok {
		return 0, false
	}
	if size, ok = u32.Add(size, skip); !ok {
		return 0, false
	}
	return u32.Add(size, unpadded)
}
