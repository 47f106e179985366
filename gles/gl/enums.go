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

// Package gl holds the GL enum values understood by the decoder.
package gl

import "fmt"

// Enum is a GL enumerator value.
type Enum uint32

// Booleans.
const (
	FALSE Enum = 0
	TRUE  Enum = 1
	ZERO  Enum = 0
	NONE  Enum = 0
)

const (
	NO_ERROR                      Enum = 0x0000
	INVALID_ENUM                  Enum = 0x0500
	INVALID_VALUE                 Enum = 0x0501
	INVALID_OPERATION             Enum = 0x0502
	OUT_OF_MEMORY                 Enum = 0x0505
	INVALID_FRAMEBUFFER_OPERATION Enum = 0x0506
	CONTEXT_LOST                  Enum = 0x0507
	GUILTY_CONTEXT_RESET          Enum = 0x8253
	INNOCENT_CONTEXT_RESET        Enum = 0x8254
	UNKNOWN_CONTEXT_RESET         Enum = 0x8255

	ONE            Enum = 0x0001
	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	LINE_LOOP      Enum = 0x0002
	LINE_STRIP     Enum = 0x0003
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005
	TRIANGLE_FAN   Enum = 0x0006

	DEPTH_BUFFER_BIT   Enum = 0x0100
	STENCIL_BUFFER_BIT Enum = 0x0400
	COLOR_BUFFER_BIT   Enum = 0x4000

	NEVER    Enum = 0x0200
	LESS     Enum = 0x0201
	EQUAL    Enum = 0x0202
	LEQUAL   Enum = 0x0203
	GREATER  Enum = 0x0204
	NOTEQUAL Enum = 0x0205
	GEQUAL   Enum = 0x0206
	ALWAYS   Enum = 0x0207

	SRC_COLOR                Enum = 0x0300
	ONE_MINUS_SRC_COLOR      Enum = 0x0301
	SRC_ALPHA                Enum = 0x0302
	ONE_MINUS_SRC_ALPHA      Enum = 0x0303
	DST_ALPHA                Enum = 0x0304
	ONE_MINUS_DST_ALPHA      Enum = 0x0305
	DST_COLOR                Enum = 0x0306
	ONE_MINUS_DST_COLOR      Enum = 0x0307
	SRC_ALPHA_SATURATE       Enum = 0x0308
	CONSTANT_COLOR           Enum = 0x8001
	ONE_MINUS_CONSTANT_COLOR Enum = 0x8002
	CONSTANT_ALPHA           Enum = 0x8003
	ONE_MINUS_CONSTANT_ALPHA Enum = 0x8004
	FUNC_ADD                 Enum = 0x8006
	MIN                      Enum = 0x8007
	MAX                      Enum = 0x8008
	FUNC_SUBTRACT            Enum = 0x800A
	FUNC_REVERSE_SUBTRACT    Enum = 0x800B

	FRONT          Enum = 0x0404
	BACK           Enum = 0x0405
	FRONT_AND_BACK Enum = 0x0408
	CW             Enum = 0x0900
	CCW            Enum = 0x0901

	CULL_FACE                     Enum = 0x0B44
	CULL_FACE_MODE                Enum = 0x0B45
	FRONT_FACE                    Enum = 0x0B46
	DEPTH_TEST                    Enum = 0x0B71
	DEPTH_WRITEMASK               Enum = 0x0B72
	DEPTH_CLEAR_VALUE             Enum = 0x0B73
	DEPTH_FUNC                    Enum = 0x0B74
	STENCIL_TEST                  Enum = 0x0B90
	STENCIL_CLEAR_VALUE           Enum = 0x0B91
	STENCIL_WRITEMASK             Enum = 0x0B98
	DITHER                        Enum = 0x0BD0
	BLEND                         Enum = 0x0BE2
	VIEWPORT                      Enum = 0x0BA2
	SCISSOR_BOX                   Enum = 0x0C10
	SCISSOR_TEST                  Enum = 0x0C11
	COLOR_CLEAR_VALUE             Enum = 0x0C22
	COLOR_WRITEMASK               Enum = 0x0C23
	UNPACK_ROW_LENGTH             Enum = 0x0CF2
	UNPACK_SKIP_ROWS              Enum = 0x0CF3
	UNPACK_SKIP_PIXELS            Enum = 0x0CF4
	UNPACK_ALIGNMENT              Enum = 0x0CF5
	PACK_ROW_LENGTH               Enum = 0x0D02
	PACK_SKIP_ROWS                Enum = 0x0D03
	PACK_SKIP_PIXELS              Enum = 0x0D04
	PACK_ALIGNMENT                Enum = 0x0D05
	MAX_TEXTURE_SIZE              Enum = 0x0D33
	MAX_VIEWPORT_DIMS             Enum = 0x0D3A
	POLYGON_OFFSET_FILL           Enum = 0x8037
	SAMPLE_ALPHA_TO_COVERAGE      Enum = 0x809E
	SAMPLE_COVERAGE               Enum = 0x80A0
	RASTERIZER_DISCARD            Enum = 0x8C89
	PRIMITIVE_RESTART_FIXED_INDEX Enum = 0x8D69
	STENCIL_BACK_WRITEMASK        Enum = 0x8CA5
	UNPACK_SKIP_IMAGES            Enum = 0x806D
	UNPACK_IMAGE_HEIGHT           Enum = 0x806E

	DONT_CARE                       Enum = 0x1100
	FASTEST                         Enum = 0x1101
	NICEST                          Enum = 0x1102
	GENERATE_MIPMAP_HINT            Enum = 0x8192
	FRAGMENT_SHADER_DERIVATIVE_HINT Enum = 0x8B8B

	BYTE                        Enum = 0x1400
	UNSIGNED_BYTE               Enum = 0x1401
	SHORT                       Enum = 0x1402
	UNSIGNED_SHORT              Enum = 0x1403
	INT                         Enum = 0x1404
	UNSIGNED_INT                Enum = 0x1405
	FLOAT                       Enum = 0x1406
	HALF_FLOAT                  Enum = 0x140B
	FIXED                       Enum = 0x140C
	HALF_FLOAT_OES              Enum = 0x8D61
	UNSIGNED_SHORT_4_4_4_4      Enum = 0x8033
	UNSIGNED_SHORT_5_5_5_1      Enum = 0x8034
	UNSIGNED_SHORT_5_6_5        Enum = 0x8363
	UNSIGNED_INT_2_10_10_10_REV Enum = 0x8368
	UNSIGNED_INT_24_8           Enum = 0x84FA
	INT_2_10_10_10_REV          Enum = 0x8D9F

	INVERT    Enum = 0x150A
	KEEP      Enum = 0x1E00
	REPLACE   Enum = 0x1E01
	INCR      Enum = 0x1E02
	DECR      Enum = 0x1E03
	INCR_WRAP Enum = 0x8507
	DECR_WRAP Enum = 0x8508

	DEPTH_COMPONENT    Enum = 0x1902
	RED                Enum = 0x1903
	ALPHA              Enum = 0x1906
	RGB                Enum = 0x1907
	RGBA               Enum = 0x1908
	LUMINANCE          Enum = 0x1909
	LUMINANCE_ALPHA    Enum = 0x190A
	RG                 Enum = 0x8227
	BGRA_EXT           Enum = 0x80E1
	DEPTH_STENCIL      Enum = 0x84F9
	RGBA_INTEGER       Enum = 0x8D99
	RGB8               Enum = 0x8051
	RGBA4              Enum = 0x8056
	RGB5_A1            Enum = 0x8057
	RGBA8              Enum = 0x8058
	DEPTH_COMPONENT16  Enum = 0x81A5
	DEPTH_COMPONENT24  Enum = 0x81A6
	R8                 Enum = 0x8229
	RG8                Enum = 0x822B
	RGBA32F            Enum = 0x8814
	RGBA16F            Enum = 0x881A
	DEPTH24_STENCIL8   Enum = 0x88F0
	SRGB8_ALPHA8       Enum = 0x8C43
	DEPTH_COMPONENT32F Enum = 0x8CAC
	STENCIL_INDEX8     Enum = 0x8D48
	RGB565             Enum = 0x8D62

	VENDOR                   Enum = 0x1F00
	RENDERER                 Enum = 0x1F01
	VERSION                  Enum = 0x1F02
	EXTENSIONS               Enum = 0x1F03
	SHADING_LANGUAGE_VERSION Enum = 0x8B8C

	NEAREST                    Enum = 0x2600
	LINEAR                     Enum = 0x2601
	NEAREST_MIPMAP_NEAREST     Enum = 0x2700
	LINEAR_MIPMAP_NEAREST      Enum = 0x2701
	NEAREST_MIPMAP_LINEAR      Enum = 0x2702
	LINEAR_MIPMAP_LINEAR       Enum = 0x2703
	TEXTURE_MAG_FILTER         Enum = 0x2800
	TEXTURE_MIN_FILTER         Enum = 0x2801
	TEXTURE_WRAP_S             Enum = 0x2802
	TEXTURE_WRAP_T             Enum = 0x2803
	REPEAT                     Enum = 0x2901
	CLAMP_TO_EDGE              Enum = 0x812F
	MIRRORED_REPEAT            Enum = 0x8370
	TEXTURE_WRAP_R             Enum = 0x8072
	TEXTURE_MIN_LOD            Enum = 0x813A
	TEXTURE_MAX_LOD            Enum = 0x813B
	TEXTURE_BASE_LEVEL         Enum = 0x813C
	TEXTURE_MAX_LEVEL          Enum = 0x813D
	TEXTURE_COMPARE_MODE       Enum = 0x884C
	TEXTURE_COMPARE_FUNC       Enum = 0x884D
	TEXTURE_MAX_ANISOTROPY_EXT Enum = 0x84FE
	COMPARE_REF_TO_TEXTURE     Enum = 0x884E

	TEXTURE_2D                  Enum = 0x0DE1
	TEXTURE_3D                  Enum = 0x806F
	TEXTURE_BINDING_2D          Enum = 0x8069
	TEXTURE_CUBE_MAP            Enum = 0x8513
	TEXTURE_BINDING_CUBE_MAP    Enum = 0x8514
	TEXTURE_CUBE_MAP_POSITIVE_X Enum = 0x8515
	TEXTURE_CUBE_MAP_NEGATIVE_X Enum = 0x8516
	TEXTURE_CUBE_MAP_POSITIVE_Y Enum = 0x8517
	TEXTURE_CUBE_MAP_NEGATIVE_Y Enum = 0x8518
	TEXTURE_CUBE_MAP_POSITIVE_Z Enum = 0x8519
	TEXTURE_CUBE_MAP_NEGATIVE_Z Enum = 0x851A
	MAX_CUBE_MAP_TEXTURE_SIZE   Enum = 0x851C
	TEXTURE_2D_ARRAY            Enum = 0x8C1A
	TEXTURE_EXTERNAL_OES        Enum = 0x8D65
	TEXTURE0                    Enum = 0x84C0
	ACTIVE_TEXTURE              Enum = 0x84E0
	MAX_RENDERBUFFER_SIZE       Enum = 0x84E8

	ARRAY_BUFFER                 Enum = 0x8892
	ELEMENT_ARRAY_BUFFER         Enum = 0x8893
	ARRAY_BUFFER_BINDING         Enum = 0x8894
	ELEMENT_ARRAY_BUFFER_BINDING Enum = 0x8895
	PIXEL_PACK_BUFFER            Enum = 0x88EB
	PIXEL_UNPACK_BUFFER          Enum = 0x88EC
	UNIFORM_BUFFER               Enum = 0x8A11
	TRANSFORM_FEEDBACK_BUFFER    Enum = 0x8C8E
	COPY_READ_BUFFER             Enum = 0x8F36
	COPY_WRITE_BUFFER            Enum = 0x8F37
	STREAM_DRAW                  Enum = 0x88E0
	STREAM_READ                  Enum = 0x88E1
	STREAM_COPY                  Enum = 0x88E2
	STATIC_DRAW                  Enum = 0x88E4
	STATIC_READ                  Enum = 0x88E5
	STATIC_COPY                  Enum = 0x88E6
	DYNAMIC_DRAW                 Enum = 0x88E8
	DYNAMIC_READ                 Enum = 0x88E9
	DYNAMIC_COPY                 Enum = 0x88EA

	MAX_VERTEX_ATTRIBS                      Enum = 0x8869
	MAX_TEXTURE_IMAGE_UNITS                 Enum = 0x8872
	MAX_DRAW_BUFFERS                        Enum = 0x8824
	MAX_UNIFORM_BUFFER_BINDINGS             Enum = 0x8A2F
	MAX_COMBINED_TEXTURE_IMAGE_UNITS        Enum = 0x8B4D
	MAX_TRANSFORM_FEEDBACK_SEPARATE_ATTRIBS Enum = 0x8C8B
	MAX_COLOR_ATTACHMENTS                   Enum = 0x8CDF
	MAX_SAMPLES                             Enum = 0x8D57
	VERTEX_ARRAY_BINDING                    Enum = 0x85B5

	FRAGMENT_SHADER             Enum = 0x8B30
	VERTEX_SHADER               Enum = 0x8B31
	SHADER_TYPE                 Enum = 0x8B4F
	DELETE_STATUS               Enum = 0x8B80
	COMPILE_STATUS              Enum = 0x8B81
	LINK_STATUS                 Enum = 0x8B82
	VALIDATE_STATUS             Enum = 0x8B83
	INFO_LOG_LENGTH             Enum = 0x8B84
	ATTACHED_SHADERS            Enum = 0x8B85
	ACTIVE_UNIFORMS             Enum = 0x8B86
	ACTIVE_UNIFORM_MAX_LENGTH   Enum = 0x8B87
	SHADER_SOURCE_LENGTH        Enum = 0x8B88
	ACTIVE_ATTRIBUTES           Enum = 0x8B89
	ACTIVE_ATTRIBUTE_MAX_LENGTH Enum = 0x8B8A
	CURRENT_PROGRAM             Enum = 0x8B8D

	FLOAT_VEC2           Enum = 0x8B50
	FLOAT_VEC3           Enum = 0x8B51
	FLOAT_VEC4           Enum = 0x8B52
	INT_VEC2             Enum = 0x8B53
	INT_VEC3             Enum = 0x8B54
	INT_VEC4             Enum = 0x8B55
	BOOL                 Enum = 0x8B56
	BOOL_VEC2            Enum = 0x8B57
	BOOL_VEC3            Enum = 0x8B58
	BOOL_VEC4            Enum = 0x8B59
	FLOAT_MAT2           Enum = 0x8B5A
	FLOAT_MAT3           Enum = 0x8B5B
	FLOAT_MAT4           Enum = 0x8B5C
	SAMPLER_2D           Enum = 0x8B5E
	SAMPLER_3D           Enum = 0x8B5F
	SAMPLER_CUBE         Enum = 0x8B60
	SAMPLER_2D_ARRAY     Enum = 0x8DC1
	SAMPLER_EXTERNAL_OES Enum = 0x8D66
	UNSIGNED_INT_VEC2    Enum = 0x8DC6
	UNSIGNED_INT_VEC3    Enum = 0x8DC7
	UNSIGNED_INT_VEC4    Enum = 0x8DC8

	FRAMEBUFFER                               Enum = 0x8D40
	RENDERBUFFER                              Enum = 0x8D41
	READ_FRAMEBUFFER                          Enum = 0x8CA8
	DRAW_FRAMEBUFFER                          Enum = 0x8CA9
	FRAMEBUFFER_BINDING                       Enum = 0x8CA6
	RENDERBUFFER_BINDING                      Enum = 0x8CA7
	READ_FRAMEBUFFER_BINDING                  Enum = 0x8CAA
	COLOR_ATTACHMENT0                         Enum = 0x8CE0
	COLOR_ATTACHMENT1                         Enum = 0x8CE1
	COLOR_ATTACHMENT2                         Enum = 0x8CE2
	COLOR_ATTACHMENT3                         Enum = 0x8CE3
	DEPTH_ATTACHMENT                          Enum = 0x8D00
	STENCIL_ATTACHMENT                        Enum = 0x8D20
	DEPTH_STENCIL_ATTACHMENT                  Enum = 0x821A
	FRAMEBUFFER_COMPLETE                      Enum = 0x8CD5
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         Enum = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT Enum = 0x8CD7
	FRAMEBUFFER_INCOMPLETE_DIMENSIONS         Enum = 0x8CD9
	FRAMEBUFFER_UNSUPPORTED                   Enum = 0x8CDD
	FRAMEBUFFER_INCOMPLETE_MULTISAMPLE        Enum = 0x8D56
	RENDERBUFFER_SAMPLES                      Enum = 0x8CAB

	QUERY_RESULT                          Enum = 0x8866
	QUERY_RESULT_AVAILABLE                Enum = 0x8867
	TIME_ELAPSED                          Enum = 0x88BF
	TRANSFORM_FEEDBACK_PRIMITIVES_WRITTEN Enum = 0x8C88
	ANY_SAMPLES_PASSED                    Enum = 0x8C2F
	ANY_SAMPLES_PASSED_CONSERVATIVE       Enum = 0x8D6A
	TIMESTAMP                             Enum = 0x8E28
	TRANSFORM_FEEDBACK                    Enum = 0x8E22

	SYNC_FLUSH_COMMANDS_BIT    Enum = 0x0001
	UNSIGNALED                 Enum = 0x9118
	SIGNALED                   Enum = 0x9119
	ALREADY_SIGNALED           Enum = 0x911A
	TIMEOUT_EXPIRED            Enum = 0x911B
	CONDITION_SATISFIED        Enum = 0x911C
	WAIT_FAILED                Enum = 0x911D
	SYNC_GPU_COMMANDS_COMPLETE Enum = 0x9117
)

var names = map[Enum]string{
	0x0000: "NO_ERROR",
	0x0500: "INVALID_ENUM",
	0x0501: "INVALID_VALUE",
	0x0502: "INVALID_OPERATION",
	0x0505: "OUT_OF_MEMORY",
	0x0506: "INVALID_FRAMEBUFFER_OPERATION",
	0x0507: "CONTEXT_LOST",
	0x8253: "GUILTY_CONTEXT_RESET",
	0x8254: "INNOCENT_CONTEXT_RESET",
	0x8255: "UNKNOWN_CONTEXT_RESET",
	0x0001: "ONE",
	0x0002: "LINE_LOOP",
	0x0003: "LINE_STRIP",
	0x0004: "TRIANGLES",
	0x0005: "TRIANGLE_STRIP",
	0x0006: "TRIANGLE_FAN",
	0x0100: "DEPTH_BUFFER_BIT",
	0x0400: "STENCIL_BUFFER_BIT",
	0x4000: "COLOR_BUFFER_BIT",
	0x0200: "NEVER",
	0x0201: "LESS",
	0x0202: "EQUAL",
	0x0203: "LEQUAL",
	0x0204: "GREATER",
	0x0205: "NOTEQUAL",
	0x0206: "GEQUAL",
	0x0207: "ALWAYS",
	0x0300: "SRC_COLOR",
	0x0301: "ONE_MINUS_SRC_COLOR",
	0x0302: "SRC_ALPHA",
	0x0303: "ONE_MINUS_SRC_ALPHA",
	0x0304: "DST_ALPHA",
	0x0305: "ONE_MINUS_DST_ALPHA",
	0x0306: "DST_COLOR",
	0x0307: "ONE_MINUS_DST_COLOR",
	0x0308: "SRC_ALPHA_SATURATE",
	0x8001: "CONSTANT_COLOR",
	0x8002: "ONE_MINUS_CONSTANT_COLOR",
	0x8003: "CONSTANT_ALPHA",
	0x8004: "ONE_MINUS_CONSTANT_ALPHA",
	0x8006: "FUNC_ADD",
	0x8007: "MIN",
	0x8008: "MAX",
	0x800A: "FUNC_SUBTRACT",
	0x800B: "FUNC_REVERSE_SUBTRACT",
	0x0404: "FRONT",
	0x0405: "BACK",
	0x0408: "FRONT_AND_BACK",
	0x0900: "CW",
	0x0901: "CCW",
	0x0B44: "CULL_FACE",
	0x0B45: "CULL_FACE_MODE",
	0x0B46: "FRONT_FACE",
	0x0B71: "DEPTH_TEST",
	0x0B72: "DEPTH_WRITEMASK",
	0x0B73: "DEPTH_CLEAR_VALUE",
	0x0B74: "DEPTH_FUNC",
	0x0B90: "STENCIL_TEST",
	0x0B91: "STENCIL_CLEAR_VALUE",
	0x0B98: "STENCIL_WRITEMASK",
	0x0BD0: "DITHER",
	0x0BE2: "BLEND",
	0x0BA2: "VIEWPORT",
	0x0C10: "SCISSOR_BOX",
	0x0C11: "SCISSOR_TEST",
	0x0C22: "COLOR_CLEAR_VALUE",
	0x0C23: "COLOR_WRITEMASK",
	0x0CF2: "UNPACK_ROW_LENGTH",
	0x0CF3: "UNPACK_SKIP_ROWS",
	0x0CF4: "UNPACK_SKIP_PIXELS",
	0x0CF5: "UNPACK_ALIGNMENT",
	0x0D02: "PACK_ROW_LENGTH",
	0x0D03: "PACK_SKIP_ROWS",
	0x0D04: "PACK_SKIP_PIXELS",
	0x0D05: "PACK_ALIGNMENT",
	0x0D33: "MAX_TEXTURE_SIZE",
	0x0D3A: "MAX_VIEWPORT_DIMS",
	0x8037: "POLYGON_OFFSET_FILL",
	0x809E: "SAMPLE_ALPHA_TO_COVERAGE",
	0x80A0: "SAMPLE_COVERAGE",
	0x8C89: "RASTERIZER_DISCARD",
	0x8D69: "PRIMITIVE_RESTART_FIXED_INDEX",
	0x8CA5: "STENCIL_BACK_WRITEMASK",
	0x806D: "UNPACK_SKIP_IMAGES",
	0x806E: "UNPACK_IMAGE_HEIGHT",
	0x1100: "DONT_CARE",
	0x1101: "FASTEST",
	0x1102: "NICEST",
	0x8192: "GENERATE_MIPMAP_HINT",
	0x8B8B: "FRAGMENT_SHADER_DERIVATIVE_HINT",
	0x1400: "BYTE",
	0x1401: "UNSIGNED_BYTE",
	0x1402: "SHORT",
	0x1403: "UNSIGNED_SHORT",
	0x1404: "INT",
	0x1405: "UNSIGNED_INT",
	0x1406: "FLOAT",
	0x140B: "HALF_FLOAT",
	0x140C: "FIXED",
	0x8D61: "HALF_FLOAT_OES",
	0x8033: "UNSIGNED_SHORT_4_4_4_4",
	0x8034: "UNSIGNED_SHORT_5_5_5_1",
	0x8363: "UNSIGNED_SHORT_5_6_5",
	0x8368: "UNSIGNED_INT_2_10_10_10_REV",
	0x84FA: "UNSIGNED_INT_24_8",
	0x8D9F: "INT_2_10_10_10_REV",
	0x150A: "INVERT",
	0x1E00: "KEEP",
	0x1E01: "REPLACE",
	0x1E02: "INCR",
	0x1E03: "DECR",
	0x8507: "INCR_WRAP",
	0x8508: "DECR_WRAP",
	0x1902: "DEPTH_COMPONENT",
	0x1903: "RED",
	0x1906: "ALPHA",
	0x1907: "RGB",
	0x1908: "RGBA",
	0x1909: "LUMINANCE",
	0x190A: "LUMINANCE_ALPHA",
	0x8227: "RG",
	0x80E1: "BGRA_EXT",
	0x84F9: "DEPTH_STENCIL",
	0x8D99: "RGBA_INTEGER",
	0x8051: "RGB8",
	0x8056: "RGBA4",
	0x8057: "RGB5_A1",
	0x8058: "RGBA8",
	0x81A5: "DEPTH_COMPONENT16",
	0x81A6: "DEPTH_COMPONENT24",
	0x8229: "R8",
	0x822B: "RG8",
	0x8814: "RGBA32F",
	0x881A: "RGBA16F",
	0x88F0: "DEPTH24_STENCIL8",
	0x8C43: "SRGB8_ALPHA8",
	0x8CAC: "DEPTH_COMPONENT32F",
	0x8D48: "STENCIL_INDEX8",
	0x8D62: "RGB565",
	0x1F00: "VENDOR",
	0x1F01: "RENDERER",
	0x1F02: "VERSION",
	0x1F03: "EXTENSIONS",
	0x8B8C: "SHADING_LANGUAGE_VERSION",
	0x2600: "NEAREST",
	0x2601: "LINEAR",
	0x2700: "NEAREST_MIPMAP_NEAREST",
	0x2701: "LINEAR_MIPMAP_NEAREST",
	0x2702: "NEAREST_MIPMAP_LINEAR",
	0x2703: "LINEAR_MIPMAP_LINEAR",
	0x2800: "TEXTURE_MAG_FILTER",
	0x2801: "TEXTURE_MIN_FILTER",
	0x2802: "TEXTURE_WRAP_S",
	0x2803: "TEXTURE_WRAP_T",
	0x2901: "REPEAT",
	0x812F: "CLAMP_TO_EDGE",
	0x8370: "MIRRORED_REPEAT",
	0x8072: "TEXTURE_WRAP_R",
	0x813A: "TEXTURE_MIN_LOD",
	0x813B: "TEXTURE_MAX_LOD",
	0x813C: "TEXTURE_BASE_LEVEL",
	0x813D: "TEXTURE_MAX_LEVEL",
	0x884C: "TEXTURE_COMPARE_MODE",
	0x884D: "TEXTURE_COMPARE_FUNC",
	0x84FE: "TEXTURE_MAX_ANISOTROPY_EXT",
	0x884E: "COMPARE_REF_TO_TEXTURE",
	0x0DE1: "TEXTURE_2D",
	0x806F: "TEXTURE_3D",
	0x8069: "TEXTURE_BINDING_2D",
	0x8513: "TEXTURE_CUBE_MAP",
	0x8514: "TEXTURE_BINDING_CUBE_MAP",
	0x8515: "TEXTURE_CUBE_MAP_POSITIVE_X",
	0x8516: "TEXTURE_CUBE_MAP_NEGATIVE_X",
	0x8517: "TEXTURE_CUBE_MAP_POSITIVE_Y",
	0x8518: "TEXTURE_CUBE_MAP_NEGATIVE_Y",
	0x8519: "TEXTURE_CUBE_MAP_POSITIVE_Z",
	0x851A: "TEXTURE_CUBE_MAP_NEGATIVE_Z",
	0x851C: "MAX_CUBE_MAP_TEXTURE_SIZE",
	0x8C1A: "TEXTURE_2D_ARRAY",
	0x8D65: "TEXTURE_EXTERNAL_OES",
	0x84C0: "TEXTURE0",
	0x84E0: "ACTIVE_TEXTURE",
	0x84E8: "MAX_RENDERBUFFER_SIZE",
	0x8892: "ARRAY_BUFFER",
	0x8893: "ELEMENT_ARRAY_BUFFER",
	0x8894: "ARRAY_BUFFER_BINDING",
	0x8895: "ELEMENT_ARRAY_BUFFER_BINDING",
	0x88EB: "PIXEL_PACK_BUFFER",
	0x88EC: "PIXEL_UNPACK_BUFFER",
	0x8A11: "UNIFORM_BUFFER",
	0x8C8E: "TRANSFORM_FEEDBACK_BUFFER",
	0x8F36: "COPY_READ_BUFFER",
	0x8F37: "COPY_WRITE_BUFFER",
	0x88E0: "STREAM_DRAW",
	0x88E1: "STREAM_READ",
	0x88E2: "STREAM_COPY",
	0x88E4: "STATIC_DRAW",
	0x88E5: "STATIC_READ",
	0x88E6: "STATIC_COPY",
	0x88E8: "DYNAMIC_DRAW",
	0x88E9: "DYNAMIC_READ",
	0x88EA: "DYNAMIC_COPY",
	0x8869: "MAX_VERTEX_ATTRIBS",
	0x8872: "MAX_TEXTURE_IMAGE_UNITS",
	0x8824: "MAX_DRAW_BUFFERS",
	0x8A2F: "MAX_UNIFORM_BUFFER_BINDINGS",
	0x8B4D: "MAX_COMBINED_TEXTURE_IMAGE_UNITS",
	0x8C8B: "MAX_TRANSFORM_FEEDBACK_SEPARATE_ATTRIBS",
	0x8CDF: "MAX_COLOR_ATTACHMENTS",
	0x8D57: "MAX_SAMPLES",
	0x85B5: "VERTEX_ARRAY_BINDING",
	0x8B30: "FRAGMENT_SHADER",
	0x8B31: "VERTEX_SHADER",
	0x8B4F: "SHADER_TYPE",
	0x8B80: "DELETE_STATUS",
	0x8B81: "COMPILE_STATUS",
	0x8B82: "LINK_STATUS",
	0x8B83: "VALIDATE_STATUS",
	0x8B84: "INFO_LOG_LENGTH",
	0x8B85: "ATTACHED_SHADERS",
	0x8B86: "ACTIVE_UNIFORMS",
	0x8B87: "ACTIVE_UNIFORM_MAX_LENGTH",
	0x8B88: "SHADER_SOURCE_LENGTH",
	0x8B89: "ACTIVE_ATTRIBUTES",
	0x8B8A: "ACTIVE_ATTRIBUTE_MAX_LENGTH",
	0x8B8D: "CURRENT_PROGRAM",
	0x8B50: "FLOAT_VEC2",
	0x8B51: "FLOAT_VEC3",
	0x8B52: "FLOAT_VEC4",
	0x8B53: "INT_VEC2",
	0x8B54: "INT_VEC3",
	0x8B55: "INT_VEC4",
	0x8B56: "BOOL",
	0x8B57: "BOOL_VEC2",
	0x8B58: "BOOL_VEC3",
	0x8B59: "BOOL_VEC4",
	0x8B5A: "FLOAT_MAT2",
	0x8B5B: "FLOAT_MAT3",
	0x8B5C: "FLOAT_MAT4",
	0x8B5E: "SAMPLER_2D",
	0x8B5F: "SAMPLER_3D",
	0x8B60: "SAMPLER_CUBE",
	0x8DC1: "SAMPLER_2D_ARRAY",
	0x8D66: "SAMPLER_EXTERNAL_OES",
	0x8DC6: "UNSIGNED_INT_VEC2",
	0x8DC7: "UNSIGNED_INT_VEC3",
	0x8DC8: "UNSIGNED_INT_VEC4",
	0x8D40: "FRAMEBUFFER",
	0x8D41: "RENDERBUFFER",
	0x8CA8: "READ_FRAMEBUFFER",
	0x8CA9: "DRAW_FRAMEBUFFER",
	0x8CA6: "FRAMEBUFFER_BINDING",
	0x8CA7: "RENDERBUFFER_BINDING",
	0x8CAA: "READ_FRAMEBUFFER_BINDING",
	0x8CE0: "COLOR_ATTACHMENT0",
	0x8CE1: "COLOR_ATTACHMENT1",
	0x8CE2: "COLOR_ATTACHMENT2",
	0x8CE3: "COLOR_ATTACHMENT3",
	0x8D00: "DEPTH_ATTACHMENT",
	0x8D20: "STENCIL_ATTACHMENT",
	0x821A: "DEPTH_STENCIL_ATTACHMENT",
	0x8CD5: "FRAMEBUFFER_COMPLETE",
	0x8CD6: "FRAMEBUFFER_INCOMPLETE_ATTACHMENT",
	0x8CD7: "FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT",
	0x8CD9: "FRAMEBUFFER_INCOMPLETE_DIMENSIONS",
	0x8CDD: "FRAMEBUFFER_UNSUPPORTED",
	0x8D56: "FRAMEBUFFER_INCOMPLETE_MULTISAMPLE",
	0x8CAB: "RENDERBUFFER_SAMPLES",
	0x8866: "QUERY_RESULT",
	0x8867: "QUERY_RESULT_AVAILABLE",
	0x88BF: "TIME_ELAPSED",
	0x8C88: "TRANSFORM_FEEDBACK_PRIMITIVES_WRITTEN",
	0x8C2F: "ANY_SAMPLES_PASSED",
	0x8D6A: "ANY_SAMPLES_PASSED_CONSERVATIVE",
	0x8E28: "TIMESTAMP",
	0x8E22: "TRANSFORM_FEEDBACK",
	0x9118: "UNSIGNALED",
	0x9119: "SIGNALED",
	0x911A: "ALREADY_SIGNALED",
	0x911B: "TIMEOUT_EXPIRED",
	0x911C: "CONDITION_SATISFIED",
	0x911D: "WAIT_FAILED",
	0x9117: "SYNC_GPU_COMMANDS_COMPLETE",
}

func (e Enum) String() string {
	if n, ok := names[e]; ok {
		return "GL_" + n
	}
	return fmt.Sprintf("GLenum(0x%04X)", uint32(e))
}

// ColorAttachment returns COLOR_ATTACHMENT0 + i.
func ColorAttachment(i int) Enum { return COLOR_ATTACHMENT0 + Enum(i) }

// TextureUnit returns TEXTURE0 + i.
func TextureUnit(i int) Enum { return TEXTURE0 + Enum(i) }
