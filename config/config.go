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

// Package config holds the context creation attributes and decoder
// settings, read from and written to TOML.
package config

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/google/gpucmd/core/fault"
	"github.com/pkg/errors"
)

// ErrBadContextType is returned for an unknown context type.
const ErrBadContextType = fault.Const("Unknown context type")

// Context types.
const (
	OpenGLES2 = "opengles2"
	OpenGLES3 = "opengles3"
	WebGL1    = "webgl1"
	WebGL2    = "webgl2"
)

// Attributes are the creation attributes of a context.
type Attributes struct {
	// Offscreen contexts render into a decoder owned backbuffer of the given
	// size instead of a presentation surface.
	Offscreen     bool
	Width, Height int32
	AlphaSize     int32
	DepthSize     int32
	StencilSize   int32
	Samples       int32
	// PreserveBackbuffer keeps the backbuffer contents across swaps.
	PreserveBackbuffer    bool
	BindGeneratesResource bool
	// LoseContextWhenOutOfMemory turns OUT_OF_MEMORY into a lost context.
	LoseContextWhenOutOfMemory bool
	ContextType                string
}

// Decoder holds decoder behavior settings.
type Decoder struct {
	// CommandsPerSlice bounds the commands processed per DoCommands call.
	CommandsPerSlice int
	// Debug drains native errors after every command.
	Debug bool
	// LogCommands logs the name of every decoded command.
	LogCommands bool
	// TraceLevel is the highest command trace level that is traced.
	TraceLevel int
	// ShaderCacheSize is the number of translated shaders kept.
	ShaderCacheSize int
	// MemoryLimit bounds buffer storage in bytes, including the shadow
	// copies kept by the decoder. 0 is unlimited.
	MemoryLimit uint64
}

// Config is the complete configuration.
type Config struct {
	Context Attributes
	Decoder Decoder
}

// DefaultMemoryLimit is the buffer storage limit used when the
// configuration does not set one.
const DefaultMemoryLimit = 256 << 20

// Default returns the default configuration.
func Default() Config {
	return Config{
		Context: Attributes{
			Offscreen:             true,
			Width:                 256,
			Height:                256,
			AlphaSize:             8,
			DepthSize:             24,
			StencilSize:           8,
			BindGeneratesResource: true,
			ContextType:           OpenGLES3,
		},
		Decoder: Decoder{
			CommandsPerSlice: 1000,
			TraceLevel:       2,
			ShaderCacheSize:  64,
			MemoryLimit:      DefaultMemoryLimit,
		},
	}
}

// IsES3 returns true if the context exposes the ES3 command set.
func (a Attributes) IsES3() bool {
	return a.ContextType == OpenGLES3 || a.ContextType == WebGL2
}

// IsWebGL returns true for WebGL contexts.
func (a Attributes) IsWebGL() bool {
	return a.ContextType == WebGL1 || a.ContextType == WebGL2
}

// Validate checks the configuration for unusable values.
func (c Config) Validate() error {
	switch c.Context.ContextType {
	case OpenGLES2, OpenGLES3, WebGL1, WebGL2:
	default:
		return errors.Wrapf(ErrBadContextType, "Validating %q", c.Context.ContextType)
	}
	if c.Context.Offscreen && (c.Context.Width < 0 || c.Context.Height < 0) {
		return errors.Errorf("Negative offscreen size %dx%d", c.Context.Width, c.Context.Height)
	}
	if c.Decoder.CommandsPerSlice <= 0 {
		return errors.Errorf("CommandsPerSlice must be positive, got %d", c.Decoder.CommandsPerSlice)
	}
	if c.Decoder.ShaderCacheSize <= 0 {
		return errors.Errorf("ShaderCacheSize must be positive, got %d", c.Decoder.ShaderCacheSize)
	}
	return nil
}

// Decode reads a configuration from r. Missing keys keep their defaults.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return c, errors.Wrap(err, "Decoding config")
	}
	return c, c.Validate()
}

// Load reads the configuration file at path. Missing keys keep their
// defaults.
func Load(path string) (Config, error) {
	c := Default()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return c, errors.Wrapf(err, "Loading config %v", path)
	}
	return c, c.Validate()
}

// Write encodes c to w.
func Write(w io.Writer, c Config) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(c), "Writing config")
}
