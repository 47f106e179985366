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

// Package shader translates client shader sources into sources for the
// native compiler.
package shader

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/google/gpucmd/core/fault"
	"github.com/google/gpucmd/core/log"
	"github.com/google/gpucmd/gles/gl"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// ErrBadStage is returned when translating a source for an unknown stage.
const ErrBadStage = fault.Const("Unknown shader stage")

// Result is the outcome of translating one source.
type Result struct {
	// Source is the translated source. It is empty when Valid is false.
	Source  string
	InfoLog string
	Valid   bool
}

// Translator turns a client shader source into a native one.
type Translator interface {
	Translate(ctx context.Context, stage gl.Enum, source string) (Result, error)
}

// Passthrough hands sources to the native compiler unchanged, apart from
// an optional version directive for sources that carry none.
type Passthrough struct {
	// Version is prepended to sources without a #version line.
	Version string
}

func (p Passthrough) Translate(ctx context.Context, stage gl.Enum, source string) (Result, error) {
	if stage != gl.VERTEX_SHADER && stage != gl.FRAGMENT_SHADER {
		return Result{}, errors.Wrapf(ErrBadStage, "Translating %v", stage)
	}
	if strings.IndexByte(source, 0) >= 0 {
		return Result{InfoLog: "ERROR: source contains a null character"}, nil
	}
	if p.Version != "" && !strings.HasPrefix(strings.TrimSpace(source), "#version") {
		source = p.Version + "\n" + source
	}
	return Result{Source: source, Valid: true}, nil
}

type key struct {
	stage  gl.Enum
	source string
}

// Cache remembers the results of a Translator.
type Cache struct {
	translator Translator
	cache      *lru.Cache
	hits       uint64
	misses     uint64
}

// NewCache returns a Cache holding up to size results of t.
func NewCache(t Translator, size int) (*Cache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "Creating shader cache")
	}
	return &Cache{translator: t, cache: c}, nil
}

func (c *Cache) Translate(ctx context.Context, stage gl.Enum, source string) (Result, error) {
	k := key{stage, source}
	if r, ok := c.cache.Get(k); ok {
		atomic.AddUint64(&c.hits, 1)
		return r.(Result), nil
	}
	atomic.AddUint64(&c.misses, 1)
	r, err := c.translator.Translate(ctx, stage, source)
	if err != nil {
		return r, err
	}
	if c.cache.Add(k, r) {
		log.D(ctx, "Shader cache evicted an entry")
	}
	return r, nil
}

// Stats returns the number of cache hits and misses.
func (c *Cache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}

// Len returns the number of cached results.
func (c *Cache) Len() int { return c.cache.Len() }

// Purge drops every cached result.
func (c *Cache) Purge() { c.cache.Purge() }
