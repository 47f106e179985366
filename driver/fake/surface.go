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

package fake

import "github.com/google/gpucmd/driver"

var (
	_ driver.Surface         = (*Surface)(nil)
	_ driver.SyncPointWaiter = (*SyncPoints)(nil)
)

// Surface is a fake presentation surface.
type Surface struct {
	Width, Height int32
	Offscreen     bool
	Flipped       bool
	Defer         bool
	FailSwap      bool
	Swaps         int
	Resizes       int
}

func (s *Surface) Size() (int32, int32) { return s.Width, s.Height }
func (s *Surface) IsOffscreen() bool    { return s.Offscreen }
func (s *Surface) BuffersFlipped() bool { return s.Flipped }
func (s *Surface) DeferDraws() bool     { return s.Defer }

func (s *Surface) Resize(width, height int32, hasAlpha bool) bool {
	s.Resizes++
	s.Width, s.Height = width, height
	return true
}

func (s *Surface) SwapBuffers() driver.SwapResult {
	s.Swaps++
	if s.FailSwap {
		return driver.SwapFailed
	}
	return driver.SwapAck
}

// SyncPoints is a fake sync point service. Tokens are released once the
// test marks them with Reach.
type SyncPoints struct {
	// Released is the last release count this decoder reported.
	Released uint64
	reached  map[driver.SyncToken]bool
}

// Reach marks the release point named by token as reached.
func (s *SyncPoints) Reach(token driver.SyncToken) {
	if s.reached == nil {
		s.reached = map[driver.SyncToken]bool{}
	}
	s.reached[token] = true
}

func (s *SyncPoints) Release(release uint64) { s.Released = release }

func (s *SyncPoints) IsReleased(token driver.SyncToken) bool { return s.reached[token] }
