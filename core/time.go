//----------------------------------------------------------------------
// This file is part of leatea-routing.
// Copyright (C) 2022 Bernd Fix >Y<
//
// leatea-routing is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// leatea-routing is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package core

import (
	"sync"
	"time"
)

//----------------------------------------------------------------------
// Clock is the single time source shared by every component so that
// "now()" is never called ad-hoc. It has two modes: live (wall-clock)
// and anchored (virtual time pinned to a saved session's start point,
// advancing with real elapsed time). It is process-wide state: written
// once at construction/restore, read by everyone else thereafter.
//----------------------------------------------------------------------

// Clock supplies simulated time.
type Clock interface {
	Now() time.Time
}

// liveClock returns the wall-clock time.
type liveClock struct{}

// NewLiveClock returns a Clock backed by the system clock.
func NewLiveClock() Clock {
	return liveClock{}
}

func (liveClock) Now() time.Time {
	return time.Now()
}

//......................................................................

// anchoredClock returns t0 + (real_now - r0); used when restoring a
// saved session so relative timestamps in persisted state stay
// meaningful, and in tests that want deterministic control over time.
type anchoredClock struct {
	mu      sync.RWMutex
	t0      time.Time
	r0      time.Time
	nowFunc func() time.Time // overridable real-time source (tests)
}

// NewAnchoredClock anchors simulated time t0 to the real instant r0.
func NewAnchoredClock(t0, r0 time.Time) Clock {
	return &anchoredClock{t0: t0, r0: r0, nowFunc: time.Now}
}

func (c *anchoredClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.t0.Add(c.nowFunc().Sub(c.r0))
}

// Rebase re-anchors the clock so that simulated instant t0 corresponds
// to real instant r0. Together with SetNowFunc it lets virtual time be
// driven by hand without waiting on the wall clock.
func (c *anchoredClock) Rebase(t0, r0 time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t0, c.r0 = t0, r0
}

// SetNowFunc overrides the real-time source; used only by tests.
func (c *anchoredClock) SetNowFunc(f func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nowFunc = f
}

// AsAnchored exposes the Rebase/SetNowFunc controls for tests that
// received a Clock interface value.
func AsAnchored(c Clock) (*anchoredClock, bool) {
	a, ok := c.(*anchoredClock)
	return a, ok
}
