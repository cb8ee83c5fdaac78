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

package routing

import (
	"sync"

	"github.com/Rimk4/SONetwork/core"
)

// Delayed holds the DATA frames a node could not forward immediately
// because no route to their destination exists yet (§4.3.6). A route
// discovery is started on the first such frame for a destination; the
// queue is flushed once a route to it is learned. There is no discovery
// timeout: frames stay queued until a route appears.
type Delayed struct {
	mu    sync.Mutex
	queue map[int32][]core.Frame
}

// NewDelayed creates an empty delayed-frame store.
func NewDelayed() *Delayed {
	return &Delayed{queue: make(map[int32][]core.Frame)}
}

// Push appends frame to the pending queue for its destination and
// reports whether this was the first pending frame for that
// destination.
func (d *Delayed) Push(dest int32, frame core.Frame) (firstForDest bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	existing, ok := d.queue[dest]
	d.queue[dest] = append(existing, frame)
	return !ok || len(existing) == 0
}

// Drain removes and returns every frame pending for dest, in the order
// they were pushed, for immediate forwarding once a route is learned.
func (d *Delayed) Drain(dest int32) []core.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	frames := d.queue[dest]
	delete(d.queue, dest)
	return frames
}

// Pending reports how many frames are queued for dest.
func (d *Delayed) Pending(dest int32) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue[dest])
}

// Destinations returns every destination with at least one pending
// frame.
func (d *Delayed) Destinations() []int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	dests := make([]int32, 0, len(d.queue))
	for dest := range d.queue {
		dests = append(dests, dest)
	}
	return dests
}
