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

package channel

import "container/heap"

// Tick drains every delivery whose scheduled time has passed as of a
// single read of the clock, handing each surviving frame to its
// receiver. Reading now() once at entry (rather than per-pop) keeps
// tick from starving frames enqueued while it runs (§4.2).
//
// A delivery whose receiver has since been removed is silently
// discarded; Tick is idempotent on an empty queue.
func (c *Channel) Tick() {
	c.mu.Lock()
	now := c.clock.Now()
	var due []*delivery
	for c.queue.Len() > 0 && !c.queue[0].at.After(now) {
		due = append(due, heap.Pop(&c.queue).(*delivery))
	}
	// snapshot receivers while still holding the lock; ReceiveFrame runs
	// outside it so a node processing a frame can itself call Transmit
	// without deadlocking against this same mutex.
	type handoff struct {
		peer  Peer
		frame *delivery
	}
	var handoffs []handoff
	for _, d := range due {
		if p, ok := c.nodes[d.receiver]; ok {
			handoffs = append(handoffs, handoff{peer: p, frame: d})
		}
	}
	c.mu.Unlock()

	for _, h := range handoffs {
		h.peer.ReceiveFrame(h.frame.frame)
	}
}
