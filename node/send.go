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

package node

import (
	"errors"
	"time"

	"github.com/Rimk4/SONetwork/core"
)

// ErrSelfDestination is returned by Send when asked to send to self.
var ErrSelfDestination = errors.New("node: cannot send to self")

// Send implements §4.3.6: resolve a route if one exists, otherwise
// queue the payload and kick off route discovery.
func (n *Node) Send(destination int32, payload []byte) error {
	if destination == n.id {
		return ErrSelfDestination
	}
	now := n.clock.Now()
	frame := core.NewFrame(core.Data, n.id, &destination, payload, int32(core.GetConfig().MaxHops), 0, now, nil)

	entry, ok := n.routes.Get(destination, now)
	if !ok {
		n.queueAndDiscover(destination, frame, now)
		return nil
	}
	if !n.channel.Transmit(frame, n.id, entry.NextHop) {
		n.queueAndDiscover(destination, frame, now)
	}
	return nil
}

// queueAndDiscover appends frame to the delayed queue for destination
// and, if no discovery is already in flight for it, initiates one.
func (n *Node) queueAndDiscover(destination int32, frame core.Frame, now time.Time) {
	n.delayed.Push(destination, frame)
	n.discoveryMu.Lock()
	_, inFlight := n.inFlight[destination]
	if !inFlight {
		n.inFlight[destination] = struct{}{}
	}
	n.discoveryMu.Unlock()
	if !inFlight {
		n.startRouteDiscovery(destination, now)
	}
}

// startRouteDiscovery transmits an RREQ to every known neighbor.
func (n *Node) startRouteDiscovery(destination int32, now time.Time) {
	meta := map[string]any{"source_id": n.id, "target_id": destination, "max_hops": int32(core.GetConfig().MaxHops)}
	n.publish(core.EvRouteDiscovery, destination, n.id)
	for _, s := range n.local.Snapshot() {
		if s.NodeID == n.id {
			continue
		}
		rreq := core.NewFrame(core.Rreq, n.id, nil, nil, int32(core.GetConfig().MaxHops), 0, now, meta)
		n.channel.Transmit(rreq, n.id, s.NodeID)
	}
}

// flushDelayed retries every frame queued for destination now that a
// usable route exists (§4.3.6). Frames that still fail to transmit
// stay queued for a later attempt.
func (n *Node) flushDelayed(destination int32, now time.Time) {
	entry, ok := n.routes.Get(destination, now)
	if !ok {
		return
	}
	frames := n.delayed.Drain(destination)
	if len(frames) == 0 {
		return
	}
	n.discoveryMu.Lock()
	delete(n.inFlight, destination)
	n.discoveryMu.Unlock()

	var retry []core.Frame
	for _, f := range frames {
		if !n.channel.Transmit(f, n.id, entry.NextHop) {
			retry = append(retry, f)
		}
	}
	for _, f := range retry {
		n.delayed.Push(destination, f)
	}
}
