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

import "time"

// Event types published by a node's protocol state machine, so
// observers (CLI, tests, metrics) subscribe through a
// Listener instead of polling internal state.
const (
	EvBeaconSent      = 1  // node emitted a BEACON
	EvNeighborSeen     = 2  // a BEACON/ACK updated the local map
	EvNeighborExpired  = 3  // a local-map entry timed out
	EvRouteLearned     = 4  // a new routing-table entry was inserted
	EvRouteUpdated     = 5  // an existing routing-table entry improved
	EvRouteExpired     = 6  // a routing-table entry timed out
	EvRouteDiscovery   = 7  // an RREQ was initiated or rebroadcast
	EvDataDelivered    = 8  // a DATA frame reached its destination
	EvDataDropped      = 9  // a DATA frame was dropped (no route)
	EvFrameRejected    = 10 // an unknown kind or bad CRC was discarded
)

// Event carries the peer id the event pertains to (NodeID), an optional
// reference peer (Ref, -1 if not applicable) and a type-specific
// payload (Val).
type Event struct {
	Type   int
	NodeID int32
	Ref    int32
	Val    any
	At     time.Time
}

// Listener for node events.
type Listener func(*Event)
