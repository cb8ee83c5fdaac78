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
	"time"

	"github.com/Rimk4/SONetwork/core"
)

// ReceiveFrame implements channel.Peer: it is invoked by the Channel's
// Tick from outside the node's own control-loop goroutine, so it must
// not assume tick-local state beyond what its own locking protects.
func (n *Node) ReceiveFrame(f core.Frame) {
	if !f.VerifyCRC() {
		n.publish(core.EvFrameRejected, f.SenderID, "bad crc")
		return
	}
	now := n.clock.Now()

	if f.Kind.PositionBearing() {
		if pos, _, err := core.DecodePositionRecord(f.Payload); err == nil {
			n.local.Upsert(f.SenderID, pos, now)
			n.publish(core.EvNeighborSeen, f.SenderID, nil)
		}
	}

	switch f.Kind {
	case core.Beacon:
		n.handleBeacon(f, now)
	case core.Ack:
		n.upsertDirectNeighbor(f.SenderID, now)
	case core.Rreq:
		n.handleRREQ(f, now)
	case core.Rrep:
		n.handleRREP(f, now)
	case core.Data:
		n.handleData(f, now)
	case core.Error:
		n.publish(core.EvFrameRejected, f.SenderID, "error frame")
	default:
		n.log.Warnw("discarding unknown frame kind", "kind", f.Kind)
		n.publish(core.EvFrameRejected, f.SenderID, "unknown kind")
	}
}

// handleBeacon replies with an ACK carrying our own position and
// upserts a direct (metric=1) route to the sender (§4.3.3).
func (n *Node) handleBeacon(f core.Frame, now time.Time) {
	payload := core.EncodePositionRecord(n.Position(), now)
	ack := core.NewFrame(core.Ack, n.id, &f.SenderID, payload, int32(core.GetConfig().MaxHops), 0, now, nil)
	n.channel.Transmit(ack, n.id, f.SenderID)
	n.upsertDirectNeighbor(f.SenderID, now)
}

// upsertDirectNeighbor records a directly observed neighbor as a
// metric=1 route (§4.3.7).
func (n *Node) upsertDirectNeighbor(sender int32, now time.Time) {
	cfg := core.GetConfig()
	before, hadRoute := n.routes.Get(sender, now)
	n.routes.Upsert(sender, sender, 1, now, cfg.RouteTTL)
	if !hadRoute {
		n.publish(core.EvRouteLearned, sender, nil)
		n.flushDelayed(sender, now)
	} else if before.Metric > 1 {
		n.publish(core.EvRouteUpdated, sender, nil)
		n.flushDelayed(sender, now)
	}
}

// handleData implements the DATA branch of §4.3.3: deliver locally if
// we are the destination, otherwise forward along the known route or
// drop if none exists.
func (n *Node) handleData(f core.Frame, now time.Time) {
	if f.Destination != nil && *f.Destination == n.id {
		n.publish(core.EvDataDelivered, f.SenderID, string(f.Payload))
		return
	}
	if f.Destination == nil {
		n.publish(core.EvFrameRejected, f.SenderID, "data without destination")
		return
	}
	entry, ok := n.routes.Get(*f.Destination, now)
	if !ok {
		n.publish(core.EvDataDropped, *f.Destination, "no route")
		n.log.Infow("dropping data frame, no route", "dest", *f.Destination)
		return
	}
	n.channel.Transmit(f, n.id, entry.NextHop)
}
