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

// Package channel implements the NetworkSimulator: the radio-channel
// abstraction a node transmits frames through. It knows nothing about
// routing or protocol semantics; it only models range, loss and delay
// between registered peers and delivers surviving frames in
// (delivery_time, seq) order.
package channel

import (
	"github.com/Rimk4/SONetwork/core"
)

// Peer is the channel's view of a node: enough to place it in space and
// hand it a delivered frame. node.Node implements this interface; the
// channel package never imports node, avoiding a import cycle.
type Peer interface {
	ID() int32
	Position() core.Position
	Bitrate() float64
	ReceiveFrame(f core.Frame)
}
