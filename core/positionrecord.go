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
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EncodePositionRecord builds the BEACON/ACK self-position payload:
// ASCII "x,y,epoch_seconds".
func EncodePositionRecord(pos Position, at time.Time) []byte {
	epoch := float64(at.UnixNano()) / 1e9
	return []byte(fmt.Sprintf("%g,%g,%g", pos.X, pos.Y, epoch))
}

// DecodePositionRecord parses a position-record payload.
func DecodePositionRecord(payload []byte) (Position, time.Time, error) {
	parts := strings.Split(string(payload), ",")
	if len(parts) != 3 {
		return Position{}, time.Time{}, fmt.Errorf("decode position record: want 3 fields, got %d", len(parts))
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Position{}, time.Time{}, fmt.Errorf("decode position record: x: %w", err)
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Position{}, time.Time{}, fmt.Errorf("decode position record: y: %w", err)
	}
	epoch, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return Position{}, time.Time{}, fmt.Errorf("decode position record: timestamp: %w", err)
	}
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * 1e9)
	return Position{X: x, Y: y}, time.Unix(sec, nsec), nil
}

// PositionBearing reports whether a frame kind carries a position
// record payload that should update the receiver's local map.
func (k FrameKind) PositionBearing() bool {
	return k == Beacon || k == Ack
}
