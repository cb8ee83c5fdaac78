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

// Default constants (§6).
const (
	DefaultRange     = 10000.0 // R, radio coverage radius in meters
	MaxVelocity      = 16.67   // V_MAX, m/s
	MinBitrate       = 32      // bit/s
	MaxBitrate       = 37000   // bit/s
	SpeedOfLight     = 3e8     // c, m/s
	LossAlpha        = 0.3     // loss-model exponent coefficient

	ScanInterval = 5 * time.Second  // T_SCAN, beacon period
	MapTimeout   = 5 * time.Second  // T_TIMEOUT, LocalMap entry expiry
	RouteTTL     = 60 * time.Second // RoutingEntry TTL
	MaxHops      = 10               // RREQ hop cap

	TickInterval = 100 * time.Millisecond // node control-loop cadence
)
