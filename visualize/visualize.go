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

// Package visualize implements the VisualizationSink seam of §4.4: it
// consumes a read-only Snapshot and emits an image artifact path. The
// reference Sink renders to SVG; the core never depends on this
// package, only the reverse.
package visualize

import "github.com/Rimk4/SONetwork/core"

// NodePosition is one entry of a rendered snapshot.
type NodePosition struct {
	NodeID   int32
	Position core.Position
	Range    float64
}

// Snapshot is the read-only view a Sink renders: every node's position
// and coverage radius, plus an optional observer to highlight.
type Snapshot struct {
	Nodes       []NodePosition
	ObserverID  int32
	HasObserver bool
}

// Sink renders a Snapshot to an image artifact, returning its path.
type Sink interface {
	Render(snap Snapshot) (path string, err error)
}
