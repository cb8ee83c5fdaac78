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

package visualize

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rimk4/SONetwork/core"
)

func TestSVGSinkRenderWritesFile(t *testing.T) {
	dir := t.TempDir()
	sink := NewSVGSink(dir, 20000, 20000)

	snap := Snapshot{
		Nodes: []NodePosition{
			{NodeID: 1, Position: core.Position{X: 0, Y: 0}, Range: 10000},
			{NodeID: 2, Position: core.Position{X: 5000, Y: 5000}, Range: 10000},
		},
		ObserverID:  1,
		HasObserver: true,
	}

	path, err := sink.Render(snap)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestSVGSinkRenderIncrementsSequence(t *testing.T) {
	dir := t.TempDir()
	sink := NewSVGSink(dir, 1000, 1000)

	p1, err := sink.Render(Snapshot{})
	require.NoError(t, err)
	p2, err := sink.Render(Snapshot{})
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
}
