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

package persist

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rimk4/SONetwork/core"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	now := time.Now().Truncate(time.Second).UTC()

	snap := Snapshot{
		RunID:   NewRunID(),
		SavedAt: now,
		Anchor:  now,
		Nodes: []NodeRecord{
			{ID: 1, Position: core.Position{X: 1, Y: 2}, Velocity: 3, Heading: 0.5},
		},
	}

	require.NoError(t, Save(path, snap))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, snap.RunID, loaded.RunID)
	assert.True(t, snap.SavedAt.Equal(loaded.SavedAt))
	require.Len(t, loaded.Nodes, 1)
	assert.Equal(t, int32(1), loaded.Nodes[0].ID)
	assert.Equal(t, core.Position{X: 1, Y: 2}, loaded.Nodes[0].Position)
}

func TestLoadMissingFileWrapsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "persist: read")
}

func TestNewRunIDIsUnique(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEqual(t, a, b)
}
