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

package routing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rimk4/SONetwork/core"
)

func TestLocalMapUpsertAndGet(t *testing.T) {
	m := NewLocalMap()
	now := time.Unix(1000, 0)
	m.Upsert(7, core.Position{X: 1, Y: 2}, now)

	s, ok := m.Get(7)
	require.True(t, ok)
	assert.Equal(t, core.Position{X: 1, Y: 2}, s.Position)
	assert.Equal(t, now, s.LastSeen)
}

func TestLocalMapExpireBefore(t *testing.T) {
	m := NewLocalMap()
	t0 := time.Unix(1000, 0)
	m.Upsert(1, core.Position{}, t0)
	m.Upsert(2, core.Position{}, t0.Add(10*time.Second))

	removed := m.ExpireBefore(t0.Add(11*time.Second), 5*time.Second)
	assert.Equal(t, []int32{1}, removed)
	assert.Equal(t, 1, m.Len())
}

func TestLocalMapSnapshotSorted(t *testing.T) {
	m := NewLocalMap()
	now := time.Unix(1000, 0)
	m.Upsert(9, core.Position{}, now)
	m.Upsert(3, core.Position{}, now)

	snap := m.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, int32(3), snap[0].NodeID)
	assert.Equal(t, int32(9), snap[1].NodeID)
}
