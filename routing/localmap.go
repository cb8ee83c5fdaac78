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
	"sort"
	"sync"
	"time"

	"github.com/Rimk4/SONetwork/core"
)

// Sighting records the last reported position of a neighbor.
type Sighting struct {
	NodeID   int32
	Position core.Position
	LastSeen time.Time
}

// LocalMap tracks the last-known position of every directly heard
// neighbor, keyed by node id. Expiry is driven externally (§4.3.1 step
// 1) rather than on a background timer, to keep the node's control loop
// the single source of time advancement.
type LocalMap struct {
	mu   sync.RWMutex
	seen map[int32]*Sighting
}

// NewLocalMap creates an empty local map.
func NewLocalMap() *LocalMap {
	return &LocalMap{seen: make(map[int32]*Sighting)}
}

// Upsert records or refreshes a neighbor sighting.
func (m *LocalMap) Upsert(nodeID int32, pos core.Position, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[nodeID] = &Sighting{NodeID: nodeID, Position: pos, LastSeen: at}
}

// Get returns the sighting for nodeID, if any.
func (m *LocalMap) Get(nodeID int32) (Sighting, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.seen[nodeID]
	if !ok {
		return Sighting{}, false
	}
	return *s, true
}

// ExpireBefore removes every sighting whose LastSeen is older than
// 'now - timeout' and returns the node ids removed, so the caller can
// also drop the corresponding routing-table entries (§4.3.1 step 1).
func (m *LocalMap) ExpireBefore(now time.Time, timeout time.Duration) (removed []int32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deadline := now.Add(-timeout)
	for id, s := range m.seen {
		if s.LastSeen.Before(deadline) {
			delete(m.seen, id)
			removed = append(removed, id)
		}
	}
	return
}

// Snapshot returns all current sightings sorted by node id.
func (m *LocalMap) Snapshot() []Sighting {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]Sighting, 0, len(m.seen))
	for _, s := range m.seen {
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].NodeID < list[j].NodeID })
	return list
}

// Len reports the number of neighbors currently tracked.
func (m *LocalMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.seen)
}
