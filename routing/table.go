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

// Package routing holds the per-node data stores with TTL-based expiry:
// the RoutingTable (destination -> next hop), the LocalMap (node ->
// last-seen position) and the DelayedFrames queue of frames awaiting a
// route. All three are owned exclusively by a single node.Node; the
// mutex on each guards against concurrent access from the node's
// control loop, its frame-receive path (called from the channel's tick
// goroutine) and external readers such as a command-sink snapshot.
package routing

import (
	"sort"
	"sync"
	"time"
)

// Entry is a routing-table record: destination, next hop, expiry and a
// lower-is-better metric (effective hop count).
type Entry struct {
	Destination int32
	NextHop     int32
	ExpireTime  time.Time
	Metric      float64
}

// Expired reports whether the entry is past its expiry at 'now'.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpireTime.After(now)
}

//----------------------------------------------------------------------

// Table is a node's routing table: destination -> Entry.
type Table struct {
	mu   sync.RWMutex
	self int32
	recs map[int32]*Entry
}

// NewTable creates an empty routing table for node 'self'.
func NewTable(self int32) *Table {
	return &Table{self: self, recs: make(map[int32]*Entry)}
}

// Upsert applies the routing-table update rule (§4.3.7): insert if
// absent, otherwise replace only if the existing entry is expired or
// the new metric is strictly lower. A node never routes to itself: a
// destination equal to self is silently ignored (invariant I6).
func (t *Table) Upsert(dest, nextHop int32, metric float64, now time.Time, ttl time.Duration) {
	if dest == t.self {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	expire := now.Add(ttl)
	existing, ok := t.recs[dest]
	if !ok || existing.Expired(now) || metric < existing.Metric {
		t.recs[dest] = &Entry{Destination: dest, NextHop: nextHop, ExpireTime: expire, Metric: metric}
	}
}

// Get returns the entry for dest if present and not expired (I1: an
// expired entry is pruned before it is ever observed).
func (t *Table) Get(dest int32, now time.Time) (Entry, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.recs[dest]
	if !ok || e.Expired(now) {
		return Entry{}, false
	}
	return *e, true
}

// ExpirePast removes every entry whose expire_time <= now and returns
// the destinations that were removed.
func (t *Table) ExpirePast(now time.Time) (removed []int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for dest, e := range t.recs {
		if e.Expired(now) {
			delete(t.recs, dest)
			removed = append(removed, dest)
		}
	}
	return
}

// RemoveDestination deletes the entry for dest unconditionally, used
// when the destination's LocalMap entry expired too (§4.3.1 step 1).
func (t *Table) RemoveDestination(dest int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.recs, dest)
}

// Snapshot returns a copy of all (non-expired, at the time of the call)
// entries sorted by destination, for the 'route' command and tests.
func (t *Table) Snapshot(now time.Time) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	list := make([]Entry, 0, len(t.recs))
	for _, e := range t.recs {
		if !e.Expired(now) {
			list = append(list, *e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Destination < list[j].Destination })
	return list
}

// Len returns the number of entries currently stored (including any not
// yet pruned), used for diagnostics only.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.recs)
}
