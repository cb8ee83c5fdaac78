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
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/bfix/gospel/data"

	"github.com/Rimk4/SONetwork/core"
)

// metaInt reads an integer metadata field that may have round-tripped
// through JSON as a float64.
func metaInt(meta map[string]any, key string) (int32, bool) {
	v, ok := meta[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int32(n), true
	case int32:
		return n, true
	case int:
		return int32(n), true
	default:
		return 0, false
	}
}

// dedupCache suppresses repeated RREQ rebroadcasts for a (source,
// target) pair we've already forwarded within the current T_SCAN
// window. It is a pure performance layer
// over the hop-count cap, which is what actually bounds the flood
// (§4.3.4): a false positive here at worst skips a redundant
// rebroadcast that the cap would have stopped a few hops later anyway.
type dedupCache struct {
	mu   sync.Mutex
	seed uint32
	seen *data.SaltedBloomFilter
	n    int

	since time.Time // start of the current T_SCAN window
}

const dedupCapacity = 256

func newDedupCache(seedHint int64) *dedupCache {
	salt := uint32(seedHint) ^ 0x9e3779b9
	return &dedupCache{
		seed: salt,
		seen: data.NewSaltedBloomFilter(salt, dedupCapacity, 1.0/float64(dedupCapacity)),
	}
}

func dedupKey(source, target int32) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint32(b[0:4], uint32(source))
	binary.BigEndian.PutUint32(b[4:8], uint32(target))
	return b
}

// seenOrMark reports whether (source, target) was already forwarded in
// the current T_SCAN window; if not, it marks it seen and returns
// false. The filter is cleared once a window has elapsed.
func (c *dedupCache) seenOrMark(source, target int32, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if now.Sub(c.since) >= core.GetConfig().ScanInterval {
		c.seen = data.NewSaltedBloomFilter(c.seed, dedupCapacity, 1.0/float64(dedupCapacity))
		c.n = 0
		c.since = now
	}
	key := dedupKey(source, target)
	if c.seen.Contains(key) {
		return true
	}
	c.seen.Add(key)
	c.n++
	return false
}

// handleRREQ implements §4.3.4.
func (n *Node) handleRREQ(f core.Frame, now time.Time) {
	source, _ := metaInt(f.Metadata, "source_id")
	target, _ := metaInt(f.Metadata, "target_id")
	maxHops, _ := metaInt(f.Metadata, "max_hops")
	if maxHops == 0 {
		maxHops = int32(core.GetConfig().MaxHops)
	}
	hp := f.HopCount + 1

	// 1. loop suppression on echo
	if f.SenderID == n.id {
		return
	}
	// 2. we are the target: reply directly
	if target == n.id {
		n.sendRREP(f.SenderID, source, target, hp, now)
		return
	}
	// 3. we already know a route to the target: synthesize a reply
	if entry, ok := n.routes.Get(target, now); ok {
		n.sendRREP(f.SenderID, source, target, hp+int32(entry.Metric), now)
		return
	}
	// 4. hop cap reached: drop
	if hp >= maxHops {
		return
	}
	// 5. rebroadcast, once per (source, target) pair per T_SCAN window
	if n.seenReq.seenOrMark(source, target, now) {
		return
	}
	n.publish(core.EvRouteDiscovery, target, source)
	meta := map[string]any{"source_id": source, "target_id": target, "max_hops": maxHops}
	for _, s := range n.local.Snapshot() {
		if s.NodeID == n.id || s.NodeID == f.SenderID {
			continue
		}
		rreq := core.NewFrame(core.Rreq, n.id, nil, nil, maxHops, hp, now, meta)
		n.channel.Transmit(rreq, n.id, s.NodeID)
	}
}

// sendRREP replies to a resolved RREQ. dest is the node whose route was
// just resolved (the RREQ's target_id); requester is the original
// searcher (the RREQ's source_id) the reply must eventually reach.
// hopCount is the RREQ's hop count plus one, plus this node's own
// route metric to dest when it is not dest itself. The reply itself
// hops back toward requester one neighbor at a time via nextHop.
func (n *Node) sendRREP(nextHop, requester, dest, hopCount int32, now time.Time) {
	meta := map[string]any{"dest_id": dest, "requester_id": requester, "hop_count": hopCount}
	rrep := core.NewFrame(core.Rrep, n.id, &nextHop, nil, int32(core.GetConfig().MaxHops), 0, now, meta)
	n.channel.Transmit(rrep, n.id, nextHop)
}

// handleRREP implements §4.3.5. Each hop back toward the requester both
// relays the reply and upserts a route to dest via the node it just
// heard the reply from (frame.sender), so every intermediate hop — not
// just the requester — ends up with a working route to dest too.
func (n *Node) handleRREP(f core.Frame, now time.Time) {
	dest, _ := metaInt(f.Metadata, "dest_id")
	requester, _ := metaInt(f.Metadata, "requester_id")
	hopCount, _ := metaInt(f.Metadata, "hop_count")

	cfg := core.GetConfig()
	before, hadRoute := n.routes.Get(dest, now)
	n.routes.Upsert(dest, f.SenderID, float64(hopCount), now, cfg.RouteTTL)
	if !hadRoute {
		n.publish(core.EvRouteLearned, dest, nil)
	} else if before.Metric > float64(hopCount) {
		n.publish(core.EvRouteUpdated, dest, nil)
	}
	n.flushDelayed(dest, now)

	if requester == n.id {
		return
	}
	entry, ok := n.routes.Get(requester, now)
	if !ok {
		n.publish(core.EvFrameRejected, f.SenderID, fmt.Sprintf("rrep for unreachable requester %d", requester))
		return
	}
	meta := map[string]any{"dest_id": dest, "requester_id": requester, "hop_count": hopCount + 1}
	fwd := core.NewFrame(core.Rrep, n.id, &entry.NextHop, nil, int32(cfg.MaxHops), 0, now, meta)
	n.channel.Transmit(fwd, n.id, entry.NextHop)
}
