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

package channel

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Rimk4/SONetwork/core"
)

// ErrDuplicateID is returned by AddNode when node_id is already registered.
var ErrDuplicateID = errors.New("channel: duplicate node id")

// Stats is the accounting counter set of §4.2; total is always
// success+failed_distance+failed_transmission (invariant I4).
type Stats struct {
	Success            uint64
	FailedDistance     uint64
	FailedTransmission uint64
}

// Total returns success + failed_distance + failed_transmission.
func (s Stats) Total() uint64 {
	return s.Success + s.FailedDistance + s.FailedTransmission
}

// Channel is the NetworkSimulator: a radio-channel model shared by every
// node in a simulation. All mutable state is guarded by a single mutex;
// critical sections never perform I/O, so they stay short (§5).
type Channel struct {
	mu    sync.Mutex
	clock core.Clock
	rng   *rand.Rand

	nodes map[int32]Peer
	queue deliveryHeap
	seq   uint64

	stats Stats

	rangeM float64 // R
}

// New creates a channel bound to clock with the default range R and an
// injected random source (so simulations are reproducible given a seed).
func New(clock core.Clock, rng *rand.Rand) *Channel {
	return &Channel{
		clock:  clock,
		rng:    rng,
		nodes:  make(map[int32]Peer),
		rangeM: core.GetConfig().Range,
	}
}

// AddNode registers a peer, failing if its id is already present.
func (c *Channel) AddNode(p Peer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.nodes[p.ID()]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, p.ID())
	}
	c.nodes[p.ID()] = p
	return nil
}

// RemoveNode unregisters id, purging any pending deliveries that
// reference it as sender or receiver. If id was never registered it
// returns false and changes nothing; the channel logs no warning.
func (c *Channel) RemoveNode(id int32) (removed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.nodes[id]; !ok {
		return false
	}
	delete(c.nodes, id)

	kept := c.queue[:0]
	for _, d := range c.queue {
		if d.sender == id || d.receiver == id {
			continue
		}
		kept = append(kept, d)
	}
	c.queue = kept
	heap.Init(&c.queue)
	return true
}

// Peers returns the ids of every currently registered node, in no
// particular order. A node's emitBeacon uses this (rather than its own
// LocalMap, which is empty until a neighbor has been heard from) to
// broadcast to every other registered node, per §4.3.2.
func (c *Channel) Peers() []int32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]int32, 0, len(c.nodes))
	for id := range c.nodes {
		ids = append(ids, id)
	}
	return ids
}

// MoveNode is a placeholder seam: in this implementation node position
// lives on the Peer itself (node.Node.Position reads its own
// NodeState), so the channel never caches position and there is
// nothing here to update. Kept to mirror the interface of §4.2; it
// exists so callers written against the spec's shape compile unchanged
// if a future Peer implementation caches position in the channel.
func (c *Channel) MoveNode(id int32, _ core.Position) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.nodes[id]; !ok {
		return fmt.Errorf("channel: move unknown node %d", id)
	}
	return nil
}

// Stats returns a copy of the current accounting counters.
func (c *Channel) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Counts implements metrics.StatsSource without the metrics package
// needing to import channel's Stats type.
func (c *Channel) Counts() (success, failedDistance, failedTransmission, total uint64) {
	s := c.Stats()
	return s.Success, s.FailedDistance, s.FailedTransmission, s.Total()
}

// Transmit attempts to send frame from senderID to receiverID. It
// applies the range check, then the loss model, then schedules a
// delivery event on success. The boolean result mirrors the spec's
// "returns a boolean success"; the corresponding counter is always
// incremented regardless of outcome.
func (c *Channel) Transmit(frame core.Frame, senderID, receiverID int32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	sender, sOK := c.nodes[senderID]
	receiver, rOK := c.nodes[receiverID]
	if !sOK || !rOK {
		c.stats.FailedTransmission++
		return false
	}

	d := sender.Position().Distance(receiver.Position())
	if d > c.rangeM {
		c.stats.FailedDistance++
		return false
	}

	payloadSize := len(frame.Payload)
	p := transmissionProbability(d, c.rangeM, payloadSize, sender.Bitrate())
	if c.rng.Float64() > p {
		c.stats.FailedTransmission++
		return false
	}

	delay := transmissionDelay(payloadSize, sender.Bitrate(), d, c.rng)
	c.seq++
	heap.Push(&c.queue, &delivery{
		at:       c.clock.Now().Add(delay),
		seq:      c.seq,
		sender:   senderID,
		receiver: receiverID,
		frame:    frame,
	})
	c.stats.Success++
	return true
}

// transmissionProbability implements the loss model of §4.2, clamping
// the size and bitrate error factors to [0, 1] (open question in §9:
// very large payloads or high bitrates can otherwise drive p negative).
// payloadSize is len(frame.Payload), not the wire-encoded frame size —
// the spec's and original's (network_simulator.py) size penalty is
// keyed off the application payload alone.
func transmissionProbability(d, rangeM float64, payloadSize int, bitrate float64) float64 {
	base := math.Exp(-core.LossAlpha * d / rangeM)
	sizeFactor := 1 - 0.1*math.Min(1, float64(payloadSize)/1024)
	rateFactor := 1 - 0.05*math.Min(1, bitrate/10000)
	p := base * clamp01(sizeFactor) * clamp01(rateFactor)
	return clamp01(p)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// transmissionDelay implements the delay model of §4.2: (t_tx + t_prop)
// scaled by a uniform jitter factor in [0.9, 1.1]. The transmitted byte
// count is 14 (4+2+8, the original's framing overhead) plus the
// payload, matching network_simulator.py:89's
// frame_size = 4 + len(frame.payload) + 2 + 8 — not the wire-encoded
// header this module's own frame.go uses for persistence/CRC.
func transmissionDelay(payloadSize int, bitrate, distance float64, rng *rand.Rand) time.Duration {
	const framingOverhead = 4 + 2 + 8
	bits := float64(8 * (framingOverhead + payloadSize))
	if bitrate <= 0 {
		bitrate = core.MinBitrate
	}
	tTx := bits / bitrate
	tProp := distance / core.SpeedOfLight
	jitter := 0.9 + 0.2*rng.Float64()
	seconds := (tTx + tProp) * jitter
	return time.Duration(seconds * float64(time.Second))
}
