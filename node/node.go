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

// Package node implements the P2PNode: the protocol state machine that
// owns a single peer's position, routing table, local map and delayed
// frame queue, and drives them from a fixed-cadence control loop.
package node

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Rimk4/SONetwork/core"
	"github.com/Rimk4/SONetwork/routing"
)

// Transmitter is the channel seam a node sends frames through. It is
// the node package's view of channel.Channel; node never imports
// channel, avoiding an import cycle.
type Transmitter interface {
	Transmit(frame core.Frame, senderID, receiverID int32) bool
	Peers() []int32
}

// CommandSink is a non-blocking source of operator commands. TryNext
// returns ok=false when no command is currently pending.
type CommandSink interface {
	TryNext() (line string, ok bool)
	Publish(text string)
}

// Node is a P2PNode: it owns its NodeState, RoutingTable, LocalMap and
// DelayedFrames exclusively. The control-loop goroutine and
// ReceiveFrame, which the channel calls from its own tick goroutine,
// both write routes, local and delayed; each of those stores carries
// its own lock.
type Node struct {
	id      int32
	clock   core.Clock
	channel Transmitter
	log     *zap.SugaredLogger

	mu    sync.RWMutex // guards state (position) for external readers only
	state core.NodeState

	routes  *routing.Table
	local   *routing.LocalMap
	delayed *routing.Delayed

	bitrate float64

	lastBeacon atomic.Int64 // unix nanos, set only by the control loop

	cmd      CommandSink
	events   core.Listener
	stopFlag atomic.Bool

	discoveryMu sync.Mutex
	inFlight    map[int32]struct{} // destinations with a discovery already in flight

	seenReq *dedupCache // RREQ rebroadcast dedup, see rreq.go
}

// Config bundles a new node's constructor arguments.
type Config struct {
	ID       int32
	Clock    core.Clock
	Channel  Transmitter
	Position core.Position
	Bitrate  float64
	Events   core.Listener
	Logger   *zap.SugaredLogger
	Cmd      CommandSink
	Seed     int64
}

// New creates a node at rest at cfg.Position.
func New(cfg Config) *Node {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	now := cfg.Clock.Now()
	n := &Node{
		id:      cfg.ID,
		clock:   cfg.Clock,
		channel: cfg.Channel,
		log:     logger.With("node", cfg.ID),
		state: core.NodeState{
			Position:   cfg.Position,
			LastUpdate: now,
		},
		routes:   routing.NewTable(cfg.ID),
		local:    routing.NewLocalMap(),
		delayed:  routing.NewDelayed(),
		bitrate:  cfg.Bitrate,
		cmd:      cfg.Cmd,
		events:   cfg.Events,
		inFlight: make(map[int32]struct{}),
		seenReq:  newDedupCache(cfg.Seed),
	}
	if n.bitrate <= 0 {
		n.bitrate = core.MinBitrate
	}
	return n
}

// ID implements channel.Peer.
func (n *Node) ID() int32 { return n.id }

// Position implements channel.Peer.
func (n *Node) Position() core.Position {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state.Position
}

// Bitrate implements channel.Peer.
func (n *Node) Bitrate() float64 { return n.bitrate }

// SetVelocity sets the node's current speed (m/s) and heading (radians).
func (n *Node) SetVelocity(v, dir float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.state.Velocity = v
	n.state.Direction = dir
}

// Stop requests the control loop to exit at its next iteration.
func (n *Node) Stop() { n.stopFlag.Store(true) }

// publish emits an event if a listener was configured.
func (n *Node) publish(evType int, ref int32, val any) {
	if n.events == nil {
		return
	}
	n.events(&core.Event{Type: evType, NodeID: n.id, Ref: ref, Val: val, At: n.clock.Now()})
}

// Run drives the control loop (§4.3.1) until ctx is cancelled or Stop
// is called, returning when it does so the caller's errgroup can treat
// a clean stop identically to a cancellation.
func (n *Node) Run(ctx context.Context) error {
	ticker := time.NewTicker(core.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n.stopFlag.Load() {
				return nil
			}
			n.tick()
		}
	}
}

// tick runs one control-loop iteration (§4.3.1).
func (n *Node) tick() {
	now := n.clock.Now()
	n.expire(now)
	n.integrateMotion(now)
	n.maybeBeacon(now)
	n.drainOneCommand()
}

// expire removes stale LocalMap and RoutingTable entries (step 1). An
// id dropped from LocalMap is also dropped from the routing table even
// if its route entry has not itself expired yet.
func (n *Node) expire(now time.Time) {
	cfg := core.GetConfig()
	lost := n.local.ExpireBefore(now, cfg.MapTimeout)
	for _, id := range lost {
		n.routes.RemoveDestination(id)
		n.publish(core.EvNeighborExpired, id, nil)
	}
	expired := n.routes.ExpirePast(now)
	for _, id := range expired {
		n.publish(core.EvRouteExpired, id, nil)
	}
}

// integrateMotion advances position by the configured velocity/heading
// (step 2) and refreshes the node's own local-map entry.
func (n *Node) integrateMotion(now time.Time) {
	n.mu.Lock()
	n.state.Integrate(now)
	pos := n.state.Position
	n.mu.Unlock()
	n.local.Upsert(n.id, pos, now)
}

// maybeBeacon emits a BEACON if the scan interval has elapsed (step 3).
func (n *Node) maybeBeacon(now time.Time) {
	cfg := core.GetConfig()
	last := n.lastBeacon.Load()
	if last != 0 && now.Sub(time.Unix(0, last)) < cfg.ScanInterval {
		return
	}
	n.emitBeacon(now)
	n.lastBeacon.Store(now.UnixNano())
}

// emitBeacon implements §4.3.2: broadcast a self-position record to
// every registered node other than self, mirroring the original's
// scan_neighbors (p2p_node.py:219, "for node_id in self.network.nodes").
// A fresh node's LocalMap holds only itself until it has heard a
// neighbor, so beaconing off the LocalMap snapshot would never let
// discovery bootstrap; the channel's peer registry is the set that
// actually matters here.
func (n *Node) emitBeacon(now time.Time) {
	payload := core.EncodePositionRecord(n.Position(), now)
	frame := core.NewFrame(core.Beacon, n.id, nil, payload, int32(core.GetConfig().MaxHops), 0, now, nil)
	for _, id := range n.channel.Peers() {
		if id == n.id {
			continue
		}
		n.channel.Transmit(frame, n.id, id)
	}
	n.publish(core.EvBeaconSent, -1, nil)
}

// ForceBeacon triggers an immediate BEACON emission outside the normal
// cadence, used by the 'scan' command (§4.3.8).
func (n *Node) ForceBeacon() {
	now := n.clock.Now()
	n.emitBeacon(now)
	n.lastBeacon.Store(now.UnixNano())
}

// RoutingSnapshot returns the node's current routing table.
func (n *Node) RoutingSnapshot() []routing.Entry {
	return n.routes.Snapshot(n.clock.Now())
}

// LocalMapSnapshot returns the node's current local map.
func (n *Node) LocalMapSnapshot() []routing.Sighting {
	return n.local.Snapshot()
}
