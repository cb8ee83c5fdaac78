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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rimk4/SONetwork/core"
)

// fakeTransmitter hands every transmitted frame straight to the
// registered receiver, synchronously, so tests can exercise the
// protocol state machine without a real Channel or its delay model.
type fakeTransmitter struct {
	peers map[int32]*Node
	drop  map[int32]bool // receivers to simulate a transmit failure for
}

func newFakeTransmitter() *fakeTransmitter {
	return &fakeTransmitter{peers: make(map[int32]*Node), drop: make(map[int32]bool)}
}

func (t *fakeTransmitter) Transmit(frame core.Frame, senderID, receiverID int32) bool {
	if t.drop[receiverID] {
		return false
	}
	peer, ok := t.peers[receiverID]
	if !ok {
		return false
	}
	peer.ReceiveFrame(frame)
	return true
}

func (t *fakeTransmitter) Peers() []int32 {
	ids := make([]int32, 0, len(t.peers))
	for id := range t.peers {
		ids = append(ids, id)
	}
	return ids
}

func newTestNode(id int32, pos core.Position, clock core.Clock, tr *fakeTransmitter) *Node {
	n := New(Config{
		ID:       id,
		Clock:    clock,
		Channel:  tr,
		Position: pos,
		Bitrate:  10000,
		Seed:     int64(id),
	})
	tr.peers[id] = n
	return n
}

func TestNodeHandleBeaconRepliesWithAckAndLearnsRoute(t *testing.T) {
	clock := core.NewLiveClock()
	now := clock.Now()
	tr := newFakeTransmitter()
	a := newTestNode(1, core.Position{X: 0, Y: 0}, clock, tr)
	b := newTestNode(2, core.Position{X: 10, Y: 0}, clock, tr)

	payload := core.EncodePositionRecord(b.Position(), now)
	beacon := core.NewFrame(core.Beacon, 2, nil, payload, 10, 0, now, nil)
	a.ReceiveFrame(beacon)

	entry, ok := a.routes.Get(2, now)
	require.True(t, ok)
	assert.Equal(t, int32(2), entry.NextHop)
	assert.Equal(t, 1.0, entry.Metric)

	// b should have received the ACK a sent back.
	_, ok = b.routes.Get(1, now)
	assert.True(t, ok)
}

func TestNodeHandleDataDeliversToSelf(t *testing.T) {
	clock := core.NewLiveClock()
	now := clock.Now()
	tr := newFakeTransmitter()
	a := newTestNode(1, core.Position{}, clock, tr)

	var delivered string
	a.events = func(e *core.Event) {
		if e.Type == core.EvDataDelivered {
			delivered = e.Val.(string)
		}
	}

	dest := int32(1)
	data := core.NewFrame(core.Data, 9, &dest, []byte("hello"), 10, 0, now, nil)
	a.ReceiveFrame(data)
	assert.Equal(t, "hello", delivered)
}

func TestNodeHandleDataForwardsToKnownRoute(t *testing.T) {
	clock := core.NewLiveClock()
	now := clock.Now()
	tr := newFakeTransmitter()
	a := newTestNode(1, core.Position{}, clock, tr)
	c := newTestNode(3, core.Position{}, clock, tr)

	a.routes.Upsert(3, 3, 1, now, time.Minute)

	var delivered string
	c.events = func(e *core.Event) {
		if e.Type == core.EvDataDelivered {
			delivered = e.Val.(string)
		}
	}

	dest := int32(3)
	data := core.NewFrame(core.Data, 9, &dest, []byte("hi"), 10, 0, now, nil)
	a.ReceiveFrame(data)
	assert.Equal(t, "hi", delivered)
}

func TestNodeHandleDataDropsWhenNoRoute(t *testing.T) {
	clock := core.NewLiveClock()
	now := clock.Now()
	tr := newFakeTransmitter()
	a := newTestNode(1, core.Position{}, clock, tr)

	var dropped bool
	a.events = func(e *core.Event) {
		if e.Type == core.EvDataDropped {
			dropped = true
		}
	}

	dest := int32(99)
	data := core.NewFrame(core.Data, 9, &dest, []byte("hi"), 10, 0, now, nil)
	a.ReceiveFrame(data)
	assert.True(t, dropped)
}

func TestNodeSendQueuesAndStartsDiscoveryWhenNoRoute(t *testing.T) {
	clock := core.NewLiveClock()
	tr := newFakeTransmitter()
	a := newTestNode(1, core.Position{X: 0, Y: 0}, clock, tr)
	b := newTestNode(2, core.Position{X: 10, Y: 0}, clock, tr)
	a.local.Upsert(2, b.Position(), clock.Now())

	err := a.Send(5, []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, 1, a.delayed.Pending(5))
	_, discovering := a.inFlight[5]
	assert.True(t, discovering)
}

func TestNodeSendRejectsSelf(t *testing.T) {
	clock := core.NewLiveClock()
	tr := newFakeTransmitter()
	a := newTestNode(1, core.Position{}, clock, tr)

	err := a.Send(1, []byte("hi"))
	assert.ErrorIs(t, err, ErrSelfDestination)
}

func TestNodeThreeHopRouteDiscovery(t *testing.T) {
	clock := core.NewLiveClock()
	now := clock.Now()
	tr := newFakeTransmitter()
	a := newTestNode(1, core.Position{X: 0, Y: 0}, clock, tr)
	b := newTestNode(2, core.Position{X: 8000, Y: 0}, clock, tr)
	c := newTestNode(3, core.Position{X: 16000, Y: 0}, clock, tr)

	// seed direct-neighbor knowledge as if beacons had already been exchanged
	a.local.Upsert(2, b.Position(), now)
	a.routes.Upsert(2, 2, 1, now, time.Minute)
	b.local.Upsert(1, a.Position(), now)
	b.routes.Upsert(1, 1, 1, now, time.Minute)
	b.local.Upsert(3, c.Position(), now)
	b.routes.Upsert(3, 3, 1, now, time.Minute)
	c.local.Upsert(2, b.Position(), now)
	c.routes.Upsert(2, 2, 1, now, time.Minute)

	require.NoError(t, a.Send(3, []byte("hi")))

	entry, ok := a.routes.Get(3, clock.Now())
	require.True(t, ok, "A should have learned a route to C")
	assert.Equal(t, int32(2), entry.NextHop)
	assert.GreaterOrEqual(t, entry.Metric, 2.0)
	assert.Equal(t, 0, a.delayed.Pending(3), "delayed frame should have been flushed once the route resolved")
}
