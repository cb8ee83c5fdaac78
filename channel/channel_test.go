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
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rimk4/SONetwork/core"
)

type fakePeer struct {
	id       int32
	pos      core.Position
	bitrate  float64
	received []core.Frame
}

func (p *fakePeer) ID() int32              { return p.id }
func (p *fakePeer) Position() core.Position { return p.pos }
func (p *fakePeer) Bitrate() float64        { return p.bitrate }
func (p *fakePeer) ReceiveFrame(f core.Frame) {
	p.received = append(p.received, f)
}

func TestChannelAddNodeDuplicateID(t *testing.T) {
	clock := core.NewLiveClock()
	ch := New(clock, rand.New(rand.NewSource(1)))

	a := &fakePeer{id: 1}
	require.NoError(t, ch.AddNode(a))

	err := ch.AddNode(&fakePeer{id: 1})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestChannelTransmitOutOfRangeFails(t *testing.T) {
	clock := core.NewLiveClock()
	ch := New(clock, rand.New(rand.NewSource(1)))
	a := &fakePeer{id: 1, pos: core.Position{X: 0, Y: 0}, bitrate: 1000}
	b := &fakePeer{id: 2, pos: core.Position{X: 1e9, Y: 0}, bitrate: 1000}
	require.NoError(t, ch.AddNode(a))
	require.NoError(t, ch.AddNode(b))

	frame := core.NewFrame(core.Data, 1, nil, []byte("hi"), 10, 0, time.Now(), nil)
	ok := ch.Transmit(frame, 1, 2)
	assert.False(t, ok)
	assert.Equal(t, uint64(1), ch.Stats().FailedDistance)
}

func TestChannelTransmitUnknownEndpointFails(t *testing.T) {
	clock := core.NewLiveClock()
	ch := New(clock, rand.New(rand.NewSource(1)))
	a := &fakePeer{id: 1}
	require.NoError(t, ch.AddNode(a))

	frame := core.NewFrame(core.Data, 1, nil, []byte("hi"), 10, 0, time.Now(), nil)
	ok := ch.Transmit(frame, 1, 99)
	assert.False(t, ok)
}

func TestChannelTransmitAndTickDeliversInRange(t *testing.T) {
	clock := core.NewLiveClock()
	// rng seeded so the first Float64() draw is well under any
	// plausible transmission probability at short range.
	ch := New(clock, rand.New(rand.NewSource(42)))
	a := &fakePeer{id: 1, pos: core.Position{X: 0, Y: 0}, bitrate: 10000}
	b := &fakePeer{id: 2, pos: core.Position{X: 10, Y: 0}, bitrate: 10000}
	require.NoError(t, ch.AddNode(a))
	require.NoError(t, ch.AddNode(b))

	frame := core.NewFrame(core.Data, 1, nil, []byte("hi"), 10, 0, time.Now(), nil)
	ok := ch.Transmit(frame, 1, 2)
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	ch.Tick()
	require.Len(t, b.received, 1)
	assert.Equal(t, "hi", string(b.received[0].Payload))
}

func TestChannelRemoveNodePurgesQueue(t *testing.T) {
	clock := core.NewLiveClock()
	ch := New(clock, rand.New(rand.NewSource(7)))
	a := &fakePeer{id: 1, pos: core.Position{X: 0, Y: 0}, bitrate: 10000}
	b := &fakePeer{id: 2, pos: core.Position{X: 10, Y: 0}, bitrate: 10000}
	require.NoError(t, ch.AddNode(a))
	require.NoError(t, ch.AddNode(b))

	frame := core.NewFrame(core.Data, 1, nil, []byte("hi"), 10, 0, time.Now(), nil)
	ch.Transmit(frame, 1, 2)

	removed := ch.RemoveNode(2)
	assert.True(t, removed)
	assert.Equal(t, 0, ch.queue.Len())
}

func TestChannelRemoveNodeAbsentIsNoop(t *testing.T) {
	clock := core.NewLiveClock()
	ch := New(clock, rand.New(rand.NewSource(1)))
	removed := ch.RemoveNode(42)
	assert.False(t, removed)
}

func TestChannelStatsTotalsInvariant(t *testing.T) {
	clock := core.NewLiveClock()
	ch := New(clock, rand.New(rand.NewSource(3)))
	a := &fakePeer{id: 1, pos: core.Position{X: 0, Y: 0}, bitrate: 10000}
	b := &fakePeer{id: 2, pos: core.Position{X: 20000, Y: 0}, bitrate: 10000} // out of range
	require.NoError(t, ch.AddNode(a))
	require.NoError(t, ch.AddNode(b))

	frame := core.NewFrame(core.Data, 1, nil, []byte("hi"), 10, 0, time.Now(), nil)
	ch.Transmit(frame, 1, 2)
	ch.Transmit(frame, 1, 99) // unknown endpoint

	stats := ch.Stats()
	assert.Equal(t, stats.Success+stats.FailedDistance+stats.FailedTransmission, stats.Total())
}
