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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rimk4/SONetwork/core"
)

func TestDelayedPushReportsFirstForDest(t *testing.T) {
	d := NewDelayed()
	first := d.Push(5, core.Frame{SenderID: 1})
	assert.True(t, first)

	second := d.Push(5, core.Frame{SenderID: 1})
	assert.False(t, second)

	assert.Equal(t, 2, d.Pending(5))
}

func TestDelayedDrainEmptiesQueueInOrder(t *testing.T) {
	d := NewDelayed()
	d.Push(5, core.Frame{SenderID: 1})
	d.Push(5, core.Frame{SenderID: 2})

	frames := d.Drain(5)
	require.Len(t, frames, 2)
	assert.Equal(t, int32(1), frames[0].SenderID)
	assert.Equal(t, int32(2), frames[1].SenderID)
	assert.Equal(t, 0, d.Pending(5))
}

func TestDelayedDestinations(t *testing.T) {
	d := NewDelayed()
	d.Push(5, core.Frame{})
	d.Push(6, core.Frame{})

	dests := d.Destinations()
	assert.ElementsMatch(t, []int32{5, 6}, dests)
}
