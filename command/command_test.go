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

package command

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkFeedAndTryNextFIFO(t *testing.T) {
	s := NewSink(nil)
	s.Feed("info")
	s.Feed("route")

	line, ok := s.TryNext()
	require.True(t, ok)
	assert.Equal(t, "info", line)

	line, ok = s.TryNext()
	require.True(t, ok)
	assert.Equal(t, "route", line)

	_, ok = s.TryNext()
	assert.False(t, ok)
}

func TestSinkPublishWritesLine(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	s.Publish("hello")
	assert.Equal(t, "hello\n", buf.String())
}

func TestNewStdinSinkFeedsFromReader(t *testing.T) {
	r := strings.NewReader("info\nscan\n")
	var buf bytes.Buffer
	s := NewStdinSink(r, &buf)

	var line string
	var ok bool
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if line, ok = s.TryNext(); ok {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.True(t, ok)
	assert.Equal(t, "info", line)
}
