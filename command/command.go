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

// Package command provides the reference CommandSink adapter a node's
// mailbox is drained from (§4.3.8, §4.5): a line-oriented source of
// operator commands and a matching sink for their textual replies.
package command

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// Sink implements node.CommandSink over a buffered queue of lines, fed
// either by a background reader goroutine (see NewStdinSink) or
// directly by tests via Feed.
type Sink struct {
	mu      sync.Mutex
	pending []string
	out     io.Writer
}

// NewSink creates a sink that writes replies to out.
func NewSink(out io.Writer) *Sink {
	return &Sink{out: out}
}

// Feed appends a command line to the pending queue.
func (s *Sink) Feed(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, line)
}

// TryNext implements node.CommandSink: non-blocking, at most one line
// per call.
func (s *Sink) TryNext() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return "", false
	}
	line := s.pending[0]
	s.pending = s.pending[1:]
	return line, true
}

// Publish writes a reply line to the configured writer.
func (s *Sink) Publish(text string) {
	if s.out == nil {
		return
	}
	fmt.Fprintln(s.out, text)
}

// NewStdinSink starts a background goroutine that scans r line by line
// and feeds each line to the returned Sink, publishing replies to w.
// The goroutine exits when r reaches EOF or returns an error.
func NewStdinSink(r io.Reader, w io.Writer) *Sink {
	sink := NewSink(w)
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			sink.Feed(scanner.Text())
		}
	}()
	return sink
}
