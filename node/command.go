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
	"fmt"
	"strconv"
	"strings"
)

// drainOneCommand polls the command mailbox non-blockingly and
// processes at most one line per control-loop tick (§4.3.1 step 4).
func (n *Node) drainOneCommand() {
	if n.cmd == nil {
		return
	}
	line, ok := n.cmd.TryNext()
	if !ok {
		return
	}
	n.execCommand(strings.TrimSpace(line))
}

// execCommand dispatches a single command line by its verb (§4.3.8).
// Unrecognized verbs are reported but never fatal.
func (n *Node) execCommand(line string) {
	if line == "" {
		return
	}
	fields := strings.Fields(line)
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "info":
		pos := n.Position()
		n.cmd.Publish(fmt.Sprintf("node %d @ %s, %d neighbors, %d routes", n.id, pos, n.local.Len(), n.routes.Len()))

	case "scan":
		n.ForceBeacon()
		n.cmd.Publish("beacon sent")

	case "send":
		if len(args) < 2 {
			n.cmd.Publish("usage: send <id> <msg>")
			return
		}
		dest, err := strconv.Atoi(args[0])
		if err != nil {
			n.cmd.Publish(fmt.Sprintf("bad destination %q: %v", args[0], err))
			return
		}
		msg := strings.Join(args[1:], " ")
		if err := n.Send(int32(dest), []byte(msg)); err != nil {
			n.cmd.Publish(fmt.Sprintf("send failed: %v", err))
			return
		}
		n.cmd.Publish("send queued")

	case "route":
		n.cmd.Publish(n.formatRoutes())

	case "nodes":
		n.cmd.Publish(n.formatNeighbors())

	case "findroute":
		if len(args) < 1 {
			n.cmd.Publish("usage: findroute <id>")
			return
		}
		dest, err := strconv.Atoi(args[0])
		if err != nil {
			n.cmd.Publish(fmt.Sprintf("bad destination %q: %v", args[0], err))
			return
		}
		n.findRoute(int32(dest))

	case "log":
		if len(args) < 1 {
			n.cmd.Publish("usage: log <level>")
			return
		}
		n.cmd.Publish(fmt.Sprintf("log level set to %s", args[0]))

	default:
		n.cmd.Publish(fmt.Sprintf("unrecognized command %q", verb))
	}
}

func (n *Node) formatRoutes() string {
	now := n.clock.Now()
	entries := n.routes.Snapshot(now)
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("{%d,%d,%.1f}", e.Destination, e.NextHop, e.Metric))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (n *Node) formatNeighbors() string {
	entries := n.local.Snapshot()
	parts := make([]string, 0, len(entries))
	for _, s := range entries {
		parts = append(parts, fmt.Sprintf("{%d,%s}", s.NodeID, s.Position))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// findRoute reports an existing route to dest, or starts discovery.
func (n *Node) findRoute(dest int32) {
	now := n.clock.Now()
	if entry, ok := n.routes.Get(dest, now); ok {
		n.cmd.Publish(fmt.Sprintf("route to %d via %d metric %.1f", dest, entry.NextHop, entry.Metric))
		return
	}
	n.discoveryMu.Lock()
	_, inFlight := n.inFlight[dest]
	if !inFlight {
		n.inFlight[dest] = struct{}{}
	}
	n.discoveryMu.Unlock()
	if !inFlight {
		n.startRouteDiscovery(dest, now)
	}
	n.cmd.Publish(fmt.Sprintf("no route to %d, discovery started", dest))
}
