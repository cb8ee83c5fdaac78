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

// Package persist saves and restores simulation snapshots (§6) so a
// run can be resumed with its Clock re-anchored to wall-clock time
// without its relative timestamps drifting (§4.1 anchored mode).
package persist

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Rimk4/SONetwork/core"
	"github.com/Rimk4/SONetwork/routing"
)

// NodeRecord is one node's persisted state.
type NodeRecord struct {
	ID       int32           `json:"id"`
	Position core.Position   `json:"position"`
	Velocity float64         `json:"velocity"`
	Heading  float64         `json:"heading"`
	Routes   []routing.Entry `json:"routes"`
}

// Snapshot is the full persisted simulation state. RunID is stamped
// once when a simulation is first created and carried across every
// subsequent save so related snapshots can be correlated (§6.1).
type Snapshot struct {
	RunID   string       `json:"run_id"`
	SavedAt time.Time    `json:"saved_at"`
	Anchor  time.Time    `json:"anchor"` // simulated time at save; a resumed run's clock starts here
	Nodes   []NodeRecord `json:"nodes"`
}

// NewRunID generates a fresh run identifier for a new simulation.
func NewRunID() string {
	return uuid.NewString()
}

// Save writes snap to path as indented JSON.
func Save(path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(err, "persist: marshal snapshot")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "persist: write %s", path)
	}
	return nil
}

// Load reads and parses a snapshot previously written by Save.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, errors.Wrapf(err, "persist: read %s", path)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Wrapf(err, "persist: parse %s", path)
	}
	return snap, nil
}
