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

package core

import "time"

// Config holds the overridable protocol constants of §6. Defaults match
// the spec's default column; cmd/simrunner reads overrides for these
// from its viper configuration (the protocol.* keys; there are no
// command-line flags for them) and calls SetConfiguration before any
// node or channel starts.
type Config struct {
	Range        float64       `json:"range"`        // R
	MaxVelocity  float64       `json:"maxVelocity"`   // V_MAX
	ScanInterval time.Duration `json:"scanInterval"`  // T_SCAN
	MapTimeout   time.Duration `json:"mapTimeout"`    // T_TIMEOUT
	RouteTTL     time.Duration `json:"routeTTL"`      // routing entry TTL
	MaxHops      int           `json:"maxHops"`       // RREQ hop cap
}

// package-local configuration data (with default values)
var cfg = &Config{
	Range:        DefaultRange,
	MaxVelocity:  MaxVelocity,
	ScanInterval: ScanInterval,
	MapTimeout:   MapTimeout,
	RouteTTL:     RouteTTL,
	MaxHops:      MaxHops,
}

// SetConfiguration overrides the package defaults. Zero-valued fields in
// c are ignored so callers can override a subset.
func SetConfiguration(c *Config) {
	if c.Range > 0 {
		cfg.Range = c.Range
	}
	if c.MaxVelocity > 0 {
		cfg.MaxVelocity = c.MaxVelocity
	}
	if c.ScanInterval > 0 {
		cfg.ScanInterval = c.ScanInterval
	}
	if c.MapTimeout > 0 {
		cfg.MapTimeout = c.MapTimeout
	}
	if c.RouteTTL > 0 {
		cfg.RouteTTL = c.RouteTTL
	}
	if c.MaxHops > 0 {
		cfg.MaxHops = c.MaxHops
	}
}

// GetConfig returns the effective configuration.
func GetConfig() Config {
	return *cfg
}
