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

package config

import "github.com/spf13/viper"

// Load reads the configuration from viper, starting from DefaultConfig
// so a field left unset by flag/env/file keeps its default.
func Load() *Config {
	cfg := DefaultConfig()

	if v := viper.GetString("logging.level"); v != "" {
		cfg.Logging.Level = v
	}
	if v := viper.GetString("logging.format"); v != "" {
		cfg.Logging.Format = v
	}

	if v := viper.GetInt("network.nodes"); v > 0 {
		cfg.Network.Nodes = v
	}
	if v := viper.GetFloat64("network.field_width"); v > 0 {
		cfg.Network.FieldWidth = v
	}
	if v := viper.GetFloat64("network.field_depth"); v > 0 {
		cfg.Network.FieldDepth = v
	}
	if v := viper.GetInt64("network.seed"); v != 0 {
		cfg.Network.Seed = v
	}
	cfg.Network.Duration = viper.GetDuration("network.duration")

	cfg.Protocol.Range = viper.GetFloat64("protocol.range")
	cfg.Protocol.MaxVelocity = viper.GetFloat64("protocol.max_velocity")
	cfg.Protocol.ScanInterval = viper.GetDuration("protocol.scan_interval")
	cfg.Protocol.MapTimeout = viper.GetDuration("protocol.map_timeout")
	cfg.Protocol.RouteTTL = viper.GetDuration("protocol.route_ttl")
	cfg.Protocol.MaxHops = viper.GetInt("protocol.max_hops")

	cfg.Metrics.Enabled = viper.GetBool("metrics.enabled")
	if v := viper.GetString("metrics.addr"); v != "" {
		cfg.Metrics.Addr = v
	}

	cfg.Visualize.Enabled = viper.GetBool("visualize.enabled")
	if v := viper.GetString("visualize.dir"); v != "" {
		cfg.Visualize.Dir = v
	}
	if v := viper.GetDuration("visualize.interval"); v > 0 {
		cfg.Visualize.Interval = v
	}

	cfg.Snapshot.SavePath = viper.GetString("snapshot.save_path")
	cfg.Snapshot.LoadPath = viper.GetString("snapshot.load_path")

	return cfg
}
