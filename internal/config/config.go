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

// Package config loads the simrunner configuration from viper (flags,
// environment, and an optional file), binding onto the protocol
// constants core.Config already exposes.
package config

import "time"

// Config is the complete simrunner configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Network    NetworkConfig    `mapstructure:"network"`
	Protocol   ProtocolConfig   `mapstructure:"protocol"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Visualize  VisualizeConfig  `mapstructure:"visualize"`
	Snapshot   SnapshotConfig   `mapstructure:"snapshot"`
}

// LoggingConfig selects the zap logger's verbosity and encoding.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NetworkConfig describes the simulated field and node population.
type NetworkConfig struct {
	Nodes      int     `mapstructure:"nodes"`
	FieldWidth float64 `mapstructure:"field_width"`
	FieldDepth float64 `mapstructure:"field_depth"`
	Seed       int64   `mapstructure:"seed"`
	Duration   time.Duration `mapstructure:"duration"` // 0 = run until canceled
}

// ProtocolConfig overrides the default §6 constants; zero fields keep
// core's package defaults (see core.SetConfiguration).
type ProtocolConfig struct {
	Range        float64       `mapstructure:"range"`
	MaxVelocity  float64       `mapstructure:"max_velocity"`
	ScanInterval time.Duration `mapstructure:"scan_interval"`
	MapTimeout   time.Duration `mapstructure:"map_timeout"`
	RouteTTL     time.Duration `mapstructure:"route_ttl"`
	MaxHops      int           `mapstructure:"max_hops"`
}

// MetricsConfig controls the optional Prometheus HTTP endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// VisualizeConfig controls the optional periodic SVG snapshot sink.
type VisualizeConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Dir      string        `mapstructure:"dir"`
	Interval time.Duration `mapstructure:"interval"`
}

// SnapshotConfig controls persisted-state save/restore (§6.1).
type SnapshotConfig struct {
	SavePath string `mapstructure:"save_path"` // empty disables save-on-exit
	LoadPath string `mapstructure:"load_path"` // empty starts a fresh run
}

// DefaultConfig returns the configuration used when no flag, env var or
// file overrides a field.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Network: NetworkConfig{
			Nodes:      20,
			FieldWidth: 20000,
			FieldDepth: 20000,
			Seed:       1,
		},
		Metrics:   MetricsConfig{Addr: ":9090"},
		Visualize: VisualizeConfig{Dir: "./snapshots", Interval: 5 * time.Second},
	}
}
