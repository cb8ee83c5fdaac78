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

// Package cli provides the simrunner command-line interface.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "simrunner",
	Short: "Self-organizing mesh network simulator",
	Long: `simrunner builds a radio-channel simulation and a population of
mesh nodes running BEACON discovery, AODV-style route discovery, and
DATA forwarding, then drives them under a shared tick loop.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./simrunner.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().Int("nodes", 20, "number of simulated nodes")
	rootCmd.PersistentFlags().Float64("field-width", 20000, "simulated field width in meters")
	rootCmd.PersistentFlags().Float64("field-depth", 20000, "simulated field depth in meters")
	rootCmd.PersistentFlags().Int64("seed", 1, "random seed for node placement and the channel loss model")
	rootCmd.PersistentFlags().Duration("duration", 0, "stop after this long (0 runs until interrupted)")
	rootCmd.PersistentFlags().Bool("metrics", false, "expose Prometheus metrics")
	rootCmd.PersistentFlags().String("metrics-addr", ":9090", "address the metrics HTTP server listens on")
	rootCmd.PersistentFlags().Bool("visualize", false, "write periodic SVG snapshots")
	rootCmd.PersistentFlags().String("visualize-dir", "./snapshots", "directory SVG snapshots are written to")
	rootCmd.PersistentFlags().Duration("visualize-interval", 0, "SVG snapshot period (0 uses the default)")
	rootCmd.PersistentFlags().String("snapshot-save", "", "path to write a JSON state snapshot on exit")
	rootCmd.PersistentFlags().String("snapshot-load", "", "path to a JSON state snapshot to resume from")

	bind := map[string]string{
		"logging.level":        "log-level",
		"logging.format":       "log-format",
		"network.nodes":        "nodes",
		"network.field_width":  "field-width",
		"network.field_depth":  "field-depth",
		"network.seed":         "seed",
		"network.duration":     "duration",
		"metrics.enabled":      "metrics",
		"metrics.addr":         "metrics-addr",
		"visualize.enabled":    "visualize",
		"visualize.dir":        "visualize-dir",
		"visualize.interval":   "visualize-interval",
		"snapshot.save_path":   "snapshot-save",
		"snapshot.load_path":   "snapshot-load",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}

	rootCmd.AddCommand(runCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("simrunner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("SIMRUNNER")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
