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

// Package metrics exports the channel's accounting counters (§4.2) as
// Prometheus counters, so a running simulation can be scraped the same
// way any other long-lived Go service would be.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// StatsSource is the read side of channel.Channel the collector polls;
// kept minimal so metrics never imports channel.
type StatsSource interface {
	Counts() (success, failedDistance, failedTransmission, total uint64)
}

// Collector adapts a StatsSource to prometheus.Collector via
// CounterFuncs, one per accounting bucket of §4.2.
type Collector struct {
	source StatsSource

	success            prometheus.CounterFunc
	failedDistance     prometheus.CounterFunc
	failedTransmission prometheus.CounterFunc
	total              prometheus.CounterFunc
}

// NewCollector builds a Collector reading from source.
func NewCollector(source StatsSource) *Collector {
	c := &Collector{source: source}
	c.success = prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "sonetwork",
		Subsystem: "channel",
		Name:      "transmissions_success_total",
		Help:      "Frames successfully scheduled for delivery.",
	}, func() float64 { s, _, _, _ := c.source.Counts(); return float64(s) })

	c.failedDistance = prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "sonetwork",
		Subsystem: "channel",
		Name:      "transmissions_failed_distance_total",
		Help:      "Frames dropped because sender and receiver were out of range.",
	}, func() float64 { _, d, _, _ := c.source.Counts(); return float64(d) })

	c.failedTransmission = prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "sonetwork",
		Subsystem: "channel",
		Name:      "transmissions_failed_loss_total",
		Help:      "Frames dropped by the transmission loss model.",
	}, func() float64 { _, _, f, _ := c.source.Counts(); return float64(f) })

	c.total = prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace: "sonetwork",
		Subsystem: "channel",
		Name:      "transmissions_total",
		Help:      "Every transmission attempt, successful or not.",
	}, func() float64 { _, _, _, t := c.source.Counts(); return float64(t) })

	return c
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.success.Describe(ch)
	c.failedDistance.Describe(ch)
	c.failedTransmission.Describe(ch)
	c.total.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.success.Collect(ch)
	c.failedDistance.Collect(ch)
	c.failedTransmission.Collect(ch)
	c.total.Collect(ch)
}
