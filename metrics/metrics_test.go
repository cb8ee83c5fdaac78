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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	success, failedDistance, failedTransmission, total uint64
}

func (f fakeSource) Counts() (uint64, uint64, uint64, uint64) {
	return f.success, f.failedDistance, f.failedTransmission, f.total
}

func TestCollectorRegistersAndReportsCounts(t *testing.T) {
	src := fakeSource{success: 3, failedDistance: 1, failedTransmission: 2, total: 6}
	c := NewCollector(src)

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			values[fam.GetName()] = m.GetCounter().GetValue()
		}
	}

	assert.Equal(t, float64(3), values["sonetwork_channel_transmissions_success_total"])
	assert.Equal(t, float64(1), values["sonetwork_channel_transmissions_failed_distance_total"])
	assert.Equal(t, float64(2), values["sonetwork_channel_transmissions_failed_loss_total"])
	assert.Equal(t, float64(6), values["sonetwork_channel_transmissions_total"])
}
