// SPDX-License-Identifier: AGPL-3.0-or-later
// DMRHub - Run a DMR network server in a single binary
// Copyright (C) 2023-2026 Jacob McSwain
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// The source code is available at <https://github.com/USA-RedDragon/DMRHub>

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes decoder activity as Prometheus series. A Decoder's
// Statistics are cumulative counters, not deltas, so Metrics remembers the
// last-observed total per channel and adds only the difference — Prometheus
// counters have no "set" operation.
type Metrics struct {
	BlocksTotal          *prometheus.CounterVec
	BlockErrorsTotal     *prometheus.CounterVec
	BlocksCorrectedTotal *prometheus.CounterVec
	GroupsTotal          *prometheus.CounterVec
	GroupErrorsTotal     *prometheus.CounterVec
	GroupTypeTotal       *prometheus.CounterVec

	mu   sync.Mutex
	last map[string]channelTotals
}

type channelTotals struct {
	blocks, blockErrors, blocksCorrected, groups, groupErrors uint64
	groupType                                                 map[string]uint64
}

// NewMetrics builds and registers the decoder metric family. A later call in
// the same process reuses the series already registered under these names.
func NewMetrics() *Metrics {
	metrics := &Metrics{
		BlocksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rds_blocks_total",
			Help: "The total number of RDS blocks ingested, by channel",
		}, []string{"channel"}),
		BlockErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rds_block_errors_total",
			Help: "The total number of RDS blocks that failed syndrome validation, by channel",
		}, []string{"channel"}),
		BlocksCorrectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rds_blocks_corrected_total",
			Help: "The total number of RDS blocks accepted after burst-error correction, by channel",
		}, []string{"channel"}),
		GroupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rds_groups_total",
			Help: "The total number of complete RDS groups assembled, by channel",
		}, []string{"channel"}),
		GroupErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rds_group_errors_total",
			Help: "The total number of RDS groups discarded for a sequencing or validation error, by channel",
		}, []string{"channel"}),
		GroupTypeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rds_group_type_total",
			Help: "The total number of RDS groups seen per group type, by channel",
		}, []string{"channel", "group_id"}),
		last: make(map[string]channelTotals),
	}
	metrics.register()
	return metrics
}

func (m *Metrics) register() {
	for _, c := range []**prometheus.CounterVec{&m.BlocksTotal, &m.BlockErrorsTotal, &m.BlocksCorrectedTotal, &m.GroupsTotal, &m.GroupErrorsTotal, &m.GroupTypeTotal} {
		err := prometheus.Register(*c)
		if existing, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*c = existing.ExistingCollector.(*prometheus.CounterVec)
		} else if err != nil {
			panic(err)
		}
	}
}

// Observe advances the per-channel counters to match a decoder's cumulative
// Statistics snapshot. Passing a lower total than previously observed (e.g.
// after a Decoder.Reset) restarts tracking from the new baseline rather than
// going backwards.
func (m *Metrics) Observe(channel string, blocks, blockErrors, blocksCorrected, groups, groupErrors uint64, groupTypeCounts map[string]uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.last[channel]
	if !ok {
		prev = channelTotals{groupType: make(map[string]uint64)}
	}

	m.BlocksTotal.WithLabelValues(channel).Add(delta(prev.blocks, blocks))
	m.BlockErrorsTotal.WithLabelValues(channel).Add(delta(prev.blockErrors, blockErrors))
	m.BlocksCorrectedTotal.WithLabelValues(channel).Add(delta(prev.blocksCorrected, blocksCorrected))
	m.GroupsTotal.WithLabelValues(channel).Add(delta(prev.groups, groups))
	m.GroupErrorsTotal.WithLabelValues(channel).Add(delta(prev.groupErrors, groupErrors))

	nextGroupType := make(map[string]uint64, len(groupTypeCounts))
	for groupID, count := range groupTypeCounts {
		m.GroupTypeTotal.WithLabelValues(channel, groupID).Add(delta(prev.groupType[groupID], count))
		nextGroupType[groupID] = count
	}

	m.last[channel] = channelTotals{
		blocks:          blocks,
		blockErrors:     blockErrors,
		blocksCorrected: blocksCorrected,
		groups:          groups,
		groupErrors:     groupErrors,
		groupType:       nextGroupType,
	}
}

func delta(prev, next uint64) float64 {
	switch {
	case next > prev:
		return float64(next - prev)
	case next < prev:
		return float64(next)
	default:
		return 0
	}
}
