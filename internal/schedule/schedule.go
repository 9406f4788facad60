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

// Package schedule runs the periodic archive rollup job that prunes
// stale StationObservation rows, on the same gocron scheduler shape the
// teacher uses for its repeater/user database refresh jobs.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/kb9vww/rdsctl/internal/archive/models"
	"github.com/kb9vww/rdsctl/internal/config"
)

const (
	defaultRollupInterval = time.Hour
	// observationTTL bounds how long a station's last-seen observation is
	// kept once nothing newer replaces it.
	observationTTL = 7 * 24 * time.Hour
)

// New creates the job scheduler.
func New() (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return scheduler, nil
}

// ScheduleRollup registers the archive compaction job on the interval named
// by cfg.Schedule.RollupInterval (validated elsewhere; falls back to
// defaultRollupInterval if empty, which only happens in tests that build a
// Config by hand).
func ScheduleRollup(scheduler gocron.Scheduler, cfg *config.Config, db *gorm.DB) error {
	interval := defaultRollupInterval
	if cfg.Schedule.RollupInterval != "" {
		parsed, err := time.ParseDuration(cfg.Schedule.RollupInterval)
		if err != nil {
			return fmt.Errorf("invalid rollup interval %q: %w", cfg.Schedule.RollupInterval, err)
		}
		interval = parsed
	}

	_, err := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			rollupOnce(db)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule archive rollup: %w", err)
	}
	return nil
}

func rollupOnce(db *gorm.DB) {
	_, span := otel.Tracer("rdsctl").Start(context.Background(), "schedule.rollupOnce")
	defer span.End()

	cutoff := time.Now().Add(-observationTTL)
	pruned, err := models.PruneStationObservationsBefore(db, cutoff)
	if err != nil {
		slog.Error("failed to prune stale station observations", "error", err)
		return
	}
	if pruned > 0 {
		slog.Info("pruned stale station observations", "count", pruned, "cutoff", cutoff)
	}
}
