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

package schedule_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kb9vww/rdsctl/internal/archive"
	"github.com/kb9vww/rdsctl/internal/archive/models"
	"github.com/kb9vww/rdsctl/internal/config"
	"github.com/kb9vww/rdsctl/internal/schedule"
)

func TestNewSchedulerIsUsable(t *testing.T) {
	t.Parallel()
	scheduler, err := schedule.New()
	require.NoError(t, err)
	require.NotNil(t, scheduler)
	require.NoError(t, scheduler.Shutdown())
}

func TestScheduleRollupRejectsInvalidInterval(t *testing.T) {
	t.Parallel()
	scheduler, err := schedule.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = scheduler.Shutdown() })

	cfg := &config.Config{Schedule: config.Schedule{RollupInterval: "not-a-duration"}}
	err = schedule.ScheduleRollup(scheduler, cfg, nil)
	assert.Error(t, err)
}

func TestScheduleRollupRegistersJob(t *testing.T) {
	t.Parallel()
	db, err := archive.MakeDB(&config.Config{
		Archive: config.Archive{Driver: config.ArchiveDriverSQLite, Database: filepath.Join(t.TempDir(), "archive.db")},
	})
	require.NoError(t, err)

	scheduler, err := schedule.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = scheduler.Shutdown() })

	cfg := &config.Config{Schedule: config.Schedule{RollupInterval: "1h"}}
	require.NoError(t, schedule.ScheduleRollup(scheduler, cfg, db))

	require.NoError(t, models.UpsertStationObservation(db, models.StationObservation{
		Channel: "wxyz", PI: 0x1001, PS: "TEST", LastSeen: time.Now().Add(-30 * 24 * time.Hour),
	}))
}
