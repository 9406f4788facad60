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

package archive

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kb9vww/rdsctl/internal/archive/models"
	"github.com/kb9vww/rdsctl/internal/rds"
	"github.com/kb9vww/rdsctl/internal/rdsconst"
)

// stationFields is the subset of Ingest's changed-field bitmask that makes a
// snapshot worth persisting: PI alone establishes a row, PS and RT are what
// give it a human identity worth archiving.
const stationFields = rdsconst.FieldPI | rdsconst.FieldPS | rdsconst.FieldRT

// Subscriber persists decoder snapshots to the archive database. It is
// driven directly by the serve command's decode loop after each Ingest call,
// not by internal/pubsub — the archive cares about field deltas the
// dashboard's dedup logic would otherwise collapse.
type Subscriber struct {
	db *gorm.DB
}

func NewSubscriber(db *gorm.DB) *Subscriber {
	return &Subscriber{db: db}
}

// Observe upserts a StationObservation for channel if fields touched any of
// stationFields. It is a no-op otherwise, so callers can invoke it
// unconditionally after every Ingest.
func (s *Subscriber) Observe(channel string, fields rdsconst.FieldSet, snap rds.Snapshot, now time.Time) error {
	if fields&stationFields == 0 || snap.PI == 0 {
		return nil
	}

	obs := models.StationObservation{
		Channel:  channel,
		PI:       snap.PI,
		PS:       trimNulls(snap.PS[:]),
		RT:       trimNulls(snap.RT[:snap.RTLength]),
		PTY:      snap.PTY,
		ECC:      snap.ECC,
		LC:       snap.LC,
		LastSeen: now,
	}

	if err := models.UpsertStationObservation(s.db, obs); err != nil {
		return fmt.Errorf("failed to upsert station observation for channel %s: %w", channel, err)
	}
	return nil
}

func trimNulls(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}
