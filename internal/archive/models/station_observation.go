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

//nolint:golint,wrapcheck
package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// StationObservation is one station's accumulated identity as decoded on a
// single channel: its PI code plus the most recently decoded PS/RT/PTY/ECC/LC
// fields, with the first and last time any of them were observed. Rows are
// upserted by (Channel, PI) as Ingest produces new fields, never replayed
// block-by-block.
type StationObservation struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Channel   string         `json:"channel" gorm:"uniqueIndex:idx_channel_pi"`
	PI        uint16         `json:"pi" gorm:"uniqueIndex:idx_channel_pi"`
	PS        string         `json:"ps"`
	RT        string         `json:"rt"`
	PTY       uint8          `json:"pty"`
	ECC       uint8          `json:"ecc"`
	LC        uint8          `json:"lc"`
	FirstSeen time.Time      `json:"first_seen"`
	LastSeen  time.Time      `json:"last_seen"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func FindStationObservation(db *gorm.DB, channel string, pi uint16) (StationObservation, error) {
	var obs StationObservation
	err := db.Where("channel = ? AND pi = ?", channel, pi).First(&obs).Error
	return obs, err
}

func ListStationObservations(db *gorm.DB, channel string) ([]StationObservation, error) {
	var observations []StationObservation
	err := db.Where("channel = ?", channel).Order("pi asc").Find(&observations).Error
	return observations, err
}

// UpsertStationObservation merges changed fields into the (Channel, PI) row,
// creating it on first sight and always advancing LastSeen.
func UpsertStationObservation(db *gorm.DB, next StationObservation) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing StationObservation
		err := tx.Where("channel = ? AND pi = ?", next.Channel, next.PI).First(&existing).Error
		switch {
		case err == nil:
			existing.LastSeen = next.LastSeen
			if next.PS != "" {
				existing.PS = next.PS
			}
			if next.RT != "" {
				existing.RT = next.RT
			}
			if next.PTY != 0 {
				existing.PTY = next.PTY
			}
			if next.ECC != 0 {
				existing.ECC = next.ECC
			}
			if next.LC != 0 {
				existing.LC = next.LC
			}
			return tx.Save(&existing).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			next.FirstSeen = next.LastSeen
			return tx.Create(&next).Error
		default:
			return err
		}
	})
}

// PruneStationObservationsBefore deletes rows whose LastSeen predates
// cutoff, used by the scheduled rollup job to bound archive growth.
func PruneStationObservationsBefore(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Unscoped().Where("last_seen < ?", cutoff).Delete(&StationObservation{})
	return result.RowsAffected, result.Error
}
