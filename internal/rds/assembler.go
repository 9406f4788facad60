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

package rds

import (
	"github.com/kb9vww/rdsctl/internal/rdsconst"
	"github.com/kb9vww/rdsctl/internal/rdswire"
)

// Ingest feeds one wire block through the Block Frame Assembler. It always
// advances the statistics counters and never fails: data faults (wrong
// block order, uncorrectable blocks) are counted and the assembler resets
// or holds, but Ingest itself has no error return. It reports the set of
// public fields that changed as a side effect of completing a group, if one
// was completed.
func (d *Decoder) Ingest(b rdswire.Block) rdsconst.FieldSet {
	stats := &d.snapshot.Statistics
	stats.BlockCount++
	if b.Errored() {
		stats.BlockErrorCount++
	} else if b.Corrected() {
		stats.BlockCorrectedCount++
	}

	blockID := int(b.BlockID())
	if b.Errored() {
		blockID = -1 // an uncorrectable block never matches an expected id
	}

	switch d.state {
	case stateEmpty:
		if blockID == 0 {
			d.state = stateAReceived
			d.raw = [4]rdswire.Block{}
			d.raw[0] = b
		} else {
			stats.GroupErrorCount++
		}

	case stateAReceived:
		if blockID == 1 {
			d.state = stateBReceived
			d.raw[1] = b
		} else {
			stats.GroupErrorCount++
			d.state = stateEmpty
		}

	case stateBReceived:
		if blockID == 2 || blockID == 4 {
			d.state = stateCReceived
			d.raw[2] = b
		} else {
			stats.GroupErrorCount++
			d.state = stateEmpty
		}

	case stateCReceived:
		if blockID == 3 {
			d.state = stateEmpty
			d.raw[3] = b
			stats.GroupCount++
			return d.decodeGroup()
		}
		stats.GroupErrorCount++
		d.state = stateEmpty

	default:
		stats.GroupErrorCount++
		d.state = stateEmpty
	}

	return 0
}
