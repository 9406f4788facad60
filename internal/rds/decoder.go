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

// decodeState is the Block Frame Assembler's current position within a
// group. There is no terminal state; it cycles continuously.
type decodeState uint8

const (
	stateEmpty decodeState = iota
	stateAReceived
	stateBReceived
	stateCReceived
)

// Decoder is an incremental RDS/RBDS decoder. The zero value is not usable;
// construct one with NewDecoder. A Decoder must not be called concurrently
// from multiple goroutines; independent Decoders share no state.
type Decoder struct {
	snapshot Snapshot

	state decodeState
	raw   [4]rdswire.Block
	group Group

	piValidator  validator[uint16]
	ptyValidator validator[uint8]
	eccValidator validator[uint8]
	lcValidator  validator[uint8]

	newPS      [rdsconst.MaxPSLen]byte
	newPSValid [rdsconst.MaxPSLen]bool

	newPTYN      [2][4]byte
	newPTYNValid [2]bool

	newRT         [rdsconst.MaxRTLen]byte
	nextRTSegment uint8

	newDI         uint8
	nextDISegment uint8

	newMJD    uint32
	utcHour   uint8
	utcMinute uint8
	utcOffset uint8
}

// NewDecoder creates an empty Decoder for the given broadcast region. isRBDS
// selects the North American PTY table and country/label conventions over
// the European ones.
func NewDecoder(isRBDS bool) *Decoder {
	d := &Decoder{}
	d.snapshot.IsRBDS = isRBDS
	return d
}

// Reset wipes all decoding state back to what NewDecoder produces, except
// IsRBDS (always preserved) and Statistics (preserved unless
// resetStatistics is true).
func (d *Decoder) Reset(resetStatistics bool) {
	isRBDS := d.snapshot.IsRBDS
	stats := d.snapshot.Statistics

	*d = Decoder{}
	d.snapshot.IsRBDS = isRBDS
	if !resetStatistics {
		d.snapshot.Statistics = stats
	}
}

// Snapshot returns a value copy of the currently accepted public fields.
// The copy is safe to retain; it will not be mutated by later Ingest calls.
func (d *Decoder) Snapshot() Snapshot {
	return d.snapshot
}

// CurrentGroup returns the last fully-assembled four-block group, before
// type-specific interpretation.
func (d *Decoder) CurrentGroup() Group {
	return d.group
}
