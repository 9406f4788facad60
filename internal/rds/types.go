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

// Package rds implements an incremental decoder for the RDS/RBDS broadcast
// sidechannel (IEC 62106). It is a pure, single-threaded state machine: it
// performs no I/O, and must not be called concurrently on the same Decoder
// from multiple goroutines. Once constructed it allocates only when a
// clock-time group is accepted, to build that time's fixed zone and name.
package rds

import (
	"time"

	"github.com/kb9vww/rdsctl/internal/rdsconst"
)

// ODAEntry is one accepted Open Data Announcement.
type ODAEntry struct {
	GroupID uint8
	Version rdsconst.GroupVersion
	AID     uint16
}

// Statistics accumulates counters across the life of a Decoder (or since
// the last Reset with resetStatistics=true).
type Statistics struct {
	BlockCount          uint64
	BlockErrorCount     uint64
	BlockCorrectedCount uint64
	GroupCount          uint64
	GroupErrorCount     uint64
	GroupTypeCount      [16]uint64
}

// Group is the last fully-assembled four-block group, before type-specific
// interpretation. Exposed for clients that want pre-decoded raw groups.
type Group struct {
	PI           uint16
	GroupID      uint8
	GroupVersion rdsconst.GroupVersion
	TP           bool
	DataBLSB     uint8
	DataCMSB     uint8
	DataCLSB     uint8
	DataDMSB     uint8
	DataDLSB     uint8
}

// Snapshot is a read-only, value-copy view of a Decoder's accepted public
// fields at a point in time. Callers must not rely on it reflecting later
// Ingest calls; take a fresh Snapshot after each one of interest.
type Snapshot struct {
	IsRBDS      bool
	ValidFields rdsconst.FieldSet

	PI  uint16
	PTY uint8

	PS [rdsconst.MaxPSLen]byte

	PTYN       [rdsconst.MaxPTYNLen]byte
	PTYNABFlag bool

	RT       [rdsconst.MaxRTLen]byte
	RTLength int
	RTABFlag bool

	TP bool
	TA bool
	MS bool

	DI uint8 // bits per rdsconst.DIFlag

	ECC uint8
	LC  uint8

	Time    time.Time
	HasTime bool

	AF AFSet

	ODA      [rdsconst.MaxODACount]ODAEntry
	ODACount int

	DecodeInformation rdsconst.FieldSet

	Statistics Statistics
}
