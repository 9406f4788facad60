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

import "github.com/kb9vww/rdsctl/internal/rdsconst"

// addODA records that groupID carries an Open Data Application. If an
// entry for groupID already exists, its AID is updated in place (reported
// as a change, per the binding resolution of spec.md's open question on
// rds_add_oda). Otherwise a new entry is appended, capped at MaxODACount.
func (d *Decoder) addODA(entry ODAEntry) bool {
	oda := &d.snapshot
	for i := 0; i < oda.ODACount; i++ {
		if oda.ODA[i].GroupID == entry.GroupID {
			oda.ODA[i] = entry
			return true
		}
	}
	if oda.ODACount >= rdsconst.MaxODACount {
		return false
	}
	oda.ODA[oda.ODACount] = entry
	oda.ODACount++
	return true
}

// decodeGroup3 decodes Open Data Announcements (version A only).
func (d *Decoder) decodeGroup3() rdsconst.FieldSet {
	if d.group.GroupVersion != rdsconst.VersionA {
		return 0
	}

	entry := ODAEntry{
		GroupID: (d.group.DataBLSB >> 1) & 0x0f,
		AID:     uint16(d.group.DataDMSB)<<8 | uint16(d.group.DataDLSB),
	}
	if d.group.DataBLSB&0x01 != 0 {
		entry.Version = rdsconst.VersionB
	} else {
		entry.Version = rdsconst.VersionA
	}

	if d.addODA(entry) {
		d.snapshot.DecodeInformation |= rdsconst.FieldODA
		return rdsconst.FieldODA
	}
	return 0
}
