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

// decodeGroup4 decodes the Clock Time group (version A only). The 17-bit
// Modified Julian Day must be received identically twice before hour,
// minute and offset are read and the group is converted into an absolute
// time.
func (d *Decoder) decodeGroup4() rdsconst.FieldSet {
	if d.group.GroupVersion != rdsconst.VersionA {
		return 0
	}

	mjd := uint32(d.group.DataBLSB&0x03)<<15 |
		uint32(d.group.DataCMSB)<<7 |
		uint32(d.group.DataCLSB>>1)

	if mjd != d.newMJD {
		d.newMJD = mjd
		return 0
	}

	d.utcHour = (d.group.DataCLSB&0x01)<<4 | d.group.DataDMSB>>4
	d.utcMinute = (d.group.DataDMSB&0x0f)<<2 | d.group.DataDLSB>>6
	d.utcOffset = d.group.DataDLSB & 0x3f

	d.snapshot.Time = decodeMJD(mjd, d.utcHour, d.utcMinute, d.utcOffset)
	d.snapshot.HasTime = true
	d.snapshot.ValidFields |= rdsconst.FieldTIME

	return rdsconst.FieldTIME
}
