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

const rtCR = 0x0d

// decodeGroup2 decodes Radio Text. Version A carries 4 characters per
// group (C and D blocks), up to 64 bytes across 16 segments; version B
// carries 2 characters per group (D block only, the C block's PI is
// ignored for text), up to 32 bytes. Either version may terminate early on
// a carriage return.
func (d *Decoder) decodeGroup2() rdsconst.FieldSet {
	var fields rdsconst.FieldSet

	segment := d.group.DataBLSB & 0x0f
	abFlag := d.group.DataBLSB&0x10 != 0

	if abFlag != d.snapshot.RTABFlag {
		d.snapshot.RTABFlag = abFlag
		d.snapshot.RT = [rdsconst.MaxRTLen]byte{}
		d.newRT = [rdsconst.MaxRTLen]byte{}
		d.snapshot.ValidFields &^= rdsconst.FieldRT
		fields |= rdsconst.FieldRT
		d.nextRTSegment = 0
	}

	if d.group.GroupVersion == rdsconst.VersionA {
		if segment == 0 || segment == d.nextRTSegment {
			base := int(segment) * 4
			d.newRT[base] = d.group.DataCMSB
			d.newRT[base+1] = d.group.DataCLSB
			d.newRT[base+2] = d.group.DataDMSB
			d.newRT[base+3] = d.group.DataDLSB
			d.nextRTSegment = segment + 1
			if segment == 0x0f {
				d.snapshot.RTLength = 64
				d.snapshot.ValidFields |= rdsconst.FieldRT
				if d.newRT != d.snapshot.RT {
					d.snapshot.RT = d.newRT
					fields |= rdsconst.FieldRT
				}
				d.nextRTSegment = 0
			}
		}
	} else {
		if segment == 0 || segment == d.nextRTSegment {
			base := int(segment) * 2
			d.newRT[base] = d.group.DataDMSB
			d.newRT[base+1] = d.group.DataDLSB
			d.nextRTSegment = segment + 1
			if segment == 0x0f {
				d.snapshot.RTLength = 32
				d.snapshot.ValidFields |= rdsconst.FieldRT
				if d.newRT != d.snapshot.RT {
					d.snapshot.RT = d.newRT
					fields |= rdsconst.FieldRT
				}
				d.nextRTSegment = 0
			}
		}
	}

	// A carriage return anywhere in the pending buffer ends the message
	// early, regardless of how far accumulation has otherwise progressed.
	for i := 0; i < rdsconst.MaxRTLen; i++ {
		if d.newRT[i] == rtCR {
			d.newRT[i] = 0
			d.snapshot.RTLength = i
			d.snapshot.ValidFields |= rdsconst.FieldRT
			if d.newRT != d.snapshot.RT {
				d.snapshot.RT = d.newRT
				fields |= rdsconst.FieldRT
			}
			d.nextRTSegment = 0
		}
	}

	return fields
}
