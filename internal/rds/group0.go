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

// addPSChar writes one character of the pending Program Service name at
// pos, applying the per-position duplicate-acceptance rule: a character
// matching what's already pending at pos marks it valid, a differing one
// overwrites it and invalidates all 8 positions (the whole working name is
// discarded, not just the mismatching position). Reports whether all 8
// positions are now valid.
func (d *Decoder) addPSChar(pos uint8, ch byte) bool {
	if ch == d.newPS[pos] {
		d.newPSValid[pos] = true
	} else {
		d.newPS[pos] = ch
		d.newPSValid = [rdsconst.MaxPSLen]bool{}
	}
	for _, valid := range d.newPSValid {
		if !valid {
			return false
		}
	}
	return true
}

// decodeGroup0 decodes basic tuning and switching information: TA/MS flags,
// the Program Service name, Decoder Information segments, and (version A
// only) the Alternative Frequency list.
func (d *Decoder) decodeGroup0() rdsconst.FieldSet {
	var fields rdsconst.FieldSet

	ta := d.group.DataBLSB&0x10 != 0
	if d.snapshot.TA != ta {
		d.snapshot.TA = ta
		fields |= rdsconst.FieldTA
	}
	d.snapshot.ValidFields |= rdsconst.FieldTA

	ms := d.group.DataBLSB&0x08 != 0
	if d.snapshot.MS != ms {
		d.snapshot.MS = ms
		fields |= rdsconst.FieldMS
	}
	d.snapshot.ValidFields |= rdsconst.FieldMS

	segment := d.group.DataBLSB & 0x03

	d.addPSChar(segment*2, d.group.DataDMSB)
	if d.addPSChar(segment*2+1, d.group.DataDLSB) {
		if d.newPS != d.snapshot.PS {
			d.snapshot.PS = d.newPS
			fields |= rdsconst.FieldPS
		}
		d.snapshot.ValidFields |= rdsconst.FieldPS
	}

	diBit := d.group.DataBLSB&0x04 != 0
	if segment == 0 || segment == d.nextDISegment {
		switch segment {
		case 0:
			d.setDIBit(rdsconst.DIFlagStereo, diBit)
			d.nextDISegment = 1
		case 1:
			d.setDIBit(rdsconst.DIFlagArtificialHead, diBit)
			d.nextDISegment = 2
		case 2:
			d.setDIBit(rdsconst.DIFlagCompressed, diBit)
			d.nextDISegment = 3
		case 3:
			d.setDIBit(rdsconst.DIFlagStaticPTY, diBit)
			if d.snapshot.DI != d.newDI {
				d.snapshot.DI = d.newDI
				fields |= rdsconst.FieldDI
			}
			d.nextDISegment = 0
			d.snapshot.ValidFields |= rdsconst.FieldDI
		}
	} else {
		d.nextDISegment = 0
		d.newDI = 0
	}

	if d.group.GroupVersion == rdsconst.VersionA {
		if d.snapshot.AF.addAF(d.group.DataCMSB, d.group.DataCLSB) {
			fields |= rdsconst.FieldAF
		}
		if d.snapshot.AF.complete() {
			d.snapshot.ValidFields |= rdsconst.FieldAF
		}
	}

	return fields
}

func (d *Decoder) setDIBit(bit rdsconst.DIFlag, value bool) {
	if value {
		d.newDI |= uint8(bit)
	} else {
		d.newDI &^= uint8(bit)
	}
}
