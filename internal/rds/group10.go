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

// decodeGroup10 decodes the Program Type Name (version A only). PTYN
// arrives as two 4-character halves, each requiring two identical
// receptions before it is accepted; when both halves are valid they are
// concatenated into the 8-byte name.
func (d *Decoder) decodeGroup10() rdsconst.FieldSet {
	if d.group.GroupVersion != rdsconst.VersionA {
		return 0
	}

	var fields rdsconst.FieldSet

	segment := d.group.DataBLSB & 0x01
	abFlag := d.group.DataBLSB&0x10 != 0

	if abFlag != d.snapshot.PTYNABFlag {
		d.snapshot.PTYNABFlag = abFlag
		d.snapshot.PTYN = [rdsconst.MaxPTYNLen]byte{}
		d.newPTYN = [2][4]byte{}
		d.newPTYNValid = [2]bool{}
		d.snapshot.ValidFields &^= rdsconst.FieldPTYN
		fields |= rdsconst.FieldPTYN
	}

	half := [4]byte{d.group.DataCMSB, d.group.DataCLSB, d.group.DataDMSB, d.group.DataDLSB}
	if half == d.newPTYN[segment] {
		d.newPTYNValid[segment] = true
	} else {
		d.newPTYN[segment] = half
		d.newPTYNValid[segment] = false
	}

	if d.newPTYNValid[0] && d.newPTYNValid[1] {
		copy(d.snapshot.PTYN[0:4], d.newPTYN[0][:])
		copy(d.snapshot.PTYN[4:8], d.newPTYN[1][:])
		d.snapshot.ValidFields |= rdsconst.FieldPTYN
		fields |= rdsconst.FieldPTYN
	}

	return fields
}
