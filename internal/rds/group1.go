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

// decodeGroup1 decodes slow labelling codes. Only version A groups carry
// them; version B carries a program item number this decoder does not
// interpret (spec Non-goals: no ERDS extensions beyond the enumerated
// group ids).
func (d *Decoder) decodeGroup1() rdsconst.FieldSet {
	if d.group.GroupVersion != rdsconst.VersionA {
		return 0
	}

	var fields rdsconst.FieldSet
	variant := (d.group.DataCMSB >> 4) & 0x07

	switch variant {
	case 0:
		ecc := d.group.DataCLSB
		if d.eccValidator.propose(d.snapshot.ECC, ecc) {
			d.snapshot.ECC = ecc
			d.snapshot.ValidFields |= rdsconst.FieldECC
			fields |= rdsconst.FieldECC
		}
	case 3:
		lc := d.group.DataCLSB
		if d.lcValidator.propose(d.snapshot.LC, lc) {
			d.snapshot.ValidFields |= rdsconst.FieldLC
			d.snapshot.LC = lc
			fields |= rdsconst.FieldLC
		}
	}

	return fields
}
