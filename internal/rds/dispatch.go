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

// groupDecoders maps a 4-bit group id to its type-specific decoder. Unset
// entries (nil) are group ids this decoder does not interpret; they are
// still counted in GroupTypeCount but otherwise produce no fields. Mirrors
// the shape of a dispatch-by-function-pointer table while keeping
// unimplemented ids visibly absent rather than falling into a silent
// default case.
var groupDecoders = [16]func(*Decoder) rdsconst.FieldSet{
	0:  (*Decoder).decodeGroup0,
	1:  (*Decoder).decodeGroup1,
	2:  (*Decoder).decodeGroup2,
	3:  (*Decoder).decodeGroup3,
	4:  (*Decoder).decodeGroup4,
	10: (*Decoder).decodeGroup10,
}

// decodeGroup runs once all four raw blocks of a group have been collected.
// It decodes the group-type-independent fields (PI, group id/version, TP,
// PTY), stashes the C/D payload, updates per-group-type statistics, and
// dispatches to the registered type-specific decoder.
func (d *Decoder) decodeGroup() rdsconst.FieldSet {
	d.group = Group{}

	var fields rdsconst.FieldSet
	fields |= d.decodeA(d.raw[0])
	fields |= d.decodeB(d.raw[1])
	d.decodeC(d.raw[2])
	d.decodeD(d.raw[3])

	d.snapshot.Statistics.GroupTypeCount[d.group.GroupID]++
	if decodeFn := groupDecoders[d.group.GroupID]; decodeFn != nil {
		fields |= decodeFn(d)
	}

	return fields
}

// decodeA interprets block A, which always carries the Program
// Identification code. PI is only accepted once the same value has been
// received twice in a row (a channel-switch confirmation).
func (d *Decoder) decodeA(b rdswire.Block) rdsconst.FieldSet {
	pi := uint16(b.MSB)<<8 | uint16(b.LSB)
	d.group.PI = pi

	if d.piValidator.propose(d.snapshot.PI, pi) {
		d.snapshot.PI = pi
		d.snapshot.ValidFields |= rdsconst.FieldPI
		return rdsconst.FieldPI
	}
	return 0
}

// decodeB interprets block B: group id/version, TP (applied immediately,
// no duplicate-acceptance), PTY (duplicate-acceptance), and the 5 bits of
// group-type-dependent payload stashed as DataBLSB.
func (d *Decoder) decodeB(b rdswire.Block) rdsconst.FieldSet {
	var fields rdsconst.FieldSet

	d.group.GroupID = b.MSB >> 4
	if b.MSB&0x08 != 0 {
		d.group.GroupVersion = rdsconst.VersionB
	} else {
		d.group.GroupVersion = rdsconst.VersionA
	}

	tp := b.MSB&0x04 != 0
	d.group.TP = tp
	if d.snapshot.TP != tp {
		d.snapshot.TP = tp
		fields |= rdsconst.FieldTP
	}
	d.snapshot.ValidFields |= rdsconst.FieldTP

	d.group.DataBLSB = b.LSB & 0x1f

	pty := (b.MSB<<3 | b.LSB>>5) & 0x1f
	if d.ptyValidator.propose(d.snapshot.PTY, pty) {
		d.snapshot.PTY = pty
		d.snapshot.ValidFields |= rdsconst.FieldPTY
		fields |= rdsconst.FieldPTY
	}

	return fields
}

// decodeC stashes block C's raw payload. It may carry either the group's PI
// (version B) or type-dependent data (version A); interpretation is always
// deferred to the per-group-type decoder.
func (d *Decoder) decodeC(b rdswire.Block) {
	d.group.DataCMSB = b.MSB
	d.group.DataCLSB = b.LSB
}

// decodeD stashes block D's raw payload, always type-dependent data.
func (d *Decoder) decodeD(b rdswire.Block) {
	d.group.DataDMSB = b.MSB
	d.group.DataDLSB = b.LSB
}
