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

// AFSet is the accepted Alternative Frequency list: a small fixed-capacity,
// deduplicated set of carrier frequencies in Hz plus the station-announced
// total count.
type AFSet struct {
	Frequencies [rdsconst.MaxAFCount]uint32
	Size        int
	Announced   int
}

// addFrequency inserts freq if it isn't already present and there is room
// for it under both the hard cap and the station's own announced count.
// Reports whether the frequency was newly added.
func (af *AFSet) addFrequency(freq uint32) bool {
	if af.Size >= rdsconst.MaxAFCount || af.Size >= af.Announced {
		return false
	}
	for i := 0; i < af.Size; i++ {
		if af.Frequencies[i] == freq {
			return false
		}
	}
	af.Frequencies[af.Size] = freq
	af.Size++
	return true
}

// addCode converts a single AF code byte into a frequency and adds it.
// code == 0 ("not to be used") is always a no-op.
func (af *AFSet) addCode(code uint8, isVHF bool, lfmf bool) bool {
	if code == 0 {
		return false
	}
	var freq uint32
	switch {
	case isVHF:
		freq = 87_500_000 + uint32(code)*100_000
	case lfmf && code <= 15:
		freq = 152_000 + uint32(code)*9_000
	default:
		freq = 531_000 + uint32(code)*9_000
	}
	return af.addFrequency(freq)
}

// addAF decodes the AF information carried in block C of a 0A group
// (data_c_msb, data_c_lsb) per IEC 62106 §6.2.1.6 and folds any new
// frequencies into af. Reports whether anything changed.
func (af *AFSet) addAF(cMSB, cLSB uint8) (updated bool) {
	// 250: the byte that follows is an LF/MF frequency index, not a VHF one.
	if cMSB == 250 {
		if af.addCode(cLSB, false, true) {
			updated = true
		}
		cLSB = 255 // consumed; skip the generic 1..204 handling below
	}

	// 224..249: announcement of the total AF count (224 = 0, 249 = 25).
	if cMSB >= 224 && cMSB <= 249 {
		af.Announced = int(cMSB) - 224
	}

	if cMSB < 205 {
		if af.addCode(cMSB, true, false) {
			updated = true
		}
	}
	if cLSB < 205 {
		if af.addCode(cLSB, true, false) {
			updated = true
		}
	}

	return updated
}

// complete reports whether every announced AF has been received.
func (af *AFSet) complete() bool {
	return af.Announced != 0 && af.Size >= af.Announced
}
