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

import "testing"

func TestAFSetAnnouncedThenVHF(t *testing.T) {
	t.Parallel()
	var af AFSet

	// 224 + 2 = announce 2 frequencies, first carried in the same byte pair.
	if !af.addAF(226, 10) {
		t.Fatalf("addAF: want updated")
	}
	if af.Announced != 2 {
		t.Fatalf("Announced = %d, want 2", af.Announced)
	}
	if af.Size != 1 || af.Frequencies[0] != 87_500_000+10*100_000 {
		t.Fatalf("unexpected AF state: %+v", af)
	}
	if af.complete() {
		t.Fatalf("complete() = true before all announced frequencies arrive")
	}

	if !af.addAF(20, 255) {
		t.Fatalf("addAF: want updated for second frequency")
	}
	if !af.complete() {
		t.Fatalf("complete() = false after all announced frequencies arrived")
	}
}

func TestAFSetDedupAndCap(t *testing.T) {
	t.Parallel()
	var af AFSet
	af.Announced = 25

	for i := 0; i < 30; i++ {
		af.addAF(10, 255)
	}
	if af.Size != 1 {
		t.Fatalf("Size = %d, want 1 (duplicate frequency)", af.Size)
	}

	for i := 1; i <= 30; i++ {
		af.addAF(uint8(i), 255)
	}
	if af.Size > 25 {
		t.Fatalf("Size = %d, exceeds MaxAFCount", af.Size)
	}
}

func TestAFSetLFMFEscape(t *testing.T) {
	t.Parallel()
	var af AFSet
	af.Announced = 2

	// cMSB == 250 escapes cLSB as an LF/MF index rather than a VHF code.
	if !af.addAF(250, 5) {
		t.Fatalf("addAF: want updated for LF/MF escape")
	}
	want := uint32(152_000 + 5*9_000)
	if af.Frequencies[0] != want {
		t.Fatalf("Frequencies[0] = %d, want %d", af.Frequencies[0], want)
	}

	af2 := AFSet{Announced: 2}
	af2.addAF(250, 20)
	want2 := uint32(531_000 + 20*9_000)
	if af2.Frequencies[0] != want2 {
		t.Fatalf("Frequencies[0] = %d, want %d", af2.Frequencies[0], want2)
	}
}

func TestAFSetZeroCodeIsNoOp(t *testing.T) {
	t.Parallel()
	var af AFSet
	af.Announced = 5
	if af.addAF(0, 0) {
		t.Fatalf("addAF(0, 0): want no-op")
	}
	if af.Size != 0 {
		t.Fatalf("Size = %d, want 0", af.Size)
	}
}
