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

package rdswire_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kb9vww/rdsctl/internal/rdsconst"
	"github.com/kb9vww/rdsctl/internal/rdswire"
)

func TestNewBlockRoundTrip(t *testing.T) {
	t.Parallel()
	b := rdswire.NewBlock(0xab, 0xcd, rdsconst.BlockCp, true, false)
	if b.BlockID() != rdsconst.BlockCp {
		t.Errorf("BlockID() = %d, want %d", b.BlockID(), rdsconst.BlockCp)
	}
	if !b.Errored() {
		t.Errorf("Errored() = false, want true")
	}
	if b.Corrected() {
		t.Errorf("Corrected() = true, want false")
	}
}

func TestStreamLineRoundTrip(t *testing.T) {
	t.Parallel()
	want := rdswire.NewBlock(0x12, 0x34, rdsconst.BlockB, false, true)
	line := rdswire.EncodeStreamLine(want)
	got, ok, err := rdswire.DecodeStreamLine(line)
	if err != nil {
		t.Fatalf("DecodeStreamLine: %v", err)
	}
	if !ok {
		t.Fatalf("DecodeStreamLine: ok = false, want true")
	}
	if !cmp.Equal(want, got) {
		t.Errorf("round trip mismatch: %s", cmp.Diff(want, got))
	}
}

func TestDecodeStreamLineSkipsComments(t *testing.T) {
	t.Parallel()
	for _, line := range []string{"", "   ", "# a comment"} {
		_, ok, err := rdswire.DecodeStreamLine(line)
		if err != nil {
			t.Fatalf("DecodeStreamLine(%q): %v", line, err)
		}
		if ok {
			t.Errorf("DecodeStreamLine(%q): ok = true, want false", line)
		}
	}
}

func TestDecodeStreamLineMalformed(t *testing.T) {
	t.Parallel()
	for _, line := range []string{"aa,bb", "zz,00,00", "aa,bb,cc,dd"} {
		if _, _, err := rdswire.DecodeStreamLine(line); err == nil {
			t.Errorf("DecodeStreamLine(%q): want error", line)
		}
	}
}

func FuzzStreamLineRoundTrip(f *testing.F) {
	f.Add(uint8(0), uint8(0), uint8(0))
	f.Add(uint8(0xff), uint8(0xff), uint8(0xff))
	f.Fuzz(func(t *testing.T, lsb, msb, tag uint8) {
		want := rdswire.Block{LSB: lsb, MSB: msb, Tag: tag}
		line := rdswire.EncodeStreamLine(want)
		got, ok, err := rdswire.DecodeStreamLine(line)
		if err != nil {
			t.Fatalf("DecodeStreamLine(%q): %v", line, err)
		}
		if !ok {
			t.Fatalf("DecodeStreamLine(%q): ok = false", line)
		}
		if !want.Equal(got) {
			t.Fatalf("round trip mismatch: want %+v, got %+v", want, got)
		}
	})
}
