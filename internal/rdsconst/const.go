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

// Package rdsconst holds the constants shared by the RDS/RBDS decoder and
// its consumers: block identifiers, wire flag bits, field bits, and the
// fixed buffer sizes mandated by IEC 62106.
package rdsconst

// BlockID identifies which of the four (or five, counting C') positions in
// an RDS group a block occupies.
type BlockID uint8

// Block identifiers, packed into the low 3 bits of the wire tag byte.
const (
	BlockA  BlockID = 0
	BlockB  BlockID = 1
	BlockC  BlockID = 2
	BlockD  BlockID = 3
	BlockCp BlockID = 4 // C', the version-B alternative to block C
)

// Wire tag flag bits, above the 3-bit block identifier.
const (
	FlagBlockError     uint8 = 1 << 3
	FlagBlockCorrected uint8 = 1 << 4
)

// BlockIDMask isolates the block identifier from a wire tag byte.
const BlockIDMask uint8 = 0x07

// FieldSet is a bitset naming which public snapshot fields changed as a
// result of an Ingest call.
type FieldSet uint32

// Field bits returned from Decoder.Ingest.
const (
	FieldPI FieldSet = 1 << iota
	FieldPS
	FieldPTY
	FieldPTYN
	FieldTP
	FieldTA
	FieldMS
	FieldDI
	FieldECC
	FieldLC
	FieldAF
	FieldRT
	FieldTIME
	FieldODA
)

// Has reports whether all bits of other are set in f.
func (f FieldSet) Has(other FieldSet) bool {
	return f&other == other
}

// DIFlag is one bit of the Decoder Information nibble.
type DIFlag uint8

// Decoder Information bits, in the order they arrive (segments 0..3).
const (
	DIFlagStereo         DIFlag = 1 << 0
	DIFlagArtificialHead DIFlag = 1 << 1
	DIFlagCompressed     DIFlag = 1 << 2
	DIFlagStaticPTY      DIFlag = 1 << 3
)

// GroupVersion is the A/B variant of an RDS group.
type GroupVersion byte

// The two group versions.
const (
	VersionA GroupVersion = 'A'
	VersionB GroupVersion = 'B'
)

// Fixed buffer sizes mandated by IEC 62106 and this decoder's caps.
const (
	MaxAFCount  = 25
	MaxODACount = 16
	MaxPSLen    = 8
	MaxRTLen    = 64
	MaxPTYNLen  = 8
)
