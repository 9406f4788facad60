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

// Package rdswire defines the wire representation of a single RDS block and
// a minimal text framing for recording/replaying a stream of them. None of
// this is part of the decoder itself; it is the raw-block transport spec.md
// calls out of scope, given just enough shape to drive the replay CLI.
package rdswire

import (
	"fmt"

	"github.com/kb9vww/rdsctl/internal/rdsconst"
)

// Block is one 16-bit RDS data block plus its tag byte.
type Block struct {
	LSB byte
	MSB byte
	Tag byte
}

// BlockID extracts the block identifier from Tag.
func (b Block) BlockID() rdsconst.BlockID {
	return rdsconst.BlockID(b.Tag & rdsconst.BlockIDMask)
}

// Errored reports whether the transport flagged this block as uncorrectable.
func (b Block) Errored() bool {
	return b.Tag&rdsconst.FlagBlockError != 0
}

// Corrected reports whether the transport flagged this block as
// FEC-corrected.
func (b Block) Corrected() bool {
	return b.Tag&rdsconst.FlagBlockCorrected != 0
}

// NewBlock packs a block identifier and error/corrected flags into a Block.
func NewBlock(lsb, msb byte, id rdsconst.BlockID, errored, corrected bool) Block {
	tag := byte(id) & rdsconst.BlockIDMask
	if errored {
		tag |= rdsconst.FlagBlockError
	}
	if corrected {
		tag |= rdsconst.FlagBlockCorrected
	}
	return Block{LSB: lsb, MSB: msb, Tag: tag}
}

func (b Block) String() string {
	return fmt.Sprintf("Block{lsb=0x%02x msb=0x%02x id=%d err=%t corrected=%t}",
		b.LSB, b.MSB, b.BlockID(), b.Errored(), b.Corrected())
}

func (b Block) Equal(other Block) bool {
	return b.LSB == other.LSB && b.MSB == other.MSB && b.Tag == other.Tag
}
