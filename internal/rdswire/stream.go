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

package rdswire

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// EncodeStreamLine renders a Block as one "lsb,msb,tag" text line, each
// field a hex byte, suitable for recording a replay fixture.
func EncodeStreamLine(b Block) string {
	return fmt.Sprintf("%02x,%02x,%02x", b.LSB, b.MSB, b.Tag)
}

// DecodeStreamLine parses one line produced by EncodeStreamLine. Blank lines
// and lines starting with '#' are treated as comments and return ok=false
// with a nil error.
func DecodeStreamLine(line string) (b Block, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Block{}, false, nil
	}
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return Block{}, false, fmt.Errorf("rdswire: malformed line %q: want 3 comma-separated fields", line)
	}
	lsb, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 16, 8)
	if err != nil {
		return Block{}, false, fmt.Errorf("rdswire: bad lsb in %q: %w", line, err)
	}
	msb, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 16, 8)
	if err != nil {
		return Block{}, false, fmt.Errorf("rdswire: bad msb in %q: %w", line, err)
	}
	tag, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 16, 8)
	if err != nil {
		return Block{}, false, fmt.Errorf("rdswire: bad tag in %q: %w", line, err)
	}
	return Block{LSB: byte(lsb), MSB: byte(msb), Tag: byte(tag)}, true, nil
}

// ReadStream scans r line by line, calling fn for every decoded Block.
// Comment and blank lines are skipped. Scanning stops at the first decode
// error or when fn returns a non-nil error.
func ReadStream(r io.Reader, fn func(Block) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		b, ok, err := DecodeStreamLine(scanner.Text())
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := fn(b); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// WriteStream writes blocks to w, one EncodeStreamLine per line.
func WriteStream(w io.Writer, blocks []Block) error {
	bw := bufio.NewWriter(w)
	for _, b := range blocks {
		if _, err := bw.WriteString(EncodeStreamLine(b) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
