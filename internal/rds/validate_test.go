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

func TestValidatorRequiresTwoIdenticalReceptions(t *testing.T) {
	t.Parallel()
	var v validator[uint8]
	var accepted uint8

	if changed := v.propose(accepted, 5); changed {
		t.Fatalf("first reception promoted without confirmation")
	}
	if changed := v.propose(accepted, 5); !changed {
		t.Fatalf("second identical reception did not promote")
	}
	accepted = 5

	if changed := v.propose(accepted, 5); changed {
		t.Fatalf("reception identical to accepted reported a change")
	}
}

func TestValidatorDiscardsStalePending(t *testing.T) {
	t.Parallel()
	var v validator[uint8]
	var accepted uint8

	v.propose(accepted, 7)
	// A different candidate replaces the pending one; it takes its own
	// two receptions to confirm.
	if changed := v.propose(accepted, 9); changed {
		t.Fatalf("differing candidate promoted on first reception")
	}
	if changed := v.propose(accepted, 7); changed {
		t.Fatalf("stale candidate promoted after being discarded")
	}
	// 7 displaced 9 as the pending candidate, so 9 starts over.
	v.propose(accepted, 9)
	if changed := v.propose(accepted, 9); !changed {
		t.Fatalf("fresh candidate did not promote after two receptions")
	}
}

func TestValidatorReset(t *testing.T) {
	t.Parallel()
	var v validator[uint8]
	v.propose(0, 3)
	v.reset()
	if changed := v.propose(0, 3); changed {
		t.Fatalf("propose after reset promoted on first reception")
	}
}
