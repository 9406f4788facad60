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

package cmd_test

import (
	"testing"

	"github.com/kb9vww/rdsctl/cmd"
)

func TestNewCommandRegistersSubcommands(t *testing.T) {
	t.Parallel()
	root := cmd.NewCommand("0.0.0-test", "deadbeef")

	want := map[string]bool{"replay": false, "serve": false, "pty": false, "country": false}
	for _, sub := range root.Commands() {
		name := sub.Name()
		if _, ok := want[name]; ok {
			want[name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestNewCommandReportsVersion(t *testing.T) {
	t.Parallel()
	root := cmd.NewCommand("1.2.3", "abc123")
	if root.Annotations["version"] != "1.2.3" {
		t.Errorf("expected version annotation 1.2.3, got %q", root.Annotations["version"])
	}
	if root.Annotations["commit"] != "abc123" {
		t.Errorf("expected commit annotation abc123, got %q", root.Annotations["commit"])
	}
}
