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

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kb9vww/rdsctl/internal/rds"
)

func newPTYCommand() *cobra.Command {
	var rbds bool

	cmd := &cobra.Command{
		Use:   "pty <code>",
		Short: "Print the Program Type label for a PTY code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return fmt.Errorf("invalid PTY code %q: %w", args[0], err)
			}

			label, ok := rds.PTYLabel(uint8(code), rbds)
			if !ok {
				return fmt.Errorf("no PTY label for code %d", code)
			}

			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}

	cmd.Flags().BoolVar(&rbds, "rbds", true, "use RBDS (North American) labels rather than RDS (European)")
	return cmd
}

func newCountryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "country <ecc> <pi>",
		Short: "Print the country label for an ECC and PI code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ecc, err := strconv.ParseUint(args[0], 0, 8)
			if err != nil {
				return fmt.Errorf("invalid ECC %q: %w", args[0], err)
			}
			pi, err := strconv.ParseUint(args[1], 0, 16)
			if err != nil {
				return fmt.Errorf("invalid PI %q: %w", args[1], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), rds.CountryLabel(uint8(ecc), uint16(pi)))
			return nil
		},
	}
}
