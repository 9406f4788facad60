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

// Package cmd implements the rdsctl command-line tool: replaying recorded
// RDS/RBDS block streams through a decoder, serving a live status dashboard
// over one, and scripting the decoder's pure lookup tables.
package cmd

import (
	"context"
	"fmt"

	"github.com/USA-RedDragon/configulator"
	"github.com/spf13/cobra"

	"github.com/kb9vww/rdsctl/internal/config"
)

// NewCommand builds the rdsctl root command and all its subcommands.
func NewCommand(version, commit string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rdsctl",
		Version: fmt.Sprintf("%s - %s", version, commit),
		Annotations: map[string]string{
			"version": version,
			"commit":  commit,
		},
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	cmd.AddCommand(newReplayCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newPTYCommand())
	cmd.AddCommand(newCountryCommand())

	return cmd
}

// loadConfig loads the configuration configulator bound into ctx.
func loadConfig(ctx context.Context) (*config.Config, error) {
	c, err := configulator.FromContext[config.Config](ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get config from context: %w", err)
	}

	cfg, err := c.LoadWithoutValidation()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
