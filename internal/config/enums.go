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

package config

// LogLevel represents the logging level for the application.
type LogLevel string

const (
	// LogLevelDebug is the debug logging level, providing detailed information.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the informational logging level, providing general information.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn is the warning logging level, indicating potential issues.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError is the error logging level, indicating serious issues.
	LogLevelError LogLevel = "error"
)

// ArchiveDriver represents the database backend used by internal/archive.
type ArchiveDriver string

const (
	// ArchiveDriverSQLite is the SQLite archive driver, the default for a
	// single-process replay or serve instance.
	ArchiveDriverSQLite ArchiveDriver = "sqlite"
	// ArchiveDriverPostgres is the PostgreSQL archive driver.
	ArchiveDriverPostgres ArchiveDriver = "postgres"
	// ArchiveDriverMySQL is the MySQL archive driver.
	ArchiveDriverMySQL ArchiveDriver = "mysql"
)

// RobotsTXTMode represents the mode for handling robots.txt on the status server.
type RobotsTXTMode string

const (
	// RobotsTXTModeAllow allows all robots to access the site.
	RobotsTXTModeAllow RobotsTXTMode = "allow"
	// RobotsTXTModeDisabled sends a robots.txt file that disallows all robots.
	RobotsTXTModeDisabled RobotsTXTMode = "disabled"
	// RobotsTXTModeCustom allows a custom robots.txt file to be served.
	RobotsTXTModeCustom RobotsTXTMode = "custom"
)
