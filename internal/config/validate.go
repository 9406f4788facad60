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

import (
	"errors"
	"time"
)

var (
	// ErrInvalidLogLevel indicates that the provided log level is not valid.
	ErrInvalidLogLevel = errors.New("invalid log level provided")
	// ErrInvalidRedisHost indicates that the provided Redis host is not valid.
	ErrInvalidRedisHost = errors.New("invalid Redis host provided")
	// ErrInvalidRedisPort indicates that the provided Redis port is not valid.
	ErrInvalidRedisPort = errors.New("invalid Redis port provided")
	// ErrInvalidArchiveDriver indicates that the provided archive driver is not valid.
	ErrInvalidArchiveDriver = errors.New("invalid archive driver provided")
	// ErrInvalidArchiveHost indicates that the provided archive host is not valid.
	ErrInvalidArchiveHost = errors.New("invalid archive host provided")
	// ErrInvalidArchivePort indicates that the provided archive port is not valid.
	ErrInvalidArchivePort = errors.New("invalid archive port provided")
	// ErrInvalidArchiveName indicates that the provided archive database name is not valid.
	ErrInvalidArchiveName = errors.New("invalid archive database name provided")
	// ErrInvalidHTTPHost indicates that the provided HTTP host is not valid.
	ErrInvalidHTTPHost = errors.New("invalid HTTP host provided")
	// ErrInvalidHTTPPort indicates that the provided HTTP port is not valid.
	ErrInvalidHTTPPort = errors.New("invalid HTTP port provided")
	// ErrHTTPCanonicalHostRequired indicates that the canonical host is required.
	ErrHTTPCanonicalHostRequired = errors.New("canonical host is required for generating absolute URLs in the HTTP server")
	// ErrHTTPRobotsTXTModeInvalid indicates that the provided robots.txt mode is not valid.
	ErrHTTPRobotsTXTModeInvalid = errors.New("invalid robots.txt mode provided, must be one of allow, disabled, or custom")
	// ErrInvalidHTTPRobotsTXTContent indicates that the robots.txt content is required when the mode is custom.
	ErrInvalidHTTPRobotsTXTContent = errors.New("invalid robots.txt content provided, must be non-empty when mode is custom")
	// ErrInvalidMetricsBindAddress indicates that the provided metrics server bind address is not valid.
	ErrInvalidMetricsBindAddress = errors.New("invalid metrics server bind address provided")
	// ErrInvalidMetricsPort indicates that the provided metrics server port is not valid.
	ErrInvalidMetricsPort = errors.New("invalid metrics server port provided")
	// ErrInvalidPProfBindAddress indicates that the provided PProf server bind address is not valid.
	ErrInvalidPProfBindAddress = errors.New("invalid PProf server bind address provided")
	// ErrInvalidPProfPort indicates that the provided PProf server port is not valid.
	ErrInvalidPProfPort = errors.New("invalid PProf server port provided")
	// ErrReplaySourceRequired indicates that no replay source was given.
	ErrReplaySourceRequired = errors.New("replay source is required")
	// ErrInvalidRollupInterval indicates that the schedule rollup interval did not parse.
	ErrInvalidRollupInterval = errors.New("invalid rollup interval provided")
)

// Validate validates the Redis configuration.
func (r Redis) Validate() error {
	if !r.Enabled {
		return nil
	}
	if r.Host == "" {
		return ErrInvalidRedisHost
	}
	if r.Port <= 0 || r.Port > 65535 {
		return ErrInvalidRedisPort
	}
	return nil
}

// Validate validates the Archive configuration.
func (a Archive) Validate() error {
	if a.Driver != ArchiveDriverSQLite &&
		a.Driver != ArchiveDriverPostgres &&
		a.Driver != ArchiveDriverMySQL {
		return ErrInvalidArchiveDriver
	}
	if a.Driver != ArchiveDriverSQLite && a.Host == "" {
		return ErrInvalidArchiveHost
	}
	if a.Driver != ArchiveDriverSQLite && (a.Port <= 0 || a.Port > 65535) {
		return ErrInvalidArchivePort
	}
	if a.Database == "" {
		return ErrInvalidArchiveName
	}
	return nil
}

// Validate validates the RobotsTXT configuration.
func (r RobotsTXT) Validate() error {
	if r.Mode != RobotsTXTModeAllow &&
		r.Mode != RobotsTXTModeDisabled &&
		r.Mode != RobotsTXTModeCustom {
		return ErrHTTPRobotsTXTModeInvalid
	}
	if r.Mode == RobotsTXTModeCustom && r.Content == "" {
		return ErrInvalidHTTPRobotsTXTContent
	}
	return nil
}

// Validate validates the HTTP configuration.
func (h HTTP) Validate() error {
	if h.Bind == "" {
		return ErrInvalidHTTPHost
	}
	if h.Port <= 0 || h.Port > 65535 {
		return ErrInvalidHTTPPort
	}
	if h.CanonicalHost == "" {
		return ErrHTTPCanonicalHostRequired
	}
	if err := h.RobotsTXT.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate validates the Metrics configuration.
func (m Metrics) Validate() error {
	if !m.Enabled {
		return nil
	}
	if m.Bind == "" {
		return ErrInvalidMetricsBindAddress
	}
	if m.Port <= 0 || m.Port > 65535 {
		return ErrInvalidMetricsPort
	}
	return nil
}

// Validate validates the PProf configuration.
func (p PProf) Validate() error {
	if !p.Enabled {
		return nil
	}
	if p.Bind == "" {
		return ErrInvalidPProfBindAddress
	}
	if p.Port <= 0 || p.Port > 65535 {
		return ErrInvalidPProfPort
	}
	return nil
}

// Validate validates the Replay configuration. An empty Source is only an
// error when replay is actually invoked, not at process startup (`serve`
// runs without a Source and decodes one only when it is set), so
// Config.Validate does not include this check.
func (r Replay) Validate() error {
	if r.Source == "" {
		return ErrReplaySourceRequired
	}
	return nil
}

// Validate validates the Schedule configuration.
func (s Schedule) Validate() error {
	if _, err := time.ParseDuration(s.RollupInterval); err != nil {
		return ErrInvalidRollupInterval
	}
	return nil
}

// Validate checks every section of Config and returns the first error
// encountered, in the order a human reading the struct top to bottom
// would hit them.
func (c Config) Validate() error {
	if c.LogLevel != LogLevelDebug &&
		c.LogLevel != LogLevelInfo &&
		c.LogLevel != LogLevelWarn &&
		c.LogLevel != LogLevelError {
		return ErrInvalidLogLevel
	}
	if err := c.Redis.Validate(); err != nil {
		return err
	}
	if err := c.Archive.Validate(); err != nil {
		return err
	}
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Schedule.Validate(); err != nil {
		return err
	}
	return nil
}

// ValidateWithFields runs every section's Validate independently and
// collects all failures, instead of stopping at the first one — used by
// the status server's /config diagnostics endpoint so an operator sees
// every problem in one response.
func (c Config) ValidateWithFields() []error {
	var errs []error
	if c.LogLevel != LogLevelDebug &&
		c.LogLevel != LogLevelInfo &&
		c.LogLevel != LogLevelWarn &&
		c.LogLevel != LogLevelError {
		errs = append(errs, ErrInvalidLogLevel)
	}
	if err := c.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Archive.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.HTTP.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Metrics.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.PProf.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Schedule.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// ValidateWithFields reports every Redis validation failure instead of
// just the first, mirroring Config.ValidateWithFields for a single section.
func (r Redis) ValidateWithFields() []error {
	var errs []error
	if !r.Enabled {
		return errs
	}
	if r.Host == "" {
		errs = append(errs, ErrInvalidRedisHost)
	}
	if r.Port <= 0 || r.Port > 65535 {
		errs = append(errs, ErrInvalidRedisPort)
	}
	return errs
}
