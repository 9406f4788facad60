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

package config_test

import (
	"errors"
	"testing"

	"github.com/kb9vww/rdsctl/internal/config"
)

func makeValidConfig() config.Config {
	return config.Config{
		LogLevel: config.LogLevelInfo,
		HTTP: config.HTTP{
			Bind:          "[::]",
			Port:          3005,
			CanonicalHost: "http://localhost:3005",
			RobotsTXT: config.RobotsTXT{
				Mode: config.RobotsTXTModeDisabled,
			},
		},
		Archive: config.Archive{
			Driver:   config.ArchiveDriverSQLite,
			Database: "test.db",
		},
		Metrics: config.Metrics{Enabled: false},
		PProf:   config.PProf{Enabled: false},
		Schedule: config.Schedule{
			RollupInterval: "1h",
		},
	}
}

// --- Redis Validation ---

func TestRedisValidateDisabled(t *testing.T) {
	t.Parallel()
	r := config.Redis{Enabled: false}
	if err := r.Validate(); err != nil {
		t.Errorf("Expected nil error for disabled Redis, got %v", err)
	}
}

func TestRedisValidateEmptyHost(t *testing.T) {
	t.Parallel()
	r := config.Redis{Enabled: true, Host: "", Port: 6379}
	if !errors.Is(r.Validate(), config.ErrInvalidRedisHost) {
		t.Errorf("Expected ErrInvalidRedisHost, got %v", r.Validate())
	}
}

func TestRedisValidateInvalidPort(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		port int
	}{
		{"zero", 0},
		{"negative", -1},
		{"too high", 70000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := config.Redis{Enabled: true, Host: "localhost", Port: tt.port}
			if !errors.Is(r.Validate(), config.ErrInvalidRedisPort) {
				t.Errorf("Expected ErrInvalidRedisPort for port %d, got %v", tt.port, r.Validate())
			}
		})
	}
}

func TestRedisValidateValid(t *testing.T) {
	t.Parallel()
	r := config.Redis{Enabled: true, Host: "localhost", Port: 6379}
	if err := r.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestRedisValidateWithFieldsMultipleErrors(t *testing.T) {
	t.Parallel()
	r := config.Redis{Enabled: true, Host: "", Port: 0}
	errs := r.ValidateWithFields()
	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d", len(errs))
	}
}

// --- Archive Validation ---

func TestArchiveValidateInvalidDriver(t *testing.T) {
	t.Parallel()
	a := config.Archive{Driver: "invalid", Database: "test"}
	if !errors.Is(a.Validate(), config.ErrInvalidArchiveDriver) {
		t.Errorf("Expected ErrInvalidArchiveDriver, got %v", a.Validate())
	}
}

func TestArchiveValidateSQLiteNoHost(t *testing.T) {
	t.Parallel()
	a := config.Archive{Driver: config.ArchiveDriverSQLite, Database: "test.db"}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected nil error for SQLite without host, got %v", err)
	}
}

func TestArchiveValidatePostgresEmptyHost(t *testing.T) {
	t.Parallel()
	a := config.Archive{Driver: config.ArchiveDriverPostgres, Host: "", Port: 5432, Database: "test"}
	if !errors.Is(a.Validate(), config.ErrInvalidArchiveHost) {
		t.Errorf("Expected ErrInvalidArchiveHost, got %v", a.Validate())
	}
}

func TestArchiveValidatePostgresInvalidPort(t *testing.T) {
	t.Parallel()
	a := config.Archive{Driver: config.ArchiveDriverPostgres, Host: "localhost", Port: 0, Database: "test"}
	if !errors.Is(a.Validate(), config.ErrInvalidArchivePort) {
		t.Errorf("Expected ErrInvalidArchivePort, got %v", a.Validate())
	}
}

func TestArchiveValidateEmptyName(t *testing.T) {
	t.Parallel()
	a := config.Archive{Driver: config.ArchiveDriverSQLite, Database: ""}
	if !errors.Is(a.Validate(), config.ErrInvalidArchiveName) {
		t.Errorf("Expected ErrInvalidArchiveName, got %v", a.Validate())
	}
}

func TestArchiveValidatePostgresValid(t *testing.T) {
	t.Parallel()
	a := config.Archive{Driver: config.ArchiveDriverPostgres, Host: "localhost", Port: 5432, Database: "test"}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestArchiveValidateMySQLValid(t *testing.T) {
	t.Parallel()
	a := config.Archive{Driver: config.ArchiveDriverMySQL, Host: "localhost", Port: 3306, Database: "test"}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

// --- RobotsTXT Validation ---

func TestRobotsTXTValidateInvalidMode(t *testing.T) {
	t.Parallel()
	r := config.RobotsTXT{Mode: "bogus"}
	if !errors.Is(r.Validate(), config.ErrHTTPRobotsTXTModeInvalid) {
		t.Errorf("Expected ErrHTTPRobotsTXTModeInvalid, got %v", r.Validate())
	}
}

func TestRobotsTXTValidateCustomModeEmptyContent(t *testing.T) {
	t.Parallel()
	r := config.RobotsTXT{Mode: config.RobotsTXTModeCustom, Content: ""}
	if !errors.Is(r.Validate(), config.ErrInvalidHTTPRobotsTXTContent) {
		t.Errorf("Expected ErrInvalidHTTPRobotsTXTContent, got %v", r.Validate())
	}
}

func TestRobotsTXTValidateCustomModeWithContent(t *testing.T) {
	t.Parallel()
	r := config.RobotsTXT{Mode: config.RobotsTXTModeCustom, Content: "User-agent: *\nAllow: /"}
	if err := r.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

// --- HTTP Validation ---

func TestHTTPValidateEmptyBind(t *testing.T) {
	t.Parallel()
	h := config.HTTP{Bind: "", Port: 3005, CanonicalHost: "http://localhost", RobotsTXT: config.RobotsTXT{Mode: config.RobotsTXTModeDisabled}}
	if !errors.Is(h.Validate(), config.ErrInvalidHTTPHost) {
		t.Errorf("Expected ErrInvalidHTTPHost, got %v", h.Validate())
	}
}

func TestHTTPValidateInvalidPort(t *testing.T) {
	t.Parallel()
	h := config.HTTP{Bind: "[::]", Port: -1, CanonicalHost: "http://localhost", RobotsTXT: config.RobotsTXT{Mode: config.RobotsTXTModeDisabled}}
	if !errors.Is(h.Validate(), config.ErrInvalidHTTPPort) {
		t.Errorf("Expected ErrInvalidHTTPPort, got %v", h.Validate())
	}
}

func TestHTTPValidateEmptyCanonicalHost(t *testing.T) {
	t.Parallel()
	h := config.HTTP{Bind: "[::]", Port: 3005, CanonicalHost: "", RobotsTXT: config.RobotsTXT{Mode: config.RobotsTXTModeDisabled}}
	if !errors.Is(h.Validate(), config.ErrHTTPCanonicalHostRequired) {
		t.Errorf("Expected ErrHTTPCanonicalHostRequired, got %v", h.Validate())
	}
}

func TestHTTPValidateValid(t *testing.T) {
	t.Parallel()
	h := config.HTTP{Bind: "[::]", Port: 3005, CanonicalHost: "http://localhost:3005", RobotsTXT: config.RobotsTXT{Mode: config.RobotsTXTModeDisabled}}
	if err := h.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

// --- Metrics Validation ---

func TestMetricsValidateDisabled(t *testing.T) {
	t.Parallel()
	m := config.Metrics{Enabled: false}
	if err := m.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestMetricsValidateValid(t *testing.T) {
	t.Parallel()
	m := config.Metrics{Enabled: true, Bind: "[::]", Port: 9000}
	if err := m.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

// --- PProf Validation ---

func TestPProfValidateDisabled(t *testing.T) {
	t.Parallel()
	p := config.PProf{Enabled: false}
	if err := p.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestPProfValidateValid(t *testing.T) {
	t.Parallel()
	p := config.PProf{Enabled: true, Bind: "[::]", Port: 6060}
	if err := p.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

// --- Replay Validation ---

func TestReplayValidateEmptySource(t *testing.T) {
	t.Parallel()
	r := config.Replay{Source: ""}
	if !errors.Is(r.Validate(), config.ErrReplaySourceRequired) {
		t.Errorf("Expected ErrReplaySourceRequired, got %v", r.Validate())
	}
}

func TestReplayValidateValid(t *testing.T) {
	t.Parallel()
	r := config.Replay{Source: "capture.csv"}
	if err := r.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

// --- Schedule Validation ---

func TestScheduleValidateInvalidInterval(t *testing.T) {
	t.Parallel()
	s := config.Schedule{RollupInterval: "not-a-duration"}
	if !errors.Is(s.Validate(), config.ErrInvalidRollupInterval) {
		t.Errorf("Expected ErrInvalidRollupInterval, got %v", s.Validate())
	}
}

func TestScheduleValidateValid(t *testing.T) {
	t.Parallel()
	s := config.Schedule{RollupInterval: "30m"}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

// --- Full Config Validation ---

func TestConfigValidateInvalidLogLevel(t *testing.T) {
	t.Parallel()
	c := makeValidConfig()
	c.LogLevel = "invalid"
	if !errors.Is(c.Validate(), config.ErrInvalidLogLevel) {
		t.Errorf("Expected ErrInvalidLogLevel, got %v", c.Validate())
	}
}

func TestConfigValidateValid(t *testing.T) {
	t.Parallel()
	c := makeValidConfig()
	if err := c.Validate(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestConfigValidateAllLogLevels(t *testing.T) {
	t.Parallel()
	levels := []config.LogLevel{config.LogLevelDebug, config.LogLevelInfo, config.LogLevelWarn, config.LogLevelError}
	for _, level := range levels {
		t.Run(string(level), func(t *testing.T) {
			t.Parallel()
			c := makeValidConfig()
			c.LogLevel = level
			if err := c.Validate(); err != nil {
				t.Errorf("Expected nil error for log level %s, got %v", level, err)
			}
		})
	}
}

func TestConfigValidateWithFieldsReturnsMultipleErrors(t *testing.T) {
	t.Parallel()
	c := config.Config{
		LogLevel: "invalid",
		HTTP: config.HTTP{
			Bind: "",
			Port: 0,
		},
		Archive: config.Archive{
			Driver:   "invalid",
			Database: "",
		},
		Schedule: config.Schedule{RollupInterval: "bogus"},
	}
	errs := c.ValidateWithFields()
	if len(errs) < 4 {
		t.Errorf("Expected at least 4 validation errors, got %d", len(errs))
	}
}
