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

// Package config defines the nested configuration tree loaded by
// configulator from the environment and command-line flags, and the
// per-section Validate methods that check it.
package config

// Config stores the whole application configuration as a tree of
// per-concern structs, each independently validated.
type Config struct {
	LogLevel LogLevel `name:"log-level" description:"Logging verbosity" default:"info"`

	HTTP     HTTP     `name:"http"`
	Redis    Redis    `name:"redis"`
	Archive  Archive  `name:"archive"`
	Replay   Replay   `name:"replay"`
	Metrics  Metrics  `name:"metrics"`
	PProf    PProf    `name:"pprof"`
	Schedule Schedule `name:"schedule"`
}

// HTTP configures the status/dashboard server (internal/http).
type HTTP struct {
	Bind          string    `name:"bind" description:"Address the status server listens on" default:"[::]"`
	Port          int       `name:"port" description:"Port the status server listens on" default:"3005"`
	CanonicalHost string    `name:"canonical-host" description:"Absolute base URL used to build links back to the server"`
	CORSHosts     []string  `name:"cors-hosts" description:"Origins allowed to make cross-origin requests to the dashboard API"`
	RobotsTXT     RobotsTXT `name:"robots-txt"`
}

// RobotsTXT configures what the status server's /robots.txt endpoint serves.
type RobotsTXT struct {
	Mode    RobotsTXTMode `name:"mode" description:"allow, disabled, or custom" default:"disabled"`
	Content string        `name:"content" description:"Body served when mode is custom"`
}

// Redis configures the optional Redis-backed pubsub fan-out
// (internal/pubsub) used when multiple rdsctl instances share updates.
type Redis struct {
	Enabled  bool   `name:"enabled" description:"Use Redis pub/sub instead of the in-memory implementation"`
	Host     string `name:"host" default:"localhost"`
	Port     int    `name:"port" default:"6379"`
	Password string `name:"password"`
}

// Archive configures the station-observation store (internal/archive).
type Archive struct {
	Driver   ArchiveDriver `name:"driver" description:"sqlite, postgres, or mysql" default:"sqlite"`
	Host     string        `name:"host"`
	Port     int           `name:"port"`
	Database string        `name:"database" default:"rdsctl.db"`
	User     string        `name:"user"`
	Password string        `name:"password"`
}

// Replay configures the recorded block source read by `rdsctl replay` and,
// when Source is set, decoded by `rdsctl serve`.
type Replay struct {
	Source string `name:"source" description:"Path to a recorded block stream, or - for stdin"`
	Loop   bool   `name:"loop" description:"Replay the source repeatedly instead of exiting at EOF"`
}

// Metrics configures the Prometheus metrics server (internal/metrics).
type Metrics struct {
	Enabled      bool   `name:"enabled" default:"true"`
	Bind         string `name:"bind" default:"[::]"`
	Port         int    `name:"port" default:"9000"`
	OTLPEndpoint string `name:"otlp-endpoint" description:"OTLP gRPC collector endpoint; tracing is disabled when empty"`
}

// PProf configures the optional debug/pprof server.
type PProf struct {
	Enabled bool   `name:"enabled"`
	Bind    string `name:"bind" default:"[::]"`
	Port    int    `name:"port" default:"6060"`
}

// Schedule configures the periodic archive rollup job (internal/schedule).
type Schedule struct {
	RollupInterval string `name:"rollup-interval" description:"How often to prune station observations not seen for a week, as a time.ParseDuration string" default:"1h"`
}
