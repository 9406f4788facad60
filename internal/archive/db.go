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

// Package archive persists observed station identity (PI, PS, RT, PTY, ECC,
// LC) to a SQL database as a separate consumer of decoder snapshots, leaving
// internal/rds itself free of any I/O.
package archive

import (
	"fmt"
	"runtime"
	"time"

	"github.com/glebarez/sqlite"
	gorm_seeder "github.com/kachit/gorm-seeder"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kb9vww/rdsctl/internal/archive/migration"
	"github.com/kb9vww/rdsctl/internal/archive/models"
	"github.com/kb9vww/rdsctl/internal/config"
)

const (
	connsPerCPU = 4
	maxIdleTime = 10 * time.Minute

	ptyLabelSeederRows    = models.PTYLabelSeederRows
	countryCodeSeederRows = models.CountryCodeSeederRows
)

// MakeDB opens the archive database according to cfg.Archive.Driver, runs
// migrations, seeds the pty_label and country_code reference tables on
// first run, and tunes the connection pool the way the teacher's
// internal/db.MakeDB does.
func MakeDB(cfg *config.Config) (*gorm.DB, error) {
	dialect, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialect, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	if cfg.Metrics.OTLPEndpoint != "" {
		if err := db.Use(otelgorm.NewPlugin()); err != nil {
			return nil, fmt.Errorf("failed to trace archive database: %w", err)
		}
	}

	if err := migration.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate archive database: %w", err)
	}

	if err := seedReferenceTables(db); err != nil {
		return nil, fmt.Errorf("failed to seed archive reference tables: %w", err)
	}

	if cfg.Archive.Driver != config.ArchiveDriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access underlying archive connection pool: %w", err)
		}
		sqlDB.SetMaxIdleConns(runtime.GOMAXPROCS(0))
		sqlDB.SetMaxOpenConns(runtime.GOMAXPROCS(0) * connsPerCPU)
		sqlDB.SetConnMaxIdleTime(maxIdleTime)
	}

	return db, nil
}

func openDialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.Archive.Driver {
	case config.ArchiveDriverSQLite:
		return sqlite.Open(cfg.Archive.Database), nil
	case config.ArchiveDriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Archive.Host, cfg.Archive.Port, cfg.Archive.User, cfg.Archive.Password, cfg.Archive.Database)
		return postgres.Open(dsn), nil
	case config.ArchiveDriverMySQL:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.Archive.User, cfg.Archive.Password, cfg.Archive.Host, cfg.Archive.Port, cfg.Archive.Database)
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported archive driver: %s", cfg.Archive.Driver)
	}
}

func seedReferenceTables(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PTYLabel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count pty_label rows: %w", err)
	}
	if count > 0 {
		return nil
	}

	ptySeeder := models.NewPTYLabelSeeder(gorm_seeder.SeederConfiguration{Rows: ptyLabelSeederRows})
	countrySeeder := models.NewCountryCodeSeeder(gorm_seeder.SeederConfiguration{Rows: countryCodeSeederRows})
	stack := gorm_seeder.NewSeedersStack(db)
	stack.AddSeeder(&ptySeeder)
	stack.AddSeeder(&countrySeeder)
	return stack.Seed()
}
