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

//nolint:golint,wrapcheck
package models

import (
	gorm_seeder "github.com/kachit/gorm-seeder"
	"gorm.io/gorm"

	"github.com/kb9vww/rdsctl/internal/rds"
)

// PTYLabel is a row of the seeded RBDS Program Type lookup table, letting
// archive queries JOIN a human label onto a historical PTY code without the
// decoder package itself ever touching a database.
type PTYLabel struct {
	Code  uint8  `json:"code" gorm:"primaryKey"`
	Label string `json:"label"`
}

// CountryCode is a row of the seeded ECC/country-code-nibble lookup table.
// PI's top nibble selects which of the 16 CountryCode rows sharing an ECC
// applies to a given station.
type CountryCode struct {
	ECC         uint8  `json:"ecc" gorm:"primaryKey"`
	CountryCode uint8  `json:"country_code" gorm:"primaryKey"`
	Label       string `json:"label"`
}

type PTYLabelSeeder struct {
	gorm_seeder.SeederAbstract
}

const PTYLabelSeederRows = 32

func NewPTYLabelSeeder(cfg gorm_seeder.SeederConfiguration) PTYLabelSeeder {
	return PTYLabelSeeder{gorm_seeder.NewSeederAbstract(cfg)}
}

func (s *PTYLabelSeeder) Seed(db *gorm.DB) error {
	rows := make([]PTYLabel, 0, PTYLabelSeederRows)
	for code := uint8(0); code < PTYLabelSeederRows; code++ {
		label, ok := rds.PTYLabel(code, true)
		if !ok {
			continue
		}
		rows = append(rows, PTYLabel{Code: code, Label: label})
	}
	return db.CreateInBatches(rows, s.Configuration.Rows).Error
}

func (s *PTYLabelSeeder) Clear(db *gorm.DB) error {
	return db.Where("1 = 1").Delete(&PTYLabel{}).Error
}

type CountryCodeSeeder struct {
	gorm_seeder.SeederAbstract
}

const CountryCodeSeederRows = 80

func NewCountryCodeSeeder(cfg gorm_seeder.SeederConfiguration) CountryCodeSeeder {
	return CountryCodeSeeder{gorm_seeder.NewSeederAbstract(cfg)}
}

func (s *CountryCodeSeeder) Seed(db *gorm.DB) error {
	rows := make([]CountryCode, 0, CountryCodeSeederRows)
	for eccLow := uint8(0); eccLow <= 0x04; eccLow++ {
		ecc := 0xe0 | eccLow
		for countryCode := uint16(0); countryCode < 16; countryCode++ {
			pi := countryCode << 12
			label := rds.CountryLabel(ecc, pi)
			if label == "Unknown" {
				continue
			}
			rows = append(rows, CountryCode{ECC: ecc, CountryCode: uint8(countryCode), Label: label})
		}
	}
	return db.CreateInBatches(rows, s.Configuration.Rows).Error
}

func (s *CountryCodeSeeder) Clear(db *gorm.DB) error {
	return db.Where("1 = 1").Delete(&CountryCode{}).Error
}
