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

import (
	"fmt"
	"math"
	"time"
)

// decodeMJD converts a 17-bit Modified Julian Day code plus UTC hour,
// minute, and signed half-hour local offset into an absolute time.Time
// carrying a time.FixedZone matching the broadcast offset. The conversion
// follows the Annex G formulas of IEC 62106.
func decodeMJD(mjd uint32, utcHour, utcMinute, utcOffset uint8) time.Time {
	jd := float64(mjd)

	y := math.Floor((jd - 15078.2) / 365.25)
	m := math.Floor((jd - 14956.1 - math.Floor(y*365.25)) / 30.6001)
	d := jd - 14956 - math.Floor(y*365.25) - math.Floor(m*30.6001)

	k := 0.0
	if m == 14 || m == 15 {
		k = 1
	}
	y = y + k
	m = m - 1 - k*12

	year := int(y) + 1900
	month := time.Month(int(m))
	day := int(d)

	utcTime := time.Date(year, month, day, int(utcHour), int(utcMinute), 0, 0, time.UTC)

	halfHours := int(utcOffset & 0x1f)
	sign := 1
	if utcOffset&0x20 != 0 {
		sign = -1
	}
	offsetSeconds := sign * halfHours * 1800

	absSeconds := offsetSeconds
	if absSeconds < 0 {
		absSeconds = -absSeconds
	}
	signChar := "+"
	if sign < 0 {
		signChar = "-"
	}
	zoneName := fmt.Sprintf("RDS%s%02d:%02d", signChar, absSeconds/3600, (absSeconds%3600)/60)
	zone := time.FixedZone(zoneName, offsetSeconds)

	return utcTime.In(zone)
}
