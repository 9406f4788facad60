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

// rdsPTYLabels and rbdsPTYLabels are the 32-entry Program Type tables,
// selected by PTYLabel's isRBDS argument. IEC 62106 Annex F / NRSC-4-B Annex D.
var rdsPTYLabels = [32]string{
	"None", "News", "Affairs", "Info", "Sport", "Education", "Drama",
	"Culture", "Science", "Varied Speech", "Pop Music",
	"Rock Music", "Easy Listening", "Light Classics M",
	"Serious Classics", "Other Music", "Weather", "Finance",
	"Children", "Social Affairs", "Religion", "Phone In",
	"Travel & Touring", "Leisure & Hobby", "Jazz Music",
	"Country Music", "National Music", "Oldies Music", "Folk Music",
	"Documentary", "Alarm Test", "Alarm!",
}

var rbdsPTYLabels = [32]string{
	"None", "News", "Information", "Sports", "Talk", "Rock",
	"Classic Rock", "Adult Hits", "Soft Rock", "Top 40", "Country",
	"Oldies", "Soft", "Nostalgia", "Jazz", "Classical",
	"R&B", "Soft R&B", "Foreign Language", "Religious Music",
	"Religious Talk", "Personality", "Public", "College",
	"Spanish Talk", "Spanish Music", "Hip-Hop", "Unassigned",
	"Unassigned", "Weather", "Emergency Test", "Emergency",
}

// PTYLabel returns the human-readable Program Type label for pty, chosen
// from the RDS or RBDS table according to isRBDS. ok is false if pty is out
// of range.
func PTYLabel(pty uint8, isRBDS bool) (label string, ok bool) {
	if pty >= 32 {
		return "", false
	}
	if isRBDS {
		return rbdsPTYLabels[pty], true
	}
	return rdsPTYLabels[pty], true
}

// europeanCountryLabels is the European ECC sub-table (ecc_l 0..4, country
// code 0..15). A blank entry is an undefined cell; e_lut[4][7] is the single
// standard-defined dash.
var europeanCountryLabels = [5][16]string{
	{
		"", "DE", "DZ", "AD", "IL", "IT", "BE", "RU", "PS", "AL",
		"AT", "HU", "MT", "DE", "", "EG",
	},
	{
		"", "GR", "CY", "SM", "CH", "JO", "FI", "LU", "BG", "DK",
		"GI", "IQ", "GB", "LY", "RO", "FR",
	},
	{
		"", "MA", "CZ", "PL", "VA", "SK", "SY", "TN", "", "LI",
		"IS", "MC", "LT", "RS", "ES", "NO",
	},
	{
		"", "ME", "IE", "TR", "MK", "", "", "", "NL", "LV",
		"LB", "AZ", "HR", "KZ", "SE", "BY",
	},
	{
		"", "MD", "EE", "KG", "", "", "UA", "-", "PT", "SI",
		"AM", "", "GE", "", "", "BA",
	},
}

// CountryLabel returns the ISO country code for ecc + the PI country-code
// nibble. Only the European region (ecc high nibble 0x0E, low nibble 0..4)
// is populated; everything else returns "Unknown" the way the
// original table falls back for unimplemented regions.
func CountryLabel(ecc uint8, pi uint16) string {
	eccHigh := ecc >> 4
	eccLow := ecc & 0x0f
	countryCode := pi >> 12

	if eccHigh == 0x0e && eccLow <= 0x04 {
		if label := europeanCountryLabels[eccLow][countryCode]; label != "" {
			return label
		}
	}
	return "Unknown"
}

// languageLabels is the 128-entry Language Code table; a blank entry is an
// unassigned code point.
var languageLabels = [128]string{
	"Unknown", "Albanian", "Breton", "Catalan",
	"Croatian", "Welsh", "Czech", "Danish",
	"German", "English", "Spanish", "Esperanto",
	"Estonian", "Basque", "Faroese", "French",
	"Frisian", "Irish", "Gaelic", "Galician",
	"Icelandic", "Italian", "Lappish", "Latin",
	"Latvian", "Luxembourgian", "Lithuanian", "Hungarian",
	"Maltese", "Dutch", "Norwegian", "Occitan",
	"Polish", "Portuguese", "Romanian", "Ramansh",
	"Serbian", "Slovak", "Slovene", "Finnish",
	"Swedish", "Turkish", "Flemish", "Walloon",
	"", "", "", "", "", "", "", "",
	"", "", "", "", "", "", "", "",
	"", "", "", "", "", "", "", "",
	"", "Zulu", "Vietnamese", "Uzbek",
	"Urdu", "Ukrainian", "Thai", "Telugu",
	"Tatar", "Tamil", "Tadzhik", "Swahili",
	"Sranan Tongo", "Somali", "Sinhalese", "Shona",
	"Serbo-Croat", "Ruthenian", "Russian", "Quechua",
	"Pushtu", "Punjabi", "Persian", "Papamiento",
	"Oriya", "Nepali", "Ndebele", "Marathi",
	"Moldavian", "Malaysian", "Malagasay", "Macedonian",
	"Laotian", "Korean", "Khmer", "Kazahkh",
	"Kannada", "Japanese", "Indonesian", "Hindi",
	"Hebrew", "Hausa", "Gurani", "Gujurati",
	"Greek", "Georgian", "Fulani", "Dani",
	"Churash", "Chinese", "Burmese", "Bulgarian",
	"Bengali", "Belorussian", "Bambora", "Azerbaijani",
	"Assamese", "Armenian", "Arabic", "Amharic",
}

// LanguageLabel returns the language name for lc, or "Unknown" for an
// out-of-range or unassigned code.
func LanguageLabel(lc uint8) string {
	if int(lc) >= len(languageLabels) {
		return "Unknown"
	}
	if label := languageLabels[lc]; label != "" {
		return label
	}
	return "Unknown"
}

// coverageLabels is the 16-entry area-coverage table keyed by PI bits 8-11.
var coverageLabels = [16]string{
	"Local", "International", "National", "Supra-Regional",
	"Regional 1", "Regional 2", "Regional 3", "Regional 4",
	"Regional 5", "Regional 6", "Regional 7", "Regional 8",
	"Regional 9", "Regional 10", "Regional 11", "Regional 12",
}

// CoverageLabel returns the area-coverage label encoded in PI bits 8-11.
func CoverageLabel(pi uint16) string {
	return coverageLabels[(pi>>8)&0x0f]
}
