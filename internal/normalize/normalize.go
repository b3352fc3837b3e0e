// =============================================================================
// ordergen - Normalizers
// =============================================================================
//
// Pure functions converting raw cell text into canonical field values. Every
// value that reaches the fixed-width encoder or the specification assembler
// passes through one of these first:
//
//   - Identifier : hyphenated/dirty ISSN-13 or EAN-13 -> fixed 13-digit string
//   - Country    : ISO alpha-2 delivery country -> alpha-3 supplier code
//   - ASCII      : free text -> 7-bit ASCII safe for positional records
//
// The encoder counts characters, not bytes; a single unmapped multi-byte
// character would desynchronize every subsequent fixed-width field, which is
// why ASCII sanitization is mandatory rather than cosmetic.
//
// =============================================================================

package normalize

import (
	"strings"
	"unicode"
)

// IdentifierLength is the target digit count for product identifiers
// (ISSN-13 / EAN-13).
const IdentifierLength = 13

// =============================================================================
// IDENTIFIER NORMALIZATION
// =============================================================================

// Identifier coerces any input into a fixed 13-digit numeric string.
//
// The input is first stripped of hyphens and whitespace, then of any
// remaining non-digit characters. If the digit count equals 13 the value is
// returned as-is; longer values are truncated to 13; shorter values are
// left-padded with '0'. Empty input therefore yields all zeros.
//
// Normalizing an already-13-digit string is a no-op, so the function is
// idempotent for valid inputs.
func Identifier(raw string) string {
	digits := digitsOf(raw)

	switch {
	case len(digits) == IdentifierLength:
		return digits
	case len(digits) > IdentifierLength:
		return digits[:IdentifierLength]
	default:
		return strings.Repeat("0", IdentifierLength-len(digits)) + digits
	}
}

// ValidIdentifier reports whether a raw value carries exactly 13 digits once
// hyphen and whitespace separators are removed. Any other remaining
// character, or a digit count other than 13, fails the check.
func ValidIdentifier(raw string) bool {
	stripped := strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	if len(stripped) != IdentifierLength {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// digitsOf strips hyphens and whitespace, then any remaining non-digit
// characters.
func digitsOf(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// =============================================================================
// COUNTRY CODE NORMALIZATION
// =============================================================================

// Country converts a delivery country code to the 3-character code the
// receiving system expects.
//
// A 2-letter code is looked up in the ISO alpha-2 -> alpha-3 table. On a
// table miss the 2-letter code passes through right-padded with one space;
// the second return value is false in that case so the caller can surface
// the non-ISO output as a warning. A 3-letter code passes through unchanged.
// Any other length passes through truncated/padded to the first 3
// characters. Empty input yields 3 spaces.
func Country(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))

	switch len(code) {
	case 0:
		return "   ", true
	case 2:
		if alpha3, ok := alpha2ToAlpha3[code]; ok {
			return alpha3, true
		}
		return code + " ", false
	case 3:
		return code, true
	default:
		if len(code) > 3 {
			return code[:3], true
		}
		return code + strings.Repeat(" ", 3-len(code)), true
	}
}

// alpha2ToAlpha3 maps ISO 3166-1 alpha-2 codes to alpha-3 for the countries
// that appear in delivery data. A miss falls back to the padded alpha-2 code.
var alpha2ToAlpha3 = map[string]string{
	"AE": "ARE", "AR": "ARG", "AT": "AUT", "AU": "AUS", "BD": "BGD",
	"BE": "BEL", "BG": "BGR", "BR": "BRA", "CA": "CAN", "CH": "CHE",
	"CL": "CHL", "CN": "CHN", "CO": "COL", "CZ": "CZE", "DE": "DEU",
	"DK": "DNK", "EE": "EST", "EG": "EGY", "ES": "ESP", "FI": "FIN",
	"FR": "FRA", "GB": "GBR", "GR": "GRC", "HK": "HKG", "HR": "HRV",
	"HU": "HUN", "ID": "IDN", "IE": "IRL", "IL": "ISR", "IN": "IND",
	"IS": "ISL", "IT": "ITA", "JP": "JPN", "KE": "KEN", "KR": "KOR",
	"LT": "LTU", "LU": "LUX", "LV": "LVA", "MX": "MEX", "MY": "MYS",
	"NG": "NGA", "NL": "NLD", "NO": "NOR", "NZ": "NZL", "PH": "PHL",
	"PK": "PAK", "PL": "POL", "PT": "PRT", "RO": "ROU", "RS": "SRB",
	"RU": "RUS", "SA": "SAU", "SE": "SWE", "SG": "SGP", "SI": "SVN",
	"SK": "SVK", "TH": "THA", "TR": "TUR", "TW": "TWN", "UA": "UKR",
	"US": "USA", "VN": "VNM", "ZA": "ZAF",
}

// =============================================================================
// TEXT SANITIZATION
// =============================================================================

// asciiReplacements maps common non-ASCII punctuation to the closest 7-bit
// equivalent. Anything non-ASCII left after replacement is dropped.
var asciiReplacements = map[rune]string{
	'‘': "'",   // left single quote
	'’': "'",   // right single quote
	'“': `"`,   // left double quote
	'”': `"`,   // right double quote
	'–': "-",   // en dash
	'—': "-",   // em dash
	'…': "...", // ellipsis
	' ': " ",   // non-breaking space
}

// ASCII maps common typographic punctuation to plain ASCII equivalents and
// drops any remaining character above 0x7F.
func ASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if replacement, ok := asciiReplacements[r]; ok {
			b.WriteString(replacement)
			continue
		}
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}

	return b.String()
}
