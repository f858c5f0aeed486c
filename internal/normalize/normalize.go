// Package normalize produces the canonical forms every downstream stage of
// the matching pipeline compares on: lowercased, umlaut-expanded,
// accent-folded, whitespace-collapsed copies of the textual fields, plus
// digit-only postal codes, house-number strings, and the effective birth
// year used by the Birth-Year rule.
//
// Every function here is pure and safe for concurrent use: normalization
// reads only its argument and package-level immutable tables.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reWhitespace     = regexp.MustCompile(`\s+`)
	reDisallowedChar = regexp.MustCompile(`[^a-z0-9 \-]`)
	reDigits         = regexp.MustCompile(`[0-9]+`)
	reYear           = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)
	reHouseNumber    = regexp.MustCompile(`^([0-9]+)([a-z]?)`)
)

// umlautExpansions must run before generic accent folding: ü/ö/ä/ß have a
// German-specific two-letter expansion, not a single-letter accent fold.
var umlautExpansions = []struct {
	from string
	to   string
}{
	{"ü", "ue"},
	{"ö", "oe"},
	{"ä", "ae"},
	{"ß", "ss"},
	{"Ü", "ue"},
	{"Ö", "oe"},
	{"Ä", "ae"},
}

// String is the canonical text normalizer (spec §4.1): lowercase, umlaut
// expansion, accent folding, character filtering to [a-z0-9 -], and
// whitespace collapse. It is idempotent: String(String(x)) == String(x).
func String(s string) string {
	s = strings.ToLower(s)
	for _, e := range umlautExpansions {
		s = strings.ReplaceAll(s, e.from, e.to)
	}
	s = stripDiacritics(s)
	s = unidecode.Unidecode(s) // catches remaining non-Latin scripts NFD can't fold
	s = strings.ToLower(s)
	s = reDisallowedChar.ReplaceAllString(s, "")
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripDiacritics removes combining marks left over after umlaut expansion
// (e.g. é, ñ, ç) via Unicode NFD decomposition, the same transform chain
// the donor's accents.go uses.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// PostalCode strips everything but decimal digits (spec §4.1).
func PostalCode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HouseNumber normalizes a house number to digits plus an optional
// lowercase letter suffix, e.g. "12 B" -> "12b", "7" -> "7".
func HouseNumber(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = reWhitespace.ReplaceAllString(s, "")
	m := reHouseNumber.FindStringSubmatch(s)
	if m == nil {
		// No leading digits recognized; fall back to digits-only, which
		// degrades gracefully for malformed input (spec §7).
		return reDigits.FindString(s)
	}
	return m[1] + m[2]
}

// ExtractYear pulls a four-digit year (1000-2099) out of a free-form date
// string. A malformed or absent date yields (0, false) and the caller
// treats the field as absent rather than erroring (spec §7).
func ExtractYear(date string) (int, bool) {
	m := reYear.FindString(date)
	if m == "" {
		return 0, false
	}
	year := 0
	for _, r := range m {
		year = year*10 + int(r-'0')
	}
	return year, true
}

// EffectiveYear implements the precedence rule from spec §4.1:
// year(birth_date) if birth_date is present, else birth_year, else absent.
// This precedence is a rule, not a fallback: a present-but-unparseable
// birth_date does not fall through to birth_year.
func EffectiveYear(birthDate string, hasBirthDate bool, birthYear int, hasBirthYear bool) (int, bool) {
	if hasBirthDate {
		return ExtractYear(birthDate)
	}
	if hasBirthYear {
		return birthYear, true
	}
	return 0, false
}
