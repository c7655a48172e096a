// Package validate holds the field-level predicates the ingestion pipeline
// runs against raw dataset columns. Every predicate is a pure function over
// the raw string; a false result means the whole source row is quarantined,
// it is never an error.
package validate

import (
	"math"
	"strconv"
	"strings"

	"travelcat/internal/dates"
)

// NonEmpty reports whether s has at least one byte. Required string columns
// share this check.
func NonEmpty(s string) bool {
	return s != ""
}

// Email accepts addresses with exactly one "@", a non-empty local part, a
// non-empty domain label before the first dot after the "@", and a final
// segment of at least two characters.
func Email(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	domain := s[at+1:]
	dot := strings.IndexByte(domain, '.')
	if dot <= 0 {
		return false
	}
	tld := domain[strings.LastIndexByte(domain, '.')+1:]
	return len(tld) >= 2
}

// CountryCode accepts exactly two characters.
func CountryCode(s string) bool {
	return len(s) == 2
}

// AirportCode accepts exactly three characters.
func AirportCode(s string) bool {
	return len(s) == 3
}

// Trip accepts an origin/destination pair of valid airport codes naming
// distinct airports, compared case-insensitively.
func Trip(origin, destination string) bool {
	if !AirportCode(origin) || !AirportCode(destination) {
		return false
	}
	return !strings.EqualFold(origin, destination)
}

// Status accepts "active" or "inactive" in any letter case.
func Status(s string) bool {
	return strings.EqualFold(s, "active") || strings.EqualFold(s, "inactive")
}

// Active reports whether a valid status string means active.
func Active(s string) bool {
	return strings.EqualFold(s, "active")
}

// Breakfast accepts the flag spellings the datasets use: f, false, 0 or the
// empty string for no, t, true or 1 for yes, case-insensitive.
func Breakfast(s string) bool {
	switch strings.ToLower(s) {
	case "", "f", "false", "0", "t", "true", "1":
		return true
	}
	return false
}

// BreakfastValue maps a valid breakfast flag onto a bool. Callers must have
// checked Breakfast first; unknown spellings come out false.
func BreakfastValue(s string) bool {
	switch strings.ToLower(s) {
	case "t", "true", "1":
		return true
	}
	return false
}

// wholeNumber parses s as a number with no fractional remainder. "3" and
// "3.0" qualify, "3.5" and "" do not.
func wholeNumber(s string) (int64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// Stars accepts a whole hotel rating between 1 and 5.
func Stars(s string) bool {
	n, ok := wholeNumber(s)
	return ok && n >= 1 && n <= 5
}

// Tax accepts a whole city tax percentage of zero or more.
func Tax(s string) bool {
	n, ok := wholeNumber(s)
	return ok && n >= 0
}

// Price accepts a whole per-night price greater than zero.
func Price(s string) bool {
	n, ok := wholeNumber(s)
	return ok && n > 0
}

// Rating accepts an absent rating or a whole value between 1 and 5.
func Rating(s string) bool {
	if s == "" {
		return true
	}
	n, ok := wholeNumber(s)
	return ok && n >= 1 && n <= 5
}

// PositiveInt accepts a whole value greater than zero, used for seat totals.
func PositiveInt(s string) bool {
	n, ok := wholeNumber(s)
	return ok && n > 0
}

// Date reports whether s satisfies the dataset date grammar.
func Date(s string) bool {
	return dates.Valid(s)
}

// StrictlyBefore reports whether first is a valid date strictly earlier than
// second. Either side failing the grammar fails the pair.
func StrictlyBefore(first, second string) bool {
	return dates.Earlier(first, second) == 1
}
