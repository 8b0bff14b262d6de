// Package sanitize normalizes untrusted request input into canonical form.
// Every function is pure and total: bad input yields an absent value, never
// an error or panic.
package sanitize

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	nonIdentifier = regexp.MustCompile(`[^A-Za-z0-9_]+`)
	nonSlug       = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	nonURIText    = regexp.MustCompile(`[^A-Za-z0-9\s]+`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	leadingJunk   = regexp.MustCompile(`^[^A-Za-z0-9]+`)
	digitRun      = regexp.MustCompile(`^[0-9]+`)

	// Permissive ISO-8601 grammar: date with optional month/day, optional
	// time with optional seconds and fraction, optional Z or numeric offset.
	isoDate = regexp.MustCompile(`^(?i)(\d{4})(?:-(\d{2}))?(?:-(\d{2}))?(?:T(\d{2}):(\d{2})(?::(\d{2}))?(?:\.(\d+))?(([+-]\d{2}:\d{2})|Z)?)?$`)
)

// Identifier keeps letters, digits and underscores, lowercased. Empty input
// stays empty.
func Identifier(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(nonIdentifier.ReplaceAllString(s, ""))
}

// Slug keeps letters, digits, underscores and hyphens, lowercased. Used for
// sort-direction tokens such as "-date".
func Slug(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(nonSlug.ReplaceAllString(s, ""))
}

// Underscored collapses whitespace runs into single underscores, then strips
// anything that is not a letter, digit or underscore, lowercased. The strip
// happens after the whitespace pass, so a value like " - " collapses to "_"
// rather than disappearing.
func Underscored(s string) string {
	if s == "" {
		return ""
	}
	out := whitespaceRun.ReplaceAllString(s, "_")
	return strings.ToLower(nonIdentifier.ReplaceAllString(out, ""))
}

// URIText percent-decodes the string once if it differs from its decoded
// form, then keeps only letters, digits and whitespace, lowercased.
func URIText(s string) string {
	if s == "" {
		return ""
	}
	if decoded, err := url.QueryUnescape(s); err == nil && decoded != s {
		s = decoded
	}
	return strings.ToLower(nonURIText.ReplaceAllString(s, ""))
}

// Int strips a leading run of non-alphanumeric characters, then parses the
// leading digit run as a base-10 integer. Fractional values truncate toward
// zero because parsing stops at the decimal point. Absent for empty input,
// inputs without digits, and zero: zero means "no value supplied", so callers
// provide their own default.
func Int(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	rest := leadingJunk.ReplaceAllString(s, "")
	digits := digitRun.FindString(rest)
	if digits == "" {
		return 0, false
	}
	n := 0
	for _, c := range digits {
		n = n*10 + int(c-'0')
		if n > 1<<31 {
			return 0, false
		}
	}
	if n == 0 {
		return 0, false
	}
	return n, true
}

// DateString validates s against the permissive ISO-8601 grammar and, when it
// matches a real calendar date, reformats it as a canonical UTC ISO-8601
// string with millisecond precision. Anything else is absent.
func DateString(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	t, ok := parseISO(s)
	if !ok {
		return "", false
	}
	return Canonical(t), true
}

// Canonical formats t as the canonical stored date representation. The fixed
// width keeps lexicographic order identical to chronological order.
func Canonical(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000") + "Z"
}

func parseISO(s string) (time.Time, bool) {
	m := isoDate.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	year := atoi(m[1])
	month := 1
	if m[2] != "" {
		month = atoi(m[2])
	}
	day := 1
	if m[3] != "" {
		day = atoi(m[3])
	}
	hour, minute, sec := atoi(m[4]), atoi(m[5]), atoi(m[6])

	nanos := 0
	if m[7] != "" {
		frac := m[7]
		if len(frac) > 9 {
			frac = frac[:9]
		}
		nanos = atoi(frac)
		for i := len(frac); i < 9; i++ {
			nanos *= 10
		}
	}

	loc := time.UTC
	if m[9] != "" {
		sign := 1
		if m[9][0] == '-' {
			sign = -1
		}
		offset := sign * (atoi(m[9][1:3])*3600 + atoi(m[9][4:6])*60)
		loc = time.FixedZone(m[9], offset)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, nanos, loc)

	// time.Date normalizes out-of-range components (month 13 rolls into the
	// next year), which would silently accept garbage. Reject anything that
	// did not round-trip.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != sec {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
