package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical wire format for ledger dates.
const DateLayout = "2006-01-02"

var (
	isoDateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	dmyDateRe = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2}|\d{4})$`)
	bareDayRe = regexp.MustCompile(`^\d{1,2}$`)
)

// ParseDate parses a date cell. Accepted forms: ISO YYYY-MM-DD, D/M/Y or
// D-M-Y with a 2- or 4-digit year, and a bare day-of-month when ctxYear and
// ctxMonth are supplied (wide sheets carry only the day). Two-digit years
// below 70 are read as 20xx, the rest as 19xx — a heuristic, good enough for
// report dates. Anything else returns ok=false, never an error.
func ParseDate(raw string, ctxYear, ctxMonth int) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return makeDate(year, month, day)
	}

	if m := dmyDateRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			if year < 70 {
				year += 2000
			} else {
				year += 1900
			}
		}
		return makeDate(year, month, day)
	}

	// Bare day number, only meaningful with month context.
	if bareDayRe.MatchString(s) && ctxYear > 0 && ctxMonth > 0 {
		day, _ := strconv.Atoi(s)
		return makeDate(ctxYear, ctxMonth, day)
	}

	return time.Time{}, false
}

// makeDate validates by round-trip: time.Date normalizes overflow (Feb 30
// becomes Mar 1), so a changed component means the input was invalid.
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1900 || year > 2200 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}
