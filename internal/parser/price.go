package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonPriceCharRe   = regexp.MustCompile(`[^0-9.,]`)
	dotThousandsRe   = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
)

// ParsePrice parses a price cell into whole rupiah. Cleanup: drop everything
// but digits, dots and commas; a dot-grouped pattern ("12.500") is read as a
// thousands separator; remaining commas are dropped. Values below 500 with a
// fractional part are scaled by 1000 ("8.5" means 8 500) — authors shorthand
// thousands that way. The scaling rule is lossy for a genuine fractional
// price under 500; kept as-is for compatibility with submitted sheets.
func ParsePrice(raw string) (int64, bool) {
	s := nonPriceCharRe.ReplaceAllString(strings.TrimSpace(raw), "")
	if s == "" {
		return 0, false
	}

	if dotThousandsRe.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return scalePrice(v), true
}

// scalePrice applies the small-value shorthand and rounds to whole rupiah.
func scalePrice(v float64) int64 {
	if v < 500 && v != math.Trunc(v) {
		v *= 1000
	}
	return int64(math.Round(v))
}
