package models

import (
	"strconv"
	"strings"
)

// ParseAmount converts operator-entered rupiah text to a non-negative
// integer amount. The format has no fractional precision: "." is always a
// thousands separator and anything after the first "," is discarded, not
// rounded. Currency symbols and other stray characters are stripped.
// Anything unparsable yields 0.
//
//	"1.234.567,89" -> 1234567
//	"Rp 500"       -> 500
//	""             -> 0
func ParseAmount(raw string) int64 {
	if raw == "" {
		return 0
	}
	s := strings.ReplaceAll(raw, ".", "")
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
