package ledger

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseDecimal reads a loosely formatted amount ("$1.234,56", "1,234.56",
// "100000", "  12 ") into its absolute value. It reports false when nothing
// numeric can be read.
//
// When both '.' and ',' appear the right-most one is the decimal separator.
// When only one of them appears it separates thousands if it occurs more than
// once or is followed by exactly three digits, otherwise it is the decimal
// separator.
func ParseDecimal(raw string) (decimal.Decimal, bool) {
	clean, ok := stripAmount(raw)
	if !ok {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(resolveSeparators(clean))
	if err != nil {
		return decimal.Zero, false
	}

	return d.Abs(), true
}

// ParseAmount reads a loosely formatted amount as a non-negative integer,
// truncating any fraction. Unreadable input yields 0 and false.
func ParseAmount(raw string) (int64, bool) {
	d, ok := ParseDecimal(raw)
	if !ok {
		return 0, false
	}

	return d.Truncate(0).IntPart(), true
}

func stripAmount(raw string) (string, bool) {
	var b strings.Builder

	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-', r == '+':
			if b.Len() > 0 {
				return "", false
			}
		case unicode.IsSpace(r), unicode.Is(unicode.Sc, r), r == '\'':
		default:
			return "", false
		}
	}

	s := b.String()
	if strings.IndexFunc(s, unicode.IsDigit) < 0 {
		return "", false
	}

	return s, true
}

func resolveSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			return strings.ReplaceAll(s, ",", "")
		}

		return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	case lastDot >= 0:
		return resolveSingleSeparator(s, ".")
	case lastComma >= 0:
		return resolveSingleSeparator(s, ",")
	}

	return s
}

func resolveSingleSeparator(s, sep string) string {
	last := strings.LastIndex(s, sep)
	if strings.Count(s, sep) > 1 || len(s)-last-1 == 3 {
		return strings.ReplaceAll(s, sep, "")
	}

	return strings.Replace(s, sep, ".", 1)
}

var dateLayouts = []string{
	time.DateOnly,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"02/01/06",
	"2006/01/02",
	TimestampLayout,
	time.RFC3339,
}

// ParseDate reads a day-first or ISO date in loc. It reports false for
// empty or unreadable input.
func ParseDate(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err != nil {
			continue
		}

		t = t.In(loc)

		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
	}

	return time.Time{}, false
}

var affirmative = map[string]struct{}{
	"true": {},
	"1":    {},
	"si":   {},
	"sí":   {},
	"yes":  {},
	"y":    {},
}

// ParseFlag reports whether raw is one of the affirmative tokens.
func ParseFlag(raw string) bool {
	_, ok := affirmative[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ParseShare reads a percentage. Empty, non-numeric and negative values read
// as 0. Fractions are truncated.
func ParseShare(raw string) (int, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if s == "" {
		return 0, true
	}

	if n, err := strconv.Atoi(s); err == nil {
		return max(n, 0), true
	}

	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return 0, false
	}

	return max(int(d.Truncate(0).IntPart()), 0), true
}
