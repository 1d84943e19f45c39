package qrcontent

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

const upperhex = "0123456789ABCDEF"

// escapeComponent percent-encodes s the way browsers encode a URI component:
// only A-Z a-z 0-9 and - _ . ! ~ * ' ( ) are left as is.
func escapeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// digitsOnly drops every byte that is not an ASCII digit.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// formatNumber prints f as the shortest decimal that round-trips, switching to
// exponent notation below 1e-6 and from 1e21 up (e.g. "1e-7", "1.5e+21").
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// toFixed2 formats f with two decimals. Exact halfway values round away from
// zero (2.125 -> "2.13"); everything else follows the exact binary value.
// Magnitudes from 1e21 up use formatNumber.
func toFixed2(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= 1e21 {
		return formatNumber(f)
	}
	out := strconv.FormatFloat(f, 'f', 2, 64)

	shortest := strconv.FormatFloat(math.Abs(f), 'f', -1, 64)
	_, frac, ok := strings.Cut(shortest, ".")
	if !ok || len(frac) != 3 || frac[2] != '5' {
		return out
	}
	exact, ok := new(big.Rat).SetString(shortest)
	if !ok || exact.Cmp(new(big.Rat).SetFloat64(math.Abs(f))) != 0 {
		return out
	}
	// Exact tie: bump the magnitude by half a cent so the 2-digit format rounds up.
	up := exact.Add(exact, big.NewRat(5, 1000))
	s := up.FloatString(3)
	s = s[:len(s)-1]
	if f < 0 {
		s = "-" + s
	}
	return s
}

// utf16Len counts UTF-16 code units, which is how payment apps count the
// length prefix of a text field.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// lengthPrefixed renders tag + two-digit length + value.
func lengthPrefixed(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, utf16Len(value), value)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var dateStripper = strings.NewReplacer("-", "", ":", "")

// formatCalendarDate renders a date-time string as an iCalendar UTC timestamp
// (20240115T103000Z). Values without a zone are read as UTC. Unparseable
// input is returned with '-' and ':' removed.
func formatCalendarDate(raw string) string {
	value := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format("20060102T150405Z")
		}
	}
	return dateStripper.Replace(raw)
}
