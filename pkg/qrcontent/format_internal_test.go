package qrcontent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeComponent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "AZaz09-_.!~*'()", escapeComponent("AZaz09-_.!~*'()"))
	assert.Equal(t, "%20%2B%2F%3F%23%26%3D%3A%40%24%2C%3B", escapeComponent(" +/?#&=:@$,;"))
	assert.Equal(t, "%E2%82%AC", escapeComponent("€"))
	assert.Equal(t, "%F0%9F%98%80", escapeComponent("😀"))
	assert.Equal(t, "%0A", escapeComponent("\n"))
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		0:          "0",
		1:          "1",
		-0.5:       "-0.5",
		0.1:        "0.1",
		-23.5505:   "-23.5505",
		0.000001:   "0.000001",
		0.0000001:  "1e-7",
		1.5e-10:    "1.5e-10",
		123456789:  "123456789",
		1e21:       "1e+21",
		1.25e22:    "1.25e+22",
		179.999999: "179.999999",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatNumber(in), "formatNumber(%v)", in)
	}
}

func TestToFixed2(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		10.5:   "10.50",
		1:      "1.00",
		2.125:  "2.13",
		2.375:  "2.38",
		-2.125: "-2.13",
		1.005:  "1.00",
		0.1:    "0.10",
		99.999: "100.00",
		1234.5: "1234.50",
		1e21:   "1e+21",
		-2e22:  "-2e+22",
		1e20:   "100000000000000000000.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, toFixed2(in), "toFixed2(%v)", in)
	}
}

func TestUTF16Len(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, utf16Len(""))
	assert.Equal(t, 4, utf16Len("José"))
	assert.Equal(t, 2, utf16Len("😀"))
	assert.Equal(t, "6204abcd", lengthPrefixed("62", "abcd"))
	assert.Equal(t, "26100"+string(make([]byte, 100)), lengthPrefixed("26", string(make([]byte, 100))))
}

func TestFormatCalendarDate(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"2024-01-15T10:30:00Z":      "20240115T103000Z",
		"2024-01-15T10:30:00.999Z":  "20240115T103000Z",
		"2024-01-15T23:30:00-03:00": "20240116T023000Z",
		"2024-01-15T10:30":          "20240115T103000Z",
		"2024-01-15 10:30:15":       "20240115T103015Z",
		"2024-01-15":                "20240115T000000Z",
		"garbage-value":             "garbagevalue",
		"2024-13-45T99:99":          "20241345T9999",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatCalendarDate(in), "formatCalendarDate(%q)", in)
	}
}
