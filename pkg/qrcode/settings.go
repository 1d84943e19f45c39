package qrcode

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Settings is the serialisable form of the render options.
// Zero values mean "use the default".
type Settings struct {
	Level      Level  `json:"level,omitempty" yaml:"level,omitempty"`
	Size       int    `json:"size,omitempty" yaml:"size,omitempty"`
	Margin     *int   `json:"margin,omitempty" yaml:"margin,omitempty"`
	Foreground string `json:"foreground,omitempty" yaml:"foreground,omitempty"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
}

// Normalize returns a copy with every default filled in and colors in
// upper-case #RRGGBB form. Invalid values are kept as given.
func (s Settings) Normalize() Settings {
	out := s
	if out.Level == "" {
		out.Level = DefaultLevel
	}
	out.Level = Level(strings.ToUpper(string(out.Level)))
	if out.Size == 0 {
		out.Size = DefaultSize
	}
	if out.Margin == nil {
		m := DefaultMargin
		out.Margin = &m
	}
	out.Foreground = normalizeHex(out.Foreground, DefaultForeground)
	out.Background = normalizeHex(out.Background, DefaultBackground)
	return out
}

// Options converts the settings into render options.
func (s Settings) Options() ([]Option, error) {
	n := s.Normalize()
	if _, ok := n.Level.recovery(); !ok {
		return nil, fmt.Errorf("%w: level %q", ErrInvalidOption, s.Level)
	}
	if n.Size < 0 || n.Size > MaxSize {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidOption, n.Size)
	}
	if *n.Margin < 0 || *n.Margin > MaxMargin {
		return nil, fmt.Errorf("%w: margin %d", ErrInvalidOption, *n.Margin)
	}
	fg, err := ParseHexColor(n.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := ParseHexColor(n.Background)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithLevel(n.Level),
		WithSize(n.Size),
		WithMargin(*n.Margin),
		WithForeground(fg),
		WithBackground(bg),
	}, nil
}

// ParseHexColor parses "#RGB" or "#RRGGBB" (the leading '#' is optional).
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalidOption, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q", ErrInvalidOption, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func normalizeHex(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	c, err := ParseHexColor(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
