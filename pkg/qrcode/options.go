package qrcode

import (
	"fmt"
	"image/color"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Level is the error correction level: L (~7%), M (~15%), Q (~25%), H (~30%).
type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

// Defaults applied when an option is not given.
const (
	DefaultLevel      = LevelM
	DefaultSize       = 256
	DefaultMargin     = 4
	DefaultForeground = "#000000"
	DefaultBackground = "#FFFFFF"
)

// Upper bounds for size (pixels) and margin (modules).
const (
	MaxSize   = 4096
	MaxMargin = 64
)

func (l Level) recovery() (skipqrcode.RecoveryLevel, bool) {
	switch l {
	case LevelL:
		return skipqrcode.Low, true
	case LevelM:
		return skipqrcode.Medium, true
	case LevelQ:
		return skipqrcode.High, true
	case LevelH:
		return skipqrcode.Highest, true
	}
	return 0, false
}

type options struct {
	level      Level
	size       int
	margin     int
	foreground color.Color
	background color.Color
	err        error
}

func defaultOptions() options {
	return options{
		level:      DefaultLevel,
		size:       DefaultSize,
		margin:     DefaultMargin,
		foreground: color.Black,
		background: color.White,
	}
}

// Option configures a render call.
type Option func(*options)

// WithLevel sets the error correction level.
func WithLevel(l Level) Option {
	return func(o *options) {
		if _, ok := l.recovery(); !ok {
			o.fail(fmt.Errorf("%w: level %q", ErrInvalidOption, l))
			return
		}
		o.level = l
	}
}

// WithSize sets the image width and height in pixels, up to MaxSize.
// Zero keeps the default.
func WithSize(px int) Option {
	return func(o *options) {
		switch {
		case px < 0, px > MaxSize:
			o.fail(fmt.Errorf("%w: size %d", ErrInvalidOption, px))
		case px > 0:
			o.size = px
		}
	}
}

// WithMargin sets the quiet zone width in modules, up to MaxMargin.
func WithMargin(modules int) Option {
	return func(o *options) {
		if modules < 0 || modules > MaxMargin {
			o.fail(fmt.Errorf("%w: margin %d", ErrInvalidOption, modules))
			return
		}
		o.margin = modules
	}
}

// WithForeground sets the module color.
func WithForeground(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.foreground = c
		}
	}
}

// WithBackground sets the background color.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.background = c
		}
	}
}

func (o *options) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}
