package qrcode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Render creates a QR code image in PNG format for text.
func Render(text string, opts ...Option) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	level, _ := o.level.recovery()
	q, err := skipqrcode.New(text, level)
	if err != nil {
		if strings.Contains(err.Error(), "too long") {
			return nil, fmt.Errorf("%w: %d bytes at level %s", ErrContentTooLong, len(text), o.level)
		}
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	q.ForegroundColor = o.foreground
	q.BackgroundColor = o.background

	if o.margin == DefaultMargin {
		img, err := q.PNG(o.size)
		if err != nil {
			return nil, errors.Join(ErrFailedToGenerateQRCode, err)
		}
		return img, nil
	}

	q.DisableBorder = true
	img, err := drawBitmap(q.Bitmap(), o)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerateQRCode, err)
	}
	return img, nil
}

// RenderDataURI renders text and returns it as a base64 PNG data URI:
//
//	<img src="{{.Image}}">
func RenderDataURI(text string, opts ...Option) (string, error) {
	img, err := Render(text, opts...)
	if err != nil {
		return "", err
	}
	return DataURI(img), nil
}

// DataURI wraps PNG bytes into a data URI.
func DataURI(img []byte) string {
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(img))
}

// drawBitmap paints the module matrix with a quiet zone of o.margin modules.
// The image is o.size pixels square unless the matrix needs more room, in
// which case one pixel per module is used.
func drawBitmap(bitmap [][]bool, o options) ([]byte, error) {
	modules := len(bitmap) + 2*o.margin
	size := o.size
	if size < modules {
		size = modules
	}
	scale := size / modules
	offset := (size - modules*scale) / 2

	img := image.NewPaletted(image.Rect(0, 0, size, size), color.Palette{o.background, o.foreground})
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			startX := offset + (x+o.margin)*scale
			startY := offset + (y+o.margin)*scale
			for py := startY; py < startY+scale; py++ {
				for px := startX; px < startX+scale; px++ {
					img.SetColorIndex(px, py, 1)
				}
			}
		}
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
