package qrcode_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/qrcode"
)

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err, "output should be a valid PNG")
	return img
}

func sameColor(t *testing.T, want, got color.Color) {
	t.Helper()
	wr, wg, wb, _ := want.RGBA()
	gr, gg, gb, _ := got.RGBA()
	assert.Equal(t, []uint32{wr, wg, wb}, []uint32{gr, gg, gb})
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("defaults to 256 pixels", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.Render("https://example.com")
		require.NoError(t, err)
		img := decode(t, data)
		assert.Equal(t, 256, img.Bounds().Dx())
		assert.Equal(t, 256, img.Bounds().Dy())
	})

	t.Run("honours size", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.Render("https://example.com", qrcode.WithSize(400))
		require.NoError(t, err)
		assert.Equal(t, 400, decode(t, data).Bounds().Dx())
	})

	t.Run("custom margin keeps the requested size", func(t *testing.T) {
		t.Parallel()
		for _, margin := range []int{0, 1, 2, 8} {
			data, err := qrcode.Render("hello", qrcode.WithMargin(margin), qrcode.WithSize(300))
			require.NoError(t, err)
			img := decode(t, data)
			assert.Equal(t, 300, img.Bounds().Dx(), "margin %d", margin)
			assert.Equal(t, 300, img.Bounds().Dy(), "margin %d", margin)
		}
	})

	t.Run("grows when size is too small", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.Render("hello", qrcode.WithMargin(0), qrcode.WithSize(1))
		require.NoError(t, err)
		assert.Equal(t, 21, decode(t, data).Bounds().Dx())
	})

	t.Run("applies colors", func(t *testing.T) {
		t.Parallel()
		fg := color.RGBA{R: 0xcc, A: 0xff}
		bg := color.RGBA{R: 0xee, G: 0xee, B: 0x11, A: 0xff}
		data, err := qrcode.Render("hello",
			qrcode.WithMargin(0),
			qrcode.WithSize(21),
			qrcode.WithForeground(fg),
			qrcode.WithBackground(bg),
		)
		require.NoError(t, err)
		img := decode(t, data)
		// Top-left module belongs to a finder pattern; (7,0) is its separator.
		sameColor(t, fg, img.At(0, 0))
		sameColor(t, bg, img.At(7, 0))
	})

	t.Run("higher level needs more modules", func(t *testing.T) {
		t.Parallel()
		text := strings.Repeat("a", 40)
		low, err := qrcode.Render(text, qrcode.WithLevel(qrcode.LevelL), qrcode.WithMargin(0), qrcode.WithSize(1))
		require.NoError(t, err)
		high, err := qrcode.Render(text, qrcode.WithLevel(qrcode.LevelH), qrcode.WithMargin(0), qrcode.WithSize(1))
		require.NoError(t, err)
		assert.Less(t, decode(t, low).Bounds().Dx(), decode(t, high).Bounds().Dx())
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		for _, text := range []string{"", "   \t\n"} {
			data, err := qrcode.Render(text)
			assert.Nil(t, data)
			assert.True(t, errors.Is(err, qrcode.ErrEmptyContent))
		}
	})

	t.Run("invalid options", func(t *testing.T) {
		t.Parallel()
		for _, opt := range []qrcode.Option{
			qrcode.WithLevel("X"),
			qrcode.WithSize(-1),
			qrcode.WithMargin(-2),
			qrcode.WithSize(qrcode.MaxSize + 1),
			qrcode.WithMargin(qrcode.MaxMargin + 1),
		} {
			_, err := qrcode.Render("hello", opt)
			assert.True(t, errors.Is(err, qrcode.ErrInvalidOption))
		}
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := qrcode.Render(strings.Repeat("x", 8000))
		assert.True(t, errors.Is(err, qrcode.ErrContentTooLong))
		assert.False(t, errors.Is(err, qrcode.ErrFailedToGenerateQRCode))
	})

	t.Run("largest size and margin are accepted", func(t *testing.T) {
		t.Parallel()
		data, err := qrcode.Render("hello", qrcode.WithSize(qrcode.MaxSize), qrcode.WithMargin(qrcode.MaxMargin))
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, qrcode.MaxSize, img.Bounds().Dx())
	})
}

func TestRenderDataURI(t *testing.T) {
	t.Parallel()

	uri, err := qrcode.RenderDataURI("https://example.com", qrcode.WithSize(128))
	require.NoError(t, err)

	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	assert.Equal(t, 128, decode(t, raw).Bounds().Dx())

	_, err = qrcode.RenderDataURI(" ")
	assert.True(t, errors.Is(err, qrcode.ErrEmptyContent))
}
