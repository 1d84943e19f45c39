package upload_test

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/upload"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		data  []byte
		want  string
		image bool
	}{
		{name: "png", data: pngBytes(t), want: "image/png", image: true},
		{name: "gif", data: []byte("GIF89a\x01\x00\x01\x00"), want: "image/gif", image: true},
		{name: "jpeg", data: []byte("\xff\xd8\xff\xe0\x00\x10JFIF"), want: "image/jpeg", image: true},
		{name: "text", data: []byte("hello"), want: "text/plain", image: false},
		{name: "svg is not accepted", data: []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"/>`), want: "text/xml", image: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := upload.Detect(tt.data)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.image, upload.IsImageType(got))
		})
	}
}

func TestExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".jpg", upload.Extension("image/jpeg"))
	assert.Equal(t, ".png", upload.Extension("image/png"))
	assert.Equal(t, ".bin", upload.Extension("text/plain"))
}

func TestValidateSize(t *testing.T) {
	t.Parallel()

	fh := fileHeader(t, "cat.png", pngBytes(t))
	require.NoError(t, upload.ValidateSize(fh, 1<<20))
	assert.ErrorIs(t, upload.ValidateSize(fh, 10), upload.ErrFileTooLarge)
	assert.ErrorIs(t, upload.ValidateSize(nil, 10), upload.ErrNilFileHeader)
}

func TestReadAll(t *testing.T) {
	t.Parallel()

	data := pngBytes(t)

	t.Run("reads content", func(t *testing.T) {
		t.Parallel()
		got, err := upload.ReadAll(fileHeader(t, "cat.png", data), 1<<20)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("limit applies to bytes read", func(t *testing.T) {
		t.Parallel()
		fh := fileHeader(t, "cat.png", data)
		fh.Size = 0
		_, err := upload.ReadAll(fh, int64(len(data)-1))
		assert.ErrorIs(t, err, upload.ErrFileTooLarge)
	})

	t.Run("empty part", func(t *testing.T) {
		t.Parallel()
		_, err := upload.ReadAll(fileHeader(t, "empty.png", nil), 1<<20)
		assert.ErrorIs(t, err, upload.ErrEmptyFile)
	})

	t.Run("nil header", func(t *testing.T) {
		t.Parallel()
		_, err := upload.ReadAll(nil, 1)
		assert.ErrorIs(t, err, upload.ErrNilFileHeader)
	})
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"cat.png":                "cat.png",
		"../../../etc/passwd":    "passwd",
		`C:\Users\me\photo.jpg`:  "photo.jpg",
		"evil\x00.png":           "evil.png",
		"":                       "unnamed",
		"..":                     "unnamed",
		"/":                      "unnamed",
		"uploads/2024/beach.gif": "beach.gif",
	}
	for in, want := range tests {
		assert.Equal(t, want, upload.SanitizeFilename(in), "SanitizeFilename(%q)", in)
	}
}
