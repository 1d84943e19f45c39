package handler

import (
	"net/http"
	"strconv"
)

type blobResponse struct {
	contentType  string
	cacheControl string
	data         []byte
}

// BlobOption configures a Blob response.
type BlobOption func(*blobResponse)

// WithCacheControl sets the Cache-Control header.
func WithCacheControl(value string) BlobOption {
	return func(b *blobResponse) { b.cacheControl = value }
}

// Blob writes raw bytes with the given content type, e.g. a PNG image.
func Blob(contentType string, data []byte, opts ...BlobOption) Response {
	b := &blobResponse{contentType: contentType, data: data}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *blobResponse) Render(w http.ResponseWriter, r *http.Request) error {
	h := w.Header()
	h.Set("Content-Type", b.contentType)
	h.Set("Content-Length", strconv.Itoa(len(b.data)))
	h.Set("X-Content-Type-Options", "nosniff")
	if b.cacheControl != "" {
		h.Set("Cache-Control", b.cacheControl)
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return nil
	}
	_, err := w.Write(b.data)
	return err
}
