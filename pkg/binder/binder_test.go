package binder_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/binder"
)

type createRequest struct {
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Content map[string]any `json:"content"`
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes without touching strings", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		err := binder.JSON()(jsonRequest(`{"type":"text","title":"  padded  ","content":{"text":"  <b>hi</b>  ","n":12.50}}`), &req)
		require.NoError(t, err)
		assert.Equal(t, "text", req.Type)
		assert.Equal(t, "  padded  ", req.Title)
		assert.Equal(t, "  <b>hi</b>  ", req.Content["text"])
		assert.Equal(t, json.Number("12.50"), req.Content["n"])
	})

	t.Run("empty body is allowed", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		require.NoError(t, binder.JSON()(r, &req))
		assert.Empty(t, req.Type)
	})

	t.Run("missing content type is accepted", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":"url"}`))
		require.NoError(t, binder.JSON()(r, &req))
		assert.Equal(t, "url", req.Type)
	})

	t.Run("wrong media type", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`type=url`))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.True(t, errors.Is(binder.JSON()(r, &req), binder.ErrUnsupportedMediaType))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		for _, body := range []string{`{"type":`, `{"type":1}`, `{"unknown":true}`, `{"type":"a"} {"type":"b"}`} {
			var req createRequest
			err := binder.JSON()(jsonRequest(body), &req)
			assert.True(t, errors.Is(err, binder.ErrFailedToParseJSON), "body %s", body)
		}
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		err := binder.JSONWithLimit(8)(jsonRequest(`{"type":"text"}`), &req)
		assert.True(t, errors.Is(err, binder.ErrRequestTooLarge))
	})
}

type listRequest struct {
	Type    string   `query:"type"`
	Search  string   `query:"q"`
	Limit   int      `query:"limit"`
	Offset  *int     `query:"offset"`
	Tags    []string `query:"tag"`
	Ignored string   `query:"-"`
	Plain   string
	ID      string `path:"id"`
}

func TestQuery(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?type=wifi&q=cafe&limit=10&offset=0&tag=a&tag=b&Ignored=x&plain=y", nil)
	var req listRequest
	require.NoError(t, binder.Query()(r, &req))

	assert.Equal(t, "wifi", req.Type)
	assert.Equal(t, "cafe", req.Search)
	assert.Equal(t, 10, req.Limit)
	require.NotNil(t, req.Offset)
	assert.Equal(t, 0, *req.Offset)
	assert.Equal(t, []string{"a", "b"}, req.Tags)
	assert.Empty(t, req.Ignored)
	assert.Empty(t, req.Plain)
	assert.Empty(t, req.ID)

	bad := httptest.NewRequest(http.MethodGet, "/?limit=ten", nil)
	err := binder.Query()(bad, &listRequest{})
	assert.True(t, errors.Is(err, binder.ErrFailedToParseQuery))

	err = binder.Query()(r, listRequest{})
	assert.True(t, errors.Is(err, binder.ErrFailedToParseQuery))
}

func TestPath(t *testing.T) {
	t.Parallel()

	params := map[string]string{"id": "3f1c"}
	extract := func(_ *http.Request, name string) string { return params[name] }

	var req listRequest
	require.NoError(t, binder.Path(extract)(httptest.NewRequest(http.MethodGet, "/", nil), &req))
	assert.Equal(t, "3f1c", req.ID)
	assert.Empty(t, req.Type)
}

type uploadRequest struct {
	Description string                `form:"description"`
	ViewOnly    bool                  `form:"view_only"`
	Image       *multipart.FileHeader `file:"image"`
}

func multipartRequest(t *testing.T, fields map[string]string, fileField, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	r := httptest.NewRequest(http.MethodPost, "/", &body)
	r.Header.Set("Content-Type", w.FormDataContentType())
	return r
}

func TestMultipart(t *testing.T) {
	t.Parallel()

	t.Run("binds values and file", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t, map[string]string{"description": " my photo ", "view_only": "true"}, "image", "cat.png", []byte("\x89PNG"))
		var req uploadRequest
		require.NoError(t, binder.Multipart(1<<20)(r, &req))
		assert.Equal(t, " my photo ", req.Description)
		assert.True(t, req.ViewOnly)
		require.NotNil(t, req.Image)
		assert.Equal(t, "cat.png", req.Image.Filename)
		assert.EqualValues(t, 4, req.Image.Size)
	})

	t.Run("missing file leaves nil", func(t *testing.T) {
		t.Parallel()
		var req uploadRequest
		require.NoError(t, binder.Multipart(1<<20)(multipartRequest(t, nil, "", "", nil), &req))
		assert.Nil(t, req.Image)
	})

	t.Run("rejects other media types", func(t *testing.T) {
		t.Parallel()
		err := binder.Multipart(1<<20)(jsonRequest(`{}`), &uploadRequest{})
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("body over limit", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t, nil, "image", "big.png", bytes.Repeat([]byte("a"), 4096))
		err := binder.Multipart(1024)(r, &uploadRequest{})
		assert.ErrorIs(t, err, binder.ErrRequestTooLarge)
	})

	t.Run("body over limit without content length", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t, nil, "image", "big.png", bytes.Repeat([]byte("a"), 4096))
		r.ContentLength = -1
		err := binder.Multipart(1024)(r, &uploadRequest{})
		assert.ErrorIs(t, err, binder.ErrRequestTooLarge)
	})

	t.Run("file field of wrong type", func(t *testing.T) {
		t.Parallel()
		var req struct {
			Image string `file:"image"`
		}
		err := binder.Multipart(1<<20)(multipartRequest(t, nil, "image", "a.png", []byte("x")), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParseForm)
	})
}
