package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/binder"
	"github.com/dmitrymomot/qrkit/pkg/handler"
	"github.com/dmitrymomot/qrkit/pkg/logger"
)

type echoRequest struct {
	Name  string `json:"name"`
	Limit int    `query:"limit"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var got handler.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := func(ctx handler.Context, req echoRequest) handler.Response {
		return handler.JSON(req)
	}

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(echo, handler.WithBinders[echoRequest](binder.JSON(), binder.Query()))

		r := httptest.NewRequest(http.MethodPost, "/?limit=5", strings.NewReader(`{"name":"qr"}`))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		got := decodeEnvelope(t, w)
		assert.Equal(t, map[string]any{"name": "qr", "Limit": float64(5)}, got.Data)
		assert.Nil(t, got.Error)
	})

	t.Run("binder errors go to the error handler", func(t *testing.T) {
		t.Parallel()
		var seen error
		h := handler.Wrap(echo,
			handler.WithBinders[echoRequest](binder.Query()),
			handler.WithErrorHandler[echoRequest](func(ctx handler.Context, err error) {
				seen = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}),
		)
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/?limit=x", nil))

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.True(t, errors.Is(seen, binder.ErrFailedToParseQuery))
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(handler.Context, echoRequest) handler.Response { return nil })
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_server_error", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[echoRequest] {
			return func(next handler.HandlerFunc[echoRequest]) handler.HandlerFunc[echoRequest] {
				return func(ctx handler.Context, req echoRequest) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(echo, handler.WithDecorators(mark("outer"), mark("inner")))
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"outer", "inner"}, order)
	})

	t.Run("context exposes request", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, _ echoRequest) handler.Response {
			return handler.JSON(ctx.Request().URL.Path)
		})
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/path", nil))
		assert.Equal(t, "/path", decodeEnvelope(t, w).Data)
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		detail handler.ErrorDetail
	}{
		{
			name:   "api error",
			err:    &handler.APIError{Status: 422, Code: "validation_error", Message: "Invalid content", Details: map[string]any{"errors": []any{"URL is required"}}},
			status: 422,
			detail: handler.ErrorDetail{Code: "validation_error", Message: "Invalid content", Details: map[string]any{"errors": []any{"URL is required"}}},
		},
		{
			name:   "wrapped api error without message",
			err:    errors.Join(errors.New("ctx"), &handler.APIError{Status: 404, Code: "not_found"}),
			status: 404,
			detail: handler.ErrorDetail{Code: "not_found", Message: "Not Found"},
		},
		{
			name:   "http error",
			err:    handler.ErrUnauthorized,
			status: 401,
			detail: handler.ErrorDetail{Code: "unauthorized", Message: "Unauthorized"},
		},
		{
			name:   "unknown error is hidden",
			err:    errors.New("pq: connection refused"),
			status: 500,
			detail: handler.ErrorDetail{Code: "internal_server_error", Message: "Internal Server Error"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			require.NoError(t, handler.JSONError(tt.err).Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))
			assert.Equal(t, tt.status, w.Code)
			got := decodeEnvelope(t, w)
			require.NotNil(t, got.Error)
			assert.Equal(t, tt.detail, *got.Error)
			assert.Nil(t, got.Data)
		})
	}
}

func TestJSONOptions(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	resp := handler.JSON([]int{1, 2}, handler.WithJSONStatus(http.StatusCreated), handler.WithJSONMeta(map[string]any{"total": 2}))
	require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":[1,2],"meta":{"total":2}}`, w.Body.String())
}

func TestEmptyAndBlob(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	require.NoError(t, handler.Empty().Render(w, httptest.NewRequest(http.MethodDelete, "/", nil)))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	w = httptest.NewRecorder()
	require.NoError(t, handler.EmptyWithStatus(http.StatusAccepted).Render(w, httptest.NewRequest(http.MethodPost, "/", nil)))
	assert.Equal(t, http.StatusAccepted, w.Code)

	w = httptest.NewRecorder()
	png := []byte{0x89, 'P', 'N', 'G'}
	resp := handler.Blob("image/png", png, handler.WithCacheControl("public, max-age=60"))
	require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "4", w.Header().Get("Content-Length"))
	assert.Equal(t, "public, max-age=60", w.Header().Get("Cache-Control"))
	assert.Equal(t, png, w.Body.Bytes())

	w = httptest.NewRecorder()
	require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodHead, "/", nil)))
	assert.Empty(t, w.Body.Bytes())
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := logger.New(logger.WithOutput(&logs), logger.WithLevel(slog.LevelDebug))
	errMissing := errors.New("missing")
	eh := handler.NewErrorHandler(log, func(err error) error {
		if errors.Is(err, errMissing) {
			return &handler.APIError{Status: http.StatusNotFound, Code: "not_found", Message: "gone", Err: err}
		}
		return err
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/qrcodes/x", nil)
	eh(handler.NewContext(w, r), errMissing)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "gone", decodeEnvelope(t, w).Error.Message)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, float64(404), entry["status_code"])
	assert.Equal(t, "/v1/qrcodes/x", entry["path"])
}

func TestErrorResponse(t *testing.T) {
	t.Parallel()

	var handled error
	h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		return handler.Error(handler.ErrNotFound)
	}, handler.WithErrorHandler[struct{}](func(ctx handler.Context, err error) {
		handled = err
		handler.DefaultErrorHandler(ctx, err)
	}))

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.ErrorIs(t, handled, handler.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, w.Code)
	got := decodeEnvelope(t, w)
	require.NotNil(t, got.Error)
	assert.Equal(t, "not_found", got.Error.Code)
}
