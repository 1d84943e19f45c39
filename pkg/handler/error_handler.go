package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/qrkit/pkg/logger"
)

// NewErrorHandler returns an ErrorHandler that runs classify on the error,
// logs it (warn for 4xx, error for 5xx) and renders the JSON error envelope.
// Request-scoped attributes come from the logger's context extractors.
// A nil classify leaves errors unchanged.
func NewErrorHandler(log *slog.Logger, classify func(error) error) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	return func(ctx Context, err error) {
		if classify != nil {
			err = classify(err)
		}
		status, _ := ErrorToDetail(err)

		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		r := ctx.Request()
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if renderErr := JSONError(err).Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response", logger.Error(renderErr))
		}
	}
}
