package qrcodes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/qrkit/pkg/binder"
	"github.com/dmitrymomot/qrkit/pkg/handler"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
)

// OwnerHeader carries the id of the user the request acts for.
const OwnerHeader = "X-User-ID"

const maxRequestBody = 64 << 10

// Handler serves the QR code API.
type Handler struct {
	svc          *Service
	errorHandler handler.ErrorHandler
}

// NewHandler returns the HTTP layer for svc.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	return &Handler{
		svc:          svc,
		errorHandler: handler.NewErrorHandler(log, ClassifyError),
	}
}

// Handle returns the router, meant to be mounted under a version prefix.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/types", handler.Wrap(h.types,
		handler.WithErrorHandler[struct{}](h.errorHandler),
	))

	r.Route("/qrcodes", func(r chi.Router) {
		r.Post("/preview", handler.Wrap(h.preview,
			handler.WithBinders[PreviewInput](binder.JSONWithLimit(maxRequestBody)),
			handler.WithErrorHandler[PreviewInput](h.errorHandler),
		))
		r.Post("/", handler.Wrap(h.create,
			handler.WithBinders[CreateInput](binder.JSONWithLimit(maxRequestBody)),
			handler.WithErrorHandler[CreateInput](h.errorHandler),
		))
		r.Get("/", handler.Wrap(h.list,
			handler.WithBinders[listRequest](binder.Query()),
			handler.WithErrorHandler[listRequest](h.errorHandler),
		))
		r.Get("/{id}", handler.Wrap(h.get,
			handler.WithBinders[idRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[idRequest](h.errorHandler),
		))
		r.Get("/{id}/image.png", handler.Wrap(h.image,
			handler.WithBinders[idRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[idRequest](h.errorHandler),
		))
		r.Delete("/{id}", handler.Wrap(h.delete,
			handler.WithBinders[idRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[idRequest](h.errorHandler),
		))
	})

	return r
}

type listRequest struct {
	Type   string `query:"type"`
	Search string `query:"q"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

type idRequest struct {
	ID string `path:"id"`
}

func (req idRequest) parse() (uuid.UUID, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return id, nil
}

func owner(ctx handler.Context) string {
	return ctx.Request().Header.Get(OwnerHeader)
}

func (h *Handler) types(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(h.svc.Types())
}

func (h *Handler) preview(ctx handler.Context, req PreviewInput) handler.Response {
	p, err := h.svc.Preview(ctx, req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(p)
}

func (h *Handler) create(ctx handler.Context, req CreateInput) handler.Response {
	req.OwnerID = owner(ctx)
	rec, err := h.svc.Create(ctx, req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(rec, handler.WithJSONStatus(http.StatusCreated))
}

func (h *Handler) list(ctx handler.Context, req listRequest) handler.Response {
	filter := ListFilter{
		Type:   qrcontent.ContentType(req.Type),
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Offset,
	}.normalize()
	records, err := h.svc.List(ctx, owner(ctx), filter)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(records, handler.WithJSONMeta(map[string]any{
		"limit":  filter.Limit,
		"offset": filter.Offset,
		"count":  len(records),
	}))
}

func (h *Handler) get(ctx handler.Context, req idRequest) handler.Response {
	id, err := req.parse()
	if err != nil {
		return handler.Error(err)
	}
	rec, err := h.svc.Get(ctx, id)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(rec)
}

func (h *Handler) image(ctx handler.Context, req idRequest) handler.Response {
	id, err := req.parse()
	if err != nil {
		return handler.Error(err)
	}
	png, err := h.svc.Image(ctx, id)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Blob(imageContentType, png, handler.WithCacheControl("public, max-age=86400"))
}

func (h *Handler) delete(ctx handler.Context, req idRequest) handler.Response {
	id, err := req.parse()
	if err != nil {
		return handler.Error(err)
	}
	if err := h.svc.Delete(ctx, id, owner(ctx)); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}

// ClassifyError maps domain and binding errors to API errors. Unknown errors
// are returned unchanged and render as 500.
func ClassifyError(err error) error {
	var verr *qrcontent.ValidationError
	switch {
	case errors.As(err, &verr):
		byField := make(map[string][]string, len(verr.Fields))
		for _, field := range verr.Fields.Fields() {
			byField[field] = verr.Fields.Get(field)
		}
		return &handler.APIError{
			Status:  http.StatusUnprocessableEntity,
			Code:    "validation_error",
			Message: "QR content is invalid",
			Details: map[string]any{
				"type":   verr.Type,
				"errors": verr.Messages(),
				"fields": byField,
			},
			Err: err,
		}
	case errors.Is(err, qrcontent.ErrUnsupportedType):
		return &handler.APIError{Status: http.StatusBadRequest, Code: "unsupported_type", Message: err.Error(), Err: err}
	case errors.Is(err, qrcode.ErrContentTooLong):
		return &handler.APIError{Status: http.StatusUnprocessableEntity, Code: "content_too_long", Message: qrcode.ErrContentTooLong.Error(), Err: err}
	case errors.Is(err, qrcode.ErrInvalidOption):
		return &handler.APIError{Status: http.StatusBadRequest, Code: "invalid_settings", Message: err.Error(), Err: err}
	case errors.Is(err, ErrOwnerRequired):
		return &handler.APIError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "missing " + OwnerHeader + " header", Err: err}
	case errors.Is(err, ErrInvalidOwner):
		return &handler.APIError{Status: http.StatusBadRequest, Code: "bad_request", Message: ErrInvalidOwner.Error(), Err: err}
	case errors.Is(err, ErrAlreadyExists):
		return &handler.APIError{Status: http.StatusConflict, Code: "conflict", Message: ErrAlreadyExists.Error(), Err: err}
	case errors.Is(err, ErrNotFound):
		return &handler.APIError{Status: http.StatusNotFound, Code: "not_found", Message: ErrNotFound.Error(), Err: err}
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return &handler.APIError{Status: http.StatusUnsupportedMediaType, Code: "unsupported_media_type", Err: err}
	case errors.Is(err, binder.ErrRequestTooLarge):
		return &handler.APIError{Status: http.StatusRequestEntityTooLarge, Code: "request_entity_too_large", Err: err}
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParseQuery),
		errors.Is(err, binder.ErrFailedToParsePath):
		return &handler.APIError{Status: http.StatusBadRequest, Code: "bad_request", Message: "malformed request", Err: err}
	}
	return err
}
