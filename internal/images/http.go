package images

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/qrkit/internal/qrcodes"
	"github.com/dmitrymomot/qrkit/pkg/binder"
	"github.com/dmitrymomot/qrkit/pkg/handler"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/upload"
)

// formOverhead is the multipart room left for headers and text fields.
const formOverhead = 1 << 20

// Handler serves the image upload API.
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

// Handle returns the router, meant to be mounted at /v1/images.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/", handler.Wrap(h.upload,
		handler.WithBinders[uploadRequest](binder.Multipart(h.svc.MaxSize()+formOverhead)),
		handler.WithErrorHandler[uploadRequest](h.errorHandler),
	))
	r.Get("/", handler.Wrap(h.list,
		handler.WithBinders[listRequest](binder.Query()),
		handler.WithErrorHandler[listRequest](h.errorHandler),
	))
	r.Get("/{id}", handler.Wrap(h.get,
		handler.WithBinders[idRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[idRequest](h.errorHandler),
	))
	r.Delete("/{id}", handler.Wrap(h.delete,
		handler.WithBinders[idRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[idRequest](h.errorHandler),
	))

	return r
}

type uploadRequest struct {
	Description string                `form:"description"`
	ViewOnly    bool                  `form:"view_only"`
	Background  string                `form:"background"`
	Image       *multipart.FileHeader `file:"image"`
}

type listRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
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
	return ctx.Request().Header.Get(qrcodes.OwnerHeader)
}

func (h *Handler) upload(ctx handler.Context, req uploadRequest) handler.Response {
	ownerID := owner(ctx)
	if err := qrcodes.ValidateOwner(ownerID); err != nil {
		return handler.Error(err)
	}
	if req.Image == nil {
		return handler.Error(ErrFileRequired)
	}
	if err := upload.ValidateSize(req.Image, h.svc.MaxSize()); err != nil {
		return handler.Error(err)
	}
	data, err := upload.ReadAll(req.Image, h.svc.MaxSize())
	if err != nil {
		return handler.Error(err)
	}

	u, err := h.svc.Upload(ctx, UploadInput{
		OwnerID:     ownerID,
		Filename:    req.Image.Filename,
		Data:        data,
		Description: req.Description,
		ViewOnly:    req.ViewOnly,
		Background:  req.Background,
	})
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(u, handler.WithJSONStatus(http.StatusCreated))
}

func (h *Handler) list(ctx handler.Context, req listRequest) handler.Response {
	page := Page{Limit: req.Limit, Offset: req.Offset}.normalize()
	uploads, err := h.svc.List(ctx, owner(ctx), page)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(uploads, handler.WithJSONMeta(map[string]any{
		"limit":  page.Limit,
		"offset": page.Offset,
		"count":  len(uploads),
	}))
}

func (h *Handler) get(ctx handler.Context, req idRequest) handler.Response {
	id, err := req.parse()
	if err != nil {
		return handler.Error(err)
	}
	u, err := h.svc.Get(ctx, id)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(u)
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

// ClassifyError maps upload errors to API errors and defers everything else
// to qrcodes.ClassifyError.
func ClassifyError(err error) error {
	switch {
	case errors.Is(err, ErrFileRequired), errors.Is(err, upload.ErrEmptyFile):
		return &handler.APIError{Status: http.StatusBadRequest, Code: "file_required", Message: ErrFileRequired.Error(), Err: err}
	case errors.Is(err, upload.ErrFileTooLarge):
		return &handler.APIError{Status: http.StatusRequestEntityTooLarge, Code: "file_too_large", Message: err.Error(), Err: err}
	case errors.Is(err, upload.ErrNotAnImage):
		return &handler.APIError{Status: http.StatusUnsupportedMediaType, Code: "unsupported_image", Message: upload.ErrNotAnImage.Error(), Err: err}
	case errors.Is(err, ErrNotFound):
		return &handler.APIError{Status: http.StatusNotFound, Code: "not_found", Message: ErrNotFound.Error(), Err: err}
	case errors.Is(err, ErrAlreadyExists):
		return &handler.APIError{Status: http.StatusConflict, Code: "conflict", Message: ErrAlreadyExists.Error(), Err: err}
	case errors.Is(err, binder.ErrFailedToParseForm):
		return &handler.APIError{Status: http.StatusBadRequest, Code: "bad_request", Message: "malformed request", Err: err}
	}
	return qrcodes.ClassifyError(err)
}
