package qrcodes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
	"github.com/dmitrymomot/qrkit/pkg/storage"
)

const (
	imageContentType = "image/png"
	maxOwnerIDLength = 128
	maxTitleLength   = 120
)

// Service creates, renders and manages QR code records.
type Service struct {
	repo    Repository
	storage storage.Storage
	cache   RenderCache
	log     *slog.Logger
	now     func() time.Time
	newID   func() uuid.UUID
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRenderCache sets the cache consulted before rendering.
func WithRenderCache(c RenderCache) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the record timestamp source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a service over repo and store.
func NewService(repo Repository, store storage.Storage, opts ...ServiceOption) *Service {
	s := &Service{
		repo:    repo,
		storage: store,
		cache:   noopCache{},
		log:     logger.Discard(),
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Types lists the supported content types.
func (s *Service) Types() []qrcontent.ContentType {
	return qrcontent.Types()
}

type rendered struct {
	fields   qrcontent.Fields
	encoded  string
	settings qrcode.Settings
	png      []byte
}

// render validates, encodes and renders. Validation runs first so every
// problem with the content is reported at once.
func (s *Service) render(ctx context.Context, t qrcontent.ContentType, fields qrcontent.Fields, settings qrcode.Settings) (*rendered, error) {
	if !t.Valid() {
		return nil, &qrcontent.UnsupportedTypeError{Type: string(t)}
	}
	if res := qrcontent.ValidateFields(t, fields); !res.Valid {
		return nil, res.Err()
	}
	content, err := qrcontent.Decode(t, fields)
	if err != nil {
		return nil, err
	}
	encoded, err := qrcontent.Encode(content)
	if err != nil {
		return nil, err
	}
	canonical, err := qrcontent.ToFields(content)
	if err != nil {
		return nil, err
	}

	opts, err := settings.Options()
	if err != nil {
		return nil, err
	}
	normalized := settings.Normalize()
	png, err := s.renderPNG(ctx, encoded, normalized, opts)
	if err != nil {
		return nil, err
	}
	return &rendered{fields: canonical, encoded: encoded, settings: normalized, png: png}, nil
}

func (s *Service) renderPNG(ctx context.Context, encoded string, settings qrcode.Settings, opts []qrcode.Option) ([]byte, error) {
	key := RenderKey(encoded, settings)
	if png, ok := s.cache.Get(ctx, key); ok {
		return png, nil
	}
	png, err := qrcode.Render(encoded, opts...)
	if err != nil {
		return nil, errors.Join(ErrFailedToRender, err)
	}
	s.cache.Set(ctx, key, png)
	return png, nil
}

// Preview renders the content as a data URI without storing anything.
func (s *Service) Preview(ctx context.Context, in PreviewInput) (*Preview, error) {
	r, err := s.render(ctx, in.Type, in.Content, in.Settings)
	if err != nil {
		return nil, err
	}
	return &Preview{
		Type:     in.Type,
		Encoded:  r.encoded,
		Image:    qrcode.DataURI(r.png),
		Settings: r.settings,
	}, nil
}

// Create renders the content, stores the image and persists the record.
// The image is removed again when the record cannot be saved.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Record, error) {
	if err := ValidateOwner(in.OwnerID); err != nil {
		return nil, err
	}
	r, err := s.render(ctx, in.Type, in.Content, in.Settings)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		ID:        s.newID(),
		OwnerID:   in.OwnerID,
		Type:      in.Type,
		Title:     titleFor(in.Title, in.Type, r.encoded),
		Fields:    r.fields,
		Encoded:   r.encoded,
		Settings:  r.settings,
		CreatedAt: s.now().UTC(),
	}

	obj, err := s.storage.Put(ctx, imageKey(rec.OwnerID, rec.ID), r.png, imageContentType)
	if err != nil {
		return nil, errors.Join(ErrFailedToStore, err)
	}
	rec.ImageKey = obj.Key
	rec.ImageURL = obj.URL

	if err := s.repo.Create(ctx, rec); err != nil {
		if delErr := s.storage.Delete(ctx, obj.Key); delErr != nil {
			s.log.ErrorContext(ctx, "failed to remove orphaned image",
				logger.ObjectKey(obj.Key),
				logger.Error(delErr),
				logger.Component("qrcodes"),
			)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "qr code created",
		logger.RecordID(rec.ID),
		logger.OwnerID(rec.OwnerID),
		logger.ContentType(rec.Type),
		logger.Component("qrcodes"),
	)
	return rec, nil
}

// Get returns the record with id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	return s.repo.Get(ctx, id)
}

// List returns the owner's records, newest first.
func (s *Service) List(ctx context.Context, ownerID string, filter ListFilter) ([]*Record, error) {
	if err := ValidateOwner(ownerID); err != nil {
		return nil, err
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, &qrcontent.UnsupportedTypeError{Type: string(filter.Type)}
	}
	return s.repo.List(ctx, ownerID, filter.normalize())
}

// Delete removes the owner's record and, best effort, its image.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if err := ValidateOwner(ownerID); err != nil {
		return err
	}
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if rec.OwnerID != ownerID {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	if rec.ImageKey != "" {
		if err := s.storage.Delete(ctx, rec.ImageKey); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			s.log.WarnContext(ctx, "failed to delete qr code image",
				logger.RecordID(id),
				logger.ObjectKey(rec.ImageKey),
				logger.Error(err),
				logger.Component("qrcodes"),
			)
		}
	}

	s.log.InfoContext(ctx, "qr code deleted",
		logger.RecordID(id),
		logger.OwnerID(ownerID),
		logger.Component("qrcodes"),
	)
	return nil
}

// Image returns the stored PNG for id. A missing image is rendered again
// from the record and stored back.
func (s *Service) Image(ctx context.Context, id uuid.UUID) ([]byte, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.ImageKey != "" {
		png, err := s.storage.Get(ctx, rec.ImageKey)
		if err == nil {
			return png, nil
		}
		if !errors.Is(err, storage.ErrObjectNotFound) {
			return nil, errors.Join(ErrFailedToStore, err)
		}
	}

	opts, err := rec.Settings.Options()
	if err != nil {
		return nil, err
	}
	png, err := s.renderPNG(ctx, rec.Encoded, rec.Settings.Normalize(), opts)
	if err != nil {
		return nil, err
	}
	key := rec.ImageKey
	if key == "" {
		key = imageKey(rec.OwnerID, rec.ID)
	}
	if _, err := s.storage.Put(ctx, key, png, imageContentType); err != nil {
		s.log.WarnContext(ctx, "failed to restore qr code image",
			logger.RecordID(id),
			logger.ObjectKey(key),
			logger.Error(err),
			logger.Component("qrcodes"),
		)
	}
	return png, nil
}

// ValidateOwner returns ErrOwnerRequired for an empty id and ErrInvalidOwner
// for ids that cannot be used as a storage key segment.
func ValidateOwner(ownerID string) error {
	switch {
	case ownerID == "":
		return ErrOwnerRequired
	case len(ownerID) > maxOwnerIDLength,
		ownerID == ".", ownerID == "..",
		strings.ContainsAny(ownerID, "/\\\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidOwner, ownerID)
	}
	return nil
}

func imageKey(ownerID string, id uuid.UUID) string {
	return "qrcodes/" + ownerID + "/" + id.String() + ".png"
}

// titleFor falls back to the encoded payload when title is blank, or to the
// type name for multi-line payloads.
func titleFor(title string, typ qrcontent.ContentType, encoded string) string {
	t := strings.TrimSpace(title)
	if t == "" {
		t = strings.TrimSpace(encoded)
		if strings.Contains(t, "\n") {
			t = string(typ)
		}
	}
	if utf8.RuneCountInString(t) > maxTitleLength {
		t = string([]rune(t)[:maxTitleLength])
	}
	return t
}
