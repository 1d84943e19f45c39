package images

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/qrkit/internal/qrcodes"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
	"github.com/dmitrymomot/qrkit/pkg/storage"
	"github.com/dmitrymomot/qrkit/pkg/upload"
)

// DefaultMaxSize bounds uploaded pictures.
const DefaultMaxSize int64 = 10 << 20

// DefaultBackground is the view-only page colour when none is chosen.
const DefaultBackground = "#3b82f6"

const viewOnlyMode = "view-only"

// QRCodes creates and removes the QR code that points at a view page.
// *qrcodes.Service implements it.
type QRCodes interface {
	Create(ctx context.Context, in qrcodes.CreateInput) (*qrcodes.Record, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
}

// Service stores uploads and links them to QR codes.
type Service struct {
	repo    Repository
	storage storage.Storage
	qr      QRCodes
	baseURL string
	maxSize int64
	log     *slog.Logger
	now     func() time.Time
	newID   func() uuid.UUID
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMaxSize sets the largest accepted picture in bytes.
func WithMaxSize(n int64) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.maxSize = n
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

// WithClock overrides the upload timestamp source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService returns a service that stores pictures in store and creates
// their QR codes through qr. publicURL is the absolute origin view pages are
// served from, e.g. https://qr.example.
func NewService(repo Repository, store storage.Storage, qr QRCodes, publicURL string, opts ...ServiceOption) (*Service, error) {
	u, err := url.Parse(strings.TrimSpace(publicURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, publicURL)
	}
	s := &Service{
		repo:    repo,
		storage: store,
		qr:      qr,
		baseURL: strings.TrimRight(u.String(), "/"),
		maxSize: DefaultMaxSize,
		log:     logger.Discard(),
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// MaxSize is the largest accepted picture in bytes.
func (s *Service) MaxSize() int64 {
	return s.maxSize
}

// QRSettings are the render settings for view page QR codes.
func QRSettings() qrcode.Settings {
	margin := 2
	return qrcode.Settings{Size: 300, Margin: &margin}
}

// Upload stores the picture, creates a url QR code for its view page and
// saves the link between them. Anything written before a failure is
// removed again.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*Upload, error) {
	if err := qrcodes.ValidateOwner(in.OwnerID); err != nil {
		return nil, err
	}
	switch size := int64(len(in.Data)); {
	case size == 0:
		return nil, upload.ErrEmptyFile
	case size > s.maxSize:
		return nil, fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", size, s.maxSize, upload.ErrFileTooLarge)
	}
	mimeType := upload.Detect(in.Data)
	if !upload.IsImageType(mimeType) {
		return nil, fmt.Errorf("%w: detected %s", upload.ErrNotAnImage, mimeType)
	}

	var background string
	if in.ViewOnly {
		bg := in.Background
		if strings.TrimSpace(bg) == "" {
			bg = DefaultBackground
		}
		c, err := qrcode.ParseHexColor(bg)
		if err != nil {
			return nil, err
		}
		background = fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}

	u := &Upload{
		ID:          s.newID(),
		OwnerID:     in.OwnerID,
		Name:        upload.SanitizeFilename(in.Filename),
		MIMEType:    mimeType,
		Size:        int64(len(in.Data)),
		Description: strings.TrimSpace(in.Description),
		ViewOnly:    in.ViewOnly,
		Background:  background,
		CreatedAt:   s.now().UTC(),
	}
	u.PageURL = s.pageURL(u)

	obj, err := s.storage.Put(ctx, uploadKey(u.OwnerID, u.ID, mimeType), in.Data, mimeType)
	if err != nil {
		return nil, errors.Join(ErrFailedToStore, err)
	}
	u.ImageKey = obj.Key
	u.ImageURL = obj.URL

	title := u.Description
	if title == "" {
		title = u.Name
	}
	qr, err := s.qr.Create(ctx, qrcodes.CreateInput{
		OwnerID:  u.OwnerID,
		Title:    title,
		Type:     qrcontent.TypeURL,
		Content:  qrcontent.Fields{"url": u.PageURL},
		Settings: QRSettings(),
	})
	if err != nil {
		s.removeImage(ctx, u)
		return nil, err
	}
	u.QRCodeID = qr.ID
	u.QRImageURL = qr.ImageURL

	if err := s.repo.Create(ctx, u); err != nil {
		s.removeQRCode(ctx, u)
		s.removeImage(ctx, u)
		return nil, err
	}

	s.log.InfoContext(ctx, "image uploaded",
		logger.RecordID(u.ID),
		logger.OwnerID(u.OwnerID),
		logger.ObjectKey(u.ImageKey),
		logger.Component("images"),
	)
	return u, nil
}

// Get returns the upload with id. View pages call it without an owner.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Upload, error) {
	return s.repo.Get(ctx, id)
}

// List returns the owner's uploads, newest first.
func (s *Service) List(ctx context.Context, ownerID string, page Page) ([]*Upload, error) {
	if err := qrcodes.ValidateOwner(ownerID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ownerID, page.normalize())
}

// Delete removes the owner's upload, its QR code and the stored picture.
// QR code and picture removal is best effort.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if err := qrcodes.ValidateOwner(ownerID); err != nil {
		return err
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.OwnerID != ownerID {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.removeQRCode(ctx, u)
	s.removeImage(ctx, u)

	s.log.InfoContext(ctx, "image deleted",
		logger.RecordID(id),
		logger.OwnerID(ownerID),
		logger.Component("images"),
	)
	return nil
}

func (s *Service) pageURL(u *Upload) string {
	page := s.baseURL + "/view/" + u.ID.String()
	if u.ViewOnly {
		page += "?mode=" + viewOnlyMode + "&bg=" + strings.TrimPrefix(u.Background, "#")
	}
	return page
}

func (s *Service) removeImage(ctx context.Context, u *Upload) {
	if u.ImageKey == "" {
		return
	}
	if err := s.storage.Delete(ctx, u.ImageKey); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		s.log.WarnContext(ctx, "failed to delete uploaded image",
			logger.RecordID(u.ID),
			logger.ObjectKey(u.ImageKey),
			logger.Error(err),
			logger.Component("images"),
		)
	}
}

func (s *Service) removeQRCode(ctx context.Context, u *Upload) {
	if u.QRCodeID == uuid.Nil {
		return
	}
	if err := s.qr.Delete(ctx, u.QRCodeID, u.OwnerID); err != nil && !errors.Is(err, qrcodes.ErrNotFound) {
		s.log.WarnContext(ctx, "failed to delete image qr code",
			logger.RecordID(u.QRCodeID),
			logger.Error(err),
			logger.Component("images"),
		)
	}
}

func uploadKey(ownerID string, id uuid.UUID, mimeType string) string {
	return "uploads/" + ownerID + "/" + id.String() + upload.Extension(mimeType)
}
