package qrcodes

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
)

// Record is a persisted QR code.
type Record struct {
	ID        uuid.UUID             `json:"id"`
	OwnerID   string                `json:"owner_id"`
	Type      qrcontent.ContentType `json:"type"`
	Title     string                `json:"title"`
	Fields    qrcontent.Fields      `json:"content"`
	Encoded   string                `json:"encoded"`
	Settings  qrcode.Settings       `json:"settings"`
	ImageKey  string                `json:"-"`
	ImageURL  string                `json:"image_url,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// Default and maximum page sizes for List.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ListFilter narrows List results. Search matches title or encoded payload,
// case-insensitively.
type ListFilter struct {
	Type   qrcontent.ContentType
	Search string
	Limit  int
	Offset int
}

func (f ListFilter) normalize() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	f.Limit = min(f.Limit, MaxListLimit)
	f.Offset = max(f.Offset, 0)
	return f
}

// PreviewInput is the content to encode and render without persisting.
type PreviewInput struct {
	Type     qrcontent.ContentType `json:"type"`
	Content  qrcontent.Fields      `json:"content"`
	Settings qrcode.Settings       `json:"settings"`
}

// Preview is the result of rendering a PreviewInput.
type Preview struct {
	Type     qrcontent.ContentType `json:"type"`
	Encoded  string                `json:"encoded"`
	Image    string                `json:"image"`
	Settings qrcode.Settings       `json:"settings"`
}

// CreateInput is the content of a new record.
type CreateInput struct {
	OwnerID  string                `json:"-"`
	Title    string                `json:"title"`
	Type     qrcontent.ContentType `json:"type"`
	Content  qrcontent.Fields      `json:"content"`
	Settings qrcode.Settings       `json:"settings"`
}
