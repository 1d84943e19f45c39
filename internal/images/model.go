package images

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/qrkit/internal/qrcodes"
)

// Upload is a stored picture and the QR code that links to its view page.
type Upload struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	MIMEType    string    `json:"mime_type"`
	Size        int64     `json:"size"`
	Description string    `json:"description"`
	ImageKey    string    `json:"-"`
	ImageURL    string    `json:"image_url"`
	PageURL     string    `json:"page_url"`
	ViewOnly    bool      `json:"view_only"`
	Background  string    `json:"background,omitempty"`
	QRCodeID    uuid.UUID `json:"qr_code_id"`
	QRImageURL  string    `json:"qr_image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Page selects a window of List results.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() Page {
	if p.Limit <= 0 {
		p.Limit = qrcodes.DefaultListLimit
	}
	p.Limit = min(p.Limit, qrcodes.MaxListLimit)
	p.Offset = max(p.Offset, 0)
	return p
}

// UploadInput is a picture to store. Data is the raw file content; its type
// is sniffed, never trusted from the client.
type UploadInput struct {
	OwnerID     string
	Filename    string
	Data        []byte
	Description string
	ViewOnly    bool
	// Background is the view-only page colour, "#RRGGBB" or "#RGB".
	// Ignored unless ViewOnly is set.
	Background string
}
