package images

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists uploads.
type Repository interface {
	// Create returns ErrAlreadyExists when the id is taken.
	Create(ctx context.Context, u *Upload) error
	// Get returns ErrNotFound when no upload has id.
	Get(ctx context.Context, id uuid.UUID) (*Upload, error)
	// List returns ownerID's uploads, newest first.
	List(ctx context.Context, ownerID string, page Page) ([]*Upload, error)
	// Delete returns ErrNotFound unless ownerID owns the upload.
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
}
