package qrcodes

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists records.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	// Get returns ErrNotFound when no record has id.
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	// List returns ownerID's records, newest first.
	List(ctx context.Context, ownerID string, filter ListFilter) ([]*Record, error)
	// Delete returns ErrNotFound unless ownerID owns the record.
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
}
