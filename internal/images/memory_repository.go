package images

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps uploads in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	uploads map[uuid.UUID]*Upload
	seq     map[uuid.UUID]uint64
	next    uint64
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		uploads: make(map[uuid.UUID]*Upload),
		seq:     make(map[uuid.UUID]uint64),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, u *Upload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.uploads[u.ID]; ok {
		return ErrAlreadyExists
	}
	r.next++
	cp := *u
	r.uploads[u.ID] = &cp
	r.seq[u.ID] = r.next
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id uuid.UUID) (*Upload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.uploads[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryRepository) List(ctx context.Context, ownerID string, page Page) ([]*Upload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page = page.normalize()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Upload
	for _, u := range r.uploads {
		if u.OwnerID == ownerID {
			matched = append(matched, u)
		}
	}
	slices.SortFunc(matched, func(a, b *Upload) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(r.seq[b.ID], r.seq[a.ID])
	})

	if page.Offset >= len(matched) {
		return []*Upload{}, nil
	}
	matched = matched[page.Offset:min(page.Offset+page.Limit, len(matched))]

	out := make([]*Upload, 0, len(matched))
	for _, u := range matched {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.uploads[id]
	if !ok || u.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.uploads, id)
	delete(r.seq, id)
	return nil
}
