package qrcodes

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps records in process memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Record
	seq     map[uuid.UUID]uint64 // insertion order, breaks CreatedAt ties
	next    uint64
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[uuid.UUID]*Record),
		seq:     make(map[uuid.UUID]uint64),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.ID]; ok {
		return ErrAlreadyExists
	}
	r.next++
	r.records[rec.ID] = cloneRecord(rec)
	r.seq[rec.ID] = r.next
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (r *MemoryRepository) List(ctx context.Context, ownerID string, filter ListFilter) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	filter = filter.normalize()
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Record
	for _, rec := range r.records {
		if rec.OwnerID != ownerID {
			continue
		}
		if filter.Type != "" && rec.Type != filter.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.Title), search) &&
			!strings.Contains(strings.ToLower(rec.Encoded), search) {
			continue
		}
		matched = append(matched, rec)
	}

	slices.SortFunc(matched, func(a, b *Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(r.seq[b.ID], r.seq[a.ID])
	})

	if filter.Offset >= len(matched) {
		return []*Record{}, nil
	}
	matched = matched[filter.Offset:min(filter.Offset+filter.Limit, len(matched))]

	out := make([]*Record, 0, len(matched))
	for _, rec := range matched {
		out = append(out, cloneRecord(rec))
	}
	return out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || rec.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(r.records, id)
	delete(r.seq, id)
	return nil
}

func cloneRecord(rec *Record) *Record {
	out := *rec
	out.Fields = maps.Clone(rec.Fields)
	if rec.Settings.Margin != nil {
		m := *rec.Settings.Margin
		out.Settings.Margin = &m
	}
	return &out
}
