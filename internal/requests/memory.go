package requests

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps requests in process memory. It serves local runs without a database
// and tests that need a real Store.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Request
	now     func() time.Time
}

// NewMemoryStore creates an empty MemoryStore that stamps records using now.
// A nil now uses time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now}
}

func (s *MemoryStore) Insert(ctx context.Context, r NewRequest) (Request, error) {
	if err := ctx.Err(); err != nil {
		return Request{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Request{}, fmt.Errorf("generate id: %w", err)
	}

	ts := s.now().UTC()
	rec := Request{
		ID:        ID(id.String()),
		FullName:  r.FullName,
		Email:     r.Email,
		Phone:     r.Phone,
		Service:   r.Service,
		Message:   r.Message,
		Status:    r.Status,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()

	return rec, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore) Find(ctx context.Context, skip, limit int) ([]Request, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	sorted := slices.Clone(s.records)
	s.mu.RUnlock()

	slices.SortFunc(sorted, newestFirst)

	if skip < 0 || skip >= len(sorted) {
		return []Request{}, nil
	}
	end := min(skip+limit, len(sorted))
	return sorted[skip:end], nil
}

func newestFirst(a, b Request) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}
