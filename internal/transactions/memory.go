package transactions

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory transaction store for tests and early
// development.
type MemoryRepository struct {
	mu   sync.Mutex
	byID map[string]Transaction
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]Transaction{}}
}

func (r *MemoryRepository) Create(_ context.Context, t Transaction) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[t.ID] = t
	return t, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, ownerEmail, id string) (Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || t.OwnerEmail != ownerEmail {
		return Transaction{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepository) List(_ context.Context, ownerEmail string, f Filter) ([]Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(t Transaction) bool { return t.OwnerEmail == ownerEmail && f.Matches(t) }), nil
}

func (r *MemoryRepository) ListByGroup(_ context.Context, groupName string, f Filter) ([]Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(t Transaction) bool { return t.GroupName == groupName && f.Matches(t) }), nil
}

func (r *MemoryRepository) collect(keep func(Transaction) bool) []Transaction {
	out := make([]Transaction, 0)
	for _, t := range r.byID {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].OccurredAt.After(out[j].OccurredAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *MemoryRepository) Update(_ context.Context, t Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[t.ID]
	if !ok || existing.OwnerEmail != t.OwnerEmail {
		return ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, ownerEmail, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok || t.OwnerEmail != ownerEmail {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// Reassign moves all transactions from one category to another, mirroring the
// SQL reassignment categories perform on delete.
func (r *MemoryRepository) Reassign(fromCategoryID, toCategoryID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var moved int64
	for id, t := range r.byID {
		if t.CategoryID == fromCategoryID {
			t.CategoryID = toCategoryID
			r.byID[id] = t
			moved++
		}
	}
	return moved
}
