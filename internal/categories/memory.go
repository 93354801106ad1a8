package categories

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory category store for tests and early
// development. Reassignment is delegated to the injected func since this
// package does not own transaction storage.
type MemoryRepository struct {
	mu   sync.Mutex
	byID map[string]Category

	// ReassignFunc moves transactions between categories; nil means no
	// transactions exist to move.
	ReassignFunc func(fromID, toID string) int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]Category{}}
}

func (r *MemoryRepository) Create(_ context.Context, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.OwnerEmail == c.OwnerEmail && existing.Name == c.Name {
			return Category{}, ErrDuplicate
		}
	}
	r.byID[c.ID] = c
	return c, nil
}

func (r *MemoryRepository) GetByName(_ context.Context, ownerEmail, name string) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.OwnerEmail == ownerEmail && c.Name == name {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *MemoryRepository) ListByOwner(_ context.Context, ownerEmail string) ([]Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Category, 0)
	for _, c := range r.byID {
		if c.OwnerEmail == ownerEmail {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) Rename(_ context.Context, ownerEmail, name, newName string) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.byID {
		if c.OwnerEmail == ownerEmail && c.Name == newName {
			return Category{}, ErrDuplicate
		}
	}
	for id, c := range r.byID {
		if c.OwnerEmail == ownerEmail && c.Name == name {
			c.Name = newName
			r.byID[id] = c
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (r *MemoryRepository) DeleteAndReassign(_ context.Context, id, fallbackID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return 0, ErrNotFound
	}
	var moved int64
	if r.ReassignFunc != nil {
		moved = r.ReassignFunc(id, fallbackID)
	}
	delete(r.byID, id)
	return moved, nil
}
