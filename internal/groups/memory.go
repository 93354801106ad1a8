package groups

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory group store for tests and early development.
type MemoryRepository struct {
	mu      sync.Mutex
	groups  map[string]Group           // keyed by name
	members map[string]map[string]bool // name -> email set
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		groups:  map[string]Group{},
		members: map[string]map[string]bool{},
	}
}

func (r *MemoryRepository) Create(_ context.Context, g Group) (Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[g.Name]; ok {
		return Group{}, ErrDuplicate
	}
	r.groups[g.Name] = g
	r.members[g.Name] = map[string]bool{}
	return g, nil
}

func (r *MemoryRepository) GetByName(_ context.Context, name string) (Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[name]
	if !ok {
		return Group{}, ErrNotFound
	}
	return g, nil
}

func (r *MemoryRepository) FindMembers(_ context.Context, name string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[name]
	if !ok {
		return nil, ErrNotFound
	}
	emails := make([]string, 0, len(set))
	for e := range set {
		emails = append(emails, e)
	}
	sort.Strings(emails)
	return emails, nil
}

func (r *MemoryRepository) AddMember(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[name]
	if !ok {
		return ErrNotFound
	}
	set[email] = true
	return nil
}

func (r *MemoryRepository) RemoveMember(_ context.Context, name, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[name]
	if !ok {
		return ErrNotFound
	}
	delete(set, email)
	return nil
}

func (r *MemoryRepository) ListByMember(_ context.Context, email string) ([]Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Group, 0)
	for name, set := range r.members {
		if set[email] {
			out = append(out, r.groups[name])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[name]; !ok {
		return ErrNotFound
	}
	delete(r.groups, name)
	delete(r.members, name)
	return nil
}
