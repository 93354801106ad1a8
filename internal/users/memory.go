package users

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory user store for tests and early development.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]User // keyed by username
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: map[string]User{}}
}

func (r *MemoryRepository) Create(_ context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return User{}, ErrDuplicate
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return User{}, ErrDuplicate
		}
	}
	r.users[u.Username] = u
	return u, nil
}

func (r *MemoryRepository) GetByUsername(_ context.Context, username string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepository) Update(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; !ok {
		return ErrNotFound
	}
	r.users[u.Username] = u
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return ErrNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
