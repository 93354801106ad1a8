package groups

import (
	"context"
	"errors"
	"strings"
	"time"

	"fintrack/internal/auth"

	"github.com/google/uuid"
)

// Service owns group lifecycle and membership. It is the MemberDirectory the
// session verifier consults for group-scoped authorization.
type Service struct {
	repo  Repository
	cache *MemberCache
}

// NewService builds a group service; cache may be nil when Redis is not wired.
func NewService(repo Repository, cache *MemberCache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) Create(ctx context.Context, name, ownerID, ownerEmail string) (Group, error) {
	name = strings.TrimSpace(name)
	if name == "" || ownerID == "" || ownerEmail == "" {
		return Group{}, ErrInvalidArgument
	}

	g, err := s.repo.Create(ctx, Group{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return Group{}, err
	}

	// The creator is always the first member.
	if err := s.repo.AddMember(ctx, name, ownerEmail); err != nil {
		return Group{}, err
	}
	g.MemberEmails = []string{ownerEmail}
	return g, nil
}

func (s *Service) Get(ctx context.Context, name string) (Group, error) {
	g, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return Group{}, err
	}
	members, err := s.FindGroupMembers(ctx, name)
	if err != nil {
		return Group{}, err
	}
	g.MemberEmails = members
	return g, nil
}

// FindGroupMembers implements auth.MemberDirectory with a Redis cache-aside
// read. A missing group surfaces as auth.ErrGroupNotFound.
func (s *Service) FindGroupMembers(ctx context.Context, name string) ([]string, error) {
	if emails, ok := s.cache.Get(ctx, name); ok {
		return emails, nil
	}

	emails, err := s.repo.FindMembers(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrGroupNotFound
		}
		return nil, err
	}

	s.cache.Set(ctx, name, emails)
	return emails, nil
}

func (s *Service) AddMember(ctx context.Context, name, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidArgument
	}
	if err := s.repo.AddMember(ctx, name, email); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, name)
	return nil
}

func (s *Service) RemoveMember(ctx context.Context, name, email string) error {
	if err := s.repo.RemoveMember(ctx, name, email); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, name)
	return nil
}

func (s *Service) ListByMember(ctx context.Context, email string) ([]Group, error) {
	return s.repo.ListByMember(ctx, email)
}

func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, name)
	return nil
}
