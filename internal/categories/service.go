package categories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerEmail, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || ownerEmail == "" {
		return Category{}, ErrInvalidArgument
	}
	return s.repo.Create(ctx, Category{
		ID:         uuid.NewString(),
		Name:       name,
		OwnerEmail: ownerEmail,
		CreatedAt:  time.Now().UTC(),
	})
}

func (s *Service) Get(ctx context.Context, ownerEmail, name string) (Category, error) {
	return s.repo.GetByName(ctx, ownerEmail, name)
}

func (s *Service) List(ctx context.Context, ownerEmail string) ([]Category, error) {
	return s.repo.ListByOwner(ctx, ownerEmail)
}

func (s *Service) Rename(ctx context.Context, ownerEmail, name, newName string) (Category, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == FallbackName || name == FallbackName {
		return Category{}, ErrInvalidArgument
	}
	return s.repo.Rename(ctx, ownerEmail, name, newName)
}

// Delete removes a category and reassigns its transactions to the owner's
// fallback category, creating the fallback first when missing.
func (s *Service) Delete(ctx context.Context, ownerEmail, name string) (int64, error) {
	if name == FallbackName {
		return 0, ErrInvalidArgument
	}

	c, err := s.repo.GetByName(ctx, ownerEmail, name)
	if err != nil {
		return 0, err
	}

	fallback, err := s.ensureFallback(ctx, ownerEmail)
	if err != nil {
		return 0, err
	}

	return s.repo.DeleteAndReassign(ctx, c.ID, fallback.ID)
}

func (s *Service) ensureFallback(ctx context.Context, ownerEmail string) (Category, error) {
	fallback, err := s.repo.GetByName(ctx, ownerEmail, FallbackName)
	if err == nil {
		return fallback, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Category{}, err
	}

	fallback, err = s.repo.Create(ctx, Category{
		ID:         uuid.NewString(),
		Name:       FallbackName,
		OwnerEmail: ownerEmail,
		CreatedAt:  time.Now().UTC(),
	})
	if errors.Is(err, ErrDuplicate) {
		// Lost a race with a concurrent ensure; the winner's row is fine.
		return s.repo.GetByName(ctx, ownerEmail, FallbackName)
	}
	return fallback, err
}
