package transactions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateRequest struct {
	CategoryID  string
	GroupName   string
	AmountMinor int64
	Note        string
	OccurredAt  time.Time
}

func (s *Service) Create(ctx context.Context, ownerEmail string, req CreateRequest) (Transaction, error) {
	if ownerEmail == "" || req.CategoryID == "" || req.AmountMinor == 0 {
		return Transaction{}, ErrInvalidArgument
	}
	occurred := req.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return s.repo.Create(ctx, Transaction{
		ID:          uuid.NewString(),
		OwnerEmail:  ownerEmail,
		CategoryID:  req.CategoryID,
		GroupName:   req.GroupName,
		AmountMinor: req.AmountMinor,
		Note:        req.Note,
		OccurredAt:  occurred,
		CreatedAt:   time.Now().UTC(),
	})
}

func (s *Service) Get(ctx context.Context, ownerEmail, id string) (Transaction, error) {
	return s.repo.GetByID(ctx, ownerEmail, id)
}

func (s *Service) List(ctx context.Context, ownerEmail string, f Filter) ([]Transaction, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ownerEmail, f)
}

// ListByGroup lists a group's shared transactions. Membership is enforced by
// the authorization middleware, not here.
func (s *Service) ListByGroup(ctx context.Context, groupName string, f Filter) ([]Transaction, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	return s.repo.ListByGroup(ctx, groupName, f)
}

type UpdateRequest struct {
	CategoryID  string
	GroupName   string
	AmountMinor int64
	Note        string
	OccurredAt  time.Time
}

func (s *Service) Update(ctx context.Context, ownerEmail, id string, req UpdateRequest) (Transaction, error) {
	t, err := s.repo.GetByID(ctx, ownerEmail, id)
	if err != nil {
		return Transaction{}, err
	}

	if req.CategoryID != "" {
		t.CategoryID = req.CategoryID
	}
	t.GroupName = req.GroupName
	if req.AmountMinor != 0 {
		t.AmountMinor = req.AmountMinor
	}
	t.Note = req.Note
	if !req.OccurredAt.IsZero() {
		t.OccurredAt = req.OccurredAt
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, ownerEmail, id string) error {
	return s.repo.Delete(ctx, ownerEmail, id)
}

func validateFilter(f Filter) error {
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return ErrInvalidArgument
	}
	if f.MinAmount != nil && f.MaxAmount != nil && *f.MaxAmount < *f.MinAmount {
		return ErrInvalidArgument
	}
	return nil
}
