package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"fintrack/internal/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service handles account lifecycle and credential checks.
// Token issuance is delegated to the auth codec; this service never touches
// the signing secret directly.
type Service struct {
	repo  Repository
	codec *auth.Codec
}

func NewService(repo Repository, codec *auth.Codec) *Service {
	return &Service{repo: repo, codec: codec}
}

type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || len(req.Password) < 8 {
		return User{}, ErrInvalidArgument
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		Role:         auth.RoleRegular,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	return s.repo.Create(ctx, u)
}

// Login checks credentials and issues a fresh session token pair.
// Lookup misses and hash mismatches collapse into ErrBadCredentials so the
// response does not leak which usernames exist.
func (s *Service) Login(ctx context.Context, now time.Time, username, password string) (auth.TokenPair, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.TokenPair{}, ErrBadCredentials
		}
		return auth.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return auth.TokenPair{}, ErrBadCredentials
	}

	return s.codec.IssuePair(now, u.Claims())
}

func (s *Service) Get(ctx context.Context, username string) (User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

type UpdateRequest struct {
	Email    string
	Password string
}

func (s *Service) Update(ctx context.Context, username string, req UpdateRequest) (User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}

	if email := strings.TrimSpace(req.Email); email != "" {
		u.Email = email
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			return User{}, ErrInvalidArgument
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// SetRole promotes or demotes an account. Admin-only at the HTTP layer.
func (s *Service) SetRole(ctx context.Context, username string, role auth.Role) (User, error) {
	if !role.Known() {
		return User{}, ErrInvalidArgument
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}
	u.Role = role
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, username string) error {
	return s.repo.Delete(ctx, username)
}
