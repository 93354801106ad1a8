package users

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/config"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	codec, err := auth.NewCodec(config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	return NewService(NewMemoryRepository(), codec)
}

func TestRegisterAndLogin(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	u, err := s.Register(ctx, RegisterRequest{Username: "tester", Email: "tester@test.com", Password: "correct horse"})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, auth.RoleRegular, u.Role)
	require.NotEqual(t, "correct horse", u.PasswordHash)

	pair, err := s.Login(ctx, time.Now(), "tester", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{Username: "tester", Email: "tester@test.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = s.Login(ctx, time.Now(), "tester", "wrong password")
	require.ErrorIs(t, err, ErrBadCredentials)

	// Unknown user is indistinguishable from a wrong password.
	_, err = s.Login(ctx, time.Now(), "nobody", "correct horse")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{Username: "", Email: "a@b.c", Password: "longenough"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Register(ctx, RegisterRequest{Username: "x", Email: "a@b.c", Password: "short"})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{Username: "tester", Email: "tester@test.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = s.Register(ctx, RegisterRequest{Username: "tester", Email: "other@test.com", Password: "longenough"})
	require.ErrorIs(t, err, ErrDuplicate)

	_, err = s.Register(ctx, RegisterRequest{Username: "other", Email: "tester@test.com", Password: "longenough"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestSetRole(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{Username: "tester", Email: "tester@test.com", Password: "longenough"})
	require.NoError(t, err)

	u, err := s.SetRole(ctx, "tester", auth.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, auth.RoleAdmin, u.Role)

	_, err = s.SetRole(ctx, "tester", "Owner")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateKeepsPasswordWhenOmitted(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{Username: "tester", Email: "tester@test.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = s.Update(ctx, "tester", UpdateRequest{Email: "new@test.com"})
	require.NoError(t, err)

	pair, err := s.Login(ctx, time.Now(), "tester", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
}
