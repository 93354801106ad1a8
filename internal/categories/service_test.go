package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateAndList(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := s.Create(ctx, "tester@test.com", "Groceries")
	require.NoError(t, err)
	_, err = s.Create(ctx, "tester@test.com", "Rent")
	require.NoError(t, err)

	// Same name under a different owner is fine.
	_, err = s.Create(ctx, "other@test.com", "Groceries")
	require.NoError(t, err)

	cats, err := s.List(ctx, "tester@test.com")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	require.Equal(t, "Groceries", cats[0].Name)
}

func TestCreateRejectsDuplicatePerOwner(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := s.Create(ctx, "tester@test.com", "Groceries")
	require.NoError(t, err)
	_, err = s.Create(ctx, "tester@test.com", "Groceries")
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestDeleteReassignsToFallback(t *testing.T) {
	repo := NewMemoryRepository()
	s := NewService(repo)
	ctx := context.Background()

	created, err := s.Create(ctx, "tester@test.com", "Groceries")
	require.NoError(t, err)

	var gotFrom, gotTo string
	repo.ReassignFunc = func(fromID, toID string) int64 {
		gotFrom, gotTo = fromID, toID
		return 3
	}

	moved, err := s.Delete(ctx, "tester@test.com", "Groceries")
	require.NoError(t, err)
	require.EqualValues(t, 3, moved)
	require.Equal(t, created.ID, gotFrom)

	// The fallback was created on demand and received the transactions.
	fallback, err := s.Get(ctx, "tester@test.com", FallbackName)
	require.NoError(t, err)
	require.Equal(t, fallback.ID, gotTo)

	_, err = s.Get(ctx, "tester@test.com", "Groceries")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteFallbackForbidden(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := s.Delete(ctx, "tester@test.com", FallbackName)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRenameGuardsFallback(t *testing.T) {
	s := NewService(NewMemoryRepository())
	ctx := context.Background()

	_, err := s.Create(ctx, "tester@test.com", "Groceries")
	require.NoError(t, err)

	_, err = s.Rename(ctx, "tester@test.com", "Groceries", FallbackName)
	require.ErrorIs(t, err, ErrInvalidArgument)

	renamed, err := s.Rename(ctx, "tester@test.com", "Groceries", "Food")
	require.NoError(t, err)
	require.Equal(t, "Food", renamed.Name)
}
