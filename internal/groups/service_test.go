package groups

import (
	"context"
	"testing"

	"fintrack/internal/auth"

	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	// nil cache: the service must work without Redis.
	return NewService(NewMemoryRepository(), nil)
}

func TestCreateAddsOwnerAsMember(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	g, err := s.Create(ctx, "household", "user-1", "owner@test.com")
	require.NoError(t, err)
	require.Equal(t, []string{"owner@test.com"}, g.MemberEmails)

	members, err := s.FindGroupMembers(ctx, "household")
	require.NoError(t, err)
	require.Equal(t, []string{"owner@test.com"}, members)
}

func TestFindGroupMembersUnknownGroup(t *testing.T) {
	s := newTestService()

	_, err := s.FindGroupMembers(context.Background(), "nope")
	require.ErrorIs(t, err, auth.ErrGroupNotFound)
}

func TestMembershipRoundTrip(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Create(ctx, "household", "user-1", "owner@test.com")
	require.NoError(t, err)

	require.NoError(t, s.AddMember(ctx, "household", "a@test.com"))
	require.NoError(t, s.AddMember(ctx, "household", "b@test.com"))

	members, err := s.FindGroupMembers(ctx, "household")
	require.NoError(t, err)
	require.Equal(t, []string{"a@test.com", "b@test.com", "owner@test.com"}, members)

	require.NoError(t, s.RemoveMember(ctx, "household", "a@test.com"))
	members, err = s.FindGroupMembers(ctx, "household")
	require.NoError(t, err)
	require.Equal(t, []string{"b@test.com", "owner@test.com"}, members)
}

func TestCreateValidation(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Create(ctx, "  ", "user-1", "owner@test.com")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Create(ctx, "household", "user-1", "owner@test.com")
	require.NoError(t, err)
	_, err = s.Create(ctx, "household", "user-2", "other@test.com")
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestListByMember(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Create(ctx, "household", "user-1", "owner@test.com")
	require.NoError(t, err)
	_, err = s.Create(ctx, "trip", "user-2", "other@test.com")
	require.NoError(t, err)
	require.NoError(t, s.AddMember(ctx, "trip", "owner@test.com"))

	gs, err := s.ListByMember(ctx, "owner@test.com")
	require.NoError(t, err)
	require.Len(t, gs, 2)
	require.Equal(t, "household", gs[0].Name)
	require.Equal(t, "trip", gs[1].Name)
}

func TestDeleteRemovesMembership(t *testing.T) {
	s := newTestService()
	ctx := context.Background()

	_, err := s.Create(ctx, "household", "user-1", "owner@test.com")
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, "household"))

	_, err = s.FindGroupMembers(ctx, "household")
	require.ErrorIs(t, err, auth.ErrGroupNotFound)
	require.ErrorIs(t, s.Delete(ctx, "household"), ErrNotFound)
}
