package auth

import (
	"context"
	"errors"
	"time"
)

// ErrGroupNotFound must be returned by MemberDirectory implementations when
// the named group does not exist.
var ErrGroupNotFound = errors.New("group not found")

// MemberDirectory resolves a group name to its member email set.
// The lookup is the only I/O the verification layer ever depends on.
type MemberDirectory interface {
	FindGroupMembers(ctx context.Context, name string) ([]string, error)
}

func (v *Verifier) CheckAnyone(now time.Time, access, refresh string) Outcome {
	return v.Verify(now, access, refresh, Anyone())
}

func (v *Verifier) CheckSameUser(now time.Time, access, refresh, username string) Outcome {
	return v.Verify(now, access, refresh, SameUser(username))
}

func (v *Verifier) CheckAdmin(now time.Time, access, refresh string) Outcome {
	return v.Verify(now, access, refresh, AdminOnly())
}

func (v *Verifier) CheckGroupMember(now time.Time, access, refresh string, memberEmails []string) Outcome {
	return v.Verify(now, access, refresh, GroupMember(memberEmails))
}

// CheckGroupByName resolves groupName through dir and checks membership.
// When the group does not exist the verifier is never run: there is no member
// set to authorize against. Any other directory error is an infrastructure
// failure and is returned as-is rather than disguised as a missing group.
func (v *Verifier) CheckGroupByName(ctx context.Context, now time.Time, access, refresh, groupName string, dir MemberDirectory) (Outcome, error) {
	members, err := dir.FindGroupMembers(ctx, groupName)
	switch {
	case errors.Is(err, ErrGroupNotFound):
		return Outcome{Cause: FailureGroupNotFound}, nil
	case err != nil:
		return Outcome{}, err
	}
	return v.CheckGroupMember(now, access, refresh, members), nil
}
