package groups

import (
	"errors"
	"time"
)

// Group is a shared-expense circle. Membership is tracked by email, the same
// identifier session tokens carry, so authorization never needs a join back
// to the users table.
type Group struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	MemberEmails []string `json:"member_emails,omitempty"`
}

var (
	ErrNotFound        = errors.New("group not found")
	ErrDuplicate       = errors.New("group name already taken")
	ErrInvalidArgument = errors.New("invalid argument")
)
