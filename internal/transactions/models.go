package transactions

import (
	"errors"
	"time"
)

// Transaction is a single recorded expense or income.
// AmountMinor is signed, in minor units (cents): negative for spending,
// positive for income. Never store floats for money.
type Transaction struct {
	ID         string    `json:"id" db:"id"`
	OwnerEmail string    `json:"owner_email" db:"owner_email"`
	CategoryID string    `json:"category_id" db:"category_id"`
	GroupName  string    `json:"group_name,omitempty" db:"group_name"`

	AmountMinor int64     `json:"amount_minor" db:"amount_minor"`
	Note        string    `json:"note,omitempty" db:"note"`
	OccurredAt  time.Time `json:"occurred_at" db:"occurred_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Filter narrows a listing. Zero values mean "no constraint"; the window is
// half-open [From, To).
type Filter struct {
	From       time.Time
	To         time.Time
	MinAmount  *int64
	MaxAmount  *int64
	CategoryID string
	GroupName  string
}

var (
	ErrNotFound        = errors.New("transaction not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Matches applies the filter in memory; the Postgres repository compiles the
// same semantics to SQL.
func (f Filter) Matches(t Transaction) bool {
	if !f.From.IsZero() && t.OccurredAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !t.OccurredAt.Before(f.To) {
		return false
	}
	if f.MinAmount != nil && t.AmountMinor < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && t.AmountMinor > *f.MaxAmount {
		return false
	}
	if f.CategoryID != "" && t.CategoryID != f.CategoryID {
		return false
	}
	if f.GroupName != "" && t.GroupName != f.GroupName {
		return false
	}
	return true
}
