package categories

import (
	"errors"
	"time"
)

// Category labels transactions. Categories are scoped to their owner's email;
// two users can each have their own "Groceries".
type Category struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	OwnerEmail string    `json:"owner_email" db:"owner_email"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// FallbackName is the category that absorbs transactions when their category
// is deleted. It is created on demand and cannot itself be deleted.
const FallbackName = "Uncategorized"

var (
	ErrNotFound        = errors.New("category not found")
	ErrDuplicate       = errors.New("category already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)
