package users

import (
	"errors"
	"time"

	"fintrack/internal/auth"
)

// User is an account known to the tracker.
// PasswordHash is a bcrypt hash and must never leave this package.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	Role         auth.Role `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

var (
	ErrNotFound        = errors.New("user not found")
	ErrDuplicate       = errors.New("username or email already taken")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrBadCredentials  = errors.New("wrong username or password")
)

// Claims maps the account to the identity payload placed in session tokens.
func (u User) Claims() auth.Claims {
	return auth.Claims{
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		UserID:   u.ID,
	}
}
