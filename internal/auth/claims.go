package auth

import "github.com/golang-jwt/jwt/v5"

// Role is the application authorization role carried inside session tokens.
// Keep the string values stable; they are part of the token contract.
type Role string

const (
	RoleRegular Role = "Regular"
	RoleAdmin   Role = "Admin"
)

func (r Role) Known() bool { return r == RoleRegular || r == RoleAdmin }

// Claims is the identity payload carried inside both session cookies.
type Claims struct {
	jwt.RegisteredClaims

	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	UserID   string `json:"id"`
}

// Complete reports whether the claims carry a full identity.
// A token that decodes but is incomplete is never treated as authenticated,
// regardless of signature validity or expiry.
func (c Claims) Complete() bool {
	return c.Username != "" && c.Email != "" && c.UserID != "" && c.Role.Known()
}
