package auth

import (
	"errors"
	"time"

	"fintrack/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Codec failure kinds. Callers must distinguish exactly these two:
// an expired token may still lead to a silent renewal, an invalid one never does.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Codec signs and verifies session tokens with the process-wide secret.
// The secret is loaded once at startup and never changes for the process lifetime.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(cfg config.AuthConfig) (*Codec, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return &Codec{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}, nil
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// Sign produces a token for claims with iat=now and exp=now+lifetime.
// Any prior iat/exp on the claims value is overwritten.
func (c *Codec) Sign(claims Claims, lifetime time.Duration, now time.Time) (string, error) {
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(lifetime))
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// IssuePair signs the access/refresh token pair handed out at login.
// Both tokens carry the same claims; only the lifetimes differ.
func (c *Codec) IssuePair(now time.Time, claims Claims) (TokenPair, error) {
	access, err := c.Sign(claims, c.accessTTL, now)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := c.Sign(claims, c.refreshTTL, now)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify decodes a token string against the process secret.
// Failures collapse to exactly two kinds:
//   - ErrTokenExpired: signature and structure check out but exp is in the past
//   - ErrTokenInvalid: bad signature, malformed, or empty token
func (c *Codec) Verify(tokenString string, now time.Time) (Claims, error) {
	if tokenString == "" {
		return Claims{}, ErrTokenInvalid
	}

	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		// A broken signature or structure wins over expiry: jwt/v5 joins
		// validation errors, so check the invalid kinds first.
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return Claims{}, ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrTokenExpired
		default:
			return Claims{}, ErrTokenInvalid
		}
	}
	return claims, nil
}
