package auth

import (
	"net/http"
	"time"
)

// Cookie names for the two session tokens.
const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

const cookiePath = "/api"

// renewalMaxAge is the renewal window clients rely on: exactly one hour.
const renewalMaxAge = 3600 // seconds

// RenewalCookie builds the cookie that carries a renewed access token back to
// the client. The attributes are a fixed contract; clients expect a stable
// one-hour window on the /api path.
func RenewalCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     AccessCookieName,
		Value:    token,
		Path:     cookiePath,
		MaxAge:   renewalMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// SessionCookies builds the pair of cookies set at login. The access cookie
// uses the same attributes as a renewal; the refresh cookie lives for its TTL.
func SessionCookies(pair TokenPair, refreshTTL time.Duration) []*http.Cookie {
	refresh := &http.Cookie{
		Name:     RefreshCookieName,
		Value:    pair.RefreshToken,
		Path:     cookiePath,
		MaxAge:   int(refreshTTL / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
	return []*http.Cookie{RenewalCookie(pair.AccessToken), refresh}
}

// ClearSessionCookies builds expired cookies that remove the session pair.
func ClearSessionCookies() []*http.Cookie {
	expired := func(name string) *http.Cookie {
		return &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     cookiePath,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		}
	}
	return []*http.Cookie{expired(AccessCookieName), expired(RefreshCookieName)}
}
