package auth

import (
	"errors"
	"time"
)

// FailureReason identifies why a verification was refused.
// Keep the string values stable; they appear in logs and error payloads.
type FailureReason string

const (
	FailureNone               FailureReason = ""
	FailureMissingTokens      FailureReason = "missing_tokens"
	FailureInvalidAccessToken FailureReason = "invalid_access_token"
	FailureIncompleteClaims   FailureReason = "incomplete_claims"
	FailureIdentityMismatch   FailureReason = "identity_mismatch"
	FailurePolicyDenied       FailureReason = "policy_denied"
	FailureSessionExpired     FailureReason = "session_expired"
	FailureGroupNotFound      FailureReason = "group_not_found"
)

// Message returns the user-facing text for a refusal.
func (r FailureReason) Message() string {
	switch r {
	case FailureMissingTokens:
		return "authentication required"
	case FailureInvalidAccessToken:
		return "invalid session token"
	case FailureIncompleteClaims:
		return "session token is missing identity fields"
	case FailureIdentityMismatch:
		return "session tokens belong to different identities"
	case FailurePolicyDenied:
		return "not authorized for this resource"
	case FailureSessionExpired:
		return "session expired, please log in again"
	case FailureGroupNotFound:
		return "group not found"
	default:
		return "unauthorized"
	}
}

// Outcome is the result of one verification call.
//
// Renewal, when non-empty, is a freshly signed access token the caller should
// surface to the client (see RenewalCookie). It is advisory output: the
// verifier never writes anything itself.
type Outcome struct {
	Authorized bool
	Cause      FailureReason
	Renewal    string

	// Identity holds the claims that governed the decision (access claims on
	// the normal path, refresh claims on the renewal path). Zero when the
	// decision never reached a complete claims set.
	Identity Claims
}

// Verifier decides whether a request's session token pair satisfies an
// authorization requirement, silently renewing an expired access token from a
// still-valid refresh token.
//
// It is stateless across calls: no session store is consulted beyond the two
// tokens given, and the only shared state is the codec's immutable secret, so
// concurrent use needs no coordination.
type Verifier struct {
	codec *Codec
}

func NewVerifier(codec *Codec) *Verifier { return &Verifier{codec: codec} }

// Verify runs the session decision procedure. Every input combination
// terminates in an Outcome; the verifier never panics on malformed tokens.
func (v *Verifier) Verify(now time.Time, accessToken, refreshToken string, req Requirement) Outcome {
	if accessToken == "" || refreshToken == "" {
		return Outcome{Cause: FailureMissingTokens}
	}

	accessClaims, err := v.codec.Verify(accessToken, now)
	switch {
	case errors.Is(err, ErrTokenExpired):
		return v.renew(now, refreshToken, req)
	case err != nil:
		// A cryptographically broken or malformed access token is never
		// rescued by the refresh token.
		return Outcome{Cause: FailureInvalidAccessToken}
	}

	if !accessClaims.Complete() {
		return Outcome{Cause: FailureIncompleteClaims}
	}

	// Cross-check identity when the refresh token is usable. If it fails to
	// decode or is incomplete, the unexpired access token governs alone.
	if refreshClaims, err := v.codec.Verify(refreshToken, now); err == nil && refreshClaims.Complete() {
		if accessClaims.Email != refreshClaims.Email || accessClaims.Username != refreshClaims.Username {
			return Outcome{Cause: FailureIdentityMismatch}
		}
	}

	if !req.SatisfiedBy(accessClaims) {
		return Outcome{Cause: FailurePolicyDenied, Identity: accessClaims}
	}
	return Outcome{Authorized: true, Identity: accessClaims}
}

// renew handles the expired-access path: the refresh token must decode and be
// complete, otherwise the session is over.
func (v *Verifier) renew(now time.Time, refreshToken string, req Requirement) Outcome {
	refreshClaims, err := v.codec.Verify(refreshToken, now)
	if err != nil || !refreshClaims.Complete() {
		return Outcome{Cause: FailureSessionExpired}
	}

	// The new token copies the refresh claims verbatim (including role) and
	// resets the lifetime to the short-lived window.
	renewed, err := v.codec.Sign(refreshClaims, v.codec.accessTTL, now)
	if err != nil {
		return Outcome{Cause: FailureSessionExpired}
	}

	// The renewal is issued whether or not the policy check passes, so a
	// still-logged-in caller keeps a fresh session even on a denied request.
	if !req.SatisfiedBy(refreshClaims) {
		return Outcome{Cause: FailurePolicyDenied, Renewal: renewed, Identity: refreshClaims}
	}
	return Outcome{Authorized: true, Renewal: renewed, Identity: refreshClaims}
}
