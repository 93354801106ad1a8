package auth

import (
	"net/http"
	"time"

	"fintrack/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequirementFunc picks the requirement for a request once route params are bound.
type RequirementFunc func(c *gin.Context) Requirement

// Require guards a route with a fixed requirement.
func Require(v *Verifier, req Requirement) gin.HandlerFunc {
	return RequireFunc(v, func(*gin.Context) Requirement { return req })
}

// RequireSameUser guards routes carrying a :username param.
func RequireSameUser(v *Verifier) gin.HandlerFunc {
	return RequireFunc(v, func(c *gin.Context) Requirement {
		return SameUser(c.Param("username"))
	})
}

// RequireFunc verifies the session cookies against the picked requirement,
// writes the renewal cookie when one is produced, and injects the identity
// into the request context.
func RequireFunc(v *Verifier, pick RequirementFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, refresh := sessionCookies(c)
		finish(c, v.Verify(time.Now(), access, refresh, pick(c)))
	}
}

// RequireGroupByName guards routes carrying a group-name param, resolving the
// member set through dir before verification.
func RequireGroupByName(v *Verifier, dir MemberDirectory, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, refresh := sessionCookies(c)
		out, err := v.CheckGroupByName(c.Request.Context(), time.Now(), access, refresh, c.Param(param), dir)
		if err != nil {
			logger.FromGin(c).Error("group lookup failed", "group", c.Param(param), "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		finish(c, out)
	}
}

func sessionCookies(c *gin.Context) (access, refresh string) {
	access, _ = c.Cookie(AccessCookieName)
	refresh, _ = c.Cookie(RefreshCookieName)
	return access, refresh
}

func finish(c *gin.Context, out Outcome) {
	// The renewal cookie is written even when the request is denied; a live
	// session stays fresh across a single authorization failure.
	if out.Renewal != "" {
		http.SetCookie(c.Writer, RenewalCookie(out.Renewal))
	}
	if !out.Authorized {
		c.AbortWithStatusJSON(StatusFor(out.Cause), gin.H{"error": out.Cause.Message()})
		return
	}
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), out.Identity))
	c.Next()
}

// StatusFor maps a refusal to an HTTP status. This is application policy
// layered over the verifier, not part of the decision procedure.
func StatusFor(r FailureReason) int {
	switch r {
	case FailurePolicyDenied:
		return http.StatusForbidden
	case FailureGroupNotFound:
		return http.StatusNotFound
	default:
		return http.StatusUnauthorized
	}
}
