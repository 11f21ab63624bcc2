// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the caller identity. The planner has no authentication:
// an optional X-User-ID header names the traveller, and handlers may prefer a
// user_id sent in the body.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderUserID carries an optional traveller id. There is no authentication;
// the header only scopes preferences, idempotency keys and rate-limit buckets.
const HeaderUserID = "X-User-ID"

const (
	ctxKeyUserID  = "userID"
	anonymousUser = "anonymous"
	maxUserIDLen  = 64
)

// Identity copies a well-formed X-User-ID header into the context under
// "userID" so the logger, rate limiter and idempotency lookup can see it.
// Oversized values are ignored rather than rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := strings.TrimSpace(c.GetHeader(HeaderUserID)); uid != "" && len(uid) <= maxUserIDLen {
			c.Set(ctxKeyUserID, uid)
		}
		c.Next()
	}
}

// UserID returns the header-derived user id, or "" when none was sent.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// userIDFromCtx is UserID with an "anonymous" fallback, used where a
// non-empty owner is required (idempotency records).
func userIDFromCtx(c *gin.Context) string {
	if uid := UserID(c); uid != "" {
		return uid
	}
	return anonymousUser
}

// IdempotencySubject is the owner under which idempotency records are stored
// for the current request: preferred when set (the caller id resolved from the
// body), else the header id, else "anonymous".
func IdempotencySubject(c *gin.Context, preferred string) string {
	if preferred != "" {
		return preferred
	}
	return userIDFromCtx(c)
}
