package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront-app/internal/metrics"
	"storefront-app/pkg/logger"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerScheme = "Bearer"

// BearerToken extracts the credential from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	raw := strings.TrimSpace(r.Header.Get(authorizationHeader))
	scheme, tok, ok := strings.Cut(raw, " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

// Authenticate is the request guard used by both middleware forms.
// A missing secret is ErrUnexpected; a missing or non-Bearer credential is
// ErrInvalidToken and is decided before any signature work.
func Authenticate(r *http.Request, m *Manager, now time.Time) (SessionClaims, error) {
	if m == nil || m.secret.IsEmpty() {
		return SessionClaims{}, fmt.Errorf("%w: signing secret not configured", ErrUnexpected)
	}
	tok, ok := BearerToken(r)
	if !ok {
		return SessionClaims{}, fmt.Errorf("%w: missing bearer token", ErrInvalidToken)
	}
	return m.Verify(tok, now)
}

// RequireSession verifies the session token and makes the claims available to
// handlers through ClaimsFromContext and the gin context.
func RequireSession(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := Authenticate(c.Request, m, time.Now())
		if err != nil {
			reject(c, err)
			return
		}
		metrics.ObserveSessionAuth(metrics.ResultOK)

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Set(ginClaimsKey, claims)
		c.Next()
	}
}

// RequireValidSession only gates the request; claims are not propagated.
func RequireValidSession(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := Authenticate(c.Request, m, time.Now()); err != nil {
			reject(c, err)
			return
		}
		metrics.ObserveSessionAuth(metrics.ResultOK)
		c.Next()
	}
}

// ClaimsFromGin is a handler convenience for claims stored by RequireSession.
func ClaimsFromGin(c *gin.Context) (SessionClaims, bool) {
	v, ok := c.Get(ginClaimsKey)
	if !ok {
		return SessionClaims{}, false
	}
	claims, ok := v.(SessionClaims)
	return claims, ok
}

func reject(c *gin.Context, err error) {
	log := logger.FromGin(c)

	if errors.Is(err, ErrInvalidToken) {
		// Bad or missing credentials are noise, not faults.
		log.Debug("session rejected", "reason", err.Error())
		metrics.ObserveSessionAuth(metrics.ResultInvalidToken)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	log.Error("session check failed", "err", err)
	metrics.ObserveSessionAuth(metrics.ResultUnexpected)
	c.AbortWithStatusJSON(StatusFor(err), gin.H{"error": "internal error"})
}
