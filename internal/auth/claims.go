package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleUser is the only role session tokens carry today.
const RoleUser = "user"

// SessionTTL is the fixed lifetime of an app-issued session token.
const SessionTTL = time.Hour

// SessionClaims is the payload of an app-issued session token.
// Wire shape: {"sub": string, "role": string, "exp": integer}.
// Subject is the store hash the session was issued for.
type SessionClaims struct {
	jwt.RegisteredClaims

	Role string `json:"role"`
}

func (c SessionClaims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
