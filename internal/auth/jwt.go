package auth

import (
	"errors"
	"fmt"
	"time"

	"storefront-app/internal/config"
	"storefront-app/internal/secret"

	"github.com/golang-jwt/jwt/v5"
)

// Manager issues and verifies session tokens with a secret fixed at startup.
// It is immutable and safe for concurrent use.
type Manager struct {
	secret secret.String
}

func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if cfg.JWTSecret.IsEmpty() {
		return nil, errors.New("JWT_SECRET is required")
	}
	return &Manager{secret: cfg.JWTSecret}, nil
}

/* ===================== ISSUE ===================== */

func (m *Manager) Issue(now time.Time, subject string) (string, error) {
	if m == nil {
		return "", fmt.Errorf("%w: auth manager not configured", ErrUnexpected)
	}
	return IssueSessionToken(now, subject, m.secret)
}

// IssueSessionToken signs {sub, role=user, exp=now+1h} with HS512.
func IssueSessionToken(now time.Time, subject string, key secret.String) (string, error) {
	if key.IsEmpty() {
		return "", fmt.Errorf("%w: signing secret not configured", ErrUnexpected)
	}
	if subject == "" {
		return "", errors.New("auth: subject is required")
	}

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		Role: RoleUser,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := t.SignedString([]byte(key.Expose()))
	if err != nil {
		return "", fmt.Errorf("%w: sign session token: %w", ErrUnexpected, err)
	}
	return signed, nil
}

/* ===================== VERIFY ===================== */

func (m *Manager) Verify(tokenString string, now time.Time) (SessionClaims, error) {
	if m == nil {
		return SessionClaims{}, fmt.Errorf("%w: auth manager not configured", ErrUnexpected)
	}
	return VerifySessionToken(tokenString, m.secret, now)
}

// VerifySessionToken checks signature (HS512 only) and expiry. Every rejection
// wraps ErrInvalidToken; the wrapped cause is for internal logs only.
func VerifySessionToken(tokenString string, key secret.String, now time.Time) (SessionClaims, error) {
	if key.IsEmpty() {
		return SessionClaims{}, fmt.Errorf("%w: signing secret not configured", ErrUnexpected)
	}

	var claims SessionClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)

	_, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return []byte(key.Expose()), nil
	})
	if err != nil {
		return SessionClaims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return SessionClaims{}, fmt.Errorf("%w: subject missing", ErrInvalidToken)
	}
	return claims, nil
}
