package bigcommerce

import (
	"fmt"
	"time"

	"storefront-app/internal/secret"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a platform-signed load, uninstall or remove-user
// request. Subject has the form "stores/<store_hash>".
type Claims struct {
	jwt.RegisteredClaims

	User  User `json:"user"`
	Owner User `json:"owner"`
}

// StoreHash correlates the payload with a persisted Store.
func (c Claims) StoreHash() (string, error) {
	return storeHashFrom(c.Subject)
}

// DecodeLoadToken verifies a platform payload signed with the app's client secret.
func (c *Client) DecodeLoadToken(tokenString string, now time.Time) (Claims, error) {
	return DecodeLoadToken(tokenString, c.clientSecret, now)
}

// DecodeLoadToken accepts HS256 only. This is deliberately separate from the
// session token verifier: different issuer, algorithm and key.
func DecodeLoadToken(tokenString string, clientSecret secret.String, now time.Time) (Claims, error) {
	if clientSecret.IsEmpty() {
		return Claims{}, ErrNotConfigured
	}

	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	_, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return []byte(clientSecret.Expose()), nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}
