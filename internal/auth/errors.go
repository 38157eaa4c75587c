package auth

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidToken covers a missing credential, a malformed token, a bad
	// signature and an expired token alike. Callers cannot tell which.
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrUnexpected is a deployment defect (missing signing secret, signing failure).
	ErrUnexpected = errors.New("auth: unexpected error")
)

// StatusFor maps an authentication outcome to the HTTP status returned at the
// pipeline boundary.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
