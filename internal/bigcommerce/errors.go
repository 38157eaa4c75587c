package bigcommerce

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidToken is returned for any platform payload that fails
	// verification: malformed, wrong signature or expired.
	ErrInvalidToken = errors.New("bigcommerce: invalid signed payload")

	// ErrContextFormat means a context or subject lacked the "<prefix>/<store_hash>" shape.
	// The platform produced it, so it is a trust violation, not bad user input.
	ErrContextFormat = errors.New("bigcommerce: context did not have correct format")

	ErrTransport = errors.New("bigcommerce: transport error")

	// ErrNotConfigured is a deployment defect: the client secret is missing.
	ErrNotConfigured = errors.New("bigcommerce: client secret not configured")
)

// TransportError describes a failed call to the platform. It matches ErrTransport.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("bigcommerce: %s: unexpected status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("bigcommerce: %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("bigcommerce: %s failed", e.Op)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
