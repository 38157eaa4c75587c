// Package secret holds credentials that must never reach logs, error messages
// or default serialization by accident.
package secret

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

const redacted = "[REDACTED]"

// String is an opaque holder for a secret value. Every default textual form
// is redacted; Expose is the only way to read the raw value.
type String struct {
	value string
}

func New(v string) String { return String{value: v} }

// Expose returns the raw value. Call it only where the value is handed to a
// signing key or an outbound request.
func (s String) Expose() string { return s.value }

func (s String) IsEmpty() bool { return s.value == "" }

func (s String) String() string   { return redacted }
func (s String) GoString() string { return redacted }

// Format covers every fmt verb, including %#v and %q.
func (s String) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte(redacted))
}

func (s String) LogValue() slog.Value { return slog.StringValue(redacted) }

func (s String) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

func (s String) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// UnmarshalJSON lets provider responses decode straight into a holder.
func (s *String) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	s.value = v
	return nil
}
