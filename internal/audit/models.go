package audit

import "time"

// Event is an immutable record of a store lifecycle action driven by the platform.
//
// Invariants:
// - Events are never updated or deleted.
// - store_hash is required.
// - actor and ip capture are best-effort; audit failures never block install or load.
type Event struct {
	ID        string    `json:"id"`
	StoreHash string    `json:"store_hash"`
	Type      EventType `json:"type"`

	// Actor is the platform user that triggered the event, when known.
	ActorID    int64  `json:"actor_id,omitempty"`
	ActorEmail string `json:"actor_email,omitempty"`

	IPAddress string `json:"ip_address,omitempty"`

	// Scope is the OAuth scope granted at install.
	Scope string `json:"scope,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type EventType string

const (
	EventTypeInstalled   EventType = "store_installed"
	EventTypeLoaded      EventType = "store_loaded"
	EventTypeUninstalled EventType = "store_uninstalled"
)
