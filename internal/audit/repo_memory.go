package audit

import (
	"context"
	"log/slog"
	"sync"
)

// MemoryRepo is an in-memory append-only repository for tests.
type MemoryRepo struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *MemoryRepo) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// LogRepo writes each event as one structured log line under "audit".
type LogRepo struct {
	log *slog.Logger
}

func NewLogRepo(l *slog.Logger) *LogRepo {
	if l == nil {
		l = slog.Default()
	}
	return &LogRepo{log: l.WithGroup("audit")}
}

func (r *LogRepo) Append(ctx context.Context, e Event) error {
	r.log.InfoContext(ctx, string(e.Type),
		"id", e.ID,
		"store_hash", e.StoreHash,
		"actor_id", e.ActorID,
		"actor_email", e.ActorEmail,
		"ip_address", e.IPAddress,
		"scope", e.Scope,
		"created_at", e.CreatedAt,
	)
	return nil
}
