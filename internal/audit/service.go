package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events. Append-only.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records store lifecycle events. Callers treat it as best-effort.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s == nil || s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.StoreHash == "" || e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// Actor identifies the platform user behind an event.
type Actor struct {
	ID    int64
	Email string
	IP    string
}

func (s *Service) LogInstalled(ctx context.Context, storeHash, scope string, a Actor) error {
	return s.Append(ctx, Event{
		StoreHash:  storeHash,
		Type:       EventTypeInstalled,
		ActorID:    a.ID,
		ActorEmail: a.Email,
		IPAddress:  a.IP,
		Scope:      scope,
	})
}

func (s *Service) LogLoaded(ctx context.Context, storeHash string, a Actor) error {
	return s.Append(ctx, Event{
		StoreHash:  storeHash,
		Type:       EventTypeLoaded,
		ActorID:    a.ID,
		ActorEmail: a.Email,
		IPAddress:  a.IP,
	})
}

func (s *Service) LogUninstalled(ctx context.Context, storeHash string, a Actor) error {
	return s.Append(ctx, Event{
		StoreHash:  storeHash,
		Type:       EventTypeUninstalled,
		ActorID:    a.ID,
		ActorEmail: a.Email,
		IPAddress:  a.IP,
	})
}
