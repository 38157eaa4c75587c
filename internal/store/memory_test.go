package store

import (
	"context"
	"errors"
	"testing"

	"storefront-app/internal/bigcommerce"
	"storefront-app/internal/secret"
)

func TestMemoryRepo_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	if _, err := repo.Get(ctx, "abc123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	s := bigcommerce.Store{Hash: "abc123", AccessToken: secret.New("tok")}
	if err := repo.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AccessToken.Expose() != "tok" {
		t.Fatalf("unexpected store: %+v", got)
	}

	if err := repo.Delete(ctx, "abc123"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "abc123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
