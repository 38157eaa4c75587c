// Package store persists the Store identity established at install time.
package store

import (
	"context"
	"errors"

	"storefront-app/internal/bigcommerce"
)

var ErrNotFound = errors.New("store: not found")

// Repository is the persistence contract for installed stores.
type Repository interface {
	Save(ctx context.Context, s bigcommerce.Store) error
	Get(ctx context.Context, storeHash string) (bigcommerce.Store, error)
	Delete(ctx context.Context, storeHash string) error
}
