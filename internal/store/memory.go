package store

import (
	"context"
	"sync"

	"storefront-app/internal/bigcommerce"
)

// MemoryRepo keeps stores in process memory. Used by tests and by local runs
// without a database.
type MemoryRepo struct {
	mu     sync.RWMutex
	stores map[string]bigcommerce.Store
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{stores: make(map[string]bigcommerce.Store)}
}

func (r *MemoryRepo) Save(ctx context.Context, s bigcommerce.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[s.Hash] = s
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, storeHash string) (bigcommerce.Store, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.stores[storeHash]
	if !ok {
		return bigcommerce.Store{}, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, storeHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.stores[storeHash]; !ok {
		return ErrNotFound
	}
	delete(r.stores, storeHash)
	return nil
}
