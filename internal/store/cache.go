package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"storefront-app/internal/bigcommerce"
	"storefront-app/internal/secret"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKeyPrefix  = "store:"
	defaultCacheTTL = 10 * time.Minute
)

// redisKV is the subset of *redis.Client the cache uses.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type cachedStore struct {
	Hash        string `json:"hash"`
	AccessToken string `json:"access_token"`
}

// CachedRepo is a read-through, write-through Redis cache in front of another
// Repository. Redis failures degrade to the inner repository; they never fail
// a request on their own.
type CachedRepo struct {
	inner Repository
	rdb   redisKV
	ttl   time.Duration
	log   *slog.Logger
}

func NewCachedRepo(inner Repository, rdb redisKV, ttl time.Duration, log *slog.Logger) *CachedRepo {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &CachedRepo{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

func cacheKey(storeHash string) string { return cacheKeyPrefix + storeHash }

func (r *CachedRepo) Save(ctx context.Context, s bigcommerce.Store) error {
	if err := r.inner.Save(ctx, s); err != nil {
		return err
	}
	r.put(ctx, s)
	return nil
}

func (r *CachedRepo) Get(ctx context.Context, storeHash string) (bigcommerce.Store, error) {
	raw, err := r.rdb.Get(ctx, cacheKey(storeHash)).Bytes()
	switch {
	case err == nil:
		var c cachedStore
		if jerr := json.Unmarshal(raw, &c); jerr == nil && c.Hash == storeHash {
			return bigcommerce.Store{Hash: c.Hash, AccessToken: secret.New(c.AccessToken)}, nil
		}
		r.log.Warn("store cache entry unreadable", "store_hash", storeHash)
	case !errors.Is(err, redis.Nil):
		r.log.Warn("store cache read failed", "store_hash", storeHash, "err", err)
	}

	s, err := r.inner.Get(ctx, storeHash)
	if err != nil {
		return bigcommerce.Store{}, err
	}
	r.put(ctx, s)
	return s, nil
}

func (r *CachedRepo) Delete(ctx context.Context, storeHash string) error {
	if err := r.rdb.Del(ctx, cacheKey(storeHash)).Err(); err != nil {
		r.log.Warn("store cache evict failed", "store_hash", storeHash, "err", err)
	}
	return r.inner.Delete(ctx, storeHash)
}

func (r *CachedRepo) put(ctx context.Context, s bigcommerce.Store) {
	b, err := json.Marshal(cachedStore{Hash: s.Hash, AccessToken: s.AccessToken.Expose()})
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, cacheKey(s.Hash), b, r.ttl).Err(); err != nil {
		r.log.Warn("store cache write failed", "store_hash", s.Hash, "err", err)
	}
}
