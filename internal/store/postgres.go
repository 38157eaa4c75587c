package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"storefront-app/internal/bigcommerce"
	"storefront-app/internal/secret"
	"storefront-app/pkg/utils"
)

const schema = `
CREATE TABLE IF NOT EXISTS stores (
  store_hash   TEXT PRIMARY KEY,
  access_token TEXT NOT NULL,
  installed_at TIMESTAMPTZ NOT NULL,
  updated_at   TIMESTAMPTZ NOT NULL
)
`

// PostgresRepo stores one row per installed store.
type PostgresRepo struct {
	db    *sql.DB
	clock func() time.Time
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db, clock: time.Now}
}

// EnsureSchema creates the stores table if it does not exist.
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Save inserts a new store or, on reinstall, replaces its access token while
// keeping the original installed_at.
func (r *PostgresRepo) Save(ctx context.Context, s bigcommerce.Store) error {
	now := r.clock().UTC()

	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		// Serialize concurrent installs for the same store.
		const lock = `
SELECT installed_at
FROM stores
WHERE store_hash = $1
FOR UPDATE
`
		var installedAt time.Time
		err := tx.QueryRowContext(ctx, lock, s.Hash).Scan(&installedAt)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			const insert = `
INSERT INTO stores (store_hash, access_token, installed_at, updated_at)
VALUES ($1, $2, $3, $3)
`
			_, err = tx.ExecContext(ctx, insert, s.Hash, s.AccessToken.Expose(), now)
			return err
		case err != nil:
			return err
		}

		const update = `
UPDATE stores
SET access_token = $2, updated_at = $3
WHERE store_hash = $1
`
		_, err = tx.ExecContext(ctx, update, s.Hash, s.AccessToken.Expose(), now)
		return err
	})
}

func (r *PostgresRepo) Get(ctx context.Context, storeHash string) (bigcommerce.Store, error) {
	const q = `
SELECT store_hash, access_token
FROM stores
WHERE store_hash = $1
`
	var hash, token string
	if err := r.db.QueryRowContext(ctx, q, storeHash).Scan(&hash, &token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return bigcommerce.Store{}, ErrNotFound
		}
		return bigcommerce.Store{}, err
	}
	return bigcommerce.Store{Hash: hash, AccessToken: secret.New(token)}, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, storeHash string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE store_hash = $1`, storeHash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
