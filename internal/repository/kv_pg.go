package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGKV struct {
	db *pgxpool.Pool
}

func NewPGKV(db *pgxpool.Pool) *PGKV {
	return &PGKV{db: db}
}

func (r *PGKV) Init(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS kv_store (
            key        TEXT PRIMARY KEY,
            value      BYTEA NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `)
	return err
}

func (r *PGKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := r.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1`, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *PGKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO kv_store (key, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
    `, key, value)
	return err
}

var _ KVRepository = (*PGKV)(nil)
