package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createBlobTable = `
CREATE TABLE IF NOT EXISTS risk_blobs (
	key        TEXT PRIMARY KEY,
	data       BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// BlobStore keeps blobs as rows of the risk_blobs table
type BlobStore struct {
	pool *pgxpool.Pool
}

// NewBlobStore creates a BlobStore and makes sure its table exists
func NewBlobStore(ctx context.Context, pool *pgxpool.Pool) (*BlobStore, error) {
	if _, err := pool.Exec(ctx, createBlobTable); err != nil {
		return nil, fmt.Errorf("failed to create blob table: %w", err)
	}
	return &BlobStore{pool: pool}, nil
}

// Get reads a blob. A missing row is reported as not found rather than an error.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM risk_blobs WHERE key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put upserts a blob
func (s *BlobStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO risk_blobs (key, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		key, data)
	return err
}
