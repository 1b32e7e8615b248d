package repository

import (
	"context"
	"fmt"

	"github.com/MikhailONe12/App-Risk-Manager/internal/config"
	"github.com/MikhailONe12/App-Risk-Manager/internal/domain"
	"github.com/MikhailONe12/App-Risk-Manager/internal/repository/file"
	"github.com/MikhailONe12/App-Risk-Manager/internal/repository/postgres"
	"github.com/MikhailONe12/App-Risk-Manager/internal/repository/redis"
	"github.com/MikhailONe12/App-Risk-Manager/internal/repository/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

const redisKeyPrefix = "risk-manager:"

// OpenBlobStore connects the configured state backend. The returned func releases its connections.
func OpenBlobStore(ctx context.Context, cfg *config.Config) (domain.BlobStore, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.StoreBackendFile:
		blobs, err := file.NewBlobStore(cfg.StoreDir)
		if err != nil {
			return nil, noop, err
		}
		return blobs, noop, nil

	case config.StoreBackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("failed to ping database: %w", err)
		}
		blobs, err := postgres.NewBlobStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return blobs, pool.Close, nil

	case config.StoreBackendRedis:
		blobs, err := redis.NewBlobStore(ctx, cfg.RedisURL, redisKeyPrefix)
		if err != nil {
			return nil, noop, err
		}
		return blobs, func() { _ = blobs.Close() }, nil

	case config.StoreBackendS3:
		blobs, err := storage.NewS3BlobStore(ctx, cfg.S3)
		if err != nil {
			return nil, noop, err
		}
		return blobs, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
