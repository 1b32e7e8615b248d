package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// BlobStore keeps blobs as plain Redis string values under a key prefix
type BlobStore struct {
	client *redis.Client
	prefix string
}

// NewBlobStore connects using a redis:// URL and verifies the connection
func NewBlobStore(ctx context.Context, redisURL, prefix string) (*BlobStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewBlobStoreFromClient(client, prefix), nil
}

// NewBlobStoreFromClient wraps an existing client
func NewBlobStoreFromClient(client *redis.Client, prefix string) *BlobStore {
	return &BlobStore{client: client, prefix: prefix}
}

// Get reads a blob. A missing key is reported as not found rather than an error.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

// Put writes a blob without expiry
func (s *BlobStore) Put(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, s.prefix+key, data, 0).Err()
}

// Close releases the connection pool
func (s *BlobStore) Close() error {
	return s.client.Close()
}
