// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 5 * time.Second

// RedisStore keeps values in Redis under the "ragflow:" prefix.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore connects to the Redis server described by url
// (redis://[user:pass@]host:port/db).
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("keychain: redis url: %w", err)
	}
	return NewRedisStoreWithClient(redis.NewClient(opts)), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, prefix: ServiceName + ":"}
}

// Get retrieves a value from Redis.
func (r *RedisStore) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) || (err == nil && v == "") {
		return "", ErrNotFound
	}
	return v, err
}

// Set stores a value in Redis without expiry.
func (r *RedisStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

// Delete removes a value from Redis.
func (r *RedisStore) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	return r.client.Del(ctx, r.prefix+key).Err()
}

// Close releases the underlying connection pool.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
