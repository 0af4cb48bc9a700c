package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "skydispatch:rt:"

// RedisRealtime is a store.RealtimeStore keeping each path as a Redis hash
// of child key to JSON value.
type RedisRealtime struct {
	client redis.UniversalClient
}

// NewRedisRealtime connects to url and verifies the server answers.
func NewRedisRealtime(ctx context.Context, url string) (*RedisRealtime, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:     []string{opts.Addr},
		Username:  opts.Username,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: opts.TLSConfig,
	})

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisRealtime{client: client}, nil
}

func redisKey(path string) string {
	return redisKeyPrefix + path
}

// Children returns the hash at path. A missing hash yields nil.
func (r *RedisRealtime) Children(ctx context.Context, path string) (map[string]json.RawMessage, error) {
	fields, err := r.client.HGetAll(ctx, redisKey(path)).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}
	out := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		out[k] = json.RawMessage(v)
	}
	return out, nil
}

// Set writes a child node. value must be valid JSON.
func (r *RedisRealtime) Set(ctx context.Context, path, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("node %s/%s is not valid JSON", path, key)
	}
	if err := r.client.HSet(ctx, redisKey(path), key, string(value)).Err(); err != nil {
		return fmt.Errorf("set %s/%s: %w", path, key, err)
	}
	return nil
}

// Close releases the client.
func (r *RedisRealtime) Close() error {
	return r.client.Close()
}
