// Package cache keeps finished analyses in Redis so repeated submissions of
// the same text skip the models.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"grammarbot/internal/analyzer"
)

const keyPrefix = "grammarbot:analysis:"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache implements analyzer.Cache.
type RedisCache struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to Redis and checks the connection.
func NewRedis(ctx context.Context, opts Options) (*RedisCache, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis addr is empty")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{Client: rdb, ttl: opts.TTL}, nil
}

func (c *RedisCache) Close() error { return c.Client.Close() }

// Get returns the cached result for key. A miss is (zero, false, nil).
func (c *RedisCache) Get(ctx context.Context, key string) (analyzer.Result, bool, error) {
	b, err := c.Client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return analyzer.Result{}, false, nil
	}
	if err != nil {
		return analyzer.Result{}, false, err
	}
	var r analyzer.Result
	if err := json.Unmarshal(b, &r); err != nil {
		// A corrupt entry counts as a miss; drop it.
		_ = c.Client.Del(ctx, keyPrefix+key).Err()
		return analyzer.Result{}, false, nil
	}
	return r, true, nil
}

// Set stores r under key with the configured TTL (0 keeps it forever).
func (c *RedisCache) Set(ctx context.Context, key string, r analyzer.Result) error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, keyPrefix+key, b, c.ttl).Err()
}
