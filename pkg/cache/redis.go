package cache

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/rotacheck/pkg/errors"
)

// RedisCache stores entries in Redis so several server replicas share one
// memo. Expiry is delegated to Redis TTLs.
type RedisCache struct {
	client redis.UniversalClient
}

// RedisOptions configures NewRedisCache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// PingAttempts is how often the initial PING is tried before giving
	// up (default 1). PingDelay is the wait before the first retry and
	// doubles after each one (default 100ms).
	PingAttempts int
	PingDelay    time.Duration
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	if opts.PingDelay <= 0 {
		opts.PingDelay = 100 * time.Millisecond
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	err := retry(ctx, opts.PingAttempts, opts.PingDelay, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			if ctx.Err() != nil {
				return err
			}
			return &transientError{err}
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeCache, err, "connect to redis at %s", opts.Addr)
	}
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client. The cache takes
// ownership: Close closes the client.
func NewRedisCacheFromClient(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// Get retrieves a value. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value with the given TTL (zero = no expiry).
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// clearBatch is the SCAN page size and the largest DEL issued by Clear.
const clearBatch = 500

// Clear deletes every validation and bounds entry under prefix. Keys are
// found with SCAN, so other data in the same database is left alone and the
// server is never blocked by KEYS.
func (c *RedisCache) Clear(ctx context.Context, prefix string) (int, error) {
	n := 0
	for _, kind := range Kinds {
		iter := c.client.Scan(ctx, 0, prefix+kind+":*", clearBatch).Iterator()
		batch := make([]string, 0, clearBatch)
		for iter.Next(ctx) {
			batch = append(batch, iter.Val())
			if len(batch) == clearBatch {
				deleted, err := c.client.Del(ctx, batch...).Result()
				n += int(deleted)
				if err != nil {
					return n, errors.Wrap(errors.ErrCodeCache, err, "clear %s entries", kind)
				}
				batch = batch[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return n, errors.Wrap(errors.ErrCodeCache, err, "scan %s entries", kind)
		}
		if len(batch) > 0 {
			deleted, err := c.client.Del(ctx, batch...).Result()
			n += int(deleted)
			if err != nil {
				return n, errors.Wrap(errors.ErrCodeCache, err, "clear %s entries", kind)
			}
		}
	}
	return n, nil
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache and Clearer.
var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
