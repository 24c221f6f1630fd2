// Package cache provides a Redis-backed cache for computed variant
// patterns, keyed by the folded form of the input so equivalent spellings
// share one entry.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// noVariant is stored when pattern generation found nothing, so negative
// results are cached too. It can never collide with a real pattern, which
// is always non-empty printable regex text.
const noVariant = "\x00"

const keyPrefix = "glyphmatch:pattern:"

// PatternCache caches emitted patterns in Redis. The zero value is not
// usable; construct with New.
type PatternCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects a PatternCache to the Redis instance at addr. Entries expire
// after ttl.
func New(addr string, ttl time.Duration) *PatternCache {
	return &PatternCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Lookup returns the cached result for a folded input. hit reports whether
// any result was stored; when hit is true and hasVariant is false, the
// input is known to have no variant pattern.
func (c *PatternCache) Lookup(ctx context.Context, folded string) (pattern string, hasVariant, hit bool, err error) {
	val, err := c.client.Get(ctx, keyPrefix+folded).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, false, nil
	}
	if err != nil {
		return "", false, false, fmt.Errorf("pattern cache lookup: %w", err)
	}
	if val == noVariant {
		return "", false, true, nil
	}
	return val, true, true, nil
}

// Store records the result of pattern generation for a folded input.
func (c *PatternCache) Store(ctx context.Context, folded, pattern string, hasVariant bool) error {
	val := pattern
	if !hasVariant {
		val = noVariant
	}
	if err := c.client.Set(ctx, keyPrefix+folded, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("pattern cache store: %w", err)
	}
	return nil
}

// Healthy reports whether Redis answers a ping.
func (c *PatternCache) Healthy(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}

// Close releases the underlying Redis connection pool.
func (c *PatternCache) Close() error {
	return c.client.Close()
}
