// Package cache stores computed report payloads in Redis. A Cache built without a client is a
// no-op, so the API runs unchanged when Redis is not configured.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tour_sales_backend/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "tour_sales:report:"
	// reportKeySet holds every live report key so writes can drop them in one call.
	reportKeySet = "tour_sales:report_keys"
	// generationKey is bumped on every invalidation and is part of every report key.
	generationKey = "tour_sales:report_generation"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New wraps rdb. rdb may be nil.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Connect dials Redis and verifies it with PING. An empty address returns a disabled cache.
func Connect(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Cache, error) {
	if addr == "" {
		utils.LogInfo("Redis address not configured, report cache disabled")
		return New(nil, ttl), nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	utils.LogInfo("Connected to redis", map[string]interface{}{"address": addr, "db": db})
	return New(rdb, ttl), nil
}

// Enabled reports whether a Redis client is attached.
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}

// Key builds a stable cache key from a report name, the caller's scope, the cache generation and
// the request parameters. Parameter order does not matter.
func Key(report, scope string, generation int64, params map[string]string) string {
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, k := range names {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
		b.WriteByte('&')
	}
	sum := sha1.Sum([]byte(b.String()))
	return fmt.Sprintf("%s%s:%s:g%d:%s", keyPrefix, report, scope, generation, hex.EncodeToString(sum[:8]))
}

// Generation returns the current report generation. Read it before computing a report: a result
// stored under a generation that InvalidateReports has since bumped is never read again.
func (c *Cache) Generation(ctx context.Context) (int64, error) {
	if !c.Enabled() {
		return 0, nil
	}
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading report generation: %w", err)
	}
	return gen, nil
}

// GetJSON loads key into dest. The bool is false on a miss or when the cache is disabled.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("decoding cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v under key with the cache TTL and registers the key for invalidation.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) error {
	if !c.Enabled() {
		return nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s for cache: %w", key, err)
	}
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, payload, c.ttl)
		pipe.SAdd(ctx, reportKeySet, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// InvalidateReports bumps the generation and drops every cached report. Called after any sale
// or rate write.
func (c *Cache) InvalidateReports(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bumping report generation: %w", err)
	}
	keys, err := c.rdb.SMembers(ctx, reportKeySet).Result()
	if err != nil {
		return fmt.Errorf("listing cached reports: %w", err)
	}
	keys = append(keys, reportKeySet)
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidating %d cached reports: %w", len(keys)-1, err)
	}
	utils.LogDebug("Report cache invalidated", map[string]interface{}{"keys": len(keys) - 1})
	return nil
}
