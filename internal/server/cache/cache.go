// Package cache keeps recently read gift records in Redis. Gifts change
// only when opened, so entries are dropped on MarkOpened and otherwise live
// for the configured TTL. Every Redis failure is logged and treated as a
// miss; the database stays the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/gift"
	"github.com/dmitrijs2005/giftbox/internal/logging"
	"github.com/go-redis/redis/v8"
)

// GiftCache is what the gift service reads through.
type GiftCache interface {
	Get(ctx context.Context, id string) (*gift.Gift, bool)
	Set(ctx context.Context, g *gift.Gift)
	Delete(ctx context.Context, id string)
}

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const keyPrefix = "giftbox:gift:"

type RedisCache struct {
	client redisClient
	ttl    time.Duration
	log    logging.Logger
}

// NewRedisCache connects to addr lazily; go-redis dials on first use.
func NewRedisCache(addr string, ttl time.Duration, log logging.Logger) (*RedisCache, *redis.Client) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	return newRedisCache(client, ttl, log), client
}

func newRedisCache(client redisClient, ttl time.Duration, log logging.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, log: log.With("module", "cache")}
}

func key(id string) string {
	return keyPrefix + id
}

func (c *RedisCache) Get(ctx context.Context, id string) (*gift.Gift, bool) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn(ctx, "cache get failed", "gift_id", id, "error", err)
		}
		return nil, false
	}

	g := &gift.Gift{}
	if err := json.Unmarshal(data, g); err != nil {
		c.log.Warn(ctx, "cache entry corrupt", "gift_id", id, "error", err)
		return nil, false
	}
	return g, true
}

func (c *RedisCache) Set(ctx context.Context, g *gift.Gift) {
	data, err := json.Marshal(g)
	if err != nil {
		c.log.Warn(ctx, "cache encode failed", "gift_id", g.ID, "error", err)
		return
	}
	if err := c.client.Set(ctx, key(g.ID), data, c.ttl).Err(); err != nil {
		c.log.Warn(ctx, "cache set failed", "gift_id", g.ID, "error", err)
	}
}

func (c *RedisCache) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		c.log.Warn(ctx, "cache delete failed", "gift_id", id, "error", err)
	}
}

// Nop is used when no Redis address is configured.
type Nop struct{}

func (Nop) Get(context.Context, string) (*gift.Gift, bool) { return nil, false }
func (Nop) Set(context.Context, *gift.Gift)                {}
func (Nop) Delete(context.Context, string)                 {}
