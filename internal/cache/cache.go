package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Varun5711/cinerate/internal/logger"
	"github.com/redis/go-redis/v9"
)

// DetailCache keeps catalog detail records close to the client. L1 is an
// in-process LRU; L2 is an optional redis shared across client processes.
// Cache failures are never surfaced: a miss just means asking the backend.
type DetailCache struct {
	l1    *LRU[string, []byte]
	l2    *redis.Client
	l2TTL time.Duration
	log   *logger.Logger
}

func NewDetailCache(l1Capacity int, l1TTL time.Duration, redisClient *redis.Client, l2TTL time.Duration) *DetailCache {
	return &DetailCache{
		l1:    NewLRU[string, []byte](l1Capacity, l1TTL),
		l2:    redisClient,
		l2TTL: l2TTL,
		log:   logger.New("detail-cache"),
	}
}

func (c *DetailCache) get(ctx context.Context, key string) ([]byte, bool) {
	if val, found := c.l1.Get(key); found {
		return val, true
	}
	if c.l2 == nil {
		return nil, false
	}

	val, err := c.l2.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("L2 get %s failed: %v", key, err)
		}
		return nil, false
	}
	c.l1.Set(key, val)
	return val, true
}

func (c *DetailCache) set(ctx context.Context, key string, val []byte) {
	c.l1.Set(key, val)
	if c.l2 == nil {
		return
	}
	if err := c.l2.Set(ctx, key, val, c.l2TTL).Err(); err != nil {
		c.log.Debug("L2 set %s failed: %v", key, err)
	}
}

func (c *DetailCache) Delete(ctx context.Context, key string) {
	c.l1.Delete(key)
	if c.l2 != nil {
		if err := c.l2.Del(ctx, key).Err(); err != nil {
			c.log.Debug("L2 delete %s failed: %v", key, err)
		}
	}
}

// GetJSON decodes a cached value into dest and reports whether it was found.
func (c *DetailCache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	val, found := c.get(ctx, key)
	if !found {
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		c.Delete(ctx, key)
		return false
	}
	return true
}

func (c *DetailCache) SetJSON(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.set(ctx, key, data)
}

// Fetch returns the cached value for key or calls load, caching its result.
// load errors are returned unchanged and nothing is cached.
func Fetch[T any](ctx context.Context, c *DetailCache, key string, load func(context.Context) (*T, error)) (*T, error) {
	if c != nil {
		var cached T
		if c.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	val, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if c != nil && val != nil {
		c.SetJSON(ctx, key, val)
	}
	return val, nil
}
