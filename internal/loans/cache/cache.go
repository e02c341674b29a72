// Package cache memoizes immutable token metadata (ERC-20 symbol/decimals,
// ERC-721 name, token URIs) so repeated node resolutions do not re-read state
// that cannot change. Loans themselves are never cached: status must always
// re-derive from timestamps.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a bounded process-scoped key→value store with TTL invalidation.
// Both implementations are misses-are-cheap: any error reads as a miss.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

const keyPrefix = "nftpawn:tokenmeta:"

// Redis is the shared cache used when Redis is configured.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis builds a Redis-backed cache with the given TTL.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (c *Redis) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *Redis) Set(ctx context.Context, key, value string) {
	c.client.Set(ctx, keyPrefix+key, value, c.ttl)
}

// Memory is the fallback when Redis is not configured. It is explicitly
// size-bounded: once full it evicts the oldest inserted entry, which is good
// enough for metadata that is immutable anyway.
type Memory struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]string
	order   []string
}

// NewMemory builds an in-memory cache holding at most maxSize entries.
func NewMemory(maxSize int) *Memory {
	return &Memory{
		maxSize: maxSize,
		entries: make(map[string]string, maxSize),
	}
}

func (c *Memory) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	val, ok := c.entries[key]
	return val, ok
}

func (c *Memory) Set(_ context.Context, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.maxSize {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = value
}
