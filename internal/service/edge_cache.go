package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis TTLs for the cross-process edge cache. By-ID responses are stable
// enough to outlive the in-process result cache.
const (
	edgeVideoTTL   = 5 * time.Minute
	edgeChannelTTL = 15 * time.Minute
	edgeKeyPrefix  = "agg:"
)

// EdgeCache is a Redis cache-aside layer for by-ID video and channel
// responses, shared across server processes. It complements the in-process
// result cache rather than replacing it.
type EdgeCache struct {
	rdb *redis.Client
}

// NewEdgeCache connects to Redis. An empty URL, a bad URL or a failed ping
// all yield an EdgeCache with a nil client, on which every operation is a
// no-op, so the caller never has to branch on cache availability.
func NewEdgeCache(redisURL string) *EdgeCache {
	if redisURL == "" {
		log.Println("redis: no URL configured, edge caching disabled")
		return &EdgeCache{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, edge caching disabled: %v", redisURL, err)
		return &EdgeCache{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, edge caching disabled: %v", err)
		return &EdgeCache{}
	}

	log.Println("redis: connected, edge caching enabled")
	return &EdgeCache{rdb: rdb}
}

// Client returns the underlying Redis client for health checks. May be nil.
func (c *EdgeCache) Client() *redis.Client {
	return c.rdb
}

// GetVideo unmarshals a cached video response into out. Returns false on a
// miss or when the cache is disabled.
func (c *EdgeCache) GetVideo(ctx context.Context, id string, out any) bool {
	return c.get(ctx, videoEdgeKey(id), out)
}

// SetVideo stores a video response.
func (c *EdgeCache) SetVideo(ctx context.Context, id string, v any) {
	c.set(ctx, videoEdgeKey(id), v, edgeVideoTTL)
}

// GetChannel unmarshals a cached channel response into out.
func (c *EdgeCache) GetChannel(ctx context.Context, id string, out any) bool {
	return c.get(ctx, channelEdgeKey(id), out)
}

// SetChannel stores a channel response.
func (c *EdgeCache) SetChannel(ctx context.Context, id string, v any) {
	c.set(ctx, channelEdgeKey(id), v, edgeChannelTTL)
}

// Invalidate removes cached responses. An empty pattern removes every key
// under the aggregation prefix; otherwise keys containing the pattern are
// removed. Scanning is best-effort: errors are logged, not surfaced.
func (c *EdgeCache) Invalidate(ctx context.Context, pattern string) {
	if c.rdb == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, edgeKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		key := iter.Val()
		if pattern == "" || strings.Contains(key, pattern) {
			keys = append(keys, key)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("redis: scan failed during invalidation: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("redis: delete failed during invalidation: %v", err)
	}
}

// Close shuts down the Redis connection.
func (c *EdgeCache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *EdgeCache) get(ctx context.Context, key string, out any) bool {
	if c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("redis: get %s failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("redis: corrupt entry at %s dropped: %v", key, err)
		c.rdb.Del(ctx, key)
		return false
	}
	return true
}

func (c *EdgeCache) set(ctx context.Context, key string, v any, ttl time.Duration) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("redis: marshal for %s failed: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("redis: set %s failed: %v", key, err)
	}
}

func videoEdgeKey(id string) string {
	return fmt.Sprintf("%svideo:%s", edgeKeyPrefix, id)
}

func channelEdgeKey(id string) string {
	return fmt.Sprintf("%schannel:%s", edgeKeyPrefix, id)
}
