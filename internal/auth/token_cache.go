package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-redis/redis/v8"
)

// cacheTTL bounds how long a verified token skips signature checks; shorter
// than any token lifetime so revocation-by-expiry still wins.
const cacheTTL = 5 * time.Minute

// RedisTokenCache remembers recently verified admin tokens so repeated admin
// requests skip JWT parsing. Optional: a nil cache (or nil client) disables
// caching and every request verifies locally.
type RedisTokenCache struct {
	Client *redis.Client
}

func NewRedisTokenCache(client *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{Client: client}
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "admin_token:" + hex.EncodeToString(sum[:])
}

func (c *RedisTokenCache) IsVerified(ctx context.Context, token string) bool {
	if c == nil || c.Client == nil {
		return false
	}
	ok, err := c.Client.Exists(ctx, cacheKey(token)).Result()
	return err == nil && ok == 1
}

func (c *RedisTokenCache) MarkVerified(ctx context.Context, token string) {
	if c == nil || c.Client == nil {
		return
	}
	c.Client.Set(ctx, cacheKey(token), "1", cacheTTL)
}
