package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRevoker keeps revoked token ids in redis with the remaining token
// lifetime as TTL, so the set never outgrows the live tokens.
type RedisRevoker struct {
	client *redis.Client
	prefix string
}

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client, prefix: "revoked_token:"}
}

func (r *RedisRevoker) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+id, 1, ttl).Err()
}

func (r *RedisRevoker) Revoked(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
