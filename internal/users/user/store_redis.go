// Copyright (c) 2026 Conduit. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/conduit/internal/platform/constants"
	"github.com/taibuivan/conduit/internal/platform/sec"
)

// RedisTokenDenylist implements TokenDenylist using Redis.
//
// Keys are derived from a digest of the token rather than the token itself,
// so a compromised Redis instance does not yield usable bearer tokens.
// Entries carry a TTL matching the token's remaining lifetime and disappear
// on their own once the token would have expired anyway.
type RedisTokenDenylist struct {
	client *redis.Client
}

// NewRedisTokenDenylist creates a new Redis-backed TokenDenylist.
func NewRedisTokenDenylist(client *redis.Client) *RedisTokenDenylist {
	return &RedisTokenDenylist{client: client}
}

func denylistKey(token string) string {
	return constants.RedisPrefixDenylist + sec.HashToken(token)
}

/*
Revoke records the token as invalidated for the given duration.

Parameters:
  - context: context.Context
  - token: string (raw bearer token)
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (denylist *RedisTokenDenylist) Revoke(context context.Context, token string, ttl time.Duration) error {
	if err := denylist.client.Set(context, denylistKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_denylist_revoke_failed: %w", err)
	}
	return nil
}

/*
IsRevoked reports whether the token has been invalidated.

Description: A missing key means the token was never revoked (or its
revocation already aged out alongside the token's own expiry).

Parameters:
  - context: context.Context
  - token: string (raw bearer token)

Returns:
  - bool: Revocation status
  - error: Connectivity errors
*/
func (denylist *RedisTokenDenylist) IsRevoked(context context.Context, token string) (bool, error) {
	err := denylist.client.Get(context, denylistKey(token)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_denylist_lookup_failed: %w", err)
	}
	return true, nil
}
