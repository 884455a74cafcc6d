package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist remembers revoked token ids until the token would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Enabled() bool
}

const revokedKeyPrefix = "revoked:"

type redisTokenDenylist struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisTokenDenylist(client *redis.Client) TokenDenylist {
	return &redisTokenDenylist{client: client, now: time.Now}
}

func (d *redisTokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redisTokenDenylist.Revoke: %w", err)
	}
	return nil
}

func (d *redisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, revokedKeyPrefix+tokenID).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("redisTokenDenylist.IsRevoked: %w", err)
	}
	return true, nil
}

func (d *redisTokenDenylist) Enabled() bool { return true }

type noopTokenDenylist struct{}

// NewNoopTokenDenylist is used when Redis is not configured: nothing is ever revoked.
func NewNoopTokenDenylist() TokenDenylist { return noopTokenDenylist{} }

func (noopTokenDenylist) Revoke(context.Context, string, time.Time) error { return nil }

func (noopTokenDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func (noopTokenDenylist) Enabled() bool { return false }
