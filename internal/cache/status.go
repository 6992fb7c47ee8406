// Package cache keeps short-lived copies of account state in Redis so the
// page gate can see approvals and blocks before the user's token is reissued.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jobconnect/jobconnect-go/internal/authz"
	"github.com/redis/go-redis/v9"
)

const statusKeyPrefix = "user_status:"

// StatusLoader reads the authoritative account flags.
type StatusLoader interface {
	Status(ctx context.Context, userID string) (approved, blocked bool, err error)
}

// StatusCache is a read-through Redis cache of account approval and block flags.
type StatusCache struct {
	rdb    *redis.Client
	loader StatusLoader
	ttl    time.Duration
}

// NewStatusCache creates a StatusCache. A nil client disables caching and every
// lookup goes to the loader.
func NewStatusCache(rdb *redis.Client, loader StatusLoader, ttl time.Duration) *StatusCache {
	return &StatusCache{rdb: rdb, loader: loader, ttl: ttl}
}

func (c *StatusCache) key(userID string) string {
	return statusKeyPrefix + userID
}

// Status returns the account flags, filling the cache from the loader on a miss.
// Redis errors fall through to the loader.
func (c *StatusCache) Status(ctx context.Context, userID string) (authz.Status, error) {
	if c.rdb != nil {
		if v, err := c.rdb.Get(ctx, c.key(userID)).Result(); err == nil {
			if st, ok := decodeStatus(v); ok {
				return st, nil
			}
		}
	}

	approved, blocked, err := c.loader.Status(ctx, userID)
	if err != nil {
		return authz.Status{}, fmt.Errorf("loading status of %s: %w", userID, err)
	}
	st := authz.Status{IsApproved: approved, IsBlocked: blocked}

	if c.rdb != nil {
		_ = c.rdb.Set(ctx, c.key(userID), encodeStatus(st), c.ttl).Err()
	}
	return st, nil
}

// Put records fresh flags after an admin change. Errors are returned but the
// entry also expires on its own within the TTL.
func (c *StatusCache) Put(ctx context.Context, userID string, st authz.Status) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, c.key(userID), encodeStatus(st), c.ttl).Err()
}

func encodeStatus(st authz.Status) string {
	b := []byte("00")
	if st.IsApproved {
		b[0] = '1'
	}
	if st.IsBlocked {
		b[1] = '1'
	}
	return string(b)
}

func decodeStatus(v string) (authz.Status, bool) {
	if len(v) != 2 {
		return authz.Status{}, false
	}
	for i := 0; i < 2; i++ {
		if v[i] != '0' && v[i] != '1' {
			return authz.Status{}, false
		}
	}
	return authz.Status{IsApproved: v[0] == '1', IsBlocked: v[1] == '1'}, true
}
