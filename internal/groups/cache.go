package groups

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const memberCachePrefix = "fintrack:group-members:"

// MemberCache keeps resolved member-email sets in Redis so hot authorization
// paths do not hit Postgres on every request. Entries expire on their own and
// are invalidated eagerly on membership writes.
type MemberCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewMemberCache(rdb *redis.Client, ttl time.Duration) *MemberCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MemberCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached member set for a group, with ok=false on a miss.
// Cache errors degrade to a miss; the caller falls through to the repository.
func (c *MemberCache) Get(ctx context.Context, name string) ([]string, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, memberCachePrefix+name).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Degrade silently; the repository is the source of truth.
			return nil, false
		}
		return nil, false
	}
	var emails []string
	if err := json.Unmarshal(raw, &emails); err != nil {
		return nil, false
	}
	return emails, true
}

func (c *MemberCache) Set(ctx context.Context, name string, emails []string) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(emails)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, memberCachePrefix+name, raw, c.ttl).Err()
}

func (c *MemberCache) Invalidate(ctx context.Context, name string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, memberCachePrefix+name).Err()
}
