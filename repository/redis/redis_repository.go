package redis

import (
	"context"
	"errors"
	"time"

	redisclient "github.com/emmaeryne/amjednamoussa/cmd/redis"
)

// ErrSessionStoreUnavailable is returned by the session operations when no
// Redis client is configured. Caching degrades to misses without a client,
// but sessions cannot: a login whose session was never stored would fail
// every subsequent token check.
var ErrSessionStoreUnavailable = errors.New("session store unavailable: redis client not initialized")

// Repository caches query results under named tags and stores admin sessions.
// A mutation invalidates its tag; readers holding that tag's cached result see
// a miss on next access and refresh from the database.
type Repository interface {
	GetCached(ctx context.Context, tag, key string) (string, bool, error)
	SetCached(ctx context.Context, tag, key, value string, ttl time.Duration) error
	InvalidateTag(ctx context.Context, tag string) error
	SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint64, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type redis struct{}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

func cacheKey(tag, key string) string {
	return "cache:" + tag + ":" + key
}

func tagSetKey(tag string) string {
	return "cache-tag:" + tag
}

// GetCached returns the cached value for key under tag. The second return
// value is false on a miss. A nil client degrades to a permanent miss.
func (r *redis) GetCached(ctx context.Context, tag, key string) (string, bool, error) {
	client := redisclient.Get()
	if client == nil {
		return "", false, nil
	}
	val, err := client.Get(ctx, cacheKey(tag, key)).Result()
	if err != nil {
		if err == redisclient.Nil {
			return "", false, nil
		}
		return "", false, err
	}
	return val, true, nil
}

// SetCached stores value under tag and records the key in the tag's member set
// so InvalidateTag can find it later.
func (r *redis) SetCached(ctx context.Context, tag, key, value string, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	full := cacheKey(tag, key)
	if err := client.Set(ctx, full, value, ttl).Err(); err != nil {
		return err
	}
	return client.SAdd(ctx, tagSetKey(tag), full).Err()
}

// InvalidateTag drops every cached entry recorded under tag.
func (r *redis) InvalidateTag(ctx context.Context, tag string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	members, err := client.SMembers(ctx, tagSetKey(tag)).Result()
	if err != nil {
		return err
	}
	if len(members) > 0 {
		if err := client.Del(ctx, members...).Err(); err != nil {
			return err
		}
	}
	return client.Del(ctx, tagSetKey(tag)).Err()
}

// SetSession stores a session with userID and TTL
func (r *redis) SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return ErrSessionStoreUnavailable
	}
	return client.Set(ctx, "session:"+sessionID, userID, ttl).Err()
}

// GetSession retrieves userID from session
func (r *redis) GetSession(ctx context.Context, sessionID string) (uint64, error) {
	client := redisclient.Get()
	if client == nil {
		return 0, ErrSessionStoreUnavailable
	}
	val, err := client.Get(ctx, "session:"+sessionID).Uint64()
	if err != nil {
		return 0, err
	}
	return val, nil
}

// DeleteSession removes a session from Redis
func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	client := redisclient.Get()
	if client == nil {
		return ErrSessionStoreUnavailable
	}
	return client.Del(ctx, "session:"+sessionID).Err()
}
