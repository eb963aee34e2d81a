package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: on a hit, dest is filled from
// Redis; on a miss, fetch populates dest and the result is stored with the
// given TTL. Redis being down degrades to calling fetch directly.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	raw, err := client.Get(ctx, key).Result()
	if err == nil {
		if uerr := json.Unmarshal([]byte(raw), dest); uerr == nil {
			return nil
		}
		// Corrupt entry, drop it and refill.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis unavailable, fall through to the source of truth.
		return fetch()
	}

	if err := fetch(); err != nil {
		return err
	}

	if data, merr := json.Marshal(dest); merr == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}
