package lockx

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/assertgrant/pkg/cryptox"
	"github.com/aussiebroadwan/assertgrant/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if we still own it, so a holder whose
// TTL lapsed cannot release somebody else's lock.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// RedisConfig tunes the distributed lock.
type RedisConfig struct {
	// Prefix is prepended to every key.
	Prefix string
	// TTL bounds how long a crashed holder can block others.
	TTL time.Duration
	// Wait is the longest Lock will poll before giving up.
	Wait time.Duration
	// Retry is the polling interval.
	Retry time.Duration
}

func (c RedisConfig) withDefaults() RedisConfig {
	if c.Prefix == "" {
		c.Prefix = "assertgrant:lock:"
	}
	if c.TTL <= 0 {
		c.TTL = 10 * time.Second
	}
	if c.Wait <= 0 {
		c.Wait = 5 * time.Second
	}
	if c.Retry <= 0 {
		c.Retry = 25 * time.Millisecond
	}
	return c
}

// Redis is a lock shared by every process talking to the same Redis. It uses
// SET NX PX to acquire and a compare-and-delete script to release.
type Redis struct {
	client redis.UniversalClient
	cfg    RedisConfig
}

func NewRedis(client redis.UniversalClient, cfg RedisConfig) *Redis {
	return &Redis{client: client, cfg: cfg.withDefaults()}
}

func (r *Redis) Lock(ctx context.Context, key string) (Unlock, error) {
	redisKey := r.cfg.Prefix + key
	owner, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Wait)
	defer cancel()

	ticker := time.NewTicker(r.cfg.Retry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, redisKey, owner, r.cfg.TTL).Result()
		if err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("lockx: acquire %s: %w", key, err)
		}
		if ok {
			return r.unlocker(redisKey, owner), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		case <-ticker.C:
		}
	}
}

func (r *Redis) unlocker(redisKey, owner string) Unlock {
	released := false
	return func() {
		if released {
			return
		}
		released = true

		// Release even if the caller's context is already cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, r.client, []string{redisKey}, owner).Err(); err != nil {
			slogx.FromContext(ctx).Warn("lockx: release failed", "key", redisKey, "err", err)
		}
	}
}
