package lockx_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aussiebroadwan/assertgrant/pkg/lockx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, cfg lockx.RedisConfig) (*lockx.Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return lockx.NewRedis(client, cfg), mr
}

// exclusive runs n goroutines against the same key and reports the highest
// number of holders observed at once.
func exclusive(t *testing.T, l lockx.Locker, n int) int32 {
	t.Helper()

	var (
		wg      sync.WaitGroup
		inside  atomic.Int32
		maxSeen atomic.Int32
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "client|owner|read")
			require.NoError(t, err)
			defer unlock()

			cur := inside.Add(1)
			for {
				prev := maxSeen.Load()
				if cur <= prev || maxSeen.CompareAndSwap(prev, cur) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()
	return maxSeen.Load()
}

func TestLocalIsExclusivePerKey(t *testing.T) {
	t.Parallel()
	require.Equal(t, int32(1), exclusive(t, lockx.NewLocal(), 16))
}

func TestLocalDifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	l := lockx.NewLocal()
	a, err := l.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer a()

	done := make(chan struct{})
	go func() {
		b, err := l.Lock(context.Background(), "b")
		require.NoError(t, err)
		b()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}

func TestLocalCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := lockx.NewLocal().Lock(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}

func TestLocalGivesUpWhenContextEnds(t *testing.T) {
	t.Parallel()

	l := lockx.NewLocal()
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = l.Lock(ctx, "k")
	require.ErrorIs(t, err, lockx.ErrNotAcquired)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second)

	// The abandoned waiter must not keep the key once the holder is done.
	unlock()

	acquired := make(chan struct{})
	go func() {
		next, err := l.Lock(context.Background(), "k")
		require.NoError(t, err)
		next()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("key still held by an abandoned waiter")
	}
}

func TestRedisIsExclusive(t *testing.T) {
	t.Parallel()

	l, _ := newRedisLocker(t, lockx.RedisConfig{Retry: time.Millisecond})
	require.Equal(t, int32(1), exclusive(t, l, 8))
}

func TestRedisTimesOut(t *testing.T) {
	t.Parallel()

	l, _ := newRedisLocker(t, lockx.RedisConfig{Wait: 50 * time.Millisecond, Retry: 5 * time.Millisecond})

	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	_, err = l.Lock(context.Background(), "k")
	require.ErrorIs(t, err, lockx.ErrNotAcquired)
}

func TestRedisReleaseOnlyOwnLock(t *testing.T) {
	t.Parallel()

	l, mr := newRedisLocker(t, lockx.RedisConfig{TTL: time.Second, Retry: time.Millisecond})

	first, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	// First holder's TTL lapses and a second holder takes over.
	mr.FastForward(2 * time.Second)
	second, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)

	// The stale release must not drop the second holder's lock.
	first()
	require.True(t, mr.Exists("assertgrant:lock:k"))

	second()
	require.False(t, mr.Exists("assertgrant:lock:k"))
}

func TestMultiReleasesOnFailure(t *testing.T) {
	t.Parallel()

	local := lockx.NewLocal()
	remote, _ := newRedisLocker(t, lockx.RedisConfig{Wait: 20 * time.Millisecond, Retry: 5 * time.Millisecond})

	holder, err := remote.Lock(context.Background(), "k")
	require.NoError(t, err)

	m := lockx.Multi(local, remote)
	_, err = m.Lock(context.Background(), "k")
	require.ErrorIs(t, err, lockx.ErrNotAcquired)

	// The local half must have been released again.
	u, err := local.Lock(context.Background(), "k")
	require.NoError(t, err)
	u()

	holder()
	u, err = m.Lock(context.Background(), "k")
	require.NoError(t, err)
	u()
}
