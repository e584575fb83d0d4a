// Package lockx provides keyed mutual exclusion, either inside one process or
// across processes through Redis.
package lockx

import (
	"context"
	"errors"
)

// ErrNotAcquired is returned when a lock could not be taken before the
// context or the locker's wait budget ran out.
var ErrNotAcquired = errors.New("lockx: lock not acquired")

// Unlock releases a held lock. It is safe to call once.
type Unlock func()

// Locker serialises work per key. Different keys never block each other.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// Multi acquires every locker in order and releases them in reverse. A
// process-local lock in front of a distributed one keeps goroutines of the
// same process from polling Redis against each other.
func Multi(lockers ...Locker) Locker {
	return multi(lockers)
}

type multi []Locker

func (m multi) Lock(ctx context.Context, key string) (Unlock, error) {
	held := make([]Unlock, 0, len(m))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i]()
		}
	}

	for _, l := range m {
		u, err := l.Lock(ctx, key)
		if err != nil {
			release()
			return nil, err
		}
		held = append(held, u)
	}
	return release, nil
}
