package lockx

import (
	"context"
	"fmt"
	"sync"

	"github.com/im7mortal/kmutex"
)

// Local is an in-process keyed mutex.
type Local struct {
	km *kmutex.Kmutex
}

func NewLocal() *Local {
	return &Local{km: kmutex.New()}
}

// Lock blocks until key is free or ctx is done. kmutex cannot abandon a
// wait, so the wait runs in a goroutine that hands the lock straight back
// if the caller has already given up.
func (l *Local) Lock(ctx context.Context, key string) (Unlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	acquired := make(chan struct{})
	abandoned := make(chan struct{})
	go func() {
		l.km.Lock(key)
		select {
		case acquired <- struct{}{}:
		case <-abandoned:
			l.km.Unlock(key)
		}
	}()

	select {
	case <-acquired:
	case <-ctx.Done():
		close(abandoned)
		return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.km.Unlock(key) })
	}, nil
}
