// Package lock provides a named, process-external mutual-exclusion lock used
// to keep scheduled jobs single-flight across instances sharing a datastore.
package lock

import (
	"context"
	"sync"
)

// Manager hands out advisory locks. TryAcquire is non-blocking: ok=false
// means another holder owns the key and is the normal "someone else is
// already running this job" signal, not an error.
type Manager interface {
	TryAcquire(ctx context.Context, key int64) (lock *Lock, ok bool, err error)
}

// Lock is a held advisory lock. Release is idempotent: concurrent or
// repeated calls relinquish the underlying mutex exactly once.
type Lock struct {
	key     int64
	once    sync.Once
	release func(ctx context.Context) error
}

// NewLock wraps a release function in an idempotent handle. Manager
// implementations call this from TryAcquire.
func NewLock(key int64, release func(ctx context.Context) error) *Lock {
	return &Lock{key: key, release: release}
}

// Key returns the lock key this handle holds.
func (l *Lock) Key() int64 {
	return l.key
}

// Release relinquishes the lock. Only the first call has effect.
func (l *Lock) Release(ctx context.Context) error {
	var err error
	l.once.Do(func() {
		err = l.release(ctx)
	})
	return err
}
