package keylock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Registry hands out one exclusivity domain per account number. Operations
// on different accounts never contend with each other.
type Registry struct {
	mu   sync.Mutex
	held map[int64]string
}

func NewRegistry() *Registry {
	return &Registry{
		held: make(map[int64]string),
	}
}

// Locker guards a single account number. The value identifies the holder so
// that only the holder can unlock.
type Locker struct {
	registry *Registry
	key      int64
	value    string
}

func (r *Registry) NewLocker(key int64, value string) *Locker {
	return &Locker{
		registry: r,
		key:      key,
		value:    value,
	}
}

func (l *Locker) Lock(_ context.Context) error {
	r := l.registry
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.held[l.key]; taken {
		return fmt.Errorf("lock for account %d is already held", l.key)
	}
	r.held[l.key] = l.value
	return nil
}

func (l *Locker) Unlock(_ context.Context) error {
	r := l.registry
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.held[l.key] != l.value {
		return fmt.Errorf("unlock failed, you're not the lock holder for account %d", l.key)
	}
	delete(r.held, l.key)
	return nil
}

// WaitLock retries acquisition with exponential backoff until waitTimeout
// elapses. Exhausting the wait reports failure to the caller instead of
// blocking indefinitely.
func (l *Locker) WaitLock(ctx context.Context, waitTimeout time.Duration) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Millisecond
	bo.MaxInterval = 50 * time.Millisecond
	bo.MaxElapsedTime = waitTimeout

	err := backoff.Retry(func() error {
		return l.Lock(ctx)
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return fmt.Errorf("failed to acquire lock for account %d within the wait timeout", l.key)
	}
	return nil
}
