package perfmon

import (
	"sync"
	"time"
)

// cachedMetric memoizes a computed value for a fixed validity window so that
// frequent readers do not recompute it on every call.
type cachedMetric[T any] struct {
	mu         sync.Mutex
	value      T
	computedAt time.Time
	ttl        time.Duration
	valid      bool
}

func newCachedMetric[T any](ttl time.Duration) *cachedMetric[T] {
	return &cachedMetric[T]{ttl: ttl}
}

// get returns the stored value when it is still within its validity window,
// otherwise invokes recompute and stores the result stamped with now. The
// lock is held across recompute, so concurrent readers observe either the
// previous value or the new one, never a partial update.
func (c *cachedMetric[T]) get(now time.Time, recompute func() T) T {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && now.Sub(c.computedAt) < c.ttl {
		return c.value
	}
	c.value = recompute()
	c.computedAt = now
	c.valid = true
	return c.value
}
