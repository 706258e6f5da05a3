package perfmon

import (
	"sync"
	"time"
)

// frameRing is a fixed-capacity ring of frame timestamps. Once full, a new
// sample overwrites the oldest one. The backing slice is allocated once at
// construction and never grows.
//
// record is called by the single writer (the render loop); recent and size
// may be called concurrently by any number of readers.
type frameRing struct {
	mu      sync.RWMutex
	samples []time.Time
	head    int
	count   int
}

func newFrameRing(capacity int) *frameRing {
	return &frameRing{samples: make([]time.Time, capacity)}
}

// record writes a timestamp at the current head and advances it modulo the
// capacity. The valid-sample count saturates at the capacity.
func (r *frameRing) record(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.samples[r.head] = t
	r.head = (r.head + 1) % len(r.samples)
	if r.count < len(r.samples) {
		r.count++
	}
}

// recent returns up to min(k, count) of the most recent timestamps in
// chronological order. Fewer than two valid samples (or k <= 0) yields nil,
// since no rate can be derived from a single timestamp.
func (r *frameRing) recent(k int) []time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count < 2 || k <= 0 {
		return nil
	}
	n := k
	if n > r.count {
		n = r.count
	}

	out := make([]time.Time, n)
	start := r.head - n
	if start < 0 {
		start += len(r.samples)
	}
	for i := 0; i < n; i++ {
		out[i] = r.samples[(start+i)%len(r.samples)]
	}
	return out
}

// size reports the number of valid samples currently held.
func (r *frameRing) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}
