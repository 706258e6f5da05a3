package perfmon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stamps(base time.Time, step time.Duration, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * step)
	}
	return out
}

func TestFrameRingHoldsAtMostCapacity(t *testing.T) {
	ring := newFrameRing(5)
	base := time.Now()

	for _, ts := range stamps(base, time.Millisecond, 7) {
		ring.record(ts)
	}

	assert.Equal(t, 5, ring.size())

	recent := ring.recent(5)
	require.Len(t, recent, 5)
	// The two oldest samples were evicted; samples 2..6 remain, oldest first.
	for i, ts := range recent {
		assert.True(t, ts.Equal(base.Add(time.Duration(i+2)*time.Millisecond)),
			"sample %d out of order", i)
	}
}

func TestFrameRingRecentChronologicalOrder(t *testing.T) {
	ring := newFrameRing(4)
	base := time.Now()

	for _, ts := range stamps(base, time.Millisecond, 3) {
		ring.record(ts)
	}

	recent := ring.recent(3)
	require.Len(t, recent, 3)
	for i := 1; i < len(recent); i++ {
		assert.True(t, recent[i].After(recent[i-1]))
	}
}

func TestFrameRingRecentTruncatesToK(t *testing.T) {
	ring := newFrameRing(10)
	for _, ts := range stamps(time.Now(), time.Millisecond, 6) {
		ring.record(ts)
	}

	assert.Len(t, ring.recent(3), 3)
	assert.Len(t, ring.recent(100), 6)
}

func TestFrameRingRecentNeedsTwoSamples(t *testing.T) {
	ring := newFrameRing(4)
	assert.Nil(t, ring.recent(4))

	ring.record(time.Now())
	assert.Nil(t, ring.recent(4))

	ring.record(time.Now())
	assert.Len(t, ring.recent(4), 2)
}

func TestFrameRingRecentRejectsNonPositiveK(t *testing.T) {
	ring := newFrameRing(4)
	for _, ts := range stamps(time.Now(), time.Millisecond, 4) {
		ring.record(ts)
	}

	assert.Nil(t, ring.recent(0))
	assert.Nil(t, ring.recent(-1))
}
