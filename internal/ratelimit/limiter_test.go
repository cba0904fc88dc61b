package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests move the limiter's time by hand.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestLimiter(limit int, window time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := NewLimiter(limit, window)
	l.now = clock.now
	return l, clock
}

func TestAllowWithinLimit(t *testing.T) {
	l, _ := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(1), "call %d must be admitted", i+1)
	}
	assert.False(t, l.Allow(1), "sixth call in the window must be rejected")
}

func TestAllowResetsAfterWindow(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(1))
	}
	assert.False(t, l.Allow(1))

	clock.advance(61 * time.Second)
	assert.True(t, l.Allow(1), "a fresh window must admit again")
}

func TestRejectedCallsDoNotExtendWindow(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	assert.True(t, l.Allow(1))
	assert.True(t, l.Allow(1))

	// Hammer during the window; none of these may push the window start.
	for i := 0; i < 10; i++ {
		clock.advance(5 * time.Second)
		assert.False(t, l.Allow(1))
	}

	clock.advance(15 * time.Second) // 65s past the original window start
	assert.True(t, l.Allow(1))
}

func TestLimiterIsolatesIdentities(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	assert.True(t, l.Allow(1))
	assert.False(t, l.Allow(1))
	assert.True(t, l.Allow(2), "another identity has its own budget")
	assert.True(t, l.Allow(-3), "negative ids map to a shard too")
}

func TestSweepOnceDropsExpired(t *testing.T) {
	l, clock := newTestLimiter(5, time.Minute)

	l.Allow(1)
	l.Allow(2)
	clock.advance(30 * time.Second)
	l.Allow(3)

	clock.advance(45 * time.Second) // 1 and 2 expired, 3 still inside
	assert.Equal(t, 2, l.sweepOnce())
	assert.Equal(t, 0, l.sweepOnce(), "second sweep has nothing left to drop")
}
