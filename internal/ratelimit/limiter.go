package ratelimit

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const shardCount = 16

type entry struct {
	windowStart time.Time
	count       int
}

type shard struct {
	mu      sync.Mutex
	entries map[int64]entry
}

// Limiter is a sliding-window-by-epoch counter keyed by caller identity.
// Each caller gets a window start and a count; the window is never extended
// by rejected calls, it expires on its own. State is in-memory only, so a
// process restart resets every caller's budget.
type Limiter struct {
	limit  int
	window time.Duration
	shards [shardCount]*shard

	now func() time.Time // injectable for tests
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	for i := range l.shards {
		l.shards[i] = &shard{entries: make(map[int64]entry)}
	}
	return l
}

func (l *Limiter) shardFor(id int64) *shard {
	if id < 0 {
		id = -id
	}
	return l.shards[id%shardCount]
}

// Allow admits or rejects one call for the identity. The first call of a
// window and every call up to the limit are admitted; calls above the limit
// are rejected until the same window expires naturally.
func (l *Limiter) Allow(id int64) bool {
	now := l.now()
	s := l.shardFor(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || now.Sub(e.windowStart) > l.window {
		s.entries[id] = entry{windowStart: now, count: 1}
		return true
	}

	e.count++
	if e.count > l.limit {
		// Keep the stored count at the ceiling; rejected calls carry no
		// backoff state and the window start stays put.
		return false
	}
	s.entries[id] = e
	return true
}

// Sweep periodically drops entries whose window has long expired, bounding
// memory under many distinct callers. Blocks until ctx is done.
func (l *Limiter) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := l.sweepOnce()
			if removed > 0 {
				log.WithField("removed", removed).Debug("rate limiter sweep")
			}
		case <-ctx.Done():
			return
		}
	}
}

func (l *Limiter) sweepOnce() int {
	now := l.now()
	removed := 0
	for _, s := range l.shards {
		s.mu.Lock()
		for id, e := range s.entries {
			if now.Sub(e.windowStart) > l.window {
				delete(s.entries, id)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}
