package telegram

import (
	"context"
	"sync"
	"time"
)

// maxCachedMessages caps how many message ids are kept per user. Older ids
// belong to renderings that were already replaced and can be forgotten.
const maxCachedMessages = 10

type cacheEntry struct {
	ids     []int
	touched time.Time
}

// messageCache remembers the bot's previous renderings per user so the next
// render can delete them first. Bounded: per-user id list is capped and
// stale users are swept periodically.
type messageCache struct {
	mu      sync.Mutex
	entries map[int64]*cacheEntry
}

func newMessageCache() *messageCache {
	return &messageCache{entries: make(map[int64]*cacheEntry)}
}

func (c *messageCache) remember(userID int64, messageID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[userID]
	if !ok {
		e = &cacheEntry{}
		c.entries[userID] = e
	}
	e.ids = append(e.ids, messageID)
	if len(e.ids) > maxCachedMessages {
		e.ids = e.ids[len(e.ids)-maxCachedMessages:]
	}
	e.touched = time.Now()
}

// takeAll returns and clears the remembered ids for the user.
func (c *messageCache) takeAll(userID int64) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[userID]
	if !ok {
		return nil
	}
	ids := e.ids
	e.ids = nil
	e.touched = time.Now()
	return ids
}

// sweep drops users idle longer than maxAge. Blocks until ctx is done.
func (c *messageCache) sweep(ctx context.Context, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-maxAge)
			c.mu.Lock()
			for id, e := range c.entries {
				if e.touched.Before(cutoff) {
					delete(c.entries, id)
				}
			}
			c.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}
