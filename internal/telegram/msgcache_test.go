package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageCacheTakeAllClears(t *testing.T) {
	c := newMessageCache()

	c.remember(1, 10)
	c.remember(1, 11)

	assert.Equal(t, []int{10, 11}, c.takeAll(1))
	assert.Nil(t, c.takeAll(1), "taking drains the remembered ids")
}

func TestMessageCacheUnknownUser(t *testing.T) {
	c := newMessageCache()
	assert.Nil(t, c.takeAll(99))
}

func TestMessageCacheCapsPerUser(t *testing.T) {
	c := newMessageCache()

	for id := 1; id <= maxCachedMessages+5; id++ {
		c.remember(1, id)
	}

	ids := c.takeAll(1)
	assert.Len(t, ids, maxCachedMessages)
	assert.Equal(t, 6, ids[0], "oldest ids above the cap are dropped")
	assert.Equal(t, maxCachedMessages+5, ids[len(ids)-1])
}

func TestMessageCacheIsolatesUsers(t *testing.T) {
	c := newMessageCache()

	c.remember(1, 10)
	c.remember(2, 20)

	assert.Equal(t, []int{10}, c.takeAll(1))
	assert.Equal(t, []int{20}, c.takeAll(2))
}
