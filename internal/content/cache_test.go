package content

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_PutAndGet(t *testing.T) {
	c := NewCache(0)

	_, ok := c.Get("a")
	assert.False(t, ok)

	assert.True(t, c.PutIfGeneration("a", 1, c.Generation()))
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestCache_ClearBumpsGeneration(t *testing.T) {
	c := NewCache(0)
	gen := c.Generation()
	c.PutIfGeneration("a", 1, gen)

	c.Clear()

	assert.NotEqual(t, gen, c.Generation())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_StalePutIsDropped(t *testing.T) {
	c := NewCache(0)
	gen := c.Generation()

	// A load started before the clear must not repopulate the new snapshot.
	c.Clear()
	assert.False(t, c.PutIfGeneration("a", "stale", gen))

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestCache_TTLExpiry(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := newCacheWithClock(time.Hour, clock)

	c.PutIfGeneration("a", 1, c.Generation())
	now = now.Add(30 * time.Minute)
	_, ok := c.Get("a")
	assert.True(t, ok, "entry should still be fresh")

	now = now.Add(31 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry should have expired")
}

func TestCache_ConcurrentReadersAndWriters(t *testing.T) {
	c := NewCache(0)
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%5))
			c.PutIfGeneration(key, i, c.Generation())
			c.Get(key)
			if i%7 == 0 {
				c.Clear()
			}
		}(i)
	}
	wg.Wait()

	// Whatever survived, the snapshot must be internally consistent.
	for _, key := range []string{"a", "b", "c", "d", "e"} {
		if v, ok := c.Get(key); ok {
			assert.IsType(t, 0, v)
		}
	}
}
