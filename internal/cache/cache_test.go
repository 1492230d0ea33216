package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

func newFakeClock() *testingclock.FakeClock {
	return testingclock.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestCache_SetGetRemove(t *testing.T) {
	c := New[string, int]("items", 10)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)

	c.Remove("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestCache_TTL(t *testing.T) {
	fc := newFakeClock()
	c := New[string, string]("items", 10, WithTTL(time.Minute), WithClock(fc))

	c.Set("k", "v")
	fc.Step(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok, "entry must survive until its ttl")

	fc.Step(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry must expire after ttl")
	assert.Equal(t, 0, c.Len())
}

func TestCache_NoTTLNeverExpires(t *testing.T) {
	fc := newFakeClock()
	c := New[string, string]("items", 10, WithClock(fc))

	c.Set("k", "v")
	fc.Step(24 * 365 * time.Hour)
	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestCache_EvictsOverCapacity(t *testing.T) {
	c := New[int, int]("items", 3)

	for i := 0; i < 3; i++ {
		c.Set(i, i)
	}
	// touch 0 so 1 becomes the least recently used
	_, _ = c.Get(0)
	c.Set(3, 3)

	_, ok := c.Get(1)
	assert.False(t, ok)
	for _, k := range []int{0, 2, 3} {
		_, ok := c.Get(k)
		assert.True(t, ok, "key %d", k)
	}
	assert.Equal(t, 3, c.Len())
}

func TestCache_Clear(t *testing.T) {
	c := New[string, int]("items", 10)
	c.Set("item/1", 1)
	c.Set("item/2", 2)
	c.Set("category/1", 3)
	require.Equal(t, 3, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestCache_Stats(t *testing.T) {
	c := New[string, int]("records", 5)
	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	assert.Equal(t, "records", s.Name)
	assert.Equal(t, 1, s.Entries)
	assert.Equal(t, 5, s.MaxEntries)
	assert.EqualValues(t, 2, s.Hits)
	assert.EqualValues(t, 1, s.Misses)
	assert.InDelta(t, 2.0/3.0, s.HitRate(), 1e-9)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := New[string, int]("items", 64)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := fmt.Sprintf("%d-%d", g, i%16)
				c.Set(k, i)
				c.Get(k)
				if i%7 == 0 {
					c.Remove(k)
				}
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 64)
	s := c.Stats()
	assert.EqualValues(t, 8*200, s.Hits+s.Misses)
}
