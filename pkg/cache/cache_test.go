package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache_GetSetDelete(t *testing.T) {
	c := New[string](time.Minute)
	defer c.Stop()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("branding:org-1", "#112233", time.Minute)
	v, ok := c.Get("branding:org-1")
	require.True(t, ok)
	assert.Equal(t, "#112233", v)

	c.Delete("branding:org-1")
	_, ok = c.Get("branding:org-1")
	assert.False(t, ok)
}

func TestTTLCache_Expiry(t *testing.T) {
	c := New[int](10 * time.Millisecond)
	defer c.Stop()

	c.Set("k", 1, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestTTLCache_GetOrSet(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Stop()

	var calls int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrSet("plan:pro", time.Minute, func() (int, error) {
				atomic.AddInt32(&calls, 1)
				return 5000, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 5000, v)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, err := c.GetOrSet("failing", time.Minute, func() (int, error) {
		return 0, errors.New("db down")
	})
	assert.EqualError(t, err, "db down")
	_, ok := c.Get("failing")
	assert.False(t, ok)
}

func TestTTLCache_StopTwice(t *testing.T) {
	c := New[int](time.Minute)
	c.Stop()
	c.Stop()
}
