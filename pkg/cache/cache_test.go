package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoadsOnceWithinTTL(t *testing.T) {
	c := New(Options{TTL: time.Minute})
	var calls int32
	loader := func(ctx context.Context, key string) (interface{}, bool, error) {
		atomic.AddInt32(&calls, 1)
		return "value-" + key, true, nil
	}

	for i := 0; i < 3; i++ {
		val, ok, err := c.Get(context.Background(), "k", loader)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "value-k", val)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestExpiredEntryReloads(t *testing.T) {
	c := New(Options{TTL: time.Millisecond})
	var calls int32
	loader := func(ctx context.Context, key string) (interface{}, bool, error) {
		atomic.AddInt32(&calls, 1)
		return "v", true, nil
	}

	_, _, _ = c.Get(context.Background(), "k", loader)
	time.Sleep(5 * time.Millisecond)
	_, _, _ = c.Get(context.Background(), "k", loader)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestNegativeCaching(t *testing.T) {
	c := New(Options{TTL: time.Minute, NegativeTTL: time.Minute})
	var calls int32
	sentinel := errors.New("upstream down")
	loader := func(ctx context.Context, key string) (interface{}, bool, error) {
		atomic.AddInt32(&calls, 1)
		return nil, false, sentinel
	}

	_, ok, err := c.Get(context.Background(), "k", loader)
	assert.False(t, ok)
	assert.ErrorIs(t, err, sentinel)

	_, ok, err = c.Get(context.Background(), "k", loader)
	assert.False(t, ok)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "negative entry should absorb the second lookup")
}

func TestNegativeCachingDisabled(t *testing.T) {
	c := New(Options{TTL: time.Minute})
	var calls int32
	loader := func(ctx context.Context, key string) (interface{}, bool, error) {
		atomic.AddInt32(&calls, 1)
		return nil, false, errors.New("nope")
	}

	_, _, _ = c.Get(context.Background(), "k", loader)
	_, _, _ = c.Get(context.Background(), "k", loader)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestEvictionIsFIFO(t *testing.T) {
	c := New(Options{TTL: time.Minute, MaxEntries: 2})
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	_, ok := c.Peek("a")
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Peek("b")
	assert.True(t, ok)
	_, ok = c.Peek("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestPeekDoesNotLoad(t *testing.T) {
	c := New(Options{TTL: time.Minute})
	_, ok := c.Peek("missing")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	c := New(Options{TTL: time.Minute})
	c.Set("k", "v")
	c.Delete("k")
	_, ok := c.Peek("k")
	assert.False(t, ok)
}
