package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetOrFetchInvokesFetchOnce(t *testing.T) {
	c := New[float64](8)
	var calls int32

	fetch := func(ctx context.Context) (float64, error) {
		atomic.AddInt32(&calls, 1)
		return 21.5, nil
	}

	for i := 0; i < 10; i++ {
		v, err := c.GetOrFetch(context.Background(), "temp:chicago", fetch)
		require.NoError(t, err)
		require.Equal(t, 21.5, v)
	}
	require.Equal(t, int32(1), calls)

	hits, misses := c.Stats()
	require.Equal(t, int64(9), hits)
	require.GreaterOrEqual(t, misses, int64(1))
}

func TestFetchErrorIsNotCached(t *testing.T) {
	c := New[bool](8)
	var calls int32

	fetch := func(ctx context.Context) (bool, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return false, errors.New("provider down")
		}
		return true, nil
	}

	_, err := c.GetOrFetch(context.Background(), "holiday:2024-03-01:IN", fetch)
	require.Error(t, err)

	v, err := c.GetOrFetch(context.Background(), "holiday:2024-03-01:IN", fetch)
	require.NoError(t, err)
	require.True(t, v)
	require.Equal(t, int32(2), calls)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](3)
	ctx := context.Background()

	fetchVal := func(v int) func(context.Context) (int, error) {
		return func(context.Context) (int, error) { return v, nil }
	}

	for i := 0; i < 3; i++ {
		_, err := c.GetOrFetch(ctx, fmt.Sprintf("k%d", i), fetchVal(i))
		require.NoError(t, err)
	}

	// Touch k0 so k1 becomes least recently used.
	_, err := c.GetOrFetch(ctx, "k0", fetchVal(-1))
	require.NoError(t, err)

	_, err = c.GetOrFetch(ctx, "k3", fetchVal(3))
	require.NoError(t, err)
	require.Equal(t, 3, c.Len())

	// k1 was evicted: fetching it again must call fetch.
	var refetched bool
	_, err = c.GetOrFetch(ctx, "k1", func(context.Context) (int, error) {
		refetched = true
		return 1, nil
	})
	require.NoError(t, err)
	require.True(t, refetched)

	// k0 survived the eviction.
	v, err := c.GetOrFetch(ctx, "k0", func(context.Context) (int, error) {
		t.Fatal("k0 should still be cached")
		return 0, nil
	})
	require.NoError(t, err)
	require.Equal(t, 0, v)
}

func TestConcurrentMissesShareOneFetch(t *testing.T) {
	c := New[float64](8)
	var calls int32
	release := make(chan struct{})

	fetch := func(ctx context.Context) (float64, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 7.0, nil
	}

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			v, err := c.GetOrFetch(context.Background(), "temp:mumbai", fetch)
			if err != nil || v != 7.0 {
				t.Errorf("got %v, %v", v, err)
			}
		}()
	}
	close(start)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls)
}
