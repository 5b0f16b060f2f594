package refdata

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-api-go/internal/pms"
)

type fakeFetcher struct {
	calls int32
	nodes []pms.Node
	err   error
	delay time.Duration
}

func (f *fakeFetcher) FetchNodes(ctx context.Context) ([]pms.Node, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.nodes, nil
}

func TestNodesMapBuildsVillages(t *testing.T) {
	fetcher := &fakeFetcher{nodes: []pms.Node{
		{ID: 1, Name: "Hatteras Village", Description: "southernmost"},
		{ID: 2, Name: "Avon"},
	}}
	cache := NewCache(fetcher, 5*time.Minute, nil)

	nodes, err := cache.NodesMap(context.Background())
	require.NoError(t, err)

	require.Len(t, nodes, 2)
	assert.Equal(t, "hatteras-village", nodes[1].Slug)
	assert.Equal(t, "Avon", nodes[2].Name)
	assert.Equal(t, "avon", nodes[2].Slug)
}

func TestNodesMapReturnsSameInstanceWithinTTL(t *testing.T) {
	fetcher := &fakeFetcher{nodes: []pms.Node{{ID: 1, Name: "Avon"}}}
	cache := NewCache(fetcher, 5*time.Minute, nil)

	first, err := cache.NodesMap(context.Background())
	require.NoError(t, err)
	second, err := cache.NodesMap(context.Background())
	require.NoError(t, err)

	// Identical map instance, not just equal contents.
	assert.Equal(t, reflect.ValueOf(first).Pointer(), reflect.ValueOf(second).Pointer())
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetcher.calls))
}

func TestNodesMapRefreshesAfterTTL(t *testing.T) {
	fetcher := &fakeFetcher{nodes: []pms.Node{{ID: 1, Name: "Avon"}}}
	cache := NewCache(fetcher, 5*time.Minute, nil)

	now := time.Now()
	cache.now = func() time.Time { return now }

	_, err := cache.NodesMap(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&fetcher.calls))

	// Inside the TTL: no refetch.
	now = now.Add(4 * time.Minute)
	_, err = cache.NodesMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetcher.calls))

	// Past the TTL: exactly one refetch.
	now = now.Add(2 * time.Minute)
	_, err = cache.NodesMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetcher.calls))
}

func TestNodesMapCoalescesConcurrentRefreshes(t *testing.T) {
	fetcher := &fakeFetcher{
		nodes: []pms.Node{{ID: 1, Name: "Avon"}},
		delay: 20 * time.Millisecond,
	}
	cache := NewCache(fetcher, 5*time.Minute, nil)

	const callers = 25
	var wg sync.WaitGroup
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cache.NodesMap(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
	}
	// Cold cache under load must not cause a fetch storm.
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetcher.calls))
}

func TestNodesMapPropagatesFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("pms down")}
	cache := NewCache(fetcher, 5*time.Minute, nil)

	_, err := cache.NodesMap(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refreshing node cache")

	// The failure is not cached; the next call retries.
	_, err = cache.NodesMap(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetcher.calls))
}

func TestNodesMapSwapsWholesale(t *testing.T) {
	fetcher := &fakeFetcher{nodes: []pms.Node{{ID: 1, Name: "Avon"}, {ID: 2, Name: "Salvo"}}}
	cache := NewCache(fetcher, 5*time.Minute, nil)

	now := time.Now()
	cache.now = func() time.Time { return now }

	first, err := cache.NodesMap(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Upstream drops a node; after expiry the map is replaced wholesale,
	// not partially invalidated, and the old instance is untouched.
	fetcher.nodes = []pms.Node{{ID: 1, Name: "Avon"}}
	now = now.Add(6 * time.Minute)

	second, err := cache.NodesMap(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Len(t, first, 2)
}
