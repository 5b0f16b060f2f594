// Package refdata caches the small, slow-changing set of PMS node
// records as villages keyed by node id.
package refdata

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"catalog-api-go/internal/catalog"
	"catalog-api-go/internal/pms"
)

var nodeRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_node_cache_refreshes_total",
		Help: "Total node cache refreshes by outcome",
	},
	[]string{"outcome"},
)

// NodeFetcher fetches the full node list from the PMS.
type NodeFetcher interface {
	FetchNodes(ctx context.Context) ([]pms.Node, error)
}

// Cache holds the node-id → Village map, refreshed wholesale when its TTL
// elapses. The map is replaced, never mutated in place, so a reader never
// observes a partially rebuilt map. Concurrent refreshes coalesce into a
// single upstream fetch shared by all waiters.
type Cache struct {
	fetcher NodeFetcher
	ttl     time.Duration
	logger  *zap.Logger

	group singleflight.Group
	now   func() time.Time

	mu          sync.RWMutex
	nodes       map[int]catalog.Village
	lastRefresh time.Time
}

// NewCache creates a node cache. The first NodesMap call populates it.
func NewCache(fetcher NodeFetcher, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// NodesMap returns the node-id → Village map, refreshing it first if the
// TTL has elapsed. Within the TTL window callers receive the identical
// map instance; callers must treat it as read-only.
func (c *Cache) NodesMap(ctx context.Context) (map[int]catalog.Village, error) {
	if nodes, ok := c.current(); ok {
		return nodes, nil
	}

	// All concurrent misses share one fetch.
	result, err, _ := c.group.Do("nodes", func() (interface{}, error) {
		// A racing caller may have refreshed while we waited on the group.
		if nodes, ok := c.current(); ok {
			return nodes, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(map[int]catalog.Village), nil
}

// current returns the map if it is populated and within its TTL.
func (c *Cache) current() (map[int]catalog.Village, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.nodes == nil || c.now().Sub(c.lastRefresh) >= c.ttl {
		return nil, false
	}
	return c.nodes, true
}

// refresh fetches all nodes and swaps in a freshly built map.
func (c *Cache) refresh(ctx context.Context) (map[int]catalog.Village, error) {
	rawNodes, err := c.fetcher.FetchNodes(ctx)
	if err != nil {
		nodeRefreshesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("refreshing node cache: %w", err)
	}

	nodes := make(map[int]catalog.Village, len(rawNodes))
	for _, node := range rawNodes {
		nodes[node.ID] = catalog.MapNode(node)
	}

	c.mu.Lock()
	c.nodes = nodes
	c.lastRefresh = c.now()
	c.mu.Unlock()

	nodeRefreshesTotal.WithLabelValues("success").Inc()
	c.logger.Debug("node cache refreshed", zap.Int("nodes", len(nodes)))
	return nodes, nil
}
