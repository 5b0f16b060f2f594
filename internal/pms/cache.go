package pms

import (
	"context"
	"time"

	"github.com/karlseguin/ccache/v3"
)

// ResponseCache caches raw PMS response bodies keyed by request URL.
// A Get miss or backend error both return ok=false; the client treats
// either as a miss and refetches.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration)
}

// memoryCache is the default in-process ResponseCache.
type memoryCache struct {
	cache *ccache.Cache[[]byte]
}

// NewMemoryCache creates an in-process response cache bounded to maxSize
// entries.
func NewMemoryCache(maxSize int64) ResponseCache {
	return &memoryCache{
		cache: ccache.New(ccache.Configure[[]byte]().MaxSize(maxSize)),
	}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	item := m.cache.Get(key)
	if item == nil || item.Expired() {
		return nil, false
	}
	return item.Value(), true
}

func (m *memoryCache) Set(_ context.Context, key string, body []byte, ttl time.Duration) {
	m.cache.Set(key, body, ttl)
}
