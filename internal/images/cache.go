package images

import (
	"sync"

	"github.com/tvmensal2025/your-wellness-companion-02-sub005/internal/entity"
)

// Cache memoizes encoded images by source reference. At most one encoded
// value exists per key; re-resolving a reference reuses the cached value
// instead of re-encoding.
type Cache interface {
	Get(key string) (entity.EncodedImage, bool)
	Put(img entity.EncodedImage)
}

// MemoryCache is the process-lifetime tier: a mutex-guarded map with no
// eviction. Safe for concurrent read/insert across jobs.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[string]entity.EncodedImage
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string]entity.EncodedImage)}
}

func (c *MemoryCache) Get(key string) (entity.EncodedImage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.m[key]
	return img, ok
}

func (c *MemoryCache) Put(img entity.EncodedImage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[img.CacheKey] = img
}

// Len reports the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
