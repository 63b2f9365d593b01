package metrics

import "sync/atomic"

// CacheMetric counts hits and misses of a cache.
type CacheMetric struct {
	name   string
	hits   atomic.Int64
	misses atomic.Int64
}

func newCacheMetric(name string) *CacheMetric {
	return &CacheMetric{name: name}
}

// Hit records a cache hit.
func (c *CacheMetric) Hit() {
	if Enabled() {
		c.hits.Add(1)
	}
}

// Miss records a cache miss.
func (c *CacheMetric) Miss() {
	if Enabled() {
		c.misses.Add(1)
	}
}

// Stats returns a snapshot.
func (c *CacheMetric) Stats() CacheStats {
	hits, misses := c.hits.Load(), c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return CacheStats{Name: c.name, Hits: hits, Misses: misses, HitRate: rate}
}

// Reset zeroes the counters.
func (c *CacheMetric) Reset() {
	c.hits.Store(0)
	c.misses.Store(0)
}

// CacheStats holds a snapshot of cache statistics.
type CacheStats struct {
	Name    string  `json:"name"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// ImageCache counts asset store lookups.
var ImageCache = newCacheMetric("image_cache")

// AllCacheMetrics returns all registered cache metrics.
func AllCacheMetrics() []*CacheMetric {
	return []*CacheMetric{ImageCache}
}
