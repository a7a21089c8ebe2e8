// Package detailcache provides the bounded read-through cache for order
// detail records. Entries live for the process lifetime; once the entry
// count exceeds the configured ceiling the whole cache is flushed. This is
// a coarse safety valve against unbounded growth, not an LRU.
package detailcache

import (
	"sync"

	"github.com/p2pdesk/orders-dashboard/pkg/client"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultMaxEntries is the default entry ceiling before a flush.
const DefaultMaxEntries = 100

// Prometheus metrics for detail cache operations.
var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "detail_cache_hits_total",
		Help: "Total number of detail cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "detail_cache_misses_total",
		Help: "Total number of detail cache misses",
	})

	cacheFlushes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "detail_cache_flushes_total",
		Help: "Total number of full cache flushes triggered by the entry ceiling",
	})

	cacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "detail_cache_entries",
		Help: "Current number of entries in the detail cache",
	})
)

// Config holds cache configuration.
type Config struct {
	// MaxEntries is the entry-count ceiling; exceeding it triggers a full
	// flush on the next MaybeEvictAll. Values < 1 fall back to
	// DefaultMaxEntries.
	MaxEntries int
}

// Cache is a process-wide store of fetched order details keyed by order id.
// All operations are serialized under a single lock; the cache is shared by
// every orchestration call in the process.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]client.OrderDetail
	maxEntries int
	logger     zerolog.Logger
}

// New creates a detail cache.
func New(cfg Config) *Cache {
	maxEntries := cfg.MaxEntries
	if maxEntries < 1 {
		maxEntries = DefaultMaxEntries
	}

	return &Cache{
		entries:    make(map[string]client.OrderDetail),
		maxEntries: maxEntries,
		logger:     log.With().Str("component", "detail-cache").Logger(),
	}
}

// Get returns the cached record for an order id, if present.
func (c *Cache) Get(id string) (client.OrderDetail, bool) {
	c.mu.RLock()
	detail, ok := c.entries[id]
	c.mu.RUnlock()

	if ok {
		cacheHits.Inc()
	} else {
		cacheMisses.Inc()
	}
	return detail, ok
}

// Put inserts or overwrites the entry for an order id.
func (c *Cache) Put(id string, detail client.OrderDetail) {
	c.mu.Lock()
	c.entries[id] = detail
	cacheEntries.Set(float64(len(c.entries)))
	c.mu.Unlock()
}

// MaybeEvictAll flushes the cache unconditionally if the entry count
// exceeds the ceiling. Callers invoke it after each Put.
func (c *Cache) MaybeEvictAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) <= c.maxEntries {
		return
	}

	flushed := len(c.entries)
	c.entries = make(map[string]client.OrderDetail)
	cacheFlushes.Inc()
	cacheEntries.Set(0)

	c.logger.Warn().
		Int("flushed_entries", flushed).
		Int("ceiling", c.maxEntries).
		Msg("Detail cache flushed")
}

// Len returns the current entry count.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
