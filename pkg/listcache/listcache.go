// Package listcache caches order list pages for the duration of a short TTL.
// List pages go stale quickly (orders change status), so entries expire on
// their own; the LRU bound only protects against many distinct filter
// combinations.
package listcache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/p2pdesk/orders-dashboard/pkg/client"
)

// DefaultSize is the default number of cached list pages.
const DefaultSize = 32

// Cache is an in-process TTL'd LRU of list pages keyed by query.
type Cache struct {
	lru *expirable.LRU[string, client.OrderPage]
}

// New creates a list cache holding up to size pages for ttl each.
func New(size int, ttl time.Duration) *Cache {
	if size < 1 {
		size = DefaultSize
	}
	return &Cache{
		lru: expirable.NewLRU[string, client.OrderPage](size, nil, ttl),
	}
}

// Get returns the cached page for a query, if present and fresh.
func (c *Cache) Get(q client.ListQuery) (*client.OrderPage, bool) {
	page, ok := c.lru.Get(q.Values().Encode())
	if !ok {
		return nil, false
	}
	return &page, true
}

// Put stores a page under its query key.
func (c *Cache) Put(q client.ListQuery, page *client.OrderPage) {
	if page == nil {
		return
	}
	c.lru.Add(q.Values().Encode(), *page)
}

// Purge drops all cached pages. Called after a mutation (mark paid) so the
// next list query reflects it.
func (c *Cache) Purge() {
	c.lru.Purge()
}
