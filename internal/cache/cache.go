// Package cache memoizes assembled floor plans per source identifier. It is
// the only state shared across concurrent parses, so it serializes its own
// operations. The cache has no knowledge of source mutations: a stale entry
// may be served until its TTL lapses, which is a documented limitation of
// the component rather than a bug.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/feichai0017/floorplan-processor/internal/models"
)

const (
	DefaultCapacity = 10
	DefaultTTL      = time.Hour
)

type entry struct {
	key      string
	plan     *models.FloorPlan
	storedAt time.Time
}

// ResultCache is a capacity-bounded, TTL-bounded LRU over parse results.
// Expiry is lazy: an entry past its TTL is treated as absent on lookup and
// removed then; no background sweep runs.
type ResultCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front = most recently used
	entries  map[string]*list.Element
	now      func() time.Time
}

func New(capacity int, ttl time.Duration) *ResultCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
		now:      time.Now,
	}
}

// Get returns the cached plan for key, refreshing its recency. An expired
// entry is evicted and reported as a miss.
func (c *ResultCache) Get(key string) (*models.FloorPlan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	ent := el.Value.(*entry)
	if c.now().Sub(ent.storedAt) > c.ttl {
		c.order.Remove(el)
		delete(c.entries, key)
		return nil, false
	}
	c.order.MoveToFront(el)
	return ent.plan, true
}

// Put stores plan under key, evicting the least-recently-used entry when
// the cache is at capacity.
func (c *ResultCache) Put(key string, plan *models.FloorPlan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		ent := el.Value.(*entry)
		ent.plan = plan
		ent.storedAt = c.now()
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}

	c.entries[key] = c.order.PushFront(&entry{
		key:      key,
		plan:     plan,
		storedAt: c.now(),
	})
}

// Clear empties the cache. Intended for tests and the admin endpoint.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.entries = make(map[string]*list.Element)
}

// Len reports the number of live entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
