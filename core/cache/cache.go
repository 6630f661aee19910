package cache

import (
	"sync"
	"time"
)

// Local is an in-process TTL cache with tag invalidation. Read endpoints
// fall back to it when Redis is not configured; Redis stays the shared
// cache for multi-instance deployments.
type Local struct {
	mu    sync.Mutex
	items map[string]item
	tags  map[string]map[string]struct{}
}

type item struct {
	value     interface{}
	expiresAt time.Time
	tags      []string
}

var (
	once     sync.Once
	instance *Local
)

// GetInstance returns the process-wide cache.
func GetInstance() *Local {
	once.Do(func() {
		instance = New()
	})
	return instance
}

func New() *Local {
	return &Local{
		items: make(map[string]item),
		tags:  make(map[string]map[string]struct{}),
	}
}

// Set stores a value under key. A ttl of 0 means no expiration. Tags group
// keys for bulk invalidation, e.g. every availability key of one tenant.
func (c *Local) Set(key string, value interface{}, ttl time.Duration, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it := item{value: value, tags: tags}
	if ttl > 0 {
		it.expiresAt = time.Now().Add(ttl)
	}
	c.removeLocked(key)
	c.items[key] = it
	for _, tag := range tags {
		keys, ok := c.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// Get returns the value for key. Expired entries are dropped on read.
func (c *Local) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !it.expiresAt.IsZero() && time.Now().After(it.expiresAt) {
		c.removeLocked(key)
		return nil, false
	}
	return it.value, true
}

// Delete removes one key and its tag index entries.
func (c *Local) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// InvalidateTag removes every key carrying the tag.
func (c *Local) InvalidateTag(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.tags[tag] {
		c.removeLocked(key)
	}
	delete(c.tags, tag)
}

func (c *Local) removeLocked(key string) {
	it, ok := c.items[key]
	if !ok {
		return
	}
	delete(c.items, key)
	for _, tag := range it.tags {
		if keys, ok := c.tags[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tags, tag)
			}
		}
	}
}
