// Package cache keeps recently extracted documents in memory so repeated
// scoring of the same evidence skips the browser.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"github.com/use-agent/groundtruth/models"
)

// entry holds a cached document with its creation timestamp.
type entry struct {
	doc       *models.Document
	createdAt time.Time
}

// Cache is an in-memory TTL cache of extracted documents. It is safe for
// concurrent use. A nil *Cache is a valid, always-missing cache.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
	now        func() time.Time

	hits   atomic.Int64
	misses atomic.Int64

	stop chan struct{}
	once sync.Once
}

// New creates a Cache holding at most maxEntries documents for ttl each.
// It returns nil, a disabled cache, when maxEntries or ttl is not positive.
// A background goroutine evicts expired entries until Close.
func New(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries <= 0 || ttl <= 0 {
		return nil
	}
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	go c.cleanupLoop(cleanupInterval(ttl))
	return c
}

// Key derives the cache key for a URL extracted by the named extractor.
func Key(url, extractor string) string {
	h := sha256.New()
	h.Write([]byte(url))
	h.Write([]byte("|"))
	h.Write([]byte(extractor))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached document for key if it has not expired.
func (c *Cache) Get(key string) (*models.Document, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(e.createdAt) > c.ttl {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return e.doc, true
}

// Set stores doc under key. At capacity the oldest entry is evicted.
func (c *Cache) Set(key string, doc *models.Document) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[key]; !exists && len(c.store) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.store[key] = &entry{doc: doc, createdAt: c.now()}
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Stats returns the hit and miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) evictOldestLocked() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, e := range c.store {
		if oldestKey == "" || e.createdAt.Before(oldest) {
			oldestKey, oldest = k, e.createdAt
		}
	}
	delete(c.store, oldestKey)
}

// evictExpired drops every entry older than the TTL.
func (c *Cache) evictExpired() {
	cutoff := c.now().Add(-c.ttl)
	c.mu.Lock()
	for k, e := range c.store {
		if e.createdAt.Before(cutoff) {
			delete(c.store, k)
		}
	}
	c.mu.Unlock()
}

func (c *Cache) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

// cleanupInterval sweeps a few times per TTL, at most every 5 minutes.
func cleanupInterval(ttl time.Duration) time.Duration {
	every := ttl / 4
	if every > 5*time.Minute {
		every = 5 * time.Minute
	}
	if every < time.Second {
		every = time.Second
	}
	return every
}
