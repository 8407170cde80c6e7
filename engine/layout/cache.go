package layout

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/runlayout/core/font"
)

// WordCache caches the layouts of words. Words of ordinary text occur
// repeatedly, and re-using their layout saves calls to the shaper.
//
// The cache is bounded; if it is full, the oldest entry is evicted. It is safe
// for concurrent use. Cached layouts are never handed out for modification:
// they are appended to the layout under construction.
//
// Keys do not identify the shaper. A cache must not be shared between
// environments with different shapers.
type WordCache struct {
	mu       sync.Mutex
	entries  *linkedhashmap.Map
	capacity int
	hits     int
	misses   int
}

// DefaultCacheCapacity is the capacity of a word cache created with a
// non-positive capacity.
const DefaultCacheCapacity = 5000

// NewWordCache creates a word cache holding at most capacity word layouts.
func NewWordCache(capacity int) *WordCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &WordCache{
		entries:  linkedhashmap.New(),
		capacity: capacity,
	}
}

// Get looks up the layout of a word.
func (c *WordCache) Get(key string) (*Layout, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, found := c.entries.Get(key)
	if !found {
		c.misses++
		return nil, false
	}
	c.hits++
	return v.(*Layout), true
}

// Put stores the layout of a word, evicting the oldest entry if the cache is full.
func (c *WordCache) Put(key string, l *Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Put(key, l) // existing keys keep their position
	for c.entries.Size() > c.capacity {
		it := c.entries.Iterator()
		if !it.First() {
			break
		}
		tracer().Debugf("word cache evicts %q", it.Key())
		c.entries.Remove(it.Key())
	}
}

// Len returns the number of cached word layouts.
func (c *WordCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Size()
}

// Stats returns the number of cache hits and misses so far.
func (c *WordCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear removes all entries from the cache.
func (c *WordCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Clear()
}

// wordKey identifies the layout of a word within a font collection.
func wordKey(word string, style font.Style, rtl bool, fonts *font.Collection, opts *font.Options) string {
	return fmt.Sprintf("%s|%s|%t|%d|%s", word, style, rtl, fonts.ID(), opts.Key())
}
