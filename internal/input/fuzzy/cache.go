package fuzzy

import (
	"container/list"
	"sync"
)

// Cache provides LRU caching for filter results.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	lru     *list.List
}

// cacheEntry holds a cached query result.
type cacheEntry struct {
	query   string
	results []Result
}

// NewCache creates a new LRU cache with the given maximum size.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &Cache{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// Get retrieves a copy of the cached results for a query.
func (c *Cache) Get(query string) ([]Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[query]
	if !ok {
		return nil, false
	}

	// Move to front (most recently used)
	c.lru.MoveToFront(elem)

	entry := elem.Value.(*cacheEntry) //nolint:errcheck // list only contains *cacheEntry
	return copyResults(entry.results), true
}

// Set stores results for a query in the cache.
func (c *Cache) Set(query string, results []Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[query]; ok {
		c.lru.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry) //nolint:errcheck // list only contains *cacheEntry
		entry.results = copyResults(results)
		return
	}

	// Evict oldest if at capacity
	if c.lru.Len() >= c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}

	elem := c.lru.PushFront(&cacheEntry{query: query, results: copyResults(results)})
	c.items[query] = elem
}

// Delete removes a specific query from the cache.
func (c *Cache) Delete(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[query]; ok {
		c.removeElement(elem)
	}
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// removeElement removes an element from the cache.
// Must be called with lock held.
func (c *Cache) removeElement(elem *list.Element) {
	c.lru.Remove(elem)
	entry := elem.Value.(*cacheEntry) //nolint:errcheck // list only contains *cacheEntry
	delete(c.items, entry.query)
}

// copyResults creates a deep copy of results.
func copyResults(results []Result) []Result {
	copied := make([]Result, len(results))
	for i, r := range results {
		copied[i] = r
		if r.Matches != nil {
			copied[i].Matches = append([]int(nil), r.Matches...)
		}
	}
	return copied
}
