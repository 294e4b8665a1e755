package fuzzy

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Item represents a searchable item.
type Item struct {
	// Text is the string to match against.
	Text string

	// Data is arbitrary data associated with this item.
	Data any
}

// Result represents a match.
type Result struct {
	// Item is the matched item.
	Item Item

	// Index is the item's position in the source list.
	Index int

	// Matches contains the rune indices of matched characters.
	Matches []int
}

// Options configures the matcher behavior.
type Options struct {
	// CacheSize is the maximum number of cached query results.
	// Set to 0 to disable caching.
	CacheSize int

	// CaseSensitive enables case-sensitive matching.
	// Default is false (case-insensitive).
	CaseSensitive bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		CacheSize: 256,
	}
}

// fold lowercases s. A Caser keeps state, so one is made per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Matches reports whether label contains the characters of query in order,
// ignoring case.
func Matches(query, label string) bool {
	_, ok := positions([]rune(fold(query)), []rune(fold(label)))
	return ok
}

// Positions returns the rune indices in label matched by query.
func Positions(query, label string) ([]int, bool) {
	return positions([]rune(fold(query)), []rune(fold(label)))
}

// positions scans label left to right, taking the first occurrence of each
// query rune.
func positions(query, label []rune) ([]int, bool) {
	if len(query) == 0 {
		return nil, true
	}
	matches := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(label) && qi < len(query); i++ {
		if label[i] == query[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(query) {
		return nil, false
	}
	return matches, true
}

// Filter returns the items matching query in source order, at most limit
// of them when limit > 0.
func Filter(query string, items []Item, limit int) []Result {
	return filter([]rune(fold(query)), items, limit, true)
}

func filter(query []rune, items []Item, limit int, foldText bool) []Result {
	results := make([]Result, 0, len(items))
	for i, item := range items {
		text := item.Text
		if foldText {
			text = fold(text)
		}
		matches, ok := positions(query, []rune(text))
		if !ok {
			continue
		}
		results = append(results, Result{Item: item, Index: i, Matches: matches})
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results
}

// Matcher filters a set of items.
type Matcher struct {
	mu      sync.RWMutex
	items   []Item
	cache   *Cache
	options Options
}

// NewMatcher creates a new fuzzy matcher with the given options.
func NewMatcher(opts Options) *Matcher {
	var cache *Cache
	if opts.CacheSize > 0 {
		cache = NewCache(opts.CacheSize)
	}

	return &Matcher{
		cache:   cache,
		options: opts,
	}
}

// SetItems replaces the searchable items and clears the cache.
func (m *Matcher) SetItems(items []Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]Item(nil), items...)
	m.ClearCache()
}

// Items returns the searchable items.
func (m *Matcher) Items() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Item(nil), m.items...)
}

// Filter returns the items matching query in source order.
func (m *Matcher) Filter(query string, limit int) []Result {
	if !m.options.CaseSensitive {
		query = fold(query)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.cache != nil {
		if cached, ok := m.cache.Get(query); ok {
			return applyLimit(cached, limit)
		}
	}

	results := filter([]rune(query), m.items, 0, !m.options.CaseSensitive)

	if m.cache != nil {
		m.cache.Set(query, results)
	}

	return applyLimit(results, limit)
}

// applyLimit returns at most limit results.
func applyLimit(results []Result, limit int) []Result {
	if limit <= 0 || limit >= len(results) {
		return results
	}
	return results[:limit]
}

// ClearCache clears the result cache.
func (m *Matcher) ClearCache() {
	if m.cache != nil {
		m.cache.Clear()
	}
}
