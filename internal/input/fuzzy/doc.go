// Package fuzzy provides the subsequence match shared by the command palette
// and mention search.
//
// A label matches a query when every character of the lowercased query
// appears in the lowercased label in order, not necessarily contiguously.
// There is no scoring: results keep the order of the source list.
//
//	fuzzy.Matches("jd", "John Doe") // true
//	fuzzy.Matches("xz", "John Doe") // false
//
// An empty query matches everything. Lowercasing uses Unicode case mapping
// from golang.org/x/text/cases rather than byte-wise ASCII folding.
//
// # Matcher
//
// Matcher filters a fixed item set and caches results per query in an LRU
// cache. Replacing the items clears the cache.
//
//	m := fuzzy.NewMatcher(fuzzy.DefaultOptions())
//	m.SetItems(items)
//	results := m.Filter("head", 10)
//
// # Thread Safety
//
// The Matcher is safe for concurrent use. The cache is internally synchronized.
package fuzzy
