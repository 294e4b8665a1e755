// Package mention detects "@" triggers in block text and completes them
// from a candidate lookup.
package mention
