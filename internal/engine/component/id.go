package component

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource generates unique component ids.
type IDSource interface {
	NewID() string
}

// IDSourceFunc adapts a function to the IDSource interface.
type IDSourceFunc func() string

// NewID calls f.
func (f IDSourceFunc) NewID() string { return f() }

// UUIDSource generates random version 4 UUIDs.
type UUIDSource struct{}

// NewID returns a new UUID string.
func (UUIDSource) NewID() string {
	return uuid.New().String()
}

// CounterSource generates ids from a monotonic counter, "<prefix>-<n>".
// It is safe for concurrent use.
type CounterSource struct {
	prefix string
	next   atomic.Uint64
}

// NewCounterSource creates a counter source. An empty prefix becomes
// "component".
func NewCounterSource(prefix string) *CounterSource {
	if prefix == "" {
		prefix = "component"
	}
	return &CounterSource{prefix: prefix}
}

// NewID returns the next id.
func (c *CounterSource) NewID() string {
	return fmt.Sprintf("%s-%d", c.prefix, c.next.Add(1))
}

// ParseIDSource returns the id source named by a configuration value:
// "uuid" (or empty) or "counter".
func ParseIDSource(name string) (IDSource, error) {
	switch name {
	case "", "uuid":
		return UUIDSource{}, nil
	case "counter":
		return NewCounterSource(""), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIDSource, name)
	}
}
