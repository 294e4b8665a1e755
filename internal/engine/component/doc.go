// Package component manages inline components: non-text artifacts such as
// mentions, tags and embedded widgets anchored inside a block.
//
// A component has two halves. The document's component collection holds its
// data (type, content, properties, anchor). The block holds an Interactive
// node that occupies one offset slot and carries the component id in its
// props. The Registry keeps both halves consistent; every operation takes a
// document snapshot and returns a new one.
//
// Component ids come from an injected IDSource. UUIDSource is the default;
// CounterSource gives deterministic ids for tests and scripted sessions.
package component
