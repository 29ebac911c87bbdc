// Package trie implements the core, compressed node-array Trie: insertion,
// exact lookup, prefix enumeration, suffix-link construction, Aho-Corasick
// matching, and binary serialization over a fixed-width node array.
package trie

import "errors"

// Sentinel errors surfaced by the core. Callers should compare with errors.Is.
var (
	// ErrEmptyKey is returned by Assign when the pattern has zero symbols.
	ErrEmptyKey = errors.New("trie: pattern has no symbols")

	// ErrReservedSymbol is returned by Assign when a pattern contains symbol 0.
	ErrReservedSymbol = errors.New("trie: symbol 0 is reserved and may not appear in a pattern")

	// ErrValueOutOfRange is returned by Assign when value exceeds noValue-1.
	ErrValueOutOfRange = errors.New("trie: value exceeds the maximum storable value")

	// ErrCapacityExhausted is returned when the node count would reach the
	// maximum representable NodeIndex.
	ErrCapacityExhausted = errors.New("trie: node store capacity exhausted")

	// ErrStaleLinks is returned by Match when suffix links are stale (an
	// Assign happened since the last BuildSuffixLinks) and have not been
	// rebuilt. The core never auto-rebuilds; see DESIGN.md.
	ErrStaleLinks = errors.New("trie: suffix links are stale, call BuildSuffixLinks before matching")

	// ErrCorruptSerializedData is returned by Deserialize on any structural
	// inconsistency in the input stream.
	ErrCorruptSerializedData = errors.New("trie: corrupt serialized data")
)
