// Package worddict wraps internal/trie's symbol-indexed core with the
// string-keyed, arbitrary-valued convenience layer the original
// implementation exposed as TrieDict: a rune-based symbol codec, a
// PatternID side table for values that don't fit in the core's uint32, and
// a recency-ranked prefix cache backed by go-patricia.
package worddict

import (
	"fmt"

	"github.com/csengstock/triedict/internal/trie"
	"github.com/csengstock/triedict/internal/utils"
)

// DefaultBoundaryChars mirrors the original implementation's DEF_BOUND_CHARS:
// the built-in boundary set usable without the caller building one by hand.
const DefaultBoundaryChars = utils.DefaultBoundaryChars

// PatternID indexes into a StringDict's payload side table. The core trie
// stores PatternIDs as its uint32 values; StringDict resolves them to
// whatever arbitrary Go value the caller originally assigned.
type PatternID = uint32

// defaultHotCacheSize bounds the recency cache StringDict keeps over its own
// PrefixEnumerate results.
const defaultHotCacheSize = 512

// RebuildPolicy governs when StringDict recomputes Aho-Corasick suffix
// links after a Set call leaves them stale.
type RebuildPolicy string

const (
	// RebuildLazy leaves suffix links stale after Set; the caller rebuilds
	// them with one Build call after its last Set, paying the rebuild cost
	// once no matter how many Sets preceded it. Match does not rebuild.
	RebuildLazy RebuildPolicy = "lazy"
	// RebuildEager rebuilds after every Set, trading per-write latency for
	// a Match call that never has to check or rebuild suffix links itself.
	RebuildEager RebuildPolicy = "eager"
)

// StringDict layers string keys and arbitrary Go values over a
// trie.Dictionary. Deletion is intentionally unsupported, mirroring the
// original's __delitem__ raising NotImplementedError and spec.md's
// insert-only non-goal.
type StringDict struct {
	core     *trie.Dictionary
	payloads *payloadTable
	boundary map[uint32]bool
	hot      *HotCache
	policy   RebuildPolicy
	// rawValues is set by FromCore: the wrapped core trie was populated
	// directly (e.g. by pkg/dictionary), so its uint32 values were never
	// routed through payloads and are returned as-is.
	rawValues bool
}

// New returns an empty StringDict using DefaultBoundaryChars for Match and
// RebuildLazy as its rebuild policy.
func New() *StringDict {
	return &StringDict{
		core:     trie.New(),
		payloads: newPayloadTable(),
		boundary: utils.DefaultBoundarySet(),
		hot:      NewHotCache(defaultHotCacheSize),
		policy:   RebuildLazy,
	}
}

// NewWithCapacity is New with a preallocation hint forwarded to the
// underlying trie.Dictionary (see trie.NewWithCapacity), for callers that
// know roughly how many patterns they are about to bulk-load.
func NewWithCapacity(hint int) *StringDict {
	d := New()
	d.core = trie.NewWithCapacity(hint)
	return d
}

// SetRebuildPolicy changes how Set handles suffix-link staleness going
// forward. It does not retroactively rebuild; call Build if links are
// already stale and an immediate rebuild is wanted.
func (d *StringDict) SetRebuildPolicy(policy RebuildPolicy) {
	d.policy = policy
}

// FromCore wraps an already-populated trie.Dictionary (e.g. one loaded from
// disk via pkg/dictionary) in a StringDict. Values already assigned in core
// are treated as opaque uint32s and returned as-is by Get/PrefixEnumerate/
// Match, since the payload side table has no record of them.
func FromCore(core *trie.Dictionary, boundaryChars string) *StringDict {
	d := &StringDict{core: core, payloads: newPayloadTable(), rawValues: true, hot: NewHotCache(defaultHotCacheSize)}
	if boundaryChars == "" {
		d.boundary = nil
	} else {
		d.boundary = utils.BoundarySet(boundaryChars)
	}
	return d
}

// SetBoundaryChars overrides the boundary character set used by Match.
// Passing an empty string disables boundary filtering entirely.
func (d *StringDict) SetBoundaryChars(chars string) {
	if chars == "" {
		d.boundary = nil
		return
	}
	d.boundary = utils.BoundarySet(chars)
}

// Set stores value under key, overwriting any previous value (last write
// wins, per spec.md's Assign contract).
func (d *StringDict) Set(key string, value any) error {
	id := d.payloads.store(value)
	if err := d.core.Assign(encodeSymbols(key), id); err != nil {
		return fmt.Errorf("worddict: assign %q: %w", key, err)
	}
	if d.policy == RebuildEager {
		d.core.BuildSuffixLinks()
	}
	return nil
}

// Get returns the value stored for key and true, or (nil, false) if key is
// not stored.
func (d *StringDict) Get(key string) (any, bool) {
	id, ok := d.core.Lookup(encodeSymbols(key))
	if !ok {
		return nil, false
	}
	return d.resolve(id), true
}

// resolve maps a PatternID stored in the core trie to its Go value, falling
// back to the raw id itself for dictionaries built via FromCore.
func (d *StringDict) resolve(id PatternID) any {
	if v, ok := d.payloads.load(id); ok {
		return v
	}
	if d.rawValues {
		return id
	}
	return nil
}

// GetOrDefault returns the value stored for key, or fallback if key is not
// stored.
func (d *StringDict) GetOrDefault(key string, fallback any) any {
	if v, ok := d.Get(key); ok {
		return v
	}
	return fallback
}

// Contains reports whether key is stored.
func (d *StringDict) Contains(key string) bool {
	return d.core.Contains(encodeSymbols(key))
}

// Completion is one result of PrefixEnumerate: the full key (prefix plus
// suffix) and its stored value.
type Completion struct {
	Key   string
	Value any
}

// PrefixEnumerate returns every stored key beginning with prefix, including
// prefix itself if it is stored.
func (d *StringDict) PrefixEnumerate(prefix string) []Completion {
	suffixes := d.core.PrefixEnumerate(encodeSymbols(prefix))
	out := make([]Completion, 0, len(suffixes))
	for _, s := range suffixes {
		out = append(out, Completion{Key: prefix + decodeSymbols(s.Symbols), Value: d.resolve(s.Value)})
	}
	d.hot.Record(prefix, out)
	return out
}

// HotStats reports occupancy of the recency cache PrefixEnumerate maintains
// over recently-queried prefixes.
func (d *StringDict) HotStats() map[string]int {
	return d.hot.Stats()
}

// Build recomputes suffix links. Under RebuildLazy this must be called
// after the last Set and before Match; under RebuildEager it is redundant
// since Set already rebuilds, but remains safe to call.
func (d *StringDict) Build() {
	d.core.BuildSuffixLinks()
}

// Occurrence is one hit reported by Match.
type Occurrence struct {
	End   int
	Key   string
	Value any
}

// Match scans text for every occurrence of every stored key, applying the
// dictionary's configured boundary filter (see SetBoundaryChars). Under
// RebuildLazy, the caller must call Build after its last Set (Match
// returns trie.ErrStaleLinks wrapped otherwise); under RebuildEager, Set
// already kept links current and Match never sees staleness.
func (d *StringDict) Match(text string) ([]Occurrence, error) {
	hits, err := d.core.Match(encodeSymbols(text), d.boundary)
	if err != nil {
		return nil, fmt.Errorf("worddict: match: %w", err)
	}
	out := make([]Occurrence, len(hits))
	for i, h := range hits {
		out[i] = Occurrence{End: h.End, Key: decodeSymbols(h.Pattern), Value: d.resolve(h.Value)}
	}
	return out, nil
}

// Len returns the number of distinct keys currently stored.
func (d *StringDict) Len() int { return d.core.PatternCount() }

// Core exposes the underlying symbol-indexed trie.Dictionary for callers
// that need direct access (serialization, node accounting).
func (d *StringDict) Core() *trie.Dictionary { return d.core }

func encodeSymbols(s string) []uint32 {
	out := make([]uint32, 0, len(s))
	for _, r := range s {
		out = append(out, uint32(r))
	}
	return out
}

func decodeSymbols(syms []uint32) string {
	runes := make([]rune, len(syms))
	for i, s := range syms {
		runes[i] = rune(s)
	}
	return string(runes)
}
