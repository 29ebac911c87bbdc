package trie

// Suffix is one result of PrefixEnumerate: the symbols following the
// queried prefix, and the value stored at that pattern.
type Suffix struct {
	Symbols []uint32
	Value   uint32
}

// Dictionary is the core node-array Trie: insertion, exact lookup, prefix
// enumeration, suffix-link construction and Aho-Corasick matching over
// sequences of uint32 symbols. Symbol 0 is reserved and never occurs in a
// stored pattern. See spec.md for the full contract.
type Dictionary struct {
	store        *nodeStore
	patterns     map[NodeIndex][]uint32 // terminal node -> its full pattern, for match reporting
	patternCount int
	linksStale   bool
}

// New returns an empty Dictionary with only the root node allocated.
func New() *Dictionary {
	return &Dictionary{
		store:    newNodeStore(),
		patterns: make(map[NodeIndex][]uint32),
	}
}

// NewWithCapacity is New with a preallocation hint for the node store,
// clamped to MaxCapacityHint. Use this when the expected pattern count is
// known ahead of time (e.g. from TrieConfig.CapacityHint) to cut down on
// reallocations during bulk Assign.
func NewWithCapacity(hint int) *Dictionary {
	return &Dictionary{
		store:    newNodeStoreWithCapacity(hint),
		patterns: make(map[NodeIndex][]uint32),
	}
}

// Assign stores value under pattern, creating any missing nodes along the
// way. Re-assigning an existing pattern overwrites its value (last write
// wins). Marks suffix links stale.
func (d *Dictionary) Assign(pattern []uint32, value uint32) error {
	if len(pattern) == 0 {
		return ErrEmptyKey
	}
	if value > maxValue {
		return ErrValueOutOfRange
	}

	cur := NodeIndex(0)
	for _, sym := range pattern {
		if sym == 0 {
			return ErrReservedSymbol
		}
		next, err := insertChild(d.store, cur, sym)
		if err != nil {
			return err
		}
		cur = next
	}

	if d.store.get(cur).value == noValue {
		d.patternCount++
	}
	d.store.setValue(cur, value)

	stored := make([]uint32, len(pattern))
	copy(stored, pattern)
	d.patterns[cur] = stored

	d.linksStale = true
	return nil
}

// Lookup returns the value stored for pattern and true, or (0, false) if
// pattern is not stored (whether because the path is missing or because the
// terminal node holds no value).
func (d *Dictionary) Lookup(pattern []uint32) (uint32, bool) {
	n, ok := walk(d.store, pattern)
	if !ok {
		return 0, false
	}
	v := d.store.get(n).value
	if v == noValue {
		return 0, false
	}
	return v, true
}

// Contains reports whether pattern is stored in the dictionary. It is
// derived from Lookup.
func (d *Dictionary) Contains(pattern []uint32) bool {
	_, ok := d.Lookup(pattern)
	return ok
}

// PrefixEnumerate returns every (suffix, value) pair such that
// prefix+suffix is a stored pattern, including the empty suffix if prefix
// itself is stored. Traversal follows child before sibling: deterministic
// but not lexicographically ordered, per spec.md §4.3.
func (d *Dictionary) PrefixEnumerate(prefix []uint32) []Suffix {
	p, ok := walk(d.store, prefix)
	if !ok {
		return nil
	}

	var results []Suffix
	type frame struct {
		idx  NodeIndex
		path []uint32
	}
	stack := []frame{{idx: p, path: nil}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := d.store.get(f.idx)
		if n.value != noValue {
			results = append(results, Suffix{Symbols: f.path, Value: n.value})
		}

		// Push children so that, popped in LIFO order, the first child
		// visited is the head of the child list (matching "child before
		// sibling" depth-first order).
		var children []NodeIndex
		c := n.child
		for c != 0 {
			children = append(children, c)
			c = d.store.get(c).sibling
		}
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			childSym := d.store.get(child).symbol
			childPath := make([]uint32, len(f.path)+1)
			copy(childPath, f.path)
			childPath[len(f.path)] = childSym
			stack = append(stack, frame{idx: child, path: childPath})
		}
	}
	return results
}

// PatternCount returns the number of distinct patterns currently stored.
func (d *Dictionary) PatternCount() int { return d.patternCount }

// NodeCount returns the number of allocated nodes, including the root.
func (d *Dictionary) NodeCount() int { return d.store.len() }

// NodeCapacity returns the number of node slots currently reserved in the
// backing array (>= NodeCount).
func (d *Dictionary) NodeCapacity() int { return d.store.cap() }

// HasCurrentSuffixLinks reports whether BuildSuffixLinks has run since the
// last Assign.
func (d *Dictionary) HasCurrentSuffixLinks() bool { return !d.linksStale }
