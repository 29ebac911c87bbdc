package trie

// NodeIndex addresses a node in a NodeStore. 0 is both the root and the
// null/absent pointer; the topology invariants (see topology.go) guarantee
// root is never reachable as a child, sibling, or suffix target of another
// node, so 0 is unambiguous outside root identity.
type NodeIndex uint32

// noValue is the sentinel stored in node.value for nodes that do not
// terminate a stored pattern (internal branches only).
const noValue uint32 = 1<<32 - 1

// maxValue is the largest value a caller may assign to a pattern.
const maxValue uint32 = noValue - 1

// maxNodeIndex is the node count at which CapacityExhausted triggers: the
// store must never allocate a node whose index is noValue, since that value
// is reserved as "no value" in the value field and, more importantly, the
// spec reserves 2^32-1 as the point past which NodeIndex arithmetic is
// unsafe.
const maxNodeIndex = 1<<32 - 1

// MaxCapacityHint bounds the preallocation hint NewWithCapacity accepts. It
// is far below maxNodeIndex: the hint only sizes the initial backing array,
// and honoring an unbounded hint would let a hostile or malformed config
// trigger a multi-gigabyte allocation before a single pattern is stored.
const MaxCapacityHint = 1 << 20

// node is the fixed-width record backing every Trie position. Field order
// matches spec.md's schema; this is the only place node layout is defined.
type node struct {
	symbol  uint32
	value   uint32
	child   NodeIndex
	sibling NodeIndex
	suffix  NodeIndex
}

// nodeStore is a growable, index-addressed array of node records. Node 0 is
// the root and is allocated by newNodeStore. Indices are never reused.
type nodeStore struct {
	nodes []node
}

// newNodeStore creates a store with the root node already allocated at
// index 0, as required by the Lifecycle section of spec.md §3.
func newNodeStore() *nodeStore {
	return newNodeStoreWithCapacity(64)
}

// newNodeStoreWithCapacity is newNodeStore with a caller-chosen initial
// backing-array capacity, clamped to [1, MaxCapacityHint]. A hint lets a
// caller that already knows roughly how many patterns it will load (e.g.
// from TrieConfig.CapacityHint) avoid the repeated reallocations New's
// fixed 64-node default would otherwise cost.
func newNodeStoreWithCapacity(hint int) *nodeStore {
	if hint < 1 {
		hint = 1
	}
	if hint > MaxCapacityHint {
		hint = MaxCapacityHint
	}
	s := &nodeStore{nodes: make([]node, 1, hint)}
	s.nodes[0] = node{symbol: 0, value: noValue}
	return s
}

// allocate appends a fresh node with the given incoming-edge symbol and
// returns its index. The new node has value = noValue and no child,
// sibling, or suffix links.
func (s *nodeStore) allocate(symbol uint32) (NodeIndex, error) {
	if len(s.nodes) >= maxNodeIndex {
		return 0, ErrCapacityExhausted
	}
	idx := NodeIndex(len(s.nodes))
	s.nodes = append(s.nodes, node{symbol: symbol, value: noValue})
	return idx, nil
}

// get returns a copy of the node at i. Callers must re-fetch after any
// allocate call, since the backing array may have been reallocated.
func (s *nodeStore) get(i NodeIndex) node {
	return s.nodes[int(i)]
}

// setChild, setSibling, setSuffix, setValue mutate a single field in place.
func (s *nodeStore) setChild(i, v NodeIndex)   { s.nodes[int(i)].child = v }
func (s *nodeStore) setSibling(i, v NodeIndex) { s.nodes[int(i)].sibling = v }
func (s *nodeStore) setSuffix(i, v NodeIndex)  { s.nodes[int(i)].suffix = v }
func (s *nodeStore) setValue(i NodeIndex, v uint32) {
	s.nodes[int(i)].value = v
}

// len returns the number of allocated nodes, including the root.
func (s *nodeStore) len() int { return len(s.nodes) }

// cap returns the number of node slots currently reserved in the backing
// array (>= len), mirroring the original implementation's distinction
// between num_of_nodes() and num_of_buf_nodes().
func (s *nodeStore) cap() int { return cap(s.nodes) }
