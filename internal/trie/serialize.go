package trie

import (
	"encoding/binary"
	"io"
)

// magic identifies the binary format; version 1 is the only version this
// package understands. New versions may extend the record width but must
// bump version.
var magic = [4]byte{'T', 'R', 'I', 'E'}

const formatVersion uint16 = 1

const (
	flagSuffixLinksCurrent = 1 << 0
)

// Serialize writes the dictionary's node array and a small header to w, per
// spec.md §4.6: magic, version, flags, node count, then N fixed-width
// records. The caller's pattern side table is not written; Deserialize
// reconstructs it by walking the restored tree.
func (d *Dictionary) Serialize(w io.Writer) error {
	header := make([]byte, 4+2+1+4)
	copy(header[0:4], magic[:])
	binary.BigEndian.PutUint16(header[4:6], formatVersion)
	var flags byte
	if !d.linksStale {
		flags |= flagSuffixLinksCurrent
	}
	header[6] = flags
	binary.BigEndian.PutUint32(header[7:11], uint32(d.store.len()))
	if _, err := w.Write(header); err != nil {
		return err
	}

	buf := make([]byte, 20)
	for i := 0; i < d.store.len(); i++ {
		n := d.store.get(NodeIndex(i))
		binary.BigEndian.PutUint32(buf[0:4], n.symbol)
		binary.BigEndian.PutUint32(buf[4:8], n.value)
		binary.BigEndian.PutUint32(buf[8:12], uint32(n.child))
		binary.BigEndian.PutUint32(buf[12:16], uint32(n.sibling))
		binary.BigEndian.PutUint32(buf[16:20], uint32(n.suffix))
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize reads a dictionary previously written by Serialize. On any
// structural inconsistency (short read, bad magic, unsupported version, or
// an out-of-range child/sibling/suffix index) it returns
// ErrCorruptSerializedData. If the stream's flag byte indicates suffix
// links are absent, all suffix fields are reset to 0 and the result is
// marked stale.
func Deserialize(r io.Reader) (*Dictionary, error) {
	header := make([]byte, 4+2+1+4)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, ErrCorruptSerializedData
	}
	if string(header[0:4]) != string(magic[:]) {
		return nil, ErrCorruptSerializedData
	}
	version := binary.BigEndian.Uint16(header[4:6])
	if version != formatVersion {
		return nil, ErrCorruptSerializedData
	}
	flags := header[6]
	n := binary.BigEndian.Uint32(header[7:11])
	if n == 0 || n >= maxNodeIndex {
		return nil, ErrCorruptSerializedData
	}

	nodes := make([]node, n)
	buf := make([]byte, 20)
	for i := uint32(0); i < n; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ErrCorruptSerializedData
		}
		rec := node{
			symbol:  binary.BigEndian.Uint32(buf[0:4]),
			value:   binary.BigEndian.Uint32(buf[4:8]),
			child:   NodeIndex(binary.BigEndian.Uint32(buf[8:12])),
			sibling: NodeIndex(binary.BigEndian.Uint32(buf[12:16])),
			suffix:  NodeIndex(binary.BigEndian.Uint32(buf[16:20])),
		}
		if uint32(rec.child) >= n || uint32(rec.sibling) >= n || uint32(rec.suffix) >= n {
			return nil, ErrCorruptSerializedData
		}
		nodes[i] = rec
	}
	if nodes[0].symbol != 0 || nodes[0].sibling != 0 {
		return nil, ErrCorruptSerializedData
	}

	linksCurrent := flags&flagSuffixLinksCurrent != 0
	if !linksCurrent {
		for i := range nodes {
			nodes[i].suffix = 0
		}
	}

	d := &Dictionary{
		store:      &nodeStore{nodes: nodes},
		patterns:   make(map[NodeIndex][]uint32),
		linksStale: !linksCurrent,
	}
	d.rebuildPatternTable()
	return d, nil
}

// rebuildPatternTable walks the restored tree from root and records, for
// every node holding a value, the full symbol sequence leading to it. The
// wire format carries no parent pointer, so this is recomputed rather than
// stored.
func (d *Dictionary) rebuildPatternTable() {
	s := d.store
	type frame struct {
		idx  NodeIndex
		path []uint32
	}
	stack := []frame{{idx: 0, path: nil}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := s.get(f.idx)
		if n.value != noValue {
			d.patternCount++
			d.patterns[f.idx] = f.path
		}

		for c := n.child; c != 0; c = s.get(c).sibling {
			childPath := make([]uint32, len(f.path)+1)
			copy(childPath, f.path)
			childPath[len(f.path)] = s.get(c).symbol
			stack = append(stack, frame{idx: c, path: childPath})
		}
	}
}
