package trie

import (
	"bytes"
	"testing"
)

func TestSerializeRoundTrip(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("key1"), 0))
	must(t, d.Assign(symbols("key2"), 11))
	must(t, d.Assign(symbols("bus"), 1))
	must(t, d.Assign(symbols("bugs"), 2))
	d.BuildSuffixLinks()

	var buf bytes.Buffer
	must(t, d.Serialize(&buf))

	restored, err := Deserialize(&buf)
	must(t, err)

	if !restored.HasCurrentSuffixLinks() {
		t.Fatal("restored dictionary should report current suffix links")
	}
	if restored.NodeCount() != d.NodeCount() {
		t.Fatalf("NodeCount = %d, want %d", restored.NodeCount(), d.NodeCount())
	}
	if restored.PatternCount() != d.PatternCount() {
		t.Fatalf("PatternCount = %d, want %d", restored.PatternCount(), d.PatternCount())
	}

	for _, p := range []string{"key1", "key2", "bus", "bugs"} {
		want, ok := d.Lookup(symbols(p))
		if !ok {
			t.Fatalf("original dictionary missing %q", p)
		}
		got, ok := restored.Lookup(symbols(p))
		if !ok || got != want {
			t.Fatalf("pattern %q: restored lookup = (%d,%v), want (%d,true)", p, got, ok, want)
		}
	}

	hits, err := restored.Match(symbols("key2key1"), nil)
	must(t, err)
	if len(hits) != 2 {
		t.Fatalf("restored Match: got %d hits, want 2: %+v", len(hits), hits)
	}
}

func TestSerializeEmptyDictionary(t *testing.T) {
	d := New()
	d.BuildSuffixLinks()

	var buf bytes.Buffer
	must(t, d.Serialize(&buf))

	restored, err := Deserialize(&buf)
	must(t, err)
	if restored.NodeCount() != 1 {
		t.Fatalf("NodeCount = %d, want 1", restored.NodeCount())
	}
	if restored.PatternCount() != 0 {
		t.Fatalf("PatternCount = %d, want 0", restored.PatternCount())
	}
}

func TestSerializeWithoutSuffixLinksMarksStale(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("a"), 0))
	// Deliberately skip BuildSuffixLinks: the written flag byte should
	// reflect staleness and Deserialize should carry that forward.

	var buf bytes.Buffer
	must(t, d.Serialize(&buf))

	restored, err := Deserialize(&buf)
	must(t, err)
	if restored.HasCurrentSuffixLinks() {
		t.Fatal("restored dictionary should be marked stale")
	}
	if _, err := restored.Match(symbols("a"), nil); err != ErrStaleLinks {
		t.Fatalf("got %v, want ErrStaleLinks", err)
	}
}

func TestDeserializeRejectsBadMagic(t *testing.T) {
	data := []byte("XXXX\x00\x01\x00\x00\x00\x00\x01")
	if _, err := Deserialize(bytes.NewReader(data)); err != ErrCorruptSerializedData {
		t.Fatalf("got %v, want ErrCorruptSerializedData", err)
	}
}

func TestDeserializeRejectsTruncatedStream(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("abc"), 0))
	d.BuildSuffixLinks()

	var buf bytes.Buffer
	must(t, d.Serialize(&buf))
	truncated := buf.Bytes()[:buf.Len()-5]

	if _, err := Deserialize(bytes.NewReader(truncated)); err != ErrCorruptSerializedData {
		t.Fatalf("got %v, want ErrCorruptSerializedData", err)
	}
}

func TestDeserializeRejectsOutOfRangeIndex(t *testing.T) {
	// One node (root) followed by a record whose child index is
	// out-of-range for a two-node store.
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.Write([]byte{0, 1})       // version 1
	buf.WriteByte(0)              // flags: stale
	buf.Write([]byte{0, 0, 0, 2}) // node count = 2

	// root record: symbol 0, value noValue, child 1, sibling 0, suffix 0
	buf.Write([]byte{0, 0, 0, 0})
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	buf.Write([]byte{0, 0, 0, 1})
	buf.Write([]byte{0, 0, 0, 0})
	buf.Write([]byte{0, 0, 0, 0})

	// node 1 record: child index 99 is out of range for n=2
	buf.Write([]byte{0, 0, 0, 'a'})
	buf.Write([]byte{0, 0, 0, 0})
	buf.Write([]byte{0, 0, 0, 99})
	buf.Write([]byte{0, 0, 0, 0})
	buf.Write([]byte{0, 0, 0, 0})

	if _, err := Deserialize(&buf); err != ErrCorruptSerializedData {
		t.Fatalf("got %v, want ErrCorruptSerializedData", err)
	}
}
