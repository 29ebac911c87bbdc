package trie

import "testing"

func TestBuildSuffixLinksClearsStaleFlag(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("a"), 0))
	if d.HasCurrentSuffixLinks() {
		t.Fatal("links should be stale right after Assign")
	}
	d.BuildSuffixLinks()
	if !d.HasCurrentSuffixLinks() {
		t.Fatal("links should be current after BuildSuffixLinks")
	}
	must(t, d.Assign(symbols("b"), 0))
	if d.HasCurrentSuffixLinks() {
		t.Fatal("Assign after BuildSuffixLinks should mark links stale again")
	}
}

func TestMatchRefusesStaleLinks(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("a"), 0))
	if _, err := d.Match(symbols("a"), nil); err != ErrStaleLinks {
		t.Fatalf("got %v, want ErrStaleLinks", err)
	}
}

// TestSuffixLinkTargets checks the classic aa/aaa suffix-link shape: the
// node for the second 'a' should link back to the node for the first 'a',
// not to root, once "aa" and "a" are both present in the dictionary.
func TestSuffixLinkTargets(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("a"), 1))
	must(t, d.Assign(symbols("aa"), 2))
	d.BuildSuffixLinks()

	root := NodeIndex(0)
	a1 := findChild(d.store, root, uint32('a'))
	if a1 == 0 {
		t.Fatal("missing node for first a")
	}
	a2 := findChild(d.store, a1, uint32('a'))
	if a2 == 0 {
		t.Fatal("missing node for second a")
	}
	if d.store.get(a2).suffix != a1 {
		t.Fatalf("suffix(aa) = %d, want %d (node for a)", d.store.get(a2).suffix, a1)
	}
	if d.store.get(a1).suffix != root {
		t.Fatalf("suffix(a) = %d, want root", d.store.get(a1).suffix)
	}
}
