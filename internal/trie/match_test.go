package trie

import (
	"reflect"
	"testing"
)

func hitStrings(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = string(bytesOf(h.Pattern))
	}
	return out
}

func TestMatchTextScenario(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("key1"), 0))
	must(t, d.Assign(symbols("key2"), 11))
	d.BuildSuffixLinks()

	text := symbols("this is key1 and key2key1 in a string")
	hits, err := d.Match(text, nil)
	must(t, err)

	type want struct {
		end     int
		pattern string
		value   uint32
	}
	wants := []want{
		{12, "key1", 0},
		{21, "key2", 11},
		{25, "key1", 0},
	}
	if len(hits) != len(wants) {
		t.Fatalf("got %d hits, want %d: %+v", len(hits), len(wants), hits)
	}
	for i, h := range hits {
		if h.End != wants[i].end || string(bytesOf(h.Pattern)) != wants[i].pattern || h.Value != wants[i].value {
			t.Fatalf("hit %d = (end=%d,pattern=%q,value=%d), want (end=%d,pattern=%q,value=%d)",
				i, h.End, string(bytesOf(h.Pattern)), h.Value, wants[i].end, wants[i].pattern, wants[i].value)
		}
	}
}

func TestMatchWithBoundaryFilter(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("key1"), 0))
	must(t, d.Assign(symbols("key2"), 11))
	d.BuildSuffixLinks()

	text := symbols("this is key1 and key2key1 in a string")
	boundary := map[uint32]bool{}
	for _, c := range " !?=-*+#:;,.'\"()&%$" {
		boundary[uint32(c)] = true
	}

	hits, err := d.Match(text, boundary)
	must(t, err)

	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1: %+v", len(hits), hits)
	}
	if hits[0].End != 12 || string(bytesOf(hits[0].Pattern)) != "key1" {
		t.Fatalf("got %+v, want end=12 pattern=key1", hits[0])
	}
}

func TestMatchOverlappingOccurrences(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("aa"), 1))
	d.BuildSuffixLinks()

	hits, err := d.Match(symbols("aaaa"), nil)
	must(t, err)

	ends := make([]int, len(hits))
	for i, h := range hits {
		ends[i] = h.End
	}
	want := []int{2, 3, 4}
	if !reflect.DeepEqual(ends, want) {
		t.Fatalf("got ends %v, want %v", ends, want)
	}
	for _, h := range hits {
		if string(bytesOf(h.Pattern)) != "aa" || h.Value != 1 {
			t.Fatalf("hit %+v does not match stored pattern aa/1", h)
		}
	}
}

func TestMatchMultiplePatternsAtSamePosition(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("a"), 1))
	must(t, d.Assign(symbols("ba"), 2))
	must(t, d.Assign(symbols("aba"), 3))
	d.BuildSuffixLinks()

	hits, err := d.Match(symbols("aba"), nil)
	must(t, err)

	got := map[string]bool{}
	for _, h := range hits {
		if h.End == 3 {
			got[string(bytesOf(h.Pattern))] = true
		}
	}
	for _, want := range []string{"a", "ba", "aba"} {
		if !got[want] {
			t.Fatalf("missing expected hit %q ending at 3, got %v", want, hitStrings(hits))
		}
	}
}

func TestMatchEmptyTextYieldsNoHits(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("a"), 1))
	d.BuildSuffixLinks()

	hits, err := d.Match(nil, nil)
	must(t, err)
	if len(hits) != 0 {
		t.Fatalf("got %v, want no hits", hits)
	}
}

func TestMatchNoOccurrences(t *testing.T) {
	d := New()
	must(t, d.Assign(symbols("xyz"), 1))
	d.BuildSuffixLinks()

	hits, err := d.Match(symbols("abcdef"), nil)
	must(t, err)
	if len(hits) != 0 {
		t.Fatalf("got %v, want no hits", hits)
	}
}
