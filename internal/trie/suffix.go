package trie

// BuildSuffixLinks computes the failure (suffix) link for every node via a
// single breadth-first pass, per spec.md §4.4. Must be called after any
// Assign and before Match; Match refuses to run while links are stale.
func (d *Dictionary) BuildSuffixLinks() {
	s := d.store
	s.setSuffix(0, 0)

	var queue []NodeIndex
	for c := s.get(0).child; c != 0; c = s.get(c).sibling {
		s.setSuffix(c, 0)
		queue = append(queue, c)
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for c := s.get(n).child; c != 0; c = s.get(c).sibling {
			sym := s.get(c).symbol

			f := s.get(n).suffix
			for f != 0 && findChild(s, f, sym) == 0 {
				f = s.get(f).suffix
			}

			t := findChild(s, f, sym)
			if t == 0 || t == c {
				s.setSuffix(c, 0)
			} else {
				s.setSuffix(c, t)
			}

			queue = append(queue, c)
		}
	}

	d.linksStale = false
}
