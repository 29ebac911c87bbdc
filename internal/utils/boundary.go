package utils

// DefaultBoundaryChars are the characters the CLI and server treat as word
// boundaries when no boundary set is supplied explicitly. Ported from the
// original implementation's DEF_BOUND_CHARS constant.
const DefaultBoundaryChars = " !?=-*+#:;,.'\"()&%$"

// BoundarySet builds a symbol membership set from a string of boundary
// characters, suitable for passing to trie.Dictionary.Match.
func BoundarySet(chars string) map[uint32]bool {
	set := make(map[uint32]bool, len(chars))
	for _, r := range chars {
		set[uint32(r)] = true
	}
	return set
}

// DefaultBoundarySet returns the boundary set built from DefaultBoundaryChars.
func DefaultBoundarySet() map[uint32]bool {
	return BoundarySet(DefaultBoundaryChars)
}
