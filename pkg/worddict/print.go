package worddict

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// maxDumpNodes mirrors the original implementation's _to_string() cutoff:
// dumps of larger dictionaries are suppressed rather than flooding the
// terminal.
const maxDumpNodes = 500

var (
	dumpKeyStyle   = lipgloss.NewStyle().Bold(true)
	dumpValueStyle = lipgloss.NewStyle().Faint(true)
	dumpInfoStyle  = lipgloss.NewStyle().Italic(true)
)

// Dump renders d's stored keys as one "key (value)" line per key, in
// PrefixEnumerate order, styled with lipgloss. The trie's node structure is
// not drawn and lines are not indented. If d holds more nodes than
// maxDumpNodes, it returns a one-line notice instead of the listing.
func Dump(d *StringDict) string {
	if d.core.NodeCount() > maxDumpNodes {
		return dumpInfoStyle.Render(fmt.Sprintf(
			"dictionary has %d nodes (> %d); dump suppressed", d.core.NodeCount(), maxDumpNodes))
	}

	completions := d.PrefixEnumerate("")
	var b strings.Builder
	for _, c := range completions {
		fmt.Fprintf(&b, "%s %s\n",
			dumpKeyStyle.Render(c.Key),
			dumpValueStyle.Render(fmt.Sprintf("(%v)", c.Value)))
	}
	return b.String()
}
