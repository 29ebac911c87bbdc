package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/csengstock/triedict/internal/trie"
)

// Load reads a dictionary file, detecting its format automatically, and
// returns a ready-to-use trie.Dictionary. Text files are loaded pattern by
// pattern; binary files are restored via trie.Deserialize.
func Load(filename string) (*trie.Dictionary, error) {
	format, err := DetectFileFormat(filename)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatBinary:
		return LoadBinary(filename)
	case FormatText:
		return LoadText(filename)
	default:
		return nil, fmt.Errorf("dictionary: unsupported format for %s", filename)
	}
}

// LoadBinary restores a dictionary previously written by SaveBinary.
func LoadBinary(filename string) (*trie.Dictionary, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("dictionary: failed to open %s: %w", filename, err)
	}
	defer f.Close()

	d, err := trie.Deserialize(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("dictionary: failed to decode %s: %w", filename, err)
	}
	log.Debugf("loaded binary dictionary %s: %d nodes, %d patterns", filename, d.NodeCount(), d.PatternCount())
	return d, nil
}

// LoadText bulk-loads a dictionary from a file of "pattern\tvalue" lines,
// one pattern per line, skipping blank lines and lines starting with '#'.
// Patterns are encoded as their Unicode code points, matching the original
// implementation's default ord/unichr symbol codec.
func LoadText(filename string) (*trie.Dictionary, error) {
	if n, err := CountTextLines(filename); err == nil {
		log.Debugf("loading text dictionary %s: %d candidate lines", filename, n)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("dictionary: failed to open %s: %w", filename, err)
	}
	defer f.Close()

	d := trie.New()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pattern, value, err := parseTextLine(line)
		if err != nil {
			return nil, fmt.Errorf("dictionary: %s:%d: %w", filename, lineNo, err)
		}
		if err := d.Assign(encodeSymbols(pattern), value); err != nil {
			return nil, fmt.Errorf("dictionary: %s:%d: %w", filename, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: failed to read %s: %w", filename, err)
	}
	d.BuildSuffixLinks()
	log.Debugf("loaded text dictionary %s: %d patterns", filename, d.PatternCount())
	return d, nil
}

func parseTextLine(line string) (pattern string, value uint32, err error) {
	parts := strings.SplitN(line, "\t", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("expected \"pattern<TAB>value\", got %q", line)
	}
	n, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("invalid value %q: %w", parts[1], err)
	}
	return parts[0], uint32(n), nil
}

func encodeSymbols(s string) []uint32 {
	out := make([]uint32, 0, len(s))
	for _, r := range s {
		out = append(out, uint32(r))
	}
	return out
}
