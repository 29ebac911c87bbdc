package dictionary

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/csengstock/triedict/internal/trie"
)

// SaveBinary writes d to filename using trie.Serialize, overwriting any
// existing file.
func SaveBinary(d *trie.Dictionary, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("dictionary: failed to create %s: %w", filename, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := d.Serialize(w); err != nil {
		return fmt.Errorf("dictionary: failed to encode %s: %w", filename, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("dictionary: failed to flush %s: %w", filename, err)
	}
	log.Debugf("saved binary dictionary %s: %d nodes", filename, d.NodeCount())
	return nil
}
