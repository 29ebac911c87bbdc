package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/csengstock/triedict/internal/trie"
)

func writeConfig(t *testing.T, toml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(toml), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigRepairsOutOfRangeCapacityHint(t *testing.T) {
	path := writeConfig(t, `
[trie]
capacity_hint = -5
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Trie.CapacityHint != DefaultConfig().Trie.CapacityHint {
		t.Fatalf("CapacityHint = %d; want default %d", cfg.Trie.CapacityHint, DefaultConfig().Trie.CapacityHint)
	}
}

func TestLoadConfigRepairsUnsupportedRebuildPolicy(t *testing.T) {
	path := writeConfig(t, `
[match]
rebuild_policy = "eagerish"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Match.RebuildPolicy != DefaultConfig().Match.RebuildPolicy {
		t.Fatalf("RebuildPolicy = %q; want default %q", cfg.Match.RebuildPolicy, DefaultConfig().Match.RebuildPolicy)
	}
}

func TestLoadConfigAcceptsEagerRebuildPolicy(t *testing.T) {
	path := writeConfig(t, `
[match]
rebuild_policy = "eager"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Match.RebuildPolicy != "eager" {
		t.Fatalf("RebuildPolicy = %q; want eager", cfg.Match.RebuildPolicy)
	}
}

func TestLoadConfigClampsPatternLengthToTextLength(t *testing.T) {
	path := writeConfig(t, `
[server]
max_text_length = 100
max_pattern_length = 500
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.MaxPatternLength != 100 {
		t.Fatalf("MaxPatternLength = %d; want clamped to 100", cfg.Server.MaxPatternLength)
	}
}

func TestValidateAndRepairRejectsCapacityHintAboveTrieMax(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trie.CapacityHint = trie.MaxCapacityHint + 1

	repaired := cfg.validateAndRepair()
	if len(repaired) != 1 {
		t.Fatalf("repaired = %v; want exactly one entry", repaired)
	}
	if cfg.Trie.CapacityHint != DefaultConfig().Trie.CapacityHint {
		t.Fatalf("CapacityHint = %d; want default", cfg.Trie.CapacityHint)
	}
}

func TestUpdateRejectsNonPositiveLengths(t *testing.T) {
	cfg := DefaultConfig()
	path := filepath.Join(t.TempDir(), "config.toml")
	bad := -1
	if err := cfg.Update(path, &bad, nil, nil); err == nil {
		t.Fatalf("Update with negative max_text_length should fail")
	}
}
