package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// dirCheckResult reports whether a directory exists and can be written to.
type dirCheckResult struct {
	Exists   bool
	Writable bool
	Error    error
}

// fileExists reports whether path names an existing file or directory.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ensureDir creates dirPath, including any missing parents, if it doesn't
// already exist.
func ensureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("config: create directory %s: %w", dirPath, err)
	}
	return nil
}

// saveTOMLFile encodes data as TOML and writes it to filePath, overwriting
// any existing config.toml.
func saveTOMLFile(data any, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", filePath, err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("config: encode %s: %w", filePath, err)
	}
	return nil
}

// getAbsolutePath resolves configPath to an absolute path, for display in
// diagnostics. Returns "unknown" for an empty path and the input unchanged
// if it cannot be made absolute.
func getAbsolutePath(configPath string) string {
	if configPath == "" {
		return "unknown"
	}
	if !filepath.IsAbs(configPath) {
		if absPath, err := filepath.Abs(configPath); err == nil {
			return absPath
		}
	}
	return configPath
}

// testWriteAccess reports whether dirPath can be written to, by writing and
// removing a throwaway file.
func testWriteAccess(dirPath string) bool {
	testFile := filepath.Join(dirPath, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		return false
	}
	file.Close()
	os.Remove(testFile)
	return true
}

// getExecutableDir returns the directory containing the running binary,
// used as the last fallback in GetConfigDir's search order.
func getExecutableDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("config: locate executable: %w", err)
	}
	return filepath.Dir(execPath), nil
}

// checkDirStatus reports whether dirPath exists (creating it if necessary)
// and is writable, for GetConfigDir's candidate-directory search.
func checkDirStatus(dirPath string) dirCheckResult {
	if _, err := os.Stat(dirPath); err == nil {
		return dirCheckResult{Exists: true, Writable: testWriteAccess(dirPath)}
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return dirCheckResult{Error: fmt.Errorf("config: create directory %s: %w", dirPath, err)}
	}
	return dirCheckResult{Exists: true, Writable: testWriteAccess(dirPath)}
}

// loadTOMLFile decodes a TOML file directly into config. A successful
// decode here only means the file was well-formed TOML matching Config's
// shape; it says nothing about whether the values it carries are sane
// triedict settings — that's config.go's validateAndRepair's job, run by
// every caller of loadTOMLFile.
func loadTOMLFile(configPath string, config any) error {
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return fmt.Errorf("config: parse %s: %w", configPath, err)
	}
	return nil
}

// parseTOMLWithRecovery decodes a TOML file into a generic map, for
// tryPartialParse to salvage whichever top-level sections parsed cleanly
// when the typed decode in loadTOMLFile fails.
func parseTOMLWithRecovery(configPath string) (map[string]any, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configPath, err)
	}

	tempConfig := make(map[string]any)
	if _, err := toml.Decode(string(data), &tempConfig); err != nil {
		log.Warnf("could not parse any valid configuration from %s: %v", configPath, err)
		return nil, fmt.Errorf("config: recover %s: %w", configPath, err)
	}
	return tempConfig, nil
}

// extractSection pulls a named table out of TOML data decoded into a
// generic map.
func extractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	section, ok := data[sectionName].(map[string]any)
	return section, ok
}

// extractBoundedInt reads an integer field from TOML data decoded into a
// generic map (toml.Decode always produces int64 for bare TOML integers)
// and rejects it outright, rather than returning a value the caller must
// separately range-check, if it falls outside [min, max]. This is the
// point at which a config.toml with "capacity_hint = -5" or
// "max_text_length = 0" gets caught during partial recovery, before the
// value ever reaches TrieConfig/ServerConfig.
func extractBoundedInt(data map[string]any, key string, min, max int) (int, bool) {
	raw, ok := data[key].(int64)
	if !ok {
		return 0, false
	}
	val := int(raw)
	if val < min || val > max {
		log.Warnf("config: %s=%d outside [%d,%d], ignoring", key, val, min, max)
		return 0, false
	}
	return val, true
}

// extractBool reads a boolean field from TOML data decoded into a generic
// map.
func extractBool(data map[string]any, key string) (bool, bool) {
	if val, ok := data[key].(bool); ok {
		return val, true
	}
	return false, false
}

// extractEnum reads a string field and rejects it if it isn't a key of
// allowed, so an unrecognized trie.symbol_encoding or match.rebuild_policy
// in a partially-valid config.toml falls back to its default instead of
// reaching TrieConfig/MatchConfig verbatim.
func extractEnum(data map[string]any, key string, allowed map[string]bool) (string, bool) {
	val, ok := data[key].(string)
	if !ok {
		return "", false
	}
	if !allowed[val] {
		log.Warnf("config: %s=%q not one of the supported values, ignoring", key, val)
		return "", false
	}
	return val, true
}
