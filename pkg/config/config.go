/*
Package config manages TOML config for triedict binaries and servers.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/csengstock/triedict/internal/trie"
	"github.com/csengstock/triedict/internal/utils"
	"github.com/csengstock/triedict/pkg/worddict"
)

// Config holds the entire config structure.
type Config struct {
	Trie   TrieConfig   `toml:"trie"`
	Match  MatchConfig  `toml:"match"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// TrieConfig has options governing the core node store.
type TrieConfig struct {
	SymbolEncoding string `toml:"symbol_encoding"`
	CapacityHint   int    `toml:"capacity_hint"`
}

// MatchConfig has options governing Aho-Corasick matching.
type MatchConfig struct {
	DefaultBoundaryChars string `toml:"default_boundary_chars"`
	RebuildPolicy        string `toml:"rebuild_policy"`
}

// ServerConfig has options governing the msgpack IPC server.
type ServerConfig struct {
	MaxTextLength    int `toml:"max_text_length"`
	MaxPatternLength int `toml:"max_pattern_length"`
}

// CliConfig has options governing the interactive REPL.
type CliConfig struct {
	DefaultBoundCharsEnabled bool `toml:"default_bound_chars_enabled"`
}

// supportedSymbolEncodings lists the values TrieConfig.SymbolEncoding may
// take. triedict only ever encodes patterns as raw Unicode code points
// (see pkg/worddict's encodeSymbols), so "unicode" is currently the only
// entry; the field exists so a future encoding (e.g. a case-folded or
// byte-oriented one) has somewhere to register without a wire format
// change.
var supportedSymbolEncodings = map[string]bool{"unicode": true}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/triedict
// 2. ~/Library/Application Support/triedict (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := getExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "triedict")
	if result := checkDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "triedict")
	if result := checkDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := getExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/triedict/config.toml
// 3. Builtin defaults
//
// Every config that comes back, regardless of source, has already passed
// through validateAndRepair: a caller never has to separately check that
// capacity_hint or rebuild_policy are sane before acting on them.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Trie: TrieConfig{
			SymbolEncoding: "unicode",
			CapacityHint:   64,
		},
		Match: MatchConfig{
			DefaultBoundaryChars: utils.DefaultBoundaryChars,
			RebuildPolicy:        string(worddict.RebuildLazy),
		},
		Server: ServerConfig{
			MaxTextLength:    1 << 20,
			MaxPatternLength: 4096,
		},
		CLI: CliConfig{
			DefaultBoundCharsEnabled: true,
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := ensureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !fileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Unlike a bare toml.DecodeFile, a
// successful parse does not mean the result is usable as-is: every field
// still passes through validateAndRepair, since TOML happily accepts a
// negative capacity_hint or an unrecognized rebuild_policy string that
// would otherwise reach worddict.StringDict.SetRebuildPolicy unchecked.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := loadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	for _, repaired := range config.validateAndRepair() {
		log.Warnf("config %s: %s", configPath, repaired)
	}
	return config, nil
}

// tryPartialParse attempts to salvage whichever sections of a TOML file
// parse cleanly, falling back to defaults for the rest. Each section's
// fields are bounds-checked as they're extracted (see extractTrieConfig
// etc.), then the assembled config passes through validateAndRepair again
// as a backstop against any combination of individually-valid fields that
// is still not a combination LoadConfigWithPriority's caller should run
// with.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := parseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if trieSection, ok := extractSection(tempConfig, "trie"); ok {
		extractTrieConfig(trieSection, &config.Trie)
	}
	if matchSection, ok := extractSection(tempConfig, "match"); ok {
		extractMatchConfig(matchSection, &config.Match)
	}
	if serverSection, ok := extractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if cliSection, ok := extractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	for _, repaired := range config.validateAndRepair() {
		log.Warnf("config %s: %s", configPath, repaired)
	}
	return config, nil
}

func extractTrieConfig(data map[string]any, trieCfg *TrieConfig) {
	if val, ok := extractEnum(data, "symbol_encoding", supportedSymbolEncodings); ok {
		trieCfg.SymbolEncoding = val
	}
	if val, ok := extractBoundedInt(data, "capacity_hint", 1, trie.MaxCapacityHint); ok {
		trieCfg.CapacityHint = val
	}
}

func extractMatchConfig(data map[string]any, match *MatchConfig) {
	if val, ok := data["default_boundary_chars"].(string); ok {
		match.DefaultBoundaryChars = val
	}
	if val, ok := extractEnum(data, "rebuild_policy", rebuildPolicies); ok {
		match.RebuildPolicy = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := extractBoundedInt(data, "max_text_length", 1, 1<<30); ok {
		server.MaxTextLength = val
	}
	if val, ok := extractBoundedInt(data, "max_pattern_length", 1, 1<<20); ok {
		server.MaxPatternLength = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := extractBool(data, "default_bound_chars_enabled"); ok {
		cli.DefaultBoundCharsEnabled = val
	}
}

// rebuildPolicies is the enum extractEnum checks match.rebuild_policy
// against. Kept next to worddict.RebuildPolicy's two constants rather than
// deriving the set reflectively, since there are exactly two and a third
// would need matching worddict.StringDict support anyway.
var rebuildPolicies = map[string]bool{
	string(worddict.RebuildLazy):  true,
	string(worddict.RebuildEager): true,
}

// validateAndRepair checks c against triedict's own domain constraints —
// ones a typed TOML decode can't express, like "capacity_hint must not
// exceed what trie.NewWithCapacity will actually honor" — and resets any
// field found out of bounds to DefaultConfig's value for that field alone.
// A config that parses but carries one bad field therefore keeps every
// other field the caller set; max_pattern_length above max_text_length is
// clamped to max_text_length rather than reset. Returns a human-readable
// description of each field it had to repair, for the caller to log.
func (c *Config) validateAndRepair() []string {
	defaults := DefaultConfig()
	var repaired []string

	if c.Trie.CapacityHint < 1 || c.Trie.CapacityHint > trie.MaxCapacityHint {
		repaired = append(repaired, fmt.Sprintf(
			"trie.capacity_hint=%d outside [1,%d], using default %d",
			c.Trie.CapacityHint, trie.MaxCapacityHint, defaults.Trie.CapacityHint))
		c.Trie.CapacityHint = defaults.Trie.CapacityHint
	}
	if !supportedSymbolEncodings[c.Trie.SymbolEncoding] {
		repaired = append(repaired, fmt.Sprintf(
			"trie.symbol_encoding=%q unsupported, using default %q",
			c.Trie.SymbolEncoding, defaults.Trie.SymbolEncoding))
		c.Trie.SymbolEncoding = defaults.Trie.SymbolEncoding
	}
	if !rebuildPolicies[c.Match.RebuildPolicy] {
		repaired = append(repaired, fmt.Sprintf(
			"match.rebuild_policy=%q unsupported, using default %q",
			c.Match.RebuildPolicy, defaults.Match.RebuildPolicy))
		c.Match.RebuildPolicy = defaults.Match.RebuildPolicy
	}
	if c.Server.MaxTextLength < 1 {
		repaired = append(repaired, fmt.Sprintf(
			"server.max_text_length=%d must be positive, using default %d",
			c.Server.MaxTextLength, defaults.Server.MaxTextLength))
		c.Server.MaxTextLength = defaults.Server.MaxTextLength
	}
	if c.Server.MaxPatternLength < 1 {
		repaired = append(repaired, fmt.Sprintf(
			"server.max_pattern_length=%d must be positive, using default %d",
			c.Server.MaxPatternLength, defaults.Server.MaxPatternLength))
		c.Server.MaxPatternLength = defaults.Server.MaxPatternLength
	}
	if c.Server.MaxPatternLength > c.Server.MaxTextLength {
		repaired = append(repaired, fmt.Sprintf(
			"server.max_pattern_length=%d exceeds max_text_length=%d, clamping",
			c.Server.MaxPatternLength, c.Server.MaxTextLength))
		c.Server.MaxPatternLength = c.Server.MaxTextLength
	}
	return repaired
}

// RebuildConfigFile force creates a new config.toml at the default path.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := ensureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return saveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return getAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file. The caller is expected to have
// already produced c via LoadConfig/DefaultConfig/Update, all of which
// route through validateAndRepair, so SaveConfig itself does not
// re-validate.
func SaveConfig(config *Config, configPath string) error {
	return saveTOMLFile(config, configPath)
}

// Update changes the server/CLI config values and saves to file,
// rejecting any value validateAndRepair would have reset rather than
// silently persisting and repairing it on the next load.
func (c *Config) Update(configPath string, maxTextLength, maxPatternLength *int, boundCharsEnabled *bool) error {
	if maxTextLength != nil {
		if *maxTextLength < 1 {
			return fmt.Errorf("config: max_text_length must be positive, got %d", *maxTextLength)
		}
		c.Server.MaxTextLength = *maxTextLength
	}
	if maxPatternLength != nil {
		if *maxPatternLength < 1 {
			return fmt.Errorf("config: max_pattern_length must be positive, got %d", *maxPatternLength)
		}
		c.Server.MaxPatternLength = *maxPatternLength
	}
	if c.Server.MaxPatternLength > c.Server.MaxTextLength {
		return fmt.Errorf("config: max_pattern_length (%d) cannot exceed max_text_length (%d)",
			c.Server.MaxPatternLength, c.Server.MaxTextLength)
	}
	if boundCharsEnabled != nil {
		c.CLI.DefaultBoundCharsEnabled = *boundCharsEnabled
	}
	return SaveConfig(c, configPath)
}
