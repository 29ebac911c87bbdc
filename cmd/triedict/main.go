/*
Command triedict runs a node-array Trie/Aho-Corasick dictionary as either a
MessagePack IPC server or an interactive CLI.

Note: This is a BETA release. APIs and functionality may rapidly change.

triedict stores patterns (sequences of Unicode code points) and arbitrary
values in a compact, index-addressed Trie, then supports exact lookup,
prefix enumeration, and multi-pattern Aho-Corasick matching over arbitrary
text. It can operate as a MessagePack IPC server for integration with other
processes, or as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	triedict

Load a dictionary file on startup and enable debug mode:

	triedict -dict patterns.txt -d

Run in CLI mode for interactive testing:

	triedict -c -dict dict.bin

# Configuration

Runtime configuration is managed through a TOML file covering trie, match,
server, and CLI sections:

	[trie]
	symbol_encoding = "unicode"
	capacity_hint = 64

	[match]
	default_boundary_chars = " !?=-*+#:;,.'\"()&%$"
	rebuild_policy = "lazy"

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout, one request in
and one response out:

	{"id": "r1", "op": "assign", "pattern": "key1", "value": 0}
	{"id": "r1", "status": "ok"}

	{"id": "r2", "op": "match", "text": "this is key1 in a string"}
	{"id": "r2", "status": "ok", "hits": [...], "count": 1, "time_ms": 0}
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/csengstock/triedict/internal/cli"
	"github.com/csengstock/triedict/internal/utils"
	"github.com/csengstock/triedict/pkg/config"
	"github.com/csengstock/triedict/pkg/dictionary"
	"github.com/csengstock/triedict/pkg/server"
	"github.com/csengstock/triedict/pkg/worddict"
)

const (
	Version = "0.9.0-beta"
	AppName = "triedict"
	gh      = "https://github.com/csengstock/triedict"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Path to a dictionary file to load at startup (binary or text, format auto-detected)")
	configPath := flag.String("config", "", "Path to a config.toml file (default: platform config dir)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	noBoundary := flag.Bool("no-boundary", false, "Disable boundary-character filtering on match results")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, resolvedConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.Debugf("using config at: %s", resolvedConfigPath)

	boundaryChars := appConfig.Match.DefaultBoundaryChars
	if !appConfig.CLI.DefaultBoundCharsEnabled || *noBoundary {
		boundaryChars = ""
	}

	var dict *worddict.StringDict
	if *dictPath != "" {
		resolved := *dictPath
		if pr, err := utils.NewPathResolver(); err != nil {
			log.Debugf("path resolver unavailable, using %s as given: %v", *dictPath, err)
		} else {
			resolved = pr.ResolveDictionaryPath(*dictPath)
		}
		core, err := dictionary.Load(resolved)
		if err != nil {
			log.Fatalf("failed to load dictionary %s: %v", resolved, err)
		}
		log.Debugf("loaded %d patterns from %s", core.PatternCount(), *dictPath)
		dict = worddict.FromCore(core, boundaryChars)
	} else {
		log.Warn("no dictionary file specified, starting with an empty dictionary")
		dict = worddict.NewWithCapacity(appConfig.Trie.CapacityHint)
		dict.SetBoundaryChars(boundaryChars)
	}
	dict.SetRebuildPolicy(worddict.RebuildPolicy(appConfig.Match.RebuildPolicy))
	dict.Build()

	if *cliMode {
		log.SetReportTimestamp(false)
		repl := cli.NewREPL(dict)
		if err := repl.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	showStartupInfo()

	srv := server.NewServer(dict, os.Stdin, os.Stdout)
	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// printVersion prints a styled version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"}).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ triedict ] Compact Trie + Aho-Corasick matching for Go")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo() {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" triedict  ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
