// Package cli provides an interactive line-oriented REPL for exercising a
// worddict.StringDict directly from a terminal, for debugging and manual
// testing outside the msgpack server.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/csengstock/triedict/pkg/worddict"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

// REPL reads commands from stdin and applies them to a worddict.StringDict.
// Recognized commands:
//
//	assign <pattern> <value>
//	lookup <pattern>
//	prefix <prefix>
//	match <text>
//	build
//	dump
//	stats
//	quit
type REPL struct {
	dict         *worddict.StringDict
	requestCount int
}

// NewREPL creates a REPL operating on dict.
func NewREPL(dict *worddict.StringDict) *REPL {
	return &REPL{dict: dict}
}

// Start begins the read-eval-print loop. Returns nil on EOF (Ctrl+D) and
// the underlying read error otherwise.
func (r *REPL) Start() error {
	log.Print("triedict CLI [BETA]")
	log.Print("commands: assign <pattern> <value> | lookup <pattern> | prefix <prefix> | match <text> | build | dump | stats | quit")
	reader := bufio.NewReader(os.Stdin)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		r.handleLine(line)
	}
}

func (r *REPL) handleLine(line string) {
	r.requestCount++
	fields := strings.SplitN(line, " ", 2)
	cmd := fields[0]
	var rest string
	if len(fields) > 1 {
		rest = strings.TrimSpace(fields[1])
	}

	switch cmd {
	case "assign":
		r.handleAssign(rest)
	case "lookup":
		r.handleLookup(rest)
	case "prefix":
		r.handlePrefix(rest)
	case "match":
		r.handleMatch(rest)
	case "build":
		r.dict.Build()
		log.Print("suffix links rebuilt")
	case "dump":
		fmt.Print(worddict.Dump(r.dict))
	case "stats":
		for k, v := range r.dict.HotStats() {
			log.Printf("%s: %d", k, v)
		}
	default:
		log.Errorf("unknown command: %s", cmd)
	}
}

func (r *REPL) handleAssign(rest string) {
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) != 2 {
		log.Errorf("usage: assign <pattern> <value>")
		return
	}
	if err := r.dict.Set(parts[0], parseValue(parts[1])); err != nil {
		log.Errorf("assign: %v", err)
		return
	}
	log.Printf("assigned %s", keyStyle.Render(parts[0]))
}

func (r *REPL) handleLookup(pattern string) {
	if pattern == "" {
		log.Errorf("usage: lookup <pattern>")
		return
	}
	value, ok := r.dict.Get(pattern)
	if !ok {
		log.Warnf("not found: %s", pattern)
		return
	}
	log.Printf("%s -> %v", keyStyle.Render(pattern), value)
}

func (r *REPL) handlePrefix(prefix string) {
	start := time.Now()
	completions := r.dict.PrefixEnumerate(prefix)
	elapsed := time.Since(start)

	if len(completions) == 0 {
		log.Warnf("no completions for prefix: '%s'", prefix)
		return
	}

	log.Printf("found %d completions for '%s' in %v:", len(completions), prefix, elapsed)
	for i, c := range completions {
		log.Printf("%2d. %-30s %v", i+1, keyStyle.Render(c.Key), c.Value)
	}
}

func (r *REPL) handleMatch(text string) {
	start := time.Now()
	hits, err := r.dict.Match(text)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("match: %v", err)
		return
	}

	if len(hits) == 0 {
		log.Warnf("no matches in: '%s'", text)
		return
	}

	log.Printf("found %d matches in %v:", len(hits), elapsed)
	for i, h := range hits {
		log.Printf("%2d. %-20s end=%-4d value=%v", i+1, keyStyle.Render(h.Key), h.End, h.Value)
	}
}

// parseValue attempts to interpret a raw CLI token as an int, falling back
// to the original string if it doesn't parse.
func parseValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}
