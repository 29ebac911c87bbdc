package server

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/csengstock/triedict/internal/logger"
	"github.com/csengstock/triedict/pkg/worddict"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC requests against a worddict.StringDict.
type Server struct {
	dict    *worddict.StringDict
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	log     *log.Logger
}

// NewServer creates a server reading requests from r and writing responses
// to w, operating on dict.
func NewServer(dict *worddict.StringDict, r io.Reader, w io.Writer) *Server {
	return &Server{
		dict:    dict,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		log:     logger.NewWithConfig("server", log.GetLevel(), false, false, log.TextFormatter),
	}
}

// Start reads requests until EOF or a decode error, dispatching each to the
// matching handler and writing back exactly one response per request.
func (s *Server) Start() error {
	s.log.Debug("starting server")
	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("server: decode request: %w", err)
		}
		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	switch req.Op {
	case "assign":
		s.handleAssign(req)
	case "lookup":
		s.handleLookup(req)
	case "prefix":
		s.handlePrefix(req)
	case "match":
		s.handleMatch(req)
	case "build":
		s.handleBuild(req)
	case "stats":
		s.handleStats(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op %q", req.Op))
	}
}

func (s *Server) handleAssign(req Request) {
	if req.Pattern == "" {
		s.sendError(req.ID, "missing pattern")
		return
	}
	if err := s.dict.Set(req.Pattern, req.Value); err != nil {
		s.log.Errorf("assign %q: %v", req.Pattern, err)
		s.sendError(req.ID, err.Error())
		return
	}
	s.send(Response{ID: req.ID, Status: "ok"})
}

func (s *Server) handleLookup(req Request) {
	value, found := s.dict.Get(req.Pattern)
	s.send(Response{ID: req.ID, Status: "ok", Found: found, Value: value})
}

func (s *Server) handlePrefix(req Request) {
	start := time.Now()
	completions := s.dict.PrefixEnumerate(req.Prefix)
	if req.Limit > 0 && len(completions) > req.Limit {
		completions = completions[:req.Limit]
	}
	entries := make([]CompletionEntry, len(completions))
	for i, c := range completions {
		entries[i] = CompletionEntry{Key: c.Key, Value: c.Value}
	}
	s.send(Response{
		ID:          req.ID,
		Status:      "ok",
		Completions: entries,
		Count:       len(entries),
		TimeTaken:   time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleMatch(req Request) {
	start := time.Now()
	occurrences, err := s.dict.Match(req.Text)
	if err != nil {
		s.log.Errorf("match: %v", err)
		s.sendError(req.ID, err.Error())
		return
	}
	hits := make([]HitEntry, len(occurrences))
	for i, o := range occurrences {
		hits[i] = HitEntry{End: o.End, Key: o.Key, Value: o.Value}
	}
	s.send(Response{
		ID:        req.ID,
		Status:    "ok",
		Hits:      hits,
		Count:     len(hits),
		TimeTaken: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleBuild(req Request) {
	s.dict.Build()
	s.send(Response{ID: req.ID, Status: "ok"})
}

func (s *Server) handleStats(req Request) {
	s.send(Response{ID: req.ID, Status: "ok", Stats: s.dict.HotStats()})
}

func (s *Server) send(resp Response) {
	if err := s.encoder.Encode(resp); err != nil {
		s.log.Errorf("encode response: %v", err)
	}
}

func (s *Server) sendError(id, message string) {
	s.send(Response{ID: id, Status: "error", Error: message})
}
