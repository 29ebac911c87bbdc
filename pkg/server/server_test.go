package server

import (
	"bytes"
	"testing"

	"github.com/csengstock/triedict/pkg/worddict"
	"github.com/vmihailenco/msgpack/v5"
)

func runRequests(t *testing.T, dict *worddict.StringDict, reqs []Request) []Response {
	t.Helper()
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}

	var out bytes.Buffer
	srv := NewServer(dict, &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var responses []Response
	for {
		var resp Response
		if err := dec.Decode(&resp); err != nil {
			break
		}
		responses = append(responses, resp)
	}
	if len(responses) != len(reqs) {
		t.Fatalf("got %d responses; want %d", len(responses), len(reqs))
	}
	return responses
}

func TestServerAssignAndLookup(t *testing.T) {
	dict := worddict.New()
	responses := runRequests(t, dict, []Request{
		{ID: "1", Op: "assign", Pattern: "key1", Value: "v1"},
		{ID: "2", Op: "lookup", Pattern: "key1"},
		{ID: "3", Op: "lookup", Pattern: "missing"},
	})

	if responses[0].Status != "ok" {
		t.Fatalf("assign status = %s", responses[0].Status)
	}
	if !responses[1].Found || responses[1].Value != "v1" {
		t.Fatalf("lookup(key1) = %+v", responses[1])
	}
	if responses[2].Found {
		t.Fatalf("lookup(missing) should not be found: %+v", responses[2])
	}
}

func TestServerAssignRejectsEmptyPattern(t *testing.T) {
	dict := worddict.New()
	responses := runRequests(t, dict, []Request{
		{ID: "1", Op: "assign", Pattern: ""},
	})
	if responses[0].Status != "error" {
		t.Fatalf("status = %s; want error", responses[0].Status)
	}
}

func TestServerPrefixRespectsLimit(t *testing.T) {
	dict := worddict.New()
	for _, w := range []string{"cat", "car", "card"} {
		if err := dict.Set(w, nil); err != nil {
			t.Fatalf("Set(%s): %v", w, err)
		}
	}

	responses := runRequests(t, dict, []Request{
		{ID: "1", Op: "prefix", Prefix: "ca", Limit: 2},
	})
	if responses[0].Count != 2 || len(responses[0].Completions) != 2 {
		t.Fatalf("prefix response = %+v; want 2 completions", responses[0])
	}
}

func TestServerMatchAndBuild(t *testing.T) {
	dict := worddict.New()
	if err := dict.Set("key1", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	responses := runRequests(t, dict, []Request{
		{ID: "1", Op: "build"},
		{ID: "2", Op: "match", Text: "this is key1 in text"},
	})
	if responses[0].Status != "ok" {
		t.Fatalf("build status = %s", responses[0].Status)
	}
	if responses[1].Count != 1 || responses[1].Hits[0].Key != "key1" {
		t.Fatalf("match response = %+v", responses[1])
	}
}

func TestServerUnknownOp(t *testing.T) {
	dict := worddict.New()
	responses := runRequests(t, dict, []Request{
		{ID: "1", Op: "frobnicate"},
	})
	if responses[0].Status != "error" {
		t.Fatalf("status = %s; want error", responses[0].Status)
	}
}

func TestServerStats(t *testing.T) {
	dict := worddict.New()
	if err := dict.Set("key1", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	dict.PrefixEnumerate("key")

	responses := runRequests(t, dict, []Request{
		{ID: "1", Op: "stats"},
	})
	if responses[0].Stats["entries"] != 1 {
		t.Fatalf("stats = %+v; want entries=1", responses[0].Stats)
	}
}
