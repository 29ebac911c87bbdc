package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveRelativePathLeavesAbsoluteUntouched(t *testing.T) {
	pr := &PathResolver{executableDir: "/opt/triedict"}
	if got := pr.ResolveRelativePath("/etc/dict.bin"); got != "/etc/dict.bin" {
		t.Fatalf("ResolveRelativePath(absolute) = %s", got)
	}
}

func TestResolveRelativePathJoinsExecutableDir(t *testing.T) {
	pr := &PathResolver{executableDir: "/opt/triedict"}
	want := filepath.Join("/opt/triedict", "dict.bin")
	if got := pr.ResolveRelativePath("dict.bin"); got != want {
		t.Fatalf("ResolveRelativePath = %s; want %s", got, want)
	}
}

func TestResolveDictionaryPathProbesKnownExtensions(t *testing.T) {
	dir := t.TempDir()
	binPath := filepath.Join(dir, "patterns.bin")
	if err := os.WriteFile(binPath, []byte("TRIE"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	pr := &PathResolver{executableDir: dir}
	if got := pr.ResolveDictionaryPath("patterns"); got != binPath {
		t.Fatalf("ResolveDictionaryPath(patterns) = %s; want %s", got, binPath)
	}
}

func TestResolveDictionaryPathReturnsGivenPathWhenNothingMatches(t *testing.T) {
	dir := t.TempDir()
	pr := &PathResolver{executableDir: dir}
	want := filepath.Join(dir, "missing.bin")
	if got := pr.ResolveDictionaryPath("missing.bin"); got != want {
		t.Fatalf("ResolveDictionaryPath(missing.bin) = %s; want %s", got, want)
	}
}
