package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/csengstock/triedict/pkg/dictionary"
)

// PathResolver locates the executable directory and the dictionary file a
// -dict flag names, trying the known dictionary extensions (see
// dictionary.KnownExtensions) against the executable directory when the
// path as given doesn't resolve to an existing file.
type PathResolver struct {
	executablePath string
	executableDir  string
}

// NewPathResolver creates a path resolver anchored on the running binary's
// location.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
	}
	log.Debugf("path resolver initialized: exec=%s execDir=%s", execPath, pr.executableDir)
	return pr, nil
}

// GetExecutableDir returns the directory containing the executable.
func (pr *PathResolver) GetExecutableDir() string { return pr.executableDir }

// GetExecutablePath returns the full path to the executable.
func (pr *PathResolver) GetExecutablePath() string { return pr.executablePath }

// ResolveRelativePath resolves a path relative to the executable directory,
// leaving an already-absolute path untouched.
func (pr *PathResolver) ResolveRelativePath(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	return filepath.Join(pr.executableDir, relativePath)
}

// ResolveDictionaryPath resolves a -dict flag value the way
// ResolveRelativePath does, then, if the result doesn't name an existing
// file, probes the same basename under every extension
// dictionary.KnownExtensions lists (".bin", ".trie", ".txt", ".tsv") in the
// same directory. This lets a caller pass "patterns" and have it find
// "patterns.bin" or "patterns.txt" without guessing which format was saved.
func (pr *PathResolver) ResolveDictionaryPath(relativePath string) string {
	resolved := pr.ResolveRelativePath(relativePath)
	if _, err := os.Stat(resolved); err == nil {
		return resolved
	}

	ext := filepath.Ext(resolved)
	base := strings.TrimSuffix(resolved, ext)
	for _, candidateExt := range dictionary.KnownExtensions() {
		candidate := base + candidateExt
		if _, err := os.Stat(candidate); err == nil {
			log.Debugf("resolved dictionary path %s to %s", relativePath, candidate)
			return candidate
		}
	}
	return resolved
}
