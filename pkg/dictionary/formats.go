// Package dictionary provides file-format validation and load/save helpers
// around internal/trie's binary wire format, plus a plain-text bulk-load
// format for seeding a dictionary from a pattern/value list.
package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileFormat identifies the on-disk encoding of a dictionary file.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatBinary             // internal/trie's Serialize/Deserialize wire format
	FormatText               // newline-delimited "pattern\tvalue" bulk-load format
)

// FormatInfo describes a supported file format.
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatBinary: {
		Format:      FormatBinary,
		Description: "Binary Trie Dictionary",
		Extensions:  []string{".bin", ".trie"},
		MinSize:     11, // header alone
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Pattern List",
		Extensions:  []string{".txt", ".tsv"},
		MinSize:     1,
	},
}

// DetectFileFormat guesses a file's format from its extension and, for
// binary files, its magic header.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".bin", ".trie":
		if err := validateBinaryHeader(filename); err == nil {
			return FormatBinary, nil
		}
	case ".txt", ".tsv":
		return FormatText, nil
	}
	return FormatUnknown, fmt.Errorf("dictionary: unable to detect format for file %s", filename)
}

func validateBinaryHeader(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("dictionary: failed to open %s: %w", filename, err)
	}
	defer f.Close()

	header := make([]byte, 4)
	if _, err := f.Read(header); err != nil {
		return fmt.Errorf("dictionary: failed to read header from %s: %w", filename, err)
	}
	if string(header) != "TRIE" {
		return fmt.Errorf("dictionary: %s does not carry the expected TRIE magic", filename)
	}
	return nil
}

// ValidateFileFormat checks that a file is large enough and has the
// expected extension for the given format.
func ValidateFileFormat(filename string, expected FileFormat) error {
	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("dictionary: failed to stat %s: %w", filename, err)
	}
	formatInfo, ok := supportedFormats[expected]
	if !ok {
		return fmt.Errorf("dictionary: unknown format %v", expected)
	}
	if info.Size() < formatInfo.MinSize {
		return fmt.Errorf("dictionary: %s is too small (%d bytes) for format %s (minimum %d)",
			filename, info.Size(), formatInfo.Description, formatInfo.MinSize)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, validExt := range formatInfo.Extensions {
		if ext == validExt {
			return nil
		}
	}
	return fmt.Errorf("dictionary: %s has unexpected extension %s for format %s",
		filename, ext, formatInfo.Description)
}

// GetFormatInfo returns the metadata registered for format.
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, ok := supportedFormats[format]
	return info, ok
}

// KnownExtensions lists every file extension DetectFileFormat recognizes,
// across both the binary and text formats. Callers resolving a dictionary
// path supplied without an extension (or with the wrong one) use this to
// probe sibling files on disk.
func KnownExtensions() []string {
	var exts []string
	for _, info := range supportedFormats {
		exts = append(exts, info.Extensions...)
	}
	return exts
}

// CountTextLines returns the number of non-blank lines in a text bulk-load
// file, without parsing them, so a caller can size progress reporting
// before calling LoadText.
func CountTextLines(filename string) (int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			n++
		}
	}
	return n, scanner.Err()
}
