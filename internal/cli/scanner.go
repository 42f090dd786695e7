package cli

import (
	"path/filepath"
	"strings"

	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/utils"
)

// DirectoryScanner resolves CLI directory arguments to package directories.
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories returns the absolute package directories selected by
// patterns, in the order given. Go-style "./..." patterns are expanded.
func (s *DirectoryScanner) ScanDirectories(patterns []string) ([]string, error) {
	dirs, err := utils.ExpandPatterns(patterns)
	if err != nil {
		return nil, errors.WrapFileSystemError("scan", strings.Join(patterns, " "), err)
	}

	abs := make([]string, len(dirs))
	for i, dir := range dirs {
		abs[i], err = filepath.Abs(dir)
		if err != nil {
			return nil, errors.WrapFileSystemError("resolve", dir, err)
		}
	}
	return abs, nil
}

func isRecursive(pattern string) bool {
	return pattern == "..." || strings.HasSuffix(filepath.ToSlash(pattern), "/...")
}
