package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/fotap/heysync/internal/errors"
)

// GeneratedHeader marks files written by heysync. Only such files are
// removed by the cleaner.
const GeneratedHeader = "// Code generated by heysync. DO NOT EDIT."

// Cleaner removes generated publisher files.
type Cleaner struct {
	scanner *DirectoryScanner
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		scanner: NewDirectoryScanner(),
	}
}

// CleanGeneratedFiles removes the file named output from every package
// directory matched by patterns and returns the removed paths. Files that
// do not start with GeneratedHeader are left alone.
func (c *Cleaner) CleanGeneratedFiles(patterns []string, output string) ([]string, error) {
	dirs, err := c.scanner.ScanDirectories(patterns)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, dir := range dirs {
		path := filepath.Join(dir, output)
		ok, err := isGenerated(path)
		if err != nil {
			return removed, errors.WrapFileSystemError("read", path, err)
		}
		if !ok {
			continue
		}
		if err := os.Remove(path); err != nil {
			return removed, errors.WrapFileSystemError("remove", path, err)
		}
		removed = append(removed, path)
	}
	return removed, nil
}

func isGenerated(path string) (bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	if !s.Scan() {
		return false, s.Err()
	}
	return strings.TrimSpace(s.Text()) == GeneratedHeader, nil
}
