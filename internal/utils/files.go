package utils

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GeneratedFileName is the default output file of the generator.
const GeneratedFileName = "heysync_publishers.go"

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"testdata":     true,
}

// SourceFilter reports whether a file name is a Go source file to scan.
// Tests and generated output are skipped.
func SourceFilter(output string) func(name string) bool {
	if output == "" {
		output = GeneratedFileName
	}
	return func(name string) bool {
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			name != output
	}
}

// GoFiles lists the files in dir accepted by filter, sorted by name.
func GoFiles(dir string, filter func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !filter(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ExpandPatterns resolves CLI directory arguments. A trailing "/..." selects
// the directory and every subdirectory holding Go files.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		clean := filepath.Clean(dir)
		if !seen[clean] {
			seen[clean] = true
			dirs = append(dirs, clean)
		}
	}

	for _, pattern := range patterns {
		root, recursive := strings.CutSuffix(filepath.ToSlash(pattern), "/...")
		if root == "..." {
			root, recursive = ".", true
		}
		if root == "" {
			root = "."
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, &os.PathError{Op: "scan", Path: root, Err: os.ErrInvalid}
		}

		if !recursive {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			name := d.Name()
			if path != root && (skipDirs[name] || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			if ok, _ := hasGoFiles(path); ok {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

func hasGoFiles(dir string) (bool, error) {
	files, err := GoFiles(dir, SourceFilter(""))
	return len(files) > 0, err
}
