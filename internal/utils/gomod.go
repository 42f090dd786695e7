package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// Module is a parsed go.mod and the directory holding it.
type Module struct {
	Path string
	Dir  string
}

// FindModule walks up from dir to the nearest go.mod.
func FindModule(dir string) (*Module, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	for {
		goMod := filepath.Join(current, "go.mod")
		if content, err := os.ReadFile(goMod); err == nil {
			path, err := ParseModulePath(goMod, content)
			if err != nil {
				return nil, err
			}
			return &Module{Path: path, Dir: current}, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, fmt.Errorf("go.mod not found above %s", dir)
		}
		current = parent
	}
}

// ParseModulePath extracts the module path from go.mod content.
func ParseModulePath(name string, content []byte) (string, error) {
	f, err := modfile.ParseLax(name, content, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if f.Module == nil || f.Module.Mod.Path == "" {
		return "", fmt.Errorf("no module declaration in %s", name)
	}
	return f.Module.Mod.Path, nil
}

// ImportPath returns the import path of the package in dir.
func (m *Module) ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(m.Dir, abs)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return m.Path, nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside module %s", dir, m.Path)
	}
	return m.Path + "/" + filepath.ToSlash(rel), nil
}
