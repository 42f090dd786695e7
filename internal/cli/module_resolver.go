package cli

import (
	"os"
	"path/filepath"

	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/utils"
)

// ModuleResolver maps package directories to import paths.
type ModuleResolver struct {
	custom  string
	modules map[string]*utils.Module // by package directory
}

// NewModuleResolver creates a resolver. A non-empty custom module path
// replaces the one declared in go.mod.
func NewModuleResolver(custom string) *ModuleResolver {
	return &ModuleResolver{custom: custom, modules: make(map[string]*utils.Module)}
}

// ResolveImportPath returns the import path of the package in dir.
func (r *ModuleResolver) ResolveImportPath(dir string) (string, error) {
	mod, err := r.module(dir)
	if err != nil {
		if r.custom == "" {
			return "", errors.Wrap(errors.ConfigurationErrorCode, "failed to resolve module path", err).
				WithContext("directory", dir).
				WithSuggestion("run inside a module or pass --module")
		}
		// Without go.mod the custom path names the working directory.
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return "", errors.WrapFileSystemError("getwd", dir, cwdErr)
		}
		mod = &utils.Module{Path: r.custom, Dir: cwd}
	}

	path, err := mod.ImportPath(dir)
	if err != nil {
		return "", errors.Wrap(errors.ConfigurationErrorCode, "package is outside its module", err).
			WithContext("directory", dir)
	}
	return path, nil
}

func (r *ModuleResolver) module(dir string) (*utils.Module, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if mod, ok := r.modules[abs]; ok {
		return r.override(mod), nil
	}

	mod, err := utils.FindModule(abs)
	if err != nil {
		return nil, err
	}
	r.modules[abs] = mod
	return r.override(mod), nil
}

func (r *ModuleResolver) override(mod *utils.Module) *utils.Module {
	if r.custom == "" {
		return mod
	}
	return &utils.Module{Path: r.custom, Dir: mod.Dir}
}
