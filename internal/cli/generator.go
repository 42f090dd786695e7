package cli

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fotap/heysync/internal/descriptor"
	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/generator"
	"github.com/fotap/heysync/internal/models"
	"github.com/fotap/heysync/internal/utils"
)

// Generator coordinates one CLI run: scan, describe, generate, write.
type Generator struct {
	scanner       *DirectoryScanner
	cleaner       *Cleaner
	codeGenerator generator.CodeGenerator
	diagnostics   *utils.DiagnosticSystem
	reporter      *DiagnosticReporter
	summary       GenerationSummary
}

// NewGenerator creates a CLI generator printing through diagnostics.
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return &Generator{
		scanner:       NewDirectoryScanner(),
		cleaner:       NewCleaner(),
		codeGenerator: generator.NewGenerator(),
		diagnostics:   diagnostics,
		reporter:      NewDiagnosticReporter(diagnostics),
	}
}

// Reporter returns the reporter used for errors of this generator.
func (g *Generator) Reporter() *DiagnosticReporter { return g.reporter }

// GetSummary returns the summary of the last run.
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes cfg. Every package is described before anything is written,
// so a failing package leaves the tree untouched.
func (g *Generator) Run(cfg Config) error {
	start := time.Now()
	g.summary = GenerationSummary{DryRun: cfg.DryRun}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Clean {
		removed, err := g.cleaner.CleanGeneratedFiles(cfg.Directories, cfg.output())
		g.summary.RemovedFiles = removed
		return err
	}

	g.diagnostics.Header("generating publishers")
	dirs, err := g.scanner.ScanDirectories(cfg.Directories)
	if err != nil {
		return err
	}
	g.diagnostics.Debug("Scanning %d directories: %v", len(dirs), dirs)

	resolver := NewModuleResolver(cfg.Module)
	parser := descriptor.NewParser(cfg.output())

	var files []*models.GeneratedFile
	var errs errors.MultipleErrors
	for _, dir := range dirs {
		g.summary.PackagesScanned++
		file, err := g.generate(parser, resolver, dir, cfg)
		if err != nil {
			collect(&errs, err)
			continue
		}
		if file == nil {
			g.summary.PackagesSkipped++
			continue
		}
		files = append(files, file)
		g.summary.ClassesGenerated += len(file.Classes)
		g.diagnostics.PhaseItem("%s: %v", relative(dir), file.Classes)
	}
	if err := errs.ErrOrNil(); err != nil {
		return err
	}

	for _, file := range files {
		if cfg.DryRun {
			g.diagnostics.Verbose("Would write %s", file.Path)
			continue
		}
		g.diagnostics.Writing(relative(file.Path))
		if err := generator.Write(file); err != nil {
			return err
		}
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.Path)
	}

	g.diagnostics.Verbose("Finished in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// generate returns nil, nil for a package without publisher interfaces.
func (g *Generator) generate(parser *descriptor.Parser, resolver *ModuleResolver, dir string, cfg Config) (*models.GeneratedFile, error) {
	pkg, err := parser.ParseDirectory(dir, cfg.Types...)
	if err != nil {
		return nil, err
	}
	if len(pkg.Interfaces) == 0 {
		g.diagnostics.Debug("Skipping %s (no publisher interfaces)", dir)
		return nil, nil
	}

	importPath, err := resolver.ResolveImportPath(dir)
	if err != nil {
		return nil, err
	}
	pkg.ImportPath = importPath
	g.diagnostics.Debug("Package %s is %s", pkg.Name, importPath)

	return g.codeGenerator.GeneratePackage(pkg, generator.Options{
		OutputName: cfg.output(),
		ImportPath: importPath,
	})
}

func collect(errs *errors.MultipleErrors, err error) {
	switch e := err.(type) {
	case *errors.MultipleErrors:
		for _, inner := range e.Errors {
			errs.Add(inner)
		}
	case errors.HeysyncError:
		errs.Add(e)
	default:
		errs.Add(errors.Wrap(errors.UnknownErrorCode, "unexpected error", err))
	}
}

// relative shortens path for display when it is under the working directory.
func relative(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(cwd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
