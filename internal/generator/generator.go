// Package generator assembles the publisher classes of a package into one
// formatted Go file.
package generator

import (
	"bytes"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/models"
	"github.com/fotap/heysync/internal/publisher"
	"github.com/fotap/heysync/internal/synth"
	"github.com/fotap/heysync/internal/templates"
	"github.com/fotap/heysync/internal/utils"
)

// Options controls one GeneratePackage call.
type Options struct {
	// OutputName is the file name inside the package directory.
	OutputName string
	// ImportPath qualifies registered class names. pkg.ImportPath is used
	// when empty.
	ImportPath string
}

func (o Options) outputName() string {
	if o.OutputName == "" {
		return utils.GeneratedFileName
	}
	return o.OutputName
}

// Generator implements CodeGenerator.
type Generator struct {
	templates *templates.TemplateRegistry
}

var _ CodeGenerator = (*Generator)(nil)

func NewGenerator() *Generator {
	return &Generator{templates: templates.NewTemplateRegistry()}
}

// GeneratePackage synthesizes every interface of pkg, in source order, into
// a single file.
func (g *Generator) GeneratePackage(pkg *models.Package, opts Options) (*models.GeneratedFile, error) {
	path := filepath.Join(pkg.Dir, opts.outputName())
	if len(pkg.Interfaces) == 0 {
		return nil, errors.WrapGenerateError("collect", path,
			errors.Newf(errors.GenerationErrorCode, "package %s has no publisher interfaces", pkg.Name))
	}

	qualifier := opts.ImportPath
	if qualifier == "" {
		qualifier = pkg.ImportPath
	}
	strategy := publisher.New(qualifier, g.templates)

	imports := templates.NewImportManager()
	owners := make(map[string]string, len(pkg.Interfaces))
	paths := map[string]string{"heysync": publisher.RuntimeImport}
	classes := make([]string, 0, len(pkg.Interfaces))
	var body strings.Builder

	for i := range pkg.Interfaces {
		iface := &pkg.Interfaces[i]
		name := iface.ClassName()
		if owner, ok := owners[name]; ok {
			return nil, errors.Newf(errors.ValidationErrorCode,
				"class name %s is generated for both %s and %s", name, owner, iface.Name).
				WithLocation(errors.SourceLocation{File: iface.File, Line: iface.Line}).
				WithSuggestion("pick another name with -Name=")
		}
		owners[name] = iface.Name

		class, err := synth.New(iface, name, strategy).Generate()
		if err != nil {
			return nil, err
		}
		classes = append(classes, class.Name)
		imports.Add(class.Imports...)
		for _, imp := range iface.Imports {
			if imp.Name == "." {
				continue
			}
			name := imp.LocalName()
			if prev, ok := paths[name]; ok && prev != imp.Path {
				return nil, errors.Newf(errors.ValidationErrorCode,
					"package name %s refers to both %s and %s", name, prev, imp.Path).
					WithLocation(errors.SourceLocation{File: iface.File, Line: iface.Line}).
					WithSuggestion("rename the import in one of the files")
			}
			paths[name] = imp.Path
		}
		imports.Add(iface.Imports...)
		body.WriteString(class.Source)
		body.WriteString("\n")
	}

	header, err := g.templates.Execute(templates.FileHeader, map[string]string{
		"Package": pkg.Name,
		"Imports": imports.GenerateImports(),
	})
	if err != nil {
		return nil, err
	}

	content, err := finish([]byte(header + body.String()))
	if err != nil {
		return nil, errors.WrapGenerateError("format", path, err)
	}

	return &models.GeneratedFile{
		PackageName: pkg.Name,
		Path:        path,
		Content:     content,
		Classes:     classes,
	}, nil
}

// finish drops the runtime import when nothing references it, then formats.
// Interface imports are already limited to the ones parameter types use.
func finish(src []byte) ([]byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	if err != nil {
		return nil, err
	}
	if !astutil.UsesImport(f, publisher.RuntimeImport) {
		astutil.DeleteImport(fset, f, publisher.RuntimeImport)
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, f); err != nil {
		return nil, err
	}
	return utils.FormatGoCode(buf.Bytes())
}

// Write stores file on disk.
func Write(file *models.GeneratedFile) error {
	if err := os.WriteFile(file.Path, file.Content, 0o644); err != nil {
		return errors.WrapFileSystemError("write", file.Path, err)
	}
	return nil
}
