// Package descriptor extracts publisher interfaces from Go source, keeping
// methods in the order they are declared.
package descriptor

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strconv"

	"github.com/fotap/heysync/internal/annotations"
	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/models"
	"github.com/fotap/heysync/internal/utils"
)

// Parser reads packages and describes the interfaces selected for
// generation. Parsed files are cached until they change on disk.
type Parser struct {
	fset       *token.FileSet
	directives *annotations.Parser
	cache      *utils.FileCache[*fileUnit]
	output     string
}

// NewParser creates a parser that skips output (the generated file name,
// utils.GeneratedFileName when empty) while scanning directories.
func NewParser(output string) *Parser {
	return &Parser{
		fset:       token.NewFileSet(),
		directives: annotations.NewParser(),
		cache:      utils.NewFileCache[*fileUnit](),
		output:     output,
	}
}

type fileUnit struct {
	path    string
	file    *ast.File
	imports []models.Import
}

// ParseDirectory describes the interfaces of the package in dir. With no
// names, interfaces carrying a //heysync::publisher directive are selected;
// otherwise exactly the named interfaces are.
func (p *Parser) ParseDirectory(dir string, names ...string) (*models.Package, error) {
	files, err := utils.GoFiles(dir, utils.SourceFilter(p.output))
	if err != nil {
		return nil, errors.WrapFileSystemError("read", dir, err)
	}
	if len(files) == 0 {
		return nil, errors.Newf(errors.FileSystemErrorCode, "no Go files in %s", dir)
	}

	units := make([]*fileUnit, 0, len(files))
	for _, path := range files {
		u, err := p.cache.GetOrLoad(path, p.loadFile)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return p.describe(dir, units, names)
}

// ParseSource describes the interfaces of a single in-memory file.
func (p *Parser) ParseSource(filename string, src []byte, names ...string) (*models.Package, error) {
	u, err := p.parseFile(filename, src)
	if err != nil {
		return nil, err
	}
	return p.describe(".", []*fileUnit{u}, names)
}

func (p *Parser) loadFile(path string) (*fileUnit, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read", path, err)
	}
	return p.parseFile(path, src)
}

func (p *Parser) parseFile(path string, src []byte) (*fileUnit, error) {
	f, err := parser.ParseFile(p.fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		perr := errors.WrapParseError(path, err)
		perr.WithLocation(errors.SourceLocation{File: path})
		return nil, perr
	}

	u := &fileUnit{path: path, file: f}
	for _, spec := range f.Imports {
		ipath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := models.Import{Path: ipath}
		if spec.Name != nil {
			if spec.Name.Name == "_" {
				continue
			}
			imp.Name = spec.Name.Name
		}
		u.imports = append(u.imports, imp)
	}
	return u, nil
}

// lookup finds the import of u that name refers to in this file.
func (u *fileUnit) lookup(name string) (models.Import, bool) {
	for _, imp := range u.imports {
		if imp.Name != "." && imp.LocalName() == name {
			return imp, true
		}
	}
	return models.Import{}, false
}

func (p *Parser) location(pos token.Pos) errors.SourceLocation {
	position := p.fset.Position(pos)
	return errors.SourceLocation{File: position.Filename, Line: position.Line, Column: position.Column}
}

type typeDecl struct {
	spec *ast.TypeSpec
	docs []*ast.CommentGroup
	unit *fileUnit
}

func (td *typeDecl) name() string { return td.spec.Name.Name }

func (td *typeDecl) iface() (*ast.InterfaceType, bool) {
	it, ok := td.spec.Type.(*ast.InterfaceType)
	return it, ok
}

func (p *Parser) describe(dir string, units []*fileUnit, names []string) (*models.Package, error) {
	pkg := &models.Package{Dir: dir}

	decls := make(map[string]*typeDecl)
	values := make(map[string]token.Pos)
	var order []*typeDecl
	for _, u := range units {
		if pkg.Name == "" {
			pkg.Name = u.file.Name.Name
		} else if pkg.Name != u.file.Name.Name {
			return nil, errors.Newf(errors.ValidationErrorCode,
				"multiple packages in %s: %s and %s", dir, pkg.Name, u.file.Name.Name).
				WithLocation(p.location(u.file.Name.Pos()))
		}

		for _, decl := range u.file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				if fd, ok := decl.(*ast.FuncDecl); ok && fd.Recv == nil {
					values[fd.Name.Name] = fd.Name.Pos()
				}
				continue
			}
			if gd.Tok != token.TYPE {
				for _, spec := range gd.Specs {
					if vs, ok := spec.(*ast.ValueSpec); ok {
						for _, id := range vs.Names {
							values[id.Name] = id.Pos()
						}
					}
				}
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				td := &typeDecl{spec: ts, unit: u, docs: []*ast.CommentGroup{ts.Doc}}
				if !gd.Lparen.IsValid() {
					td.docs = append(td.docs, gd.Doc)
				}
				decls[ts.Name.Name] = td
				order = append(order, td)
			}
		}
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var errs errors.MultipleErrors
	found := make(map[string]bool)
	for _, td := range order {
		directive, err := p.directive(td)
		if err != nil {
			errs.Add(asHeysyncError(err))
			continue
		}

		selected := directive != nil
		if len(names) > 0 {
			selected = wanted[td.name()]
		}
		if !selected {
			continue
		}
		found[td.name()] = true

		var opts models.PublisherOptions
		if directive != nil {
			opts = annotations.PublisherOptions(directive)
		}

		iface, err := p.describeInterface(pkg.Name, td, decls, opts)
		if err != nil {
			if me, ok := err.(*errors.MultipleErrors); ok {
				for _, e := range me.Errors {
					errs.Add(e)
				}
			} else {
				errs.Add(asHeysyncError(err))
			}
			continue
		}
		if err := p.checkNames(iface, decls, values); err != nil {
			errs.Add(err)
			continue
		}
		pkg.Interfaces = append(pkg.Interfaces, *iface)
	}

	for _, n := range names {
		if !found[n] {
			errs.Add(errors.NewInterfaceNotFoundError(pkg.Name, n))
		}
	}

	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}
	return pkg, nil
}

// checkNames rejects a generated struct or constructor whose name is
// already declared in the package.
func (p *Parser) checkNames(iface *models.Interface, decls map[string]*typeDecl, values map[string]token.Pos) errors.HeysyncError {
	class := iface.ClassName()
	for _, name := range []string{class, "New" + class} {
		pos, ok := values[name]
		if td, isType := decls[name]; isType {
			pos, ok = td.spec.Name.Pos(), true
		}
		if !ok {
			continue
		}
		return errors.Newf(errors.ValidationErrorCode,
			"%s generated for %s is already declared at %s", name, iface.Name, p.location(pos)).
			WithLocation(errors.SourceLocation{File: iface.File, Line: iface.Line}).
			WithSuggestion("pick another name with -Name=")
	}
	return nil
}

func (p *Parser) directive(td *typeDecl) (*annotations.Directive, error) {
	for _, group := range td.docs {
		if group == nil {
			continue
		}
		for _, c := range group.List {
			if annotations.IsDirective(c.Text) {
				return p.directives.Parse(c.Text, p.location(c.Pos()))
			}
		}
	}
	return nil, nil
}

func asHeysyncError(err error) errors.HeysyncError {
	if he, ok := err.(errors.HeysyncError); ok {
		return he
	}
	return errors.Wrap(errors.UnknownErrorCode, "unexpected error", err)
}
