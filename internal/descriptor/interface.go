package descriptor

import (
	"go/ast"
	"go/types"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/models"
)

// Receiver is the receiver name used by generated methods. Parameters with
// this name are renamed.
const Receiver = "p"

var reservedParams = map[string]bool{
	Receiver:  true,
	"heysync": true,
	"_":       true,
	"any":     true,
}

type methodSet struct {
	iface   *models.Interface
	byName  map[string]bool
	byField map[string]string
	errs    *errors.MultipleErrors
	imports map[string]models.Import // by local name
	decls   map[string]*typeDecl
}

func (p *Parser) describeInterface(pkgName string, td *typeDecl, decls map[string]*typeDecl, opts models.PublisherOptions) (*models.Interface, error) {
	loc := p.location(td.spec.Pos())
	iface := &models.Interface{
		Name:        td.name(),
		PackageName: pkgName,
		File:        loc.File,
		Line:        loc.Line,
		Options:     opts,
	}

	it, ok := td.iface()
	if !ok {
		return nil, errors.NewUnsupportedTypeError(iface.Name, "not an interface type").WithLocation(loc)
	}
	if td.spec.TypeParams != nil && len(td.spec.TypeParams.List) > 0 {
		return nil, errors.NewUnsupportedTypeError(iface.Name, "generic interfaces are not supported").
			WithLocation(loc).
			WithSuggestion("declare a non-generic interface for each instantiation you need")
	}

	var errs errors.MultipleErrors
	ms := &methodSet{
		iface:   iface,
		byName:  make(map[string]bool),
		byField: make(map[string]string),
		errs:    &errs,
		imports: make(map[string]models.Import),
		decls:   decls,
	}
	p.collect(ms, td.unit, it, map[string]bool{iface.Name: true})
	for _, m := range iface.Methods {
		if owner, ok := ms.byField[m.Name]; ok {
			errs.Add(errors.NewDuplicateMethodError(iface.Name, m.Name, "the channel field of "+owner).WithLocation(loc))
		}
	}

	if err := errs.ErrOrNil(); err != nil {
		return nil, err
	}
	return iface, nil
}

// require records the imports of u that the parameter types of ft refer to.
// A qualifier no import of u provides is reported against the method.
func (ms *methodSet) require(u *fileUnit, ft *ast.FuncType, method string, loc errors.SourceLocation) {
	qualified := make(map[string]bool)
	bare := make(map[string]bool)
	if ft.Params != nil {
		for _, field := range ft.Params.List {
			references(field.Type, qualified, bare)
		}
	}

	for _, imp := range u.imports {
		if imp.Name != "." && qualified[imp.LocalName()] {
			delete(qualified, imp.LocalName())
			ms.addImport(imp, loc)
		}
	}
	for _, q := range sortedKeys(qualified) {
		ms.errs.Add(errors.NewUnsupportedTypeError(ms.iface.Name,
			"method "+method+" refers to package "+q+", which no import of "+filepath.Base(u.path)+" provides").
			WithLocation(loc).
			WithSuggestion("name the import explicitly: "+q+" \"path/to/"+q+"\""))
	}

	// Unqualified names that are neither predeclared nor declared here come
	// from a dot import.
	for _, name := range sortedKeys(bare) {
		if types.Universe.Lookup(name) != nil || ms.decls[name] != nil {
			continue
		}
		for _, imp := range u.imports {
			if imp.Name == "." {
				ms.addImport(imp, loc)
			}
		}
		break
	}
}

func (ms *methodSet) addImport(imp models.Import, loc errors.SourceLocation) {
	key := imp.LocalName()
	if imp.Name == "." {
		key = ". " + imp.Path
	}
	prev, ok := ms.imports[key]
	switch {
	case !ok:
		ms.imports[key] = imp
		ms.iface.Imports = append(ms.iface.Imports, imp)
	case prev.Path != imp.Path:
		ms.errs.Add(errors.NewUnsupportedTypeError(ms.iface.Name,
			"package name "+key+" refers to both "+prev.Path+" and "+imp.Path).
			WithLocation(loc).
			WithSuggestion("rename one of the imports"))
	}
}

// references records the package qualifiers and the unqualified names that
// a type expression uses.
func references(expr ast.Expr, qualified, bare map[string]bool) {
	ast.Inspect(expr, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.SelectorExpr:
			if id, ok := n.X.(*ast.Ident); ok {
				qualified[id.Name] = true
				return false
			}
		case *ast.Field:
			references(n.Type, qualified, bare)
			return false
		case *ast.Ident:
			bare[n.Name] = true
		}
		return true
	})
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// collect appends the methods of it in declared order, expanding embedded
// interfaces of the same package in place.
func (p *Parser) collect(ms *methodSet, u *fileUnit, it *ast.InterfaceType, stack map[string]bool) {
	if it.Methods == nil {
		return
	}
	ifaceName := ms.iface.Name

	for _, field := range it.Methods.List {
		loc := p.location(field.Pos())

		if len(field.Names) > 0 {
			ft, ok := field.Type.(*ast.FuncType)
			if !ok {
				continue
			}
			for _, id := range field.Names {
				m := newMethod(id.Name, ft, len(ms.iface.Methods))
				if len(m.Results) > 0 {
					ms.errs.Add(errors.NewUnsupportedResultError(ifaceName, m.Name, m.Results).WithLocation(loc))
					continue
				}
				if ms.byName[m.Name] {
					ms.errs.Add(errors.NewDuplicateMethodError(ifaceName, m.Name, m.Name).WithLocation(loc))
					continue
				}
				if other, ok := ms.byField[m.FieldName()]; ok {
					ms.errs.Add(errors.NewDuplicateMethodError(ifaceName, m.Name, other).WithLocation(loc))
					continue
				}
				ms.require(u, ft, m.Name, loc)
				ms.byName[m.Name] = true
				ms.byField[m.FieldName()] = m.Name
				ms.iface.Methods = append(ms.iface.Methods, m)
			}
			continue
		}

		switch t := field.Type.(type) {
		case *ast.Ident:
			emb, ok := ms.decls[t.Name]
			if !ok {
				ms.errs.Add(errors.NewUnsupportedTypeError(ifaceName, "embedded "+t.Name+" is not an interface declared in this package").WithLocation(loc))
				continue
			}
			embIt, ok := emb.iface()
			if !ok {
				ms.errs.Add(errors.NewUnsupportedTypeError(ifaceName, "embedded "+t.Name+" is not an interface").WithLocation(loc))
				continue
			}
			if emb.spec.TypeParams != nil && len(emb.spec.TypeParams.List) > 0 {
				ms.errs.Add(errors.NewUnsupportedTypeError(ifaceName, "embedded generic interface "+t.Name).WithLocation(loc))
				continue
			}
			if stack[t.Name] {
				ms.errs.Add(errors.NewUnsupportedTypeError(ifaceName, "interface "+t.Name+" embeds itself").WithLocation(loc))
				continue
			}
			stack[t.Name] = true
			p.collect(ms, emb.unit, embIt, stack)
			delete(stack, t.Name)
		case *ast.SelectorExpr:
			ms.errs.Add(errors.NewUnsupportedTypeError(ifaceName, "embedded interface "+types.ExprString(t)+" from another package").
				WithLocation(loc).
				WithSuggestion("redeclare the methods you want published in this package"))
		default:
			ms.errs.Add(errors.NewUnsupportedTypeError(ifaceName, "type constraint "+types.ExprString(field.Type)+" cannot be implemented").WithLocation(loc))
		}
	}
}

func newMethod(name string, ft *ast.FuncType, index int) models.Method {
	m := models.Method{Name: name, Index: index}

	if ft.Results != nil {
		for _, r := range ft.Results.List {
			typ := types.ExprString(r.Type)
			for i := 0; i < max(1, len(r.Names)); i++ {
				m.Results = append(m.Results, typ)
			}
		}
	}

	if ft.Params == nil {
		return m
	}

	type raw struct {
		name     string
		typ      string
		variadic bool
	}
	var params []raw
	for _, field := range ft.Params.List {
		expr := field.Type
		variadic := false
		if el, ok := expr.(*ast.Ellipsis); ok {
			expr, variadic = el.Elt, true
		}
		typ := types.ExprString(expr)
		if len(field.Names) == 0 {
			params = append(params, raw{typ: typ, variadic: variadic})
			continue
		}
		for _, id := range field.Names {
			params = append(params, raw{name: id.Name, typ: typ, variadic: variadic})
		}
	}

	// Keep every usable declared name first so generated names never steal one.
	used := make(map[string]bool, len(params))
	for _, r := range params {
		if r.name != "" && !reservedParams[r.name] {
			used[r.name] = true
		}
	}

	seen := make(map[string]bool, len(params))
	for i, r := range params {
		name := r.name
		if name == "" || reservedParams[name] || seen[name] {
			name = freshName(i, used)
		}
		seen[name] = true
		m.Params = append(m.Params, models.Param{
			Name:     name,
			Type:     r.typ,
			Variadic: r.variadic,
		})
	}
	return m
}

func freshName(i int, used map[string]bool) string {
	name := "arg" + strconv.Itoa(i)
	for used[name] {
		name += "_"
	}
	used[name] = true
	return name
}
