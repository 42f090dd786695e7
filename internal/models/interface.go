package models

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Interface describes one interface to implement, with its methods in
// declared order.
type Interface struct {
	Name        string
	PackageName string
	File        string
	Line        int
	Methods     []Method
	Imports     []Import // imports the parameter types refer to
	Options     PublisherOptions
}

// ClassName is the name of the generated struct.
func (i *Interface) ClassName() string {
	if i.Options.ClassName != "" {
		return i.Options.ClassName
	}
	return i.Name + "Publisher"
}

// PublisherOptions are the per-interface directive options.
type PublisherOptions struct {
	ClassName  string
	NoRegister bool
}

// Method is one method signature. Index is its position in the interface.
type Method struct {
	Name    string
	Params  []Param
	Results []string
	Index   int
}

// FieldName is the channel field that backs the method.
func (m Method) FieldName() string {
	return LowerFirst(m.Name) + "Publisher"
}

// ParamTypes returns the parameter types as they appear in reflect, with a
// variadic parameter reported as a slice.
func (m Method) ParamTypes() []string {
	types := make([]string, len(m.Params))
	for i, p := range m.Params {
		types[i] = p.Type
		if p.Variadic {
			types[i] = "[]" + p.Type
		}
	}
	return types
}

// Param is one method parameter.
type Param struct {
	Name     string
	Type     string // element type for variadic parameters
	Variadic bool
}

// Decl renders the parameter as it appears in a signature.
func (p Param) Decl() string {
	if p.Variadic {
		return p.Name + " ..." + p.Type
	}
	return p.Name + " " + p.Type
}

// Import is one import spec. Name is empty unless the import is renamed.
type Import struct {
	Name string
	Path string
}

// Spec renders the import as it appears inside an import block.
func (i Import) Spec() string {
	if i.Name != "" {
		return i.Name + " \"" + i.Path + "\""
	}
	return "\"" + i.Path + "\""
}

// LocalName is the name a file refers to the import by. Unnamed imports get
// the name goimports assumes from the path.
func (i Import) LocalName() string {
	if i.Name != "" {
		return i.Name
	}
	p := i.Path
	base := path.Base(p)
	if isMajorVersion(base) {
		if dir := path.Dir(p); dir != "." {
			base = path.Base(dir)
		}
	}
	base = strings.TrimPrefix(base, "go-")
	if cut := strings.IndexFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}); cut >= 0 {
		base = base[:cut]
	}
	return base
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// LowerFirst lower-cases the first rune of s.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
