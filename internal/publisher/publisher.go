// Package publisher is the synth.Strategy that turns every method into a
// single Publish call on a channel of its own.
package publisher

import (
	"go/token"
	"strings"

	"github.com/fotap/heysync/internal/descriptor"
	"github.com/fotap/heysync/internal/models"
	"github.com/fotap/heysync/internal/synth"
	"github.com/fotap/heysync/internal/templates"
)

// RuntimeImport is the package generated code depends on.
const RuntimeImport = "github.com/fotap/heysync/pkg/heysync"

// Strategy emits publisher classes.
type Strategy struct {
	// Qualifier prefixes class names in the registration block, normally
	// the import path of the generated package.
	Qualifier string

	templates *templates.TemplateRegistry
}

var (
	_ synth.Strategy  = (*Strategy)(nil)
	_ synth.Finalizer = (*Strategy)(nil)
)

// New creates a Strategy. A nil registry gets the default templates.
func New(qualifier string, tr *templates.TemplateRegistry) *Strategy {
	if tr == nil {
		tr = templates.NewTemplateRegistry()
	}
	return &Strategy{Qualifier: qualifier, templates: tr}
}

type methodData struct {
	Name    string
	Field   string
	Channel string
	Types   []string
}

type classData struct {
	Class     string
	Interface string
	Qualified string
	Methods   []methodData
}

func (s *Strategy) data(b *synth.Builder) classData {
	used := map[string]bool{b.ClassName: true, "heysync": true}
	methods := make([]methodData, len(b.Interface.Methods))
	for i, m := range b.Interface.Methods {
		methods[i] = methodData{
			Name:    m.Name,
			Field:   m.FieldName(),
			Channel: channelParam(m.Name, used),
			Types:   m.ParamTypes(),
		}
	}

	qualified := b.ClassName
	if q := s.qualifier(b.Interface); q != "" {
		qualified = q + "." + b.ClassName
	}
	return classData{
		Class:     b.ClassName,
		Interface: b.Interface.Name,
		Qualified: qualified,
		Methods:   methods,
	}
}

func (s *Strategy) qualifier(iface *models.Interface) string {
	if s.Qualifier != "" {
		return s.Qualifier
	}
	return iface.PackageName
}

// channelParam names the constructor parameter for a method.
func channelParam(method string, used map[string]bool) string {
	name := models.LowerFirst(method)
	if token.IsKeyword(name) {
		name += "Ch"
	}
	for used[name] {
		name += "_"
	}
	used[name] = true
	return name
}

func (s *Strategy) render(b *synth.Builder, name string, data any) error {
	out, err := s.templates.Execute(name, data)
	if err != nil {
		return err
	}
	b.WriteString(out)
	return nil
}

func (s *Strategy) EmitFields(b *synth.Builder) error {
	b.Import(models.Import{Path: RuntimeImport})
	return s.render(b, templates.Fields, s.data(b))
}

func (s *Strategy) EmitConstructor(b *synth.Builder) error {
	return s.render(b, templates.Constructor, s.data(b))
}

func (s *Strategy) EmitMethods(b *synth.Builder) error {
	for _, m := range b.Interface.Methods {
		params := make([]string, len(m.Params))
		for i, p := range m.Params {
			params[i] = p.Decl()
		}
		err := s.render(b, templates.Method, map[string]any{
			"Receiver": descriptor.Receiver,
			"Class":    b.ClassName,
			"Name":     m.Name,
			"Params":   params,
			"Field":    m.FieldName(),
			"Payload":  Payload(m),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Finalize appends the init registration unless the interface opted out.
func (s *Strategy) Finalize(b *synth.Builder) error {
	if b.Interface.Options.NoRegister {
		return nil
	}
	return s.render(b, templates.Register, s.data(b))
}

// Payload is the argument expression a method body publishes: the shared
// signal for no parameters, the parameter itself for one, and an ordered
// []any otherwise.
func Payload(m models.Method) string {
	switch len(m.Params) {
	case 0:
		return "heysync.Signal"
	case 1:
		return m.Params[0].Name
	}
	names := make([]string, len(m.Params))
	for i, p := range m.Params {
		names[i] = p.Name
	}
	return "[]any{" + strings.Join(names, ", ") + "}"
}
