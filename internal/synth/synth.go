// Package synth runs the fixed class synthesis skeleton: struct fields,
// constructor, method bodies, then finalization. What goes into each step
// is decided by a Strategy.
package synth

import (
	"fmt"
	"strings"

	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/models"
)

// Strategy fills the three extension points of the skeleton.
type Strategy interface {
	// EmitFields writes struct fields; the skeleton writes the braces.
	EmitFields(b *Builder) error
	EmitConstructor(b *Builder) error
	EmitMethods(b *Builder) error
}

// Finalizer is implemented by strategies that append declarations after the
// methods, before the interface assertion.
type Finalizer interface {
	Finalize(b *Builder) error
}

// Stage names a skeleton step.
type Stage string

const (
	StageFields      Stage = "fields"
	StageConstructor Stage = "constructor"
	StageMethods     Stage = "methods"
	StageFinalize    Stage = "finalize"
)

// Builder accumulates the source of one class.
type Builder struct {
	Interface *models.Interface
	ClassName string

	buf     strings.Builder
	imports []models.Import
	seen    map[models.Import]bool
}

// Printf appends formatted source.
func (b *Builder) Printf(format string, args ...any) {
	fmt.Fprintf(&b.buf, format, args...)
}

// WriteString appends s.
func (b *Builder) WriteString(s string) {
	b.buf.WriteString(s)
}

// Import records an import the class source needs.
func (b *Builder) Import(imp models.Import) {
	if b.seen == nil {
		b.seen = make(map[models.Import]bool)
	}
	if !b.seen[imp] {
		b.seen[imp] = true
		b.imports = append(b.imports, imp)
	}
}

// Class is a synthesized, not yet formatted, class declaration.
type Class struct {
	Name          string
	InterfaceName string
	MethodCount   int
	Source        string
	Imports       []models.Import
}

// Synthesizer generates the class for one interface.
type Synthesizer struct {
	iface     *models.Interface
	className string
	strategy  Strategy
}

// New creates a Synthesizer. An empty className falls back to the
// interface's configured class name.
func New(iface *models.Interface, className string, strategy Strategy) *Synthesizer {
	if className == "" {
		className = iface.ClassName()
	}
	return &Synthesizer{iface: iface, className: className, strategy: strategy}
}

// Generate runs every step once, in order, and returns the class. The
// emitted source is not validated here.
func (s *Synthesizer) Generate() (*Class, error) {
	b := &Builder{Interface: s.iface, ClassName: s.className}

	b.Printf("type %s struct {\n", s.className)
	if err := s.step(StageFields, b, s.strategy.EmitFields); err != nil {
		return nil, err
	}
	b.WriteString("}\n\n")

	if err := s.step(StageConstructor, b, s.strategy.EmitConstructor); err != nil {
		return nil, err
	}
	if err := s.step(StageMethods, b, s.strategy.EmitMethods); err != nil {
		return nil, err
	}
	if f, ok := s.strategy.(Finalizer); ok {
		if err := s.step(StageFinalize, b, f.Finalize); err != nil {
			return nil, err
		}
	}
	b.Printf("var _ %s = (*%s)(nil)\n", s.iface.Name, s.className)

	return &Class{
		Name:          s.className,
		InterfaceName: s.iface.Name,
		MethodCount:   len(s.iface.Methods),
		Source:        b.buf.String(),
		Imports:       b.imports,
	}, nil
}

func (s *Synthesizer) step(stage Stage, b *Builder, emit func(*Builder) error) error {
	if err := emit(b); err != nil {
		return errors.WrapGenerateError(string(stage), s.className, err)
	}
	return nil
}
