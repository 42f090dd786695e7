package heysync

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// MethodInfo describes one interface method bound by a class, in the
// position its channel occupies in the constructor.
type MethodInfo struct {
	// Name is the method name as declared on the interface
	Name string

	// Params holds the parameter type expressions in declared order
	Params []string
}

// ClassSpec is what generated code hands to Define. Methods must be listed in
// the interface's declared order; Construct receives exactly len(Methods)
// channels in that same order.
type ClassSpec struct {
	Interface reflect.Type
	Name      string
	Methods   []MethodInfo
	Construct func(channels []Channel) any
}

// Class is a loaded class handle. It is immutable and safe to instantiate
// from any number of goroutines.
type Class struct {
	// ID identifies this particular definition. Defining the same interface
	// in another registry yields a different ID.
	ID uuid.UUID

	// Name is the qualified name of the generated type
	Name string

	// Interface is the implemented interface type
	Interface reflect.Type

	// Methods lists the bound methods in constructor order
	Methods []MethodInfo

	construct func([]Channel) any
}

// InterfaceOf returns the reflect.Type of the interface T.
func InterfaceOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Arity returns the number of channels Instantiate expects.
func (c *Class) Arity() int {
	return len(c.Methods)
}

// MethodIndex returns the constructor position of the named method, or -1.
func (c *Class) MethodIndex(name string) int {
	for i, m := range c.Methods {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// Instantiate builds a new instance bound to channels, which must be given
// in method order. Nothing is constructed when the arguments are rejected.
func (c *Class) Instantiate(channels ...Channel) (any, error) {
	if len(channels) != len(c.Methods) {
		return nil, &ArityError{Class: c.Name, Want: len(c.Methods), Got: len(channels)}
	}
	for i, ch := range channels {
		if ch == nil {
			return nil, fmt.Errorf("%w: %s channel %d (%s)", ErrNilChannel, c.Name, i, c.Methods[i].Name)
		}
	}

	bound := make([]Channel, len(channels))
	copy(bound, channels)

	instance := c.construct(bound)
	if instance == nil || !reflect.TypeOf(instance).Implements(c.Interface) {
		return nil, verificationf(c.Name, "constructor result %T does not implement %s", instance, c.Interface)
	}
	return instance, nil
}

// verify checks the structural contract of a spec before it is loaded.
func (s ClassSpec) verify() error {
	if s.Name == "" {
		return verificationf("<unnamed>", "class name is required")
	}
	if s.Interface == nil || s.Interface.Kind() != reflect.Interface {
		return verificationf(s.Name, "target %v is not an interface type", s.Interface)
	}
	if s.Construct == nil {
		return verificationf(s.Name, "constructor is missing")
	}
	if len(s.Methods) != s.Interface.NumMethod() {
		return verificationf(s.Name, "binds %d methods but %s declares %d",
			len(s.Methods), s.Interface, s.Interface.NumMethod())
	}

	seen := make(map[string]bool, len(s.Methods))
	for _, m := range s.Methods {
		if seen[m.Name] {
			return verificationf(s.Name, "method %s bound twice", m.Name)
		}
		seen[m.Name] = true

		method, ok := s.Interface.MethodByName(m.Name)
		if !ok {
			return verificationf(s.Name, "%s has no method %s", s.Interface, m.Name)
		}
		if method.Type.NumIn() != len(m.Params) {
			return verificationf(s.Name, "method %s takes %d parameters, spec lists %d",
				m.Name, method.Type.NumIn(), len(m.Params))
		}
		if method.Type.NumOut() != 0 {
			return verificationf(s.Name, "method %s returns values", m.Name)
		}
	}
	return nil
}

func (s ClassSpec) load() *Class {
	methods := make([]MethodInfo, len(s.Methods))
	for i, m := range s.Methods {
		methods[i] = MethodInfo{Name: m.Name, Params: append([]string(nil), m.Params...)}
	}
	return &Class{
		ID:        uuid.New(),
		Name:      s.Name,
		Interface: s.Interface,
		Methods:   methods,
		construct: s.Construct,
	}
}
