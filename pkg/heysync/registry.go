package heysync

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/puzpuzpuz/xsync/v3"
)

// Registry is a loading namespace for class handles. Each interface type
// resolves to at most one live class per registry.
type Registry struct {
	classes *xsync.MapOf[string, *Class]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: xsync.NewMapOf[string, *Class]()}
}

// DefaultRegistry is the registry generated init functions define into.
var DefaultRegistry = NewRegistry()

// Define verifies spec and loads it. Defining a second class for an
// interface type that already has one fails with ErrAlreadyDefined, even
// when two goroutines race on the first definition.
func (r *Registry) Define(spec ClassSpec) (*Class, error) {
	if err := spec.verify(); err != nil {
		return nil, err
	}

	class := spec.load()
	existing, loaded := r.classes.LoadOrStore(typeKey(spec.Interface), class)
	if loaded {
		return nil, fmt.Errorf("%w: %s already implemented by %s", ErrAlreadyDefined, spec.Interface, existing.Name)
	}
	return class, nil
}

// Resolve returns the class already loaded for spec's interface when it has
// the same name, and defines spec otherwise.
func (r *Registry) Resolve(spec ClassSpec) (*Class, error) {
	if spec.Interface != nil {
		if existing, ok := r.classes.Load(typeKey(spec.Interface)); ok {
			if existing.Name != spec.Name {
				return nil, fmt.Errorf("%w: %s already implemented by %s", ErrAlreadyDefined, spec.Interface, existing.Name)
			}
			return existing, nil
		}
	}

	class, err := r.Define(spec)
	if err == nil {
		return class, nil
	}
	// lost a race against an identical definition
	if existing, ok := r.classes.Load(typeKey(spec.Interface)); ok && existing.Name == spec.Name {
		return existing, nil
	}
	return nil, err
}

// Lookup returns the class loaded for the interface type t.
func (r *Registry) Lookup(t reflect.Type) (*Class, bool) {
	if t == nil {
		return nil, false
	}
	return r.classes.Load(typeKey(t))
}

// Classes returns every loaded class ordered by name.
func (r *Registry) Classes() []*Class {
	classes := make([]*Class, 0, r.classes.Size())
	r.classes.Range(func(_ string, c *Class) bool {
		classes = append(classes, c)
		return true
	})
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].Name < classes[j].Name
	})
	return classes
}

func typeKey(t reflect.Type) string {
	if t.Name() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Define loads spec into DefaultRegistry.
func Define(spec ClassSpec) (*Class, error) {
	return DefaultRegistry.Define(spec)
}

// MustDefine is Define for generated init functions; it panics on error.
func MustDefine(spec ClassSpec) *Class {
	class, err := DefaultRegistry.Define(spec)
	if err != nil {
		panic(err)
	}
	return class
}

// Lookup finds the class for t in DefaultRegistry.
func Lookup(t reflect.Type) (*Class, bool) {
	return DefaultRegistry.Lookup(t)
}
