package heysync

import "fmt"

// New instantiates the class registered for interface T in DefaultRegistry.
// Channels are bound positionally in T's declared method order.
func New[T any](channels ...Channel) (T, error) {
	return NewFrom[T](DefaultRegistry, channels...)
}

// NewFrom is New against an explicit registry.
func NewFrom[T any](r *Registry, channels ...Channel) (T, error) {
	var zero T

	t := InterfaceOf[T]()
	class, ok := r.Lookup(t)
	if !ok {
		return zero, fmt.Errorf("%w: no publisher class for %s", ErrNotDefined, t)
	}

	instance, err := class.Instantiate(channels...)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, verificationf(class.Name, "instance %T is not a %s", instance, t)
	}
	return typed, nil
}

// MustNew is New that panics on error.
func MustNew[T any](channels ...Channel) T {
	instance, err := New[T](channels...)
	if err != nil {
		panic(err)
	}
	return instance
}
