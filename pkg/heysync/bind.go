package heysync

import (
	"fmt"
	"reflect"
)

// Bind fills the exported func fields of the struct pointed to by target so
// that calling field i publishes to channels[i]. Fields are taken in
// declaration order, which makes Bind the reflective counterpart of a
// generated publisher:
//
//	var mouse struct {
//		EatCheese   func(kind string)
//		ProvokeCats func(count int)
//	}
//	err := heysync.Bind(&mouse, cheese, cats)
func Bind(target any, channels ...Channel) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: Bind target must be a non-nil pointer to a struct, got %T", ErrUnsupported, target)
	}

	s := v.Elem()
	st := s.Type()

	fields := funcFields(st)
	for _, i := range fields {
		f := st.Field(i)
		if f.Type.NumOut() != 0 {
			return fmt.Errorf("%w: %s.%s returns values", ErrUnsupported, st, f.Name)
		}
	}

	if len(channels) != len(fields) {
		return &ArityError{Class: st.String(), Want: len(fields), Got: len(channels)}
	}
	for k, ch := range channels {
		if ch == nil {
			return fmt.Errorf("%w: %s channel %d (%s)", ErrNilChannel, st, k, st.Field(fields[k]).Name)
		}
	}

	for k, i := range fields {
		s.Field(i).Set(forwarder(st.Field(i).Type, channels[k]))
	}
	return nil
}

// funcFields returns the indexes of the exported func fields of st.
func funcFields(st reflect.Type) []int {
	var fields []int
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.IsExported() && f.Type.Kind() == reflect.Func {
			fields = append(fields, i)
		}
	}
	return fields
}

func forwarder(ft reflect.Type, ch Channel) reflect.Value {
	return reflect.MakeFunc(ft, func(args []reflect.Value) []reflect.Value {
		values := make([]any, len(args))
		for j, arg := range args {
			values[j] = arg.Interface()
		}
		ch.Publish(Payload(values...))
		return nil
	})
}
