package annotations

import (
	"fmt"
	"go/token"
	"sort"
	"strings"

	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/models"
)

// PublisherKind marks an interface for publisher generation.
const PublisherKind = "publisher"

type valueKind int

const (
	flagValue valueKind = iota
	identValue
)

type optionSpec struct {
	kind        valueKind
	description string
}

var schemas = map[string]map[string]optionSpec{
	PublisherKind: {
		"Name":       {kind: identValue, description: "name of the generated struct"},
		"NoRegister": {kind: flagValue, description: "skip the init registration"},
	},
}

func validate(d *Directive) error {
	schema, ok := schemas[d.Kind]
	if !ok {
		return invalid(d, "kind", fmt.Sprintf("unknown directive kind %q", d.Kind)).
			WithSuggestion("use " + Prefix + PublisherKind)
	}

	seen := make(map[string]bool, len(d.Options))
	for _, o := range d.Options {
		spec, ok := schema[o.Key]
		if !ok {
			return invalid(d, o.Key, fmt.Sprintf("unknown option -%s", o.Key)).
				WithSuggestion("known options: " + knownOptions(schema))
		}
		if seen[o.Key] {
			return invalid(d, o.Key, fmt.Sprintf("option -%s given twice", o.Key))
		}
		seen[o.Key] = true

		switch spec.kind {
		case flagValue:
			if o.Value != nil {
				return invalid(d, o.Key, fmt.Sprintf("option -%s takes no value", o.Key))
			}
		case identValue:
			if o.Value == nil || !token.IsIdentifier(*o.Value) {
				return invalid(d, o.Key, fmt.Sprintf("option -%s needs a Go identifier, e.g. -%s=MousePublisher", o.Key, o.Key))
			}
		}
	}
	return nil
}

func invalid(d *Directive, field, msg string) *errors.ValidationError {
	err := &errors.ValidationError{BaseError: errors.New(errors.ValidationErrorCode, msg)}
	err.WithContext("directive", d.Raw)
	err.WithContext("field", field)
	return err.WithLocation(d.Location)
}

func knownOptions(schema map[string]optionSpec) string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, "-"+name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// PublisherOptions converts a publisher directive into generation options.
func PublisherOptions(d *Directive) models.PublisherOptions {
	var opts models.PublisherOptions
	if o, ok := d.Lookup("Name"); ok && o.Value != nil {
		opts.ClassName = *o.Value
	}
	if _, ok := d.Lookup("NoRegister"); ok {
		opts.NoRegister = true
	}
	return opts
}
