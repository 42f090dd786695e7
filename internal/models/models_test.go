package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterface_ClassName(t *testing.T) {
	i := &Interface{Name: "Mouse"}
	assert.Equal(t, "MousePublisher", i.ClassName())

	i.Options.ClassName = "Squeaker"
	assert.Equal(t, "Squeaker", i.ClassName())
}

func TestMethod_FieldName(t *testing.T) {
	tests := []struct{ name, want string }{
		{"EatCheese", "eatCheesePublisher"},
		{"close", "closePublisher"},
		{"Close", "closePublisher"},
		{"Énergie", "énergiePublisher"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Method{Name: tt.name}.FieldName())
		})
	}
}

func TestMethod_ParamTypes(t *testing.T) {
	m := Method{Params: []Param{
		{Name: "kind", Type: "string"},
		{Name: "crumbs", Type: "int", Variadic: true},
	}}
	assert.Equal(t, []string{"string", "[]int"}, m.ParamTypes())
	assert.Equal(t, "crumbs ...int", m.Params[1].Decl())
	assert.Equal(t, "kind string", m.Params[0].Decl())
}

func TestImport_Spec(t *testing.T) {
	assert.Equal(t, `"time"`, Import{Path: "time"}.Spec())
	assert.Equal(t, `stdctx "context"`, Import{Name: "stdctx", Path: "context"}.Spec())
}

func TestImport_LocalName(t *testing.T) {
	tests := []struct {
		imp  Import
		want string
	}{
		{Import{Path: "time"}, "time"},
		{Import{Path: "net/http"}, "http"},
		{Import{Name: "stdctx", Path: "context"}, "stdctx"},
		{Import{Path: "github.com/jackc/pgx/v5"}, "pgx"},
		{Import{Path: "github.com/nats-io/nats.go"}, "nats"},
		{Import{Path: "gopkg.in/yaml.v3"}, "yaml"},
		{Import{Path: "github.com/mattn/go-sqlite3"}, "sqlite3"},
		{Import{Path: "github.com/vmihailenco/msgpack/v5"}, "msgpack"},
		{Import{Path: "example.com/v2"}, "example"},
	}
	for _, tt := range tests {
		t.Run(tt.imp.Path, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.imp.LocalName())
		})
	}
}

func TestPackage_Interface(t *testing.T) {
	p := &Package{Interfaces: []Interface{{Name: "Mouse"}, {Name: "Cat"}}}

	got, ok := p.Interface("Cat")
	assert.True(t, ok)
	assert.Equal(t, "Cat", got.Name)

	_, ok = p.Interface("Dog")
	assert.False(t, ok)
}
