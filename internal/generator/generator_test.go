package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotap/heysync/internal/descriptor"
	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/models"
)

func describe(t *testing.T, src string) *models.Package {
	t.Helper()
	pkg, err := descriptor.NewParser("").ParseSource("src.go", []byte(src))
	require.NoError(t, err)
	return pkg
}

func TestGeneratePackage_PrunesImports(t *testing.T) {
	pkg := describe(t, `package mice

import (
	"fmt"
	"time"
	stdctx "context"
)

var _ = fmt.Sprint

//heysync::publisher
type Napper interface {
	Nap(d time.Duration)
}
`)

	file, err := NewGenerator().GeneratePackage(pkg, Options{ImportPath: "example.com/mice"})
	require.NoError(t, err)

	src := string(file.Content)
	assert.True(t, strings.HasPrefix(src, "// Code generated by heysync. DO NOT EDIT.\n\npackage mice\n"))
	assert.Contains(t, src, "\t\"time\"\n")
	assert.Contains(t, src, "\t\"github.com/fotap/heysync/pkg/heysync\"\n")
	assert.NotContains(t, src, `"fmt"`)
	assert.NotContains(t, src, `"context"`)
	assert.Contains(t, src, `Name:      "example.com/mice.NapperPublisher",`)
	assert.Equal(t, []string{"NapperPublisher"}, file.Classes)
	assert.Equal(t, "heysync_publishers.go", filepath.Base(file.Path))
}

func TestGeneratePackage_KeepsReferencedImports(t *testing.T) {
	tests := []struct {
		name    string
		imports string
		method  string
		want    string
	}{
		{
			name:    "major version suffix",
			imports: `"github.com/jackc/pgx/v5"`,
			method:  "Query(conn *pgx.Conn)",
			want:    "\t\"github.com/jackc/pgx/v5\"\n",
		},
		{
			name:    "dotted path element",
			imports: `"github.com/nats-io/nats.go"`,
			method:  "Forward(msg *nats.Msg)",
			want:    "\t\"github.com/nats-io/nats.go\"\n",
		},
		{
			name:    "renamed",
			imports: `kv "example.com/store/v2"`,
			method:  "Put(s kv.Store)",
			want:    "\tkv \"example.com/store/v2\"\n",
		},
		{
			name:    "dot import",
			imports: `. "example.com/mice/shapes"`,
			method:  "Draw(s Shape)",
			want:    "\t. \"example.com/mice/shapes\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := describe(t, "package mice\n\nimport "+tt.imports+"\n\n//heysync::publisher\ntype Store interface {\n\t"+tt.method+"\n}\n")

			file, err := NewGenerator().GeneratePackage(pkg, Options{ImportPath: "example.com/mice"})
			require.NoError(t, err)
			assert.Contains(t, string(file.Content), tt.want)
		})
	}
}

func TestGeneratePackage_ImportNameClash(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.go": "package mice\n\nimport \"example.com/a/store\"\n\n//heysync::publisher\ntype A interface{ Put(s store.Item) }\n",
		"b.go": "package mice\n\nimport \"example.com/b/store\"\n\n//heysync::publisher\ntype B interface{ Put(s store.Item) }\n",
	}
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	pkg, err := descriptor.NewParser("").ParseDirectory(dir)
	require.NoError(t, err)

	_, err = NewGenerator().GeneratePackage(pkg, Options{})
	require.Error(t, err)
	assert.Equal(t, errors.ValidationErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "package name store refers to both example.com/a/store and example.com/b/store")
}

func TestGeneratePackage_NoRegisterEmpty(t *testing.T) {
	pkg := describe(t, `package mice

//heysync::publisher -NoRegister
type Nothing interface{}
`)
	file, err := NewGenerator().GeneratePackage(pkg, Options{OutputName: "pub.go"})
	require.NoError(t, err)

	assert.NotContains(t, string(file.Content), "import", "unused runtime import is pruned")
	assert.Equal(t, "pub.go", filepath.Base(file.Path))
}

func TestGeneratePackage_UsesPackageImportPath(t *testing.T) {
	pkg := describe(t, "package mice\n\n//heysync::publisher\ntype Squeaker interface{ Squeak() }\n")
	pkg.ImportPath = "example.com/zoo/mice"

	file, err := NewGenerator().GeneratePackage(pkg, Options{})
	require.NoError(t, err)
	assert.Contains(t, string(file.Content), `"example.com/zoo/mice.SqueakerPublisher"`)
}

func TestGeneratePackage_Errors(t *testing.T) {
	g := NewGenerator()

	_, err := g.GeneratePackage(&models.Package{Name: "mice"}, Options{})
	assert.Equal(t, errors.GenerationErrorCode, errors.CodeOf(err))

	pkg := describe(t, `package mice

//heysync::publisher -Name=Same
type A interface{ A() }

//heysync::publisher -Name=Same
type B interface{ B() }
`)
	_, err = g.GeneratePackage(pkg, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class name Same is generated for both A and B")

	bad := &models.Package{Name: "mice", Interfaces: []models.Interface{{
		Name:        "Broken",
		PackageName: "mice",
		Methods:     []models.Method{{Name: "Eat", Params: []models.Param{{Name: "x", Type: "[[["}}}},
	}}}
	_, err = g.GeneratePackage(bad, Options{})
	require.Error(t, err)
	var gen *errors.GenerationError
	require.ErrorAs(t, err, &gen)
	assert.Equal(t, "format", gen.Stage)
}

func TestGeneratePackage_MultipleInterfacesInSourceOrder(t *testing.T) {
	pkg := describe(t, `package mice

//heysync::publisher
type B interface{ Run() }

//heysync::publisher
type A interface{ Walk(n int) }
`)
	file, err := NewGenerator().GeneratePackage(pkg, Options{})
	require.NoError(t, err)

	src := string(file.Content)
	assert.Equal(t, []string{"BPublisher", "APublisher"}, file.Classes)
	assert.Less(t, strings.Index(src, "type BPublisher struct"), strings.Index(src, "type APublisher struct"))
	assert.Equal(t, 1, strings.Count(src, "import"), "one merged import block")
}

// The checked-in example file must be exactly what the generator writes.
func TestGeneratePackage_ExampleIsUpToDate(t *testing.T) {
	dir := filepath.Join("..", "..", "examples", "mice")

	pkg, err := descriptor.NewParser("").ParseDirectory(dir)
	require.NoError(t, err)

	file, err := NewGenerator().GeneratePackage(pkg, Options{ImportPath: "github.com/fotap/heysync/examples/mice"})
	require.NoError(t, err)

	want, err := os.ReadFile(filepath.Join(dir, "heysync_publishers.go"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(file.Content))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	file := &models.GeneratedFile{Path: filepath.Join(dir, "out.go"), Content: []byte("package x\n")}
	require.NoError(t, Write(file))

	got, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, "package x\n", string(got))

	file.Path = filepath.Join(dir, "missing", "out.go")
	assert.Equal(t, errors.FileSystemErrorCode, errors.CodeOf(Write(file)))
}
