package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/utils"
)

func TestGenerator_Run(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":             goMod,
		"mice/mouse.go":      miceSource,
		"cats/cat.go":        "package cats\n\ntype Cat interface{ Hiss() }\n",
		"vendor/x/x.go":      "package x\n\n//heysync::publisher\ntype X interface{ Y() }\n",
		"mice/mouse_test.go": "package mice\n\n//heysync::publisher\ntype Test interface{ T() }\n",
	})

	diag, out, _ := testDiagnostics(utils.DiagnosticInfo)
	g := NewGenerator(diag)
	require.NoError(t, g.Run(Config{Directories: []string{root + "/..."}}))

	generated := filepath.Join(root, "mice", utils.GeneratedFileName)
	content, err := os.ReadFile(generated)
	require.NoError(t, err)

	src := string(content)
	assert.True(t, strings.HasPrefix(src, GeneratedHeader+"\n"))
	assert.Contains(t, src, "func NewMousePublisher(eatCheese, nap heysync.Channel) *MousePublisher {")
	assert.Contains(t, src, `"example.com/zoo/mice.MousePublisher"`)
	assert.NotContains(t, src, "TestPublisher")

	assert.NoFileExists(t, filepath.Join(root, "cats", utils.GeneratedFileName))
	assert.NoFileExists(t, filepath.Join(root, "vendor", "x", utils.GeneratedFileName))

	summary := g.GetSummary()
	assert.Equal(t, 2, summary.PackagesScanned)
	assert.Equal(t, 1, summary.PackagesSkipped)
	assert.Equal(t, 1, summary.ClassesGenerated)
	assert.Equal(t, []string{generated}, summary.GeneratedFiles)
	assert.Contains(t, out.String(), "[MousePublisher]")
}

func TestGenerator_RunIsStable(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"go.mod": goMod, "mice/mouse.go": miceSource})
	diag, _, _ := testDiagnostics(utils.DiagnosticSilent)

	cfg := Config{Directories: []string{filepath.Join(root, "mice")}}
	require.NoError(t, NewGenerator(diag).Run(cfg))
	first, err := os.ReadFile(filepath.Join(root, "mice", utils.GeneratedFileName))
	require.NoError(t, err)

	require.NoError(t, NewGenerator(diag).Run(cfg))
	second, err := os.ReadFile(filepath.Join(root, "mice", utils.GeneratedFileName))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestGenerator_DryRun(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"go.mod": goMod, "mice/mouse.go": miceSource})
	diag, out, _ := testDiagnostics(utils.DiagnosticVerbose)

	g := NewGenerator(diag)
	require.NoError(t, g.Run(Config{Directories: []string{filepath.Join(root, "mice")}, DryRun: true}))

	assert.NoFileExists(t, filepath.Join(root, "mice", utils.GeneratedFileName))
	assert.Empty(t, g.GetSummary().GeneratedFiles)
	assert.Equal(t, 1, g.GetSummary().ClassesGenerated)
	assert.Contains(t, out.String(), "Would write")
}

func TestGenerator_TypesAndOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":   goMod,
		"zoo.go":   "package zoo\n\ntype Owl interface{ Hoot() }\n\ntype Bat interface{ Flap() }\n",
		"other.go": "package zoo\n",
	})
	diag, _, _ := testDiagnostics(utils.DiagnosticSilent)

	err := NewGenerator(diag).Run(Config{
		Directories: []string{root},
		Types:       []string{"Bat"},
		Output:      "bat_publisher.go",
		Module:      "example.com/custom",
	})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, "bat_publisher.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "type BatPublisher struct")
	assert.Contains(t, string(content), `"example.com/custom.BatPublisher"`)
	assert.NotContains(t, string(content), "Owl")
}

func TestGenerator_FailureWritesNothing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":        goMod,
		"mice/mouse.go": miceSource,
		"bad/bad.go":    "package bad\n\n//heysync::publisher\ntype Bad interface {\n\tCount() int\n\tCount2() error\n}\n",
	})
	diag, _, _ := testDiagnostics(utils.DiagnosticSilent)

	err := NewGenerator(diag).Run(Config{Directories: []string{root + "/..."}})
	require.Error(t, err)

	var multi *errors.MultipleErrors
	require.ErrorAs(t, err, &multi)
	assert.Len(t, multi.Errors, 2)
	assert.True(t, multi.HasCode(errors.UnsupportedResultErrorCode))
	assert.NoFileExists(t, filepath.Join(root, "mice", utils.GeneratedFileName))
}

func TestGenerator_InvalidConfig(t *testing.T) {
	diag, _, _ := testDiagnostics(utils.DiagnosticSilent)
	err := NewGenerator(diag).Run(Config{})
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
}

func TestGenerator_Clean(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"go.mod": goMod, "mice/mouse.go": miceSource})
	diag, _, _ := testDiagnostics(utils.DiagnosticSilent)
	dirs := []string{root + "/..."}

	require.NoError(t, NewGenerator(diag).Run(Config{Directories: dirs}))
	require.FileExists(t, filepath.Join(root, "mice", utils.GeneratedFileName))

	g := NewGenerator(diag)
	require.NoError(t, g.Run(Config{Directories: dirs, Clean: true}))
	assert.NoFileExists(t, filepath.Join(root, "mice", utils.GeneratedFileName))
	assert.Len(t, g.GetSummary().RemovedFiles, 1)
}
