package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/fotap/heysync/internal/utils"
)

// writeTree creates files under root; keys are slash-separated paths.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func testDiagnostics(level utils.DiagnosticLevel) (*utils.DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	color.NoColor = true
	var out, errOut bytes.Buffer
	return utils.NewDiagnosticSystemTo(level, &out, &errOut), &out, &errOut
}

const goMod = "module example.com/zoo\n\ngo 1.25\n"

const miceSource = `package mice

import "time"

//heysync::publisher
type Mouse interface {
	EatCheese(kind string)
	Nap(d time.Duration)
}
`
