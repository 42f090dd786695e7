package cli

import (
	stderrors "errors"
	"fmt"
	"sort"

	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/utils"
)

// DiagnosticReporter turns generator errors into user-facing diagnostics.
type DiagnosticReporter struct {
	diagnostics *utils.DiagnosticSystem
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(diagnostics *utils.DiagnosticSystem) *DiagnosticReporter {
	return &DiagnosticReporter{diagnostics: diagnostics}
}

// ReportError prints err. Collections are reported one error at a time,
// each with its suggestions; context is printed at debug level.
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) && len(multi.Errors) > 1 {
		r.diagnostics.Error("%d problems found", len(multi.Errors))
		r.diagnostics.Indent()
		for _, e := range multi.Errors {
			r.reportOne(e)
		}
		r.diagnostics.Unindent()
		return
	}
	r.reportOne(err)
}

func (r *DiagnosticReporter) reportOne(err error) {
	var he errors.HeysyncError
	if !stderrors.As(err, &he) {
		r.diagnostics.Error("%v", err)
		return
	}

	r.diagnostics.Error("%s: %v", he.ErrorCode(), err)
	for _, s := range he.Suggestions() {
		r.diagnostics.Suggestion("%s", s)
	}

	ctx := he.Context()
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.diagnostics.Debug("%s: %v", k, ctx[k])
	}
}

// GenerationSummary describes one run.
type GenerationSummary struct {
	PackagesScanned  int
	PackagesSkipped  int
	ClassesGenerated int
	GeneratedFiles   []string
	RemovedFiles     []string
	DryRun           bool
}

// ReportSuccess prints the closing summary of a run.
func (r *DiagnosticReporter) ReportSuccess(s GenerationSummary) {
	if len(s.RemovedFiles) > 0 {
		for _, f := range s.RemovedFiles {
			r.diagnostics.PhaseItem("Removed %s", f)
		}
		return
	}

	r.diagnostics.Verbose("Scanned %d packages, skipped %d without publishers", s.PackagesScanned, s.PackagesSkipped)
	r.diagnostics.Info("%s", pluralize(s.ClassesGenerated, "publisher class", "publisher classes"))
	if s.DryRun {
		r.diagnostics.Info("Dry run, nothing written")
		return
	}
	r.diagnostics.Complete(len(s.GeneratedFiles))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
