package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel controls how much the CLI prints.
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// DiagnosticSystem prints leveled, optionally colored CLI output.
type DiagnosticSystem struct {
	level    DiagnosticLevel
	showTime bool
	output   io.Writer
	errorOut io.Writer
	indent   int
}

// NewDiagnosticSystem writes to stdout and stderr.
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return NewDiagnosticSystemTo(level, os.Stdout, os.Stderr)
}

// NewDiagnosticSystemTo writes to out and errOut.
func NewDiagnosticSystemTo(level DiagnosticLevel, out, errOut io.Writer) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:    level,
		showTime: level >= DiagnosticVerbose,
		output:   out,
		errorOut: errOut,
	}
}

// Level returns the configured level.
func (d *DiagnosticSystem) Level() DiagnosticLevel { return d.level }

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgBlue)
	successColor = color.New(color.FgGreen)
	verboseColor = color.New(color.FgHiBlack)
	debugColor   = color.New(color.FgMagenta)
	headerColor  = color.New(color.FgCyan)
)

func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	if d.level >= DiagnosticError {
		d.writeMessage(d.errorOut, "ERROR", errorColor, format, args...)
	}
}

func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	if d.level >= DiagnosticWarn {
		d.writeMessage(d.output, "WARN", warnColor, format, args...)
	}
}

func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		d.writeMessage(d.output, "INFO", infoColor, format, args...)
	}
}

func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	if d.level >= DiagnosticVerbose {
		d.writeMessage(d.output, "VERBOSE", verboseColor, format, args...)
	}
}

func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	if d.level >= DiagnosticDebug {
		d.writeMessage(d.output, "DEBUG", debugColor, format, args...)
	}
}

// Suggestion prints a fix hint under the previous error.
func (d *DiagnosticSystem) Suggestion(format string, args ...interface{}) {
	if d.level >= DiagnosticError {
		fmt.Fprintf(d.errorOut, "%s  hint: %s\n", d.getIndent(), fmt.Sprintf(format, args...))
	}
}

// Header prints the tool banner.
func (d *DiagnosticSystem) Header(message string) {
	if d.level >= DiagnosticInfo {
		headerColor.Fprintf(d.output, "heysync: %s\n", message)
	}
}

// PhaseItem prints a completed step with a check mark.
func (d *DiagnosticSystem) PhaseItem(format string, args ...interface{}) {
	if d.level >= DiagnosticInfo {
		successColor.Fprint(d.output, d.getIndent()+"✓ ")
		fmt.Fprintf(d.output, "%s\n", fmt.Sprintf(format, args...))
	}
}

// Writing prints a file that is about to be written.
func (d *DiagnosticSystem) Writing(path string) {
	if d.level >= DiagnosticInfo {
		debugColor.Fprint(d.output, d.getIndent()+"✏ ")
		fmt.Fprintf(d.output, "Writing %s\n", path)
	}
}

// Complete prints the closing line of a run.
func (d *DiagnosticSystem) Complete(generated int) {
	if d.level >= DiagnosticInfo {
		successColor.Fprintf(d.output, "heysync: generated %d file(s)\n", generated)
	}
}

func (d *DiagnosticSystem) Indent() { d.indent++ }

func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

func (d *DiagnosticSystem) writeMessage(w io.Writer, level string, c *color.Color, format string, args ...interface{}) {
	var out strings.Builder
	out.WriteString(d.getIndent())
	if d.showTime {
		out.WriteString(time.Now().Format("15:04:05 "))
	}
	out.WriteString(c.Sprintf("[%s]", level))
	out.WriteString(" ")
	out.WriteString(fmt.Sprintf(format, args...))
	out.WriteString("\n")

	fmt.Fprint(w, out.String())
}

func (d *DiagnosticSystem) getIndent() string {
	return strings.Repeat("  ", d.indent)
}

// ConfigureColors applies NO_COLOR / FORCE_COLOR on top of fatih/color's
// terminal detection.
func ConfigureColors() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
		return
	}
	if os.Getenv("FORCE_COLOR") != "" {
		color.NoColor = false
	}
}
