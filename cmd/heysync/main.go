package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fotap/heysync/internal/cli"
	"github.com/fotap/heysync/internal/utils"
)

func main() {
	utils.ConfigureColors()
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// reportedError marks errors already printed by the diagnostic reporter.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// execute runs heysync with args and returns the process exit code.
func execute(args []string, out, errOut io.Writer) int {
	cmd := newRootCmd(out, errOut)
	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// newRootCmd builds the heysync command. Environment defaults are read
// when the command is built, so flags always win.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	cfg, envErr := cli.LoadConfig()

	cmd := &cobra.Command{
		Use:   "heysync [flags] <directories...>",
		Short: "Generate publisher implementations of Go interfaces",
		Long: `heysync scans Go packages for interfaces marked with a //heysync::publisher
directive and generates, per interface, a struct whose every method call
publishes its arguments on a channel of its own.

Directory patterns:
  ./...              the current directory and every subdirectory
  ./internal/...     internal and its subdirectories
  ./pkg/mice         only that directory

Environment:
  HEYSYNC_OUTPUT     generated file name (default heysync_publishers.go)
  HEYSYNC_MODULE     module path used to qualify class names
  HEYSYNC_VERBOSE    verbose output
  HEYSYNC_QUIET      errors only`,
		Example: `  heysync ./...
  heysync --type Mouse,Cat ./pkg/mice
  heysync --module github.com/acme/zoo --dry-run ./...
  heysync --clean ./...`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one directory is required")
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			diagnostics := utils.NewDiagnosticSystemTo(cfg.Level(), out, errOut)
			if envErr != nil {
				cli.NewDiagnosticReporter(diagnostics).ReportError(envErr)
				return reportedError{envErr}
			}

			cfg.Directories = args
			g := cli.NewGenerator(diagnostics)
			if err := g.Run(cfg); err != nil {
				g.Reporter().ReportError(err)
				return reportedError{err}
			}
			g.Reporter().ReportSuccess(g.GetSummary())
			return nil
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.Flags()
	flags.StringSliceVarP(&cfg.Types, "type", "t", nil, "comma-separated interface names to generate instead of directive-marked ones")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "generated file name inside each package")
	flags.StringVar(&cfg.Module, "module", cfg.Module, "module path for class names (defaults to go.mod)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "detailed output")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "only print errors")
	flags.BoolVar(&cfg.Clean, "clean", false, "remove generated files instead of generating")
	flags.BoolVar(&cfg.DryRun, "dry-run", false, "generate without writing files")
	return cmd
}
