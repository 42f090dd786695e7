package cli

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/utils"
)

// Config holds the configuration for one heysync run. Environment variables
// provide the defaults; flags override them.
type Config struct {
	// Directories to scan. A trailing "/..." includes subdirectories.
	Directories []string `ignored:"true"`

	// Types names the interfaces to generate instead of those carrying a
	// //heysync::publisher directive. Requires a single directory.
	Types []string `ignored:"true"`

	// Output is the generated file name inside each package directory.
	Output string `envconfig:"HEYSYNC_OUTPUT" default:"heysync_publishers.go"`

	// Module replaces the module path read from go.mod when qualifying
	// registered class names.
	Module string `envconfig:"HEYSYNC_MODULE"`

	Verbose bool `envconfig:"HEYSYNC_VERBOSE"`
	Quiet   bool `envconfig:"HEYSYNC_QUIET"`

	// DryRun generates without writing.
	DryRun bool `ignored:"true"`

	// Clean removes generated files instead of generating.
	Clean bool `ignored:"true"`
}

// LoadConfig reads the environment defaults.
func LoadConfig() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, errors.WrapConfigurationError("environment", err)
	}
	return c, nil
}

// Level maps the verbosity flags to a diagnostic level. Quiet wins.
func (c Config) Level() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticDebug
	default:
		return utils.DiagnosticInfo
	}
}

func (c Config) output() string {
	if c.Output == "" {
		return utils.GeneratedFileName
	}
	return c.Output
}

// Validate checks flag combinations.
func (c Config) Validate() error {
	if len(c.Directories) == 0 {
		return errors.New(errors.ConfigurationErrorCode, "no directories given").
			WithSuggestion("pass a package directory, for example ./...")
	}
	if len(c.Types) > 0 && (len(c.Directories) > 1 || isRecursive(c.Directories[0])) {
		return errors.New(errors.ConfigurationErrorCode, "--type needs exactly one package directory").
			WithContext("directories", c.Directories)
	}
	if c.Clean && len(c.Types) > 0 {
		return errors.New(errors.ConfigurationErrorCode, "--clean cannot be combined with --type")
	}
	return nil
}
