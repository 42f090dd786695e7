package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotap/heysync/internal/errors"
	"github.com/fotap/heysync/internal/utils"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, utils.GeneratedFileName, cfg.Output)
		assert.Empty(t, cfg.Module)
		assert.False(t, cfg.Verbose)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("HEYSYNC_OUTPUT", "pub.go")
		t.Setenv("HEYSYNC_MODULE", "example.com/zoo")
		t.Setenv("HEYSYNC_VERBOSE", "true")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "pub.go", cfg.Output)
		assert.Equal(t, "example.com/zoo", cfg.Module)
		assert.True(t, cfg.Verbose)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("HEYSYNC_QUIET", "sometimes")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "single directory", cfg: Config{Directories: []string{"."}}},
		{name: "types on one package", cfg: Config{Directories: []string{"./mice"}, Types: []string{"Mouse"}}},
		{name: "no directories", cfg: Config{}, wantErr: true},
		{name: "types on recursive pattern", cfg: Config{Directories: []string{"./..."}, Types: []string{"Mouse"}}, wantErr: true},
		{name: "types on two directories", cfg: Config{Directories: []string{"a", "b"}, Types: []string{"Mouse"}}, wantErr: true},
		{name: "clean with types", cfg: Config{Directories: []string{"."}, Types: []string{"Mouse"}, Clean: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Level(t *testing.T) {
	assert.Equal(t, utils.DiagnosticInfo, Config{}.Level())
	assert.Equal(t, utils.DiagnosticDebug, Config{Verbose: true}.Level())
	assert.Equal(t, utils.DiagnosticError, Config{Verbose: true, Quiet: true}.Level())
}
