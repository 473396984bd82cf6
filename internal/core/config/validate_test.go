package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	err := cfg.ValidateDeep("")
	assert.NoError(t, err, "expected valid config")
}

func TestValidateDeep_UnknownCharset(t *testing.T) {
	cfg := validConfig(t)
	cfg.Outbound.Charset = "klingon-8"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 1)
	assert.Contains(t, fieldErrs[0].Field, "outbound.charset")
}

func TestValidateDeep_Target(t *testing.T) {
	t.Run("directory target", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Outbound.Target = t.TempDir()

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, cfg.ValidateDeep(""), &fieldErrs)
		assert.Contains(t, fieldErrs[0].Field, "outbound.target")
	})

	t.Run("missing parent directory", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Outbound.Target = filepath.Join(t.TempDir(), "missing", "out.txt")

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, cfg.ValidateDeep(""), &fieldErrs)
		assert.Contains(t, fieldErrs[0].Err.Error(), "does not exist")
	})

	t.Run("new file in existing directory", func(t *testing.T) {
		cfg := validConfig(t)
		cfg.Outbound.Target = filepath.Join(t.TempDir(), "quotes.txt")
		assert.NoError(t, cfg.ValidateDeep(""))
	})
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.DataDir = file

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, cfg.ValidateDeep(""), &fieldErrs)
	assert.Contains(t, fieldErrs[0].Field, "data_dir")
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestWarnings(t *testing.T) {
	t.Run("defaults have no warnings", func(t *testing.T) {
		cfg := validConfig(t)
		assert.Empty(t, cfg.Warnings())
	})

	t.Run("disabled history", func(t *testing.T) {
		cfg := validConfig(t)
		zero := 0
		cfg.History.Lines = &zero

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "History", warnings[0].Category)
	})

	t.Run("empty prefix", func(t *testing.T) {
		cfg := validConfig(t)
		empty := ""
		cfg.Cite.Prefix = &empty

		warnings := cfg.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "Cite", warnings[0].Category)
	})
}
