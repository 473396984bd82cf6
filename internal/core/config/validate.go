package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/backscroll/internal/core/outbound"
)

// largeHistory is the capacity above which a warning is issued.
const largeHistory = 200_000

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// charset lookup and file accessibility. The configPath argument specifies the
// config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("outbound.charset", c.Outbound.Charset, charsetSupported),
		criterio.Run("outbound.target", c.Outbound.Target, targetUsable),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	lines := c.HistoryLines()
	switch {
	case lines == 0:
		warnings = append(warnings, ValidationWarning{
			Category: "History",
			Item:     "lines",
			Message:  "history is disabled; search and scrolling will report errors",
		})
	case lines > largeHistory:
		warnings = append(warnings, ValidationWarning{
			Category: "History",
			Item:     "lines",
			Message:  fmt.Sprintf("%d history lines are kept in memory for every viewer", lines),
		})
	}

	if c.QuotePrefix() == "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Cite",
			Item:     "prefix",
			Message:  "empty quote prefix; cited lines are sent unmarked",
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func charsetSupported(name string) error {
	_, err := outbound.NewEncoder(name)
	return err
}

// targetUsable accepts stdout, existing non-directory paths and new files
// in an existing directory.
func targetUsable(target string) error {
	if target == "" || target == TargetStdout {
		return nil
	}

	info, err := os.Stat(target)
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", target)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access: %w", err)
	}

	dir := filepath.Dir(target)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("parent directory %s does not exist", dir)
	}
	return nil
}
