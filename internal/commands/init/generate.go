package initcmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/backscroll/internal/core/config"
)

// ConfigOptions are the answers collected by the wizard.
type ConfigOptions struct {
	HistoryLines int
	Target       string
	Charset      string
	Prefix       string
	LineEnding   string
	Theme        string
}

// DefaultConfigOptions mirrors the built-in defaults.
func DefaultConfigOptions() ConfigOptions {
	cfg := config.DefaultConfig()
	return ConfigOptions{
		HistoryLines: cfg.HistoryLines(),
		Target:       cfg.Outbound.Target,
		Charset:      cfg.Outbound.Charset,
		Prefix:       cfg.QuotePrefix(),
		LineEnding:   cfg.Cite.LineEnding,
		Theme:        cfg.TUI.Theme,
	}
}

// GenerateConfig builds a config from the wizard answers.
func GenerateConfig(opts ConfigOptions) config.Config {
	cfg := config.DefaultConfig()
	lines := opts.HistoryLines
	prefix := opts.Prefix

	cfg.History.Lines = &lines
	cfg.Cite.Prefix = &prefix
	cfg.Cite.LineEnding = opts.LineEnding
	cfg.Outbound.Target = opts.Target
	cfg.Outbound.Charset = opts.Charset
	cfg.TUI.Theme = opts.Theme
	return cfg
}

const configHeader = `# backscroll configuration
# Generated by 'backscroll init'. Check it with 'backscroll config validate'.
`

// WriteConfig writes cfg as YAML, creating parent directories.
func WriteConfig(cfg config.Config, configPath string) error {
	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(configPath, buf.Bytes(), 0o644)
}
