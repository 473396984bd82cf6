// Package config handles configuration loading and validation for backscroll.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/backscroll/internal/core/styles"
)

// TargetStdout sends citations to standard output after the viewer exits.
const TargetStdout = "stdout"

// Config holds the application configuration.
type Config struct {
	History  HistoryConfig  `yaml:"history"`
	Search   SearchConfig   `yaml:"search"`
	Cite     CiteConfig     `yaml:"cite"`
	Outbound OutboundConfig `yaml:"outbound"`
	Capture  CaptureConfig  `yaml:"capture"`
	TUI      TUIConfig      `yaml:"tui"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// HistoryConfig sizes the line store.
type HistoryConfig struct {
	// Lines is the history ring capacity. Zero disables history; nil means
	// the default.
	Lines *int `yaml:"lines"`
	// Viewport is the number of live rows kept below the history. Zero uses
	// the terminal height minus the status line.
	Viewport int `yaml:"viewport"`
}

// SearchConfig holds search settings.
type SearchConfig struct {
	MaxPattern int `yaml:"max_pattern"` // longest search pattern in runes
}

// CiteConfig controls how cited lines are quoted.
type CiteConfig struct {
	Prefix     *string `yaml:"prefix"`      // nil means "> "
	LineEnding string  `yaml:"line_ending"` // cr, lf, crlf or a literal string
}

// OutboundConfig selects where cited lines go.
type OutboundConfig struct {
	Target  string `yaml:"target"`  // stdout, or a path to a file, FIFO or device
	Charset string `yaml:"charset"` // WHATWG or IANA charset name
	Append  *bool  `yaml:"append"`  // append to Target instead of truncating
}

// CaptureConfig controls how output becomes rows.
type CaptureConfig struct {
	TabWidth int `yaml:"tab_width"`
	Columns  int `yaml:"columns"` // zero uses the terminal width
}

// TUIConfig holds viewer appearance settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultHistoryLines is the history capacity when none is configured.
const DefaultHistoryLines = 2000

// DefaultMaxPattern bounds search patterns.
const DefaultMaxPattern = 29

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	lines := DefaultHistoryLines
	prefix := "> "
	appendOut := true
	return Config{
		History: HistoryConfig{
			Lines: &lines,
		},
		Search: SearchConfig{
			MaxPattern: DefaultMaxPattern,
		},
		Cite: CiteConfig{
			Prefix:     &prefix,
			LineEnding: "cr",
		},
		Outbound: OutboundConfig{
			Target:  TargetStdout,
			Charset: "utf-8",
			Append:  &appendOut,
		},
		Capture: CaptureConfig{
			TabWidth: 8,
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.History.Lines == nil {
		c.History.Lines = defaults.History.Lines
	}
	if c.Search.MaxPattern == 0 {
		c.Search.MaxPattern = defaults.Search.MaxPattern
	}
	if c.Cite.Prefix == nil {
		c.Cite.Prefix = defaults.Cite.Prefix
	}
	if c.Cite.LineEnding == "" {
		c.Cite.LineEnding = defaults.Cite.LineEnding
	}
	if c.Outbound.Target == "" {
		c.Outbound.Target = defaults.Outbound.Target
	}
	if c.Outbound.Charset == "" {
		c.Outbound.Charset = defaults.Outbound.Charset
	}
	if c.Outbound.Append == nil {
		c.Outbound.Append = defaults.Outbound.Append
	}
	if c.Capture.TabWidth == 0 {
		c.Capture.TabWidth = defaults.Capture.TabWidth
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.HistoryLines() < 0 {
		return fmt.Errorf("history.lines cannot be negative")
	}

	if c.History.Viewport < 0 {
		return fmt.Errorf("history.viewport cannot be negative")
	}

	if c.Search.MaxPattern < 2 {
		return fmt.Errorf("search.max_pattern must be at least 2")
	}

	if c.Capture.TabWidth < 1 {
		return fmt.Errorf("capture.tab_width must be at least 1")
	}

	if c.Capture.Columns < 0 {
		return fmt.Errorf("capture.columns cannot be negative")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not one of: %s", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", "))
	}

	return nil
}

// HistoryLines returns the configured history capacity.
func (c *Config) HistoryLines() int {
	if c.History.Lines == nil {
		return DefaultHistoryLines
	}
	return *c.History.Lines
}

// QuotePrefix returns the string sent before each cited line.
func (c *Config) QuotePrefix() string {
	if c.Cite.Prefix == nil {
		return "> "
	}
	return *c.Cite.Prefix
}

// LineEnding returns the terminator sent after each cited line. The names
// cr, lf and crlf select control characters; anything else is used as-is.
func (c *Config) LineEnding() string {
	switch strings.ToLower(c.Cite.LineEnding) {
	case "", "cr":
		return "\r"
	case "lf":
		return "\n"
	case "crlf":
		return "\r\n"
	default:
		return c.Cite.LineEnding
	}
}

// AppendOutput reports whether file targets are opened for appending.
func (c *Config) AppendOutput() bool {
	return c.Outbound.Append == nil || *c.Outbound.Append
}

// LogFile returns the default log path inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "backscroll.log")
}
