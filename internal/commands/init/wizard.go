package initcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/backscroll/internal/core/outbound"
	"github.com/colonyops/backscroll/internal/core/styles"
	"github.com/colonyops/backscroll/internal/printer"
)

// WizardOptions configures the wizard behavior.
type WizardOptions struct {
	ConfigPath string
	DataDir    string
	Yes        bool // skip prompts, use defaults
	Force      bool // overwrite existing config
	Target     string
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts WizardOptions
}

// NewWizard creates a new init wizard.
func NewWizard(opts WizardOptions) *Wizard {
	return &Wizard{opts: opts}
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	if ConfigExists(w.opts.ConfigPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", w.opts.ConfigPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(w.opts.ConfigPath + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	answers := DefaultConfigOptions()
	if w.opts.Target != "" {
		answers.Target = w.opts.Target
	}

	if !w.opts.Yes {
		var err error
		answers, err = w.promptUser(answers)
		if err != nil {
			return err
		}
	}
	answers.Target = expandHome(answers.Target)

	backupPath, err := BackupConfig(w.opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("backup config: %w", err)
	}
	if backupPath != "" {
		p.Successf("Backed up config to: %s", backupPath)
	}

	if err := WriteConfig(GenerateConfig(answers), w.opts.ConfigPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	p.Successf("Created config: %s", w.opts.ConfigPath)

	p.Printf("")
	check := NewInitCheck(w.opts.ConfigPath, w.opts.DataDir)
	p.Section(check.Name())
	for _, item := range check.Run() {
		switch item.Status {
		case StatusPass:
			p.CheckItem(item.Label, item.Detail)
		case StatusWarn:
			p.WarnItem(item.Label, item.Detail)
		case StatusFail:
			p.FailItem(item.Label, item.Detail)
		}
	}

	p.Printf("")
	p.Section("Next Steps")
	p.Printf("  1. Run 'backscroll keys' to see the viewer keys")
	p.Printf("  2. Run 'backscroll view session.log' or 'backscroll run -- CMD'")
	return nil
}

func (w *Wizard) promptUser(answers ConfigOptions) (ConfigOptions, error) {
	history := strconv.Itoa(answers.HistoryLines)

	themes := make([]huh.Option[string], 0, len(styles.ThemeNames()))
	for _, name := range styles.ThemeNames() {
		themes = append(themes, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("History lines").
				Description("Lines kept for scrollback; 0 disables the history viewer").
				Value(&history).
				Validate(validateHistory),
			huh.NewInput().
				Title("Citation target").
				Description("'stdout', or a file, FIFO or device such as /dev/ttyUSB0").
				Value(&answers.Target),
			huh.NewInput().
				Title("Remote character set").
				Description("Cited lines are encoded in this charset, e.g. utf-8, iso-8859-1, cp437").
				Value(&answers.Charset).
				Validate(func(s string) error {
					_, err := outbound.NewEncoder(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Quote prefix").
				Description("Sent before every cited line").
				Value(&answers.Prefix),
			huh.NewSelect[string]().
				Title("Line ending").
				Options(
					huh.NewOption("CR (serial consoles)", "cr"),
					huh.NewOption("LF", "lf"),
					huh.NewOption("CRLF", "crlf"),
				).
				Value(&answers.LineEnding),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themes...).
				Value(&answers.Theme),
		),
	)
	if err := form.Run(); err != nil {
		return answers, err
	}

	answers.HistoryLines, _ = strconv.Atoi(strings.TrimSpace(history))
	return answers, nil
}

func validateHistory(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < 0 {
		return errors.New("cannot be negative")
	}
	return nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
