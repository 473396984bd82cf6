package initcmd

import (
	"errors"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/backscroll/internal/core/config"
)

// Status is the outcome of one check.
type Status int

const (
	StatusPass Status = iota
	StatusWarn
	StatusFail
)

// CheckItem is one line of the post-init report.
type CheckItem struct {
	Label  string
	Status Status
	Detail string
}

// InitCheck validates the config the wizard wrote.
type InitCheck struct {
	configPath string
	dataDir    string
}

// NewInitCheck creates a new init validation check.
func NewInitCheck(configPath, dataDir string) *InitCheck {
	return &InitCheck{configPath: configPath, dataDir: dataDir}
}

func (c *InitCheck) Name() string {
	return "Init Validation"
}

// Run loads the written config and reports on it.
func (c *InitCheck) Run() []CheckItem {
	if _, err := os.Stat(c.configPath); err != nil {
		return []CheckItem{{Label: "Config file", Status: StatusFail, Detail: c.configPath + " not found"}}
	}
	items := []CheckItem{{Label: "Config file", Status: StatusPass, Detail: c.configPath}}

	cfg, err := config.Load(c.configPath, c.dataDir)
	if err != nil {
		return append(items, CheckItem{Label: "Config loads", Status: StatusFail, Detail: err.Error()})
	}
	items = append(items, CheckItem{Label: "Config loads", Status: StatusPass})

	if err := cfg.ValidateDeep(c.configPath); err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				items = append(items, CheckItem{Label: fe.Field, Status: StatusFail, Detail: fe.Err.Error()})
			}
		} else {
			items = append(items, CheckItem{Label: "Validation", Status: StatusFail, Detail: err.Error()})
		}
	}

	for _, w := range cfg.Warnings() {
		items = append(items, CheckItem{Label: w.Category, Status: StatusWarn, Detail: w.Message})
	}
	return items
}
