package initcmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/backscroll/internal/core/config"
	"github.com/colonyops/backscroll/internal/printer"
)

func TestBackupConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	backup, err := BackupConfig(path)
	require.NoError(t, err)
	assert.Empty(t, backup, "nothing to back up")

	require.NoError(t, os.WriteFile(path, []byte("history:\n  lines: 10\n"), 0o644))
	backup, err = BackupConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", backup)

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "history:\n  lines: 10\n", string(data))
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	opts := DefaultConfigOptions()
	opts.HistoryLines = 500
	opts.Prefix = "| "
	opts.LineEnding = "crlf"
	opts.Charset = "iso-8859-1"
	opts.Theme = "gruvbox"

	require.NoError(t, WriteConfig(GenerateConfig(opts), path))

	cfg, err := config.Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.HistoryLines())
	assert.Equal(t, "| ", cfg.QuotePrefix())
	assert.Equal(t, "\r\n", cfg.LineEnding())
	assert.Equal(t, "iso-8859-1", cfg.Outbound.Charset)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
}

func TestInitCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	items := NewInitCheck(path, dir).Run()
	require.Len(t, items, 1)
	assert.Equal(t, StatusFail, items[0].Status)

	opts := DefaultConfigOptions()
	opts.HistoryLines = 0
	require.NoError(t, WriteConfig(GenerateConfig(opts), path))

	items = NewInitCheck(path, dir).Run()
	require.Len(t, items, 3)
	assert.Equal(t, StatusPass, items[0].Status)
	assert.Equal(t, StatusPass, items[1].Status)
	assert.Equal(t, StatusWarn, items[2].Status, "disabled history warns")
}

func TestValidateHistory(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "2000"},
		{in: " 0 "},
		{in: "-1", wantErr: true},
		{in: "lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := validateHistory(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWizard_Yes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	target := filepath.Join(dir, "quotes.txt")

	var buf bytes.Buffer
	ctx := printer.WithPrinter(context.Background(), printer.New(&buf))

	w := NewWizard(WizardOptions{ConfigPath: path, DataDir: dir, Yes: true, Target: target})
	require.NoError(t, w.Run(ctx))
	assert.Contains(t, buf.String(), "Created config")

	cfg, err := config.Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, target, cfg.Outbound.Target)

	err = w.Run(ctx)
	require.Error(t, err, "existing config without --force")
	assert.Contains(t, err.Error(), "--force")

	w = NewWizard(WizardOptions{ConfigPath: path, DataDir: dir, Yes: true, Force: true})
	require.NoError(t, w.Run(ctx))
	assert.FileExists(t, path+".bak")
}
