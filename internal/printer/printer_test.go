package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("wrote %s", "config.yaml")
	p.Warnf("careful")
	p.Errorf("%d error(s) found", 2)
	p.Printf("  Item: %s", "lines")
	p.Section("Checks")
	p.CheckItem("Config file", "/tmp/x")
	p.FailItem("Target", "")

	out := ansi.Strip(buf.String())
	assert.Contains(t, out, "✔ wrote config.yaml\n")
	assert.Contains(t, out, "! careful\n")
	assert.Contains(t, out, "✘ 2 error(s) found\n")
	assert.Contains(t, out, "  Item: lines\n")
	assert.Contains(t, out, "Checks\n──────\n")
	assert.Contains(t, out, "Config file")
	assert.Contains(t, out, "/tmp/x")
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithPrinter(context.Background(), New(&buf))

	Ctx(ctx).Infof("hello")
	assert.Equal(t, "• hello\n", ansi.Strip(buf.String()))

	assert.NotNil(t, Ctx(context.Background()))
}
