// Package printer writes human-facing command output: status lines with a
// leading glyph, section headers and check results.
package printer

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/backscroll/internal/core/styles"
)

type ctxKey struct{}

// Printer formats output for a terminal.
type Printer struct {
	w io.Writer
}

// New returns a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// WithPrinter stores p on the context.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored on ctx, or one writing to stdout.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) line(glyph string, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintln(p.w, style.Render(glyph)+" "+msg)
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// Successf writes a line marked as done.
func (p *Printer) Successf(format string, args ...any) {
	p.line("✔", lipgloss.NewStyle().Foreground(styles.ColorSuccess), format, args...)
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line("•", lipgloss.NewStyle().Foreground(styles.ColorPrimary), format, args...)
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line("!", lipgloss.NewStyle().Foreground(styles.ColorWarning).Bold(true), format, args...)
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line("✘", lipgloss.NewStyle().Foreground(styles.ColorError).Bold(true), format, args...)
}

// Section writes a header followed by a divider.
func (p *Printer) Section(title string) {
	_, _ = fmt.Fprintln(p.w, styles.CommandHeaderStyle.Render(title))
	_, _ = fmt.Fprintln(p.w, styles.DividerStyle.Render(divider(title)))
}

// CheckItem, WarnItem and FailItem write one aligned check result.
func (p *Printer) CheckItem(label, detail string) {
	p.item("✔", styles.ColorSuccess, label, detail)
}

func (p *Printer) WarnItem(label, detail string) {
	p.item("!", styles.ColorWarning, label, detail)
}

func (p *Printer) FailItem(label, detail string) {
	p.item("✘", styles.ColorError, label, detail)
}

func (p *Printer) item(glyph string, c color.Color, label, detail string) {
	out := "  " + lipgloss.NewStyle().Foreground(c).Render(glyph) + " " + styles.CommandStyle.Render(fmt.Sprintf("%-16s", label))
	if detail != "" {
		out += " " + lipgloss.NewStyle().Foreground(styles.ColorMuted).Render(detail)
	}
	_, _ = fmt.Fprintln(p.w, out)
}

func divider(title string) string {
	return strings.Repeat("─", lipgloss.Width(title))
}
