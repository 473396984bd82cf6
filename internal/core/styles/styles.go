// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"image/color"
	"strconv"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/lucasb-eyer/go-colorful"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
	ColorHighlight  color.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style

	// Viewer styles.
	StatusStyle     lipgloss.Style
	PromptStyle     lipgloss.Style
	ErrorStyle      lipgloss.Style
	NoticeStyle     lipgloss.Style
	MatchStyle      lipgloss.Style
	CiteRangeStyle  lipgloss.Style
	CiteCursorStyle lipgloss.Style
	SentinelStyle   lipgloss.Style
	HelpStyle       lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorHighlight = p.Highlight

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	StatusStyle = lipgloss.NewStyle().
		Background(ColorSurface).
		Foreground(ColorForeground)
	PromptStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ErrorStyle = lipgloss.NewStyle().
		Background(ColorError).
		Foreground(ColorBackground).
		Bold(true)
	NoticeStyle = lipgloss.NewStyle().
		Background(ColorWarning).
		Foreground(ColorBackground)

	MatchStyle = lipgloss.NewStyle().
		Reverse(true)
	CiteRangeStyle = lipgloss.NewStyle().
		Background(ColorHighlight)
	CiteCursorStyle = lipgloss.NewStyle().
		Reverse(true).
		Bold(true)
	SentinelStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	HelpStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// CellColor maps a captured cell color index to a terminal color. Indexes
// 0-15 are the ANSI colors; negative values mean the terminal default.
func CellColor(index int8) color.Color {
	if index < 0 {
		return nil
	}
	return lipgloss.Color(strconv.Itoa(int(index)))
}

func colorHexPtr(c color.Color) *string {
	if c == nil {
		return nil
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return nil
	}
	hex := cc.Hex()
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = colorHexPtr(ColorSurface)
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Code.Color = secondary
	cfg.Table.Color = fg

	return cfg
}
