package viewer

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"github.com/mattn/go-runewidth"
)

// KeyMap holds the viewer key bindings.
type KeyMap struct {
	Search         key.Binding
	SearchCaseless key.Binding
	Next           key.Binding
	Up             key.Binding
	Down           key.Binding
	PageUp         key.Binding
	PageDown       key.Binding
	Cite           key.Binding
	Select         key.Binding
	Back           key.Binding
	Help           key.Binding
	Abort          key.Binding
}

// DefaultKeyMap returns the classic history browser keys. Letters work in
// either case.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("s /", "search, case matters"),
		),
		SearchCaseless: key.NewBinding(
			key.WithKeys("\\", "S", "shift+s"),
			key.WithHelp("S \\", "search, ignore case"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "N", "shift+n"),
			key.WithHelp("n", "next match"),
		),
		Up: key.NewBinding(
			key.WithKeys("u", "U", "shift+u", "up"),
			key.WithHelp("u ↑", "line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("d", "D", "shift+d", "down"),
			key.WithHelp("d ↓", "line down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("b", "B", "shift+b", "pgup"),
			key.WithHelp("b pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("f", "F", "shift+f", "space", "pgdown"),
			key.WithHelp("f space pgdn", "page down"),
		),
		Cite: key.NewBinding(
			key.WithKeys("c", "C", "shift+c"),
			key.WithHelp("c", "toggle citation"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "ctrl+j"),
			key.WithHelp("enter", "mark citation start, then end"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "step back, or leave"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle this help"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "leave without citing"),
		),
	}
}

// Bindings returns every binding in display order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.PageUp, k.PageDown,
		k.Search, k.SearchCaseless, k.Next,
		k.Cite, k.Select, k.Back, k.Help, k.Abort,
	}
}

// HelpText renders the bindings as aligned plain text.
func (k KeyMap) HelpText() string {
	width := 0
	for _, b := range k.Bindings() {
		width = max(width, runewidth.StringWidth(b.Help().Key))
	}

	var sb strings.Builder
	for i, b := range k.Bindings() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(runewidth.FillRight(b.Help().Key, width))
		sb.WriteString("  ")
		sb.WriteString(b.Help().Desc)
	}
	return sb.String()
}

// Markdown renders the bindings as a markdown table.
func (k KeyMap) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# History viewer keys\n\n")
	sb.WriteString("| Key | Action |\n|---|---|\n")
	for _, b := range k.Bindings() {
		fmt.Fprintf(&sb, "| `%s` | %s |\n", b.Help().Key, b.Help().Desc)
	}
	sb.WriteString("\nSearch and next are ignored while a citation is being selected. ")
	sb.WriteString("Patterns shorter than two characters never match.\n")
	return sb.String()
}
