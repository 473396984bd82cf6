// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace so rendered
// views can be compared as plain text.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		result = append(result, strings.TrimRight(line, " "))
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// StripANSIKeepWidth removes ANSI escape codes and keeps padding intact.
func StripANSIKeepWidth(s string) string {
	return ansi.Strip(s)
}

// Lines returns the stripped view split into rows.
func Lines(s string) []string {
	return strings.Split(StripANSI(s), "\n")
}

// KeyPress creates a key press message for a single rune.
func KeyPress(key rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key, Text: string(key)})
}

// KeyPressShift creates a shifted letter key press, as terminals report
// capital letters.
func KeyPressShift(key rune) tea.Msg {
	upper := strings.ToUpper(string(key))
	return tea.KeyPressMsg(tea.Key{Code: key, ShiftedCode: []rune(upper)[0], Mod: tea.ModShift, Text: upper})
}

// Type returns one key press per rune of s.
func Type(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, KeyPress(r))
	}
	return msgs
}

// KeyCode creates a key press message for a special key such as
// tea.KeyEnter, tea.KeyEscape or tea.KeyPgUp.
func KeyCode(code rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: code})
}

// KeyCtrl creates a ctrl+<key> press.
func KeyCtrl(key rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key, Mod: tea.ModCtrl})
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
