package viewer

import (
	"fmt"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/backscroll/internal/core/styles"
)

// searchLabel is filled with the pattern length limit.
const searchLabel = "SEARCH FOR (ESC=Exit)(%d): "

// promptOutcome tells the viewer what a key did to the search prompt.
type promptOutcome int

const (
	promptEditing promptOutcome = iota
	promptSubmitted
	promptCancelled
)

// searchPrompt is the one-line pattern input opened by the search keys.
type searchPrompt struct {
	active        bool
	caseSensitive bool
	label         string
	input         textinput.Model
}

func newSearchPrompt(maxLen, width int) searchPrompt {
	label := fmt.Sprintf(searchLabel, maxLen)

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = maxLen
	ti.SetWidth(max(width-len(label)-1, 1))

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	ti.SetStyles(inputStyles)

	return searchPrompt{label: label, input: ti}
}

// Open shows the prompt prefilled with the previous pattern.
func (p *searchPrompt) Open(previous string, caseSensitive bool) tea.Cmd {
	p.active = true
	p.caseSensitive = caseSensitive
	p.input.SetValue(previous)
	p.input.CursorEnd()
	return p.input.Focus()
}

// Close hides the prompt.
func (p *searchPrompt) Close() {
	p.active = false
	p.input.Blur()
}

// Value returns the typed pattern.
func (p searchPrompt) Value() string {
	return p.input.Value()
}

// SetWidth fits the input to a status line of the given width.
func (p *searchPrompt) SetWidth(width int) {
	p.input.SetWidth(max(width-len(p.label)-1, 1))
}

// Update feeds a key to the prompt. Enter submits and esc cancels; both
// close the prompt.
func (p searchPrompt) Update(msg tea.KeyPressMsg) (searchPrompt, promptOutcome, tea.Cmd) {
	if !p.active {
		return p, promptCancelled, nil
	}

	switch msg.String() {
	case "enter":
		p.Close()
		return p, promptSubmitted, nil
	case "esc":
		p.Close()
		return p, promptCancelled, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, promptEditing, cmd
}

// View renders the label and input.
func (p searchPrompt) View() string {
	if !p.active {
		return ""
	}
	return styles.PromptStyle.Render(p.label) + p.input.View()
}
