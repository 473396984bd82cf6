package viewer

import (
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/backscroll/internal/core/search"
	"github.com/colonyops/backscroll/internal/core/styles"
)

// repaint redraws every window row from the current state.
func (m *Model) repaint() {
	var matches []bool
	if !m.cite.Active() && m.search.Active() {
		matches = search.Highlights(m.store(), m.top, m.windowHeight(), m.search.Pattern(), m.search.CaseSensitive())
	}
	for y := range m.windowHeight() {
		m.paintLine(y, matches != nil && matches[y])
	}
	if m.cite.Active() {
		m.main.Locate(0, m.citeY)
	}
}

// drawLine redraws one window row, deciding the match highlight itself.
func (m *Model) drawLine(y int) {
	match := false
	if !m.cite.Active() && m.search.Active() {
		match = search.RowMatches(m.store().Get(m.top+y), m.search.Pattern(), m.search.CaseSensitive())
	}
	m.paintLine(y, match)
}

func (m *Model) paintLine(y int, match bool) {
	line := m.top + y
	row := m.store().Get(line)

	switch {
	case m.cite.Active() && y == m.citeY:
		m.main.DrawRowStyled(y, row, styles.CiteCursorStyle)
	case m.cite.Active() && m.cite.InRange(line):
		m.main.DrawRowStyled(y, row, styles.CiteRangeStyle)
	case match:
		m.main.DrawRowInverse(y, row)
	case line < 0 || line >= m.store().Len():
		m.main.DrawRowStyled(y, row, styles.SentinelStyle)
	default:
		m.main.DrawRow(y, row)
	}
}

// statusText returns the plain help line for the current mode.
func (m *Model) statusText() string {
	if !m.cite.Active() {
		return helpLine
	}
	if _, ok := m.cite.Start(); ok {
		return citeEndLine
	}
	return citeStartLine
}

func (m *Model) drawStatus() {
	m.status.Locate(0, 0)
	switch {
	case m.prompt.active:
		m.status.PutLine(0, m.prompt.View())
	case m.notice != "" && m.noticeErr:
		m.status.PrintStyled(m.notice, styles.ErrorStyle)
	case m.notice != "":
		m.status.PrintStyled(m.notice, styles.NoticeStyle)
	default:
		m.status.PrintStyled(m.statusText(), styles.StatusStyle)
	}
}

func (m Model) render() string {
	body := m.main.Flush()
	if m.showHelp {
		box := styles.HelpStyle.Render(m.deps.Keys.HelpText())
		body = lipgloss.Place(m.width, m.windowHeight(), lipgloss.Center, lipgloss.Center, box)
	}
	return body + "\n" + m.status.Flush()
}
