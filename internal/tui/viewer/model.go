// Package viewer implements the interactive history browser: paging through
// the line store, searching it and selecting a range of lines to quote.
package viewer

import (
	"context"
	"errors"
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/backscroll/internal/core/cite"
	"github.com/colonyops/backscroll/internal/core/linestore"
	"github.com/colonyops/backscroll/internal/core/outbound"
	"github.com/colonyops/backscroll/internal/core/search"
	"github.com/colonyops/backscroll/internal/tui/screen"
)

const (
	helpLine      = "HISTORY: U=Up D=Down F=PgDn B=PgUp s=Srch S=CaseLess N=Next C=Cite ESC=Exit"
	citeStartLine = "CITATION: ENTER=select start line ESC=exit"
	citeEndLine   = "CITATION: ENTER=select end line ESC=exit"

	msgDisabled = "History buffer disabled!"
	msgEmpty    = "History buffer empty!"
	msgNoSearch = "No previous search! Please 's' or 'S' first!"
	msgWrapped  = "Search wrapping around to start!"
	msgNotFound = "Search string not found!"
	msgReversed = "Citation end is above its start!"
)

// Deps is everything one viewer session works with.
type Deps struct {
	Store      *linestore.Store
	Sink       outbound.Sink
	Encoder    outbound.Encoder
	Format     cite.Format
	MaxPattern int
	Keys       KeyMap
	Logger     zerolog.Logger
	// Ctx carries the session fields for log events.
	Ctx context.Context
}

// Result describes how a session ended.
type Result struct {
	Cited   bool  // a range was committed and emitted
	Start   int   // first cited line
	End     int   // last cited line
	Lines   int   // lines sent to the sink
	Top     int   // top line when the viewer closed
	Aborted bool  // left with ctrl+c
	Err     error // fatal error that ended the session
}

// Model is the bubbletea model of the history viewer.
type Model struct {
	deps Deps

	width  int
	height int
	main   *screen.Window
	status *screen.Window

	top   int  // logical index of the first window row
	moved bool // the user scrolled; a resize keeps top

	search search.State
	prompt searchPrompt

	cite  cite.Selector
	citeY int // citation cursor row inside the window

	notice    string
	noticeErr bool
	showHelp  bool

	done   bool
	result Result
}

// New returns a viewer over deps.Store for a terminal of width x height.
func New(deps Deps, width, height int) Model {
	if deps.Encoder == nil {
		deps.Encoder = outbound.UTF8{}
	}
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Format == (cite.Format{}) {
		deps.Format = cite.DefaultFormat()
	}
	if !deps.Keys.Up.Enabled() {
		deps.Keys = DefaultKeyMap()
	}

	m := Model{
		deps:   deps,
		search: search.NewState(deps.MaxPattern),
		prompt: newSearchPrompt(deps.MaxPattern, width),
		cite:   cite.NewSelector(),
	}
	m.layout(width, height)
	m.top = m.initialTop()
	m.repaint()
	m.drawStatus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Result returns how the session ended. It is meaningful once the program
// has quit.
func (m Model) Result() Result {
	return m.result
}

// Done reports whether the viewer has finished.
func (m Model) Done() bool {
	return m.done
}

// Top returns the logical index of the first window row.
func (m Model) Top() int {
	return m.top
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmd = m.handleResize(msg.Width, msg.Height)
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	default:
		if m.prompt.active {
			m.prompt.input, cmd = m.prompt.input.Update(msg)
		}
	}

	if !m.done {
		m.drawStatus()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *Model) store() *linestore.Store {
	return m.deps.Store
}

func (m *Model) history() int {
	return m.store().Capacity()
}

func (m *Model) windowHeight() int {
	return m.main.Height()
}

// initialTop places the bottom of the window on the last history line.
func (m *Model) initialTop() int {
	return max(0, m.history()-m.windowHeight())
}

func (m *Model) layout(width, height int) {
	m.width = max(width, 1)
	m.height = max(height, 2)

	if m.main != nil {
		m.main.Close(false)
		m.status.Close(false)
	}
	m.main = screen.Open(screen.Geometry{Width: m.width, Height: m.height - 1}, screen.Colors{})
	m.status = screen.Open(screen.Geometry{Y: m.height - 1, Width: m.width, Height: 1}, screen.Colors{})
	m.prompt.SetWidth(m.width)
	m.citeY = min(m.citeY, m.windowHeight()-1)
}

func (m *Model) handleResize(width, height int) tea.Cmd {
	if err := m.store().Resize(width); err != nil {
		return m.fatal(fmt.Errorf("resize history view: %w", err))
	}
	m.layout(width, height)
	if !m.moved {
		m.top = m.initialTop()
	}
	m.trackCite()
	m.repaint()
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.prompt.active {
		return m.handlePromptKey(msg)
	}

	m.notice = ""
	m.noticeErr = false

	keys := m.deps.Keys
	switch {
	case key.Matches(msg, keys.Abort):
		m.result.Aborted = true
		return m.finish()
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return nil
	case key.Matches(msg, keys.Search):
		return m.openSearch(true)
	case key.Matches(msg, keys.SearchCaseless):
		return m.openSearch(false)
	case key.Matches(msg, keys.Next):
		return m.searchNext()
	case key.Matches(msg, keys.Up):
		return m.lineUp()
	case key.Matches(msg, keys.Down):
		return m.lineDown()
	case key.Matches(msg, keys.PageUp):
		return m.pageUp()
	case key.Matches(msg, keys.PageDown):
		return m.pageDown()
	case key.Matches(msg, keys.Cite):
		m.toggleCite()
		return nil
	case key.Matches(msg, keys.Select):
		return m.selectLine()
	case key.Matches(msg, keys.Back):
		return m.back()
	}
	return nil
}

func (m *Model) finish() tea.Cmd {
	m.done = true
	m.result.Top = m.top
	m.main.Close(m.top != m.history())
	m.status.Close(true)
	return tea.Quit
}

func (m *Model) fatal(err error) tea.Cmd {
	m.deps.Logger.Error().Ctx(m.deps.Ctx).Err(err).Msg("viewer stopped")
	m.result.Err = err
	return m.finish()
}

// fail reports a user error: bell plus a status message until the next key.
func (m *Model) fail(msg string) tea.Cmd {
	m.notice = msg
	m.noticeErr = true
	return screen.Bell()
}

func (m *Model) inform(msg string) {
	m.notice = msg
	m.noticeErr = false
}

// historyError returns the message for an unusable history, or "".
func (m *Model) historyError() string {
	switch {
	case m.history() == 0:
		return msgDisabled
	case m.store().Filled() == 0:
		return msgEmpty
	}
	return ""
}

func (m *Model) openSearch(caseSensitive bool) tea.Cmd {
	if msg := m.historyError(); msg != "" {
		return m.fail(msg)
	}
	if m.cite.Active() {
		return nil
	}
	m.showHelp = false
	return m.prompt.Open(m.search.Pattern(), caseSensitive)
}

func (m *Model) handlePromptKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, m.deps.Keys.Abort) {
		m.prompt.Close()
		m.result.Aborted = true
		return m.finish()
	}

	var (
		outcome promptOutcome
		cmd     tea.Cmd
	)
	m.prompt, outcome, cmd = m.prompt.Update(msg)

	switch outcome {
	case promptSubmitted:
		m.search.Set(m.prompt.Value(), m.prompt.caseSensitive)
		m.repaint()
		if !m.search.Active() {
			return screen.Bell()
		}
		return m.runSearch(m.top)
	case promptCancelled:
		return nil
	}
	return cmd
}

func (m *Model) searchNext() tea.Cmd {
	if m.cite.Active() {
		return nil
	}
	if !m.search.Active() {
		return m.fail(msgNoSearch)
	}
	if msg := m.historyError(); msg != "" {
		return m.fail(msg)
	}

	from := m.top
	if hit := m.search.Hit(); hit != search.NoHit && hit >= m.top && hit < m.top+m.windowHeight() {
		from = hit
	}
	return m.runSearch(from)
}

func (m *Model) runSearch(from int) tea.Cmd {
	res := search.FindNext(m.store(), m.store().Len(), from, m.search.Pattern(), m.search.CaseSensitive())
	if !res.Found {
		m.deps.Logger.Debug().Ctx(m.deps.Ctx).
			Str("pattern", m.search.Pattern()).
			Msg("search found nothing")
		return m.fail(msgNotFound)
	}

	m.search.SetHit(res.Line)
	m.top = min(max(res.Line, 0), m.history())
	m.moved = true
	m.repaint()

	if res.Wrapped {
		m.inform(msgWrapped)
	}
	return nil
}

func (m *Model) lineUp() tea.Cmd {
	if m.cite.Active() && m.citeY > 0 {
		m.citeY--
		m.trackCite()
		m.repaint()
		return nil
	}
	if m.history() == 0 {
		return m.fail(msgDisabled)
	}
	if m.top <= 0 {
		return nil
	}

	m.top--
	m.moved = true
	if m.cite.Active() {
		m.trackCite()
		m.repaint()
		return nil
	}
	m.main.Scroll(screen.ScrollDown)
	m.drawLine(0)
	return nil
}

func (m *Model) lineDown() tea.Cmd {
	if m.cite.Active() && m.citeY < m.windowHeight()-1 {
		m.citeY++
		m.trackCite()
		m.repaint()
		return nil
	}
	if m.history() == 0 {
		return m.fail(msgDisabled)
	}
	if m.top >= m.history() {
		return nil
	}

	m.top++
	m.moved = true
	if m.cite.Active() {
		m.trackCite()
		m.repaint()
		return nil
	}
	m.main.Scroll(screen.ScrollUp)
	m.drawLine(m.windowHeight() - 1)
	return nil
}

func (m *Model) pageUp() tea.Cmd {
	if m.history() == 0 {
		return m.fail(msgDisabled)
	}
	if m.top <= 0 {
		return nil
	}
	m.top = max(0, m.top-m.windowHeight())
	m.moved = true
	m.trackCite()
	m.repaint()
	return nil
}

func (m *Model) pageDown() tea.Cmd {
	if m.history() == 0 {
		return m.fail(msgDisabled)
	}
	if m.top >= m.history() {
		return nil
	}
	m.top = min(m.history(), m.top+m.windowHeight())
	m.moved = true
	m.trackCite()
	m.repaint()
	return nil
}

func (m *Model) toggleCite() {
	m.cite.Toggle()
	if m.cite.Active() {
		m.citeY = 0
		m.showHelp = false
	}
	m.repaint()
}

// selectLine marks the line under the citation cursor. The second mark
// commits the range, emits it and ends the session.
func (m *Model) selectLine() tea.Cmd {
	if !m.cite.Active() {
		return nil
	}

	line := m.top + m.citeY
	if err := m.cite.Mark(line); err != nil {
		if errors.Is(err, cite.ErrReversedRange) {
			return m.fail(msgReversed)
		}
		return m.fatal(err)
	}

	start, end, ok := m.cite.Range()
	if !ok {
		m.repaint()
		return nil
	}

	m.result.Cited = true
	m.result.Start = start
	m.result.End = end
	if m.deps.Sink != nil {
		n, err := m.cite.Emit(m.store(), m.deps.Sink, m.deps.Encoder, m.deps.Format)
		if err != nil {
			return m.fatal(fmt.Errorf("emit citation: %w", err))
		}
		m.result.Lines = n
		m.deps.Logger.Info().Ctx(m.deps.Ctx).
			Int("start", start).
			Int("end", end).
			Int("lines", n).
			Msg("citation emitted")
	}
	return m.finish()
}

// back leaves the viewer outside citation mode; inside it steps the
// selector back one phase and keeps the cursor where it is.
func (m *Model) back() tea.Cmd {
	if m.showHelp {
		m.showHelp = false
		return nil
	}
	if !m.cite.Active() {
		return m.finish()
	}
	m.cite.Cancel()
	m.repaint()
	return nil
}

func (m *Model) trackCite() {
	m.cite.Track(m.top + m.citeY)
}
