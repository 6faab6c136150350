// Package views provides the individual views for the unified TUI.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wikitermbase/wikiterm/internal/citation"
	"github.com/wikitermbase/wikiterm/internal/clipboard"
	"github.com/wikitermbase/wikiterm/internal/lookup"
	"github.com/wikitermbase/wikiterm/internal/tui/components"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(components.ColorAccent).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(components.ColorPrimary).
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(components.ColorMuted).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(components.ColorMuted)
)

// headerHeight is the input line plus the status line.
const headerHeight = 2

type focus int

const (
	focusInput focus = iota
	focusResults
)

// row is one selectable line of the result list: a group heading or an
// occurrence. Occurrences are addressed by identifier, groups by index into
// the session the rows were built from.
type row struct {
	group   int
	occ     int64
	isGroup bool
}

// SearchModel is the incremental search view. It renders the controller's
// session and routes input back to it.
type SearchModel struct {
	ctrl    *lookup.Controller
	clip    clipboard.Writer
	input   textinput.Model
	spinner spinner.Model
	vp      viewport.Model

	focus   focus
	session *lookup.Session
	rows    []row
	offsets []int
	cursor  int
	pointer pointerScope
	popup   string
	status  string

	width  int
	height int
}

// NewSearchModel creates a search view driven by ctrl.
func NewSearchModel(ctrl *lookup.Controller, clip clipboard.Writer) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "ابحث عن مصطلح / search a term..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(components.ColorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(components.ColorAccent)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(components.ColorAccent)

	m := SearchModel{
		ctrl:    ctrl,
		clip:    clip,
		input:   ti,
		spinner: sp,
		vp:      viewport.New(60, 10),
		session: ctrl.Session(),
	}
	m.refresh()
	return m
}

// Init starts the cursor blink and the spinner.
func (m SearchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// SetSize updates the view dimensions.
func (m *SearchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, width-4)
	m.refresh()
}

// Typing reports whether key presses go to the query input.
func (m SearchModel) Typing() bool {
	return m.focus == focusInput
}

// HandlesEsc reports whether the view uses esc itself.
func (m SearchModel) HandlesEsc() bool {
	return m.focus == focusResults
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateResults(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	cmd := m.ctrl.Update(msg)
	m.refresh()
	return m, cmd
}

func (m SearchModel) updateInput(msg tea.KeyMsg) (SearchModel, tea.Cmd) {
	switch msg.String() {
	case "down", "enter":
		if len(m.rows) > 0 {
			m.focus = focusResults
			m.input.Blur()
			m.refresh()
		}
		return m, nil
	}

	prev := m.input.Value()
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.input.Value() != prev {
		cmds = append(cmds, m.ctrl.QueryChanged(m.input.Value()))
	}
	return m, tea.Batch(cmds...)
}

func (m SearchModel) updateResults(msg tea.KeyMsg) (SearchModel, tea.Cmd) {
	view := m.session.View
	var cmd tea.Cmd
	m.status = ""

	switch msg.String() {
	case "esc":
		if _, open := view.ActiveCitation(); open {
			view.CloseCitation()
		} else {
			m.focus = focusInput
			cmd = m.input.Focus()
		}
	case "/", "i":
		m.focus = focusInput
		cmd = m.input.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, len(m.rows)-1)
	case "enter", " ":
		if r, ok := m.selected(); ok {
			if r.isGroup {
				view.ToggleGroup(m.session.Groups[r.group].Key)
			} else {
				view.ToggleCitation(r.occ)
			}
		}
	case "c":
		if r, ok := m.selected(); ok && !r.isGroup {
			view.ToggleCitation(r.occ)
		}
	case "d":
		if r, ok := m.selected(); ok && !r.isGroup {
			view.ToggleDescription(r.occ)
		}
	case "y":
		cmd = m.copyCitation()
	case "pgup":
		m.vp.SetYOffset(m.vp.YOffset - m.vp.Height/2)
	case "pgdown":
		m.vp.SetYOffset(m.vp.YOffset + m.vp.Height/2)
	}

	m.refresh()
	return m, cmd
}

func (m SearchModel) updateMouse(msg tea.MouseMsg) (SearchModel, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.pointer.outside(msg.X, msg.Y) {
		m.session.View.CloseCitation()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// copyCitation copies the citation of the open popup, or of the selected
// occurrence when no popup is open.
func (m *SearchModel) copyCitation() tea.Cmd {
	id, ok := m.session.View.ActiveCitation()
	if !ok {
		r, sel := m.selected()
		if !sel || r.isGroup {
			return nil
		}
		id = r.occ
	}

	occ, found := m.session.Occurrence(id)
	if !found {
		return nil
	}
	text, ok := citation.Format(occ)
	if !ok {
		m.status = "No citation: dictionary has no Wikidata identifier"
		return nil
	}
	if err := m.clip.Write(text); err != nil {
		m.status = fmt.Sprintf("Copy failed: %v", err)
		return nil
	}
	m.status = ""
	return m.ctrl.MarkCopied(id)
}

func (m SearchModel) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// refresh re-derives rows, popup and viewport content from the session.
func (m *SearchModel) refresh() {
	if s := m.ctrl.Session(); s != m.session {
		m.session = s
		m.cursor = 0
		m.vp.GotoTop()
	}

	m.rows = buildRows(m.session)
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
	if len(m.rows) == 0 && m.focus == focusResults {
		m.focus = focusInput
		m.input.Focus()
	}

	width := m.width
	if width <= 0 {
		width = 60
	}

	copiedID, copied := m.ctrl.CopiedID()

	m.popup = ""
	if id, open := m.session.View.ActiveCitation(); open {
		if occ, ok := m.session.Occurrence(id); ok {
			m.popup = components.CitationPopup(occ, copied && copiedID == id, min(width, 70))
		}
	}

	popupHeight := 0
	if m.popup != "" {
		popupHeight = lipgloss.Height(m.popup)
	}

	m.vp.Width = width
	m.vp.Height = max(1, m.height-headerHeight-1-popupHeight)

	content, offsets := m.renderContent(width)
	m.offsets = offsets
	m.vp.SetContent(content)
	m.scrollToCursor()

	if m.popup != "" {
		m.pointer.open(rect{
			x: 0,
			y: headerHeight + m.vp.Height,
			w: lipgloss.Width(m.popup),
			h: popupHeight,
		})
	} else {
		m.pointer.release()
	}
}

func (m *SearchModel) scrollToCursor() {
	if m.focus != focusResults || m.cursor >= len(m.offsets) {
		return
	}
	top := m.offsets[m.cursor]
	bottom := top + 1
	if m.cursor+1 < len(m.offsets) {
		bottom = m.offsets[m.cursor+1]
	}

	switch {
	case top < m.vp.YOffset:
		m.vp.SetYOffset(top)
	case bottom > m.vp.YOffset+m.vp.Height:
		m.vp.SetYOffset(bottom - m.vp.Height)
	}
}

func buildRows(s *lookup.Session) []row {
	var rows []row
	if s.Mode == lookup.ModeRaw {
		for _, occ := range s.Results {
			rows = append(rows, row{group: -1, occ: occ.ID})
		}
		return rows
	}
	for i, g := range s.Groups {
		rows = append(rows, row{group: i, isGroup: true})
		if !s.View.IsExpanded(g.Key) {
			continue
		}
		for _, occ := range g.Occurrences {
			rows = append(rows, row{group: i, occ: occ.ID})
		}
	}
	return rows
}

// renderContent draws the scrollable part and returns the first line of
// every row.
func (m SearchModel) renderContent(width int) (string, []int) {
	s := m.session
	var blocks []string
	line := 0
	add := func(block string) {
		blocks = append(blocks, block)
		line += lipgloss.Height(block)
	}

	if morph := components.Morphology(s.Morph, min(width-2, 60)); morph != "" {
		add(morph)
	}

	switch {
	case s.Err != "":
		add(errorStyle.Render(s.Err))
		return strings.Join(blocks, "\n"), nil
	case s.Empty():
		add(emptyStyle.Render(s.EmptyMessage()))
		return strings.Join(blocks, "\n"), nil
	}

	copiedID, copied := m.ctrl.CopiedID()
	offsets := make([]int, len(m.rows))

	for i, r := range m.rows {
		offsets[i] = line
		selected := m.focus == focusResults && i == m.cursor

		if r.isGroup {
			g := s.Groups[r.group]
			add(components.GroupHeader(g, s.View.IsExpanded(g.Key), selected))
			continue
		}

		occ, _ := s.Occurrence(r.occ)
		add(components.Occurrence(occ, components.OccurrenceOptions{
			Width:           width - 2,
			Selected:        selected,
			ShowTerms:       r.group < 0,
			DescriptionOpen: s.View.IsDescriptionOpen(r.occ),
			Copied:          copied && copiedID == r.occ,
		}))
	}

	return strings.Join(blocks, "\n"), offsets
}

// View renders the search view.
func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.session.Loading:
		b.WriteString(statusStyle.Render(m.spinner.View() + " Searching..."))
	case m.status != "":
		b.WriteString(errorStyle.Render(m.status))
	case m.session.Settled && m.session.Err == "":
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d results for %q", m.session.Len(), m.session.Query)))
	}
	b.WriteString("\n")

	b.WriteString(m.vp.View())

	if m.popup != "" {
		b.WriteString("\n")
		b.WriteString(m.popup)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))

	return b.String()
}

func (m SearchModel) help() string {
	if m.focus == focusInput {
		if len(m.rows) > 0 {
			return "type to search • ↓/enter: results • esc: menu"
		}
		return "type to search • esc: menu"
	}
	parts := []string{"j/k: move", "enter: open", "c: citation", "d: description", "y: copy", "/: search"}
	if _, open := m.session.View.ActiveCitation(); open {
		parts = append(parts, "esc: close")
	}
	return strings.Join(parts, " • ")
}
