package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wikitermbase/wikiterm/internal/clipboard"
	"github.com/wikitermbase/wikiterm/internal/config"
	"github.com/wikitermbase/wikiterm/internal/lookup"
	"github.com/wikitermbase/wikiterm/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewSearch ViewType = iota
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// AppModel is the main TUI model
type AppModel struct {
	ctrl *lookup.Controller

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	searchView   views.SearchModel
	settingsView views.SettingsModel

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI around ctrl. cfgPath is only displayed.
func NewApp(ctrl *lookup.Controller, clip clipboard.Writer, cfg *config.Config, cfgPath string) AppModel {
	searchLabel := "Search"
	if ctrl.Mode() == lookup.ModeRaw {
		searchLabel = "Raw search"
	}

	return AppModel{
		ctrl:         ctrl,
		sidebarWidth: 18,
		currentView:  ViewSearch,
		menuItems: []MenuItem{
			{Label: searchLabel, View: ViewSearch, Shortcut: "1"},
			{Label: "Settings", View: ViewSettings, Shortcut: "2"},
		},
		searchView:   views.NewSearchModel(ctrl, clip),
		settingsView: views.NewSettingsModel(cfg, cfgPath),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return m.searchView.Init()
}

// typing reports whether plain keys belong to the query input.
func (m AppModel) typing() bool {
	return !m.sidebarActive && m.currentView == ViewSearch && m.searchView.Typing()
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "tab":
			m.sidebarActive = !m.sidebarActive
			return m, nil
		case "esc":
			if m.sidebarActive {
				return m.quit()
			}
			if m.currentView != ViewSearch || !m.searchView.HandlesEsc() {
				m.sidebarActive = true
				return m, nil
			}
		}

		if !m.typing() {
			switch msg.String() {
			case "q":
				return m.quit()
			case "?":
				m.showHelp = true
				return m, nil
			case "1":
				return m.switchTo(ViewSearch), nil
			case "2":
				return m.switchTo(ViewSettings), nil
			}
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				m = m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

		var cmd tea.Cmd
		switch m.currentView {
		case ViewSearch:
			m.searchView, cmd = m.searchView.Update(msg)
		case ViewSettings:
			m.settingsView, cmd = m.settingsView.Update(msg)
		}
		return m, cmd

	case tea.MouseMsg:
		if m.sidebarActive || m.currentView != ViewSearch {
			return m, nil
		}
		msg.X -= m.contentOffsetX()
		msg.Y -= ContentStyle.GetPaddingTop()
		var cmd tea.Cmd
		m.searchView, cmd = m.searchView.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.contentOffsetX() - ContentStyle.GetPaddingRight()
		contentHeight := m.height - ContentStyle.GetVerticalPadding()

		m.searchView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)
		return m, nil

	case ViewSwitchMsg:
		return m.switchTo(msg.View), nil
	}

	// Lookup responses and timers go to the search view whichever view is
	// shown, so a search never stalls while settings are open.
	var cmd tea.Cmd
	m.searchView, cmd = m.searchView.Update(msg)
	return m, cmd
}

func (m AppModel) switchTo(v ViewType) AppModel {
	m.currentView = v
	m.sidebarActive = false
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	return m
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.ctrl.Close()
	return m, tea.Quit
}

// contentOffsetX is the column where the content area's text starts.
func (m AppModel) contentOffsetX() int {
	return m.sidebarWidth + SidebarStyle.GetHorizontalBorderSize() + ContentStyle.GetPaddingLeft()
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewSearch:
		content = m.searchView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	contentWidth := m.width - m.sidebarWidth - SidebarStyle.GetHorizontalBorderSize()
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" ويكي مصطلح "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Indicate current view but not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("? Help  q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	section := func(title string) string {
		return HelpSectionStyle.Render(title) + "\n"
	}
	entry := func(key, desc string) string {
		return HelpKeyStyle.Render(key) + HelpDescStyle.Render(desc) + "\n"
	}

	helpText := HelpTitleStyle.Render("wikiterm - Arabic term search") + "\n\n"

	helpText += section("Global Keys")
	helpText += entry("1-2", "Switch views")
	helpText += entry("tab", "Toggle sidebar focus")
	helpText += entry("?", "Show this help")
	helpText += entry("q", "Quit")

	helpText += section("Search Input")
	helpText += entry("type", "Search after a short pause")
	helpText += entry("↓/enter", "Move to results")

	helpText += section("Results")
	helpText += entry("j/k ↑/↓", "Move")
	helpText += entry("enter", "Toggle group / citation")
	helpText += entry("c", "Citation popup")
	helpText += entry("d", "Full description")
	helpText += entry("y", "Copy citation")
	helpText += entry("esc", "Close popup / back to input")
	helpText += entry("click", "Outside popup closes it")

	helpText += "\n" + HelpFooterStyle.Render("Press any key to close")

	helpBox := HelpBoxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
