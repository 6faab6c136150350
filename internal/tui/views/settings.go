package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wikitermbase/wikiterm/internal/config"
	"github.com/wikitermbase/wikiterm/internal/tui/components"
)

// Settings view styles
var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(components.ColorPrimary).
				MarginBottom(1)

	settingsPathStyle = lipgloss.NewStyle().
				Foreground(components.ColorMuted).
				Italic(true).
				MarginBottom(1)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(components.ColorAccent).
				Background(components.ColorBgAlt).
				Padding(0, 2)

	settingsKeyStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(components.ColorLabel).
				Width(14)

	settingsRowStyle = lipgloss.NewStyle().
				Foreground(components.ColorText)

	settingsMutedStyle = lipgloss.NewStyle().
				Foreground(components.ColorMuted)

	settingsHelpStyle = lipgloss.NewStyle().
				Foreground(components.ColorMuted).
				MarginTop(1)
)

var settingsTabs = []string{"API", "Search", "Log"}

// SettingsModel shows the effective configuration.
type SettingsModel struct {
	config *config.Config
	path   string

	tab int

	width  int
	height int
}

// NewSettingsModel creates a new settings model for cfg loaded from path.
func NewSettingsModel(cfg *config.Config, path string) SettingsModel {
	if cfg == nil {
		cfg = config.Default()
	}
	return SettingsModel{
		config: cfg,
		path:   path,
	}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "right", "l":
			m.tab = (m.tab + 1) % len(settingsTabs)
		case "left", "h":
			m.tab--
			if m.tab < 0 {
				m.tab = len(settingsTabs) - 1
			}
		}
	}
	return m, nil
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(settingsTitleStyle.Render("Configuration"))
	b.WriteString("\n")

	path := m.path
	if path == "" {
		path = "(defaults, no config file)"
	}
	b.WriteString(settingsPathStyle.Render("Config: " + path))
	b.WriteString("\n\n")

	var tabViews []string
	for i, t := range settingsTabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabViews = append(tabViews, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(components.ColorBorder).Render(strings.Repeat("─", max(10, min(m.width-4, 60)))))
	b.WriteString("\n\n")

	for _, kv := range m.rows() {
		b.WriteString(settingsKeyStyle.Render(kv[0]))
		b.WriteString(settingsRowStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(settingsMutedStyle.Render("Edit the config file and restart to apply changes"))
	b.WriteString("\n")
	b.WriteString(settingsHelpStyle.Render("←/→: switch tabs"))

	return b.String()
}

func (m SettingsModel) rows() [][2]string {
	c := m.config
	switch m.tab {
	case 1:
		return [][2]string{
			{"mode", c.Search.Mode},
			{"debounce", c.Search.Debounce.String()},
			{"morphology", fmt.Sprintf("%t", c.Search.Morphology)},
		}
	case 2:
		file := c.Log.File
		if file == "" {
			file = "(discarded)"
		}
		return [][2]string{
			{"level", c.Log.Level},
			{"file", file},
		}
	default:
		return [][2]string{
			{"base_url", c.API.BaseURL},
			{"timeout", c.API.Timeout.String()},
		}
	}
}
