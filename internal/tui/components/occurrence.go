package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wikitermbase/wikiterm/internal/aggregate"
	"github.com/wikitermbase/wikiterm/internal/citation"
	"github.com/wikitermbase/wikiterm/internal/wikiterm"
)

// Description toggle labels.
const (
	ShowMore = "عرض المزيد"
	ShowLess = "عرض أقل"
)

// OccurrenceOptions controls how an occurrence is drawn.
type OccurrenceOptions struct {
	Width           int
	Selected        bool
	ShowTerms       bool // draw the surface forms; groups already show them in the header
	DescriptionOpen bool
	Copied          bool
}

// Terms joins the non-empty surface forms of a term.
func Terms(arabic, english, french string) string {
	parts := []string{arabicStyle.Render(arabic)}
	for _, f := range []string{english, french} {
		if f != "" {
			parts = append(parts, formStyle.Render(f))
		}
	}
	return strings.Join(parts, "  ")
}

// Occurrence renders one dictionary occurrence.
func Occurrence(occ wikiterm.Occurrence, opts OccurrenceOptions) string {
	width := opts.Width
	if width <= 0 {
		width = 60
	}

	var lines []string

	marker := "  "
	if opts.Selected {
		marker = cursorStyle.Render("▸ ")
	}

	if opts.ShowTerms {
		lines = append(lines, marker+Terms(occ.Arabic, occ.English, occ.French))
		marker = "  "
	}

	info := labelStyle.Render(occ.InfoLine())
	if opts.Copied {
		info += "  " + copiedStyle.Render("✓ Copied")
	}
	lines = append(lines, marker+info)

	if occ.Description != "" {
		text, cut := occ.ShortDescription()
		if opts.DescriptionOpen {
			text = occ.Description
		}
		lines = append(lines, indent(valueStyle.Render(WordWrap(text, width-4)), "    "))
		switch {
		case cut && opts.DescriptionOpen:
			lines = append(lines, "    "+mutedStyle.Render("["+ShowLess+"]"))
		case cut:
			lines = append(lines, "    "+mutedStyle.Render("["+ShowMore+"]"))
		}
	}

	if u := occ.DictionaryURL(); u != "" {
		lines = append(lines, "    "+linkStyle.Render(u))
	}

	return strings.Join(lines, "\n")
}

// GroupHeader renders the heading line of a term group.
func GroupHeader(g aggregate.Group, expanded, selected bool) string {
	arrow := "▸"
	if expanded {
		arrow = "▾"
	}
	marker := "  "
	if selected {
		marker = cursorStyle.Render("› ")
	}

	head := marker + arrow + " " + Terms(g.Arabic, g.English, g.French)
	if g.TopResult {
		head += "  " + topBadgeStyle.Render("★")
	}
	return head + "\n    " + mutedStyle.Render(g.CountLabel())
}

// Morphology renders the analysis panel, or "" when nothing was found.
func Morphology(m *wikiterm.MorphAnalysis, width int) string {
	if !m.Found() {
		return ""
	}

	row := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return labelStyle.Width(8).Render(label) + valueStyle.Render(value)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		row("Lemma", m.Lemma),
		row("Root", m.Root),
		row("POS", m.POS),
		linkStyle.Render(m.LemmaURL()),
	)
	if width > 0 {
		return boxStyle.Width(width).Render(content)
	}
	return boxStyle.Render(content)
}

// CitationPopup renders the citation box for occ.
func CitationPopup(occ wikiterm.Occurrence, copied bool, width int) string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Citation"))
	if copied {
		b.WriteString("  " + copiedStyle.Render("✓ Copied"))
	}
	b.WriteString("\n\n")

	if text, ok := citation.Format(occ); ok {
		b.WriteString(arabicStyle.Render(text))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("y: copy • esc: close"))
	} else {
		b.WriteString(mutedStyle.Render("No Wikidata identifier for this dictionary"))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("esc: close"))
	}

	if width > 0 {
		return popupStyle.Width(width).Render(b.String())
	}
	return popupStyle.Render(b.String())
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
