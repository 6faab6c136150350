package lookup

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wikitermbase/wikiterm/internal/wikiterm"
)

// Analyzer returns the morphological analysis of an Arabic query.
type Analyzer interface {
	Analyze(ctx context.Context, query string) (*wikiterm.MorphAnalysis, error)
}

type morphResultMsg struct {
	seq      uint64
	query    string
	analysis *wikiterm.MorphAnalysis
	err      error
}

// enricher issues the morphological request for Arabic-script queries.
type enricher struct {
	analyzer Analyzer
	enabled  bool
}

func (e enricher) applies(query string) bool {
	return e.enabled && e.analyzer != nil && wikiterm.ContainsArabic(query)
}

func (e enricher) request(ctx context.Context, seq uint64, query string) tea.Cmd {
	analyzer := e.analyzer
	return func() tea.Msg {
		analysis, err := analyzer.Analyze(ctx, query)
		return morphResultMsg{seq: seq, query: query, analysis: analysis, err: err}
	}
}
