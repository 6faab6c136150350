package lookup

import (
	"fmt"
	"strings"

	"github.com/wikitermbase/wikiterm/internal/aggregate"
	"github.com/wikitermbase/wikiterm/internal/state"
	"github.com/wikitermbase/wikiterm/internal/wikiterm"
)

// Mode selects which search endpoint the controller uses.
type Mode int

const (
	// ModeAggregated queries /api/v1/search/aggregated and shows term groups.
	ModeAggregated Mode = iota
	// ModeRaw queries /api/v1/search and shows a flat occurrence list.
	ModeRaw
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	default:
		return "aggregated"
	}
}

// ParseMode parses a config mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "aggregated":
		return ModeAggregated, nil
	case "raw", "flat":
		return ModeRaw, nil
	default:
		return ModeAggregated, fmt.Errorf("unknown search mode %q", s)
	}
}

// User-facing messages.
const (
	ErrSearchFailed    = "حدث خطأ في البحث. الرجاء المحاولة مرة أخرى."
	ErrSearchFailedRaw = "حدث خطأ في البحث"
	emptyResultsFormat = "لا توجد نتائج للبحث عن \"%s\""
)

// Session is the state of one search. The controller replaces it wholesale
// whenever a response settles; renderers only read it and use View for
// open/closed state.
type Session struct {
	Query   string // query of the applied response
	Mode    Mode
	Groups  []aggregate.Group     // aggregated mode
	Results []wikiterm.Occurrence // raw mode
	Morph   *wikiterm.MorphAnalysis
	Err     string // user-facing error, "" when none
	Loading bool
	Settled bool // a response for Query has been applied
	View    *state.Store
}

func newSession(query string, mode Mode) *Session {
	policy := state.Expanded
	if mode == ModeRaw {
		policy = state.Collapsed
	}
	return &Session{
		Query: query,
		Mode:  mode,
		View:  state.NewStore(policy),
	}
}

// Len returns the number of top-level items in the session.
func (s *Session) Len() int {
	if s.Mode == ModeRaw {
		return len(s.Results)
	}
	return len(s.Groups)
}

// Empty reports whether a settled search found nothing.
func (s *Session) Empty() bool {
	return s.Settled && !s.Loading && s.Err == "" && s.Len() == 0
}

// EmptyMessage is shown in place of results when Empty is true.
func (s *Session) EmptyMessage() string {
	return fmt.Sprintf(emptyResultsFormat, s.Query)
}

// Occurrence finds an occurrence of the session by identifier.
func (s *Session) Occurrence(id int64) (wikiterm.Occurrence, bool) {
	for _, occ := range s.Results {
		if occ.ID == id {
			return occ, true
		}
	}
	for _, g := range s.Groups {
		for _, occ := range g.Occurrences {
			if occ.ID == id {
				return occ, true
			}
		}
	}
	return wikiterm.Occurrence{}, false
}
