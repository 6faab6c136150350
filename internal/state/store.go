// Package state tracks which groups, descriptions and citation popups are open.
//
// Groups are keyed by their aggregation key and occurrences by their response
// identifier, never by position, so state cannot drift onto a different item
// when a result set changes shape.
package state

// ExpandPolicy is the default expansion of a group not yet toggled.
type ExpandPolicy int

const (
	// Collapsed starts every group closed.
	Collapsed ExpandPolicy = iota
	// Expanded starts every group open.
	Expanded
)

// Store holds the open/closed state for one search session.
type Store struct {
	policy       ExpandPolicy
	groups       map[string]bool
	descriptions map[int64]bool

	popup    int64
	hasPopup bool
}

// NewStore creates an empty store whose groups default to policy.
func NewStore(policy ExpandPolicy) *Store {
	return &Store{
		policy:       policy,
		groups:       make(map[string]bool),
		descriptions: make(map[int64]bool),
	}
}

// IsExpanded reports whether the group with key is open.
func (s *Store) IsExpanded(key string) bool {
	if open, ok := s.groups[key]; ok {
		return open
	}
	return s.policy == Expanded
}

// ToggleGroup flips the group with key and returns its new state.
func (s *Store) ToggleGroup(key string) bool {
	open := !s.IsExpanded(key)
	s.groups[key] = open
	return open
}

// IsDescriptionOpen reports whether the occurrence's description is shown in full.
func (s *Store) IsDescriptionOpen(id int64) bool {
	return s.descriptions[id]
}

// ToggleDescription flips an occurrence's description and returns its new state.
func (s *Store) ToggleDescription(id int64) bool {
	open := !s.descriptions[id]
	if open {
		s.descriptions[id] = true
	} else {
		delete(s.descriptions, id)
	}
	return open
}

// OpenCitation shows the citation popup of occurrence id, closing any other.
func (s *Store) OpenCitation(id int64) {
	s.popup = id
	s.hasPopup = true
}

// CloseCitation closes the active popup, if any.
func (s *Store) CloseCitation() {
	s.popup = 0
	s.hasPopup = false
}

// ToggleCitation opens the popup of id, or closes it if it is already the
// active one. It reports whether a popup for id is open afterwards.
func (s *Store) ToggleCitation(id int64) bool {
	if s.hasPopup && s.popup == id {
		s.CloseCitation()
		return false
	}
	s.OpenCitation(id)
	return true
}

// ActiveCitation returns the occurrence whose popup is open.
func (s *Store) ActiveCitation() (int64, bool) {
	return s.popup, s.hasPopup
}
