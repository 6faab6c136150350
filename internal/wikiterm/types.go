// Package wikiterm provides the core types shared by the dictionary lookup client.
package wikiterm

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// PageNumber is a dictionary page. Zero means the occurrence has no page.
type PageNumber int

// UnmarshalJSON accepts a JSON number or a numeric string. Anything else,
// including null and non-positive values, decodes as "no page".
func (p *PageNumber) UnmarshalJSON(data []byte) error {
	*p = 0

	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
	} else {
		s = string(raw)
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return nil
	}
	*p = PageNumber(n)
	return nil
}

// Occurrence is one dictionary's entry for a term.
type Occurrence struct {
	ID             int64      `json:"id"`                               // Unique within a response
	Arabic         string     `json:"arabic"`                           // Arabic surface form
	English        string     `json:"english"`                          // English surface form
	French         string     `json:"french,omitempty"`                 // French surface form (optional)
	DictionaryName string     `json:"dictionary_name_arabic"`           // Localized dictionary name
	DictionaryQID  string     `json:"dictionary_wikidata_id,omitempty"` // Bibliographic identifier, e.g. "Q12345"
	Page           PageNumber `json:"page,omitempty"`                   // Page in the dictionary, 0 if absent
	URI            string     `json:"uri,omitempty"`                    // Source URI
	Description    string     `json:"description,omitempty"`            // Free-text description
}

// HasPage reports whether the occurrence carries a page number.
func (o Occurrence) HasPage() bool {
	return o.Page > 0
}

// Group is a server-side cluster of occurrences sharing normalized forms.
type Group struct {
	Arabic        string       `json:"arabic_normalised"`
	English       string       `json:"english_normalised"`
	French        string       `json:"french_normalised"`
	DictionaryIDs []string     `json:"dictionary_ids,omitempty"`
	Occurrences   []Occurrence `json:"occurences"` // sic, as sent by the backend
}

// MorphAnalysis is the morphological analysis of an Arabic query.
type MorphAnalysis struct {
	Lemma   string `json:"lemma"`
	LemmaID int    `json:"lemma_id"` // 0 means no analysis
	Root    string `json:"root"`
	POS     string `json:"pos"`
}

// Found reports whether the analyzer recognized the query.
func (m *MorphAnalysis) Found() bool {
	return m != nil && m.LemmaID != 0
}
