package wikiterm

import (
	"fmt"
	"strings"
)

const (
	wikidataBaseURL = "https://www.wikidata.org/wiki/"
	qabasLemmaURL   = "https://sina.birzeit.edu/qabas/lemma/"

	// DescriptionLimit is the number of characters shown before a
	// description is collapsed behind a "show more" toggle.
	DescriptionLimit = 200
)

// DictionaryURL returns the Wikidata page of the occurrence's dictionary,
// or "" when the occurrence has no bibliographic identifier.
func (o Occurrence) DictionaryURL() string {
	if o.DictionaryQID == "" {
		return ""
	}
	return wikidataBaseURL + o.DictionaryQID
}

// InfoLine joins dictionary name, page and QID as "name • ص. 12 • QID: Q1".
func (o Occurrence) InfoLine() string {
	parts := []string{o.DictionaryName}
	if o.HasPage() {
		parts = append(parts, fmt.Sprintf("ص. %d", o.Page))
	}
	if o.DictionaryQID != "" {
		parts = append(parts, "QID: "+o.DictionaryQID)
	}
	return strings.Join(parts, " • ")
}

// ShortDescription returns the description cut to DescriptionLimit characters
// and whether it was cut.
func (o Occurrence) ShortDescription() (string, bool) {
	runes := []rune(o.Description)
	if len(runes) <= DescriptionLimit {
		return o.Description, false
	}
	return string(runes[:DescriptionLimit]) + "...", true
}

// LemmaURL returns the Qabas lexicon page for the analyzed lemma.
func (m *MorphAnalysis) LemmaURL() string {
	if !m.Found() {
		return ""
	}
	return fmt.Sprintf("%s%d", qabasLemmaURL, m.LemmaID)
}
