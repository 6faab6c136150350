// Package citation renders wiki citation templates for dictionary occurrences.
package citation

import (
	"fmt"

	"github.com/wikitermbase/wikiterm/internal/wikiterm"
)

// These names are parsed by the wiki's citation tooling and must not change.
const (
	TemplateName = "استشهاد بويكي بيانات"
	PageParam    = "ص"
)

// Format returns the citation template for occ. The boolean is false when
// occ has no bibliographic identifier, in which case there is no citation.
func Format(occ wikiterm.Occurrence) (string, bool) {
	if occ.DictionaryQID == "" {
		return "", false
	}
	if occ.HasPage() {
		return fmt.Sprintf("{{%s|%s|%s=%d}}", TemplateName, occ.DictionaryQID, PageParam, occ.Page), true
	}
	return fmt.Sprintf("{{%s|%s}}", TemplateName, occ.DictionaryQID), true
}
