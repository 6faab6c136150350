// Package aggregate computes presentation metadata for server-clustered term groups.
//
// Clustering happens on the backend; this package never regroups or reorders.
// It counts occurrences, flags the single strongest group and phrases the
// dictionary count the way Arabic cardinal agreement requires.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/wikitermbase/wikiterm/internal/wikiterm"
)

// Group is a term group with its presentation metadata.
type Group struct {
	wikiterm.Group

	// Key identifies the group within one result set. It is derived from the
	// normalized forms, so it survives re-renders and never depends on position.
	Key string

	OccurrenceCount int
	TopResult       bool
}

// CountLabel returns the Arabic dictionary-count phrase for the group.
func (g Group) CountLabel() string {
	return DictionaryCount(g.OccurrenceCount)
}

// Aggregate annotates groups in input order. A group is the top result only
// when it is the unique group holding the maximum occurrence count.
func Aggregate(groups []wikiterm.Group) []Group {
	out := make([]Group, len(groups))

	maxCount, atMax := 0, 0
	seen := make(map[string]int, len(groups))
	for i, g := range groups {
		count := len(g.Occurrences)
		out[i] = Group{
			Group:           g,
			Key:             uniqueKey(KeyOf(g), seen),
			OccurrenceCount: count,
		}

		switch {
		case count > maxCount:
			maxCount, atMax = count, 1
		case count == maxCount:
			atMax++
		}
	}

	if atMax == 1 {
		for i := range out {
			if out[i].OccurrenceCount == maxCount {
				out[i].TopResult = true
				break
			}
		}
	}

	return out
}

// KeyOf builds the aggregation key from a group's normalized forms.
func KeyOf(g wikiterm.Group) string {
	return strings.Join([]string{g.Arabic, g.English, g.French}, "\x1f")
}

func uniqueKey(key string, seen map[string]int) string {
	seen[key]++
	if n := seen[key]; n > 1 {
		return fmt.Sprintf("%s#%d", key, n)
	}
	return key
}

// DictionaryCount phrases "appears in n dictionaries" in Arabic.
func DictionaryCount(n int) string {
	switch {
	case n <= 0:
		return "لم يرد في أي معجم"
	case n == 1:
		return "ورد في معجم واحد:"
	case n == 2:
		return "ورد في معجمين:"
	case n >= 11:
		return fmt.Sprintf("ورد في %d معجماً:", n)
	default:
		return fmt.Sprintf("ورد في %d معاجم:", n)
	}
}
