package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wikitermbase/wikiterm/internal/wikiterm"
)

func groupWith(arabic string, n int) wikiterm.Group {
	g := wikiterm.Group{Arabic: arabic, English: arabic + "-en"}
	for i := 0; i < n; i++ {
		g.Occurrences = append(g.Occurrences, wikiterm.Occurrence{ID: int64(i + 1), Arabic: arabic})
	}
	return g
}

func topFlags(groups []Group) []bool {
	flags := make([]bool, len(groups))
	for i, g := range groups {
		flags[i] = g.TopResult
	}
	return flags
}

func TestAggregate_TopResult(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   []bool
	}{
		{"tie at maximum flags nothing", []int{3, 3, 2}, []bool{false, false, false}},
		{"unique maximum first", []int{5, 3, 2}, []bool{true, false, false}},
		{"unique maximum last", []int{1, 2, 4}, []bool{false, false, true}},
		{"single group", []int{1}, []bool{true}},
		{"tie below a unique maximum", []int{2, 2, 6}, []bool{false, false, true}},
		{"empty input", nil, []bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in []wikiterm.Group
			for i, n := range tt.counts {
				in = append(in, groupWith(string(rune('أ'+i)), n))
			}

			got := Aggregate(in)
			require.Len(t, got, len(tt.counts))
			assert.Equal(t, tt.want, topFlags(got))
			for i, n := range tt.counts {
				assert.Equal(t, n, got[i].OccurrenceCount)
			}
		})
	}
}

func TestAggregate_PreservesOrder(t *testing.T) {
	in := []wikiterm.Group{groupWith("ب", 1), groupWith("أ", 7), groupWith("ج", 3)}

	got := Aggregate(in)

	require.Len(t, got, 3)
	assert.Equal(t, "ب", got[0].Arabic)
	assert.Equal(t, "أ", got[1].Arabic)
	assert.Equal(t, "ج", got[2].Arabic)
}

func TestAggregate_Idempotent(t *testing.T) {
	in := []wikiterm.Group{groupWith("أ", 2), groupWith("ب", 2), groupWith("أ", 1)}

	first := Aggregate(in)
	second := Aggregate(in)

	assert.Equal(t, first, second)
}

func TestAggregate_UniqueKeys(t *testing.T) {
	in := []wikiterm.Group{groupWith("أ", 1), groupWith("ب", 1), groupWith("أ", 2)}

	got := Aggregate(in)

	assert.Equal(t, KeyOf(in[0]), got[0].Key)
	assert.NotEqual(t, got[0].Key, got[2].Key)
	assert.Equal(t, KeyOf(in[2])+"#2", got[2].Key)
}

func TestDictionaryCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "لم يرد في أي معجم"},
		{1, "ورد في معجم واحد:"},
		{2, "ورد في معجمين:"},
		{3, "ورد في 3 معاجم:"},
		{10, "ورد في 10 معاجم:"},
		{11, "ورد في 11 معجماً:"},
		{25, "ورد في 25 معجماً:"},
	}

	seen := map[string]bool{}
	for _, tt := range tests {
		got := DictionaryCount(tt.n)
		assert.Equal(t, tt.want, got, "count %d", tt.n)
		seen[got] = true
	}
	assert.Len(t, seen, len(tests))

	assert.Equal(t, "ورد في معجمين:", Group{OccurrenceCount: 2}.CountLabel())
}
