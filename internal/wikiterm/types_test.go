package wikiterm

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		json string
		want PageNumber
	}{
		{"number", `{"page": 42}`, 42},
		{"numeric string", `{"page": "17"}`, 17},
		{"padded string", `{"page": " 9 "}`, 9},
		{"null", `{"page": null}`, 0},
		{"missing", `{}`, 0},
		{"zero", `{"page": 0}`, 0},
		{"negative", `{"page": -3}`, 0},
		{"roman numeral", `{"page": "xii"}`, 0},
		{"float", `{"page": 4.5}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var occ Occurrence
			require.NoError(t, json.Unmarshal([]byte(tt.json), &occ))
			assert.Equal(t, tt.want, occ.Page)
			assert.Equal(t, tt.want > 0, occ.HasPage())
		})
	}
}

func TestOccurrence_DecodeBackendShape(t *testing.T) {
	body := `{
		"id": 114942,
		"arabic": "منظار",
		"english": "telescope",
		"french": "télescope",
		"dictionary_name_arabic": "المعجم الموحد",
		"dictionary_wikidata_id": "Q12345",
		"page": 42,
		"uri": "https://www.arabterm.org/x",
		"description": "آلة تجمع الضوء"
	}`

	var occ Occurrence
	require.NoError(t, json.Unmarshal([]byte(body), &occ))

	assert.Equal(t, int64(114942), occ.ID)
	assert.Equal(t, "منظار", occ.Arabic)
	assert.Equal(t, "telescope", occ.English)
	assert.Equal(t, "télescope", occ.French)
	assert.Equal(t, "المعجم الموحد", occ.DictionaryName)
	assert.Equal(t, "Q12345", occ.DictionaryQID)
	assert.Equal(t, PageNumber(42), occ.Page)
	assert.Equal(t, "https://www.arabterm.org/x", occ.URI)
	assert.Equal(t, "آلة تجمع الضوء", occ.Description)
}

func TestContainsArabic(t *testing.T) {
	assert.True(t, ContainsArabic("تلسكوب"))
	assert.True(t, ContainsArabic("telescope منظار"))
	assert.False(t, ContainsArabic("telescope"))
	assert.False(t, ContainsArabic("télescope"))
	assert.False(t, ContainsArabic(""))
}

func TestOccurrence_InfoLine(t *testing.T) {
	occ := Occurrence{DictionaryName: "معجم"}
	assert.Equal(t, "معجم", occ.InfoLine())

	occ.Page = 12
	assert.Equal(t, "معجم • ص. 12", occ.InfoLine())

	occ.DictionaryQID = "Q1"
	assert.Equal(t, "معجم • ص. 12 • QID: Q1", occ.InfoLine())
	assert.Equal(t, "https://www.wikidata.org/wiki/Q1", occ.DictionaryURL())
}

func TestOccurrence_ShortDescription(t *testing.T) {
	short := Occurrence{Description: "وصف قصير"}
	got, cut := short.ShortDescription()
	assert.False(t, cut)
	assert.Equal(t, "وصف قصير", got)

	long := Occurrence{Description: strings.Repeat("ض", DescriptionLimit+1)}
	got, cut = long.ShortDescription()
	assert.True(t, cut)
	assert.Equal(t, strings.Repeat("ض", DescriptionLimit)+"...", got)
}

func TestMorphAnalysis_Found(t *testing.T) {
	var none *MorphAnalysis
	assert.False(t, none.Found())
	assert.Equal(t, "", none.LemmaURL())

	empty := &MorphAnalysis{Lemma: "x"}
	assert.False(t, empty.Found())

	m := &MorphAnalysis{Lemma: "تلسكوب", LemmaID: 2024}
	assert.True(t, m.Found())
	assert.Equal(t, "https://sina.birzeit.edu/qabas/lemma/2024", m.LemmaURL())
}
