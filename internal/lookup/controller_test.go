package lookup

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wikitermbase/wikiterm/internal/wikiterm"
)

type fakeBackend struct {
	searches   []string
	aggregated []string
	analyses   []string

	results map[string][]wikiterm.Occurrence
	groups  map[string][]wikiterm.Group
	morph   map[string]*wikiterm.MorphAnalysis

	searchErr error
	morphErr  error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		results: map[string][]wikiterm.Occurrence{},
		groups:  map[string][]wikiterm.Group{},
		morph:   map[string]*wikiterm.MorphAnalysis{},
	}
}

func (f *fakeBackend) Search(_ context.Context, q string) ([]wikiterm.Occurrence, error) {
	f.searches = append(f.searches, q)
	return f.results[q], f.searchErr
}

func (f *fakeBackend) SearchAggregated(_ context.Context, q string) ([]wikiterm.Group, error) {
	f.aggregated = append(f.aggregated, q)
	return f.groups[q], f.searchErr
}

func (f *fakeBackend) Analyze(_ context.Context, q string) (*wikiterm.MorphAnalysis, error) {
	f.analyses = append(f.analyses, q)
	return f.morph[q], f.morphErr
}

// newTestController returns a controller whose ticks fire immediately and
// records the requested durations.
func newTestController(b Backend, opts Options) (*Controller, *[]time.Duration) {
	c := New(b, opts)
	var durations []time.Duration
	c.tick = func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		durations = append(durations, d)
		return func() tea.Msg { return fn(time.Time{}) }
	}
	return c, &durations
}

// run executes cmd and flattens batches into the messages they produce.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// dispatch types text, lets the quiet period elapse and returns the
// response messages without applying them.
func dispatch(t *testing.T, c *Controller, text string) []tea.Msg {
	t.Helper()
	ticks := run(c.QueryChanged(text))
	require.Len(t, ticks, 1)
	return run(c.Update(ticks[0]))
}

func apply(c *Controller, msgs []tea.Msg) {
	for _, msg := range msgs {
		c.Update(msg)
	}
}

func groups(arabic ...string) []wikiterm.Group {
	var out []wikiterm.Group
	for i, a := range arabic {
		out = append(out, wikiterm.Group{
			Arabic:      a,
			Occurrences: []wikiterm.Occurrence{{ID: int64(i + 1), Arabic: a}},
		})
	}
	return out
}

func TestController_DebounceCoalesces(t *testing.T) {
	b := newFakeBackend()
	c, durations := newTestController(b, Options{})

	var ticks []tea.Msg
	for _, text := range []string{"t", "te", "tel", "tele"} {
		ticks = append(ticks, run(c.QueryChanged(text))...)
	}
	require.Len(t, ticks, 4)
	assert.True(t, c.Pending())

	var responses []tea.Msg
	for _, tick := range ticks {
		responses = append(responses, run(c.Update(tick))...)
	}

	assert.Equal(t, []string{"tele"}, b.aggregated)
	assert.Len(t, responses, 1)
	assert.False(t, c.Pending())
	for _, d := range *durations {
		assert.Equal(t, DefaultDebounce, d)
	}
}

func TestController_CustomDebounce(t *testing.T) {
	c, durations := newTestController(newFakeBackend(), Options{Debounce: 50 * time.Millisecond})

	run(c.QueryChanged("x"))

	require.Len(t, *durations, 1)
	assert.Equal(t, 50*time.Millisecond, (*durations)[0])
}

func TestController_EmptyQueryClearsWithoutRequest(t *testing.T) {
	b := newFakeBackend()
	b.groups["telescope"] = groups("منظار")
	c, _ := newTestController(b, Options{})

	apply(c, dispatch(t, c, "telescope"))
	require.Equal(t, 1, c.Session().Len())

	msgs := dispatch(t, c, "   ")

	assert.Empty(t, msgs)
	assert.Equal(t, []string{"telescope"}, b.aggregated)
	s := c.Session()
	assert.False(t, s.Loading)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "", s.Err)
	assert.False(t, s.Empty(), "a cleared query shows no empty-state message")
}

func TestController_EmptyQueryInvalidatesInFlight(t *testing.T) {
	b := newFakeBackend()
	b.groups["telescope"] = groups("منظار")
	c, _ := newTestController(b, Options{})

	inFlight := dispatch(t, c, "telescope")
	dispatch(t, c, "")
	apply(c, inFlight)

	assert.Equal(t, 0, c.Session().Len())
	assert.Equal(t, "", c.Session().Query)
}

func TestController_LoadingAndSettle(t *testing.T) {
	b := newFakeBackend()
	b.groups["telescope"] = groups("منظار", "مقراب")
	c, _ := newTestController(b, Options{})

	msgs := dispatch(t, c, "  telescope ")
	assert.True(t, c.Session().Loading)

	apply(c, msgs)

	s := c.Session()
	assert.False(t, s.Loading)
	assert.True(t, s.Settled)
	assert.Equal(t, "telescope", s.Query)
	assert.Equal(t, "", s.Err)
	require.Len(t, s.Groups, 2)
	assert.Equal(t, "منظار", s.Groups[0].Arabic)
	assert.Equal(t, []string{"telescope"}, b.aggregated, "query is trimmed before dispatch")
}

func TestController_StaleResponseNeverOverwrites(t *testing.T) {
	b := newFakeBackend()
	b.groups["tele"] = groups("قديم")
	b.groups["telescope"] = groups("منظار")
	c, _ := newTestController(b, Options{})

	first := dispatch(t, c, "tele")
	second := dispatch(t, c, "telescope")

	// The newer request settles first, then the older one completes.
	apply(c, second)
	apply(c, first)

	s := c.Session()
	assert.Equal(t, "telescope", s.Query)
	require.Len(t, s.Groups, 1)
	assert.Equal(t, "منظار", s.Groups[0].Arabic)
}

func TestController_StaleResponseBeforeNewer(t *testing.T) {
	b := newFakeBackend()
	b.groups["tele"] = groups("قديم")
	b.groups["telescope"] = groups("منظار")
	c, _ := newTestController(b, Options{})

	first := dispatch(t, c, "tele")
	second := dispatch(t, c, "telescope")

	apply(c, first)
	assert.True(t, c.Session().Loading, "stale response leaves the newer request pending")
	assert.Equal(t, 0, c.Session().Len())

	apply(c, second)
	assert.Equal(t, "telescope", c.Session().Query)
}

func TestController_ArabicQueryIssuesMorphRequest(t *testing.T) {
	b := newFakeBackend()
	b.groups["تلسكوب"] = groups("تلسكوب")
	b.morph["تلسكوب"] = &wikiterm.MorphAnalysis{Lemma: "تِلِسْكُوب", LemmaID: 42, Root: "تلسكب", POS: "اسم"}
	c, _ := newTestController(b, Options{Morphology: true})

	msgs := dispatch(t, c, "تلسكوب")
	require.Len(t, msgs, 2)
	apply(c, msgs)

	assert.Equal(t, []string{"تلسكوب"}, b.aggregated)
	assert.Equal(t, []string{"تلسكوب"}, b.analyses)
	require.NotNil(t, c.Session().Morph)
	assert.Equal(t, 42, c.Session().Morph.LemmaID)
}

func TestController_LatinQueryClearsMorph(t *testing.T) {
	b := newFakeBackend()
	b.morph["تلسكوب"] = &wikiterm.MorphAnalysis{LemmaID: 42}
	c, _ := newTestController(b, Options{Morphology: true})

	apply(c, dispatch(t, c, "تلسكوب"))
	require.NotNil(t, c.Session().Morph)

	msgs := dispatch(t, c, "telescope")
	assert.Nil(t, c.Session().Morph, "morphology clears as soon as a Latin query dispatches")
	require.Len(t, msgs, 1)
	apply(c, msgs)

	assert.Equal(t, []string{"تلسكوب"}, b.analyses)
	assert.Equal(t, []string{"تلسكوب", "telescope"}, b.aggregated)
	assert.Nil(t, c.Session().Morph)
}

func TestController_StaleMorphDiscarded(t *testing.T) {
	b := newFakeBackend()
	b.morph["تلسكوب"] = &wikiterm.MorphAnalysis{LemmaID: 42}
	c, _ := newTestController(b, Options{Morphology: true})

	arabic := dispatch(t, c, "تلسكوب")
	latin := dispatch(t, c, "telescope")

	apply(c, latin)
	apply(c, arabic)

	assert.Nil(t, c.Session().Morph)
	assert.Equal(t, "telescope", c.Session().Query)
}

func TestController_MorphologyDisabled(t *testing.T) {
	b := newFakeBackend()
	c, _ := newTestController(b, Options{Morphology: false})

	apply(c, dispatch(t, c, "تلسكوب"))

	assert.Empty(t, b.analyses)
	assert.Equal(t, []string{"تلسكوب"}, b.aggregated)
}

func TestController_MorphFailureIsSilent(t *testing.T) {
	b := newFakeBackend()
	b.groups["تلسكوب"] = groups("تلسكوب")
	b.morphErr = errors.New("analyzer down")
	c, _ := newTestController(b, Options{Morphology: true})

	apply(c, dispatch(t, c, "تلسكوب"))

	s := c.Session()
	assert.Nil(t, s.Morph)
	assert.Equal(t, "", s.Err)
	assert.Len(t, s.Groups, 1)
}

func TestController_SearchFailure(t *testing.T) {
	b := newFakeBackend()
	b.groups["telescope"] = groups("منظار")
	c, _ := newTestController(b, Options{})

	apply(c, dispatch(t, c, "telescope"))
	require.Equal(t, 1, c.Session().Len())

	b.searchErr = errors.New("connection refused")
	apply(c, dispatch(t, c, "telescope"))

	s := c.Session()
	assert.False(t, s.Loading)
	assert.Equal(t, ErrSearchFailed, s.Err)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Empty(), "errors are not shown as an empty state")

	b.searchErr = nil
	msgs := dispatch(t, c, "telescope")
	assert.Equal(t, "", c.Session().Err, "dispatch clears the previous error")
	apply(c, msgs)
	assert.Equal(t, 1, c.Session().Len())
}

func TestController_RawModeFailureMessage(t *testing.T) {
	b := newFakeBackend()
	b.searchErr = errors.New("boom")
	c, _ := newTestController(b, Options{Mode: ModeRaw})

	apply(c, dispatch(t, c, "x"))

	assert.Equal(t, ErrSearchFailedRaw, c.Session().Err)
}

func TestController_NoResultsIsEmptyState(t *testing.T) {
	c, _ := newTestController(newFakeBackend(), Options{})

	apply(c, dispatch(t, c, "zzz"))

	s := c.Session()
	assert.True(t, s.Empty())
	assert.Equal(t, `لا توجد نتائج للبحث عن "zzz"`, s.EmptyMessage())
}

func TestController_ExpansionResetsPerSession(t *testing.T) {
	b := newFakeBackend()
	b.groups["a"] = groups("أ", "ب")
	b.groups["b"] = groups("أ", "ب")
	c, _ := newTestController(b, Options{})

	apply(c, dispatch(t, c, "a"))
	s := c.Session()
	key := s.Groups[0].Key
	assert.True(t, s.View.IsExpanded(key), "groups start expanded")

	s.View.ToggleGroup(key)
	s.View.OpenCitation(1)
	assert.False(t, c.Session().View.IsExpanded(key), "state persists within a session")

	apply(c, dispatch(t, c, "b"))
	assert.True(t, c.Session().View.IsExpanded(key))
	_, open := c.Session().View.ActiveCitation()
	assert.False(t, open)
}

func TestController_RawMode(t *testing.T) {
	b := newFakeBackend()
	b.results["telescope"] = []wikiterm.Occurrence{
		{ID: 10, Arabic: "منظار", Description: "آلة"},
		{ID: 11, Arabic: "مقراب"},
	}
	c, _ := newTestController(b, Options{Mode: ModeRaw})

	apply(c, dispatch(t, c, "telescope"))

	s := c.Session()
	assert.Equal(t, []string{"telescope"}, b.searches)
	assert.Empty(t, b.aggregated)
	require.Len(t, s.Results, 2)
	assert.Empty(t, s.Groups)
	assert.False(t, s.View.IsDescriptionOpen(10), "descriptions start collapsed")

	occ, ok := s.Occurrence(11)
	require.True(t, ok)
	assert.Equal(t, "مقراب", occ.Arabic)
}

func TestController_CloseIgnoresEverything(t *testing.T) {
	b := newFakeBackend()
	b.groups["telescope"] = groups("منظار")
	c, _ := newTestController(b, Options{})

	pendingTick := run(c.QueryChanged("tele"))
	inFlight := dispatch(t, c, "telescope")
	c.Close()

	assert.False(t, c.Pending())
	assert.Nil(t, c.QueryChanged("more"))
	assert.Nil(t, c.Update(pendingTick[0]))
	apply(c, inFlight)

	assert.Equal(t, 0, c.Session().Len())
	assert.Empty(t, b.aggregated[1:], "nothing dispatched after the first lookup")
	assert.Equal(t, context.Canceled, c.ctx.Err())

	c.Close()
}

func TestController_CopiedFeedback(t *testing.T) {
	c, durations := newTestController(newFakeBackend(), Options{})

	first := run(c.MarkCopied(1))
	id, ok := c.CopiedID()
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)

	second := run(c.MarkCopied(2))

	// The first window's clear must not hide the newer marker.
	apply(c, first)
	id, ok = c.CopiedID()
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)

	apply(c, second)
	_, ok = c.CopiedID()
	assert.False(t, ok)

	for _, d := range *durations {
		assert.Equal(t, CopiedFeedback, d)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("raw")
	require.NoError(t, err)
	assert.Equal(t, ModeRaw, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeAggregated, m)

	_, err = ParseMode("fuzzy")
	assert.Error(t, err)

	assert.Equal(t, "raw", ModeRaw.String())
	assert.Equal(t, "aggregated", ModeAggregated.String())
}
