// Package lookup drives incremental dictionary searches as the user types.
//
// The Controller runs inside a Bubble Tea program: every state change
// happens in an Update turn, timers and network calls are tea.Cmds, and
// their results come back as messages. Turns never interleave, so the
// session needs no locking.
package lookup

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wikitermbase/wikiterm/internal/aggregate"
	"github.com/wikitermbase/wikiterm/internal/wikiterm"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultDebounce is the quiet period before a lookup is dispatched.
	DefaultDebounce = 300 * time.Millisecond
	// CopiedFeedback is how long a "copied" marker stays visible.
	CopiedFeedback = 2 * time.Second
)

// Searcher runs term searches.
type Searcher interface {
	Search(ctx context.Context, query string) ([]wikiterm.Occurrence, error)
	SearchAggregated(ctx context.Context, query string) ([]wikiterm.Group, error)
}

// Backend is everything the controller needs from the API.
type Backend interface {
	Searcher
	Analyzer
}

// Options configures a Controller.
type Options struct {
	Mode       Mode
	Debounce   time.Duration // DefaultDebounce when zero
	Morphology bool          // issue morphological requests for Arabic queries
	Logger     *slog.Logger
}

// Messages routed back into Controller.Update.
type (
	debounceMsg struct{ id uint64 }

	searchResultMsg struct {
		seq     uint64
		query   string
		groups  []wikiterm.Group
		results []wikiterm.Occurrence
		err     error
	}

	clearCopiedMsg struct{ seq uint64 }
)

// debounceTimer is the handle of the pending quiet-period tick. Each tick
// carries the id it was armed with and only the current armed id fires.
type debounceTimer struct {
	id    uint64
	armed bool
}

func (t *debounceTimer) rearm() uint64 {
	t.id++
	t.armed = true
	return t.id
}

func (t *debounceTimer) cancel() {
	t.armed = false
}

func (t *debounceTimer) fires(id uint64) bool {
	return t.armed && id == t.id
}

type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

// Controller owns the search session. QueryChanged is its only input; all
// other state changes come from messages it scheduled itself.
type Controller struct {
	searcher Searcher
	enricher enricher
	mode     Mode
	debounce time.Duration
	log      *slog.Logger
	tick     tickFunc

	ctx    context.Context
	cancel context.CancelFunc

	input     string
	timer     debounceTimer
	searchSeq uint64
	morphSeq  uint64
	session   *Session

	copied    int64
	hasCopied bool
	copySeq   uint64

	closed bool
}

// New creates a controller backed by b.
func New(b Backend, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		searcher: b,
		enricher: enricher{analyzer: b, enabled: opts.Morphology},
		mode:     opts.Mode,
		debounce: debounce,
		log:      logger.With("component", "lookup", "mode", opts.Mode.String()),
		tick:     tea.Tick,
		ctx:      ctx,
		cancel:   cancel,
		session:  newSession("", opts.Mode),
	}
}

// Session returns the live session.
func (c *Controller) Session() *Session {
	return c.session
}

// Mode returns the search mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Input returns the latest text passed to QueryChanged.
func (c *Controller) Input() string {
	return c.input
}

// Pending reports whether a quiet period is running.
func (c *Controller) Pending() bool {
	return c.timer.armed
}

// QueryChanged records new input and restarts the quiet period. Only the
// last call before the period elapses results in a lookup.
func (c *Controller) QueryChanged(text string) tea.Cmd {
	if c.closed {
		return nil
	}
	c.input = text
	id := c.timer.rearm()
	return c.tick(c.debounce, func(time.Time) tea.Msg {
		return debounceMsg{id: id}
	})
}

// Update applies a message scheduled by the controller. Messages it does not
// own are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	if c.closed {
		return nil
	}

	switch msg := msg.(type) {
	case debounceMsg:
		if !c.timer.fires(msg.id) {
			return nil
		}
		c.timer.cancel()
		return c.dispatch()

	case searchResultMsg:
		c.applySearch(msg)

	case morphResultMsg:
		c.applyMorph(msg)

	case clearCopiedMsg:
		if msg.seq == c.copySeq {
			c.hasCopied = false
			c.copied = 0
		}
	}

	return nil
}

// MarkCopied is called by the renderer after it wrote occurrence id's
// citation to the clipboard. The marker clears after CopiedFeedback.
func (c *Controller) MarkCopied(id int64) tea.Cmd {
	if c.closed {
		return nil
	}
	c.copySeq++
	c.copied = id
	c.hasCopied = true
	seq := c.copySeq
	return c.tick(CopiedFeedback, func(time.Time) tea.Msg {
		return clearCopiedMsg{seq: seq}
	})
}

// CopiedID returns the occurrence whose citation was just copied.
func (c *Controller) CopiedID() (int64, bool) {
	return c.copied, c.hasCopied
}

// Close cancels the pending quiet period and in-flight requests. Responses
// that still arrive are ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.timer.cancel()
	c.closed = true
	c.cancel()
}

func (c *Controller) dispatch() tea.Cmd {
	query := norm.NFC.String(strings.TrimSpace(c.input))

	// Both kinds advance so responses to older queries can no longer apply.
	c.searchSeq++
	c.morphSeq++

	if query == "" {
		c.session = newSession("", c.mode)
		return nil
	}

	c.session.Loading = true
	c.session.Err = ""

	c.log.Debug("dispatching lookup", slog.String("q", query), slog.Uint64("seq", c.searchSeq))

	cmds := []tea.Cmd{c.searchRequest(c.searchSeq, query)}
	if c.enricher.applies(query) {
		cmds = append(cmds, c.enricher.request(c.ctx, c.morphSeq, query))
	} else {
		c.session.Morph = nil
	}

	return tea.Batch(cmds...)
}

func (c *Controller) searchRequest(seq uint64, query string) tea.Cmd {
	ctx, searcher, mode := c.ctx, c.searcher, c.mode
	return func() tea.Msg {
		msg := searchResultMsg{seq: seq, query: query}
		if mode == ModeRaw {
			msg.results, msg.err = searcher.Search(ctx, query)
		} else {
			msg.groups, msg.err = searcher.SearchAggregated(ctx, query)
		}
		return msg
	}
}

func (c *Controller) applySearch(msg searchResultMsg) {
	if msg.seq != c.searchSeq {
		c.log.Debug("discarding stale search response", slog.String("q", msg.query))
		return
	}

	next := newSession(msg.query, c.mode)
	next.Settled = true
	next.Morph = c.session.Morph

	if msg.err != nil {
		c.log.Error("search failed", slog.String("q", msg.query), slog.String("error", msg.err.Error()))
		next.Err = ErrSearchFailed
		if c.mode == ModeRaw {
			next.Err = ErrSearchFailedRaw
		}
		c.session = next
		return
	}

	if c.mode == ModeRaw {
		next.Results = msg.results
	} else {
		next.Groups = aggregate.Aggregate(msg.groups)
	}

	c.log.Debug("search settled", slog.String("q", msg.query), slog.Int("items", next.Len()))
	c.session = next
}

func (c *Controller) applyMorph(msg morphResultMsg) {
	if msg.seq != c.morphSeq {
		c.log.Debug("discarding stale morph response", slog.String("q", msg.query))
		return
	}

	if msg.err != nil {
		c.log.Warn("morph analysis failed", slog.String("q", msg.query), slog.String("error", msg.err.Error()))
		c.session.Morph = nil
		return
	}
	c.session.Morph = msg.analysis
}
