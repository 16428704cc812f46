package search

import (
	"context"
	"sync"
	"time"

	"github.com/goto/salt/log"
	"github.com/goto/scout/core/entity"
	"github.com/goto/scout/pkg/statsd"
)

// State is a snapshot of the searcher for presentation. It is replaced
// wholesale on every transition; consumers must treat it as read-only.
type State struct {
	// Query is the current text of the search field.
	Query string

	// Results is the latest accepted suggestion list, in catalog order.
	Results []entity.Entity

	// Loading is true from dispatch until the response is reconciled.
	Loading bool
}

// Deps collects the collaborators injected into a Searcher.
type Deps struct {
	Catalog  Catalog
	Reporter Reporter
	Logger   log.Logger

	// Metrics may be nil; the reporter is nil-safe.
	Metrics *statsd.Reporter

	// OnUpdate, when set, is invoked with a snapshot after every state
	// transition. Called from the searcher's own goroutines; keep it cheap
	// and non-blocking.
	OnUpdate func(State)
}

// Searcher turns a stream of keystrokes into a throttled stream of catalog
// queries and reconciles the asynchronous responses into a suggestion list
// plus a loading flag.
//
// Keystrokes are debounced: each OnInputChanged resets a single pending
// timer, and only the timer that survives uncancelled dispatches a query.
// Every dispatch (including the empty-query short circuit) is tagged with a
// monotonically increasing sequence number; a response is applied only if
// its sequence number is still the highest dispatched, so a slow response
// to an old query can never clobber results for a newer one.
type Searcher struct {
	catalog  Catalog
	reporter Reporter
	logger   log.Logger
	metrics  *statsd.Reporter
	onUpdate func(State)

	quiet time.Duration
	size  int

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	timer       *time.Timer
	inputGen    uint64
	seq         uint64
	cancelFetch context.CancelFunc
	state       State
}

// New constructs a Searcher. Close must be called when done to release the
// pending timer and any in-flight fetch.
func New(cfg Config, deps Deps) *Searcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &Searcher{
		catalog:  deps.Catalog,
		reporter: deps.Reporter,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		onUpdate: deps.OnUpdate,
		quiet:    cfg.debounceInterval(),
		size:     cfg.maxResults(),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// OnInputChanged records text as the current query and schedules a
// debounced dispatch. It has no immediate network effect and never fails.
func (s *Searcher) OnInputChanged(text string) {
	s.mu.Lock()
	s.state.Query = text
	if s.timer != nil {
		s.timer.Stop()
	}
	// Stop does not guarantee a fired timer's callback hasn't started; the
	// generation check in dispatch keeps a superseded timer from acting.
	s.inputGen++
	gen := s.inputGen
	s.timer = time.AfterFunc(s.quiet, func() { s.dispatch(gen) })
	snap := s.state
	s.mu.Unlock()

	s.notify(snap)
}

// Snapshot returns the current state.
func (s *Searcher) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close stops the pending timer and invalidates any in-flight fetch.
func (s *Searcher) Close() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.inputGen++
	s.seq++
	s.mu.Unlock()

	s.cancel()
}

// dispatch fires once the quiet interval elapses without further input.
func (s *Searcher) dispatch(gen uint64) {
	s.mu.Lock()
	if gen != s.inputGen {
		s.mu.Unlock()
		return
	}

	// Every dispatch supersedes whatever came before it, network call or
	// not. Bumping the sequence here is what makes in-flight responses for
	// older queries stale.
	s.seq++
	seq := s.seq

	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}

	query := s.state.Query
	if query == "" {
		s.state.Results = nil
		s.state.Loading = false
		snap := s.state
		s.mu.Unlock()

		s.notify(snap)
		return
	}

	s.state.Loading = true
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelFetch = cancel
	snap := s.state
	s.mu.Unlock()

	s.notify(snap)
	s.metrics.Incr("search_dispatched").Publish()

	go s.fetch(ctx, seq, query)
}

func (s *Searcher) fetch(ctx context.Context, seq uint64, query string) {
	start := time.Now()
	results, err := s.catalog.Search(ctx, Request{
		Text:   query,
		Fields: DisplayFields,
		Size:   s.size,
	})

	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		s.metrics.Incr("search_stale_dropped").Publish()
		s.logger.Debug("discarding stale search response", "query", query)
		return
	}

	if err != nil {
		s.state.Results = nil
		s.state.Loading = false
		snap := s.state
		s.mu.Unlock()

		s.metrics.Timing("search_roundtrip", time.Since(start)).Failure().Publish()
		s.reporter.Report(s.ctx, err)
		s.notify(snap)
		return
	}

	s.state.Results = results
	s.state.Loading = false
	snap := s.state
	s.mu.Unlock()

	s.metrics.Timing("search_roundtrip", time.Since(start)).Success().Publish()
	s.notify(snap)
}

func (s *Searcher) notify(snap State) {
	if s.onUpdate != nil {
		s.onUpdate(snap)
	}
}
