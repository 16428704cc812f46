package search_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/goto/salt/log"
	"github.com/goto/scout/core/entity"
	"github.com/goto/scout/core/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuiet = 10 * time.Millisecond

// settle is long enough for any pending debounce timer to have fired.
const settle = 5 * testQuiet

func newTestSearcher(t *testing.T, catalog search.Catalog, reporter search.Reporter) *search.Searcher {
	t.Helper()

	if reporter == nil {
		reporter = search.ReporterFunc(func(context.Context, error) {})
	}
	s := search.New(
		search.Config{DebounceInterval: testQuiet, MaxResults: 10},
		search.Deps{
			Catalog:  catalog,
			Reporter: reporter,
			Logger:   log.NewNoop(),
		},
	)
	t.Cleanup(s.Close)
	return s
}

func TestSearcherDispatchesOnceAfterQuietInterval(t *testing.T) {
	var dispatched int64
	requests := make(chan search.Request, 8)
	catalog := search.CatalogFunc(func(_ context.Context, req search.Request) ([]entity.Entity, error) {
		atomic.AddInt64(&dispatched, 1)
		requests <- req
		return []entity.Entity{{ID: "e1", Name: "widget-service"}}, nil
	})

	s := newTestSearcher(t, catalog, nil)
	s.OnInputChanged("widget")

	select {
	case req := <-requests:
		assert.Equal(t, "widget", req.Text)
		assert.Equal(t, search.DisplayFields, req.Fields)
		assert.Equal(t, 10, req.Size)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a query to be dispatched")
	}

	time.Sleep(settle)
	assert.EqualValues(t, 1, atomic.LoadInt64(&dispatched),
		"a single edit must produce exactly one query")
}

func TestSearcherCoalescesRapidEdits(t *testing.T) {
	var dispatched int64
	requests := make(chan search.Request, 8)
	catalog := search.CatalogFunc(func(_ context.Context, req search.Request) ([]entity.Entity, error) {
		atomic.AddInt64(&dispatched, 1)
		requests <- req
		return nil, nil
	})

	s := newTestSearcher(t, catalog, nil)
	s.OnInputChanged("pay")
	s.OnInputChanged("payment-service")

	select {
	case req := <-requests:
		assert.Equal(t, "payment-service", req.Text,
			"only the last edit's value may be dispatched")
	case <-time.After(2 * time.Second):
		t.Fatal("expected a query to be dispatched")
	}

	time.Sleep(settle)
	assert.EqualValues(t, 1, atomic.LoadInt64(&dispatched))
}

func TestSearcherEmptyQueryShortCircuits(t *testing.T) {
	var dispatched int64
	catalog := search.CatalogFunc(func(_ context.Context, req search.Request) ([]entity.Entity, error) {
		atomic.AddInt64(&dispatched, 1)
		return []entity.Entity{{ID: "e1", Name: "widget-service"}}, nil
	})

	s := newTestSearcher(t, catalog, nil)

	// First populate some results.
	s.OnInputChanged("widget")
	require.Eventually(t, func() bool {
		return len(s.Snapshot().Results) == 1
	}, 2*time.Second, time.Millisecond)

	// Clearing the field empties the result set without a network call.
	s.OnInputChanged("")
	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return len(snap.Results) == 0 && !snap.Loading
	}, 2*time.Second, time.Millisecond)

	time.Sleep(settle)
	assert.EqualValues(t, 1, atomic.LoadInt64(&dispatched),
		"an empty query must not reach the catalog")
}

func TestSearcherAppliesResponsesInIssuanceOrder(t *testing.T) {
	type reply struct {
		entities []entity.Entity
		err      error
	}
	type call struct {
		req     search.Request
		respond chan reply
	}

	calls := make(chan call, 2)
	catalog := search.CatalogFunc(func(_ context.Context, req search.Request) ([]entity.Entity, error) {
		c := call{req: req, respond: make(chan reply)}
		calls <- c
		r := <-c.respond
		return r.entities, r.err
	})

	s := newTestSearcher(t, catalog, nil)

	oldResults := []entity.Entity{{ID: "old", Name: "payments-v1"}}
	newResults := []entity.Entity{{ID: "new", Name: "payments-v2"}}

	s.OnInputChanged("pay")
	var first call
	select {
	case first = <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("expected first query to be dispatched")
	}

	s.OnInputChanged("payments")
	var second call
	select {
	case second = <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("expected second query to be dispatched")
	}

	// The newer query's response lands first and wins.
	second.respond <- reply{entities: newResults}
	require.Eventually(t, func() bool {
		snap := s.Snapshot()
		return len(snap.Results) == 1 && snap.Results[0].ID == "new" && !snap.Loading
	}, 2*time.Second, time.Millisecond)

	// The slow response to the superseded query must be discarded.
	first.respond <- reply{entities: oldResults}
	time.Sleep(settle)

	snap := s.Snapshot()
	require.Len(t, snap.Results, 1)
	assert.Equal(t, "new", snap.Results[0].ID,
		"a stale response must never overwrite newer results")
	assert.False(t, snap.Loading)
}

func TestSearcherClearsAndReportsOnFailure(t *testing.T) {
	catalog := search.CatalogFunc(func(_ context.Context, req search.Request) ([]entity.Entity, error) {
		return nil, errors.New("elasticsearch unreachable")
	})

	var reports int64
	reporter := search.ReporterFunc(func(_ context.Context, err error) {
		atomic.AddInt64(&reports, 1)
		assert.EqualError(t, err, "elasticsearch unreachable")
	})

	s := newTestSearcher(t, catalog, reporter)
	s.OnInputChanged("widget")

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&reports) == 1
	}, 2*time.Second, time.Millisecond)

	snap := s.Snapshot()
	assert.Empty(t, snap.Results)
	assert.False(t, snap.Loading)

	time.Sleep(settle)
	assert.EqualValues(t, 1, atomic.LoadInt64(&reports),
		"a failure is reported exactly once and never retried")
}

func TestSearcherPreservesCatalogOrder(t *testing.T) {
	returned := []entity.Entity{
		{ID: "e3", Name: "zeta", Kind: entity.KindTopic},
		{ID: "e1", Name: "alpha", Kind: entity.KindService, Description: "handles payments"},
		{ID: "e2", Name: "", Kind: entity.KindTable},
	}
	catalog := search.CatalogFunc(func(_ context.Context, req search.Request) ([]entity.Entity, error) {
		return returned, nil
	})

	s := newTestSearcher(t, catalog, nil)
	s.OnInputChanged("e")

	require.Eventually(t, func() bool {
		return len(s.Snapshot().Results) == 3
	}, 2*time.Second, time.Millisecond)

	snap := s.Snapshot()
	if diff := cmp.Diff(returned, snap.Results); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	// Display mapping falls back to placeholders for missing fields.
	assert.Equal(t, "Unnamed", snap.Results[2].DisplayName())
	assert.Equal(t, "No description", snap.Results[0].DisplayDescription())
	assert.Equal(t, "handles payments", snap.Results[1].DisplayDescription())
}

func TestSearcherNotifiesOnUpdate(t *testing.T) {
	updates := make(chan search.State, 16)

	s := search.New(
		search.Config{DebounceInterval: testQuiet},
		search.Deps{
			Catalog: search.CatalogFunc(func(_ context.Context, req search.Request) ([]entity.Entity, error) {
				return []entity.Entity{{ID: "e1", Name: "widget-service"}}, nil
			}),
			Reporter: search.ReporterFunc(func(context.Context, error) {}),
			Logger:   log.NewNoop(),
			OnUpdate: func(st search.State) { updates <- st },
		},
	)
	defer s.Close()

	s.OnInputChanged("widget")

	var sawLoading, sawResults bool
	deadline := time.After(2 * time.Second)
	for !sawResults {
		select {
		case st := <-updates:
			if st.Loading {
				sawLoading = true
			}
			if len(st.Results) == 1 && !st.Loading {
				sawResults = true
			}
		case <-deadline:
			t.Fatal("expected loading and result updates")
		}
	}
	assert.True(t, sawLoading, "loading flag must be observable while the fetch is in flight")
}
