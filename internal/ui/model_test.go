package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketpeek/tickerpick/internal/backend"
	"github.com/marketpeek/tickerpick/internal/index"
	"github.com/marketpeek/tickerpick/internal/remote"
	"github.com/marketpeek/tickerpick/internal/search"
	"github.com/marketpeek/tickerpick/internal/ticker"
	"github.com/marketpeek/tickerpick/internal/watchlist"
)

func testIndex() *index.Index {
	return index.New([]ticker.Record{
		{Ticker: "AAPL", CompanyName: "Apple Inc.", Exchange: "NASDAQ", Aliases: []string{"apple"}},
		{Ticker: "AAL", CompanyName: "American Airlines Group", Exchange: "NASDAQ"},
		{Ticker: "MSFT", CompanyName: "Microsoft Corporation", Exchange: "NASDAQ"},
	})
}

func searchBackend(t *testing.T, results map[string][]ticker.Record) *remote.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/search":
			json.NewEncoder(w).Encode(struct {
				Results []ticker.Record `json:"results"`
			}{Results: results[r.URL.Query().Get("q")]})
		case "/v1/watchlist":
			w.WriteHeader(http.StatusCreated)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return remote.New(srv.URL, "", remote.WithHTTPClient(srv.Client()))
}

func testStore(t *testing.T) *watchlist.Store {
	t.Helper()
	store, err := watchlist.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, client *remote.Client) *Model {
	t.Helper()
	return NewModel(testIndex(), client, testStore(t), nil, 80, 24, false, false)
}

func TestTypingRunsFullSearchCycle(t *testing.T) {
	client := searchBackend(t, map[string][]ticker.Record{
		"aa": {{Ticker: "AAU", CompanyName: "Almaden Minerals", Exchange: "NYSE"}},
	})
	h := NewHarness(newTestModel(t, client))

	h.Type("aa")

	ctrl := h.Model().Controller()
	if ctrl.Phase() != search.PhaseReady {
		t.Fatalf("expected ready phase, got %s", ctrl.Phase())
	}
	got := ctrl.Suggestions()
	if len(got) < 3 {
		t.Fatalf("expected merged remote+local suggestions, got %v", got)
	}
	if got[0].Ticker != "AAU" {
		t.Fatalf("expected remote result ranked first, got %q", got[0].Ticker)
	}
	if !ctrl.Visible() {
		t.Fatal("expected suggestion list visible")
	}
}

func TestConnectivityFailureKeepsLocalResults(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close() // backend is now unreachable

	h := NewHarness(newTestModel(t, remote.New(base, "")))
	h.Type("ms")

	ctrl := h.Model().Controller()
	if ctrl.Phase() != search.PhaseReady {
		t.Fatalf("expected ready phase, got %s", ctrl.Phase())
	}
	got := ctrl.Suggestions()
	if len(got) == 0 || got[0].Ticker != "MSFT" {
		t.Fatalf("expected local suggestions retained, got %v", got)
	}
	notice := ctrl.Notice()
	if notice == nil || notice.Kind != search.ErrorConnectivity || !notice.Sticky {
		t.Fatalf("expected sticky connectivity notice, got %+v", notice)
	}
}

func TestEnterCommitsHighlightedSuggestion(t *testing.T) {
	client := searchBackend(t, nil)
	model := newTestModel(t, client)
	h := NewHarness(model)

	h.Type("aapl")
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	ctrl := h.Model().Controller()
	phase, msg := ctrl.CommitState()
	if phase != search.CommitSucceeded {
		t.Fatalf("expected commit success, got %d (%s)", phase, msg)
	}
	if h.Model().input.Value() != "" {
		t.Fatal("expected input cleared after accepted commit")
	}

	ok, err := h.Model().store.Contains(t.Context(), "AAPL")
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if !ok {
		t.Fatal("expected AAPL persisted to the watchlist")
	}
}

func TestDuplicateCommitSurfacesStickyNotice(t *testing.T) {
	client := searchBackend(t, nil)
	model := newTestModel(t, client)
	h := NewHarness(model)

	h.Type("aapl")
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	// Search again and commit the same ticker.
	h.Type("aapl")
	h.Send(tea.KeyMsg{Type: tea.KeyDown})
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	ctrl := h.Model().Controller()
	phase, _ := ctrl.CommitState()
	if phase != search.CommitFailed {
		t.Fatalf("expected commit failure, got %d", phase)
	}
	notice := ctrl.Notice()
	if notice == nil || notice.Kind != search.ErrorCommit || !notice.Sticky {
		t.Fatalf("expected sticky commit notice, got %+v", notice)
	}
}

func TestEnterWithoutHighlightDoesNothing(t *testing.T) {
	client := searchBackend(t, nil)
	h := NewHarness(newTestModel(t, client))

	h.Type("aa")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	phase, _ := h.Model().Controller().CommitState()
	if phase != search.CommitIdle {
		t.Fatalf("expected no commit, got %d", phase)
	}
}

func TestEscapeDismissesThenQuits(t *testing.T) {
	client := searchBackend(t, nil)
	model := newTestModel(t, client)
	h := NewHarness(model)

	h.Type("aa")
	if !h.Model().Controller().Visible() {
		t.Fatal("expected visible list")
	}

	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.Model().Controller().Visible() {
		t.Fatal("expected list dismissed on first escape")
	}

	// Second escape quits; verify Update returns a quit command.
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg from second escape")
	}
}

func TestBackendEventRefreshesStores(t *testing.T) {
	client := searchBackend(t, nil)
	model := newTestModel(t, client)
	h := NewHarness(model)

	h.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindWatchlist,
		Data: []watchlist.Entry{{Record: ticker.Record{Ticker: "TSLA", CompanyName: "Tesla Inc.", Exchange: "NASDAQ"}}},
	}})
	if !h.Model().watch.Contains("TSLA") {
		t.Fatal("expected watchlist view updated")
	}

	h.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindDirectory,
		Data: []ticker.Record{{Ticker: "NVDA", CompanyName: "NVIDIA Corporation", Exchange: "NASDAQ"}},
	}})
	h.Type("nv")
	got := h.Model().Controller().Suggestions()
	if len(got) == 0 || got[0].Ticker != "NVDA" {
		t.Fatalf("expected refreshed directory searchable, got %v", got)
	}
}

func TestMouseClickCommitsSuggestion(t *testing.T) {
	client := searchBackend(t, nil)
	model := newTestModel(t, client)
	h := NewHarness(model)

	h.Type("aa")
	suggestions := h.Model().Controller().Suggestions()
	if len(suggestions) < 2 {
		t.Fatalf("expected at least 2 suggestions, got %v", suggestions)
	}

	h.Send(tea.MouseMsg{
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
		Y:      suggestionsTopRow + 1,
	})

	phase, _ := h.Model().Controller().CommitState()
	if phase != search.CommitSucceeded {
		t.Fatalf("expected click to commit, got %d", phase)
	}
	ok, err := h.Model().store.Contains(t.Context(), suggestions[1].Key())
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if !ok {
		t.Fatalf("expected %s persisted", suggestions[1].Key())
	}
}
