package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketpeek/tickerpick/internal/backend"
	"github.com/marketpeek/tickerpick/internal/ticker"
	"github.com/marketpeek/tickerpick/internal/watchlist"
)

func TestViewShowsHeaderAndEmptyWatchlist(t *testing.T) {
	h := NewHarness(newTestModel(t, searchBackend(t, nil)))

	view := h.View()
	if !strings.Contains(view, "tickerpick - watching 0 tickers") {
		t.Fatalf("expected header with zero count, got:\n%s", view)
	}
	if !strings.Contains(view, "Watchlist (0)") {
		t.Fatalf("expected watchlist title, got:\n%s", view)
	}
	if !strings.Contains(view, "(empty)") {
		t.Fatalf("expected empty placeholder, got:\n%s", view)
	}
}

func TestViewListsSuggestionsWithIndicator(t *testing.T) {
	h := NewHarness(newTestModel(t, searchBackend(t, nil)))
	h.Type("aa")

	view := h.View()
	if !strings.Contains(view, "AAPL") || !strings.Contains(view, "Apple Inc.") {
		t.Fatalf("expected AAPL suggestion row, got:\n%s", view)
	}
	if !strings.Contains(view, "▌") {
		t.Fatalf("expected row indicator, got:\n%s", view)
	}
}

func TestViewShowsNoMatchesForUnknownQuery(t *testing.T) {
	h := NewHarness(newTestModel(t, searchBackend(t, nil)))
	h.Type("zzq")

	view := h.View()
	if !strings.Contains(view, `No matches for "zzq"`) {
		t.Fatalf("expected no-match line, got:\n%s", view)
	}
}

func TestViewMarksWatchedSuggestions(t *testing.T) {
	h := NewHarness(newTestModel(t, searchBackend(t, nil)))
	h.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindWatchlist,
		Data: []watchlist.Entry{{Record: ticker.Record{Ticker: "AAPL", CompanyName: "Apple Inc.", Exchange: "NASDAQ"}}},
	}})

	h.Type("aapl")
	view := h.View()
	if !strings.Contains(view, "✓") {
		t.Fatalf("expected watched marker on AAPL row, got:\n%s", view)
	}
	if !strings.Contains(view, "watching 1 ticker") {
		t.Fatalf("expected singular header, got:\n%s", view)
	}
	if !strings.Contains(view, "Watchlist (1)") {
		t.Fatalf("expected watchlist count, got:\n%s", view)
	}
}

func TestViewCollapsesLongWatchlist(t *testing.T) {
	entries := make([]watchlist.Entry, maxWatchlistRows+3)
	for i := range entries {
		entries[i] = watchlist.Entry{Record: ticker.Record{
			Ticker:      string(rune('A'+i%26)) + "X" + string(rune('A'+i/26)),
			CompanyName: "Company",
			Exchange:    "NYSE",
		}}
	}
	h := NewHarness(NewModel(testIndex(), searchBackend(t, nil), testStore(t), nil, 80, 0, false, false))
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindWatchlist, Data: entries}})

	view := h.View()
	if !strings.Contains(view, "… and 3 more") {
		t.Fatalf("expected overflow line, got:\n%s", view)
	}
}

func TestViewRespectsHeightLimit(t *testing.T) {
	model := NewModel(testIndex(), searchBackend(t, nil), testStore(t), nil, 80, 4, false, false)
	h := NewHarness(model)
	h.Type("aa")

	view := h.View()
	gotLines := strings.Count(view, "\n") + 1
	if gotLines > 4 {
		t.Fatalf("expected at most 4 lines, got %d:\n%s", gotLines, view)
	}
	if !strings.HasSuffix(view, "…") {
		t.Fatalf("expected truncation marker on last line, got:\n%s", view)
	}
}

func TestWindowSizeUpdatesDimensions(t *testing.T) {
	model := NewModel(testIndex(), searchBackend(t, nil), testStore(t), nil, 0, 0, false, false)
	h := NewHarness(model)

	h.Send(tea.WindowSizeMsg{Width: 42, Height: 17})
	if model.width != 42 || model.height != 17 {
		t.Fatalf("expected 42x17, got %dx%d", model.width, model.height)
	}
}

func TestFixedDimensionsIgnoreResize(t *testing.T) {
	model := NewModel(testIndex(), searchBackend(t, nil), testStore(t), nil, 80, 24, false, false)
	h := NewHarness(model)

	h.Send(tea.WindowSizeMsg{Width: 42, Height: 17})
	if model.width != 80 || model.height != 24 {
		t.Fatalf("expected fixed 80x24, got %dx%d", model.width, model.height)
	}
}

func TestViewShowsFooterWhenEnabled(t *testing.T) {
	model := NewModel(testIndex(), searchBackend(t, nil), testStore(t), nil, 80, 24, true, false)
	h := NewHarness(model)

	if !strings.Contains(h.View(), "enter add") {
		t.Fatalf("expected footer key hints, got:\n%s", h.View())
	}
}

func TestBackendErrorSurfacesInStatusLine(t *testing.T) {
	h := NewHarness(newTestModel(t, searchBackend(t, nil)))
	h.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindDirectory,
		Err:  errFake("boom"),
	}})

	if !strings.Contains(h.View(), "background refresh failing") {
		t.Fatalf("expected backend warning, got:\n%s", h.View())
	}

	// A successful refresh clears it.
	h.Send(backendEventMsg{event: backend.Event{
		Kind: backend.KindDirectory,
		Data: []ticker.Record{{Ticker: "IBM", CompanyName: "IBM", Exchange: "NYSE"}},
	}})
	if strings.Contains(h.View(), "background refresh failing") {
		t.Fatalf("expected warning cleared, got:\n%s", h.View())
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
