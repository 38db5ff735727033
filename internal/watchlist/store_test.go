package watchlist

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/marketpeek/tickerpick/internal/ticker"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpenCreatesSchema(t *testing.T) {
	st := openTestStore(t)

	var name string
	err := st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='watchlist'").Scan(&name)
	if err != nil {
		t.Fatalf("watchlist table not created: %v", err)
	}
}

func TestAddAndList(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	records := []ticker.Record{
		{Ticker: "AAPL", CompanyName: "Apple Inc.", Exchange: "NASDAQ"},
		{Ticker: "MSFT", CompanyName: "Microsoft Corporation", Exchange: "NASDAQ"},
	}
	for _, rec := range records {
		if err := st.Add(ctx, rec); err != nil {
			t.Fatalf("Add %s failed: %v", rec.Ticker, err)
		}
	}

	entries, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.AddedAt.IsZero() {
			t.Errorf("entry %s has zero added_at", e.Ticker)
		}
	}
}

func TestAddDuplicateReturnsErrExists(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rec := ticker.Record{Ticker: "AAPL", CompanyName: "Apple Inc.", Exchange: "NASDAQ"}
	if err := st.Add(ctx, rec); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	// The key is canonical, so case differences still collide.
	err := st.Add(ctx, ticker.Record{Ticker: "aapl", CompanyName: "Apple", Exchange: "NASDAQ"})
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}

	count, err := st.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 entry after duplicate add, got %d", count)
	}
}

func TestAddRejectsBlankTicker(t *testing.T) {
	st := openTestStore(t)

	if err := st.Add(context.Background(), ticker.Record{Ticker: "   "}); err == nil {
		t.Fatal("expected error for blank ticker")
	}
}

func TestContainsAndRemove(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rec := ticker.Record{Ticker: "AAPL", CompanyName: "Apple Inc.", Exchange: "NASDAQ"}
	if err := st.Add(ctx, rec); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	ok, err := st.Contains(ctx, "aapl")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !ok {
		t.Fatal("expected AAPL on watchlist")
	}

	if err := st.Remove(ctx, "AAPL"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	ok, err = st.Contains(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Contains after remove failed: %v", err)
	}
	if ok {
		t.Fatal("expected AAPL removed")
	}

	// Removing an absent ticker is fine.
	if err := st.Remove(ctx, "AAPL"); err != nil {
		t.Fatalf("Remove of absent ticker failed: %v", err)
	}
}

func TestOpenPersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.db")
	ctx := context.Background()

	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := st.Add(ctx, ticker.Record{Ticker: "AAPL", CompanyName: "Apple Inc.", Exchange: "NASDAQ"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer st.Close()

	ok, err := st.Contains(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !ok {
		t.Fatal("expected entry to survive reopen")
	}
}
