// Package watchlist persists committed tickers in a local SQLite database.
package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/marketpeek/tickerpick/internal/ticker"
)

// ErrExists reports a commit for a ticker already on the watchlist.
var ErrExists = errors.New("ticker already on watchlist")

// Entry is a watchlist row: the committed record plus when it was added.
type Entry struct {
	ticker.Record
	AddedAt time.Time
}

// Store wraps the SQLite database holding the watchlist. *sql.DB serializes
// access, so a Store is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the watchlist database at path and applies the
// schema. Pass ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open watchlist database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate watchlist database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS watchlist (
		ticker TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		exchange TEXT NOT NULL,
		added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_watchlist_added ON watchlist(added_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Add inserts the record under its canonical key. Adding a ticker that is
// already present returns ErrExists and leaves the existing row untouched.
func (s *Store) Add(ctx context.Context, rec ticker.Record) error {
	key := rec.Key()
	if key == "" {
		return errors.New("record has no ticker")
	}
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO watchlist (ticker, company_name, exchange, added_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ticker) DO NOTHING
	`, key, rec.CompanyName, rec.Exchange, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add %s to watchlist: %w", key, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", key, ErrExists)
	}
	return nil
}

// List returns all entries, most recently added first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ticker, company_name, exchange, added_at
		FROM watchlist
		ORDER BY added_at DESC, ticker ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Ticker, &e.CompanyName, &e.Exchange, &e.AddedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Remove deletes the entry for the given ticker. Removing a ticker that is
// not present is not an error.
func (s *Store) Remove(ctx context.Context, symbol string) error {
	key := ticker.Record{Ticker: symbol}.Key()
	_, err := s.db.ExecContext(ctx, "DELETE FROM watchlist WHERE ticker = ?", key)
	if err != nil {
		return fmt.Errorf("remove %s from watchlist: %w", key, err)
	}
	return nil
}

// Contains reports whether the ticker is on the watchlist.
func (s *Store) Contains(ctx context.Context, symbol string) (bool, error) {
	key := ticker.Record{Ticker: symbol}.Key()
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM watchlist WHERE ticker = ?", key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of watchlist entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM watchlist").Scan(&count)
	return count, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
