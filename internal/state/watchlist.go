package state

import "github.com/marketpeek/tickerpick/internal/watchlist"

// WatchlistStore is the in-memory view of the persisted watchlist that the
// UI renders from. It is refreshed by the dispatcher whenever the backend
// reloads the database.
type WatchlistStore interface {
	Entries() []watchlist.Entry
	SetEntries([]watchlist.Entry)
	Contains(key string) bool
	Count() int
}

type watchlistStore struct {
	entries []watchlist.Entry
	keys    map[string]struct{}
}

func NewWatchlistStore() WatchlistStore {
	return &watchlistStore{keys: map[string]struct{}{}}
}

func (s *watchlistStore) Entries() []watchlist.Entry {
	return cloneEntries(s.entries)
}

func (s *watchlistStore) SetEntries(entries []watchlist.Entry) {
	s.entries = cloneEntries(entries)
	s.keys = make(map[string]struct{}, len(entries))
	for _, e := range entries {
		s.keys[e.Key()] = struct{}{}
	}
}

func (s *watchlistStore) Contains(key string) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *watchlistStore) Count() int {
	return len(s.entries)
}

func cloneEntries(entries []watchlist.Entry) []watchlist.Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]watchlist.Entry, len(entries))
	copy(dup, entries)
	return dup
}
