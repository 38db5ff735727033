package dispatcher

import (
	"github.com/marketpeek/tickerpick/internal/backend"
	"github.com/marketpeek/tickerpick/internal/index"
	"github.com/marketpeek/tickerpick/internal/state"
	"github.com/marketpeek/tickerpick/internal/ticker"
	"github.com/marketpeek/tickerpick/internal/watchlist"
)

type Result struct {
	DirectoryUpdated bool
	DirectoryCount   int
	WatchlistUpdated bool
	WatchlistCount   int
}

// Dispatcher routes backend refresh events into the stores the UI reads
// from: the offline symbol index and the in-memory watchlist view.
type Dispatcher struct {
	index *index.Index
	watch state.WatchlistStore
}

func New(idx *index.Index, watch state.WatchlistStore) *Dispatcher {
	return &Dispatcher{index: idx, watch: watch}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindDirectory:
		if records, ok := evt.Data.([]ticker.Record); ok && len(records) > 0 {
			d.index.Replace(records)
			res.DirectoryUpdated = true
			res.DirectoryCount = len(records)
		}
	case backend.KindWatchlist:
		if entries, ok := evt.Data.([]watchlist.Entry); ok {
			d.watch.SetEntries(entries)
			res.WatchlistUpdated = true
			res.WatchlistCount = len(entries)
		}
	}
	return res
}
