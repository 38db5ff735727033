// Package backend refreshes slow-moving data behind the UI: the offline
// symbol directory and the persisted watchlist.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/marketpeek/tickerpick/internal/ticker"
	"github.com/marketpeek/tickerpick/internal/watchlist"
)

// Kind represents the type of data emitted by the refresher.
type Kind int

const (
	KindDirectory Kind = iota
	KindWatchlist
)

// Event conveys refreshed data or an error from a poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// DirectorySource provides the full symbol directory.
type DirectorySource interface {
	Directory(ctx context.Context) ([]ticker.Record, error)
}

// WatchlistSource provides the persisted watchlist entries.
type WatchlistSource interface {
	List(ctx context.Context) ([]watchlist.Entry, error)
}

// Refresher polls its sources at a fixed interval and publishes events. The
// directory poller keeps the offline index current; the watchlist poller
// picks up rows written by other processes sharing the database.
type Refresher struct {
	directory DirectorySource
	watch     WatchlistSource
	interval  time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	kicks  map[Kind]chan struct{}
	wg     sync.WaitGroup
}

// NewRefresher creates a refresher that polls both sources every interval.
func NewRefresher(directory DirectorySource, watch WatchlistSource, interval time.Duration) *Refresher {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Refresher{
		directory: directory,
		watch:     watch,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan Event, 16),
		kicks: map[Kind]chan struct{}{
			KindDirectory: make(chan struct{}, 1),
			KindWatchlist: make(chan struct{}, 1),
		},
	}

	r.startDirectoryPoller()
	r.startWatchlistPoller()

	go func() {
		r.wg.Wait()
		close(r.events)
	}()

	return r
}

// Events returns a channel of refresh events.
func (r *Refresher) Events() <-chan Event {
	return r.events
}

// Kick requests an immediate refresh of the given kind, ahead of the next
// scheduled poll. Used after a successful commit to reload the watchlist.
func (r *Refresher) Kick(kind Kind) {
	ch, ok := r.kicks[kind]
	if !ok {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Stop cancels the refresher. Pollers exit after their current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (r *Refresher) Stop() {
	r.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (r *Refresher) Wait() {
	r.wg.Wait()
}

func (r *Refresher) startDirectoryPoller() {
	gate := newGate(time.Second)
	r.wg.Add(1)
	go r.poll(KindDirectory, func(ctx context.Context) (interface{}, error) {
		gate.wait()
		return r.directory.Directory(ctx)
	})
}

func (r *Refresher) startWatchlistPoller() {
	gate := newGate(time.Second)
	r.wg.Add(1)
	go r.poll(KindWatchlist, func(ctx context.Context) (interface{}, error) {
		gate.wait()
		return r.watch.List(ctx)
	})
}

func (r *Refresher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer r.wg.Done()

	emit := func() bool {
		data, err := fetch(r.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-r.ctx.Done():
			return false
		case r.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	tick := time.NewTicker(r.interval)
	defer tick.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-r.kicks[kind]:
			if !emit() {
				return
			}
		case <-tick.C:
			if !emit() {
				return
			}
		}
	}
}

// gate enforces a minimum spacing between successive fetches, so a burst of
// kicks cannot hammer the sources.
type gate struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newGate(interval time.Duration) *gate {
	if interval <= 0 {
		return &gate{}
	}
	return &gate{interval: interval}
}

func (g *gate) wait() {
	if g == nil || g.interval <= 0 {
		return
	}
	for {
		g.mu.Lock()
		wait := time.Until(g.next)
		if wait <= 0 {
			g.next = time.Now().Add(g.interval)
			g.mu.Unlock()
			return
		}
		g.mu.Unlock()
		if wait > g.interval {
			wait = g.interval
		}
		time.Sleep(wait)
	}
}
