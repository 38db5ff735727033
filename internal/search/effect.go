package search

import (
	"time"

	"github.com/marketpeek/tickerpick/internal/ticker"
)

// Effect is a side effect requested by a controller transition. The
// controller itself never performs IO or starts timers; the caller executes
// effects and feeds the outcomes back in as events. Timer effects carry a
// generation so that superseded timers are ignored on arrival.
type Effect interface {
	effect()
}

// StartDebounce schedules a DebounceFired(Gen) event after the quiet period.
type StartDebounce struct {
	Gen   int
	After time.Duration
}

// FetchRemote requests an asynchronous remote search for the query owned by
// sequence number Seq.
type FetchRemote struct {
	Seq   int
	Query string
}

// ExpireNotice schedules a NoticeExpired(Gen) event for a transient notice.
type ExpireNotice struct {
	Gen   int
	After time.Duration
}

// StartHideGrace schedules a HideGraceFired(Gen) event; a selection arriving
// inside the window cancels the hide.
type StartHideGrace struct {
	Gen   int
	After time.Duration
}

// PerformCommit requests the asynchronous commit action for Record.
type PerformCommit struct {
	Record ticker.Record
}

// AcceptCommit signals that a commit succeeded and the caller should clear
// the input and refresh any dependent views.
type AcceptCommit struct {
	Record ticker.Record
}

func (StartDebounce) effect()  {}
func (FetchRemote) effect()    {}
func (ExpireNotice) effect()   {}
func (StartHideGrace) effect() {}
func (PerformCommit) effect()  {}
func (AcceptCommit) effect()   {}
