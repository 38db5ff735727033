package search

import (
	"strings"

	"github.com/marketpeek/tickerpick/internal/ticker"
)

// LocalMatcher is the synchronous offline lookup consumed by the controller.
// Implementations must return already-ranked records and never block.
type LocalMatcher func(query string, limit int) []ticker.Record

// Controller is the search and selection state machine. Every event method
// performs a single atomic transition and returns the effects the caller must
// execute; the controller never does IO or starts timers itself. It is not
// safe for concurrent use: all events must arrive on one goroutine, which is
// how the UI update loop delivers them.
type Controller struct {
	local LocalMatcher

	phase Phase
	query string

	// Generation counters. Each pending timer or request carries the value
	// current at creation; stale arrivals compare unequal and are dropped.
	seq         int
	debounceGen int
	noticeGen   int
	hideGen     int

	suggestions []ticker.Record
	selection   int
	visible     bool

	notice *Notice

	commitPhase CommitPhase
	committing  *ticker.Record
	commitMsg   string
}

// New returns an idle controller backed by the given local matcher.
func New(local LocalMatcher) *Controller {
	return &Controller{
		local:     local,
		phase:     PhaseIdle,
		selection: -1,
	}
}

// Input processes an edited input value. Any pending debounce is superseded,
// commit outcome state is cleared, and a new quiet period starts unless the
// trimmed query is too short, in which case the controller returns to idle.
func (c *Controller) Input(value string) []Effect {
	c.debounceGen++
	c.clearCommitOutcome()
	c.notice = nil

	trimmed := strings.TrimSpace(value)
	if len(trimmed) < MinQueryLen {
		c.phase = PhaseIdle
		c.query = ""
		c.suggestions = nil
		c.selection = -1
		c.visible = false
		return nil
	}

	c.query = trimmed
	c.phase = PhaseDebouncing
	return []Effect{StartDebounce{Gen: c.debounceGen, After: DebounceInterval}}
}

// DebounceFired handles expiry of the quiet period. A stale generation means
// the input changed after this timer was armed, so the event is ignored.
// Otherwise a new search cycle begins: local results show immediately and a
// remote fetch is dispatched under a fresh sequence number.
func (c *Controller) DebounceFired(gen int) []Effect {
	if gen != c.debounceGen || c.phase != PhaseDebouncing {
		return nil
	}

	c.seq++
	c.phase = PhaseSearching
	local := c.local(c.query, MaxSuggestions)
	if len(local) > MaxSuggestions {
		local = local[:MaxSuggestions]
	}
	c.suggestions = ticker.CloneRecords(local)
	c.selection = -1
	c.visible = true
	return []Effect{FetchRemote{Seq: c.seq, Query: c.query}}
}

// RemoteResults handles a completed remote search. Responses whose sequence
// number is not the active one are discarded without touching any state, so
// an out-of-order slow response can never clobber a newer query's results.
func (c *Controller) RemoteResults(seq int, records []ticker.Record) []Effect {
	if seq != c.seq || c.phase != PhaseSearching {
		return nil
	}

	c.suggestions = Merge(records, c.suggestions, MaxSuggestions)
	c.selection = -1
	c.phase = PhaseReady
	c.visible = true
	return nil
}

// RemoteFailed handles a failed remote search. Stale failures are discarded
// like stale results. Connectivity failures keep the local suggestions on
// screen under a sticky notice; application failures surface a transient
// notice that expires after NoticeTTL.
func (c *Controller) RemoteFailed(seq int, kind ErrorKind, message string) []Effect {
	if seq != c.seq || c.phase != PhaseSearching {
		return nil
	}

	switch kind {
	case ErrorConnectivity:
		c.phase = PhaseReady
		c.notice = &Notice{Kind: ErrorConnectivity, Message: message, Sticky: true}
		return nil
	default:
		c.phase = PhaseFailed
		c.notice = &Notice{Kind: ErrorApplication, Message: message}
		c.noticeGen++
		return []Effect{ExpireNotice{Gen: c.noticeGen, After: NoticeTTL}}
	}
}

// NoticeExpired clears a transient notice when its timer fires. Sticky
// notices and notices replaced since the timer was armed are left alone.
func (c *Controller) NoticeExpired(gen int) []Effect {
	if gen != c.noticeGen || c.notice == nil || c.notice.Sticky {
		return nil
	}
	c.notice = nil
	if c.phase == PhaseFailed {
		c.phase = PhaseReady
	}
	return nil
}

// CommitCurrent commits the highlighted suggestion. With no highlight it is
// a no-op so that a bare Enter press never commits an unchosen record.
func (c *Controller) CommitCurrent() []Effect {
	if c.selection < 0 || c.selection >= len(c.suggestions) {
		return nil
	}
	return c.commitRecord(c.suggestions[c.selection])
}

// CommitAt commits the suggestion at index i, as chosen by a pointer click.
// Out-of-range indexes are ignored.
func (c *Controller) CommitAt(i int) []Effect {
	if i < 0 || i >= len(c.suggestions) {
		return nil
	}
	c.selection = i
	return c.commitRecord(c.suggestions[i])
}

func (c *Controller) commitRecord(rec ticker.Record) []Effect {
	if c.commitPhase == Committing {
		return nil
	}
	// A commit beats any pending hide-on-blur.
	c.hideGen++
	c.notice = nil
	clone := rec.Clone()
	c.commitPhase = Committing
	c.committing = &clone
	c.commitMsg = ""
	return []Effect{PerformCommit{Record: clone.Clone()}}
}

// CommitFinished handles the outcome of the asynchronous commit action.
// Failure leaves the suggestions and selection intact so the user can retry.
func (c *Controller) CommitFinished(ok bool, message string) []Effect {
	if c.commitPhase != Committing || c.committing == nil {
		return nil
	}
	rec := *c.committing
	c.committing = nil
	c.commitMsg = message

	if !ok {
		c.commitPhase = CommitFailed
		c.notice = &Notice{Kind: ErrorCommit, Message: message, Sticky: true}
		return nil
	}

	c.commitPhase = CommitSucceeded
	c.debounceGen++
	c.phase = PhaseIdle
	c.query = ""
	c.suggestions = nil
	c.selection = -1
	c.visible = false
	return []Effect{AcceptCommit{Record: rec}}
}

func (c *Controller) clearCommitOutcome() {
	if c.commitPhase == CommitSucceeded || c.commitPhase == CommitFailed {
		c.commitPhase = CommitIdle
		c.commitMsg = ""
	}
}

// Phase returns the current search phase.
func (c *Controller) Phase() Phase { return c.phase }

// Query returns the trimmed query owning the current cycle.
func (c *Controller) Query() string { return c.query }

// ActiveSeq returns the sequence number of the most recent dispatch.
func (c *Controller) ActiveSeq() int { return c.seq }

// Suggestions returns a copy of the current suggestion list.
func (c *Controller) Suggestions() []ticker.Record {
	return ticker.CloneRecords(c.suggestions)
}

// Selection returns the highlighted index, or -1 for no highlight.
func (c *Controller) Selection() int { return c.selection }

// Visible reports whether the suggestion list should be rendered.
func (c *Controller) Visible() bool { return c.visible }

// Notice returns the active notice, or nil.
func (c *Controller) Notice() *Notice {
	if c.notice == nil {
		return nil
	}
	n := *c.notice
	return &n
}

// CommitState returns the commit phase and its outcome message.
func (c *Controller) CommitState() (CommitPhase, string) {
	return c.commitPhase, c.commitMsg
}
