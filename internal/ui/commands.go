package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketpeek/tickerpick/internal/backend"
	"github.com/marketpeek/tickerpick/internal/logging"
	"github.com/marketpeek/tickerpick/internal/logging/events"
	"github.com/marketpeek/tickerpick/internal/remote"
	"github.com/marketpeek/tickerpick/internal/search"
	"github.com/marketpeek/tickerpick/internal/ticker"
	"github.com/marketpeek/tickerpick/internal/ui/command"
	"github.com/marketpeek/tickerpick/internal/watchlist"
)

const commitTimeout = 10 * time.Second

// Timer and async outcome messages. Each timer message carries the
// generation stamped into the effect that armed it; the controller drops
// arrivals whose generation is no longer current.
type debounceFiredMsg struct{ gen int }

type noticeExpiredMsg struct{ gen int }

type hideGraceMsg struct{ gen int }

type remoteResultsMsg struct {
	seq     int
	records []ticker.Record
	err     error
}

type commitDoneMsg struct {
	record ticker.Record
	err    error
}

// apply converts controller effects into Bubble Tea commands. Non-timer
// bookkeeping (clearing the input after an accepted commit) happens here as
// well, since it belongs to the UI rather than the controller.
func (m *Model) apply(effects []search.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range effects {
		switch eff := e.(type) {
		case search.StartDebounce:
			events.Search.Debounce(m.ctrl.Query(), eff.Gen)
			cmds = append(cmds, tea.Tick(eff.After, func(time.Time) tea.Msg {
				return debounceFiredMsg{gen: eff.Gen}
			}))
		case search.FetchRemote:
			events.Search.Dispatch(eff.Query, eff.Seq)
			cmds = append(cmds, m.fetchRemoteCmd(eff))
		case search.ExpireNotice:
			cmds = append(cmds, tea.Tick(eff.After, func(time.Time) tea.Msg {
				return noticeExpiredMsg{gen: eff.Gen}
			}))
		case search.StartHideGrace:
			cmds = append(cmds, tea.Tick(eff.After, func(time.Time) tea.Msg {
				return hideGraceMsg{gen: eff.Gen}
			}))
		case search.PerformCommit:
			events.Commit.Attempt(eff.Record.Key())
			cmds = append(cmds, m.performCommitCmd(eff.Record))
		case search.AcceptCommit:
			events.Commit.Success(eff.Record.Key())
			m.input.SetValue("")
			m.lastValue = ""
			if m.verbose {
				m.setInfo(fmt.Sprintf("Added %s to watchlist", eff.Record.Key()))
			}
			if m.backend != nil {
				m.backend.Kick(backend.KindWatchlist)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetchRemoteCmd(eff search.FetchRemote) tea.Cmd {
	return m.bus.Execute(command.Request{
		Name: "remote.search",
		Run: func() tea.Msg {
			records, err := m.client.Search(context.Background(), eff.Query, search.MaxSuggestions)
			return remoteResultsMsg{seq: eff.Seq, records: records, err: err}
		},
	})
}

func (m *Model) performCommitCmd(rec ticker.Record) tea.Cmd {
	return m.bus.Execute(command.Request{
		Name: "watchlist.add",
		Run: func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), commitTimeout)
			defer cancel()
			if err := m.store.Add(ctx, rec); err != nil {
				return commitDoneMsg{record: rec, err: err}
			}
			// Remote registration is best effort; the local row is the
			// source of truth for this client.
			if m.client != nil {
				if err := m.client.AddToWatchlist(ctx, rec); err != nil {
					logging.Error(err)
				}
			}
			return commitDoneMsg{record: rec}
		},
	})
}

func (m *Model) handleDebounceFiredMsg(msg tea.Msg) tea.Cmd {
	fired, ok := msg.(debounceFiredMsg)
	if !ok {
		return nil
	}
	cmd := m.apply(m.ctrl.DebounceFired(fired.gen))
	if m.ctrl.Visible() {
		events.Suggest.Show(len(m.ctrl.Suggestions()))
	}
	return cmd
}

func (m *Model) handleRemoteResultsMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(remoteResultsMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		kind, message := classifyRemoteError(res.err)
		events.Search.Failed(res.seq, kind.String(), message)
		return m.apply(m.ctrl.RemoteFailed(res.seq, kind, message))
	}
	if res.seq != m.ctrl.ActiveSeq() {
		events.Search.Stale(res.seq, m.ctrl.ActiveSeq())
	} else {
		events.Search.Results(res.seq, len(res.records))
	}
	return m.apply(m.ctrl.RemoteResults(res.seq, res.records))
}

func classifyRemoteError(err error) (search.ErrorKind, string) {
	var remoteErr *remote.Error
	if errors.As(err, &remoteErr) {
		if remoteErr.Kind == remote.KindConnectivity {
			return search.ErrorConnectivity, "backend unreachable"
		}
		return search.ErrorApplication, remoteErr.Message
	}
	return search.ErrorApplication, err.Error()
}

func (m *Model) handleNoticeExpiredMsg(msg tea.Msg) tea.Cmd {
	expired, ok := msg.(noticeExpiredMsg)
	if !ok {
		return nil
	}
	return m.apply(m.ctrl.NoticeExpired(expired.gen))
}

func (m *Model) handleHideGraceMsg(msg tea.Msg) tea.Cmd {
	grace, ok := msg.(hideGraceMsg)
	if !ok {
		return nil
	}
	wasVisible := m.ctrl.Visible()
	cmd := m.apply(m.ctrl.HideGraceFired(grace.gen))
	if wasVisible && !m.ctrl.Visible() {
		events.Suggest.Hide("blur")
	}
	return cmd
}

func (m *Model) handleCommitDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(commitDoneMsg)
	if !ok {
		return nil
	}
	if done.err != nil {
		message := commitFailureMessage(done)
		events.Commit.Failure(done.record.Key(), message)
		return m.apply(m.ctrl.CommitFinished(false, message))
	}
	return m.apply(m.ctrl.CommitFinished(true, fmt.Sprintf("Added %s", done.record.Key())))
}

func commitFailureMessage(done commitDoneMsg) string {
	if errors.Is(done.err, watchlist.ErrExists) {
		return fmt.Sprintf("%s is already on the watchlist", done.record.Key())
	}
	return done.err.Error()
}
