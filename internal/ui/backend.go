package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketpeek/tickerpick/internal/backend"
	"github.com/marketpeek/tickerpick/internal/logging/events"
)

func waitForBackendEvent(r *backend.Refresher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-r.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.backendErr = evt.Err.Error()
		events.Backend.Error(kindName(evt.Kind), evt.Err)
		return
	}
	m.backendErr = ""

	res := m.dispatcher.Handle(evt)
	if res.DirectoryUpdated {
		events.Backend.Refresh("directory", res.DirectoryCount)
	}
	if res.WatchlistUpdated {
		events.Backend.Refresh("watchlist", res.WatchlistCount)
	}
}

func kindName(kind backend.Kind) string {
	switch kind {
	case backend.KindDirectory:
		return "directory"
	case backend.KindWatchlist:
		return "watchlist"
	default:
		return "unknown"
	}
}
