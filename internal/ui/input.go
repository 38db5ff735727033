package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketpeek/tickerpick/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch key.String() {
	case "ctrl+c":
		events.App.Stop("interrupt")
		return tea.Quit
	case "esc":
		if m.ctrl.Visible() {
			cmd := m.apply(m.ctrl.Dismiss())
			events.Suggest.Hide("dismiss")
			return cmd
		}
		events.App.Stop("escape")
		return tea.Quit
	case "up", "ctrl+p":
		cmd := m.apply(m.ctrl.MoveUp())
		events.Suggest.Cursor(m.ctrl.Selection())
		return cmd
	case "down", "ctrl+n":
		cmd := m.apply(m.ctrl.MoveDown())
		events.Suggest.Cursor(m.ctrl.Selection())
		return cmd
	case "enter":
		return m.apply(m.ctrl.CommitCurrent())
	case "tab":
		// Tab parks focus away from the field, e.g. to scan the watchlist.
		if m.input.Focused() {
			m.input.Blur()
			return m.apply(m.ctrl.Blur())
		}
		m.input.Focus()
		return m.apply(m.ctrl.Focus())
	}

	return m.handleTextKey(key)
}

// handleTextKey feeds an editing key into the text input and forwards the
// value to the controller only when the text actually changed.
func (m *Model) handleTextKey(key tea.KeyMsg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, 2)
	if !m.input.Focused() {
		m.input.Focus()
		if cmd := m.apply(m.ctrl.Focus()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if value := m.input.Value(); value != m.lastValue {
		m.lastValue = value
		events.UI.Input(value)
		if cmd := m.apply(m.ctrl.Input(value)); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// handleMouseMsg commits the suggestion under the pointer. The suggestion
// rows always start at the same screen row because the header, input, and
// status lines are rendered unconditionally.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	if !m.ctrl.Visible() {
		return nil
	}
	idx := ev.Y - suggestionsTopRow
	if idx < 0 || idx >= len(m.ctrl.Suggestions()) {
		return nil
	}
	return m.apply(m.ctrl.CommitAt(idx))
}
