package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/marketpeek/tickerpick/internal/format/table"
	"github.com/marketpeek/tickerpick/internal/logging/events"
	"github.com/marketpeek/tickerpick/internal/search"
)

// suggestionsTopRow is the screen row of the first suggestion. The header,
// input, and status lines above it are rendered unconditionally so mouse
// hit-testing stays a constant offset.
const suggestionsTopRow = 3

const maxWatchlistRows = 15

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 32)

	lines = append(lines, styledLine{text: m.headerLine(), style: styles.Header})
	lines = append(lines, styledLine{text: m.input.View(), raw: true})
	lines = append(lines, m.statusLine())

	if m.ctrl.Visible() {
		lines = append(lines, m.suggestionLines()...)
	}

	lines = append(lines, styledLine{})
	lines = append(lines, m.watchlistLines()...)

	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "↑/↓ move  enter add  esc dismiss  tab blur  ctrl+c quit", style: styles.Footer})
	}

	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) headerLine() string {
	count := m.watch.Count()
	suffix := "tickers"
	if count == 1 {
		suffix = "ticker"
	}
	return fmt.Sprintf("tickerpick - watching %d %s", count, suffix)
}

// statusLine is always one row: search progress, then any notice, then the
// transient info message, then background trouble, then blank.
func (m *Model) statusLine() styledLine {
	if m.ctrl.Phase() == search.PhaseSearching {
		return styledLine{text: m.spin.View() + "searching…", raw: true}
	}
	if notice := m.ctrl.Notice(); notice != nil {
		style := styles.Error
		if notice.Kind == search.ErrorConnectivity {
			style = styles.Warning
		}
		return styledLine{text: notice.Message, style: style}
	}
	if info := m.currentInfo(); info != "" {
		return styledLine{text: info, style: styles.Info}
	}
	if m.backendErr != "" {
		return styledLine{text: "background refresh failing", style: styles.Warning}
	}
	return styledLine{}
}

func (m *Model) suggestionLines() []styledLine {
	suggestions := m.ctrl.Suggestions()
	if len(suggestions) == 0 {
		query := m.ctrl.Query()
		if query == "" {
			return nil
		}
		return []styledLine{{text: fmt.Sprintf("No matches for %q", query), style: styles.Info}}
	}

	rows := make([][]string, len(suggestions))
	for i, rec := range suggestions {
		marker := " "
		if m.watch.Contains(rec.Key()) {
			marker = "✓"
		}
		rows[i] = []string{rec.Key(), rec.CompanyName, rec.Exchange, marker}
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft})

	selection := m.ctrl.Selection()
	lines := make([]styledLine, len(formatted))
	for i, row := range formatted {
		indicator := "▌"
		lineStyle := styles.Item
		indicatorStyle := styles.ItemIndicator
		if i == selection {
			indicatorStyle = styles.SelectedItemIndicator
			lineStyle = styles.SelectedItem
		}
		text := indicator + " " + row
		if m.width > 0 {
			if pad := m.width - len([]rune(text)); pad > 0 {
				text += strings.Repeat(" ", pad)
			}
		}
		lines[i] = styledLine{
			text:          text,
			style:         lineStyle,
			prefixStyle:   indicatorStyle,
			highlightFrom: 1, // just the ▌ character
		}
	}
	return lines
}

func (m *Model) watchlistLines() []styledLine {
	entries := m.watch.Entries()
	lines := []styledLine{{text: fmt.Sprintf("Watchlist (%d)", len(entries)), style: styles.WatchlistTitle}}
	if len(entries) == 0 {
		lines = append(lines, styledLine{text: "(empty)", style: styles.Info})
		return lines
	}

	shown := entries
	if len(shown) > maxWatchlistRows {
		shown = shown[:maxWatchlistRows]
	}
	rows := make([][]string, len(shown))
	for i, e := range shown {
		rows[i] = []string{e.Key(), e.CompanyName, e.Exchange}
	}
	for _, row := range table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft}) {
		lines = append(lines, styledLine{text: "  " + row, style: styles.WatchlistRow})
	}
	if rest := len(entries) - len(shown); rest > 0 {
		lines = append(lines, styledLine{text: fmt.Sprintf("  … and %d more", rest), style: styles.Info})
	}
	return lines
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if w := lipgloss.Width(text); w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
