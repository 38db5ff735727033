package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketpeek/tickerpick/internal/backend"
	"github.com/marketpeek/tickerpick/internal/data/dispatcher"
	"github.com/marketpeek/tickerpick/internal/index"
	"github.com/marketpeek/tickerpick/internal/remote"
	"github.com/marketpeek/tickerpick/internal/search"
	"github.com/marketpeek/tickerpick/internal/state"
	"github.com/marketpeek/tickerpick/internal/theme"
	"github.com/marketpeek/tickerpick/internal/ui/command"
	"github.com/marketpeek/tickerpick/internal/watchlist"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for the ticker picker.
type Model struct {
	ctrl  *search.Controller
	input textinput.Model
	spin  spinner.Model

	idx        *index.Index
	client     *remote.Client
	store      *watchlist.Store
	backend    *backend.Refresher
	dispatcher *dispatcher.Dispatcher
	watch      state.WatchlistStore
	bus        *command.Bus

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	infoMsg    string
	infoExpire time.Time
	backendErr string

	// lastValue tracks the input text so only real edits reach the
	// controller; cursor movement inside the field is not an edit.
	lastValue string

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state around the search controller.
func NewModel(idx *index.Index, client *remote.Client, store *watchlist.Store, refresher *backend.Refresher, width, height int, showFooter, verbose bool) *Model {
	watch := state.NewWatchlistStore()
	m := &Model{
		ctrl:       search.New(idx.Search),
		idx:        idx,
		client:     client,
		store:      store,
		backend:    refresher,
		dispatcher: dispatcher.New(idx, watch),
		watch:      watch,
		bus:        command.New(),
		showFooter: showFooter,
		verbose:    verbose,
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}

	ti := textinput.New()
	ti.Placeholder = "search tickers"
	ti.Prompt = "> "
	ti.CharLimit = 64
	if styles.InputPrompt != nil {
		ti.PromptStyle = *styles.InputPrompt
	}
	if styles.Input != nil {
		ti.TextStyle = *styles.Input
	}
	if styles.InputPlaceholder != nil {
		ti.PlaceholderStyle = *styles.InputPlaceholder
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	ti.Focus()
	m.input = ti

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	if styles.Loading != nil {
		sp.Style = *styles.Loading
	}
	m.spin = sp

	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spin.Tick}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	// Unrouted messages drive the blink cursor and the spinner.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.spin, cmd = m.spin.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(debounceFiredMsg{}):  m.handleDebounceFiredMsg,
		reflect.TypeOf(remoteResultsMsg{}):  m.handleRemoteResultsMsg,
		reflect.TypeOf(noticeExpiredMsg{}):  m.handleNoticeExpiredMsg,
		reflect.TypeOf(hideGraceMsg{}):      m.handleHideGraceMsg,
		reflect.TypeOf(commitDoneMsg{}):     m.handleCommitDoneMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Controller exposes the search controller for tests.
func (m *Model) Controller() *search.Controller {
	return m.ctrl
}
