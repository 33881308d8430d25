package ui

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/debounce"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Fetcher state.Fetcher
	Store   *state.Store

	// Debounce is the quiet window after the last keystroke. Zero uses
	// debounce.DefaultDelay.
	Debounce time.Duration

	ThemeName   string
	ShowDetails bool
	PrefsPath   string

	// FilterExpr is shown in the header when a result filter is active.
	FilterExpr string

	Logger zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	fetcher   state.Fetcher
	store     *state.Store
	debouncer *debounce.Debouncer[string]
	sink      *msgSink
	logger    zerolog.Logger
	prefsPath string

	theme       Theme
	keys        keyMap
	showDetails bool
	filterExpr  string

	input   textinput.Model
	spinner spinner.Model
	results viewport.Model

	width    int
	height   int
	ready    bool
	showHelp bool
}

// New creates a new Bubble Tea model. Debounced queries are delivered through
// the program attached by Run; until then they are dropped.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := opts.Store
	if store == nil {
		store = state.NewStore(state.ApplyInArrivalOrder)
	}

	delay := opts.Debounce
	if delay <= 0 {
		delay = debounce.DefaultDelay
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	sink := &msgSink{}

	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.Prompt = "⌕ "
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		fetcher:   opts.Fetcher,
		store:     store,
		sink:      sink,
		logger:    opts.Logger,
		prefsPath: prefsPath,
		debouncer: debounce.New(delay, func(q string) {
			sink.Send(queryDebouncedMsg{query: q})
		}),
		theme:       GetTheme(themeName),
		keys:        defaultKeyMap(),
		showDetails: opts.ShowDetails,
		filterExpr:  opts.FilterExpr,
		input:       input,
		spinner:     sp,
		results:     viewport.New(0, 0),
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model. It dispatches the mount fetch with an empty
// query, which lists popular movies.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.startFetch(""))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refreshResults()
		return m, nil

	case queryDebouncedMsg:
		return m, m.applyQuery(msg.query)

	case fetchResultMsg:
		return m.handleFetchResult(msg)

	case spinner.TickMsg:
		// Let the tick loop die once nothing is loading; startFetch restarts it.
		if !m.store.Snapshot().Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshResults()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	snap := m.store.Snapshot()
	styles := m.theme.Styles()

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(snap),
		styles.Input.Width(max(m.width-2, 1)).Render(m.input.View()),
		m.results.View(),
		m.renderFooter(),
	)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.debouncer.Stop()
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.refreshResults()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleDetails):
		m.showDetails = !m.showDetails
		m.refreshResults()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.SearchNow):
		// Skip the rest of the quiet window.
		m.debouncer.Cancel()
		return m, m.applyQuery(m.input.Value())

	case key.Matches(msg, m.keys.Clear):
		if m.input.Value() == "" {
			return m, nil
		}
		m.input.SetValue("")
		m.textChanged()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.results.ScrollUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.results.ScrollDown(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.results.PageUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.results.PageDown()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.textChanged()
	}
	return m, cmd
}

// textChanged records the raw input and restarts the quiet window.
func (m *Model) textChanged() {
	text := m.input.Value()
	m.store.SetSearchText(text)
	m.debouncer.Push(text)
}

// applyQuery commits a debounced value and fetches when it differs from the
// last committed one.
func (m *Model) applyQuery(query string) tea.Cmd {
	if !m.store.SetDebounced(query) {
		return nil
	}
	m.logger.Debug().Str("query", query).Msg("query settled")
	cmd := m.startFetch(query)
	m.refreshResults()
	return cmd
}

// startFetch marks a fetch in flight and returns the command that runs it.
func (m Model) startFetch(query string) tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	wasIdle := !m.store.Snapshot().Loading
	ticket := m.store.Begin(query)

	cmds := []tea.Cmd{fetchCmd(m.ctx, m.fetcher, ticket)}
	if wasIdle {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m Model) handleFetchResult(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	applied := m.store.Settle(msg.ticket, msg.outcome)

	ev := m.logger.Debug().
		Uint64("seq", msg.ticket.Seq).
		Str("query", msg.ticket.Query).
		Str("outcome", msg.outcome.Kind.String()).
		Int("movies", len(msg.outcome.Movies)).
		Bool("applied", applied)
	if !msg.outcome.OK() {
		ev = ev.Str("message", msg.outcome.Message)
	}
	ev.Msg("fetch settled")

	m.refreshResults()
	if applied {
		m.results.GotoTop()
	}
	return m, nil
}

func (m *Model) resize() {
	m.input.Width = max(m.width-6-lipgloss.Width(m.input.Prompt), 1)
	m.results.Width = m.width
	m.results.Height = resultsHeight(m.height)
}

func (m *Model) refreshResults() {
	snap := m.store.Snapshot()
	m.results.SetContent(RenderResults(m.theme.Styles(), ResultsView{
		Width:       m.width,
		Loading:     snap.Loading,
		Spinner:     m.spinner.View(),
		ErrorMsg:    snap.ErrorMsg,
		Movies:      snap.Movies,
		ShowDetails: m.showDetails,
	}))
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.input.PromptStyle = styles.Prompt
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.FaintText
	m.input.Cursor.Style = styles.AccentText
	m.spinner.Style = styles.AccentText
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, ShowDetails: m.showDetails}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs")
	}
}

// Messages

// queryDebouncedMsg carries the input value once typing has paused.
type queryDebouncedMsg struct {
	query string
}

// fetchResultMsg is produced exactly once per dispatched fetch.
type fetchResultMsg struct {
	ticket  state.Ticket
	outcome catalog.Outcome
}

// Commands

func fetchCmd(ctx context.Context, f state.Fetcher, t state.Ticket) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = fetchResultMsg{ticket: t, outcome: catalog.Failure(t.Query, catalog.MsgTryLater)}
			}
		}()
		return fetchResultMsg{ticket: t, outcome: f.Fetch(ctx, t.Query)}
	}
}

// msgSink forwards messages from timer goroutines into the running program.
type msgSink struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (s *msgSink) attach(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

// Send delivers msg, or drops it when no program is attached. It must not be
// called from Update: Program.Send blocks until the event loop receives.
func (s *msgSink) Send(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is done.
func Run(opts Options) error {
	m := New(opts)
	defer m.debouncer.Stop()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	m.sink.attach(p.Send)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

