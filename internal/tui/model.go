// Package tui provides the Bubble Tea country explorer.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/worldview/internal/explorer"
	"github.com/verte-zerg/worldview/internal/logging"
	"github.com/verte-zerg/worldview/internal/model"
	"github.com/verte-zerg/worldview/internal/restcountries"
	"github.com/verte-zerg/worldview/internal/theme"
)

// Service is the data source the explorer reads from.
type Service interface {
	AllCountries(ctx context.Context) restcountries.Result[[]model.Country]
	CountryByName(ctx context.Context, name string) restcountries.Result[model.Country]
	CountryByCode(ctx context.Context, code string) restcountries.Result[model.Country]
}

// Options configures a Model.
type Options struct {
	// Context bounds every lookup the model issues. Defaults to Background.
	Context context.Context
	Service Service
	Themes  *theme.Manager
	// SystemChanges delivers system dark-mode signals; nil disables them.
	SystemChanges <-chan bool
	Logger        *logging.Logger
}

type systemThemeMsg struct {
	dark bool
}

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model implements the Bubble Tea explorer UI.
type Model struct {
	ctx           context.Context
	svc           Service
	ctrl          *explorer.Controller
	themes        *theme.Manager
	systemChanges <-chan bool
	log           *logging.Logger

	search    textinput.Model
	searching bool
	regionIdx int

	cursor       int
	rowOffset    int
	borderCursor int
	detailID     string
	detail       viewport.Model

	spinner spinner.Model
	keys    keyMap
	help    help.Model

	width  int
	height int
}

// NewModel constructs the explorer model. The theme manager should already
// be initialised.
func NewModel(opts Options) *Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	themes := opts.Themes
	if themes == nil {
		themes = theme.NewManager(theme.Options{Logger: opts.Logger})
	}
	search := textinput.New()
	search.Placeholder = "Search for a country..."
	search.Prompt = "🔍 "
	search.Width = 32

	m := &Model{
		ctx:           ctx,
		svc:           opts.Service,
		ctrl:          explorer.New(),
		themes:        themes,
		systemChanges: opts.SystemChanges,
		log:           opts.Logger,
		search:        search,
		detail:        viewport.New(defaultWidth, defaultHeight),
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		keys:          newKeyMap(),
		help:          help.New(),
		width:         defaultWidth,
		height:        defaultHeight,
	}
	m.applyTheme()
	m.resize()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick, waitForSystemTheme(m.systemChanges))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case systemThemeMsg:
		if m.themes.SystemChanged(m.ctx, msg.dark) {
			m.log.Debug("following system theme")
			m.applyTheme()
		}
		return m, waitForSystemTheme(m.systemChanges)
	case explorer.Intent:
		return m, m.dispatch(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) dispatch(intent explorer.Intent) tea.Cmd {
	wasBusy := m.busy()
	effect := m.ctrl.Dispatch(intent)
	switch intent.(type) {
	case explorer.SearchChanged, explorer.RegionChanged, explorer.Loaded:
		m.cursor = 0
		m.rowOffset = 0
	}
	m.syncDetail()

	var cmds []tea.Cmd
	if effect != nil {
		cmds = append(cmds, m.effectCmd(effect))
	}
	if !wasBusy && m.busy() {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.searching {
		return m.handleSearchKey(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()
		return nil
	}

	switch m.ctrl.Phase() {
	case explorer.PhaseDetail:
		return m.handleDetailKey(msg)
	case explorer.PhaseReady, explorer.PhaseError:
		return m.handleGridKey(msg)
	default:
		return nil
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.dispatch(explorer.SearchChanged{Term: m.search.Value()}))
}

func (m *Model) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	cards := len(m.ctrl.Filtered())
	cols := m.columns()
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m.search.Focus()
	case key.Matches(msg, m.keys.NextRegion):
		return m.cycleRegion(1)
	case key.Matches(msg, m.keys.PrevRegion):
		return m.cycleRegion(-1)
	case key.Matches(msg, m.keys.Back):
		if m.ctrl.Phase() == explorer.PhaseError {
			return m.dispatch(explorer.Back{})
		}
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, cards)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, cards)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-cols, cards)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(cols, cards)
	case key.Matches(msg, m.keys.Open):
		if m.ctrl.Phase() != explorer.PhaseReady || m.cursor >= cards {
			return nil
		}
		return m.dispatch(explorer.CardSelected{Name: m.ctrl.Filtered()[m.cursor].Name()})
	}
	return nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	country, _ := m.ctrl.Detail()
	borders := country.Borders()
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.dispatch(explorer.Back{})
	case key.Matches(msg, m.keys.Left):
		if m.borderCursor > 0 {
			m.borderCursor--
			m.syncDetail()
		}
	case key.Matches(msg, m.keys.Right):
		if m.borderCursor < len(borders)-1 {
			m.borderCursor++
			m.syncDetail()
		}
	case key.Matches(msg, m.keys.Up):
		m.detail.SetYOffset(m.detail.YOffset - 1)
	case key.Matches(msg, m.keys.Down):
		m.detail.SetYOffset(m.detail.YOffset + 1)
	case key.Matches(msg, m.keys.Open):
		if len(borders) == 0 {
			return nil
		}
		return m.dispatch(explorer.BorderSelected{Code: borders[m.borderCursor]})
	}
	return nil
}

func (m *Model) moveCursor(delta, total int) {
	if total == 0 {
		m.cursor = 0
		return
	}
	next := m.cursor + delta
	if next < 0 || next >= total {
		return
	}
	m.cursor = next
	m.keepCursorVisible()
}

func (m *Model) keepCursorVisible() {
	row := m.cursor / m.columns()
	visible := m.visibleRows()
	if row < m.rowOffset {
		m.rowOffset = row
	}
	if row >= m.rowOffset+visible {
		m.rowOffset = row - visible + 1
	}
}

// regionOptions lists the selector values; "" selects every region.
func (m *Model) regionOptions() []string {
	return append([]string{""}, m.ctrl.Regions()...)
}

func (m *Model) cycleRegion(delta int) tea.Cmd {
	options := m.regionOptions()
	m.regionIdx = (m.regionIdx + delta + len(options)) % len(options)
	return m.dispatch(explorer.RegionChanged{Region: options[m.regionIdx]})
}

func (m *Model) toggleTheme() {
	next, err := m.themes.Toggle(m.ctx)
	if err != nil {
		m.log.Warn(err, "theme applied but not saved")
	}
	m.log.WithFields(map[string]any{"theme": string(next)}).Debug("theme toggled")
	m.applyTheme()
}

func (m *Model) applyTheme() {
	p := m.themes.Palette()
	m.search.PromptStyle = p.Muted
	m.search.TextStyle = p.Value
	m.search.PlaceholderStyle = p.Muted
	m.spinner.Style = p.Muted
	m.help.Styles.ShortKey = p.Label
	m.help.Styles.ShortDesc = p.Footer
	m.help.Styles.ShortSeparator = p.Footer
	m.syncDetail()
}

func (m *Model) busy() bool {
	v := m.ctrl.Render()
	return v.Phase == explorer.PhaseLoading || v.Pending
}

// syncDetail rebuilds the detail viewport content when the detail view is
// showing, resetting navigation when a different country opened.
func (m *Model) syncDetail() {
	country, ok := m.ctrl.Detail()
	if !ok {
		m.detailID = ""
		return
	}
	if country.Name() != m.detailID {
		m.detailID = country.Name()
		m.borderCursor = 0
		m.detail.GotoTop()
	}
	fragment := country.DetailFragment()
	m.detail.SetContent(m.renderDetail(fragment))
}

func (m *Model) resize() {
	m.detail.Width = m.width
	m.detail.Height = m.bodyHeight()
	m.help.Width = m.width
	m.keepCursorVisible()
	m.syncDetail()
}

func (m *Model) loadCmd() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	log := m.log
	return func() tea.Msg {
		result := svc.AllCountries(ctx)
		if err := ctx.Err(); err != nil {
			return explorer.LoadFailed{Err: err}
		}
		log.WithFields(map[string]any{
			"count":  len(result.Value),
			"source": result.Source.String(),
			"status": result.Status.String(),
		}).Info("countries loaded")
		return explorer.Loaded{Result: result}
	}
}

func (m *Model) effectCmd(effect explorer.Effect) tea.Cmd {
	ctx, svc := m.ctx, m.svc
	switch e := effect.(type) {
	case explorer.LookupName:
		return func() tea.Msg {
			return explorer.DetailLoaded{Token: e.Token, Result: svc.CountryByName(ctx, e.Name)}
		}
	case explorer.LookupCode:
		return func() tea.Msg {
			return explorer.BorderResolved{Token: e.Token, Result: svc.CountryByCode(ctx, e.Code)}
		}
	default:
		return nil
	}
}

func waitForSystemTheme(ch <-chan bool) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		dark, ok := <-ch
		if !ok {
			return nil
		}
		return systemThemeMsg{dark: dark}
	}
}
