// Package tui provides the interactive Bubble Tea dashboard for financeflow.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/config"
	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/pipeline"
	"github.com/badroneai/finance-flow-sub001/internal/store"
	"github.com/badroneai/finance-flow-sub001/internal/tui/components"
	"github.com/badroneai/finance-flow-sub001/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// LoadFunc fetches one ledger and its records.
type LoadFunc func() (model.Ledger, pipeline.Dataset, error)

// StoreLoad reads ledgerID from the SQLite store at dbPath.
func StoreLoad(dbPath, ledgerID string) LoadFunc {
	return func() (model.Ledger, pipeline.Dataset, error) {
		st, err := store.Open(dbPath)
		if err != nil {
			return model.Ledger{}, pipeline.Dataset{}, err
		}
		defer func() { _ = st.Close() }()

		l, err := st.GetLedger(ledgerID)
		if err != nil {
			return model.Ledger{}, pipeline.Dataset{}, fmt.Errorf("ledger %q: %w", ledgerID, err)
		}
		items, err := st.ListItems(ledgerID)
		if err != nil {
			return l, pipeline.Dataset{}, err
		}
		txs, err := st.ListTransactions(ledgerID)
		if err != nil {
			return l, pipeline.Dataset{}, err
		}
		return l, pipeline.Dataset{Items: items, Transactions: txs}, nil
	}
}

// DataLoadedMsg is sent when a load or refresh finishes.
type DataLoadedMsg struct {
	Ledger   model.Ledger
	Dataset  pipeline.Dataset
	LoadTime time.Duration
	Err      error
}

// Options configure the dashboard.
type Options struct {
	Currency    string
	Assumptions pipeline.AnalysisOptions
	Clock       model.Clock
	NeedSetup   bool
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	ledger   model.Ledger
	dataset  pipeline.Dataset
	analysis pipeline.Analysis
	loaded   bool
	loadTime time.Duration
	loadErr  error

	load        LoadFunc
	clock       model.Clock
	currency    string
	assumptions pipeline.AnalysisOptions

	refreshing bool
	notice     string

	// UI state
	width       int
	height      int
	activeTab   int
	showHelp    bool
	inboxCursor int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new dashboard model.
func NewApp(opts Options, load LoadFunc) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	clock := opts.Clock
	if clock == nil {
		clock = model.SystemClock{}
	}

	a := App{
		load:        load,
		clock:       clock,
		currency:    opts.Currency,
		assumptions: opts.Assumptions,
		needSetup:   opts.NeedSetup,
		spinner:     sp,
	}
	if a.needSetup {
		a.setupVals = SetupValuesFrom(config.DefaultConfig())
		a.setupForm = NewSetupForm(&a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		loadDataCmd(a.load),
		a.spinner.Tick,
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

func (a *App) recompute() {
	opts := a.assumptions
	opts.Budgets = a.ledger.Budgets
	a.analysis = pipeline.Analyze(a.ledger.ID, a.dataset, a.clock.Now(), opts)
	if a.inboxCursor >= len(a.analysis.Inbox) {
		a.inboxCursor = max(0, len(a.analysis.Inbox)-1)
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case spinner.TickMsg:
		if a.loaded && !a.refreshing {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case DataLoadedMsg:
		a.refreshing = false
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.ledger = msg.Ledger
			a.dataset = msg.Dataset
			a.notice = ""
		} else if a.loaded {
			a.notice = "refresh failed: " + msg.Err.Error()
		}
		a.loaded = true
		a.recompute()
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if !a.loaded {
		return a, nil
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "right", "tab", "l":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "left", "shift+tab", "h":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "u":
		if a.refreshing {
			return a, nil
		}
		a.refreshing = true
		return a, tea.Batch(loadDataCmd(a.load), a.spinner.Tick)
	case "j", "down":
		if a.activeTab == tabInbox && a.inboxCursor < len(a.analysis.Inbox)-1 {
			a.inboxCursor++
		}
		return a, nil
	case "k", "up":
		if a.activeTab == tabInbox && a.inboxCursor > 0 {
			a.inboxCursor--
		}
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

const (
	tabRadar = iota
	tabPlan
	tabInbox
	tabForecast
	tabVariance
)

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil && a.ledger.ID == "" {
		return a.viewError()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  financeflow needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, max(a.height, 5)), max(a.height, 5))
}

func (a App) overlay(body string) string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoading() string {
	t := theme.Active
	logo := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	return a.overlay(logo.Render("◈ financeflow") + "\n\n" + a.spinner.View() + sub.Render(" Loading ledger..."))
}

func (a App) viewError() string {
	t := theme.Active
	red := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	sub := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	return a.overlay(red.Render("Could not load ledger") + "\n\n" +
		sub.Render(a.loadErr.Error()) + "\n\n" + sub.Render("[u] retry  [q] quit"))
}

func (a App) viewHelp() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	desc := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(title.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, bind := range []struct{ key, desc string }{
		{"r p i f v", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move through the inbox"},
		{"u", "Reload from the database"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	} {
		fmt.Fprintf(&b, "%s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", bind.key)), desc.Render(bind.desc))
	}
	return a.overlay(strings.TrimRight(b.String(), "\n"))
}

func (a App) viewMain() string {
	t := theme.Active
	w, h, cw := a.width, a.height, a.contentWidth()

	title := a.ledger.Name
	if title == "" {
		title = a.ledger.ID
	}
	header := components.RenderTabBar(a.activeTab, title, w)

	status := fmt.Sprintf("%s · loaded in %dms", a.analysis.Now.Format("2006-01-02"), a.loadTime.Milliseconds())
	warn := false
	switch {
	case a.refreshing:
		status = a.spinner.View() + " refreshing"
	case a.notice != "":
		status, warn = a.notice, true
	}
	statusBar := components.RenderStatusBar(w, status, warn)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabRadar:
		content = a.renderRadarTab(cw)
	case tabPlan:
		content = a.renderPlanTab(cw)
	case tabInbox:
		content = a.renderInboxTab(cw, contentH)
	case tabForecast:
		content = a.renderForecastTab(cw)
	case tabVariance:
		content = a.renderVarianceTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func loadDataCmd(load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		l, ds, err := load()
		return DataLoadedMsg{Ledger: l, Dataset: ds, LoadTime: time.Since(start), Err: err}
	}
}

func truncStr(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes use the same widths RenderTabBar draws.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1
	}
	return -1
}
