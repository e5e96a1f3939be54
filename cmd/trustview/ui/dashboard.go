package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"trustview/internal/logging"
	"trustview/internal/orchestrator"
	"trustview/internal/transparency"
	"trustview/internal/types"
)

// Page identifies the active view.
type Page int

const (
	ActivityPage Page = iota
	DetailPage
)

// Invalidator drops cached list results before a refresh.
type Invalidator interface {
	Invalidate()
}

// Options configures the dashboard.
type Options struct {
	Source orchestrator.Source
	// Cache, when set, is invalidated on every manual and timed refresh.
	Cache           Invalidator
	Wallet          string
	Location        *time.Location
	Timeout         time.Duration
	RefreshInterval time.Duration
	AutoRefresh     bool
	Theme           string
	// GlamourStyle overrides the markdown style picked from the theme.
	GlamourStyle string
	// Changes delivers a signal whenever the offline database changes.
	Changes <-chan struct{}
	// SourceLabel names the data source in the header.
	SourceLabel string
}

type listLoadedMsg struct {
	wallet  string
	intents []types.Intent
	err     error
}

type detailLoadedMsg struct {
	intentID string
	detail   *types.IntentDetail
	err      error
}

type dbChangedMsg struct{}

// Model is the root bubbletea model.
type Model struct {
	opts   Options
	styles Styles
	keys   keyMap
	help   help.Model

	page      Page
	activity  ActivityPageModel
	detail    DetailPageModel
	refresher Refresher
	spinner   spinner.Model

	wallet      string
	walletInput textinput.Model
	editWallet  bool
	pending     int
	listErr     error
	counters    transparency.Counters
	lastUpdated time.Time
	width       int
	height      int
}

// New builds the dashboard model.
func New(opts Options) Model {
	if opts.Timeout <= 0 {
		opts.Timeout = orchestrator.DefaultTimeout
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	styles := NewStyles(DetectTheme(opts.Theme))

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Spinner

	wi := textinput.New()
	wi.Prompt = "wallet> "
	wi.Placeholder = "0x... (empty shows every intent)"
	wi.CharLimit = 64
	wi.Width = 48

	refresher := NewRefresher(opts.RefreshInterval)
	if opts.AutoRefresh {
		refresher.enable()
	}

	return Model{
		opts:        opts,
		styles:      styles,
		keys:        defaultKeyMap(),
		help:        help.New(),
		activity:    NewActivityPageModel(styles, opts.Location),
		detail:      NewDetailPageModel(styles, opts.Location, opts.GlamourStyle),
		refresher:   refresher,
		pending:     1, // the fetch issued by Init
		spinner:     sp,
		wallet:      opts.Wallet,
		walletInput: wi,
		width:       MinimumTerminalWidth,
		height:      MinimumTerminalHeight,
	}
}

// Run starts the interactive program and blocks until it exits.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}

// Init loads the first snapshot. New already counted that fetch and armed
// the refresher, since Init cannot change the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.fetchList()}
	if m.refresher.Enabled() {
		cmds = append(cmds, m.refresher.schedule())
	}
	if m.opts.Changes != nil {
		cmds = append(cmds, waitForChange(m.opts.Changes))
	}
	return tea.Batch(cmds...)
}

func (m Model) fetchList() tea.Cmd {
	src, wallet, timeout := m.opts.Source, m.wallet, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		intents, err := src.ListIntents(ctx, wallet)
		return listLoadedMsg{wallet: wallet, intents: intents, err: err}
	}
}

func (m Model) fetchDetail(intentID string) tea.Cmd {
	src, wallet, timeout := m.opts.Source, m.wallet, m.opts.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		detail, err := src.GetIntent(ctx, intentID, wallet)
		return detailLoadedMsg{intentID: intentID, detail: detail, err: err}
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return dbChangedMsg{}
	}
}

// refresh invalidates the cache and starts one fetch cycle: the list, plus
// the open intent when the detail page is showing.
func (m *Model) refresh() tea.Cmd {
	if m.opts.Cache != nil {
		m.opts.Cache.Invalidate()
	}
	cmds := []tea.Cmd{m.fetchList()}
	m.pending++
	if m.page == DetailPage && m.detail.IntentID() != "" {
		m.detail.SetLoading(m.detail.IntentID())
		cmds = append(cmds, m.fetchDetail(m.detail.IntentID()))
		m.pending++
	}
	logging.UIDebug("refresh cycle started (%d fetches)", m.pending)
	return tea.Batch(cmds...)
}

// fetchDone marks one fetch finished and, when the cycle is complete,
// schedules the next auto refresh.
func (m *Model) fetchDone() tea.Cmd {
	if m.pending > 0 {
		m.pending--
	}
	if m.pending == 0 {
		return m.refresher.CycleDone()
	}
	return nil
}

// Loading reports whether a fetch is outstanding.
func (m Model) Loading() bool {
	return m.pending > 0
}

// Page returns the active page.
func (m Model) Page() Page {
	return m.page
}

// Wallet returns the active X-User-Address filter.
func (m Model) Wallet() string {
	return m.wallet
}

// AutoRefresh reports whether the refresher is running.
func (m Model) AutoRefresh() bool {
	return m.refresher.Enabled()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.activity.SetSize(msg.Width, msg.Height)
		m.detail.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case listLoadedMsg:
		if msg.wallet != m.wallet {
			// Superseded by a wallet change; still counts toward the cycle.
			cmd := m.fetchDone()
			return m, cmd
		}
		m.listErr = msg.err
		if msg.err != nil {
			logging.Get(logging.CategoryUI).Warn("list fetch failed: %v", msg.err)
			m.activity.SetIntents(nil)
		} else {
			m.activity.SetIntents(msg.intents)
			m.lastUpdated = time.Now()
		}
		m.counters = transparency.Summarize(m.activity.Intents())
		cmd := m.fetchDone()
		return m, cmd

	case detailLoadedMsg:
		if msg.err != nil {
			logging.Get(logging.CategoryUI).Warn("detail fetch for %s failed: %v", msg.intentID, msg.err)
		}
		m.detail.SetDetail(msg.intentID, msg.detail, msg.err)
		cmd := m.fetchDone()
		return m, cmd

	case refreshTickMsg:
		if !m.refresher.Accept(msg) {
			return m, nil
		}
		cmd := m.refresh()
		return m, cmd

	case dbChangedMsg:
		logging.UIDebug("database changed, refreshing")
		cmd := m.refresh()
		return m, tea.Batch(cmd, waitForChange(m.opts.Changes))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.editWallet {
		switch msg.Type {
		case tea.KeyEnter:
			m.editWallet = false
			m.walletInput.Blur()
			m.wallet = strings.TrimSpace(m.walletInput.Value())
			logging.Get(logging.CategoryUI).Info("wallet filter set to %q", m.wallet)
			m.page = ActivityPage
			cmd := m.refresh()
			return m, cmd
		case tea.KeyEsc:
			m.editWallet = false
			m.walletInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.walletInput, cmd = m.walletInput.Update(msg)
		return m, cmd
	}

	if m.page == ActivityPage && m.activity.Filtering() {
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refresh()
		return m, cmd

	case key.Matches(msg, m.keys.Auto):
		cmd := m.refresher.Toggle()
		return m, cmd

	case key.Matches(msg, m.keys.Wallet):
		m.editWallet = true
		m.walletInput.SetValue(m.wallet)
		m.walletInput.CursorEnd()
		cmd := m.walletInput.Focus()
		return m, cmd
	}

	switch m.page {
	case ActivityPage:
		switch {
		case key.Matches(msg, m.keys.Filter):
			cmd := m.activity.FocusFilter()
			return m, cmd
		case key.Matches(msg, m.keys.Sort):
			m.activity.CycleSort()
			return m, nil
		case key.Matches(msg, m.keys.Back):
			if m.activity.FilterValue() != "" {
				m.activity.ClearFilter()
			}
			return m, nil
		case key.Matches(msg, m.keys.Open):
			sel := m.activity.Selected()
			if sel == nil {
				return m, nil
			}
			m.page = DetailPage
			m.detail.SetLoading(sel.IntentID)
			m.pending++
			return m, m.fetchDetail(sel.IntentID)
		}
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(msg)
		return m, cmd

	case DetailPage:
		if key.Matches(msg, m.keys.Back) {
			m.page = ActivityPage
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.headerView())
	sb.WriteString("\n")
	sb.WriteString(RenderCounters(m.counters, m.styles))
	sb.WriteString("\n")

	if m.listErr != nil {
		ce := transparency.ClassifyTransportError(m.listErr)
		sb.WriteString(m.styles.Banner.Render(m.styles.Error.Render(ce.Headline())))
		sb.WriteString("\n")
	}

	if m.editWallet {
		sb.WriteString(m.walletInput.View())
		sb.WriteString("\n")
	}

	switch m.page {
	case DetailPage:
		sb.WriteString(m.detail.View())
	default:
		sb.WriteString(m.activity.View())
	}
	sb.WriteString("\n")
	sb.WriteString(m.footerView())
	return sb.String()
}

func (m Model) headerView() string {
	title := m.styles.Header.Render("🛡️ TrustFlow · Transparency Dashboard")

	parts := []string{}
	if m.opts.SourceLabel != "" {
		parts = append(parts, m.opts.SourceLabel)
	}
	if m.wallet != "" {
		parts = append(parts, "wallet "+m.wallet)
	} else {
		parts = append(parts, "all wallets")
	}
	if m.refresher.Enabled() {
		parts = append(parts, fmt.Sprintf("auto %s", m.refresher.Interval()))
	}
	if m.Loading() {
		parts = append(parts, m.spinner.View()+" loading")
	} else if !m.lastUpdated.IsZero() {
		parts = append(parts, "updated "+m.lastUpdated.In(m.opts.Location).Format("15:04:05"))
	}

	return title + " " + m.styles.Muted.Render(strings.Join(parts, " · "))
}

func (m Model) footerView() string {
	return m.styles.Footer.Render(m.help.View(m.keys))
}
