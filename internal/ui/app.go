// Package ui is the terminal dashboard: a ranked PR table, a detail overlay,
// and a ":" command prompt driving sorting and filtering.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ackboard/ackboard/internal/board"
)

const flashDuration = 5 * time.Second

// App is the root Bubbletea model for the ack dashboard.
type App struct {
	table       BoardTableModel
	statusBar   StatusBarModel
	detail      DetailModel
	commandMode CommandModeModel
	spinner     spinner.Model

	sync Synchronizer

	// Full record set from the last successful sync, and the derivation
	// recipe for what is visible. The visible slice lives in the table.
	records []board.Record
	view    board.ViewState
	visible int

	syncing    bool
	syncCh     syncStreamChan
	syncCancel context.CancelFunc

	width  int
	height int
}

// NewApp creates the root model around a synchronizer.
func NewApp(sync Synchronizer) App {
	return App{
		table:       NewBoardTableModel(),
		statusBar:   NewStatusBarModel(),
		detail:      NewDetailModel(),
		commandMode: NewCommandModeModel(),
		spinner:     newLoadingSpinner(),
		sync:        sync,
		view:        board.NewViewState(),
	}
}

// startSyncMsg triggers the initial sync pass; Init cannot mutate the model,
// so the kick-off happens in Update.
type startSyncMsg struct{}

func (m App) Init() tea.Cmd {
	return func() tea.Msg { return startSyncMsg{} }
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startSyncMsg:
		cmd := m.startSync()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.SetWidth(m.width)
		m.table.SetSize(m.width, m.height-1)
		m.detail.SetSize(m.width, m.height)
		return m, nil

	case SyncProgressMsg:
		m.statusBar.SetSyncing(true, msg.Loaded)
		return m, listenForSync(m.syncCh)

	case SyncDoneMsg:
		m.syncing = false
		m.stopSync()
		m.records = msg.Records
		m.statusBar.SetSyncing(false, 0)
		viewCmd := m.applyView(false)
		flash := m.statusBar.SetTemporaryMessage(fmt.Sprintf("Loaded %d PRs", len(m.records)), false, flashDuration)
		return m, tea.Batch(viewCmd, flash)

	case SyncErrorMsg:
		// The previous records and view stay untouched.
		m.syncing = false
		m.stopSync()
		m.statusBar.SetSyncing(false, 0)
		flash := m.statusBar.SetTemporaryMessage("refresh failed: "+msg.Err.Error(), true, flashDuration)
		return m, flash

	case StatusBarClearMsg:
		m.statusBar.ClearIfSeqMatch(msg.Seq)
		return m, nil

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.statusBar.SetSpinner(m.spinner.View())
		return m, cmd

	case CommandMsg:
		return m.handleCommand(msg.Command)

	case CommandModeExitMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.commandMode.IsActive() {
		var cmd tea.Cmd
		m.commandMode, cmd = m.commandMode.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.commandMode.IsActive() {
		var cmd tea.Cmd
		m.commandMode, cmd = m.commandMode.Update(msg)
		return m, cmd
	}

	if m.detail.IsActive() {
		switch {
		case key.Matches(msg, DetailKeys.Close):
			m.detail.Hide()
			return m, nil
		case key.Matches(msg, DetailKeys.Open):
			return m, openBrowserCmd(m.detail.URL())
		default:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}

	// While a sync pass runs only quitting is allowed; the table would
	// otherwise navigate a list that is about to be replaced.
	if m.syncing {
		if key.Matches(msg, BoardKeys.Quit) {
			m.stopSync()
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, BoardKeys.Quit):
		m.stopSync()
		return m, tea.Quit
	case key.Matches(msg, BoardKeys.Up):
		m.table.MoveUp()
	case key.Matches(msg, BoardKeys.Down):
		m.table.MoveDown()
	case key.Matches(msg, BoardKeys.PageUp):
		m.table.PageUp()
	case key.Matches(msg, BoardKeys.PageDown):
		m.table.PageDown()
	case key.Matches(msg, BoardKeys.Top):
		m.table.GotoTop()
	case key.Matches(msg, BoardKeys.Bottom):
		m.table.GotoBottom()
	case key.Matches(msg, BoardKeys.Detail):
		if selected := m.table.Selected(); selected != nil {
			m.detail.Show(selected)
		}
	case key.Matches(msg, BoardKeys.OpenBrowser):
		if selected := m.table.Selected(); selected != nil {
			return m, openBrowserCmd(selected.URL)
		}
	case key.Matches(msg, BoardKeys.Refresh):
		cmd := m.startSync()
		return m, cmd
	case key.Matches(msg, BoardKeys.CommandMode):
		cmd := m.commandMode.Open()
		return m, cmd
	}
	return m, nil
}

// handleCommand applies a parsed ":" command. Every command except shuffle
// drops back to the ranked ordering.
func (m App) handleCommand(cmd boardCommand) (tea.Model, tea.Cmd) {
	if cmd.kind != cmdShuffle {
		m.view.ShuffleSeed = 0
	}

	switch cmd.kind {
	case cmdQuit:
		m.stopSync()
		return m, tea.Quit

	case cmdRefresh:
		syncCmd := m.startSync()
		return m, syncCmd

	case cmdSort:
		m.view.SortKey = cmd.sort
		viewCmd := m.applyView(false)
		return m, viewCmd

	case cmdShuffle:
		m.view.ShuffleSeed = time.Now().UnixNano()
		viewCmd := m.applyView(false)
		return m, viewCmd

	case cmdTextFilter:
		candidate := m.view
		candidate.Filter.Field = cmd.field
		candidate.Filter.Pattern = cmd.pattern
		return m.commitView(candidate)

	case cmdClearText:
		m.view.Filter = m.view.Filter.ClearText()
	case cmdClearTypes:
		m.view.Filter = m.view.Filter.ClearTypes()
	case cmdHideDraft:
		m.view.Filter.Draft = false
	case cmdHideRebase:
		m.view.Filter.NeedsRebase = false
	case cmdShowDraft:
		m.view.Filter.Draft = true
	case cmdShowRebase:
		m.view.Filter.NeedsRebase = true
	case cmdRFMOnly:
		m.view.Filter.RFMOnly = true
	case cmdClearRFM:
		m.view.Filter.RFMOnly = false
	case cmdResetFilters:
		m.view.Filter = board.NewFilter()
	}
	viewCmd := m.applyView(true)
	return m, viewCmd
}

// commitView swaps in a candidate view only when it derives cleanly, so a
// bad filter pattern never clobbers the current one.
func (m App) commitView(candidate board.ViewState) (tea.Model, tea.Cmd) {
	visible, err := candidate.Derive(m.records)
	if err != nil {
		flash := m.statusBar.SetTemporaryMessage("bad filter: "+err.Error(), true, flashDuration)
		return m, flash
	}
	m.view = candidate
	m.visible = len(visible)
	m.table.SetRows(visible)
	m.table.ResetCursor()
	m.refreshStatus()
	return m, nil
}

// applyView re-derives the visible rows from the current view state.
func (m *App) applyView(resetCursor bool) tea.Cmd {
	visible, err := m.view.Derive(m.records)
	if err != nil {
		return m.statusBar.SetTemporaryMessage("bad filter: "+err.Error(), true, flashDuration)
	}
	m.visible = len(visible)
	m.table.SetRows(visible)
	if resetCursor {
		m.table.ResetCursor()
	}
	m.refreshStatus()
	return nil
}

func (m *App) refreshStatus() {
	m.statusBar.SetView(m.view.SortKey, filterSummary(m.view.Filter), m.visible, len(m.records))
}

// filterSummary is the short filter description in the status bar, "" when
// nothing is filtered.
func filterSummary(f board.Filter) string {
	var parts []string
	if f.Pattern != ".*" {
		parts = append(parts, f.Pattern)
	}
	if !f.Draft {
		parts = append(parts, "-draft")
	}
	if !f.NeedsRebase {
		parts = append(parts, "-rebase")
	}
	if !f.Regular {
		parts = append(parts, "-regular")
	}
	if f.RFMOnly {
		parts = append(parts, "rfm")
	}
	return strings.Join(parts, " ")
}

// startSync kicks off a sync pass unless one is already running.
func (m *App) startSync() tea.Cmd {
	if m.syncing {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.syncCancel = cancel
	ch, cmd := startSyncCmd(ctx, m.sync)
	m.syncCh = ch
	m.syncing = true
	m.statusBar.SetSyncing(true, 0)
	return tea.Batch(cmd, m.spinner.Tick)
}

// stopSync cancels the in-flight pass's context, if any.
func (m *App) stopSync() {
	if m.syncCancel != nil {
		m.syncCancel()
		m.syncCancel = nil
	}
}

func (m App) View() string {
	if m.width == 0 {
		return ""
	}

	content := lipgloss.Place(m.width, m.height-1, lipgloss.Left, lipgloss.Top, m.table.View())
	if m.detail.IsActive() {
		content = lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, m.detail.View())
	}

	bottom := m.statusBar.View()
	if m.commandMode.IsActive() {
		bottom = m.commandMode.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, bottom)
}
