package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ackboard/ackboard/internal/ack"
)

// StatusBarModel renders the bottom status bar.
type StatusBarModel struct {
	width   int
	syncing bool
	loaded  int    // PRs loaded so far during a sync pass
	spinner string // current spinner frame while syncing
	visible int
	total   int
	sortKey ack.Category
	filters string // short summary of active filters, "" when none

	// Temporary flash message (e.g. "refresh failed: ...")
	statusMessage string
	statusIsError bool
	// Monotonic counter: incremented on each SetTemporaryMessage call.
	// StatusBarClearMsg carries the seq at time of scheduling; if it doesn't
	// match current seq the clear is stale and ignored.
	messageSeq int
}

func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{sortKey: ack.Ack}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

func (m *StatusBarModel) SetSyncing(syncing bool, loaded int) {
	m.syncing = syncing
	m.loaded = loaded
}

func (m *StatusBarModel) SetSpinner(frame string) {
	m.spinner = frame
}

func (m *StatusBarModel) SetView(sortKey ack.Category, filters string, visible, total int) {
	m.sortKey = sortKey
	m.filters = filters
	m.visible = visible
	m.total = total
}

// SetTemporaryMessage shows a flash message in the status bar.
// Returns a tea.Cmd that will send a StatusBarClearMsg after the given
// duration, which the caller must include in the returned command batch.
func (m *StatusBarModel) SetTemporaryMessage(msg string, isError bool, duration time.Duration) tea.Cmd {
	m.messageSeq++
	m.statusMessage = msg
	m.statusIsError = isError
	seq := m.messageSeq
	return tea.Tick(duration, func(_ time.Time) tea.Msg {
		return StatusBarClearMsg{Seq: seq}
	})
}

// ClearIfSeqMatch clears the message only if the given seq matches the
// current one. Returns true if the message was cleared.
func (m *StatusBarModel) ClearIfSeqMatch(seq int) bool {
	if seq == m.messageSeq {
		m.statusMessage = ""
		return true
	}
	return false
}

func (m StatusBarModel) View() string {
	var leftRendered string
	switch {
	case m.statusMessage != "" && m.statusIsError:
		leftRendered = statusBarErrorStyle.Render(" " + m.statusMessage)
	case m.statusMessage != "":
		leftRendered = statusBarAccentStyle.Render(" " + m.statusMessage)
	case m.syncing:
		leftRendered = statusBarAccentStyle.Render(fmt.Sprintf(" %sFetching PRs from GitHub, this may take a while... (%d PRs loaded)", m.spinner, m.loaded))
	default:
		leftRendered = statusBarAccentStyle.Render(m.keyHints())
	}
	rightRendered := statusBarStyle.Render(m.contextInfo())

	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	padding := m.width - leftWidth - rightWidth
	if padding < 0 {
		padding = 0
	}

	bar := leftRendered +
		statusBarStyle.Render(strings.Repeat(" ", padding)) +
		rightRendered

	return statusBarStyle.Width(m.width).Render(bar)
}

func (m StatusBarModel) keyHints() string {
	return " [j/k]move [d]details [o]open [r]refresh [:]command [q]quit"
}

func (m StatusBarModel) contextInfo() string {
	info := fmt.Sprintf("sort: %s ", m.sortKey)
	if m.filters != "" {
		info += fmt.Sprintf("filter: %s ", m.filters)
	}
	info += fmt.Sprintf("%d/%d ", m.visible, m.total)
	return info
}
