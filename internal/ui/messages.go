package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ackboard/ackboard/internal/board"
)

// -- Synchronization --

// SyncProgressMsg reports how many PRs the running sync pass has loaded.
type SyncProgressMsg struct {
	Loaded int
}

// SyncDoneMsg carries the complete record set of a finished sync pass.
type SyncDoneMsg struct {
	Records []board.Record
}

// SyncErrorMsg is sent when a sync pass fails; the previous records stay.
type SyncErrorMsg struct {
	Err error
}

// -- Command mode --

// CommandMsg carries a parsed command out of command mode.
type CommandMsg struct {
	Command boardCommand
}

// CommandModeExitMsg is sent when command mode is dismissed without input.
type CommandModeExitMsg struct{}

// -- Status bar --

// StatusBarClearMsg clears the flash message whose Seq is still current.
type StatusBarClearMsg struct {
	Seq int
}

// -- Internal streaming --

// syncStreamChan carries progress updates and the final result of a sync
// pass running in its own goroutine.
type syncStreamChan chan tea.Msg
