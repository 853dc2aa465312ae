package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ackboard/ackboard/internal/ack"
	"github.com/ackboard/ackboard/internal/board"
)

// commandKind enumerates every action the ":" prompt can produce.
type commandKind int

const (
	cmdQuit commandKind = iota
	cmdRefresh
	cmdSort
	cmdShuffle
	cmdTextFilter
	cmdClearText
	cmdClearTypes
	cmdHideDraft
	cmdHideRebase
	cmdShowDraft
	cmdShowRebase
	cmdRFMOnly
	cmdClearRFM
	cmdResetFilters
)

// boardCommand is a parsed ":" command. Only the fields relevant to kind
// are set.
type boardCommand struct {
	kind    commandKind
	sort    ack.Category
	field   board.Field
	pattern string
}

// filterFields maps the single-letter field selector of "f<field>/<pattern>".
var filterFields = map[byte]board.Field{
	'p': board.FieldNumber,
	't': board.FieldTitle,
	'o': board.FieldAuthor,
	'l': board.FieldLabels,
	'a': board.FieldAckers,
	's': board.FieldStaleAckers,
	'n': board.FieldNackers,
	'c': board.FieldConceptAckers,
}

// parseCommand resolves the typed input to a command. Unknown input is
// reported as not ok and ignored by the caller.
func parseCommand(input string) (boardCommand, bool) {
	input = strings.TrimSpace(input)
	switch input {
	case "q":
		return boardCommand{kind: cmdQuit}, true
	case "r":
		return boardCommand{kind: cmdRefresh}, true
	case "sa":
		return boardCommand{kind: cmdSort, sort: ack.Ack}, true
	case "ss":
		return boardCommand{kind: cmdSort, sort: ack.StaleAck}, true
	case "sn":
		return boardCommand{kind: cmdSort, sort: ack.Nack}, true
	case "sc":
		return boardCommand{kind: cmdSort, sort: ack.ConceptAck}, true
	case "sr":
		return boardCommand{kind: cmdShuffle}, true
	case "c":
		return boardCommand{kind: cmdResetFilters}, true
	case "cf":
		return boardCommand{kind: cmdClearText}, true
	case "ch":
		return boardCommand{kind: cmdClearTypes}, true
	case "chd":
		return boardCommand{kind: cmdShowDraft}, true
	case "chr":
		return boardCommand{kind: cmdShowRebase}, true
	case "cm":
		return boardCommand{kind: cmdClearRFM}, true
	case "hd":
		return boardCommand{kind: cmdHideDraft}, true
	case "hr":
		return boardCommand{kind: cmdHideRebase}, true
	case "m":
		return boardCommand{kind: cmdRFMOnly}, true
	}

	// f<field>/<pattern> with a non-empty pattern
	if len(input) > 3 && input[0] == 'f' && input[2] == '/' {
		field, ok := filterFields[input[1]]
		if !ok {
			return boardCommand{}, false
		}
		return boardCommand{
			kind:    cmdTextFilter,
			field:   field,
			pattern: input[3:],
		}, true
	}

	return boardCommand{}, false
}

// CommandModeModel is the ":" prompt at the bottom of the board.
type CommandModeModel struct {
	input  textinput.Model
	active bool
}

func NewCommandModeModel() CommandModeModel {
	ti := textinput.New()
	ti.Prompt = ":"
	ti.PromptStyle = cmdPromptStyle
	ti.TextStyle = cmdInputTextStyle
	ti.CharLimit = 128
	return CommandModeModel{input: ti}
}

// Open activates the prompt with an empty input.
func (m *CommandModeModel) Open() tea.Cmd {
	m.active = true
	m.input.SetValue("")
	return m.input.Focus()
}

// Close deactivates the prompt.
func (m *CommandModeModel) Close() {
	m.active = false
	m.input.Blur()
}

// IsActive returns whether the prompt is currently shown.
func (m CommandModeModel) IsActive() bool {
	return m.active
}

// Update handles input while the prompt is active. Enter parses the typed
// command; unrecognized input dismisses the prompt without effect.
func (m CommandModeModel) Update(msg tea.Msg) (CommandModeModel, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch kmsg.String() {
	case "esc":
		m.Close()
		return m, func() tea.Msg { return CommandModeExitMsg{} }

	case "enter":
		value := m.input.Value()
		m.Close()
		command, ok := parseCommand(value)
		if !ok {
			return m, func() tea.Msg { return CommandModeExitMsg{} }
		}
		return m, func() tea.Msg { return CommandMsg{Command: command} }

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m CommandModeModel) View() string {
	if !m.active {
		return ""
	}
	return m.input.View()
}
