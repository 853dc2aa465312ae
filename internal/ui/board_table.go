package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ackboard/ackboard/internal/ack"
	"github.com/ackboard/ackboard/internal/board"
)

// BoardTableModel renders the scrollable PR table.
type BoardTableModel struct {
	width  int
	height int
	cursor int
	offset int
	rows   []board.Record
}

func NewBoardTableModel() BoardTableModel {
	return BoardTableModel{}
}

// SetSize updates the table dimensions. Height includes the header row.
func (m *BoardTableModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clamp()
}

// SetRows replaces the visible records, keeping the cursor in range.
func (m *BoardTableModel) SetRows(rows []board.Record) {
	m.rows = rows
	m.clamp()
}

// ResetCursor moves the cursor back to the top.
func (m *BoardTableModel) ResetCursor() {
	m.cursor = 0
	m.offset = 0
}

// Selected returns the record under the cursor, nil when the table is empty.
func (m BoardTableModel) Selected() *board.Record {
	if len(m.rows) == 0 {
		return nil
	}
	return &m.rows[m.cursor]
}

// visibleRows is the number of data lines the table can show.
func (m BoardTableModel) visibleRows() int {
	if m.height <= 1 {
		return 0
	}
	return m.height - 1
}

func (m *BoardTableModel) MoveUp() {
	m.cursor--
	m.clamp()
}

func (m *BoardTableModel) MoveDown() {
	m.cursor++
	m.clamp()
}

func (m *BoardTableModel) PageUp() {
	m.cursor -= m.visibleRows()
	m.clamp()
}

func (m *BoardTableModel) PageDown() {
	m.cursor += m.visibleRows()
	m.clamp()
}

func (m *BoardTableModel) GotoTop() {
	m.cursor = 0
	m.clamp()
}

func (m *BoardTableModel) GotoBottom() {
	m.cursor = len(m.rows) - 1
	m.clamp()
}

// clamp keeps the cursor in range and scrolled into view.
func (m *BoardTableModel) clamp() {
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	visible := m.visibleRows()
	if visible <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

// columnWidths splits the table width roughly the way the header reads:
// the concept column absorbs the rounding remainder.
func (m BoardTableModel) columnWidths() [10]int {
	w := m.width
	cols := [10]int{
		w * 7 / 100,  // PR
		w * 20 / 100, // Title
		w * 5 / 100,  // Author
		w * 5 / 100,  // Assignees
		w * 4 / 100,  // RFM?
		w * 10 / 100, // Labels
		w * 15 / 100, // ACKs
		w * 10 / 100, // NACKs
		w * 15 / 100, // Stale ACKs
		w * 9 / 100,  // Concept ACKs
	}
	allocated := 0
	for _, c := range cols {
		allocated += c
	}
	cols[9] += w - allocated
	return cols
}

func (m BoardTableModel) View() string {
	cols := m.columnWidths()

	var b strings.Builder
	headers := [10]string{"PR", "Title", "Author", "Assignees", "RFM?", "Labels", "ACKs", "NACKs", "Stale ACKs", "Concept"}
	for i, h := range headers {
		b.WriteString(headerStyle.Render(cell(h, cols[i])))
	}

	visible := m.visibleRows()
	for i := 0; i < visible; i++ {
		idx := m.offset + i
		if idx >= len(m.rows) {
			break
		}
		b.WriteString("\n")
		b.WriteString(m.renderRow(m.rows[idx], cols, idx == m.cursor))
	}
	return b.String()
}

func (m BoardTableModel) renderRow(r board.Record, cols [10]int, selected bool) string {
	rowStyle := plainRowStyle
	if r.Draft {
		rowStyle = draftStyle
	} else if r.NeedsRebase {
		rowStyle = needsRebaseStyle
	}
	prStyle := repoColorStyle(r.Repo.String())
	if selected {
		rowStyle = cursorStyle
		prStyle = cursorStyle
	}

	rfm := ""
	if r.RFM == ack.RFMYes {
		rfm = "X"
	}

	cells := [10]string{
		cellElideMiddle(fmt.Sprintf("%s#%d", r.Repo.Name, r.Number), cols[0]),
		cell(r.Title, cols[1]),
		cell(r.Author, cols[2]),
		cell(strings.Join(r.Assignees, ", "), cols[3]),
		cell(rfm, cols[4]),
		cell(strings.Join(r.Labels, ", "), cols[5]),
		cell(ackSummary(r.Acks, ack.Ack), cols[6]),
		cell(ackSummary(r.Acks, ack.Nack), cols[7]),
		cell(ackSummary(r.Acks, ack.StaleAck), cols[8]),
		cell(ackSummary(r.Acks, ack.ConceptAck), cols[9]),
	}

	var b strings.Builder
	b.WriteString(prStyle.Render(cells[0]))
	for _, c := range cells[1:] {
		b.WriteString(rowStyle.Render(c))
	}
	return b.String()
}

// ackSummary formats one ack column: "(2) alice, bob".
func ackSummary(t ack.Table, c ack.Category) string {
	return fmt.Sprintf("(%d) %s", t.Count(c), strings.Join(t.Reviewers(c), ", "))
}

// cell truncates s to width with a trailing ellipsis and pads to width.
func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width-1, "…")
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

// cellElideMiddle keeps the start and end of s, eliding the middle. Used for
// the repo#number column so both repo hint and PR number stay readable.
func cellElideMiddle(s string, width int) string {
	// Too narrow to keep both ends; plain truncation at least stays in range.
	if width <= 2 {
		return cell(s, width)
	}
	if lipgloss.Width(s) < width {
		return s + strings.Repeat(" ", width-lipgloss.Width(s))
	}
	keep := width - 1
	head := keep / 3
	tail := keep - head - 1
	runes := []rune(s)
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:]) + " "
}
