package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ackboard/ackboard/internal/ack"
	"github.com/ackboard/ackboard/internal/board"
)

// DetailModel is the overlay showing one PR's full review state, including
// the verbatim line behind every recorded ack.
type DetailModel struct {
	viewport viewport.Model
	record   *board.Record
	width    int
	height   int
	active   bool
}

func NewDetailModel() DetailModel {
	return DetailModel{viewport: viewport.New(0, 0)}
}

func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.resize()
}

func (m *DetailModel) resize() {
	w := m.width - 4
	h := m.height - 4
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	m.viewport.Width = w
	m.viewport.Height = h
}

// Show opens the overlay for a record.
func (m *DetailModel) Show(record *board.Record) {
	m.record = record
	m.active = true
	m.resize()
	m.viewport.SetContent(renderDetail(record))
	m.viewport.GotoTop()
}

// Hide closes the overlay.
func (m *DetailModel) Hide() {
	m.active = false
	m.record = nil
}

// IsActive returns whether the overlay is shown.
func (m DetailModel) IsActive() bool {
	return m.active
}

// URL returns the shown record's URL, "" when inactive.
func (m DetailModel) URL() string {
	if m.record == nil {
		return ""
	}
	return m.record.URL
}

// Update handles scrolling while the overlay is open. Close keys are the
// caller's concern.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(kmsg, DetailKeys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(kmsg, DetailKeys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(kmsg, DetailKeys.PageUp):
		m.viewport.ViewUp()
	case key.Matches(kmsg, DetailKeys.PageDown):
		m.viewport.ViewDown()
	case key.Matches(kmsg, DetailKeys.Top):
		m.viewport.GotoTop()
	case key.Matches(kmsg, DetailKeys.Bottom):
		m.viewport.GotoBottom()
	}
	return m, nil
}

func (m DetailModel) View() string {
	if !m.active {
		return ""
	}
	return detailBorderStyle.Render(m.viewport.View())
}

func renderDetail(r *board.Record) string {
	var b strings.Builder

	if r.Draft {
		b.WriteString(detailMetaStyle.Render("Draft PR") + "\n")
	}
	fmt.Fprintf(&b, "Number: %s#%d\n", r.Repo, r.Number)
	fmt.Fprintf(&b, "Title: %s\n", r.Title)
	fmt.Fprintf(&b, "Author: %s\n", r.Author)
	fmt.Fprintf(&b, "Labels: %s\n", strings.Join(r.Labels, ", "))
	fmt.Fprintf(&b, "Assignees: %s\n", strings.Join(r.Assignees, ", "))

	for _, c := range ack.Categories() {
		entries := r.Acks[c]
		b.WriteString(detailHeadingStyle.Render(fmt.Sprintf("%s: %d", c, len(entries))) + "\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "  %s: %s\n", e.Reviewer, e.Line)
		}
	}
	return b.String()
}
