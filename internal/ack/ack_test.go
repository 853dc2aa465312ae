package ack

import (
	"reflect"
	"testing"
)

const head = "abc123"

func TestClassifyCategories(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Category
	}{
		{"ack with matching hash", "ACK abc123", Ack},
		{"ack with full hash", "ACK abc123def456abc123def456abc123def456ab", Ack},
		{"ack with stale hash", "ACK def456", StaleAck},
		{"utack with hash", "utACK abc123", Ack},
		{"concept ack", "ACK", ConceptAck},
		{"utack without hash", "utACK", ConceptAck},
		{"concept ack in sentence", "Concept ACK, nice idea", ConceptAck},
		{"nack", "NACK, needs more testing", Nack},
		{"nack beats hash", "NACK abc123", Nack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable()
			Classify("alice", tt.body, head, table, NewestFirst)
			got, held := table.Holder("alice")
			if !held {
				t.Fatalf("Classify(%q) recorded nothing", tt.body)
			}
			if got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestClassifyNoMatch(t *testing.T) {
	bodies := []string{
		"",
		"Looks good to me",
		"I will nack this later", // lowercase, no token match
		"back to the drawing board",
	}
	for _, body := range bodies {
		table := NewTable()
		Classify("alice", body, head, table, NewestFirst)
		if _, held := table.Holder("alice"); held {
			t.Errorf("Classify(%q) recorded an entry, want none", body)
		}
	}
}

func TestClassifyQuotedLinesIgnored(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"gt quote", "> ACK abc123"},
		{"tilde quote", "~ACK abc123"},
		{"quoted nack", "> NACK\nthanks for the review"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable()
			Classify("alice", tt.body, head, table, NewestFirst)
			if _, held := table.Holder("alice"); held {
				t.Errorf("quoted line in %q produced a classification", tt.body)
			}
		})
	}
}

func TestClassifyQuotedThenReal(t *testing.T) {
	table := NewTable()
	Classify("alice", "> ACK def456\nNACK", head, table, NewestFirst)
	if got, _ := table.Holder("alice"); got != Nack {
		t.Errorf("Holder = %v, want Nack", got)
	}
}

func TestClassifyFirstLineWins(t *testing.T) {
	// Only one signal is recorded per comment even when several lines match.
	table := NewTable()
	Classify("alice", "ACK abc123\nNACK", head, table, NewestFirst)
	if got, _ := table.Holder("alice"); got != Ack {
		t.Errorf("Holder = %v, want Ack (first matching line)", got)
	}
	if table.Count(Nack) != 0 {
		t.Errorf("NACK count = %d, want 0", table.Count(Nack))
	}
}

func TestClassifyRecordsVerbatimLine(t *testing.T) {
	table := NewTable()
	Classify("alice", "intro\nutACK abc123 great work\noutro", head, table, NewestFirst)
	entries := table[Ack]
	if len(entries) != 1 {
		t.Fatalf("ACK entries = %d, want 1", len(entries))
	}
	if entries[0].Line != "utACK abc123 great work" {
		t.Errorf("recorded line = %q", entries[0].Line)
	}
}

func TestClassifyNewestFirstKeepsExisting(t *testing.T) {
	// Newest-first traversal: the already-recorded (newer) signal stands.
	table := NewTable()
	Classify("alice", "NACK", head, table, NewestFirst)
	Classify("alice", "ACK abc123", head, table, NewestFirst)
	if got, _ := table.Holder("alice"); got != Nack {
		t.Errorf("Holder = %v, want Nack (newer comment)", got)
	}
	if table.Count(Ack) != 0 {
		t.Errorf("ACK count = %d, want 0", table.Count(Ack))
	}
}

func TestClassifyOldestFirstOverwrites(t *testing.T) {
	// Oldest-first traversal: each new comment supersedes the previous one.
	table := NewTable()
	Classify("alice", "ACK abc123", head, table, OldestFirst)
	Classify("alice", "NACK", head, table, OldestFirst)
	if got, _ := table.Holder("alice"); got != Nack {
		t.Errorf("Holder = %v, want Nack (later comment)", got)
	}
	if table.Count(Ack) != 0 {
		t.Errorf("ACK count = %d, want 0 after supersession", table.Count(Ack))
	}
}

func TestClassifyMutuallyExclusive(t *testing.T) {
	table := NewTable()
	Classify("alice", "ACK def456", head, table, OldestFirst)
	Classify("alice", "ACK abc123", head, table, OldestFirst)

	held := 0
	for _, c := range Categories() {
		for _, e := range table[c] {
			if e.Reviewer == "alice" {
				held++
			}
		}
	}
	if held != 1 {
		t.Errorf("alice appears in %d categories, want 1", held)
	}
	if got, _ := table.Holder("alice"); got != Ack {
		t.Errorf("Holder = %v, want Ack", got)
	}
}

func TestClassifyStaleOverride(t *testing.T) {
	table := NewTable()
	Classify("alice", "ACK def456abc", head, table, NewestFirst)
	if got, _ := table.Holder("alice"); got != StaleAck {
		t.Errorf("Holder = %v, want StaleAck", got)
	}
}

func TestTableReviewersOrder(t *testing.T) {
	table := NewTable()
	Classify("carol", "ACK abc123", head, table, NewestFirst)
	Classify("alice", "ACK abc123", head, table, NewestFirst)
	Classify("bob", "ACK abc123", head, table, NewestFirst)

	want := []string{"carol", "alice", "bob"}
	if got := table.Reviewers(Ack); !reflect.DeepEqual(got, want) {
		t.Errorf("Reviewers(Ack) = %v, want %v (discovery order)", got, want)
	}
}

func TestDetectRFM(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"bare token", "rfm", true},
		{"uppercase", "RFM", true},
		{"in sentence", "this looks rfm to me", true},
		{"quoted only", "> rfm", false},
		{"substring", "performance", false},
		{"empty", "", false},
		{"quoted then real", "> not rfm\nrfm indeed", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectRFM(tt.body); got != tt.want {
				t.Errorf("DetectRFM(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}
