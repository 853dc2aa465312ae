// Package ack classifies reviewer acknowledgment signals left as comments
// on pull requests. An "ACK <hash>" comment approves a specific commit,
// "NACK" rejects the change, and a bare "ACK" approves the concept only.
package ack

import (
	"regexp"
	"strings"
)

// Category is the kind of acknowledgment a reviewer left.
type Category int

const (
	Ack Category = iota
	StaleAck
	Nack
	ApproachAck
	ConceptAck
	OtherAck
)

var categoryNames = [...]string{
	"ACKs",
	"Stale ACKs",
	"NACKs",
	"Approach ACKs",
	"Concept ACKs",
	"Other ACKs",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{Ack, StaleAck, Nack, ApproachAck, ConceptAck, OtherAck}
}

// SortCategories are the categories that participate in ranking, in their
// canonical relative order.
var SortCategories = [4]Category{Ack, StaleAck, Nack, ConceptAck}

// Entry records one reviewer's classified signal and the verbatim line that
// triggered it.
type Entry struct {
	Reviewer string
	Line     string
}

// Table maps each category to the reviewers currently holding it. Entries
// keep insertion order, and a reviewer appears in at most one category.
type Table map[Category][]Entry

// NewTable returns a table with every category allocated and empty.
func NewTable() Table {
	t := make(Table, len(categoryNames))
	for _, c := range Categories() {
		t[c] = nil
	}
	return t
}

// Count returns the number of reviewers in a category.
func (t Table) Count(c Category) int {
	return len(t[c])
}

// Reviewers returns the reviewer logins in a category, in discovery order.
func (t Table) Reviewers(c Category) []string {
	entries := t[c]
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Reviewer
	}
	return names
}

// Holder reports which category currently holds the reviewer, if any.
func (t Table) Holder(reviewer string) (Category, bool) {
	for _, c := range Categories() {
		for _, e := range t[c] {
			if e.Reviewer == reviewer {
				return c, true
			}
		}
	}
	return 0, false
}

func (t Table) remove(reviewer string) {
	for _, c := range Categories() {
		entries := t[c]
		for i, e := range entries {
			if e.Reviewer == reviewer {
				t[c] = append(entries[:i], entries[i+1:]...)
				return
			}
		}
	}
}

func (t Table) add(c Category, reviewer, line string) {
	t[c] = append(t[c], Entry{Reviewer: reviewer, Line: line})
}

// ProcessOrder is the direction a comment timeline is walked in. The
// precedence rule differs per direction so that the most recent signal wins
// either way: walking newest-first, the first classified hit stands; walking
// oldest-first, each hit overwrites the previous one.
type ProcessOrder int

const (
	NewestFirst ProcessOrder = iota
	OldestFirst
)

// ackPatterns are tried per line in priority order; first match wins.
// The hash-bearing pattern captures the commit the reviewer looked at.
var ackPatterns = []struct {
	re       *regexp.Regexp
	category Category
}{
	{regexp.MustCompile(`\bNACK\b`), Nack},
	{regexp.MustCompile(`ACK(?:.*?)([0-9a-f]{6,40})\b`), Ack},
	{regexp.MustCompile(`ACK\b`), ConceptAck},
}

// Classify scans a comment body for an acknowledgment from reviewer and
// records it in t. Quoted lines are ignored, at most one signal is recorded
// per comment, and a hash not matching headAbbrev forces StaleAck. A comment
// with no matching line leaves t untouched.
func Classify(reviewer, body, headAbbrev string, t Table, order ProcessOrder) {
	for _, line := range splitLines(body) {
		if isQuoted(line) {
			continue
		}
		for _, p := range ackPatterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			if order == NewestFirst {
				// An older comment never displaces the signal already held.
				if _, held := t.Holder(reviewer); held {
					return
				}
			} else {
				t.remove(reviewer)
			}

			category := p.category
			if len(m) > 1 && m[1][:6] != headAbbrev {
				category = StaleAck
			}
			t.add(category, reviewer, line)
			return
		}
	}
}

var rfmPattern = regexp.MustCompile(`\brfm\b`)

// DetectRFM reports whether any non-quoted line of the comment body contains
// a standalone "rfm" (ready for merge) token, case-insensitively.
func DetectRFM(body string) bool {
	for _, line := range splitLines(body) {
		if isQuoted(line) {
			continue
		}
		if rfmPattern.MatchString(strings.ToLower(line)) {
			return true
		}
	}
	return false
}

// TriState is the ready-for-merge flag: unknown when part of the timeline
// could not be inspected.
type TriState int

const (
	RFMUnknown TriState = iota
	RFMNo
	RFMYes
)

func isQuoted(line string) bool {
	return strings.HasPrefix(line, ">") || strings.HasPrefix(line, "~")
}

func splitLines(body string) []string {
	return strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
}
