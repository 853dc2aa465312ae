// Package board turns raw pull request timelines into ranked, filterable
// dashboard records.
package board

import (
	"github.com/ackboard/ackboard/internal/ack"
	"github.com/ackboard/ackboard/internal/github"
)

// needsRebaseLabel is the label maintainers apply when a PR no longer merges
// cleanly.
const needsRebaseLabel = "Needs rebase"

// Record is the aggregated review state of one open pull request.
type Record struct {
	Repo        github.Repo
	Number      int
	Title       string
	Author      string
	Assignees   []string
	Labels      []string
	Draft       bool
	NeedsRebase bool
	RFM         ack.TriState
	URL         string
	Acks        ack.Table
}
