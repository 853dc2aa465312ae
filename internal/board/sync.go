package board

import (
	"context"

	"github.com/ackboard/ackboard/internal/ack"
	"github.com/ackboard/ackboard/internal/github"
)

// Source is the query capability the synchronizer consumes.
type Source interface {
	OpenPullRequests(ctx context.Context, repo github.Repo, cursor string) (*github.PullRequestPage, error)
	TimelineItems(ctx context.Context, repo github.Repo, number int, cursor string) (*github.TimelinePage, error)
}

// ForcePushPolicy decides what a head force-push does to the ready-for-merge
// flag of the comments that precede it.
type ForcePushPolicy int

const (
	// ForcePushUnknown marks the flag unknown: older "rfm" comments may no
	// longer describe the current head.
	ForcePushUnknown ForcePushPolicy = iota
	// ForcePushFalse ignores force-pushes and keeps the flag as computed.
	ForcePushFalse
)

// Synchronizer builds a fresh record set from the configured repositories.
type Synchronizer struct {
	source Source
	repos  []github.Repo
	bot    string
	policy ForcePushPolicy
}

func NewSynchronizer(source Source, repos []github.Repo, bot string, policy ForcePushPolicy) *Synchronizer {
	return &Synchronizer{source: source, repos: repos, bot: bot, policy: policy}
}

// Sync walks every configured repository's open pull requests and folds each
// PR's full timeline into a Record. Repositories are fetched sequentially and
// any fatal query error aborts the whole pass with no partial result, so the
// caller keeps serving its previous records. progress, if non-nil, is called
// with the running count of fully loaded PRs.
func (s *Synchronizer) Sync(ctx context.Context, progress func(loaded int)) ([]Record, error) {
	var records []Record
	for _, repo := range s.repos {
		cursor := ""
		for {
			page, err := s.source.OpenPullRequests(ctx, repo, cursor)
			if err != nil {
				return nil, err
			}
			for _, pr := range page.Nodes {
				rec, err := s.buildRecord(ctx, repo, pr)
				if err != nil {
					return nil, err
				}
				records = append(records, rec)
				if progress != nil {
					progress(len(records))
				}
			}
			if !page.PageInfo.HasNextPage {
				break
			}
			cursor = page.PageInfo.EndCursor
		}
	}
	return records, nil
}

// buildRecord folds one PR's timeline, newest item first, paging backward
// until the oldest page. The record is complete only once every page has
// been folded.
func (s *Synchronizer) buildRecord(ctx context.Context, repo github.Repo, pr github.PullRequest) (Record, error) {
	author := ""
	if pr.Author != nil {
		author = pr.Author.Login
	}
	headAbbrev := pr.HeadRefOid
	if len(headAbbrev) > 6 {
		headAbbrev = headAbbrev[:6]
	}

	acks := ack.NewTable()
	rfm := ack.RFMNo

	page := pr.TimelineItems
	for {
		for i := len(page.Nodes) - 1; i >= 0; i-- {
			rfm = s.foldItem(page.Nodes[i], author, headAbbrev, acks, rfm)
		}
		if !page.PageInfo.HasPreviousPage {
			break
		}
		older, err := s.source.TimelineItems(ctx, repo, pr.Number, page.PageInfo.StartCursor)
		if err != nil {
			return Record{}, err
		}
		page = *older
	}

	rec := Record{
		Repo:   repo,
		Number: pr.Number,
		Title:  pr.Title,
		Author: author,
		Draft:  pr.IsDraft,
		RFM:    rfm,
		URL:    pr.URL,
		Acks:   acks,
	}
	for _, a := range pr.Assignees.Nodes {
		rec.Assignees = append(rec.Assignees, a.Login)
	}
	for _, l := range pr.Labels.Nodes {
		rec.Labels = append(rec.Labels, l.Name)
		if l.Name == needsRebaseLabel {
			rec.NeedsRebase = true
		}
	}
	return rec, nil
}

// foldItem applies one timeline item, walking newest-first. A body-less item
// is a head force-push: comments older than it may predate the current head,
// so the ready flag degrades to unknown unless the policy says otherwise.
// The PR author's own comments and the bot's never count.
func (s *Synchronizer) foldItem(item github.TimelineItem, author, headAbbrev string, acks ack.Table, rfm ack.TriState) ack.TriState {
	if item.Body == nil {
		if rfm == ack.RFMNo && s.policy == ForcePushUnknown {
			return ack.RFMUnknown
		}
		return rfm
	}
	login := ""
	if item.Author != nil {
		login = item.Author.Login
	}
	if login == "" || login == author || login == s.bot {
		return rfm
	}
	if rfm != ack.RFMUnknown && ack.DetectRFM(*item.Body) {
		rfm = ack.RFMYes
	}
	ack.Classify(login, *item.Body, headAbbrev, acks, ack.NewestFirst)
	return rfm
}
