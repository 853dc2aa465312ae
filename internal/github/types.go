package github

import (
	"fmt"
	"strings"
)

// Repo identifies a GitHub repository.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepo parses an "owner/name" argument.
func ParseRepo(s string) (Repo, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" {
		return Repo{}, fmt.Errorf("invalid repository %q: want owner/name", s)
	}
	return Repo{Owner: owner, Name: name}, nil
}

// Actor is the author of a comment, review, or timeline event. GitHub
// returns null for deleted accounts, so nodes hold a pointer to it.
type Actor struct {
	Login string `json:"login"`
}

// PageInfo mirrors the GraphQL pageInfo block used for cursor pagination.
type PageInfo struct {
	EndCursor       string `json:"endCursor"`
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
}

// TimelineItem is one node of a pull request's comment/review timeline.
// Issue comments and reviews carry a body; head force-push events carry only
// the actor, so Body stays nil for them.
type TimelineItem struct {
	Author *Actor  `json:"author"`
	Body   *string `json:"body"`
}

// TimelinePage is one page of a pull request's timeline.
type TimelinePage struct {
	Nodes    []TimelineItem `json:"nodes"`
	PageInfo PageInfo       `json:"pageInfo"`
}

// PullRequest is one node of the open-PR listing, including the embedded
// first page of its timeline.
type PullRequest struct {
	Number     int    `json:"number"`
	IsDraft    bool   `json:"isDraft"`
	HeadRefOid string `json:"headRefOid"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Author     *Actor `json:"author"`
	Assignees  struct {
		Nodes []Actor `json:"nodes"`
	} `json:"assignees"`
	TimelineItems TimelinePage `json:"timelineItems"`
	Labels        struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	} `json:"labels"`
}

// PullRequestPage is one page of a repository's open pull requests.
type PullRequestPage struct {
	Nodes    []PullRequest `json:"nodes"`
	PageInfo PageInfo      `json:"pageInfo"`
}
