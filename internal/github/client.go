// Package github executes the paged GraphQL queries the dashboard aggregates
// from. Transient gateway failures are retried on a bounded constant backoff;
// everything else is fatal to the caller's synchronization pass.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"golang.org/x/oauth2"
)

const defaultEndpoint = "https://api.github.com/graphql"

// Defaults
const (
	DefaultPageSize   = 50
	DefaultRetryDelay = 10 * time.Second
	DefaultRetryMax   = 6
)

// APIError is a non-success response outside the transient gateway class.
// It aborts the current synchronization pass.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: HTTP %d: %s", e.StatusCode, e.Body)
}

// TransientError reports that the retry budget for gateway failures
// (502/503/504) was exhausted.
type TransientError struct {
	StatusCode int
	Attempts   int
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("github: HTTP %d persisted after %d attempts", e.StatusCode, e.Attempts)
}

// errGateway marks a retryable response inside the backoff loop.
var errGateway = errors.New("gateway error")

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	PageSize   int
	RetryDelay time.Duration
	RetryMax   int
	Endpoint   string // overridden in tests
}

func (o *Options) applyDefaults() {
	if o.PageSize == 0 {
		o.PageSize = DefaultPageSize
	}
	if o.RetryDelay == 0 {
		o.RetryDelay = DefaultRetryDelay
	}
	if o.RetryMax == 0 {
		o.RetryMax = DefaultRetryMax
	}
	if o.Endpoint == "" {
		o.Endpoint = defaultEndpoint
	}
}

// Client executes paged GraphQL queries against the GitHub API.
type Client struct {
	http *http.Client
	opts Options
}

// NewClient builds a client whose transport first presents the bearer token
// and then defers to the rate limit middleware, which sleeps through
// secondary rate limit responses instead of failing the pass.
func NewClient(token string, opts Options) *Client {
	opts.applyDefaults()
	rl := github_ratelimit.NewClient(nil)
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   rl.Transport,
		},
	}
	return &Client{http: httpClient, opts: opts}
}

// NewClientWithHTTPClient builds a client over a caller-supplied http.Client.
// Intended for tests injecting an httptest server via Options.Endpoint.
func NewClientWithHTTPClient(httpClient *http.Client, opts Options) *Client {
	opts.applyDefaults()
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{http: httpClient, opts: opts}
}

// OpenPullRequests fetches one page of a repository's open pull requests.
// An empty cursor requests the first page.
func (c *Client) OpenPullRequests(ctx context.Context, repo Repo, cursor string) (*PullRequestPage, error) {
	vars := map[string]any{
		"repo_owner": repo.Owner,
		"repo_name":  repo.Name,
		"page_size":  c.opts.PageSize,
	}
	if cursor != "" {
		vars["prs_cursor"] = cursor
	}

	var out struct {
		Repository struct {
			PullRequests PullRequestPage `json:"pullRequests"`
		} `json:"repository"`
	}
	if err := c.do(ctx, openPRsQuery, vars, &out); err != nil {
		return nil, err
	}
	return &out.Repository.PullRequests, nil
}

// TimelineItems fetches one earlier page of a single PR's timeline.
func (c *Client) TimelineItems(ctx context.Context, repo Repo, number int, cursor string) (*TimelinePage, error) {
	vars := map[string]any{
		"repo_owner":      repo.Owner,
		"repo_name":       repo.Name,
		"pr_num":          number,
		"page_size":       c.opts.PageSize,
		"timeline_cursor": cursor,
	}

	var out struct {
		Repository struct {
			PullRequest struct {
				TimelineItems TimelinePage `json:"timelineItems"`
			} `json:"pullRequest"`
		} `json:"repository"`
	}
	if err := c.do(ctx, timelineQuery, vars, &out); err != nil {
		return nil, err
	}
	return &out.Repository.PullRequest.TimelineItems, nil
}

// graphqlRequest is the JSON body posted to the GraphQL endpoint.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// graphqlResponse is the response envelope; Data is decoded per query.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// do posts a query and decodes the data envelope into out. Gateway failures
// are retried inside; any error returned here is fatal to the pass.
func (c *Client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshaling query: %w", err)
	}

	var raw []byte
	lastStatus := 0
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/vnd.github.v3+json")

		resp, err := c.http.Do(req)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("posting query: %w", err))
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("reading response: %w", err))
		}

		switch {
		case resp.StatusCode >= http.StatusOK && resp.StatusCode < 300:
			raw = data
			return nil
		case resp.StatusCode == http.StatusBadGateway,
			resp.StatusCode == http.StatusServiceUnavailable,
			resp.StatusCode == http.StatusGatewayTimeout:
			lastStatus = resp.StatusCode
			return errGateway
		default:
			return backoff.Permanent(&APIError{StatusCode: resp.StatusCode, Body: string(data)})
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.opts.RetryDelay), uint64(c.opts.RetryMax)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		if errors.Is(err, errGateway) {
			return &TransientError{StatusCode: lastStatus, Attempts: c.opts.RetryMax + 1}
		}
		return err
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("github: graphql error: %s", envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}
	return nil
}
