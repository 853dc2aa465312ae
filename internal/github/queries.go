package github

// openPRsQuery lists a page of open pull requests with an embedded last page
// of each PR's timeline. Timelines are paged backward from the newest item,
// so the embedded page is requested with `last`.
const openPRsQuery = `
query($prs_cursor: String, $page_size: Int!, $repo_owner: String!, $repo_name: String!) {
  repository(name: $repo_name, owner: $repo_owner) {
    pullRequests(states: [OPEN], first: $page_size, after: $prs_cursor) {
      nodes {
        number
        isDraft
        headRefOid
        title
        url
        author {
          login
        }
        assignees(first: 10) {
          nodes {
            login
          }
        }
        timelineItems(last: $page_size, itemTypes: [ISSUE_COMMENT, PULL_REQUEST_REVIEW]) {
          nodes {
            ... on HeadRefForcePushedEvent {
              author: actor {
                login
              }
            }
            ... on IssueComment {
              author {
                login
              }
              body
            }
            ... on PullRequestReview {
              author {
                login
              }
              body
            }
          }
          pageInfo {
            endCursor
            hasNextPage
            hasPreviousPage
            startCursor
          }
        }
        labels(first: 100) {
          nodes {
            name
          }
        }
      }
      pageInfo {
        endCursor
        hasNextPage
        hasPreviousPage
        startCursor
      }
    }
  }
}`

// timelineQuery fetches an earlier page of a single PR's timeline, scoped by
// its own cursor independent of the PR-list cursor.
const timelineQuery = `
query($timeline_cursor: String, $page_size: Int!, $pr_num: Int!, $repo_owner: String!, $repo_name: String!) {
  repository(name: $repo_name, owner: $repo_owner) {
    pullRequest(number: $pr_num) {
      timelineItems(last: $page_size, after: $timeline_cursor, itemTypes: [ISSUE_COMMENT, PULL_REQUEST_REVIEW]) {
        nodes {
          ... on HeadRefForcePushedEvent {
            author: actor {
              login
            }
          }
          ... on IssueComment {
            author {
              login
            }
            body
          }
          ... on PullRequestReview {
            author {
              login
            }
            body
          }
        }
        pageInfo {
          endCursor
          hasNextPage
          hasPreviousPage
          startCursor
        }
      }
    }
  }
}`
