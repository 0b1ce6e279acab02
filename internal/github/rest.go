// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/shurcooL/graphql"
	archiveerrors "github.com/sirseerhq/sirseer-archive/internal/errors"
	"github.com/sirseerhq/sirseer-archive/internal/giterror"
)

// maxResponseSize limits response bodies to 50MB to prevent memory issues
// with unexpectedly large payloads.
const maxResponseSize = 50 * 1024 * 1024

// RESTClient implements the GitHub Client interface against the REST v3 API,
// with a small GraphQL side channel for the repository-info preflight. The
// REST API is used for listing and detail fetches because those payloads are
// preserved verbatim in snapshots, and only REST returns the canonical
// payload shape with the pull_request discriminant on listed issues.
type RESTClient struct {
	httpClient *http.Client
	endpoint   string
	gql        *graphql.Client
	inspector  giterror.Inspector
}

// NewRESTClient creates a GitHub client authenticated with the provided
// token. apiEndpoint is the REST base URL and graphqlEndpoint the GraphQL
// URL (both configurable for GitHub Enterprise).
func NewRESTClient(token, apiEndpoint, graphqlEndpoint string) *RESTClient {
	httpClient := newHTTPClient(token)

	return &RESTClient{
		httpClient: httpClient,
		endpoint:   apiEndpoint,
		gql:        graphql.NewClient(graphqlEndpoint, httpClient),
		inspector:  giterror.NewInspector(),
	}
}

// ListIssues fetches one page of the repository's issue listing. The listing
// includes pull-request-linked issues; decodeIssue preserves each payload
// verbatim and extracts the number and discriminant.
func (c *RESTClient) ListIssues(ctx context.Context, owner, repo string, opts ListOptions, page int) (*IssuePage, error) {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	q := url.Values{}
	q.Set("state", opts.State)
	q.Set("direction", opts.Direction)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))

	reqURL := fmt.Sprintf("%s/repos/%s/%s/issues?%s", c.endpoint, owner, repo, q.Encode())

	body, header, err := c.get(ctx, reqURL, owner, repo)
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("failed to decode issues page %d: %w", page, err)
	}

	issues := make([]Issue, 0, len(raws))
	for _, raw := range raws {
		issue, err := decodeIssue(raw)
		if err != nil {
			return nil, fmt.Errorf("issues page %d: %w", page, err)
		}
		issues = append(issues, issue)
	}

	next := nextPage(header.Get("Link"))
	if len(issues) == 0 {
		next = 0
	}

	return &IssuePage{Issues: issues, NextPage: next}, nil
}

// GetPullRequest fetches the full pull request record for one number,
// preserving the response body verbatim.
func (c *RESTClient) GetPullRequest(ctx context.Context, owner, repo string, number int64) (*PullRequest, error) {
	reqURL := fmt.Sprintf("%s/repos/%s/%s/pulls/%d", c.endpoint, owner, repo, number)

	body, _, err := c.get(ctx, reqURL, owner, repo)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("pull request %d: response is not valid JSON", number)
	}

	return &PullRequest{Number: number, Raw: json.RawMessage(body)}, nil
}

// GetRepositoryInfo retrieves the total issue count via a minimal GraphQL
// query. The count covers both plain and pull-request-linked issues, which
// is what the listing endpoint will return.
func (c *RESTClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	var query struct {
		Repository struct {
			Issues struct {
				TotalCount graphql.Int
			} `graphql:"issues"`
			PullRequests struct {
				TotalCount graphql.Int
			} `graphql:"pullRequests"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]interface{}{
		"owner": graphql.String(owner),
		"repo":  graphql.String(repo),
	}

	if err := c.gql.Query(ctx, &query, variables); err != nil {
		return nil, c.mapGraphQLError(err, owner, repo)
	}

	return &RepositoryInfo{
		TotalIssues: int(query.Repository.Issues.TotalCount) +
			int(query.Repository.PullRequests.TotalCount),
	}, nil
}

// get performs one GET request and returns the body and headers, mapping
// failure responses onto the error taxonomy: *RateLimitError for rate-limit
// rejections, sentinel-wrapped errors for auth, not-found and network
// failures, and plain errors for everything else.
func (c *RESTClient) get(ctx context.Context, reqURL, owner, repo string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, fmt.Errorf("request failed: %v: %w", err, archiveerrors.ErrNetworkFailure)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %v: %w", err, archiveerrors.ErrNetworkFailure)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, resp.Header, nil
	case isRateLimited(resp):
		return nil, nil, &RateLimitError{Reset: rateLimitReset(resp, time.Now())}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, nil, fmt.Errorf("authentication failed (status %d): %w", resp.StatusCode, archiveerrors.ErrInvalidToken)
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil, fmt.Errorf("repository %s/%s: %w", owner, repo, archiveerrors.ErrRepoNotFound)
	default:
		return nil, nil, fmt.Errorf("github api returned status %d: %s", resp.StatusCode, truncate(body, 200))
	}
}

// mapGraphQLError maps GraphQL transport errors onto the shared taxonomy.
// shurcooL/graphql surfaces HTTP failures as string errors, so this relies
// on the giterror inspector's message classification.
func (c *RESTClient) mapGraphQLError(err error, owner, repo string) error {
	switch {
	case c.inspector.IsAuthError(err):
		return fmt.Errorf("authentication failed: %w", archiveerrors.ErrInvalidToken)
	case c.inspector.IsNotFoundError(err):
		return fmt.Errorf("repository %s/%s: %w", owner, repo, archiveerrors.ErrRepoNotFound)
	case c.inspector.IsRateLimitError(err):
		return fmt.Errorf("repository info: %w", archiveerrors.ErrRateLimit)
	case c.inspector.IsNetworkError(err):
		return fmt.Errorf("repository info: %v: %w", err, archiveerrors.ErrNetworkFailure)
	default:
		return fmt.Errorf("failed to query repository info: %w", err)
	}
}

// linkNextRe matches the rel="next" entry of a Link header and captures its
// page query parameter.
var linkNextRe = regexp.MustCompile(`<[^>]*[?&]page=(\d+)[^>]*>\s*;\s*rel="next"`)

// nextPage parses the page number of the rel="next" link, or zero when the
// listing has no further pages.
func nextPage(linkHeader string) int {
	m := linkNextRe.FindStringSubmatch(linkHeader)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
