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

// Package testutil provides common test helpers for sirseer-archive
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// SeedIssue describes one issue the mock server should list. Pull-linked
// issues additionally get a pull detail record served under /pulls/{n}.
type SeedIssue struct {
	Number        int64
	IsPullRequest bool
}

// PlainIssues builds n sequential plain seed issues starting at 1.
func PlainIssues(n int) []SeedIssue {
	issues := make([]SeedIssue, n)
	for i := range issues {
		issues[i] = SeedIssue{Number: int64(i + 1)}
	}
	return issues
}

// MixedIssues builds n sequential seed issues where every second one is
// pull-request-linked.
func MixedIssues(n int) []SeedIssue {
	issues := make([]SeedIssue, n)
	for i := range issues {
		issues[i] = SeedIssue{Number: int64(i + 1), IsPullRequest: (i+1)%2 == 0}
	}
	return issues
}

// GitHubServer is a mock GitHub API backend covering the endpoints the
// archive pipeline uses: the REST issue listing with Link-header
// pagination, REST pull request detail, and the GraphQL repository-info
// preflight.
type GitHubServer struct {
	*httptest.Server

	mu         sync.Mutex
	issues     []SeedIssue
	listCalls  int
	pullCalls  map[int64]int
	rateLimits map[string]int
	failStatus map[string]int
}

// NewGitHubServer starts a mock server seeded with the given issues.
// The server is shut down when the test finishes.
func NewGitHubServer(t *testing.T, issues []SeedIssue) *GitHubServer {
	t.Helper()

	s := &GitHubServer{
		issues:     issues,
		pullCalls:  make(map[int64]int),
		rateLimits: make(map[string]int),
		failStatus: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// RateLimitFirst makes the first n requests to the given path prefix fail
// with a rate-limit rejection whose reset is retryAfter from now.
func (s *GitHubServer) RateLimitFirst(pathPrefix string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rateLimits[pathPrefix] = n
}

// FailWith makes every request to the given path prefix fail with the
// status code.
func (s *GitHubServer) FailWith(pathPrefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus[pathPrefix] = status
}

// ListCalls reports how many issue-listing requests were served.
func (s *GitHubServer) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

// PullCalls reports how many detail requests were served for one pull.
func (s *GitHubServer) PullCalls(number int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pullCalls[number]
}

func (s *GitHubServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()

	// Count every request, including ones about to be rejected, so tests
	// can verify retry behavior.
	if strings.HasSuffix(r.URL.Path, "/issues") {
		s.listCalls++
	}
	if idx := strings.LastIndex(r.URL.Path, "/pulls/"); idx >= 0 {
		if number, err := strconv.ParseInt(r.URL.Path[idx+len("/pulls/"):], 10, 64); err == nil {
			s.pullCalls[number]++
		}
	}

	for prefix, remaining := range s.rateLimits {
		if strings.HasPrefix(r.URL.Path, prefix) && remaining > 0 {
			s.rateLimits[prefix] = remaining - 1
			s.mu.Unlock()
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10))
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
			return
		}
	}
	for prefix, status := range s.failStatus {
		if strings.HasPrefix(r.URL.Path, prefix) {
			s.mu.Unlock()
			w.WriteHeader(status)
			fmt.Fprint(w, http.StatusText(status))
			return
		}
	}
	s.mu.Unlock()

	switch {
	case r.URL.Path == "/graphql":
		s.handleGraphQL(w)
	case strings.HasSuffix(r.URL.Path, "/issues"):
		s.handleListIssues(w, r)
	case strings.Contains(r.URL.Path, "/pulls/"):
		s.handleGetPull(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *GitHubServer) handleGraphQL(w http.ResponseWriter) {
	s.mu.Lock()
	pulls := 0
	for _, issue := range s.issues {
		if issue.IsPullRequest {
			pulls++
		}
	}
	plain := len(s.issues) - pulls
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"data":{"repository":{"issues":{"totalCount":%d},"pullRequests":{"totalCount":%d}}}}`, plain, pulls)
}

func (s *GitHubServer) handleListIssues(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	issues := s.issues
	s.mu.Unlock()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage <= 0 {
		perPage = 100
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(issues) {
		start = len(issues)
	}
	if end > len(issues) {
		end = len(issues)
	}

	records := make([]json.RawMessage, 0, end-start)
	for _, issue := range issues[start:end] {
		records = append(records, json.RawMessage(IssueJSON(issue)))
	}

	if end < len(issues) {
		w.Header().Set("Link", fmt.Sprintf(`<%s%s?page=%d&per_page=%d>; rel="next"`,
			s.URL, r.URL.Path, page+1, perPage))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(records)
}

func (s *GitHubServer) handleGetPull(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	number, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	s.mu.Lock()
	found := false
	for _, issue := range s.issues {
		if issue.Number == number && issue.IsPullRequest {
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, PullJSON(number))
}

// IssueJSON renders the listing payload for one seed issue. Pull-linked
// issues carry the pull_request discriminant object.
func IssueJSON(issue SeedIssue) string {
	if issue.IsPullRequest {
		return fmt.Sprintf(`{"number":%d,"title":"Issue %d","state":"closed","pull_request":{"url":"https://api.github.com/repos/test-org/test-repo/pulls/%d"}}`,
			issue.Number, issue.Number, issue.Number)
	}
	return fmt.Sprintf(`{"number":%d,"title":"Issue %d","state":"open"}`, issue.Number, issue.Number)
}

// PullJSON renders the detail payload for one pull request.
func PullJSON(number int64) string {
	return fmt.Sprintf(`{"number":%d,"title":"Pull %d","state":"closed","merged":true,"additions":%d,"deletions":%d}`,
		number, number, number*10, number*3)
}
