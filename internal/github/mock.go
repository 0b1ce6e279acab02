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
	"sync"

	archiveerrors "github.com/sirseerhq/sirseer-archive/internal/errors"
)

// MockClient is a mock implementation of the GitHub Client interface for testing.
type MockClient struct {
	mu sync.Mutex

	// Pages holds the listing pages to serve, in order.
	Pages [][]Issue

	// Pulls maps pull numbers to the records served by GetPullRequest.
	Pulls map[int64]PullRequest

	// PullErrors maps pull numbers to per-call errors. Each entry is
	// consumed front to back, so a prefix of rate-limit errors followed by
	// success is expressed as a slice.
	PullErrors map[int64][]error

	// ListError, when set, is returned by every ListIssues call.
	ListError error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNotFound bool

	// Call tracking for verification
	ListCalls int
	PullCalls map[int64]int
	LastOwner string
	LastRepo  string
	LastOpts  ListOptions
}

// NewMockClient creates a mock client serving the given listing pages.
func NewMockClient(pages ...[]Issue) *MockClient {
	return &MockClient{
		Pages:      pages,
		Pulls:      make(map[int64]PullRequest),
		PullErrors: make(map[int64][]error),
		PullCalls:  make(map[int64]int),
	}
}

// ListIssues implements the Client interface.
func (m *MockClient) ListIssues(ctx context.Context, owner, repo string, opts ListOptions, page int) (*IssuePage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	m.LastOwner = owner
	m.LastRepo = repo
	m.LastOpts = opts

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := m.failure(); err != nil {
		return nil, err
	}
	if m.ListError != nil {
		return nil, m.ListError
	}

	if page <= 0 {
		page = 1
	}
	if page > len(m.Pages) {
		return &IssuePage{}, nil
	}

	result := &IssuePage{Issues: m.Pages[page-1]}
	if page < len(m.Pages) {
		result.NextPage = page + 1
	}
	return result, nil
}

// GetPullRequest implements the Client interface.
func (m *MockClient) GetPullRequest(ctx context.Context, owner, repo string, number int64) (*PullRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PullCalls[number]++

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := m.failure(); err != nil {
		return nil, err
	}

	if errs := m.PullErrors[number]; len(errs) > 0 {
		err := errs[0]
		m.PullErrors[number] = errs[1:]
		return nil, err
	}

	if pull, ok := m.Pulls[number]; ok {
		return &pull, nil
	}
	return nil, fmt.Errorf("pull request %d: %w", number, archiveerrors.ErrRepoNotFound)
}

// GetRepositoryInfo implements the Client interface.
func (m *MockClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(); err != nil {
		return nil, err
	}

	total := 0
	for _, page := range m.Pages {
		total += len(page)
	}
	return &RepositoryInfo{TotalIssues: total}, nil
}

// SetPull registers a pull request record served for the given number.
func (m *MockClient) SetPull(number int64, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pulls[number] = PullRequest{Number: number, Raw: json.RawMessage(raw)}
}

func (m *MockClient) failure() error {
	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", archiveerrors.ErrInvalidToken)
	}
	if m.ShouldFailNotFound {
		return fmt.Errorf("repository not found: %w", archiveerrors.ErrRepoNotFound)
	}
	return nil
}

// TestIssue builds an issue whose Raw payload carries the number and, for
// pull-request-linked issues, the pull_request discriminant object.
func TestIssue(number int64, isPull bool) Issue {
	raw := fmt.Sprintf(`{"number":%d,"title":"Issue %d"}`, number, number)
	if isPull {
		raw = fmt.Sprintf(`{"number":%d,"title":"Issue %d","pull_request":{"url":"https://api.github.com/repos/o/r/pulls/%d"}}`, number, number, number)
	}
	return Issue{Number: number, IsPullRequest: isPull, Raw: json.RawMessage(raw)}
}
