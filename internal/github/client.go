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

import "context"

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests.
type Client interface {
	// ListIssues retrieves one page of issues from the specified repository.
	// The listing mixes plain issues and pull-request-linked issues; the
	// returned page's NextPage field is zero once the listing is exhausted.
	ListIssues(ctx context.Context, owner, repo string, opts ListOptions, page int) (*IssuePage, error)

	// GetPullRequest retrieves the full pull request record for one number.
	// A rate-limited response is returned as *RateLimitError so callers can
	// schedule a retry; any other error is terminal for the caller.
	GetPullRequest(ctx context.Context, owner, repo string, number int64) (*PullRequest, error)

	// GetRepositoryInfo retrieves basic repository metadata including the
	// total issue count. Used for progress reporting before a full fetch.
	GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error)
}
