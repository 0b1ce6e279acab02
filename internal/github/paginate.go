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
	"fmt"
)

// PageFunc is invoked after each fetched page with the running record count.
// Used for progress reporting; may be nil.
type PageFunc func(fetched int)

// ListAllIssues drains the issue listing into memory, strictly one page at
// a time: page N+1 is not requested until page N has been decoded. Records
// are returned in server order. Any transport or decode error aborts the
// listing and is returned to the caller; pass a retry-wrapped client to
// also recover from rate limits during pagination.
func ListAllIssues(ctx context.Context, client Client, owner, repo string, opts ListOptions, onPage PageFunc) ([]Issue, error) {
	var all []Issue

	page := 1
	for page > 0 {
		result, err := client.ListIssues(ctx, owner, repo, opts, page)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues (page %d): %w", page, err)
		}

		all = append(all, result.Issues...)
		if onPage != nil {
			onPage(len(all))
		}

		page = result.NextPage
	}

	return all, nil
}
