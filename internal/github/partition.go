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

import "fmt"

// PartitionIssues splits a fetched issue sequence into plain issues and the
// numbers of pull-request-linked issues. Order of first appearance is
// preserved in both outputs. The listing endpoint guarantees unique issue
// numbers, so a duplicate means corrupted input and is an error.
func PartitionIssues(issues []Issue) (plain []Issue, pullNumbers []int64, err error) {
	seen := make(map[int64]struct{}, len(issues))

	for _, issue := range issues {
		if _, dup := seen[issue.Number]; dup {
			return nil, nil, fmt.Errorf("duplicate issue number %d in listing", issue.Number)
		}
		seen[issue.Number] = struct{}{}

		if issue.IsPullRequest {
			pullNumbers = append(pullNumbers, issue.Number)
		} else {
			plain = append(plain, issue)
		}
	}

	return plain, pullNumbers, nil
}
