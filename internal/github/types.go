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
	"encoding/json"
	"fmt"
)

// Issue is a single record from the issues listing endpoint. The full API
// payload is retained verbatim in Raw; Number and IsPullRequest are the only
// fields the pipeline ever inspects. An Issue is never mutated after decode.
type Issue struct {
	Number        int64           `json:"number" msgpack:"number"`
	IsPullRequest bool            `json:"is_pull_request" msgpack:"is_pull_request"`
	Raw           json.RawMessage `json:"raw" msgpack:"raw"`
}

// PullRequest is a single record from the pull request detail endpoint,
// keyed by the same number space as Issue. Like Issue, the payload is
// opaque: Raw holds the response body exactly as the API returned it.
type PullRequest struct {
	Number int64           `json:"number" msgpack:"number"`
	Raw    json.RawMessage `json:"raw" msgpack:"raw"`
}

// IssuePage represents one page of results from the issues listing endpoint.
// NextPage is the page number to request next, or zero when the listing is
// exhausted.
type IssuePage struct {
	Issues   []Issue
	NextPage int
}

// ListOptions configures the issues listing request. Options are fixed once
// the listing starts; every page of one listing uses the same options.
type ListOptions struct {
	// State filters issues by state: "open", "closed" or "all".
	State string

	// Direction is the sort direction, "asc" or "desc".
	Direction string

	// PerPage is the page size. Defaults to DefaultPageSize if zero.
	// Maximum is 100 per GitHub's API limits.
	PerPage int
}

// DefaultListOptions returns the listing options used for snapshot runs:
// every issue regardless of state, in ascending order, at the maximum
// page size.
func DefaultListOptions() ListOptions {
	return ListOptions{
		State:     "all",
		Direction: "asc",
		PerPage:   DefaultPageSize,
	}
}

// DefaultPageSize is the listing page size used when none is configured.
const DefaultPageSize = 100

// RepositoryInfo contains basic repository metadata. Used to get the total
// issue count up front for progress reporting.
type RepositoryInfo struct {
	TotalIssues int
}

// issueProbe is the minimal shape decoded from a raw issue payload to
// extract the number and the pull_request discriminant. The listing
// endpoint returns pull requests alongside plain issues; the presence of
// the pull_request object is what tells them apart.
type issueProbe struct {
	Number      *int64          `json:"number"`
	PullRequest json.RawMessage `json:"pull_request"`
}

// decodeIssue builds an Issue from one raw element of a listing page,
// preserving the payload bytes untouched.
func decodeIssue(raw json.RawMessage) (Issue, error) {
	var probe issueProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Issue{}, fmt.Errorf("failed to decode issue payload: %w", err)
	}
	if probe.Number == nil {
		return Issue{}, fmt.Errorf("issue payload has no number field")
	}
	return Issue{
		Number:        *probe.Number,
		IsPullRequest: len(probe.PullRequest) > 0 && string(probe.PullRequest) != "null",
		Raw:           raw,
	}, nil
}
