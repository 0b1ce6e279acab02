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

// Package metadata types define the structures persisted alongside snapshot
// files to describe what a run fetched and how.
package metadata

import "time"

// RunMetadata is the complete metadata record for a single snapshot run.
// It captures what was fetched, how it was fetched, and the results,
// providing an audit trail for troubleshooting and compliance.
type RunMetadata struct {
	ArchiveVersion string     `json:"archive_version"`
	FetchID        string     `json:"fetch_id"`
	Parameters     RunParams  `json:"parameters"`
	Results        RunResults `json:"results"`
}

// RunParams captures the input parameters of a snapshot run. Preserved to
// make runs reproducible and diagnosable.
type RunParams struct {
	Organization string `json:"organization"`
	Repository   string `json:"repository"`
	PageSize     int    `json:"page_size"`
}

// RunResults contains the statistics of a completed snapshot run: record
// counts per collection, API call volume, and timing.
type RunResults struct {
	TotalIssues  int       `json:"total_issues"`
	PlainIssues  int       `json:"plain_issues"`
	PullRequests int       `json:"pull_requests"`
	FirstIssue   int64     `json:"first_issue_number"`
	LastIssue    int64     `json:"last_issue_number"`
	APICallCount int       `json:"api_calls_made"`
	Duration     string    `json:"fetch_duration"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
}
