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

// Package github provides the GitHub API client used to build issue and
// pull request snapshots. It exposes a small Client interface with three
// operations: paging through a repository's issues, fetching a single pull
// request, and a repository-info preflight. On top of the interface it
// layers the engine pieces of the pipeline: sequential pagination
// (ListAllIssues), retry-on-rate-limit (RetryClient), partitioning
// (PartitionIssues), and the throttled concurrent pull fetcher (PullFetcher).
//
// Issue and pull request payloads are deliberately opaque. The client
// retains the verbatim response bytes and only inspects the number and the
// pull_request discriminant, so snapshots preserve whatever the API
// returned byte for byte.
package github
