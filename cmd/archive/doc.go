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

// Package main implements the sirseer-archive command-line interface.
// This tool snapshots the complete issue history of a GitHub repository,
// writing plain issues and full pull request records as binary msgpack
// files.
//
// The CLI supports:
//   - Snapshotting every issue and pull request of a repository
//   - Customizable output directory
//   - GitHub token authentication via flag or environment variable
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	sirseer-archive snapshot <org>/<repo> [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	sirseer-archive snapshot golang/go --output-dir ./data
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
