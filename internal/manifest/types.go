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

package manifest

import "time"

// CurrentVersion is the current manifest schema version.
// Increment this when making breaking changes to the Manifest structure.
const CurrentVersion = 1

// Filename is the manifest's name within the snapshot directory.
const Filename = "snapshot.manifest"

// Manifest describes one completed snapshot run: which files were written,
// how many records each holds, and when the run finished. The checksum
// covers every field except itself.
type Manifest struct {
	// Version indicates the schema version of this manifest file.
	Version int `json:"version"`

	// Checksum is the SHA256 hash of the manifest content (excluding this field).
	// Used to detect corruption or tampering.
	Checksum string `json:"checksum"`

	// Repository is the full repository name in "org/repo" format.
	Repository string `json:"repository"`

	// FetchID identifies the run that produced these snapshots.
	FetchID string `json:"fetch_id"`

	// IssueSnapshot and PullSnapshot are the snapshot filenames, relative
	// to the manifest's directory.
	IssueSnapshot string `json:"issue_snapshot"`
	PullSnapshot  string `json:"pull_snapshot"`

	// IssueCount and PullCount are the record counts of the two snapshots.
	IssueCount int `json:"issue_count"`
	PullCount  int `json:"pull_count"`

	// CompletedAt records when the run finished successfully.
	CompletedAt time.Time `json:"completed_at"`
}
