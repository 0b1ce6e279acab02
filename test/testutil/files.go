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

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirseerhq/sirseer-archive/internal/github"
	"github.com/sirseerhq/sirseer-archive/internal/output"
)

// CreateTempFile creates a temporary file with the given content
func CreateTempFile(t *testing.T, dir, pattern, content string) string {
	t.Helper()

	file, err := os.CreateTemp(dir, pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if _, err := file.WriteString(content); err != nil {
		file.Close()
		t.Fatalf("Failed to write to temp file: %v", err)
	}

	if err := file.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	return file.Name()
}

// AssertFileExists fails the test when the path does not exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected file %s to exist: %v", path, err)
	}
}

// AssertFileNotExists fails the test when the path exists.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Expected file %s not to exist", path)
	}
}

// ReadIssueSnapshot decodes an issue snapshot file.
func ReadIssueSnapshot(t *testing.T, path string) []github.Issue {
	t.Helper()

	var issues []github.Issue
	if err := output.ReadSnapshot(path, &issues); err != nil {
		t.Fatalf("Failed to read issue snapshot %s: %v", path, err)
	}
	return issues
}

// ReadPullSnapshot decodes a pull request snapshot file.
func ReadPullSnapshot(t *testing.T, path string) []github.PullRequest {
	t.Helper()

	var pulls []github.PullRequest
	if err := output.ReadSnapshot(path, &pulls); err != nil {
		t.Fatalf("Failed to read pull snapshot %s: %v", path, err)
	}
	return pulls
}

// SnapshotDir returns the per-repository snapshot directory under outputDir.
func SnapshotDir(outputDir, owner, repo string) string {
	return filepath.Join(outputDir, owner, repo)
}
