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

package integration

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	archiveerrors "github.com/sirseerhq/sirseer-archive/internal/errors"
	"github.com/sirseerhq/sirseer-archive/internal/fetch"
	"github.com/sirseerhq/sirseer-archive/internal/manifest"
	"github.com/sirseerhq/sirseer-archive/test/testutil"
)

// TestAuthFailureAborts verifies a 401 during listing surfaces the invalid
// token sentinel and writes nothing.
func TestAuthFailureAborts(t *testing.T) {
	skipUnlessIntegration(t)

	server := testutil.NewGitHubServer(t, testutil.PlainIssues(3))
	server.FailWith("/repos/test-org/test-repo/issues", http.StatusUnauthorized)

	outputDir := t.TempDir()
	err := newPipeline(server, 100).Run(context.Background(), "test-org", "test-repo", outputDir)
	if !errors.Is(err, archiveerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	dir := testutil.SnapshotDir(outputDir, "test-org", "test-repo")
	testutil.AssertFileNotExists(t, filepath.Join(dir, fetch.IssueSnapshotFile))
}

// TestNotFoundDuringListing verifies a 404 maps to the repo-not-found
// sentinel.
func TestNotFoundDuringListing(t *testing.T) {
	skipUnlessIntegration(t)

	server := testutil.NewGitHubServer(t, testutil.PlainIssues(3))
	server.FailWith("/repos/test-org/test-repo/issues", http.StatusNotFound)

	err := newPipeline(server, 100).Run(context.Background(), "test-org", "test-repo", t.TempDir())
	if !errors.Is(err, archiveerrors.ErrRepoNotFound) {
		t.Fatalf("expected ErrRepoNotFound, got %v", err)
	}
}

// TestPullFailureIsAllOrNothing verifies that one failing detail lookup
// aborts the batch: the issue snapshot written beforehand stands, but no
// pull snapshot and no manifest appear.
func TestPullFailureIsAllOrNothing(t *testing.T) {
	skipUnlessIntegration(t)

	seed := []testutil.SeedIssue{
		{Number: 1},
		{Number: 2, IsPullRequest: true},
		{Number: 3, IsPullRequest: true},
	}
	server := testutil.NewGitHubServer(t, seed)
	server.FailWith("/repos/test-org/test-repo/pulls/3", http.StatusInternalServerError)

	outputDir := t.TempDir()
	err := newPipeline(server, 100).Run(context.Background(), "test-org", "test-repo", outputDir)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	dir := testutil.SnapshotDir(outputDir, "test-org", "test-repo")
	testutil.AssertFileExists(t, filepath.Join(dir, fetch.IssueSnapshotFile))
	testutil.AssertFileNotExists(t, filepath.Join(dir, fetch.PullSnapshotFile))
	testutil.AssertFileNotExists(t, manifest.Path(dir))
}

// TestNetworkFailure verifies a refused connection maps to the network
// failure sentinel.
func TestNetworkFailure(t *testing.T) {
	skipUnlessIntegration(t)

	server := testutil.NewGitHubServer(t, testutil.PlainIssues(1))
	pipeline := newPipeline(server, 100)
	server.Close()

	err := pipeline.Run(context.Background(), "test-org", "test-repo", t.TempDir())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
