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

// Package fetch orchestrates a snapshot run: list every issue, partition
// plain issues from pull-request-linked ones, persist the plain collection,
// fetch the full pull request record for each linked issue under the
// admission throttle, and persist the detail collection. Each step gates
// the next; any failure aborts the run and propagates to the caller.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirseerhq/sirseer-archive/internal/github"
	"github.com/sirseerhq/sirseer-archive/internal/manifest"
	"github.com/sirseerhq/sirseer-archive/internal/metadata"
	"github.com/sirseerhq/sirseer-archive/internal/output"
	"github.com/sirseerhq/sirseer-archive/pkg/version"
)

// Snapshot filenames within the per-repository output directory.
const (
	IssueSnapshotFile = "issues.msgpack"
	PullSnapshotFile  = "pulls.msgpack"
	MetadataFile      = "metadata.json"
)

// Snapshotter runs the snapshot pipeline against one repository. The
// client should already be retry-wrapped so rate limits recover
// transparently at every stage.
type Snapshotter struct {
	Client   github.Client
	Fetcher  *github.PullFetcher
	Writer   output.SnapshotWriter
	Progress io.Writer

	// PageSize is the listing page size; zero selects the default.
	PageSize int
}

// Run executes one complete snapshot run for owner/repo, writing both
// snapshots plus run metadata and a manifest under
// outputDir/owner/repo. Returns the error of the first failing step.
func (s *Snapshotter) Run(ctx context.Context, owner, repo, outputDir string) error {
	tracker := metadata.New()

	info, err := s.Client.GetRepositoryInfo(ctx, owner, repo)
	if err != nil {
		return fmt.Errorf("failed to get repository info: %w", err)
	}
	tracker.RecordAPICall()
	s.progressf("Fetching %d issues from %s/%s...\n", info.TotalIssues, owner, repo)

	opts := github.DefaultListOptions()
	if s.PageSize > 0 {
		opts.PerPage = s.PageSize
	}

	issues, err := github.ListAllIssues(ctx, s.Client, owner, repo, opts, func(fetched int) {
		tracker.RecordAPICall()
		s.progressf("Issues fetched: %d\n", fetched)
	})
	if err != nil {
		return err
	}
	s.progressf("Issues: %d\n", len(issues))

	plain, pullNumbers, err := github.PartitionIssues(issues)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		tracker.RecordIssue(issue.Number, issue.IsPullRequest)
	}
	s.progressf("Plain issues: %d, pull requests: %d\n", len(plain), len(pullNumbers))

	snapshotDir := filepath.Join(outputDir, owner, repo)
	if err := os.MkdirAll(snapshotDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", snapshotDir, err)
	}

	if err := s.Writer.WriteSnapshot(filepath.Join(snapshotDir, IssueSnapshotFile), plain); err != nil {
		return err
	}

	pulls, err := s.Fetcher.FetchAll(ctx, owner, repo, pullNumbers, func(number int64) {
		tracker.RecordAPICall()
		s.progressf("Pull: %d\n", number)
	})
	if err != nil {
		return err
	}

	if err := s.Writer.WriteSnapshot(filepath.Join(snapshotDir, PullSnapshotFile), pulls); err != nil {
		return err
	}

	meta := tracker.Generate(version.Version, metadata.RunParams{
		Organization: owner,
		Repository:   repo,
		PageSize:     opts.PerPage,
	})
	if err := metadata.Save(meta, filepath.Join(snapshotDir, MetadataFile)); err != nil {
		return err
	}

	m := &manifest.Manifest{
		Repository:    owner + "/" + repo,
		FetchID:       meta.FetchID,
		IssueSnapshot: IssueSnapshotFile,
		PullSnapshot:  PullSnapshotFile,
		IssueCount:    len(plain),
		PullCount:     len(pulls),
		CompletedAt:   meta.Results.CompletedAt,
	}
	if err := manifest.Save(m, manifest.Path(snapshotDir)); err != nil {
		return err
	}

	s.progressf("Snapshot complete: %d issues, %d pulls\n", len(plain), len(pulls))
	return nil
}

func (s *Snapshotter) progressf(format string, args ...any) {
	if s.Progress != nil {
		fmt.Fprintf(s.Progress, format, args...)
	}
}
