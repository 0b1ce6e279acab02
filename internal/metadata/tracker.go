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

// Package metadata tracks statistics during a snapshot run and persists
// them as a JSON record beside the snapshot files. The record links each
// pair of snapshots to the parameters and API activity that produced them.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Tracker collects statistics during a snapshot run. Create one at the
// start of a run and record activity as it happens; all methods are safe
// for concurrent use, since pull fetches report from multiple goroutines.
type Tracker struct {
	mu           sync.Mutex
	startTime    time.Time
	apiCallCount int
	totalIssues  int
	plainIssues  int
	pullRequests int
	firstIssue   int64
	lastIssue    int64
}

// New creates a tracker initialized with the current time.
func New() *Tracker {
	return &Tracker{startTime: time.Now()}
}

// RecordAPICall records that one API request was made.
func (t *Tracker) RecordAPICall() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.apiCallCount++
}

// RecordIssue updates the running statistics with one listed issue.
func (t *Tracker) RecordIssue(number int64, isPullRequest bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.totalIssues++
	if isPullRequest {
		t.pullRequests++
	} else {
		t.plainIssues++
	}

	if t.firstIssue == 0 || number < t.firstIssue {
		t.firstIssue = number
	}
	if number > t.lastIssue {
		t.lastIssue = number
	}
}

// Generate produces the metadata record for a completed run.
func (t *Tracker) Generate(archiveVersion string, params RunParams) *RunMetadata {
	t.mu.Lock()
	defer t.mu.Unlock()

	completedAt := time.Now()

	return &RunMetadata{
		ArchiveVersion: archiveVersion,
		FetchID:        fmt.Sprintf("snapshot-%d", t.startTime.Unix()),
		Parameters:     params,
		Results: RunResults{
			TotalIssues:  t.totalIssues,
			PlainIssues:  t.plainIssues,
			PullRequests: t.pullRequests,
			FirstIssue:   t.firstIssue,
			LastIssue:    t.lastIssue,
			APICallCount: t.apiCallCount,
			Duration:     completedAt.Sub(t.startTime).Round(time.Millisecond).String(),
			StartedAt:    t.startTime,
			CompletedAt:  completedAt,
		},
	}
}

// Save writes a metadata record as indented JSON to the given path.
func Save(meta *RunMetadata, path string) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run metadata: %w", err)
	}
	return nil
}
