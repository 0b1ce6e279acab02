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

import "testing"

func TestPartitionIssues(t *testing.T) {
	tests := []struct {
		name      string
		issues    []Issue
		wantPlain []int64
		wantPulls []int64
	}{
		{
			name:      "empty input",
			issues:    nil,
			wantPlain: nil,
			wantPulls: nil,
		},
		{
			name: "all plain",
			issues: []Issue{
				TestIssue(1, false),
				TestIssue(2, false),
			},
			wantPlain: []int64{1, 2},
			wantPulls: nil,
		},
		{
			name: "all pull requests",
			issues: []Issue{
				TestIssue(3, true),
				TestIssue(4, true),
			},
			wantPlain: nil,
			wantPulls: []int64{3, 4},
		},
		{
			name: "mixed preserves order",
			issues: []Issue{
				TestIssue(1, false),
				TestIssue(2, true),
				TestIssue(3, false),
				TestIssue(4, true),
				TestIssue(5, false),
			},
			wantPlain: []int64{1, 3, 5},
			wantPulls: []int64{2, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain, pulls, err := PartitionIssues(tt.issues)
			if err != nil {
				t.Fatalf("PartitionIssues failed: %v", err)
			}

			if len(plain) != len(tt.wantPlain) {
				t.Fatalf("got %d plain issues, want %d", len(plain), len(tt.wantPlain))
			}
			for i, issue := range plain {
				if issue.Number != tt.wantPlain[i] {
					t.Errorf("plain[%d].Number = %d, want %d", i, issue.Number, tt.wantPlain[i])
				}
			}

			if len(pulls) != len(tt.wantPulls) {
				t.Fatalf("got %d pull numbers, want %d", len(pulls), len(tt.wantPulls))
			}
			for i, n := range pulls {
				if n != tt.wantPulls[i] {
					t.Errorf("pulls[%d] = %d, want %d", i, n, tt.wantPulls[i])
				}
			}
		})
	}
}

func TestPartitionIssuesDuplicate(t *testing.T) {
	issues := []Issue{
		TestIssue(1, false),
		TestIssue(2, true),
		TestIssue(1, false),
	}

	_, _, err := PartitionIssues(issues)
	if err == nil {
		t.Fatal("expected error for duplicate issue number, got nil")
	}
}
