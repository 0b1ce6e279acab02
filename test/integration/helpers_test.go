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
	"os"
	"testing"
	"time"

	"github.com/sirseerhq/sirseer-archive/internal/fetch"
	"github.com/sirseerhq/sirseer-archive/internal/github"
	"github.com/sirseerhq/sirseer-archive/internal/output"
	"github.com/sirseerhq/sirseer-archive/test/testutil"
)

func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}
}

// newPipeline wires the production stack against a mock server: REST
// client, retry wrapper, throttled pull fetcher, snapshotter. The throttle
// is fast so test batches complete quickly.
func newPipeline(server *testutil.GitHubServer, pageSize int) *fetch.Snapshotter {
	client := github.NewRESTClient("test-token", server.URL, server.URL+"/graphql")
	retrying := github.NewRetryClient(client, &github.RetryPolicy{
		MaxAttempts: 0,
		MinWait:     10 * time.Millisecond,
	}, nil)

	return &fetch.Snapshotter{
		Client:   retrying,
		Fetcher:  github.NewPullFetcher(retrying, 1000, time.Millisecond, 10),
		Writer:   output.NewMsgpackWriter(),
		PageSize: pageSize,
	}
}
