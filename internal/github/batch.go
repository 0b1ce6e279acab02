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

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Default throttle configuration for pull request detail fetches. GitHub
// imposes both a burst concurrency limit and a sustained rate limit;
// satisfying only one still gets requests rejected.
const (
	// DefaultAdmissionsPerWindow is how many new lookups may start per window.
	DefaultAdmissionsPerWindow = 20

	// DefaultAdmissionWindow is the throttle window.
	DefaultAdmissionWindow = time.Second

	// DefaultMaxInFlight caps concurrently outstanding lookups.
	DefaultMaxInFlight = 20
)

// PullFetcher fetches pull request records for a set of issue numbers
// concurrently, under a two-layer limiter: a shared admission throttle that
// paces how many new lookups start per window, and a ceiling on in-flight
// lookups. The limiter is the one piece of shared mutable state; every
// dispatch goes through the same arbiter.
type PullFetcher struct {
	client      Client
	limiter     *rate.Limiter
	maxInFlight int
}

// NewPullFetcher creates a fetcher admitting at most admissions new lookups
// per window, with at most maxInFlight outstanding. Non-positive arguments
// select the defaults.
func NewPullFetcher(client Client, admissions int, window time.Duration, maxInFlight int) *PullFetcher {
	if admissions <= 0 {
		admissions = DefaultAdmissionsPerWindow
	}
	if window <= 0 {
		window = DefaultAdmissionWindow
	}
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}

	// Burst of 1 paces admissions evenly across the window, which keeps any
	// sliding window at or under the configured admission count.
	return &PullFetcher{
		client:      client,
		limiter:     rate.NewLimiter(rate.Every(window / time.Duration(admissions)), 1),
		maxInFlight: maxInFlight,
	}
}

// FetchAll fetches one pull request per number and returns them in
// completion order. Semantics are all or nothing: the first fatal error
// cancels every in-flight and not-yet-admitted lookup and the partial
// results are discarded. Rate-limit recovery happens inside the wrapped
// client, not here. onFetched, when non-nil, is called after each
// successful lookup with the pull number.
func (f *PullFetcher) FetchAll(ctx context.Context, owner, repo string, numbers []int64, onFetched func(int64)) ([]PullRequest, error) {
	if len(numbers) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.maxInFlight)

	var (
		mu    sync.Mutex
		pulls = make([]PullRequest, 0, len(numbers))
	)

	for _, number := range numbers {
		number := number
		g.Go(func() error {
			// Admission throttle: returns early if the group was cancelled.
			if err := f.limiter.Wait(ctx); err != nil {
				return err
			}

			pull, err := f.client.GetPullRequest(ctx, owner, repo, number)
			if err != nil {
				return fmt.Errorf("failed to fetch pull request %d: %w", number, err)
			}

			mu.Lock()
			pulls = append(pulls, *pull)
			mu.Unlock()

			if onFetched != nil {
				onFetched(number)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pulls, nil
}
