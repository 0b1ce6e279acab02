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
	"errors"
	"fmt"
	"io"
	"time"
)

// RetryPolicy configures how rate-limit rejections are retried. Only
// rate-limit rejections are ever retried; every other error is terminal for
// the call.
type RetryPolicy struct {
	// MaxAttempts is the maximum number of attempts per call, including the
	// first. Zero means unbounded: keep retrying until the server stops
	// rate-limiting. Unbounded retry is the default and can wait
	// indefinitely against a persistently limited endpoint; bound it via
	// configuration when that risk is unacceptable.
	MaxAttempts int

	// MinWait is a floor on the wait before re-attempting, applied when the
	// server-specified reset time is already in the past (clock skew).
	MinWait time.Duration
}

// DefaultRetryPolicy returns the default policy: retry forever, with a
// one-second floor on waits.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: 0,
		MinWait:     time.Second,
	}
}

// RetryClient wraps a GitHub client and transparently retries rate-limited
// calls. Each call alternates between attempting and waiting: a rate-limit
// rejection parks the caller until the server-specified reset time, then
// the identical call is re-issued. The wait is cancelled if the context is.
type RetryClient struct {
	client   Client
	policy   *RetryPolicy
	progress io.Writer
}

// NewRetryClient creates a RetryClient with the given policy. A nil policy
// selects DefaultRetryPolicy. Waits are reported to progress when non-nil.
func NewRetryClient(client Client, policy *RetryPolicy, progress io.Writer) Client {
	if policy == nil {
		policy = DefaultRetryPolicy()
	}
	return &RetryClient{
		client:   client,
		policy:   policy,
		progress: progress,
	}
}

// ListIssues implements the Client interface with rate-limit retry.
func (r *RetryClient) ListIssues(ctx context.Context, owner, repo string, opts ListOptions, page int) (*IssuePage, error) {
	var result *IssuePage
	err := r.do(ctx, func() error {
		var callErr error
		result, callErr = r.client.ListIssues(ctx, owner, repo, opts, page)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetPullRequest implements the Client interface with rate-limit retry.
func (r *RetryClient) GetPullRequest(ctx context.Context, owner, repo string, number int64) (*PullRequest, error) {
	var result *PullRequest
	err := r.do(ctx, func() error {
		var callErr error
		result, callErr = r.client.GetPullRequest(ctx, owner, repo, number)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetRepositoryInfo implements the Client interface with rate-limit retry.
func (r *RetryClient) GetRepositoryInfo(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	var result *RepositoryInfo
	err := r.do(ctx, func() error {
		var callErr error
		result, callErr = r.client.GetRepositoryInfo(ctx, owner, repo)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// do runs one call through the attempt/wait loop.
func (r *RetryClient) do(ctx context.Context, call func() error) error {
	for attempt := 1; ; attempt++ {
		err := call()
		if err == nil {
			return nil
		}

		var rle *RateLimitError
		if !errors.As(err, &rle) {
			return err
		}

		if r.policy.MaxAttempts > 0 && attempt >= r.policy.MaxAttempts {
			return fmt.Errorf("rate limited after %d attempts: %w", attempt, err)
		}

		if waitErr := r.waitForReset(ctx, rle.Reset); waitErr != nil {
			return waitErr
		}
	}
}

// waitForReset parks until the reset instant, honoring context cancellation.
func (r *RetryClient) waitForReset(ctx context.Context, reset time.Time) error {
	wait := time.Until(reset)
	if wait < r.policy.MinWait {
		wait = r.policy.MinWait
	}

	if r.progress != nil {
		fmt.Fprintf(r.progress, "Rate limit hit. Waiting %s until reset...\n", wait.Round(time.Second))
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
