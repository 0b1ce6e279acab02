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
	"fmt"
	"net/http"
	"strconv"
	"time"

	archiveerrors "github.com/sirseerhq/sirseer-archive/internal/errors"
)

// RateLimitError is returned when GitHub rejects a request because the rate
// limit is exhausted. It carries the single fact the retry machinery needs:
// the absolute time at which the caller may try again.
type RateLimitError struct {
	// Reset is the server-specified time at which the rate limit window
	// resets and the request may be re-issued.
	Reset time.Time
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github rate limit exceeded, resets at %s", e.Reset.Format(time.RFC3339))
}

// Is reports whether this error matches the ErrRateLimit sentinel, so
// errors.Is works across the wrapping chain.
func (e *RateLimitError) Is(target error) bool {
	return target == archiveerrors.ErrRateLimit
}

// IsRateLimitError marks this error for giterror's chain inspector.
func (e *RateLimitError) IsRateLimitError() bool { return true }

// defaultRateLimitBackoff is used when a rate-limited response carries no
// usable reset information. GitHub's secondary limits suggest waiting at
// least a minute.
const defaultRateLimitBackoff = time.Minute

// isRateLimited reports whether an HTTP response is a rate-limit rejection.
// GitHub signals primary limits with 403 plus an exhausted remaining count,
// and secondary limits with 429.
func isRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden &&
		resp.Header.Get("X-RateLimit-Remaining") == "0"
}

// rateLimitReset extracts the reset time from a rate-limited response.
// X-RateLimit-Reset is a Unix timestamp; Retry-After is a delay in seconds.
// Falls back to a fixed backoff when neither header is present.
func rateLimitReset(resp *http.Response, now time.Time) time.Time {
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(epoch, 0)
		}
	}
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			return now.Add(time.Duration(secs) * time.Second)
		}
	}
	return now.Add(defaultRateLimitBackoff)
}
