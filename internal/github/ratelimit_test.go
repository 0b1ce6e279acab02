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
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	archiveerrors "github.com/sirseerhq/sirseer-archive/internal/errors"
)

func responseWith(status int, headers map[string]string) *http.Response {
	resp := &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
	}
	for k, v := range headers {
		resp.Header.Set(k, v)
	}
	return resp
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		headers map[string]string
		want    bool
	}{
		{
			name:   "429 secondary limit",
			status: http.StatusTooManyRequests,
			want:   true,
		},
		{
			name:    "403 with exhausted remaining",
			status:  http.StatusForbidden,
			headers: map[string]string{"X-RateLimit-Remaining": "0"},
			want:    true,
		},
		{
			name:    "403 with remaining budget is not a rate limit",
			status:  http.StatusForbidden,
			headers: map[string]string{"X-RateLimit-Remaining": "42"},
			want:    false,
		},
		{
			name:   "plain 403 is not a rate limit",
			status: http.StatusForbidden,
			want:   false,
		},
		{
			name:   "200 OK",
			status: http.StatusOK,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isRateLimited(responseWith(tt.status, tt.headers))
			if got != tt.want {
				t.Errorf("isRateLimited = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRateLimitReset(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		headers map[string]string
		want    time.Time
	}{
		{
			name:    "from X-RateLimit-Reset epoch",
			headers: map[string]string{"X-RateLimit-Reset": fmt.Sprint(now.Add(90 * time.Second).Unix())},
			want:    now.Add(90 * time.Second),
		},
		{
			name:    "from Retry-After seconds",
			headers: map[string]string{"Retry-After": "30"},
			want:    now.Add(30 * time.Second),
		},
		{
			name: "reset header wins over retry-after",
			headers: map[string]string{
				"X-RateLimit-Reset": fmt.Sprint(now.Add(time.Minute).Unix()),
				"Retry-After":       "5",
			},
			want: now.Add(time.Minute),
		},
		{
			name:    "no headers falls back to fixed backoff",
			headers: nil,
			want:    now.Add(defaultRateLimitBackoff),
		},
		{
			name:    "garbage reset header falls back",
			headers: map[string]string{"X-RateLimit-Reset": "soon"},
			want:    now.Add(defaultRateLimitBackoff),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rateLimitReset(responseWith(http.StatusForbidden, tt.headers), now)
			if !got.Equal(tt.want) {
				t.Errorf("rateLimitReset = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRateLimitErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("fetching page: %w", &RateLimitError{Reset: time.Now()})

	if !errors.Is(err, archiveerrors.ErrRateLimit) {
		t.Error("wrapped RateLimitError should match ErrRateLimit")
	}

	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Error("errors.As should find RateLimitError in the chain")
	}
}
