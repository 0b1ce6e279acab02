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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.APIEndpoint != "https://api.github.com" {
		t.Errorf("APIEndpoint = %q", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.GraphQLEndpoint != "https://api.github.com/graphql" {
		t.Errorf("GraphQLEndpoint = %q", cfg.GitHub.GraphQLEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GITHUB_TOKEN" {
		t.Errorf("TokenEnv = %q", cfg.GitHub.TokenEnv)
	}
	if cfg.Defaults.PageSize != 100 {
		t.Errorf("PageSize = %d, want 100", cfg.Defaults.PageSize)
	}
	if cfg.RateLimit.AdmissionsPerSecond != 20 || cfg.RateLimit.MaxInFlight != 20 {
		t.Errorf("throttle = (%d, %d), want (20, 20)",
			cfg.RateLimit.AdmissionsPerSecond, cfg.RateLimit.MaxInFlight)
	}
	if cfg.RateLimit.MaxAttempts != 0 {
		t.Errorf("MaxAttempts = %d, want 0 (retry forever)", cfg.RateLimit.MaxAttempts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.yaml")
	content := `
github:
  api_endpoint: https://github.example.com/api/v3
  graphql_endpoint: https://github.example.com/api/graphql
  token_env: GHE_TOKEN
defaults:
  page_size: 50
  output_dir: /var/lib/archive
rate_limit:
  admissions_per_second: 10
  max_in_flight: 5
  max_attempts: 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://github.example.com/api/v3" {
		t.Errorf("APIEndpoint = %q", cfg.GitHub.APIEndpoint)
	}
	if cfg.GitHub.TokenEnv != "GHE_TOKEN" {
		t.Errorf("TokenEnv = %q", cfg.GitHub.TokenEnv)
	}
	if cfg.Defaults.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", cfg.Defaults.PageSize)
	}
	if cfg.RateLimit.AdmissionsPerSecond != 10 {
		t.Errorf("AdmissionsPerSecond = %d, want 10", cfg.RateLimit.AdmissionsPerSecond)
	}
	if cfg.RateLimit.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.RateLimit.MaxAttempts)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.yaml")
	content := `
defaults:
  page_size: 25
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Defaults.PageSize != 25 {
		t.Errorf("PageSize = %d, want 25", cfg.Defaults.PageSize)
	}
	if cfg.GitHub.APIEndpoint != "https://api.github.com" {
		t.Errorf("APIEndpoint lost its default: %q", cfg.GitHub.APIEndpoint)
	}
	if cfg.RateLimit.AdmissionsPerSecond != 20 {
		t.Errorf("AdmissionsPerSecond lost its default: %d", cfg.RateLimit.AdmissionsPerSecond)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file, got nil")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("github: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_API_ENDPOINT", "https://ghe.internal/api/v3")
	t.Setenv("SIRSEER_PAGE_SIZE", "40")
	t.Setenv("SIRSEER_RATE_ADMISSIONS", "5")
	t.Setenv("SIRSEER_MAX_ATTEMPTS", "7")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIEndpoint != "https://ghe.internal/api/v3" {
		t.Errorf("APIEndpoint = %q", cfg.GitHub.APIEndpoint)
	}
	if cfg.Defaults.PageSize != 40 {
		t.Errorf("PageSize = %d, want 40", cfg.Defaults.PageSize)
	}
	if cfg.RateLimit.AdmissionsPerSecond != 5 {
		t.Errorf("AdmissionsPerSecond = %d, want 5", cfg.RateLimit.AdmissionsPerSecond)
	}
	if cfg.RateLimit.MaxAttempts != 7 {
		t.Errorf("MaxAttempts = %d, want 7", cfg.RateLimit.MaxAttempts)
	}
}

func TestEnvOverridesIgnoreInvalidValues(t *testing.T) {
	t.Setenv("SIRSEER_PAGE_SIZE", "not-a-number")
	t.Setenv("SIRSEER_RATE_ADMISSIONS", "-3")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Defaults.PageSize != 100 {
		t.Errorf("PageSize = %d, want default 100", cfg.Defaults.PageSize)
	}
	if cfg.RateLimit.AdmissionsPerSecond != 20 {
		t.Errorf("AdmissionsPerSecond = %d, want default 20", cfg.RateLimit.AdmissionsPerSecond)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty api endpoint",
			mutate:  func(c *Config) { c.GitHub.APIEndpoint = "" },
			wantErr: true,
		},
		{
			name:    "empty graphql endpoint",
			mutate:  func(c *Config) { c.GitHub.GraphQLEndpoint = "" },
			wantErr: true,
		},
		{
			name:    "page size zero",
			mutate:  func(c *Config) { c.Defaults.PageSize = 0 },
			wantErr: true,
		},
		{
			name:    "page size over github max",
			mutate:  func(c *Config) { c.Defaults.PageSize = 101 },
			wantErr: true,
		},
		{
			name:    "zero admissions",
			mutate:  func(c *Config) { c.RateLimit.AdmissionsPerSecond = 0 },
			wantErr: true,
		},
		{
			name:    "zero in-flight cap",
			mutate:  func(c *Config) { c.RateLimit.MaxInFlight = 0 },
			wantErr: true,
		},
		{
			name:    "negative max attempts",
			mutate:  func(c *Config) { c.RateLimit.MaxAttempts = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestResolveToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GitHub.TokenEnv = "ARCHIVE_TEST_TOKEN"

	t.Setenv("ARCHIVE_TEST_TOKEN", "env-token")

	if got := cfg.ResolveToken("flag-token"); got != "flag-token" {
		t.Errorf("flag token should win, got %q", got)
	}
	if got := cfg.ResolveToken(""); got != "env-token" {
		t.Errorf("expected env fallback, got %q", got)
	}
}
