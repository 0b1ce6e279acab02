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

// Config represents the complete configuration for sirseer-archive.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub    GitHubConfig    `yaml:"github"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// GitHubConfig contains GitHub-specific settings including API endpoints
// and authentication configuration. This allows easy configuration for
// GitHub Enterprise deployments by specifying custom endpoints.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to every snapshot run
// unless overridden by command-line flags.
type DefaultsConfig struct {
	PageSize  int    `yaml:"page_size"`
	OutputDir string `yaml:"output_dir"`
}

// RateLimitConfig controls the outbound request throttle and the retry
// behavior on rate-limit rejections. AdmissionsPerSecond new detail lookups
// may start per one-second window, with at most MaxInFlight outstanding.
// MaxAttempts bounds retries per call; zero retries forever, which matches
// the server's own signal but can wait indefinitely against a persistently
// limited endpoint.
type RateLimitConfig struct {
	AdmissionsPerSecond int `yaml:"admissions_per_second"`
	MaxInFlight         int `yaml:"max_in_flight"`
	MaxAttempts         int `yaml:"max_attempts"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com",
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize:  100,
			OutputDir: "data",
		},
		RateLimit: RateLimitConfig{
			AdmissionsPerSecond: 20,
			MaxInFlight:         20,
			MaxAttempts:         0,
		},
	}
}
