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

// Package config provides configuration management for sirseer-archive with
// support for multiple configuration sources and a well-defined precedence
// order:
//
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. Custom GitHub endpoints
// are supported for GitHub Enterprise deployments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .sirseer-archive.yaml (current directory)
//   - .sirseer-archive.yml (current directory)
//   - ~/.sirseer/archive.yaml
//   - ~/.sirseer/archive.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Returns an error if the specified config file cannot
// be loaded, but succeeds with defaults if no config file is found in
// standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".sirseer-archive.yaml",
			".sirseer-archive.yml",
			filepath.Join(os.Getenv("HOME"), ".sirseer", "archive.yaml"),
			filepath.Join(os.Getenv("HOME"), ".sirseer", "archive.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.Defaults.OutputDir = expandPath(cfg.Defaults.OutputDir)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	// GitHub endpoints
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}

	// Defaults
	if pageSize := os.Getenv("SIRSEER_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
	if outputDir := os.Getenv("SIRSEER_OUTPUT_DIR"); outputDir != "" {
		cfg.Defaults.OutputDir = outputDir
	}

	// Rate limit settings
	if admissions := os.Getenv("SIRSEER_RATE_ADMISSIONS"); admissions != "" {
		if n, err := parsePositiveInt(admissions); err == nil {
			cfg.RateLimit.AdmissionsPerSecond = n
		}
	}
	if attempts := os.Getenv("SIRSEER_MAX_ATTEMPTS"); attempts != "" {
		if n, err := parsePositiveInt(attempts); err == nil {
			cfg.RateLimit.MaxAttempts = n
		}
	}
}

// Validate checks if the configuration contains valid values. It ensures
// the page size is within GitHub's limits, endpoints are not empty, and
// the throttle settings are coherent. This should be called after loading
// configuration and before starting a run.
func (c *Config) Validate() error {
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("github api endpoint must not be empty")
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("github graphql endpoint must not be empty")
	}
	if c.Defaults.PageSize < 1 || c.Defaults.PageSize > 100 {
		return fmt.Errorf("page size must be between 1 and 100, got %d", c.Defaults.PageSize)
	}
	if c.RateLimit.AdmissionsPerSecond < 1 {
		return fmt.Errorf("admissions per second must be positive, got %d", c.RateLimit.AdmissionsPerSecond)
	}
	if c.RateLimit.MaxInFlight < 1 {
		return fmt.Errorf("max in-flight must be positive, got %d", c.RateLimit.MaxInFlight)
	}
	if c.RateLimit.MaxAttempts < 0 {
		return fmt.Errorf("max attempts must not be negative, got %d", c.RateLimit.MaxAttempts)
	}
	return nil
}

// ResolveToken returns the GitHub token from the flag value or, when empty,
// from the configured token environment variable.
func (c *Config) ResolveToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	return os.Getenv(c.GitHub.TokenEnv)
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}
