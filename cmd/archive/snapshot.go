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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirseerhq/sirseer-archive/internal/config"
	archiveerrors "github.com/sirseerhq/sirseer-archive/internal/errors"
	"github.com/sirseerhq/sirseer-archive/internal/fetch"
	"github.com/sirseerhq/sirseer-archive/internal/github"
	"github.com/sirseerhq/sirseer-archive/internal/output"
	"github.com/spf13/cobra"
)

// newSnapshotCommand builds the snapshot command.
func newSnapshotCommand() *cobra.Command {
	var (
		token      string
		outputDir  string
		configFile string
		pageSize   int
	)

	cmd := &cobra.Command{
		Use:   "snapshot <org>/<repo>",
		Short: "Snapshot the full issue history of a GitHub repository",
		Long: `Snapshot the full issue history of a GitHub repository.

The repository must be specified in the format: <org>/<repo>
For example: golang/go, kubernetes/kubernetes

Two snapshot files are written under <output-dir>/<org>/<repo>/:
issues.msgpack holds every plain issue, pulls.msgpack the full record of
every pull request.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), args[0], token, outputDir, configFile, pageSize)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory to write snapshots under (default from config)")
	cmd.Flags().StringVar(&configFile, "config", "", "Path to config file")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Listing page size, 1-100 (default from config)")

	return cmd
}

// runSnapshot executes the snapshot command
func runSnapshot(ctx context.Context, repoArg, tokenFlag, outputDirFlag, configFile string, pageSizeFlag int) error {
	owner, repo, err := parseRepository(repoArg)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}

	// Flags take precedence over config file and environment.
	if outputDirFlag != "" {
		cfg.Defaults.OutputDir = outputDirFlag
	}
	if pageSizeFlag > 0 {
		cfg.Defaults.PageSize = pageSizeFlag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	token := cfg.ResolveToken(tokenFlag)
	if token == "" {
		return fmt.Errorf("GitHub token not found. Set %s or use --token flag: %w",
			cfg.GitHub.TokenEnv, archiveerrors.ErrInvalidToken)
	}

	client := github.NewRESTClient(token, cfg.GitHub.APIEndpoint, cfg.GitHub.GraphQLEndpoint)

	policy := github.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.RateLimit.MaxAttempts
	retrying := github.NewRetryClient(client, policy, os.Stderr)

	snapshotter := &fetch.Snapshotter{
		Client: retrying,
		Fetcher: github.NewPullFetcher(retrying,
			cfg.RateLimit.AdmissionsPerSecond, time.Second, cfg.RateLimit.MaxInFlight),
		Writer:   output.NewMsgpackWriter(),
		Progress: os.Stderr,
		PageSize: cfg.Defaults.PageSize,
	}

	return snapshotter.Run(ctx, owner, repo, cfg.Defaults.OutputDir)
}

// parseRepository parses an org/repo string into owner and repo components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <org>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <org>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, archiveerrors.ErrInvalidToken) ||
		errors.Is(err, archiveerrors.ErrRepoNotFound) ||
		errors.Is(err, archiveerrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, archiveerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
