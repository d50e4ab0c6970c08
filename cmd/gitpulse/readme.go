// Copyright 2025 GitPulse HQ
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
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitpulsehq/gitpulse/internal/metadata"
	"github.com/gitpulsehq/gitpulse/internal/render"
	"github.com/gitpulsehq/gitpulse/internal/snapshot"
)

// newReadmeCommand builds the readme subcommand.
func newReadmeCommand() *cobra.Command {
	var (
		token      string
		configPath string
		outputFile string
		top        int
		year       int
	)

	cmd := &cobra.Command{
		Use:   "readme <login>",
		Short: "Generate a profile README with current statistics",
		Long: `Fetch a GitHub user's public activity and regenerate a profile README
containing the statistics report in markdown form.

A snapshot of the headline numbers is stored after each run; when a previous
snapshot exists the README includes a "Since Last Update" section with deltas.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
			defer cancel()

			return runReadme(ctx, args[0], token, configPath, outputFile, top, year)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: .gitpulse.yaml, ~/.gitpulse/config.yaml)")
	cmd.Flags().StringVar(&outputFile, "output", "README.md", "README file path")
	cmd.Flags().IntVar(&top, "top", 0, "Number of top languages to show (default from config: 5)")
	cmd.Flags().IntVar(&year, "year", 0, "First year of the yearly trend (default: account creation year)")

	return cmd
}

// runReadme executes the readme command
func runReadme(ctx context.Context, loginArg, tokenFlag, configPath, outputFile string, top, year int) error {
	login, err := parseLogin(loginArg)
	if err != nil {
		return err
	}

	cfg, err := loadRunConfig(configPath, login)
	if err != nil {
		return err
	}

	token := getToken(tokenFlag, cfg.GitHub.TokenEnv)
	if token == "" {
		return fmt.Errorf("GitHub token not found. Set %s or use --token flag", cfg.GitHub.TokenEnv)
	}

	if top <= 0 {
		top = cfg.GetTopLanguages(login)
	}

	client := buildClient(token, cfg)
	tracker := metadata.New()

	data, err := collectProfile(ctx, client, login, cfg.GetPageSize(login), year, tracker)
	if err != nil {
		return err
	}

	reportData := buildReportData(data, top, tracker)

	// A missing or corrupt snapshot just means no delta section.
	snapshotFile := snapshot.Path(cfg.Defaults.SnapshotDir, login)
	if prev, loadErr := snapshot.Load(snapshotFile); loadErr == nil {
		reportData.Previous = &render.Headline{
			TotalContributions: prev.TotalContributions,
			LongestStreak:      prev.LongestStreak,
			Followers:          prev.Followers,
		}
	}

	markdown := render.Markdown(reportData, time.Now())

	if err := writeFileAtomic(outputFile, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("failed to write README: %w", err)
	}
	fmt.Fprintf(os.Stderr, "README written to %s\n", outputFile)

	if err := saveSnapshot(snapshotFile, login, reportData); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save snapshot: %v\n", err)
	}

	saveRunMetadata(cfg.Defaults.SnapshotDir, login, cfg.GetPageSize(login), data, tracker)

	return nil
}

// saveSnapshot stores the headline numbers of this run for the next one.
func saveSnapshot(file, login string, data render.ReportData) error {
	snap := &snapshot.Snapshot{
		Login:              login,
		TakenAt:            time.Now().UTC(),
		TotalContributions: data.Streaks.Total,
		CurrentStreak:      data.Streaks.Current,
		LongestStreak:      data.Streaks.Longest,
		AveragePerDay:      data.Streaks.AveragePerDay,
	}
	if len(data.Languages) > 0 {
		snap.TopLanguage = data.Languages[0].Name
	}
	if data.User != nil {
		snap.Followers = data.User.Followers
	}
	return snapshot.Save(snap, file)
}
