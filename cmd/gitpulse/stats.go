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
	"github.com/gitpulsehq/gitpulse/internal/stats"
	"github.com/gitpulsehq/gitpulse/pkg/version"
)

// runTimeout bounds a whole run; accounts with many repositories need
// several paginated queries plus one calendar query per year.
const runTimeout = 5 * time.Minute

// newStatsCommand builds the stats subcommand.
func newStatsCommand() *cobra.Command {
	var (
		token      string
		configPath string
		outputFile string
		top        int
		year       int
	)

	cmd := &cobra.Command{
		Use:   "stats <login>",
		Short: "Print profile statistics for a GitHub user",
		Long: `Fetch a GitHub user's public activity and print a statistics report:
top languages by size, contribution streaks, weekday productivity, and the
yearly contribution trend.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
			defer cancel()

			return runStats(ctx, args[0], token, configPath, outputFile, top, year)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: .gitpulse.yaml, ~/.gitpulse/config.yaml)")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&top, "top", 0, "Number of top languages to show (default from config: 5)")
	cmd.Flags().IntVar(&year, "year", 0, "First year of the yearly trend (default: account creation year)")

	return cmd
}

// runStats executes the stats command
func runStats(ctx context.Context, loginArg, tokenFlag, configPath, outputFile string, top, year int) error {
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

	report := render.Report(buildReportData(data, top, tracker))

	if outputFile == "" {
		fmt.Fprint(os.Stdout, report)
	} else {
		if err := writeFileAtomic(outputFile, []byte(report), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", outputFile)
	}

	saveRunMetadata(cfg.Defaults.SnapshotDir, login, cfg.GetPageSize(login), data, tracker)

	return nil
}

// buildReportData computes all statistics from collected profile data.
func buildReportData(data *profileData, top int, tracker *metadata.Tracker) render.ReportData {
	languages := stats.AggregateLanguages(data.repos, top)
	tracker.RecordLanguages(len(languages))

	streaks := stats.CalculateStreaks(data.days, data.to)

	return render.ReportData{
		User:         data.user,
		Languages:    languages,
		Productivity: stats.AnalyzeWeekdays(data.days),
		Trend:        stats.YearlyTrend(data.totals),
		Streaks: render.StreakSummary{
			Current:       streaks.Current,
			Longest:       streaks.Longest,
			AveragePerDay: stats.AveragePerDay(data.yearTotal, data.from, data.to),
			Total:         data.yearTotal,
		},
	}
}

// saveRunMetadata persists run metadata, linking the previous run when one
// exists. Failures are reported but never fail the run.
func saveRunMetadata(dir, login string, pageSize int, data *profileData, tracker *metadata.Tracker) {
	var previous *metadata.RunRef
	if prev, err := metadata.LoadLatestMetadata(dir, login); err == nil && prev != nil {
		previous = &metadata.RunRef{
			RunID:       prev.RunID,
			CompletedAt: prev.Results.CompletedAt,
		}
	}

	md := tracker.Generate(version.Version, metadata.RunParams{
		Login:    login,
		PageSize: pageSize,
		From:     data.from,
		To:       data.to,
	}, previous)

	if err := metadata.SaveMetadata(md, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save run metadata: %v\n", err)
	}
}

// writeFileAtomic writes data to path via a temp file and rename so a
// crashed run never leaves a half-written file behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
