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

	"github.com/gitpulsehq/gitpulse/internal/github"
	"github.com/gitpulsehq/gitpulse/internal/metadata"
	"github.com/gitpulsehq/gitpulse/internal/output"
)

// Record kinds emitted by the export command.
const (
	kindRepositoryLanguages = "repository_languages"
	kindContributionDay     = "contribution_day"
)

// languageRecord is the NDJSON envelope for one repository's languages.
type languageRecord struct {
	Kind  string `json:"kind"`
	Login string `json:"login"`
	github.RepositoryLanguages
}

func (r languageRecord) RecordKind() string { return r.Kind }

// dayRecord is the NDJSON envelope for one contribution day.
type dayRecord struct {
	Kind  string    `json:"kind"`
	Login string    `json:"login"`
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

func (r dayRecord) RecordKind() string { return r.Kind }

// newExportCommand builds the export subcommand.
func newExportCommand() *cobra.Command {
	var (
		token      string
		configPath string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "export <login>",
		Short: "Export raw profile records as NDJSON",
		Long: `Fetch a GitHub user's public activity and stream the raw records as
NDJSON: one record per owned repository (with language byte sizes) and one
record per contribution day of the current year.

Authentication is required via GitHub token:
  - Use --token flag to provide token directly
  - Or set GITHUB_TOKEN environment variable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
			defer cancel()

			return runExport(ctx, args[0], token, configPath, outputFile)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "GitHub personal access token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: .gitpulse.yaml, ~/.gitpulse/config.yaml)")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")

	return cmd
}

// runExport executes the export command
func runExport(ctx context.Context, loginArg, tokenFlag, configPath, outputFile string) error {
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

	writer, err := newExportWriter(outputFile)
	if err != nil {
		return err
	}
	defer writer.Close()

	client := buildClient(token, cfg)
	tracker := metadata.New()

	recordCount, err := exportRecords(ctx, client, login, cfg.GetPageSize(login), writer, tracker)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Exported %d records for %s\n", recordCount, login)

	return nil
}

// newExportWriter selects stdout or a file-backed writer for export output.
func newExportWriter(outputFile string) (output.RecordWriter, error) {
	if outputFile == "" {
		return output.NewWriter(os.Stdout), nil
	}
	writer, err := output.NewFileWriter(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return writer, nil
}

// exportRecords streams one repository_languages record per owned
// repository followed by one contribution_day record per day of the
// current year. Returns the number of records written.
func exportRecords(ctx context.Context, client github.Client, login string, pageSize int, writer output.RecordWriter, tracker *metadata.Tracker) (int, error) {
	repos, err := fetchAllLanguages(ctx, client, login, pageSize, tracker)
	if err != nil {
		return 0, err
	}

	recordCount := 0
	for _, repo := range repos {
		record := languageRecord{
			Kind:                kindRepositoryLanguages,
			Login:               login,
			RepositoryLanguages: repo,
		}
		if err := writer.Write(record); err != nil {
			return recordCount, fmt.Errorf("failed to write repository record: %w", err)
		}
		recordCount++
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)

	calendar, err := client.FetchContributionCalendar(ctx, login, from, now)
	if err != nil {
		return recordCount, err
	}
	tracker.IncrementAPICall()

	for _, day := range calendar.Days {
		record := dayRecord{
			Kind:  kindContributionDay,
			Login: login,
			Date:  day.Date,
			Count: day.Count,
		}
		if err := writer.Write(record); err != nil {
			return recordCount, fmt.Errorf("failed to write contribution record: %w", err)
		}
		recordCount++
	}

	return recordCount, nil
}
