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
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gitpulsehq/gitpulse/internal/config"
	pulseerrors "github.com/gitpulsehq/gitpulse/internal/errors"
	"github.com/gitpulsehq/gitpulse/internal/github"
	"github.com/gitpulsehq/gitpulse/internal/metadata"
	"github.com/gitpulsehq/gitpulse/internal/stats"
)

// profileData holds everything one run fetches from GitHub before the
// stats packages take over.
type profileData struct {
	user *github.UserInfo

	// repos are all owned repositories with their language sizes.
	repos []github.RepositoryLanguages

	// days are the contribution days of the report year (January 1 through
	// today); yearTotal is GitHub's total for that range.
	days      []github.ContributionDay
	yearTotal int
	from, to  time.Time

	// totals are per-year contribution totals for the trend.
	totals []stats.YearTotal
}

// collectProfile fetches a user's profile, repository languages, and
// contribution calendars. trendStart, when positive, bounds the trend to
// years >= trendStart; otherwise the trend starts at the account creation
// year. Every API call is recorded on the tracker.
func collectProfile(ctx context.Context, client github.Client, login string, pageSize, trendStart int, tracker *metadata.Tracker) (*profileData, error) {
	fmt.Fprintf(os.Stderr, "Fetching profile for %s...\n", login)

	user, err := client.GetUserInfo(ctx, login)
	if err != nil {
		return nil, err
	}
	tracker.IncrementAPICall()

	repos, err := fetchAllLanguages(ctx, client, login, pageSize, tracker)
	if err != nil {
		return nil, err
	}
	tracker.RecordRepositories(len(repos))

	now := time.Now().UTC()
	startYear := user.CreatedAt.UTC().Year()
	if trendStart > startYear {
		startYear = trendStart
	}
	if startYear > now.Year() {
		startYear = now.Year()
	}

	data := &profileData{
		user:  user,
		repos: repos,
		from:  time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC),
		to:    now,
	}

	for year := startYear; year <= now.Year(); year++ {
		from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC)
		if year == now.Year() {
			to = now
		}

		fmt.Fprintf(os.Stderr, "\rFetching contributions for %d...", year)

		calendar, err := client.FetchContributionCalendar(ctx, login, from, to)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\r\033[K")
			return nil, err
		}
		tracker.IncrementAPICall()

		data.totals = append(data.totals, stats.YearTotal{
			Year:          year,
			Contributions: calendar.Total,
		})
		if year == now.Year() {
			data.days = calendar.Days
			data.yearTotal = calendar.Total
		}
	}
	fmt.Fprintf(os.Stderr, "\r\033[K")

	tracker.RecordYears(len(data.totals))
	tracker.SetTotalContributions(data.yearTotal)

	return data, nil
}

// fetchAllLanguages pages through all owned repositories, retrying with a
// halved page size when GitHub rejects a query for complexity.
func fetchAllLanguages(ctx context.Context, client github.Client, login string, pageSize int, tracker *metadata.Tracker) ([]github.RepositoryLanguages, error) {
	var (
		repos   []github.RepositoryLanguages
		cursor  = ""
		hasMore = true
	)

	for hasMore {
		opts := github.FetchOptions{
			PageSize: pageSize,
			After:    cursor,
		}

		page, err := fetchWithComplexityRetry(ctx, client, login, opts, &pageSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "\r\033[K")
			return nil, err
		}
		tracker.IncrementAPICall()

		repos = append(repos, page.Repositories...)
		fmt.Fprintf(os.Stderr, "\rFetching repositories... %d fetched", len(repos))

		cursor = page.EndCursor
		hasMore = page.HasNextPage
	}
	fmt.Fprintf(os.Stderr, "\r\033[K")

	return repos, nil
}

// fetchWithComplexityRetry handles automatic retry with reduced page size on complexity errors
func fetchWithComplexityRetry(ctx context.Context, client github.Client, login string, opts github.FetchOptions, pageSize *int) (*github.LanguagePage, error) {
	maxRetries := 4
	minPageSize := 5

	for attempt := 0; attempt < maxRetries; attempt++ {
		opts.PageSize = *pageSize
		page, err := client.FetchRepositoryLanguages(ctx, login, opts)

		if err == nil {
			return page, nil
		}

		// Check if it's a complexity error
		if errors.Is(err, pulseerrors.ErrQueryComplexity) && *pageSize > minPageSize {
			// Reduce page size by half
			*pageSize /= 2
			if *pageSize < minPageSize {
				*pageSize = minPageSize
			}

			fmt.Fprintf(os.Stderr, "\r\033[K")
			fmt.Fprintf(os.Stderr, "Query complexity limit hit. Reducing page size to %d...\n", *pageSize)
			continue
		}

		// Not a complexity error or can't reduce further
		return nil, err
	}

	return nil, fmt.Errorf("failed after %d attempts to reduce query complexity", maxRetries)
}

// parseLogin validates a login argument.
func parseLogin(arg string) (string, error) {
	login := strings.TrimSpace(arg)
	if login == "" || strings.Contains(login, "/") {
		return "", fmt.Errorf("invalid login. Expected a GitHub username, got: %q", arg)
	}
	return login, nil
}

// getToken returns the GitHub token from flag or the configured environment variable
func getToken(flagToken, tokenEnv string) string {
	if flagToken != "" {
		return flagToken
	}
	return os.Getenv(tokenEnv)
}

// buildClient assembles the retrying GraphQL client for a run. With
// rate_limit.auto_wait disabled, rate limit errors fail fast instead of
// backing off.
func buildClient(token string, cfg *config.Config) github.Client {
	retryConfig := github.DefaultRetryConfig()
	retryConfig.WaitOnRateLimit = cfg.RateLimit.AutoWait
	return github.NewRetryClient(github.NewGraphQLClient(token, cfg.GitHub.GraphQLEndpoint), retryConfig)
}

// loadRunConfig loads and validates config with login overrides applied.
func loadRunConfig(configPath, login string) (*config.Config, error) {
	cfg, err := config.LoadConfigForLogin(configPath, login)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
