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

package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shurcooL/graphql"

	pulseerrors "github.com/gitpulsehq/gitpulse/internal/errors"
	"github.com/gitpulsehq/gitpulse/internal/giterror"
)

// dateLayout is the wire format of GitHub's Date scalar, used by
// contribution calendar days.
const dateLayout = "2006-01-02"

// GraphQLClient implements the GitHub Client interface using the GraphQL API.
// It provides efficient access to GitHub's data with support for pagination,
// error handling, and safety features like timeouts and response size limits.
type GraphQLClient struct {
	client    *graphql.Client
	token     string
	inspector giterror.Inspector
}

// NewGraphQLClient creates a new GitHub GraphQL client with the provided token and endpoint.
// The client is configured with:
//   - Authentication via the provided token
//   - Custom GraphQL endpoint URL (e.g., for GitHub Enterprise)
//   - Response size limiting to prevent memory issues
//   - User-Agent header for API compliance
//   - Optimized connection pooling for API performance
func NewGraphQLClient(token, endpoint string) *GraphQLClient {
	// Create optimized transport with connection pooling
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10, // Increased from default 2
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		ForceAttemptHTTP2:   true, // Ensure HTTP/2 is used
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  transport,
		},
	}

	client := graphql.NewClient(endpoint, httpClient)

	return &GraphQLClient{
		client:    client,
		token:     token,
		inspector: giterror.NewErrorChainInspector(giterror.NewInspector()),
	}
}

// GetUserInfo retrieves basic profile metadata for a user. It executes a
// minimal GraphQL query to get the account creation date plus the counts
// shown in the report header.
func (c *GraphQLClient) GetUserInfo(ctx context.Context, login string) (*UserInfo, error) {
	var query struct {
		User struct {
			Login     graphql.String
			Name      *graphql.String
			CreatedAt time.Time
			Followers struct {
				TotalCount graphql.Int
			}
			Repositories struct {
				TotalCount graphql.Int
			} `graphql:"repositories(ownerAffiliations: OWNER)"`
		} `graphql:"user(login: $login)"`
	}

	variables := map[string]interface{}{
		"login": graphql.String(login),
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, login)
	}

	info := &UserInfo{
		Login:        string(query.User.Login),
		CreatedAt:    query.User.CreatedAt,
		Followers:    int(query.User.Followers.TotalCount),
		Repositories: int(query.User.Repositories.TotalCount),
	}
	if query.User.Name != nil {
		info.Name = string(*query.User.Name)
	}

	return info, nil
}

// FetchRepositoryLanguages fetches a page of the user's owned repositories
// with their per-language byte sizes. It supports cursor-based pagination
// via opts.After and configurable page sizes through opts.PageSize. The
// nested languages connection is capped at the 10 largest languages per
// repository, ordered by size, matching what GitHub's own language bar shows.
func (c *GraphQLClient) FetchRepositoryLanguages(ctx context.Context, login string, opts FetchOptions) (*LanguagePage, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	// The nested languages connection multiplies query complexity; cap the
	// page size so a full page stays inside GitHub's budget.
	if pageSize > complexityPageSize {
		pageSize = complexityPageSize
	}

	var query struct {
		User struct {
			Repositories struct {
				PageInfo struct {
					HasNextPage graphql.Boolean
					EndCursor   graphql.String
				}
				Nodes []struct {
					Name      graphql.String
					IsFork    graphql.Boolean
					Languages struct {
						Edges []struct {
							Size graphql.Int
							Node struct {
								Name  graphql.String
								Color *graphql.String
							}
						}
					} `graphql:"languages(first: 10, orderBy: {field: SIZE, direction: DESC})"`
				}
			} `graphql:"repositories(first: $first, after: $after, ownerAffiliations: OWNER)"`
		} `graphql:"user(login: $login)"`
	}

	variables := map[string]interface{}{
		"login": graphql.String(login),
		"first": graphql.Int(int32(pageSize)), // #nosec G115 - pageSize is capped at 100
		"after": (*graphql.String)(nil),
	}
	if opts.After != "" {
		after := graphql.String(opts.After)
		variables["after"] = &after
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, login)
	}

	page := &LanguagePage{
		HasNextPage:  bool(query.User.Repositories.PageInfo.HasNextPage),
		EndCursor:    string(query.User.Repositories.PageInfo.EndCursor),
		Repositories: make([]RepositoryLanguages, 0, len(query.User.Repositories.Nodes)),
	}

	for _, node := range query.User.Repositories.Nodes {
		repo := RepositoryLanguages{
			Repository: string(node.Name),
			IsFork:     bool(node.IsFork),
			Languages:  make([]LanguageUsage, 0, len(node.Languages.Edges)),
		}
		for _, edge := range node.Languages.Edges {
			usage := LanguageUsage{
				Name: string(edge.Node.Name),
				Size: int(edge.Size),
			}
			if edge.Node.Color != nil {
				usage.Color = string(*edge.Node.Color)
			}
			repo.Languages = append(repo.Languages, usage)
		}
		page.Repositories = append(page.Repositories, repo)
	}

	return page, nil
}

// FetchContributionCalendar retrieves the contribution calendar for a user
// over the given range and flattens GitHub's week-grouped days into a single
// chronological slice. GitHub rejects ranges longer than one year, so
// callers slice multi-year spans into per-year requests.
func (c *GraphQLClient) FetchContributionCalendar(ctx context.Context, login string, from, to time.Time) (*ContributionCalendar, error) {
	var query struct {
		User struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions graphql.Int
					Weeks              []struct {
						ContributionDays []struct {
							Date              graphql.String
							ContributionCount graphql.Int
						}
					}
				}
			} `graphql:"contributionsCollection(from: $from, to: $to)"`
		} `graphql:"user(login: $login)"`
	}

	variables := map[string]interface{}{
		"login": graphql.String(login),
		"from":  DateTime{from},
		"to":    DateTime{to},
	}

	if err := c.client.Query(ctx, &query, variables); err != nil {
		return nil, c.mapError(err, login)
	}

	calendar := &ContributionCalendar{
		Total: int(query.User.ContributionsCollection.ContributionCalendar.TotalContributions),
	}

	for _, week := range query.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			date, err := time.Parse(dateLayout, string(day.Date))
			if err != nil {
				return nil, fmt.Errorf("failed to parse contribution day %q: %w", day.Date, err)
			}
			calendar.Days = append(calendar.Days, ContributionDay{
				Date:  date,
				Count: int(day.ContributionCount),
			})
		}
	}

	return calendar, nil
}

// mapError maps GraphQL errors to our domain errors with actionable messages
func (c *GraphQLClient) mapError(err error, login string) error {
	if err == nil {
		return nil
	}

	// Check rate limit first, as 403 can be both auth and rate limit
	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w", pulseerrors.ErrRateLimit)
	}

	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or GITHUB_TOKEN environment variable: %w", pulseerrors.ErrInvalidToken)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("user '%s' not found. Please check the login and your access permissions: %w", login, pulseerrors.ErrUserNotFound)
	}

	if c.inspector.IsComplexityError(err) {
		return fmt.Errorf("GraphQL query complexity exceeded. Reducing page size may help: %w", pulseerrors.ErrQueryComplexity)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w", pulseerrors.ErrNetworkFailure)
	}

	// Generic error
	return fmt.Errorf("github query failed: %w", err)
}
