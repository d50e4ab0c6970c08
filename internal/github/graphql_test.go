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
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pulseerrors "github.com/gitpulsehq/gitpulse/internal/errors"
)

// newTestServer returns an httptest server that answers every GraphQL
// request with the given JSON body, recording the last request headers.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *http.Header) {
	t.Helper()
	var lastHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastHeader = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &lastHeader
}

func TestGetUserInfo(t *testing.T) {
	server, header := newTestServer(t, http.StatusOK, `{
		"data": {
			"user": {
				"login": "octocat",
				"name": "The Octocat",
				"createdAt": "2011-01-25T18:44:36Z",
				"followers": {"totalCount": 4521},
				"repositories": {"totalCount": 8}
			}
		}
	}`)

	client := NewGraphQLClient("test-token", server.URL)
	info, err := client.GetUserInfo(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("GetUserInfo failed: %v", err)
	}

	if info.Login != "octocat" {
		t.Errorf("unexpected login: %s", info.Login)
	}
	if info.Name != "The Octocat" {
		t.Errorf("unexpected name: %s", info.Name)
	}
	if info.CreatedAt.Year() != 2011 {
		t.Errorf("unexpected creation year: %d", info.CreatedAt.Year())
	}
	if info.Followers != 4521 {
		t.Errorf("unexpected followers: %d", info.Followers)
	}
	if info.Repositories != 8 {
		t.Errorf("unexpected repositories: %d", info.Repositories)
	}

	// The transport must attach auth and identification headers.
	if got := header.Get("Authorization"); got != "Bearer test-token" {
		t.Errorf("unexpected Authorization header: %s", got)
	}
	if got := header.Get("User-Agent"); !strings.HasPrefix(got, "gitpulse/") {
		t.Errorf("unexpected User-Agent header: %s", got)
	}
}

func TestGetUserInfo_NullName(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{
		"data": {
			"user": {
				"login": "anon",
				"name": null,
				"createdAt": "2020-01-01T00:00:00Z",
				"followers": {"totalCount": 0},
				"repositories": {"totalCount": 1}
			}
		}
	}`)

	client := NewGraphQLClient("test-token", server.URL)
	info, err := client.GetUserInfo(context.Background(), "anon")
	if err != nil {
		t.Fatalf("GetUserInfo failed: %v", err)
	}
	if info.Name != "" {
		t.Errorf("expected empty name for null, got: %s", info.Name)
	}
}

func TestGetUserInfo_NotFound(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{
		"data": null,
		"errors": [{"message": "Could not resolve to a User with the login of 'ghost-user'."}]
	}`)

	client := NewGraphQLClient("test-token", server.URL)
	_, err := client.GetUserInfo(context.Background(), "ghost-user")
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
	if !errors.Is(err, pulseerrors.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
	if !strings.Contains(err.Error(), "ghost-user") {
		t.Errorf("error should name the login: %v", err)
	}
}

func TestGetUserInfo_AuthFailure(t *testing.T) {
	server, _ := newTestServer(t, http.StatusUnauthorized, `{"message": "Bad credentials"}`)

	client := NewGraphQLClient("bad-token", server.URL)
	_, err := client.GetUserInfo(context.Background(), "octocat")
	if err == nil {
		t.Fatal("expected error for bad token")
	}
	if !errors.Is(err, pulseerrors.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got: %v", err)
	}
}

func TestGetUserInfo_RateLimit(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{
		"errors": [{"message": "API rate limit exceeded for user ID 1."}]
	}`)

	client := NewGraphQLClient("test-token", server.URL)
	_, err := client.GetUserInfo(context.Background(), "octocat")
	if !errors.Is(err, pulseerrors.ErrRateLimit) {
		t.Errorf("expected ErrRateLimit, got: %v", err)
	}
}

func TestGetUserInfo_NetworkFailure(t *testing.T) {
	// Point the client at a server that is already gone.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := NewGraphQLClient("test-token", endpoint)
	_, err := client.GetUserInfo(context.Background(), "octocat")
	if !errors.Is(err, pulseerrors.ErrNetworkFailure) {
		t.Errorf("expected ErrNetworkFailure, got: %v", err)
	}
}

func TestFetchRepositoryLanguages(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{
		"data": {
			"user": {
				"repositories": {
					"pageInfo": {"hasNextPage": true, "endCursor": "cursor-abc"},
					"nodes": [
						{
							"name": "hello-world",
							"isFork": false,
							"languages": {
								"edges": [
									{"size": 120000, "node": {"name": "Go", "color": "#00ADD8"}},
									{"size": 4000, "node": {"name": "Makefile", "color": null}}
								]
							}
						},
						{
							"name": "forked-thing",
							"isFork": true,
							"languages": {"edges": []}
						}
					]
				}
			}
		}
	}`)

	client := NewGraphQLClient("test-token", server.URL)
	page, err := client.FetchRepositoryLanguages(context.Background(), "octocat", FetchOptions{PageSize: 50})
	if err != nil {
		t.Fatalf("FetchRepositoryLanguages failed: %v", err)
	}

	if !page.HasNextPage {
		t.Error("expected HasNextPage true")
	}
	if page.EndCursor != "cursor-abc" {
		t.Errorf("unexpected cursor: %s", page.EndCursor)
	}
	if len(page.Repositories) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(page.Repositories))
	}

	repo := page.Repositories[0]
	if repo.Repository != "hello-world" {
		t.Errorf("unexpected repository name: %s", repo.Repository)
	}
	if len(repo.Languages) != 2 {
		t.Fatalf("expected 2 languages, got %d", len(repo.Languages))
	}
	if repo.Languages[0].Name != "Go" || repo.Languages[0].Size != 120000 {
		t.Errorf("unexpected first language: %+v", repo.Languages[0])
	}
	// Null colors come through as empty strings.
	if repo.Languages[1].Color != "" {
		t.Errorf("expected empty color, got: %s", repo.Languages[1].Color)
	}

	if !page.Repositories[1].IsFork {
		t.Error("expected second repository to be a fork")
	}
}

func TestFetchRepositoryLanguages_ComplexityError(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{
		"errors": [{"message": "Query has complexity of 12000, which exceeds max complexity of 10000"}]
	}`)

	client := NewGraphQLClient("test-token", server.URL)
	_, err := client.FetchRepositoryLanguages(context.Background(), "octocat", FetchOptions{PageSize: 100})
	if !errors.Is(err, pulseerrors.ErrQueryComplexity) {
		t.Errorf("expected ErrQueryComplexity, got: %v", err)
	}
}

func TestFetchContributionCalendar(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{
		"data": {
			"user": {
				"contributionsCollection": {
					"contributionCalendar": {
						"totalContributions": 12,
						"weeks": [
							{"contributionDays": [
								{"date": "2025-01-01", "contributionCount": 5},
								{"date": "2025-01-02", "contributionCount": 0}
							]},
							{"contributionDays": [
								{"date": "2025-01-03", "contributionCount": 7}
							]}
						]
					}
				}
			}
		}
	}`)

	client := NewGraphQLClient("test-token", server.URL)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)

	calendar, err := client.FetchContributionCalendar(context.Background(), "octocat", from, to)
	if err != nil {
		t.Fatalf("FetchContributionCalendar failed: %v", err)
	}

	if calendar.Total != 12 {
		t.Errorf("unexpected total: %d", calendar.Total)
	}
	// Week groups are flattened into one chronological slice.
	if len(calendar.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(calendar.Days))
	}

	first := calendar.Days[0]
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(want) {
		t.Errorf("unexpected first date: %v", first.Date)
	}
	if first.Count != 5 {
		t.Errorf("unexpected first count: %d", first.Count)
	}
	if calendar.Days[2].Count != 7 {
		t.Errorf("unexpected last count: %d", calendar.Days[2].Count)
	}
}

func TestFetchContributionCalendar_BadDate(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{
		"data": {
			"user": {
				"contributionsCollection": {
					"contributionCalendar": {
						"totalContributions": 1,
						"weeks": [
							{"contributionDays": [{"date": "not-a-date", "contributionCount": 1}]}
						]
					}
				}
			}
		}
	}`)

	client := NewGraphQLClient("test-token", server.URL)
	_, err := client.FetchContributionCalendar(context.Background(), "octocat",
		time.Now().AddDate(0, -1, 0), time.Now())
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	if !strings.Contains(err.Error(), "not-a-date") {
		t.Errorf("error should include the bad value: %v", err)
	}
}
