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

import "time"

// UserInfo contains basic profile metadata for a GitHub user.
// CreatedAt bounds the yearly contribution trend; the counts are
// surfaced in the rendered report header.
type UserInfo struct {
	Login        string    `json:"login"`
	Name         string    `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	Followers    int       `json:"followers"`
	Repositories int       `json:"repositories"`
}

// LanguageUsage records the number of bytes GitHub attributes to a single
// language within one repository, along with GitHub's display color for
// that language. Color may be empty for languages without one.
type LanguageUsage struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Size  int    `json:"size"`
}

// RepositoryLanguages pairs a repository with its language byte sizes.
// This is the record shape serialized by the export command.
type RepositoryLanguages struct {
	Repository string          `json:"repository"`
	IsFork     bool            `json:"is_fork"`
	Languages  []LanguageUsage `json:"languages"`
}

// LanguagePage represents a page of repositories from a GraphQL query.
// It includes pagination information to support fetching subsequent pages,
// enabling accounts with hundreds of repositories to be processed without
// oversized queries.
type LanguagePage struct {
	Repositories []RepositoryLanguages
	HasNextPage  bool
	EndCursor    string
}

// FetchOptions configures how repository pages are fetched.
// It supports pagination through the After cursor field and
// allows customization of the page size for each request.
type FetchOptions struct {
	// PageSize controls how many repositories to fetch per page.
	// Defaults to 50 if not specified. Maximum is 100 per GitHub's API limits.
	PageSize int

	// After is the cursor for pagination.
	// Empty string fetches from the beginning.
	// Use LanguagePage.EndCursor from the previous response for the next page.
	After string
}

// Default values for fetch operations
const (
	defaultPageSize = 50

	// complexityPageSize caps language pages; the nested languages
	// connection makes large pages exceed GitHub's complexity budget.
	complexityPageSize = 50
)

// ContributionDay is a single day from the contribution calendar.
type ContributionDay struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// ContributionCalendar holds the flattened contribution calendar for a
// date range: the total reported by GitHub plus every day in the range.
type ContributionCalendar struct {
	Total int               `json:"total"`
	Days  []ContributionDay `json:"days"`
}

// DateTime wraps time.Time so that shurcooL/graphql declares query
// variables with GitHub's DateTime scalar type. JSON marshaling is
// inherited from time.Time (RFC 3339), which is the wire format GitHub
// expects.
type DateTime struct{ time.Time }
