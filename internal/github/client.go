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
	"time"
)

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests.
type Client interface {
	// GetUserInfo retrieves basic profile metadata for a user, including
	// the account creation date needed to bound the yearly trend.
	GetUserInfo(ctx context.Context, login string) (*UserInfo, error)

	// FetchRepositoryLanguages retrieves a page of the user's owned
	// repositories together with their per-language byte sizes. It supports
	// cursor-based pagination through the opts.After parameter to fetch
	// subsequent pages. The page size can be configured via opts.PageSize.
	FetchRepositoryLanguages(ctx context.Context, login string, opts FetchOptions) (*LanguagePage, error)

	// FetchContributionCalendar retrieves the contribution calendar for a
	// user over the given range. GitHub rejects ranges longer than one
	// year; callers must slice longer spans into per-year requests.
	FetchContributionCalendar(ctx context.Context, login string, from, to time.Time) (*ContributionCalendar, error)
}
