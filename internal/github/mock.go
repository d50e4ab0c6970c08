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
	"time"

	pulseerrors "github.com/gitpulsehq/gitpulse/internal/errors"
)

// MockClient is a mock implementation of the GitHub Client interface for testing.
type MockClient struct {
	// Canned data to return
	User          *UserInfo
	LanguagePages []*LanguagePage
	Calendar      *ContributionCalendar

	// Error to return
	Error error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNetwork  bool
	ShouldFailNotFound bool

	// Track calls for verification
	CallCount     int
	LanguageCalls int
	CalendarCalls int
	LastLogin     string
	LastOpts      FetchOptions
	LastFrom      time.Time
	LastTo        time.Time
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		User:          generateTestUser(),
		LanguagePages: generateTestLanguagePages(),
		Calendar:      generateTestCalendar(),
	}
}

// GetUserInfo implements the Client interface
func (m *MockClient) GetUserInfo(ctx context.Context, login string) (*UserInfo, error) {
	if err := m.record(ctx, login); err != nil {
		return nil, err
	}
	return m.User, nil
}

// FetchRepositoryLanguages implements the Client interface.
// Successive calls walk through the configured pages so pagination loops
// can be exercised end to end.
func (m *MockClient) FetchRepositoryLanguages(ctx context.Context, login string, opts FetchOptions) (*LanguagePage, error) {
	m.LastOpts = opts
	if err := m.record(ctx, login); err != nil {
		return nil, err
	}

	if len(m.LanguagePages) == 0 {
		return &LanguagePage{}, nil
	}
	idx := m.LanguageCalls
	if idx >= len(m.LanguagePages) {
		idx = len(m.LanguagePages) - 1
	}
	m.LanguageCalls++
	return m.LanguagePages[idx], nil
}

// FetchContributionCalendar implements the Client interface
func (m *MockClient) FetchContributionCalendar(ctx context.Context, login string, from, to time.Time) (*ContributionCalendar, error) {
	m.LastFrom = from
	m.LastTo = to
	if err := m.record(ctx, login); err != nil {
		return nil, err
	}
	m.CalendarCalls++
	return m.Calendar, nil
}

// record tracks the call and simulates configured failure conditions.
func (m *MockClient) record(ctx context.Context, login string) error {
	m.CallCount++
	m.LastLogin = login

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", pulseerrors.ErrInvalidToken)
	}
	if m.ShouldFailNetwork {
		return fmt.Errorf("network timeout: %w", pulseerrors.ErrNetworkFailure)
	}
	if m.ShouldFailNotFound || login == "nonexistent" {
		return fmt.Errorf("user not found: %w", pulseerrors.ErrUserNotFound)
	}
	if m.Error != nil {
		return m.Error
	}
	return nil
}

// generateTestUser creates a sample user for testing
func generateTestUser() *UserInfo {
	return &UserInfo{
		Login:        "octocat",
		Name:         "The Octocat",
		CreatedAt:    time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC),
		Followers:    97,
		Repositories: 12,
	}
}

// generateTestLanguagePages creates sample repository language data for testing
func generateTestLanguagePages() []*LanguagePage {
	return []*LanguagePage{
		{
			Repositories: []RepositoryLanguages{
				{
					Repository: "hello-world",
					Languages: []LanguageUsage{
						{Name: "Go", Color: "#00ADD8", Size: 120000},
						{Name: "Shell", Color: "#89e051", Size: 4000},
					},
				},
				{
					Repository: "dotfiles",
					Languages: []LanguageUsage{
						{Name: "Shell", Color: "#89e051", Size: 16000},
						{Name: "Lua", Color: "#000080", Size: 8000},
					},
				},
			},
			HasNextPage: true,
			EndCursor:   "cursor-1",
		},
		{
			Repositories: []RepositoryLanguages{
				{
					Repository: "blog",
					Languages: []LanguageUsage{
						{Name: "Go", Color: "#00ADD8", Size: 40000},
						{Name: "HTML", Color: "#e34c26", Size: 12000},
					},
				},
			},
			HasNextPage: false,
			EndCursor:   "",
		},
	}
}

// generateTestCalendar creates a sample contribution calendar for testing
func generateTestCalendar() *ContributionCalendar {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	days := make([]ContributionDay, 0, 14)
	counts := []int{0, 3, 5, 0, 1, 12, 4, 0, 0, 2, 7, 6, 0, 1}
	total := 0
	for i, count := range counts {
		days = append(days, ContributionDay{
			Date:  start.AddDate(0, 0, i),
			Count: count,
		})
		total += count
	}
	return &ContributionCalendar{Total: total, Days: days}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithUser sets the user profile to return
func WithUser(user *UserInfo) MockClientOption {
	return func(m *MockClient) {
		m.User = user
	}
}

// WithLanguagePages sets specific repository language pages to return
func WithLanguagePages(pages []*LanguagePage) MockClientOption {
	return func(m *MockClient) {
		m.LanguagePages = pages
	}
}

// WithCalendar sets the contribution calendar to return
func WithCalendar(calendar *ContributionCalendar) MockClientOption {
	return func(m *MockClient) {
		m.Calendar = calendar
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
