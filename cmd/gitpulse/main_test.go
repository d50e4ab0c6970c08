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
	"errors"
	"fmt"
	"testing"

	pulseerrors "github.com/gitpulsehq/gitpulse/internal/errors"
)

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, 0},
		{"invalid token", pulseerrors.ErrInvalidToken, 2},
		{"user not found", pulseerrors.ErrUserNotFound, 2},
		{"rate limit", pulseerrors.ErrRateLimit, 2},
		{"network failure", pulseerrors.ErrNetworkFailure, 3},
		{"query complexity", pulseerrors.ErrQueryComplexity, 1},
		{"generic error", errors.New("something broke"), 1},
		{
			"wrapped auth error",
			fmt.Errorf("fetching profile: %w", pulseerrors.ErrInvalidToken),
			2,
		},
		{
			"wrapped network error",
			fmt.Errorf("run aborted: %w", pulseerrors.ErrNetworkFailure),
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseLogin(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    string
		wantErr bool
	}{
		{"plain login", "octocat", "octocat", false},
		{"trims whitespace", "  octocat  ", "octocat", false},
		{"hyphenated login", "some-user", "some-user", false},
		{"empty", "", "", true},
		{"only whitespace", "   ", "", true},
		{"owner/repo form", "octocat/hello-world", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLogin(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseLogin(%q) expected error", tt.arg)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLogin(%q) failed: %v", tt.arg, err)
			}
			if got != tt.want {
				t.Errorf("parseLogin(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestGetToken(t *testing.T) {
	t.Setenv("GITPULSE_TEST_TOKEN", "env-token")

	if got := getToken("flag-token", "GITPULSE_TEST_TOKEN"); got != "flag-token" {
		t.Errorf("flag token should win, got: %s", got)
	}
	if got := getToken("", "GITPULSE_TEST_TOKEN"); got != "env-token" {
		t.Errorf("expected env token, got: %s", got)
	}
	if got := getToken("", "GITPULSE_UNSET_TOKEN"); got != "" {
		t.Errorf("expected empty token, got: %s", got)
	}
}
