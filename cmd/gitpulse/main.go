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
	"os"

	"github.com/spf13/cobra"

	pulseerrors "github.com/gitpulsehq/gitpulse/internal/errors"
	"github.com/gitpulsehq/gitpulse/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gitpulse",
		Short: "Generate GitHub profile statistics and READMEs",
		Long: `gitpulse fetches a GitHub user's public activity through the GitHub
GraphQL API and turns it into profile statistics: top languages by size,
contribution streaks, weekday productivity, and yearly trends. It can print
a terminal report, regenerate a profile README, or export the raw records.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newReadmeCommand())
	rootCmd.AddCommand(newExportCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, pulseerrors.ErrInvalidToken) ||
		errors.Is(err, pulseerrors.ErrUserNotFound) ||
		errors.Is(err, pulseerrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, pulseerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
