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

// Package main implements the gitpulse command-line interface.
// This tool fetches a GitHub user's public activity through the GitHub
// GraphQL API and produces profile statistics: top languages by size,
// contribution streaks, weekday productivity, and yearly trends.
//
// The CLI supports:
//   - A terminal statistics report (stats)
//   - Profile README generation with run-over-run deltas (readme)
//   - NDJSON export of the raw per-day and per-repository records (export)
//   - GitHub token authentication via flag or environment variable
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	gitpulse stats <login> [flags]
//	gitpulse readme <login> [flags]
//	gitpulse export <login> [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	gitpulse stats octocat
//	gitpulse readme octocat --output README.md
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
