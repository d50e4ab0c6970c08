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

// Package config types define the configuration structures used throughout
// gitpulse. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for gitpulse.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub    GitHubConfig           `yaml:"github"`
	Defaults  DefaultsConfig         `yaml:"defaults"`
	Logins    map[string]LoginConfig `yaml:"logins"`
	RateLimit RateLimitConfig        `yaml:"rate_limit"`
}

// GitHubConfig contains GitHub-specific settings including the GraphQL
// endpoint and authentication configuration. This allows easy configuration
// for GitHub Enterprise deployments by specifying a custom endpoint.
type GitHubConfig struct {
	GraphQLEndpoint string `yaml:"graphql_endpoint"`
	TokenEnv        string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to all stats runs
// unless overridden by login-specific settings or command-line flags.
type DefaultsConfig struct {
	PageSize     int    `yaml:"page_size"`
	TopLanguages int    `yaml:"top_languages"`
	SnapshotDir  string `yaml:"snapshot_dir"`
}

// LoginConfig contains login-specific overrides that allow fine-tuning
// behavior for individual GitHub accounts. This is useful when an account
// owns repositories with very large language graphs and needs a smaller
// page size to stay within GitHub's query complexity budget.
type LoginConfig struct {
	PageSize     int `yaml:"page_size"`
	TopLanguages int `yaml:"top_languages"`
}

// RateLimitConfig controls rate limit handling behavior when interacting
// with the GitHub API. It determines whether the tool should automatically
// wait when rate limited or exit with an error.
type RateLimitConfig struct {
	AutoWait bool `yaml:"auto_wait"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			GraphQLEndpoint: "https://api.github.com/graphql",
			TokenEnv:        "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize:     50,
			TopLanguages: 5,
			SnapshotDir:  "~/.gitpulse/snapshots",
		},
		Logins: make(map[string]LoginConfig),
		RateLimit: RateLimitConfig{
			AutoWait: true,
		},
	}
}
