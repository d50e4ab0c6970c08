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

// Package config provides configuration management for gitpulse with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Login-specific configuration
//  4. Global configuration file
//  5. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. It works with GitHub
// Enterprise deployments through a configurable GraphQL endpoint and
// supports login-specific overrides for fine-grained control.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .gitpulse.yaml (current directory)
//   - .gitpulse.yml (current directory)
//   - ~/.gitpulse/config.yaml
//   - ~/.gitpulse/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Path expansion (~ and environment variables) is performed
// on directory paths.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Try to load config file if path is provided
	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{
			".gitpulse.yaml",
			".gitpulse.yml",
			filepath.Join(os.Getenv("HOME"), ".gitpulse", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".gitpulse", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Defaults.SnapshotDir = expandPath(cfg.Defaults.SnapshotDir)

	return cfg, nil
}

// LoadConfigForLogin loads configuration and applies login-specific
// overrides. This allows different settings for different GitHub accounts,
// useful when some accounts require special handling (e.g., lower page
// sizes for accounts with many large repositories).
func LoadConfigForLogin(configPath, login string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	// Apply login-specific overrides if they exist
	if loginConfig, ok := cfg.Logins[login]; ok {
		if loginConfig.PageSize > 0 {
			cfg.Defaults.PageSize = loginConfig.PageSize
		}
		if loginConfig.TopLanguages > 0 {
			cfg.Defaults.TopLanguages = loginConfig.TopLanguages
		}
	}

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}

	if pageSize := os.Getenv("GITPULSE_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
	if snapshotDir := os.Getenv("GITPULSE_SNAPSHOT_DIR"); snapshotDir != "" {
		cfg.Defaults.SnapshotDir = snapshotDir
	}

	if autoWait := os.Getenv("GITPULSE_RATE_LIMIT_AUTO_WAIT"); autoWait != "" {
		cfg.RateLimit.AutoWait = parseBool(autoWait)
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// GetPageSize returns the effective page size for a login, taking into
// account login-specific overrides. If the login has a specific page size
// configured, it returns that value. Otherwise, it returns the default.
func (c *Config) GetPageSize(login string) int {
	if loginConfig, ok := c.Logins[login]; ok && loginConfig.PageSize > 0 {
		return loginConfig.PageSize
	}
	return c.Defaults.PageSize
}

// GetTopLanguages returns the effective top-languages count for a login,
// taking into account login-specific overrides.
func (c *Config) GetTopLanguages(login string) int {
	if loginConfig, ok := c.Logins[login]; ok && loginConfig.TopLanguages > 0 {
		return loginConfig.TopLanguages
	}
	return c.Defaults.TopLanguages
}

// Validate checks if the configuration contains valid values. It ensures
// page sizes are within GitHub's limits, endpoints are not empty, and
// other constraints are met. This should be called after loading
// configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("default page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > 100 {
		return fmt.Errorf("default page size %d exceeds GitHub API limit of 100", c.Defaults.PageSize)
	}
	if c.Defaults.TopLanguages <= 0 {
		return fmt.Errorf("top languages count must be positive, got: %d", c.Defaults.TopLanguages)
	}
	if c.GitHub.GraphQLEndpoint == "" {
		return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
	}
	return nil
}
