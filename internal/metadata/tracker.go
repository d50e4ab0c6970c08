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

// Package metadata provides functionality for tracking and persisting
// metadata about gitpulse runs. It records statistics about each run
// including API calls made, repositories scanned, the date range covered,
// and links to previous runs.
//
// The metadata system serves several purposes:
//   - Shows how much of the GitHub rate limit budget a run consumes
//   - Enables troubleshooting by recording run parameters
//   - Links successive runs so delta reporting can be audited
//
// Metadata is saved as JSON files alongside snapshot files, allowing
// external tools to analyze run history.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

const (
	// MethodVersion represents the current GraphQL query set
	MethodVersion = "graphql-profile-v1"
)

// Tracker collects statistics during a run and generates metadata.
// Create a new tracker at the start of each run and call its methods
// to record activity.
type Tracker struct {
	startTime time.Time
	apiCalls  int
	results   RunResults
}

// New creates a new metadata tracker and initializes it with the current time.
// Call this at the beginning of a run to start tracking.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// IncrementAPICall records that an API call was made. Call this after each
// GitHub API request to maintain accurate API usage statistics.
func (t *Tracker) IncrementAPICall() {
	t.apiCalls++
}

// RecordRepositories adds to the count of repositories scanned.
func (t *Tracker) RecordRepositories(n int) {
	t.results.RepositoriesScanned += n
}

// RecordLanguages sets the number of distinct languages found.
func (t *Tracker) RecordLanguages(n int) {
	t.results.LanguagesFound = n
}

// RecordYears sets the number of calendar years covered by the trend.
func (t *Tracker) RecordYears(n int) {
	t.results.YearsCovered = n
}

// SetTotalContributions records the contribution total of the run's range.
func (t *Tracker) SetTotalContributions(n int) {
	t.results.TotalContributions = n
}

// APICalls returns the number of API calls recorded so far.
func (t *Tracker) APICalls() int {
	return t.apiCalls
}

// Generate creates a RunMetadata instance capturing the complete run
// statistics. Call this at the end of a successful run.
func (t *Tracker) Generate(pulseVersion string, params RunParams, previousRun *RunRef) *RunMetadata {
	completedAt := time.Now()
	duration := completedAt.Sub(t.startTime)

	results := t.results
	results.APICallCount = t.apiCalls
	results.Duration = duration.String()
	results.StartedAt = t.startTime
	results.CompletedAt = completedAt

	return &RunMetadata{
		PulseVersion:  pulseVersion,
		MethodVersion: MethodVersion,
		RunID:         fmt.Sprintf("%s-%d", params.Login, t.startTime.Unix()),
		Parameters:    params,
		Results:       results,
		PreviousRun:   previousRun,
	}
}

// SaveMetadata persists a RunMetadata record to a JSON file in the
// specified directory. The file is written atomically using a temporary
// file and rename to prevent corruption. The filename includes a
// timestamp for easy sorting: run-metadata-{timestamp}.json
func SaveMetadata(md *RunMetadata, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	filename := fmt.Sprintf("run-metadata-%d.json", md.Results.StartedAt.Unix())
	path := filepath.Join(dir, filename)

	// Write to temporary file first for atomicity
	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(md); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	// Atomically rename to final location
	if err := os.Rename(tmpFile, path); err != nil {
		return fmt.Errorf("failed to save metadata file: %w", err)
	}

	return nil
}

// LoadLatestMetadata finds and loads the most recent metadata record for
// the specified login from the directory. The directory is shared across
// logins, so candidates are filtered by login before picking the newest
// by modification time. Unreadable or corrupt files are skipped.
//
// Returns nil if no metadata exists for the login, or an error if the
// directory cannot be listed.
func LoadLatestMetadata(dir, login string) (*RunMetadata, error) {
	pattern := filepath.Join(dir, "run-metadata-*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata files: %w", err)
	}

	var latest *RunMetadata
	var latestTime time.Time
	for _, file := range files {
		info, statErr := os.Stat(file)
		if statErr != nil {
			continue
		}
		if latest != nil && !info.ModTime().After(latestTime) {
			continue
		}
		md, readErr := readMetadataFile(file)
		if readErr != nil {
			continue
		}
		if md.Parameters.Login != login {
			continue
		}
		latest = md
		latestTime = info.ModTime()
	}

	return latest, nil
}

// readMetadataFile loads and parses a single metadata record.
func readMetadataFile(path string) (*RunMetadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer file.Close()

	var md RunMetadata
	if err := json.NewDecoder(file).Decode(&md); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return &md, nil
}

// WriteMetadataToWriter serializes metadata to JSON and writes it to the
// provided io.Writer. The output is formatted with indentation for
// readability. Useful for outputting metadata to stdout.
func WriteMetadataToWriter(md *RunMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(md)
}
