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

package metadata

import "time"

// RunMetadata captures everything about a single gitpulse run: the
// parameters it was invoked with, what it produced, and a link to the
// previous run for the same login.
type RunMetadata struct {
	// PulseVersion is the gitpulse version that performed the run.
	PulseVersion string `json:"pulse_version"`

	// MethodVersion identifies the GraphQL query set used, so records
	// from different query generations can be told apart.
	MethodVersion string `json:"method_version"`

	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// Parameters are the effective inputs of the run.
	Parameters RunParams `json:"parameters"`

	// Results summarize what the run fetched and computed.
	Results RunResults `json:"results"`

	// PreviousRun links to the run before this one, if any.
	PreviousRun *RunRef `json:"previous_run,omitempty"`
}

// RunParams are the effective inputs of a run after config resolution.
type RunParams struct {
	Login    string    `json:"login"`
	PageSize int       `json:"page_size"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
}

// RunResults summarize the output of a run, including API usage for
// rate-limit budgeting.
type RunResults struct {
	TotalContributions  int       `json:"total_contributions"`
	RepositoriesScanned int       `json:"repositories_scanned"`
	LanguagesFound      int       `json:"languages_found"`
	YearsCovered        int       `json:"years_covered"`
	APICallCount        int       `json:"api_call_count"`
	Duration            string    `json:"duration"`
	StartedAt           time.Time `json:"started_at"`
	CompletedAt         time.Time `json:"completed_at"`
}

// RunRef is a lightweight pointer to an earlier run.
type RunRef struct {
	RunID       string    `json:"run_id"`
	CompletedAt time.Time `json:"completed_at"`
}
