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

package snapshot

import (
	"time"
)

// CurrentVersion is the current snapshot schema version.
// Increment this when making breaking changes to the Snapshot structure.
const CurrentVersion = 1

// Snapshot records the headline statistics of one gitpulse run for a
// login. The readme command compares the latest run against the stored
// snapshot to show deltas. Snapshots are forward-compatible through
// versioning and carry a checksum for integrity validation.
type Snapshot struct {
	// Version indicates the schema version of this snapshot file.
	// Used to handle migrations and compatibility checks.
	Version int `json:"version"`

	// Checksum is the SHA256 hash of the snapshot content (excluding this field).
	// Used to detect corruption or tampering.
	Checksum string `json:"checksum"`

	// Login is the GitHub login the snapshot belongs to.
	Login string `json:"login"`

	// TakenAt records when the snapshot was written.
	TakenAt time.Time `json:"taken_at"`

	// TotalContributions is the contribution total for the snapshot's year.
	TotalContributions int `json:"total_contributions"`

	// CurrentStreak and LongestStreak mirror the streak summary of the run.
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`

	// AveragePerDay is the average contributions per day of the run's range.
	AveragePerDay float64 `json:"average_per_day"`

	// TopLanguage is the largest aggregated language at snapshot time.
	TopLanguage string `json:"top_language,omitempty"`

	// Followers is the follower count at snapshot time.
	Followers int `json:"followers"`
}
