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

package stats

import (
	"math"
	"sort"
	"time"

	"github.com/gitpulsehq/gitpulse/internal/github"
)

// Streaks holds the contribution streak summary for a date range.
type Streaks struct {
	// Current is the length of the run of consecutive non-zero days that
	// reaches today or yesterday. Zero when the most recent run ended
	// earlier than that.
	Current int `json:"current"`

	// Longest is the longest run of consecutive non-zero days in the range.
	Longest int `json:"longest"`
}

// CalculateStreaks computes the current and longest contribution streaks
// from a list of calendar days. A day with zero contributions breaks the
// running streak. The current streak only counts if the run in progress
// includes today or yesterday, so a streak paused earlier in the week
// reports as zero.
//
// The today parameter anchors "current"; only its calendar date matters.
func CalculateStreaks(days []github.ContributionDay, today time.Time) Streaks {
	sorted := make([]github.ContributionDay, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	todayDate := dateOnly(today)
	yesterday := todayDate.AddDate(0, 0, -1)

	var s Streaks
	run := 0
	for _, day := range sorted {
		if day.Count > 0 {
			run++
			if run > s.Longest {
				s.Longest = run
			}
			d := dateOnly(day.Date)
			if d.Equal(todayDate) || d.Equal(yesterday) {
				s.Current = run
			}
		} else {
			run = 0
		}
	}

	return s
}

// AveragePerDay computes the average contributions per day over an
// inclusive date range, rounded to two decimals. An empty or inverted
// range yields zero.
func AveragePerDay(total int, from, to time.Time) float64 {
	days := int(dateOnly(to).Sub(dateOnly(from)).Hours()/24) + 1
	if days <= 0 {
		return 0
	}
	return round2(float64(total) / float64(days))
}

// dateOnly truncates a time to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// round1 rounds to one decimal place.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// round2 rounds to two decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
