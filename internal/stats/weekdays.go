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
	"time"

	"github.com/gitpulsehq/gitpulse/internal/github"
)

// weekdayNames indexes weekday display names Monday-first, matching the
// order the weekly breakdown is rendered in.
var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayStat summarizes contribution activity for one day of the week.
type WeekdayStat struct {
	Name       string  `json:"name"`
	Average    float64 `json:"average"`
	Total      int     `json:"total"`
	ActiveDays int     `json:"active_days"`
}

// ActivityDistribution buckets non-zero contribution days by intensity:
// low is 1-3 contributions, medium 4-10, high above 10.
type ActivityDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Productivity is the weekday productivity analysis for a date range.
type Productivity struct {
	// Weekdays holds per-weekday stats, Monday first.
	Weekdays [7]WeekdayStat `json:"weekdays"`

	// MostProductive is the weekday with the highest average.
	MostProductive WeekdayStat `json:"most_productive"`

	// LeastProductive is the weekday with the lowest average.
	LeastProductive WeekdayStat `json:"least_productive"`

	// Distribution buckets active days by contribution count.
	Distribution ActivityDistribution `json:"distribution"`
}

// AnalyzeWeekdays groups contribution days by weekday and computes
// per-weekday averages (two decimals), totals, and active-day counts,
// plus the most and least productive weekdays and an intensity
// distribution over all non-zero days. Weekdays with no data report
// zero averages.
func AnalyzeWeekdays(days []github.ContributionDay) Productivity {
	var totals [7]int
	var counts [7]int
	var active [7]int

	var p Productivity

	for _, day := range days {
		wd := mondayIndexed(day.Date.Weekday())
		totals[wd] += day.Count
		counts[wd]++
		if day.Count > 0 {
			active[wd]++
		}

		switch {
		case day.Count > 10:
			p.Distribution.High++
		case day.Count > 3:
			p.Distribution.Medium++
		case day.Count > 0:
			p.Distribution.Low++
		}
	}

	for i := range p.Weekdays {
		stat := WeekdayStat{
			Name:       weekdayNames[i],
			Total:      totals[i],
			ActiveDays: active[i],
		}
		if counts[i] > 0 {
			stat.Average = round2(float64(totals[i]) / float64(counts[i]))
		}
		p.Weekdays[i] = stat
	}

	// First maximum wins, last minimum wins; matches the stable
	// descending sort the report has always used.
	p.MostProductive = p.Weekdays[0]
	p.LeastProductive = p.Weekdays[0]
	for _, stat := range p.Weekdays[1:] {
		if stat.Average > p.MostProductive.Average {
			p.MostProductive = stat
		}
		if stat.Average <= p.LeastProductive.Average {
			p.LeastProductive = stat
		}
	}

	return p
}

// mondayIndexed converts Go's Sunday-first weekday to a Monday-first index.
func mondayIndexed(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
