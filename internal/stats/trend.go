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

import "sort"

// YearTotal is the total contribution count for one calendar year.
type YearTotal struct {
	Year          int `json:"year"`
	Contributions int `json:"contributions"`
}

// YearStat extends YearTotal with year-over-year growth. Growth is nil for
// the first year in the range, which has nothing to compare against.
type YearStat struct {
	Year          int      `json:"year"`
	Contributions int      `json:"contributions"`
	Growth        *float64 `json:"growth,omitempty"`
}

// YearlyTrend orders per-year totals chronologically and computes growth
// percentages against the previous year, rounded to one decimal. Growth
// from a zero year is 100% when the next year has any contributions and
// 0% otherwise.
func YearlyTrend(totals []YearTotal) []YearStat {
	sorted := make([]YearTotal, len(totals))
	copy(sorted, totals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Year < sorted[j].Year
	})

	trend := make([]YearStat, 0, len(sorted))
	for i, yt := range sorted {
		stat := YearStat{
			Year:          yt.Year,
			Contributions: yt.Contributions,
		}
		if i > 0 {
			prev := sorted[i-1].Contributions
			var growth float64
			switch {
			case prev > 0:
				growth = round1(float64(yt.Contributions-prev) / float64(prev) * 100)
			case yt.Contributions > 0:
				growth = 100
			}
			stat.Growth = &growth
		}
		trend = append(trend, stat)
	}

	return trend
}
