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
	"sort"

	"github.com/gitpulsehq/gitpulse/internal/github"
)

// defaultLanguageColor is used when GitHub has no display color for a language.
const defaultLanguageColor = "#000000"

// Language is an aggregated language entry across all of a user's
// repositories: total byte size, GitHub's display color, and the share
// of the grand total as a percentage rounded to one decimal.
type Language struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Size       int     `json:"size"`
	Percentage float64 `json:"percentage"`
}

// AggregateLanguages sums language byte sizes across repositories and
// returns the top limit languages by size, largest first. Percentages are
// computed against the total across ALL languages, not just the returned
// ones, so the returned slice may sum to less than 100%. Ties are broken
// by name for deterministic output. A non-positive limit returns all
// languages.
func AggregateLanguages(repos []github.RepositoryLanguages, limit int) []Language {
	type entry struct {
		size  int
		color string
	}
	totals := make(map[string]*entry)

	for _, repo := range repos {
		for _, usage := range repo.Languages {
			e, ok := totals[usage.Name]
			if !ok {
				e = &entry{color: defaultLanguageColor}
				totals[usage.Name] = e
			}
			e.size += usage.Size
			if usage.Color != "" {
				e.color = usage.Color
			}
		}
	}

	grandTotal := 0
	for _, e := range totals {
		grandTotal += e.size
	}

	languages := make([]Language, 0, len(totals))
	for name, e := range totals {
		lang := Language{
			Name:  name,
			Color: e.color,
			Size:  e.size,
		}
		if grandTotal > 0 {
			lang.Percentage = round1(float64(e.size) / float64(grandTotal) * 100)
		}
		languages = append(languages, lang)
	}

	sort.Slice(languages, func(i, j int) bool {
		if languages[i].Size != languages[j].Size {
			return languages[i].Size > languages[j].Size
		}
		return languages[i].Name < languages[j].Name
	})

	if limit > 0 && len(languages) > limit {
		languages = languages[:limit]
	}

	return languages
}
