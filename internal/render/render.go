// Package render turns computed profile statistics into the terminal
// report and the profile README markdown. Layout uses display-width
// aware padding so language and weekday names with wide runes keep the
// bars aligned.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gitpulsehq/gitpulse/internal/github"
	"github.com/gitpulsehq/gitpulse/internal/stats"
)

const (
	// languageBarCells is the language bar width; each cell covers 5%.
	languageBarCells = 20

	// weekdayBarCells caps the weekly breakdown bars.
	weekdayBarCells = 20

	// trendBarCells is the yearly trend bar width, scaled to the max year.
	trendBarCells = 10

	separatorWidth = 60
)

// grouped formats integers with thousands separators ("1,234").
var grouped = message.NewPrinter(language.English)

// groupedInt renders one integer with thousands separators.
func groupedInt(n int) string {
	return grouped.Sprintf("%d", n)
}

// StreakSummary is the headline streak block of a report.
type StreakSummary struct {
	Current       int     `json:"current"`
	Longest       int     `json:"longest"`
	AveragePerDay float64 `json:"average_per_day"`
	Total         int     `json:"total"`
}

// Headline holds the numbers compared against a previous run to show
// deltas in the generated README.
type Headline struct {
	TotalContributions int
	LongestStreak      int
	Followers          int
}

// ReportData collects everything a report or README is rendered from.
type ReportData struct {
	User         *github.UserInfo
	Languages    []stats.Language
	Productivity stats.Productivity
	Trend        []stats.YearStat
	Streaks      StreakSummary

	// Previous enables delta lines in the README; nil on first runs.
	Previous *Headline
}

// Report renders the full terminal report.
func Report(data ReportData) string {
	sep := strings.Repeat("=", separatorWidth)

	var b strings.Builder
	b.WriteString(sep + "\n")
	b.WriteString("GitHub Profile Statistics\n")
	b.WriteString(sep + "\n\n")

	if data.User != nil {
		b.WriteString(userLine(data.User) + "\n\n")
	}

	b.WriteString("🔤 Top Programming Languages:\n\n")
	b.WriteString(LanguageBars(data.Languages) + "\n\n")
	b.WriteString(ProductivityReport(data.Productivity) + "\n\n")
	b.WriteString(YearlyTrend(data.Trend) + "\n\n")
	b.WriteString(StreakReport(data.Streaks) + "\n")
	b.WriteString(sep + "\n")

	return b.String()
}

// userLine formats the report header line for a user.
func userLine(user *github.UserInfo) string {
	name := user.Login
	if user.Name != "" {
		name = fmt.Sprintf("%s (%s)", user.Login, user.Name)
	}
	// Years must stay ungrouped, so only the counts go through the
	// grouping printer.
	return fmt.Sprintf("%s: %s repositories, %s followers, on GitHub since %d",
		name, groupedInt(user.Repositories), groupedInt(user.Followers), user.CreatedAt.Year())
}

// LanguageBars renders one 20-cell progress bar per language, one cell
// per 5% of the total. Returns a placeholder line when no language data
// is available.
func LanguageBars(languages []stats.Language) string {
	if len(languages) == 0 {
		return "No language data available"
	}

	lines := make([]string, 0, len(languages))
	for _, lang := range languages {
		filled := int(lang.Percentage / 5)
		if filled > languageBarCells {
			filled = languageBarCells
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", languageBarCells-filled)
		lines = append(lines, fmt.Sprintf("%s %s %5.1f%%", padRight(lang.Name, 12), bar, lang.Percentage))
	}
	return strings.Join(lines, "\n")
}

// ProductivityReport renders the weekday productivity section with the
// most/least productive days and a per-weekday breakdown.
func ProductivityReport(p stats.Productivity) string {
	var b strings.Builder
	b.WriteString("📊 Productivity Insights:\n\n")
	b.WriteString(fmt.Sprintf("  🏆 Most productive:  %s (avg %s commits)\n",
		p.MostProductive.Name, formatFloat(p.MostProductive.Average)))
	b.WriteString(fmt.Sprintf("  😴 Least productive: %s (avg %s commits)\n",
		p.LeastProductive.Name, formatFloat(p.LeastProductive.Average)))
	b.WriteString("\n  Weekly breakdown:\n")

	for _, stat := range p.Weekdays {
		cells := int(stat.Average * 2)
		if cells > weekdayBarCells {
			cells = weekdayBarCells
		}
		if cells < 0 {
			cells = 0
		}
		bar := strings.Repeat("▓", cells) + strings.Repeat("░", weekdayBarCells-cells)
		b.WriteString(fmt.Sprintf("    %s %s %5.1f avg\n", padRight(stat.Name, 10), bar, stat.Average))
	}

	b.WriteString(fmt.Sprintf("\n  Activity: %d light, %d steady, %d heavy days",
		p.Distribution.Low, p.Distribution.Medium, p.Distribution.High))

	return b.String()
}

// YearlyTrend renders per-year totals with 10-cell bars scaled against
// the busiest year and a growth suffix for every year but the first.
func YearlyTrend(trend []stats.YearStat) string {
	if len(trend) == 0 {
		return "No contribution data available"
	}

	maxContributions := 0
	for _, year := range trend {
		if year.Contributions > maxContributions {
			maxContributions = year.Contributions
		}
	}

	var b strings.Builder
	b.WriteString("📈 Yearly Contribution Trend:\n")

	for _, year := range trend {
		cells := 0
		if maxContributions > 0 {
			cells = year.Contributions * trendBarCells / maxContributions
		}
		bar := strings.Repeat("▓", cells) + strings.Repeat("░", trendBarCells-cells)

		line := fmt.Sprintf("\n  %d: %s %s commits", year.Year, bar, groupedInt(year.Contributions))
		b.WriteString(line)
		if suffix := growthSuffix(year.Growth); suffix != "" {
			b.WriteString(" " + suffix)
		}
	}

	return b.String()
}

// growthSuffix formats year-over-year growth with one decimal always
// shown: "(+12.3%)", "(-4.5%)", "(+50.0%)", or "(±0%)" for flat years.
// Empty for the first year, which has no comparison.
func growthSuffix(growth *float64) string {
	if growth == nil {
		return ""
	}
	switch {
	case *growth > 0:
		return fmt.Sprintf("(+%.1f%%)", *growth)
	case *growth < 0:
		return fmt.Sprintf("(%.1f%%)", *growth)
	default:
		return "(±0%)"
	}
}

// StreakReport renders the streak summary block.
func StreakReport(s StreakSummary) string {
	var b strings.Builder
	b.WriteString("⚡ Contribution Streaks:\n\n")
	b.WriteString(fmt.Sprintf("  Current streak:      %d days\n", s.Current))
	b.WriteString(fmt.Sprintf("  Longest streak:      %d days\n", s.Longest))
	b.WriteString(fmt.Sprintf("  Average per day:     %s\n", formatFloat(s.AveragePerDay)))
	b.WriteString(grouped.Sprintf("  Total contributions: %d", s.Total))
	return b.String()
}

// padRight pads a string to the given display width. Strings wider than
// the target are returned unchanged.
func padRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// formatFloat formats a float with its shortest exact representation,
// so 4.5 renders as "4.5" and 4 as "4".
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
