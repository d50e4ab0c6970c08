package render

import (
	"fmt"
	"strings"
	"time"
)

// Markdown renders the profile README. The stats sections are embedded in
// fenced code blocks so the block bars keep their monospace alignment on
// github.com. When data.Previous is set, a delta section compares this run
// against the previous one.
func Markdown(data ReportData, generatedAt time.Time) string {
	var b strings.Builder

	title := "GitHub Stats"
	if data.User != nil {
		title = fmt.Sprintf("GitHub Stats for %s", data.User.Login)
	}
	b.WriteString(fmt.Sprintf("# %s\n\n", title))
	b.WriteString(fmt.Sprintf("Last updated: %s\n\n", generatedAt.UTC().Format(time.RFC3339)))

	if data.User != nil {
		b.WriteString(userLine(data.User) + "\n\n")
	}

	b.WriteString("## Languages\n\n")
	fenced(&b, LanguageBars(data.Languages))

	b.WriteString("## Productivity\n\n")
	fenced(&b, ProductivityReport(data.Productivity))

	b.WriteString("## Yearly Trend\n\n")
	fenced(&b, YearlyTrend(data.Trend))

	b.WriteString("## Streaks\n\n")
	fenced(&b, StreakReport(data.Streaks))

	if data.Previous != nil {
		b.WriteString("## Since Last Update\n\n")
		b.WriteString(deltaLine("Contributions", data.Streaks.Total, data.Previous.TotalContributions))
		b.WriteString(deltaLine("Longest streak", data.Streaks.Longest, data.Previous.LongestStreak))
		if data.User != nil {
			b.WriteString(deltaLine("Followers", data.User.Followers, data.Previous.Followers))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\nGenerated by [gitpulse](https://github.com/gitpulsehq/gitpulse).\n")

	return b.String()
}

// fenced writes content inside a text code fence followed by a blank line.
func fenced(b *strings.Builder, content string) {
	b.WriteString("```text\n")
	b.WriteString(content)
	b.WriteString("\n```\n\n")
}

// deltaLine formats one bullet of the since-last-update section.
func deltaLine(label string, current, previous int) string {
	diff := current - previous
	switch {
	case diff > 0:
		return grouped.Sprintf("- %s: %d (+%d)\n", label, current, diff)
	case diff < 0:
		return grouped.Sprintf("- %s: %d (%d)\n", label, current, diff)
	default:
		return grouped.Sprintf("- %s: %d (no change)\n", label, current)
	}
}
