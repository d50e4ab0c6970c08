package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	generatedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	out := Markdown(testReportData(), generatedAt)

	assert.True(t, strings.HasPrefix(out, "# GitHub Stats for octocat\n"))
	assert.Contains(t, out, "Last updated: 2025-06-01T12:00:00Z")
	assert.Contains(t, out, "## Languages")
	assert.Contains(t, out, "## Productivity")
	assert.Contains(t, out, "## Yearly Trend")
	assert.Contains(t, out, "## Streaks")
	assert.Contains(t, out, "Generated by [gitpulse]")

	// Each stats section sits inside a text fence.
	assert.Equal(t, 4, strings.Count(out, "```text\n"))
	assert.Equal(t, 8, strings.Count(out, "```"))

	// No previous run, no delta section.
	assert.NotContains(t, out, "## Since Last Update")
}

func TestMarkdown_WithPrevious(t *testing.T) {
	data := testReportData()
	data.Previous = &Headline{
		TotalContributions: 1200,
		LongestStreak:      21,
		Followers:          4500,
	}

	out := Markdown(data, time.Now())
	require.Contains(t, out, "## Since Last Update")
	assert.Contains(t, out, "- Contributions: 1,500 (+300)\n")
	assert.Contains(t, out, "- Longest streak: 21 (no change)\n")
	assert.Contains(t, out, "- Followers: 4,521 (+21)\n")
}

func TestMarkdown_NegativeDelta(t *testing.T) {
	data := testReportData()
	data.Previous = &Headline{
		TotalContributions: 2000,
		LongestStreak:      30,
		Followers:          4521,
	}

	out := Markdown(data, time.Now())
	assert.Contains(t, out, "- Contributions: 1,500 (-500)\n")
	assert.Contains(t, out, "- Longest streak: 21 (-9)\n")
	assert.Contains(t, out, "- Followers: 4,521 (no change)\n")
}

func TestMarkdown_NoUser(t *testing.T) {
	data := testReportData()
	data.User = nil

	out := Markdown(data, time.Now())
	assert.True(t, strings.HasPrefix(out, "# GitHub Stats\n"))
	assert.NotContains(t, out, "octocat")
}

func TestMarkdown_TimestampIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	generatedAt := time.Date(2025, 6, 1, 21, 0, 0, 0, loc)

	out := Markdown(testReportData(), generatedAt)
	assert.Contains(t, out, "Last updated: 2025-06-01T12:00:00Z")
}
