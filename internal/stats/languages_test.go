package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitpulsehq/gitpulse/internal/github"
)

func TestAggregateLanguages(t *testing.T) {
	repos := []github.RepositoryLanguages{
		{
			Repository: "service",
			Languages: []github.LanguageUsage{
				{Name: "Go", Color: "#00ADD8", Size: 60000},
				{Name: "Shell", Color: "#89e051", Size: 5000},
			},
		},
		{
			Repository: "tooling",
			Languages: []github.LanguageUsage{
				{Name: "Go", Color: "#00ADD8", Size: 20000},
				{Name: "Python", Color: "#3572A5", Size: 15000},
			},
		},
	}

	languages := AggregateLanguages(repos, 5)
	require.Len(t, languages, 3)

	assert.Equal(t, "Go", languages[0].Name)
	assert.Equal(t, 80000, languages[0].Size)
	assert.Equal(t, "#00ADD8", languages[0].Color)
	assert.InDelta(t, 80.0, languages[0].Percentage, 0.001)

	assert.Equal(t, "Python", languages[1].Name)
	assert.InDelta(t, 15.0, languages[1].Percentage, 0.001)

	assert.Equal(t, "Shell", languages[2].Name)
	assert.InDelta(t, 5.0, languages[2].Percentage, 0.001)
}

func TestAggregateLanguages_Limit(t *testing.T) {
	repos := []github.RepositoryLanguages{
		{
			Languages: []github.LanguageUsage{
				{Name: "Go", Size: 400},
				{Name: "Rust", Size: 300},
				{Name: "Python", Size: 200},
				{Name: "Shell", Size: 100},
			},
		},
	}

	languages := AggregateLanguages(repos, 2)
	require.Len(t, languages, 2)
	assert.Equal(t, "Go", languages[0].Name)
	assert.Equal(t, "Rust", languages[1].Name)

	// Non-positive limit returns everything.
	assert.Len(t, AggregateLanguages(repos, 0), 4)
}

func TestAggregateLanguages_ColorFallback(t *testing.T) {
	repos := []github.RepositoryLanguages{
		{
			Languages: []github.LanguageUsage{
				{Name: "Brainfuck", Size: 100},
			},
		},
	}

	languages := AggregateLanguages(repos, 5)
	require.Len(t, languages, 1)
	assert.Equal(t, "#000000", languages[0].Color)
}

func TestAggregateLanguages_TieBreakByName(t *testing.T) {
	repos := []github.RepositoryLanguages{
		{
			Languages: []github.LanguageUsage{
				{Name: "Zig", Size: 100},
				{Name: "Ada", Size: 100},
			},
		},
	}

	languages := AggregateLanguages(repos, 5)
	require.Len(t, languages, 2)
	assert.Equal(t, "Ada", languages[0].Name)
	assert.Equal(t, "Zig", languages[1].Name)
}

func TestAggregateLanguages_Empty(t *testing.T) {
	assert.Empty(t, AggregateLanguages(nil, 5))

	// Repositories without language data contribute nothing.
	repos := []github.RepositoryLanguages{{Repository: "empty"}}
	assert.Empty(t, AggregateLanguages(repos, 5))
}

func TestAggregateLanguages_PercentageRounding(t *testing.T) {
	repos := []github.RepositoryLanguages{
		{
			Languages: []github.LanguageUsage{
				{Name: "Go", Size: 1},
				{Name: "Rust", Size: 2},
			},
		},
	}

	languages := AggregateLanguages(repos, 5)
	require.Len(t, languages, 2)
	// 2/3 and 1/3 round to one decimal.
	assert.InDelta(t, 66.7, languages[0].Percentage, 0.001)
	assert.InDelta(t, 33.3, languages[1].Percentage, 0.001)
}
