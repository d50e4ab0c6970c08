package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gitpulsehq/gitpulse/internal/github"
)

func day(date string, count int) github.ContributionDay {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return github.ContributionDay{Date: t, Count: count}
}

func TestCalculateStreaks_CurrentReachesToday(t *testing.T) {
	today := time.Date(2025, 1, 10, 15, 30, 0, 0, time.UTC)
	days := []github.ContributionDay{
		day("2025-01-05", 2),
		day("2025-01-06", 0),
		day("2025-01-07", 4),
		day("2025-01-08", 1),
		day("2025-01-09", 3),
		day("2025-01-10", 5),
	}

	s := CalculateStreaks(days, today)
	assert.Equal(t, 4, s.Current)
	assert.Equal(t, 4, s.Longest)
}

func TestCalculateStreaks_CurrentEndsYesterday(t *testing.T) {
	// No entry for today yet; a run ending yesterday still counts.
	today := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	days := []github.ContributionDay{
		day("2025-01-07", 1),
		day("2025-01-08", 2),
		day("2025-01-09", 3),
	}

	s := CalculateStreaks(days, today)
	assert.Equal(t, 3, s.Current)
	assert.Equal(t, 3, s.Longest)
}

func TestCalculateStreaks_StaleRunIsNotCurrent(t *testing.T) {
	today := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	days := []github.ContributionDay{
		day("2025-01-01", 5),
		day("2025-01-02", 5),
		day("2025-01-03", 5),
		day("2025-01-04", 0),
		day("2025-01-05", 0),
	}

	s := CalculateStreaks(days, today)
	assert.Equal(t, 0, s.Current)
	assert.Equal(t, 3, s.Longest)
}

func TestCalculateStreaks_ZeroDayBreaksRun(t *testing.T) {
	today := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	days := []github.ContributionDay{
		day("2025-01-01", 1),
		day("2025-01-02", 1),
		day("2025-01-03", 1),
		day("2025-01-04", 0),
		day("2025-01-05", 2),
		day("2025-01-06", 2),
	}

	s := CalculateStreaks(days, today)
	assert.Equal(t, 2, s.Current)
	assert.Equal(t, 3, s.Longest)
}

func TestCalculateStreaks_UnsortedInput(t *testing.T) {
	today := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	days := []github.ContributionDay{
		day("2025-01-03", 1),
		day("2025-01-01", 1),
		day("2025-01-02", 1),
	}

	s := CalculateStreaks(days, today)
	assert.Equal(t, 3, s.Current)
	assert.Equal(t, 3, s.Longest)
}

func TestCalculateStreaks_Empty(t *testing.T) {
	s := CalculateStreaks(nil, time.Now())
	assert.Zero(t, s.Current)
	assert.Zero(t, s.Longest)
}

func TestAveragePerDay(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 10, 23, 0, 0, 0, time.UTC)

	// 10 inclusive days.
	assert.InDelta(t, 3.0, AveragePerDay(30, from, to), 0.001)
	assert.InDelta(t, 0.1, AveragePerDay(1, from, to), 0.001)

	// Single-day range.
	assert.InDelta(t, 7.0, AveragePerDay(7, from, from), 0.001)

	// Inverted range yields zero.
	assert.Zero(t, AveragePerDay(10, to, from))
}

func TestAveragePerDay_Rounding(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	// 10/3 = 3.333... rounds to 3.33.
	assert.InDelta(t, 3.33, AveragePerDay(10, from, to), 0.0001)
}
