package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alcyxob/coach-api/internal/domain"
)

func night(date string, hours int, minutes, quality *int) domain.SleepRecord {
	return domain.SleepRecord{Date: date, Hours: hours, Minutes: minutes, Quality: quality}
}

func TestComputeSleepStatsEmpty(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.ComputeSleepStats(nil, "7d", testNow)

	assert.Equal(t, "7d", result.Period)
	assert.Zero(t, result.TotalNights)
	assert.Zero(t, result.AverageHours)
	assert.Zero(t, result.AverageQuality)
	assert.Empty(t, result.BestNight.Date)
	assert.Empty(t, result.WorstNight.Date)
	assert.Zero(t, result.Consistency)
	assert.Equal(t, domain.TrendStable, result.Trend)
	assert.Equal(t, testNow, result.GeneratedAt)
}

func TestComputeSleepStatsSingleRecord(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	records := []domain.SleepRecord{night("2025-06-14", 7, intPtr(30), intPtr(4))}

	result := engine.ComputeSleepStats(records, "30d", testNow)

	assert.Equal(t, 1, result.TotalNights)
	assert.InDelta(t, 7.5, result.AverageHours, 1e-9)
	assert.InDelta(t, 4.0, result.AverageQuality, 1e-9)
	assert.Equal(t, result.BestNight, result.WorstNight)
	assert.Equal(t, "2025-06-14", result.BestNight.Date)
	assert.InDelta(t, 100.0, result.Consistency, 1e-9)
	assert.Equal(t, domain.TrendStable, result.Trend)
}

// Best night maximizes (quality, duration); worst minimizes it.
func TestComputeSleepStatsBestAndWorst(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	records := []domain.SleepRecord{
		night("2025-06-10", 8, nil, intPtr(5)),
		night("2025-06-11", 4, nil, intPtr(1)),
	}

	result := engine.ComputeSleepStats(records, "7d", testNow)

	assert.Equal(t, "2025-06-10", result.BestNight.Date)
	assert.Equal(t, 5, result.BestNight.Quality)
	assert.Equal(t, "2025-06-11", result.WorstNight.Date)
	assert.Equal(t, 1, result.WorstNight.Quality)
	assert.InDelta(t, 6.0, result.AverageHours, 1e-9)
}

func TestComputeSleepStatsQualityTieBreaksOnDuration(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	records := []domain.SleepRecord{
		night("2025-06-10", 6, nil, intPtr(4)),
		night("2025-06-11", 8, nil, intPtr(4)),
		night("2025-06-12", 5, nil, intPtr(4)),
	}

	result := engine.ComputeSleepStats(records, "7d", testNow)

	assert.Equal(t, "2025-06-11", result.BestNight.Date)
	assert.Equal(t, "2025-06-12", result.WorstNight.Date)
}

// Nights without a rating rank at quality 3, so an unrated long night beats
// a poorly rated one and loses to a well rated one.
func TestComputeSleepStatsMissingQualityDefaultsToMidpoint(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	records := []domain.SleepRecord{
		night("2025-06-10", 9, nil, nil),
		night("2025-06-11", 6, nil, intPtr(5)),
		night("2025-06-12", 8, nil, intPtr(2)),
	}

	result := engine.ComputeSleepStats(records, "7d", testNow)

	assert.Equal(t, "2025-06-11", result.BestNight.Date)
	assert.Equal(t, "2025-06-12", result.WorstNight.Date)
	// Only the two rated nights feed the average quality.
	assert.InDelta(t, 3.5, result.AverageQuality, 1e-9)
}

func TestComputeSleepStatsConsistency(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("identical nights score 100", func(t *testing.T) {
		records := []domain.SleepRecord{
			night("2025-06-10", 8, nil, nil),
			night("2025-06-11", 8, nil, nil),
			night("2025-06-12", 8, nil, nil),
		}
		result := engine.ComputeSleepStats(records, "7d", testNow)
		assert.InDelta(t, 100.0, result.Consistency, 1e-9)
	})

	t.Run("all-zero nights guard division by zero", func(t *testing.T) {
		records := []domain.SleepRecord{
			night("2025-06-10", 0, nil, nil),
			night("2025-06-11", 0, nil, nil),
		}
		result := engine.ComputeSleepStats(records, "7d", testNow)
		assert.Zero(t, result.Consistency)
	})

	t.Run("varied nights score between 0 and 100", func(t *testing.T) {
		records := []domain.SleepRecord{
			night("2025-06-10", 4, nil, nil),
			night("2025-06-11", 8, nil, nil),
			night("2025-06-12", 6, nil, nil),
			night("2025-06-13", 10, nil, nil),
		}
		result := engine.ComputeSleepStats(records, "7d", testNow)
		assert.Greater(t, result.Consistency, 0.0)
		assert.Less(t, result.Consistency, 100.0)
	})
}

func TestComputeSleepStatsTrend(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// Oldest-first: sleep improving over the window.
	records := []domain.SleepRecord{
		night("2025-06-10", 5, nil, nil),
		night("2025-06-11", 5, nil, nil),
		night("2025-06-12", 7, nil, nil),
		night("2025-06-13", 8, nil, nil),
	}

	result := engine.ComputeSleepStats(records, "7d", testNow)
	assert.Equal(t, domain.TrendImproving, result.Trend)
}
