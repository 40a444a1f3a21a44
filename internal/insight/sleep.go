package insight

import (
	"time"

	"github.com/montanaflynn/stats"

	"alcyxob/coach-api/internal/domain"
)

// ComputeSleepStats reduces a period of sleep records into aggregate
// statistics. Records must be ordered oldest-first (the trend classifier
// depends on it). Empty input yields a zero-valued result with empty
// best/worst night dates and a stable trend, never an error.
func (e *Engine) ComputeSleepStats(records []domain.SleepRecord, period string, now time.Time) domain.SleepStats {
	result := domain.SleepStats{
		Period:      period,
		Trend:       domain.TrendStable,
		GeneratedAt: now,
	}
	if len(records) == 0 {
		return result
	}

	result.TotalNights = len(records)

	totals := make([]float64, len(records))
	qualitySum := 0
	qualityCount := 0
	bestIdx, worstIdx := 0, 0

	for i := range records {
		record := &records[i]
		totals[i] = record.TotalHours()
		if record.Quality != nil {
			qualitySum += *record.Quality
			qualityCount++
		}
		if betterNight(record, totals[i], &records[bestIdx], totals[bestIdx]) {
			bestIdx = i
		}
		if betterNight(&records[worstIdx], totals[worstIdx], record, totals[i]) {
			worstIdx = i
		}
	}

	result.AverageHours, _ = stats.Mean(totals)
	if qualityCount > 0 {
		result.AverageQuality = float64(qualitySum) / float64(qualityCount)
	}
	result.BestNight = toNight(&records[bestIdx], totals[bestIdx])
	result.WorstNight = toNight(&records[worstIdx], totals[worstIdx])
	result.Consistency = consistencyScore(totals, result.AverageHours)
	result.Trend = e.ClassifyTrend(totals)

	return result
}

// betterNight reports whether candidate ranks strictly above incumbent on
// the lexicographic (quality, duration) order. Absent quality ratings rank
// at the scale midpoint.
func betterNight(candidate *domain.SleepRecord, candidateHours float64, incumbent *domain.SleepRecord, incumbentHours float64) bool {
	cq := nightQuality(candidate)
	iq := nightQuality(incumbent)
	if cq != iq {
		return cq > iq
	}
	return candidateHours > incumbentHours
}

func nightQuality(record *domain.SleepRecord) int {
	if record.Quality == nil {
		return defaultSleepQuality
	}
	return *record.Quality
}

func toNight(record *domain.SleepRecord, totalHours float64) domain.SleepNight {
	return domain.SleepNight{
		Date:       record.Date,
		TotalHours: totalHours,
		Quality:    nightQuality(record),
	}
}

// consistencyScore maps the population standard deviation of nightly totals
// onto 0-100: zero spread scores 100, a spread equal to (or above) the mean
// scores 0. A zero mean short-circuits to 0 to avoid dividing by zero.
func consistencyScore(totals []float64, averageHours float64) float64 {
	if averageHours == 0 {
		return 0
	}
	stdDev, err := stats.StandardDeviationPopulation(totals)
	if err != nil {
		return 0
	}
	ratio := stdDev / averageHours
	if ratio > 1 {
		ratio = 1
	}
	score := (1 - ratio) * 100
	if score < 0 {
		score = 0
	}
	return score
}
