package insight

import (
	"github.com/montanaflynn/stats"

	"alcyxob/coach-api/internal/domain"
)

// ClassifyTrend labels a time-ordered numeric series as improving, declining
// or stable by comparing the averages of its two halves.
//
// The series must be ordered oldest-first; that is the one ordering
// convention used throughout this package, regardless of how a repository
// happens to return rows. Series shorter than four points are always
// "stable" - two points per half is the minimum for the comparison to mean
// anything.
func (e *Engine) ClassifyTrend(series []float64) domain.Trend {
	if len(series) < minTrendPoints {
		return domain.TrendStable
	}

	mid := len(series) / 2
	firstHalfAvg, _ := stats.Mean(series[:mid])
	secondHalfAvg, _ := stats.Mean(series[mid:])

	diff := secondHalfAvg - firstHalfAvg
	switch {
	case diff > e.cfg.TrendThreshold:
		return domain.TrendImproving
	case diff < -e.cfg.TrendThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}
