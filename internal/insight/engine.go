// Package insight turns raw fitness record collections into derived
// statistics (streaks, consistency, trends, calorie estimates) and
// human-readable insights, recommendations, achievements and a bounded
// 0-100 overall score.
//
// The engine is pure and synchronous: it operates on collections already
// fetched by the caller, never touches a repository or the system clock
// ("now" is always injected), and never returns an error - sparse or empty
// history degrades to zero-valued statistics and default insight text, not
// to a failure. Malformed records are the loader's problem; by the time a
// collection reaches this package every element is well-formed.
package insight

import (
	"time"

	"alcyxob/coach-api/internal/domain"
)

// Engine evaluates aggregations, scores and insight rules using a fixed set
// of tunables. Construct it once and reuse it; it is immutable and safe for
// concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine with the given tunables. Zero-valued tunables
// fall back to their defaults so a partially populated config section cannot
// silently zero out the calorie or trend math.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.CaloriesPerMinute <= 0 {
		cfg.CaloriesPerMinute = def.CaloriesPerMinute
	}
	if cfg.TrendThreshold <= 0 {
		cfg.TrendThreshold = def.TrendThreshold
	}
	return &Engine{cfg: cfg}
}

// ComputeWorkoutAnalytics aggregates the three workout-side collections into
// one WorkoutAnalytics, including the overall score. The collections are
// fetched independently by the caller and are not guaranteed to be a
// consistent snapshot of the same instant; that skew is accepted.
func (e *Engine) ComputeWorkoutAnalytics(
	sessions []domain.WorkoutSession,
	strength []domain.StrengthRecord,
	measurements []domain.BodyMeasurement,
	now time.Time,
) domain.WorkoutAnalytics {
	analytics := e.AggregateWorkouts(sessions, now)
	analytics.StrengthProgress = e.AggregateStrength(strength)
	analytics.Measurements = e.AggregateMeasurements(measurements)
	analytics.OverallScore = e.OverallScore(analytics)
	analytics.GeneratedAt = now
	return analytics
}
