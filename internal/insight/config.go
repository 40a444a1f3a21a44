package insight

// Config holds the engine tunables that product may want to adjust without a
// code change. Everything else (scoring bands, rule thresholds) is a named
// constant below, shared between the score calculator and the rule engine so
// the two can never drift apart.
type Config struct {
	// CaloriesPerMinute is the flat calories-per-minute estimate applied to
	// workout duration. 6.0 kcal/min is a deliberate, documented assumption
	// for resistance training, not a measured value.
	CaloriesPerMinute float64 `mapstructure:"calories_per_minute"`

	// TrendThreshold is the minimum half-over-half average difference, in the
	// series' native unit (hours for sleep), before a trend is labeled
	// improving or declining rather than stable.
	TrendThreshold float64 `mapstructure:"trend_threshold"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		CaloriesPerMinute: 6.0,
		TrendThreshold:    0.5,
	}
}

// Time windows for the trailing-week and trailing-month counts. Both are
// half-open: a session counts when it starts strictly after now minus the
// window.
const (
	weekWindowDays  = 7
	monthWindowDays = 30
)

// favoriteExerciseLimit caps the favorite-exercises list.
const favoriteExerciseLimit = 5

// minTrendPoints is the minimum series length the trend classifier needs;
// shorter series are always "stable".
const minTrendPoints = 4

// defaultSleepQuality stands in for an absent 1-5 quality rating when ranking
// nights, so unrated nights are not unfairly penalized. Midpoint of the scale.
const defaultSleepQuality = 3

// Scoring-band boundaries and rule thresholds. The rule
// engine references the same constants so its text stays numerically
// consistent with the score.
const (
	// Consistency band: workouts this week.
	weeklyIdealWorkouts  = 4 // full 40 points
	weeklyTargetWorkouts = 3 // "excellent consistency" threshold, 30 points

	// Duration band: average session minutes.
	durationOptimalMin    = 45.0
	durationOptimalMax    = 75.0
	durationAcceptableMin = 30.0
	durationAcceptableMax = 90.0

	// Streak band.
	streakMilestoneDays = 7
	streakBuildingDays  = 3

	// Variety rule: distinct favorite exercises.
	varietyGoodCount = 3
)

// Band caps. The four caps sum to the natural maximum of 100; the score is
// never re-normalized.
const (
	consistencyBandMax = 40
	durationBandMax    = 20
	trackingBandMax    = 20
	streakBandMax      = 20
)
