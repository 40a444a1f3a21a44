package domain

import "time"

// The analytics types below are derived value objects produced by the insight
// engine. They are created fresh per request and never persisted; their only
// identity is the (user, time window) pair that produced them. Every field is
// serialized explicitly (no omitempty) so API consumers always see the full
// shape, even when the values are zero.

// WorkoutAnalytics is the aggregated view of a user's workout history.
// OverallScore is derivable from this struct alone, without re-querying.
type WorkoutAnalytics struct {
	TotalWorkouts          int                `json:"totalWorkouts"`
	TotalDurationMinutes   int                `json:"totalDurationMinutes"`
	AverageWorkoutDuration float64            `json:"averageWorkoutDuration"`
	WorkoutsThisWeek       int                `json:"workoutsThisWeek"`
	WorkoutsThisMonth      int                `json:"workoutsThisMonth"`
	LastWorkoutDate        *time.Time         `json:"lastWorkoutDate"`
	FavoriteExercises      []string           `json:"favoriteExercises"`
	CurrentStreak          int                `json:"currentStreak"`
	LongestStreak          int                `json:"longestStreak"`
	CaloriesBurnedThisWeek int                `json:"caloriesBurnedThisWeek"`
	CaloriesBurnedTotal    int                `json:"caloriesBurnedTotal"`
	StrengthProgress       []StrengthProgress `json:"strengthProgress"`
	Measurements           []BodyMeasurement  `json:"measurements"`
	OverallScore           int                `json:"overallScore"`
	GeneratedAt            time.Time          `json:"generatedAt"`
}

// StrengthProgress is a strength record annotated with its change relative to
// a historical baseline. ProgressPercentage is currently always 0: a real
// percentage needs a baseline history that is not modeled yet. Known gap,
// kept explicit rather than faked.
type StrengthProgress struct {
	ExerciseID         string    `json:"exerciseId"`
	ExerciseName       string    `json:"exerciseName"`
	OneRepMax          float64   `json:"oneRepMax"`
	ProgressPercentage float64   `json:"progressPercentage"`
	LastUpdated        time.Time `json:"lastUpdated"`
}

// SleepNight identifies one night inside a SleepStats result.
type SleepNight struct {
	Date       string  `json:"date"`
	TotalHours float64 `json:"totalHours"`
	Quality    int     `json:"quality"`
}

// SleepStats is the aggregated view of a user's sleep history for a period.
type SleepStats struct {
	Period         string     `json:"period"`
	TotalNights    int        `json:"totalNights"`
	AverageHours   float64    `json:"averageHours"`
	AverageQuality float64    `json:"averageQuality"`
	BestNight      SleepNight `json:"bestNight"`
	WorstNight     SleepNight `json:"worstNight"`
	Consistency    float64    `json:"consistency"` // 0-100
	Trend          Trend      `json:"trend"`
	GeneratedAt    time.Time  `json:"generatedAt"`
}

// Trend labels the direction of a numeric series over time.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// RiskLevel buckets the number of detected risk factors.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// WorkoutInsights is the human-readable output of the insight rule engine.
type WorkoutInsights struct {
	Insights            []string  `json:"insights"`
	Recommendations     []string  `json:"recommendations"`
	Achievements        []string  `json:"achievements"`
	RiskFactors         []string  `json:"riskFactors"`
	RiskRecommendations []string  `json:"riskRecommendations"`
	RiskLevel           RiskLevel `json:"riskLevel"`
	OverallScore        int       `json:"overallScore"`
	GeneratedAt         time.Time `json:"generatedAt"`
}
