package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/coach-api/internal/domain"
)

func TestComputeInsightsConsistency(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("three workouts earns the achievement", func(t *testing.T) {
		analytics := domain.WorkoutAnalytics{TotalWorkouts: 3, WorkoutsThisWeek: 3}
		result := engine.ComputeInsights(analytics, testNow)

		assert.Contains(t, result.Insights[0], "Excellent consistency")
		require.NotEmpty(t, result.Achievements)
		assert.Contains(t, result.Achievements[0], "3 workouts")
		assert.Empty(t, result.RiskFactors)
	})

	t.Run("one or two workouts gets the nudge", func(t *testing.T) {
		analytics := domain.WorkoutAnalytics{TotalWorkouts: 2, WorkoutsThisWeek: 2}
		result := engine.ComputeInsights(analytics, testNow)

		assert.Contains(t, result.Insights[0], "Good start")
		assert.Contains(t, result.Recommendations[0], "at least 3 workouts per week")
	})

	t.Run("zero workouts raises the frequency risk", func(t *testing.T) {
		result := engine.ComputeInsights(domain.WorkoutAnalytics{}, testNow)

		assert.Contains(t, result.Insights[0], "rebuild")
		assert.Equal(t, []string{"Low workout frequency"}, result.RiskFactors)
		require.Len(t, result.RiskRecommendations, 1)
		assert.Contains(t, result.RiskRecommendations[0], "gradually")
	})
}

func TestComputeInsightsDuration(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("long sessions", func(t *testing.T) {
		analytics := domain.WorkoutAnalytics{TotalWorkouts: 2, WorkoutsThisWeek: 2, AverageWorkoutDuration: 100}
		result := engine.ComputeInsights(analytics, testNow)

		assert.Contains(t, result.Insights[1], "quite long")
	})

	t.Run("short sessions", func(t *testing.T) {
		analytics := domain.WorkoutAnalytics{TotalWorkouts: 2, WorkoutsThisWeek: 2, AverageWorkoutDuration: 20}
		result := engine.ComputeInsights(analytics, testNow)

		assert.Contains(t, result.Insights[1], "quite short")
	})

	t.Run("optimal range is an achievement", func(t *testing.T) {
		analytics := domain.WorkoutAnalytics{TotalWorkouts: 4, WorkoutsThisWeek: 4, AverageWorkoutDuration: 60}
		result := engine.ComputeInsights(analytics, testNow)

		assert.Contains(t, result.Achievements, "Session length is in the optimal 45-75 minute range")
	})

	t.Run("no duration insight without workouts", func(t *testing.T) {
		result := engine.ComputeInsights(domain.WorkoutAnalytics{}, testNow)

		for _, insight := range result.Insights {
			assert.NotContains(t, insight, "quite short")
		}
	})
}

func TestComputeInsightsTrackingAndStreak(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("strength tracking achievement", func(t *testing.T) {
		analytics := domain.WorkoutAnalytics{
			TotalWorkouts:    1,
			WorkoutsThisWeek: 1,
			StrengthProgress: []domain.StrengthProgress{{ExerciseID: "sq"}, {ExerciseID: "bp"}},
		}
		result := engine.ComputeInsights(analytics, testNow)

		assert.Contains(t, result.Achievements, "Tracking strength across 2 exercises")
	})

	t.Run("no strength records recommends tracking", func(t *testing.T) {
		result := engine.ComputeInsights(domain.WorkoutAnalytics{TotalWorkouts: 1, WorkoutsThisWeek: 1}, testNow)

		assert.Contains(t, result.Recommendations, "Start tracking your strength lifts to make progress measurable.")
	})

	t.Run("milestone streak", func(t *testing.T) {
		analytics := domain.WorkoutAnalytics{TotalWorkouts: 7, WorkoutsThisWeek: 7, CurrentStreak: 7}
		result := engine.ComputeInsights(analytics, testNow)

		assert.Contains(t, result.Achievements, "7-day workout streak")
	})

	t.Run("broken streak with history", func(t *testing.T) {
		analytics := domain.WorkoutAnalytics{TotalWorkouts: 12, CurrentStreak: 0}
		result := engine.ComputeInsights(analytics, testNow)

		assert.Contains(t, result.Insights, "Time to start a new streak!")
		assert.Contains(t, result.Recommendations, "Get a workout in today to kick it off.")
	})
}

func TestComputeInsightsVariety(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("good variety", func(t *testing.T) {
		analytics := domain.WorkoutAnalytics{
			TotalWorkouts:     3,
			WorkoutsThisWeek:  3,
			FavoriteExercises: []string{"Squat", "Bench Press", "Deadlift"},
		}
		result := engine.ComputeInsights(analytics, testNow)

		assert.Contains(t, result.Insights, "Good variety with 3 different exercises in rotation.")
	})

	t.Run("single exercise recommends variety", func(t *testing.T) {
		analytics := domain.WorkoutAnalytics{
			TotalWorkouts:     3,
			WorkoutsThisWeek:  3,
			FavoriteExercises: []string{"Squat"},
		}
		result := engine.ComputeInsights(analytics, testNow)

		assert.Contains(t, result.Recommendations, "Add more exercise variety to balance your training.")
	})
}

func TestComputeInsightsRiskLevel(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("active user is low risk", func(t *testing.T) {
		analytics := domain.WorkoutAnalytics{TotalWorkouts: 4, WorkoutsThisWeek: 4, CurrentStreak: 4}
		result := engine.ComputeInsights(analytics, testNow)

		assert.Equal(t, domain.RiskLow, result.RiskLevel)
	})

	// Zero data fires exactly the low-frequency rule: one factor, moderate.
	t.Run("zero data is moderate, not high", func(t *testing.T) {
		result := engine.ComputeInsights(domain.WorkoutAnalytics{}, testNow)

		assert.Len(t, result.RiskFactors, 1)
		assert.Equal(t, domain.RiskModerate, result.RiskLevel)
	})
}

func TestComputeInsightsDefaults(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// A profile that trips no insight rule: active enough to skip the
	// consistency insights is impossible (the consistency rule always fires),
	// so defaults are only reachable for recommendations.
	analytics := domain.WorkoutAnalytics{
		TotalWorkouts:          4,
		WorkoutsThisWeek:       4,
		AverageWorkoutDuration: 60,
		CurrentStreak:          4,
		FavoriteExercises:      []string{"Squat", "Rows"},
		StrengthProgress:       []domain.StrengthProgress{{ExerciseID: "sq"}},
	}
	result := engine.ComputeInsights(analytics, testNow)

	require.NotEmpty(t, result.Insights)
	assert.Equal(t, []string{
		"Stay hydrated and prioritize sleep to support recovery.",
		"Keep your weekly schedule consistent, even if sessions are short.",
	}, result.Recommendations)
	assert.Equal(t, analytics.OverallScore, result.OverallScore)
	assert.Equal(t, testNow, result.GeneratedAt)
}

func TestComputeInsightsOutputNeverNil(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	analytics := domain.WorkoutAnalytics{TotalWorkouts: 4, WorkoutsThisWeek: 4, CurrentStreak: 4}
	result := engine.ComputeInsights(analytics, testNow)

	assert.NotNil(t, result.Insights)
	assert.NotNil(t, result.Recommendations)
	assert.NotNil(t, result.Achievements)
	assert.NotNil(t, result.RiskFactors)
	assert.NotNil(t, result.RiskRecommendations)
}
