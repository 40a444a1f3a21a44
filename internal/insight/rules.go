package insight

import (
	"fmt"
	"time"

	"alcyxob/coach-api/internal/domain"
)

// ComputeInsights evaluates the insight rules against aggregated analytics
// and produces the coaching-facing text lists plus a risk assessment.
//
// Rules run in a fixed order - consistency, duration, tracking, streak,
// variety - because later rule text assumes the earlier context has already
// been appended. Reordering changes user-visible output; don't do it
// silently.
func (e *Engine) ComputeInsights(analytics domain.WorkoutAnalytics, now time.Time) domain.WorkoutInsights {
	result := domain.WorkoutInsights{
		Insights:            []string{},
		Recommendations:     []string{},
		Achievements:        []string{},
		RiskFactors:         []string{},
		RiskRecommendations: []string{},
		OverallScore:        analytics.OverallScore,
		GeneratedAt:         now,
	}

	e.consistencyRules(analytics, &result)
	e.durationRules(analytics, &result)
	e.trackingRules(analytics, &result)
	e.streakRules(analytics, &result)
	e.varietyRules(analytics, &result)

	result.RiskLevel = riskLevel(len(result.RiskFactors))

	// Fallbacks so a user with sparse history never gets an empty-feeling
	// response.
	if len(result.Insights) == 0 {
		result.Insights = append(result.Insights, "You're progressing well. Keep showing up and the results will follow.")
	}
	if len(result.Recommendations) == 0 {
		result.Recommendations = append(result.Recommendations,
			"Stay hydrated and prioritize sleep to support recovery.",
			"Keep your weekly schedule consistent, even if sessions are short.")
	}

	return result
}

func (e *Engine) consistencyRules(analytics domain.WorkoutAnalytics, out *domain.WorkoutInsights) {
	switch {
	case analytics.WorkoutsThisWeek >= weeklyTargetWorkouts:
		out.Insights = append(out.Insights,
			fmt.Sprintf("Excellent consistency! You've completed %d workouts this week.", analytics.WorkoutsThisWeek))
		out.Achievements = append(out.Achievements,
			fmt.Sprintf("Completed %d workouts in a single week", analytics.WorkoutsThisWeek))
	case analytics.WorkoutsThisWeek >= 1:
		out.Insights = append(out.Insights,
			fmt.Sprintf("Good start with %d workouts this week.", analytics.WorkoutsThisWeek))
		out.Recommendations = append(out.Recommendations,
			fmt.Sprintf("Try to maintain at least %d workouts per week for steady progress.", weeklyTargetWorkouts))
	default:
		out.Insights = append(out.Insights,
			"No workouts logged this week. Let's rebuild the habit.")
		out.Recommendations = append(out.Recommendations,
			"Start with 2-3 short sessions this week to get back on track.")
		out.RiskFactors = append(out.RiskFactors,
			"Low workout frequency")
		out.RiskRecommendations = append(out.RiskRecommendations,
			"Increase workout frequency gradually to rebuild capacity without injury.")
	}
}

func (e *Engine) durationRules(analytics domain.WorkoutAnalytics, out *domain.WorkoutInsights) {
	avg := analytics.AverageWorkoutDuration
	switch {
	case avg > durationAcceptableMax:
		out.Insights = append(out.Insights,
			fmt.Sprintf("Your sessions are quite long, averaging %.0f minutes.", avg))
		out.Recommendations = append(out.Recommendations,
			fmt.Sprintf("Try focused %.0f-%.0f minute sessions; longer isn't always better.", durationOptimalMin, durationOptimalMax))
	case avg < durationAcceptableMin && analytics.TotalWorkouts > 0:
		out.Insights = append(out.Insights,
			fmt.Sprintf("Your sessions are quite short, averaging %.0f minutes.", avg))
		out.Recommendations = append(out.Recommendations,
			"Aim for 45-60 minute sessions to get the full training effect.")
	case avg >= durationOptimalMin && avg <= durationOptimalMax:
		out.Achievements = append(out.Achievements,
			"Session length is in the optimal 45-75 minute range")
	}
}

func (e *Engine) trackingRules(analytics domain.WorkoutAnalytics, out *domain.WorkoutInsights) {
	if len(analytics.StrengthProgress) > 0 {
		out.Achievements = append(out.Achievements,
			fmt.Sprintf("Tracking strength across %d exercises", len(analytics.StrengthProgress)))
	} else {
		out.Recommendations = append(out.Recommendations,
			"Start tracking your strength lifts to make progress measurable.")
	}
}

func (e *Engine) streakRules(analytics domain.WorkoutAnalytics, out *domain.WorkoutInsights) {
	switch {
	case analytics.CurrentStreak >= streakMilestoneDays:
		out.Insights = append(out.Insights,
			fmt.Sprintf("Amazing streak! %d workouts and counting.", analytics.CurrentStreak))
		out.Achievements = append(out.Achievements,
			fmt.Sprintf("%d-day workout streak", analytics.CurrentStreak))
	case analytics.CurrentStreak == 0 && analytics.TotalWorkouts > 0:
		out.Insights = append(out.Insights,
			"Time to start a new streak!")
		out.Recommendations = append(out.Recommendations,
			"Get a workout in today to kick it off.")
	}
}

func (e *Engine) varietyRules(analytics domain.WorkoutAnalytics, out *domain.WorkoutInsights) {
	switch {
	case len(analytics.FavoriteExercises) >= varietyGoodCount:
		out.Insights = append(out.Insights,
			fmt.Sprintf("Good variety with %d different exercises in rotation.", len(analytics.FavoriteExercises)))
	case len(analytics.FavoriteExercises) <= 1:
		out.Recommendations = append(out.Recommendations,
			"Add more exercise variety to balance your training.")
	}
}

func riskLevel(factorCount int) domain.RiskLevel {
	switch {
	case factorCount == 0:
		return domain.RiskLow
	case factorCount <= 2:
		return domain.RiskModerate
	default:
		return domain.RiskHigh
	}
}
