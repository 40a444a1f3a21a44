package insight

import "alcyxob/coach-api/internal/domain"

// OverallScore combines already-aggregated statistics into a 0-100 fitness
// score. Four independent additive bands: consistency (max 40), duration
// (max 20), tracking (max 20), streak (max 20). No band can exceed its cap,
// so the sum never leaves [0,100] and needs no re-normalization.
//
// The function depends on the WorkoutAnalytics value alone; it never
// re-queries anything.
func (e *Engine) OverallScore(analytics domain.WorkoutAnalytics) int {
	score := 0
	score += consistencyBand(analytics.WorkoutsThisWeek)
	score += durationBand(analytics.AverageWorkoutDuration)
	score += trackingBand(analytics)
	score += streakBand(analytics.CurrentStreak)
	return score
}

func consistencyBand(workoutsThisWeek int) int {
	switch {
	case workoutsThisWeek >= weeklyIdealWorkouts:
		return consistencyBandMax
	case workoutsThisWeek == 3:
		return 30
	case workoutsThisWeek == 2:
		return 20
	case workoutsThisWeek == 1:
		return 10
	default:
		return 0
	}
}

func durationBand(averageMinutes float64) int {
	switch {
	case averageMinutes >= durationOptimalMin && averageMinutes <= durationOptimalMax:
		return durationBandMax
	case averageMinutes >= durationAcceptableMin && averageMinutes <= durationAcceptableMax:
		return 15
	case averageMinutes > 0:
		return 10
	default:
		return 0
	}
}

func trackingBand(analytics domain.WorkoutAnalytics) int {
	band := 0
	if len(analytics.StrengthProgress) > 0 {
		band += trackingBandMax / 2
	}
	if len(analytics.Measurements) > 0 {
		band += trackingBandMax / 2
	}
	return band
}

func streakBand(currentStreak int) int {
	switch {
	case currentStreak >= streakMilestoneDays:
		return streakBandMax
	case currentStreak >= streakBuildingDays:
		return 15
	case currentStreak >= 1:
		return 10
	default:
		return 0
	}
}
