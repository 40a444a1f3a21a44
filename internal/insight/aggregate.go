package insight

import (
	"math"
	"sort"
	"time"

	"alcyxob/coach-api/internal/domain"
)

// AggregateWorkouts reduces a window of workout sessions into scalar
// statistics. It is total: an empty slice yields an all-zero result with
// empty (not nil) lists, never an error.
//
// The streak fields restate workouts-this-week rather than computing a true
// consecutive-calendar-day streak. That matches existing product behavior;
// do not "fix" it here without product sign-off.
func (e *Engine) AggregateWorkouts(sessions []domain.WorkoutSession, now time.Time) domain.WorkoutAnalytics {
	analytics := domain.WorkoutAnalytics{
		FavoriteExercises: []string{},
		StrengthProgress:  []domain.StrengthProgress{},
		Measurements:      []domain.BodyMeasurement{},
	}

	weekStart := now.AddDate(0, 0, -weekWindowDays)
	monthStart := now.AddDate(0, 0, -monthWindowDays)

	weekMinutes := 0
	counts := make(map[string]int)
	var firstSeen []string
	var lastWorkout *time.Time

	analytics.TotalWorkouts = len(sessions)
	for i := range sessions {
		session := &sessions[i]
		minutes := session.Duration()
		analytics.TotalDurationMinutes += minutes

		// Half-open trailing windows: strictly after now-N days.
		if session.StartedAt.After(weekStart) {
			analytics.WorkoutsThisWeek++
			weekMinutes += minutes
		}
		if session.StartedAt.After(monthStart) {
			analytics.WorkoutsThisMonth++
		}

		// Max start timestamp wins; ties keep the earlier input entry.
		if lastWorkout == nil || session.StartedAt.After(*lastWorkout) {
			started := session.StartedAt
			lastWorkout = &started
		}

		for _, name := range sessionExerciseNames(session) {
			if _, seen := counts[name]; !seen {
				firstSeen = append(firstSeen, name)
			}
			counts[name]++
		}
	}

	if analytics.TotalWorkouts > 0 {
		analytics.AverageWorkoutDuration = float64(analytics.TotalDurationMinutes) / float64(analytics.TotalWorkouts)
	}
	analytics.LastWorkoutDate = lastWorkout
	analytics.FavoriteExercises = topExercises(counts, firstSeen)

	// Streak simplification: see the doc comment above.
	analytics.CurrentStreak = analytics.WorkoutsThisWeek
	analytics.LongestStreak = analytics.CurrentStreak

	analytics.CaloriesBurnedThisWeek = int(math.Round(float64(weekMinutes) * e.cfg.CaloriesPerMinute))
	analytics.CaloriesBurnedTotal = int(math.Round(float64(analytics.TotalDurationMinutes) * e.cfg.CaloriesPerMinute))

	return analytics
}

// sessionExerciseNames returns the names counted toward favorite exercises
// for one session: each exercise entry counts once; a session logged without
// an exercise list counts under its own name (free-form cardio, runs, etc.).
func sessionExerciseNames(session *domain.WorkoutSession) []string {
	if len(session.Exercises) == 0 {
		if session.Name == "" {
			return nil
		}
		return []string{session.Name}
	}
	names := make([]string, 0, len(session.Exercises))
	for _, exercise := range session.Exercises {
		if exercise.Name != "" {
			names = append(names, exercise.Name)
		}
	}
	return names
}

// topExercises sorts names by descending count, ties broken by first-seen
// order, and keeps the top five.
func topExercises(counts map[string]int, firstSeen []string) []string {
	names := make([]string, len(firstSeen))
	copy(names, firstSeen)
	// firstSeen is already in first-seen order; a stable sort on count alone
	// preserves that order for ties.
	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})
	if len(names) > favoriteExerciseLimit {
		names = names[:favoriteExerciseLimit]
	}
	if names == nil {
		names = []string{}
	}
	return names
}

// AggregateStrength maps strength records into progress entries, preserving
// input order. ProgressPercentage stays 0 until a baseline history exists.
func (e *Engine) AggregateStrength(records []domain.StrengthRecord) []domain.StrengthProgress {
	progress := make([]domain.StrengthProgress, 0, len(records))
	for _, record := range records {
		progress = append(progress, domain.StrengthProgress{
			ExerciseID:         record.ExerciseID,
			ExerciseName:       record.ExerciseName,
			OneRepMax:          record.OneRepMax,
			ProgressPercentage: 0,
			LastUpdated:        record.UpdatedAt,
		})
	}
	return progress
}

// AggregateMeasurements deduplicates measurements on (type, measuredAt).
// When the loader hands back duplicates the last one wins, at the position
// where the key first appeared.
func (e *Engine) AggregateMeasurements(records []domain.BodyMeasurement) []domain.BodyMeasurement {
	type key struct {
		measurementType string
		measuredAt      time.Time
	}
	out := make([]domain.BodyMeasurement, 0, len(records))
	index := make(map[key]int)
	for _, record := range records {
		k := key{record.Type, record.MeasuredAt}
		if i, ok := index[k]; ok {
			out[i] = record
			continue
		}
		index[k] = len(out)
		out = append(out, record)
	}
	return out
}
