package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSession represents one logged training session for a user.
// Sessions are immutable inputs to the insight engine; the engine never
// mutates or persists them.
type WorkoutSession struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	PlanID          *primitive.ObjectID `bson:"planId,omitempty" json:"planId,omitempty"` // Optional link to a coaching plan
	Name            string              `bson:"name" json:"name"`                         // e.g., "Upper Body", "Long Run"
	StartedAt       time.Time           `bson:"startedAt" json:"startedAt"`
	CompletedAt     *time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	DurationMinutes *int                `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Exercises       []SessionExercise   `bson:"exercises,omitempty" json:"exercises,omitempty"`
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// SessionExercise is one exercise performed within a session, with its sets
// in performed order.
type SessionExercise struct {
	ExerciseID string        `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	Name       string        `bson:"name" json:"name"`
	Sets       []ExerciseSet `bson:"sets,omitempty" json:"sets,omitempty"`
}

// ExerciseSet is a single set within an exercise. SetNumber is 1-based and
// unique within its exercise. Sets with Completed == false still count toward
// aggregates; the engine does not filter on completion.
type ExerciseSet struct {
	SetNumber       int      `bson:"setNumber" json:"setNumber"`
	Reps            *int     `bson:"reps,omitempty" json:"reps,omitempty"`
	Weight          *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	DurationSeconds *int     `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
	Completed       bool     `bson:"completed" json:"completed"`
}

// Duration returns the session duration in minutes, 0 when not recorded.
func (s *WorkoutSession) Duration() int {
	if s.DurationMinutes == nil {
		return 0
	}
	return *s.DurationMinutes
}
