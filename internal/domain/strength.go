package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StrengthRecord holds a user's current one-rep-max estimate for an exercise.
// One record per (userId, exerciseId); logging a new estimate replaces it.
type StrengthRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	ExerciseID   string             `bson:"exerciseId" json:"exerciseId"`
	ExerciseName string             `bson:"exerciseName" json:"exerciseName"`
	OneRepMax    float64            `bson:"oneRepMax" json:"oneRepMax"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
