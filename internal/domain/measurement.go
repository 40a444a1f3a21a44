package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BodyMeasurement is a single body metric sample (weight, waist, body fat...).
// Type is a free-form tag chosen by the client app, not an enum.
type BodyMeasurement struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Type       string             `bson:"type" json:"type"` // e.g., "weight", "waist"
	Value      float64            `bson:"value" json:"value"`
	Unit       string             `bson:"unit" json:"unit"`
	MeasuredAt time.Time          `bson:"measuredAt" json:"measuredAt"`
	PhotoKey   *string            `bson:"photoKey,omitempty" json:"photoKey,omitempty"` // Object key of an optional progress photo
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
