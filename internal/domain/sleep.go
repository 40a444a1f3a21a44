package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SleepRecord is one night of sleep logged by a user. A user has at most one
// record per calendar date; the repository upserts on (userId, date), so the
// last write for a date wins.
type SleepRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Date      string             `bson:"date" json:"date"` // Calendar date, "2006-01-02"
	Hours     int                `bson:"hours" json:"hours"`
	Minutes   *int               `bson:"minutes,omitempty" json:"minutes,omitempty"` // 0-59
	Quality   *int               `bson:"quality,omitempty" json:"quality,omitempty"` // Ordinal 1-5
	BedTime   string             `bson:"bedTime,omitempty" json:"bedTime,omitempty"`
	WakeTime  string             `bson:"wakeTime,omitempty" json:"wakeTime,omitempty"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalHours returns the night's sleep as fractional hours.
func (r *SleepRecord) TotalHours() float64 {
	total := float64(r.Hours)
	if r.Minutes != nil {
		total += float64(*r.Minutes) / 60.0
	}
	return total
}
