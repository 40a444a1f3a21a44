package repository

import (
	"alcyxob/coach-api/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// The four record repositories below form the record-set loader consumed by
// the insight engine. Their list methods are lenient: a stored document that
// no longer decodes into the domain shape is skipped, never failing the
// batch, so the engine only ever sees well-formed records.

// SessionRepository defines the interface for workout session data.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	// GetByUserSince returns sessions started after the given instant,
	// most recent first.
	GetByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.WorkoutSession, error)
	GetByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// SleepRepository defines the interface for sleep record data. One record
// per (user, date); Upsert replaces an existing record for the same date, so
// the last write for a date wins.
type SleepRepository interface {
	Upsert(ctx context.Context, record *domain.SleepRecord) error
	// GetByUserSince returns records dated on or after the given date,
	// oldest first (the trend classifier relies on that ordering).
	GetByUserSince(ctx context.Context, userID primitive.ObjectID, sinceDate string) ([]domain.SleepRecord, error)
}

// StrengthRepository defines the interface for one-rep-max records. One
// record per (user, exercise); Upsert replaces the previous estimate.
type StrengthRepository interface {
	Upsert(ctx context.Context, record *domain.StrengthRecord) error
	GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.StrengthRecord, error)
}

// MeasurementRepository defines the interface for body measurement data.
type MeasurementRepository interface {
	Create(ctx context.Context, measurement *domain.BodyMeasurement) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.BodyMeasurement, error)
	GetByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.BodyMeasurement, error)
	SetPhotoKey(ctx context.Context, id, userID primitive.ObjectID, photoKey string) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}
