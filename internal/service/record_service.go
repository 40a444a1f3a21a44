package service

import (
	"alcyxob/coach-api/internal/domain"
	"alcyxob/coach-api/internal/repository"
	"alcyxob/coach-api/internal/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrValidationFailed       = errors.New("validation failed")
	ErrSessionNotFound        = errors.New("workout session not found")
	ErrMeasurementNotFound    = errors.New("measurement not found")
	ErrMeasurementNotOwned    = errors.New("measurement does not belong to this user")
	ErrPhotoMissing           = errors.New("measurement has no photo")
	ErrUploadURLError         = errors.New("failed to generate upload URL")
	ErrDownloadURLError       = errors.New("failed to generate download URL")
	ErrPhotoConfirmationError = errors.New("failed to confirm photo upload")
)

// PhotoUploadResponse carries the presigned URL plus the object key the
// client reports back on confirm.
type PhotoUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// RecordService is the CRUD surface behind the thin HTTP handlers: logging
// and listing the four record types the insight engine consumes, plus the
// progress-photo upload flow for measurements.
type RecordService interface {
	// Workout sessions
	LogSession(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error)
	GetRecentSessions(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error)
	DeleteSession(ctx context.Context, userID, sessionID primitive.ObjectID) error

	// Sleep
	LogSleep(ctx context.Context, record *domain.SleepRecord) error
	GetSleepHistory(ctx context.Context, userID primitive.ObjectID, days int) ([]domain.SleepRecord, error)

	// Strength
	LogStrength(ctx context.Context, record *domain.StrengthRecord) error
	GetStrengthRecords(ctx context.Context, userID primitive.ObjectID) ([]domain.StrengthRecord, error)

	// Body measurements
	LogMeasurement(ctx context.Context, measurement *domain.BodyMeasurement) (*domain.BodyMeasurement, error)
	GetMeasurements(ctx context.Context, userID primitive.ObjectID, days int) ([]domain.BodyMeasurement, error)

	// Progress photos
	RequestPhotoUploadURL(ctx context.Context, userID, measurementID primitive.ObjectID, contentType string) (*PhotoUploadResponse, error)
	ConfirmPhotoUpload(ctx context.Context, userID, measurementID primitive.ObjectID, objectKey string) error
	GetPhotoDownloadURL(ctx context.Context, userID, measurementID primitive.ObjectID) (string, error)
}

// recordService implements the RecordService interface.
type recordService struct {
	sessionRepo     repository.SessionRepository
	sleepRepo       repository.SleepRepository
	strengthRepo    repository.StrengthRepository
	measurementRepo repository.MeasurementRepository
	fileStorage     storage.FileStorage
}

// NewRecordService creates a new instance of recordService.
func NewRecordService(
	sessionRepo repository.SessionRepository,
	sleepRepo repository.SleepRepository,
	strengthRepo repository.StrengthRepository,
	measurementRepo repository.MeasurementRepository,
	fileStorage storage.FileStorage,
) RecordService {
	return &recordService{
		sessionRepo:     sessionRepo,
		sleepRepo:       sleepRepo,
		strengthRepo:    strengthRepo,
		measurementRepo: measurementRepo,
		fileStorage:     fileStorage,
	}
}

// === Workout sessions ===

// LogSession validates and stores a workout session.
func (s *recordService) LogSession(ctx context.Context, session *domain.WorkoutSession) (*domain.WorkoutSession, error) {
	if session.UserID == primitive.NilObjectID || session.Name == "" {
		return nil, fmt.Errorf("%w: session requires a user and a name", ErrValidationFailed)
	}
	if session.DurationMinutes != nil && *session.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration cannot be negative", ErrValidationFailed)
	}
	if err := normalizeSets(session); err != nil {
		return nil, err
	}

	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = id
	return session, nil
}

// normalizeSets enforces 1-based, in-order set numbers within each
// exercise. Unnumbered sets get their position; explicit duplicates are
// rejected rather than silently renumbered.
func normalizeSets(session *domain.WorkoutSession) error {
	for i := range session.Exercises {
		exercise := &session.Exercises[i]
		seen := make(map[int]bool, len(exercise.Sets))
		for j := range exercise.Sets {
			set := &exercise.Sets[j]
			if set.SetNumber == 0 {
				set.SetNumber = j + 1
			}
			if set.SetNumber < 1 {
				return fmt.Errorf("%w: set numbers are 1-based", ErrValidationFailed)
			}
			if seen[set.SetNumber] {
				return fmt.Errorf("%w: duplicate set number %d in exercise %q", ErrValidationFailed, set.SetNumber, exercise.Name)
			}
			seen[set.SetNumber] = true
		}
	}
	return nil
}

// GetRecentSessions returns the user's most recent sessions.
func (s *recordService) GetRecentSessions(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error) {
	return s.sessionRepo.GetByUser(ctx, userID, limit)
}

// DeleteSession removes a session owned by the user.
func (s *recordService) DeleteSession(ctx context.Context, userID, sessionID primitive.ObjectID) error {
	err := s.sessionRepo.Delete(ctx, sessionID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}

// === Sleep ===

// LogSleep validates and upserts one night of sleep. Logging the same date
// twice replaces the earlier entry.
func (s *recordService) LogSleep(ctx context.Context, record *domain.SleepRecord) error {
	if record.UserID == primitive.NilObjectID {
		return fmt.Errorf("%w: sleep record requires a user", ErrValidationFailed)
	}
	if _, err := time.Parse("2006-01-02", record.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidationFailed)
	}
	if record.Hours < 0 || record.Hours > 24 {
		return fmt.Errorf("%w: hours must be between 0 and 24", ErrValidationFailed)
	}
	if record.Minutes != nil && (*record.Minutes < 0 || *record.Minutes > 59) {
		return fmt.Errorf("%w: minutes must be between 0 and 59", ErrValidationFailed)
	}
	if record.Quality != nil && (*record.Quality < 1 || *record.Quality > 5) {
		return fmt.Errorf("%w: quality must be between 1 and 5", ErrValidationFailed)
	}
	return s.sleepRepo.Upsert(ctx, record)
}

// GetSleepHistory returns the trailing days of sleep records, oldest first.
func (s *recordService) GetSleepHistory(ctx context.Context, userID primitive.ObjectID, days int) ([]domain.SleepRecord, error) {
	if days <= 0 {
		days = 30
	}
	sinceDate := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
	return s.sleepRepo.GetByUserSince(ctx, userID, sinceDate)
}

// === Strength ===

// LogStrength validates and upserts a one-rep-max estimate.
func (s *recordService) LogStrength(ctx context.Context, record *domain.StrengthRecord) error {
	if record.UserID == primitive.NilObjectID || record.ExerciseID == "" || record.ExerciseName == "" {
		return fmt.Errorf("%w: strength record requires a user, exercise id and name", ErrValidationFailed)
	}
	if record.OneRepMax <= 0 {
		return fmt.Errorf("%w: one-rep max must be positive", ErrValidationFailed)
	}
	return s.strengthRepo.Upsert(ctx, record)
}

// GetStrengthRecords returns all of the user's strength records.
func (s *recordService) GetStrengthRecords(ctx context.Context, userID primitive.ObjectID) ([]domain.StrengthRecord, error) {
	return s.strengthRepo.GetByUser(ctx, userID)
}

// === Body measurements ===

// LogMeasurement validates and stores a body measurement.
func (s *recordService) LogMeasurement(ctx context.Context, measurement *domain.BodyMeasurement) (*domain.BodyMeasurement, error) {
	if measurement.UserID == primitive.NilObjectID || measurement.Type == "" {
		return nil, fmt.Errorf("%w: measurement requires a user and a type", ErrValidationFailed)
	}

	id, err := s.measurementRepo.Create(ctx, measurement)
	if err != nil {
		return nil, err
	}
	measurement.ID = id
	return measurement, nil
}

// GetMeasurements returns the trailing days of measurements, most recent
// first.
func (s *recordService) GetMeasurements(ctx context.Context, userID primitive.ObjectID, days int) ([]domain.BodyMeasurement, error) {
	if days <= 0 {
		days = 90
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.measurementRepo.GetByUserSince(ctx, userID, since)
}

// === Progress photos ===

// RequestPhotoUploadURL generates a presigned URL for attaching a progress
// photo to a measurement the user owns.
func (s *recordService) RequestPhotoUploadURL(ctx context.Context, userID, measurementID primitive.ObjectID, contentType string) (*PhotoUploadResponse, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, fmt.Errorf("%w: invalid or missing image content type", ErrValidationFailed)
	}

	if err := s.verifyMeasurementOwner(ctx, userID, measurementID); err != nil {
		return nil, err
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("photos", userID.Hex(), measurementID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &PhotoUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmPhotoUpload links an uploaded photo to its measurement. Called
// after the client has PUT the object via the presigned URL.
func (s *recordService) ConfirmPhotoUpload(ctx context.Context, userID, measurementID primitive.ObjectID, objectKey string) error {
	if objectKey == "" {
		return fmt.Errorf("%w: object key is required", ErrValidationFailed)
	}
	// The key prefix encodes ownership; reject confirmations for someone
	// else's path.
	if !strings.HasPrefix(objectKey, path.Join("photos", userID.Hex())+"/") {
		return ErrMeasurementNotOwned
	}

	measurement, err := s.measurementRepo.GetByID(ctx, measurementID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMeasurementNotFound
		}
		return ErrPhotoConfirmationError
	}
	if measurement.UserID != userID {
		return ErrMeasurementNotOwned
	}
	previousKey := ""
	if measurement.PhotoKey != nil {
		previousKey = *measurement.PhotoKey
	}

	err = s.measurementRepo.SetPhotoKey(ctx, measurementID, userID, objectKey)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMeasurementNotFound
	}
	if err != nil {
		return ErrPhotoConfirmationError
	}

	// Replacing a photo orphans the old object; clean it up best-effort.
	if previousKey != "" && previousKey != objectKey {
		if delErr := s.fileStorage.DeleteObject(ctx, previousKey); delErr != nil {
			log.Printf("WARN: Failed to delete replaced photo object %s: %v", previousKey, delErr)
		}
	}
	return nil
}

// GetPhotoDownloadURL generates a temporary URL for viewing a measurement's
// progress photo.
func (s *recordService) GetPhotoDownloadURL(ctx context.Context, userID, measurementID primitive.ObjectID) (string, error) {
	measurement, err := s.measurementRepo.GetByID(ctx, measurementID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrMeasurementNotFound
		}
		return "", err
	}
	if measurement.UserID != userID {
		return "", ErrMeasurementNotOwned
	}
	if measurement.PhotoKey == nil || *measurement.PhotoKey == "" {
		return "", ErrPhotoMissing
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, *measurement.PhotoKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}
	return downloadURL, nil
}

func (s *recordService) verifyMeasurementOwner(ctx context.Context, userID, measurementID primitive.ObjectID) error {
	measurement, err := s.measurementRepo.GetByID(ctx, measurementID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMeasurementNotFound
		}
		return err
	}
	if measurement.UserID != userID {
		return ErrMeasurementNotOwned
	}
	return nil
}
