package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/coach-api/internal/domain"
)

// fakeFileStorage returns canned URLs without touching S3.
type fakeFileStorage struct {
	lastUploadKey string
	deletedKeys   []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	f.lastUploadKey = objectKey
	return "https://storage.example/" + objectKey + "?sig=upload", nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://storage.example/" + objectKey + "?sig=download", nil
}

func (f *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	f.deletedKeys = append(f.deletedKeys, objectKey)
	return nil
}

func newTestRecordService() (RecordService, *fakeSleepRepo, *fakeFileStorage) {
	sleep := &fakeSleepRepo{}
	files := &fakeFileStorage{}
	svc := NewRecordService(&fakeSessionRepo{}, sleep, &fakeStrengthRepo{}, &fakeMeasurementRepo{}, files)
	return svc, sleep, files
}

func TestLogSessionValidation(t *testing.T) {
	svc, _, _ := newTestRecordService()
	userID := primitive.NewObjectID()

	t.Run("requires a name", func(t *testing.T) {
		_, err := svc.LogSession(context.Background(), &domain.WorkoutSession{UserID: userID})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("rejects duplicate set numbers", func(t *testing.T) {
		session := &domain.WorkoutSession{
			UserID: userID,
			Name:   "Push Day",
			Exercises: []domain.SessionExercise{{
				Name: "Bench Press",
				Sets: []domain.ExerciseSet{{SetNumber: 1}, {SetNumber: 1}},
			}},
		}
		_, err := svc.LogSession(context.Background(), session)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("numbers unnumbered sets by position", func(t *testing.T) {
		session := &domain.WorkoutSession{
			UserID: userID,
			Name:   "Push Day",
			Exercises: []domain.SessionExercise{{
				Name: "Bench Press",
				Sets: []domain.ExerciseSet{{Completed: true}, {Completed: true}, {}},
			}},
		}
		logged, err := svc.LogSession(context.Background(), session)
		require.NoError(t, err)
		assert.Equal(t, 1, logged.Exercises[0].Sets[0].SetNumber)
		assert.Equal(t, 2, logged.Exercises[0].Sets[1].SetNumber)
		assert.Equal(t, 3, logged.Exercises[0].Sets[2].SetNumber)
	})
}

func TestLogSleepValidation(t *testing.T) {
	svc, sleep, _ := newTestRecordService()
	userID := primitive.NewObjectID()

	bad := []domain.SleepRecord{
		{UserID: userID, Date: "not-a-date", Hours: 8},
		{UserID: userID, Date: "2025-06-14", Hours: 30},
		{UserID: userID, Date: "2025-06-14", Hours: 8, Minutes: intPtr(75)},
		{UserID: userID, Date: "2025-06-14", Hours: 8, Quality: intPtr(9)},
	}
	for _, record := range bad {
		r := record
		assert.ErrorIs(t, svc.LogSleep(context.Background(), &r), ErrValidationFailed)
	}

	good := domain.SleepRecord{UserID: userID, Date: "2025-06-14", Hours: 7, Minutes: intPtr(30), Quality: intPtr(4)}
	require.NoError(t, svc.LogSleep(context.Background(), &good))
	require.Len(t, sleep.records, 1)

	// Same date again: upsert, not a second record.
	good.Hours = 8
	require.NoError(t, svc.LogSleep(context.Background(), &good))
	require.Len(t, sleep.records, 1)
	assert.Equal(t, 8, sleep.records[0].Hours)
}

func intPtr(v int) *int { return &v }

func TestPhotoUploadFlow(t *testing.T) {
	svc, _, files := newTestRecordService()
	userID := primitive.NewObjectID()

	m := domain.BodyMeasurement{UserID: userID, Type: "weight", Value: 82.0, Unit: "kg", MeasuredAt: fixedNow}
	logged, err := svc.LogMeasurement(context.Background(), &m)
	require.NoError(t, err)

	t.Run("rejects non-image content types", func(t *testing.T) {
		_, err := svc.RequestPhotoUploadURL(context.Background(), userID, logged.ID, "video/mp4")
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("upload then confirm then download", func(t *testing.T) {
		resp, err := svc.RequestPhotoUploadURL(context.Background(), userID, logged.ID, "image/jpeg")
		require.NoError(t, err)
		assert.Contains(t, resp.UploadURL, resp.ObjectKey)
		assert.Equal(t, files.lastUploadKey, resp.ObjectKey)

		require.NoError(t, svc.ConfirmPhotoUpload(context.Background(), userID, logged.ID, resp.ObjectKey))

		url, err := svc.GetPhotoDownloadURL(context.Background(), userID, logged.ID)
		require.NoError(t, err)
		assert.Contains(t, url, resp.ObjectKey)
	})

	t.Run("replacing a photo deletes the old object", func(t *testing.T) {
		first, err := svc.RequestPhotoUploadURL(context.Background(), userID, logged.ID, "image/jpeg")
		require.NoError(t, err)
		require.NoError(t, svc.ConfirmPhotoUpload(context.Background(), userID, logged.ID, first.ObjectKey))

		second, err := svc.RequestPhotoUploadURL(context.Background(), userID, logged.ID, "image/png")
		require.NoError(t, err)
		require.NoError(t, svc.ConfirmPhotoUpload(context.Background(), userID, logged.ID, second.ObjectKey))

		assert.Contains(t, files.deletedKeys, first.ObjectKey)
	})

	t.Run("other users cannot attach or view", func(t *testing.T) {
		stranger := primitive.NewObjectID()

		_, err := svc.RequestPhotoUploadURL(context.Background(), stranger, logged.ID, "image/jpeg")
		assert.ErrorIs(t, err, ErrMeasurementNotOwned)

		_, err = svc.GetPhotoDownloadURL(context.Background(), stranger, logged.ID)
		assert.ErrorIs(t, err, ErrMeasurementNotOwned)
	})

	t.Run("missing photo", func(t *testing.T) {
		bare := domain.BodyMeasurement{UserID: userID, Type: "waist", Value: 84, Unit: "cm", MeasuredAt: fixedNow}
		loggedBare, err := svc.LogMeasurement(context.Background(), &bare)
		require.NoError(t, err)

		_, err = svc.GetPhotoDownloadURL(context.Background(), userID, loggedBare.ID)
		assert.ErrorIs(t, err, ErrPhotoMissing)
	})
}
