package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/coach-api/internal/domain"
	"alcyxob/coach-api/internal/insight"
	"alcyxob/coach-api/internal/repository"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// --- In-memory repository fakes ---

type fakeSessionRepo struct {
	sessions []domain.WorkoutSession
	err      error
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *domain.WorkoutSession) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	s.ID = id
	f.sessions = append(f.sessions, *s)
	return id, nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			return &f.sessions[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSessionRepo) GetByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.WorkoutSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.WorkoutSession
	for _, s := range f.sessions {
		if s.UserID == userID && s.StartedAt.After(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) GetByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.WorkoutSession, error) {
	return f.GetByUserSince(ctx, userID, time.Time{})
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	for i := range f.sessions {
		if f.sessions[i].ID == id && f.sessions[i].UserID == userID {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeSleepRepo struct {
	records []domain.SleepRecord
}

func (f *fakeSleepRepo) Upsert(ctx context.Context, r *domain.SleepRecord) error {
	for i := range f.records {
		if f.records[i].UserID == r.UserID && f.records[i].Date == r.Date {
			f.records[i] = *r
			return nil
		}
	}
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeSleepRepo) GetByUserSince(ctx context.Context, userID primitive.ObjectID, sinceDate string) ([]domain.SleepRecord, error) {
	var out []domain.SleepRecord
	for _, r := range f.records {
		if r.UserID == userID && r.Date >= sinceDate {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeStrengthRepo struct {
	records []domain.StrengthRecord
}

func (f *fakeStrengthRepo) Upsert(ctx context.Context, r *domain.StrengthRecord) error {
	for i := range f.records {
		if f.records[i].UserID == r.UserID && f.records[i].ExerciseID == r.ExerciseID {
			f.records[i] = *r
			return nil
		}
	}
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeStrengthRepo) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.StrengthRecord, error) {
	var out []domain.StrengthRecord
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeMeasurementRepo struct {
	records []domain.BodyMeasurement
}

func (f *fakeMeasurementRepo) Create(ctx context.Context, m *domain.BodyMeasurement) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	m.ID = id
	f.records = append(f.records, *m)
	return id, nil
}

func (f *fakeMeasurementRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.BodyMeasurement, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMeasurementRepo) GetByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.BodyMeasurement, error) {
	var out []domain.BodyMeasurement
	for _, r := range f.records {
		if r.UserID == userID && r.MeasuredAt.After(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeMeasurementRepo) SetPhotoKey(ctx context.Context, id, userID primitive.ObjectID, photoKey string) error {
	for i := range f.records {
		if f.records[i].ID == id && f.records[i].UserID == userID {
			key := photoKey
			f.records[i].PhotoKey = &key
			return nil
		}
	}
	return repository.ErrNotFound
}

func newTestAnalyticsService(sessions *fakeSessionRepo, sleep *fakeSleepRepo, strength *fakeStrengthRepo, measurements *fakeMeasurementRepo) AnalyticsService {
	engine := insight.NewEngine(insight.DefaultConfig())
	return NewAnalyticsService(sessions, sleep, strength, measurements, engine, func() time.Time { return fixedNow })
}

// --- Tests ---

func TestGetWorkoutAnalytics(t *testing.T) {
	userID := primitive.NewObjectID()
	minutes := 60
	sessions := &fakeSessionRepo{sessions: []domain.WorkoutSession{
		{ID: primitive.NewObjectID(), UserID: userID, Name: "Upper Body", StartedAt: fixedNow.AddDate(0, 0, -1), DurationMinutes: &minutes},
		{ID: primitive.NewObjectID(), UserID: userID, Name: "Lower Body", StartedAt: fixedNow.AddDate(0, 0, -3), DurationMinutes: &minutes},
		// Another user's session must not leak into the result.
		{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Name: "Other", StartedAt: fixedNow.AddDate(0, 0, -1), DurationMinutes: &minutes},
	}}
	strength := &fakeStrengthRepo{records: []domain.StrengthRecord{
		{UserID: userID, ExerciseID: "sq", ExerciseName: "Squat", OneRepMax: 140, UpdatedAt: fixedNow},
	}}
	svc := newTestAnalyticsService(sessions, &fakeSleepRepo{}, strength, &fakeMeasurementRepo{})

	analytics, err := svc.GetWorkoutAnalytics(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, 2, analytics.TotalWorkouts)
	assert.Equal(t, 2, analytics.WorkoutsThisWeek)
	assert.InDelta(t, 60.0, analytics.AverageWorkoutDuration, 1e-9)
	require.Len(t, analytics.StrengthProgress, 1)
	assert.Equal(t, "Squat", analytics.StrengthProgress[0].ExerciseName)
	assert.Equal(t, fixedNow, analytics.GeneratedAt)
	// Consistency 20 + duration 20 + tracking 10 + streak 10.
	assert.Equal(t, 60, analytics.OverallScore)
}

func TestGetWorkoutAnalyticsEmptyHistory(t *testing.T) {
	svc := newTestAnalyticsService(&fakeSessionRepo{}, &fakeSleepRepo{}, &fakeStrengthRepo{}, &fakeMeasurementRepo{})

	analytics, err := svc.GetWorkoutAnalytics(context.Background(), primitive.NewObjectID())

	require.NoError(t, err)
	assert.Zero(t, analytics.TotalWorkouts)
	assert.Zero(t, analytics.OverallScore)
	assert.Equal(t, []string{}, analytics.FavoriteExercises)
}

func TestGetWorkoutAnalyticsPropagatesFetchError(t *testing.T) {
	sessions := &fakeSessionRepo{err: repository.ErrNotFound}
	svc := newTestAnalyticsService(sessions, &fakeSleepRepo{}, &fakeStrengthRepo{}, &fakeMeasurementRepo{})

	_, err := svc.GetWorkoutAnalytics(context.Background(), primitive.NewObjectID())

	assert.Error(t, err)
}

func TestGetSleepStatsPeriodWindow(t *testing.T) {
	userID := primitive.NewObjectID()
	quality := 4
	sleep := &fakeSleepRepo{records: []domain.SleepRecord{
		{UserID: userID, Date: fixedNow.AddDate(0, 0, -2).Format("2006-01-02"), Hours: 8, Quality: &quality},
		{UserID: userID, Date: fixedNow.AddDate(0, 0, -4).Format("2006-01-02"), Hours: 7},
		// Outside the 7d window.
		{UserID: userID, Date: fixedNow.AddDate(0, 0, -20).Format("2006-01-02"), Hours: 4},
	}}
	svc := newTestAnalyticsService(&fakeSessionRepo{}, sleep, &fakeStrengthRepo{}, &fakeMeasurementRepo{})

	stats, err := svc.GetSleepStats(context.Background(), userID, PeriodWeek)

	require.NoError(t, err)
	assert.Equal(t, PeriodWeek, stats.Period)
	assert.Equal(t, 2, stats.TotalNights)
	assert.InDelta(t, 7.5, stats.AverageHours, 1e-9)
}

func TestGetSleepStatsEmpty(t *testing.T) {
	svc := newTestAnalyticsService(&fakeSessionRepo{}, &fakeSleepRepo{}, &fakeStrengthRepo{}, &fakeMeasurementRepo{})

	stats, err := svc.GetSleepStats(context.Background(), primitive.NewObjectID(), "30d")

	require.NoError(t, err)
	assert.Zero(t, stats.TotalNights)
	assert.Equal(t, domain.TrendStable, stats.Trend)
}

// With no data at all, the rule engine still produces a populated response:
// one risk factor (low frequency) puts the user at moderate, not high.
func TestGetInsightsZeroData(t *testing.T) {
	svc := newTestAnalyticsService(&fakeSessionRepo{}, &fakeSleepRepo{}, &fakeStrengthRepo{}, &fakeMeasurementRepo{})

	result, err := svc.GetInsights(context.Background(), primitive.NewObjectID())

	require.NoError(t, err)
	assert.Equal(t, domain.RiskModerate, result.RiskLevel)
	assert.NotEmpty(t, result.Insights)
	assert.NotEmpty(t, result.Recommendations)
}
