package service

import (
	"alcyxob/coach-api/internal/domain"
	"alcyxob/coach-api/internal/insight"
	"alcyxob/coach-api/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// Sleep period presets accepted by GetSleepStats. Unknown values fall back
// to the month window.
const (
	PeriodWeek    = "7d"
	PeriodMonth   = "30d"
	PeriodQuarter = "90d"
)

// AnalyticsService runs the insight engine over a user's stored records.
//
// The record fetches behind one call are independent reads with no
// cross-read transaction: concurrent writes can land between them, so the
// computed result may mix slightly different "as of" instants. That is an
// accepted eventual-consistency trade-off, not a bug.
type AnalyticsService interface {
	GetWorkoutAnalytics(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutAnalytics, error)
	GetSleepStats(ctx context.Context, userID primitive.ObjectID, period string) (*domain.SleepStats, error)
	GetInsights(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutInsights, error)
}

// analyticsService implements the AnalyticsService interface.
type analyticsService struct {
	sessionRepo     repository.SessionRepository
	sleepRepo       repository.SleepRepository
	strengthRepo    repository.StrengthRepository
	measurementRepo repository.MeasurementRepository
	engine          *insight.Engine
	now             func() time.Time
}

// NewAnalyticsService creates a new instance of analyticsService. The clock
// is injectable for deterministic tests; pass nil for the wall clock.
func NewAnalyticsService(
	sessionRepo repository.SessionRepository,
	sleepRepo repository.SleepRepository,
	strengthRepo repository.StrengthRepository,
	measurementRepo repository.MeasurementRepository,
	engine *insight.Engine,
	now func() time.Time,
) AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &analyticsService{
		sessionRepo:     sessionRepo,
		sleepRepo:       sleepRepo,
		strengthRepo:    strengthRepo,
		measurementRepo: measurementRepo,
		engine:          engine,
		now:             now,
	}
}

// GetWorkoutAnalytics fetches the user's sessions, strength records and
// measurements concurrently and aggregates them. The three fetches are
// independent, so they fan out; the engine tolerates any subset being
// empty.
func (s *analyticsService) GetWorkoutAnalytics(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutAnalytics, error) {
	now := s.now().UTC()

	var (
		sessions     []domain.WorkoutSession
		strength     []domain.StrengthRecord
		measurements []domain.BodyMeasurement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = s.sessionRepo.GetByUser(gctx, userID, 0)
		return err
	})
	g.Go(func() error {
		var err error
		strength, err = s.strengthRepo.GetByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		measurements, err = s.measurementRepo.GetByUserSince(gctx, userID, time.Time{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analytics := s.engine.ComputeWorkoutAnalytics(sessions, strength, measurements, now)
	return &analytics, nil
}

// GetSleepStats aggregates the user's sleep records over the given period
// preset.
func (s *analyticsService) GetSleepStats(ctx context.Context, userID primitive.ObjectID, period string) (*domain.SleepStats, error) {
	now := s.now().UTC()
	days := periodDays(period)
	sinceDate := now.AddDate(0, 0, -days).Format("2006-01-02")

	records, err := s.sleepRepo.GetByUserSince(ctx, userID, sinceDate)
	if err != nil {
		return nil, err
	}

	stats := s.engine.ComputeSleepStats(records, period, now)
	return &stats, nil
}

// GetInsights aggregates the user's workout data and runs the rule engine
// over it.
func (s *analyticsService) GetInsights(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutInsights, error) {
	analytics, err := s.GetWorkoutAnalytics(ctx, userID)
	if err != nil {
		return nil, err
	}

	insights := s.engine.ComputeInsights(*analytics, s.now().UTC())
	return &insights, nil
}

func periodDays(period string) int {
	switch period {
	case PeriodWeek:
		return 7
	case PeriodQuarter:
		return 90
	default:
		return 30
	}
}
