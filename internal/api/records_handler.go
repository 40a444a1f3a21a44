package api

import (
	"alcyxob/coach-api/internal/domain"
	"alcyxob/coach-api/internal/service"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordsHandler holds the record service dependency.
type RecordsHandler struct {
	recordService service.RecordService
}

// NewRecordsHandler creates a new RecordsHandler.
func NewRecordsHandler(recordService service.RecordService) *RecordsHandler {
	return &RecordsHandler{recordService: recordService}
}

// --- DTOs for API (Data Transfer Objects) ---

type ExerciseSetRequest struct {
	SetNumber       int      `json:"setNumber"`
	Reps            *int     `json:"reps"`
	Weight          *float64 `json:"weight"`
	DurationSeconds *int     `json:"durationSeconds"`
	Completed       bool     `json:"completed"`
}

type SessionExerciseRequest struct {
	ExerciseID string               `json:"exerciseId"`
	Name       string               `json:"name" binding:"required"`
	Sets       []ExerciseSetRequest `json:"sets"`
}

type LogSessionRequest struct {
	Name            string                   `json:"name" binding:"required"`
	PlanID          string                   `json:"planId" binding:"omitempty"`
	StartedAt       *time.Time               `json:"startedAt"`
	CompletedAt     *time.Time               `json:"completedAt"`
	DurationMinutes *int                     `json:"durationMinutes"`
	Exercises       []SessionExerciseRequest `json:"exercises"`
	Notes           string                   `json:"notes"`
}

type LogSleepRequest struct {
	Date     string `json:"date" binding:"required"`
	Hours    int    `json:"hours"`
	Minutes  *int   `json:"minutes"`
	Quality  *int   `json:"quality"`
	BedTime  string `json:"bedTime"`
	WakeTime string `json:"wakeTime"`
	Notes    string `json:"notes"`
}

type LogStrengthRequest struct {
	ExerciseID   string  `json:"exerciseId" binding:"required"`
	ExerciseName string  `json:"exerciseName" binding:"required"`
	OneRepMax    float64 `json:"oneRepMax" binding:"required,gt=0"`
}

type LogMeasurementRequest struct {
	Type       string     `json:"type" binding:"required"`
	Value      float64    `json:"value"`
	Unit       string     `json:"unit"`
	MeasuredAt *time.Time `json:"measuredAt"`
}

type PhotoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmPhotoRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

func (r *LogSessionRequest) toDomain(userID primitive.ObjectID) (*domain.WorkoutSession, error) {
	session := &domain.WorkoutSession{
		UserID:          userID,
		Name:            r.Name,
		CompletedAt:     r.CompletedAt,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}
	if r.StartedAt != nil {
		session.StartedAt = *r.StartedAt
	}
	if r.PlanID != "" {
		planID, err := primitive.ObjectIDFromHex(r.PlanID)
		if err != nil {
			return nil, err
		}
		session.PlanID = &planID
	}
	for _, exercise := range r.Exercises {
		sessionExercise := domain.SessionExercise{
			ExerciseID: exercise.ExerciseID,
			Name:       exercise.Name,
		}
		for _, set := range exercise.Sets {
			sessionExercise.Sets = append(sessionExercise.Sets, domain.ExerciseSet{
				SetNumber:       set.SetNumber,
				Reps:            set.Reps,
				Weight:          set.Weight,
				DurationSeconds: set.DurationSeconds,
				Completed:       set.Completed,
			})
		}
		session.Exercises = append(session.Exercises, sessionExercise)
	}
	return session, nil
}

// --- Handler Methods ---

// LogSession records a workout session for the authenticated user.
func (h *RecordsHandler) LogSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req LogSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := req.toDomain(userID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	logged, err := h.recordService.LogSession(c.Request.Context(), session)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log workout session.")
		}
		return
	}

	c.JSON(http.StatusCreated, logged)
}

// GetSessions lists the authenticated user's recent sessions.
func (h *RecordsHandler) GetSessions(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	sessions, err := h.recordService.GetRecentSessions(c.Request.Context(), userID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions.")
		return
	}
	if sessions == nil {
		sessions = []domain.WorkoutSession{}
	}
	c.JSON(http.StatusOK, sessions)
}

// DeleteSession removes one of the authenticated user's sessions.
func (h *RecordsHandler) DeleteSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format.")
		return
	}

	if err := h.recordService.DeleteSession(c.Request.Context(), userID, sessionID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete session.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// LogSleep records (or replaces) one night of sleep.
func (h *RecordsHandler) LogSleep(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req LogSleepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	record := &domain.SleepRecord{
		UserID:   userID,
		Date:     req.Date,
		Hours:    req.Hours,
		Minutes:  req.Minutes,
		Quality:  req.Quality,
		BedTime:  req.BedTime,
		WakeTime: req.WakeTime,
		Notes:    req.Notes,
	}
	if err := h.recordService.LogSleep(c.Request.Context(), record); err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log sleep.")
		}
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetSleepHistory lists the user's sleep records, oldest first.
func (h *RecordsHandler) GetSleepHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	records, err := h.recordService.GetSleepHistory(c.Request.Context(), userID, days)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sleep history.")
		return
	}
	if records == nil {
		records = []domain.SleepRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// LogStrength records (or replaces) a one-rep-max estimate.
func (h *RecordsHandler) LogStrength(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req LogStrengthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	record := &domain.StrengthRecord{
		UserID:       userID,
		ExerciseID:   req.ExerciseID,
		ExerciseName: req.ExerciseName,
		OneRepMax:    req.OneRepMax,
	}
	if err := h.recordService.LogStrength(c.Request.Context(), record); err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log strength record.")
		}
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetStrengthRecords lists the user's strength records.
func (h *RecordsHandler) GetStrengthRecords(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	records, err := h.recordService.GetStrengthRecords(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve strength records.")
		return
	}
	if records == nil {
		records = []domain.StrengthRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// LogMeasurement records a body measurement.
func (h *RecordsHandler) LogMeasurement(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req LogMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	measurement := &domain.BodyMeasurement{
		UserID: userID,
		Type:   req.Type,
		Value:  req.Value,
		Unit:   req.Unit,
	}
	if req.MeasuredAt != nil {
		measurement.MeasuredAt = *req.MeasuredAt
	}

	logged, err := h.recordService.LogMeasurement(c.Request.Context(), measurement)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log measurement.")
		}
		return
	}
	c.JSON(http.StatusCreated, logged)
}

// GetMeasurements lists the user's measurements.
func (h *RecordsHandler) GetMeasurements(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "90"))

	measurements, err := h.recordService.GetMeasurements(c.Request.Context(), userID, days)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve measurements.")
		return
	}
	if measurements == nil {
		measurements = []domain.BodyMeasurement{}
	}
	c.JSON(http.StatusOK, measurements)
}

// RequestPhotoUploadURL returns a presigned PUT URL for a progress photo.
func (h *RecordsHandler) RequestPhotoUploadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	measurementID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid measurement ID format.")
		return
	}

	var req PhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resp, err := h.recordService.RequestPhotoUploadURL(c.Request.Context(), userID, measurementID, req.ContentType)
	if err != nil {
		h.mapPhotoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmPhotoUpload links an uploaded photo to its measurement.
func (h *RecordsHandler) ConfirmPhotoUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	measurementID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid measurement ID format.")
		return
	}

	var req ConfirmPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.recordService.ConfirmPhotoUpload(c.Request.Context(), userID, measurementID, req.ObjectKey); err != nil {
		h.mapPhotoError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPhotoDownloadURL returns a presigned GET URL for a progress photo.
func (h *RecordsHandler) GetPhotoDownloadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	measurementID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid measurement ID format.")
		return
	}

	url, err := h.recordService.GetPhotoDownloadURL(c.Request.Context(), userID, measurementID)
	if err != nil {
		h.mapPhotoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}

func (h *RecordsHandler) mapPhotoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMeasurementNotFound), errors.Is(err, service.ErrPhotoMissing):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMeasurementNotOwned):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Photo operation failed.")
	}
}
