package api

import (
	"alcyxob/coach-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	recordService service.RecordService,
	analyticsService service.AnalyticsService,
) {

	authHandler := NewAuthHandler(authService)
	recordsHandler := NewRecordsHandler(recordService)
	analyticsHandler := NewAnalyticsHandler(analyticsService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		// --- Workout Session Routes ---
		sessionGroup := protected.Group("/sessions")
		{
			// POST /api/v1/sessions
			sessionGroup.POST("", recordsHandler.LogSession)
			// GET /api/v1/sessions?limit=50
			sessionGroup.GET("", recordsHandler.GetSessions)
			// DELETE /api/v1/sessions/{id}
			sessionGroup.DELETE("/:id", recordsHandler.DeleteSession)
		}

		// --- Sleep Routes ---
		sleepGroup := protected.Group("/sleep")
		{
			// POST /api/v1/sleep (upserts by date)
			sleepGroup.POST("", recordsHandler.LogSleep)
			// GET /api/v1/sleep?days=30
			sleepGroup.GET("", recordsHandler.GetSleepHistory)
		}

		// --- Strength Routes ---
		strengthGroup := protected.Group("/strength")
		{
			// POST /api/v1/strength (upserts by exercise)
			strengthGroup.POST("", recordsHandler.LogStrength)
			// GET /api/v1/strength
			strengthGroup.GET("", recordsHandler.GetStrengthRecords)
		}

		// --- Measurement Routes ---
		measurementGroup := protected.Group("/measurements")
		{
			// POST /api/v1/measurements
			measurementGroup.POST("", recordsHandler.LogMeasurement)
			// GET /api/v1/measurements?days=90
			measurementGroup.GET("", recordsHandler.GetMeasurements)

			// --- Progress Photo Management ---
			// POST /api/v1/measurements/{id}/photo/upload-url
			measurementGroup.POST("/:id/photo/upload-url", recordsHandler.RequestPhotoUploadURL)
			// POST /api/v1/measurements/{id}/photo/confirm
			measurementGroup.POST("/:id/photo/confirm", recordsHandler.ConfirmPhotoUpload)
			// GET /api/v1/measurements/{id}/photo/download-url
			measurementGroup.GET("/:id/photo/download-url", recordsHandler.GetPhotoDownloadURL)
		}

		// --- Analytics Routes ---
		analyticsGroup := protected.Group("/analytics")
		{
			// GET /api/v1/analytics/workouts
			analyticsGroup.GET("/workouts", analyticsHandler.GetWorkoutAnalytics)
			// GET /api/v1/analytics/sleep?period=30d
			analyticsGroup.GET("/sleep", analyticsHandler.GetSleepStats)
			// GET /api/v1/analytics/insights
			analyticsGroup.GET("/insights", analyticsHandler.GetInsights)
		}
	}
}
