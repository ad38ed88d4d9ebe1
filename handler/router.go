package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mindwell/middleware"
	"mindwell/usecase"
)

const maxRequestBytes = 1 << 20

// SetupRouter wires every route. health may be nil.
func SetupRouter(s *usecase.Services, health *HealthHandler, corsOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestTracingMiddleware(),
		middleware.EnhancedRecoveryMiddleware(),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(corsOrigins),
		middleware.SecurityHeaders(),
		middleware.RequestSizeLimiter(maxRequestBytes),
	)

	if health == nil {
		health = NewHealthHandler(nil)
	}
	router.GET("/health", health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api/auth")
	{
		public.POST("/register/", func(c *gin.Context) {
			RegisterHandler(c, s.Users)
		})
		public.POST("/login/", func(c *gin.Context) {
			LoginHandler(c, s.Users)
		})
	}

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(s.Users.Tokens, s.Users), middleware.NoStore())
	{
		auth := protected.Group("/auth")
		{
			auth.POST("/logout/", func(c *gin.Context) {
				LogoutHandler(c, s.Users)
			})
			auth.POST("/logout-all/", func(c *gin.Context) {
				LogoutAllSessionsHandler(c, s.Users)
			})
			auth.GET("/profile/", func(c *gin.Context) {
				GetUserProfileHandler(c, s.Users)
			})
			auth.GET("/sessions/", func(c *gin.Context) {
				GetActiveSessionsHandler(c, s.Users)
			})
		}

		moods := protected.Group("/moods")
		{
			moods.GET("/vocabulary/", GetMoodVocabularyHandler)
			moods.GET("/entries/", func(c *gin.Context) {
				GetMoodEntriesHandler(c, s.Moods)
			})
			moods.POST("/entries/", func(c *gin.Context) {
				CreateMoodEntryHandler(c, s.Moods)
			})
			moods.GET("/entries/:id/", func(c *gin.Context) {
				GetMoodEntryHandler(c, s.Moods)
			})
			moods.PATCH("/entries/:id/", func(c *gin.Context) {
				UpdateMoodEntryHandler(c, s.Moods)
			})
			moods.DELETE("/entries/:id/", func(c *gin.Context) {
				DeleteMoodEntryHandler(c, s.Moods)
			})

			moods.GET("/insights/", func(c *gin.Context) {
				GetInsightsHandler(c, s.Insights)
			})
			moods.POST("/insights/generate/", func(c *gin.Context) {
				GenerateInsightHandler(c, s.Insights)
			})
			moods.GET("/insights/:id/", func(c *gin.Context) {
				GetInsightHandler(c, s.Insights)
			})

			stats := NewStatsHandler(s.Moods, s.Notifications)
			moods.GET("/stats/", stats.GetMoodStats)
			moods.GET("/calendar/", stats.GetCalendar)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("/", func(c *gin.Context) {
				GetNotificationsHandler(c, s.Notifications)
			})
			notifications.POST("/read-all/", func(c *gin.Context) {
				MarkAllNotificationsReadHandler(c, s.Notifications)
			})
			notifications.POST("/:id/read/", func(c *gin.Context) {
				MarkNotificationReadHandler(c, s.Notifications)
			})
			notifications.DELETE("/:id/", func(c *gin.Context) {
				DeleteNotificationHandler(c, s.Notifications)
			})
		}
	}

	return router
}
