package handler

import (
	"github.com/MikhailONe12/App-Risk-Manager/internal/middleware"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Profile   *ProfileHandler
	Journal   *JournalHandler
	Dashboard *DashboardHandler
	Sync      *SyncHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes. Manual sync triggers are rate limited per profile.
func RegisterRoutes(e *echo.Echo, h Handlers, syncLimiter *middleware.RateLimiter) {
	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API version 1
	api := e.Group("/api/v1")
	api.GET("/openapi.json", ServeOpenAPISpec)

	// Profile routes
	profiles := api.Group("/profiles")
	profiles.GET("", h.Profile.ListProfiles)
	profiles.POST("", h.Profile.CreateProfile)
	profiles.GET("/active", h.Profile.GetActiveProfile)
	profiles.GET("/:id", h.Profile.GetProfile)
	profiles.PUT("/:id", h.Profile.UpdateProfile)
	profiles.PUT("/:id/sync-config", h.Profile.UpdateSyncConfig)
	profiles.POST("/:id/activate", h.Profile.ActivateProfile)

	// Dashboard routes
	profiles.GET("/:id/dashboard", h.Dashboard.GetDashboard)

	// Journal routes
	profiles.GET("/:id/journal", h.Journal.GetJournal)
	profiles.POST("/:id/journal", h.Journal.LogEntry)
	profiles.DELETE("/:id/journal/:entryId", h.Journal.DeleteEntry)

	// Sync routes
	limited := middleware.RateLimitMiddleware(syncLimiter, middleware.ProfileParamKey)
	profiles.GET("/:id/sync", h.Sync.GetStatus)
	profiles.POST("/:id/sync/pull", h.Sync.Pull, limited)
	profiles.POST("/:id/sync/push", h.Sync.Push, limited)
	profiles.POST("/:id/sync/visibility", h.Sync.Visibility)
}
