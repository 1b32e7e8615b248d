package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikhailONe12/App-Risk-Manager/internal/config"
	"github.com/MikhailONe12/App-Risk-Manager/internal/handler"
	"github.com/MikhailONe12/App-Risk-Manager/internal/middleware"
	"github.com/MikhailONe12/App-Risk-Manager/internal/repository"
	"github.com/MikhailONe12/App-Risk-Manager/internal/service"
	"github.com/MikhailONe12/App-Risk-Manager/internal/sheets"
	"github.com/MikhailONe12/App-Risk-Manager/internal/trace"
	"github.com/MikhailONe12/App-Risk-Manager/internal/websocket"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var version = "dev"

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := trace.Init(cfg.TracingEnabled, version, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	ctx := context.Background()

	// Open the state backend
	blobs, closeBlobs, err := repository.OpenBlobStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("Failed to open state backend")
	}
	defer closeBlobs()
	log.Info().Str("backend", cfg.StoreBackend).Msg("State backend ready")

	seed, err := cfg.SeedProfiles()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load profile seed")
	}

	store := service.NewStore(repository.NewStateRepository(blobs))
	if err := store.Load(ctx, seed); err != nil {
		log.Fatal().Err(err).Msg("Failed to load state")
	}

	// Real-time updates
	hub := websocket.NewHub()
	metricsService := service.NewMetricsService(store)
	store.Subscribe(func(profileID string) {
		view, err := metricsService.GetDashboard(profileID)
		if err != nil {
			return
		}
		hub.Publish(profileID, websocket.DashboardUpdated(view.Stats))
	})

	// Initialize services
	client := sheets.NewClient(&http.Client{Timeout: cfg.Sync.HTTPTimeout})
	reconciler := service.NewReconcileService(store, client, sheets.NewMapper(), log.Logger)
	reconciler.SetEventPublisher(hub)

	profileService := service.NewProfileService(store)
	profileService.SetEventPublisher(hub)

	journalService := service.NewJournalService(store, reconciler)
	journalService.SetEventPublisher(hub)

	worker, err := service.NewSyncWorker(reconciler, log.Logger, service.SyncWorkerConfig{
		Schedule:    cfg.Sync.PullSchedule,
		PullOnStart: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sync worker")
	}

	syncLimiter := middleware.NewRateLimiterWithConfig(cfg.Sync.RateLimitPerMinute, 2)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": version})
	})

	// Register API routes
	handler.RegisterRoutes(e, handler.Handlers{
		Profile:   handler.NewProfileHandler(profileService),
		Journal:   handler.NewJournalHandler(journalService),
		Dashboard: handler.NewDashboardHandler(metricsService),
		Sync:      handler.NewSyncHandler(reconciler),
		WebSocket: handler.NewWebSocketHandler(hub, profileService, cfg.CORSOrigins),
	}, syncLimiter)

	if err := worker.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start sync worker")
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	worker.Stop()
	reconciler.Wait()
	syncLimiter.Stop()

	if err := trace.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			ctx, span := trace.StartSpan(c.Request().Context(), c.Request().Method+" "+c.Path())
			defer span.End()
			c.SetRequest(c.Request().WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID))
			if traceID, spanID, ok := trace.GetTraceFields(ctx); ok {
				event = event.Str("trace_id", traceID).Str("span_id", spanID)
			}
			event.Msg("request")

			return nil
		}
	}
}
