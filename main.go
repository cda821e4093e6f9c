package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hatchling/app"
	"hatchling/config"
	"hatchling/database"
	"hatchling/handlers"
	"hatchling/middleware"
	"hatchling/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	// Initialize SQLite store
	store, err := database.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database initialized", "path", cfg.DBPath)

	application := app.New(store, logger)

	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 30,
		DisableStartupMessage: cfg.Env == "production",
		ErrorHandler:          customErrorHandler(logger),
		ReadBufferSize:        8192,
	})

	fiberApp.Use(
		recover.New(),
		middleware.StructuredLogger(logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:     config.GetEnv("CORS_ORIGINS", "*"),
			AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,X-Actor-ID",
			AllowCredentials: false,
			MaxAge:           86400,
		}),
		limiter.New(limiter.Config{
			Max:        200,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)

	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	api := fiberApp.Group("/api", middleware.Actor())

	registerRoutes(api, application)

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)

	go func() {
		if err := fiberApp.Listen(":" + cfg.Port); err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func registerRoutes(api fiber.Router, a *app.App) {
	handlers.RegisterEntityRoutes[*models.Baby, models.BabyPatch](api, a, "babies", a.Repos.Babies)
	handlers.RegisterEntityRoutes[*models.Feeding, models.FeedingPatch](api, a, "feedings", a.Repos.Feedings)
	handlers.RegisterEntityRoutes[*models.Sleep, models.SleepPatch](api, a, "sleeps", a.Repos.Sleeps)
	handlers.RegisterEntityRoutes[*models.Diaper, models.DiaperPatch](api, a, "diapers", a.Repos.Diapers)
	handlers.RegisterEntityRoutes[*models.Growth, models.GrowthPatch](api, a, "growth", a.Repos.Growth)
	handlers.RegisterEntityRoutes[*models.Milestone, models.MilestonePatch](api, a, "milestones", a.Repos.Milestones)
	handlers.RegisterEntityRoutes[*models.Memory, models.MemoryPatch](api, a, "memories", a.Repos.Memories)
	handlers.RegisterEntityRoutes[*models.Activity, models.ActivityPatch](api, a, "activities", a.Repos.Activities)
	handlers.RegisterEntityRoutes[*models.Medication, models.MedicationPatch](api, a, "medications", a.Repos.Medications)
	handlers.RegisterEntityRoutes[*models.Vaccination, models.VaccinationPatch](api, a, "vaccinations", a.Repos.Vaccinations)
	handlers.RegisterEntityRoutes[*models.Symptom, models.SymptomPatch](api, a, "symptoms", a.Repos.Symptoms)
	handlers.RegisterEntityRoutes[*models.DoctorVisit, models.DoctorVisitPatch](api, a, "doctor-visits", a.Repos.DoctorVisits)
	handlers.RegisterEntityRoutes[*models.Reminder, models.ReminderPatch](api, a, "reminders", a.Repos.Reminders)

	api.Get("/sync/queue", handlers.DequeueAll(a))
	api.Post("/sync/queue/:id/ack", handlers.AcknowledgeEntry(a))
	api.Post("/sync/queue/:id/fail", handlers.RecordFailure(a))
	api.Post("/sync/:entityType/:id/synced", handlers.MarkSynced(a))
	api.Get("/sync/pending-count", handlers.PendingCount(a))

	api.Post("/admin/wipe", handlers.WipeAll(a))
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(cfg),
		AddSource: cfg.Env == "development",
	}

	if cfg.Env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func getLogLevel(cfg *config.Config) slog.Level {
	switch cfg.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func customErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		requestID := ""
		if id, ok := c.Locals("requestID").(string); ok {
			requestID = id
		}

		logger.Error("request failed",
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", code,
			"error", err,
		)

		return c.Status(code).JSON(fiber.Map{
			"error":      message,
			"request_id": requestID,
		})
	}
}
