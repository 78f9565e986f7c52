package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"data-catalog/internal/config"
	"data-catalog/internal/database"
	"data-catalog/internal/handler"
	"data-catalog/internal/middleware"
	"data-catalog/internal/pkg/logger"
	"data-catalog/internal/pkg/telemetry"
	"data-catalog/internal/repository"
	"data-catalog/internal/repository/memory"
	"data-catalog/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	appLog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, appLog, telemetry.Config{
		ServiceName: "data-catalog",
		Environment: cfg.Environment,
		Enabled:     cfg.OTelEnabled,
		Stdout:      cfg.OTelStdout,
	})
	if err != nil {
		appLog.Warn("Tracing disabled", "error", err)
	}

	var repos *repository.Repositories
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		appLog.Info("Using in-memory storage")
		repos = memory.NewRepositories()
	case config.StorageDriverPostgres:
		if cfg.AutoMigrate {
			if err := database.Migrate(cfg.DatabaseURL); err != nil {
				appLog.Fatal("Failed to run migrations", "error", err)
			}
		}
		db, err := config.NewPostgresDB(cfg)
		if err != nil {
			appLog.Fatal("Failed to connect to database", "error", err)
		}
		defer db.Close()
		repos = repository.NewRepositories(db)
	default:
		appLog.Fatal("Unknown storage driver", "driver", cfg.StorageDriver)
	}

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		appLog.Warn("Failed to connect to Redis, stats cache disabled", "error", err)
		redis = nil
	}
	if redis != nil {
		defer redis.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		appLog.Warn("Failed to connect to MinIO, documentation upload disabled", "error", err)
		minioClient = nil
	}

	services := service.NewServices(repos, redis, minioClient, cfg, appLog)
	handlers := handler.NewHandlers(services)

	if cfg.SeedData {
		created, err := services.Seed.Seed(ctx)
		if err != nil {
			appLog.Error("Failed to seed sample catalog", "error", err)
		} else if created > 0 {
			appLog.Info("Seeded sample catalog", "products", created)
		}
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(appLog),
		BodyLimit:    12 << 20,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.ActorHeader,
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	handler.RegisterRoutes(app, handlers, cfg.JWTSecret)

	go func() {
		<-ctx.Done()
		appLog.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLog.Error("Server shutdown failed", "error", err)
		}
	}()

	appLog.Info("Server starting", "port", cfg.Port, "storage", cfg.StorageDriver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLog.Error("Server stopped", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			appLog.Warn("Tracing shutdown failed", "error", err)
		}
	}
}
