package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/voice-dataset/docs"
	"github.com/johnquangdev/voice-dataset/internal/adapter/handler"
	"github.com/johnquangdev/voice-dataset/internal/adapter/repository"
	"github.com/johnquangdev/voice-dataset/internal/domain/repositories"
	"github.com/johnquangdev/voice-dataset/internal/infrastructure/audio"
	"github.com/johnquangdev/voice-dataset/internal/infrastructure/cache"
	"github.com/johnquangdev/voice-dataset/internal/infrastructure/database"
	"github.com/johnquangdev/voice-dataset/internal/infrastructure/external/trainer"
	"github.com/johnquangdev/voice-dataset/internal/infrastructure/storage"
	"github.com/johnquangdev/voice-dataset/internal/usecase/admin"
	"github.com/johnquangdev/voice-dataset/internal/usecase/catalog"
	"github.com/johnquangdev/voice-dataset/internal/usecase/export"
	"github.com/johnquangdev/voice-dataset/internal/usecase/recording"
	"github.com/johnquangdev/voice-dataset/internal/usecase/session"
	"github.com/johnquangdev/voice-dataset/internal/usecase/training"
	"github.com/johnquangdev/voice-dataset/pkg/config"
	pkglogger "github.com/johnquangdev/voice-dataset/pkg/logger"
	pkgvalidator "github.com/johnquangdev/voice-dataset/pkg/validator"
)

// @title           Voice Dataset API
// @version         1.0
// @description     Records read-aloud sentences per contributor and manages the resulting dataset.

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := pkglogger.New(cfg.Log, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
		ExposeHeaders: []string{echo.HeaderContentDisposition, "X-Export-Included", "X-Export-Skipped"},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or run cmd/migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use cmd/migrate for schema migrations")
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	// Initialize blob storage
	var (
		blobs       repositories.BlobStore
		inspector   repositories.BlobStoreInspector
		blobHandler *handler.Blob
	)
	switch cfg.Storage.Type {
	case "nats":
		log.Printf("📦 Connecting to NATS object store at %s...", cfg.NATS.URL)
		nc, err := nats.Connect(cfg.NATS.URL, nats.Name("voice-dataset-api"))
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer nc.Drain()

		js, err := nc.JetStream()
		if err != nil {
			log.Fatalf("Failed to open JetStream: %v", err)
		}
		objectStore, err := storage.NewNatsObjectStore(js, cfg.Storage.BucketName, cfg.Storage.PublicURL)
		if err != nil {
			log.Fatalf("Failed to open object store: %v", err)
		}
		blobs = objectStore
		inspector = objectStore
		// The object store has no HTTP endpoint, so the API serves it
		blobHandler = handler.NewBlobHandler(objectStore, logger)
	default:
		log.Printf("📦 Connecting to MinIO at %s...", cfg.Storage.Endpoint)
		minioClient, err := storage.NewMinIOClient(startCtx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO: %v", err)
		}
		blobs = minioClient
		inspector = minioClient
	}

	// Initialize session snapshot store
	var snapshots repositories.SessionStore
	switch cfg.Session.Store {
	case "redis":
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(startCtx, cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		snapshots = cache.NewRedisStore(redisClient)
	default:
		log.Println("⚠️  Session snapshots kept in memory; sessions do not survive a restart")
		memoryStore := cache.NewMemoryStore()
		defer memoryStore.Close()
		snapshots = memoryStore
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	contributorRepo := repository.NewContributorRepository(db)
	sentenceRepo := repository.NewSentenceRepository(db)
	recordingRepo := repository.NewRecordingRepository(db)

	// Initialize use cases
	log.Println("🎙️  Initializing session manager...")
	manager := session.NewManager(session.Dependencies{
		Catalog:        catalog.NewService(contributorRepo, sentenceRepo),
		Store:          recording.NewStore(blobs, recordingRepo, cfg.Storage.AudioExtension),
		Input:          audio.RemoteInput{},
		Output:         audio.RemoteOutput{},
		Confirmer:      audio.ContextConfirmer{},
		StoreTimeout:   cfg.Session.StoreTimeout,
		AudioExtension: cfg.Storage.AudioExtension,
	}, snapshots, cfg.Session.TTL, logger)

	adminService := admin.NewService(contributorRepo, sentenceRepo, recordingRepo, logger)
	exportService := export.NewService(recordingRepo, blobs, logger)
	trainingService := training.NewService(contributorRepo, trainer.NewClient(&cfg.Trainer, logger), logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		handler.NewSessionHandler(manager, cfg.Server.MaxUploadBytes, logger),
		handler.NewAdminHandler(adminService, exportService, trainingService, logger),
		blobHandler,
		inspector,
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("server.shutdown.forced", zap.Error(err))
		fmt.Fprintf(os.Stderr, "❌ Server forced to shutdown: %v\n", err)
		return
	}

	log.Println("✅ Server stopped gracefully")
}
