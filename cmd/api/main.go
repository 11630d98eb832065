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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/veritasai/veritas-backend/docs"
	pkgvalidator "github.com/veritasai/veritas-backend/pkg/validator"

	"github.com/veritasai/veritas-backend/internal/adapter/handler"
	"github.com/veritasai/veritas-backend/internal/adapter/repository"
	"github.com/veritasai/veritas-backend/internal/infrastructure/cache"
	"github.com/veritasai/veritas-backend/internal/infrastructure/database"
	"github.com/veritasai/veritas-backend/internal/infrastructure/external/webhook"
	"github.com/veritasai/veritas-backend/internal/infrastructure/storage"
	"github.com/veritasai/veritas-backend/internal/usecase/compose"
	"github.com/veritasai/veritas-backend/internal/usecase/delivery"
	"github.com/veritasai/veritas-backend/internal/usecase/report"
	pkgai "github.com/veritasai/veritas-backend/pkg/ai"
	"github.com/veritasai/veritas-backend/pkg/config"
	"github.com/veritasai/veritas-backend/pkg/jobcontext"
)

const redisMaxWait = 15 * time.Second

// @title           Veritas AI Backend
// @version         1.0
// @description     Generates personalized meeting summary emails from transcripts and relays them through a delivery webhook.

// @contact.name   API Support
// @contact.email  ricardo.barroca@dengun.com

// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
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
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
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

	// Apply embedded migrations only when explicitly enabled in config.
	// Production deployments should manage schema via scripts/migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or run scripts/migrate.")
		}
		if _, err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run scripts/migrate to update the schema")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database object: %v", err)
	}

	// Dispatch lock: Redis when configured, in-process otherwise
	var locker delivery.Locker
	if cfg.Redis.Addr != "" {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(&cfg.Redis, redisMaxWait)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		locker = cache.NewRedisLocker(redisClient)
	} else {
		log.Println("⚠️  REDIS_ADDR not set, using in-process dispatch lock")
		store := cache.NewMemoryStore()
		defer store.Close()
		locker = cache.NewMemoryLocker(store)
	}

	// Email archive is optional
	var archiver report.Archiver
	if cfg.Storage.Endpoint != "" {
		log.Println("🗄️  Connecting to object storage...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		archive, err := storage.NewEmailArchive(ctx, &cfg.Storage)
		cancel()
		if err != nil {
			log.Fatalf("Failed to initialize email archive: %v", err)
		}
		archiver = archive
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	repos := report.Repositories{
		Meetings:     repository.NewMeetingRepository(db),
		Transcripts:  repository.NewTranscriptRepository(db),
		Participants: repository.NewParticipantRepository(db),
		Users:        repository.NewUserRepository(db),
		Emails:       repository.NewEmailRepository(db),
	}

	// Initialize composition
	log.Println("🤖 Initializing AI components...")
	renderer := compose.NewRenderer(compose.Signature{
		Name:  cfg.Report.FromName,
		Role:  compose.DefaultSignature.Role,
		Email: cfg.Report.FromEmail,
	}, nil)
	var completer compose.Completer
	if cfg.AI.Enabled() {
		completer = pkgai.NewChatClient(&cfg.AI)
		log.Printf("✅ AI summaries enabled (model %s)", cfg.AI.Model)
	} else {
		log.Println("⚠️  OPENAI_API_KEY not set, using template summaries")
	}
	summarizer := compose.NewSummarizer(completer, renderer, logger)

	// Initialize delivery
	log.Println("🪝 Initializing webhook delivery...")
	webhookClient := webhook.NewClient(&cfg.Webhook)
	dispatcher := delivery.NewDispatcher(repos.Emails, webhookClient, locker, cfg.Redis.LockTTL, logger)

	reportService := report.NewService(repos, summarizer, dispatcher, archiver, report.Settings{
		FromEmail:           cfg.Report.FromEmail,
		GuaranteedRecipient: cfg.Report.GuaranteedRecipient,
		JobTimeout:          jobcontext.DefaultTimeout,
	}, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, reportHandler, sqlDB)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
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
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
