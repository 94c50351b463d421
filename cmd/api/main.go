package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/studifund/studifund-api/internal/config"
	"github.com/studifund/studifund-api/internal/database"
	"github.com/studifund/studifund-api/internal/handler"
	"github.com/studifund/studifund-api/internal/middleware"
	"github.com/studifund/studifund-api/internal/models"
	"github.com/studifund/studifund-api/internal/repository"
	"github.com/studifund/studifund-api/internal/router"
	"github.com/studifund/studifund-api/internal/service"
	"github.com/studifund/studifund-api/pkg/localfs"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger = logger.With().Str("app", cfg.AppName).Logger()
	if cfg.AppEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Claim{},
		&models.AcademicRecord{},
		&models.Course{},
		&models.StudyPlan{},
		&models.Notification{},
		&models.Session{},
	); err != nil {
		logger.Fatal().Err(err).Msg("database migration failed")
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, caching and cross-node fan-out disabled")
			redisClient = nil
		}
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, cross-node fan-out disabled")
			natsConn = nil
		}
	}

	fileStore, err := localfs.New(localfs.Config{Dir: cfg.UploadDir, URLPrefix: "/uploads"}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare upload storage")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	recordRepo := repository.NewAcademicRecordRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	planRepo := repository.NewStudyPlanRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	mailer := service.NewLogMailer(logger)
	notificationService := service.NewNotificationService(notificationRepo, redisClient, "studifund", natsConn, validate, logger)
	authService := service.NewAuthService(userRepo, validate, logger)
	userService := service.NewUserService(userRepo, validate, logger)
	claimService := service.NewClaimService(claimRepo, userRepo, notificationService, mailer, redisClient, cfg.SummaryCacheTTL, validate, logger)
	academicService := service.NewAcademicService(recordRepo, courseRepo, validate, logger)
	planService := service.NewStudyPlanService(planRepo, validate, logger)
	uploadService := service.NewUploadService(fileStore, cfg.UploadMaxSizeMB, logger)

	sessions := middleware.NewSessionStore(database.NewSessionStore(db), cfg.SessionTTL)
	submitLimit := middleware.RateLimit("claims", cfg.ClaimSubmitLimit, time.Minute)

	app := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		BodyLimit: (cfg.UploadMaxSizeMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})

	router.Register(app, cfg, router.Dependencies{
		Sessions:      sessions,
		Auth:          handler.NewAuthHandler(authService, sessions, logger),
		Users:         handler.NewUserHandler(userService, logger),
		Claims:        handler.NewClaimHandler(claimService, submitLimit, logger),
		Academic:      handler.NewAcademicHandler(academicService, logger),
		StudyPlans:    handler.NewStudyPlanHandler(planService, logger),
		Notifications: handler.NewNotificationHandler(notificationService, logger),
		Uploads:       handler.NewUploadHandler(uploadService, logger),
		Health:        handler.NewHealthHandler(db, cfg.AppName, logger),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notificationService.Start(ctx)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Str("env", cfg.AppEnv).Msg("server started")

	waitForShutdown(app, cancel, redisClient, natsConn, logger)
}

func waitForShutdown(app *fiber.App, cancel context.CancelFunc, redisClient *redis.Client, natsConn *nats.Conn, logger zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	cancel()

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if natsConn != nil {
		natsConn.Close()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn().Err(err).Msg("redis close failed")
		}
	}

	logger.Info().Msg("server stopped")
}
