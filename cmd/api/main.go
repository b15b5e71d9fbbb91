package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/uniadvisor/counsel-api/internal/config"
	"github.com/uniadvisor/counsel-api/internal/database"
	"github.com/uniadvisor/counsel-api/internal/handler"
	"github.com/uniadvisor/counsel-api/internal/match"
	"github.com/uniadvisor/counsel-api/internal/middleware"
	"github.com/uniadvisor/counsel-api/internal/models"
	"github.com/uniadvisor/counsel-api/internal/repository"
	"github.com/uniadvisor/counsel-api/internal/router"
	"github.com/uniadvisor/counsel-api/internal/service"
	"github.com/uniadvisor/counsel-api/pkg/ai"
	"github.com/uniadvisor/counsel-api/pkg/hipo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.University{},
		&models.ShortlistEntry{},
		&models.Task{},
		&models.ChatMessage{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())
	classifier := match.NewClassifier(nil)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	universityRepo := repository.NewUniversityRepository(db)
	shortlistRepo := repository.NewShortlistRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	chatRepo := repository.NewChatRepository(db)

	dashboardService := service.NewDashboardService(userRepo, profileRepo, shortlistRepo, taskRepo, redisClient, cfg.DashboardCacheTTL, logger)
	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.JWTExpiry, logger)
	profileService := service.NewProfileService(profileRepo, userRepo, taskRepo, dashboardService, validate, logger)
	universityService := service.NewUniversityService(universityRepo, profileRepo, classifier, validate, logger)
	externalService := service.NewExternalSearchService(hipo.NewClient(cfg.DirectoryURL), universityRepo, logger)
	shortlistService := service.NewShortlistService(shortlistRepo, universityRepo, dashboardService, validate, logger)
	taskService := service.NewTaskService(taskRepo, dashboardService, validate, logger)
	guidanceService := service.NewGuidanceService(shortlistRepo, taskRepo, logger)
	seedService := service.NewSeedService(universityRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	offline := ai.NewOfflineCounsellor(logger)
	counsellor := ai.Counsellor(offline)
	if cfg.AIProvider == "openai" {
		openAI, err := ai.NewOpenAICounsellor(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create openai counsellor: %v", err)
		}
		counsellor = openAI
	}

	chatService := service.NewChatService(service.ChatDeps{
		Messages:     chatRepo,
		Profiles:     profileRepo,
		Entries:      shortlistRepo,
		Universities: universityRepo,
		Tasks:        taskService,
		Shortlist:    shortlistService,
		Profile:      profileService,
		Search:       externalService,
		Counsellor:   counsellor,
		Offline:      offline,
		Classifier:   classifier,
	}, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		ProfileHandler:    handler.NewProfileHandler(profileService, logger),
		UniversityHandler: handler.NewUniversityHandler(universityService, logger),
		ExternalHandler:   handler.NewExternalUniversityHandler(externalService, logger),
		ShortlistHandler:  handler.NewShortlistHandler(shortlistService, logger),
		TaskHandler:       handler.NewTaskHandler(taskService, logger),
		GuidanceHandler:   handler.NewGuidanceHandler(guidanceService, logger),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService, logger),
		ChatHandler:       handler.NewChatHandler(chatService, logger),
		SeedHandler:       handler.NewSeedHandler(seedService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
