package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "pantry-backend/docs"
	"pantry-backend/internal/config"
	"pantry-backend/internal/database"
	"pantry-backend/internal/handlers"
	"pantry-backend/internal/repository"
	"pantry-backend/internal/routes"
	"pantry-backend/internal/services"
	"pantry-backend/internal/translation"
	"pantry-backend/internal/utils"
	"pantry-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title Pantry Backend API
// @version 1.0
// @description Admin API for a food pantry inventory: categories, food items, languages and automatic name translations
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

func main() {
	loadEnvFile()

	log := setupLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	categoryRepo := repository.NewCategoryRepository(db)
	foodItemRepo := repository.NewFoodItemRepository(db)
	langRepo := repository.NewLanguageRepository(db)
	translationRepo := repository.NewTranslationRepository(db)
	entityRepo := repository.NewEntityRepository(db)

	translator := newTranslator(cfg, log)
	orchestrator := translation.NewOrchestrator(entityRepo, langRepo, translationRepo, translator, translation.Options{
		DefaultLanguage: cfg.Translation.DefaultLanguage,
		CallDelay:       cfg.Translation.CallDelay,
		PreserveManual:  cfg.Translation.PreserveManual,
	}, log)

	dispatcher := translation.NewDispatcher(orchestrator, log, translation.DispatcherConfig{
		Workers:   cfg.Translation.Workers,
		QueueSize: cfg.Translation.QueueSize,
	})
	dispatcherCtx, cancelDispatcher := context.WithCancel(context.Background())
	defer cancelDispatcher()
	dispatcher.Start(dispatcherCtx)

	names := validation.NewNameValidator(entityRepo)

	languageService := services.NewLanguageService(langRepo, dispatcher, cfg.Translation.DefaultLanguage, log)
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := languageService.EnsureSeeded(seedCtx); err != nil {
		log.Fatalf("Failed to seed languages: %v", err)
	}
	cancelSeed()

	categoryService := services.NewCategoryService(categoryRepo, names, dispatcher, log)
	foodItemService := services.NewFoodItemService(foodItemRepo, categoryRepo, names, dispatcher, cfg.Items, log)
	translationService := services.NewTranslationService(translationRepo, langRepo, entityRepo, translator,
		dispatcher, dispatcher, cfg.Translation.DefaultLanguage, log)
	dashboardService := services.NewDashboardService(categoryRepo, foodItemRepo, langRepo, translationRepo, log)

	var presigner handlers.Presigner
	if cfg.MinIOEnabled() {
		minioService, err := services.NewMinIOService(&cfg.MinIO, log)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO service: %v", err)
		}
		presigner = minioService
		if fs, ok := foodItemService.(interface{ SetImageStore(services.ImageStore) }); ok {
			fs.SetImageStore(minioService)
		}
	}

	backfiller := translation.NewBackfiller(langRepo, dispatcher, cfg.Translation.DefaultLanguage, log)
	if cfg.Translation.BackfillCron != "" {
		if err := backfiller.Start(cfg.Translation.BackfillCron); err != nil {
			log.Warnf("Translation backfill disabled: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               "Pantry Backend API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: false,
		ErrorHandler:          customErrorHandler(log),
	})

	setupMiddleware(app)

	app.Get("/health", healthCheckHandler(db))
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	routes.Setup(app, routes.Handlers{
		Category:    handlers.NewCategoryHandler(categoryService, log),
		FoodItem:    handlers.NewFoodItemHandler(foodItemService, log),
		Language:    handlers.NewLanguageHandler(languageService, log),
		Translation: handlers.NewTranslationHandler(translationService, log),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, log),
		Upload:      handlers.NewUploadHandler(presigner, log),
	})

	go gracefulShutdown(app, log, func(ctx context.Context) {
		backfiller.Stop()
		dispatcher.Stop(ctx)
	})

	log.Infof("Pantry Backend API starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

func newTranslator(cfg *config.Config, log *logrus.Logger) translation.Translator {
	if !cfg.TranslationEnabled() {
		log.Warn("No translation provider configured, automatic translations are disabled")
		return translation.DisabledTranslator{}
	}

	t := translation.NewOpenAITranslator(translation.OpenAIOptions{
		APIKey:  cfg.Translation.APIKey,
		BaseURL: cfg.Translation.BaseURL,
		Model:   cfg.Translation.Model,
		Timeout: cfg.Translation.RequestTimeout,
	})
	log.WithFields(logrus.Fields{
		"provider": t.Name(),
		"model":    t.ModelName(),
		"delay":    cfg.Translation.CallDelay,
	}).Info("Translation provider configured")
	return t
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if os.Getenv("GO_ENV") == "dev" || os.Getenv("GO_ENV") == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS, PATCH",
		AllowCredentials: false,
		MaxAge:           86400,
	}))
}

func healthCheckHandler(db *database.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if err := db.HealthCheck(c.Context()); err != nil {
			dbStatus = "unhealthy"
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "pantry-backend",
			"version":   "1.0.0",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"status": code,
		}).Error("Request error")

		return utils.ErrorResponse(c, code, err.Error())
	}
}

func gracefulShutdown(app *fiber.App, log *logrus.Logger, stopWorkers func(ctx context.Context)) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	// Unfinished translation jobs are left to the backfill sweep.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	stopWorkers(ctx)

	log.Info("Server shutdown complete")
}

func loadEnvFile() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	execDir, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not get working directory: %v", err)
		return
	}

	envFile := filepath.Join(execDir, "envs", ".env."+env)
	if err := godotenv.Load(envFile); err != nil {
		log.Warnf("Could not load environment file %s: %v", envFile, err)

		defaultEnvFile := filepath.Join(execDir, "envs", ".env")
		if err := godotenv.Load(defaultEnvFile); err != nil {
			log.Warnf("Could not load default environment file: %v", err)
		} else {
			log.Infof("Environment loaded from default file %s", defaultEnvFile)
		}
	} else {
		log.Infof("Environment loaded from file %s", envFile)
	}
}
