package main

import (
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "catalog-backend/docs"
	"catalog-backend/internal/admin"
	"catalog-backend/internal/config"
	"catalog-backend/internal/database"
	"catalog-backend/internal/handlers"
	"catalog-backend/internal/models"
	"catalog-backend/internal/repository"
	"catalog-backend/internal/routes"
	"catalog-backend/internal/services"
	"catalog-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title Library Catalog API
// @version 1.0
// @description Catalog of genres, languages, authors, books and loanable book instances, with Open Library import, cover uploads and dashboard analytics

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /api/v1
// @schemes http https

func main() {
	// Load environment variables
	loadEnvFile()

	// Load configuration
	cfg := config.Load()

	// Setup logger
	log := setupLogger()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Warnf("Configuration validation warning: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	genreRepo := repository.NewGenreRepository(db)
	langRepo := repository.NewLanguageRepository(db)
	authorRepo := repository.NewAuthorRepository(db)
	bookRepo := repository.NewBookRepository(db)
	instanceRepo := repository.NewBookInstanceRepository(db)
	demoRepo := repository.NewMyModelNameRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	catalogService := services.NewCatalogService(genreRepo, langRepo, authorRepo, demoRepo, log)
	bookService := services.NewBookService(bookRepo, instanceRepo, log)
	dashboardService := services.NewDashboardService(statsRepo)
	importService := services.NewImportService(bookRepo, genreRepo, langRepo, authorRepo, cfg.OpenLibrary, log)

	minioService, err := services.NewMinIOService(&cfg.MinIO, log)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	if bs, ok := bookService.(interface{ SetCoverStorage(services.CoverStorage) }); ok {
		bs.SetCoverStorage(minioService)
	}

	site, err := admin.Catalog(map[models.Kind]admin.CRUDHandler{
		models.KindGenre:        handlers.NewGenreHandler(catalogService, log),
		models.KindLanguage:     handlers.NewLanguageHandler(catalogService, log),
		models.KindAuthor:       handlers.NewAuthorHandler(catalogService, log),
		models.KindBook:         handlers.NewBookHandler(bookService, log),
		models.KindBookInstance: handlers.NewBookInstanceHandler(bookService, log),
		models.KindMyModelName:  handlers.NewMyModelNameHandler(catalogService, log),
	})
	if err != nil {
		log.Fatalf("Failed to build admin site: %v", err)
	}

	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)
	importHandler := handlers.NewImportHandler(importService, log)
	uploadHandler := handlers.NewUploadHandler(minioService, log)

	app := fiber.New(fiber.Config{
		AppName:               "Library Catalog API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: false,
		ErrorHandler:          customErrorHandler(log),
	})

	setupMiddleware(app)

	app.Get("/health", healthCheckHandler(db, site))

	// Swagger documentation
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Setup API routes
	routes.Setup(app, site, dashboardHandler, importHandler, uploadHandler)

	// Graceful shutdown
	go gracefulShutdown(app, log)

	log.WithField("models", len(site.Registrations())).Infof("Library Catalog API starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

// setupLogger writes JSON to stdout. LOG_LEVEL wins over the GO_ENV default.
func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	switch os.Getenv("GO_ENV") {
	case "dev", "development":
		log.SetLevel(logrus.DebugLevel)
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			log.Warnf("Ignoring invalid LOG_LEVEL %q", raw)
		} else {
			log.SetLevel(level)
		}
	}

	return log
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(requestid.New())

	// Access log, one line per request
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${locals:requestid} | ${status} | ${latency} | ${method} | ${path} | ${error}\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders: "Location, X-Request-ID",
		MaxAge:        86400,
	}))
}

func healthCheckHandler(db *database.Database, site *admin.Site) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		code := fiber.StatusOK
		if err := db.HealthCheck(); err != nil {
			dbStatus = "unhealthy"
			code = fiber.StatusServiceUnavailable
		}

		return c.Status(code).JSON(fiber.Map{
			"status":    "ok",
			"service":   "catalog-backend",
			"database":  dbStatus,
			"models":    site.Kinds(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// customErrorHandler answers errors that escaped a handler, such as unknown
// routes, with the standard envelope.
func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			message = fiberErr.Message
		}

		entry := log.WithError(err).WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     code,
			"request_id": c.Locals("requestid"),
		})
		if code >= fiber.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Debug("Request rejected")
		}

		return utils.ErrorResponse(c, code, message)
	}
}

func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.WithField("signal", sig.String()).Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}

// loadEnvFile reads envs/.env.<GO_ENV>, falling back to envs/.env. Variables
// already set in the process environment are left alone.
func loadEnvFile() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	workDir, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not get working directory: %v", err)
		return
	}

	for _, name := range []string{".env." + env, ".env"} {
		envFile := filepath.Join(workDir, "envs", name)
		if err := godotenv.Load(envFile); err != nil {
			log.Debugf("Could not load environment file %s: %v", envFile, err)
			continue
		}
		log.Infof("Environment loaded from file %s", envFile)
		return
	}
	log.Warn("No environment file found, using process environment and defaults")
}
