package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nuestraboda/rsvp-backend/internal/config"
	"github.com/nuestraboda/rsvp-backend/internal/handler"
	"github.com/nuestraboda/rsvp-backend/internal/repository"
	"github.com/nuestraboda/rsvp-backend/internal/service"
	"github.com/nuestraboda/rsvp-backend/pkg/database"
	"github.com/nuestraboda/rsvp-backend/pkg/email"
	"github.com/nuestraboda/rsvp-backend/pkg/storage"
	"github.com/nuestraboda/rsvp-backend/pkg/utils"
)

func main() {
	// Load .env if present; deployed environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	// Database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}

	// Repositories
	rsvpRepo := repository.NewRSVPRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	// Object storage
	objectStorage, err := storage.NewR2Storage(cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize object storage: ", err)
	}

	// Confirmation emails are optional
	var emailSender service.EmailSender
	if cfg.Email.APIKey != "" {
		emailSender = email.NewEmailService(cfg.Email.APIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	}

	// Services
	submissionService := service.NewSubmissionService(rsvpRepo, emailSender, logger)
	photoService := service.NewPhotoService(photoRepo, rsvpRepo, objectStorage, logger)

	validator := utils.NewValidator()

	// Handlers
	submissionHandler := handler.NewSubmissionHandler(submissionService, photoService, validator, cfg.MaxFileSize)
	rsvpHandler := handler.NewRSVPHandler(submissionService)

	// Router
	app := fiber.New(fiber.Config{
		// multipart batches carry several files plus base64 overhead
		BodyLimit: int(cfg.MaxFileSize) * 8,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST",
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	api.Post("/submissions", submissionHandler.Submit)
	api.Get("/rsvps", rsvpHandler.List)

	logger.Info("starting server", zap.String("port", cfg.Port))
	log.Fatal(app.Listen(":" + cfg.Port))
}
