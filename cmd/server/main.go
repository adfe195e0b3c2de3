package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Bozotek/pickaguide-api/internal/api"
	"github.com/Bozotek/pickaguide-api/internal/config"
	"github.com/Bozotek/pickaguide-api/internal/events"
	"github.com/Bozotek/pickaguide-api/internal/payment"
	"github.com/Bozotek/pickaguide-api/internal/repository"
	"github.com/Bozotek/pickaguide-api/internal/service"
	"github.com/Bozotek/pickaguide-api/internal/storage"
	"github.com/Bozotek/pickaguide-api/internal/tracing"
	_ "github.com/Bozotek/pickaguide-api/migrations"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	api.SetupGlobalHandler("pickaguide-api")

	shutdownTracer, err := tracing.InitTracerProvider("pickaguide-api")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg)
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db := connectDB(cfg)
	defer db.Close()

	eventPublisher, err := events.NewNatsPublisher(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	log.Println("Successfully connected to NATS.")

	store, err := storage.NewS3Store(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize S3 store: %v", err)
	}

	paymentClient := payment.NewHTTPClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey)

	userRepo := repository.NewPostgresUserRepository(db)
	advertRepo := repository.NewPostgresAdvertRepository(db)
	visitRepo := repository.NewPostgresVisitRepository(db)
	commentRepo := repository.NewPostgresCommentRepository(db)
	blacklistRepo := repository.NewPostgresBlacklistRepository(db)
	paymentRepo := repository.NewPostgresPaymentRepository(db)

	cascade := service.NewCascade(userRepo, advertRepo, visitRepo, blacklistRepo)
	accountService := service.NewAccountService(userRepo, blacklistRepo, cascade, eventPublisher, cfg.JWTSecret, cfg.PublicHost)
	profileService := service.NewProfileService(userRepo, store)
	guideService := service.NewGuideService(userRepo, advertRepo, visitRepo)
	ratingService := service.NewRatingService(userRepo, advertRepo, visitRepo)
	visitService := service.NewVisitService(userRepo, advertRepo, visitRepo, ratingService)
	advertService := service.NewAdvertService(userRepo, advertRepo, commentRepo)
	commentService := service.NewCommentService(advertRepo, commentRepo)
	paymentService := service.NewPaymentService(userRepo, paymentRepo, paymentClient)

	accountHandler := api.NewAccountHandler(accountService)
	profileHandler := api.NewProfileHandler(profileService, store)
	guideHandler := api.NewGuideHandler(guideService)
	advertHandler := api.NewAdvertHandler(advertService, commentService)
	visitHandler := api.NewVisitHandler(visitService)
	paymentHandler := api.NewPaymentHandler(paymentService)

	auth := api.AuthMiddleware(userRepo, cfg.JWTSecret)

	app := fiber.New()
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "pickaguide-api"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")

	accountRoutes := v1.Group("/accounts")
	accountRoutes.Post("/signup", accountHandler.Signup)
	accountRoutes.Post("/login", accountHandler.Login)
	accountRoutes.Get("/confirm/:id", accountHandler.ConfirmEmail)
	accountRoutes.Post("/forgot-password", accountHandler.ForgotPassword)
	accountRoutes.Get("/reset-password/:token", accountHandler.ValidateResetToken)
	accountRoutes.Post("/reset-password", accountHandler.ResetPassword)
	accountRoutes.Post("/logout", auth, accountHandler.Logout)
	accountRoutes.Get("/me", auth, accountHandler.GetAccount)
	accountRoutes.Post("/resend-confirmation", auth, accountHandler.ResendConfirmation)
	accountRoutes.Delete("/me", auth, accountHandler.RemoveAccount)

	profileRoutes := v1.Group("/profiles")
	profileRoutes.Get("/", profileHandler.ListProfiles)
	profileRoutes.Get("/search", profileHandler.SearchProfiles)
	profileRoutes.Get("/near", auth, profileHandler.FindNearbyGuides)
	profileRoutes.Get("/me", auth, profileHandler.GetProfile)
	profileRoutes.Put("/me", auth, profileHandler.UpdateProfile)
	profileRoutes.Post("/me/geo", auth, profileHandler.SetLocation)
	profileRoutes.Post("/me/avatar", auth, profileHandler.UploadAvatar)
	profileRoutes.Delete("/me/avatar", auth, profileHandler.DeleteAvatar)
	profileRoutes.Get("/me/avatar/upload-url", auth, profileHandler.PresignAvatarUpload)
	profileRoutes.Get("/:id/avatar", profileHandler.DownloadAvatar)

	guideRoutes := v1.Group("/guides", auth)
	guideRoutes.Post("/become", guideHandler.BecomeGuide)
	guideRoutes.Post("/retire", guideHandler.Retire)
	guideRoutes.Get("/status", guideHandler.GuideStatus)
	guideRoutes.Post("/blocking", guideHandler.SetBlocking)

	advertRoutes := v1.Group("/adverts")
	advertRoutes.Get("/", advertHandler.ListAdverts)
	advertRoutes.Get("/mine", auth, advertHandler.ListOwnAdverts)
	advertRoutes.Post("/", auth, advertHandler.CreateAdvert)
	advertRoutes.Get("/:id", advertHandler.GetAdvert)
	advertRoutes.Put("/:id", auth, advertHandler.UpdateAdvert)
	advertRoutes.Post("/:id/toggle", auth, advertHandler.ToggleAdvert)
	advertRoutes.Delete("/:id", auth, advertHandler.DeleteAdvert)
	advertRoutes.Get("/:id/comments", advertHandler.ListComments)
	advertRoutes.Post("/:id/comments", auth, advertHandler.CreateComment)
	advertRoutes.Post("/:id/comments/:commentId/like", auth, advertHandler.ToggleCommentLike)
	advertRoutes.Delete("/:id/comments/:commentId", auth, advertHandler.DeleteComment)

	visitRoutes := v1.Group("/visits", auth)
	visitRoutes.Post("/", visitHandler.CreateVisit)
	visitRoutes.Get("/mine", visitHandler.ListAsVisitor)
	visitRoutes.Get("/guide", visitHandler.ListAsGuide)
	visitRoutes.Get("/:id", visitHandler.GetVisit)
	visitRoutes.Post("/:id/accept", visitHandler.AcceptVisit)
	visitRoutes.Post("/:id/deny", visitHandler.DenyVisit)
	visitRoutes.Post("/:id/finish", visitHandler.FinishVisit)
	visitRoutes.Post("/:id/cancel", visitHandler.CancelVisit)
	visitRoutes.Post("/:id/rate/guide", visitHandler.RateAsVisitor)
	visitRoutes.Post("/:id/rate/visitor", visitHandler.RateAsGuide)

	paymentRoutes := v1.Group("/payments", auth)
	paymentRoutes.Post("/account", paymentHandler.EnsureProviderUser)
	paymentRoutes.Get("/account", paymentHandler.GetProviderUser)
	paymentRoutes.Post("/cards", paymentHandler.AddCard)
	paymentRoutes.Post("/", paymentHandler.CreatePayment)
	paymentRoutes.Get("/", paymentHandler.ListPayments)
	paymentRoutes.Get("/:id", paymentHandler.GetPayment)

	log.Printf("Listening pickaguide-api on port %s", cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}

func connectDB(cfg *config.Config) *sqlx.DB {
	db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Successfully connected to the database.")
	return db
}

func handleMigrations(cfg *config.Config) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
