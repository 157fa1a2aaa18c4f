package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"dailymeet_backend/internal/controller"
	"dailymeet_backend/internal/middleware"
	"dailymeet_backend/internal/model"
	"dailymeet_backend/pkg/auth"
	"dailymeet_backend/pkg/calendar"
	"dailymeet_backend/pkg/config"
	"dailymeet_backend/pkg/cron"
	"dailymeet_backend/pkg/database"
	"dailymeet_backend/pkg/email"
	"dailymeet_backend/pkg/events"
	"dailymeet_backend/pkg/meeting"
	"dailymeet_backend/pkg/payment"
	"dailymeet_backend/pkg/seed"
	"dailymeet_backend/pkg/utils/jwt"
	"dailymeet_backend/pkg/utils/storage"
)

func setupRoutes(app *fiber.App, checker auth.CredentialChecker) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Public payment routes
	api := app.Group("/api")
	payments := api.Group("/payments")
	payments.Post("/order", controller.CreatePaymentOrder)
	payments.Post("/verify", controller.VerifyPayment)
	payments.Post("/webhook", controller.HandlePaymentWebhook)

	// Admin routes
	admin := app.Group("/admin")
	admin.Post("/login", controller.AdminLogin)

	protected := admin.Use(middleware.AdminAuth(checker))
	protected.Get("/users", controller.ListUsers)
	protected.Get("/users/export", controller.ExportUsersCSV)
	protected.Get("/users/:id", controller.GetUser)

	protected.Get("/subscriptions", controller.ListSubscriptions)
	protected.Post("/subscriptions", controller.CreateAdminSubscription)
	protected.Delete("/subscriptions/:id", controller.DeleteSubscription)

	protected.Get("/analytics", controller.GetAnalytics)

	protected.Get("/meetings", controller.GetMeetings)
	protected.Post("/meetings", controller.CreateMeeting)
	protected.Post("/meetings/sync", controller.SyncMeetings)
	protected.Post("/meetings/:id/users/:user_id", controller.AttachUserToMeeting)
}

func main() {
	cfg := config.Load()

	if cfg.Admin.Passcode == "" {
		log.Fatal("ADMIN_PASSCODE is not set in .env")
	}
	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set in .env")
	}

	jwt.Init(cfg.Admin.JWTSecret)
	checker := auth.NewStaticPasscode(cfg.Admin.Passcode)
	controller.InitAuthController(checker)

	if cfg.Email.ResendAPIKey != "" {
		if err := email.InitEmailService(cfg.Email.ResendAPIKey); err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
	} else {
		log.Println("RESEND_API_KEY is not set, emails are disabled")
	}

	var provider meeting.EventProvider
	if cfg.Calendar.Enabled {
		client, err := calendar.NewClient(context.Background(), cfg.Calendar.CredentialsFile, cfg.Calendar.CalendarID)
		if err != nil {
			log.Fatal("Could not initialize calendar client:", err)
		}
		provider = client
	}

	meetingOpts := meeting.Options{
		Platform:    cfg.Meeting.Platform,
		StartHour:   cfg.Meeting.StartHour,
		StartMinute: cfg.Meeting.StartMinute,
		Duration:    time.Duration(cfg.Meeting.DurationMinutes) * time.Minute,
		Title:       cfg.Meeting.Title,
		Description: cfg.Meeting.Description,
		Keyword:     cfg.Calendar.Keyword,
		UseCalendar: cfg.Calendar.Enabled,
	}
	controller.InitMeetingController(provider, meetingOpts)
	controller.InitPaymentController(
		payment.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret),
		cfg.Razorpay.Currency,
		cfg.Razorpay.WebhookSecret,
	)

	database.InitDB(cfg.Database.URL)
	err := database.MigrateDatabase(
		&model.User{},
		&model.Subscription{},
		&model.Meeting{},
	)
	if err != nil {
		log.Printf("Migration warning: %v", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		seed.SeedDemoData(database.GetDB())
	}

	if err := storage.InitStorage(cfg.Storage); err != nil {
		log.Printf("Storage init warning: %v", err)
	} else {
		cron.InitExportArchiveCron()
	}
	cron.InitMeetingSyncCron(provider, meetingOpts)

	// Mutasyon olayları şimdilik sadece loglanır; dashboard'un canlı
	// yenileme kanalı buraya abone olacak.
	for _, t := range []events.Type{
		events.SubscriptionCreated,
		events.SubscriptionActivated,
		events.SubscriptionDeleted,
		events.MeetingCreated,
		events.MeetingSynced,
		events.UserAttached,
	} {
		events.Subscribe(t, func(e events.Event) {
			log.Printf("event %s: %v", e.Type, e.Payload)
		})
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	setupRoutes(app, checker)

	log.Printf("Server is running on port %s", cfg.Server.Port)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
