package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"kalvihub/internal/account"
	"kalvihub/internal/attempts"
	"kalvihub/internal/config"
	"kalvihub/internal/curriculum"
	"kalvihub/internal/database"
	"kalvihub/internal/handlers"
	"kalvihub/internal/mail"
	"kalvihub/internal/middleware"
	"kalvihub/internal/platform/auth"
	"kalvihub/internal/platform/progress"
	"kalvihub/internal/sessions"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var store account.Store
	var ledger attempts.Ledger
	var sessionLog sessions.Log

	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatal(err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatal(err)
		}
		store = database.NewAccountStore(db)
		ledger = database.NewAttemptLedger(db)
		sessionLog = database.NewSessionLog(db)
	} else {
		log.Println("no database configured, running with in-memory storage")
		store = account.NewMemoryStore()
		ledger = attempts.NewMemoryLedger()
		sessionLog = sessions.NewMemoryLog()
	}

	var dispatcher mail.Dispatcher = mail.NoopDispatcher{}
	if cfg.Mail() {
		dispatcher = mail.NewDispatcher(mail.NewMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunAPIBase), cfg.MailFrom)
	}

	locks := account.NewLocker()
	authService := auth.NewService(store, ledger, dispatcher, locks)
	progressService := progress.NewService(store, sessionLog, locks)

	if cfg.SeedDemoUser {
		seedDemoUser(authService)
	}

	app := fiber.New()

	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(healthcheck.New())

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("auth", authService)
		c.Locals("progress", progressService)
		return c.Next()
	})

	api := app.Group("/api")
	api.Get("/subjects", handlers.GetSubjects)
	api.Get("/ip", handlers.GetIP)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/signin", handlers.SigninWithPassword)
	authGroup.Post("/verify", handlers.VerifyEmail)
	authGroup.Post("/forgot-password", handlers.ForgotPassword)
	authGroup.Post("/reset-password", handlers.ResetPassword)

	progressGroup := api.Group("/progress")
	progressGroup.Post("/", handlers.RecordActivity)
	progressGroup.Get("/:user_id", handlers.GetProgress)
	progressGroup.Get("/:user_id/sessions", handlers.GetStudySessions)

	admin := api.Group("/admin", middleware.AdminMiddleware)
	admin.Get("/login-attempts", handlers.GetLoginAttempts)
	admin.Get("/stats", handlers.GetUserStats)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.ServerPort)))
}

func seedDemoUser(authService *auth.Service) {
	ctx := context.Background()

	_, token, err := authService.Register(ctx, auth.RegisterInput{
		Name:     "Demo Student",
		Email:    "student@demo.com",
		Password: "Demo1234",
		Grade:    curriculum.GradeSSLC,
		School:   "Demo High School",
	})
	if err != nil {
		if !errors.Is(err, account.ErrDuplicateAccount) {
			log.Printf("failed to seed demo user: %v", err)
		}
		return
	}

	if err := authService.VerifyEmail(ctx, token); err != nil {
		log.Printf("failed to verify demo user: %v", err)
	}
}
