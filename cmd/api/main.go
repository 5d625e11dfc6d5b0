package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/anjiri1684/school_fees/configs"
	"github.com/anjiri1684/school_fees/database"
	"github.com/anjiri1684/school_fees/handlers"
	"github.com/anjiri1684/school_fees/ledger"
	"github.com/anjiri1684/school_fees/logger"
	"github.com/anjiri1684/school_fees/payments"
	"github.com/anjiri1684/school_fees/receipts"
	"github.com/anjiri1684/school_fees/routes"
	"github.com/anjiri1684/school_fees/services"
	"github.com/anjiri1684/school_fees/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()
	logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}
	if err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminName); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed admin")
	}

	var branding receipts.Branding = receipts.NoBranding{}
	if cfg.CloudinaryURL != "" {
		cld, err := receipts.NewCloudinaryBranding(cfg.CloudinaryURL, cfg.LogoPublicID)
		if err != nil {
			logger.Warn().Err(err).Msg("cloudinary branding disabled")
		} else {
			branding = cld
		}
	}

	svc := services.New(
		db,
		ledger.New(db, cfg.LedgerMaxRetries),
		payments.NewRazorpayClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		receipts.NewPDFRenderer(receipts.School{
			Name:        cfg.SchoolName,
			Affiliation: cfg.SchoolAffiliation,
			Address:     cfg.SchoolAddress,
		}, branding),
		utils.NewAdminTokenVerifier(cfg.JWTSecret),
		services.Settings{
			KeySecret:     cfg.RazorpayKeySecret,
			Currency:      cfg.Currency,
			ReceiptPrefix: cfg.ReceiptPrefix,
			JWTSecret:     cfg.JWTSecret,
		},
	)

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "School Fees",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  45 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler:  handlers.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Disposition",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.Setup(app, handlers.New(svc, db), cfg.JWTSecret)

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := database.Close(db); err != nil {
		logger.Error().Err(err).Msg("database close failed")
	}
	logger.Info().Msg("server stopped")
}
