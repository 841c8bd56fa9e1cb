package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Prachiopenxcell/platform998_be/internal/config"
	"github.com/Prachiopenxcell/platform998_be/internal/db"
	"github.com/Prachiopenxcell/platform998_be/internal/eoi"
	"github.com/Prachiopenxcell/platform998_be/internal/handlers"
	"github.com/Prachiopenxcell/platform998_be/internal/logger"
	"github.com/Prachiopenxcell/platform998_be/internal/middleware"
	"github.com/Prachiopenxcell/platform998_be/internal/models"
	"github.com/Prachiopenxcell/platform998_be/internal/realtime"
	"github.com/Prachiopenxcell/platform998_be/internal/services/registration"
	"github.com/Prachiopenxcell/platform998_be/internal/services/verification"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.AppEnv)
	defer logger.L().Sync()

	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.L().Fatal("redis unreachable", zap.Error(err))
	}

	hub := realtime.NewHub()
	go hub.Run()

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.BankingDetail{},
		&models.ServiceRequest{},
		&models.WorkOrder{},
		&models.Notification{},
		&models.Subscription{},
		&models.EOI{},
		&models.COCMember{},
	); err != nil {
		logger.L().Fatal("migrate", zap.Error(err))
	}

	notifier := realtime.NewNotifier(gdb, hub, rdb)

	var verifier verification.Service
	if cfg.VerifyAPIURL != "" {
		verifier = verification.NewAPIService(cfg.VerifyAPIURL, cfg.VerifyAPIKey)
	} else {
		verifier = verification.StubService{}
	}

	registrar := registration.NewService(gdb, cfg.RegistrationKey)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendBaseURL,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))
	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Static("/uploads", cfg.UploadDir)

	authH := &handlers.AuthHandler{
		DB:        gdb,
		JWTSecret: cfg.JWTSecret,
		Expires:   cfg.JWTExpiresMin,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)

	// protected (JWT cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", authH.Me)

	onboardH := handlers.NewProfileOnboardingHandler(
		gdb,
		cfg.UploadDir,
		cfg.PublicBaseURL,
		cfg.JWTSecret,
		cfg.JWTExpiresMin,
		verifier,
		registrar,
		notifier,
	)
	onboardH.Routes(protected)

	dashH := handlers.NewDashboardHandler(gdb, rdb)
	dashH.Routes(protected)

	srH := handlers.NewServiceRequestHandler(gdb)
	protected.Post("/service-requests", middleware.RequireSeeker(), srH.Create)
	protected.Get("/service-requests", middleware.RequireSeeker(), srH.List)
	protected.Get("/service-requests/open", middleware.RequireProvider(), srH.ListOpen)
	protected.Patch("/service-requests/:id/status", srH.UpdateStatus)

	woH := handlers.NewWorkOrderHandler(gdb)
	protected.Get("/work-orders", woH.List)
	protected.Patch("/work-orders/:id/status", woH.UpdateStatus)

	offsets := eoi.DayOffsets{
		Submission:      cfg.EOISubmissionDays,
		ProvisionalList: cfg.EOIProvisionalListDays,
		Objection:       cfg.EOIObjectionDays,
		FinalList:       cfg.EOIFinalListDays,
	}
	eoiH := handlers.NewEOIHandler(gdb, offsets, notifier)
	eoiH.Routes(protected, middleware.RequireSeeker())

	// websocket endpoint, authenticated via query token since browsers
	// cannot set headers on the upgrade request
	wsH := handlers.NewNotificationsWSHandler(hub, cfg.JWTSecret)
	app.Get("/ws/notifications", websocket.New(wsH.Handle))

	logger.L().Info("listening", zap.String("port", cfg.AppPort))
	log.Fatal(app.Listen(":" + cfg.AppPort))
}
