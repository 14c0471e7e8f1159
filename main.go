package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"

	"tapwork_backend/internals/configs"
	database "tapwork_backend/internals/databases"
	attendanceService "tapwork_backend/internals/features/attendance/service"
	auditService "tapwork_backend/internals/features/audit/service"
	"tapwork_backend/internals/features/biometric/pipeline"
	biometricService "tapwork_backend/internals/features/biometric/service"
	scheduler "tapwork_backend/internals/features/credential/scheduler"
	credentialService "tapwork_backend/internals/features/credential/service"
	notification "tapwork_backend/internals/features/notification/service"
	middlewares "tapwork_backend/internals/middlewares"
	routes "tapwork_backend/internals/route"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()

	app := fiber.New(fiber.Config{
		AppName:                 cfg.AppName,
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing, with an HTTP timeout guard aligned with the
	// DB statement_timeout.
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	// ⏱ background sweepers after the DB is ready
	scheduler.StartExpirySweeper(database.DB)

	// Face detector is an optional capability: without the cascade the
	// server still runs, biometric endpoints answer 503.
	var detector pipeline.FaceDetector
	if d, err := pipeline.NewPigoDetector(cfg.FaceCascadeFile); err != nil {
		log.Printf("[WARN] face detector disabled: %v", err)
	} else {
		detector = d
		log.Println("✅ Face detector loaded")
	}

	svc := routes.Services{
		Credentials: credentialService.New(database.DB, cfg),
		Biometrics:  biometricService.NewBiometricService(database.DB, cfg, pipeline.New(cfg, detector)),
		Attendance:  attendanceService.NewAttendanceService(database.DB),
		Audit:       auditService.New(database.DB),
		Notifier:    notification.LogNotifier{},
	}

	routes.SetupRoutes(app, database.DB, cfg, svc)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
