package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/safatanc/gsalt-deals/injector"
	"github.com/safatanc/gsalt-deals/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

func main() {
	config := infrastructures.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := infrastructures.InitTracing(ctx, config)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logrus.Errorf("Failed to flush traces: %v", err)
		}
	}()

	app, err := injector.InitializeApplication()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Fiber configuration
	fiberConfig := fiber.Config{
		ReadTimeout:  time.Second * 60,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	}

	router := fiber.New(fiberConfig)

	// Add CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PATCH, OPTIONS",
		ExposeHeaders: "Content-Length, Retry-After, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
		MaxAge:        300,
	}))

	app.RegisterRoutes(router)

	go app.Housekeeper.Run(ctx)

	go func() {
		<-ctx.Done()
		logrus.Info("Shutting down")
		if err := router.ShutdownWithTimeout(10 * time.Second); err != nil {
			logrus.Errorf("Failed to shut down server: %v", err)
		}
	}()

	if err := router.Listen(config.HTTP_ADDRESS); err != nil {
		logrus.Errorf("Server stopped: %v", err)
	}
}
