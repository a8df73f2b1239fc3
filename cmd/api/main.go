package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/dopc/internal/adapters/http"
	"github.com/samirrijal/dopc/internal/adapters/venueapi"
	"github.com/samirrijal/dopc/internal/core/pricing"
	"github.com/samirrijal/dopc/internal/core/usecases"
	"github.com/samirrijal/dopc/internal/pkg/config"
	"github.com/samirrijal/dopc/internal/pkg/logging"
	"github.com/samirrijal/dopc/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("dopc-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Config is validated at load time, so these cannot fail.
	method, err := pricing.ParseDistanceMethod(cfg.Pricing.DistanceMethod)
	if err != nil {
		log.Fatalf("distance method: %v", err)
	}
	strategy, err := pricing.ParseStrategy(cfg.Pricing.FeeStrategy)
	if err != nil {
		log.Fatalf("fee strategy: %v", err)
	}

	// Upstream venue-information client
	venues := venueapi.New(
		cfg.VenueAPI.Countries,
		cfg.VenueAPI.Cities,
		time.Duration(cfg.VenueAPI.Timeout)*time.Second,
		cfg.VenueAPI.Retries,
	)

	// Use cases
	quotes := usecases.NewQuoteService(venues, method, strategy)

	deps := &http.Dependencies{
		Quotes: quotes,
		Venues: venues,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		AppName:      "DOPC API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr,
			"distance_method", method, "fee_strategy", strategy)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
