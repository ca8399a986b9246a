package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	httpapi "github.com/predictive-shelf/api/internal/api/http"
	"github.com/predictive-shelf/api/internal/config"
	"github.com/predictive-shelf/api/internal/forecast"
	"github.com/predictive-shelf/api/internal/forecast/providers"
	"github.com/predictive-shelf/api/internal/model"
	"github.com/predictive-shelf/api/internal/warmup"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// The trained model is optional: without it the service still serves the
	// catalog and mock endpoints and answers 503 on real predictions.
	var predictor forecast.Predictor
	if ens, err := model.Load(cfg.ModelPath); err != nil {
		log.Warn().Err(err).Str("path", cfg.ModelPath).Msg("sales model not loaded; prediction endpoint disabled")
	} else {
		predictor = ens
		log.Info().Str("path", cfg.ModelPath).Int("trees", len(ens.Trees)).Msg("sales model loaded")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var weather []forecast.TemperatureProvider
	weather = append(weather, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	if cfg.GeocoderAPIKey != "" {
		weather = append(weather, providers.NewOpenMeteoProvider(httpClient, cfg.GeocoderAPIKey))
	}
	calendar := providers.NewCalendarificProvider(httpClient, cfg.CalendarificAPIKey)

	engine := forecast.NewEngine(predictor, weather, calendar, cfg.HolidayCountry, cfg.CacheCapacity, log)

	warmer := warmup.New(cfg.WarmupCities, cfg.WarmupInterval, engine, log)
	if err := warmer.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start warmup scheduler")
	}
	defer warmer.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "predictive-shelf",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          40 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":       "ok",
			"service":      "predictive-shelf",
			"model_loaded": engine.ModelLoaded(),
		})
	})

	httpapi.RegisterRoutes(app, engine)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("fiber server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("predictive-shelf listening")

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
}
