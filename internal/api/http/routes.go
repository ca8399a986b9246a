package httpapi

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/predictive-shelf/api/internal/forecast"
)

var validate = validator.New()

// Products is the ordered catalog of product identifiers the demo serves.
var Products = []string{"coke", "chips", "ice-cream"}

// mockBaselines are the per-product base values of the mock forecast
// endpoint; unknown products fall back to 50.
var mockBaselines = map[string]int{
	"coke":      150,
	"chips":     220,
	"ice-cream": 90,
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, engine *forecast.Engine) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "Predictive Shelf API is running!",
		})
	})

	api := app.Group("/api")

	api.Get("/products", func(c *fiber.Ctx) error {
		return c.JSON(Products)
	})

	api.Get("/predict/:product_id", handleMockPredict)

	api.Post("/predict", func(c *fiber.Ctx) error {
		return handlePredict(c, engine)
	})
}

// handleMockPredict serves the hardcoded 7-day forecast: a per-product base
// value plus a random wobble in [-20, 20], starting today.
func handleMockPredict(c *fiber.Ctx) error {
	productID := c.Params("product_id")

	base, ok := mockBaselines[productID]
	if !ok {
		base = 50
	}

	type mockDay struct {
		Date       string `json:"date"`
		Prediction int    `json:"prediction"`
	}

	today := time.Now()
	days := make([]mockDay, 0, forecast.HorizonDays)
	for i := 0; i < forecast.HorizonDays; i++ {
		days = append(days, mockDay{
			Date:       today.AddDate(0, 0, i).Format(forecast.DateLayout),
			Prediction: base + rand.Intn(41) - 20,
		})
	}

	return c.JSON(days)
}

func handlePredict(c *fiber.Ctx, engine *forecast.Engine) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	var req forecast.Request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if _, err := req.ParseStartDate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "start_date must be a valid YYYY-MM-DD date")
	}

	result, err := engine.Forecast(ctx, req)
	if err != nil {
		return mapForecastError(err)
	}

	return c.JSON(result)
}

// mapForecastError translates the engine's error taxonomy to HTTP statuses:
// no model -> 503, upstream provider down -> 500, per-date feature failure
// -> 400.
func mapForecastError(err error) error {
	var fe *forecast.FeatureError
	switch {
	case errors.Is(err, forecast.ErrModelUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, "prediction is disabled: no trained model is loaded")
	case errors.As(err, &fe):
		return fiber.NewError(fiber.StatusBadRequest, fe.Error())
	case errors.Is(err, forecast.ErrUpstreamUnavailable):
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate forecast")
	}
}
