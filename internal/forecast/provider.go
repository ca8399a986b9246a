package forecast

import (
	"context"
	"time"
)

// TemperatureProvider abstracts a weather source (e.g. OpenWeatherMap,
// Open-Meteo) that can resolve a city's current temperature in °C.
type TemperatureProvider interface {
	Name() string
	CurrentTemperature(ctx context.Context, city string) (float64, error)
}

// HolidayProvider abstracts a calendar source that knows whether a date is a
// public holiday in a country.
type HolidayProvider interface {
	Name() string
	IsHoliday(ctx context.Context, date time.Time, country string) (bool, error)
}

// Predictor is the trained model surface the engine needs. The model is
// read-only after startup and shared across requests without locking.
type Predictor interface {
	Predict(vec []float64) (float64, error)
}
