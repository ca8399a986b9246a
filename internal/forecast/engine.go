package forecast

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/predictive-shelf/api/internal/cache"
)

// Engine turns a prediction request into a 7-day forecast by resolving
// environmental signals through the lookup caches and scoring one feature
// vector per day with the trained model.
type Engine struct {
	predictor Predictor
	weather   []TemperatureProvider
	calendar  HolidayProvider
	country   string

	temps    *cache.Cache[float64]
	holidays *cache.Cache[bool]

	log zerolog.Logger
}

// NewEngine wires an engine. predictor may be nil when no model artifact was
// found at startup; every Forecast call then fails with ErrModelUnavailable.
func NewEngine(predictor Predictor, weather []TemperatureProvider, calendar HolidayProvider, country string, cacheCapacity int, log zerolog.Logger) *Engine {
	return &Engine{
		predictor: predictor,
		weather:   weather,
		calendar:  calendar,
		country:   country,
		temps:     cache.New[float64](cacheCapacity),
		holidays:  cache.New[bool](cacheCapacity),
		log:       log.With().Str("module", "forecast").Logger(),
	}
}

// ModelLoaded reports whether a trained model is available.
func (e *Engine) ModelLoaded() bool {
	return e.predictor != nil
}

// ResolveTemperature returns the current temperature for a city, memoized for
// the process lifetime. Providers are tried in order; all failing maps to
// ErrUpstreamUnavailable.
func (e *Engine) ResolveTemperature(ctx context.Context, city string) (float64, error) {
	key := "temp:" + strings.ToLower(city)
	temp, err := e.temps.GetOrFetch(ctx, key, func(ctx context.Context) (float64, error) {
		var lastErr error
		for _, p := range e.weather {
			t, err := p.CurrentTemperature(ctx, city)
			if err != nil {
				e.log.Warn().Err(err).Str("provider", p.Name()).Str("city", city).Msg("temperature fetch failed")
				lastErr = err
				continue
			}
			return t, nil
		}
		if lastErr == nil {
			lastErr = fmt.Errorf("no temperature providers configured")
		}
		return 0, lastErr
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return temp, nil
}

func (e *Engine) resolveHoliday(ctx context.Context, date time.Time) (bool, error) {
	key := fmt.Sprintf("holiday:%s:%s", date.Format(DateLayout), e.country)
	flag, err := e.holidays.GetOrFetch(ctx, key, func(ctx context.Context) (bool, error) {
		return e.calendar.IsHoliday(ctx, date, e.country)
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return flag, nil
}

// Forecast produces the 7-day forecast for a request. The returned days are
// strictly ascending from the request start date with no gaps.
func (e *Engine) Forecast(ctx context.Context, req Request) (*Result, error) {
	if e.predictor == nil {
		return nil, ErrModelUnavailable
	}

	req.ApplyDefaults()
	startDate, err := req.ParseStartDate()
	if err != nil {
		return nil, &FeatureError{Date: req.StartDate, Err: err}
	}

	temperature, err := e.ResolveTemperature(ctx, req.City)
	if err != nil {
		return nil, err
	}

	days := make([]DailyForecast, 0, HorizonDays)
	for offset := 0; offset < HorizonDays; offset++ {
		date := startDate.AddDate(0, 0, offset)
		dateStr := date.Format(DateLayout)

		// Holiday lookups are treated as fatal for the request; they could
		// degrade to "not a holiday" instead.
		isHoliday, err := e.resolveHoliday(ctx, date)
		if err != nil {
			return nil, err
		}

		vec := BuildFeatureVector(req, startDate, offset, temperature, isHoliday)
		raw, err := e.predictor.Predict(vec)
		if err != nil {
			return nil, &FeatureError{Date: dateStr, Err: err}
		}
		if math.IsNaN(raw) || math.IsInf(raw, 0) {
			return nil, &FeatureError{Date: dateStr, Err: fmt.Errorf("model produced a non-finite prediction")}
		}

		predicted := math.Round(math.Max(0, raw)*100) / 100
		days = append(days, DailyForecast{
			Date:           dateStr,
			PredictedSales: predicted,
			IsHoliday:      isHoliday,
		})
	}

	return &Result{
		RequestInput: req,
		Location: LocationData{
			City:               req.City,
			TemperatureCelsius: temperature,
		},
		Forecast: days,
	}, nil
}
