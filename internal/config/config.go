package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig carries all runtime configuration, read from the environment.
type AppConfig struct {
	Port string

	// External provider credentials.
	OpenWeatherAPIKey  string
	CalendarificAPIKey string

	// GeocoderAPIKey enables the keyless Open-Meteo temperature fallback,
	// which needs Google geocoding to turn a city into coordinates.
	GeocoderAPIKey string

	// HolidayCountry is the ISO country code used for holiday lookups.
	HolidayCountry string

	// ModelPath points at the serialized trained-model artifact. A missing
	// file degrades the service instead of crashing it.
	ModelPath string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// CacheCapacity is the per-cache bound on distinct keys.
	CacheCapacity int

	// WarmupCities are pre-fetched into the temperature cache on a schedule;
	// empty disables the warm-up job.
	WarmupCities   []string
	WarmupInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:               getenvDefault("PORT", "8080"),
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		CalendarificAPIKey: os.Getenv("CALENDARIFIC_API_KEY"),
		GeocoderAPIKey:     os.Getenv("GEOCODER_API_KEY"),
		HolidayCountry:     getenvDefault("HOLIDAY_COUNTRY", "IN"),
		ModelPath:          getenvDefault("MODEL_PATH", "sales_model.json"),
		CacheCapacity:      getenvInt("CACHE_CAPACITY", 128),
	}

	timeout, err := parseDuration("HTTP_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	interval, err := parseDuration("WARMUP_INTERVAL", "30m")
	if err != nil {
		return nil, err
	}
	cfg.WarmupInterval = interval

	if cities := os.Getenv("WARMUP_CITIES"); cities != "" {
		for _, city := range strings.Split(cities, ",") {
			if city = strings.TrimSpace(city); city != "" {
				cfg.WarmupCities = append(cfg.WarmupCities, city)
			}
		}
	}

	return cfg, nil
}

func parseDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
