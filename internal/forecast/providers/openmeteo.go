package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"
)

// OpenMeteoProvider is a keyless temperature fallback. Open-Meteo only
// accepts coordinates, so cities are resolved through the Google geocoding
// API first; resolved coordinates are memoized per city.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker

	mu     sync.Mutex
	coords map[string]geocoder.Location
}

func NewOpenMeteoProvider(client *http.Client, geocoderAPIKey string) *OpenMeteoProvider {
	geocoder.ApiKey = geocoderAPIKey

	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		client:  client,
		circuit: newBreaker("openmeteo"),
		coords:  make(map[string]geocoder.Location),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// CurrentTemperature geocodes the city and reads Open-Meteo's current
// weather block.
func (p *OpenMeteoProvider) CurrentTemperature(ctx context.Context, city string) (float64, error) {
	loc, err := p.locate(city)
	if err != nil {
		return 0, fmt.Errorf("geocode %q: %w", city, err)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
		values.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
		values.Set("current_weather", "true")
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
		} `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode openmeteo response: %w", err)
	}

	return payload.CurrentWeather.Temperature, nil
}

func (p *OpenMeteoProvider) locate(city string) (geocoder.Location, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if loc, ok := p.coords[city]; ok {
		return loc, nil
	}

	loc, err := geocoder.Geocoding(geocoder.Address{City: city})
	if err != nil {
		return geocoder.Location{}, err
	}
	p.coords[city] = loc
	return loc, nil
}
