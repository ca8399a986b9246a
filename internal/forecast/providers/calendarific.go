package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// CalendarificProvider answers whether a given date is a public holiday in a
// country, via the Calendarific holidays API.
type CalendarificProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewCalendarificProvider(client *http.Client, apiKey string) *CalendarificProvider {
	return &CalendarificProvider{
		name:    "calendarific",
		apiKey:  apiKey,
		baseURL: "https://calendarific.com/api/v2/holidays",
		client:  client,
		circuit: newBreaker("calendarific"),
	}
}

func (p *CalendarificProvider) Name() string {
	return p.name
}

// IsHoliday reports whether date is a holiday in the given ISO country code.
func (p *CalendarificProvider) IsHoliday(ctx context.Context, date time.Time, country string) (bool, error) {
	if p.apiKey == "" {
		return false, fmt.Errorf("calendarific api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("api_key", p.apiKey)
		values.Set("country", country)
		values.Set("year", fmt.Sprintf("%d", date.Year()))
		values.Set("month", fmt.Sprintf("%d", int(date.Month())))
		values.Set("day", fmt.Sprintf("%d", date.Day()))
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var payload struct {
		Response struct {
			Holidays []struct {
				Name string `json:"name"`
			} `json:"holidays"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("decode calendarific response: %w", err)
	}

	return len(payload.Response.Holidays) > 0, nil
}
