package forecast

import "time"

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// HorizonDays is the fixed forecast window length.
const HorizonDays = 7

// Default request values applied when the caller omits the fields.
const (
	DefaultFuelPrice = 3.8
	DefaultCPI       = 220.0
)

// Request is the model-backed prediction request body.
//
// FuelPrice and CPI are optional. A zero value means "unset": an explicit
// zero in the request body is replaced by the default just like an omitted
// field. Neither indicator is meaningful at zero, so the request cannot
// express a literal zero.
type Request struct {
	ProductID string  `json:"product_id" validate:"required"`
	StoreID   int     `json:"store_id" validate:"required,gte=1"`
	City      string  `json:"city" validate:"required"`
	StartDate string  `json:"start_date" validate:"required"`
	FuelPrice float64 `json:"fuel_price" validate:"gte=0"`
	CPI       float64 `json:"cpi" validate:"gte=0"`
}

// ApplyDefaults fills in the optional economic indicators. Zero is treated
// as unset, so an explicit zero is also rewritten to the default.
func (r *Request) ApplyDefaults() {
	if r.FuelPrice == 0 {
		r.FuelPrice = DefaultFuelPrice
	}
	if r.CPI == 0 {
		r.CPI = DefaultCPI
	}
}

// ParseStartDate parses the request start date as a calendar date.
func (r Request) ParseStartDate() (time.Time, error) {
	return time.Parse(DateLayout, r.StartDate)
}

// DailyForecast is a single day of the forecast horizon.
type DailyForecast struct {
	Date           string  `json:"date"`
	PredictedSales float64 `json:"predicted_sales"`
	IsHoliday      bool    `json:"is_holiday"`
}

// LocationData echoes the environmental signal used for the forecast.
type LocationData struct {
	City               string  `json:"city"`
	TemperatureCelsius float64 `json:"temperature_celsius"`
}

// Result is the full response of a model-backed forecast.
type Result struct {
	RequestInput Request         `json:"request_input"`
	Location     LocationData    `json:"location_data"`
	Forecast     []DailyForecast `json:"forecast"`
}
