package forecast

import (
	"time"

	"github.com/predictive-shelf/api/internal/model"
)

// BuildFeatureVector maps a request plus resolved environmental signals to
// the numeric vector the trained model expects, in schema order:
// [Store, Holiday_Flag, Temperature, Month, Year, Day, DayOfWeek,
// Fuel_Price, CPI]. Pure and deterministic; temperature and holiday status
// are resolved by the caller so this stays trivially testable.
func BuildFeatureVector(req Request, startDate time.Time, dayOffset int, temperature float64, isHoliday bool) []float64 {
	date := startDate.AddDate(0, 0, dayOffset)

	holidayFlag := 0.0
	if isHoliday {
		holidayFlag = 1.0
	}

	return []float64{
		float64(req.StoreID),
		holidayFlag,
		temperature,
		float64(date.Month()),
		float64(date.Year()),
		float64(date.Day()),
		float64(model.WeekdayIndex(date)),
		req.FuelPrice,
		req.CPI,
	}
}
