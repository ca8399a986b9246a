package forecast

import (
	"errors"
	"fmt"
)

var (
	// ErrModelUnavailable is returned while no trained model is loaded. The
	// service keeps running; only the prediction endpoint is disabled.
	ErrModelUnavailable = errors.New("sales model is not loaded")

	// ErrUpstreamUnavailable is returned when an external data provider is
	// unreachable or answered with an error.
	ErrUpstreamUnavailable = errors.New("upstream data provider unavailable")
)

// FeatureError reports that feature assembly or model input failed for one
// date of the horizon. It is scoped to the single request.
type FeatureError struct {
	Date string
	Err  error
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("feature preparation failed for %s: %v", e.Date, e.Err)
}

func (e *FeatureError) Unwrap() error {
	return e.Err
}
