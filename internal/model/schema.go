package model

import "fmt"

// FeatureNames is the ordered feature schema the sales model is trained on.
// The trainer records this order inside the model artifact and the forecast
// engine builds its vectors from the loaded copy, so both sides always agree.
var FeatureNames = []string{
	"Store",
	"Holiday_Flag",
	"Temperature",
	"Month",
	"Year",
	"Day",
	"DayOfWeek",
	"Fuel_Price",
	"CPI",
}

// Schema describes the ordered feature layout of a trained model.
type Schema struct {
	Features []string `json:"features"`
}

// DefaultSchema returns a schema with the canonical feature order.
func DefaultSchema() Schema {
	features := make([]string, len(FeatureNames))
	copy(features, FeatureNames)
	return Schema{Features: features}
}

// Arity returns the number of features the model expects.
func (s Schema) Arity() int {
	return len(s.Features)
}

// Validate checks that a vector matches the schema arity.
func (s Schema) Validate(vec []float64) error {
	if len(vec) != len(s.Features) {
		return fmt.Errorf("feature vector has %d values, schema expects %d (%v)", len(vec), len(s.Features), s.Features)
	}
	return nil
}
