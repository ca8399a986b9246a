package forecast

import (
	"testing"
	"time"

	"github.com/predictive-shelf/api/internal/model"
)

func TestBuildFeatureVectorOrder(t *testing.T) {
	req := Request{
		ProductID: "bread",
		StoreID:   3,
		City:      "Chicago",
		StartDate: "2024-03-01",
		FuelPrice: 3.8,
		CPI:       220.0,
	}
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	vec := BuildFeatureVector(req, start, 0, 5.0, false)

	// 2024-03-01 is a Friday (weekday index 4).
	want := []float64{3, 0, 5.0, 3, 2024, 1, 4, 3.8, 220.0}
	if len(vec) != len(want) {
		t.Fatalf("vector has %d fields, want %d", len(vec), len(want))
	}
	for i := range want {
		if vec[i] != want[i] {
			t.Errorf("field %d (%s) = %v, want %v", i, model.FeatureNames[i], vec[i], want[i])
		}
	}
}

func TestBuildFeatureVectorDayOffsets(t *testing.T) {
	req := Request{StoreID: 1, FuelPrice: 3.8, CPI: 220.0}
	start := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		offset          int
		month, day, dow float64
	}{
		{0, 2, 27, 1}, // Tue Feb 27
		{2, 2, 29, 3}, // leap day, Thursday
		{3, 3, 1, 4},  // rolls into March
		{6, 3, 4, 0},  // Monday
	}
	for _, tt := range tests {
		vec := BuildFeatureVector(req, start, tt.offset, 10, false)
		if vec[3] != tt.month || vec[5] != tt.day || vec[6] != tt.dow {
			t.Errorf("offset %d: got month/day/dow %v/%v/%v, want %v/%v/%v",
				tt.offset, vec[3], vec[5], vec[6], tt.month, tt.day, tt.dow)
		}
	}
}

func TestBuildFeatureVectorDeterminism(t *testing.T) {
	req := Request{StoreID: 5, FuelPrice: 4.1, CPI: 215.3}
	start := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	a := BuildFeatureVector(req, start, 4, 31.5, true)
	b := BuildFeatureVector(req, start, 4, 31.5, true)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("field %d differs between identical calls: %v vs %v", i, a[i], b[i])
		}
	}
	if a[1] != 1 {
		t.Errorf("holiday flag = %v, want 1", a[1])
	}
}
