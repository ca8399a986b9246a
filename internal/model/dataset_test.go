package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleCSV = `Store,Date,Weekly_Sales,Holiday_Flag,Temperature,Fuel_Price,CPI
1,05-02-2010,1643690.90,0,42.31,2.572,211.0963582
1,12-02-2010,1641957.44,1,38.51,2.548,211.2421698
2,19-02-2010,1611968.17,0,39.93,2.514,211.2891429
2,26-02-2010,1409727.59,0,46.63,2.561,211.3196429
`

func TestReadDataset(t *testing.T) {
	ds, err := readDataset(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 4, ds.Len())
	require.Equal(t, FeatureNames, ds.Schema.Features)

	// First row: 05-02-2010 is a Friday (weekday index 4).
	row := ds.Features[0]
	require.Equal(t, []float64{1, 0, 42.31, 2, 2010, 5, 4, 2.572, 211.0963582}, row)
	require.InDelta(t, 1643690.90/7, ds.Targets[0], 1e-6)

	// Second row carries the holiday flag through.
	require.Equal(t, 1.0, ds.Features[1][1])
}

func TestReadDatasetMissingColumn(t *testing.T) {
	_, err := readDataset(strings.NewReader("Store,Date\n1,05-02-2010\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing column")
}

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		date time.Time
		want int
	}{
		{time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), 0},  // Monday
		{time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), 4},  // Friday
		{time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), 6}, // Sunday
	}
	for _, tt := range tests {
		if got := WeekdayIndex(tt.date); got != tt.want {
			t.Errorf("WeekdayIndex(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	ds, err := readDataset(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	train1, test1 := ds.Split(0.25, 42)
	train2, test2 := ds.Split(0.25, 42)

	require.Equal(t, train1.Features, train2.Features)
	require.Equal(t, test1.Features, test2.Features)
	require.Equal(t, 1, test1.Len())
	require.Equal(t, 3, train1.Len())
}
