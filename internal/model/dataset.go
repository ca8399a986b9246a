package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"
)

// csvDateLayout is the day-month-year format used by the historical sales
// export (e.g. "05-02-2010").
const csvDateLayout = "02-01-2006"

// WeekdayIndex returns the day of week with Monday as 0 and Sunday as 6,
// matching the encoding the model was trained with.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Dataset is a fully materialized training set: one feature vector per row in
// schema order, paired with the daily sales target.
type Dataset struct {
	Schema   Schema
	Features [][]float64
	Targets  []float64
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Features) }

// LoadDataset reads a historical sales CSV with columns
// {Store, Date, Weekly_Sales, Holiday_Flag, Temperature, Fuel_Price, CPI},
// derives the calendar features from Date and Daily_Sales = Weekly_Sales / 7
// as the regression target.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return readDataset(f)
}

func readDataset(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, want := range []string{"Store", "Date", "Weekly_Sales", "Holiday_Flag", "Temperature", "Fuel_Price", "CPI"} {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("dataset is missing column %q", want)
		}
	}

	ds := &Dataset{Schema: DefaultSchema()}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		line++

		num := func(name string) (float64, error) {
			return strconv.ParseFloat(record[col[name]], 64)
		}

		date, err := time.Parse(csvDateLayout, record[col["Date"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad date %q: %w", line, record[col["Date"]], err)
		}
		store, err := num("Store")
		if err != nil {
			return nil, fmt.Errorf("row %d: bad Store: %w", line, err)
		}
		holiday, err := num("Holiday_Flag")
		if err != nil {
			return nil, fmt.Errorf("row %d: bad Holiday_Flag: %w", line, err)
		}
		temp, err := num("Temperature")
		if err != nil {
			return nil, fmt.Errorf("row %d: bad Temperature: %w", line, err)
		}
		fuel, err := num("Fuel_Price")
		if err != nil {
			return nil, fmt.Errorf("row %d: bad Fuel_Price: %w", line, err)
		}
		cpi, err := num("CPI")
		if err != nil {
			return nil, fmt.Errorf("row %d: bad CPI: %w", line, err)
		}
		weekly, err := num("Weekly_Sales")
		if err != nil {
			return nil, fmt.Errorf("row %d: bad Weekly_Sales: %w", line, err)
		}

		ds.Features = append(ds.Features, []float64{
			store,
			holiday,
			temp,
			float64(date.Month()),
			float64(date.Year()),
			float64(date.Day()),
			float64(WeekdayIndex(date)),
			fuel,
			cpi,
		})
		ds.Targets = append(ds.Targets, weekly/7)
	}

	if ds.Len() == 0 {
		return nil, fmt.Errorf("dataset has no rows")
	}
	return ds, nil
}

// Split shuffles the rows with the given seed and returns train/test subsets.
// testFraction is clamped to (0,1); the shuffle is deterministic per seed.
func (d *Dataset) Split(testFraction float64, seed int64) (train, test *Dataset) {
	if testFraction <= 0 || testFraction >= 1 {
		testFraction = 0.2
	}

	n := d.Len()
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(float64(n) * testFraction)

	train = &Dataset{Schema: d.Schema}
	test = &Dataset{Schema: d.Schema}
	for i, j := range perm {
		if i < nTest {
			test.Features = append(test.Features, d.Features[j])
			test.Targets = append(test.Targets, d.Targets[j])
		} else {
			train.Features = append(train.Features, d.Features[j])
			train.Targets = append(train.Targets, d.Targets[j])
		}
	}
	return train, test
}
