package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// syntheticDataset builds rows where daily sales depend on temperature and
// the holiday flag, which a boosted tree ensemble should recover closely.
func syntheticDataset(t *testing.T) *Dataset {
	t.Helper()

	ds := &Dataset{Schema: DefaultSchema()}
	for store := 1; store <= 3; store++ {
		for i := 0; i < 40; i++ {
			temp := float64(i)/2 - 5 // -5..14.5
			holiday := float64(i % 5 / 4)
			vec := []float64{
				float64(store),
				holiday,
				temp,
				float64(i%12 + 1),
				2024,
				float64(i%28 + 1),
				float64(i % 7),
				3.8,
				220.0,
			}
			target := 100 + 12*temp + 80*holiday + 5*float64(store)
			ds.Features = append(ds.Features, vec)
			ds.Targets = append(ds.Targets, target)
		}
	}
	return ds
}

func TestTrainFitsSyntheticSignal(t *testing.T) {
	ds := syntheticDataset(t)

	ens, err := Train(ds, Params{Trees: 80, MaxDepth: 4, LearningRate: 0.1, MinLeaf: 2})
	require.NoError(t, err)
	require.Len(t, ens.Trees, 80)
	require.Equal(t, ds.Schema.Features, ens.Schema.Features)

	mse, r2, err := ens.Evaluate(ds)
	require.NoError(t, err)
	require.Less(t, mse, 50.0, "training error should be small on a clean signal")
	require.Greater(t, r2, 0.95)
}

func TestPredictIsDeterministic(t *testing.T) {
	ds := syntheticDataset(t)
	ens, err := Train(ds, Params{Trees: 20, MaxDepth: 3, LearningRate: 0.2, MinLeaf: 2})
	require.NoError(t, err)

	vec := ds.Features[7]
	first, err := ens.Predict(vec)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ens.Predict(vec)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestPredictRejectsWrongArity(t *testing.T) {
	ds := syntheticDataset(t)
	ens, err := Train(ds, Params{Trees: 5, MaxDepth: 3, LearningRate: 0.2, MinLeaf: 2})
	require.NoError(t, err)

	_, err = ens.Predict([]float64{1, 2, 3})
	require.Error(t, err)
}

func TestSaveLoadPreservesPredictions(t *testing.T) {
	ds := syntheticDataset(t)
	ens, err := Train(ds, Params{Trees: 10, MaxDepth: 3, LearningRate: 0.2, MinLeaf: 2})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sales_model.json")
	require.NoError(t, ens.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ens.Schema.Features, loaded.Schema.Features)

	want, err := ens.Predict(ds.Features[0])
	require.NoError(t, err)
	got, err := loaded.Predict(ds.Features[0])
	require.NoError(t, err)
	require.InDelta(t, want, got, 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
