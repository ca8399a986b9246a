// shelf-trainer is the offline, one-shot training job: it reads a historical
// sales CSV, fits the gradient-boosted sales model, reports held-out metrics,
// and writes the model artifact the API loads at startup.
package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/predictive-shelf/api/internal/model"
)

func main() {
	var (
		dataPath = flag.String("data", "Walmart.csv", "historical sales CSV")
		outPath  = flag.String("out", "sales_model.json", "output model artifact")
		trees    = flag.Int("trees", 150, "number of boosting rounds")
		depth    = flag.Int("depth", 5, "maximum tree depth")
		lr       = flag.Float64("lr", 0.1, "learning rate")
		seed     = flag.Int64("seed", 42, "train/test split seed")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ds, err := model.LoadDataset(*dataPath)
	if err != nil {
		log.Fatal().Err(err).Str("data", *dataPath).Msg("failed to load dataset")
	}
	log.Info().Int("rows", ds.Len()).Msg("dataset loaded")

	train, test := ds.Split(0.2, *seed)

	params := model.Params{
		Trees:        *trees,
		MaxDepth:     *depth,
		LearningRate: *lr,
		MinLeaf:      2,
	}
	log.Info().Int("trees", params.Trees).Int("depth", params.MaxDepth).Float64("lr", params.LearningRate).Msg("training daily sales model")

	ens, err := model.Train(train, params)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}

	mse, r2, err := ens.Evaluate(test)
	if err != nil {
		log.Fatal().Err(err).Msg("evaluation failed")
	}
	log.Info().Float64("mse", mse).Float64("r2", r2).Int("test_rows", test.Len()).Msg("held-out metrics")

	if err := ens.Save(*outPath); err != nil {
		log.Fatal().Err(err).Msg("failed to save model")
	}
	log.Info().Str("out", *outPath).Msg("model saved")
}
