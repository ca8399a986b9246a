package model

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Params controls gradient boosting. Defaults mirror the offline training
// job the service was originally tuned with.
type Params struct {
	Trees        int
	MaxDepth     int
	LearningRate float64
	MinLeaf      int
}

// DefaultParams returns the production training parameters.
func DefaultParams() Params {
	return Params{
		Trees:        150,
		MaxDepth:     5,
		LearningRate: 0.1,
		MinLeaf:      2,
	}
}

// Ensemble is a gradient-boosted regression tree model with its feature
// schema. It is immutable after training/loading and safe for concurrent use.
type Ensemble struct {
	Schema       Schema  `json:"schema"`
	BaseScore    float64 `json:"base_score"`
	LearningRate float64 `json:"learning_rate"`
	Trees        []*Node `json:"trees"`
}

// Train fits a least-squares gradient boosted ensemble: the base score is the
// target mean, and each tree is fit on the residuals of the running
// prediction, contributing LearningRate times its output.
func Train(ds *Dataset, p Params) (*Ensemble, error) {
	if len(ds.Features) == 0 {
		return nil, fmt.Errorf("training dataset is empty")
	}
	if p.Trees <= 0 || p.MaxDepth <= 0 || p.LearningRate <= 0 {
		return nil, fmt.Errorf("invalid training params: %+v", p)
	}
	if p.MinLeaf <= 0 {
		p.MinLeaf = 1
	}

	n := len(ds.Features)
	base := stat.Mean(ds.Targets, nil)

	preds := make([]float64, n)
	for i := range preds {
		preds[i] = base
	}
	residuals := make([]float64, n)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	ens := &Ensemble{
		Schema:       ds.Schema,
		BaseScore:    base,
		LearningRate: p.LearningRate,
		Trees:        make([]*Node, 0, p.Trees),
	}

	for t := 0; t < p.Trees; t++ {
		for i := range residuals {
			residuals[i] = ds.Targets[i] - preds[i]
		}
		tree := growTree(ds.Features, residuals, idx, 0, p.MaxDepth, p.MinLeaf)
		ens.Trees = append(ens.Trees, tree)

		for i := range preds {
			preds[i] += p.LearningRate * tree.Predict(ds.Features[i])
		}
	}

	return ens, nil
}

// Predict scores a single feature vector. The vector must match the schema
// recorded at training time.
func (e *Ensemble) Predict(vec []float64) (float64, error) {
	if err := e.Schema.Validate(vec); err != nil {
		return 0, err
	}
	out := e.BaseScore
	for _, tree := range e.Trees {
		out += e.LearningRate * tree.Predict(vec)
	}
	return out, nil
}

// Evaluate returns mean squared error and R² of the ensemble on a dataset.
func (e *Ensemble) Evaluate(ds *Dataset) (mse, r2 float64, err error) {
	if len(ds.Features) == 0 {
		return 0, 0, fmt.Errorf("evaluation dataset is empty")
	}
	estimates := make([]float64, len(ds.Features))
	for i, vec := range ds.Features {
		estimates[i], err = e.Predict(vec)
		if err != nil {
			return 0, 0, err
		}
		d := estimates[i] - ds.Targets[i]
		mse += d * d
	}
	mse /= float64(len(ds.Features))
	r2 = stat.RSquaredFrom(estimates, ds.Targets, nil)
	return mse, r2, nil
}
