package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save writes the ensemble to path as a JSON artifact. The schema travels
// inside the artifact so the serving side never hardcodes feature order.
func (e *Ensemble) Save(path string) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}
	return nil
}

// Load reads a model artifact from path. A missing file is reported as-is so
// the caller can treat it as a degraded-but-running condition.
func Load(path string) (*Ensemble, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ens Ensemble
	if err := json.Unmarshal(data, &ens); err != nil {
		return nil, fmt.Errorf("decode model file %s: %w", path, err)
	}
	if ens.Schema.Arity() == 0 || len(ens.Trees) == 0 {
		return nil, fmt.Errorf("model file %s has no schema or trees", path)
	}
	return &ens, nil
}
