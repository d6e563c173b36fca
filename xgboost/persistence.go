package xgboost

import (
	"encoding/json"
	"os"

	"github.com/omarzanji/parkinsons-detection/pkg/errors"
)

// SaveToJSON writes the model to path as indented JSON.
func (m *Model) SaveToJSON(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "xgboost: marshal model")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "xgboost: write model")
	}
	return nil
}

// LoadModelFromJSON reads a model previously written by SaveToJSON.
func LoadModelFromJSON(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "xgboost: read model")
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "xgboost: unmarshal model")
	}
	if _, err := NewObjective(m.Objective); err != nil {
		return nil, err
	}
	return &m, nil
}
