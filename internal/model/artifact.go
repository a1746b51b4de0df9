// Package model loads the trained classifier bundle and exposes it as a
// read-only artifact.
package model

import (
	"encoding/json"
	"fmt"
)

// Artifact is a decoded model bundle: the classifier, the column order it
// was trained on, and whatever evaluation metadata came with it.
type Artifact struct {
	Source     string
	Classifier Classifier
	Columns    []string
	Metadata   Metadata
	Panels     Panels
}

// Required bundle keys.
const (
	keyModel   = "model"
	keyColumns = "columns"
)

// Decode parses a JSON bundle. source names where the bytes came from and
// only appears in errors.
func Decode(source string, data []byte) (*Artifact, error) {
	var bundle map[string]json.RawMessage
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, loadErr(source, "bundle is not a JSON object", err)
	}

	for _, key := range []string{keyModel, keyColumns} {
		if raw, ok := bundle[key]; !ok || string(raw) == "null" {
			return nil, loadErr(source, fmt.Sprintf("missing required key %q", key), nil)
		}
	}

	var columns []string
	if err := json.Unmarshal(bundle[keyColumns], &columns); err != nil {
		return nil, loadErr(source, "columns is not a list of names", err)
	}
	if err := checkColumns(columns); err != nil {
		return nil, loadErr(source, "invalid columns", err)
	}

	clf, err := decodeClassifier(bundle[keyModel], len(columns))
	if err != nil {
		return nil, loadErr(source, "invalid model", err)
	}

	meta, err := decodeMetadata(bundle)
	if err != nil {
		return nil, loadErr(source, "invalid evaluation metadata", err)
	}

	return &Artifact{
		Source:     source,
		Classifier: clf,
		Columns:    columns,
		Metadata:   meta,
		Panels:     meta.panels(),
	}, nil
}

func checkColumns(columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("no columns")
	}
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if c == "" {
			return fmt.Errorf("empty column name")
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

func decodeMetadata(bundle map[string]json.RawMessage) (Metadata, error) {
	var meta Metadata
	fields := []struct {
		key string
		dst any
	}{
		{"train_accuracy", &meta.TrainAccuracy},
		{"test_accuracy", &meta.TestAccuracy},
		{"cv_score", &meta.CVScore},
		{"model_comparison", &meta.ModelComparison},
		{"feature_importance", &meta.FeatureImportance},
		{"roc_curve", &meta.ROC},
		{"learning_curve", &meta.LearningCurve},
	}
	for _, f := range fields {
		raw, ok := bundle[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return Metadata{}, fmt.Errorf("%s: %w", f.key, err)
		}
	}
	if err := meta.validate(); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}
