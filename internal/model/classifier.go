package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// Classifier is a trained binary classifier. PredictProba returns the
// probability of the positive class for one row laid out in the artifact's
// column order. Implementations are read-only after decoding and safe for
// concurrent use.
type Classifier interface {
	PredictProba(row []float64) (float64, error)
	Kind() string
}

const (
	KindLogisticRegression = "logistic_regression"
	KindRandomForest       = "random_forest"
	KindGradientBoosting   = "gradient_boosting"
)

var (
	errUnknownKind  = errors.New("unknown classifier kind")
	errRowWidth     = errors.New("row width does not match classifier")
	errNonFiniteRow = errors.New("row contains a non-finite value")
)

// decodeClassifier builds a classifier from the artifact's "model" value.
// width is the number of columns the classifier will be fed.
func decodeClassifier(raw json.RawMessage, width int) (Classifier, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	switch head.Kind {
	case KindLogisticRegression:
		var lr LogisticRegression
		if err := json.Unmarshal(raw, &lr); err != nil {
			return nil, fmt.Errorf("decode %s: %w", head.Kind, err)
		}
		if err := lr.validate(width); err != nil {
			return nil, err
		}
		return &lr, nil
	case KindRandomForest, KindGradientBoosting:
		var te TreeEnsemble
		if err := json.Unmarshal(raw, &te); err != nil {
			return nil, fmt.Errorf("decode %s: %w", head.Kind, err)
		}
		if err := te.validate(width); err != nil {
			return nil, err
		}
		return &te, nil
	case "":
		return nil, fmt.Errorf("%w: model has no kind", errUnknownKind)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownKind, head.Kind)
	}
}

func checkRow(row []float64, width int) error {
	if len(row) != width {
		return fmt.Errorf("%w: got %d values, want %d", errRowWidth, len(row), width)
	}
	for i, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w at index %d", errNonFiniteRow, i)
		}
	}
	return nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
