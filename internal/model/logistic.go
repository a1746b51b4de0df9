package model

import (
	"errors"
	"fmt"
)

// LogisticRegression is a linear model over optionally standardised inputs.
type LogisticRegression struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Scaler       *Scaler   `json:"scaler,omitempty"`
}

// Scaler standardises each input as (x - mean) / scale before the linear term.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (m *LogisticRegression) Kind() string { return KindLogisticRegression }

func (m *LogisticRegression) PredictProba(row []float64) (float64, error) {
	if err := checkRow(row, len(m.Coefficients)); err != nil {
		return 0, err
	}
	z := m.Intercept
	for i, x := range row {
		if m.Scaler != nil {
			x = (x - m.Scaler.Mean[i]) / m.Scaler.Scale[i]
		}
		z += m.Coefficients[i] * x
	}
	return sigmoid(z), nil
}

func (m *LogisticRegression) validate(width int) error {
	if len(m.Coefficients) != width {
		return fmt.Errorf("logistic regression has %d coefficients for %d columns", len(m.Coefficients), width)
	}
	if m.Scaler == nil {
		return nil
	}
	if len(m.Scaler.Mean) != width || len(m.Scaler.Scale) != width {
		return errors.New("scaler mean/scale length does not match columns")
	}
	for i, s := range m.Scaler.Scale {
		if s == 0 {
			return fmt.Errorf("scaler scale is zero at index %d", i)
		}
	}
	return nil
}
