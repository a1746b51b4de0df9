package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomForest_AveragesTrees(t *testing.T) {
	art, err := Decode("inline", []byte(`{
		"columns": ["ap_hi", "age_years"],
		"model": {"kind": "random_forest", "trees": [
			{"nodes": [
				{"feature": 0, "threshold": 130, "left": 1, "right": 2},
				{"left": -1, "right": -1, "value": 0.2},
				{"left": -1, "right": -1, "value": 0.8}
			]},
			{"nodes": [
				{"feature": 1, "threshold": 50, "left": 1, "right": 2},
				{"left": -1, "right": -1, "value": 0.1},
				{"feature": 0, "threshold": 150, "left": 3, "right": 4},
				{"left": -1, "right": -1, "value": 0.5},
				{"left": -1, "right": -1, "value": 1.0}
			]}
		]}
	}`))
	require.NoError(t, err)
	assert.Equal(t, KindRandomForest, art.Classifier.Kind())

	tests := []struct {
		row  []float64
		want float64
	}{
		{[]float64{120, 40}, (0.2 + 0.1) / 2},
		{[]float64{130, 60}, (0.2 + 0.5) / 2},
		{[]float64{140, 60}, (0.8 + 0.5) / 2},
		{[]float64{160, 60}, (0.8 + 1.0) / 2},
	}
	for _, tt := range tests {
		p, err := art.Classifier.PredictProba(tt.row)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, p, 1e-12, "row %v", tt.row)
	}
}

func TestGradientBoosting_SigmoidOfSum(t *testing.T) {
	art, err := Decode("inline", []byte(`{
		"columns": ["ap_hi"],
		"model": {"kind": "gradient_boosting", "base_score": -0.5, "learning_rate": 0.5, "trees": [
			{"nodes": [
				{"feature": 0, "threshold": 130, "left": 1, "right": 2},
				{"left": -1, "right": -1, "value": -1},
				{"left": -1, "right": -1, "value": 2}
			]}
		]}
	}`))
	require.NoError(t, err)

	p, err := art.Classifier.PredictProba([]float64{120})
	require.NoError(t, err)
	assert.InDelta(t, sigmoid(-1), p, 1e-12)

	p, err = art.Classifier.PredictProba([]float64{140})
	require.NoError(t, err)
	assert.InDelta(t, sigmoid(0.5), p, 1e-12)
}

func TestTreeEnsemble_Validation(t *testing.T) {
	tests := map[string]string{
		"no trees":           `{"kind": "random_forest", "trees": []}`,
		"empty tree":         `{"kind": "random_forest", "trees": [{"nodes": []}]}`,
		"feature range":      `{"kind": "random_forest", "trees": [{"nodes": [{"feature": 3, "left": 1, "right": 2}, {"left": -1, "right": -1}, {"left": -1, "right": -1}]}]}`,
		"backward child":     `{"kind": "random_forest", "trees": [{"nodes": [{"feature": 0, "left": 0, "right": 1}, {"left": -1, "right": -1}]}]}`,
		"child past end":     `{"kind": "random_forest", "trees": [{"nodes": [{"feature": 0, "left": 1, "right": 5}, {"left": -1, "right": -1}]}]}`,
		"leaf probability":   `{"kind": "random_forest", "trees": [{"nodes": [{"left": -1, "right": -1, "value": 1.5}]}]}`,
		"num features":       `{"kind": "gradient_boosting", "num_features": 4, "trees": [{"nodes": [{"left": -1, "right": -1}]}]}`,
		"half leaf is split": `{"kind": "random_forest", "trees": [{"nodes": [{"feature": 0, "left": -1, "right": 1}, {"left": -1, "right": -1}]}]}`,
		"zero learning rate": `{"kind": "gradient_boosting", "learning_rate": 0, "trees": [{"nodes": [{"left": -1, "right": -1}]}]}`,
		"negative rate":      `{"kind": "gradient_boosting", "learning_rate": -0.1, "trees": [{"nodes": [{"left": -1, "right": -1}]}]}`,
	}
	for name, m := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode("inline", []byte(`{"columns": ["a"], "model": `+m+`}`))
			assert.Error(t, err)
		})
	}
}

func TestTreeEnsemble_RowWidth(t *testing.T) {
	te := &TreeEnsemble{Type: KindRandomForest, Trees: []Tree{{Nodes: []Node{{Left: -1, Right: -1, Value: 0.5}}}}}
	require.NoError(t, te.validate(2))

	_, err := te.PredictProba([]float64{1, 2, 3})
	assert.ErrorIs(t, err, errRowWidth)

	p, err := te.PredictProba([]float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.5, p)
}

func TestGradientBoosting_DefaultLearningRate(t *testing.T) {
	art, err := Decode("inline", []byte(`{
		"columns": ["a"],
		"model": {"kind": "gradient_boosting", "trees": [{"nodes": [{"left": -1, "right": -1, "value": 0.75}]}]}
	}`))
	require.NoError(t, err)

	p, err := art.Classifier.PredictProba([]float64{0})
	require.NoError(t, err)
	assert.InDelta(t, sigmoid(0.75), p, 1e-12)
}
