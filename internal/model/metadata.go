package model

import (
	"errors"
	"fmt"
	"sort"
)

// Metadata is evaluation data bundled with the model for display. It never
// takes part in scoring. Every item is nil when the artifact omits it.
type Metadata struct {
	TrainAccuracy     *float64
	TestAccuracy      *float64
	CVScore           *float64
	ModelComparison   map[string]map[string]float64
	FeatureImportance map[string]float64
	ROC               *ROCCurve
	LearningCurve     *LearningCurve
}

// Panels says which supplementary displays the artifact can feed. It is
// filled once when the artifact is decoded.
type Panels struct {
	Scores            bool `json:"scores"`
	ModelComparison   bool `json:"modelComparison"`
	FeatureImportance bool `json:"featureImportance"`
	ROCCurve          bool `json:"rocCurve"`
	LearningCurve     bool `json:"learningCurve"`
}

func (m Metadata) panels() Panels {
	return Panels{
		Scores:            m.TrainAccuracy != nil || m.TestAccuracy != nil || m.CVScore != nil,
		ModelComparison:   m.ModelComparison != nil,
		FeatureImportance: m.FeatureImportance != nil,
		ROCCurve:          m.ROC != nil,
		LearningCurve:     m.LearningCurve != nil,
	}
}

// Any reports whether at least one panel is available.
func (p Panels) Any() bool {
	return p.Scores || p.ModelComparison || p.FeatureImportance || p.ROCCurve || p.LearningCurve
}

type ROCCurve struct {
	FPR []float64 `json:"fpr"`
	TPR []float64 `json:"tpr"`
}

// AUC integrates the curve with the trapezoid rule in the order the points
// were stored.
func (r ROCCurve) AUC() float64 {
	var area float64
	for i := 1; i < len(r.FPR); i++ {
		area += (r.FPR[i] - r.FPR[i-1]) * (r.TPR[i] + r.TPR[i-1]) / 2
	}
	return area
}

func (r ROCCurve) validate() error {
	if len(r.FPR) != len(r.TPR) {
		return fmt.Errorf("roc_curve has %d fpr and %d tpr points", len(r.FPR), len(r.TPR))
	}
	for i := range r.FPR {
		if !unit(r.FPR[i]) || !unit(r.TPR[i]) {
			return fmt.Errorf("roc_curve point %d outside [0,1]", i)
		}
	}
	return nil
}

type LearningCurve struct {
	TrainSizes      []int     `json:"train_sizes"`
	TrainScoresMean []float64 `json:"train_scores_mean"`
	TestScoresMean  []float64 `json:"test_scores_mean"`
}

func (c LearningCurve) validate() error {
	n := len(c.TrainSizes)
	if len(c.TrainScoresMean) != n || len(c.TestScoresMean) != n {
		return errors.New("learning_curve arrays differ in length")
	}
	return nil
}

// Importance is one ranked feature-importance entry.
type Importance struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// RankedImportance sorts feature importance by weight, largest first, ties
// broken by name.
func (m Metadata) RankedImportance() []Importance {
	out := make([]Importance, 0, len(m.FeatureImportance))
	for f, w := range m.FeatureImportance {
		out = append(out, Importance{Feature: f, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Feature < out[j].Feature
	})
	return out
}

func (m Metadata) validate() error {
	for name, v := range map[string]*float64{
		"train_accuracy": m.TrainAccuracy,
		"test_accuracy":  m.TestAccuracy,
		"cv_score":       m.CVScore,
	} {
		if v != nil && !unit(*v) {
			return fmt.Errorf("%s %v outside [0,1]", name, *v)
		}
	}
	if m.ROC != nil {
		if err := m.ROC.validate(); err != nil {
			return err
		}
	}
	if m.LearningCurve != nil {
		if err := m.LearningCurve.validate(); err != nil {
			return err
		}
	}
	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}
