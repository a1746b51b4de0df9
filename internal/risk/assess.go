// Package risk scores a feature row with the loaded classifier and maps the
// probability to a tier and its advisory.
package risk

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/Skufu/cardiorisk/internal/features"
	"github.com/Skufu/cardiorisk/internal/model"
)

// ScoringError wraps any failure of the probability estimate. There is no
// fallback tier when it happens.
type ScoringError struct {
	Err error
}

func (e *ScoringError) Error() string {
	return "score feature vector: " + e.Err.Error()
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}

var (
	errColumnOrder    = errors.New("feature vector columns do not match the artifact")
	errBadProbability = errors.New("classifier returned an invalid probability")
)

// Assessment is the outcome of one scored profile.
type Assessment struct {
	Probability float64
	Tier        Tier
	Advisory    Advisory
}

// Percentage is the probability in percent, the unit tiers are defined in.
func (a Assessment) Percentage() float64 {
	return a.Probability * 100
}

// DisplayPercentage is Percentage rounded to one decimal place, the precision
// results are shown with.
func (a Assessment) DisplayPercentage() float64 {
	return math.Round(a.Percentage()*10) / 10
}

// AdvisoryText is the advisory rendered as markdown.
func (a Assessment) AdvisoryText() string {
	return a.Advisory.Text()
}

// Assess scores vec with the artifact's classifier. vec must carry exactly
// the artifact's columns in the artifact's order.
func Assess(vec features.Vector, art *model.Artifact) (Assessment, error) {
	if !slices.Equal(vec.Columns, art.Columns) {
		return Assessment{}, &ScoringError{Err: errColumnOrder}
	}

	p, err := art.Classifier.PredictProba(vec.Values)
	if err != nil {
		return Assessment{}, &ScoringError{Err: err}
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return Assessment{}, &ScoringError{Err: fmt.Errorf("%w: %v", errBadProbability, p)}
	}

	tier := TierFor(p)
	return Assessment{
		Probability: p,
		Tier:        tier,
		Advisory:    AdvisoryFor(tier),
	}, nil
}
