package risk

import (
	"context"

	"github.com/Skufu/cardiorisk/internal/features"
	"github.com/Skufu/cardiorisk/internal/model"
)

// Service runs the full chain for one profile: load (once), build, score.
type Service struct {
	models *model.Handle
}

func NewService(models *model.Handle) *Service {
	return &Service{models: models}
}

// Report is an assessment together with the row that produced it.
type Report struct {
	Assessment
	Features features.Vector
}

// Assess returns an *model.ArtifactLoadError, *features.SchemaMismatchError
// or *ScoringError on failure, and never a partial report.
func (s *Service) Assess(ctx context.Context, p features.PatientProfile) (Report, error) {
	art, err := s.models.Get(ctx)
	if err != nil {
		return Report{}, err
	}

	vec, err := features.Build(p, art.Columns)
	if err != nil {
		return Report{}, err
	}

	a, err := Assess(vec, art)
	if err != nil {
		return Report{}, err
	}
	return Report{Assessment: a, Features: vec}, nil
}

// Artifact exposes the shared artifact for read-only display.
func (s *Service) Artifact(ctx context.Context) (*model.Artifact, error) {
	return s.models.Get(ctx)
}
