package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Skufu/cardiorisk/internal/features"
	"github.com/Skufu/cardiorisk/internal/model"
	"github.com/Skufu/cardiorisk/internal/risk"
	"github.com/Skufu/cardiorisk/internal/telemetry"
)

type handler struct {
	svc     *risk.Service
	metrics *telemetry.Metrics
}

// assessmentRequest mirrors the form. Enumerations are checked here; numeric
// ranges are clamped rather than rejected, like the form widgets do.
type assessmentRequest struct {
	Gender           *int     `json:"gender" binding:"required,oneof=0 1"`
	AgeYears         *int     `json:"ageYears" binding:"required"`
	WeightKg         *float64 `json:"weightKg" binding:"required"`
	SystolicBP       *int     `json:"systolicBp" binding:"required"`
	DiastolicBP      *int     `json:"diastolicBp" binding:"required"`
	Cholesterol      *int     `json:"cholesterol" binding:"required,oneof=1 2 3"`
	Glucose          *int     `json:"glucose" binding:"required,oneof=1 2 3"`
	Smokes           *int     `json:"smokes" binding:"required,oneof=0 1"`
	DrinksAlcohol    *int     `json:"drinksAlcohol" binding:"required,oneof=0 1"`
	PhysicallyActive *int     `json:"physicallyActive" binding:"required,oneof=0 1"`
}

func (r assessmentRequest) profile() features.PatientProfile {
	return features.PatientProfile{
		Gender:           features.Gender(*r.Gender),
		AgeYears:         *r.AgeYears,
		WeightKg:         *r.WeightKg,
		SystolicBP:       *r.SystolicBP,
		DiastolicBP:      *r.DiastolicBP,
		Cholesterol:      features.Level(*r.Cholesterol),
		Glucose:          features.Level(*r.Glucose),
		Smokes:           *r.Smokes == 1,
		DrinksAlcohol:    *r.DrinksAlcohol == 1,
		PhysicallyActive: *r.PhysicallyActive == 1,
	}.Clamp()
}

type assessmentResponse struct {
	ID           string                `json:"id"`
	Probability  float64               `json:"probability"`
	Percentage   float64               `json:"percentage"`
	Tier         risk.Tier             `json:"tier"`
	Label        string                `json:"label"`
	Advisory     risk.Advisory         `json:"advisory"`
	AdvisoryText string                `json:"advisoryText"`
	Disclaimer   string                `json:"disclaimer"`
	Features     []features.NamedValue `json:"features"`
}

func (h *handler) assess(c *gin.Context) {
	var req assessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.bindError(c, err)
		return
	}

	start := time.Now()
	report, err := h.svc.Assess(c.Request.Context(), req.profile())
	if err != nil {
		h.assessError(c, err, time.Since(start))
		return
	}
	h.record(string(report.Tier), time.Since(start))

	c.JSON(http.StatusOK, assessmentResponse{
		ID:           uuid.NewString(),
		Probability:  report.Probability,
		Percentage:   report.DisplayPercentage(),
		Tier:         report.Tier,
		Label:        report.Tier.Label(),
		Advisory:     report.Advisory,
		AdvisoryText: report.AdvisoryText(),
		Disclaimer:   risk.Disclaimer,
		Features:     report.Features.Named(),
	})
}

func (h *handler) bindError(c *gin.Context, err error) {
	var (
		maxErr  *http.MaxBytesError
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &maxErr):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload_too_large"})
	case errors.As(err, &typeErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"message": "invalid input: " + typeErr.Field + " has the wrong type",
			"fields":  []string{typeErr.Field},
		})
	case errors.As(err, &verrs):
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "validation_failed",
			"message": "invalid input: missing or out-of-range fields",
			"fields":  fields,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
	}
}

// assessError distinguishes an unusable model from a request the model
// cannot accept. None of them fall back to a tier.
func (h *handler) assessError(c *gin.Context, err error, d time.Duration) {
	var (
		loadErr   *model.ArtifactLoadError
		schemaErr *features.SchemaMismatchError
		scoreErr  *risk.ScoringError
	)
	_ = c.Error(err)

	switch {
	case errors.As(err, &loadErr):
		h.record("model_unavailable", d)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "model_unavailable",
			"message": "The risk model is not available. Please try again later.",
		})
	case errors.As(err, &schemaErr):
		h.record("schema_mismatch", d)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "schema_mismatch",
			"message": "invalid input: the model expects features that cannot be derived from this form",
			"missing": schemaErr.Missing,
		})
	case errors.As(err, &scoreErr):
		h.record("scoring_failed", d)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "scoring_failed",
			"message": "The risk model could not score this profile.",
		})
	default:
		h.record("internal_error", d)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}

func (h *handler) record(result string, d time.Duration) {
	if h.metrics != nil {
		h.metrics.RecordAssessment(result, d)
	}
}

type scoresView struct {
	TrainAccuracy *float64 `json:"trainAccuracy,omitempty"`
	TestAccuracy  *float64 `json:"testAccuracy,omitempty"`
	CVScore       *float64 `json:"cvScore,omitempty"`
}

type rocView struct {
	FPR []float64 `json:"fpr"`
	TPR []float64 `json:"tpr"`
	AUC float64   `json:"auc"`
}

type learningCurveView struct {
	TrainSizes      []int     `json:"trainSizes"`
	TrainScoresMean []float64 `json:"trainScoresMean"`
	TestScoresMean  []float64 `json:"testScoresMean"`
}

// ModelView is the read-only description of a loaded artifact.
type ModelView struct {
	Source            string                        `json:"source"`
	Kind              string                        `json:"kind"`
	Columns           []string                      `json:"columns"`
	Panels            model.Panels                  `json:"panels"`
	Scores            *scoresView                   `json:"scores,omitempty"`
	ModelComparison   map[string]map[string]float64 `json:"modelComparison,omitempty"`
	FeatureImportance []model.Importance            `json:"featureImportance,omitempty"`
	ROCCurve          *rocView                      `json:"rocCurve,omitempty"`
	LearningCurve     *learningCurveView            `json:"learningCurve,omitempty"`
}

func (h *handler) describeModel(c *gin.Context) {
	art, err := h.svc.Artifact(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "model_unavailable",
			"message": "The risk model is not available. Please try again later.",
		})
		return
	}
	c.JSON(http.StatusOK, NewModelView(art))
}

// NewModelView includes only the metadata the artifact actually carries.
func NewModelView(art *model.Artifact) ModelView {
	meta := art.Metadata
	v := ModelView{
		Source:  art.Source,
		Kind:    art.Classifier.Kind(),
		Columns: art.Columns,
		Panels:  art.Panels,
	}
	if art.Panels.Scores {
		v.Scores = &scoresView{
			TrainAccuracy: meta.TrainAccuracy,
			TestAccuracy:  meta.TestAccuracy,
			CVScore:       meta.CVScore,
		}
	}
	if art.Panels.ModelComparison {
		v.ModelComparison = meta.ModelComparison
	}
	if art.Panels.FeatureImportance {
		v.FeatureImportance = meta.RankedImportance()
	}
	if art.Panels.ROCCurve {
		v.ROCCurve = &rocView{FPR: meta.ROC.FPR, TPR: meta.ROC.TPR, AUC: meta.ROC.AUC()}
	}
	if art.Panels.LearningCurve {
		lc := meta.LearningCurve
		v.LearningCurve = &learningCurveView{
			TrainSizes:      lc.TrainSizes,
			TrainScoresMean: lc.TrainScoresMean,
			TestScoresMean:  lc.TestScoresMean,
		}
	}
	return v
}
