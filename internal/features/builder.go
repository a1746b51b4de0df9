// Package features turns a patient profile into the feature row the trained
// classifier expects.
package features

import (
	"fmt"
	"strings"
)

// HeightM is the height every BMI is computed with. The model was trained
// with this constant, so it must not be replaced by a real height.
const HeightM = 1.7

// Column names as they appear in the training data.
const (
	ColGender                     = "gender"
	ColWeight                     = "weight"
	ColSystolicBP                 = "ap_hi"
	ColDiastolicBP                = "ap_lo"
	ColCholesterol                = "cholesterol"
	ColGlucose                    = "gluc"
	ColSmoke                      = "smoke"
	ColAlcohol                    = "alco"
	ColActive                     = "active"
	ColAgeYears                   = "age_years"
	ColBMI                        = "bmi"
	ColPulsePressure              = "pulse_pressure"
	ColHealthIndex                = "health_index"
	ColCholesterolGlucInteraction = "cholesterol_gluc_interaction"
)

// SchemaMismatchError reports expected columns the builder cannot produce.
type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("feature schema mismatch: missing columns %s", strings.Join(e.Missing, ", "))
}

// Vector is a single feature row. Columns and Values are parallel and ordered
// exactly like the columns it was built for.
type Vector struct {
	Columns []string
	Values  []float64
}

// Get returns the value of a named column.
func (v Vector) Get(name string) (float64, bool) {
	for i, c := range v.Columns {
		if c == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

// Named pairs each column with its value, in order.
func (v Vector) Named() []NamedValue {
	out := make([]NamedValue, len(v.Columns))
	for i, c := range v.Columns {
		out[i] = NamedValue{Name: c, Value: v.Values[i]}
	}
	return out
}

type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Compute returns every feature the builder knows how to derive, keyed by
// column name.
func Compute(p PatientProfile) map[string]float64 {
	smoke := boolToFloat(p.Smokes)
	alco := boolToFloat(p.DrinksAlcohol)
	active := boolToFloat(p.PhysicallyActive)

	return map[string]float64{
		ColGender:                     float64(p.Gender),
		ColWeight:                     p.WeightKg,
		ColSystolicBP:                 float64(p.SystolicBP),
		ColDiastolicBP:                float64(p.DiastolicBP),
		ColCholesterol:                float64(p.Cholesterol),
		ColGlucose:                    float64(p.Glucose),
		ColSmoke:                      smoke,
		ColAlcohol:                    alco,
		ColActive:                     active,
		ColAgeYears:                   float64(p.AgeYears),
		ColBMI:                        p.WeightKg / (HeightM * HeightM),
		ColPulsePressure:              float64(p.SystolicBP - p.DiastolicBP),
		ColHealthIndex:                (active + (1 - smoke) + (1 - alco)) / 3,
		ColCholesterolGlucInteraction: float64(p.Cholesterol) * float64(p.Glucose),
	}
}

// Build computes the features for p and reindexes them to expected.
// Computed columns that are not expected are dropped.
func Build(p PatientProfile, expected []string) (Vector, error) {
	return Reindex(Compute(p), expected)
}

// Reindex lays computed out in the order of expected. Any expected column
// without a computed value fails the whole row.
func Reindex(computed map[string]float64, expected []string) (Vector, error) {
	vec := Vector{
		Columns: make([]string, 0, len(expected)),
		Values:  make([]float64, 0, len(expected)),
	}
	var missing []string
	for _, col := range expected {
		val, ok := computed[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		vec.Columns = append(vec.Columns, col)
		vec.Values = append(vec.Values, val)
	}
	if len(missing) > 0 {
		return Vector{}, &SchemaMismatchError{Missing: missing}
	}
	return vec, nil
}
