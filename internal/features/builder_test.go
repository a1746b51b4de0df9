package features

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trainingColumns = []string{
	"gender", "weight", "ap_hi", "ap_lo", "cholesterol", "gluc", "smoke", "alco",
	"active", "age_years", "bmi", "pulse_pressure", "health_index",
	"cholesterol_gluc_interaction",
}

func referenceProfile() PatientProfile {
	return PatientProfile{
		Gender:           Male,
		AgeYears:         40,
		WeightKg:         70,
		SystolicBP:       120,
		DiastolicBP:      80,
		Cholesterol:      Normal,
		Glucose:          Normal,
		PhysicallyActive: true,
	}
}

func TestBuild_ReferenceProfile(t *testing.T) {
	vec, err := Build(referenceProfile(), trainingColumns)
	require.NoError(t, err)

	assert.Equal(t, trainingColumns, vec.Columns)
	require.Len(t, vec.Values, len(trainingColumns))

	bmi, ok := vec.Get(ColBMI)
	require.True(t, ok)
	assert.InDelta(t, 24.2214532, bmi, 1e-6)

	values := append([]float64(nil), vec.Values...)
	values[10] = 0
	assert.Equal(t, []float64{1, 70, 120, 80, 1, 1, 0, 0, 1, 40, 0, 40, 1, 1}, values)
}

func TestBuild_FollowsExpectedOrder(t *testing.T) {
	expected := []string{"health_index", "ap_lo", "gender", "pulse_pressure"}
	vec, err := Build(referenceProfile(), expected)
	require.NoError(t, err)

	assert.Equal(t, expected, vec.Columns)
	assert.Equal(t, []float64{1, 80, 1, 40}, vec.Values)
}

func TestBuild_DropsUnexpectedColumns(t *testing.T) {
	vec, err := Build(referenceProfile(), []string{"ap_hi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ap_hi"}, vec.Columns)
	_, ok := vec.Get(ColBMI)
	assert.False(t, ok)
}

func TestBuild_MissingColumn(t *testing.T) {
	vec, err := Build(referenceProfile(), []string{"bmi", "height", "ap_hi", "cholesterol_ratio"})

	var schemaErr *SchemaMismatchError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"height", "cholesterol_ratio"}, schemaErr.Missing)
	assert.Contains(t, err.Error(), "height")
	assert.Empty(t, vec.Columns)
}

func TestCompute_PulsePressure(t *testing.T) {
	p := referenceProfile()
	assert.Equal(t, 40.0, Compute(p)[ColPulsePressure])

	// diastolic above systolic is accepted as-is
	p.SystolicBP, p.DiastolicBP = 90, 110
	assert.Equal(t, -20.0, Compute(p)[ColPulsePressure])
}

func TestCompute_HealthIndex(t *testing.T) {
	tests := []struct {
		name                  string
		active, smoke, drinks bool
		want                  float64
	}{
		{"healthy", true, false, false, 1},
		{"unhealthy", false, true, true, 0},
		{"active smoker", true, true, false, 2.0 / 3},
		{"inactive", false, false, false, 2.0 / 3},
		{"drinker only", true, false, true, 2.0 / 3},
		{"inactive drinker", false, false, true, 1.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := referenceProfile()
			p.PhysicallyActive, p.Smokes, p.DrinksAlcohol = tt.active, tt.smoke, tt.drinks
			got := Compute(p)[ColHealthIndex]
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestCompute_Interaction(t *testing.T) {
	p := referenceProfile()
	p.Cholesterol, p.Glucose = High, High
	assert.Equal(t, 9.0, Compute(p)[ColCholesterolGlucInteraction])

	p.Cholesterol, p.Glucose = AboveNormal, High
	assert.Equal(t, 6.0, Compute(p)[ColCholesterolGlucInteraction])
}

func TestCompute_BMIUsesFixedHeight(t *testing.T) {
	for _, w := range []float64{30, 70, 123.4, 200} {
		p := referenceProfile()
		p.WeightKg = w
		assert.InDelta(t, w/(HeightM*HeightM), Compute(p)[ColBMI], 1e-12)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a, err := Build(referenceProfile(), trainingColumns)
	require.NoError(t, err)
	b, err := Build(referenceProfile(), trainingColumns)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestClamp(t *testing.T) {
	p := PatientProfile{AgeYears: 5, WeightKg: 250, SystolicBP: 60, DiastolicBP: 150}.Clamp()
	assert.Equal(t, 18, p.AgeYears)
	assert.Equal(t, 200.0, p.WeightKg)
	assert.Equal(t, 80, p.SystolicBP)
	assert.Equal(t, 130, p.DiastolicBP)

	in := referenceProfile()
	assert.Equal(t, in, in.Clamp())
}

func TestVectorNamed(t *testing.T) {
	vec := Vector{Columns: []string{"a", "b"}, Values: []float64{1, 2}}
	assert.Equal(t, []NamedValue{{"a", 1}, {"b", 2}}, vec.Named())
}
