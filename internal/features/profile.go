package features

// Gender is encoded the way the training data encodes it.
type Gender int

const (
	Female Gender = 0
	Male   Gender = 1
)

// Level is the three-step scale used for cholesterol and glucose.
type Level int

const (
	Normal      Level = 1
	AboveNormal Level = 2
	High        Level = 3
)

func (l Level) String() string {
	switch l {
	case Normal:
		return "Normal"
	case AboveNormal:
		return "Above Normal"
	case High:
		return "High"
	default:
		return "Unknown"
	}
}

// Input domains enforced by the input layer.
const (
	MinAge, MaxAge                 = 18, 100
	MinWeightKg, MaxWeightKg       = 30.0, 200.0
	MinSystolicBP, MaxSystolicBP   = 80, 200
	MinDiastolicBP, MaxDiastolicBP = 50, 130
)

// PatientProfile holds the raw attributes collected for one assessment.
// Systolic and diastolic pressure are clamped independently; nothing checks
// that systolic exceeds diastolic.
type PatientProfile struct {
	Gender           Gender  `json:"gender"`
	AgeYears         int     `json:"ageYears"`
	WeightKg         float64 `json:"weightKg"`
	SystolicBP       int     `json:"systolicBp"`
	DiastolicBP      int     `json:"diastolicBp"`
	Cholesterol      Level   `json:"cholesterol"`
	Glucose          Level   `json:"glucose"`
	Smokes           bool    `json:"smokes"`
	DrinksAlcohol    bool    `json:"drinksAlcohol"`
	PhysicallyActive bool    `json:"physicallyActive"`
}

// Clamp pulls numeric fields into their input domains, the same way the
// form widgets do. Build never calls it.
func (p PatientProfile) Clamp() PatientProfile {
	p.AgeYears = clampInt(p.AgeYears, MinAge, MaxAge)
	p.WeightKg = clampFloat(p.WeightKg, MinWeightKg, MaxWeightKg)
	p.SystolicBP = clampInt(p.SystolicBP, MinSystolicBP, MaxSystolicBP)
	p.DiastolicBP = clampInt(p.DiastolicBP, MinDiastolicBP, MaxDiastolicBP)
	return p
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
