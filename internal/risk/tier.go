package risk

// Tier is the discrete risk band a probability falls into.
type Tier string

const (
	Low    Tier = "low"
	Medium Tier = "medium"
	High   Tier = "high"
)

// Thresholds in percent. Each band includes its lower bound.
const (
	MediumFromPct = 30.0
	HighFromPct   = 60.0
)

// TierFor buckets a positive-class probability: below 30% is low, from 30%
// up to 60% is medium, 60% and above is high.
func TierFor(probability float64) Tier {
	pct := probability * 100
	switch {
	case pct < MediumFromPct:
		return Low
	case pct < HighFromPct:
		return Medium
	default:
		return High
	}
}

func (t Tier) Label() string {
	switch t {
	case Low:
		return "Low Risk"
	case Medium:
		return "Moderate Risk"
	case High:
		return "High Risk"
	default:
		return "Unknown"
	}
}
