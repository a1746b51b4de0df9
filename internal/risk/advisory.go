package risk

import "strings"

// Advisory is the fixed guidance shown with a tier. It is never
// personalised beyond the tier.
type Advisory struct {
	Heading    string   `json:"heading"`
	Summary    string   `json:"summary"`
	Meaning    []string `json:"meaning"`
	ActionsFor string   `json:"actionsFor"`
	Actions    []string `json:"actions"`
	Closing    string   `json:"closing"`
}

// NonDiagnostic is the disclaimer carried by the high tier.
const NonDiagnostic = "This result is not a diagnosis, but it should not be ignored."

// Disclaimer accompanies every result, whatever the tier.
const Disclaimer = "This application is for academic and educational purposes only. " +
	"It does not replace professional medical advice or diagnosis."

var advisories = map[Tier]Advisory{
	Low: {
		Heading: "Doctor's Summary",
		Summary: "Your results suggest a low risk of cardiovascular disease at the moment.",
		Meaning: []string{
			"Your current health indicators are within a generally safe range.",
		},
		ActionsFor: "What you should do",
		Actions: []string{
			"Continue maintaining a healthy lifestyle",
			"Eat a balanced diet and stay physically active",
			"Get routine health checkups once a year",
		},
		Closing: "No immediate medical concern is indicated.",
	},
	Medium: {
		Heading: "Doctor's Summary",
		Summary: "Your results indicate a moderate risk of cardiovascular disease.",
		Meaning: []string{
			"Some health or lifestyle factors may increase future risk if ignored.",
		},
		ActionsFor: "What you should do",
		Actions: []string{
			"Improve physical activity and diet habits",
			"Reduce smoking or alcohol intake if applicable",
			"Monitor blood pressure and cholesterol regularly",
			"Consider consulting a healthcare professional for advice",
		},
		Closing: "Early action can significantly reduce future risk.",
	},
	High: {
		Heading: "Doctor's Summary",
		Summary: "Your results suggest a high risk of cardiovascular disease.",
		Meaning: []string{
			"Multiple factors indicate a higher chance of heart-related issues.",
		},
		ActionsFor: "What you should do immediately",
		Actions: []string{
			"Consult a doctor or healthcare professional as soon as possible",
			"Get a detailed medical evaluation",
			"Follow professional advice on medication, diet, and lifestyle changes",
		},
		Closing: NonDiagnostic,
	},
}

// AdvisoryFor returns the template for t. Unknown tiers get the zero value.
func AdvisoryFor(t Tier) Advisory {
	return advisories[t]
}

// Text renders the advisory as markdown.
func (a Advisory) Text() string {
	var b strings.Builder
	b.WriteString("### " + a.Heading + "\n")
	b.WriteString(a.Summary + "\n\n")
	b.WriteString("**What this means:**\n")
	for _, m := range a.Meaning {
		b.WriteString("- " + m + "\n")
	}
	b.WriteString("\n**" + a.ActionsFor + ":**\n")
	for _, act := range a.Actions {
		b.WriteString("- " + act + "\n")
	}
	b.WriteString("\n" + a.Closing)
	return b.String()
}
