package ai

import (
	"strings"

	"github.com/havenapp/haven-api/models"
)

// natures is the fixed label set a classification draws from.
var natures = []string{
	"Physical and Emotional Abuse",
	"Domestic Violence",
	"Coercive Control",
	"Emotional Manipulation",
	"Physical Assault",
}

// Classify scores the reported frequency and duration of abuse and maps
// the total to a severity: Daily=3, Multiple times a week=2, Weekly=1;
// a duration mentioning years adds 2, months adds 1. Total >=4 is High,
// >=2 Medium, else Low. The nature label is picked from the fixed set
// by the same score, so the whole triple is deterministic for a given
// form.
func Classify(narrative string, form FormData) models.Classification {
	frequencyScore := 0
	switch form.Frequency {
	case "Daily":
		frequencyScore = 3
	case "Multiple times a week":
		frequencyScore = 2
	case "Weekly":
		frequencyScore = 1
	}

	durationScore := 0
	if strings.Contains(form.DurationOfAbuse, "year") {
		durationScore = 2
	} else if strings.Contains(form.DurationOfAbuse, "month") {
		durationScore = 1
	}

	totalScore := frequencyScore + durationScore

	severity := models.SeverityLow
	if totalScore >= 4 {
		severity = models.SeverityHigh
	} else if totalScore >= 2 {
		severity = models.SeverityMedium
	}

	return models.Classification{
		Severity:  severity,
		Nature:    natures[totalScore%len(natures)],
		RiskLevel: riskLevelFor(severity),
	}
}

func riskLevelFor(severity string) string {
	switch severity {
	case models.SeverityHigh:
		return "Critical - Immediate intervention needed"
	case models.SeverityMedium:
		return "Moderate - Regular monitoring required"
	default:
		return "Low - Supportive assistance recommended"
	}
}
